/*
Package parser provides a scheme reader.

	expr   := '(' <expr>* ('.' <expr>)? ')' | <number> | <string> | <bool> | <symbol> | <quoted>
	number := /[+-]?[0-9]+/ <fraction>? <exponent>?
	fraction := '.' /[0-9]+/
	exponent := e /[0-9]+/
	string := '"' <strcontent> '"'
	strcontent := /[^"]+/ | '\' '"'
	bool   := '#t' | '#f'
	quoted := ['`,] <expr>
*/
package parser

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bmatsuo/minilisp/lisp"
	parsec "github.com/prataprc/goparsec"
)

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeQExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeQExpr:   "QEXPR",
}

// Reader parses scheme source text into lisp values.  It implements
// lisp.Reader and the zero value is ready to use.
type Reader struct{}

// NewReader returns a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// Read consumes r and returns the sequence of expressions it contains.  The
// name is used in error messages.
func (*Reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	v, n, err := ParseLVal(text)
	if err != nil {
		return v, lisp.Errorf(lisp.ErrSyntax, "%s: parse error at byte offset %d", name, n)
	}
	return v, nil
}

// ParseLVal parses LVal values from text and returns them.  The number of
// bytes read is returned along with any error that was encountered in parsing.
func ParseLVal(text []byte) ([]*lisp.LVal, int, error) {
	var v []*lisp.LVal
	s := parsec.NewScanner(text)
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		if lval := getLVal(root); lval != nil {
			v = append(v, lval)
		}
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		return v, s.GetCursor(), io.ErrUnexpectedEOF
	}
	return v, s.GetCursor(), nil
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	dot := parsec.Atom(".", "DOT")
	q := parsec.Atom("'", "QUOTE")
	qq := parsec.Atom("`", "QUASIQUOTE")
	uq := parsec.Atom(",", "UNQUOTE")
	comment := parsec.Token(`;([^\n]*[^\s])?`, "COMMENT")
	boolean := parsec.Token(`#[tf]`, "BOOL")
	decimal := parsec.Token(`[+-]?[0-9]+([.][0-9]+)?([eE][+-]?[0-9]+)?`, "DECIMAL")
	symbol := parsec.Token(`(?:\pL|[_+\-*/\=<>!&~%?])(?:\pL|[0-9]|[_+\-*/\=<>!&~%?.])*`, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), // terminal token
		parsec.String(),
		boolean,
		decimal,
		symbol, // symbol comes last because it swallows anything
	)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	tail := parsec.Maybe(nil, parsec.And(nil, dot, &expr))
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, tail, closeP)
	qexpr := parsec.And(astNode(nodeQExpr), parsec.OrdChoice(nil, q, qq, uq), &expr)
	expr = parsec.OrdChoice(nil, comment, term, sexpr, qexpr)
	return expr
}

type nodeType uint

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

var quoteSymbols = map[string]string{
	"'": "quote",
	"`": "quasiquote",
	",": "unquote",
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = cleanParsecNodeList(nodes)
	switch typ {
	case nodeTerm:
		var lval *lisp.LVal
		switch term := nodes[0].(type) {
		case string:
			lval = lisp.String(unquoteString(term))
		case *parsec.Terminal:
			switch term.Name {
			case "BOOL":
				lval = lisp.Bool(term.Value == "#t")
			case "DECIMAL":
				lval = parseNumber(term.Value)
			case "SYMBOL":
				lval = lisp.Symbol(term.Value)
			}
		}
		return lval
	case nodeSExpr:
		// Terminal parsec nodes '(' and ')' are skipped.  Any value
		// appearing after a DOT terminal becomes the tail of the final
		// pair instead of an element.
		var elems []*lisp.LVal
		lval := lisp.Nil()
		dotted := false
		for _, c := range nodes {
			switch c := c.(type) {
			case *lisp.LVal:
				if dotted {
					lval = c
				} else {
					elems = append(elems, c)
				}
			case *parsec.Terminal:
				if c.Name == "DOT" {
					dotted = true
				}
			}
		}
		for i := len(elems) - 1; i >= 0; i-- {
			lval = lisp.Cons(elems[i], lval)
		}
		return lval
	case nodeQExpr:
		sym := nodes[0].(*parsec.Terminal)
		c := nodes[1].(*lisp.LVal)
		return lisp.List(lisp.Symbol(quoteSymbols[sym.Value]), c)
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func parseNumber(text string) *lisp.LVal {
	if strings.ContainsAny(text, ".eE") {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lisp.Symbol(text)
		}
		return lisp.Float(f)
	}
	x, err := strconv.Atoi(text)
	if err != nil {
		// out of int range
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return lisp.Symbol(text)
		}
		return lisp.Float(f)
	}
	return lisp.Int(x)
}

func cleanParsecNodeList(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, cleanParsecNodeList(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	nodes := cleanParsecNodeList([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		// only whitespace
		return nil
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		// only a comment
		return nil
	}
	return lval
}

func unquoteString(s string) string {
	return s[1 : len(s)-1]
}
