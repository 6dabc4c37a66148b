package sexpr

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/sergev/tailisp/lang"
)

// MaxNesting bounds how deeply lists and quotes may nest in one expression.
const MaxNesting = 10000

// parser is a recursive-descent reader over a token slice with a single cursor.
type parser struct {
	tokens []Token
	pos    int
	end    int
	depth  int
}

func newParser(src string) *parser {
	return &parser{tokens: Tokenize(src), end: len(src)}
}

func (p *parser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *parser) readExpr() (lang.Value, error) {
	if p.done() {
		return lang.Value{}, newIncompleteError(ErrUnexpectedEOF, p.end)
	}
	tok := p.tokens[p.pos]
	p.pos++
	if tok.Text == "(" || tok.Text == "'" {
		if p.depth >= MaxNesting {
			return lang.Value{}, newError(ErrTooDeep, tok.Offset)
		}
		p.depth++
		defer func() { p.depth-- }()
	}
	switch tok.Text {
	case "(":
		return p.readList(tok)
	case ")":
		return lang.Value{}, newError(ErrUnexpectedCloseParen, tok.Offset)
	case "'":
		expr, err := p.readExpr()
		if err != nil {
			return lang.Value{}, err
		}
		return lang.List(lang.SymbolValue("quote"), expr), nil
	default:
		return parseAtom(tok.Text), nil
	}
}

func (p *parser) readList(open Token) (lang.Value, error) {
	var elems []lang.Value
	for {
		if p.done() {
			return lang.Value{}, newIncompleteError(ErrUnmatchedParen, open.Offset)
		}
		if p.tokens[p.pos].Text == ")" {
			p.pos++
			return lang.List(elems...), nil
		}
		elem, err := p.readExpr()
		if err != nil {
			if IsIncomplete(err) {
				return lang.Value{}, newIncompleteError(ErrUnmatchedParen, open.Offset)
			}
			return lang.Value{}, err
		}
		elems = append(elems, elem)
	}
}

func parseAtom(token string) lang.Value {
	switch token {
	case "#t":
		return lang.BoolValue(true)
	case "#f":
		return lang.BoolValue(false)
	}
	if f, ok := parseNumber(token); ok {
		return lang.NumberValue(f)
	}
	return lang.SymbolValue(token)
}

// parseNumber accepts decimal literals only. Words such as inf or nan,
// hex floats and digit separators stay symbols.
func parseNumber(token string) (float64, bool) {
	if token == "" || !strings.ContainsAny(token[:1], "0123456789+-.") {
		return 0, false
	}
	if strings.ContainsAny(token, "xX_pPiInN") {
		return 0, false
	}
	f, err := strconv.ParseFloat(token, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// Out-of-range literals saturate to ±Inf or round to zero.
	return f, true
}

// ReadOne parses exactly one expression from src. Any tokens left after
// it are reported as ErrTrailingInput.
func ReadOne(src string) (lang.Value, error) {
	p := newParser(src)
	val, err := p.readExpr()
	if err != nil {
		return lang.Value{}, err
	}
	if !p.done() {
		return lang.Value{}, newError(ErrTrailingInput, p.tokens[p.pos].Offset)
	}
	return val, nil
}

// ReadString parses every top-level expression in src.
func ReadString(src string) ([]lang.Value, error) {
	p := newParser(src)
	var values []lang.Value
	for !p.done() {
		val, err := p.readExpr()
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}

// ReadAll parses every top-level expression from r.
func ReadAll(r io.Reader) ([]lang.Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ReadString(string(data))
}
