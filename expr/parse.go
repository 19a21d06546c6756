package expr

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"text/scanner"
)

// ParseError reports the byte offset of the first bad token.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at offset %d: %s", e.Offset, e.Msg)
}

// Parse reads an infix formula.
//
//	expr    := term (('+' | '-') term)*
//	term    := unary (('*' | '/') unary)*
//	unary   := ('-' | '+') unary | power
//	power   := primary ('^' unary)?
//	primary := number | ident | ident '(' expr ')' | '(' expr ')'
//
// ^ is right associative and binds tighter than unary minus, so -x^2 is
// -(x^2). The identifier pi is the constant π. ln is read as log.
func Parse(src string) (Expr, error) {
	p := &parser{src: src}
	p.s.Init(strings.NewReader(src))
	p.s.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	p.s.Error = func(s *scanner.Scanner, msg string) {
		if p.err == nil {
			p.err = &ParseError{Offset: s.Pos().Offset, Msg: msg}
		}
	}
	p.next()
	if p.tok == scanner.EOF {
		return nil, p.errorf("empty expression")
	}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if p.tok != scanner.EOF {
		return nil, p.errorf("unexpected %q", p.text)
	}
	if p.err != nil {
		return nil, p.err
	}
	return e, nil
}

// MustParse is like Parse but panics on error.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

type parser struct {
	src  string
	s    scanner.Scanner
	tok  rune
	text string
	pos  int
	err  error
}

func (p *parser) next() {
	p.tok = p.s.Scan()
	p.text = p.s.TokenText()
	if p.tok == scanner.EOF {
		p.pos = len(p.src)
		p.text = ""
		return
	}
	p.pos = p.s.Position.Offset
}

func (p *parser) errorf(format string, args ...interface{}) error {
	if p.err != nil {
		return p.err
	}
	return &ParseError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) expr() (Expr, error) {
	first, err := p.term()
	if err != nil {
		return nil, err
	}
	terms := []Expr{first}
	for p.tok == '+' || p.tok == '-' {
		op := p.tok
		p.next()
		t, err := p.term()
		if err != nil {
			return nil, err
		}
		if op == '-' {
			t = NegOf(t)
		}
		terms = append(terms, t)
	}
	return AddOf(terms...), nil
}

func (p *parser) term() (Expr, error) {
	first, err := p.unary()
	if err != nil {
		return nil, err
	}
	factors := []Expr{first}
	for p.tok == '*' || p.tok == '/' {
		op := p.tok
		p.next()
		f, err := p.unary()
		if err != nil {
			return nil, err
		}
		if op == '/' {
			f = PowOf(f, N(-1))
		}
		factors = append(factors, f)
	}
	return MulOf(factors...), nil
}

func (p *parser) unary() (Expr, error) {
	switch p.tok {
	case '-':
		p.next()
		e, err := p.unary()
		if err != nil {
			return nil, err
		}
		return NegOf(e), nil
	case '+':
		p.next()
		return p.unary()
	}
	return p.power()
}

func (p *parser) power() (Expr, error) {
	base, err := p.primary()
	if err != nil {
		return nil, err
	}
	if p.tok != '^' {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return PowOf(base, exp), nil
}

func (p *parser) primary() (Expr, error) {
	switch p.tok {
	case scanner.Int, scanner.Float:
		v, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			return nil, p.errorf("bad number %q", p.text)
		}
		p.next()
		return N(v), nil

	case scanner.Ident:
		name, namePos := p.text, p.pos
		p.next()
		if p.tok != '(' {
			if name == "pi" {
				return N(math.Pi), nil
			}
			return S(name), nil
		}
		if _, ok := functionNames[name]; !ok {
			return nil, &ParseError{Offset: namePos, Msg: fmt.Sprintf("unknown function %q", name)}
		}
		if name == "ln" {
			name = "log"
		}
		p.next()
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return FuncOf(name, arg), nil

	case '(':
		p.next()
		e, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expect(')'); err != nil {
			return nil, err
		}
		return e, nil

	case scanner.EOF:
		return nil, p.errorf("unexpected end of input")
	}
	return nil, p.errorf("unexpected %q", p.text)
}

func (p *parser) expect(tok rune) error {
	if p.tok != tok {
		if p.tok == scanner.EOF {
			return p.errorf("expected %q, got end of input", tok)
		}
		return p.errorf("expected %q, got %q", tok, p.text)
	}
	p.next()
	return nil
}
