package parse

import (
	"strconv"
	"unicode"
	"unicode/utf8"

	"src.mar.sh/pkg/diag"
)

// arithSubst parses the interior of an Arith token into an expression tree.
// Arithmetic is evaluated over integers at expansion time; only the structure
// is built here.
func (ps *parser) arithSubst(tok Token) *ArithSubst {
	n := &ArithSubst{}
	n.Ranging = tok.Ranging
	n.sourceText = ps.src.Code[tok.From:tok.To]
	ar := &arithParser{ps: ps, text: tok.Text, base: tok.From + 3}
	n.Expr = ar.expr()
	ar.skipSpaces()
	if !ar.eof() {
		ps.errorf(diag.PointRanging(ar.base+ar.pos),
			"unexpected '%c' in arithmetic expression", ar.peek())
	}
	if n.Expr == nil {
		n.Expr = &ArithNum{node{tok.Ranging, ""}, 0}
	}
	return n
}

// arithParser is a cursor over the text between $(( and )).
type arithParser struct {
	ps   *parser
	text string
	base int
	pos  int
}

func (ar *arithParser) eof() bool { return ar.pos >= len(ar.text) }

func (ar *arithParser) peek() rune {
	if ar.eof() {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(ar.text[ar.pos:])
	return r
}

func (ar *arithParser) skipSpaces() {
	for !ar.eof() && (ar.text[ar.pos] == ' ' || ar.text[ar.pos] == '\t') {
		ar.pos++
	}
}

func (ar *arithParser) errorf(from int, format string, args ...any) {
	ar.ps.errorf(diag.Ranging{From: ar.base + from, To: ar.base + ar.pos},
		format, args...)
}

func (ar *arithParser) finish(n Node, from int) {
	nn := n.n()
	nn.Ranging = diag.Ranging{From: ar.base + from, To: ar.base + ar.pos}
	nn.sourceText = ar.ps.src.Code[nn.From:nn.To]
}

// expr = term { ('+' | '-') term }
func (ar *arithParser) expr() ArithExpr {
	from := ar.pos
	left := ar.term()
	if left == nil {
		return nil
	}
	for {
		ar.skipSpaces()
		op := ar.peek()
		if op != '+' && op != '-' {
			return left
		}
		ar.pos++
		right := ar.term()
		if right == nil {
			return left
		}
		bin := &ArithBinary{Op: op, Left: left, Right: right}
		ar.finish(bin, from)
		left = bin
	}
}

// term = factor { ('*' | '/' | '%') factor }
func (ar *arithParser) term() ArithExpr {
	from := ar.pos
	left := ar.factor()
	if left == nil {
		return nil
	}
	for {
		ar.skipSpaces()
		op := ar.peek()
		if op != '*' && op != '/' && op != '%' {
			return left
		}
		ar.pos++
		right := ar.factor()
		if right == nil {
			return left
		}
		bin := &ArithBinary{Op: op, Left: left, Right: right}
		ar.finish(bin, from)
		left = bin
	}
}

// factor = number | '$' name | name | '(' expr ')' | '-' factor
func (ar *arithParser) factor() ArithExpr {
	ar.skipSpaces()
	from := ar.pos
	switch r := ar.peek(); {
	case r == '-':
		ar.pos++
		operand := ar.factor()
		if operand == nil {
			return nil
		}
		un := &ArithUnary{Op: '-', Operand: operand}
		ar.finish(un, from)
		return un
	case r == '(':
		ar.pos++
		inner := ar.expr()
		ar.skipSpaces()
		if ar.peek() != ')' {
			ar.errorf(from, "missing ')' in arithmetic expression")
			return inner
		}
		ar.pos++
		return inner
	case r == '$':
		ar.pos++
		name := ar.name()
		if name == "" {
			ar.errorf(from, "'$' not followed by variable name")
			return nil
		}
		v := &ArithVar{Name: name}
		ar.finish(v, from)
		return v
	case unicode.IsDigit(r):
		start := ar.pos
		for !ar.eof() && ar.text[ar.pos] >= '0' && ar.text[ar.pos] <= '9' {
			ar.pos++
		}
		val, err := strconv.Atoi(ar.text[start:ar.pos])
		if err != nil {
			ar.errorf(from, "number out of range")
			val = 0
		}
		num := &ArithNum{Value: val}
		ar.finish(num, from)
		return num
	case allowedInVariableName(r):
		name := ar.name()
		v := &ArithVar{Name: name}
		ar.finish(v, from)
		return v
	case ar.eof():
		ar.errorf(from, "%s", newError("", "arithmetic operand"))
		return nil
	default:
		ar.errorf(from, "unexpected '%c' in arithmetic expression", r)
		return nil
	}
}

func (ar *arithParser) name() string {
	start := ar.pos
	for !ar.eof() {
		r, size := utf8.DecodeRuneInString(ar.text[ar.pos:])
		if !allowedInVariableName(r) {
			break
		}
		ar.pos += size
	}
	return ar.text[start:ar.pos]
}
