package parse

import (
	"testing"

	"src.mar.sh/pkg/tt"
)

// lexeme is a token stripped of its range, for comparison in tests.
type lexeme struct {
	Kind TokenKind
	Text string
}

func lex(src string) ([]lexeme, string) {
	tokens, err := Tokenize("[test]", src)
	var lexemes []lexeme
	for _, tok := range tokens {
		if tok.Kind == Space || tok.Kind == EOF {
			continue
		}
		lexemes = append(lexemes, lexeme{tok.Kind, tok.Text})
	}
	if err != nil {
		return lexemes, err.Error()
	}
	return lexemes, ""
}

func TestTokenize(t *testing.T) {
	tt.Test(t, tt.Fn("Tokenize", lex), tt.Table{
		Args("echo hello").Rets(
			[]lexeme{{Bareword, "echo"}, {Bareword, "hello"}}, ""),
		Args("let x = 10").Rets(
			[]lexeme{
				{Keyword, "let"}, {Bareword, "x"},
				{Assign, "="}, {Bareword, "10"}}, ""),
		Args("let xs ++= a").Rets(
			[]lexeme{
				{Keyword, "let"}, {Bareword, "xs"},
				{AppendAssign, "++="}, {Bareword, "a"}}, ""),
		Args("let xs ::= a").Rets(
			[]lexeme{
				{Keyword, "let"}, {Bareword, "xs"},
				{PrependAssign, "::="}, {Bareword, "a"}}, ""),
		// An operator glued to other characters is an ordinary bareword.
		Args("echo a=b ++=x").Rets(
			[]lexeme{
				{Bareword, "echo"}, {Bareword, "a=b"}, {Bareword, "++=x"}}, ""),
		// Keywords are recognized only as exact barewords.
		Args("echo iffy forever").Rets(
			[]lexeme{
				{Bareword, "echo"}, {Bareword, "iffy"},
				{Bareword, "forever"}}, ""),

		// Quoting. Delimiters are stripped from the token text.
		Args(`echo 'single $x' "double $x"`).Rets(
			[]lexeme{
				{Bareword, "echo"}, {SingleQuoted, "single $x"},
				{DoubleQuoted, "double $x"}}, ""),
		Args("echo `date`").Rets(
			[]lexeme{{Bareword, "echo"}, {Backquoted, "date"}}, ""),
		Args(`echo "a\"b"`).Rets(
			[]lexeme{{Bareword, "echo"}, {DoubleQuoted, `a\"b`}}, ""),

		// Variables and slices.
		Args("echo $x").Rets(
			[]lexeme{{Bareword, "echo"}, {Var, "x"}}, ""),
		Args("echo $x[1..3]").Rets(
			[]lexeme{
				{Bareword, "echo"}, {Var, "x"}, {Slice, "1..3"}}, ""),
		Args("echo $x[..]").Rets(
			[]lexeme{{Bareword, "echo"}, {Var, "x"}, {Slice, ".."}}, ""),
		// A bracket not glued to a variable is a bareword character.
		Args("echo [1..3]").Rets(
			[]lexeme{{Bareword, "echo"}, {Bareword, "[1..3]"}}, ""),

		// Arithmetic substitution.
		Args("echo $((1 + 2))").Rets(
			[]lexeme{{Bareword, "echo"}, {Arith, "1 + 2"}}, ""),

		// Operators and separators.
		Args("a | b; c &").Rets(
			[]lexeme{
				{Bareword, "a"}, {Pipe, "|"}, {Bareword, "b"},
				{Semicolon, ";"}, {Bareword, "c"}, {Ampersand, "&"}}, ""),
		Args("a > f >> g < h").Rets(
			[]lexeme{
				{Bareword, "a"}, {Greater, ">"}, {Bareword, "f"},
				{GreaterGreater, ">>"}, {Bareword, "g"},
				{Less, "<"}, {Bareword, "h"}}, ""),
		Args("echo {a,b}c *.txt ?").Rets(
			[]lexeme{
				{Bareword, "echo"}, {LBrace, "{"}, {Bareword, "a"},
				{Comma, ","}, {Bareword, "b"}, {RBrace, "}"},
				{Bareword, "c"}, {Star, "*"}, {Bareword, ".txt"},
				{Question, "?"}}, ""),

		// Comments run to the end of the line and only start a comment in
		// word-start position.
		Args("echo a # rest\necho b").Rets(
			[]lexeme{
				{Bareword, "echo"}, {Bareword, "a"}, {EOL, "\n"},
				{Bareword, "echo"}, {Bareword, "b"}}, ""),
		Args("echo a#b").Rets(
			[]lexeme{{Bareword, "echo"}, {Bareword, "a#b"}}, ""),

		// Malformed input.
		Args("echo 'oops").Rets([]lexeme{{Bareword, "echo"}},
			"lex error: 5-6 in [test]: unterminated single-quoted string"),
		Args(`echo "oops`).Rets([]lexeme{{Bareword, "echo"}},
			"lex error: 5-6 in [test]: unterminated double-quoted string"),
		Args("echo `oops").Rets([]lexeme{{Bareword, "echo"}},
			"lex error: 5-6 in [test]: unterminated command substitution"),
		Args("echo $x[1..2").Rets(
			[]lexeme{{Bareword, "echo"}, {Var, "x"}},
			"lex error: 7-8 in [test]: unterminated slice bracket"),
		Args("echo $((1+2)").Rets([]lexeme{{Bareword, "echo"}},
			"lex error: 5-6 in [test]: unterminated arithmetic substitution"),
		Args("echo $ x").Rets([]lexeme{{Bareword, "echo"}},
			"lex error: 5-6 in [test]: '$' not followed by variable name"),
	})
}

var Args = tt.Args
