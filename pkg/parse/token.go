package parse

import (
	"fmt"
	"sort"

	"src.mar.sh/pkg/diag"
)

// Token represents a lexical unit returned from the lexer. It carries the
// range of the source text it was scanned from.
type Token struct {
	Kind TokenKind // The kind of this token.
	Text string    // Raw text. For quoted and slice tokens, delimiters are stripped.
	diag.Ranging   // Position of the token in the source, including delimiters.
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "eof"
	default:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	}
}

// TokenKind identifies the kind of a token.
type TokenKind int

// TokenKind constants.
const (
	// Error is the kind of tokens emitted for malformed input; Text holds the
	// error message and the range points at the offending opener.
	Error TokenKind = iota

	EOF          // end of input, always the last token
	EOL          // a single newline
	Space        // a run of inline whitespace or a comment
	Semicolon    // ';'
	Bareword     // an unquoted word piece
	SingleQuoted // a single-quoted literal; Text excludes the quotes
	DoubleQuoted // a double-quoted literal; Text excludes the quotes
	Backquoted   // a `backquoted` command substitution; Text excludes the quotes
	Var          // a '$name' variable reference; Text excludes the sigil
	Slice        // a '[...]' slice suffix; Text excludes the brackets
	Arith        // a '$((...))' arithmetic substitution; Text excludes delimiters
	Star         // '*'
	Question     // '?'
	LBrace       // '{'
	RBrace       // '}'
	Comma        // ','
	LParen       // '('
	RParen       // ')'
	Assign       // '='
	AppendAssign // '++='
	PrependAssign // '::='
	Pipe         // '|'
	Less         // '<'
	Greater      // '>'
	GreaterGreater // '>>'
	Ampersand    // '&'
	Keyword      // a reserved word: let if else while for in fn end
)

var tokenKindNames = []string{
	"error",
	"eof",
	"newline",
	"space",
	"';'",
	"bareword",
	"single-quoted string",
	"double-quoted string",
	"backquoted string",
	"variable reference",
	"slice suffix",
	"arithmetic substitution",
	"'*'",
	"'?'",
	"'{'",
	"'}'",
	"','",
	"'('",
	"')'",
	"'='",
	"'++='",
	"'::='",
	"'|'",
	"'<'",
	"'>'",
	"'>>'",
	"'&'",
	"keyword",
}

func (k TokenKind) String() string {
	if k < 0 || int(k) >= len(tokenKindNames) {
		return fmt.Sprintf("bad token kind %d", int(k))
	}
	return tokenKindNames[k]
}

// Keywords of the language. Barewords matching an entry are scanned as
// Keyword tokens; the parser decides from position whether to treat them as
// syntax or as plain words.
var keywords = map[string]bool{
	"let": true, "if": true, "else": true, "while": true,
	"for": true, "in": true, "fn": true, "end": true,
}

// IsKeyword reports whether s is a reserved word.
func IsKeyword(s string) bool { return keywords[s] }

// Keywords returns all reserved words, sorted.
func Keywords() []string {
	words := make([]string, 0, len(keywords))
	for w := range keywords {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
