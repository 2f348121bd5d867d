// The lexer is derived from the state-machine design of the stdlib package
// text/template/parse.

package parse

import (
	"strings"
	"unicode/utf8"

	"src.mar.sh/pkg/diag"
)

const eof rune = -1

// stateFn represents the state of the scanner as a function that returns the
// next state.
type stateFn func(*Lexer) stateFn

// Lexer holds the state of the scanner.
type Lexer struct {
	src      string     // the string being scanned
	state    stateFn    // the next lexing function to enter
	pos      int        // current position in the input
	start    int        // start position of the pending token
	width    int        // width of the last rune read from input
	lastKind TokenKind  // kind of the last emitted non-space token
	tokens   chan Token // channel of scanned tokens
}

// Lex creates a new scanner for the input string. Tokens are delivered
// lazily on the channel returned by NextToken.
func Lex(src string) *Lexer {
	l := &Lexer{src: src, lastKind: EOL, tokens: make(chan Token)}
	go l.run()
	return l
}

// NextToken returns the next token from the input. After an Error or EOF
// token is returned, all subsequent calls return EOF.
func (l *Lexer) NextToken() Token {
	tok, ok := <-l.tokens
	if !ok {
		return Token{Kind: EOF, Ranging: diag.PointRanging(len(l.src))}
	}
	return tok
}

// Tokenize scans the whole input eagerly. If the input is malformed, the
// error is a *diag.Error with type "lex error", and the returned tokens
// contain everything scanned up to the point of the error.
func Tokenize(srcName, src string) ([]Token, error) {
	l := Lex(src)
	var tokens []Token
	for {
		tok := l.NextToken()
		if tok.Kind == Error {
			return tokens, &diag.Error{
				Type:    "lex error",
				Message: tok.Text,
				Context: *diag.NewContext(srcName, src, tok),
			}
		}
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens, nil
		}
	}
}

// run runs the state machine for the Lexer.
func (l *Lexer) run() {
	for l.state = lexAny; l.state != nil; {
		l.state = l.state(l)
	}
	close(l.tokens)
}

// next returns the next rune in the input.
func (l *Lexer) next() rune {
	if l.pos >= len(l.src) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.src[l.pos:])
	l.width = w
	l.pos += w
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *Lexer) backup() {
	l.pos -= l.width
}

// emit passes a token back to the client. Quoted tokens strip their
// delimiters from the text but keep them in the range.
func (l *Lexer) emit(k TokenKind) {
	text := l.src[l.start:l.pos]
	switch k {
	case SingleQuoted, DoubleQuoted, Backquoted:
		text = text[1 : len(text)-1]
	case Var:
		text = text[1:]
	case Slice:
		text = text[1 : len(text)-1]
	case Arith:
		text = text[3 : len(text)-2]
	}
	l.tokens <- Token{k, text, diag.Ranging{From: l.start, To: l.pos}}
	if k != Space {
		l.lastKind = k
	}
	l.start = l.pos
}

// errorAt emits an Error token whose range points at the opener position, and
// terminates the scan.
func (l *Lexer) errorAt(opener int, msg string) stateFn {
	l.tokens <- Token{Error, msg,
		diag.Ranging{From: opener, To: opener + 1}}
	return nil
}

// atWordStart reports whether the scanner is at the start of a word, i.e. the
// last token emitted was a separator of some kind.
func (l *Lexer) atWordStart() bool {
	switch l.lastKind {
	case EOL, Semicolon, Pipe, Ampersand, Less, Greater, GreaterGreater,
		Assign, AppendAssign, PrependAssign, LBrace, Comma, LParen:
		return true
	}
	// Space tokens do not update lastKind, so check the preceding byte too.
	return l.start > 0 && isSpace(rune(l.src[l.start-1]))
}

// lexAny is the sole entry state; it dispatches on the first rune.
func lexAny(l *Lexer) stateFn {
	switch r := l.next(); r {
	case eof:
		l.emit(EOF)
		return nil
	case '\n':
		l.emit(EOL)
		return lexAny
	case ';':
		l.emit(Semicolon)
		return lexAny
	case '|':
		l.emit(Pipe)
		return lexAny
	case '&':
		l.emit(Ampersand)
		return lexAny
	case '>':
		if l.peek() == '>' {
			l.next()
			l.emit(GreaterGreater)
		} else {
			l.emit(Greater)
		}
		return lexAny
	case '<':
		l.emit(Less)
		return lexAny
	case '(':
		l.emit(LParen)
		return lexAny
	case ')':
		l.emit(RParen)
		return lexAny
	case '{':
		l.emit(LBrace)
		return lexAny
	case '}':
		l.emit(RBrace)
		return lexAny
	case ',':
		l.emit(Comma)
		return lexAny
	case '*':
		l.emit(Star)
		return lexAny
	case '?':
		l.emit(Question)
		return lexAny
	case '\'':
		return lexSingleQuoted
	case '"':
		return lexDoubleQuoted
	case '`':
		return lexBackquoted
	case '$':
		return lexDollar
	case '#':
		if l.atWordStart() {
			return lexComment
		}
		return lexBare
	default:
		if isSpace(r) {
			return lexSpace
		}
		return lexBare
	}
}

// lexSpace scans a run of inline space characters. One space has already been
// seen.
func lexSpace(l *Lexer) stateFn {
	for isSpace(l.peek()) {
		l.next()
	}
	l.emit(Space)
	return lexAny
}

// lexComment scans a comment, which runs until a newline or eof. The leading
// hash has already been seen. The comment is emitted as a Space token so that
// it still separates words.
func lexComment(l *Lexer) stateFn {
	for {
		switch l.next() {
		case '\n', eof:
			l.backup()
			l.emit(Space)
			return lexAny
		}
	}
}

// lexBare scans a bareword. The first rune has already been seen. A bareword
// that is exactly an assignment operator or a reserved word is emitted with
// the corresponding kind instead.
func lexBare(l *Lexer) stateFn {
	for !terminatesBare(l.peek()) {
		l.next()
	}
	switch text := l.src[l.start:l.pos]; {
	case text == "=":
		l.emit(Assign)
	case text == "++=":
		l.emit(AppendAssign)
	case text == "::=":
		l.emit(PrependAssign)
	case IsKeyword(text):
		l.emit(Keyword)
	default:
		l.emit(Bareword)
	}
	return lexAny
}

// terminatesBare determines whether r terminates a bareword.
func terminatesBare(r rune) bool {
	switch r {
	case '\n', ';', '|', '&', '<', '>', '(', ')', '{', '}', ',',
		'*', '?', '$', '`', '\'', '"', eof:
		return true
	}
	return isSpace(r)
}

// lexSingleQuoted scans a single-quoted string. No expansion markers are
// recognized inside. The opening quote has already been seen.
func lexSingleQuoted(l *Lexer) stateFn {
	opener := l.start
	for {
		switch l.next() {
		case eof:
			return l.errorAt(opener, "unterminated single-quoted string")
		case '\'':
			l.emit(SingleQuoted)
			return lexAny
		}
	}
}

// lexDoubleQuoted scans a double-quoted string. The interior is emitted raw;
// the parser resolves escapes and expansion markers. The opening quote has
// already been seen.
func lexDoubleQuoted(l *Lexer) stateFn {
	opener := l.start
	for {
		switch l.next() {
		case eof:
			return l.errorAt(opener, "unterminated double-quoted string")
		case '\\':
			if l.next() == eof {
				return l.errorAt(opener, "unterminated double-quoted string")
			}
		case '"':
			l.emit(DoubleQuoted)
			return lexAny
		}
	}
}

// lexBackquoted scans a backquoted command substitution. The opening quote
// has already been seen.
func lexBackquoted(l *Lexer) stateFn {
	opener := l.start
	for {
		switch l.next() {
		case eof:
			return l.errorAt(opener, "unterminated command substitution")
		case '`':
			l.emit(Backquoted)
			return lexAny
		}
	}
}

// lexDollar scans a variable reference, arithmetic substitution, or slice
// suffix. The dollar sign has already been seen.
func lexDollar(l *Lexer) stateFn {
	opener := l.start
	if strings.HasPrefix(l.src[l.pos:], "((") {
		l.next()
		l.next()
		return lexArith(l, opener)
	}
	for allowedInVariableName(l.peek()) {
		l.next()
	}
	if l.pos == l.start+1 {
		return l.errorAt(opener, "'$' not followed by variable name")
	}
	l.emit(Var)
	if l.peek() == '[' {
		return lexSlice
	}
	return lexAny
}

// lexSlice scans a slice suffix. It is entered right before the opening
// bracket, which immediately follows a variable reference.
func lexSlice(l *Lexer) stateFn {
	opener := l.pos
	l.next()
	for {
		switch l.next() {
		case eof, '\n':
			return l.errorAt(opener, "unterminated slice bracket")
		case ']':
			l.emit(Slice)
			return lexAny
		}
	}
}

// lexArith scans an arithmetic substitution $((...)), entered after the
// opening delimiter has been consumed.
func lexArith(l *Lexer, opener int) stateFn {
	for {
		switch l.next() {
		case eof:
			return l.errorAt(opener, "unterminated arithmetic substitution")
		case ')':
			if l.peek() == ')' {
				l.next()
				l.emit(Arith)
				return lexAny
			}
		}
	}
}

// allowedInVariableName reports whether r may appear in a variable name.
func allowedInVariableName(r rune) bool {
	return r == '_' || '0' <= r && r <= '9' ||
		'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

// isSpace reports whether r is an inline space character.
func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
