// Package parse implements parsing of marsh source code into an abstract
// syntax tree.
//
// Parsing is split into two passes. The lexer turns the source text into a
// stream of tokens, and the parser proper assembles the tokens into an AST of
// statements. Word templates are kept unexpanded: variable references, slice
// suffixes, substitutions, wildcards and brace groups stay structured in the
// tree and are only resolved against a scope at evaluation time.
package parse

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"src.mar.sh/pkg/diag"
)

// Source describes a piece of source code.
type Source struct {
	Name   string
	Code   string
	IsFile bool
}

// Parse parses the given source into a Chunk. If the error is not nil, it is
// a *diag.Error (of type "lex error" or "parse error") or a *MultiError.
func Parse(src Source) (*Chunk, error) {
	tokens, err := Tokenize(src.Name, src.Code)
	if err != nil {
		return nil, err
	}
	ps := &parser{src: src, tokens: tokens}
	n := ps.chunk(nil)
	ps.done()
	return n, ps.assembleError()
}

// parser maintains the mutable state of parsing: a cursor into the token
// stream and accumulated errors.
type parser struct {
	src     Source
	tokens  []Token
	pos     int
	lastEnd int
	errors  []*diag.Error
}

func (ps *parser) cur() Token {
	if ps.pos >= len(ps.tokens) {
		return Token{Kind: EOF, Ranging: diag.PointRanging(len(ps.src.Code))}
	}
	return ps.tokens[ps.pos]
}

func (ps *parser) next() Token {
	tok := ps.cur()
	if ps.pos < len(ps.tokens) {
		ps.pos++
	}
	if tok.Kind != Space {
		ps.lastEnd = tok.To
	}
	return tok
}

func (ps *parser) skipSpaces() {
	for ps.cur().Kind == Space {
		ps.next()
	}
}

// skipSeps skips spaces, newlines and semicolons. It returns the number of
// statement separators skipped.
func (ps *parser) skipSeps() int {
	nseps := 0
	for {
		switch ps.cur().Kind {
		case Space:
			ps.next()
		case EOL, Semicolon:
			ps.next()
			nseps++
		default:
			return nseps
		}
	}
}

func (ps *parser) errorf(r diag.Ranger, format string, args ...any) {
	ps.errors = append(ps.errors, &diag.Error{
		Type:    "parse error",
		Message: fmt.Sprintf(format, args...),
		Context: *diag.NewContext(ps.src.Name, ps.src.Code, r),
	})
}

func (ps *parser) assembleError() error {
	switch len(ps.errors) {
	case 0:
		return nil
	case 1:
		return ps.errors[0]
	default:
		return &MultiError{ps.errors}
	}
}

// done checks that the whole token stream has been consumed.
func (ps *parser) done() {
	if tok := ps.cur(); tok.Kind != EOF {
		ps.errorf(tok, "unexpected %s", tok.Kind)
	}
}

// setRange sets the source range of a freshly parsed node, ending at the last
// consumed token.
func (ps *parser) setRange(n Node, from int) {
	to := ps.lastEnd
	if to < from {
		to = from
	}
	nn := n.n()
	nn.Ranging = diag.Ranging{From: from, To: to}
	nn.sourceText = ps.src.Code[from:to]
}

// atStopKeyword reports whether the current token is one of the keywords that
// close the enclosing block.
func (ps *parser) atStopKeyword(stop map[string]bool) bool {
	tok := ps.cur()
	return tok.Kind == Keyword && stop[tok.Text]
}

// Chunk = { sep } { Statement { sep } }
//
// A chunk stops at EOF or at any keyword in stop appearing in statement
// position.
func (ps *parser) chunk(stop map[string]bool) *Chunk {
	n := &Chunk{}
	from := ps.cur().From
	ps.skipSeps()
	for {
		if ps.cur().Kind == EOF || ps.atStopKeyword(stop) {
			break
		}
		st := ps.statement(stop)
		if st != nil {
			n.Statements = append(n.Statements, st)
		} else {
			ps.syncStatement(stop)
		}
		if ps.skipSeps() == 0 {
			break
		}
	}
	ps.setRange(n, from)
	return n
}

// syncStatement skips tokens until a statement boundary, so that parsing can
// continue after an error.
func (ps *parser) syncStatement(stop map[string]bool) {
	for {
		switch ps.cur().Kind {
		case EOF, EOL, Semicolon:
			return
		case Keyword:
			if stop[ps.cur().Text] {
				return
			}
		}
		ps.next()
	}
}

// Statement = LetStmt | IfStmt | WhileStmt | ForStmt | FnStmt | Pipeline
func (ps *parser) statement(stop map[string]bool) Statement {
	tok := ps.cur()
	if tok.Kind == Keyword {
		switch tok.Text {
		case "let":
			return ps.letStmt()
		case "if":
			return ps.ifStmt(stop)
		case "while":
			return ps.whileStmt()
		case "for":
			return ps.forStmt()
		case "fn":
			return ps.fnStmt()
		default:
			ps.errorf(tok, "unexpected keyword '%s'", tok.Text)
			return nil
		}
	}
	if !ps.startsCompound() {
		ps.errorf(tok, "%s", newError("unexpected "+tok.Kind.String(), "form"))
		return nil
	}
	return ps.pipeline()
}

// LetStmt = 'let' Name ( '=' | '++=' | '::=' ) { Compound }
func (ps *parser) letStmt() Statement {
	n := &LetStmt{}
	from := ps.next().From // 'let'
	ps.skipSpaces()

	name := ps.cur()
	if name.Kind != Bareword {
		ps.errorf(name, "%s", newError("", "variable name"))
		return nil
	}
	ps.next()
	n.Name = name.Text
	n.NameRange = name.Ranging

	ps.skipSpaces()
	switch op := ps.cur(); op.Kind {
	case Assign:
		n.Op = Set
	case AppendAssign:
		n.Op = AppendConcat
	case PrependAssign:
		n.Op = PrependConcat
	default:
		ps.errorf(op, "%s", newError("", "'='", "'++='", "'::='"))
		return nil
	}
	ps.next()

	for {
		ps.skipSpaces()
		if !ps.startsCompound() {
			break
		}
		n.RHS = append(n.RHS, ps.compound(false))
	}
	ps.setRange(n, from)
	return n
}

// Pipeline = Form { '|' Form } [ '&' ]
func (ps *parser) pipeline() *Pipeline {
	n := &Pipeline{}
	from := ps.cur().From
	n.Forms = append(n.Forms, ps.form())
	for {
		ps.skipSpaces()
		if ps.cur().Kind != Pipe {
			break
		}
		ps.next()
		ps.skipSpacesAndNewlines()
		if !ps.startsCompound() {
			ps.errorf(ps.cur(), "%s", newError("", "form"))
			break
		}
		n.Forms = append(n.Forms, ps.form())
	}
	ps.skipSpaces()
	if ps.cur().Kind == Ampersand {
		ps.next()
		n.Background = true
	}
	ps.setRange(n, from)
	return n
}

func (ps *parser) skipSpacesAndNewlines() {
	for k := ps.cur().Kind; k == Space || k == EOL; k = ps.cur().Kind {
		ps.next()
	}
}

// Form = Compound { Compound | Redir }
//
// Redirections bind to the form being parsed, i.e. the nearest preceding
// command of the pipeline.
func (ps *parser) form() *Form {
	n := &Form{}
	from := ps.cur().From
	for {
		ps.skipSpaces()
		switch tok := ps.cur(); {
		case ps.startsCompound():
			n.Words = append(n.Words, ps.compound(false))
		case tok.Kind == Greater || tok.Kind == GreaterGreater || tok.Kind == Less:
			n.Redirs = append(n.Redirs, ps.redir())
		default:
			ps.setRange(n, from)
			return n
		}
	}
}

// Redir = ( '>' | '>>' | '<' ) Compound
func (ps *parser) redir() *Redir {
	n := &Redir{}
	tok := ps.next()
	switch tok.Kind {
	case Greater:
		n.Mode = Write
	case GreaterGreater:
		n.Mode = Append
	case Less:
		n.Mode = Read
	}
	ps.skipSpaces()
	if !ps.startsCompound() {
		ps.errorf(ps.cur(), "%s", newError("", "filename"))
	} else {
		n.Target = ps.compound(false)
	}
	ps.setRange(n, tok.From)
	return n
}

// IfStmt = 'if' Pipeline sep Chunk [ 'else' Chunk ] 'end'
func (ps *parser) ifStmt(stop map[string]bool) Statement {
	n := &IfStmt{}
	opening := ps.next() // 'if'
	ps.skipSpaces()
	if !ps.startsCompound() {
		ps.errorf(ps.cur(), "%s", newError("", "condition"))
		return nil
	}
	n.Cond = ps.pipeline()
	n.Then = ps.chunk(stopElseEnd)
	if ps.atStopKeyword(stopElse) {
		ps.next()
		n.Else = ps.chunk(stopEnd)
	}
	if !ps.expectEnd(opening) {
		return nil
	}
	ps.setRange(n, opening.From)
	return n
}

// WhileStmt = 'while' Pipeline sep Chunk 'end'
func (ps *parser) whileStmt() Statement {
	n := &WhileStmt{}
	opening := ps.next() // 'while'
	ps.skipSpaces()
	if !ps.startsCompound() {
		ps.errorf(ps.cur(), "%s", newError("", "condition"))
		return nil
	}
	n.Cond = ps.pipeline()
	n.Body = ps.chunk(stopEnd)
	if !ps.expectEnd(opening) {
		return nil
	}
	ps.setRange(n, opening.From)
	return n
}

// ForStmt = 'for' Name 'in' { Compound } sep Chunk 'end'
func (ps *parser) forStmt() Statement {
	n := &ForStmt{}
	opening := ps.next() // 'for'
	ps.skipSpaces()

	name := ps.cur()
	if name.Kind != Bareword {
		ps.errorf(name, "%s", newError("", "variable name"))
		return nil
	}
	ps.next()
	n.VarName = name.Text

	ps.skipSpaces()
	if in := ps.cur(); in.Kind != Keyword || in.Text != "in" {
		ps.errorf(in, "%s", newError("", "'in'"))
		return nil
	}
	ps.next()

	for {
		ps.skipSpaces()
		if !ps.startsCompound() {
			break
		}
		n.Values = append(n.Values, ps.compound(false))
	}
	n.Body = ps.chunk(stopEnd)
	if !ps.expectEnd(opening) {
		return nil
	}
	ps.setRange(n, opening.From)
	return n
}

// FnStmt = 'fn' Name '(' { Name } ')' sep Chunk 'end'
func (ps *parser) fnStmt() Statement {
	n := &FnStmt{}
	opening := ps.next() // 'fn'
	ps.skipSpaces()

	name := ps.cur()
	if name.Kind != Bareword {
		ps.errorf(name, "%s", newError("", "function name"))
		return nil
	}
	ps.next()
	n.Name = name.Text

	ps.skipSpaces()
	if lp := ps.cur(); lp.Kind != LParen {
		ps.errorf(lp, "%s", newError("", "'('"))
		return nil
	}
	ps.next()
	for {
		ps.skipSpaces()
		tok := ps.cur()
		if tok.Kind == Bareword {
			n.Params = append(n.Params, tok.Text)
			ps.next()
			continue
		}
		if tok.Kind == RParen {
			ps.next()
			break
		}
		ps.errorf(tok, "%s", newError("", "parameter name", "')'"))
		return nil
	}
	n.Body = ps.chunk(stopEnd)
	if !ps.expectEnd(opening) {
		return nil
	}
	ps.setRange(n, opening.From)
	return n
}

var (
	stopEnd     = map[string]bool{"end": true}
	stopElse    = map[string]bool{"else": true}
	stopElseEnd = map[string]bool{"else": true, "end": true}
)

// expectEnd consumes the 'end' keyword closing a block, or reports an error
// anchored at the opening keyword.
func (ps *parser) expectEnd(opening Token) bool {
	if ps.atStopKeyword(stopEnd) {
		ps.next()
		return true
	}
	ps.errorf(opening, "missing 'end' for '%s'", opening.Text)
	return false
}

// startsCompound reports whether the current token may start a word template.
// Keyword counts: keywords only carry syntactic meaning in statement and
// block-header position.
func (ps *parser) startsCompound() bool {
	switch ps.cur().Kind {
	case Bareword, Keyword, SingleQuoted, DoubleQuoted, Backquoted, Var, Arith,
		Star, Question, LBrace, Comma:
		return true
	}
	return false
}

// startsCompoundInBrace is like startsCompound for words inside a brace
// group, where ',' and '}' are delimiters instead of word pieces.
func (ps *parser) startsCompoundInBrace() bool {
	switch ps.cur().Kind {
	case Bareword, Keyword, SingleQuoted, DoubleQuoted, Backquoted, Var, Arith,
		Star, Question, LBrace:
		return true
	}
	return false
}

// Compound = Segment { Segment }
//
// Segments are joined by adjacency; a Space token always separates two
// compounds.
func (ps *parser) compound(inBrace bool) *Compound {
	n := &Compound{}
	from := ps.cur().From
	for {
		tok := ps.cur()
		switch tok.Kind {
		case Bareword, Keyword:
			// A keyword in word position is an ordinary word; "echo end"
			// passes the argument "end".
			ps.next()
			n.Segments = append(n.Segments,
				&Literal{node{tok.Ranging, tok.Text}, tok.Text, false})
		case Comma:
			if inBrace {
				ps.setRange(n, from)
				return n
			}
			ps.next()
			n.Segments = append(n.Segments,
				&Literal{node{tok.Ranging, ","}, ",", false})
		case SingleQuoted:
			ps.next()
			n.Segments = append(n.Segments,
				&Literal{node{tok.Ranging, tok.Text}, tok.Text, true})
		case DoubleQuoted:
			ps.next()
			n.Segments = append(n.Segments, ps.doubleQuoted(tok)...)
		case Backquoted:
			ps.next()
			n.Segments = append(n.Segments, ps.cmdSubst(tok))
		case Var:
			ps.next()
			n.Segments = append(n.Segments, ps.varRef(tok, false))
		case Arith:
			ps.next()
			n.Segments = append(n.Segments, ps.arithSubst(tok))
		case Star, Question:
			ps.next()
			kind := '*'
			if tok.Kind == Question {
				kind = '?'
			}
			n.Segments = append(n.Segments,
				&Wildcard{node{tok.Ranging, tok.Text}, kind})
		case LBrace:
			n.Segments = append(n.Segments, ps.braced())
		default:
			ps.setRange(n, from)
			return n
		}
	}
}

// varRef builds a VarRef segment from a Var token, attaching a slice suffix
// if one immediately follows.
func (ps *parser) varRef(tok Token, quoted bool) *VarRef {
	n := &VarRef{Name: tok.Text, Quoted: quoted}
	n.Ranging = tok.Ranging
	n.sourceText = ps.src.Code[tok.From:tok.To]
	if ps.cur().Kind == Slice {
		slice := ps.next()
		n.Slice = ps.sliceSuffix(slice.Text, slice.Ranging)
		n.To = slice.To
		n.sourceText = ps.src.Code[n.From:n.To]
	}
	return n
}

// sliceSuffix parses the interior of a slice suffix: optional start and end
// index expressions around '..'.
func (ps *parser) sliceSuffix(text string, r diag.Ranging) *SliceSuffix {
	n := &SliceSuffix{}
	n.Ranging = r
	n.sourceText = ps.src.Code[r.From:r.To]
	i := strings.Index(text, "..")
	if i == -1 {
		ps.errorf(r, "%s", newError("malformed slice", "'START..END'"))
		return n
	}
	n.Start = strings.TrimSpace(text[:i])
	n.End = strings.TrimSpace(text[i+2:])
	return n
}

// cmdSubst parses the interior of a backquoted token as a nested chunk.
func (ps *parser) cmdSubst(tok Token) *CmdSubst {
	n := &CmdSubst{}
	n.Ranging = tok.Ranging
	n.sourceText = ps.src.Code[tok.From:tok.To]
	n.Body = ps.subChunk(tok.Text, tok.From+1)
	return n
}

// subChunk parses a fragment of the source (the interior of a substitution)
// as a chunk. The base offset shifts all ranges so that they point into the
// enclosing source.
func (ps *parser) subChunk(text string, base int) *Chunk {
	tokens, err := Tokenize(ps.src.Name, text)
	if err != nil {
		lexErr := err.(*diag.Error)
		shifted := diag.Ranging{
			From: lexErr.Context.From + base,
			To:   lexErr.Context.To + base,
		}
		ps.errorf(shifted, "%s", lexErr.Message)
		return &Chunk{}
	}
	for i := range tokens {
		tokens[i].From += base
		tokens[i].To += base
	}
	sub := &parser{src: ps.src, tokens: tokens, lastEnd: base}
	chunk := sub.chunk(nil)
	sub.done()
	ps.errors = append(ps.errors, sub.errors...)
	return chunk
}

// braced parses a brace group {a,b,...}. The opening brace is current.
func (ps *parser) braced() *Braced {
	n := &Braced{}
	opening := ps.next() // '{'
	for {
		ps.skipSpaces()
		if ps.startsCompoundInBrace() {
			n.Alts = append(n.Alts, ps.compound(true))
		} else {
			// Empty alternative.
			alt := &Compound{}
			alt.Ranging = diag.PointRanging(ps.cur().From)
			n.Alts = append(n.Alts, alt)
		}
		ps.skipSpaces()
		switch tok := ps.cur(); tok.Kind {
		case Comma:
			ps.next()
		case RBrace:
			ps.next()
			ps.setRange(n, opening.From)
			return n
		default:
			ps.errorf(tok, "%s", newError("unexpected "+tok.Kind.String(), "','", "'}'"))
			ps.setRange(n, opening.From)
			return n
		}
	}
}

// doubleQuoted parses the interior of a double-quoted token into literal and
// variable reference segments. Escape sequences are resolved here.
func (ps *parser) doubleQuoted(tok Token) []Segment {
	var segs []Segment
	text := tok.Text
	base := tok.From + 1

	var lit strings.Builder
	litFrom := base
	flush := func(to int) {
		if lit.Len() > 0 {
			segs = append(segs, &Literal{
				node{diag.Ranging{From: litFrom, To: to}, lit.String()},
				lit.String(), true})
			lit.Reset()
		}
		litFrom = to
	}

	i := 0
	for i < len(text) {
		switch text[i] {
		case '\\':
			r, size, ok := unquoteEscape(text[i:])
			if !ok {
				ps.errorf(diag.Ranging{From: base + i, To: base + i + size},
					"invalid escape sequence")
			}
			lit.WriteRune(r)
			i += size
		case '$':
			nameLen := variableNameLen(text[i+1:])
			if nameLen == 0 {
				ps.errorf(diag.PointRanging(base+i),
					"'$' not followed by variable name")
				i++
				continue
			}
			flush(base + i)
			name := text[i+1 : i+1+nameLen]
			refFrom := base + i
			i += 1 + nameLen
			ref := &VarRef{Name: name, Quoted: true}
			ref.Ranging = diag.Ranging{From: refFrom, To: base + i}
			if i < len(text) && text[i] == '[' {
				j := strings.IndexByte(text[i:], ']')
				if j == -1 {
					ps.errorf(diag.PointRanging(base+i),
						"unterminated slice bracket")
					i = len(text)
				} else {
					ref.Slice = ps.sliceSuffix(text[i+1:i+j],
						diag.Ranging{From: base + i, To: base + i + j + 1})
					i += j + 1
					ref.To = base + i
				}
			}
			ref.sourceText = ps.src.Code[ref.From:ref.To]
			segs = append(segs, ref)
			litFrom = base + i
		default:
			_, size := utf8.DecodeRuneInString(text[i:])
			lit.WriteString(text[i : i+size])
			i += size
		}
	}
	flush(base + len(text))
	if len(segs) == 0 {
		// An empty double-quoted string still contributes an empty literal,
		// so that "" expands to an empty scalar rather than nothing.
		segs = append(segs, &Literal{
			node{tok.Ranging, ""}, "", true})
	}
	return segs
}

// unquoteEscape resolves one escape sequence at the start of s, which must
// begin with a backslash. It returns the resolved rune, the number of bytes
// consumed, and whether the sequence was valid.
func unquoteEscape(s string) (rune, int, bool) {
	if len(s) < 2 {
		return '\\', 1, false
	}
	switch s[1] {
	case '\\', '"', '$', '`', '\'':
		return rune(s[1]), 2, true
	case 'n':
		return '\n', 2, true
	case 't':
		return '\t', 2, true
	case 'r':
		return '\r', 2, true
	default:
		r, size := utf8.DecodeRuneInString(s[1:])
		return r, 1 + size, false
	}
}

// variableNameLen returns the length of the longest prefix of s that is a
// valid variable name.
func variableNameLen(s string) int {
	for i, r := range s {
		if !allowedInVariableName(r) {
			return i
		}
	}
	return len(s)
}
