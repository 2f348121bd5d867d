package eval

import (
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"src.mar.sh/pkg/eval/errs"
	"src.mar.sh/pkg/glob"
	"src.mar.sh/pkg/must"
	"src.mar.sh/pkg/parse"
)

// A piece is a fragment of a word under construction.
type piece struct {
	text string
	// wild marks a glob metacharacter. Only wildcards written literally in
	// the source glob; text substituted from variables never does.
	wild bool
	// fromQuote marks text that came from a quoted segment. A word with no
	// quoted piece and empty text is dropped rather than passed as an empty
	// argument.
	fromQuote bool
}

type word []piece

func (w word) text() string {
	var sb strings.Builder
	for _, p := range w {
		sb.WriteString(p.text)
	}
	return sb.String()
}

func (w word) hasWild() bool {
	for _, p := range w {
		if p.wild {
			return true
		}
	}
	return false
}

func (w word) hasQuote() bool {
	for _, p := range w {
		if p.fromQuote {
			return true
		}
	}
	return false
}

// altState is one alternative of a word template being expanded: the words
// already completed by array splices, and the still-open last word. Brace
// groups multiply alternatives.
type altState struct {
	words []word
	cur   word
}

func (a *altState) addPiece(p piece) {
	a.cur = append(append(word{}, a.cur...), p)
}

// splice closes the open word around a list of elements: the first element
// glues to the open word, middle elements become words of their own, and the
// last element reopens the word for subsequent segments.
func (a *altState) splice(elems []string, fromQuote bool) {
	if len(elems) == 0 {
		return
	}
	a.addPiece(piece{text: elems[0], fromQuote: fromQuote})
	if len(elems) == 1 {
		return
	}
	a.words = append(a.words, a.cur)
	for _, e := range elems[1 : len(elems)-1] {
		a.words = append(a.words, word{{text: e, fromQuote: fromQuote}})
	}
	a.cur = word{{text: elems[len(elems)-1], fromQuote: fromQuote}}
}

// expandCompound expands one word template into zero or more words. The
// second return value reports whether the result went through an array
// splice, a brace group or a glob, i.e. whether it is array-shaped even when
// it happens to contain exactly one word.
func (fm *Frame) expandCompound(c *parse.Compound) ([]string, bool, error) {
	alts, arrayish, err := fm.expandSegs(c.Segments)
	if err != nil {
		return nil, false, err
	}

	var out []string
	for _, alt := range alts {
		for _, w := range append(append([]word{}, alt.words...), alt.cur) {
			if w.hasWild() {
				arrayish = true
				out = append(out, globWord(w)...)
				continue
			}
			text := w.text()
			if text == "" && !w.hasQuote() {
				// Empty unquoted expansion contributes no argument.
				continue
			}
			out = append(out, text)
		}
	}
	return out, arrayish, nil
}

// expandSegs expands a segment list into alternatives. Globbing is not yet
// applied; wildcards stay as marked pieces. The second return value reports
// whether an array splice, an unquoted command substitution or a brace group
// took part in the expansion.
func (fm *Frame) expandSegs(segs []parse.Segment) ([]altState, bool, error) {
	alts := []altState{{}}
	arrayish := false
	for _, seg := range segs {
		switch seg := seg.(type) {
		case *parse.Literal:
			for i := range alts {
				alts[i].addPiece(piece{text: seg.Text, fromQuote: seg.Quoted})
			}
		case *parse.Wildcard:
			for i := range alts {
				alts[i].addPiece(piece{text: string(seg.Kind), wild: true})
			}
		case *parse.VarRef:
			v, err := fm.resolveVar(seg)
			if err != nil {
				return nil, false, err
			}
			if seg.Quoted || v.Kind() == ScalarKind {
				p := piece{text: v.Scalar(), fromQuote: seg.Quoted}
				for i := range alts {
					alts[i].addPiece(p)
				}
			} else {
				arrayish = true
				for i := range alts {
					alts[i].splice(v.Elems(), false)
				}
			}
		case *parse.CmdSubst:
			output, err := fm.captureOutput(seg)
			if err != nil {
				return nil, false, err
			}
			arrayish = true
			fields := strings.Fields(output)
			for i := range alts {
				alts[i].splice(fields, false)
			}
		case *parse.ArithSubst:
			n, err := fm.evalArith(seg.Expr)
			if err != nil {
				return nil, false, err
			}
			p := piece{text: strconv.Itoa(n), fromQuote: true}
			for i := range alts {
				alts[i].addPiece(p)
			}
		case *parse.Braced:
			arrayish = true
			var next []altState
			for _, a := range alts {
				for _, altCompound := range seg.Alts {
					sub, subArrayish, err := fm.expandSegs(altCompound.Segments)
					if err != nil {
						return nil, false, err
					}
					arrayish = arrayish || subArrayish
					for _, s := range sub {
						next = append(next, mergeAlt(a, s))
					}
				}
			}
			alts = next
		}
	}
	return alts, arrayish, nil
}

// mergeAlt glues the words of b after the open word of a.
func mergeAlt(a, b altState) altState {
	merged := altState{words: append([]word{}, a.words...)}
	if len(b.words) == 0 {
		merged.cur = append(append(word{}, a.cur...), b.cur...)
		return merged
	}
	merged.words = append(merged.words, append(append(word{}, a.cur...), b.words[0]...))
	merged.words = append(merged.words, b.words[1:]...)
	merged.cur = append(word{}, b.cur...)
	return merged
}

// globWord builds a glob pattern from a word and returns the matching
// filenames. A pattern with no match expands to no words.
func globWord(w word) []string {
	var segs []glob.Segment
	addLiteral := func(s string) {
		for s != "" {
			i := strings.IndexByte(s, '/')
			if i == -1 {
				segs = append(segs, glob.Literal{Data: s})
				return
			}
			if i > 0 {
				segs = append(segs, glob.Literal{Data: s[:i]})
			}
			if len(segs) == 0 || !glob.IsSlash(segs[len(segs)-1]) {
				segs = append(segs, glob.Slash{})
			}
			s = s[i+1:]
		}
	}
	for _, p := range w {
		if p.wild {
			if p.text == "?" {
				segs = append(segs, glob.Wild{Type: glob.Question})
			} else {
				segs = append(segs, glob.Wild{Type: glob.Star})
			}
		} else {
			addLiteral(p.text)
		}
	}
	names := []string{}
	glob.Pattern{Segments: segs}.Glob(func(name string) bool {
		names = append(names, name)
		return true
	})
	return names
}

// resolveVar resolves a variable reference, applying its slice suffix.
func (fm *Frame) resolveVar(ref *parse.VarRef) (Value, error) {
	v, err := fm.lookupVar(ref.Name, ref)
	if err != nil {
		return Value{}, err
	}
	if ref.Slice == nil {
		return v, nil
	}
	if v.Kind() != ScalarKind {
		return Value{}, fm.errorp(ref, errs.BadValue{
			What: "$" + ref.Name, Valid: "scalar", Actual: "array"})
	}
	start, hasStart, err := fm.resolveIndex(ref.Slice.Start, ref.Slice)
	if err != nil {
		return Value{}, err
	}
	end, hasEnd, err := fm.resolveIndex(ref.Slice.End, ref.Slice)
	if err != nil {
		return Value{}, err
	}
	return sliceValue(v, start, hasStart, end, hasEnd), nil
}

// lookupVar reads a variable, handling the reserved names.
func (fm *Frame) lookupVar(name string, r parse.Node) (Value, error) {
	if name == "status" {
		return MakeScalar(strconv.Itoa(fm.Evaler.status)), nil
	}
	if v, ok := fm.local.Get(name); ok {
		return v, nil
	}
	if fm.Evaler.LenientVars {
		return MakeScalar(""), nil
	}
	return Value{}, fm.errorp(r, errs.UndefinedVariable{Name: name})
}

// resolveIndex resolves one bound of a slice suffix. An empty bound is
// reported as absent. A bound is either an integer literal or a $name
// referring to a scalar holding an integer.
func (fm *Frame) resolveIndex(raw string, r parse.Node) (int, bool, error) {
	if raw == "" {
		return 0, false, nil
	}
	s := raw
	if strings.HasPrefix(s, "$") {
		v, err := fm.lookupVar(s[1:], r)
		if err != nil {
			return 0, false, err
		}
		if v.Kind() != ScalarKind {
			return 0, false, fm.errorp(r, errs.MalformedSlice{Index: raw})
		}
		s = v.Scalar()
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, fm.errorp(r, errs.MalformedSlice{Index: raw})
	}
	return n, true, nil
}

// sliceValue takes the sub-range of a scalar's codepoints. Bounds are
// clamped, so slicing is total: any pair of indices yields a value.
func sliceValue(v Value, start int, hasStart bool, end int, hasEnd bool) Value {
	runes := []rune(v.Scalar())
	lo, hi := clampBounds(len(runes), start, hasStart, end, hasEnd)
	return MakeScalar(string(runes[lo:hi]))
}

func clampBounds(n, start int, hasStart bool, end int, hasEnd bool) (int, int) {
	lo, hi := 0, n
	if hasStart {
		lo = start
	}
	if hasEnd {
		hi = end
	}
	if lo < 0 {
		lo = 0
	}
	if lo > n {
		lo = n
	}
	if hi < lo {
		hi = lo
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// captureOutput evaluates the body of a command substitution with its output
// connected to a pipe, and collects everything written. Trailing newlines are
// stripped.
func (fm *Frame) captureOutput(subst *parse.CmdSubst) (string, error) {
	r, w := must.Pipe()
	var sb strings.Builder
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		io.Copy(&sb, r)
		r.Close()
	}()

	subFm := fm.fork([3]*os.File{fm.ports[0], w, fm.ports[2]})
	err := subFm.evalChunk(subst.Body)
	w.Close()
	wg.Wait()
	if err != nil {
		return "", err
	}
	return strings.TrimRight(sb.String(), "\n"), nil
}

// expandWords expands a sequence of word templates into an argument list.
func (fm *Frame) expandWords(cs []*parse.Compound) ([]string, error) {
	var out []string
	for _, c := range cs {
		words, _, err := fm.expandCompound(c)
		if err != nil {
			return nil, err
		}
		out = append(out, words...)
	}
	return out, nil
}

// expandRHS expands the right-hand side of an assignment into a value. A
// single plain word makes a scalar; everything else makes an array.
func (fm *Frame) expandRHS(cs []*parse.Compound) (Value, error) {
	if len(cs) == 0 {
		return MakeScalar(""), nil
	}
	var out []string
	arrayish := len(cs) > 1
	for _, c := range cs {
		words, wordsArrayish, err := fm.expandCompound(c)
		if err != nil {
			return Value{}, err
		}
		arrayish = arrayish || wordsArrayish
		out = append(out, words...)
	}
	if !arrayish && len(out) == 1 {
		return MakeScalar(out[0]), nil
	}
	return MakeArray(out), nil
}

// expandOne expands a word template that must produce exactly one word, such
// as a redirection target.
func (fm *Frame) expandOne(c *parse.Compound, what string) (string, error) {
	words, _, err := fm.expandCompound(c)
	if err != nil {
		return "", err
	}
	if len(words) != 1 {
		return "", fm.errorp(c, errs.ArityMismatch{
			What: what, ValidLow: 1, ValidHigh: 1, Actual: len(words)})
	}
	return words[0], nil
}
