// Package glob implements globbing for marsh.
package glob

import (
	"os"
	"unicode/utf8"
)

// Glob returns a list of file names satisfying the given pattern.
func Glob(p string, cb func(string) bool) bool {
	return Parse(p).Glob(cb)
}

// Glob calls cb on each filename matching the Pattern, in lexicographic
// order within each directory. If cb returns false, globbing is interrupted,
// and Glob returns false. Otherwise it returns true.
func (p Pattern) Glob(cb func(string) bool) bool {
	segs := p.Segments
	dir := ""
	if len(segs) > 0 && IsSlash(segs[0]) {
		segs = segs[1:]
		dir = "/"
	}
	return glob(segs, dir, cb)
}

// glob finds all filenames matching segs in dir and calls cb on each.
func glob(segs []Segment, dir string, cb func(string) bool) bool {
	// Consume leading non-wildcard path elements by following the path. This
	// is required for "." and ".." to be usable as path elements, as they do
	// not appear in directory listings.
	for len(segs) > 1 && IsLiteral(segs[0]) && IsSlash(segs[1]) {
		elem := segs[0].(Literal).Data
		segs = segs[2:]
		dir += elem + "/"
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return true
		}
	}

	if len(segs) == 0 {
		return cb(dir)
	} else if len(segs) == 1 && IsLiteral(segs[0]) {
		path := dir + segs[0].(Literal).Data
		if _, err := os.Stat(path); err == nil {
			return cb(path)
		}
		return true
	}

	entries, err := readDir(dir)
	if err != nil {
		// A directory that cannot be listed contributes no matches.
		return true
	}

	// Find the first slash. The part before it matches one path element; the
	// part after is matched recursively in each matching subdirectory.
	slashIdx := -1
	for i, seg := range segs {
		if IsSlash(seg) {
			slashIdx = i
			break
		}
	}

	if slashIdx >= 0 {
		first, rest := segs[:slashIdx], segs[slashIdx+1:]
		for _, entry := range entries {
			name := entry.Name()
			if matchElement(first, name) && entry.IsDir() {
				if !glob(rest, dir+name+"/", cb) {
					return false
				}
			}
		}
		return true
	}

	for _, entry := range entries {
		name := entry.Name()
		if matchElement(segs, name) {
			if !cb(dir + name) {
				return false
			}
		}
	}
	return true
}

// readDir is os.ReadDir, treating "" as ".". Results are sorted by filename,
// which makes glob results deterministic.
func readDir(dir string) ([]os.DirEntry, error) {
	if dir == "" {
		dir = "."
	}
	return os.ReadDir(dir)
}

// matchElement matches one path element against segments, which contain no
// Slash segments.
func matchElement(segs []Segment, name string) bool {
	if len(segs) == 0 {
		return name == ""
	}
	// A name starting with "." only matches a leading wildcard when
	// MatchHidden is set.
	if len(name) > 0 && name[0] == '.' && IsWild(segs[0]) &&
		!segs[0].(Wild).MatchHidden {
		return false
	}
segs:
	for len(segs) > 0 {
		// Find a chunk: an optional leading Star followed by a run of
		// fixed-length segments (Literal and Question).
		var i int
		for i = 1; i < len(segs); i++ {
			if IsWild1(segs[i], Star) {
				break
			}
		}

		chunk := segs[:i]
		startsWithStar := IsWild1(chunk[0], Star)
		if startsWithStar {
			chunk = chunk[1:]
		}
		segs = segs[i:]

		// Match at the current position. If this is the last chunk, the
		// match must also exhaust the name.
		ok, rest := matchFixedLength(chunk, name)
		if ok && (rest == "" || len(segs) > 0) {
			name = rest
			continue
		}

		if startsWithStar {
			// Let the star consume one more codepoint at a time and retry
			// the fixed-length run after it.
			for i, r := range name {
				j := i + len(string(r))
				ok, rest := matchFixedLength(chunk, name[j:])
				if ok && (rest == "" || len(segs) > 0) {
					name = rest
					continue segs
				}
			}
		}
		return false
	}
	return name == ""
}

// matchFixedLength matches a run of fixed-length segments against a prefix
// of name. It returns whether the match succeeded, and if it did, the
// remaining part of name.
func matchFixedLength(segs []Segment, name string) (bool, string) {
	for _, seg := range segs {
		switch seg := seg.(type) {
		case Literal:
			n := len(seg.Data)
			if len(name) < n || name[:n] != seg.Data {
				return false, ""
			}
			name = name[n:]
		case Wild:
			if seg.Type != Question {
				panic("matchFixedLength given non-question wild segment")
			}
			if name == "" {
				return false, ""
			}
			_, n := utf8.DecodeRuneInString(name)
			name = name[n:]
		default:
			panic("matchFixedLength given slash segment")
		}
	}
	return true, name
}
