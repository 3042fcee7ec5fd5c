// Package resolver maps the alphabetic identifiers a frontend scans out of
// source text to catalogue.Primitive sequences. It runs once at parse/
// compile time; the runtime never consults it.
package resolver

import (
	"strings"
	"unicode"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/sputnick1124/uiua/internal/catalogue"
)

// hardAliases is the stable set of fixed short aliases, checked before
// any general name-matching logic.
var hardAliases = map[string]catalogue.Primitive{
	"id":  catalogue.Identity,
	"ga":  catalogue.Gap,
	"pi":  catalogue.Pi,
	"ran": catalogue.Range,
	"tra": catalogue.Transpose,
	"par": catalogue.Partition,
}

// Span is a half-open byte range within the scanned source, attached to
// each resolved primitive occurrence.
type Span struct {
	Start, End int
}

// Resolved pairs a primitive with the source span its name occupied.
type Resolved struct {
	Prim catalogue.Primitive
	Span Span
}

// HardAliasNames lists the fixed short aliases, sorted, for docs and
// CLI introspection.
func HardAliasNames() []string {
	names := maps.Keys(hardAliases)
	slices.Sort(names)
	return names
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// FromFormatName resolves a single lowercase identifier to a primitive:
// a hard alias, an exact non-deprecated name, or a unique prefix of
// length 3 or more of the name of a primitive with a non-ASCII glyph.
func FromFormatName(s string) (catalogue.Primitive, bool) {
	if hasUpper(s) || len(s) < 2 {
		return 0, false
	}
	if p, ok := hardAliases[s]; ok {
		return p, true
	}
	for _, p := range catalogue.NonDeprecated() {
		if p.Name() == s {
			return p, true
		}
	}
	if len(s) < 3 {
		return 0, false
	}
	var (
		match     catalogue.Primitive
		found     bool
		ambiguous bool
		exactOnly catalogue.Primitive
		exactOk   bool
	)
	for _, p := range catalogue.NonDeprecated() {
		if g, hasGlyph := p.Glyph(); !hasGlyph || g < 0x80 {
			continue
		}
		if !strings.HasPrefix(p.Name(), s) {
			continue
		}
		if p.Name() == s {
			if exactOk {
				// Ambiguous exact match; spec treats name() as globally
				// unique so this cannot occur, but guard anyway.
				return 0, false
			}
			exactOnly, exactOk = p, true
			continue
		}
		if found {
			// Multiple prefix matches: fall back to requiring a unique
			// exact-name match among them.
			ambiguous = true
			continue
		}
		match, found = p, true
	}
	if exactOk {
		return exactOnly, true
	}
	if found && !ambiguous {
		return match, true
	}
	return 0, false
}

// planetMap is the character set accepted by the planet-notation rule.
var planetMap = map[rune]catalogue.Primitive{
	'g': catalogue.Gap,
	'd': catalogue.Dip,
}

// planetDecode attempts to decompose tok as a planet-notation word: an
// optional leading 'f', an optional trailing 'i' or 'p', with every
// remaining character in {g, d}.
func planetDecode(tok string) ([]catalogue.Primitive, bool) {
	if tok == "" {
		return nil, false
	}
	r := []rune(tok)
	i, j := 0, len(r)
	var out []catalogue.Primitive
	if r[i] == 'f' {
		out = append(out, catalogue.Fork)
		i++
	}
	var tail catalogue.Primitive
	hasTail := false
	if j > i && (r[j-1] == 'i' || r[j-1] == 'p') {
		if r[j-1] == 'i' {
			tail = catalogue.Identity
		} else {
			tail = catalogue.Pop
		}
		hasTail = true
		j--
	}
	if i >= j && !hasTail && len(out) == 0 {
		return nil, false
	}
	for ; i < j; i++ {
		p, ok := planetMap[r[i]]
		if !ok {
			return nil, false
		}
		out = append(out, p)
	}
	if hasTail {
		out = append(out, tail)
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// FromFormatNameMulti implements the greedy-longest forward scan, falling
// back to a backward scan when the forward scan cannot consume the
// whole string.
func FromFormatNameMulti(s string) ([]Resolved, bool) {
	if res, ok := scanForward(s); ok {
		return res, true
	}
	return scanBackward(s)
}

func scanForward(s string) ([]Resolved, bool) {
	var out []Resolved
	cursor := 0
	n := len(s)
	for cursor < n {
		advanced := false
		for length := n - cursor; length >= 2; length-- {
			tok := s[cursor : cursor+length]
			if p, ok := FromFormatName(tok); ok {
				out = append(out, Resolved{Prim: p, Span: Span{cursor, cursor + length}})
				cursor += length
				advanced = true
				break
			}
			if prims, ok := planetDecode(tok); ok {
				for _, p := range prims {
					out = append(out, Resolved{Prim: p, Span: Span{cursor, cursor + length}})
				}
				cursor += length
				advanced = true
				break
			}
		}
		if !advanced {
			return nil, false
		}
	}
	return out, true
}

func scanBackward(s string) ([]Resolved, bool) {
	var rev []Resolved
	cursor := len(s)
	for cursor > 0 {
		advanced := false
		for length := cursor; length >= 2; length-- {
			tok := s[cursor-length : cursor]
			if p, ok := FromFormatName(tok); ok {
				rev = append(rev, Resolved{Prim: p, Span: Span{cursor - length, cursor}})
				cursor -= length
				advanced = true
				break
			}
			if prims, ok := planetDecode(tok); ok {
				for i := len(prims) - 1; i >= 0; i-- {
					rev = append(rev, Resolved{Prim: prims[i], Span: Span{cursor - length, cursor}})
				}
				cursor -= length
				advanced = true
				break
			}
		}
		if !advanced {
			return nil, false
		}
	}
	out := make([]Resolved, len(rev))
	for i, r := range rev {
		out[len(rev)-1-i] = r
	}
	return out, true
}
