package catalogue

import "strings"

// DocLineKind classifies one line of a primitive's parsed documentation.
type DocLineKind int

const (
	DocText DocLineKind = iota
	DocExample
	DocExampleError
	DocExampleContinuation
)

// DocLine is one parsed line of a primitive's doc text.
type DocLine struct {
	Kind     DocLineKind
	Source   string      // for Example/ExampleError/ExampleContinuation
	Fragment []DocFragment // for Text
}

// DocFragmentKind is the inline markup a text doc-line can carry.
type DocFragmentKind int

const (
	FragPlain DocFragmentKind = iota
	FragCode
	FragEmphasis
	FragStrong
	FragLink
	FragPrimRef
)

// DocFragment is one inline span within a DocText line.
type DocFragment struct {
	Kind DocFragmentKind
	Text string
	URL  string // FragLink only
	Prim Primitive
	HasPrim bool
}

// Doc is the fully parsed documentation for one primitive: a short summary
// (the first non-empty text line) plus the ordered line sequence.
type Doc struct {
	Short string
	Lines []DocLine
}

// ParseDoc parses a primitive's raw doc text: each line is
// `ex:` (auto-running example), `ex!` (example expected to error), `: `
// (continuation of the previous example's source), or else a text line
// broken into inline fragments.
func ParseDoc(raw string) Doc {
	var d Doc
	for _, line := range strings.Split(raw, "\n") {
		switch {
		case strings.HasPrefix(line, "ex: "):
			d.Lines = append(d.Lines, DocLine{Kind: DocExample, Source: strings.TrimPrefix(line, "ex: ")})
		case strings.HasPrefix(line, "ex!"):
			d.Lines = append(d.Lines, DocLine{Kind: DocExampleError, Source: strings.TrimSpace(strings.TrimPrefix(line, "ex!"))})
		case strings.HasPrefix(line, ": "):
			d.Lines = append(d.Lines, DocLine{Kind: DocExampleContinuation, Source: strings.TrimPrefix(line, ": ")})
		default:
			frags := parseFragments(line)
			d.Lines = append(d.Lines, DocLine{Kind: DocText, Fragment: frags})
			if d.Short == "" && strings.TrimSpace(line) != "" {
				d.Short = line
			}
		}
	}
	return d
}

// parseFragments splits a text line into inline markup fragments: `code`,
// *emphasis*, **strong**, [text](url), and [name] primitive references.
func parseFragments(line string) []DocFragment {
	var out []DocFragment
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			out = append(out, DocFragment{Kind: FragPlain, Text: plain.String()})
			plain.Reset()
		}
	}
	r := []rune(line)
	for i := 0; i < len(r); {
		switch {
		case r[i] == '`':
			if j := indexFrom(r, i+1, '`'); j >= 0 {
				flush()
				name := string(r[i+1 : j])
				frag := DocFragment{Kind: FragCode, Text: name}
				if p, ok := FromName(name); ok {
					frag.Prim, frag.HasPrim = p, true
				}
				out = append(out, frag)
				i = j + 1
				continue
			}
		case i+1 < len(r) && r[i] == '*' && r[i+1] == '*':
			if j := indexSeqFrom(r, i+2, "**"); j >= 0 {
				flush()
				out = append(out, DocFragment{Kind: FragStrong, Text: string(r[i+2 : j])})
				i = j + 2
				continue
			}
		case r[i] == '*':
			if j := indexFrom(r, i+1, '*'); j >= 0 {
				flush()
				out = append(out, DocFragment{Kind: FragEmphasis, Text: string(r[i+1 : j])})
				i = j + 1
				continue
			}
		case r[i] == '[':
			if close := indexFrom(r, i+1, ']'); close >= 0 {
				text := string(r[i+1 : close])
				if close+1 < len(r) && r[close+1] == '(' {
					if end := indexFrom(r, close+2, ')'); end >= 0 {
						flush()
						out = append(out, DocFragment{Kind: FragLink, Text: text, URL: string(r[close+2 : end])})
						i = end + 1
						continue
					}
				}
				flush()
				frag := DocFragment{Kind: FragPrimRef, Text: text}
				if p, ok := FromName(text); ok {
					frag.Prim, frag.HasPrim = p, true
				}
				out = append(out, frag)
				i = close + 1
				continue
			}
		}
		plain.WriteRune(r[i])
		i++
	}
	flush()
	return out
}

func indexFrom(r []rune, start int, c rune) int {
	for i := start; i < len(r); i++ {
		if r[i] == c {
			return i
		}
	}
	return -1
}

func indexSeqFrom(r []rune, start int, seq string) int {
	sr := []rune(seq)
	for i := start; i+len(sr) <= len(r); i++ {
		match := true
		for j, c := range sr {
			if r[i+j] != c {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ParsedDoc parses and returns this primitive's documentation.
func (p Primitive) ParsedDoc() Doc { return ParseDoc(p.Doc()) }
