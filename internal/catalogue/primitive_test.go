package catalogue

import "testing"

func TestNameUniqueness(t *testing.T) {
	seen := make(map[string]Primitive)
	for _, p := range All() {
		name := p.Name()
		if name == "" {
			continue
		}
		if other, ok := seen[name]; ok && other != p {
			t.Fatalf("name %q shared by %v and %v", name, other, p)
		}
		seen[name] = p
	}
}

func TestFromNameExactRoundTrip(t *testing.T) {
	for _, p := range NonDeprecated() {
		name := p.Name()
		if name == "" {
			continue
		}
		got, ok := FromName(name)
		if !ok {
			t.Errorf("FromName(%q) not found", name)
			continue
		}
		if got != p {
			t.Errorf("FromName(%q) = %v, want %v", name, got, p)
		}
	}
}

func TestFromGlyphAndASCIIRoundTrip(t *testing.T) {
	for _, p := range All() {
		if g, ok := p.Glyph(); ok {
			got, ok := FromGlyph(g)
			if !ok || got != p {
				t.Errorf("FromGlyph(%q) = %v, %v; want %v, true", g, got, ok, p)
			}
		}
		if a, ok := p.ASCII(); ok {
			got, ok := FromASCII(a)
			if !ok || got != p {
				t.Errorf("FromASCII(%q) = %v, %v; want %v, true", a, got, ok, p)
			}
		}
	}
}

func TestInversionInvolution(t *testing.T) {
	for _, p := range All() {
		inv, ok := p.Inverse()
		if !ok {
			continue
		}
		back, ok := inv.Inverse()
		if !ok || back != p {
			t.Errorf("inverse(inverse(%v)) = %v, %v; want %v, true", p, back, ok, p)
		}
	}
}
