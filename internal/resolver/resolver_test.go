package resolver

import (
	"testing"

	"github.com/sputnick1124/uiua/internal/catalogue"
)

func TestPlanetNotation(t *testing.T) {
	tests := []struct {
		tok  string
		want []catalogue.Primitive
	}{
		{"gdi", []catalogue.Primitive{catalogue.Gap, catalogue.Dip, catalogue.Identity}},
		{"fgd", []catalogue.Primitive{catalogue.Fork, catalogue.Gap, catalogue.Dip}},
	}
	for _, tt := range tests {
		t.Run(tt.tok, func(t *testing.T) {
			resolved, ok := FromFormatNameMulti(tt.tok)
			if !ok {
				t.Fatalf("FromFormatNameMulti(%q) failed", tt.tok)
			}
			if len(resolved) != len(tt.want) {
				t.Fatalf("got %d primitives, want %d: %v", len(resolved), len(tt.want), resolved)
			}
			for i, r := range resolved {
				if r.Prim != tt.want[i] {
					t.Errorf("prim[%d] = %v, want %v", i, r.Prim, tt.want[i])
				}
			}
		})
	}
}

func TestHardAliases(t *testing.T) {
	p, ok := FromFormatName("id")
	if !ok || p != catalogue.Identity {
		t.Fatalf("FromFormatName(%q) = %v, %v; want Identity, true", "id", p, ok)
	}
}

func TestHardAliasNamesSorted(t *testing.T) {
	names := HardAliasNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("HardAliasNames() not sorted: %v", names)
		}
	}
	found := false
	for _, n := range names {
		if n == "id" {
			found = true
		}
	}
	if !found {
		t.Fatalf("HardAliasNames() missing %q: %v", "id", names)
	}
}

func TestFromFormatNameExactMatch(t *testing.T) {
	for _, p := range catalogue.NonDeprecated() {
		name := p.Name()
		if name == "" || len(name) < 2 {
			continue
		}
		got, ok := FromFormatName(name)
		if !ok || got != p {
			t.Errorf("FromFormatName(%q) = %v, %v; want %v, true", name, got, ok, p)
		}
	}
}
