package avatar

import (
	"strings"
	"testing"

	"github.com/PontyConecta/ponty-conecta-sub002/internal/pkg/logger"
)

func TestDataURLWithoutFont(t *testing.T) {
	g := NewGenerator(logger.NewNop(), "")
	got, err := g.DataURL("Acme Media")
	if err != nil {
		t.Fatalf("DataURL() error = %v", err)
	}
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Fatalf("DataURL() = %.40q, want png data url", got)
	}
}

func TestComputeInitials(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "two_words", in: "Acme Media", want: "AM"},
		{name: "three_words", in: "The Acme Company", want: "TC"},
		{name: "single_word", in: "acme", want: "A"},
		{name: "empty", in: "   ", want: "?"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := computeInitials(tc.in); got != tc.want {
				t.Fatalf("computeInitials(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestPickColorStable(t *testing.T) {
	a := pickColor("Acme Media")
	b := pickColor("acme media ")
	if a != b {
		t.Fatal("color should be stable across case and whitespace")
	}
}
