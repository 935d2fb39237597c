package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"Korean Red Ginseng Extract", "korean-red-ginseng-extract"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Crème Brûlée à Paris", "creme-brulee-a-paris"},
		{"multiple---hyphens___and..dots", "multiple-hyphens-and-dots"},
		{"UPPER case 123", "upper-case-123"},
		{"!!punctuation only prefix", "punctuation-only-prefix"},
		{"trailing punctuation!!!", "trailing-punctuation"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Make(c.in), "input %q", c.in)
	}
}

func TestMakeShape(t *testing.T) {
	inputs := []string{
		"Hello World", "Ångström Unit", "a  b  c", "2024 Annual Report!",
	}
	for _, in := range inputs {
		got := Make(in)
		assert.Regexp(t, slugShape, got, "input %q", in)
	}
}

func TestMakeIdempotent(t *testing.T) {
	for _, in := range []string{"Some Title Here", "Crème Brûlée", "already-a-slug"} {
		once := Make(in)
		assert.Equal(t, once, Make(once), "re-slugging must be stable for %q", in)
		assert.Equal(t, once, Make(in), "slugging must be deterministic for %q", in)
	}
}

func TestMakeEmpty(t *testing.T) {
	assert.Equal(t, "", Make(""))
	assert.Equal(t, "", Make("!!!"))
}
