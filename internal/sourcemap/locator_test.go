package sourcemap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLocator(t *testing.T) {
	l := NewLocator("ab\ncd\r\n\nef")
	assert.Equal(t, 4, l.LineCount())

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{0, 0}},
		{2, Position{0, 2}},
		{3, Position{1, 0}},
		{5, Position{1, 2}},
		{6, Position{1, 3}},
		{7, Position{2, 0}},
		{8, Position{3, 0}},
		{10, Position{3, 2}},
		{99, Position{3, 91}},
		{-1, Position{0, 0}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, l.Locate(tt.offset), "offset %d", tt.offset)
	}
}

func TestRelativePath(t *testing.T) {
	tests := []struct {
		from, to, want string
	}{
		{"", "foo.js", "foo.js"},
		{"out.js", "in.js", "in.js"},
		{"dist/out.js", "src/in.js", "../src/in.js"},
		{"a/b/c.js", "a/b/d.js", "d.js"},
		{"a/b/c.js", "a/x/d.js", "../x/d.js"},
		{`dist\out.js`, `src\in.js`, "../src/in.js"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RelativePath(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestBasename(t *testing.T) {
	assert.Equal(t, "out.js", Basename("dist/out.js"))
	assert.Equal(t, "out.js", Basename(`dist\out.js`))
	assert.Equal(t, "out.js", Basename("out.js"))
	assert.Equal(t, "", Basename(""))
}
