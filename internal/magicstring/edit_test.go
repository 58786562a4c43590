package magicstring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverwrite_Chained(t *testing.T) {
	s := New("problems = 99", Options{})
	require.NoError(t, s.Overwrite(2, 5, "A", OverwriteOptions{}))
	require.NoError(t, s.Overwrite(0, 8, "answer", OverwriteOptions{}))
	assert.Equal(t, "answer = 99", s.String())

	require.NoError(t, s.Update(11, 13, "42", OverwriteOptions{}))
	assert.Equal(t, "answer = 42", s.String())

	s.Prepend("var ")
	s.Append(";")
	assert.Equal(t, "var answer = 42;", s.String())
}

func TestOverwrite_EdgeInserts(t *testing.T) {
	tests := []struct {
		name string
		edit func(s *MagicString) error
		want string
	}{
		{
			name: "update keeps inserts",
			edit: func(s *MagicString) error { return s.Update(2, 5, "A", OverwriteOptions{}) },
			want: "ABA--appendLeft--FG",
		},
		{
			name: "overwrite drops inserts",
			edit: func(s *MagicString) error { return s.Overwrite(2, 5, "A", OverwriteOptions{}) },
			want: "ABAFG",
		},
		{
			name: "overwrite content only keeps inserts",
			edit: func(s *MagicString) error { return s.Overwrite(2, 5, "A", OverwriteOptions{ContentOnly: true}) },
			want: "ABA--appendLeft--FG",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("ABCDEFG", Options{})
			require.NoError(t, s.AppendLeft(3, "--appendLeft--"))
			require.NoError(t, tt.edit(s))
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestUpdate_KeepsTrailingInsert(t *testing.T) {
	s := New("abcdef", Options{})
	require.NoError(t, s.PrependRight(2, "<"))
	require.NoError(t, s.AppendLeft(4, ">"))
	require.NoError(t, s.Update(2, 4, "X", OverwriteOptions{}))
	assert.Equal(t, "ab<X>ef", s.String())

	s = New("abcdef", Options{})
	require.NoError(t, s.PrependRight(2, "<"))
	require.NoError(t, s.AppendLeft(4, ">"))
	require.NoError(t, s.Update(2, 4, "X", OverwriteOptions{Overwrite: true}))
	assert.Equal(t, "abXef", s.String())
}

func TestUpdate_AlreadyEdited(t *testing.T) {
	s := New("problems = 99", Options{})
	require.NoError(t, s.Overwrite(2, 5, "A", OverwriteOptions{}))

	err := s.Update(0, 8, "answer", OverwriteOptions{})
	require.ErrorIs(t, err, ErrAlreadyEdited)
	assert.Equal(t, "prAs = 99", s.String())

	require.NoError(t, s.Update(0, 8, "answer", OverwriteOptions{Overwrite: true}))
	assert.Equal(t, "answer = 99", s.String())
}

func TestOverwrite_Errors(t *testing.T) {
	s := New("abcdefghijkl", Options{})

	require.ErrorIs(t, s.Overwrite(3, 3, "x", OverwriteOptions{}), ErrOutOfRange)
	require.ErrorIs(t, s.Overwrite(3, 13, "x", OverwriteOptions{}), ErrOutOfRange)
	require.ErrorIs(t, s.Overwrite(5, 3, "x", OverwriteOptions{}), ErrOutOfRange)

	require.NoError(t, s.Overwrite(2, 8, "X", OverwriteOptions{}))
	err := s.Overwrite(4, 6, "Y", OverwriteOptions{})
	require.ErrorIs(t, err, ErrSplitOnEditedChunk)
	assert.Contains(t, err.Error(), "1:4")
	assert.Equal(t, "abXijkl", s.String())
}

func TestOverwrite_NegativeOffsets(t *testing.T) {
	s := New("problems = 99", Options{})
	require.NoError(t, s.Overwrite(-2, 13, "42", OverwriteOptions{}))
	assert.Equal(t, "problems = 42", s.String())
}

func TestOverwrite_MovedContent(t *testing.T) {
	s := New("abcdefghijkl", Options{})
	require.NoError(t, s.Move(3, 6, 9))
	require.NoError(t, s.Overwrite(3, 6, "DEF", OverwriteOptions{}))
	assert.Equal(t, "abcghiDEFjkl", s.String())

	s = New("abcdefghijkl", Options{})
	require.NoError(t, s.Move(3, 6, 9))
	require.NoError(t, s.Overwrite(4, 5, "E", OverwriteOptions{}))
	assert.Equal(t, "abcghidEfjkl", s.String())

	s = New("abcdefghijkl", Options{})
	require.NoError(t, s.Move(3, 6, 9))
	require.ErrorIs(t, s.Overwrite(2, 7, "X", OverwriteOptions{}), ErrOverwriteAcrossMove)
	assert.Equal(t, "abcghidefjkl", s.String())
}

func TestOverwrite_StoreName(t *testing.T) {
	s := New("var a = a + b", Options{})
	require.NoError(t, s.Overwrite(4, 5, "x", OverwriteOptions{StoreName: true}))
	require.NoError(t, s.Overwrite(8, 9, "x", OverwriteOptions{StoreName: true}))
	require.NoError(t, s.Overwrite(12, 13, "y", OverwriteOptions{StoreName: true}))
	assert.Equal(t, "var x = x + y", s.String())
	assert.Equal(t, []string{"a", "b"}, s.GenerateDecodedMap(GenerateMapOptions{}).Names)
}

func TestOverwrite_StoreNameSkipsMultipleTokens(t *testing.T) {
	s := New("var a = b;", Options{})
	require.NoError(t, s.Overwrite(0, 9, "x", OverwriteOptions{StoreName: true}))
	assert.Equal(t, "x;", s.String())

	m := s.GenerateDecodedMap(GenerateMapOptions{})
	assert.Equal(t, []string{}, m.Names)
	for _, seg := range m.Mappings[0] {
		assert.Len(t, seg, 4)
	}
}

func TestRemove(t *testing.T) {
	s := New("problems = 99", Options{})
	require.NoError(t, s.Remove(2, 5))
	assert.Equal(t, "pros = 99", s.String())

	s = New("abcdefghijkl", Options{})
	require.NoError(t, s.Remove(0, 6))
	require.NoError(t, s.AppendLeft(6, "DEF"))
	require.NoError(t, s.Overwrite(6, 9, "GHI", OverwriteOptions{}))
	assert.Equal(t, "DEFGHIjkl", s.String())
}

func TestRemove_EdgeInsertsSurvive(t *testing.T) {
	s := New("abcdef", Options{})
	require.NoError(t, s.PrependRight(2, "<"))
	require.NoError(t, s.AppendLeft(4, ">"))
	require.NoError(t, s.AppendLeft(3, "x"))
	require.NoError(t, s.Remove(2, 4))
	assert.Equal(t, "ab<>ef", s.String())
}

func TestRemove_ZeroLengthAndRepeated(t *testing.T) {
	s := New("abcdef", Options{})
	require.NoError(t, s.Remove(3, 3))
	assert.False(t, s.HasChanged())

	require.NoError(t, s.Remove(1, 4))
	require.NoError(t, s.Remove(2, 5))
	assert.Equal(t, "af", s.String())

	require.ErrorIs(t, s.Remove(4, 2), ErrOutOfRange)
}

func TestRemove_OverwrittenContent(t *testing.T) {
	s := New("abcdef", Options{})
	require.NoError(t, s.Overwrite(2, 4, "XY", OverwriteOptions{}))
	require.NoError(t, s.Remove(0, 6))
	assert.True(t, s.IsEmpty())
	assert.True(t, s.HasChanged())
}

func TestReset(t *testing.T) {
	tests := []struct {
		name     string
		original string
		edit     func(s *MagicString) error
		want     string
	}{
		{
			name:     "restores removed characters",
			original: "abcdefghijkl",
			edit: func(s *MagicString) error {
				return firstErr(s.Remove(1, 5), s.Reset(2, 4), s.Reset(4, 5))
			},
			want: "acdefghijkl",
		},
		{
			name:     "from the start",
			original: "abcdefghijkl",
			edit:     func(s *MagicString) error { return firstErr(s.Remove(0, 6), s.Reset(0, 3)) },
			want:     "abcghijkl",
		},
		{
			name:     "from the end",
			original: "abcdefghijkl",
			edit:     func(s *MagicString) error { return firstErr(s.Remove(6, 12), s.Reset(10, 12)) },
			want:     "abcdefkl",
		},
		{
			name:     "zero-length resets are no-ops",
			original: "abcdefghijkl",
			edit: func(s *MagicString) error {
				return firstErr(s.Remove(3, 5), s.Reset(0, 0), s.Reset(6, 6), s.Reset(9, -3))
			},
			want: "abcfghijkl",
		},
		{
			name:     "unmodified range",
			original: "abcdefghijkl",
			edit:     func(s *MagicString) error { return s.Reset(3, 5) },
			want:     "abcdefghijkl",
		},
		{
			name:     "overlapping ranges",
			original: "abcdefghijkl",
			edit:     func(s *MagicString) error { return firstErr(s.Remove(0, 10), s.Reset(1, 7), s.Reset(5, 9)) },
			want:     "bcdefghikl",
		},
		{
			name:     "nested ranges",
			original: "abcdefghijkl",
			edit:     func(s *MagicString) error { return firstErr(s.Remove(0, 10), s.Reset(3, 7), s.Reset(4, 6)) },
			want:     "defgkl",
		},
		{
			name:     "growing range",
			original: "abccde",
			edit:     func(s *MagicString) error { return firstErr(s.Remove(0, 6), s.Reset(2, 3), s.Reset(1, 3)) },
			want:     "bc",
		},
		{
			name:     "removed after overwrite",
			original: "abcdefghi",
			edit: func(s *MagicString) error {
				return firstErr(s.Overwrite(3, 6, "DEF", OverwriteOptions{}), s.Remove(1, 8), s.Reset(2, 7))
			},
			want: "acdefgi",
		},
		{
			name:     "drops inserts inside the range",
			original: "abcdefghi",
			edit: func(s *MagicString) error {
				return firstErr(
					s.Remove(1, 8),
					s.AppendLeft(2, "W"),
					s.AppendRight(3, "X"),
					s.PrependLeft(3, "Y"),
					s.PrependRight(5, "Z"),
					s.Reset(2, 7),
				)
			},
			want: "aWcdefgi",
		},
		{
			name:     "keeps inserts at the edges of the range",
			original: "abcdefghi",
			edit: func(s *MagicString) error {
				return firstErr(s.Remove(1, 8), s.AppendRight(2, "X"), s.AppendLeft(7, "V"), s.Reset(2, 7))
			},
			want: "aXcdefgVi",
		},
		{
			name:     "keeps inserts after the range",
			original: "ab.c;",
			edit: func(s *MagicString) error {
				return firstErr(s.PrependRight(0, "("), s.PrependRight(4, ")"), s.Remove(1, 4), s.Reset(2, 4))
			},
			want: "(a.c);",
		},
		{
			name:     "across moved content",
			original: "abcdefghijkl",
			edit:     func(s *MagicString) error { return firstErr(s.Remove(5, 8), s.Move(6, 9, 3), s.Reset(7, 8)) },
			want:     "abchidejkl",
		},
		{
			name:     "leaves overwritten content",
			original: "abcdefghijkl",
			edit: func(s *MagicString) error {
				return firstErr(s.Overwrite(3, 6, "DEF", OverwriteOptions{}), s.Remove(0, 3), s.Reset(0, 12))
			},
			want: "abcDEFghijkl",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.original, Options{})
			require.NoError(t, tt.edit(s))
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestReset_SplitInsideOverwrite(t *testing.T) {
	s := New("abcdefghijkl", Options{})
	require.NoError(t, s.Remove(4, 8))
	require.NoError(t, s.Overwrite(5, 7, "XX", OverwriteOptions{}))
	before := s.String()
	require.ErrorIs(t, s.Reset(4, 6), ErrSplitOnEditedChunk)
	assert.Equal(t, before, s.String())
}

func TestRemoveReset_RoundTrip(t *testing.T) {
	const original = "abcdefghijkl"
	for a := 0; a < len(original); a++ {
		for b := a + 1; b <= len(original); b++ {
			s := New(original, Options{})
			require.NoError(t, s.Remove(a, b))
			require.NoError(t, s.Reset(a, b))
			require.Equal(t, original, s.String(), "remove/reset [%d, %d)", a, b)

			s = New(original, Options{})
			require.NoError(t, s.PrependRight(a, "["))
			require.NoError(t, s.AppendLeft(b, "]"))
			before := s.String()
			require.NoError(t, s.Remove(a, b))
			require.NoError(t, s.Reset(a, b))
			require.Equal(t, before, s.String(), "remove/reset [%d, %d) with edge inserts", a, b)
		}
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name string
		edit func(s *MagicString) error
		want string
	}{
		{name: "from the start", edit: func(s *MagicString) error { return s.Move(0, 3, 6) }, want: "defabcghijkl"},
		{name: "to the start", edit: func(s *MagicString) error { return s.Move(3, 6, 0) }, want: "defabcghijkl"},
		{name: "from the end", edit: func(s *MagicString) error { return s.Move(9, 12, 6) }, want: "abcdefjklghi"},
		{name: "to the end", edit: func(s *MagicString) error { return s.Move(6, 9, 12) }, want: "abcdefjklghi"},
		{name: "to the middle", edit: func(s *MagicString) error { return s.Move(3, 6, 9) }, want: "abcghidefjkl"},
		{
			name: "redundant move",
			edit: func(s *MagicString) error {
				return firstErr(s.PrependRight(9, "X"), s.Move(9, 12, 6), s.AppendLeft(12, "Y"), s.Move(6, 9, 12))
			},
			want: "abcdefXjklYghi",
		},
		{name: "same snippet twice", edit: func(s *MagicString) error { return firstErr(s.Move(0, 3, 6), s.Move(0, 3, 9)) }, want: "defghiabcjkl"},
		{name: "adjacent snippets", edit: func(s *MagicString) error { return firstErr(s.Move(0, 2, 6), s.Move(2, 4, 6)) }, want: "efabcdghijkl"},
		{name: "same index", edit: func(s *MagicString) error { return firstErr(s.Move(0, 2, 6), s.Move(3, 5, 6)) }, want: "cfabdeghijkl"},
		{name: "empty range forward", edit: func(s *MagicString) error { return s.Move(3, 3, 9) }, want: "abcdefghijkl"},
		{name: "empty range backward", edit: func(s *MagicString) error { return s.Move(6, 6, 0) }, want: "abcdefghijkl"},
		{name: "empty range at the start", edit: func(s *MagicString) error { return s.Move(0, 0, 6) }, want: "abcdefghijkl"},
		{name: "negative offsets", edit: func(s *MagicString) error { return s.Move(-6, -3, 0) }, want: "ghiabcdefjkl"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("abcdefghijkl", Options{})
			require.NoError(t, tt.edit(s))
			assert.Equal(t, tt.want, s.String())
		})
	}
}

func TestMove_InvalidDestination(t *testing.T) {
	s := New("abcdefghijkl", Options{})
	for i := 3; i <= 6; i++ {
		require.ErrorIs(t, s.Move(3, 6, i), ErrInvalidMove, "index %d", i)
	}
	require.ErrorIs(t, s.Move(3, 3, 3), ErrInvalidMove)
	require.ErrorIs(t, s.Move(-9, -6, 4), ErrInvalidMove)
	require.ErrorIs(t, s.Move(3, 6, 13), ErrOutOfRange)
	require.ErrorIs(t, s.Move(-1, 2, 6), ErrOutOfRange)
	assert.Equal(t, "abcdefghijkl", s.String())
}

func TestOriginalOffsetsAreStable(t *testing.T) {
	s := New("abcdefghijkl", Options{})
	require.NoError(t, s.Remove(0, 3))
	require.NoError(t, s.Overwrite(6, 9, "XYZW", OverwriteOptions{}))
	require.NoError(t, s.Move(9, 12, 3))
	require.NoError(t, s.AppendLeft(5, "!"))
	assert.Equal(t, "jklde!fXYZW", s.String())
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
