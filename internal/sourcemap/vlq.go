package sourcemap

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMappings is returned when a mappings string cannot be decoded.
var ErrInvalidMappings = errors.New("invalid mappings")

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

var base64Values = func() [256]int {
	var v [256]int
	for i := range v {
		v[i] = -1
	}
	for i := 0; i < len(base64Chars); i++ {
		v[base64Chars[i]] = i
	}
	return v
}()

func writeVLQ(sb *strings.Builder, value int) {
	v := value << 1
	if value < 0 {
		v = (-value << 1) | 1
	}
	for {
		digit := v & 31
		v >>= 5
		if v > 0 {
			digit |= 32
		}
		sb.WriteByte(base64Chars[digit])
		if v == 0 {
			return
		}
	}
}

// readVLQ decodes one value starting at s[i] and returns it with the index just past it.
func readVLQ(s string, i int) (int, int, error) {
	shift := 0
	v := 0
	for {
		if i >= len(s) {
			return 0, i, fmt.Errorf("%w: truncated value", ErrInvalidMappings)
		}
		digit := base64Values[s[i]]
		if digit < 0 {
			return 0, i, fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidMappings, s[i], i)
		}
		i++
		v |= (digit & 31) << shift
		if digit&32 == 0 {
			break
		}
		shift += 5
		if shift > 60 {
			return 0, i, fmt.Errorf("%w: value overflows", ErrInvalidMappings)
		}
	}
	if v&1 == 1 {
		return -(v >> 1), i, nil
	}
	return v >> 1, i, nil
}

// EncodeMappings encodes absolute decoded mappings into the VLQ "mappings" string. Generated columns are relative within a line; source index,
// original line, original column, and name index are relative across the whole string.
func EncodeMappings(m Mappings) string {
	var sb strings.Builder
	var source, origLine, origCol, name int
	for li, line := range m {
		if li > 0 {
			sb.WriteByte(';')
		}
		genCol := 0
		for si, seg := range line {
			if si > 0 {
				sb.WriteByte(',')
			}
			writeVLQ(&sb, seg[0]-genCol)
			genCol = seg[0]
			if len(seg) < 4 {
				continue
			}
			writeVLQ(&sb, seg[1]-source)
			writeVLQ(&sb, seg[2]-origLine)
			writeVLQ(&sb, seg[3]-origCol)
			source, origLine, origCol = seg[1], seg[2], seg[3]
			if len(seg) >= 5 {
				writeVLQ(&sb, seg[4]-name)
				name = seg[4]
			}
		}
	}
	return sb.String()
}

// DecodeMappings is the inverse of EncodeMappings. Segments must have 1, 4, or 5 fields.
func DecodeMappings(s string) (Mappings, error) {
	m := Mappings{Line{}}
	var source, origLine, origCol, name int
	genCol := 0
	i := 0
	for i < len(s) {
		switch s[i] {
		case ';':
			m = append(m, Line{})
			genCol = 0
			i++
			continue
		case ',':
			i++
			continue
		}

		var fields []int
		for i < len(s) && s[i] != ',' && s[i] != ';' {
			var v int
			var err error
			v, i, err = readVLQ(s, i)
			if err != nil {
				return nil, err
			}
			fields = append(fields, v)
		}

		switch len(fields) {
		case 1, 4, 5:
		default:
			return nil, fmt.Errorf("%w: segment with %d fields", ErrInvalidMappings, len(fields))
		}
		genCol += fields[0]
		seg := Segment{genCol}
		if len(fields) >= 4 {
			source += fields[1]
			origLine += fields[2]
			origCol += fields[3]
			seg = append(seg, source, origLine, origCol)
		}
		if len(fields) == 5 {
			name += fields[4]
			seg = append(seg, name)
		}
		m[len(m)-1] = append(m[len(m)-1], seg)
	}
	return m, nil
}
