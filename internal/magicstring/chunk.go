package magicstring

// none marks a missing chunk link.
const none = -1

// chunk covers original[start:end]. Chunks live in MagicString.chunks and refer to each other by index.
type chunk struct {
	start    int
	end      int
	original string

	content string
	intro   string
	outro   string

	// edited is set once content was replaced (overwrite) or cleared (remove). An edited chunk with empty content is a removed chunk.
	edited    bool
	storeName bool
	name      string

	// prev and next link chunks in current (rendered) order.
	prev int
	next int
}

func newChunk(start, end int, original string) chunk {
	return chunk{start: start, end: end, original: original, content: original, prev: none, next: none}
}

// contains reports whether index lies strictly inside c.
func (c *chunk) contains(index int) bool {
	return c.start < index && index < c.end
}

// overwritten reports whether c holds replacement content that no longer corresponds to original characters.
func (c *chunk) overwritten() bool {
	return c.edited && c.content != ""
}

func (c *chunk) appendLeft(s string)   { c.outro += s }
func (c *chunk) prependLeft(s string)  { c.outro = s + c.outro }
func (c *chunk) appendRight(s string)  { c.intro += s }
func (c *chunk) prependRight(s string) { c.intro = s + c.intro }

func (c *chunk) edit(content string, storeName bool, name string, contentOnly bool) {
	c.content = content
	if !contentOnly {
		c.intro = ""
		c.outro = ""
	}
	c.storeName = storeName
	c.name = name
	c.edited = true
}

// reset drops c's intro and outro and restores removed content.
func (c *chunk) reset() {
	c.intro = ""
	c.outro = ""
	if c.edited {
		c.content = c.original
		c.storeName = false
		c.name = ""
		c.edited = false
	}
}

func (c *chunk) render() string {
	return c.intro + c.content + c.outro
}
