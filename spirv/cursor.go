package spirv

// Cursor is a typed reader over an instruction's operand words (C2).
// It never copies the underlying words; all Read* calls advance the
// same position.
type Cursor struct {
	words []uint32
	pos   int
}

// NewCursor wraps a raw operand-word slice.
func NewCursor(words []uint32) *Cursor {
	return &Cursor{words: words}
}

// Len reports how many words remain unread.
func (c *Cursor) Len() int {
	return len(c.words) - c.pos
}

// Pos reports the current word offset.
func (c *Cursor) Pos() int {
	return c.pos
}

func (c *Cursor) next() (uint32, error) {
	if c.pos >= len(c.words) {
		return 0, newError(ErrTruncated, -1, "operand cursor exhausted at word %d", c.pos)
	}
	w := c.words[c.pos]
	c.pos++
	return w, nil
}

// ReadID reads the next word as an id.
func (c *Cursor) ReadID() (uint32, error) {
	return c.next()
}

// ReadUint32 reads the next word as a plain literal.
func (c *Cursor) ReadUint32() (uint32, error) {
	return c.next()
}

// ReadEnum reads the next word and resolves it against kind's value
// set; it fails with ErrUnencodedEnum if the value isn't recognized.
func (c *Cursor) ReadEnum(kind EnumKind) (uint32, error) {
	v, err := c.next()
	if err != nil {
		return 0, err
	}
	if _, ok := EnumName(kind, v); !ok {
		return 0, newError(ErrUnencodedEnum, -1, "value %d at operand word %d is not a recognized member of enum kind %d", v, c.pos-1, kind)
	}
	return v, nil
}

// ReadString reads a NUL-terminated, word-padded UTF-8 string
// starting at the cursor, consuming every word the string occupies
// (including the word holding the terminating NUL).
func (c *Cursor) ReadString() (string, error) {
	start := c.pos
	for {
		w, err := c.next()
		if err != nil {
			return "", newError(ErrUnterminatedString, -1, "no NUL byte found before operands were exhausted (string starts at operand word %d)", start)
		}
		bs := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, b := range bs {
			if b == 0 {
				return decodeStringWords(c.words[start:c.pos]), nil
			}
		}
	}
}

func decodeStringWords(words []uint32) string {
	buf := make([]byte, 0, len(words)*4)
	for _, w := range words {
		bs := [4]byte{byte(w), byte(w >> 8), byte(w >> 16), byte(w >> 24)}
		for _, b := range bs {
			if b == 0 {
				return string(buf)
			}
			buf = append(buf, b)
		}
	}
	return string(buf)
}

// ReadList returns every remaining word without advancing past the
// end (after this call, Len() is 0).
func (c *Cursor) ReadList() []uint32 {
	rest := c.words[c.pos:]
	c.pos = len(c.words)
	out := make([]uint32, len(rest))
	copy(out, rest)
	return out
}
