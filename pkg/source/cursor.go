package source

// Cursor is a Location that advances as parsing proceeds.
type Cursor struct {
	Location
}

// NewCursor returns a cursor positioned at offset within input.
func NewCursor(input *Input, offset int) *Cursor {
	return &Cursor{Location: NewLocation(input, offset)}
}

// MoveTo sets the cursor offset. No bounds clamping is performed.
func (c *Cursor) MoveTo(offset int) *Cursor {
	c.offset = offset
	return c
}

// MoveBy moves the cursor by delta bytes, which may be negative.
func (c *Cursor) MoveBy(delta int) *Cursor {
	c.offset += delta
	return c
}

// ClonedLocation returns an immutable snapshot of the cursor. An explicit
// offset may be given; otherwise the current offset is used.
func (c *Cursor) ClonedLocation(offset ...int) Location {
	if len(offset) > 0 {
		return NewLocation(c.input, offset[0])
	}
	return NewLocation(c.input, c.offset)
}

// AtEnd reports whether the cursor reached the end of the text.
func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.Text())
}
