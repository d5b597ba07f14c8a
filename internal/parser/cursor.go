package parser

import (
	"bytes"
	"encoding/binary"
	"math"
)

// cursor reads little-endian fields from a payload. Reads past the end
// return zero values and mark the cursor short; callers check short once
// after reading a fixed layout.
type cursor struct {
	data  []byte
	off   int
	short bool
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) take(n int) []byte {
	if c.short || n < 0 || c.off+n > len(c.data) {
		c.short = true
		return nil
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b
}

func (c *cursor) u8() uint8 {
	b := c.take(1)
	if b == nil {
		return 0
	}
	return b[0]
}

func (c *cursor) u16() uint16 {
	b := c.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (c *cursor) u32() uint32 {
	b := c.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (c *cursor) i32() int32 {
	return int32(c.u32())
}

func (c *cursor) f32() float32 {
	return math.Float32frombits(c.u32())
}

func (c *cursor) f64() float64 {
	b := c.take(8)
	if b == nil {
		return 0
	}
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

func (c *cursor) skip(n int) {
	c.take(n)
}

// remaining returns the number of unread bytes.
func (c *cursor) remaining() int {
	if c.short {
		return 0
	}
	return len(c.data) - c.off
}

// cstring reads up to the first NUL, or to the end of the payload when no
// NUL is present, and consumes the terminator.
func (c *cursor) cstring() []byte {
	if c.short {
		return nil
	}
	rest := c.data[c.off:]
	if i := bytes.IndexByte(rest, 0); i >= 0 {
		c.off += i + 1
		return rest[:i]
	}
	c.off = len(c.data)
	return rest
}
