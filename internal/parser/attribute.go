package parser

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
)

// AttributeType is the value type of an attribute, as stored in the
// attribute record and as declared by the attribute catalogue.
type AttributeType uint8

const (
	AttributeInteger     AttributeType = 0
	AttributeIntegerList AttributeType = 1
	AttributeReal        AttributeType = 2
	AttributeRealList    AttributeType = 3
	AttributeString      AttributeType = 4
	AttributeNone        AttributeType = 5
)

func (t AttributeType) String() string {
	switch t {
	case AttributeInteger:
		return "Integer"
	case AttributeIntegerList:
		return "IntegerList"
	case AttributeReal:
		return "Real"
	case AttributeRealList:
		return "RealList"
	case AttributeString:
		return "String"
	case AttributeNone:
		return "None"
	default:
		return fmt.Sprintf("AttributeType(%d)", uint8(t))
	}
}

// Attribute is one decoded attribute value. Only the field matching Type is
// meaningful, except for integer lists decoded from text, which keep the
// source text in String.
type Attribute struct {
	Type   AttributeType
	Int    int32
	Real   float64
	String string
	Ints   []int
	Reals  []float64
}

// Value returns the attribute as a plain Go value: int32, float64, string,
// []int, []float64 or nil for AttributeNone.
func (a Attribute) Value() interface{} {
	switch a.Type {
	case AttributeInteger:
		return a.Int
	case AttributeIntegerList:
		return a.Ints
	case AttributeReal:
		return a.Real
	case AttributeRealList:
		return a.Reals
	case AttributeString:
		return a.String
	}
	return nil
}

func (a Attribute) GoString() string {
	return fmt.Sprintf("%v(%v)", a.Type, a.Value())
}

// decodeAttribute interprets the value bytes of an attribute record.
// String values are converted to integer lists when catalog declares the
// attribute code as one. enc, if non-nil, transcodes string bytes to UTF-8.
func decodeAttribute(ar attributeRecord, catalog AttributeCatalog, enc encoding.Encoding) (Attribute, error) {
	c := newCursor(ar.Data)
	a := Attribute{Type: ar.ValueType}

	switch ar.ValueType {
	case AttributeInteger:
		a.Int = c.i32()
	case AttributeReal:
		a.Real = c.f64()
	case AttributeIntegerList:
		n := c.remaining() / 4
		a.Ints = make([]int, n)
		for i := range a.Ints {
			a.Ints[i] = int(c.i32())
		}
	case AttributeRealList:
		n := c.remaining() / 8
		a.Reals = make([]float64, n)
		for i := range a.Reals {
			a.Reals[i] = c.f64()
		}
	case AttributeString:
		raw := c.cstring()
		if enc != nil {
			decoded, err := enc.NewDecoder().Bytes(raw)
			if err != nil {
				return Attribute{}, fmt.Errorf("decode attribute %s text: %w", AttributeCodeToString(ar.Code), err)
			}
			raw = decoded
		}
		a.String = string(raw)
		if catalog != nil && catalog.AttributeType(ar.Code) == AttributeIntegerList {
			a.Type = AttributeIntegerList
			a.Ints = parseIntegerList(a.String)
		}
	case AttributeNone:
	default:
		return Attribute{}, &FormatError{Reason: fmt.Sprintf("unknown attribute value type %d", uint8(ar.ValueType))}
	}

	if c.short {
		return Attribute{}, &FormatError{Reason: fmt.Sprintf("attribute %s value too short", AttributeCodeToString(ar.Code))}
	}
	return a, nil
}

// parseIntegerList parses a comma-separated list such as "1,3,4". Empty
// items are skipped and items that are not numbers count as 0.
func parseIntegerList(s string) []int {
	parts := strings.Split(s, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			v = 0
		}
		out = append(out, v)
	}
	return out
}
