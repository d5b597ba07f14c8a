package parser

import (
	"errors"
	"fmt"
)

// ErrGeometryAlreadySet is returned by ObjectBuilder.SetGeometry when the
// object already carries a geometry.
var ErrGeometryAlreadySet = errors.New("geometry already set")

// IOError indicates the byte source could not be opened or a record payload
// could not be read in full after its base header was read.
type IOError struct {
	Op     string // "open", "read payload"
	Path   string // empty for plain readers
	Offset int64  // stream offset of the failing read
	Err    error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("osenc: %s %s at offset %d: %v", e.Op, e.Path, e.Offset, e.Err)
	}
	return fmt.Sprintf("osenc: %s at offset %d: %v", e.Op, e.Offset, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// FormatError indicates the record stream violates the OSENC format.
type FormatError struct {
	Record RecordType // record being processed, 0 if not applicable
	Offset int64      // stream offset of the record header
	Reason string
	Err    error // optional wrapped cause
}

func (e *FormatError) Error() string {
	msg := e.Reason
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	if e.Record != 0 {
		return fmt.Sprintf("osenc: invalid %v record at offset %d: %s", e.Record, e.Offset, msg)
	}
	return fmt.Sprintf("osenc: invalid stream: %s", msg)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ErrPayloadSize indicates a payload whose length disagrees with the counts
// it declares.
type ErrPayloadSize struct {
	Want, Got int
}

func (e *ErrPayloadSize) Error() string {
	return fmt.Sprintf("payload is %d bytes, declared counts require %d", e.Got, e.Want)
}

// ErrUnknownNode indicates a line or area references a connected node that
// no node table defined.
type ErrUnknownNode struct {
	FeatureID uint32
	NodeID    int32
}

func (e *ErrUnknownNode) Error() string {
	return fmt.Sprintf("feature %d references unknown connected node %d", e.FeatureID, e.NodeID)
}

// ErrDanglingIndex indicates an element references a vertex or index outside
// the decoded buffers.
type ErrDanglingIndex struct {
	FeatureID uint32
	Index     int
	Limit     int
}

func (e *ErrDanglingIndex) Error() string {
	return fmt.Sprintf("feature %d references index %d, buffer holds %d", e.FeatureID, e.Index, e.Limit)
}

// ErrInvalidCoordinate indicates a position outside WGS-84 bounds.
type ErrInvalidCoordinate struct {
	Lat, Lon float64
}

func (e *ErrInvalidCoordinate) Error() string {
	return fmt.Sprintf("invalid coordinate: lat=%f, lon=%f", e.Lat, e.Lon)
}
