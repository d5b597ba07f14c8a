package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// Header holds the cell metadata records found at the start of a cell.
// Fields are zero when their record was absent.
type Header struct {
	Version      uint16
	CellName     string
	Edition      uint16
	UpdateNumber uint16
	Published    time.Time
	Updated      time.Time
	Created      string // SENC creation date, free text
	Scale        uint32
	Extent       *Extent
}

// Extent is the four-corner coverage box of a cell.
type Extent struct {
	SW, SE, NE, NW LatLon
}

// Outline is the chart metadata needed to catalogue a cell without
// decoding its features.
type Outline struct {
	SW, SE, NE, NW LatLon
	Scale          uint32
	Published      time.Time
	Updated        time.Time
}

// Corners returns the outline corners in SW, SE, NE, NW order.
func (o Outline) Corners() [4]LatLon {
	return [4]LatLon{o.SW, o.SE, o.NE, o.NW}
}

// apply folds a header record into h. It reports false for records that
// are not header records.
func (h *Header) apply(r record) bool {
	switch v := r.(type) {
	case versionRecord:
		h.Version = v.Version
	case cellNameRecord:
		h.CellName = v.Name
	case dateRecord:
		switch v.Type {
		case RecordPublishDate:
			h.Published = v.Date
		case RecordUpdateDate:
			h.Updated = v.Date
		case RecordCreateDate:
			h.Created = v.Raw
		}
	case numberRecord:
		if v.Type == RecordEdition {
			h.Edition = v.Value
		} else {
			h.UpdateNumber = v.Value
		}
	case scaleRecord:
		h.Scale = v.Scale
	case extentRecord:
		h.Extent = &Extent{SW: v.SW, SE: v.SE, NE: v.NE, NW: v.NW}
	default:
		return false
	}
	return true
}

// Outline checks that every field an outline needs is present and valid.
func (h Header) Outline() (Outline, error) {
	var missing string
	switch {
	case h.Published.IsZero():
		missing = "publish date"
	case h.Updated.IsZero():
		missing = "update date"
	case h.Scale == 0:
		missing = "native scale"
	case h.Extent == nil:
		missing = "cell extent"
	}
	if missing != "" {
		return Outline{}, &FormatError{Reason: "invalid header: missing or invalid " + missing}
	}

	for _, c := range []LatLon{h.Extent.SW, h.Extent.SE, h.Extent.NE, h.Extent.NW} {
		if err := ValidateCoordinate(c.Lat, c.Lon); err != nil {
			return Outline{}, &FormatError{Reason: "invalid header: cell extent", Err: err}
		}
	}

	return Outline{
		SW:        h.Extent.SW,
		SE:        h.Extent.SE,
		NE:        h.Extent.NE,
		NW:        h.Extent.NW,
		Scale:     h.Scale,
		Published: h.Published,
		Updated:   h.Updated,
	}, nil
}

// ReadHeader consumes header records from r until the first record of
// another kind or the end of the stream.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	rr := NewRecordReader(r)
	for {
		rec, err := rr.Next()
		if errors.Is(err, io.EOF) {
			return h, nil
		}
		if err != nil {
			return Header{}, err
		}
		parsed, ok, err := parseRecord(rec, headerRecords)
		if err != nil {
			return Header{}, err
		}
		if !ok {
			return h, nil
		}
		h.apply(parsed)
	}
}

// ReadOutline reads the header of a cell and returns its outline. It fails
// with a *FormatError when the dates, scale or extent are missing.
func ReadOutline(r io.Reader) (Outline, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return Outline{}, err
	}
	return h.Outline()
}

// ReadOutlineFile is ReadOutline on the named file.
func ReadOutlineFile(path string) (Outline, error) {
	f, err := os.Open(path)
	if err != nil {
		return Outline{}, &IOError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	o, err := ReadOutline(f)
	if err != nil {
		return Outline{}, withPath(err, path)
	}
	return o, nil
}

// withPath records path on an *IOError, or prefixes other errors with it.
func withPath(err error, path string) error {
	var ioErr *IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = path
		return err
	}
	return fmt.Errorf("%s: %w", path, err)
}
