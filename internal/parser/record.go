package parser

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"slices"
)

// RecordType is the tag in every OSENC base record header.
type RecordType uint16

const (
	RecordVersion        RecordType = 1
	RecordCellName       RecordType = 2
	RecordPublishDate    RecordType = 3
	RecordEdition        RecordType = 4
	RecordUpdateDate     RecordType = 5
	RecordUpdate         RecordType = 6
	RecordNativeScale    RecordType = 7
	RecordCreateDate     RecordType = 8
	RecordFeatureID      RecordType = 64
	RecordAttribute      RecordType = 65
	RecordPointGeometry  RecordType = 80
	RecordLineGeometry   RecordType = 81
	RecordAreaGeometry   RecordType = 82
	RecordMultiPoint     RecordType = 83
	RecordEdgeNodeTable  RecordType = 96
	RecordConnectedNodes RecordType = 97
	RecordCoverage       RecordType = 98
	RecordNoCoverage     RecordType = 99
	RecordCellExtent     RecordType = 100
)

var recordTypeNames = map[RecordType]string{
	RecordVersion:        "version",
	RecordCellName:       "cell name",
	RecordPublishDate:    "publish date",
	RecordEdition:        "edition",
	RecordUpdateDate:     "update date",
	RecordUpdate:         "update number",
	RecordNativeScale:    "native scale",
	RecordCreateDate:     "creation date",
	RecordFeatureID:      "feature id",
	RecordAttribute:      "feature attribute",
	RecordPointGeometry:  "point geometry",
	RecordLineGeometry:   "line geometry",
	RecordAreaGeometry:   "area geometry",
	RecordMultiPoint:     "multipoint geometry",
	RecordEdgeNodeTable:  "edge-node table",
	RecordConnectedNodes: "connected-node table",
	RecordCoverage:       "coverage",
	RecordNoCoverage:     "no-coverage",
	RecordCellExtent:     "cell extent",
}

func (t RecordType) String() string {
	if name, ok := recordTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("type %d", uint16(t))
}

// recordHeaderSize is the packed size of the base header: uint16 type + uint32 length.
const recordHeaderSize = 6

// Record is one raw record. Payload is only valid until the next call to Next.
type Record struct {
	Type    RecordType
	Offset  int64 // stream offset of the base header
	Payload []byte
}

// RecordReader reads OSENC records sequentially from a byte source.
//
// The reader performs no interpretation of payloads. It checks that the very
// first record is the version record, nothing more.
type RecordReader struct {
	r      io.Reader
	offset int64
	count  int
	header [recordHeaderSize]byte
	buf    []byte
}

// NewRecordReader wraps r. Readers that are not already buffered are
// wrapped in a bufio.Reader since records are read in small pieces.
func NewRecordReader(r io.Reader) *RecordReader {
	if _, ok := r.(io.ByteReader); !ok {
		r = bufio.NewReader(r)
	}
	return &RecordReader{r: r}
}

// Next returns the next record. It returns io.EOF when the stream ends
// before a complete base header, an *IOError when the payload is short and a
// *FormatError for malformed headers or a missing leading version record.
func (rr *RecordReader) Next() (Record, error) {
	start := rr.offset
	n, err := io.ReadFull(rr.r, rr.header[:])
	rr.offset += int64(n)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return Record{}, io.EOF
		}
		return Record{}, &IOError{Op: "read header", Offset: start, Err: err}
	}

	typ := RecordType(binary.LittleEndian.Uint16(rr.header[0:2]))
	length := binary.LittleEndian.Uint32(rr.header[2:6])

	if rr.count == 0 && typ != RecordVersion {
		return Record{}, &FormatError{
			Record: typ,
			Offset: start,
			Reason: "first record must be the version record",
		}
	}
	if length < recordHeaderSize {
		return Record{}, &FormatError{
			Record: typ,
			Offset: start,
			Reason: fmt.Sprintf("record length %d is shorter than the base header", length),
		}
	}

	if err := rr.readPayload(int(length - recordHeaderSize)); err != nil {
		return Record{}, &IOError{Op: "read payload", Offset: start, Err: err}
	}

	rr.count++
	return Record{Type: typ, Offset: start, Payload: rr.buf}, nil
}

// payloadChunk bounds how far the payload buffer grows ahead of the bytes
// actually read.
const payloadChunk = 1 << 20

func (rr *RecordReader) readPayload(size int) error {
	buf := rr.buf[:0]
	for len(buf) < size {
		step := min(size-len(buf), payloadChunk)
		buf = slices.Grow(buf, step)
		n, err := io.ReadFull(rr.r, buf[len(buf):len(buf)+step])
		buf = buf[:len(buf)+n]
		rr.offset += int64(n)
		if err != nil {
			rr.buf = buf[:0]
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			return err
		}
	}
	rr.buf = buf
	return nil
}

// Offset returns the number of bytes consumed so far.
func (rr *RecordReader) Offset() int64 {
	return rr.offset
}
