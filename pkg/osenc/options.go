package osenc

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Projection maps point geometry into the planar space of the vertex
	// buffer. Nil keeps lon/lat as x/y.
	Projection Projection

	// Catalog declares attribute value types. Nil uses the built-in S-57
	// attribute catalogue.
	Catalog AttributeCatalog

	// Charset names the encoding of string attributes, e.g. "iso-8859-1" or
	// "windows-1252". Empty means UTF-8.
	Charset string

	// ValidateGeometry checks that every element addresses data inside the
	// decoded buffers.
	ValidateGeometry bool

	// ObjectClassFilter keeps only objects of the listed classes (acronyms
	// such as "DEPARE"). Empty keeps everything.
	ObjectClassFilter []string
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateGeometry:  true,
		ObjectClassFilter: nil,
	}
}

// LookupCharset returns the text encoding registered under name. Names
// follow the WHATWG encoding labels, so "latin1", "iso-8859-1" and
// "windows-1252" are all accepted. UTF-8 and the empty name return a nil
// encoding, meaning no transcoding.
func LookupCharset(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return nil, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", name, err)
	}
	return enc, nil
}

// classFilter returns the set of class acronyms to keep, or nil when every
// class is kept.
func classFilter(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	keep := make(map[string]bool, len(names))
	for _, n := range names {
		keep[strings.ToUpper(n)] = true
	}
	return keep
}
