package osenc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beetlebugorg/osenc/internal/parser"
)

// zipScheme prefixes charts read straight out of a zip archive:
// zip:///path/to/charts.zip!ENC_ROOT/SE3AQ001/SE3AQ001.S57
const zipScheme = "zip://"

// openChart opens a chart file or a zip:// entry for reading.
func openChart(name string) (io.ReadCloser, error) {
	if !strings.HasPrefix(name, zipScheme) {
		f, err := os.Open(name)
		if err != nil {
			return nil, &parser.IOError{Op: "open", Path: name, Err: err}
		}
		return f, nil
	}

	parts := strings.SplitN(strings.TrimPrefix(name, zipScheme), "!", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid zip URL format: %s (expected zip://path!entry)", name)
	}
	zipPath, entryPath := parts[0], parts[1]

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, &parser.IOError{Op: "open", Path: zipPath, Err: err}
	}
	for _, f := range zr.File {
		if f.Name != entryPath {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			zr.Close()
			return nil, &parser.IOError{Op: "open", Path: name, Err: err}
		}
		return &zipEntry{ReadCloser: rc, archive: zr}, nil
	}
	zr.Close()
	return nil, &parser.IOError{Op: "open", Path: name, Err: fmt.Errorf("file not found in zip: %s", entryPath)}
}

// zipEntry closes the archive together with the entry.
type zipEntry struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (z *zipEntry) Close() error {
	err := z.ReadCloser.Close()
	if cerr := z.archive.Close(); err == nil {
		err = cerr
	}
	return err
}

// withPath records the chart name on an *IOError, or prefixes other errors
// with it.
func withPath(err error, name string) error {
	var ioErr *parser.IOError
	if errors.As(err, &ioErr) && ioErr.Path == "" {
		ioErr.Path = name
		return err
	}
	return fmt.Errorf("%s: %w", name, err)
}
