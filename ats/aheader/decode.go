package aheader

import (
	"io"
	"os"

	"atsconv/ats/aslice"
	"atsconv/ats/astruct"
	"atsconv/ats/lbytes"
	"github.com/pkg/errors"
)

// Peek reads the declared header length and the header version from the
// start of r and rewinds it.
func Peek(r io.ReadSeeker) (uint16, int16, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, 0, errors.Wrap(err, "Peek error")
	}
	bs := make([]byte, PeekSize)
	if _, err := io.ReadFull(r, bs); err != nil {
		return 0, 0, errors.Wrap(err, "Peek error")
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, 0, errors.Wrap(err, "Peek error")
	}

	reader := lbytes.NewBytesReader(bs)
	length, _ := reader.ReadUint16()
	version, _ := reader.ReadInt16()
	return length, version, nil
}

// Decode reads the header and its slice headers from r. With exactly one
// slice the header takes samples and start from it and no entries are
// returned. The reader is left at the end of the last slice header read.
func Decode(r io.ReadSeeker) (*Header, []aslice.Entry, error) {
	length, version, err := Peek(r)
	if err != nil {
		return nil, nil, err
	}

	layout := LayoutFor(version)
	size := int(length)
	if layout == LayoutSliced {
		size = DefaultHeaderSize
	}
	if size < PeekSize {
		err := astruct.FormatError{
			Schema:   layout.Schema().Name(),
			Field:    "header_length",
			Expected: PeekSize,
			Actual:   size,
			Reason:   "declared header length too short",
		}
		return nil, nil, err
	}

	bs := make([]byte, size)
	if _, err := io.ReadFull(r, bs); err != nil {
		err := errors.Wrapf(err, "Decode error reading %d header bytes", size)
		return nil, nil, err
	}

	record, err := astruct.Decode(layout.Schema().Truncate(size), bs)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Decode error")
	}
	header, err := astruct.Unmarshal[Header](record)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Decode error")
	}

	slices, err := decodeSlices(r, int(header.NumSlices))
	if err != nil {
		return nil, nil, errors.Wrap(err, "Decode error")
	}
	if len(slices) == 1 {
		header.Samples = slices[0].Samples
		header.Start = slices[0].Start
		slices = nil
	}

	return header, slices, nil
}

func decodeSlices(r io.Reader, numSlices int) ([]aslice.Entry, error) {
	if numSlices == 0 {
		return nil, nil
	}
	bs := make([]byte, aslice.CalculateBlockLength(numSlices))
	if _, err := io.ReadFull(r, bs); err != nil {
		err := errors.Wrapf(err, "decodeSlices error reading %d slice headers", numSlices)
		return nil, err
	}
	return aslice.DecodeBlock(lbytes.NewBytesReader(bs), numSlices)
}

// Read decodes the header of the ats file at path. Any failure comes back
// as a HeaderReadError.
func Read(path string) (header *Header, slices []aslice.Entry, err error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, HeaderReadError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			header, slices = nil, nil
			err = HeaderReadError{Path: path, Err: closeErr}
		}
	}()

	header, slices, err = Decode(file)
	if err != nil {
		return nil, nil, HeaderReadError{Path: path, Err: err}
	}
	return header, slices, nil
}
