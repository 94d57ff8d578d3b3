package asample

import (
	"bufio"
	"fmt"
)

type (
	// Reader yields scaled samples from a stream of little-endian signed
	// integers. It reads ahead at most one chunk and cannot be rewound.
	Reader struct {
		r     *bufio.Reader
		width int
		lsb   float64
		buf   []byte
		err   error
	}
	// Options locate the samples in the source file and scale them.
	Options struct {
		Offset int64
		Width  int
		LSB    float64
	}

	ConversionError struct {
		Source string
		Path   string
		Err    error
	}
	TrailingBytesError struct {
		Width int
		Count int
	}
)

const (
	// ChunkSize is the number of samples read or written in one go.
	ChunkSize = 8192
	// OutputWidth is the byte width of one converted sample.
	OutputWidth = 8

	ElectricFieldUnits = "mV/km"
	minDipoleLength    = 0.001
)

func (r ConversionError) Error() string {
	return fmt.Sprintf("unable to convert %s to %s: %v", r.Source, r.Path, r.Err)
}

func (r ConversionError) Unwrap() error {
	return r.Err
}

func (r ConversionError) Cause() error {
	return r.Err
}

func (r TrailingBytesError) Error() string {
	return fmt.Sprintf("data section ends with %d bytes, less than one %d byte sample", r.Count, r.Width)
}
