package asample

import (
	"bufio"
	"encoding/binary"
	"io"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// EffectiveScale folds the dipole length into the LSB of an electric
// channel recorded in mV, giving samples in mV/km. Other channels keep
// their LSB and units.
func EffectiveScale(channelType string, units string, dipoleLength float64, lsb float64) (float64, string) {
	if strings.HasPrefix(channelType, "E") && units == "mV" && dipoleLength > minDipoleLength {
		return lsb * (1000.0 / dipoleLength), ElectricFieldUnits
	}
	return lsb, units
}

// NewReader reads samples of width bytes, 4 or 8, and multiplies them by lsb.
func NewReader(r io.Reader, width int, lsb float64) *Reader {
	if width != 8 {
		width = 4
	}
	return &Reader{
		r:     bufio.NewReaderSize(r, ChunkSize*width),
		width: width,
		lsb:   lsb,
		buf:   make([]byte, ChunkSize*width),
	}
}

func (r *Reader) decode(bs []byte) float64 {
	if r.width == 8 {
		return r.lsb * float64(int64(binary.LittleEndian.Uint64(bs)))
	}
	return r.lsb * float64(int32(binary.LittleEndian.Uint32(bs)))
}

// Read fills dst with up to ChunkSize samples. It returns io.EOF once the
// data is exhausted and a TrailingBytesError if the data ends inside a
// sample.
func (r *Reader) Read(dst []float64) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(dst) > ChunkSize {
		dst = dst[:ChunkSize]
	}

	bs := r.buf[:len(dst)*r.width]
	m, err := io.ReadFull(r.r, bs)
	k := m / r.width
	for i := 0; i < k; i++ {
		dst[i] = r.decode(bs[i*r.width:])
	}

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		r.err = io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF) && m%r.width == 0:
		r.err = io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		r.err = TrailingBytesError{Width: r.width, Count: m % r.width}
	default:
		r.err = errors.Wrap(err, "Reader.Read error")
	}

	if k > 0 {
		return k, nil
	}
	return 0, r.err
}

// ReadAll materializes the remaining samples.
func ReadAll(r *Reader) ([]float64, error) {
	samples := make([]float64, 0, ChunkSize)
	chunk := make([]float64, ChunkSize)
	for {
		n, err := r.Read(chunk)
		samples = append(samples, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// Copy writes the samples of r to w as little-endian float64 values and
// returns how many were written.
func Copy(w io.Writer, r *Reader) (int64, error) {
	chunk := make([]float64, ChunkSize)
	out := make([]byte, ChunkSize*OutputWidth)
	written := int64(0)
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			for i, sample := range chunk[:n] {
				binary.LittleEndian.PutUint64(out[i*OutputWidth:], math.Float64bits(sample))
			}
			if _, err := w.Write(out[:n*OutputWidth]); err != nil {
				return written, errors.Wrap(err, "Copy error")
			}
			written += int64(n)
		}
		if errors.Is(err, io.EOF) {
			return written, nil
		}
		if err != nil {
			return written, err
		}
	}
}
