package asample

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeInt32s(values ...int32) []byte {
	buf := bytes.Buffer{}
	for _, value := range values {
		_ = binary.Write(&buf, binary.LittleEndian, value)
	}
	return buf.Bytes()
}

func decodeFloat64s(t *testing.T, bs []byte) []float64 {
	require.Zero(t, len(bs)%OutputWidth)
	values := make([]float64, 0, len(bs)/OutputWidth)
	for i := 0; i < len(bs); i += OutputWidth {
		values = append(values, math.Float64frombits(binary.LittleEndian.Uint64(bs[i:])))
	}
	return values
}

func TestEffectiveScale(t *testing.T) {
	lsb, units := EffectiveScale("Ex", "mV", 100, 1)
	assert.InDelta(t, 10, lsb, 1e-12)
	assert.Equal(t, "mV/km", units)

	lsb, units = EffectiveScale("Hx", "mV", 100, 1)
	assert.Equal(t, 1.0, lsb)
	assert.Equal(t, "mV", units)

	lsb, units = EffectiveScale("Ey", "mV", 0.0005, 1)
	assert.Equal(t, 1.0, lsb)
	assert.Equal(t, "mV", units)

	lsb, units = EffectiveScale("Ey", "mV/km", 100, 1)
	assert.Equal(t, 1.0, lsb)
	assert.Equal(t, "mV/km", units)
}

func TestReader_ReadAll(t *testing.T) {
	reader := NewReader(bytes.NewReader(encodeInt32s(1, -2, 3, math.MaxInt32, math.MinInt32)), 4, 0.5)

	samples, err := ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.5, -1, 1.5, 0.5 * math.MaxInt32, 0.5 * math.MinInt32}, samples)

	n, err := reader.Read(make([]float64, 4))
	assert.Zero(t, n)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReader_Chunks(t *testing.T) {
	values := make([]int32, ChunkSize+3)
	for i := range values {
		values[i] = int32(i)
	}
	reader := NewReader(bytes.NewReader(encodeInt32s(values...)), 4, 1)

	chunk := make([]float64, 2*ChunkSize)
	n, err := reader.Read(chunk)
	require.NoError(t, err)
	assert.Equal(t, ChunkSize, n)

	n, err = reader.Read(chunk)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, float64(ChunkSize+2), chunk[2])
}

func TestReader_64Bit(t *testing.T) {
	buf := bytes.Buffer{}
	_ = binary.Write(&buf, binary.LittleEndian, []int64{-(1 << 40), 7})

	samples, err := ReadAll(NewReader(&buf, 8, 2))
	require.NoError(t, err)
	assert.Equal(t, []float64{-(1 << 41), 14}, samples)
}

func TestReader_TrailingBytes(t *testing.T) {
	bs := append(encodeInt32s(1, 2), 0xFF, 0xFF)
	_, err := ReadAll(NewReader(bytes.NewReader(bs), 4, 1))

	var trailingBytesError TrailingBytesError
	require.True(t, errors.As(err, &trailingBytesError))
	assert.Equal(t, 2, trailingBytesError.Count)
}

func TestConvertFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.ats")
	dst := filepath.Join(dir, "out.atss")
	header := make([]byte, 16)
	require.NoError(t, os.WriteFile(src, append(header, encodeInt32s(10, -20, 30)...), 0644))

	n, err := ConvertFile(src, dst, Options{Offset: 16, Width: 4, LSB: 0.25})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	bs, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5, -5, 7.5}, decodeFloat64s(t, bs))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestConvertFile_Failure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.ats")
	dst := filepath.Join(dir, "out.atss")
	require.NoError(t, os.WriteFile(src, append(encodeInt32s(1, 2, 3), 0x01), 0644))
	require.NoError(t, os.WriteFile(dst, []byte("stale output"), 0644))

	_, err := ConvertFile(src, dst, Options{Width: 4, LSB: 1})
	var conversionError ConversionError
	require.True(t, errors.As(err, &conversionError))
	assert.Equal(t, dst, conversionError.Path)
	assert.NoFileExists(t, dst)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	_, err = ConvertFile(filepath.Join(dir, "missing.ats"), dst, Options{Width: 4, LSB: 1})
	require.True(t, errors.As(err, &conversionError))
	assert.NoFileExists(t, dst)
}
