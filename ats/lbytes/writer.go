package lbytes

import (
	"encoding/binary"
	"math"
)

func NewBytesWriter(capacity int) *Writer {
	w := &Writer{}
	w.Grow(capacity)
	return w
}

func (w *Writer) WriteUint16(value uint16) {
	bs := make([]byte, 2)
	binary.LittleEndian.PutUint16(bs, value)
	w.Write(bs)
}

func (w *Writer) WriteUint32(value uint32) {
	bs := make([]byte, 4)
	binary.LittleEndian.PutUint32(bs, value)
	w.Write(bs)
}

func (w *Writer) WriteUint64(value uint64) {
	bs := make([]byte, 8)
	binary.LittleEndian.PutUint64(bs, value)
	w.Write(bs)
}

func (w *Writer) WriteFloat32(value float32) {
	w.WriteUint32(math.Float32bits(value))
}

func (w *Writer) WriteFloat64(value float64) {
	w.WriteUint64(math.Float64bits(value))
}

// WriteText pads value with zero bytes up to n. The caller checks that value fits.
func (w *Writer) WriteText(value string, n int) {
	w.WriteString(value)
	w.Write(CreateZeroBytes(n - len(value)))
}

func CreateZeroBytes(n int) []byte {
	if n <= 0 {
		return []byte{}
	}
	return make([]byte, n)
}
