package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

// Offset is the position of the next byte to be read.
func (b *Reader) Offset() int {
	return int(b.Size()) - b.Len()
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	bs := make([]byte, n)
	// add return early to avoid EOF error
	// when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	if _, err := io.ReadFull(b, bs); err != nil {
		return nil, err
	}
	return bs, nil
}

func (b *Reader) ReadUint8() (uint8, error) {
	bs, err := b.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadInt8() (int8, error) {
	result, err := b.ReadUint8()
	return int8(result), err
}

func (b *Reader) ReadUint16() (uint16, error) {
	bs, err := b.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(bs), nil
}

func (b *Reader) ReadInt16() (int16, error) {
	result, err := b.ReadUint16()
	return int16(result), err
}

func (b *Reader) ReadUint32() (uint32, error) {
	bs, err := b.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadInt() (int32, error) {
	result, err := b.ReadUint32()
	return int32(result), err
}

func (b *Reader) ReadUint64() (uint64, error) {
	bs, err := b.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(bs), nil
}

func (b *Reader) ReadLong() (int64, error) {
	result, err := b.ReadUint64()
	return int64(result), err
}

func (b *Reader) ReadFloat32() (float32, error) {
	result, err := b.ReadUint32()
	return math.Float32frombits(result), err
}

func (b *Reader) ReadFloat64() (float64, error) {
	result, err := b.ReadUint64()
	return math.Float64frombits(result), err
}

// ReadText reads a fixed width text field and cuts it at the first zero byte.
// Padding spaces are left as they are.
func (b *Reader) ReadText(n int) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(bs, 0); i >= 0 {
		bs = bs[:i]
	}
	return string(bs), nil
}
