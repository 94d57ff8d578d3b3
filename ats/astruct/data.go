// Package astruct describes fixed-offset little-endian binary records and
// converts them to and from ordered records.
package astruct

import (
	"fmt"

	"atsconv/ds"
)

type (
	Kind int
	// Field is one entry of a Schema. Width is only read for Text, numeric
	// kinds always use their natural width.
	Field struct {
		Name  string
		Kind  Kind
		Width int
	}
	// Schema is an immutable record layout. Offsets are contiguous and the
	// total width is the sum of the field widths.
	Schema struct {
		name    string
		fields  []Field
		offsets []int
		index   map[string]int
		width   int
	}
	// Record holds decoded values by field name, in schema order. Signed
	// kinds decode to int64, unsigned kinds to uint64, floats to float64 and
	// text to string.
	Record = ds.LinkedHashMap[string, any]

	FormatError struct {
		Schema   string
		Field    string
		Offset   int
		Expected int
		Actual   int
		Reason   string
	}
)

const (
	KindInt8 Kind = iota
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindFloat32
	KindFloat64
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindInt8:
		return "int8"
	case KindInt16:
		return "int16"
	case KindInt32:
		return "int32"
	case KindInt64:
		return "int64"
	case KindUint8:
		return "uint8"
	case KindUint16:
		return "uint16"
	case KindUint32:
		return "uint32"
	case KindUint64:
		return "uint64"
	case KindFloat32:
		return "float32"
	case KindFloat64:
		return "float64"
	case KindText:
		return "text"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Width is the natural byte width of a numeric kind, 0 for text.
func (k Kind) Width() int {
	switch k {
	case KindInt8, KindUint8:
		return 1
	case KindInt16, KindUint16:
		return 2
	case KindInt32, KindUint32, KindFloat32:
		return 4
	case KindInt64, KindUint64, KindFloat64:
		return 8
	}
	return 0
}

func (k Kind) IsSigned() bool {
	return k >= KindInt8 && k <= KindInt64
}

func (k Kind) IsUnsigned() bool {
	return k >= KindUint8 && k <= KindUint64
}

func (k Kind) IsFloat() bool {
	return k == KindFloat32 || k == KindFloat64
}

func Int8(name string) Field    { return Field{Name: name, Kind: KindInt8} }
func Int16(name string) Field   { return Field{Name: name, Kind: KindInt16} }
func Int32(name string) Field   { return Field{Name: name, Kind: KindInt32} }
func Int64(name string) Field   { return Field{Name: name, Kind: KindInt64} }
func Uint8(name string) Field   { return Field{Name: name, Kind: KindUint8} }
func Uint16(name string) Field  { return Field{Name: name, Kind: KindUint16} }
func Uint32(name string) Field  { return Field{Name: name, Kind: KindUint32} }
func Uint64(name string) Field  { return Field{Name: name, Kind: KindUint64} }
func Float32(name string) Field { return Field{Name: name, Kind: KindFloat32} }
func Float64(name string) Field { return Field{Name: name, Kind: KindFloat64} }

func Text(name string, width int) Field {
	return Field{Name: name, Kind: KindText, Width: width}
}

func (r FormatError) Error() string {
	return fmt.Sprintf(
		`schema "%s" field "%s" at offset %d: %s (expected %d bytes, got %d)`,
		r.Schema, r.Field, r.Offset, r.Reason, r.Expected, r.Actual,
	)
}

func NewRecord() *Record {
	return ds.NewLinkedHashMap[string, any]()
}
