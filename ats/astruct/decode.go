package astruct

import (
	"atsconv/ats/lbytes"
	"atsconv/ds"
	"github.com/pkg/errors"
)

func widenSigned[T int8 | int16 | int32 | int64](v T) any       { return int64(v) }
func widenUnsigned[T uint8 | uint16 | uint32 | uint64](v T) any { return uint64(v) }
func widenFloat[T float32 | float64](v T) any                   { return float64(v) }

func createReadFunction(reader *lbytes.Reader, field Field) (lbytes.ReadFunction, error) {
	switch field.Kind {
	case KindInt8:
		return lbytes.CreateReadFunction(reader.ReadInt8, widenSigned[int8]), nil
	case KindInt16:
		return lbytes.CreateReadFunction(reader.ReadInt16, widenSigned[int16]), nil
	case KindInt32:
		return lbytes.CreateReadFunction(reader.ReadInt, widenSigned[int32]), nil
	case KindInt64:
		return lbytes.CreateReadFunction(reader.ReadLong, widenSigned[int64]), nil
	case KindUint8:
		return lbytes.CreateReadFunction(reader.ReadUint8, widenUnsigned[uint8]), nil
	case KindUint16:
		return lbytes.CreateReadFunction(reader.ReadUint16, widenUnsigned[uint16]), nil
	case KindUint32:
		return lbytes.CreateReadFunction(reader.ReadUint32, widenUnsigned[uint32]), nil
	case KindUint64:
		return lbytes.CreateReadFunction(reader.ReadUint64, widenUnsigned[uint64]), nil
	case KindFloat32:
		return lbytes.CreateReadFunction(reader.ReadFloat32, widenFloat[float32]), nil
	case KindFloat64:
		return lbytes.CreateReadFunction(reader.ReadFloat64, widenFloat[float64]), nil
	case KindText:
		return lbytes.CreateTextReadFunction(reader, field.Width), nil
	}
	return nil, ds.ErrUnreachableCode{Caller: "astruct.createReadFunction", Value: field.Kind}
}

// Decode reads one record laid out by schema from the start of bs. Bytes
// after the schema width are ignored.
func Decode(schema Schema, bs []byte) (*Record, error) {
	if len(bs) < schema.width {
		field, offset := schema.firstOverflow(len(bs))
		return nil, FormatError{
			Schema:   schema.name,
			Field:    field.Name,
			Offset:   offset,
			Expected: schema.width,
			Actual:   len(bs),
			Reason:   "buffer shorter than schema",
		}
	}

	reader := lbytes.NewBytesReader(bs[:schema.width])
	instructions := make([]lbytes.Instruction, 0, len(schema.fields))
	for _, field := range schema.fields {
		readFunction, err := createReadFunction(reader, field)
		if err != nil {
			return nil, err
		}
		instructions = append(instructions, lbytes.Instruction{Key: field.Name, ReadFunction: readFunction})
	}

	record, err := lbytes.ExecuteInstructions(instructions)
	if err != nil {
		err := errors.Wrapf(err, `astruct.Decode error with schema "%s"`, schema.name)
		return nil, err
	}
	return record, nil
}

// Unmarshal maps a record onto a typed struct by its json tags. Record keys
// the struct does not declare are an error.
func Unmarshal[T any](record *Record) (*T, error) {
	t, err := lbytes.ConvertTo[T](record)
	if err != nil {
		err := errors.Wrap(err, "astruct.Unmarshal error")
		return nil, err
	}
	return t, nil
}

func (s Schema) firstOverflow(n int) (Field, int) {
	for i, field := range s.fields {
		if s.offsets[i]+field.Width > n {
			return field, s.offsets[i]
		}
	}
	return Field{}, s.width
}
