package astruct

import (
	"fmt"
	"math"
	"reflect"

	"atsconv/ats/lbytes"
	"atsconv/ds"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Encode writes record in schema order. Every schema field must be present
// with its canonical Go type, integers must fit their width and text must fit
// without truncation. Keys the schema does not know are rejected.
func Encode(schema Schema, record *Record) ([]byte, error) {
	unknownKeys := lo.Filter(
		record.Keys(),
		func(key string, _ int) bool { return !schema.Has(key) },
	)
	if len(unknownKeys) > 0 {
		return nil, FormatError{
			Schema: schema.name,
			Field:  unknownKeys[0],
			Offset: schema.width,
			Reason: "field is not part of the schema",
		}
	}

	writer := lbytes.NewBytesWriter(schema.width)
	for i, field := range schema.fields {
		offset := schema.offsets[i]
		value, ok := record.Get(field.Name)
		if !ok {
			return nil, FormatError{
				Schema:   schema.name,
				Field:    field.Name,
				Offset:   offset,
				Expected: field.Width,
				Reason:   "missing field",
			}
		}
		if err := encodeValue(writer, field, value); err != nil {
			err.Schema = schema.name
			err.Offset = offset
			return nil, *err
		}
	}
	return writer.Bytes(), nil
}

func encodeValue(writer *lbytes.Writer, field Field, value any) *FormatError {
	mismatch := func(reason string) *FormatError {
		return &FormatError{
			Field:    field.Name,
			Expected: field.Width,
			Actual:   field.Width,
			Reason:   reason,
		}
	}

	switch {
	case field.Kind.IsSigned():
		v, ok := value.(int64)
		if !ok {
			return mismatch(fmt.Sprintf("expected int64 for %s, got %T", field.Kind, value))
		}
		bits := field.Width * 8
		if bits < 64 && (v < -(1<<(bits-1)) || v > 1<<(bits-1)-1) {
			return mismatch(fmt.Sprintf("value %d overflows %s", v, field.Kind))
		}
		writeInteger(writer, uint64(v), field.Width)
	case field.Kind.IsUnsigned():
		v, ok := value.(uint64)
		if !ok {
			return mismatch(fmt.Sprintf("expected uint64 for %s, got %T", field.Kind, value))
		}
		bits := field.Width * 8
		if bits < 64 && v > 1<<bits-1 {
			return mismatch(fmt.Sprintf("value %d overflows %s", v, field.Kind))
		}
		writeInteger(writer, v, field.Width)
	case field.Kind == KindFloat32:
		v, ok := value.(float64)
		if !ok {
			return mismatch(fmt.Sprintf("expected float64 for %s, got %T", field.Kind, value))
		}
		if !math.IsInf(v, 0) && math.Abs(v) > math.MaxFloat32 {
			return mismatch(fmt.Sprintf("value %g overflows %s", v, field.Kind))
		}
		writer.WriteFloat32(float32(v))
	case field.Kind == KindFloat64:
		v, ok := value.(float64)
		if !ok {
			return mismatch(fmt.Sprintf("expected float64 for %s, got %T", field.Kind, value))
		}
		writer.WriteFloat64(v)
	case field.Kind == KindText:
		v, ok := value.(string)
		if !ok {
			return mismatch(fmt.Sprintf("expected string for %s, got %T", field.Kind, value))
		}
		if len(v) > field.Width {
			err := mismatch("text longer than field")
			err.Actual = len(v)
			return err
		}
		writer.WriteText(v, field.Width)
	default:
		return mismatch(ds.ErrUnreachableCode{Caller: "astruct.encodeValue", Value: field.Kind}.Error())
	}
	return nil
}

func writeInteger(writer *lbytes.Writer, v uint64, width int) {
	switch width {
	case 1:
		writer.WriteByte(byte(v))
	case 2:
		writer.WriteUint16(uint16(v))
	case 4:
		writer.WriteUint32(uint32(v))
	default:
		writer.WriteUint64(v)
	}
}

// FromStruct builds a record for schema out of the json tagged fields of v.
// Fields of v that the schema does not list are left out.
func FromStruct(schema Schema, v any) (*Record, error) {
	values := map[string]any{}
	if err := mapstructure.Decode(v, &values); err != nil {
		err := errors.Wrapf(err, `astruct.FromStruct error reading "%T"`, v)
		return nil, err
	}

	record := NewRecord()
	for i, field := range schema.fields {
		raw, ok := values[field.Name]
		if !ok {
			return nil, FormatError{
				Schema:   schema.name,
				Field:    field.Name,
				Offset:   schema.offsets[i],
				Expected: field.Width,
				Reason:   "missing field",
			}
		}
		value, err := coerce(field, raw)
		if err != nil {
			return nil, FormatError{
				Schema:   schema.name,
				Field:    field.Name,
				Offset:   schema.offsets[i],
				Expected: field.Width,
				Actual:   field.Width,
				Reason:   err.Error(),
			}
		}
		record.Put(field.Name, value)
	}
	return record, nil
}

// coerce widens a struct field value to the canonical type of its kind.
func coerce(field Field, raw any) (any, error) {
	value := reflect.ValueOf(raw)
	switch {
	case field.Kind == KindText:
		if value.Kind() != reflect.String {
			return nil, errors.Errorf("expected string, got %T", raw)
		}
		return value.String(), nil
	case field.Kind.IsSigned():
		if !value.CanInt() {
			return nil, errors.Errorf("expected signed integer, got %T", raw)
		}
		return value.Int(), nil
	case field.Kind.IsUnsigned():
		if !value.CanUint() {
			return nil, errors.Errorf("expected unsigned integer, got %T", raw)
		}
		return value.Uint(), nil
	default:
		if !value.CanFloat() {
			return nil, errors.Errorf("expected float, got %T", raw)
		}
		return value.Float(), nil
	}
}
