package aheader

import (
	"math"
	"strconv"

	"atsconv/ats/aslice"
	"atsconv/ats/astruct"
	"atsconv/ats/lbytes"
	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

// Encode lays out header with the layout of its version, followed by the
// slice headers. The result is zero padded up to the declared header length.
// Below the sliced layout a declared length shorter than the layout keeps
// only the fields that fit, and a non-zero value in a dropped field is a
// FormatError.
func Encode(header Header, slices []aslice.Entry) ([]byte, error) {
	layout := LayoutFor(header.HeaderVersion)
	if layout != LayoutSliced && len(slices) > 0 {
		return nil, errors.Errorf("Encode error: version %d has no slice headers", header.HeaderVersion)
	}

	schema := layout.Schema()
	record, err := astruct.FromStruct(schema, header)
	if err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}
	if layout != LayoutSliced && int(header.HeaderLength) < schema.Width() {
		schema, err = truncateRecord(schema, record, int(header.HeaderLength))
		if err != nil {
			return nil, err
		}
	}
	bs, err := astruct.Encode(schema, record)
	if err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}

	slicesBytes, err := aslice.EncodeBlock(slices)
	if err != nil {
		return nil, errors.Wrap(err, "Encode error")
	}
	bs = append(bs, slicesBytes...)
	bs = append(bs, lbytes.CreateZeroBytes(int(header.HeaderLength)-len(bs))...)
	return bs, nil
}

// truncateRecord cuts schema down to n bytes and drops the fields that no
// longer fit from record. Only zero values may be dropped.
func truncateRecord(schema astruct.Schema, record *astruct.Record, n int) (astruct.Schema, error) {
	if n < PeekSize {
		return schema, astruct.FormatError{
			Schema:   schema.Name(),
			Field:    "header_length",
			Expected: PeekSize,
			Actual:   n,
			Reason:   "declared header length too short",
		}
	}
	truncated := schema.Truncate(n)
	for _, field := range schema.Fields() {
		if truncated.Has(field.Name) {
			continue
		}
		value, _ := record.Delete(field.Name)
		if !isZero(value) {
			offset, _ := schema.Offset(field.Name)
			return schema, astruct.FormatError{
				Schema:   schema.Name(),
				Field:    field.Name,
				Offset:   offset,
				Expected: n,
				Actual:   offset + field.Width,
				Reason:   "field does not fit the declared header length",
			}
		}
	}
	return truncated, nil
}

func isZero(value any) bool {
	switch v := value.(type) {
	case int64:
		return v == 0
	case uint64:
		return v == 0
	case float64:
		return v == 0
	case string:
		return v == ""
	}
	return value == nil
}

// ToLinkedHashMap lists the header in on-disk order for display. The raw
// filter bitmasks and their padding are replaced by the decoded flags, and
// floats that are not finite are written as text.
func ToLinkedHashMap(header Header) (*orderedmap.OrderedMap, error) {
	schema := LayoutFor(header.HeaderVersion).Schema()
	record, err := astruct.FromStruct(schema, header)
	if err != nil {
		return nil, errors.Wrap(err, "ToLinkedHashMap error")
	}

	lhm := orderedmap.New()
	for _, key := range record.Keys() {
		switch key {
		case "emptylf", "emptyhf":
			continue
		case "LF_filters", "HF_filters":
			if len(header.Filters) > 0 || header.FilterRemainder > 0 {
				continue
			}
		}
		value, _ := record.Get(key)
		if f, ok := value.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
			value = strconv.FormatFloat(f, 'g', -1, 64)
		}
		lhm.Set(key, value)
	}
	for _, flag := range header.Filters {
		lhm.Set(flag, "on")
	}
	if header.FilterRemainder > 0 {
		lhm.Set("filter_remainder", header.FilterRemainder)
	}
	lhm.Set("dipole", header.Geometry)
	return lhm, nil
}
