package lbytes

import (
	"atsconv/ds"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// ExecuteInstructions runs every instruction in order and keeps the values
// by key, in the same order the instructions were given.
func ExecuteInstructions(instructions []Instruction) (*ds.LinkedHashMap[string, any], error) {
	lhm := ds.NewLinkedHashMap[string, any]()
	for _, instruction := range instructions {
		value, err := instruction.ReadFunction()
		if err != nil {
			err := errors.Wrapf(err, `ExecuteInstructions error reading key "%v"`, instruction.Key)
			return nil, err
		}
		lhm.Put(instruction.Key, value)
	}
	return lhm, nil
}

// ConvertTo creates the final value t with type T by matching the keys of
// lhm against the json tags of T. Values are assigned as they are, so floats
// like NaN survive. Keys that T does not know about are rejected, so a
// misspelled field name cannot silently become a zero value.
func ConvertTo[T any](lhm *ds.LinkedHashMap[string, any]) (*T, error) {
	values := make(map[string]any, lhm.Len())
	for _, key := range lhm.Keys() {
		value, _ := lhm.Get(key)
		values[key] = value
	}

	var t T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		ErrorUnused: true,
		Result:      &t,
	})
	if err != nil {
		return nil, errors.Wrapf(err, `ConvertTo error creating decoder for type "%T"`, t)
	}
	if err := decoder.Decode(values); err != nil {
		return nil, errors.Wrapf(err, `ConvertTo error assigning keys %v to type "%T"`, lhm.Keys(), t)
	}

	return &t, nil
}

func CreateNBytesReadFunction(reader *Reader, n int) ReadFunction {
	return func() (any, error) {
		return reader.ReadBytes(n)
	}
}

func CreateTextReadFunction(reader *Reader, n int) ReadFunction {
	return func() (any, error) {
		return reader.ReadText(n)
	}
}

// CreateReadFunction adapts a typed read method into a ReadFunction that
// widens its result with convert.
func CreateReadFunction[T any](read func() (T, error), convert func(T) any) ReadFunction {
	return func() (any, error) {
		value, err := read()
		if err != nil {
			return nil, err
		}
		return convert(value), nil
	}
}
