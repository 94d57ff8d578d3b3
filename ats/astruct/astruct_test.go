package astruct

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = NewSchema(
	"test",
	Uint16("header_length"),
	Int16("header_version"),
	Float32("sample_rate"),
	Int8("chopper"),
	Text("channel_type", 2),
	Float64("lsbval"),
	Uint64("samples_64bit"),
)

type testStruct struct {
	HeaderLength  uint16  `json:"header_length"`
	HeaderVersion int16   `json:"header_version"`
	SampleRate    float32 `json:"sample_rate"`
	Chopper       int8    `json:"chopper"`
	ChannelType   string  `json:"channel_type"`
	LSBVal        float64 `json:"lsbval"`
	Samples64Bit  uint64  `json:"samples_64bit"`
}

func TestSchema_Layout(t *testing.T) {
	assert.Equal(t, 27, testSchema.Width())
	assert.Equal(t, 7, testSchema.Len())

	offset, ok := testSchema.Offset("channel_type")
	assert.True(t, ok)
	assert.Equal(t, 9, offset)

	offset, ok = testSchema.Offset("samples_64bit")
	assert.True(t, ok)
	assert.Equal(t, 19, offset)

	_, ok = testSchema.Offset("missing")
	assert.False(t, ok)
}

func TestSchema_Truncate(t *testing.T) {
	truncated := testSchema.Truncate(12)
	assert.Equal(t, 11, truncated.Width())
	assert.False(t, truncated.Has("lsbval"))
	assert.True(t, truncated.Has("channel_type"))

	assert.Equal(t, testSchema.Width(), testSchema.Truncate(1024).Width())
}

func TestNewSchema_Duplicated(t *testing.T) {
	assert.Panics(t, func() {
		NewSchema("dup", Int8("a"), Int16("a"))
	})
	assert.Panics(t, func() {
		NewSchema("empty text", Text("a", 0))
	})
}

func TestDecode_ShortBuffer(t *testing.T) {
	_, err := Decode(testSchema, make([]byte, 10))
	require.Error(t, err)

	var formatError FormatError
	require.True(t, errors.As(err, &formatError))
	assert.Equal(t, "channel_type", formatError.Field)
	assert.Equal(t, 9, formatError.Offset)
	assert.Equal(t, 27, formatError.Expected)
	assert.Equal(t, 10, formatError.Actual)
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	input := testStruct{
		HeaderLength:  1024,
		HeaderVersion: -3,
		SampleRate:    0.1,
		Chopper:       1,
		ChannelType:   "Ex",
		LSBVal:        -2.5e-7,
		Samples64Bit:  1 << 40,
	}
	record, err := FromStruct(testSchema, input)
	require.NoError(t, err)

	bs, err := Encode(testSchema, record)
	require.NoError(t, err)
	require.Len(t, bs, testSchema.Width())

	decoded, err := Decode(testSchema, bs)
	require.NoError(t, err)

	value, _ := decoded.Get("header_version")
	assert.Equal(t, int64(-3), value)
	value, _ = decoded.Get("samples_64bit")
	assert.Equal(t, uint64(1<<40), value)
	value, _ = decoded.Get("sample_rate")
	assert.Equal(t, float64(float32(0.1)), value)

	output, err := Unmarshal[testStruct](decoded)
	require.NoError(t, err)
	assert.Equal(t, input, *output)
}

func TestDecode_TextKeepsWhitespace(t *testing.T) {
	schema := NewSchema("text", Text("a", 4), Text("b", 4))
	record, err := Decode(schema, []byte{' ', 'H', 'x', 0, 'E', 'y', ' ', ' '})
	require.NoError(t, err)

	a, _ := record.Get("a")
	b, _ := record.Get("b")
	assert.Equal(t, " Hx", a)
	assert.Equal(t, "Ey  ", b)
}

func TestEncode_Errors(t *testing.T) {
	schema := NewSchema("errors", Int8("a"), Text("b", 2))
	tests := map[string]struct {
		values map[string]any
		field  string
		offset int
	}{
		"text too long": {map[string]any{"a": int64(1), "b": "Exy"}, "b", 1},
		"wrong type":    {map[string]any{"a": 1, "b": "Ex"}, "a", 0},
		"overflow":      {map[string]any{"a": int64(128), "b": "Ex"}, "a", 0},
		"missing":       {map[string]any{"a": int64(1)}, "b", 1},
		"unknown":       {map[string]any{"a": int64(1), "b": "Ex", "c": "?"}, "c", 3},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			record := NewRecord()
			for _, key := range []string{"a", "b", "c"} {
				if value, ok := test.values[key]; ok {
					record.Put(key, value)
				}
			}
			_, err := Encode(schema, record)
			var formatError FormatError
			require.True(t, errors.As(err, &formatError))
			assert.Equal(t, test.field, formatError.Field)
			assert.Equal(t, test.offset, formatError.Offset)
		})
	}
}

func TestEncode_PadsText(t *testing.T) {
	schema := NewSchema("pad", Text("a", 4))
	record := NewRecord()
	record.Put("a", "E")

	bs, err := Encode(schema, record)
	require.NoError(t, err)
	assert.Equal(t, []byte{'E', 0, 0, 0}, bs)
}

func TestUnmarshal_UnknownField(t *testing.T) {
	record := NewRecord()
	record.Put("header_lenght", uint64(1024))

	_, err := Unmarshal[testStruct](record)
	assert.Error(t, err)
}

func TestRoundTrip_NonFiniteFloats(t *testing.T) {
	input := testStruct{
		HeaderLength: 1024,
		SampleRate:   float32(math.Inf(1)),
		ChannelType:  "Hx",
		LSBVal:       math.NaN(),
	}
	record, err := FromStruct(testSchema, input)
	require.NoError(t, err)
	bs, err := Encode(testSchema, record)
	require.NoError(t, err)

	decoded, err := Decode(testSchema, bs)
	require.NoError(t, err)
	output, err := Unmarshal[testStruct](decoded)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(output.LSBVal))
	assert.True(t, math.IsInf(float64(output.SampleRate), 1))
	assert.Equal(t, "Hx", output.ChannelType)
}

func TestFromStruct_WrongSign(t *testing.T) {
	type wrongSign struct {
		A uint8 `json:"a"`
	}
	_, err := FromStruct(NewSchema("sign", Int8("a")), wrongSign{A: 1})
	var formatError FormatError
	require.True(t, errors.As(err, &formatError))
	assert.Equal(t, "a", formatError.Field)
}
