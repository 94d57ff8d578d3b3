package aslice

import (
	"testing"

	"atsconv/ats/lbytes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema_Width(t *testing.T) {
	assert.Equal(t, DefaultEntrySize, Schema.Width())
}

func TestEncodeDecodeBlock(t *testing.T) {
	entries := []Entry{
		{Samples: 500, Start: 1000, GainStage1: 1, GainStage2: 2},
		{Samples: 4096, Start: 1600000000, DCOffsetCorrValue: 0.25, DCOffsetCorrOn: 1, G3: -1},
	}
	bs, err := EncodeBlock(entries)
	require.NoError(t, err)
	require.Len(t, bs, CalculateBlockLength(2))

	decoded, err := DecodeBlock(lbytes.NewBytesReader(bs), 2)
	require.NoError(t, err)
	assert.Equal(t, entries, decoded)
}

func TestDecodeBlock_Truncated(t *testing.T) {
	bs, err := EncodeEntry(Entry{Samples: 1})
	require.NoError(t, err)

	_, err = DecodeBlock(lbytes.NewBytesReader(bs), 2)
	assert.Error(t, err)
}
