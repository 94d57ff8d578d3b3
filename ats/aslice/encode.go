package aslice

import (
	"atsconv/ats/astruct"
	"github.com/pkg/errors"
)

func EncodeEntry(entry Entry) ([]byte, error) {
	record, err := astruct.FromStruct(Schema, entry)
	if err != nil {
		return nil, errors.Wrap(err, "EncodeEntry error")
	}
	bs, err := astruct.Encode(Schema, record)
	if err != nil {
		return nil, errors.Wrap(err, "EncodeEntry error")
	}
	return bs, nil
}

func EncodeBlock(entries []Entry) ([]byte, error) {
	bs := make([]byte, 0, CalculateBlockLength(len(entries)))
	for _, entry := range entries {
		entryBytes, err := EncodeEntry(entry)
		if err != nil {
			return nil, err
		}
		bs = append(bs, entryBytes...)
	}
	return bs, nil
}

func CalculateBlockLength(numEntries int) int {
	return numEntries * DefaultEntrySize
}
