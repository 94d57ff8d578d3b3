package aslice

import (
	"atsconv/ats/astruct"
	"atsconv/ats/lbytes"
	"github.com/pkg/errors"
)

func DecodeEntry(reader *lbytes.Reader) (*Entry, error) {
	bs, err := reader.ReadBytes(DefaultEntrySize)
	if err != nil {
		err := errors.Wrap(err, "DecodeEntry error")
		return nil, err
	}
	record, err := astruct.Decode(Schema, bs)
	if err != nil {
		err := errors.Wrap(err, "DecodeEntry error")
		return nil, err
	}
	entry, err := astruct.Unmarshal[Entry](record)
	if err != nil {
		err := errors.Wrap(err, "DecodeEntry error")
		return nil, err
	}

	return entry, nil
}

func DecodeBlock(reader *lbytes.Reader, numEntries int) ([]Entry, error) {
	entries := make([]Entry, 0, numEntries)
	for i := 0; i < numEntries; i++ {
		entry, err := DecodeEntry(reader)
		if err != nil {
			err := errors.Wrapf(err, "DecodeBlock error at slice %d", i)
			return nil, err
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}
