package aslice

import (
	"atsconv/ats/astruct"
)

type (
	// Entry is one slice header of a sliced recording. A file with exactly
	// one slice takes samples and start from it.
	Entry struct {
		Samples           uint32  `json:"samples"`
		Start             uint32  `json:"start"`
		DCOffsetCorrValue float64 `json:"DCOffsetCorrValue"`
		GainStage1        float32 `json:"gain_stage1"`
		GainStage2        float32 `json:"gain_stage2"`
		DCOffsetCorrOn    int8    `json:"DCOffsetCorrOn"`
		G0                int8    `json:"g0"`
		G1                int8    `json:"g1"`
		G2                int8    `json:"g2"`
		G3                int8    `json:"g3"`
		G4                int8    `json:"g4"`
		G5                int8    `json:"g5"`
		G6                int8    `json:"g6"`
	}
)

const (
	DefaultEntrySize = 32
	// MaxEntries is the number of slice headers a sliced file reserves room for.
	MaxEntries = 1023
)

var Schema = astruct.NewSchema(
	"ats_slice",
	astruct.Uint32("samples"),
	astruct.Uint32("start"),
	astruct.Float64("DCOffsetCorrValue"),
	astruct.Float32("gain_stage1"),
	astruct.Float32("gain_stage2"),
	astruct.Int8("DCOffsetCorrOn"),
	astruct.Int8("g0"),
	astruct.Int8("g1"),
	astruct.Int8("g2"),
	astruct.Int8("g3"),
	astruct.Int8("g4"),
	astruct.Int8("g5"),
	astruct.Int8("g6"),
)
