// Package ats turns legacy ats recordings into atss file pairs.
package ats

import (
	"atsconv/atss"
)

type (
	Options struct {
		// ScaleElectric converts electric channels from mV to mV/km using
		// the dipole length.
		ScaleElectric bool
		// Calibrations fills in measured sensor curves when set.
		Calibrations atss.CalibrationLookup
		// TheoreticalFrequencies, when not empty, give a theoretical curve
		// to channels without a measured one.
		TheoreticalFrequencies []float64
		// Force overwrites existing output files.
		Force bool
	}

	// Result is the outcome of converting one file of a batch.
	Result struct {
		Path       string
		SamplePath string
		Channel    atss.Channel
		Err        error
	}

	ExistsError struct {
		Path string
	}
)

const (
	Extension = ".ats"
	// DefaultJobs bounds the number of files converted at once.
	DefaultJobs = 4
)

func (r ExistsError) Error() string {
	return "output exists, use force to overwrite: " + r.Path
}
