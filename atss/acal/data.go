// Package acal holds the theoretical transfer functions of the induction
// coils, fluxgates and the SHFT sensor.
package acal

import (
	"fmt"
)

type (
	// Model is the complex sensor response in mV/nT at frequency f.
	Model interface {
		Transfer(f float64, chopper bool) complex128
	}

	// Coil is a high pass, two low passes and, with the chopper off, one
	// more high pass. Zero corners are skipped.
	Coil struct {
		Gain             float64
		HighPass         float64
		LowPass          float64
		LowPassSecond    float64
		ChopperOffCorner float64
	}
	// Flat answers the same gain at every frequency.
	Flat struct {
		Gain float64
	}
	// LowPass is a gain behind a single low pass.
	LowPass struct {
		Gain   float64
		Corner float64
	}

	ScaleConvention int

	UnknownSensorError struct {
		Sensor string
	}
)

const (
	// ConventionMillivolts divides by the transfer function in mV.
	ConventionMillivolts ScaleConvention = iota
	// ConventionLegacyVolts follows the old V based calibration: the
	// transfer function is in V and the result is divided by 1000.
	ConventionLegacyVolts
)

const (
	MFS06e  = "MFS-06e"
	MFS07e  = "MFS-07e"
	MFS07   = "MFS-07"
	MFS12e  = "MFS-12e"
	FGS02   = "FGS-02"
	FGS03e  = "FGS-03e"
	FGS05e  = "FGS-05e"
	SHFT02e = "SHFT-02e"
)

func (r ScaleConvention) String() string {
	switch r {
	case ConventionMillivolts:
		return "mV"
	case ConventionLegacyVolts:
		return "legacy V"
	default:
		return fmt.Sprintf("ScaleConvention(%d)", int(r))
	}
}

func (r UnknownSensorError) Error() string {
	return fmt.Sprintf("no transfer function for sensor %s", r.Sensor)
}
