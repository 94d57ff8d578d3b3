package atss

import (
	"github.com/pkg/errors"
)

// CalibrationLookup finds a measured sensor curve. Implementations return
// ErrCalibrationNotFound (possibly wrapped) when nothing matches.
type CalibrationLookup interface {
	Lookup(sensor string, serial int, chopper int) (f, a, p []float64, err error)
}

// AttachCalibration fills the curve of channel from lookup. A missing curve
// leaves channel untouched and is not an error.
func AttachCalibration(channel *Channel, lookup CalibrationLookup) error {
	if lookup == nil {
		return nil
	}
	calibration := channel.Calibration
	f, a, p, err := lookup.Lookup(calibration.Sensor, calibration.Serial, calibration.Chopper)
	if errors.Is(err, ErrCalibrationNotFound) {
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "AttachCalibration error: %s %d", calibration.Sensor, calibration.Serial)
	}
	calibration.F, calibration.A, calibration.P = f, a, p
	if problems := calibrationProblems(calibration); len(problems) > 0 {
		return ValidationError{Subject: "calibration of " + calibration.Sensor, Problems: problems}
	}
	channel.Calibration = calibration
	return nil
}
