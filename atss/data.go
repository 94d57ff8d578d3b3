// Package atss is the channel record that goes with a converted sample file:
// the identity encoded in the file name, the descriptive header and the
// sensor calibration kept in a JSON side-car.
package atss

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

type (
	// Identity is everything the file name encodes.
	Identity struct {
		Serial      int
		System      string
		ChannelNo   int
		ChannelType string
		SampleRate  float64
	}
	Header struct {
		DateTime  time.Time
		Latitude  float64
		Longitude float64
		Elevation float64
		Azimuth   float64
		Tilt      float64
		Units     string
		Filter    string
		Source    string
		Samples   int64
	}
	Calibration struct {
		Sensor         string
		Serial         int
		Chopper        int
		UnitsAmplitude string
		UnitsFrequency string
		UnitsPhase     string
		DateTime       time.Time
		Operator       string
		F              []float64
		A              []float64
		P              []float64
	}
	Channel struct {
		Identity
		Header
		Calibration Calibration

		// Only used while converting; never written to the side-car.
		LSB          float64
		DipoleLength float64
	}

	ValidationError struct {
		Subject  string
		Problems []string
	}
)

const (
	DefaultUnits          = "mV"
	DefaultUnitsAmplitude = "mV/nT"
	DefaultUnitsFrequency = "Hz"
	DefaultUnitsPhase     = "degrees"

	SampleExtension  = ".atss"
	SidecarExtension = ".json"
	// SampleWidth is the byte width of one float64 sample in a .atss file.
	SampleWidth = 8
)

var (
	Epoch                  = time.Unix(0, 0).UTC()
	ErrCalibrationNotFound = errors.New("calibration not found")
)

func NewChannel() Channel {
	return Channel{
		Header: Header{
			DateTime: Epoch,
			Units:    DefaultUnits,
		},
		Calibration: NewCalibration(),
	}
}

func NewCalibration() Calibration {
	return Calibration{
		UnitsAmplitude: DefaultUnitsAmplitude,
		UnitsFrequency: DefaultUnitsFrequency,
		UnitsPhase:     DefaultUnitsPhase,
		DateTime:       Epoch,
		F:              []float64{},
		A:              []float64{},
		P:              []float64{},
	}
}

func (r ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", r.Subject, strings.Join(r.Problems, "; "))
}
