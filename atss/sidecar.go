package atss

import (
	"encoding/json"
	"time"

	"github.com/iancoleman/orderedmap"
	"github.com/pkg/errors"
)

type (
	sidecarCalibration struct {
		Sensor         string    `json:"sensor"`
		Serial         int       `json:"serial"`
		Chopper        int       `json:"chopper"`
		UnitsAmplitude string    `json:"units_amplitude"`
		UnitsFrequency string    `json:"units_frequency"`
		UnitsPhase     string    `json:"units_phase"`
		DateTime       string    `json:"datetime"`
		Operator       string    `json:"Operator"`
		F              []float64 `json:"f"`
		A              []float64 `json:"a"`
		P              []float64 `json:"p"`
	}
	sidecar struct {
		DateTime    string             `json:"datetime"`
		Latitude    float64            `json:"latitude"`
		Longitude   float64            `json:"longitude"`
		Elevation   float64            `json:"elevation"`
		Azimuth     float64            `json:"azimuth"`
		Tilt        float64            `json:"tilt"`
		Units       string             `json:"units"`
		Filter      string             `json:"filter"`
		Source      string             `json:"source"`
		Calibration sidecarCalibration `json:"sensor_calibration"`
	}
)

const (
	DateTimeLayout = "2006-01-02T15:04:05.999999999"
	// AnchorKey must be present for a side-car to be taken into account.
	AnchorKey      = "datetime"
	CalibrationKey = "sensor_calibration"
)

func FormatDateTime(t time.Time) string {
	return t.UTC().Format(DateTimeLayout)
}

func ParseDateTime(s string) (time.Time, error) {
	t, err := time.Parse(DateTimeLayout, s)
	if err == nil {
		return t, nil
	}
	if t, rfcErr := time.Parse(time.RFC3339Nano, s); rfcErr == nil {
		return t.UTC(), nil
	}
	return time.Time{}, err
}

// ToLinkedHashMap lays out the side-car of channel. Identity fields and the
// sample count are left out; they come from the file names and sizes.
func ToLinkedHashMap(channel Channel) *orderedmap.OrderedMap {
	calibration := channel.Calibration
	calibrationLHM := orderedmap.New()
	calibrationLHM.Set("sensor", calibration.Sensor)
	calibrationLHM.Set("serial", calibration.Serial)
	calibrationLHM.Set("chopper", calibration.Chopper)
	calibrationLHM.Set("units_amplitude", calibration.UnitsAmplitude)
	calibrationLHM.Set("units_frequency", calibration.UnitsFrequency)
	calibrationLHM.Set("units_phase", calibration.UnitsPhase)
	calibrationLHM.Set("datetime", FormatDateTime(calibration.DateTime))
	calibrationLHM.Set("Operator", calibration.Operator)
	calibrationLHM.Set("f", nonNil(calibration.F))
	calibrationLHM.Set("a", nonNil(calibration.A))
	calibrationLHM.Set("p", nonNil(calibration.P))

	lhm := orderedmap.New()
	lhm.Set(AnchorKey, FormatDateTime(channel.DateTime))
	lhm.Set("latitude", channel.Latitude)
	lhm.Set("longitude", channel.Longitude)
	lhm.Set("elevation", channel.Elevation)
	lhm.Set("azimuth", channel.Azimuth)
	lhm.Set("tilt", channel.Tilt)
	lhm.Set("units", channel.Units)
	lhm.Set("filter", channel.Filter)
	lhm.Set("source", channel.Source)
	lhm.Set(CalibrationKey, calibrationLHM)
	return lhm
}

func nonNil(values []float64) []float64 {
	if values == nil {
		return []float64{}
	}
	return values
}

func EncodeSidecar(channel Channel) ([]byte, error) {
	if problems := calibrationProblems(channel.Calibration); len(problems) > 0 {
		return nil, ValidationError{Subject: "calibration", Problems: problems}
	}
	bs, err := json.MarshalIndent(ToLinkedHashMap(channel), "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "EncodeSidecar error")
	}
	return bs, nil
}

// DecodeSidecar merges a side-car document into channel. Without the anchor
// key the document is ignored, channel is left as it was and false is
// returned. Keys missing from the document keep the values of channel.
func DecodeSidecar(bs []byte, channel *Channel) (bool, error) {
	lhm := orderedmap.New()
	if err := json.Unmarshal(bs, lhm); err != nil {
		return false, ValidationError{Subject: "side-car", Problems: []string{err.Error()}}
	}
	if _, ok := lhm.Get(AnchorKey); !ok {
		return false, nil
	}

	doc := toSidecar(*channel)
	if err := json.Unmarshal(bs, &doc); err != nil {
		return false, ValidationError{Subject: "side-car", Problems: []string{err.Error()}}
	}
	merged, err := fromSidecar(*channel, doc)
	if err != nil {
		return false, err
	}
	*channel = merged
	return true, nil
}

func toSidecar(channel Channel) sidecar {
	calibration := channel.Calibration
	return sidecar{
		DateTime:  FormatDateTime(channel.DateTime),
		Latitude:  channel.Latitude,
		Longitude: channel.Longitude,
		Elevation: channel.Elevation,
		Azimuth:   channel.Azimuth,
		Tilt:      channel.Tilt,
		Units:     channel.Units,
		Filter:    channel.Filter,
		Source:    channel.Source,
		Calibration: sidecarCalibration{
			Sensor:         calibration.Sensor,
			Serial:         calibration.Serial,
			Chopper:        calibration.Chopper,
			UnitsAmplitude: calibration.UnitsAmplitude,
			UnitsFrequency: calibration.UnitsFrequency,
			UnitsPhase:     calibration.UnitsPhase,
			DateTime:       FormatDateTime(calibration.DateTime),
			Operator:       calibration.Operator,
			F:              calibration.F,
			A:              calibration.A,
			P:              calibration.P,
		},
	}
}

func fromSidecar(channel Channel, doc sidecar) (Channel, error) {
	problems := make([]string, 0)
	dateTime, err := ParseDateTime(doc.DateTime)
	if err != nil {
		problems = append(problems, err.Error())
	}
	calibrationDateTime, err := ParseDateTime(doc.Calibration.DateTime)
	if err != nil {
		problems = append(problems, err.Error())
	}

	channel.Header = Header{
		DateTime:  dateTime,
		Latitude:  doc.Latitude,
		Longitude: doc.Longitude,
		Elevation: doc.Elevation,
		Azimuth:   doc.Azimuth,
		Tilt:      doc.Tilt,
		Units:     doc.Units,
		Filter:    doc.Filter,
		Source:    doc.Source,
		Samples:   channel.Samples,
	}
	channel.Calibration = Calibration{
		Sensor:         doc.Calibration.Sensor,
		Serial:         doc.Calibration.Serial,
		Chopper:        doc.Calibration.Chopper,
		UnitsAmplitude: doc.Calibration.UnitsAmplitude,
		UnitsFrequency: doc.Calibration.UnitsFrequency,
		UnitsPhase:     doc.Calibration.UnitsPhase,
		DateTime:       calibrationDateTime,
		Operator:       doc.Calibration.Operator,
		F:              nonNil(doc.Calibration.F),
		A:              nonNil(doc.Calibration.A),
		P:              nonNil(doc.Calibration.P),
	}
	problems = append(problems, calibrationProblems(channel.Calibration)...)

	if len(problems) > 0 {
		return Channel{}, ValidationError{Subject: "side-car", Problems: problems}
	}
	return channel, nil
}
