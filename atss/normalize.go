package atss

import (
	"strings"

	"github.com/samber/lo"
)

type sensorPrefix struct {
	Prefix string
	// Raw voltage sensors carry plain mV, not mV/nT.
	Voltage bool
}

var sensorPrefixes = []sensorPrefix{
	{Prefix: "MFS"},
	{Prefix: "FGS", Voltage: true},
	{Prefix: "SHFT"},
	{Prefix: "EFP", Voltage: true},
}

// ExpandSensorName rewrites the short sensor names of old loggers, "MFS06e"
// becomes "MFS-06e". Only a prefix directly followed by digits is rewritten.
// The amplitude units switch to mV only when an FGS or EFP name gets
// rewritten.
func ExpandSensorName(name string, unitsAmplitude string) (string, string) {
	prefix, ok := lo.Find(sensorPrefixes, func(p sensorPrefix) bool {
		return strings.HasPrefix(name, p.Prefix)
	})
	if !ok {
		return name, unitsAmplitude
	}
	rest := strings.TrimPrefix(name, prefix.Prefix)
	if !startsWithDigit(rest) {
		return name, unitsAmplitude
	}
	expanded := prefix.Prefix + "-" + rest
	if prefix.Voltage {
		return expanded, DefaultUnits
	}
	return expanded, unitsAmplitude
}

// Normalize trims the text fields and expands the sensor name. Applying it
// twice gives the same channel as applying it once.
func Normalize(channel Channel) Channel {
	channel.System = strings.TrimSpace(channel.System)
	channel.ChannelType = strings.TrimSpace(channel.ChannelType)
	channel.Units = strings.TrimSpace(channel.Units)
	channel.Filter = strings.TrimSpace(channel.Filter)
	channel.Source = strings.TrimSpace(channel.Source)

	calibration := channel.Calibration
	calibration.Operator = strings.TrimSpace(calibration.Operator)
	calibration.UnitsAmplitude = strings.TrimSpace(calibration.UnitsAmplitude)
	calibration.UnitsFrequency = strings.TrimSpace(calibration.UnitsFrequency)
	calibration.UnitsPhase = strings.TrimSpace(calibration.UnitsPhase)
	calibration.Sensor, calibration.UnitsAmplitude = ExpandSensorName(
		strings.TrimSpace(calibration.Sensor),
		calibration.UnitsAmplitude,
	)
	calibration.F = nonNil(calibration.F)
	calibration.A = nonNil(calibration.A)
	calibration.P = nonNil(calibration.P)
	channel.Calibration = calibration
	return channel
}
