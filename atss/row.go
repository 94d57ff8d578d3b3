package atss

import (
	"time"
)

type Row struct {
	Filename    string
	Serial      int
	System      string
	ChannelNo   int
	ChannelType string
	SampleRate  float64
	Board       string
	Start       time.Time
	End         time.Time
	Samples     int64
	Latitude    float64
	Longitude   float64
	Elevation   float64
	Azimuth     float64
	Tilt        float64
	Units       string
	Sensor      string
	SensorNo    int
}

// BoardFromSampleRate guesses the recording board. Only used for display.
func BoardFromSampleRate(sampleRate float64) string {
	if sampleRate > 4096 {
		return "H"
	}
	return "L"
}

// EndTime is the time of the last sample.
func EndTime(channel Channel) time.Time {
	if channel.SampleRate <= 0 || channel.Samples <= 1 {
		return channel.DateTime
	}
	seconds := float64(channel.Samples-1) / channel.SampleRate
	return channel.DateTime.Add(time.Duration(seconds * float64(time.Second)))
}

// ToRow flattens channel. An invalid identity leaves Filename empty.
func ToRow(channel Channel) Row {
	filename, _ := Filename(channel.Identity)
	return Row{
		Filename:    filename,
		Serial:      channel.Serial,
		System:      channel.System,
		ChannelNo:   channel.ChannelNo,
		ChannelType: channel.ChannelType,
		SampleRate:  channel.SampleRate,
		Board:       BoardFromSampleRate(channel.SampleRate),
		Start:       channel.DateTime,
		End:         EndTime(channel),
		Samples:     channel.Samples,
		Latitude:    channel.Latitude,
		Longitude:   channel.Longitude,
		Elevation:   channel.Elevation,
		Azimuth:     channel.Azimuth,
		Tilt:        channel.Tilt,
		Units:       channel.Units,
		Sensor:      channel.Calibration.Sensor,
		SensorNo:    channel.Calibration.Serial,
	}
}
