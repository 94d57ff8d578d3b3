package ats

import (
	"path/filepath"
	"strings"

	"atsconv/ats/aheader"
	"atsconv/atss"
)

// ToChannel copies what processing needs from a normalized header.
func ToChannel(header *aheader.Header) atss.Channel {
	channel := atss.NewChannel()
	channel.Identity = atss.Identity{
		Serial:      int(header.SerialNumber),
		System:      header.SystemName(),
		ChannelNo:   int(header.ChannelNumber),
		ChannelType: header.ChannelType,
		SampleRate:  float64(header.SampleRate),
	}
	channel.DateTime = header.StartTime()
	channel.Latitude = header.Latitude()
	channel.Longitude = header.Longitude()
	channel.Elevation = header.Elevation()
	channel.Azimuth = header.Geometry.Azimuth
	channel.Tilt = header.Geometry.Tilt
	channel.Filter = strings.Join(header.Filters, ",")
	channel.Samples = int64(header.SampleCount())

	channel.Calibration.Sensor = header.SensorType
	channel.Calibration.Serial = int(header.SensorSerialNumber)
	channel.Calibration.Chopper = int(header.Chopper)

	channel.LSB = header.LSBVal
	channel.DipoleLength = header.Geometry.Length
	return atss.Normalize(channel)
}

// ReadChannel reads and normalizes the header at path. The source of the
// channel is the file name.
func ReadChannel(path string) (*aheader.Header, atss.Channel, error) {
	header, _, err := aheader.Read(path)
	if err != nil {
		return nil, atss.Channel{}, err
	}
	aheader.Normalize(header)
	channel := ToChannel(header)
	channel.Source = filepath.Base(path)
	return header, channel, nil
}
