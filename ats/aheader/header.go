package aheader

import (
	"strings"
	"time"
)

// Latitude in decimal degrees.
func (h *Header) Latitude() float64 {
	return float64(h.LatMs) / 1000 / 3600
}

// Longitude in decimal degrees.
func (h *Header) Longitude() float64 {
	return float64(h.LongMs) / 1000 / 3600
}

// Elevation in meters.
func (h *Header) Elevation() float64 {
	return float64(h.ElevCm) / 100
}

func (h *Header) StartTime() time.Time {
	return time.Unix(int64(h.Start), 0).UTC()
}

// SampleCount honors the 64 bit sample counter of long recordings.
func (h *Header) SampleCount() uint64 {
	if h.Samples == Samples64BitMarker {
		return h.Samples64Bit
	}
	return uint64(h.Samples)
}

// SampleWidth is the byte width of one sample in the data section.
func (h *Header) SampleWidth() int {
	if h.BitIndicator == 1 {
		return 8
	}
	return 4
}

// DataOffset is where the samples start.
func (h *Header) DataOffset() int64 {
	if h.HeaderLength == 0 {
		return DefaultHeaderSize
	}
	return int64(h.HeaderLength)
}

// SystemName writes ADU systems with a hyphen, e.g. ADU07e becomes ADU-07e.
func (h *Header) SystemName() string {
	if strings.HasPrefix(h.SystemType, "ADU") && !strings.HasPrefix(h.SystemType, "ADU-") {
		return strings.Replace(h.SystemType, "ADU", "ADU-", 1)
	}
	return h.SystemType
}
