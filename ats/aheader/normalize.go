package aheader

import (
	"strings"

	"github.com/samber/lo"
)

type (
	FilterFlag struct {
		Name string
		Bit  uint8
	}
)

const (
	LowPass4Hz    = "LF_LP_4HZ"
	LowPass4HzBit = 16

	commentPrefix = "weather:"
)

var (
	LFFilterTable = []FilterFlag{
		{"LF-RF-1", 1},
		{"LF-RF-2", 2},
		{"LF-RF-3", 4},
		{"LF-RF-4", 8},
		{LowPass4Hz, LowPass4HzBit},
		{"MF-RF-1", 64},
		{"MF-RF-2", 32},
	}
	HFFilterTable = []FilterFlag{
		{"HF-HP-1Hz", 1},
		{"HF-HP-500Hz", 2},
	}
)

// Normalize cleans a freshly decoded header in place: filter flags are
// decoded, text fields trimmed, fields unknown to old versions zeroed and
// the sensor geometry derived from its endpoints. A header that is already
// normalized is left as it is.
func Normalize(header *Header) {
	if header.Normalized {
		return
	}
	header.EmptyLF = ""
	header.EmptyHF = ""

	switch strings.TrimSpace(header.ADBBoardType) {
	case "LF", "MF":
		header.Filters, header.FilterRemainder = DecodeLFFilters(header.LFFilters)
		header.LFFilters, header.HFFilters = 0, 0
	case "HF", "BB":
		header.Filters, header.FilterRemainder = DecodeHFFilters(header.HFFilters)
		header.LFFilters, header.HFFilters = 0, 0
	}

	lo.ForEach(
		header.textFields(),
		func(field *string, _ int) { *field = strings.TrimSpace(*field) },
	)
	if strings.HasPrefix(header.Comments, commentPrefix) {
		header.Comments = strings.TrimLeft(header.Comments[len(commentPrefix):], " \t\r\n")
	}

	if header.HeaderVersion < GatedVersion {
		header.DCOffsetCorrOn = 0
		header.DCOffsetCorrValue = 0
		header.InputDivOn = 0
		header.OrigSampleRate = 0
	}

	header.Geometry = PosToGeometry(header.Position())
	header.Normalized = true
}

// DecodeLFFilters tests the 4 Hz lowpass bit first and matches what is left
// against exactly one entry of the LF table. Bits that match nothing are
// returned as the remainder.
func DecodeLFFilters(raw uint8) ([]string, uint8) {
	flags := make([]string, 0, 2)
	if raw&LowPass4HzBit != 0 {
		flags = append(flags, LowPass4Hz)
		raw -= LowPass4HzBit
	}
	return matchFilter(LFFilterTable, raw, flags)
}

func DecodeHFFilters(raw uint8) ([]string, uint8) {
	return matchFilter(HFFilterTable, raw, make([]string, 0, 1))
}

func matchFilter(table []FilterFlag, raw uint8, flags []string) ([]string, uint8) {
	if raw == 0 {
		return flags, 0
	}
	flag, ok := lo.Find(table, func(flag FilterFlag) bool { return flag.Bit == raw })
	if !ok {
		return flags, raw
	}
	return append(flags, flag.Name), 0
}

func (h *Header) textFields() []*string {
	return []*string{
		&h.ChannelType,
		&h.SensorType,
		&h.LatLongType,
		&h.CoordinateType,
		&h.GPSClockStatus,
		&h.SystemType,
		&h.SurveyHeaderFilename,
		&h.TypeOfMeas,
		&h.ResultSelftest,
		&h.UTMZone,
		&h.SensorCalFilename,
		&h.ADBBoardType,
		&h.Client,
		&h.Contractor,
		&h.Area,
		&h.SurveyID,
		&h.Operator,
		&h.SiteName,
		&h.XMLHeader,
		&h.Comments,
		&h.SiteNameRR,
		&h.SiteNameEMAP,
	}
}
