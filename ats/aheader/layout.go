package aheader

import (
	"fmt"

	"atsconv/ats/astruct"
)

type Layout int

// Known header generations. Every version maps onto exactly one of them.
const (
	// LayoutADU06 is used below version 80. Its comment block is one 512
	// byte field.
	LayoutADU06 Layout = iota
	// Layout80 covers versions 80 up to the sliced format.
	Layout80
	// LayoutSliced has the Layout80 header followed by 32 byte slice headers.
	LayoutSliced
)

var fixedFields = []astruct.Field{
	astruct.Uint16("header_length"),
	astruct.Int16("header_version"),
	astruct.Uint32("samples"),
	astruct.Float32("sample_rate"),
	astruct.Uint32("start"),
	astruct.Float64("lsbval"),
	astruct.Int32("GMToffset"),
	astruct.Float32("orig_sample_rate"),

	astruct.Uint16("serial_number"),
	astruct.Uint16("serial_number_ADC_board"),
	astruct.Uint8("channel_number"),
	astruct.Uint8("chopper"),
	astruct.Text("channel_type", 2),
	astruct.Text("sensor_type", 6),
	astruct.Int16("sensor_serial_number"),

	astruct.Float32("x1"),
	astruct.Float32("y1"),
	astruct.Float32("z1"),
	astruct.Float32("x2"),
	astruct.Float32("y2"),
	astruct.Float32("z2"),
	astruct.Float32("dipole_length"),
	astruct.Float32("angle"),
	astruct.Float32("rho_probe_ohm"),
	astruct.Float32("DC_offset_voltage_mV"),
	astruct.Float32("gain_stage1"),
	astruct.Float32("gain_stage2"),

	astruct.Int32("iLat_ms"),
	astruct.Int32("iLong_ms"),
	astruct.Int32("iElev_cm"),
	astruct.Text("Lat_Long_TYPE", 1),
	astruct.Text("coordinate_type", 1),
	astruct.Int16("ref_meridian"),
	astruct.Float64("Northing"),
	astruct.Float64("Easting"),
	astruct.Text("gps_clock_status", 1),
	astruct.Int8("GPS_accuracy"),
	astruct.Int16("offset_UTC"),
	astruct.Text("SystemType", 12),
	astruct.Text("survey_header_filename", 12),
	astruct.Text("type_of_meas", 4),

	astruct.Float64("DCOffsetCorrValue"),
	astruct.Int8("DCOffsetCorrOn"),
	astruct.Int8("InputDivOn"),
	astruct.Int16("bit_indicator"),
	astruct.Text("result_selftest", 2),
	astruct.Uint16("numslices"),
	astruct.Int16("cal_freqs"),
	astruct.Int16("cal_entry_length"),
	astruct.Int16("cal_version"),
	astruct.Int16("cal_start_address"),

	astruct.Uint8("LF_filters"),
	astruct.Text("emptylf", 7),
	astruct.Text("UTMZone", 12),
	astruct.Uint32("system_cal_datetime"),
	astruct.Text("sensor_cal_filename", 12),
	astruct.Uint32("sensor_cal_datetime"),
	astruct.Float32("powerline1"),
	astruct.Float32("powerline2"),
	astruct.Uint8("HF_filters"),
	astruct.Text("emptyhf", 7),
	astruct.Uint64("samples_64bit"),
	astruct.Float32("external_gain"),
	astruct.Text("ADB_board_type", 4),

	astruct.Text("Client", 16),
	astruct.Text("Contractor", 16),
	astruct.Text("Area", 16),
	astruct.Text("SurveyID", 16),
	astruct.Text("Operator", 16),
	astruct.Text("SiteName", 112),
	astruct.Text("XmlHeader", 64),
}

var (
	schemaADU06 = astruct.NewSchema(
		"ats_header_adu06",
		append(fixedFieldsCopy(), astruct.Text("Comments", 512))...,
	)
	schema80 = astruct.NewSchema(
		"ats_header_80",
		append(
			fixedFieldsCopy(),
			astruct.Text("Comments", 288),
			astruct.Text("SiteNameRR", 112),
			astruct.Text("SiteNameEMAP", 112),
		)...,
	)
	schemaSliced = astruct.NewSchema("ats_header_1080", schema80.Fields()...)
)

func fixedFieldsCopy() []astruct.Field {
	fields := make([]astruct.Field, len(fixedFields))
	copy(fields, fixedFields)
	return fields
}

func LayoutFor(version int16) Layout {
	switch {
	case version >= SlicedVersion:
		return LayoutSliced
	case version >= GatedVersion:
		return Layout80
	default:
		return LayoutADU06
	}
}

func (l Layout) Schema() astruct.Schema {
	switch l {
	case LayoutADU06:
		return schemaADU06
	case Layout80:
		return schema80
	default:
		return schemaSliced
	}
}

func (l Layout) String() string {
	switch l {
	case LayoutADU06:
		return "adu06"
	case Layout80:
		return "80"
	case LayoutSliced:
		return "1080"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}
