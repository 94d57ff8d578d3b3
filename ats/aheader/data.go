package aheader

import (
	"fmt"
)

type (
	// Header is the decoded binary header of an ats file. The json tags are
	// the on-disk field names.
	Header struct {
		HeaderLength         uint16  `json:"header_length"`
		HeaderVersion        int16   `json:"header_version"`
		Samples              uint32  `json:"samples"`
		SampleRate           float32 `json:"sample_rate"`
		Start                uint32  `json:"start"`
		LSBVal               float64 `json:"lsbval"`
		GMTOffset            int32   `json:"GMToffset"`
		OrigSampleRate       float32 `json:"orig_sample_rate"`
		SerialNumber         uint16  `json:"serial_number"`
		SerialNumberADCBoard uint16  `json:"serial_number_ADC_board"`
		ChannelNumber        uint8   `json:"channel_number"`
		Chopper              uint8   `json:"chopper"`
		ChannelType          string  `json:"channel_type"`
		SensorType           string  `json:"sensor_type"`
		SensorSerialNumber   int16   `json:"sensor_serial_number"`
		X1                   float32 `json:"x1"`
		Y1                   float32 `json:"y1"`
		Z1                   float32 `json:"z1"`
		X2                   float32 `json:"x2"`
		Y2                   float32 `json:"y2"`
		Z2                   float32 `json:"z2"`
		DipoleLength         float32 `json:"dipole_length"`
		Angle                float32 `json:"angle"`
		RhoProbeOhm          float32 `json:"rho_probe_ohm"`
		DCOffsetVoltageMV    float32 `json:"DC_offset_voltage_mV"`
		GainStage1           float32 `json:"gain_stage1"`
		GainStage2           float32 `json:"gain_stage2"`
		LatMs                int32   `json:"iLat_ms"`
		LongMs               int32   `json:"iLong_ms"`
		ElevCm               int32   `json:"iElev_cm"`
		LatLongType          string  `json:"Lat_Long_TYPE"`
		CoordinateType       string  `json:"coordinate_type"`
		RefMeridian          int16   `json:"ref_meridian"`
		Northing             float64 `json:"Northing"`
		Easting              float64 `json:"Easting"`
		GPSClockStatus       string  `json:"gps_clock_status"`
		GPSAccuracy          int8    `json:"GPS_accuracy"`
		OffsetUTC            int16   `json:"offset_UTC"`
		SystemType           string  `json:"SystemType"`
		SurveyHeaderFilename string  `json:"survey_header_filename"`
		TypeOfMeas           string  `json:"type_of_meas"`
		DCOffsetCorrValue    float64 `json:"DCOffsetCorrValue"`
		DCOffsetCorrOn       int8    `json:"DCOffsetCorrOn"`
		InputDivOn           int8    `json:"InputDivOn"`
		BitIndicator         int16   `json:"bit_indicator"`
		ResultSelftest       string  `json:"result_selftest"`
		NumSlices            uint16  `json:"numslices"`
		CalFreqs             int16   `json:"cal_freqs"`
		CalEntryLength       int16   `json:"cal_entry_length"`
		CalVersion           int16   `json:"cal_version"`
		CalStartAddress      int16   `json:"cal_start_address"`
		LFFilters            uint8   `json:"LF_filters"`
		EmptyLF              string  `json:"emptylf"`
		UTMZone              string  `json:"UTMZone"`
		SystemCalDatetime    uint32  `json:"system_cal_datetime"`
		SensorCalFilename    string  `json:"sensor_cal_filename"`
		SensorCalDatetime    uint32  `json:"sensor_cal_datetime"`
		Powerline1           float32 `json:"powerline1"`
		Powerline2           float32 `json:"powerline2"`
		HFFilters            uint8   `json:"HF_filters"`
		EmptyHF              string  `json:"emptyhf"`
		Samples64Bit         uint64  `json:"samples_64bit"`
		ExternalGain         float32 `json:"external_gain"`
		ADBBoardType         string  `json:"ADB_board_type"`
		Client               string  `json:"Client"`
		Contractor           string  `json:"Contractor"`
		Area                 string  `json:"Area"`
		SurveyID             string  `json:"SurveyID"`
		Operator             string  `json:"Operator"`
		SiteName             string  `json:"SiteName"`
		XMLHeader            string  `json:"XmlHeader"`
		Comments             string  `json:"Comments"`
		SiteNameRR           string  `json:"SiteNameRR"`
		SiteNameEMAP         string  `json:"SiteNameEMAP"`

		// Filled in by Normalize.
		Filters         []string `json:"-"`
		FilterRemainder uint8    `json:"-"`
		Geometry        Geometry `json:"-"`
		Normalized      bool     `json:"-"`
	}
	// Geometry is the sensor orientation derived from its endpoint positions.
	Geometry struct {
		Length  float64 `json:"length"`
		Azimuth float64 `json:"azimuth"`
		Tilt    float64 `json:"tilt"`
	}
	// Position holds the two sensor endpoints in meters.
	Position struct {
		X1, X2, Y1, Y2, Z1, Z2 float64
	}

	HeaderReadError struct {
		Path string
		Err  error
	}
)

const (
	DefaultHeaderSize = 1024
	// PeekSize covers the declared header length and the header version.
	PeekSize = 4
	// SlicedVersion is the first version that always reserves a 1024 byte
	// header followed by slice headers.
	SlicedVersion = 1080
	// GatedVersion is the first version that carries the DC offset, input
	// divider and original sample rate fields.
	GatedVersion = 80
	// Samples64BitMarker in samples means the count lives in samples_64bit.
	Samples64BitMarker = 0xFFFFFFFF
)

func (r HeaderReadError) Error() string {
	return fmt.Sprintf("unable to read header of ats file %s: %v", r.Path, r.Err)
}

func (r HeaderReadError) Unwrap() error {
	return r.Err
}

func (r HeaderReadError) Cause() error {
	return r.Err
}
