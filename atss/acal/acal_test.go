package acal

import (
	"math"
	"math/cmplx"
	"testing"

	"atsconv/atss"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertComplexInDelta(t *testing.T, expected, actual complex128, delta float64) {
	t.Helper()
	assert.InDelta(t, real(expected), real(actual), delta)
	assert.InDelta(t, imag(expected), imag(actual), delta)
}

func mfs06e(f float64, chopper bool) complex128 {
	p1 := complex(0, f/4)
	p2 := complex(0, f/8192)
	p3 := complex(0, f/0.72)
	p4 := complex(0, f/28300)
	if chopper {
		return 800 * ((p1 / (1 + p1)) * (1 / (1 + p2)) * (1 / (1 + p4)))
	}
	return 800 * ((p1 / (1 + p1)) * (1 / (1 + p2)) * (p3 / (1 + p3)) * (1 / (1 + p4)))
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"MFS-06e", "mfs06e", "MFS-06E", " Mfs-06e "} {
		model, err := Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, models["mfs06e"], model)
	}

	_, err := Lookup("MFS-99")
	var unknownSensorError UnknownSensorError
	require.True(t, errors.As(err, &unknownSensorError))
	assert.Equal(t, "MFS-99", unknownSensorError.Sensor)

	assert.Len(t, Sensors(), 8)
}

func TestApply_ZeroFrequency(t *testing.T) {
	spc := complex(3, -4)
	for _, sensor := range Sensors() {
		for _, convention := range []ScaleConvention{ConventionMillivolts, ConventionLegacyVolts} {
			actual, err := Apply(sensor, 0, spc, false, convention)
			require.NoError(t, err)
			assert.Equal(t, spc, actual)
		}
	}
}

func TestApply_MFS06e(t *testing.T) {
	spc := complex(1, 0.5)
	for _, f := range []float64{0.01, 1, 100, 4096} {
		for _, chopper := range []bool{true, false} {
			actual, err := Apply(MFS06e, f, spc, chopper, ConventionMillivolts)
			require.NoError(t, err)
			assertComplexInDelta(t, spc/mfs06e(f, chopper), actual, 1e-9)
		}
	}
}

func TestApply_Chopper(t *testing.T) {
	on, err := Apply(MFS07e, 0.5, 1, true, ConventionMillivolts)
	require.NoError(t, err)
	off, err := Apply(MFS07e, 0.5, 1, false, ConventionMillivolts)
	require.NoError(t, err)
	assert.NotEqual(t, on, off)

	on, err = Apply(MFS12e, 0.5, 1, true, ConventionMillivolts)
	require.NoError(t, err)
	off, err = Apply(MFS12e, 0.5, 1, false, ConventionMillivolts)
	require.NoError(t, err)
	assert.Equal(t, on, off)
}

func TestApply_LegacyVolts(t *testing.T) {
	spc := complex(2, 1)
	millivolts, err := Apply(MFS06e, 10, spc, true, ConventionMillivolts)
	require.NoError(t, err)
	legacy, err := Apply(MFS06e, 10, spc, true, ConventionLegacyVolts)
	require.NoError(t, err)
	assertComplexInDelta(t, millivolts, legacy, 1e-12)

	p1 := complex(0, 10000/4.)
	p2 := complex(0, 10000/8192.)
	p3 := complex(0, 10000/0.72)
	p4 := complex(0, 10000/25000.)
	trf := 0.8 * ((p1 / (1 + p1)) * (1 / (1 + p2)) * (p3 / (1 + p3)) * (1 / (1 + p4)))
	legacy, err = Apply(MFS06e, 10000, spc, false, ConventionLegacyVolts)
	require.NoError(t, err)
	assertComplexInDelta(t, (spc/trf)/1000, legacy, 1e-12)

	millivolts, err = Apply(MFS06e, 10000, spc, false, ConventionMillivolts)
	require.NoError(t, err)
	assert.Greater(t, cmplx.Abs(legacy-millivolts), 1e-6)

	millivolts, err = Apply(SHFT02e, 10000, spc, false, ConventionMillivolts)
	require.NoError(t, err)
	legacy, err = Apply(SHFT02e, 10000, spc, false, ConventionLegacyVolts)
	require.NoError(t, err)
	assertComplexInDelta(t, millivolts, legacy, 1e-12)

	_, err = Apply(MFS06e, 1, spc, true, ScaleConvention(7))
	assert.Error(t, err)
}

func TestApply_Flat(t *testing.T) {
	actual, err := Apply(FGS02, 12, 7.5, false, ConventionMillivolts)
	require.NoError(t, err)
	assertComplexInDelta(t, 10, actual, 1e-12)

	actual, err = Apply("fgs-03E", 12, 1, false, ConventionMillivolts)
	require.NoError(t, err)
	assertComplexInDelta(t, 10, actual, 1e-12)
}

func TestCurve(t *testing.T) {
	amplitudes, phases, err := Curve(SHFT02e, []float64{0, 3e5}, false)
	require.NoError(t, err)
	assert.InDelta(t, 50, amplitudes[0], 1e-12)
	assert.InDelta(t, 50/math.Sqrt2, amplitudes[1], 1e-9)
	assert.InDelta(t, 0, phases[0], 1e-12)
	assert.InDelta(t, -45, phases[1], 1e-9)

	amplitudes, phases, err = Curve(MFS06e, []float64{0.1, 1000}, true)
	require.NoError(t, err)
	assert.InDelta(t, cmplx.Abs(mfs06e(0.1, true)), amplitudes[0], 1e-9)
	assert.InDelta(t, 800, amplitudes[1], 20)
	assert.InDelta(t, 88.6, phases[0], 0.1)

	_, _, err = Curve("coil", []float64{1}, true)
	assert.Error(t, err)
}

func TestTheoretical(t *testing.T) {
	calibration, err := Theoretical(MFS07e, 12, 1, []float64{1, 10, 100})
	require.NoError(t, err)
	assert.Equal(t, MFS07e, calibration.Sensor)
	assert.Equal(t, 1, calibration.Chopper)
	assert.Equal(t, atss.DefaultUnitsAmplitude, calibration.UnitsAmplitude)
	assert.Len(t, calibration.A, 3)
	assert.Len(t, calibration.P, 3)

	channel := atss.NewChannel()
	channel.Calibration = calibration
	_, err = atss.EncodeSidecar(channel)
	assert.NoError(t, err)
}

func TestLogSpace(t *testing.T) {
	freqs, err := LogSpace(0.01, 100, 5)
	require.NoError(t, err)
	require.Len(t, freqs, 5)
	for i, expected := range []float64{0.01, 0.1, 1, 10, 100} {
		assert.InDelta(t, expected, freqs[i], expected*1e-9)
	}

	freqs, err = LogSpace(3, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{3}, freqs)

	_, err = LogSpace(0, 10, 3)
	assert.Error(t, err)
	_, err = LogSpace(10, 1, 3)
	assert.Error(t, err)
}
