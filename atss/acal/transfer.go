package acal

import (
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"atsconv/atss"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var models = map[string]Model{
	key(MFS06e):  Coil{Gain: 800, HighPass: 4, LowPass: 8192, LowPassSecond: 28300, ChopperOffCorner: 0.72},
	key(MFS07e):  Coil{Gain: 640, HighPass: 32, LowPass: 40000, LowPassSecond: 50000, ChopperOffCorner: 0.72},
	key(MFS07):   Coil{Gain: 640, HighPass: 32, LowPass: 45000, LowPassSecond: 28300, ChopperOffCorner: 0.72},
	key(MFS12e):  Coil{Gain: 800, HighPass: 16, LowPass: 8192, LowPassSecond: 28300},
	key(FGS02):   Flat{Gain: 0.75},
	key(FGS03e):  Flat{Gain: 0.1},
	key(FGS05e):  Flat{Gain: 0.143},
	key(SHFT02e): LowPass{Gain: 50, Corner: 3e5},
}

// The old MFS-06e formula was in V and used a 25 kHz low pass with the
// chopper off.
var legacyModels = map[string]legacyModel{
	key(MFS06e): {
		on:  Coil{Gain: 0.8, HighPass: 4, LowPass: 8192, LowPassSecond: 28300},
		off: Coil{Gain: 0.8, HighPass: 4, LowPass: 8192, LowPassSecond: 25000, ChopperOffCorner: 0.72},
	},
}

type legacyModel struct {
	on  Coil
	off Coil
}

func (r legacyModel) Transfer(f float64, chopper bool) complex128 {
	if chopper {
		return r.on.Transfer(f, true)
	}
	return r.off.Transfer(f, false)
}

func key(sensor string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(sensor), "-", ""))
}

func highPass(f, corner float64) complex128 {
	p := complex(0, f/corner)
	return p / (1 + p)
}

func lowPass(f, corner float64) complex128 {
	p := complex(0, f/corner)
	return 1 / (1 + p)
}

func (r Coil) Transfer(f float64, chopper bool) complex128 {
	trf := complex(r.Gain, 0)
	if r.HighPass > 0 {
		trf *= highPass(f, r.HighPass)
	}
	if r.LowPass > 0 {
		trf *= lowPass(f, r.LowPass)
	}
	if !chopper && r.ChopperOffCorner > 0 {
		trf *= highPass(f, r.ChopperOffCorner)
	}
	if r.LowPassSecond > 0 {
		trf *= lowPass(f, r.LowPassSecond)
	}
	return trf
}

func (r Flat) Transfer(float64, bool) complex128 {
	return complex(r.Gain, 0)
}

func (r LowPass) Transfer(f float64, _ bool) complex128 {
	return complex(r.Gain, 0) * lowPass(f, r.Corner)
}

// Lookup ignores case and hyphens, "mfs06e" finds MFS-06e.
func Lookup(sensor string) (Model, error) {
	model, ok := models[key(sensor)]
	if !ok {
		return nil, UnknownSensorError{Sensor: sensor}
	}
	return model, nil
}

// Sensors lists the sensors with a theoretical transfer function.
func Sensors() []string {
	sensors := []string{MFS06e, MFS07e, MFS07, MFS12e, FGS02, FGS03e, FGS05e, SHFT02e}
	sort.Strings(sensors)
	return sensors
}

func ChopperOn(chopper int) bool {
	return chopper == 1
}

// Apply divides the spectral value spc by the transfer function of sensor
// at f. At f == 0 spc is returned unchanged.
func Apply(sensor string, f float64, spc complex128, chopper bool, convention ScaleConvention) (complex128, error) {
	model, err := Lookup(sensor)
	if err != nil {
		return 0, err
	}
	if f == 0 {
		return spc, nil
	}

	switch convention {
	case ConventionMillivolts:
		return spc / model.Transfer(f, chopper), nil
	case ConventionLegacyVolts:
		var trf complex128
		if legacy, ok := legacyModels[key(sensor)]; ok {
			trf = legacy.Transfer(f, chopper)
		} else {
			trf = model.Transfer(f, chopper) / 1000
		}
		return (spc / trf) / 1000, nil
	default:
		return 0, errors.Errorf("Apply error: unknown scale convention %d", int(convention))
	}
}

// Curve gives amplitude in mV/nT and phase in degrees at every frequency.
func Curve(sensor string, freqs []float64, chopper bool) ([]float64, []float64, error) {
	model, err := Lookup(sensor)
	if err != nil {
		return nil, nil, err
	}
	transfers := lo.Map(freqs, func(f float64, _ int) complex128 {
		return model.Transfer(f, chopper)
	})
	amplitudes := lo.Map(transfers, func(trf complex128, _ int) float64 {
		return cmplx.Abs(trf)
	})
	phases := lo.Map(transfers, func(trf complex128, _ int) float64 {
		return cmplx.Phase(trf) * 180 / math.Pi
	})
	return amplitudes, phases, nil
}

// Theoretical builds a calibration record from Curve, used when no measured
// curve is available.
func Theoretical(sensor string, serial int, chopper int, freqs []float64) (atss.Calibration, error) {
	amplitudes, phases, err := Curve(sensor, freqs, ChopperOn(chopper))
	if err != nil {
		return atss.Calibration{}, errors.Wrap(err, "Theoretical error")
	}
	calibration := atss.NewCalibration()
	calibration.Sensor = sensor
	calibration.Serial = serial
	calibration.Chopper = chopper
	calibration.Operator = "theoretical"
	calibration.F = append([]float64{}, freqs...)
	calibration.A = amplitudes
	calibration.P = phases
	return calibration, nil
}

// LogSpace gives n frequencies spread evenly on a log scale from fmin to fmax.
func LogSpace(fmin float64, fmax float64, n int) ([]float64, error) {
	if fmin <= 0 || fmax < fmin || n < 1 {
		return nil, errors.Errorf("LogSpace error: invalid range %g to %g with %d points", fmin, fmax, n)
	}
	if n == 1 {
		return []float64{fmin}, nil
	}
	step := (math.Log10(fmax) - math.Log10(fmin)) / float64(n-1)
	return lo.Times(n, func(i int) float64 {
		return math.Pow(10, math.Log10(fmin)+float64(i)*step)
	}), nil
}
