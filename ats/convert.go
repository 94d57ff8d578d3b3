package ats

import (
	"context"
	"os"

	"atsconv/ats/asample"
	"atsconv/atss"
	"atsconv/atss/acal"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func attachCalibration(channel *atss.Channel, opts Options) error {
	if err := atss.AttachCalibration(channel, opts.Calibrations); err != nil {
		return err
	}
	if len(channel.Calibration.F) > 0 || len(opts.TheoreticalFrequencies) == 0 {
		return nil
	}
	if _, err := acal.Lookup(channel.Calibration.Sensor); err != nil {
		return nil
	}
	calibration, err := acal.Theoretical(
		channel.Calibration.Sensor,
		channel.Calibration.Serial,
		channel.Calibration.Chopper,
		opts.TheoreticalFrequencies,
	)
	if err != nil {
		return err
	}
	calibration.UnitsAmplitude = channel.Calibration.UnitsAmplitude
	channel.Calibration = calibration
	return nil
}

// Convert writes the atss pair of the ats file at path into outDir and
// returns the channel with the sample count actually written.
func Convert(path string, outDir string, opts Options) (atss.Channel, error) {
	header, channel, err := ReadChannel(path)
	if err != nil {
		return atss.Channel{}, err
	}

	lsb := channel.LSB
	if opts.ScaleElectric {
		lsb, channel.Units = asample.EffectiveScale(channel.ChannelType, channel.Units, channel.DipoleLength, channel.LSB)
	}
	if err := attachCalibration(&channel, opts); err != nil {
		return atss.Channel{}, errors.Wrapf(err, "Convert error: %s", path)
	}
	if err := atss.Validate(channel); err != nil {
		return atss.Channel{}, errors.Wrapf(err, "Convert error: %s", path)
	}

	samplePath, sidecarPath, err := atss.Paths(outDir, channel.Identity)
	if err != nil {
		return atss.Channel{}, err
	}
	if !opts.Force {
		if existing, ok := lo.Find([]string{samplePath, sidecarPath}, exists); ok {
			return atss.Channel{}, ExistsError{Path: existing}
		}
	}

	samples, err := asample.ConvertFile(path, samplePath, asample.Options{
		Offset: header.DataOffset(),
		Width:  header.SampleWidth(),
		LSB:    lsb,
	})
	if err != nil {
		return atss.Channel{}, err
	}
	channel.Samples = samples

	if _, err := atss.Write(outDir, channel); err != nil {
		_ = os.Remove(samplePath)
		return atss.Channel{}, errors.Wrapf(err, "Convert error: %s", path)
	}
	return channel, nil
}

// ConvertAll converts the files at paths with at most jobs conversions at a
// time. A failing file does not stop the others; every path gets a Result,
// in the order of paths.
func ConvertAll(ctx context.Context, paths []string, outDir string, opts Options, jobs int) []Result {
	if jobs <= 0 {
		jobs = DefaultJobs
	}
	results := make([]Result, len(paths))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(jobs)
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			results[i].Path = path
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			channel, err := Convert(path, outDir, opts)
			results[i].Channel = channel
			results[i].Err = err
			if err == nil {
				results[i].SamplePath, _, _ = atss.Paths(outDir, channel.Identity)
			}
			return nil
		})
	}
	_ = group.Wait()
	return results
}

// Failed keeps the results that carry an error.
func Failed(results []Result) []Result {
	return lo.Filter(results, func(result Result, _ int) bool {
		return result.Err != nil
	})
}
