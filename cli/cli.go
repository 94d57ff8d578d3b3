package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"atsconv/ats"
	"atsconv/ats/aheader"
	"atsconv/atss"
	"atsconv/atss/acal"
	"atsconv/atss/calstore"
	"atsconv/ui"
	"github.com/alexflint/go-arg"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	Args struct {
		Config      string          `arg:"-c,--config" help:"path to a YAML configuration file" placeholder:"FILE"`
		Verbose     bool            `arg:"-v,--verbose" help:"log debug messages"`
		Convert     *ConvertCmd     `arg:"subcommand:convert" help:"convert ats files to atss"`
		Info        *InfoCmd        `arg:"subcommand:info" help:"print the header of an ats or atss file"`
		Calibrate   *CalibrateCmd   `arg:"subcommand:calibrate" help:"print or store a theoretical sensor curve"`
		Interactive *InteractiveCmd `arg:"subcommand:interactive" help:"browse the atss channels of a folder"`
	}
	ConvertCmd struct {
		Paths         []string `arg:"positional,required" help:"ats files or folders holding them" placeholder:"PATH"`
		Out           string   `arg:"-o,--out" help:"output folder" placeholder:"DIR"`
		Force         bool     `help:"overwrite existing atss files"`
		ScaleElectric bool     `arg:"--scale-e" help:"write electric channels in mV/km"`
		Jobs          int      `arg:"-j,--jobs" help:"files converted at once"`
		CalibrationDB string   `arg:"--cal-db" help:"sqlite database with measured sensor curves" placeholder:"FILE"`
	}
	InfoCmd struct {
		Path string `arg:"positional,required" help:"ats, atss or json file" placeholder:"FILE"`
	}
	CalibrateCmd struct {
		Sensor  string  `arg:"positional,required" help:"sensor name, e.g. MFS-06e"`
		Serial  int     `help:"sensor serial number"`
		Chopper int     `help:"1 if the chopper is on"`
		FMin    float64 `arg:"--fmin" default:"0.001" help:"lowest frequency in Hz"`
		FMax    float64 `arg:"--fmax" default:"10000" help:"highest frequency in Hz"`
		Points  int     `default:"29" help:"number of frequencies"`
		Store   string  `arg:"--store" help:"insert the curve into this sqlite database" placeholder:"FILE"`
	}
	InteractiveCmd struct {
		Dir string `arg:"positional" default:"." help:"folder with atss files"`
	}
)

func (Args) Description() string {
	des := strings.Join(
		[]string{
			"A CLI utility to convert Metronix ats recordings",
			"to atss sample files with JSON side-cars.",
		},
		"\n",
	)
	des += "\n"
	return des
}

func CheckExistence(path string) bool {
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return false
	}
	return err == nil
}

func StartConverting(ctx context.Context, logger *slog.Logger, cmd ConvertCmd, config ConvertConfig) error {
	config = cmd.Merge(config)
	paths, err := CollectPaths(cmd.Paths)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return errors.New("no ats files found")
	}
	if !CheckExistence(config.OutputDirectory) {
		if err := os.MkdirAll(config.OutputDirectory, 0755); err != nil {
			return errors.Wrap(err, "StartConverting error")
		}
	}

	opts := ats.Options{
		ScaleElectric:          config.ScaleElectric,
		TheoreticalFrequencies: config.TheoreticalFrequencies,
		Force:                  cmd.Force,
	}
	if config.CalibrationDatabase != "" {
		store := calstore.OpenReadOnly(config.CalibrationDatabase)
		defer store.Close()
		opts.Calibrations = store
	}

	logger.Info("converting", slog.Int("files", len(paths)), slog.String("out", config.OutputDirectory))
	results := ats.ConvertAll(ctx, paths, config.OutputDirectory, opts, config.Jobs)
	for _, result := range results {
		if result.Err != nil {
			logger.Error("conversion failed", slog.String("path", result.Path), slog.String("error", result.Err.Error()))
			continue
		}
		logger.Debug(
			"converted",
			slog.String("path", result.Path),
			slog.String("to", result.SamplePath),
			slog.String("samples", humanize.Comma(result.Channel.Samples)),
		)
	}
	fmt.Println(Report(results))

	if failed := ats.Failed(results); len(failed) > 0 {
		return errors.Errorf("%d of %d files failed", len(failed), len(results))
	}
	return nil
}

// Report sums up a batch for the terminal.
func Report(results []Result) string {
	converted := lo.Filter(results, func(result Result, _ int) bool { return result.Err == nil })
	samples := lo.SumBy(converted, func(result Result) int64 { return result.Channel.Samples })
	rate, prefix := humanize.ComputeSI(lo.SumBy(converted, func(result Result) float64 {
		return result.Channel.SampleRate
	}))
	return fmt.Sprintf(
		"%d converted, %d failed, %s samples (%s) at %s %sHz combined",
		len(converted),
		len(results)-len(converted),
		humanize.Comma(samples),
		humanize.Bytes(uint64(samples)*atss.SampleWidth),
		humanize.Ftoa(rate),
		prefix,
	)
}

type Result = ats.Result

func printJSON(w io.Writer, v any) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "printJSON error")
	}
	_, err = fmt.Fprintln(w, string(bs))
	return err
}

// StartInfo prints an ats header in on-disk order, or the side-car of an
// atss channel.
func StartInfo(w io.Writer, cmd InfoCmd) error {
	if !CheckExistence(cmd.Path) {
		return errors.Errorf("%s does not exist", cmd.Path)
	}
	ext := strings.ToLower(filepath.Ext(cmd.Path))
	if ext == atss.SampleExtension || ext == atss.SidecarExtension {
		channel, err := atss.Read(cmd.Path)
		if err != nil {
			return err
		}
		name, err := atss.Filename(channel.Identity)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s: %s samples\n", name, humanize.Comma(channel.Samples))
		return printJSON(w, atss.ToLinkedHashMap(channel))
	}

	header, channel, err := ats.ReadChannel(cmd.Path)
	if err != nil {
		return err
	}
	lhm, err := aheader.ToLinkedHashMap(*header)
	if err != nil {
		return err
	}
	name, err := atss.Filename(channel.Identity)
	if err != nil {
		name = err.Error()
	}
	fmt.Fprintf(w, "%s -> %s (%s layout)\n", cmd.Path, name, aheader.LayoutFor(header.HeaderVersion))
	return printJSON(w, lhm)
}

func StartCalibrating(w io.Writer, logger *slog.Logger, cmd CalibrateCmd) error {
	freqs, err := acal.LogSpace(cmd.FMin, cmd.FMax, cmd.Points)
	if err != nil {
		return err
	}
	calibration, err := acal.Theoretical(cmd.Sensor, cmd.Serial, cmd.Chopper, freqs)
	if err != nil {
		return err
	}
	if cmd.Store != "" {
		store := calstore.Open(cmd.Store)
		defer store.Close()
		if err := store.Insert(calibration); err != nil {
			return err
		}
		logger.Info("stored curve", slog.String("sensor", calibration.Sensor), slog.String("db", cmd.Store))
	}

	fmt.Fprintf(w, "%12s %14s %10s\n", "f [Hz]", "a [mV/nT]", "p [deg]")
	for i := range calibration.F {
		fmt.Fprintf(w, "%12.5g %14.6g %10.3f\n", calibration.F[i], calibration.A[i], calibration.P[i])
	}
	return nil
}

func newLogger(verbose bool, level string) *slog.Logger {
	var logLevel slog.LevelVar
	if parsed, err := ParseLogLevel(level); err == nil {
		logLevel.Set(parsed)
	}
	if verbose {
		logLevel.Set(slog.LevelDebug)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))
}

// Start runs the command line and returns the process exit code.
func Start() int {
	args := Args{}
	parser := arg.MustParse(&args)

	config := DefaultConfig()
	if args.Config != "" {
		loaded, err := LoadConfig(args.Config)
		if err != nil {
			newLogger(args.Verbose, config.Settings.LogLevel).Error(err.Error(), slog.String("path", args.Config))
			return 1
		}
		config = loaded
	}
	logger := newLogger(args.Verbose, config.Settings.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch {
	case args.Convert != nil:
		err = StartConverting(ctx, logger, *args.Convert, config.Convert)
	case args.Info != nil:
		err = StartInfo(os.Stdout, *args.Info)
	case args.Calibrate != nil:
		err = StartCalibrating(os.Stdout, logger, *args.Calibrate)
	case args.Interactive != nil:
		err = ui.Start(args.Interactive.Dir)
	default:
		parser.WriteHelp(os.Stdout)
	}
	if err != nil {
		logger.Error(err.Error())
		return 1
	}
	return 0
}
