package ui

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"atsconv/atss"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type ChannelBrowser struct {
	dir      string
	rows     []atss.Row
	problems []string
	cursor   int
	detail   bool
}

// LoadRows reads every atss channel in dir. Channels that cannot be read are
// reported as problems and left out.
func LoadRows(dir string) ([]atss.Row, []string, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"+atss.SampleExtension))
	if err != nil {
		return nil, nil, errors.Wrap(err, "LoadRows error")
	}
	sort.Strings(paths)

	rows := make([]atss.Row, 0, len(paths))
	problems := make([]string, 0)
	for _, path := range paths {
		channel, err := atss.Read(path)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		rows = append(rows, atss.ToRow(channel))
	}
	return rows, problems, nil
}

func CreateChannelBrowser(dir string) (ChannelBrowser, error) {
	rows, problems, err := LoadRows(dir)
	if err != nil {
		return ChannelBrowser{}, err
	}
	return ChannelBrowser{
		dir:      dir,
		rows:     rows,
		problems: problems,
	}, nil
}

func formatRate(sampleRate float64) string {
	value, prefix := humanize.ComputeSI(sampleRate)
	return humanize.Ftoa(value) + " " + prefix + "Hz"
}

func (b ChannelBrowser) viewTable() string {
	lines := lo.Map(b.rows, func(row atss.Row, i int) string {
		marker := " "
		if i == b.cursor {
			marker = ">"
		}
		return fmt.Sprintf(
			"%s %-36s %-20s %14s %10s",
			marker,
			row.Filename,
			row.Start.Format("2006-01-02 15:04:05"),
			humanize.Comma(row.Samples),
			formatRate(row.SampleRate),
		)
	})
	return strings.Join(lines, "\n")
}

func (b ChannelBrowser) viewDetail() string {
	row := b.rows[b.cursor]
	fields := [][2]string{
		{"file", row.Filename},
		{"system", fmt.Sprintf("%s %03d", row.System, row.Serial)},
		{"channel", fmt.Sprintf("%d %s", row.ChannelNo, row.ChannelType)},
		{"sample rate", formatRate(row.SampleRate)},
		{"board", row.Board},
		{"start", row.Start.Format("2006-01-02 15:04:05.999")},
		{"end", row.End.Format("2006-01-02 15:04:05.999")},
		{"samples", humanize.Comma(row.Samples)},
		{"position", fmt.Sprintf("%.6f %.6f %.2f m", row.Latitude, row.Longitude, row.Elevation)},
		{"orientation", fmt.Sprintf("azimuth %.1f tilt %.1f", row.Azimuth, row.Tilt)},
		{"units", row.Units},
		{"sensor", fmt.Sprintf("%s %d", row.Sensor, row.SensorNo)},
	}
	lines := lo.Map(fields, func(field [2]string, _ int) string {
		return fmt.Sprintf("%-12s %s", field[0], field[1])
	})
	return strings.Join(lines, "\n")
}

func (b ChannelBrowser) View() string {
	output := "ATSS CHANNELS\n\n"
	output += "Directory: " + b.dir + "\n\n"

	switch {
	case len(b.rows) == 0:
		output += "No atss channels found"
	case b.detail:
		output += b.viewDetail()
	default:
		output += b.viewTable()
	}
	if len(b.problems) > 0 {
		output += fmt.Sprintf("\n\n%d files could not be read:\n", len(b.problems))
		output += strings.Join(b.problems, "\n")
	}
	output += "\n\nup/down: move, enter: details, q: quit\n"
	return output
}

func (b ChannelBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return b, nil
	}
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return b, tea.Quit
	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}
	case "down", "j":
		if b.cursor < len(b.rows)-1 {
			b.cursor++
		}
	case "enter":
		b.detail = !b.detail
	case "esc":
		b.detail = false
	}
	return b, nil
}

func (b ChannelBrowser) Init() tea.Cmd {
	return nil
}
