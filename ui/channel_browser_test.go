package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"atsconv/atss"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeChannel(t *testing.T, dir string, channelNo int, samples int) {
	channel := atss.NewChannel()
	channel.Identity = atss.Identity{Serial: 84, System: "ADU-07e", ChannelNo: channelNo, ChannelType: "Hx", SampleRate: 512}
	channel.DateTime = time.Date(2021, 6, 14, 11, 30, 0, 0, time.UTC)
	samplePath, _, err := atss.Paths(dir, channel.Identity)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(samplePath, make([]byte, samples*atss.SampleWidth), 0644))
	_, err = atss.Write(dir, channel)
	require.NoError(t, err)
}

func TestLoadRows(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, 3, 10)
	writeChannel(t, dir, 1, 1024)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.atss"), nil, 0644))

	rows, problems, err := LoadRows(dir)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "084_ADU-07e_C001_THx_512Hz", rows[0].Filename)
	assert.Equal(t, int64(1024), rows[0].Samples)
	assert.Len(t, problems, 1)
}

func TestChannelBrowser(t *testing.T) {
	dir := t.TempDir()
	writeChannel(t, dir, 1, 1024)
	writeChannel(t, dir, 2, 2048)

	browser, err := CreateChannelBrowser(dir)
	require.NoError(t, err)
	view := browser.View()
	assert.Contains(t, view, "> 084_ADU-07e_C001_THx_512Hz")
	assert.Contains(t, view, "1,024")
	assert.Contains(t, view, "512 Hz")

	model, _ := browser.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, model.View(), "> 084_ADU-07e_C002_THx_512Hz")

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, model.View(), "2,048")
	assert.Contains(t, model.View(), "board        L")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
}

func TestChannelBrowser_Empty(t *testing.T) {
	browser, err := CreateChannelBrowser(t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, browser.View(), "No atss channels found")

	model, _ := browser.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, model.View(), "No atss channels found")
}
