package cmd

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/meysamhadeli/teamboard/config"
	"github.com/meysamhadeli/teamboard/render"
	"github.com/meysamhadeli/teamboard/render/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const brokenRoster = `{
	"Title": "Team Members",
	"ColumnHeaders": ["ID", "Name", "Role", "Nickname",],
	"Data": [
		{"ID": "1", "Name": "Ana", "Role": "Engineer", "Nickname": "ana",},
	],
}`

func newTestDependencies(t *testing.T, content string) (*RootDependencies, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "JsonChallenge.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg := config.DefaultConfig
	cfg.RosterFile = path
	cfg.ViewportWidth = 640
	cfg.LogLevel = "off"

	return newRootDependencies(dir, &cfg), path
}

func TestRenderOnce_JSON(t *testing.T) {
	deps, _ := newTestDependencies(t, brokenRoster)

	var out bytes.Buffer
	require.NoError(t, renderOnce(deps, formatJSON, &out))

	var dump struct {
		ViewportWidth int `json:"viewport_width"`
		Layout        struct {
			CellWidth int `json:"cell_width"`
		} `json:"layout"`
		Draws []render.DrawOp `json:"draws"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &dump))

	assert.Equal(t, 640, dump.ViewportWidth)
	assert.Equal(t, 161, dump.Layout.CellWidth)
	assert.Len(t, dump.Draws, 2+4+4)
}

func TestRenderOnce_Terminal(t *testing.T) {
	deps, _ := newTestDependencies(t, brokenRoster)

	var out bytes.Buffer
	require.NoError(t, renderOnce(deps, formatTerminal, &out))
	assert.Contains(t, out.String(), "Ana")

	assert.Error(t, renderOnce(deps, "pdf", &out))
}

func TestDrawFrame_KeepsLastGoodTable(t *testing.T) {
	deps, path := newTestDependencies(t, brokenRoster)

	var out bytes.Buffer
	require.NoError(t, drawFrame(deps, &out))
	assert.True(t, strings.HasPrefix(out.String(), clearScreen))
	assert.Contains(t, out.String(), "Engineer")

	require.NoError(t, os.WriteFile(path, []byte(`{"Title": `), 0644))
	out.Reset()
	require.NoError(t, drawFrame(deps, &out))
	assert.Contains(t, out.String(), "Engineer")

	stats := deps.Source.Stats()
	assert.Equal(t, int64(1), stats["failures"])
	assert.Contains(t, formatStats(stats), "failures: 1")
}

func TestHandleHangup_ReparsesAndResetsStats(t *testing.T) {
	deps, _ := newTestDependencies(t, brokenRoster)

	var out bytes.Buffer
	require.NoError(t, drawFrame(deps, &out))
	require.NoError(t, drawFrame(deps, &out))
	assert.Equal(t, int64(2), deps.Source.Stats()["total_reads"])
	assert.Equal(t, int64(1), deps.Source.Stats()["cache_hits"])

	handleHangup(deps)
	stats := deps.Source.Stats()
	assert.Equal(t, int64(0), stats["total_reads"])
	assert.Equal(t, int64(0), stats["cache_hits"])

	require.NoError(t, drawFrame(deps, &out))
	stats = deps.Source.Stats()
	assert.Equal(t, int64(1), stats["total_reads"])
	assert.Equal(t, int64(1), stats["reparses"])
	assert.Equal(t, int64(0), stats["cache_hits"])
}

func TestHandleRepairCommand_Print(t *testing.T) {
	deps, path := newTestDependencies(t, brokenRoster)

	var out bytes.Buffer
	require.NoError(t, handleRepairCommand(context.Background(), deps, path, repairOptions{}, &out))
	assert.Contains(t, out.String(), "Nickname")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, brokenRoster, string(content))
}

func TestHandleRepairCommand_Write(t *testing.T) {
	deps, path := newTestDependencies(t, brokenRoster)

	var out bytes.Buffer
	declined := repairOptions{write: true, reader: bufio.NewReader(strings.NewReader("n\n"))}
	require.NoError(t, handleRepairCommand(context.Background(), deps, path, declined, &out))
	content, _ := os.ReadFile(path)
	assert.Equal(t, brokenRoster, string(content))

	forced := repairOptions{write: true, force: true}
	require.NoError(t, handleRepairCommand(context.Background(), deps, path, forced, &out))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &decoded))
	assert.Equal(t, "Team Members", decoded["Title"])
}

func TestNewRenderContext(t *testing.T) {
	ctx := newRenderContext(config.DefaultConfig.Theme)

	assert.Equal(t, models.Color("#CCCCCC"), ctx.HeaderFill)
	assert.Equal(t, 18, ctx.TitleText.Size)
	assert.Equal(t, 10, ctx.ContentText.Size)
	assert.Equal(t, render.DefaultContext(), newRenderContext(nil))
}
