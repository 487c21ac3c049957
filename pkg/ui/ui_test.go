package ui_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/arthur-debert/redist/pkg/component"
	"github.com/arthur-debert/redist/pkg/script"
	"github.com/arthur-debert/redist/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *script.Result {
	return &script.Result{
		Deliveries: []script.Delivery{
			{Step: 1, Action: "update", Listener: "f", ID: 1, Args: []any{map[string]any{"x": 1}}},
			{Step: 2, Action: "update", Listener: "bad", ID: 2, Args: []any{2}, Panicked: true},
		},
		Rejections: []script.Rejection{{Step: 3, Op: "subscribe", Error: "[INVALID_ACTION] action name cannot be empty"}},
		States:     map[string]component.State{"form": {"y": 2}},
	}
}

func TestRenderText(t *testing.T) {
	var buf bytes.Buffer
	r := ui.NewRenderer(ui.FormatAuto, &buf)
	require.Equal(t, ui.FormatText, r.Format())

	require.NoError(t, r.RenderResult(sampleResult()))
	out := buf.String()

	assert.Contains(t, out, "Deliveries")
	assert.Contains(t, out, "[1] update -> f#1 [map[x:1]]")
	assert.Contains(t, out, "bad#2 [2] panicked")
	assert.Contains(t, out, "[3] subscribe: [INVALID_ACTION]")
	assert.Contains(t, out, "form map[y:2]")
}

func TestRenderTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatText, &buf).RenderResult(&script.Result{}))

	assert.Contains(t, buf.String(), "(none)")
	assert.NotContains(t, buf.String(), "Rejected")
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, ui.NewRenderer(ui.FormatJSON, &buf).RenderResult(sampleResult()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)

	var first map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "delivery", first["type"])
	assert.Equal(t, "f", first["listener"])
	assert.Equal(t, float64(1), first["id"])

	var rej map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[2]), &rej))
	assert.Equal(t, "rejection", rej["type"])

	var states map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[3]), &states))
	assert.Equal(t, "states", states["type"])
}
