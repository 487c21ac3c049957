// Package ui renders script results as styled terminal output, plain text
// or JSON lines.
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/arthur-debert/redist/pkg/script"
	"github.com/charmbracelet/lipgloss"
)

var (
	stepStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"})
	actionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#005FAF", Dark: "#5FAFFF"})
	listenerStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#008700", Dark: "#5FD75F"})
	errorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"})
	headerStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Renderer writes script results in one format
type Renderer struct {
	out    io.Writer
	format Format
}

// NewRenderer creates a renderer. FormatAuto is resolved against out when it
// is an *os.File and falls back to text otherwise.
func NewRenderer(format Format, out io.Writer) *Renderer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := out.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Renderer{out: out, format: format}
}

// Format returns the resolved format
func (r *Renderer) Format() Format {
	return r.format
}

// RenderResult writes every delivery, rejection and final component state.
func (r *Renderer) RenderResult(res *script.Result) error {
	if r.format == FormatJSON {
		return r.renderJSON(res)
	}

	style := func(s lipgloss.Style, text string) string {
		if r.format == FormatTerminal {
			return s.Render(text)
		}
		return text
	}

	if _, err := fmt.Fprintln(r.out, style(headerStyle, "Deliveries")); err != nil {
		return err
	}
	if len(res.Deliveries) == 0 {
		if _, err := fmt.Fprintln(r.out, "  (none)"); err != nil {
			return err
		}
	}
	for _, d := range res.Deliveries {
		line := fmt.Sprintf("  %s %s -> %s %v",
			style(stepStyle, fmt.Sprintf("[%d]", d.Step)),
			style(actionStyle, d.Action),
			style(listenerStyle, fmt.Sprintf("%s#%d", d.Listener, d.ID)),
			d.Args)
		if d.Panicked {
			line += " " + style(errorStyle, "panicked")
		}
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}

	if len(res.Rejections) > 0 {
		if _, err := fmt.Fprintln(r.out, style(headerStyle, "Rejected")); err != nil {
			return err
		}
		for _, rej := range res.Rejections {
			line := fmt.Sprintf("  %s %s: %s",
				style(stepStyle, fmt.Sprintf("[%d]", rej.Step)),
				rej.Op,
				style(errorStyle, rej.Error))
			if _, err := fmt.Fprintln(r.out, line); err != nil {
				return err
			}
		}
	}

	if len(res.States) > 0 {
		if _, err := fmt.Fprintln(r.out, style(headerStyle, "States")); err != nil {
			return err
		}
		names := make([]string, 0, len(res.States))
		for name := range res.States {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if _, err := fmt.Fprintf(r.out, "  %s %v\n", style(listenerStyle, name), res.States[name]); err != nil {
				return err
			}
		}
	}
	return nil
}

// renderJSON writes one object per delivery, then per rejection, then a
// final states object.
func (r *Renderer) renderJSON(res *script.Result) error {
	enc := json.NewEncoder(r.out)
	for _, d := range res.Deliveries {
		if err := enc.Encode(struct {
			Type string `json:"type"`
			script.Delivery
		}{"delivery", d}); err != nil {
			return err
		}
	}
	for _, rej := range res.Rejections {
		if err := enc.Encode(struct {
			Type string `json:"type"`
			script.Rejection
		}{"rejection", rej}); err != nil {
			return err
		}
	}
	return enc.Encode(struct {
		Type   string `json:"type"`
		States any    `json:"states"`
	}{"states", res.States})
}
