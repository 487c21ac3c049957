package main

import (
	"os"
	"strings"
	"text/template"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func stdoutIsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// formatBoldUpper returns the string in uppercase, bold on a terminal
func formatBoldUpper(s string) string {
	upper := strings.ToUpper(s)
	if !stdoutIsTerminal() {
		return upper
	}
	return pterm.Bold.Sprint(upper)
}

// initTemplateFormatting adds custom formatting functions to Cobra templates
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(template.FuncMap{
		"boldUpper": formatBoldUpper,
	})
}
