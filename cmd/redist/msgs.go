package main

// Command descriptions and flag help
const (
	MsgRootShort = "Scoped publish/subscribe registry for component state"
	MsgRootLong  = `redist broadcasts component state changes to listeners keyed by action.

Registries sharing a register key in global scope see each other's
listeners; local registries are private. Use "redist run" to play a
scenario and inspect which listener received what.`

	MsgRunShort = "Run a scenario script and print the delivery trace"
	MsgRunLong  = `Run reads a YAML scenario declaring registries, components and steps
(subscribe, unsubscribe, emit, connect, set_state) and prints every
delivery, every rejected step, and the final component states.`

	MsgConfigShort  = "Print the effective configuration as TOML"
	MsgVersionShort = "Print version information"

	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig  = "Config file (default $XDG_CONFIG_HOME/redist/redist.toml)"
	MsgFlagFormat  = "Output format: auto, term, text or json"

	MsgUsageTemplate = `{{boldUpper "usage"}}:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}{{if .HasAvailableSubCommands}}

{{boldUpper "commands"}}:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

{{boldUpper "flags"}}:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

{{boldUpper "global flags"}}:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`
)
