package main

import (
	"fmt"

	"github.com/arthur-debert/redist/internal/version"
	"github.com/arthur-debert/redist/pkg/config"
	"github.com/arthur-debert/redist/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity  int
		configPath string
	)
	cfg := &config.Config{}

	rootCmd := &cobra.Command{
		Use:     "redist",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("verbose") {
				overrides["logging.verbosity"] = verbosity
			}

			loaded, err := config.Load(configPath, overrides)
			if err != nil {
				return err
			}
			*cfg = *loaded

			logging.SetupLogger(cfg.Logging.Verbosity, cfg.Logging.File)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", MsgFlagConfig)

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newRunCmd(cfg))
	rootCmd.AddCommand(newConfigCmd(cfg))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "redist version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, err := fmt.Fprintf(out, "  built:  %s\n", version.Date)
			return err
		},
	}
}
