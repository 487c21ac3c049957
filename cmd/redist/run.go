package main

import (
	"github.com/arthur-debert/redist/pkg/config"
	"github.com/arthur-debert/redist/pkg/logging"
	"github.com/arthur-debert/redist/pkg/registry"
	"github.com/arthur-debert/redist/pkg/script"
	"github.com/arthur-debert/redist/pkg/ui"
	"github.com/spf13/cobra"
)

func newRunCmd(cfg *config.Config) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "run <script.yaml>",
		Short: MsgRunShort,
		Long:  MsgRunLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}

			doc, err := script.ParseFile(args[0])
			if err != nil {
				return err
			}

			scope := registry.Local
			if cfg.Registry.Global {
				scope = registry.Global
			}
			logger := logging.GetLogger("run")
			res, err := script.Run(cmd.Context(), doc, script.Options{
				Logger:       &logger,
				DefaultKey:   cfg.Registry.Key,
				DefaultScope: scope,
			})
			if err != nil {
				return err
			}

			return ui.NewRenderer(outFormat, cmd.OutOrStdout()).RenderResult(res)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	return cmd
}
