package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/tilecraft/isocam/pkg/buildinfo"
)

// Execute runs the isocam CLI and returns an error if any command fails.
// This is the main entry point for the CLI application.
//
// The function sets up the root command with all subcommands (compute, tui,
// preview, preset, serve, completion) and configures logging based on the
// --verbose flag. The logger is attached to the context and accessible to
// all commands via loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "isocam",
		Short:        "isocam derives Blender camera settings for isometric sprites",
		Long:         `isocam computes the image size and orthographic scale at which a voxel volume, measured in tiles, exactly fills the frame under Blender's classic 60°/45° isometric camera — so sprite sheets come out pixel-perfect.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			ctx := withLogger(cmd.Context(), newLogger(os.Stderr, level))
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newComputeCmd())
	root.AddCommand(newTUICmd())
	root.AddCommand(newPreviewCmd())
	root.AddCommand(newPresetCmd())
	root.AddCommand(newServeCmd())
	root.AddCommand(newCompletionCmd())

	return root.ExecuteContext(ctx)
}
