package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tilecraft/isocam/pkg/preview"
)

// newPreviewCmd creates the preview command, which renders the projected
// volume wireframe so the computed frame can be checked visually.
func newPreviewCmd() *cobra.Command {
	var flags dimFlags
	var output, formatsStr string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Render the projected volume as SVG or WebP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := flags.dimensions(cmd.Context())
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())

			for _, format := range parsePreviewFormats(formatsStr) {
				var data []byte
				switch format {
				case "svg":
					data = preview.SVG(dims)
				case "webp":
					data, err = preview.WebP(dims)
					if err != nil {
						return fmt.Errorf("render webp: %w", err)
					}
				default:
					return fmt.Errorf("invalid format: %s (must be 'svg' or 'webp')", format)
				}

				path := previewPath(output, format)
				if err := os.WriteFile(path, data, 0644); err != nil {
					return err
				}
				logger.Debugf("wrote %s: %d bytes", path, len(data))
				printFile(path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "preview", "output file or base path")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), webp (comma-separated)")
	return cmd
}

// parsePreviewFormats parses the --format flag into a slice of formats.
// If empty, defaults to ["svg"].
func parsePreviewFormats(s string) []string {
	if s == "" {
		return []string{"svg"}
	}
	return strings.Split(s, ",")
}

// previewPath derives the output path for a format, appending the format
// extension unless the base path already carries it.
func previewPath(base, format string) string {
	if strings.TrimPrefix(filepath.Ext(base), ".") == format {
		return base
	}
	return base + "." + format
}
