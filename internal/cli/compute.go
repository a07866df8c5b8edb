package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tilecraft/isocam/pkg/blender"
	"github.com/tilecraft/isocam/pkg/config"
	"github.com/tilecraft/isocam/pkg/preset"
)

// dimFlags holds the raw dimension flag values shared by the compute and
// preview commands. Values are kept as strings so non-numeric input can be
// coerced to zero, matching the behavior of the interactive form.
type dimFlags struct {
	tileSize string
	x, y, z  string
	preset   string
}

// register adds the dimension flags to cmd.
func (f *dimFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.tileSize, "tile-size", "t", "32", "pixels per tile edge")
	cmd.Flags().StringVarP(&f.x, "x", "x", "1", "volume extent along X in tiles")
	cmd.Flags().StringVarP(&f.y, "y", "y", "1", "volume extent along Y in tiles")
	cmd.Flags().StringVarP(&f.z, "z", "z", "1", "volume extent along Z in tiles")
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "load dimensions from a saved preset (overrides flags)")
}

// dimensions resolves the flags into a Dimensions value, loading a preset
// when one was requested.
func (f *dimFlags) dimensions(ctx context.Context) (blender.Dimensions, error) {
	if f.preset != "" {
		store, err := openPresetStore()
		if err != nil {
			return blender.Dimensions{}, err
		}
		defer store.Close()
		p, err := preset.FindByName(ctx, store, f.preset)
		if err != nil {
			return blender.Dimensions{}, fmt.Errorf("load preset %q: %w", f.preset, err)
		}
		return p.Dimensions, nil
	}
	return blender.Dimensions{
		TileSize: coerceTiles(f.tileSize),
		XTiles:   coerceTiles(f.x),
		YTiles:   coerceTiles(f.y),
		ZTiles:   coerceTiles(f.z),
	}, nil
}

// coerceTiles parses a tile count, treating non-numeric or negative input
// as zero. The core performs no validation of its own, so the coercion
// happens here at the collaborator boundary.
func coerceTiles(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// newComputeCmd creates the compute command, which derives the camera
// settings for a single volume and prints them.
func newComputeCmd() *cobra.Command {
	var flags dimFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Derive width, height and scale for a voxel volume",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dims, err := flags.dimensions(cmd.Context())
			if err != nil {
				return err
			}
			logger := loggerFromContext(cmd.Context())
			logger.Debug("computing settings",
				"tile_size", dims.TileSize,
				"x", dims.XTiles, "y", dims.YTiles, "z", dims.ZTiles)

			settings := blender.Compute(dims)
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(settings)
			}
			printSettings(dims, settings)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print settings as JSON")
	return cmd
}

// printSettings prints the derived settings as labeled values.
// Scale uses fixed 5-decimal display; full precision is available via --json.
func printSettings(d blender.Dimensions, s blender.Settings) {
	printKeyValue("volume", fmt.Sprintf("%d x %d x %d tiles @ %dpx", d.XTiles, d.YTiles, d.ZTiles, d.TileSize))
	printKeyValue("width", strconv.Itoa(s.Width))
	printKeyValue("height", strconv.Itoa(s.Height))
	printKeyValue("scale", fmt.Sprintf("%.5f", s.Scale))
}

// openPresetStore opens the CLI's file-backed preset store under the user
// config directory.
func openPresetStore() (preset.Store, error) {
	path, err := config.DefaultPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	dir, err := cfg.PresetDir()
	if err != nil {
		return nil, err
	}
	return preset.NewFileStore(dir)
}
