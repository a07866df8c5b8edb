package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/tilecraft/isocam/pkg/blender"
	"github.com/tilecraft/isocam/pkg/preset"
)

// newPresetCmd creates the preset command group for managing saved
// dimension presets. Presets are stored as JSON files under the user config
// directory and hold only inputs; settings are recomputed on use.
func newPresetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage saved dimension presets",
	}

	cmd.AddCommand(newPresetListCmd())
	cmd.AddCommand(newPresetSaveCmd())
	cmd.AddCommand(newPresetShowCmd())
	cmd.AddCommand(newPresetDeleteCmd())
	return cmd
}

func newPresetListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPresetStore()
			if err != nil {
				return err
			}
			defer store.Close()

			all, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				fmt.Println(StyleDim.Render("no presets saved"))
				return nil
			}
			for _, p := range all {
				d := p.Dimensions
				fmt.Printf("%s  %s\n",
					StyleValue.Render(fmt.Sprintf("%-20s", p.Name)),
					StyleDim.Render(fmt.Sprintf("%dx%dx%d tiles @ %dpx", d.XTiles, d.YTiles, d.ZTiles, d.TileSize)))
			}
			return nil
		},
	}
}

func newPresetSaveCmd() *cobra.Command {
	var flags dimFlags

	cmd := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the given dimensions under a name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store, err := openPresetStore()
			if err != nil {
				return err
			}
			defer store.Close()

			dims := blender.Dimensions{
				TileSize: coerceTiles(flags.tileSize),
				XTiles:   coerceTiles(flags.x),
				YTiles:   coerceTiles(flags.y),
				ZTiles:   coerceTiles(flags.z),
			}

			// Overwrite an existing preset of the same name in place.
			p, err := preset.FindByName(cmd.Context(), store, name)
			switch {
			case err == nil:
				p.Dimensions = dims
				p.UpdatedAt = time.Now().UTC()
			case err == preset.ErrNotFound:
				p, err = preset.New(name, dims)
				if err != nil {
					return err
				}
			default:
				return err
			}

			if err := store.Save(cmd.Context(), p); err != nil {
				return err
			}
			printSuccess("saved preset %q", name)
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.tileSize, "tile-size", "t", "32", "pixels per tile edge")
	cmd.Flags().StringVarP(&flags.x, "x", "x", "1", "volume extent along X in tiles")
	cmd.Flags().StringVarP(&flags.y, "y", "y", "1", "volume extent along Y in tiles")
	cmd.Flags().StringVarP(&flags.z, "z", "z", "1", "volume extent along Z in tiles")
	return cmd
}

func newPresetShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show a preset and its derived settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPresetStore()
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := preset.FindByName(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			fmt.Println(StyleTitle.Render(p.Name))
			printKeyValue("id", p.ID)
			printKeyValue("updated", p.UpdatedAt.Format("2006-01-02 15:04"))
			printSettings(p.Dimensions, blender.Compute(p.Dimensions))
			return nil
		},
	}
}

func newPresetDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openPresetStore()
			if err != nil {
				return err
			}
			defer store.Close()

			p, err := preset.FindByName(cmd.Context(), store, args[0])
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), p.ID); err != nil {
				return err
			}
			printSuccess("deleted preset %q", args[0])
			return nil
		},
	}
}

// formatScale renders a scale value the way the settings panel does.
func formatScale(s float64) string {
	return strconv.FormatFloat(s, 'f', 5, 64)
}
