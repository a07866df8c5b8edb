package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tilecraft/isocam/pkg/blender"
	"github.com/tilecraft/isocam/pkg/config"
)

// Form field styles
var (
	fieldActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	fieldLabelStyle  = lipgloss.NewStyle().Foreground(colorGray).Width(11)
	panelStyle       = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorDim).
				Padding(0, 2)
)

// newTUICmd creates the tui command, an interactive form with
// live-updating settings.
func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive form with live-updating settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.DefaultPath()
			if err != nil {
				return err
			}
			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			p := tea.NewProgram(NewFormModel(cfg.Defaults))
			_, err = p.Run()
			return err
		},
	}
}

// Field indices in edit order.
const (
	fieldTileSize = iota
	fieldX
	fieldY
	fieldZ
	fieldCount
)

var fieldLabels = [fieldCount]string{"tile size", "x tiles", "y tiles", "z tiles"}

// FormModel is the bubbletea model for the dimensions form. The four text
// fields replace the Dimensions value field-by-field; every edit triggers a
// full recomputation of the settings shown in the result panel.
type FormModel struct {
	Fields   [fieldCount]string
	Cursor   int
	Settings blender.Settings
}

// NewFormModel creates a form model preloaded with the given dimensions.
func NewFormModel(d blender.Dimensions) FormModel {
	m := FormModel{
		Fields: [fieldCount]string{
			fmt.Sprintf("%d", d.TileSize),
			fmt.Sprintf("%d", d.XTiles),
			fmt.Sprintf("%d", d.YTiles),
			fmt.Sprintf("%d", d.ZTiles),
		},
	}
	m.Settings = blender.Compute(m.dimensions())
	return m
}

// dimensions parses the current field values, coercing non-numeric entry
// to zero before it reaches the core.
func (m FormModel) dimensions() blender.Dimensions {
	return blender.Dimensions{
		TileSize: coerceTiles(m.Fields[fieldTileSize]),
		XTiles:   coerceTiles(m.Fields[fieldX]),
		YTiles:   coerceTiles(m.Fields[fieldY]),
		ZTiles:   coerceTiles(m.Fields[fieldZ]),
	}
}

func (m FormModel) Init() tea.Cmd {
	return nil
}

func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "shift+tab":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "tab", "enter":
		if m.Cursor < fieldCount-1 {
			m.Cursor++
		}
	case "backspace":
		if f := m.Fields[m.Cursor]; f != "" {
			m.Fields[m.Cursor] = f[:len(f)-1]
			m.Settings = blender.Compute(m.dimensions())
		}
	default:
		if len(key.Runes) == 1 && key.Runes[0] >= '0' && key.Runes[0] <= '9' {
			m.Fields[m.Cursor] += string(key.Runes)
			m.Settings = blender.Compute(m.dimensions())
		}
	}
	return m, nil
}

func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Isometric Camera Settings"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("↑/↓ switch field  digits edit  q quit"))
	b.WriteString("\n\n")

	for i, label := range fieldLabels {
		cursor := "  "
		value := m.Fields[i]
		if i == m.Cursor {
			cursor = "▸ "
			value += "▏"
			b.WriteString(cursor + fieldLabelStyle.Render(label) + fieldActiveStyle.Render(value))
		} else {
			b.WriteString(cursor + fieldLabelStyle.Render(label) + StyleValue.Render(value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(panelStyle.Render(m.settingsPanel()))
	b.WriteString("\n")

	return b.String()
}

// settingsPanel renders the derived settings block.
func (m FormModel) settingsPanel() string {
	label := lipgloss.NewStyle().Foreground(colorGray).Width(8)
	return strings.Join([]string{
		label.Render("width") + StyleNumber.Render(fmt.Sprintf("%d px", m.Settings.Width)),
		label.Render("height") + StyleNumber.Render(fmt.Sprintf("%d px", m.Settings.Height)),
		label.Render("scale") + StyleNumber.Render(formatScale(m.Settings.Scale)),
	}, "\n")
}
