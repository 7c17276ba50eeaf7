package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"tableflip.dev/lanes/pkg/config"
	"tableflip.dev/lanes/pkg/lane"
)

// Mode is the light/dark presentation flag threaded into every render.
type Mode int

const (
	Light Mode = iota
	Dark
)

func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Toggle flips between light and dark.
func (m Mode) Toggle() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// Resolve turns a configured theme into a concrete mode. Auto asks the
// terminal for its background color.
func Resolve(t config.Theme) Mode {
	switch t {
	case config.ThemeLight:
		return Light
	case config.ThemeDark:
		return Dark
	default:
		if termenv.HasDarkBackground() {
			return Dark
		}
		return Light
	}
}

// Palette holds the raw colors of a mode.
type Palette struct {
	Background string
	Foreground string
	Muted      string
	Border     string
	Accent     string
	Lanes      map[lane.ID]string
}

var (
	lightPalette = Palette{
		Background: "#FFFFFF",
		Foreground: "#212121",
		Muted:      "#757575",
		Border:     "#BDBDBD",
		Accent:     "#1E88E5",
		Lanes: map[lane.ID]string{
			lane.Done:    "#4CAF50",
			lane.Pending: "#FFC107",
			lane.NotDone: "#F44336",
		},
	}
	darkPalette = Palette{
		Background: "#1E1E1E",
		Foreground: "#EEEEEE",
		Muted:      "#9E9E9E",
		Border:     "#555555",
		Accent:     "#64B5F6",
		Lanes: map[lane.ID]string{
			lane.Done:    "#66BB6A",
			lane.Pending: "#FFCA28",
			lane.NotDone: "#EF5350",
		},
	}
)

// dashed marks the card being dragged.
var dashed = lipgloss.Border{
	Top:         "╌",
	Bottom:      "╌",
	Left:        "╎",
	Right:       "╎",
	TopLeft:     "┌",
	TopRight:    "┐",
	BottomLeft:  "└",
	BottomRight: "┘",
}

// Theme centralizes Lip Gloss styles for the board.
type Theme struct {
	Mode    Mode
	Palette Palette

	Lane   LaneTheme
	Card   CardTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// LaneTheme styles lane columns.
type LaneTheme struct {
	Frame        lipgloss.Style
	FrameFocused lipgloss.Style
	Empty        lipgloss.Style
}

// CardTheme styles cards by state. The dragged card is dashed and faded,
// drop targets are outlined in the accent color while a drag is in flight.
type CardTheme struct {
	Base        lipgloss.Style
	Cursor      lipgloss.Style
	Entering    lipgloss.Style
	Exiting     lipgloss.Style
	Dragging    lipgloss.Style
	DropTarget  lipgloss.Style
	Title       lipgloss.Style
	Description lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles the add-task form.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Error lipgloss.Style
}

// New builds the styles for mode.
func New(mode Mode) Theme {
	p := lightPalette
	if mode == Dark {
		p = darkPalette
	}
	fg := lipgloss.Color(p.Foreground)
	muted := lipgloss.Color(p.Muted)
	border := lipgloss.Color(p.Border)
	accent := lipgloss.Color(p.Accent)

	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Padding(0, 1)

	return Theme{
		Mode:    mode,
		Palette: p,
		Lane: LaneTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(border).
				Padding(0, 1),
			FrameFocused: lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(accent).
				Padding(0, 1),
			Empty: lipgloss.NewStyle().Foreground(muted).Italic(true),
		},
		Card: CardTheme{
			Base:     card,
			Cursor:   card.BorderForeground(accent).Bold(true),
			Entering: card.BorderForeground(lipgloss.Color(p.Lanes[lane.Pending])),
			Exiting: card.
				BorderForeground(lipgloss.Color(Fade(p.Border, p.Background, 0.6))).
				Foreground(lipgloss.Color(Fade(p.Foreground, p.Background, 0.6))),
			Dragging: card.
				Border(dashed).
				BorderForeground(accent).
				Foreground(lipgloss.Color(Fade(p.Foreground, p.Background, 0.5))),
			DropTarget:  card.BorderForeground(lipgloss.Color(Fade(p.Accent, p.Background, 0.4))),
			Title:       lipgloss.NewStyle().Bold(true),
			Description: lipgloss.NewStyle().Foreground(muted),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(muted),
			Status: lipgloss.NewStyle().Foreground(fg),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Lanes[lane.NotDone])).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
			Label: lipgloss.NewStyle().Foreground(muted),
			Error: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Lanes[lane.NotDone])),
		},
	}
}

// LaneHeader styles a lane title in its lane color.
func (t Theme) LaneHeader(l lane.ID) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Palette.Lanes[l]))
}

// Fade blends fg toward bg by amount (0 keeps fg, 1 yields bg). Invalid hex
// values fall back to fg.
func Fade(fg, bg string, amount float64) string {
	from, err := colorful.Hex(fg)
	if err != nil {
		return fg
	}
	to, err := colorful.Hex(bg)
	if err != nil {
		return fg
	}
	return from.BlendLab(to, amount).Clamped().Hex()
}
