package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

const (
	darkBackground  = "#111827"
	lightBackground = "#FFFFFF"
)

// Palette centralizes Lip Gloss styles for a variant on a given background.
type Palette struct {
	Variant Variant
	Dark    bool

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Accent   lipgloss.Style
	Muted    lipgloss.Style
	Empty    lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style

	Pane       lipgloss.Style
	ActivePane lipgloss.Style
	Modal      ModalTheme
}

// ModalTheme styles the centered form overlay.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Label lipgloss.Style
	Error lipgloss.Style
	Body  lipgloss.Style
}

// DetectDark reports whether the terminal background is dark.
func DetectDark() bool {
	return termenv.HasDarkBackground()
}

// New builds the palette for v.
func New(v Variant, dark bool) Palette {
	accent := lipgloss.Color(v.Accent)
	muted := lipgloss.Color("244")
	frame := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	return Palette{
		Variant:  v,
		Dark:     dark,
		Title:    lipgloss.NewStyle().Foreground(accent).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(muted).Italic(true),
		Accent:   lipgloss.NewStyle().Foreground(accent),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Empty:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Selected: lipgloss.NewStyle().Foreground(accent).Reverse(true),
		Today:    lipgloss.NewStyle().Foreground(accent).Underline(true),

		Pane:       frame.BorderForeground(lipgloss.Color("238")),
		ActivePane: frame.BorderForeground(accent),
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(accent).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Foreground(accent).Bold(true),
			Label: lipgloss.NewStyle().Foreground(muted),
			Error: lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Italic(true),
			Body:  lipgloss.NewStyle(),
		},
	}
}

// Lane styles an event chip: the lane color on a shade of itself.
func (p Palette) Lane(lane, explicit string) lipgloss.Style {
	fg := p.Variant.LaneColor(lane, explicit)
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(Shade(fg, p.Dark, 0.8)))
}

// Shade blends hex toward the background in Lab space. amount 0 keeps the
// color, 1 yields the background. Unparseable input is returned unchanged.
func Shade(hex string, dark bool, amount float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	bgHex := lightBackground
	if dark {
		bgHex = darkBackground
	}
	bg, _ := colorful.Hex(bgHex)
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	return c.BlendLab(bg, amount).Clamped().Hex()
}

func normalizeHex(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", false
	}
	return c.Hex(), true
}
