package state

import (
	"fmt"
	"strings"
)

// Mode selects what a stroke does to the surface.
type Mode int

const (
	Pen Mode = iota
	Eraser
)

func (m Mode) String() string {
	switch m {
	case Pen:
		return "pen"
	case Eraser:
		return "eraser"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// WidthLevel is one of the three named pen widths offered by the toolbar.
type WidthLevel int

const (
	Thin WidthLevel = iota
	Medium
	Thick
)

var levelNames = [...]string{"thin", "medium", "thick"}

func (l WidthLevel) String() string {
	if l < Thin || l > Thick {
		return fmt.Sprintf("level(%d)", int(l))
	}
	return levelNames[l]
}

// ParseWidthLevel accepts "thin", "medium" or "thick" (case-insensitive).
func ParseWidthLevel(s string) (WidthLevel, error) {
	for i, name := range levelNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return WidthLevel(i), nil
		}
	}
	return 0, fmt.Errorf("unknown width level %q", s)
}

// WidthLevels maps the named levels to pixel widths.
type WidthLevels struct {
	Thin   float64 `mapstructure:"thin"`
	Medium float64 `mapstructure:"medium"`
	Thick  float64 `mapstructure:"thick"`
}

// DefaultWidthLevels are the widths used when nothing is configured.
var DefaultWidthLevels = WidthLevels{Thin: 2, Medium: 5, Thick: 10}

// DefaultEraserWidth is the fixed eraser width. The width selector does not
// affect it.
const DefaultEraserWidth = 20.0

// Width returns the pixel width for l, falling back to Medium for unknown levels.
func (w WidthLevels) Width(l WidthLevel) float64 {
	switch l {
	case Thin:
		return w.Thin
	case Thick:
		return w.Thick
	default:
		return w.Medium
	}
}

// ToolState is the live tool selection. The renderer reads it at the moment
// each segment is painted, so a change mid-stroke only affects later
// segments.
type ToolState struct {
	Mode   Mode
	Color  RGB
	Width  float64
	Level  WidthLevel
	levels WidthLevels
}

// NewToolState returns a black pen at the given level.
func NewToolState(levels WidthLevels, level WidthLevel) *ToolState {
	t := &ToolState{Mode: Pen, Color: Black, levels: levels}
	t.SetWidthLevel(level)
	return t
}

func (t *ToolState) SetMode(m Mode) { t.Mode = m }

func (t *ToolState) SetColor(c RGB) { t.Color = c }

// SetWidth sets an explicit pen width. Non-positive widths are ignored.
func (t *ToolState) SetWidth(w float64) {
	if w > 0 {
		t.Width = w
	}
}

// SetWidthLevel selects one of the named widths.
func (t *ToolState) SetWidthLevel(l WidthLevel) {
	t.Level = l
	t.Width = t.levels.Width(l)
}

// Levels returns the configured width table.
func (t *ToolState) Levels() WidthLevels { return t.levels }

// Style returns the effective segment style. The eraser paints the
// background color at eraserWidth regardless of the selected width.
func (t *ToolState) Style(background RGB, eraserWidth float64) StrokeStyle {
	if t.Mode == Eraser {
		return StrokeStyle{Color: background, Width: eraserWidth}
	}
	return StrokeStyle{Color: t.Color, Width: t.Width}
}
