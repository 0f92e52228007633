package ui

import (
	"context"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"RasterBoard/internal/board"
	"RasterBoard/internal/state"
)

// Palette is the row of quick color swatches.
var Palette = []state.RGB{
	state.Black,
	{R: 255},
	{G: 255},
	{B: 255},
	{R: 255, G: 255},
}

type colorSwatch struct {
	widget.BaseWidget
	Color    state.RGB
	OnTapped func(state.RGB)
}

func newColorSwatch(c state.RGB, tapped func(state.RGB)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(32, 32))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

// Toolbar holds the tool, color, width, undo and download controls of one
// board, and a status line that follows the board.
type Toolbar struct {
	widget.BaseWidget

	ctx    context.Context
	board  *BoardWidget
	window fyne.Window

	width    *widget.Select
	undo     *widget.Button
	download *widget.Button
	pdf      *widget.Button
	status   *widget.Label
}

// NewToolbar wires the controls to bw. Dialogs open on win.
func NewToolbar(ctx context.Context, bw *BoardWidget, win fyne.Window) *Toolbar {
	t := &Toolbar{ctx: ctx, board: bw, window: win, status: widget.NewLabel("")}
	b := bw.Board()

	t.width = widget.NewSelect([]string{state.Thin.String(), state.Medium.String(), state.Thick.String()}, func(s string) {
		level, err := state.ParseWidthLevel(s)
		if err != nil {
			return
		}
		b.SetWidthLevel(level)
		t.refreshStatus()
	})
	t.width.SetSelected(b.Tool().Level.String())

	t.undo = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), t.Undo)
	t.download = widget.NewButtonWithIcon("Download", theme.DownloadIcon(), func() {
		t.save(PNGFormat)
	})
	t.pdf = widget.NewButtonWithIcon("PDF", theme.DocumentSaveIcon(), func() {
		t.save(PDFFormat)
	})

	prev := bw.OnChange
	bw.OnChange = func(c board.Change) {
		if prev != nil {
			prev(c)
		}
		t.sync()
	}
	t.sync()

	if win != nil {
		win.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
			t.Undo()
		})
	}

	t.ExtendBaseWidget(t)
	return t
}

// SetMode switches between pen and eraser.
func (t *Toolbar) SetMode(m state.Mode) {
	t.board.Board().SetMode(m)
	t.refreshStatus()
}

// SetColor selects the pen color.
func (t *Toolbar) SetColor(c state.RGB) {
	t.board.Board().SetColor(c)
	t.refreshStatus()
}

// Undo reverts the last committed stroke.
func (t *Toolbar) Undo() {
	t.board.Board().Undo()
}

func (t *Toolbar) pickColor() {
	if t.window == nil {
		return
	}
	picker := dialog.NewColorPicker("Pen color", "Choose the pen color", func(c color.Color) {
		t.SetColor(state.FromColor(c))
	}, t.window)
	picker.Advanced = true
	picker.SetColor(t.board.Board().Tool().Color)
	picker.Show()
}

// sync follows the board: undo is only enabled when there is something to
// undo, and export only once the board has a raster.
func (t *Toolbar) sync() {
	b := t.board.Board()
	if b.CanUndo() {
		t.undo.Enable()
	} else {
		t.undo.Disable()
	}
	if w, h := b.Size(); w > 0 && h > 0 {
		t.download.Enable()
		t.pdf.Enable()
	} else {
		t.download.Disable()
		t.pdf.Disable()
	}
	t.refreshStatus()
}

func (t *Toolbar) refreshStatus() {
	b := t.board.Board()
	tool := b.Tool()
	n, cursor := b.History()
	w, h := b.Size()
	t.status.SetText(fmt.Sprintf("%s %s %s | %dx%d | history %d/%d",
		tool.Mode, tool.Color.Hex(), tool.Level, w, h, cursor, n-1))
}

func (t *Toolbar) CreateRenderer() fyne.WidgetRenderer {
	tools := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() { t.SetMode(state.Pen) }),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() { t.SetMode(state.Eraser) }),
		widget.NewToolbarAction(theme.ColorPaletteIcon(), t.pickColor),
	)

	swatches := container.NewHBox()
	for _, c := range Palette {
		swatches.Add(newColorSwatch(c, t.SetColor))
	}

	row := container.NewHBox(
		widget.NewLabel("Tool:"),
		tools,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		swatches,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		container.New(layout.NewGridWrapLayout(fyne.NewSize(120, 35)), t.width),
		widget.NewSeparator(),
		t.undo,
		layout.NewSpacer(),
		t.download,
		t.pdf,
	)
	return widget.NewSimpleRenderer(container.NewVBox(row, t.status))
}
