package ui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"RasterBoard/internal/board"
	"RasterBoard/internal/state"
)

// BoardWidget shows a board's raster and feeds it pointer input. Its laid
// out size is the board's viewport.
type BoardWidget struct {
	widget.BaseWidget

	// OnChange is called after the displayed image has been updated.
	OnChange func(board.Change)

	board    *board.Board
	viewport *board.Resizer
	display  *image.RGBA
	image    *canvas.Image
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)

// NewBoardWidget mounts b into a viewport that follows the widget size.
// The board stays unavailable until the widget is first laid out.
func NewBoardWidget(b *board.Board) *BoardWidget {
	w := &BoardWidget{
		board:    b,
		viewport: board.NewResizer(0, 0),
		display:  image.NewRGBA(image.Rectangle{}),
	}
	w.image = canvas.NewImageFromImage(w.display)
	w.image.FillMode = canvas.ImageFillStretch
	w.image.ScaleMode = canvas.ImageScalePixels
	w.ExtendBaseWidget(w)

	b.OnChange = w.changed
	b.Mount(w.viewport)
	return w
}

// Board is the controller behind the widget.
func (w *BoardWidget) Board() *board.Board { return w.board }

// Dispose releases the board's raster.
func (w *BoardWidget) Dispose() { w.board.Dispose() }

func (w *BoardWidget) changed(c board.Change) {
	switch c.Kind {
	case board.Reset, board.Undone:
		w.repaint()
	default:
		if _, err := w.board.CopyTo(w.display, c.Damage); err != nil {
			return
		}
		w.image.Refresh()
	}
	if w.OnChange != nil {
		w.OnChange(c)
	}
}

func (w *BoardWidget) repaint() {
	img, err := w.board.Image()
	if err != nil {
		img = image.NewRGBA(image.Rectangle{})
	}
	w.display = img
	w.image.Image = img
	w.image.Refresh()
}

// Display is the image currently shown.
func (w *BoardWidget) Display() *image.RGBA { return w.display }

func toPoint(p fyne.Position) state.Point {
	return state.Pt(float64(p.X), float64(p.Y))
}

func (w *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.board.PointerDown(toPoint(e.Position))
	}
}

func (w *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		w.board.PointerUp()
	}
}

func (w *BoardWidget) Dragged(e *fyne.DragEvent) {
	w.board.PointerMove(toPoint(e.Position))
}

func (w *BoardWidget) DragEnd() { w.board.PointerUp() }

func (w *BoardWidget) MouseOut() { w.board.PointerLeave() }

func (w *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (w *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (w *BoardWidget) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

func (w *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return &boardWidgetRenderer{widget: w}
}

type boardWidgetRenderer struct {
	widget *BoardWidget
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.widget.image}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.widget.image.Resize(size)
	r.widget.viewport.Resize(int(size.Width), int(size.Height))
}

func (r *boardWidgetRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *boardWidgetRenderer) Refresh() { r.widget.image.Refresh() }

func (r *boardWidgetRenderer) Destroy() {}
