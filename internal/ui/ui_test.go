package ui

import (
	"context"
	"image/color"
	"io"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pkt.systems/pslog"

	"RasterBoard/internal/board"
	"RasterBoard/internal/export"
	"RasterBoard/internal/state"
)

func quietContext() context.Context {
	logger := pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.ErrorLevel,
	})
	return pslog.ContextWithLogger(context.Background(), logger)
}

func newTestBoard(t *testing.T, w, h float32) *BoardWidget {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	bw := NewBoardWidget(board.New(quietContext(), board.DefaultOptions()))
	t.Cleanup(bw.Dispose)
	bw.Resize(fyne.NewSize(w, h))
	return bw
}

func press(bw *BoardWidget, x, y float32) {
	bw.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	})
}

func drag(bw *BoardWidget, x, y float32) {
	bw.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}})
}

func release(bw *BoardWidget) {
	bw.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButtonPrimary})
}

var opaqueBlack = color.RGBA{A: 0xff}
var opaqueWhite = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

func TestBoardWidgetFollowsLayoutSize(t *testing.T) {
	bw := newTestBoard(t, 60, 40)
	w, h := bw.Board().Size()
	assert.Equal(t, 60, w)
	assert.Equal(t, 40, h)
	assert.Equal(t, 60, bw.Display().Rect.Dx())
	assert.Equal(t, opaqueWhite, bw.Display().RGBAAt(10, 10))

	bw.Resize(fyne.NewSize(80, 50))
	w, h = bw.Board().Size()
	assert.Equal(t, 80, w)
	assert.Equal(t, 50, h)
	assert.Equal(t, 50, bw.Display().Rect.Dy())
}

func TestBoardWidgetDrawsIntoDisplay(t *testing.T) {
	bw := newTestBoard(t, 60, 40)
	var kinds []board.ChangeKind
	bw.OnChange = func(c board.Change) { kinds = append(kinds, c.Kind) }

	press(bw, 5, 20)
	drag(bw, 30, 20)
	drag(bw, 55, 20)
	release(bw)

	assert.Equal(t, []board.ChangeKind{board.Painted, board.Painted, board.Committed}, kinds)
	assert.Equal(t, opaqueBlack, bw.Display().RGBAAt(30, 20))
	assert.Equal(t, opaqueWhite, bw.Display().RGBAAt(30, 5))
	assert.True(t, bw.Board().CanUndo())
}

func TestBoardWidgetMouseOutEndsStroke(t *testing.T) {
	bw := newTestBoard(t, 40, 40)
	press(bw, 5, 5)
	drag(bw, 35, 35)
	bw.MouseOut()
	assert.Equal(t, board.Idle, bw.Board().Phase())
	assert.True(t, bw.Board().CanUndo())

	// Moves after leaving do not paint.
	snap, err := bw.Board().Snapshot()
	require.NoError(t, err)
	drag(bw, 5, 35)
	after, err := bw.Board().Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.Equal(after))
}

func TestToolbarUndoFollowsHistory(t *testing.T) {
	bw := newTestBoard(t, 60, 40)
	tb := NewToolbar(quietContext(), bw, nil)
	require.True(t, tb.undo.Disabled())
	require.False(t, tb.download.Disabled())

	press(bw, 5, 20)
	drag(bw, 55, 20)
	release(bw)
	assert.False(t, tb.undo.Disabled())

	test.Tap(tb.undo)
	assert.True(t, tb.undo.Disabled())
	assert.Equal(t, opaqueWhite, bw.Display().RGBAAt(30, 20))
	assert.False(t, bw.Board().CanUndo())
}

func TestToolbarSelections(t *testing.T) {
	bw := newTestBoard(t, 60, 40)
	tb := NewToolbar(quietContext(), bw, nil)
	assert.Equal(t, "medium", tb.width.Selected)

	tb.width.SetSelected("thick")
	tool := bw.Board().Tool()
	assert.Equal(t, state.Thick, tool.Level)
	assert.Equal(t, state.DefaultWidthLevels.Thick, tool.Width)

	tb.SetColor(Palette[1])
	tb.SetMode(state.Eraser)
	tool = bw.Board().Tool()
	assert.Equal(t, state.RGB{R: 255}, tool.Color)
	assert.Equal(t, state.Eraser, tool.Mode)
	assert.Contains(t, tb.status.Text, "eraser")
}

func TestToolbarDownload(t *testing.T) {
	bw := newTestBoard(t, 30, 20)
	tb := NewToolbar(quietContext(), bw, nil)

	var names []string
	saver := export.SaverFunc(func(_ context.Context, name string, data []byte) error {
		names = append(names, name)
		assert.NotEmpty(t, data)
		return nil
	})
	require.NoError(t, tb.Download(PNGFormat, saver))
	require.NoError(t, tb.Download(PDFFormat, saver))
	assert.Equal(t, []string{"whiteboard.png", "whiteboard.pdf"}, names)
	assert.Equal(t, "whiteboard.png", PNGFormat.FileName())
	assert.Equal(t, "whiteboard.pdf", PDFFormat.FileName())
}
