// Package board is the whiteboard controller. It owns one drawing surface,
// its undo history and the live tool selection, and turns pointer, tool,
// resize and export requests into operations on them.
package board

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"
	"time"

	"pkt.systems/pslog"

	"RasterBoard/internal/export"
	"RasterBoard/internal/raster"
	"RasterBoard/internal/state"
)

// Phase is the stroke state machine position.
type Phase int

const (
	Idle Phase = iota
	Drawing
)

func (p Phase) String() string {
	if p == Drawing {
		return "drawing"
	}
	return "idle"
}

// ChangeKind says why the surface changed.
type ChangeKind int

const (
	Painted ChangeKind = iota
	Committed
	Undone
	Reset
)

func (k ChangeKind) String() string {
	switch k {
	case Painted:
		return "painted"
	case Committed:
		return "committed"
	case Undone:
		return "undone"
	case Reset:
		return "reset"
	default:
		return fmt.Sprintf("change(%d)", int(k))
	}
}

// Change is delivered to OnChange after every visible state change.
type Change struct {
	Kind ChangeKind
	// Damage is the pixel rectangle that may differ from before. Undone and
	// Reset damage the whole surface; Committed carries the stroke's union.
	Damage image.Rectangle
	// Stroke is set for Committed.
	Stroke  *state.Stroke
	CanUndo bool
}

// Options configures a Board.
type Options struct {
	Background   state.RGB
	Color        state.RGB
	Levels       state.WidthLevels
	Level        state.WidthLevel
	EraserWidth  float64
	HistoryLimit int
	Now          func() time.Time
}

// DefaultOptions is a white board with a medium black pen.
func DefaultOptions() Options {
	return Options{
		Background:  state.White,
		Color:       state.Black,
		Levels:      state.DefaultWidthLevels,
		Level:       state.Medium,
		EraserWidth: state.DefaultEraserWidth,
		Now:         time.Now,
	}
}

// Board is one mounted whiteboard.
type Board struct {
	// OnChange, when set, is called after the board changed. It runs on the
	// goroutine that caused the change, without the board lock held.
	OnChange func(Change)

	mu       sync.Mutex
	opts     Options
	log      pslog.Logger
	seq      *state.Sequencer
	surface  *raster.Surface
	renderer *raster.Renderer
	history  *state.History[raster.Snapshot]
	tool     *state.ToolState

	phase  Phase
	last   state.Point
	stroke *state.Stroke
	damage image.Rectangle
	cancel func()
}

// New returns an unmounted board. The logger is taken from ctx.
func New(ctx context.Context, opts Options) *Board {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.EraserWidth <= 0 {
		opts.EraserWidth = state.DefaultEraserWidth
	}
	seq := state.NewSequencer("")
	surface := raster.NewSurface(opts.Background)
	tool := state.NewToolState(opts.Levels, opts.Level)
	tool.SetColor(opts.Color)
	return &Board{
		opts:     opts,
		log:      pslog.Ctx(ctx).With("board", seq.Site()),
		seq:      seq,
		surface:  surface,
		renderer: raster.NewRenderer(surface),
		history:  state.NewHistory(raster.Snapshot{}, opts.HistoryLimit),
		tool:     tool,
	}
}

// ID identifies the board in logs.
func (b *Board) ID() string { return b.seq.Site() }

// Mount sizes the board to vp and follows its resizes until Dispose. A
// board mounted into a viewport that has no area yet stays unavailable
// until the first usable resize. Mounting again replaces the previous
// subscription.
func (b *Board) Mount(vp Viewport) {
	cancel := vp.OnResize(func(w, h int) {
		if err := b.Resize(w, h); err != nil {
			b.log.Warn("viewport resize failed", "err", err)
		}
	})

	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
	}
	b.cancel = cancel
	b.mu.Unlock()

	w, h := vp.Size()
	b.log.Info("board mounted", "width", w, "height", h)
	if err := b.Resize(w, h); err != nil {
		b.log.Warn("initial size rejected", "err", err)
	}
}

// Dispose releases the resize subscription and the raster. Every drawing
// operation is inert afterwards until the board is mounted again.
func (b *Board) Dispose() {
	b.mu.Lock()
	if b.cancel != nil {
		b.cancel()
		b.cancel = nil
	}
	b.surface.Dispose()
	b.history.Reset(raster.Snapshot{})
	b.phase = Idle
	b.stroke = nil
	b.mu.Unlock()
	b.log.Info("board disposed")
}

// Resize reallocates the surface at w x h, discarding all content, and
// resets the history to a single blank entry. A stroke in progress stays
// in progress and continues on the new raster. A non-positive size is
// ignored.
func (b *Board) Resize(w, h int) error {
	b.mu.Lock()
	if w <= 0 || h <= 0 {
		b.mu.Unlock()
		b.log.Warn("ignoring degenerate resize", "width", w, "height", h)
		return nil
	}
	var err error
	if b.surface.Available() {
		_, err = b.surface.Resize(w, h)
	} else {
		err = b.surface.Initialize(w, h)
	}
	if err != nil {
		b.mu.Unlock()
		return fmt.Errorf("resize board: %w", err)
	}
	blank, err := b.surface.Snapshot()
	if err != nil {
		b.mu.Unlock()
		return fmt.Errorf("resize board: %w", err)
	}
	b.history.Reset(blank)
	b.damage = image.Rectangle{}
	ch := Change{Kind: Reset, Damage: b.surface.Bounds()}
	drawing := b.phase == Drawing
	b.mu.Unlock()

	b.log.Info("board resized", "width", w, "height", h, "drawing", drawing)
	b.emit(ch)
	return nil
}

// PointerDown starts a stroke at p. Nothing is painted until the pointer
// moves. A second PointerDown while drawing restarts the path at p; the
// pixels already painted stay and are committed with the next PointerUp.
func (b *Board) PointerDown(p state.Point) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.surface.Available() {
		b.log.Debug("pointer down ignored", "reason", raster.ErrSurfaceUnavailable)
		return
	}
	b.phase = Drawing
	b.last = p
	b.stroke = b.seq.Begin(p, b.opts.Now())
	b.damage = image.Rectangle{}
	b.log.Debug("stroke started", "stroke", b.stroke.ID, "seq", b.stroke.Seq, "x", p.X, "y", p.Y)
}

// PointerMove paints a segment from the previous point to p with the tool
// state as it is right now.
func (b *Board) PointerMove(p state.Point) {
	b.mu.Lock()
	if b.phase != Drawing {
		b.mu.Unlock()
		return
	}
	style := b.tool.Style(b.opts.Background, b.opts.EraserWidth)
	damage, err := b.renderer.Segment(b.last, p, style)
	b.last = p
	b.stroke.Points = append(b.stroke.Points, p)
	if err != nil {
		b.mu.Unlock()
		b.log.Debug("segment dropped", "err", err)
		return
	}
	b.damage = b.damage.Union(damage)
	ch := Change{Kind: Painted, Damage: damage, CanUndo: b.history.CanUndo()}
	b.mu.Unlock()

	if !damage.Empty() {
		b.emit(ch)
	}
}

// PointerUp ends the stroke and commits the surface to the history.
func (b *Board) PointerUp() { b.end("up") }

// PointerLeave behaves like PointerUp so a stroke cannot stay open after
// the pointer left the surface.
func (b *Board) PointerLeave() { b.end("leave") }

func (b *Board) end(reason string) {
	b.mu.Lock()
	if b.phase != Drawing {
		b.mu.Unlock()
		return
	}
	b.phase = Idle
	stroke := b.stroke
	damage := b.damage
	b.stroke = nil
	b.damage = image.Rectangle{}

	snap, err := b.surface.Snapshot()
	if err != nil {
		b.mu.Unlock()
		b.log.Debug("stroke not committed", "stroke", stroke.ID, "err", err)
		return
	}
	b.history.Commit(snap)
	ch := Change{Kind: Committed, Damage: damage, Stroke: stroke, CanUndo: b.history.CanUndo()}
	n, cursor := b.history.Len(), b.history.Cursor()
	b.mu.Unlock()

	b.log.Debug("stroke committed",
		"stroke", stroke.ID, "seq", stroke.Seq, "segments", stroke.Segments(),
		"reason", reason, "history", n, "cursor", cursor)
	b.emit(ch)
}

// Undo restores the previous history entry. It reports false when there is
// nothing to undo.
func (b *Board) Undo() bool {
	b.mu.Lock()
	snap, ok := b.history.Undo()
	if !ok {
		b.mu.Unlock()
		return false
	}
	if err := b.surface.Restore(snap); err != nil {
		b.mu.Unlock()
		b.log.Error("undo restore failed", "err", err)
		return false
	}
	ch := Change{Kind: Undone, Damage: b.surface.Bounds(), CanUndo: b.history.CanUndo()}
	cursor := b.history.Cursor()
	b.mu.Unlock()

	b.log.Debug("undo", "cursor", cursor)
	b.emit(ch)
	return true
}

// CanUndo reports whether Undo would do anything.
func (b *Board) CanUndo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.CanUndo()
}

// History returns the number of history entries and the cursor position.
func (b *Board) History() (length, cursor int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.history.Len(), b.history.Cursor()
}

func (b *Board) Phase() Phase {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.phase
}

// Size is the current surface size; zero when unavailable.
func (b *Board) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Width(), b.surface.Height()
}

// Tool returns a copy of the current tool selection.
func (b *Board) Tool() state.ToolState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return *b.tool
}

func (b *Board) SetMode(m state.Mode) {
	b.mu.Lock()
	b.tool.SetMode(m)
	b.mu.Unlock()
	b.log.Debug("tool mode", "mode", m)
}

func (b *Board) SetColor(c state.RGB) {
	b.mu.Lock()
	b.tool.SetColor(c)
	b.mu.Unlock()
	b.log.Debug("tool color", "color", c.Hex())
}

func (b *Board) SetWidthLevel(l state.WidthLevel) {
	b.mu.Lock()
	b.tool.SetWidthLevel(l)
	b.mu.Unlock()
	b.log.Debug("tool width", "level", l)
}

// Snapshot copies the current raster.
func (b *Board) Snapshot() (raster.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.Snapshot()
}

// CopyTo copies the pixels inside r into dst, for repainting only the
// damage reported by a Change.
func (b *Board) CopyTo(dst *image.RGBA, r image.Rectangle) (image.Rectangle, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.surface.CopyTo(dst, r)
}

// Image returns a copy of the current raster for display.
func (b *Board) Image() (*image.RGBA, error) {
	snap, err := b.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Image(), nil
}

// ExportPNG writes the whole surface as PNG.
func (b *Board) ExportPNG(w io.Writer) error {
	img, err := b.Image()
	if err != nil {
		return fmt.Errorf("export png: %w", err)
	}
	return export.PNG(w, img)
}

// ExportPDF writes the whole surface as a one-page PDF.
func (b *Board) ExportPDF(w io.Writer) error {
	img, err := b.Image()
	if err != nil {
		return fmt.Errorf("export pdf: %w", err)
	}
	return export.PDF(w, img)
}

// Download hands the PNG to saver as whiteboard.png.
func (b *Board) Download(ctx context.Context, saver export.Saver) error {
	return b.download(ctx, saver, export.Download)
}

// DownloadPDF hands the PDF to saver as whiteboard.pdf.
func (b *Board) DownloadPDF(ctx context.Context, saver export.Saver) error {
	return b.download(ctx, saver, export.DownloadPDF)
}

func (b *Board) download(ctx context.Context, saver export.Saver, fn func(context.Context, export.Saver, image.Image) error) error {
	img, err := b.Image()
	if err != nil {
		return fmt.Errorf("download: %w", err)
	}
	ctx = pslog.ContextWithLogger(ctx, b.log)
	if err := fn(ctx, saver, img); err != nil {
		if !errors.Is(err, context.Canceled) {
			b.log.Error("download failed", "err", err)
		}
		return err
	}
	return nil
}

func (b *Board) emit(ch Change) {
	if fn := b.OnChange; fn != nil {
		fn(ch)
	}
}
