package ui

import (
	"context"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"pkt.systems/pslog"

	"RasterBoard/internal/board"
	"RasterBoard/internal/config"
)

// RunApp opens the whiteboard window and blocks until it is closed or ctx
// is cancelled.
func RunApp(ctx context.Context, cfg config.Config) error {
	opts, err := cfg.BoardOptions()
	if err != nil {
		return err
	}

	myApp := app.NewWithID("rasterboard")
	myWindow := myApp.NewWindow("Raster Whiteboard")
	myWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	b := board.New(ctx, opts)
	bw := NewBoardWidget(b)
	defer bw.Dispose()
	toolbar := NewToolbar(ctx, bw, myWindow)

	myWindow.SetContent(container.NewBorder(toolbar, nil, nil, nil, bw))

	stop := context.AfterFunc(ctx, func() {
		pslog.Ctx(ctx).Info("shutting down window")
		fyne.Do(myApp.Quit)
	})
	defer stop()

	myWindow.ShowAndRun()
	return nil
}
