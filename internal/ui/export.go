package ui

import (
	"context"
	"errors"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"pkt.systems/pslog"

	"RasterBoard/internal/export"
)

// Format is a download file type.
type Format int

const (
	PNGFormat Format = iota
	PDFFormat
)

// FileName is the name offered in the save dialog.
func (f Format) FileName() string {
	if f == PDFFormat {
		return export.PDFFileName
	}
	return export.FileName
}

// uriSaver writes an export to the location picked in a save dialog. The
// dialog already carries the file name, so name is only logged.
type uriSaver struct {
	wc     fyne.URIWriteCloser
	closed bool
}

func (s *uriSaver) Save(ctx context.Context, name string, data []byte) error {
	_, werr := s.wc.Write(data)
	cerr := s.Close()
	if err := errors.Join(werr, cerr); err != nil {
		return fmt.Errorf("save %s to %s: %w", name, s.wc.URI(), err)
	}
	pslog.Ctx(ctx).Debug("export written", "uri", s.wc.URI().String())
	return nil
}

func (s *uriSaver) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.wc.Close()
}

// Download exports the board in format f through saver.
func (t *Toolbar) Download(f Format, saver export.Saver) error {
	b := t.board.Board()
	if f == PDFFormat {
		return b.DownloadPDF(t.ctx, saver)
	}
	return b.Download(t.ctx, saver)
}

func (t *Toolbar) save(f Format) {
	if t.window == nil {
		return
	}
	d := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, t.window)
			return
		}
		if wc == nil {
			return
		}
		saver := &uriSaver{wc: wc}
		defer saver.Close()
		if err := t.Download(f, saver); err != nil {
			dialog.ShowError(err, t.window)
		}
	}, t.window)
	d.SetFileName(f.FileName())
	d.Show()
}
