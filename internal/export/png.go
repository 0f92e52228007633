// Package export turns a whiteboard raster into downloadable files.
package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"

	"pkt.systems/pslog"
)

// FileName is the fixed name of the downloaded PNG.
const FileName = "whiteboard.png"

// ErrEmptyImage is returned when asked to export a zero-sized raster.
var ErrEmptyImage = errors.New("nothing to export")

// PNG encodes the whole of img at its exact size.
func PNG(w io.Writer, img image.Image) error {
	if img.Bounds().Empty() {
		return ErrEmptyImage
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNGBytes is PNG into a fresh byte slice.
func PNGBytes(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := PNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Download encodes img as PNG and hands it to saver under FileName.
func Download(ctx context.Context, saver Saver, img image.Image) error {
	return download(ctx, saver, FileName, img, PNG)
}

// DownloadPDF is Download for the PDF rendition.
func DownloadPDF(ctx context.Context, saver Saver, img image.Image) error {
	return download(ctx, saver, PDFFileName, img, PDF)
}

func download(ctx context.Context, saver Saver, name string, img image.Image, encode func(io.Writer, image.Image) error) error {
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		return err
	}
	if err := saver.Save(ctx, name, buf.Bytes()); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	b := img.Bounds()
	pslog.Ctx(ctx).Info("board exported", "file", name, "width", b.Dx(), "height", b.Dy(), "bytes", buf.Len())
	return nil
}
