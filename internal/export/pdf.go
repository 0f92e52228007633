package export

import (
	"bytes"
	"fmt"
	"image"
	"io"

	"github.com/jung-kurt/gofpdf"
)

// PDFFileName is the name offered for PDF downloads.
const PDFFileName = "whiteboard.pdf"

// PDF writes img as a single-page PDF whose page is exactly the image size,
// one point per pixel.
func PDF(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Empty() {
		return ErrEmptyImage
	}
	var raw bytes.Buffer
	if err := PNG(&raw, img); err != nil {
		return err
	}

	width, height := float64(b.Dx()), float64(b.Dy())
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	p.RegisterImageOptionsReader("board", opts, &raw)
	p.ImageOptions("board", 0, 0, width, height, false, opts, 0, "")
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
