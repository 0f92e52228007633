package export

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checker(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if (x+y)%2 == 0 {
				c = color.RGBA{R: uint8(x), G: uint8(y), B: 40, A: 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestPNGRoundTripsPixels(t *testing.T) {
	src := checker(13, 7)
	data, err := PNGBytes(src)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, src.Bounds(), decoded.Bounds())
	for y := 0; y < 7; y++ {
		for x := 0; x < 13; x++ {
			r1, g1, b1, a1 := src.At(x, y).RGBA()
			r2, g2, b2, a2 := decoded.At(x, y).RGBA()
			require.Equal(t, [4]uint32{r1, g1, b1, a1}, [4]uint32{r2, g2, b2, a2}, "pixel %d,%d", x, y)
		}
	}
}

func TestPNGEmpty(t *testing.T) {
	_, err := PNGBytes(image.NewRGBA(image.Rectangle{}))
	assert.ErrorIs(t, err, ErrEmptyImage)
}

func TestPDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, checker(20, 10)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Contains(t, buf.String(), "/MediaBox [0 0 20.00 10.00]")

	assert.ErrorIs(t, PDF(&buf, image.NewRGBA(image.Rectangle{})), ErrEmptyImage)
}

func TestDownloadUsesFixedName(t *testing.T) {
	var gotName string
	var gotData []byte
	saver := SaverFunc(func(_ context.Context, name string, data []byte) error {
		gotName, gotData = name, data
		return nil
	})
	require.NoError(t, Download(context.Background(), saver, checker(4, 4)))
	assert.Equal(t, "whiteboard.png", gotName)
	cfg, err := png.DecodeConfig(bytes.NewReader(gotData))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Width)
	assert.Equal(t, 4, cfg.Height)
}

func TestDownloadSaverError(t *testing.T) {
	boom := errors.New("boom")
	saver := SaverFunc(func(context.Context, string, []byte) error { return boom })
	err := Download(context.Background(), saver, checker(2, 2))
	assert.ErrorIs(t, err, boom)
}

func TestDirSaver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	saver := DirSaver{Dir: dir}
	require.NoError(t, Download(context.Background(), saver, checker(3, 5)))
	require.NoError(t, DownloadPDF(context.Background(), saver, checker(3, 5)))

	f, err := os.Open(filepath.Join(dir, FileName))
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Width)
	assert.Equal(t, 5, cfg.Height)

	_, err = os.Stat(filepath.Join(dir, PDFFileName))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, FileName+".tmp"))
	assert.True(t, os.IsNotExist(err))
}
