// Package snapshot exports LED frames as PNG images.
package snapshot

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	xdraw "golang.org/x/image/draw"

	"github.com/plus3/ledtris/matrix"
)

// DefaultScale is the number of image pixels per LED side.
const DefaultScale = 16

// Image returns the frame with one image pixel per LED, in panel
// coordinates rather than strip order.
func Image(buf *matrix.Buffer) *image.RGBA {
	l := buf.Layout()
	img := image.NewRGBA(image.Rect(0, 0, l.Width, l.Height))
	for y := 0; y < l.Height; y++ {
		for x := 0; x < l.Width; x++ {
			img.SetRGBA(x, y, buf.At(x, y))
		}
	}
	return img
}

// Scaled enlarges the frame so every LED becomes a scale x scale block.
func Scaled(buf *matrix.Buffer, scale int) *image.RGBA {
	if scale < 1 {
		scale = 1
	}
	src := Image(buf)
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*scale, b.Dy()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}

// WritePNG encodes the scaled frame to w.
func WritePNG(w io.Writer, buf *matrix.Buffer, scale int) error {
	if err := png.Encode(w, Scaled(buf, scale)); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// SaveFile writes the frame to path, replacing any existing file.
func SaveFile(path string, buf *matrix.Buffer, scale int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close snapshot: %w", cerr)
		}
	}()
	return WritePNG(f, buf, scale)
}
