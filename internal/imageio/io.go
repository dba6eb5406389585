// Package imageio converts still images to and from planar gblur frames.
//
// Decoding supports PNG, JPEG, GIF, WebP, BMP and TIFF. Encoding supports
// PNG, JPEG, BMP and TIFF, selected by file extension.
package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/gogpu/gblur"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned for a file extension with no encoder.
	ErrUnsupportedFormat = errors.New("imageio: unsupported format")

	// ErrUnsupportedChroma is returned when converting to or from a chroma
	// layout that has no image.YCbCr equivalent.
	ErrUnsupportedChroma = errors.New("imageio: unsupported chroma")
)

// JPEGQuality is the quality used when saving JPEG files.
const JPEGQuality = 92

// Load decodes the image at path into chroma c.
func Load(path string, c gblur.Chroma) (*gblur.PlanarImage, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("imageio: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, c)
}

// Decode decodes an image of any registered format into chroma c.
func Decode(r io.Reader, c gblur.Chroma) (*gblur.PlanarImage, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return FromImage(img, c)
}

// FromImage converts img into a planar frame in chroma c.
//
// YCbCr images whose subsampling matches c and grey images converted to
// ChromaGrey are copied sample for sample. Everything else goes through
// RGBA and is resampled.
func FromImage(img image.Image, c gblur.Chroma) (*gblur.PlanarImage, error) {
	b := img.Bounds()
	pic, err := gblur.NewPlanarImage(c, b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	switch src := img.(type) {
	case *image.YCbCr:
		if ratioOf(c) == src.SubsampleRatio {
			copyYCbCr(pic, src)
			return pic, nil
		}
	case *image.Gray:
		if c == gblur.ChromaGrey {
			copyPlane(&pic.Planes[0], src.Pix[src.PixOffset(b.Min.X, b.Min.Y):], src.Stride)
			return pic, nil
		}
	}

	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	fromRGBA(pic, rgba)
	return pic, nil
}

// ToImage wraps the samples of pic in a standard image. The result
// shares no memory with pic.
func ToImage(pic *gblur.PlanarImage) (image.Image, error) {
	w, h := pic.Width(), pic.Height()
	if pic.Chroma == gblur.ChromaGrey {
		g := image.NewGray(image.Rect(0, 0, w, h))
		for line := 0; line < h; line++ {
			copy(g.Pix[line*g.Stride:], pic.Planes[0].Row(line))
		}
		return g, nil
	}

	ratio := ratioOf(pic.Chroma)
	if ratio < 0 || len(pic.Planes) != 3 {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedChroma, pic.Chroma)
	}
	out := image.NewYCbCr(image.Rect(0, 0, w, h), ratio)
	cb, cr := cbcrPlanes(pic)
	for line := 0; line < h; line++ {
		copy(out.Y[line*out.YStride:], pic.Planes[0].Row(line))
	}
	for line := 0; line < cb.Lines; line++ {
		copy(out.Cb[line*out.CStride:], cb.Row(line))
		copy(out.Cr[line*out.CStride:], cr.Row(line))
	}
	return out, nil
}

// Save encodes pic to path, choosing the format from the extension.
func Save(path string, pic *gblur.PlanarImage) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("imageio: create file: %w", err)
	}
	if err := Encode(f, pic, filepath.Ext(path)); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// Encode writes pic in the format named by ext (".png", ".jpg", ...).
func Encode(w io.Writer, pic *gblur.PlanarImage, ext string) error {
	img, err := ToImage(pic)
	if err != nil {
		return err
	}

	switch strings.ToLower(ext) {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality})
	case ".gif":
		err = gif.Encode(w, img, nil)
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("imageio: encode %s: %w", ext, err)
	}
	return nil
}

// ratioOf maps a chroma layout to its image.YCbCr subsample ratio, or -1.
func ratioOf(c gblur.Chroma) image.YCbCrSubsampleRatio {
	switch c {
	case gblur.ChromaI420, gblur.ChromaJ420, gblur.ChromaYV12:
		return image.YCbCrSubsampleRatio420
	case gblur.ChromaI422, gblur.ChromaJ422:
		return image.YCbCrSubsampleRatio422
	default:
		return -1
	}
}

// cbcrPlanes returns the Cb and Cr planes of pic in that order.
func cbcrPlanes(pic *gblur.PlanarImage) (cb, cr *gblur.Plane) {
	if pic.Chroma == gblur.ChromaYV12 {
		return &pic.Planes[2], &pic.Planes[1]
	}
	return &pic.Planes[1], &pic.Planes[2]
}

func copyYCbCr(pic *gblur.PlanarImage, src *image.YCbCr) {
	b := src.Bounds()
	copyPlane(&pic.Planes[0], src.Y[src.YOffset(b.Min.X, b.Min.Y):], src.YStride)
	cb, cr := cbcrPlanes(pic)
	off := src.COffset(b.Min.X, b.Min.Y)
	copyPlane(cb, src.Cb[off:], src.CStride)
	copyPlane(cr, src.Cr[off:], src.CStride)
}

func copyPlane(dst *gblur.Plane, src []byte, stride int) {
	for line := 0; line < dst.Lines; line++ {
		copy(dst.Row(line), src[line*stride:])
	}
}

// fromRGBA converts rgba to pic, averaging chroma over each subsampled block.
func fromRGBA(pic *gblur.PlanarImage, rgba *image.RGBA) {
	w, h := pic.Width(), pic.Height()
	y := &pic.Planes[0]
	if len(pic.Planes) == 1 {
		for line := 0; line < h; line++ {
			for col := 0; col < w; col++ {
				y.Pix[line*y.Stride+col] = color.GrayModel.Convert(rgba.RGBAAt(col, line)).(color.Gray).Y
			}
		}
		return
	}

	xs, ys := pic.Chroma.Subsampling()
	cb, cr := cbcrPlanes(pic)
	sumCb := make([]int, cb.Lines*cb.Pitch)
	sumCr := make([]int, cb.Lines*cb.Pitch)
	count := make([]int, cb.Lines*cb.Pitch)

	for line := 0; line < h; line++ {
		for col := 0; col < w; col++ {
			p := rgba.RGBAAt(col, line)
			yy, u, v := color.RGBToYCbCr(p.R, p.G, p.B)
			y.Pix[line*y.Stride+col] = yy
			i := (line>>ys)*cb.Pitch + col>>xs
			sumCb[i] += int(u)
			sumCr[i] += int(v)
			count[i]++
		}
	}
	for line := 0; line < cb.Lines; line++ {
		for col := 0; col < cb.Pitch; col++ {
			i := line*cb.Pitch + col
			n := count[i]
			cb.Pix[line*cb.Stride+col] = byte((sumCb[i] + n/2) / n)
			cr.Pix[line*cr.Stride+col] = byte((sumCr[i] + n/2) / n)
		}
	}
}
