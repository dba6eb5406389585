// Package y4m reads and writes YUV4MPEG2 streams of planar frames.
package y4m

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/gblur"
)

const (
	streamMagic = "YUV4MPEG2"
	frameMagic  = "FRAME"

	// maxHeaderLen bounds stream and frame header lines.
	maxHeaderLen = 4096
)

// Stream errors.
var (
	// ErrBadHeader is returned for a malformed or unsupported stream header.
	ErrBadHeader = errors.New("y4m: bad stream header")

	// ErrBadFrame is returned for a malformed or truncated frame.
	ErrBadFrame = errors.New("y4m: bad frame")
)

// Header describes a stream.
type Header struct {
	Width  int
	Height int
	Chroma gblur.Chroma

	// Params holds the remaining header tokens (frame rate, interlacing,
	// aspect ratio, ...) verbatim so they can be written back unchanged.
	Params []string
}

// colorspaces maps the C tag to a chroma layout.
var colorspaces = map[string]gblur.Chroma{
	"420":      gblur.ChromaI420,
	"420jpeg":  gblur.ChromaJ420,
	"420paldv": gblur.ChromaI420,
	"420mpeg2": gblur.ChromaI420,
	"422":      gblur.ChromaI422,
	"mono":     gblur.ChromaGrey,
}

func colorspaceTag(c gblur.Chroma) (string, bool) {
	switch c {
	case gblur.ChromaI420, gblur.ChromaYV12:
		return "420", true
	case gblur.ChromaJ420:
		return "420jpeg", true
	case gblur.ChromaI422, gblur.ChromaJ422:
		return "422", true
	case gblur.ChromaGrey:
		return "mono", true
	}
	return "", false
}

// Reader decodes frames from a stream.
type Reader struct {
	r      *bufio.Reader
	header Header
}

// NewReader reads the stream header from r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	line, err := readLine(br)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	fields := strings.Fields(line)
	if len(fields) == 0 || fields[0] != streamMagic {
		return nil, fmt.Errorf("%w: missing %s signature", ErrBadHeader, streamMagic)
	}

	h := Header{Chroma: gblur.ChromaJ420}
	for _, f := range fields[1:] {
		tag, value := f[0], f[1:]
		switch tag {
		case 'W':
			h.Width, err = strconv.Atoi(value)
		case 'H':
			h.Height, err = strconv.Atoi(value)
		case 'C':
			c, ok := colorspaces[value]
			if !ok {
				return nil, fmt.Errorf("%w: unsupported colorspace %q", ErrBadHeader, value)
			}
			h.Chroma = c
		default:
			h.Params = append(h.Params, f)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrBadHeader, f)
		}
	}
	if h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: frame size %dx%d", ErrBadHeader, h.Width, h.Height)
	}
	return &Reader{r: br, header: h}, nil
}

// Header returns the stream header.
func (r *Reader) Header() Header {
	return r.header
}

// ReadFrame reads the next frame. It returns io.EOF after the last frame.
func (r *Reader) ReadFrame() (*gblur.PlanarImage, error) {
	line, err := readLine(r.r)
	if err == io.EOF && line == "" {
		return nil, io.EOF
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadFrame, err)
	}
	if line != frameMagic && !strings.HasPrefix(line, frameMagic+" ") {
		return nil, fmt.Errorf("%w: expected %s, got %q", ErrBadFrame, frameMagic, line)
	}

	pic, err := gblur.NewPlanarImage(r.header.Chroma, r.header.Width, r.header.Height)
	if err != nil {
		return nil, err
	}
	for i := range pic.Planes {
		if _, err := io.ReadFull(r.r, pic.Planes[i].Pix); err != nil {
			return nil, fmt.Errorf("%w: plane %d: %w", ErrBadFrame, i, err)
		}
	}
	return pic, nil
}

// readLine reads a '\n' terminated line without the terminator.
func readLine(br *bufio.Reader) (string, error) {
	var sb strings.Builder
	for sb.Len() <= maxHeaderLen {
		b, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				err = io.ErrUnexpectedEOF
			}
			return sb.String(), err
		}
		if b == '\n' {
			return sb.String(), nil
		}
		sb.WriteByte(b)
	}
	return "", fmt.Errorf("header longer than %d bytes", maxHeaderLen)
}

// Writer encodes frames to a stream.
type Writer struct {
	w      *bufio.Writer
	header Header
}

// NewWriter writes the stream header to w.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	tag, ok := colorspaceTag(h.Chroma)
	if !ok || h.Width <= 0 || h.Height <= 0 {
		return nil, fmt.Errorf("%w: cannot write %v %dx%d", ErrBadHeader, h.Chroma, h.Width, h.Height)
	}
	bw := bufio.NewWriter(w)
	fields := append([]string{streamMagic,
		"W" + strconv.Itoa(h.Width),
		"H" + strconv.Itoa(h.Height),
	}, h.Params...)
	fields = append(fields, "C"+tag)
	if _, err := bw.WriteString(strings.Join(fields, " ") + "\n"); err != nil {
		return nil, err
	}
	return &Writer{w: bw, header: h}, nil
}

// WriteFrame writes pic, which must match the stream header.
func (w *Writer) WriteFrame(pic *gblur.PlanarImage) error {
	if pic.Width() != w.header.Width || pic.Height() != w.header.Height ||
		len(pic.Planes) != w.header.Chroma.Planes() {
		return fmt.Errorf("%w: %v %dx%d frame in %v %dx%d stream", ErrBadFrame,
			pic.Chroma, pic.Width(), pic.Height(), w.header.Chroma, w.header.Width, w.header.Height)
	}
	if _, err := w.w.WriteString(frameMagic + "\n"); err != nil {
		return err
	}
	for _, p := range streamOrder(pic) {
		for line := 0; line < p.Lines; line++ {
			if _, err := w.w.Write(p.Row(line)); err != nil {
				return err
			}
		}
	}
	return nil
}

// streamOrder returns the planes of pic in Y, Cb, Cr order.
func streamOrder(pic *gblur.PlanarImage) []*gblur.Plane {
	out := make([]*gblur.Plane, len(pic.Planes))
	for i := range pic.Planes {
		out[i] = &pic.Planes[i]
	}
	if pic.Chroma == gblur.ChromaYV12 && len(out) == 3 {
		out[1], out[2] = out[2], out[1]
	}
	return out
}

// Flush writes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
