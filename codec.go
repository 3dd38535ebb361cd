package spritebot

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/spritecollab/spritebot/edds"
)

// SheetCodec converts sheets to and from bytes. Ext is the file extension
// used for the sheet files, dot included.
type SheetCodec interface {
	Ext() string
	Decode(r io.Reader) (image.Image, error)
	Encode(w io.Writer, img image.Image) error
}

// PNG is the default sheet codec.
var PNG SheetCodec = pngCodec{}

type pngCodec struct{}

func (pngCodec) Ext() string { return ".png" }

func (pngCodec) Decode(r io.Reader) (image.Image, error) { return png.Decode(r) }

func (pngCodec) Encode(w io.Writer, img image.Image) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, img)
}

// EDDS stores sheets in lossless Enfusion DDS containers.
type EDDS struct {
	// Options are passed to the edds encoder; nil means BGRA8 with LZ4.
	Options *edds.EncodeOptions
}

func (EDDS) Ext() string { return ".edds" }

func (EDDS) Decode(r io.Reader) (image.Image, error) { return edds.Decode(r) }

func (c EDDS) Encode(w io.Writer, img image.Image) error {
	return edds.EncodeWithOptions(w, img, c.Options)
}

// SheetCodecByName returns the codec registered under name ("png" or "edds").
func SheetCodecByName(name string) (SheetCodec, error) {
	switch name {
	case "png", "":
		return PNG, nil
	case "edds":
		return EDDS{}, nil
	default:
		return nil, fmt.Errorf("unknown sheet format %q", name)
	}
}

// toNRGBA returns img as a zero-origin NRGBA, converting when needed.
func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}
