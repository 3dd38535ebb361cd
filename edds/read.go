package edds

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"io"

	"github.com/woozymasta/bcn"
)

// DecodeOptions configures EDDS decoding.
type DecodeOptions struct {
	// BCn are passed to the bcn decoder (e.g. Workers).
	BCn *bcn.DecodeOptions
}

// DecodeConfig returns the dimensions of an EDDS image without reading
// its pixel payload.
func DecodeConfig(r io.Reader) (image.Config, error) {
	header, _, err := readHeaders(r)
	if err != nil {
		return image.Config{}, err
	}

	return image.Config{
		Width:      int(header.Width),
		Height:     int(header.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// Decode reads an EDDS image and returns its largest mip level.
func Decode(r io.Reader) (*image.NRGBA, error) {
	return DecodeWithOptions(r, nil)
}

// DecodeWithOptions reads an EDDS image with the given options.
// Nil opts uses bcn defaults.
func DecodeWithOptions(r io.Reader, opts *DecodeOptions) (*image.NRGBA, error) {
	header, dx10, err := readHeaders(r)
	if err != nil {
		return nil, err
	}

	format := detectFormat(header, dx10)
	if format == bcn.FormatUnknown {
		return nil, fmt.Errorf("%w: unknown pixel format", ErrInvalidFormat)
	}

	levels := uint32(1)
	if header.Caps&bcn.DDSCapsMipmap != 0 && header.MipMapCount > 0 {
		levels = header.MipMapCount
	}

	payload, err := readLargestLevel(r, header, format, levels)
	if err != nil {
		return nil, err
	}

	var bcnOpts *bcn.DecodeOptions
	if opts != nil {
		bcnOpts = opts.BCn
	}
	img, err := bcn.DecodeImageWithOptions(payload, int(header.Width), int(header.Height), format, bcnOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return asNRGBA(img), nil
}

// readLargestLevel walks the block table and inflates the level 0 body.
// Blocks are stored smallest first, so level 0 is the last one.
func readLargestLevel(r io.Reader, header *bcn.DDSHeader, format bcn.Format, levels uint32) ([]byte, error) {
	table, err := readBlockTable(r, levels)
	if err != nil {
		return nil, err
	}

	last := len(table) - 1
	for i, entry := range table[:last] {
		if _, err := io.CopyN(io.Discard, r, int64(entry.size)); err != nil {
			return nil, fmt.Errorf("%w: skipping mip %d: %v", ErrBlockBody, last-i, err)
		}
	}

	body, err := readBlockBody(r, table[last])
	if err != nil {
		return nil, err
	}

	want := payloadSize(format, int(header.Width), int(header.Height))
	if want <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, format)
	}
	return decompressBlock(body, want)
}

func readHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrHeader, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: DX10: %v", ErrHeader, err)
	}

	return header, dx10, nil
}

// asNRGBA returns img as a zero-origin NRGBA, converting when needed.
func asNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) {
		return n
	}
	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}
