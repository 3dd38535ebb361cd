package edds

import (
	"bufio"
	"fmt"
	"image"
	"io"

	"github.com/woozymasta/bcn"
)

// EncodeOptions configures EDDS encoding.
type EncodeOptions struct {
	// Format is the payload layout, RGBA8 or BGRA8. Zero means BGRA8.
	Format Format
	// Compress stores the payload as an LZ4 chunk stream when it pays off.
	Compress bool
}

// DefaultEncodeOptions returns BGRA8 with LZ4 compression.
func DefaultEncodeOptions() *EncodeOptions {
	return &EncodeOptions{Format: BGRA8, Compress: true}
}

// Encode writes img as a single-level EDDS image with default options.
func Encode(w io.Writer, img image.Image) error {
	return EncodeWithOptions(w, img, nil)
}

// EncodeWithOptions writes img as a single-level EDDS image.
// Nil opts uses DefaultEncodeOptions.
func EncodeWithOptions(w io.Writer, img image.Image, opts *EncodeOptions) error {
	if opts == nil {
		opts = DefaultEncodeOptions()
	}
	format := opts.Format
	if format == bcn.FormatUnknown {
		format = BGRA8
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return ErrEmptyImage
	}
	width, err := u32FromInt(bounds.Dx())
	if err != nil {
		return err
	}
	height, err := u32FromInt(bounds.Dy())
	if err != nil {
		return err
	}

	header, err := newHeader(width, height, format)
	if err != nil {
		return err
	}

	payload, _, _, err := bcn.EncodeImageWithOptions(img, format, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}
	if want := payloadSize(format, bounds.Dx(), bounds.Dy()); len(payload) != want {
		return fmt.Errorf("%w: expected %d, got %d", ErrPayloadSizeMismatch, want, len(payload))
	}

	body := copyBlock(payload)
	if opts.Compress {
		if body, err = compressBlock(payload); err != nil {
			return err
		}
	}

	bw := bufio.NewWriter(w)
	if err := writeFile(bw, header, body); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

func writeFile(w io.Writer, header *bcn.DDSHeader, body *block) error {
	if err := bcn.WriteDDSMagic(w); err != nil {
		return err
	}
	if err := bcn.WriteDDSHeader(w, header); err != nil {
		return err
	}
	if err := body.writeEntry(w); err != nil {
		return err
	}
	return body.writeBody(w)
}
