package edds

import (
	"fmt"

	"github.com/woozymasta/bcn"
)

// Format is the pixel payload layout used when writing.
type Format = bcn.Format

const (
	// RGBA8 stores 8-bit channels in R, G, B, A byte order.
	RGBA8 = bcn.FormatRGBA8
	// BGRA8 stores 8-bit channels in B, G, R, A byte order.
	BGRA8 = bcn.FormatBGRA8
)

var fourCCFormats = map[string]bcn.Format{
	"DXT1": bcn.FormatDXT1,
	"DXT2": bcn.FormatDXT3,
	"DXT3": bcn.FormatDXT3,
	"DXT4": bcn.FormatDXT5,
	"DXT5": bcn.FormatDXT5,
	"ATI1": bcn.FormatBC4,
	"BC4U": bcn.FormatBC4,
	"BC4S": bcn.FormatBC4,
	"ATI2": bcn.FormatBC5,
	"BC5U": bcn.FormatBC5,
	"BC5S": bcn.FormatBC5,
}

var dxgiFormats = map[uint32]bcn.Format{
	28: bcn.FormatRGBA8,
	71: bcn.FormatDXT1,
	74: bcn.FormatDXT3,
	77: bcn.FormatDXT5,
	80: bcn.FormatBC4,
	83: bcn.FormatBC5,
	87: bcn.FormatBGRA8,
}

// rgbMasks lists the 32-bit channel masks of the uncompressed layouts, R G B A.
var rgbMasks = map[bcn.Format][4]uint32{
	bcn.FormatRGBA8: {0x000000ff, 0x0000ff00, 0x00ff0000, 0xff000000},
	bcn.FormatBGRA8: {0x00ff0000, 0x0000ff00, 0x000000ff, 0xff000000},
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) bcn.Format {
	if dx10 != nil {
		if f, ok := dxgiFormats[dx10.DXGIFormat]; ok {
			return f
		}
		return bcn.FormatUnknown
	}

	pf := header.PixelFormat
	switch {
	case pf.Flags&bcn.DDSPFFourCC != 0:
		if f, ok := fourCCFormats[fourCCString(pf.FourCC)]; ok {
			return f
		}
	case pf.Flags&bcn.DDSPFRGB != 0 && pf.Flags&bcn.DDSPFAlphaPixels != 0 && pf.RGBBitCount == 32:
		got := [4]uint32{pf.RBitMask, pf.GBitMask, pf.BBitMask, pf.ABitMask}
		for f, masks := range rgbMasks {
			if masks == got {
				return f
			}
		}
	case pf.Flags&bcn.DDSPFLuminance != 0 && pf.RGBBitCount == 8:
		return bcn.FormatRGBA8
	}
	return bcn.FormatUnknown
}

func fourCCString(v uint32) string {
	return string([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

// payloadSize returns the byte length of one mip level, or -1 for unknown formats.
func payloadSize(format bcn.Format, width, height int) int {
	blocks := ((width + 3) / 4) * ((height + 3) / 4)
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocks * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocks * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

// newHeader builds a single-level DDS header for an uncompressed layout,
// tagged with the Enfusion marker in the reserved words.
func newHeader(width, height uint32, format bcn.Format) (*bcn.DDSHeader, error) {
	masks, ok := rgbMasks[format]
	if !ok {
		return nil, fmt.Errorf("%w: %v", ErrLossyFormat, format)
	}

	hdr := &bcn.DDSHeader{
		Size: bcn.DDSHeaderSize,
		Flags: uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth |
			bcn.DDSFlagPixelFormat | bcn.DDSFlagPitch),
		Height:            height,
		Width:             width,
		Depth:             1,
		MipMapCount:       1,
		PitchOrLinearSize: width * 4,
		Caps:              uint32(bcn.DDSCapsTexture),
	}
	hdr.Reserved1[1] = 0x31464e45 // "ENF1"
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize
	hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
	hdr.PixelFormat.RGBBitCount = 32
	hdr.PixelFormat.RBitMask = masks[0]
	hdr.PixelFormat.GBitMask = masks[1]
	hdr.PixelFormat.BBitMask = masks[2]
	hdr.PixelFormat.ABitMask = masks[3]

	return hdr, nil
}
