package spritebot

import (
	"errors"
	"image"
	"math"
)

type pixel [4]byte

func pixelAt(img *image.NRGBA, p image.Point) pixel {
	var px pixel
	i := img.PixOffset(p.X, p.Y)
	copy(px[:], img.Pix[i:i+4])
	return px
}

func setPixel(img *image.NRGBA, p image.Point, px pixel) {
	i := img.PixOffset(p.X, p.Y)
	copy(img.Pix[i:i+4], px[:])
}

// channelMask selects channels of a pixel, bit 0 is red and bit 3 alpha.
type channelMask uint8

const (
	maskR channelMask = 1 << iota
	maskG
	maskB
	maskA
)

// mergeChannels forces the selected channels of px to 255 and keeps the others.
func mergeChannels(px pixel, mask channelMask) pixel {
	for c := range px {
		if mask&(1<<c) != 0 {
			px[c] = 255
		}
	}
	return px
}

var (
	black = pixel{0, 0, 0, 255}
	white = pixel{255, 255, 255, 255}
)

// marker describes how an anchor is drawn in a sheet. Exact markers match
// one color; the others match any pixel with all of their channels at 255.
type marker struct {
	color string
	sheet SheetKind
	mask  channelMask
	exact bool
}

var (
	headMarker      = marker{color: "black", sheet: SheetOffsets, mask: maskA, exact: true}
	handLeftMarker  = marker{color: "red", sheet: SheetOffsets, mask: maskR | maskA}
	centerMarker    = marker{color: "green", sheet: SheetOffsets, mask: maskG | maskA}
	handRightMarker = marker{color: "blue", sheet: SheetOffsets, mask: maskB | maskA}
	shadowMarker    = marker{color: "white", sheet: SheetShadow, mask: maskR | maskG | maskB | maskA, exact: true}
)

func (m marker) match(px pixel) bool {
	if m.exact {
		return px == mergeChannels(pixel{}, m.mask)
	}
	return mergeChannels(px, m.mask) == px
}

// location identifies a frame in error messages.
type location struct {
	anim        string
	line, frame int
}

func (m marker) error(kind error, loc location) *Error {
	e := newError(kind, loc.anim)
	e.Line, e.Frame = loc.line, loc.frame
	e.Sheet, e.Marker = m.sheet, m.color
	return e
}

// find scans img in raster order and returns the single pixel matching m.
func (m marker) find(img *image.NRGBA, loc location) (Point, error) {
	found := false
	var at image.Point

	b := img.Rect
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !m.match(pixelAt(img, image.Pt(x, y))) {
				continue
			}
			if found {
				return Point{}, m.error(ErrColorDuplicate, loc)
			}
			found, at = true, image.Pt(x-b.Min.X, y-b.Min.Y)
		}
	}

	if !found {
		return Point{}, m.error(ErrColorNotFound, loc)
	}
	if at.X > math.MaxUint16 || at.Y > math.MaxUint16 {
		return Point{}, m.error(ErrOffsetTooLarge, loc)
	}
	return Point{X: uint16(at.X), Y: uint16(at.Y)}, nil
}

// decodeOffsets reads the anchors of one frame from its offsets and shadow
// cells. A missing head marker falls back to the center.
func decodeOffsets(offsets, shadow *image.NRGBA, loc location) (FrameOffset, error) {
	var o FrameOffset

	head, err := headMarker.find(offsets, loc)
	headFound := err == nil
	if err != nil && !errors.Is(err, ErrColorNotFound) {
		return o, err
	}
	if o.HandLeft, err = handLeftMarker.find(offsets, loc); err != nil {
		return o, err
	}
	if o.Center, err = centerMarker.find(offsets, loc); err != nil {
		return o, err
	}
	if o.HandRight, err = handRightMarker.find(offsets, loc); err != nil {
		return o, err
	}
	if o.Shadow, err = shadowMarker.find(shadow, loc); err != nil {
		return o, err
	}

	o.Head = o.Center
	if headFound {
		o.Head = head
	}
	return o, nil
}

// stampOffsets draws the anchors of one frame into the offsets and shadow
// sheets, relative to origin. Markers are merged onto what the sheets
// already hold, in the order head, center, hand right, hand left.
func stampOffsets(offsets, shadow *image.NRGBA, origin image.Point, o FrameOffset) error {
	if o.Head == o.HandLeft || o.Head == o.HandRight {
		return ErrInvalidHeadPosition
	}

	setPixel(shadow, origin.Add(o.Shadow.image()), white)
	setPixel(offsets, origin.Add(o.Head.image()), black)
	for _, s := range []struct {
		at image.Point
		m  marker
	}{
		{o.Center.image(), centerMarker},
		{o.HandRight.image(), handRightMarker},
		{o.HandLeft.image(), handLeftMarker},
	} {
		p := origin.Add(s.at)
		setPixel(offsets, p, mergeChannels(pixelAt(offsets, p), s.m.mask))
	}
	return nil
}

