package spritebot

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func solidImage(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// bodyOffsets is a valid set of anchors inside a 10x12 frame.
func bodyOffsets(shift uint16) FrameOffset {
	return FrameOffset{
		Head:      Point{X: 4 + shift, Y: 1},
		HandLeft:  Point{X: 1, Y: 5},
		HandRight: Point{X: 8, Y: 5},
		Center:    Point{X: 4, Y: 6},
		Shadow:    Point{X: 4 + shift, Y: 10},
	}
}

// testAnimation builds lines x frames opaque 10x12 frames, each with its own
// color and a head moving one pixel per frame.
func testAnimation(name string, lines, frames int) *Animation {
	anim := &Animation{Name: name, Index: 3, HitFrame: ptr(uint32(1))}
	for l := 0; l < lines; l++ {
		line := make([]*Frame, frames)
		for i := range line {
			c := color.NRGBA{R: uint8(40 * l), G: uint8(30 * i), B: 200, A: 255}
			line[i] = &Frame{
				Image:    solidImage(10, 12, c),
				Offsets:  bodyOffsets(uint16(i % 4)),
				Duration: uint8(2 + i),
			}
		}
		anim.Lines = append(anim.Lines, line)
	}
	return anim
}

func testSprite() *Sprite {
	spr := NewSprite(1)
	spr.Animations = append(spr.Animations,
		testAnimation("Walk", 8, 4),
		testAnimation("Idle", 2, 3),
	)
	spr.Animations[1].Index = 0
	spr.Animations[1].RushFrame = ptr(uint32(0))
	spr.Animations[1].ReturnFrame = ptr(uint32(2))
	return spr
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func writeAnimData(t *testing.T, st *MemStorage, doc *AnimData) {
	t.Helper()
	var buf bytes.Buffer
	_, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	st.Put(AnimDataName, buf.Bytes())
}
