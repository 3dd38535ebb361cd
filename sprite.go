package spritebot

import "image"

// Point is a pixel position relative to the top-left corner of a frame.
type Point struct {
	X, Y uint16
}

func (p Point) image() image.Point {
	return image.Pt(int(p.X), int(p.Y))
}

// FrameOffset holds the anchor points of one frame.
type FrameOffset struct {
	Head      Point
	HandLeft  Point
	HandRight Point
	Center    Point
	Shadow    Point
}

// points lists all five anchors.
func (o FrameOffset) points() [5]Point {
	return [5]Point{o.Head, o.Center, o.HandRight, o.HandLeft, o.Shadow}
}

// Frame is one cell of an animation.
type Frame struct {
	Image   *image.NRGBA
	Offsets FrameOffset
	// Duration is the display time in game ticks.
	Duration uint8
}

// Animation is a named set of lines, one per direction, each holding the
// same number of frames.
type Animation struct {
	Name  string
	Index uint32

	// RushFrame, HitFrame and ReturnFrame are frame indices with a meaning
	// for the game only. Nil means unset.
	RushFrame   *uint32
	HitFrame    *uint32
	ReturnFrame *uint32

	// CopyOf names the animation whose frames this one reuses. Such an
	// animation has no sheets of its own; Lines is shared with the source
	// after Read and ignored by Write.
	CopyOf string

	Lines [][]*Frame
}

// FrameCount returns the number of frames across all lines.
func (a *Animation) FrameCount() int {
	n := 0
	for _, line := range a.Lines {
		n += len(line)
	}
	return n
}

// Sprite is a fully decoded sprite.
type Sprite struct {
	// ShadowSize is passed through untouched.
	ShadowSize uint8
	Animations []*Animation
}

// NewSprite returns an empty sprite.
func NewSprite(shadowSize uint8) *Sprite {
	return &Sprite{ShadowSize: shadowSize}
}

// Animation returns the animation with the given name, or nil.
func (s *Sprite) Animation(name string) *Animation {
	for _, a := range s.Animations {
		if a.Name == name {
			return a
		}
	}
	return nil
}
