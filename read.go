package spritebot

import (
	"fmt"
	"image"
	"math"

	"github.com/rs/zerolog"
)

// ReadOptions configures Read.
type ReadOptions struct {
	// Codec decodes the sheets. Nil means PNG.
	Codec SheetCodec
	// Logger receives one debug event per animation. Nil disables logging.
	Logger *zerolog.Logger
}

func (o *ReadOptions) codec() SheetCodec {
	if o == nil || o.Codec == nil {
		return PNG
	}
	return o.Codec
}

func (o *ReadOptions) logger() *zerolog.Logger {
	if o == nil || o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// Read decodes the sprite stored in st with PNG sheets.
func Read(st Storage) (*Sprite, error) {
	return ReadWithOptions(st, nil)
}

// ReadWithOptions decodes the sprite stored in st. Nil opts uses defaults.
// Any failure aborts the whole sprite.
func ReadWithOptions(st Storage, opts *ReadOptions) (*Sprite, error) {
	codec, log := opts.codec(), opts.logger()

	doc, err := readAnimData(st)
	if err != nil {
		return nil, err
	}

	spr := NewSprite(doc.ShadowSize)
	for i := range doc.Anims {
		entry := &doc.Anims[i]
		anim := entry.animation()
		if entry.CopyOf == "" {
			if anim.Lines, err = readLines(st, codec, entry); err != nil {
				return nil, err
			}
			log.Debug().
				Str("animation", anim.Name).
				Uint32("frameWidth", entry.FrameWidth).
				Uint32("frameHeight", entry.FrameHeight).
				Int("lines", len(anim.Lines)).
				Int("frames", anim.FrameCount()).
				Msg("animation decoded")
		}
		spr.Animations = append(spr.Animations, anim)
	}

	if err := resolveCopies(spr); err != nil {
		return nil, err
	}
	return spr, nil
}

func readAnimData(st Storage) (*AnimData, error) {
	f, err := st.Open(AnimDataName)
	if err != nil {
		e := newError(ErrOpenFile, "")
		e.Path, e.Err = AnimDataName, err
		return nil, e
	}
	defer func() { _ = f.Close() }()

	return ParseAnimData(f)
}

func readSheet(st Storage, codec SheetCodec, anim string, kind SheetKind) (*image.NRGBA, error) {
	name := sheetName(anim, kind, codec.Ext())
	f, err := st.Open(name)
	if err != nil {
		e := newError(ErrOpenFile, anim)
		e.Sheet, e.Path, e.Err = kind, name, err
		return nil, e
	}
	defer func() { _ = f.Close() }()

	img, err := codec.Decode(f)
	if err != nil {
		e := newError(ErrDecodeImage, anim)
		e.Sheet, e.Path, e.Err = kind, name, err
		return nil, e
	}
	return toNRGBA(img), nil
}

// readLines loads, slices and cross-checks the three sheets of entry.
func readLines(st Storage, codec SheetCodec, entry *AnimEntry) ([][]*Frame, error) {
	cell := image.Pt(int(entry.FrameWidth), int(entry.FrameHeight))

	var grids [3][][]*image.NRGBA
	for i, kind := range [3]SheetKind{SheetAnim, SheetShadow, SheetOffsets} {
		sheet, err := readSheet(st, codec, entry.Name, kind)
		if err != nil {
			return nil, err
		}
		if grids[i], err = sliceGrid(sheet, cell, entry.Name, kind); err != nil {
			return nil, err
		}
	}
	anims, shadows, offsets := grids[0], grids[1], grids[2]

	if len(anims) != len(shadows) || len(shadows) != len(offsets) {
		return nil, newError(ErrSpriteSizeNotIdentical, entry.Name)
	}

	lines := make([][]*Frame, len(anims))
	for l := range anims {
		if len(anims[l]) != len(shadows[l]) || len(shadows[l]) != len(offsets[l]) {
			e := newError(ErrSpriteSizeNotIdentical, entry.Name)
			e.Line = l
			return nil, e
		}
		if len(anims[l]) != len(entry.Durations) {
			e := newError(ErrInconsistentDuration, entry.Name)
			e.Line = l
			e.Err = fmt.Errorf("%d frames per line, %d durations", len(anims[l]), len(entry.Durations))
			return nil, e
		}

		lines[l] = make([]*Frame, len(anims[l]))
		for i, d := range entry.Durations {
			loc := location{anim: entry.Name, line: l, frame: i}
			o, err := decodeOffsets(offsets[l][i], shadows[l][i], loc)
			if err != nil {
				return nil, err
			}
			if d > math.MaxUint8 {
				e := newError(ErrTooLargeDuration, entry.Name)
				e.Line, e.Frame = l, i
				return nil, e
			}
			lines[l][i] = &Frame{Image: anims[l][i], Offsets: o, Duration: uint8(d)}
		}
	}
	return lines, nil
}

// resolveCopies points every CopyOf animation at the lines of the
// animation it names, following chains of copies.
func resolveCopies(spr *Sprite) error {
	for _, anim := range spr.Animations {
		src := anim
		for hops := 0; src != nil && src.CopyOf != ""; hops++ {
			if hops == len(spr.Animations) {
				src = nil
				break
			}
			src = spr.Animation(src.CopyOf)
		}
		if src == nil {
			e := newError(ErrUnknownCopySource, anim.Name)
			e.Err = fmt.Errorf("CopyOf %q", anim.CopyOf)
			return e
		}
		anim.Lines = src.Lines
	}
	return nil
}
