package spritebot

import (
	"image"
	"io"

	"github.com/rs/zerolog"
)

// WriteOptions configures Write.
type WriteOptions struct {
	// Codec encodes the sheets. Nil means PNG.
	Codec SheetCodec
	// Logger receives one debug event per animation. Nil disables logging.
	Logger *zerolog.Logger
}

func (o *WriteOptions) codec() SheetCodec {
	if o == nil || o.Codec == nil {
		return PNG
	}
	return o.Codec
}

func (o *WriteOptions) logger() *zerolog.Logger {
	if o == nil || o.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return o.Logger
}

// Write encodes spr into st with PNG sheets.
func Write(st Storage, spr *Sprite) error {
	return WriteWithOptions(st, spr, nil)
}

// WriteWithOptions packs every animation of spr, writes its three sheets
// and then AnimData.xml. Files written before a failure are left in place.
func WriteWithOptions(st Storage, spr *Sprite, opts *WriteOptions) error {
	codec, log := opts.codec(), opts.logger()

	doc := AnimData{ShadowSize: spr.ShadowSize}
	for _, anim := range spr.Animations {
		if anim.CopyOf != "" {
			doc.Anims = append(doc.Anims, anim.entry(image.Point{}))
			continue
		}

		sheets, err := anim.GenerateSheets()
		if err != nil {
			return err
		}
		for _, s := range []struct {
			kind SheetKind
			img  *image.NRGBA
		}{
			{SheetAnim, sheets.Anim},
			{SheetOffsets, sheets.Offsets},
			{SheetShadow, sheets.Shadow},
		} {
			if err := writeSheet(st, codec, anim.Name, s.kind, s.img); err != nil {
				return err
			}
		}

		log.Debug().
			Str("animation", anim.Name).
			Int("frameWidth", sheets.Cell.X).
			Int("frameHeight", sheets.Cell.Y).
			Int("sheetWidth", sheets.Anim.Rect.Dx()).
			Int("sheetHeight", sheets.Anim.Rect.Dy()).
			Msg("animation packed")
		doc.Anims = append(doc.Anims, anim.entry(sheets.Cell))
	}

	return createFile(st, AnimDataName, "", "", func(f io.Writer) error {
		_, err := doc.WriteTo(f)
		return err
	})
}

func writeSheet(st Storage, codec SheetCodec, anim string, kind SheetKind, img *image.NRGBA) error {
	name := sheetName(anim, kind, codec.Ext())
	return createFile(st, name, anim, kind, func(f io.Writer) error {
		if err := codec.Encode(f, img); err != nil {
			e := newError(ErrEncodeImage, anim)
			e.Sheet, e.Path, e.Err = kind, name, err
			return e
		}
		return nil
	})
}

// createFile creates name in st, fills it with fill and closes it.
func createFile(st Storage, name, anim string, kind SheetKind, fill func(io.Writer) error) error {
	f, err := st.Create(name)
	if err != nil {
		e := newError(ErrCreateFile, anim)
		e.Sheet, e.Path, e.Err = kind, name, err
		return e
	}
	if err := fill(f); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		e := newError(ErrWriteFile, anim)
		e.Sheet, e.Path, e.Err = kind, name, err
		return e
	}
	return nil
}
