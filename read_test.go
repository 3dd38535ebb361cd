package spritebot

import (
	"bytes"
	"errors"
	"image"
	"io/fs"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writtenSprite returns a storage holding testSprite with PNG sheets.
func writtenSprite(t *testing.T) *MemStorage {
	t.Helper()
	st := &MemStorage{}
	require.NoError(t, Write(st, testSprite()))
	return st
}

func readDoc(t *testing.T, st *MemStorage) *AnimData {
	t.Helper()
	data, ok := st.Bytes(AnimDataName)
	require.True(t, ok)
	doc, err := ParseAnimData(bytes.NewReader(data))
	require.NoError(t, err)
	return doc
}

func requireSpriteError(t *testing.T, err error, kind error) *Error {
	t.Helper()
	require.ErrorIs(t, err, kind)
	var e *Error
	require.True(t, errors.As(err, &e), "want *Error, got %T", err)
	return e
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	for name, codec := range map[string]SheetCodec{
		"png":  PNG,
		"edds": EDDS{},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			want := testSprite()
			st := &MemStorage{}
			require.NoError(t, WriteWithOptions(st, want, &WriteOptions{Codec: codec}))

			got, err := ReadWithOptions(st, &ReadOptions{Codec: codec})
			require.NoError(t, err)
			assert.Equal(t, want.ShadowSize, got.ShadowSize)
			require.Len(t, got.Animations, len(want.Animations))

			for i, wa := range want.Animations {
				ga := got.Animations[i]
				assert.Equal(t, wa.Name, ga.Name)
				assert.Equal(t, wa.Index, ga.Index)
				assert.Equal(t, wa.RushFrame, ga.RushFrame)
				assert.Equal(t, wa.HitFrame, ga.HitFrame)
				assert.Equal(t, wa.ReturnFrame, ga.ReturnFrame)
				require.Len(t, ga.Lines, len(wa.Lines))
				for l := range wa.Lines {
					require.Len(t, ga.Lines[l], len(wa.Lines[l]))
					for f, wf := range wa.Lines[l] {
						gf := ga.Lines[l][f]
						assert.Equal(t, wf.Offsets, gf.Offsets, "%s line %d frame %d", wa.Name, l, f)
						assert.Equal(t, wf.Duration, gf.Duration)
						assert.Equal(t, wf.Image.Rect, gf.Image.Rect)
						assert.Equal(t, wf.Image.Pix, gf.Image.Pix)
					}
				}
			}
		})
	}
}

func TestWriteFileNames(t *testing.T) {
	t.Parallel()

	st := writtenSprite(t)
	assert.Equal(t, []string{
		"AnimData.xml",
		"Idle-Anim.png",
		"Idle-Offsets.png",
		"Idle-Shadow.png",
		"Walk-Anim.png",
		"Walk-Offsets.png",
		"Walk-Shadow.png",
	}, st.Names())

	doc := readDoc(t, st)
	require.Len(t, doc.Anims, 2)
	assert.Equal(t, uint32(10), doc.Anims[0].FrameWidth)
	assert.Equal(t, uint32(12), doc.Anims[0].FrameHeight)
	assert.Equal(t, []uint32{2, 3, 4, 5}, doc.Anims[0].Durations)
	assert.Equal(t, []uint32{2, 3, 4}, doc.Anims[1].Durations)
}

func TestWriteStopsOnPackingError(t *testing.T) {
	t.Parallel()

	spr := testSprite()
	spr.Animations[1].Lines[0][2].Offsets.Head = spr.Animations[1].Lines[0][2].Offsets.HandRight

	st := &MemStorage{}
	e := requireSpriteError(t, Write(st, spr), ErrInvalidHeadPosition)
	assert.Equal(t, "Idle", e.Animation)
	assert.Equal(t, 0, e.Line)
	assert.Equal(t, 2, e.Frame)

	_, ok := st.Bytes(AnimDataName)
	assert.False(t, ok)
}

func TestReadMissingAnimData(t *testing.T) {
	t.Parallel()

	_, err := Read(&MemStorage{})
	e := requireSpriteError(t, err, ErrOpenFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, AnimDataName, e.Path)
}

func TestReadMissingSheet(t *testing.T) {
	t.Parallel()

	src := writtenSprite(t)
	st := &MemStorage{}
	for _, name := range src.Names() {
		if name == "Idle-Shadow.png" {
			continue
		}
		data, _ := src.Bytes(name)
		st.Put(name, data)
	}

	_, err := Read(st)
	e := requireSpriteError(t, err, ErrOpenFile)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Equal(t, "Idle", e.Animation)
	assert.Equal(t, SheetShadow, e.Sheet)
	assert.Equal(t, "Idle-Shadow.png", e.Path)
}

func TestReadUndecodableSheet(t *testing.T) {
	t.Parallel()

	st := writtenSprite(t)
	st.Put("Walk-Anim.png", []byte("not a png"))

	_, err := Read(st)
	e := requireSpriteError(t, err, ErrDecodeImage)
	assert.Equal(t, "Walk", e.Animation)
	assert.Equal(t, SheetAnim, e.Sheet)
}

func TestReadSheetsOfDifferentSize(t *testing.T) {
	t.Parallel()

	// Idle is 3 frames by 2 lines of 10x12
	for name, tc := range map[string]struct {
		shadow image.Rectangle
		line   int
	}{
		"extra-line":  {shadow: image.Rect(0, 0, 30, 36), line: -1},
		"extra-frame": {shadow: image.Rect(0, 0, 40, 24), line: 0},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			st := writtenSprite(t)
			st.Put("Idle-Shadow.png", encodePNG(t, image.NewNRGBA(tc.shadow)))

			_, err := Read(st)
			e := requireSpriteError(t, err, ErrSpriteSizeNotIdentical)
			assert.Equal(t, "Idle", e.Animation)
			assert.Equal(t, tc.line, e.Line)
		})
	}
}

func TestReadGridErrors(t *testing.T) {
	t.Parallel()

	st := writtenSprite(t)
	doc := readDoc(t, st)
	doc.Anims[1].FrameWidth = 7
	writeAnimData(t, st, doc)

	_, err := Read(st)
	e := requireSpriteError(t, err, ErrSizeNotMultiple)
	assert.Equal(t, "Idle", e.Animation)
	assert.Equal(t, SheetAnim, e.Sheet)
	assert.Equal(t, "width", e.Axis)
}

func TestReadDurationErrors(t *testing.T) {
	t.Parallel()

	t.Run("count", func(t *testing.T) {
		t.Parallel()

		st := writtenSprite(t)
		doc := readDoc(t, st)
		doc.Anims[1].Durations = doc.Anims[1].Durations[:2]
		writeAnimData(t, st, doc)

		_, err := Read(st)
		e := requireSpriteError(t, err, ErrInconsistentDuration)
		assert.Equal(t, "Idle", e.Animation)
		assert.Equal(t, 0, e.Line)
		assert.Contains(t, err.Error(), "3 frames per line, 2 durations")
	})

	t.Run("too-large", func(t *testing.T) {
		t.Parallel()

		st := writtenSprite(t)
		doc := readDoc(t, st)
		doc.Anims[1].Durations[1] = 300
		writeAnimData(t, st, doc)

		_, err := Read(st)
		e := requireSpriteError(t, err, ErrTooLargeDuration)
		assert.Equal(t, "Idle", e.Animation)
		assert.Equal(t, 0, e.Line)
		assert.Equal(t, 1, e.Frame)
	})
}

func TestReadMarkerErrorCarriesLocation(t *testing.T) {
	t.Parallel()

	st := writtenSprite(t)
	st.Put("Idle-Offsets.png", encodePNG(t, image.NewNRGBA(image.Rect(0, 0, 30, 24))))

	_, err := Read(st)
	e := requireSpriteError(t, err, ErrColorNotFound)
	assert.Equal(t, "Idle", e.Animation)
	assert.Equal(t, 0, e.Line)
	assert.Equal(t, 0, e.Frame)
	assert.Equal(t, SheetOffsets, e.Sheet)
}

func TestCopyOf(t *testing.T) {
	t.Parallel()

	spr := testSprite()
	spr.Animations = append(spr.Animations,
		&Animation{Name: "Run", Index: 5, CopyOf: "Walk"},
		&Animation{Name: "Dash", Index: 6, CopyOf: "Run"},
	)

	st := &MemStorage{}
	require.NoError(t, Write(st, spr))
	for _, name := range st.Names() {
		assert.False(t, strings.HasPrefix(name, "Run-") || strings.HasPrefix(name, "Dash-"), name)
	}

	doc := readDoc(t, st)
	require.Len(t, doc.Anims, 4)
	assert.Equal(t, "Walk", doc.Anims[2].CopyOf)
	assert.Zero(t, doc.Anims[2].FrameWidth)
	assert.Empty(t, doc.Anims[2].Durations)

	got, err := Read(st)
	require.NoError(t, err)
	walk, run, dash := got.Animation("Walk"), got.Animation("Run"), got.Animation("Dash")
	require.NotNil(t, run)
	require.NotNil(t, dash)
	assert.Equal(t, uint32(5), run.Index)
	assert.Equal(t, "Walk", run.CopyOf)
	assert.Equal(t, walk.Lines, run.Lines)
	assert.Equal(t, walk.Lines, dash.Lines)
}

func TestCopyOfUnknownSource(t *testing.T) {
	t.Parallel()

	for name, anims := range map[string][]AnimEntry{
		"missing": {{Name: "Run", CopyOf: "Walk"}},
		"cycle":   {{Name: "Run", CopyOf: "Dash"}, {Name: "Dash", CopyOf: "Run"}},
		"self":    {{Name: "Run", CopyOf: "Run"}},
	} {
		st := &MemStorage{}
		writeAnimData(t, st, &AnimData{Anims: anims})

		_, err := Read(st)
		e := requireSpriteError(t, err, ErrUnknownCopySource)
		assert.Equal(t, "Run", e.Animation, name)
	}
}

func TestReadWriteLogging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	st := &MemStorage{}
	require.NoError(t, WriteWithOptions(st, testSprite(), &WriteOptions{Logger: &logger}))
	_, err := ReadWithOptions(st, &ReadOptions{Logger: &logger})
	require.NoError(t, err)

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, `"message":"animation packed"`))
	assert.Equal(t, 2, strings.Count(out, `"message":"animation decoded"`))
	assert.Contains(t, out, `"animation":"Walk"`)
	assert.Contains(t, out, `"sheetWidth":40`)
}
