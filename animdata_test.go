package spritebot

import (
	"bytes"
	"image"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleAnimData = `<?xml version="1.0" ?>
<SpriteData>
  <ShadowSize>2</ShadowSize>
  <Anims>
    <Anim>
      <Name>Walk</Name>
      <Index>0</Index>
      <FrameWidth>32</FrameWidth>
      <FrameHeight>40</FrameHeight>
      <Durations>
        <Duration>8</Duration>
        <Duration>10</Duration>
      </Durations>
    </Anim>
    <Anim>
      <Name>Attack</Name>
      <Index>1</Index>
      <RushFrame>2</RushFrame>
      <HitFrame>3</HitFrame>
      <ReturnFrame>4</ReturnFrame>
      <FrameWidth>48</FrameWidth>
      <FrameHeight>48</FrameHeight>
      <Durations>
        <Duration>2</Duration>
      </Durations>
    </Anim>
    <Anim>
      <Name>Strike</Name>
      <Index>2</Index>
      <CopyOf>Attack</CopyOf>
    </Anim>
  </Anims>
</SpriteData>
`

func TestParseAnimData(t *testing.T) {
	t.Parallel()

	doc, err := ParseAnimData(strings.NewReader(sampleAnimData))
	require.NoError(t, err)
	assert.Equal(t, uint8(2), doc.ShadowSize)
	require.Len(t, doc.Anims, 3)

	walk := doc.Anims[0]
	assert.Equal(t, "Walk", walk.Name)
	assert.Equal(t, uint32(32), walk.FrameWidth)
	assert.Equal(t, uint32(40), walk.FrameHeight)
	assert.Equal(t, []uint32{8, 10}, walk.Durations)
	assert.Nil(t, walk.RushFrame)
	assert.Nil(t, walk.HitFrame)
	assert.Nil(t, walk.ReturnFrame)

	attack := doc.Anims[1]
	assert.Equal(t, uint32(1), attack.Index)
	assert.Equal(t, ptr(uint32(2)), attack.RushFrame)
	assert.Equal(t, ptr(uint32(3)), attack.HitFrame)
	assert.Equal(t, ptr(uint32(4)), attack.ReturnFrame)

	strike := doc.Anims[2]
	assert.Equal(t, "Attack", strike.CopyOf)
	assert.Empty(t, strike.Durations)
}

func TestParseAnimDataMalformed(t *testing.T) {
	t.Parallel()

	for name, doc := range map[string]string{
		"truncated":  "<AnimData><ShadowSize>1</Shad",
		"bad-number": "<AnimData><ShadowSize>many</ShadowSize></AnimData>",
		"overflow":   "<AnimData><ShadowSize>256</ShadowSize></AnimData>",
		"empty":      "",
	} {
		_, err := ParseAnimData(strings.NewReader(doc))
		assert.ErrorIs(t, err, ErrMetadataRead, name)
	}
}

func TestAnimDataWriteTo(t *testing.T) {
	t.Parallel()

	doc := &AnimData{ShadowSize: 1, Anims: []AnimEntry{
		{Name: "Idle", Index: 7, HitFrame: ptr(uint32(0)), FrameWidth: 24, FrameHeight: 32, Durations: []uint32{40, 2}},
		{Name: "Sleep", Index: 8, CopyOf: "Idle"},
	}}

	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, "<AnimData>")
	assert.Contains(t, out, "\t\t<Anim>\n\t\t\t<Name>Idle</Name>")
	assert.Contains(t, out, "<HitFrame>0</HitFrame>")
	assert.NotContains(t, out, "RushFrame")
	assert.NotContains(t, out, "ReturnFrame")
	assert.Contains(t, out, "<CopyOf>Idle</CopyOf>")
	assert.Equal(t, 1, strings.Count(out, "<FrameWidth>"))

	back, err := ParseAnimData(&buf)
	require.NoError(t, err)
	assert.Equal(t, doc.Anims, back.Anims)
}

func TestAnimationEntry(t *testing.T) {
	t.Parallel()

	anim := testAnimation("Walk", 2, 3)
	anim.Lines[1][0].Duration = 99

	e := anim.entry(image.Pt(16, 24))
	assert.Equal(t, uint32(16), e.FrameWidth)
	assert.Equal(t, uint32(24), e.FrameHeight)
	assert.Equal(t, []uint32{2, 3, 4}, e.Durations)
	assert.Equal(t, anim.HitFrame, e.HitFrame)

	cp := (&Animation{Name: "Run", Index: 4, CopyOf: "Walk"}).entry(image.Pt(16, 24))
	assert.Equal(t, AnimEntry{Name: "Run", Index: 4, CopyOf: "Walk"}, cp)
}
