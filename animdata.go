package spritebot

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image"
	"io"
)

// AnimDataName is the metadata file at the root of every sprite.
const AnimDataName = "AnimData.xml"

// AnimData mirrors AnimData.xml. The root element name is not checked when
// parsing and is written as AnimData.
type AnimData struct {
	XMLName    xml.Name
	ShadowSize uint8       `xml:"ShadowSize"`
	Anims      []AnimEntry `xml:"Anims>Anim"`
}

// AnimEntry describes one animation. CopyOf entries only carry Name, Index
// and CopyOf.
type AnimEntry struct {
	Name        string   `xml:"Name"`
	Index       uint32   `xml:"Index"`
	CopyOf      string   `xml:"CopyOf,omitempty"`
	RushFrame   *uint32  `xml:"RushFrame,omitempty"`
	HitFrame    *uint32  `xml:"HitFrame,omitempty"`
	ReturnFrame *uint32  `xml:"ReturnFrame,omitempty"`
	FrameWidth  uint32   `xml:"FrameWidth,omitempty"`
	FrameHeight uint32   `xml:"FrameHeight,omitempty"`
	Durations   []uint32 `xml:"Durations>Duration"`
}

// ParseAnimData decodes an AnimData.xml document.
func ParseAnimData(r io.Reader) (*AnimData, error) {
	var doc AnimData
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMetadataRead, err)
	}
	return &doc, nil
}

// WriteTo writes the document with an XML header and tab indentation.
func (d *AnimData) WriteTo(w io.Writer) (int64, error) {
	doc := *d
	doc.XMLName = xml.Name{Local: "AnimData"}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "\t")
	if err := enc.Encode(&doc); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMetadataWrite, err)
	}
	buf.WriteByte('\n')

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), fmt.Errorf("%w: %v", ErrWriteFile, err)
	}
	return int64(n), nil
}

func (a *Animation) entry(cell image.Point) AnimEntry {
	e := AnimEntry{
		Name:        a.Name,
		Index:       a.Index,
		CopyOf:      a.CopyOf,
		RushFrame:   a.RushFrame,
		HitFrame:    a.HitFrame,
		ReturnFrame: a.ReturnFrame,
	}
	if a.CopyOf != "" {
		return e
	}
	e.FrameWidth, e.FrameHeight = uint32(cell.X), uint32(cell.Y)
	// Lines share their timing; the first one is authoritative.
	if len(a.Lines) > 0 {
		e.Durations = make([]uint32, len(a.Lines[0]))
		for i, f := range a.Lines[0] {
			e.Durations[i] = uint32(f.Duration)
		}
	}
	return e
}

func (e *AnimEntry) animation() *Animation {
	return &Animation{
		Name:        e.Name,
		Index:       e.Index,
		CopyOf:      e.CopyOf,
		RushFrame:   e.RushFrame,
		HitFrame:    e.HitFrame,
		ReturnFrame: e.ReturnFrame,
	}
}
