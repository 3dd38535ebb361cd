package spritebot

import (
	"image"
	"image/draw"
)

// minCellSize is the smallest cell side a packed sheet uses.
const minCellSize = 8

const maxSheetSide = int(^uint32(0) >> 1)

// Sheets are the three packed images of one animation.
type Sheets struct {
	// Cell is the frame size shared by every cell of the three sheets.
	Cell    image.Point
	Anim    *image.NRGBA
	Offsets *image.NRGBA
	Shadow  *image.NRGBA
}

// CellSize returns the smallest cell holding every frame image and every
// anchor of the animation, never below 8x8.
func (a *Animation) CellSize() image.Point {
	cell := image.Pt(minCellSize, minCellSize)
	for _, line := range a.Lines {
		for _, f := range line {
			if f == nil {
				continue
			}
			if f.Image != nil {
				size := f.Image.Rect.Size()
				cell.X, cell.Y = max(cell.X, size.X), max(cell.Y, size.Y)
			}
			for _, p := range f.Offsets.points() {
				cell.X, cell.Y = max(cell.X, int(p.X)+1), max(cell.Y, int(p.Y)+1)
			}
		}
	}
	return cell
}

// sheetSide returns cells*count or fails when it does not fit an int32.
func sheetSide(cell, count int, anim string) (int, error) {
	if count > 0 && cell > maxSheetSide/count {
		return 0, newError(ErrTooLargeGeneratedSheet, anim)
	}
	return cell * count, nil
}

// GenerateSheets packs the frames into a grid, one line per row, and
// stamps the anchors into the offsets and shadow sheets. Lines shorter
// than the longest one leave their trailing cells blank.
func (a *Animation) GenerateSheets() (*Sheets, error) {
	if a.FrameCount() == 0 {
		return nil, newError(ErrEmptyAnimation, a.Name)
	}

	for l, line := range a.Lines {
		for i, f := range line {
			if f == nil {
				e := newError(ErrMissingFrame, a.Name)
				e.Line, e.Frame = l, i
				return nil, e
			}
		}
	}

	cell := a.CellSize()
	maxFrames := 0
	for _, line := range a.Lines {
		maxFrames = max(maxFrames, len(line))
	}

	width, err := sheetSide(cell.X, maxFrames, a.Name)
	if err != nil {
		return nil, err
	}
	height, err := sheetSide(cell.Y, len(a.Lines), a.Name)
	if err != nil {
		return nil, err
	}

	bounds := image.Rect(0, 0, width, height)
	s := &Sheets{
		Cell:    cell,
		Anim:    image.NewNRGBA(bounds),
		Offsets: image.NewNRGBA(bounds),
		Shadow:  image.NewNRGBA(bounds),
	}

	for l, line := range a.Lines {
		for i, f := range line {
			origin := image.Pt(i*cell.X, l*cell.Y)
			if f.Image != nil {
				src := f.Image.Rect
				draw.Draw(s.Anim, image.Rectangle{Min: origin, Max: origin.Add(src.Size())}, f.Image, src.Min, draw.Src)
			}
			if err := stampOffsets(s.Offsets, s.Shadow, origin, f.Offsets); err != nil {
				e := newError(err, a.Name)
				e.Line, e.Frame = l, i
				return nil, e
			}
		}
	}
	return s, nil
}
