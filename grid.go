package spritebot

import "image"

// SheetKind names one of the three sheets of an animation.
type SheetKind string

const (
	SheetAnim    SheetKind = "Anim"
	SheetShadow  SheetKind = "Shadow"
	SheetOffsets SheetKind = "Offsets"
)

// sheetName returns the file name of a sheet, e.g. Walk-Anim.png.
func sheetName(anim string, kind SheetKind, ext string) string {
	return anim + "-" + string(kind) + ext
}

// cellsOnAxis returns how many cells of the given size fit exactly on one side of a sheet.
func cellsOnAxis(side, cell int, axis, anim string, kind SheetKind) (int, error) {
	if cell == 0 {
		e := newError(ErrSizeZero, anim)
		e.Sheet, e.Axis = kind, axis
		return 0, e
	}
	if side%cell != 0 {
		e := newError(ErrSizeNotMultiple, anim)
		e.Sheet, e.Axis = kind, axis
		return 0, e
	}
	return side / cell, nil
}

// sliceGrid cuts sheet into cells, line-major: grid[line][frame]. Every
// cell is copied into its own zero-origin image.
func sliceGrid(sheet *image.NRGBA, cell image.Point, anim string, kind SheetKind) ([][]*image.NRGBA, error) {
	size := sheet.Rect.Size()
	frames, err := cellsOnAxis(size.X, cell.X, "width", anim, kind)
	if err != nil {
		return nil, err
	}
	lines, err := cellsOnAxis(size.Y, cell.Y, "height", anim, kind)
	if err != nil {
		return nil, err
	}

	grid := make([][]*image.NRGBA, lines)
	for line := range grid {
		grid[line] = make([]*image.NRGBA, frames)
		for i := range grid[line] {
			origin := sheet.Rect.Min.Add(image.Pt(i*cell.X, line*cell.Y))
			grid[line][i] = crop(sheet, image.Rectangle{Min: origin, Max: origin.Add(cell)})
		}
	}
	return grid, nil
}

// crop copies r out of src. r must lie within src.
func crop(src *image.NRGBA, r image.Rectangle) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	rowLen := r.Dx() * 4
	for y := 0; y < r.Dy(); y++ {
		from := src.PixOffset(r.Min.X, r.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+rowLen], src.Pix[from:from+rowLen])
	}
	return dst
}
