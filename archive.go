package spritebot

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/pierrec/lz4/v4"
)

// ArchiveExt is the extension of sprite bundles.
const ArchiveExt = ".tar.lz4"

// Archive is a sprite bundled into a single tar stream compressed with the
// LZ4 frame format. Files are held in memory; WriteTo emits them in the
// order they were first read or created.
type Archive struct {
	mem   MemStorage
	order []string
}

// NewArchive returns an empty archive.
func NewArchive() *Archive {
	return &Archive{}
}

// ReadArchive loads a whole bundle from r.
func ReadArchive(r io.Reader) (*Archive, error) {
	a := NewArchive()
	tr := tar.NewReader(lz4.NewReader(r))
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			return a, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrArchive, err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrArchive, hdr.Name, err)
		}
		a.track(hdr.Name)
		a.mem.Put(hdr.Name, data)
	}
}

func (a *Archive) track(name string) {
	name = cleanName(name)
	if !slices.Contains(a.order, name) {
		a.order = append(a.order, name)
	}
}

func (a *Archive) Open(name string) (io.ReadCloser, error) {
	return a.mem.Open(name)
}

func (a *Archive) Create(name string) (io.WriteCloser, error) {
	a.track(name)
	return a.mem.Create(name)
}

// Names returns the file names in archive order.
func (a *Archive) Names() []string {
	return slices.Clone(a.order)
}

// WriteTo writes the bundle to w.
func (a *Archive) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	zw := lz4.NewWriter(cw)
	tw := tar.NewWriter(zw)

	for _, name := range a.order {
		data, ok := a.mem.Bytes(name)
		if !ok {
			// created but never closed
			continue
		}
		hdr := &tar.Header{
			Typeflag: tar.TypeReg,
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(data)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return cw.n, fmt.Errorf("%w: %s: %v", ErrWriteFile, name, err)
		}
		if _, err := tw.Write(data); err != nil {
			return cw.n, fmt.Errorf("%w: %s: %v", ErrWriteFile, name, err)
		}
	}

	if err := tw.Close(); err != nil {
		return cw.n, fmt.Errorf("%w: %v", ErrWriteFile, err)
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("%w: %v", ErrWriteFile, err)
	}
	return cw.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
