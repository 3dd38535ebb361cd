package spritebot

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Storage exposes the files of one sprite by name. Names are slash
// separated and relative to the sprite root. Open reports missing files
// with an error wrapping fs.ErrNotExist.
type Storage interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
}

// cleanName maps a storage name to a clean relative path.
func cleanName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// DirStorage is a sprite stored as plain files in a directory.
type DirStorage struct {
	root string
}

// NewDirStorage returns a Storage rooted at dir. The directory is created
// on the first Create if it does not exist.
func NewDirStorage(dir string) *DirStorage {
	return &DirStorage{root: dir}
}

func (d *DirStorage) path(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(cleanName(name)))
}

func (d *DirStorage) Open(name string) (io.ReadCloser, error) {
	return os.Open(d.path(name))
}

func (d *DirStorage) Create(name string) (io.WriteCloser, error) {
	p := d.path(name)
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return nil, err
	}
	return os.Create(p)
}

func (d *DirStorage) String() string {
	return d.root
}

// MemStorage keeps files in memory. The zero value is ready to use.
type MemStorage struct {
	files map[string][]byte
}

func (m *MemStorage) Open(name string) (io.ReadCloser, error) {
	data, ok := m.files[cleanName(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemStorage) Create(name string) (io.WriteCloser, error) {
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	return &memFile{name: cleanName(name), m: m}, nil
}

// Names returns the stored file names in lexical order.
func (m *MemStorage) Names() []string {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Bytes returns the content of a stored file.
func (m *MemStorage) Bytes(name string) ([]byte, bool) {
	data, ok := m.files[cleanName(name)]
	return data, ok
}

// Put stores data under name, replacing any previous content.
func (m *MemStorage) Put(name string, data []byte) {
	if m.files == nil {
		m.files = make(map[string][]byte)
	}
	m.files[cleanName(name)] = data
}

// memFile becomes visible in its storage when closed.
type memFile struct {
	bytes.Buffer
	name   string
	m      *MemStorage
	closed bool
}

func (f *memFile) Close() error {
	if f.closed {
		return fmt.Errorf("close %s: %w", f.name, fs.ErrClosed)
	}
	f.closed = true
	f.m.files[f.name] = f.Bytes()
	return nil
}
