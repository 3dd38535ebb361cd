package edds

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	magicCOPY = "COPY"
	magicLZ4  = "LZ4 "

	// chunkSize is the uncompressed size of one Enfusion LZ4 chunk.
	chunkSize = 64 * 1024

	// Payloads smaller than this are always stored raw.
	minCompressSize = 1024

	lastChunkFlag = 0x80
)

// block is one mipmap level body together with its table entry.
type block struct {
	magic string
	data  []byte
	// rawSize is the uncompressed payload size, only meaningful for LZ4.
	rawSize int32
}

// size is the value stored in the block table.
func (b *block) size() int {
	if b.magic == magicLZ4 {
		return 4 + len(b.data)
	}
	return len(b.data)
}

func (b *block) writeEntry(w io.Writer) error {
	size, err := i32FromInt(b.size())
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, b.magic); err != nil {
		return err
	}
	return binary.Write(w, binary.LittleEndian, size)
}

func (b *block) writeBody(w io.Writer) error {
	if b.magic == magicLZ4 {
		if err := binary.Write(w, binary.LittleEndian, b.rawSize); err != nil {
			return err
		}
	}
	_, err := w.Write(b.data)
	return err
}

func copyBlock(data []byte) *block {
	return &block{magic: magicCOPY, data: data}
}

// compressBlock packs data into an LZ4 chunk stream, or into a COPY block
// when compression does not save at least 15%.
func compressBlock(data []byte) (*block, error) {
	rawSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}
	if len(data) < minCompressSize {
		return copyBlock(data), nil
	}

	var stream bytes.Buffer
	scratch := make([]byte, lz4.CompressBlockBound(chunkSize))

	for start := 0; start < len(data); start += chunkSize {
		end := min(start+chunkSize, len(data))
		chunk := data[start:end]

		n, err := lz4.CompressBlockHC(chunk, scratch, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if n == 0 || float64(n) > float64(len(chunk))*0.85 {
			return copyBlock(data), nil
		}
		if n > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, n)
		}

		var flags byte
		if end == len(data) {
			flags = lastChunkFlag
		}
		stream.Write([]byte{byte(n), byte(n >> 8), byte(n >> 16), flags})
		stream.Write(scratch[:n])
	}

	if float64(4+stream.Len()) > float64(len(data))*0.85 {
		return copyBlock(data), nil
	}
	if _, err := i32FromInt(4 + stream.Len()); err != nil {
		return nil, err
	}

	return &block{magic: magicLZ4, data: stream.Bytes(), rawSize: rawSize}, nil
}

// window is the rolling dictionary shared by consecutive LZ4 chunks.
type window struct {
	buf [chunkSize]byte
	n   int
}

func (d *window) bytes() []byte { return d.buf[:d.n] }

func (d *window) push(p []byte) {
	if len(p) >= len(d.buf) {
		copy(d.buf[:], p[len(p)-len(d.buf):])
		d.n = len(d.buf)
		return
	}
	if free := len(d.buf) - d.n; len(p) > free {
		keep := len(d.buf) - len(p)
		copy(d.buf[:], d.buf[d.n-keep:d.n])
		d.n = keep
	}
	copy(d.buf[d.n:], p)
	d.n += len(p)
}

// decompressBlock inflates b into exactly want bytes.
func decompressBlock(b *block, want int) ([]byte, error) {
	switch b.magic {
	case magicCOPY:
		if len(b.data) != want {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, want, len(b.data))
		}
		return bytes.Clone(b.data), nil
	case magicLZ4:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBlockMagic, b.magic)
	}

	target := want
	if b.rawSize > 0 {
		target = int(b.rawSize)
	}

	out := make([]byte, target)
	written := 0
	var dict window
	r := bytes.NewReader(b.data)

	for {
		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: chunk header: %v", ErrChunkStreamTruncated, err)
		}
		size := int(hdr[0]) | int(hdr[1])<<8 | int(hdr[2])<<16
		flags := hdr[3]
		if flags&^lastChunkFlag != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if size <= 0 || size > r.Len() {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, size, r.Len())
		}
		if written >= target {
			return nil, ErrDecodeOverrun
		}

		src := make([]byte, size)
		if _, err := io.ReadFull(r, src); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkStreamTruncated, err)
		}

		dst := out[written:min(written+chunkSize, target)]
		n, err := lz4.UncompressBlockWithDict(src, dst, dict.bytes())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		dict.push(dst[:n])
		written += n

		if flags&lastChunkFlag != 0 {
			break
		}
	}

	if written != target || target != want {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, want, written)
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrDecodedSizeMismatch, r.Len())
	}
	return out, nil
}

type tableEntry struct {
	magic string
	size  int32
}

func readBlockTable(r io.Reader, count uint32) ([]tableEntry, error) {
	entries := make([]tableEntry, 0, count)
	for i := uint32(0); i < count; i++ {
		var raw [8]byte
		if _, err := io.ReadFull(r, raw[:]); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrBlockTable, i, err)
		}
		e := tableEntry{
			magic: string(raw[:4]),
			size:  int32(binary.LittleEndian.Uint32(raw[4:])),
		}
		if e.magic != magicCOPY && e.magic != magicLZ4 {
			return nil, fmt.Errorf("%w: entry %d: %w %q", ErrBlockTable, i, ErrUnknownBlockMagic, e.magic)
		}
		if e.size < 0 {
			return nil, fmt.Errorf("%w: entry %d: negative size %d", ErrBlockTable, i, e.size)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func readBlockBody(r io.Reader, e tableEntry) (*block, error) {
	body := make([]byte, e.size)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBody, e.magic, err)
	}
	if e.magic != magicLZ4 {
		return copyBlock(body), nil
	}
	if len(body) < 4 {
		return nil, fmt.Errorf("%w: LZ4 block of %d bytes", ErrBlockBody, len(body))
	}
	return &block{
		magic:   magicLZ4,
		rawSize: int32(binary.LittleEndian.Uint32(body[:4])),
		data:    body[4:],
	}, nil
}
