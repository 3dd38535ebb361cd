package edds

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrInvalidFormat indicates an unsupported pixel format.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrLossyFormat indicates a block-compressed format was requested for writing.
	ErrLossyFormat = errors.New("lossy format cannot hold sheet markers")
	// ErrEmptyImage indicates an image without pixels.
	ErrEmptyImage = errors.New("empty image")
	// ErrPayloadSizeMismatch indicates an encoded payload of unexpected length.
	ErrPayloadSizeMismatch = errors.New("payload size mismatch")
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrChunkTooLarge indicates a compressed chunk exceeds the 24-bit size field.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrChunkStreamTruncated indicates LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownLZ4Flags indicates unknown LZ4 chunk flags.
	ErrUnknownLZ4Flags = errors.New("unknown LZ4 flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrDecodeOverrun indicates decoded data overruns target buffer.
	ErrDecodeOverrun = errors.New("decoded LZ4 overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded size mismatch.
	ErrDecodedSizeMismatch = errors.New("LZ4 decoded size mismatch")
	// ErrBlockTable indicates the block table could not be read.
	ErrBlockTable = errors.New("invalid block table")
	// ErrBlockBody indicates a block body could not be read.
	ErrBlockBody = errors.New("invalid block body")
	// ErrHeader indicates the DDS headers could not be read.
	ErrHeader = errors.New("reading DDS header failed")
	// ErrDecodeImage indicates pixel payload decode failed.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeImage indicates pixel payload encode failed.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrWrite indicates writing to the destination failed.
	ErrWrite = errors.New("write failed")
)
