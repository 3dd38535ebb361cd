package spritebot

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrOpenFile indicates a file could not be opened through the storage.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates a file could not be created through the storage.
	ErrCreateFile = errors.New("create file failed")
	// ErrWriteFile indicates writing or closing a created file failed.
	ErrWriteFile = errors.New("write file failed")
	// ErrArchive indicates a malformed sprite bundle.
	ErrArchive = errors.New("invalid sprite archive")
	// ErrMetadataRead indicates AnimData.xml could not be parsed.
	ErrMetadataRead = errors.New("reading AnimData.xml failed")
	// ErrMetadataWrite indicates AnimData.xml could not be serialized.
	ErrMetadataWrite = errors.New("writing AnimData.xml failed")
	// ErrDecodeImage indicates a sheet could not be decoded.
	ErrDecodeImage = errors.New("decode image failed")
	// ErrEncodeImage indicates a sheet could not be encoded.
	ErrEncodeImage = errors.New("encode image failed")
	// ErrSizeZero indicates a zero frame width or height.
	ErrSizeZero = errors.New("frame size is zero")
	// ErrSizeNotMultiple indicates a sheet side that is not a multiple of the frame size.
	ErrSizeNotMultiple = errors.New("sheet size is not a multiple of the frame size")
	// ErrSpriteSizeNotIdentical indicates the three sheets of an animation slice differently.
	ErrSpriteSizeNotIdentical = errors.New("sheets of the animation do not have an identical size")
	// ErrInconsistentDuration indicates a line length that differs from the duration count.
	ErrInconsistentDuration = errors.New("frame count does not match the duration count")
	// ErrColorNotFound indicates a required marker pixel is missing.
	ErrColorNotFound = errors.New("marker color not found")
	// ErrColorDuplicate indicates a marker pixel appears more than once.
	ErrColorDuplicate = errors.New("marker color found more than once")
	// ErrTooLargeDuration indicates a frame duration above 255 ticks.
	ErrTooLargeDuration = errors.New("duration too large")
	// ErrOffsetTooLarge indicates a marker coordinate above 16 bits.
	ErrOffsetTooLarge = errors.New("offset too large")
	// ErrTooLargeGeneratedSheet indicates a packed sheet side overflows int32.
	ErrTooLargeGeneratedSheet = errors.New("generated sheet too large")
	// ErrInvalidHeadPosition indicates a head offset sharing a hand pixel.
	ErrInvalidHeadPosition = errors.New("head offset would overwrite a hand offset")
	// ErrEmptyAnimation indicates an animation without any frame to pack.
	ErrEmptyAnimation = errors.New("animation has no frame")
	// ErrMissingFrame indicates a nil frame in the lines of an animation.
	ErrMissingFrame = errors.New("frame is missing")
	// ErrUnknownCopySource indicates a CopyOf entry naming a missing animation.
	ErrUnknownCopySource = errors.New("unknown CopyOf animation")
)

// Error carries the location of a failure. Kind is one of the ErrXxx
// sentinels above; unset context fields are left out of the message.
type Error struct {
	Kind      error
	Animation string
	Sheet     SheetKind
	Axis      string
	Marker    string
	Path      string
	// Line and Frame are -1 when the failure is not tied to a frame.
	Line  int
	Frame int
	Err   error
}

func newError(kind error, anim string) *Error {
	return &Error{Kind: kind, Animation: anim, Line: -1, Frame: -1}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())

	var ctx []string
	if e.Animation != "" {
		ctx = append(ctx, fmt.Sprintf("animation %q", e.Animation))
	}
	if e.Line >= 0 {
		ctx = append(ctx, fmt.Sprintf("line %d", e.Line))
	}
	if e.Frame >= 0 {
		ctx = append(ctx, fmt.Sprintf("frame %d", e.Frame))
	}
	if e.Sheet != "" {
		ctx = append(ctx, string(e.Sheet)+" sheet")
	}
	if e.Axis != "" {
		ctx = append(ctx, e.Axis)
	}
	if e.Marker != "" {
		ctx = append(ctx, e.Marker+" pixel")
	}
	if e.Path != "" {
		ctx = append(ctx, fmt.Sprintf("file %q", e.Path))
	}
	if len(ctx) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(ctx, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
