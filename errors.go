package points

import (
	"errors"
)

var (
	// ErrUnreadableFile signals a file that could not be read or decoded.
	ErrUnreadableFile = errors.New("Unreadable file")
	// ErrUnparsableLine signals a line that does not match any known column layout.
	ErrUnparsableLine = errors.New("Unparsable line")
	// ErrUnknownCRS signals a coordinate reference system that could not be resolved or transformed.
	ErrUnknownCRS = errors.New("Unknown or failed CRS")
	// ErrOutOfRange signals a coordinate outside of the valid latitude, longitude range.
	ErrOutOfRange = errors.New("Coordinate out of range")
	// ErrMissingGPS signals an image without usable GPS metadata.
	ErrMissingGPS = errors.New("Missing GPS metadata")
)
