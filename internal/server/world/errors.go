package world

import (
	"errors"
	"fmt"
)

var (
	ErrBadFileSignature  = errors.New("world: bad file signature")
	ErrExpectedWorldType = errors.New("world: file is not a world file")
	ErrInvalidFooter     = errors.New("world: footer does not match header")
	ErrInvalidEntityKind = errors.New("world: unknown tile entity kind")

	// ErrCallerHandled is returned by Drops for tiles whose drops depend on
	// neighbouring tiles or spawn NPCs.
	ErrCallerHandled = errors.New("world: tile drop must be handled by the caller")
)

// UnsupportedVersionError rejects save files outside [MinVersion, MaxVersion].
type UnsupportedVersionError struct {
	Version int32
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("world: unsupported file version %d", e.Version)
}

// PositionCheckError reports a reader cursor that did not land on the
// checkpoint recorded for a section. Want is -1 when the file declares no
// checkpoint for the section.
type PositionCheckError struct {
	Section string
	Want    int
	Got     int
}

func (e *PositionCheckError) Error() string {
	return fmt.Sprintf("world: position check failed after %s: at %d, want %d", e.Section, e.Got, e.Want)
}
