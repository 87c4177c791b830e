// Package editor provides the interactive power editor: its state, key handling and
// event loop.
package editor

// Mode represents what keyboard input currently drives.
type Mode int

const (
	// ModeBrowse moves through the power forest and steps frames.
	ModeBrowse Mode = iota
	// ModeFields moves through the columns of the selected power.
	ModeFields
	// ModeEdit types a new value for the focused column.
	ModeEdit
	// ModeConfirmDelete waits for y/n before deleting the selected power.
	ModeConfirmDelete
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeBrowse:
		return "browse"
	case ModeFields:
		return "fields"
	case ModeEdit:
		return "edit"
	case ModeConfirmDelete:
		return "confirm_delete"
	default:
		return "unknown"
	}
}
