package editor

import (
	"context"

	"github.com/gdamore/tcell/v2"
)

// HandleKey applies one key press and tells the loop whether to quit or reload.
// Errors from the triggered operation end up in the status line.
func (s *Session) HandleKey(ctx context.Context, key tcell.Key, r rune) Action {
	if key == tcell.KeyCtrlC {
		return ActionQuit
	}
	if s.mode != ModeBrowse || !isQuitKey(key, r) {
		s.quitArmed = false
	}
	switch s.mode {
	case ModeEdit:
		s.handleEditKey(key, r)
		return ActionNone
	case ModeFields:
		return s.handleFieldsKey(key, r)
	case ModeConfirmDelete:
		s.mode = ModeBrowse
		if key == tcell.KeyRune && (r == 'y' || r == 'Y') {
			s.report(s.DeleteSelected())
		} else {
			s.status = "delete cancelled"
		}
		return ActionNone
	}
	return s.handleBrowseKey(ctx, key, r)
}

func (s *Session) handleBrowseKey(ctx context.Context, key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyEscape:
		return s.quit()
	case tcell.KeyUp:
		s.MoveSelection(ctx, -1)
	case tcell.KeyDown:
		s.MoveSelection(ctx, 1)
	case tcell.KeyEnter:
		s.ToggleSelected(ctx)
	case tcell.KeyLeft:
		s.cursor.PrevFrame()
	case tcell.KeyRight:
		s.cursor.NextFrame()
	case tcell.KeyTab:
		if s.Selected() != nil {
			s.mode = ModeFields
		}
	case tcell.KeyRune:
		return s.handleBrowseRune(ctx, r)
	}
	return ActionNone
}

func (s *Session) handleBrowseRune(ctx context.Context, r rune) Action {
	switch r {
	case 'q', 'Q':
		return s.quit()
	case ' ':
		s.ToggleSelected(ctx)
	case '[':
		s.cursor.PrevCast()
	case ']':
		s.cursor.NextCast()
	case 'n':
		s.report(s.NewPower(ctx))
	case 'd':
		if s.Selected() != nil {
			s.mode = ModeConfirmDelete
		}
	case 'c':
		s.report(s.Copy())
	case 'v':
		s.report(s.Paste(ctx))
	case 's':
		s.report(s.Save(ctx))
	case 'r':
		if s.path != "" {
			return ActionReload
		}
		s.status = "no file to reload"
	case 'e':
		_, err := s.Export(ctx)
		s.report(err)
	}
	return ActionNone
}

func (s *Session) handleFieldsKey(key tcell.Key, r rune) Action {
	switch key {
	case tcell.KeyTab, tcell.KeyEscape:
		s.mode = ModeBrowse
	case tcell.KeyUp:
		s.MoveField(-1)
	case tcell.KeyDown:
		s.MoveField(1)
	case tcell.KeyPgUp:
		s.MoveField(-10)
	case tcell.KeyPgDn:
		s.MoveField(10)
	case tcell.KeyEnter:
		s.BeginEdit()
	case tcell.KeyRune:
		if r == 'q' {
			s.mode = ModeBrowse
		}
	}
	return ActionNone
}

func (s *Session) handleEditKey(key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape:
		s.mode = ModeFields
		s.status = "edit cancelled"
	case tcell.KeyEnter:
		s.report(s.CommitEdit())
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if runes := []rune(s.input); len(runes) > 0 {
			s.input = string(runes[:len(runes)-1])
		}
	case tcell.KeyCtrlU:
		s.input = ""
	case tcell.KeyRune:
		s.input += string(r)
	}
}

func isQuitKey(key tcell.Key, r rune) bool {
	return key == tcell.KeyEscape || key == tcell.KeyRune && (r == 'q' || r == 'Q')
}

// quit asks for a second, consecutive press when there are unsaved changes.
func (s *Session) quit() Action {
	if s.dirty && !s.quitArmed {
		s.quitArmed = true
		s.status = "unsaved changes: press q again to quit, s to save"
		return ActionNone
	}
	return ActionQuit
}

func (s *Session) report(err error) {
	if err != nil {
		s.status = "error: " + err.Error()
	}
}
