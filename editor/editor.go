// Package editor holds the state and behaviour of the tile-set editor
// dialogs, independent of any widget toolkit. Views translate widget events
// into Msg values and read rows back after each refresh.
package editor

import (
	"errors"

	"github.com/sirupsen/logrus"
)

var (
	ErrNoTileSet       = errors.New("no tile set being edited")
	ErrIncompleteProxy = errors.New("proxy source id not set")
	ErrNoSelection     = errors.New("nothing selected")
	ErrUnknownMsg      = errors.New("unknown message")
)

// UndoRedo is the command stack dialogs record their actions on. Every
// action is built with CreateAction, AddDoMethod and AddUndoMethod, then
// applied by CommitAction.
type UndoRedo interface {
	CreateAction(name string)
	AddDoMethod(fn func())
	AddUndoMethod(fn func())
	CommitAction()
	Undo() bool
	Redo() bool
}

// Msg is an event sent to a dialog's Update.
type Msg interface {
	isMsg()
}

func orStandard(log logrus.FieldLogger) logrus.FieldLogger {
	if log == nil {
		return logrus.StandardLogger()
	}
	return log
}
