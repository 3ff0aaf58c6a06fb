package undo

import (
	"github.com/sirupsen/logrus"
)

const defaultMaxUndo = 100

// Action is one named, reversible unit of work.
type Action struct {
	Name string
	do   []func()
	undo []func()
}

// History is an undo/redo command stack. Actions are built with
// CreateAction, AddDoMethod and AddUndoMethod and applied by CommitAction.
// Do and undo steps run in the order they were added.
type History struct {
	log     logrus.FieldLogger
	actions []*Action
	current int // actions[:current] are applied
	pending *Action
	maxUndo int
	version uint64
}

func New(maxUndo int, log logrus.FieldLogger) *History {
	if maxUndo <= 0 {
		maxUndo = defaultMaxUndo
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &History{log: log, maxUndo: maxUndo}
}

func (h *History) CreateAction(name string) {
	if h.pending != nil {
		h.log.WithField("action", h.pending.Name).Warn("undo: discarding uncommitted action")
	}
	h.pending = &Action{Name: name}
}

func (h *History) AddDoMethod(fn func()) {
	if h.pending == nil {
		h.log.Warn("undo: do step added outside of an action")
		return
	}
	h.pending.do = append(h.pending.do, fn)
}

func (h *History) AddUndoMethod(fn func()) {
	if h.pending == nil {
		h.log.Warn("undo: undo step added outside of an action")
		return
	}
	h.pending.undo = append(h.pending.undo, fn)
}

// CommitAction records the pending action, drops any redo history and
// applies the action's do steps.
func (h *History) CommitAction() {
	act := h.pending
	if act == nil {
		h.log.Warn("undo: commit without a pending action")
		return
	}
	h.pending = nil

	h.actions = append(h.actions[:h.current], act)
	if len(h.actions) > h.maxUndo {
		// drop oldest
		h.actions = h.actions[len(h.actions)-h.maxUndo:]
	}
	h.current = len(h.actions)
	run(act.do)
	h.version++
	h.log.WithField("action", act.Name).Debug("undo: committed")
}

func (h *History) Undo() bool {
	if !h.HasUndo() {
		return false
	}
	h.current--
	act := h.actions[h.current]
	run(act.undo)
	h.version++
	h.log.WithField("action", act.Name).Debug("undo: undone")
	return true
}

func (h *History) Redo() bool {
	if !h.HasRedo() {
		return false
	}
	act := h.actions[h.current]
	h.current++
	run(act.do)
	h.version++
	h.log.WithField("action", act.Name).Debug("undo: redone")
	return true
}

func (h *History) HasUndo() bool { return h.current > 0 }
func (h *History) HasRedo() bool { return h.current < len(h.actions) }

// CurrentActionName is the name of the action Undo would revert.
func (h *History) CurrentActionName() string {
	if !h.HasUndo() {
		return ""
	}
	return h.actions[h.current-1].Name
}

// Version changes every time the applied state changes.
func (h *History) Version() uint64 { return h.version }

func (h *History) Clear() {
	h.actions = nil
	h.current = 0
	h.pending = nil
}

func run(steps []func()) {
	for _, fn := range steps {
		fn()
	}
}
