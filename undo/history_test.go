package undo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(h *History, name string, log *[]string, value *int, to int) {
	from := *value
	h.CreateAction(name)
	h.AddDoMethod(func() { *value = to; *log = append(*log, "do "+name) })
	h.AddUndoMethod(func() { *value = from; *log = append(*log, "undo "+name) })
	h.CommitAction()
}

func TestCommitUndoRedo(t *testing.T) {
	h := New(0, nil)
	var log []string
	v := 0

	record(h, "a", &log, &v, 1)
	record(h, "b", &log, &v, 2)
	assert.Equal(t, 2, v)
	assert.Equal(t, "b", h.CurrentActionName())

	require.True(t, h.Undo())
	assert.Equal(t, 1, v)
	require.True(t, h.Undo())
	assert.Equal(t, 0, v)
	assert.False(t, h.Undo())

	require.True(t, h.Redo())
	assert.Equal(t, 1, v)
	assert.Equal(t, []string{"do a", "do b", "undo b", "undo a", "do a"}, log)
}

func TestCommitDropsRedoTail(t *testing.T) {
	h := New(0, nil)
	var log []string
	v := 0

	record(h, "a", &log, &v, 1)
	record(h, "b", &log, &v, 2)
	require.True(t, h.Undo())
	record(h, "c", &log, &v, 3)

	assert.False(t, h.HasRedo())
	require.True(t, h.Undo())
	assert.Equal(t, 1, v)
	require.True(t, h.Undo())
	assert.Equal(t, 0, v)
	assert.False(t, h.HasUndo())
}

func TestMaxUndoDropsOldest(t *testing.T) {
	h := New(2, nil)
	var log []string
	v := 0
	record(h, "a", &log, &v, 1)
	record(h, "b", &log, &v, 2)
	record(h, "c", &log, &v, 3)

	assert.True(t, h.Undo())
	assert.True(t, h.Undo())
	assert.False(t, h.Undo())
	assert.Equal(t, 1, v)
}

func TestStepsOutsideActionAreIgnored(t *testing.T) {
	h := New(0, nil)
	called := false
	h.AddDoMethod(func() { called = true })
	h.CommitAction()
	assert.False(t, called)
	assert.False(t, h.HasUndo())

	before := h.Version()
	h.CreateAction("multi")
	h.AddDoMethod(func() {})
	h.AddDoMethod(func() { called = true })
	h.CommitAction()
	assert.True(t, called)
	assert.Greater(t, h.Version(), before)
}
