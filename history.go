package sceneedit

import (
	"github.com/google/uuid"
)

// EditCommand is one undoable edit. Apply and Revert must be idempotent and
// only use values captured when the command was built.
type EditCommand interface {
	Apply()
	Revert()
	Description() string
}

type HistoryEntry struct {
	Id      uuid.UUID
	Command EditCommand
}

// EditHistory is a linear undo/redo log. Commands are recorded after their
// effect has already happened; Undo reverts and Redo re-applies.
type EditHistory struct {
	executed []HistoryEntry
	reverted []HistoryEntry
	maxDepth int
	log      Logger

	listeners []func()
}

// NewEditHistory keeps at most maxDepth executed entries; maxDepth <= 0 is unbounded.
func NewEditHistory(maxDepth int, log Logger) *EditHistory {
	return &EditHistory{maxDepth: maxDepth, log: orNop(log)}
}

func (h *EditHistory) OnChanged(fn func()) {
	h.listeners = append(h.listeners, fn)
}

func (h *EditHistory) changed() {
	for _, fn := range h.listeners {
		fn()
	}
}

// AddCommand records cmd and clears the redo stack.
func (h *EditHistory) AddCommand(cmd EditCommand) uuid.UUID {
	entry := HistoryEntry{Id: uuid.New(), Command: cmd}
	h.executed = append(h.executed, entry)
	if h.maxDepth > 0 && len(h.executed) > h.maxDepth {
		h.executed = h.executed[len(h.executed)-h.maxDepth:]
	}
	h.reverted = h.reverted[:0]
	h.log.Debugf("history: %s (%s)", cmd.Description(), entry.Id)
	h.changed()
	return entry.Id
}

// Undo reverts the newest command. It returns false when there is none.
func (h *EditHistory) Undo() bool {
	if len(h.executed) == 0 {
		return false
	}
	entry := h.executed[len(h.executed)-1]
	h.executed = h.executed[:len(h.executed)-1]
	entry.Command.Revert()
	h.reverted = append(h.reverted, entry)
	h.log.Debugf("undo: %s", entry.Command.Description())
	h.changed()
	return true
}

// Redo re-applies the newest reverted command. It returns false when there is none.
func (h *EditHistory) Redo() bool {
	if len(h.reverted) == 0 {
		return false
	}
	entry := h.reverted[len(h.reverted)-1]
	h.reverted = h.reverted[:len(h.reverted)-1]
	entry.Command.Apply()
	h.executed = append(h.executed, entry)
	h.log.Debugf("redo: %s", entry.Command.Description())
	h.changed()
	return true
}

func (h *EditHistory) CanUndo() bool { return len(h.executed) > 0 }
func (h *EditHistory) CanRedo() bool { return len(h.reverted) > 0 }

func (h *EditHistory) Clear() {
	h.executed = h.executed[:0]
	h.reverted = h.reverted[:0]
	h.changed()
}

// Executed returns the undo stack, oldest first.
func (h *EditHistory) Executed() []HistoryEntry {
	return append([]HistoryEntry(nil), h.executed...)
}

// Reverted returns the redo stack, oldest first.
func (h *EditHistory) Reverted() []HistoryEntry {
	return append([]HistoryEntry(nil), h.reverted...)
}
