package sceneedit

import (
	"fmt"
	"maps"
	"slices"
)

// diffIds returns the ids in after but not before, and in before but not after.
func diffIds(before, after []ObjectId) (added, removed []ObjectId) {
	b := make(map[ObjectId]struct{}, len(before))
	for _, id := range before {
		b[id] = struct{}{}
	}
	a := make(map[ObjectId]struct{}, len(after))
	for _, id := range after {
		a[id] = struct{}{}
		if _, ok := b[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range before {
		if _, ok := a[id]; !ok {
			removed = append(removed, id)
		}
	}
	slices.Sort(added)
	slices.Sort(removed)
	return added, removed
}

// newSelectionCommand builds the smallest command describing the change
// from before to after under mode. It returns nil when nothing changed.
func newSelectionCommand(sel *SelectionSet, mode MarqueeMode, before, after []ObjectId) EditCommand {
	added, removed := diffIds(before, after)
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}
	switch {
	case mode == MarqueeAdditive && len(removed) == 0:
		return &AddToSelectionCommand{sel: sel, added: added}
	case mode == MarqueeSubtractive && len(added) == 0:
		return &RemoveFromSelectionCommand{sel: sel, removed: removed}
	}
	return &ReplaceSelectionCommand{
		sel:    sel,
		before: slices.Clone(before),
		after:  slices.Clone(after),
	}
}

// ReplaceSelectionCommand swaps between two whole selections.
type ReplaceSelectionCommand struct {
	sel    *SelectionSet
	before []ObjectId
	after  []ObjectId
}

func NewReplaceSelectionCommand(sel *SelectionSet, before, after []ObjectId) *ReplaceSelectionCommand {
	return &ReplaceSelectionCommand{sel: sel, before: slices.Clone(before), after: slices.Clone(after)}
}

func (c *ReplaceSelectionCommand) Apply()  { c.sel.SetSelection(c.after) }
func (c *ReplaceSelectionCommand) Revert() { c.sel.SetSelection(c.before) }
func (c *ReplaceSelectionCommand) Description() string {
	return fmt.Sprintf("Select %d objects", len(c.after))
}

// AddToSelectionCommand records objects added by an additive marquee.
type AddToSelectionCommand struct {
	sel   *SelectionSet
	added []ObjectId
}

func (c *AddToSelectionCommand) Apply() {
	for _, id := range c.added {
		c.sel.Select(id)
	}
}

func (c *AddToSelectionCommand) Revert() {
	for _, id := range c.added {
		c.sel.Deselect(id)
	}
}

func (c *AddToSelectionCommand) Description() string {
	return fmt.Sprintf("Add %d objects to selection", len(c.added))
}

// RemoveFromSelectionCommand records objects removed by a subtractive marquee.
type RemoveFromSelectionCommand struct {
	sel     *SelectionSet
	removed []ObjectId
}

func (c *RemoveFromSelectionCommand) Apply() {
	for _, id := range c.removed {
		c.sel.Deselect(id)
	}
}

func (c *RemoveFromSelectionCommand) Revert() {
	for _, id := range c.removed {
		c.sel.Select(id)
	}
}

func (c *RemoveFromSelectionCommand) Description() string {
	return fmt.Sprintf("Remove %d objects from selection", len(c.removed))
}

// TransformCommand records the transforms of a finished handle drag.
type TransformCommand struct {
	scene  Scene
	sel    *SelectionSet
	before map[ObjectId]TransformState
	after  map[ObjectId]TransformState
}

func NewTransformCommand(scene Scene, sel *SelectionSet, before, after map[ObjectId]TransformState) *TransformCommand {
	return &TransformCommand{scene: scene, sel: sel, before: maps.Clone(before), after: maps.Clone(after)}
}

func (c *TransformCommand) Apply()  { c.set(c.after) }
func (c *TransformCommand) Revert() { c.set(c.before) }

func (c *TransformCommand) set(states map[ObjectId]TransformState) {
	ids := make([]ObjectId, 0, len(states))
	for id, st := range states {
		if obj, ok := c.scene.Object(id); ok {
			st.applyTo(obj)
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	c.sel.TransformsChanged(ids)
}

func (c *TransformCommand) Description() string {
	return fmt.Sprintf("Transform %d objects", len(c.after))
}

// DeleteCommand takes objects out of the map. Reverting puts them back and
// restores their selection.
type DeleteCommand struct {
	host     MapHost
	listener MapListener
	sel      *SelectionSet
	ids      []ObjectId
	selected []ObjectId
}

func NewDeleteCommand(host MapHost, listener MapListener, sel *SelectionSet, ids []ObjectId) *DeleteCommand {
	c := &DeleteCommand{host: host, listener: listener, sel: sel, ids: slices.Clone(ids)}
	for _, id := range ids {
		if sel.IsSelected(id) {
			c.selected = append(c.selected, id)
		}
	}
	return c
}

func (c *DeleteCommand) Apply() {
	c.listener.OnObjectsDeleted(c.ids)
	c.host.RemoveFromMap(c.ids)
}

func (c *DeleteCommand) Revert() {
	c.host.RestoreToMap(c.ids)
	c.listener.OnObjectsImported(c.ids)
	for _, id := range c.selected {
		c.sel.Select(id)
	}
}

func (c *DeleteCommand) Description() string {
	return fmt.Sprintf("Delete %d objects", len(c.ids))
}

// PasteCommand records pasted objects and the selection they replaced.
type PasteCommand struct {
	host     MapHost
	listener MapListener
	sel      *SelectionSet
	ids      []ObjectId
	before   []ObjectId
}

func NewPasteCommand(host MapHost, listener MapListener, sel *SelectionSet, ids, before []ObjectId) *PasteCommand {
	return &PasteCommand{host: host, listener: listener, sel: sel, ids: slices.Clone(ids), before: slices.Clone(before)}
}

func (c *PasteCommand) Apply() {
	c.host.RestoreToMap(c.ids)
	c.listener.OnObjectsPasted(c.ids)
	c.sel.SetSelection(c.ids)
}

func (c *PasteCommand) Revert() {
	c.sel.SetSelection(c.before)
	c.listener.OnObjectsDeleted(c.ids)
	c.host.RemoveFromMap(c.ids)
}

func (c *PasteCommand) Description() string {
	return fmt.Sprintf("Paste %d objects", len(c.ids))
}
