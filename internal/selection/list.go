// Package selection implements anchor-based multi-select over an ordered list
// of row identifiers.
package selection

// Modifiers are the modifier keys held during a click.
type Modifiers struct {
	Shift  bool // extend a range from the anchor
	Toggle bool // ctrl or cmd: toggle membership
}

// List tracks the selected row IDs and the shift-range anchor.
type List[ID comparable] struct {
	rows     []ID
	selected map[ID]struct{}
	anchor   int // -1 when unset

	// OnChange, when set, is called after every selection change with the
	// selected IDs in row order.
	OnChange func(ids []ID)
}

// New returns an empty list over rows.
func New[ID comparable](rows []ID) *List[ID] {
	l := &List[ID]{selected: make(map[ID]struct{}), anchor: -1}
	l.rows = append(l.rows, rows...)
	return l
}

// Rows returns the backing row IDs.
func (l *List[ID]) Rows() []ID { return l.rows }

// Len returns the number of rows.
func (l *List[ID]) Len() int { return len(l.rows) }

// Anchor returns the anchor index and whether it is set.
func (l *List[ID]) Anchor() (int, bool) { return l.anchor, l.anchor >= 0 }

// IsSelected reports whether id is selected.
func (l *List[ID]) IsSelected(id ID) bool {
	_, ok := l.selected[id]
	return ok
}

// Selected returns the selected IDs in row order.
func (l *List[ID]) Selected() []ID {
	out := make([]ID, 0, len(l.selected))
	for _, id := range l.rows {
		if _, ok := l.selected[id]; ok {
			out = append(out, id)
		}
	}
	return out
}

// Count returns the number of selected rows.
func (l *List[ID]) Count() int { return len(l.selected) }

// Effective returns the selection, or fallback alone when nothing is selected.
func (l *List[ID]) Effective(fallback ID) []ID {
	if sel := l.Selected(); len(sel) > 0 {
		return sel
	}
	return []ID{fallback}
}

// Select applies a click on the row at index with the given modifiers.
//
// Shift selects the range between the anchor (or index, when no anchor is
// set) and index, replacing the selection or, with Toggle, adding to it. The
// anchor does not move on a shift click. Toggle alone flips membership of id
// and moves the anchor. A plain click selects id alone and moves the anchor.
func (l *List[ID]) Select(mods Modifiers, id ID, index int) {
	switch {
	case mods.Shift:
		anchor := l.anchor
		if anchor < 0 {
			anchor = index
		}
		lo, hi := min(anchor, index), max(anchor, index)
		lo = max(lo, 0)
		hi = min(hi, len(l.rows)-1)

		if !mods.Toggle {
			clear(l.selected)
		}
		for i := lo; i <= hi; i++ {
			l.selected[l.rows[i]] = struct{}{}
		}

	case mods.Toggle:
		if _, ok := l.selected[id]; ok {
			delete(l.selected, id)
		} else {
			l.selected[id] = struct{}{}
		}
		l.anchor = index

	default:
		clear(l.selected)
		l.selected[id] = struct{}{}
		l.anchor = index
	}
	l.changed()
}

// SelectAll selects every row.
func (l *List[ID]) SelectAll() {
	for _, id := range l.rows {
		l.selected[id] = struct{}{}
	}
	l.changed()
}

// Clear empties the selection and the anchor.
func (l *List[ID]) Clear() {
	clear(l.selected)
	l.anchor = -1
	l.changed()
}

// SetRows replaces the backing rows. Selected IDs that are gone are dropped and
// the anchor is pulled back inside the list, or unset when the list is empty.
func (l *List[ID]) SetRows(rows []ID) {
	l.rows = append(l.rows[:0], rows...)

	present := make(map[ID]struct{}, len(rows))
	for _, id := range rows {
		present[id] = struct{}{}
	}
	dropped := false
	for id := range l.selected {
		if _, ok := present[id]; !ok {
			delete(l.selected, id)
			dropped = true
		}
	}

	switch {
	case len(rows) == 0:
		l.anchor = -1
	case l.anchor >= len(rows):
		l.anchor = len(rows) - 1
	}

	if dropped {
		l.changed()
	}
}

func (l *List[ID]) changed() {
	if l.OnChange != nil {
		l.OnChange(l.Selected())
	}
}
