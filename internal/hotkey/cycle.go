package hotkey

// Cycle walks the copy actions of one generator context in order, wrapping
// around after the last one.
type Cycle struct {
	index int
}

// Next returns the action at the current index and advances it.
func (c *Cycle) Next() Action {
	a := CopyActions[c.index%len(CopyActions)]
	c.index = (c.index + 1) % len(CopyActions)
	return a
}

// Index returns the position of the next action.
func (c *Cycle) Index() int { return c.index }

// Set moves the cycle to index i, wrapped into range.
func (c *Cycle) Set(i int) {
	n := len(CopyActions)
	c.index = ((i % n) + n) % n
}

// Reset rewinds the cycle to the first action.
func (c *Cycle) Reset() { c.index = 0 }
