package input

// Cursor turns absolute cursor positions into per-frame deltas. While the
// cursor is not captured it only follows the pointer, so the first captured
// frame does not jump.
type Cursor struct {
	x, y  float64
	valid bool
}

// Update takes the current cursor position. It returns the movement since
// the previous call and true when captured and a baseline exists; otherwise
// it only stores the new baseline.
func (c *Cursor) Update(captured bool, x, y float64) (dx, dy float64, ok bool) {
	if captured && c.valid {
		dx, dy = x-c.x, y-c.y
		ok = true
	}
	c.x, c.y = x, y
	c.valid = true
	return dx, dy, ok
}

// Reset forgets the baseline; the next Update only re-synchronizes.
func (c *Cursor) Reset() {
	c.valid = false
}
