package chunk

// Coord addresses a chunk in chunk units.
type Coord [3]int

// Registry owns the chunks currently known to the viewer, in insertion order.
// Not safe for concurrent use; the frame loop owns it.
type Registry struct {
	index map[Coord]int
	items []*Geometry
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[Coord]int)}
}

// Put stores g under c, taking over the caller's reference. A chunk already at
// c is released and replaced in place, keeping its draw order.
func (r *Registry) Put(c Coord, g *Geometry) {
	if i, ok := r.index[c]; ok {
		r.items[i].Release()
		r.items[i] = g
		return
	}
	r.index[c] = len(r.items)
	r.items = append(r.items, g)
}

func (r *Registry) Len() int { return len(r.items) }

// AppendTo appends the chunks in insertion order to dst. The caller borrows
// them for the current frame; use Retain to keep one longer.
func (r *Registry) AppendTo(dst []*Geometry) []*Geometry {
	return append(dst, r.items...)
}

// Clear releases every chunk.
func (r *Registry) Clear() {
	for _, g := range r.items {
		g.Release()
	}
	clear(r.index)
	r.items = r.items[:0]
}
