package system

// IntIndex assigns every flattened integer-variable cell a coordinate into
// a flat []int64 valuation vector, in sorted-name order (array variables
// contributing Size consecutive cells).
type IntIndex struct {
	index map[string]int
	cells []IntVar // cells[coordinate] carries the owning variable's declared bounds
}

// BuildIntIndex assigns coordinates to every integer variable declared in
// s.
func (s *System) BuildIntIndex() *IntIndex {
	ii := &IntIndex{index: map[string]int{}}
	for _, v := range s.IntVars() {
		for i := int64(0); i < v.Size; i++ {
			cell := cellName(v.Name, i)
			ii.index[cell] = len(ii.cells)
			ii.cells = append(ii.cells, v)
		}
	}
	return ii
}

// Dim returns the total number of flattened integer cells.
func (ii *IntIndex) Dim() int { return len(ii.cells) }

// Index returns the coordinate of variable name (or "name[i]" for an
// array cell).
func (ii *IntIndex) Index(name string) (int, bool) {
	i, ok := ii.index[name]
	return i, ok
}

// Bounds returns the declared [Min, Max] range of the variable owning
// coordinate i.
func (ii *IntIndex) Bounds(i int) (min, max int64) {
	return ii.cells[i].Min, ii.cells[i].Max
}

// Size returns the declared array size of variable name (1 for a scalar),
// or false if name is not a declared integer variable.
func (ii *IntIndex) Size(name string) (int64, bool) {
	for _, v := range ii.cells {
		if v.Name == name {
			return v.Size, true
		}
	}
	return 0, false
}

// Initial returns the initial flattened valuation vector.
func (ii *IntIndex) Initial() []int64 {
	out := make([]int64, len(ii.cells))
	for i, v := range ii.cells {
		out[i] = v.Init
	}
	return out
}
