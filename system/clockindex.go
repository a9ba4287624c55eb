package system

// ClockIndex assigns every flattened clock cell a DBM coordinate. Index 0
// is reserved for the zero clock (dbm's convention); declared clocks
// occupy 1..Dim()-1 in sorted-name order, each array clock contributing
// Size consecutive coordinates.
type ClockIndex struct {
	index map[string]int // "name" or "name[i]" -> coordinate
	names []string        // coordinate -> display name, names[0] == "0"
}

// BuildClockIndex assigns coordinates to every clock declared in s.
func (s *System) BuildClockIndex() *ClockIndex {
	ci := &ClockIndex{index: map[string]int{}, names: []string{"0"}}
	for _, c := range s.Clocks() {
		if c.Size == 1 {
			ci.index[c.Name] = len(ci.names)
			ci.names = append(ci.names, c.Name)
			continue
		}
		for i := int64(0); i < c.Size; i++ {
			cell := cellName(c.Name, i)
			ci.index[cell] = len(ci.names)
			ci.names = append(ci.names, cell)
		}
	}
	return ci
}

func cellName(name string, i int64) string {
	if i == 0 {
		return name
	}
	return name + "[" + itoa(i) + "]"
}

func itoa(i int64) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}

// Dim returns the DBM dimension this index implies (declared clocks + the
// zero clock).
func (ci *ClockIndex) Dim() int { return len(ci.names) }

// Index returns the coordinate of clock name (or "name[i]" for an array
// cell), or 0 and false if name is not a known clock cell.
func (ci *ClockIndex) Index(name string) (int, bool) {
	i, ok := ci.index[name]
	return i, ok
}

// Name returns the display name of coordinate i.
func (ci *ClockIndex) Name(i int) string {
	if i < 0 || i >= len(ci.names) {
		return ""
	}
	return ci.names[i]
}
