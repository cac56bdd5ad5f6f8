package transform

// StepMap describes how a step moves positions, as (start, oldSize,
// newSize) triples over the pre-step document.
type StepMap struct {
	ranges []int
}

// IdentityMap is the map of a step that moves no positions.
var IdentityMap = &StepMap{}

// NewStepMap builds a map for a single replaced range.
func NewStepMap(start, oldSize, newSize int) *StepMap {
	return &StepMap{ranges: []int{start, oldSize, newSize}}
}

// MapPos maps a position through this step. Assoc biases positions that
// fall exactly inside a replaced range: negative keeps them at the range
// start, non-negative pushes them past the inserted content.
func (m *StepMap) MapPos(pos int, assoc int) int {
	diff := 0
	for i := 0; i+2 < len(m.ranges); i += 3 {
		start, oldSize, newSize := m.ranges[i], m.ranges[i+1], m.ranges[i+2]
		end := start + oldSize
		if pos < start {
			break
		}
		if pos <= end {
			// Inside (or on the edge of) the replaced range.
			var side int
			switch {
			case pos == start && assoc < 0:
				side = 0
			case pos == end && assoc >= 0:
				side = newSize
			case assoc < 0:
				side = 0
			default:
				side = newSize
			}
			return start + diff + side
		}
		diff += newSize - oldSize
	}
	return pos + diff
}

// Mapping composes the StepMaps of a sequence of steps.
type Mapping struct {
	maps []*StepMap
}

// NewMapping creates a Mapping over the given step maps.
func NewMapping(maps ...*StepMap) *Mapping {
	return &Mapping{maps: maps}
}

// Append adds a step map to the end of the mapping.
func (m *Mapping) Append(sm *StepMap) {
	m.maps = append(m.maps, sm)
}

// MapPos maps a position through every step in order.
func (m *Mapping) MapPos(pos int, assoc int) int {
	for _, sm := range m.maps {
		pos = sm.MapPos(pos, assoc)
	}
	return pos
}
