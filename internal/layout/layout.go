package layout

import (
	"fmt"
	"sort"
)

// Layout maps light group ids to the number of fixtures in each group.
// Groups not listed use Default.
type Layout struct {
	Default int
	Groups  map[int]int
}

func New(def int, groups map[int]int) Layout {
	g := make(map[int]int, len(groups))
	for id, n := range groups {
		g[id] = n
	}
	return Layout{Default: def, Groups: g}
}

// Size returns the fixture count of a light group.
func (l Layout) Size(groupID int) int {
	if n, ok := l.Groups[groupID]; ok {
		return n
	}
	return l.Default
}

// IDs returns the configured group ids in ascending order.
func (l Layout) IDs() []int {
	ids := make([]int, 0, len(l.Groups))
	for id := range l.Groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Index maps a configured group id and light id onto one linear index
// across all configured groups (0..Count-1), groups in ascending id order.
func (l Layout) Index(groupID, lightID int) (int, error) {
	n, ok := l.Groups[groupID]
	if !ok {
		return 0, fmt.Errorf("group %d not in layout", groupID)
	}
	if lightID < 0 || lightID >= n {
		return 0, fmt.Errorf("light %d outside group %d of size %d", lightID, groupID, n)
	}
	base := 0
	for _, id := range l.IDs() {
		if id == groupID {
			break
		}
		base += l.Groups[id]
	}
	return base + lightID, nil
}

// Count is the number of fixtures across all configured groups.
func (l Layout) Count() int {
	total := 0
	for _, n := range l.Groups {
		total += n
	}
	return total
}
