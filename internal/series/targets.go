package series

import (
	"encoding/json"
	"math"
	"sort"
)

// Target is one selectable entry for a series picker, e.g. a route or a
// country. Idx is nil when the source did not carry a usable numeric index.
type Target struct {
	Idx   *int   `json:"idx"`
	Label string `json:"label"`
}

// UnmarshalJSON accepts any idx value but only keeps integral numbers.
func (t *Target) UnmarshalJSON(data []byte) error {
	var raw struct {
		Idx   interface{} `json:"idx"`
		Label string      `json:"label"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Label = raw.Label
	t.Idx = nil
	if f, ok := raw.Idx.(float64); ok && f == math.Trunc(f) {
		idx := int(f)
		t.Idx = &idx
	}
	return nil
}

// DedupeAndSort drops nil targets and targets without an index, keeps the
// last target seen for each index and returns them in ascending index order.
func DedupeAndSort(items []*Target) []Target {
	byIdx := make(map[int]Target, len(items))
	for _, item := range items {
		if item == nil || item.Idx == nil {
			continue
		}
		byIdx[*item.Idx] = *item
	}

	out := make([]Target, 0, len(byIdx))
	for _, t := range byIdx {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		return *out[i].Idx < *out[j].Idx
	})
	return out
}
