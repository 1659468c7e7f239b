package engine

import (
	"sort"

	"brewery_dashboard/internal/models"
)

// ResolveDuplicateBatches keeps a batch on only one vessel: the one whose current
// record is newest (ties go to the earlier vessel in display order). The others
// are emptied but keep their LastEventTimestamp.
func ResolveDuplicateBatches(states []models.VesselState) []models.VesselState {
	out := append([]models.VesselState(nil), states...)

	groups := make(map[string][]int)
	for i, st := range out {
		if st.IsEmpty || st.BatchID == "" {
			continue
		}
		groups[st.BatchID] = append(groups[st.BatchID], i)
	}

	for _, idx := range groups {
		if len(idx) < 2 {
			continue
		}
		sort.SliceStable(idx, func(a, b int) bool {
			return out[idx[a]].LastEventTimestamp.After(out[idx[b]].LastEventTimestamp)
		})
		for _, i := range idx[1:] {
			out[i] = out[i].Cleared()
		}
	}
	return out
}
