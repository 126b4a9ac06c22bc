// Package directory implements the donor directory and request board: live,
// filterable views over the donor and request feeds.
package directory

import (
	"sort"
	"strings"

	"bloodlink/pkg/types"
)

// FilterAllBloodGroups disables blood-group filtering.
const FilterAllBloodGroups = "all"

// Filter holds the two user-controlled parameters shared by both boards:
// exact-match blood group (or "all") and case-insensitive location substring.
type Filter struct {
	BloodGroup string
	Location   string
}

func DefaultFilter() Filter {
	return Filter{BloodGroup: FilterAllBloodGroups}
}

// Reset clears both parameters back to their defaults atomically.
func (f *Filter) Reset() {
	*f = DefaultFilter()
}

func (f Filter) matches(group types.BloodGroup, location string) bool {
	if f.BloodGroup != "" && f.BloodGroup != FilterAllBloodGroups && string(group) != f.BloodGroup {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(location), strings.ToLower(f.Location)) {
		return false
	}
	return true
}

// FilterDonors returns the subsequence of donors satisfying both filter
// predicates, preserving store order (most recently created first).
func FilterDonors(donors []*types.Donor, f Filter) []*types.Donor {
	out := make([]*types.Donor, 0, len(donors))
	for _, d := range donors {
		if f.matches(d.BloodGroup, d.Location) {
			out = append(out, d)
		}
	}
	return out
}

// FilterRequests filters like FilterDonors and then orders by urgency, most
// pressing first, breaking ties by newest createdAt.
func FilterRequests(requests []*types.BloodRequest, f Filter) []*types.BloodRequest {
	out := make([]*types.BloodRequest, 0, len(requests))
	for _, r := range requests {
		if f.matches(r.BloodGroup, r.Location) {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := types.UrgencyRank[out[i].Urgency], types.UrgencyRank[out[j].Urgency]
		if ri != rj {
			return ri < rj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out
}
