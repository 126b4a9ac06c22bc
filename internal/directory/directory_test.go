package directory

import (
	"testing"
	"time"

	"bloodlink/pkg/types"

	"github.com/stretchr/testify/assert"
)

func donor(id string, group types.BloodGroup, location string) *types.Donor {
	return &types.Donor{
		ID:            id,
		FullName:      "Donor " + id,
		BloodGroup:    group,
		Location:      location,
		ContactNumber: "01700000000",
		Available:     true,
	}
}

func request(id string, group types.BloodGroup, location string, urgency types.UrgencyLevel, createdAt time.Time) *types.BloodRequest {
	return &types.BloodRequest{
		ID:                 id,
		BloodGroup:         group,
		Location:           location,
		ContactInformation: "01800000000",
		Urgency:            urgency,
		Status:             types.RequestStatusActive,
		CreatedAt:          createdAt,
	}
}

func TestFilterDonors(t *testing.T) {
	donors := []*types.Donor{
		donor("d1", types.BloodGroupOPositive, "Dhaka"),
		donor("d2", types.BloodGroupAPositive, "Mirpur, Dhaka"),
		donor("d3", types.BloodGroupOPositive, "Chittagong"),
	}

	tests := []struct {
		name     string
		filter   Filter
		expected []string
	}{
		{
			name:     "default filter returns everything",
			filter:   DefaultFilter(),
			expected: []string{"d1", "d2", "d3"},
		},
		{
			name:     "blood group is exact match",
			filter:   Filter{BloodGroup: "O+"},
			expected: []string{"d1", "d3"},
		},
		{
			name:     "location is case-insensitive substring",
			filter:   Filter{BloodGroup: FilterAllBloodGroups, Location: "dhaka"},
			expected: []string{"d1", "d2"},
		},
		{
			name:     "both predicates must hold",
			filter:   Filter{BloodGroup: "O+", Location: "dhaka"},
			expected: []string{"d1"},
		},
		{
			name:     "no matches yields empty, not nil",
			filter:   Filter{BloodGroup: "AB-"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDonors(donors, tt.filter)
			ids := make([]string, 0, len(got))
			for _, d := range got {
				ids = append(ids, d.ID)
			}
			assert.Equal(t, tt.expected, ids)
		})
	}
}

func TestFilterDonors_PreservesInputOrder(t *testing.T) {
	donors := []*types.Donor{
		donor("newest", types.BloodGroupBPositive, "Dhaka"),
		donor("older", types.BloodGroupBPositive, "Dhaka"),
		donor("oldest", types.BloodGroupBPositive, "Dhaka"),
	}

	got := FilterDonors(donors, DefaultFilter())

	assert.Len(t, got, 3)
	assert.Equal(t, "newest", got[0].ID)
	assert.Equal(t, "oldest", got[2].ID)
}

func TestFilterRequests_SortsByUrgencyThenRecency(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	requests := []*types.BloodRequest{
		request("low", types.BloodGroupOPositive, "Dhaka", types.UrgencyLow, base),
		request("urgent-old", types.BloodGroupOPositive, "Dhaka", types.UrgencyUrgent, base.Add(-2*time.Hour)),
		request("moderate", types.BloodGroupOPositive, "Dhaka", types.UrgencyModerate, base.Add(time.Hour)),
		request("urgent-new", types.BloodGroupOPositive, "Dhaka", types.UrgencyUrgent, base),
	}

	got := FilterRequests(requests, DefaultFilter())

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.ID)
	}

	assert.Equal(t, []string{"urgent-new", "urgent-old", "moderate", "low"}, ids)
}

func TestFilterRequests_FiltersBeforeSorting(t *testing.T) {
	base := time.Now()

	requests := []*types.BloodRequest{
		request("r1", types.BloodGroupAPositive, "Dhaka", types.UrgencyLow, base),
		request("r2", types.BloodGroupBPositive, "Dhaka", types.UrgencyUrgent, base),
		request("r3", types.BloodGroupAPositive, "Sylhet", types.UrgencyUrgent, base),
	}

	got := FilterRequests(requests, Filter{BloodGroup: "A+", Location: "dhaka"})

	assert.Len(t, got, 1)
	assert.Equal(t, "r1", got[0].ID)
}

func TestFilterReset(t *testing.T) {
	f := Filter{BloodGroup: "O-", Location: "Khulna"}

	f.Reset()

	assert.Equal(t, DefaultFilter(), f)
	assert.Equal(t, FilterAllBloodGroups, f.BloodGroup)
	assert.Empty(t, f.Location)
}
