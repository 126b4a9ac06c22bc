package types

import "time"

type UrgencyLevel string

const (
	UrgencyUrgent   UrgencyLevel = "Urgent"
	UrgencyModerate UrgencyLevel = "Moderate"
	UrgencyLow      UrgencyLevel = "Low"
)

var UrgencyLevels = []UrgencyLevel{UrgencyUrgent, UrgencyModerate, UrgencyLow}

// UrgencyRank orders urgency for display, most pressing first.
var UrgencyRank = map[UrgencyLevel]int{
	UrgencyUrgent:   1,
	UrgencyModerate: 2,
	UrgencyLow:      3,
}

func (u UrgencyLevel) Valid() bool {
	_, ok := UrgencyRank[u]
	return ok
}

type RequestStatus string

const (
	RequestStatusActive    RequestStatus = "active"
	RequestStatusPending   RequestStatus = "pending"
	RequestStatusFulfilled RequestStatus = "fulfilled"
)

type BloodRequest struct {
	ID                 string        `db:"id" json:"id"`
	UserID             string        `db:"user_id" json:"userId"`
	RequesterName      *string       `db:"requester_name" json:"requesterName,omitempty"`
	PatientName        *string       `db:"patient_name" json:"patientName,omitempty"`
	BloodGroup         BloodGroup    `db:"blood_group" json:"bloodGroup"`
	Location           string        `db:"location" json:"location"`
	ContactInformation string        `db:"contact_information" json:"contactInformation"`
	AdditionalNotes    *string       `db:"additional_notes" json:"additionalNotes,omitempty"`
	Urgency            UrgencyLevel  `db:"urgency" json:"urgency"`
	Status             RequestStatus `db:"status" json:"status"`
	CreatedAt          time.Time     `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time     `db:"updated_at" json:"updatedAt"`
}
