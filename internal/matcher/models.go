package matcher

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Input is the exact payload sent to the matching service: donors and requests
// stripped down to the fields the service is allowed to see. It is validated
// locally before any network call.
type Input struct {
	Donors   []DonorInput   `json:"donors"`
	Requests []RequestInput `json:"requests"`
}

type DonorInput struct {
	ID            string  `json:"id"`
	BloodGroup    string  `json:"bloodGroup"`
	Location      string  `json:"location"`
	ContactNumber string  `json:"contactNumber"`
	FCMToken      *string `json:"fcmToken,omitempty"`
}

type RequestInput struct {
	ID                 string  `json:"id"`
	BloodGroup         string  `json:"bloodGroup"`
	Location           string  `json:"location"`
	Urgency            string  `json:"urgency"`
	ContactInformation string  `json:"contactInformation"`
	AdditionalNotes    *string `json:"additionalNotes,omitempty"`
}

func (in Input) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Donors, validation.Required),
		validation.Field(&in.Requests, validation.Required),
	)
}

func (d DonorInput) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.ID, validation.Required),
		validation.Field(&d.BloodGroup, validation.Required),
		validation.Field(&d.Location, validation.Required),
		validation.Field(&d.ContactNumber, validation.Required),
	)
}

func (r RequestInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.BloodGroup, validation.Required),
		validation.Field(&r.Location, validation.Required),
		validation.Field(&r.Urgency, validation.Required),
		validation.Field(&r.ContactInformation, validation.Required),
	)
}

// pairing mirrors the service's declared output schema.
type pairing struct {
	DonorID   string `json:"donorId"`
	RequestID string `json:"requestId"`
	Reason    string `json:"reason"`
}
