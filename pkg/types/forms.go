package types

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Form payloads accept both form-encoded and JSON bodies. Validate before
// anything reaches the store; empty optional fields collapse to nil pointers
// so "absent" has a single representation past this boundary.

type DonorRegistrationForm struct {
	FullName      string `form:"full_name" json:"fullName"`
	BloodGroup    string `form:"blood_group" json:"bloodGroup"`
	Location      string `form:"location" json:"location"`
	ContactNumber string `form:"contact_number" json:"contactNumber"`
	FCMToken      string `form:"fcm_token" json:"fcmToken"`
	Available     *bool  `form:"available" json:"available"`
	LastDonated   string `form:"last_donated" json:"lastDonated"`
}

func (f DonorRegistrationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FullName, validation.Required, validation.Length(2, 100)),
		validation.Field(&f.BloodGroup, validation.Required, validation.By(validBloodGroup)),
		validation.Field(&f.Location, validation.Required, validation.Length(2, 120)),
		validation.Field(&f.ContactNumber, validation.Required, validation.Length(6, 20)),
	)
}

type BloodRequestForm struct {
	RequesterName      string `form:"requester_name" json:"requesterName"`
	PatientName        string `form:"patient_name" json:"patientName"`
	BloodGroup         string `form:"blood_group" json:"bloodGroup"`
	Location           string `form:"location" json:"location"`
	ContactInformation string `form:"contact_information" json:"contactInformation"`
	AdditionalNotes    string `form:"additional_notes" json:"additionalNotes"`
	Urgency            string `form:"urgency" json:"urgency"`
}

func (f BloodRequestForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.BloodGroup, validation.Required, validation.By(validBloodGroup)),
		validation.Field(&f.Location, validation.Required, validation.Length(2, 120)),
		validation.Field(&f.ContactInformation, validation.Required, validation.Length(6, 120)),
		validation.Field(&f.AdditionalNotes, validation.Length(0, 500)),
		validation.Field(&f.Urgency, validation.Required, validation.By(validUrgency)),
	)
}

type SupportChatForm struct {
	ChatID  string `form:"chat_id" json:"chatId"`
	Message string `form:"message" json:"message"`
}

func (f SupportChatForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Message, validation.Required, validation.Length(1, 1000)),
	)
}

type AdminNotificationForm struct {
	Title string `form:"title" json:"title"`
	Body  string `form:"body" json:"body"`
}

func (f AdminNotificationForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Required, validation.Length(2, 120)),
		validation.Field(&f.Body, validation.Required, validation.Length(2, 500)),
	)
}

func validBloodGroup(value any) error {
	s, _ := value.(string)
	if !BloodGroup(s).Valid() {
		return validation.NewError("validation_blood_group", "must be a valid blood group")
	}
	return nil
}

func validUrgency(value any) error {
	s, _ := value.(string)
	if !UrgencyLevel(s).Valid() {
		return validation.NewError("validation_urgency", "must be Urgent, Moderate or Low")
	}
	return nil
}

// OptionalString collapses whitespace-only form values to absent.
func OptionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
