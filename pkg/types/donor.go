package types

import "time"

type BloodGroup string

const (
	BloodGroupAPositive  BloodGroup = "A+"
	BloodGroupANegative  BloodGroup = "A-"
	BloodGroupBPositive  BloodGroup = "B+"
	BloodGroupBNegative  BloodGroup = "B-"
	BloodGroupABPositive BloodGroup = "AB+"
	BloodGroupABNegative BloodGroup = "AB-"
	BloodGroupOPositive  BloodGroup = "O+"
	BloodGroupONegative  BloodGroup = "O-"
)

// BloodGroups is the canonical ordering used by filter dropdowns and seeds.
var BloodGroups = []BloodGroup{
	BloodGroupAPositive, BloodGroupANegative,
	BloodGroupBPositive, BloodGroupBNegative,
	BloodGroupABPositive, BloodGroupABNegative,
	BloodGroupOPositive, BloodGroupONegative,
}

func (g BloodGroup) Valid() bool {
	for _, known := range BloodGroups {
		if g == known {
			return true
		}
	}
	return false
}

type Donor struct {
	ID            string     `db:"id" json:"id"`
	UserID        string     `db:"user_id" json:"userId"`
	FullName      string     `db:"full_name" json:"fullName"`
	BloodGroup    BloodGroup `db:"blood_group" json:"bloodGroup"`
	Location      string     `db:"location" json:"location"`
	ContactNumber string     `db:"contact_number" json:"contactNumber"`
	FCMToken      *string    `db:"fcm_token" json:"fcmToken,omitempty"`
	Available     bool       `db:"available" json:"available"`
	LastDonated   *time.Time `db:"last_donated" json:"lastDonated,omitempty"`
	CreatedAt     time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time  `db:"updated_at" json:"updatedAt"`
}
