package types

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type UserProfile struct {
	ID          string    `db:"id" json:"uid"`
	Email       *string   `db:"email" json:"email,omitempty"`
	DisplayName *string   `db:"display_name" json:"displayName,omitempty"`
	Role        UserRole  `db:"role" json:"role"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

func (u *UserProfile) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
