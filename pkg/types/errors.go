package types

import "errors"

var (
	ErrDonorNotFound    = errors.New("donor not found")
	ErrRequestNotFound  = errors.New("blood request not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrHospitalNotFound = errors.New("hospital not found")
)
