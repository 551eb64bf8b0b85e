package model

import "time"

// UserEntity represents the user table entity
type UserEntity struct {
	ID           uint64     `db:"id" json:"id"`
	Name         string     `db:"name" json:"name"`
	Email        string     `db:"email" json:"email"`
	Phone        string     `db:"phone" json:"phone"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FreePoints   int64      `db:"free_points" json:"free_points"`
	PaidPoints   int64      `db:"paid_points" json:"paid_points"`
	ReferralCode *string    `db:"referral_code" json:"referral_code,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    *time.Time `db:"updated_at" json:"updated_at,omitempty"`
}

// UserFilter for querying users
type UserFilter struct {
	ID           uint64
	Email        string
	Phone        string
	ReferralCode string
}

// RegisterRequest for user registration
type RegisterRequest struct {
	Name         string `json:"name" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required"`
	Password     string `json:"password" validate:"required,min=6"`
	ReferralCode string `json:"referral_code" validate:"omitempty,len=8"`
}

// LoginRequest for user login (accepts email or phone)
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"` // email or phone
	Password   string `json:"password" validate:"required"`
}

// PasswordResetRequest asks for a reset token to be issued for email.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type LoginResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type RegisterResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	FreePoints int64  `json:"free_points"`
}

// UpdateProfileRequest merges contact metadata only; balances are
// untouchable through this path.
type UpdateProfileRequest struct {
	Name  string `json:"name" validate:"omitempty,min=2"`
	Email string `json:"email" validate:"omitempty,email"`
	Phone string `json:"phone" validate:"omitempty,min=7"`
}

type ProfileResponse struct {
	ID           uint64  `json:"id"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	FreePoints   int64   `json:"free_points"`
	PaidPoints   int64   `json:"paid_points"`
	ReferralCode *string `json:"referral_code,omitempty"`
}

// ReferralInfo aggregates a user's referral performance from the ledger.
type ReferralInfo struct {
	Code              string `json:"code"`
	PointsPerReferral int64  `json:"points_per_referral"`
	TotalReferred     int64  `json:"total_referred"`
	PointsEarned      int64  `json:"points_earned"`
}
