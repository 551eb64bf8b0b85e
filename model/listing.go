package model

import (
	"time"

	"github.com/Psybah/housify-expo-sub000/constant"
)

// ListingEntity represents the listing table entity. LandlordName,
// LandlordPhone and LandlordEmail are the protected payload and must never
// leak through list/detail responses; they travel only through
// LandlordContact after an unlock check.
type ListingEntity struct {
	ID                 uint64                 `db:"id"`
	Title              string                 `db:"title"`
	Description        string                 `db:"description"`
	Price              int64                  `db:"price"`
	Address            string                 `db:"address"`
	City               string                 `db:"city"`
	State              string                 `db:"state"`
	Bedrooms           int                    `db:"bedrooms"`
	Bathrooms          int                    `db:"bathrooms"`
	Furnished          bool                   `db:"furnished"`
	SizeSqm            int                    `db:"size_sqm"`
	Amenities          string                 `db:"amenities"` // JSON array of tags
	Images             string                 `db:"images"`    // JSON array, display order preserved
	LandlordName       string                 `db:"landlord_name"`
	LandlordPhone      string                 `db:"landlord_phone"`
	LandlordEmail      string                 `db:"landlord_email"`
	Status             constant.ListingStatus `db:"status"`
	Verified           bool                   `db:"verified"`
	SubmittedBy        uint64                 `db:"submitted_by"`
	PointsToUnlock     int64                  `db:"points_to_unlock"`
	RequiresPaidPoints bool                   `db:"requires_paid_points"`
	CreatedAt          time.Time              `db:"created_at"`
	UpdatedAt          *time.Time             `db:"updated_at"`
}

// LandlordContact is the unlock-gated payload. Full exposure or full
// denial, never partial.
type LandlordContact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type LocationRequest struct {
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
}

type FeaturesRequest struct {
	Bedrooms  int  `json:"bedrooms" validate:"required,gte=1"`
	Bathrooms int  `json:"bathrooms" validate:"required,gte=1"`
	Furnished bool `json:"furnished"`
	SizeSqm   int  `json:"size_sqm" validate:"omitempty,gt=0"`
}

type LandlordContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required,e164|numeric"`
	Email string `json:"email" validate:"required,email"`
}

// SubmitListingRequest carries every field a landlord fills in on the
// submission form. Validation collects all violations, not just the first.
type SubmitListingRequest struct {
	Title           string                 `json:"title" validate:"required,min=5"`
	Description     string                 `json:"description" validate:"required,min=20"`
	Price           int64                  `json:"price" validate:"required,gt=0"`
	Location        LocationRequest        `json:"location" validate:"required"`
	Features        FeaturesRequest        `json:"features" validate:"required"`
	Amenities       []string               `json:"amenities" validate:"omitempty,dive,required"`
	Images          []string               `json:"images" validate:"required,min=1,dive,required"`
	LandlordContact LandlordContactRequest `json:"landlord_contact" validate:"required"`
}

// ListingResponse is the consumer-safe projection: no landlord contact.
type ListingResponse struct {
	ID                 uint64                 `json:"id"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Price              int64                  `json:"price"`
	Address            string                 `json:"address"`
	City               string                 `json:"city"`
	State              string                 `json:"state"`
	Bedrooms           int                    `json:"bedrooms"`
	Bathrooms          int                    `json:"bathrooms"`
	Furnished          bool                   `json:"furnished"`
	SizeSqm            int                    `json:"size_sqm,omitempty"`
	Amenities          []string               `json:"amenities"`
	Images             []string               `json:"images"`
	Status             constant.ListingStatus `json:"status"`
	Verified           bool                   `json:"verified"`
	SubmittedBy        uint64                 `json:"submitted_by"`
	PointsToUnlock     int64                  `json:"points_to_unlock"`
	RequiresPaidPoints bool                   `json:"requires_paid_points"`
	Saved              bool                   `json:"saved"`
	Unlocked           bool                   `json:"unlocked"`
}

type ListingListResponse struct {
	Items      []ListingResponse `json:"items"`
	TotalCount int               `json:"total_count"`
}
