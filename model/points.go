package model

import (
	"time"

	"github.com/Psybah/housify-expo-sub000/constant"
)

// PointsTransaction is an append-only ledger row; never updated or deleted.
type PointsTransaction struct {
	ID               uint64                   `db:"id" json:"id"`
	UserID           uint64                   `db:"user_id" json:"user_id"`
	Amount           int64                    `db:"amount" json:"amount"`
	Type             constant.TransactionType `db:"type" json:"type"`
	PointsType       constant.PointsCurrency  `db:"points_type" json:"points_type"`
	Description      string                   `db:"description" json:"description"`
	RelatedListingID *uint64                  `db:"related_listing_id" json:"related_listing_id,omitempty"`
	CreatedAt        time.Time                `db:"created_at" json:"created_at"`
}

// RecordRequest is the ledger-level write payload. Amount is always
// positive; Type decides the sign applied to the balance.
type RecordRequest struct {
	UserID           uint64
	Amount           int64
	Type             constant.TransactionType
	PointsType       constant.PointsCurrency
	Description      string
	RelatedListingID *uint64
}

// PointsPackage is a static catalog row for the purchase flow.
type PointsPackage struct {
	ID       uint64  `db:"id" json:"id"`
	Name     string  `db:"name" json:"name"`
	Amount   int64   `db:"amount" json:"amount"`
	Price    float64 `db:"price" json:"price"`
	Bonus    int64   `db:"bonus" json:"bonus"`
	Listings int     `db:"listings" json:"listings"`
}

type PurchaseRequest struct {
	PackageID uint64 `json:"package_id" validate:"required"`
}

type TransactionListResponse struct {
	Items      []PointsTransaction `json:"items"`
	TotalCount int                 `json:"total_count"`
}

// UnlockResult reports the outcome of an unlock attempt.
type UnlockResult struct {
	ListingID        uint64 `json:"listing_id"`
	AlreadyUnlocked  bool   `json:"already_unlocked"`
	PointsSpent      int64  `json:"points_spent"`
	RemainingBalance int64  `json:"remaining_balance"`
}
