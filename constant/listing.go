package constant

type ListingStatus string

const (
	ListingStatusDraft     ListingStatus = "draft"
	ListingStatusPending   ListingStatus = "pending_verification"
	ListingStatusAvailable ListingStatus = "available"
	ListingStatusRented    ListingStatus = "rented"
)
