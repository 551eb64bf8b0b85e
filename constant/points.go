package constant

type TransactionType string

const (
	TransactionEarned    TransactionType = "earned"
	TransactionSpent     TransactionType = "spent"
	TransactionPurchased TransactionType = "purchased"
	TransactionReferral  TransactionType = "referral"
)

type PointsCurrency string

const (
	PointsFree PointsCurrency = "free"
	PointsPaid PointsCurrency = "paid"
)
