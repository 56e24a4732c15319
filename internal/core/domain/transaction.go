package domain

// TransactionStatus is the lifecycle state of a marketplace transaction.
// The transaction store is owned by the checkout subsystem; this core only reads it.
type TransactionStatus string

const (
	TransactionPending       TransactionStatus = "PENDING"
	TransactionPaid          TransactionStatus = "PAID"
	TransactionCompleted     TransactionStatus = "COMPLETED"
	TransactionAccessGranted TransactionStatus = "ACCESS_GRANTED"
	TransactionRefunded      TransactionStatus = "REFUNDED"
)

// CompletedTransactionStatuses is the status set that counts towards revenue,
// settlement windows and reports.
var CompletedTransactionStatuses = []TransactionStatus{
	TransactionPaid,
	TransactionCompleted,
	TransactionAccessGranted,
}

// Seller is the marketplace identity transactions are attributed to.
// The seller store is an external collaborator; only the fields needed for
// reporting are modeled here.
type Seller struct {
	SellerID   string `json:"sellerID"`
	PublicName string `json:"publicName"`
}
