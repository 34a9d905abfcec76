package entity

// Transfer statuses. The transition is one-way: a transfer is created
// Pending and commit moves it to Processed, which is terminal.
const (
	TransferStatusPending   = "Pending"
	TransferStatusProcessed = "Processed"
)

// Transfer reallocates item quantities from one location to another.
type Transfer struct {
	Metadata
	Reference      string     `json:"reference"`
	TransferFrom   int64      `json:"transfer_from"`
	TransferTo     int64      `json:"transfer_to"`
	TransferStatus string     `json:"transfer_status"`
	Items          []LineItem `json:"items"`
}
