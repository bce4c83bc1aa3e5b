package model

// QueuedBatch is a fetched set of statements waiting for receipt verification.
type QueuedBatch struct {
	BlockReference uint64      `json:"block_reference"`
	Statements     []Statement `json:"statements"`
	ReceiptURL     string      `json:"receipt_url"`
}
