package model

import "time"

// BurnRequestStatus is the lifecycle state of a BurnRequest.
type BurnRequestStatus string

const (
	// BurnPending marks an escrowed request not yet sent to the bank.
	BurnPending BurnRequestStatus = "pending"
	// BurnSent marks a request whose unpeg instruction was accepted by the bank API.
	BurnSent BurnRequestStatus = "sent"
	// BurnFailed marks a request whose dispatch failed; it is retried.
	BurnFailed BurnRequestStatus = "failed"
	// BurnConfirmed marks a request settled by a bank statement.
	BurnConfirmed BurnRequestStatus = "confirmed"
)

// BurnRequest tracks an off-ledger withdrawal until the bank confirms it.
type BurnRequest struct {
	ID         uint64            `json:"id"`
	Burner     AccountID         `json:"burner"`
	BurnerIBAN IBAN              `json:"burner_iban"`
	DestIBAN   IBAN              `json:"dest_iban"`
	Amount     Amount            `json:"amount"`
	Status     BurnRequestStatus `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`
}

// Dispatchable reports whether the unpeg requester should (re)send the request.
func (r BurnRequest) Dispatchable() bool {
	return r.Status == BurnPending || r.Status == BurnFailed
}
