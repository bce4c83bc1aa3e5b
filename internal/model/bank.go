package model

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// ErrInvalidIBAN is returned for IBANs that are empty, too long or malformed.
var ErrInvalidIBAN = errors.New("invalid iban")

var ibanPattern = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z0-9]{1,30}$`)

// IBAN is a bank account identifier, the natural key of off-ledger accounts.
type IBAN string

// ValidateIBAN checks the shape of iban and that it fits into maxLen bytes.
func ValidateIBAN(iban IBAN, maxLen int) error {
	if maxLen > 0 && len(iban) > maxLen {
		return fmt.Errorf("%w: %d bytes exceeds %d", ErrInvalidIBAN, len(iban), maxLen)
	}
	if !ibanPattern.MatchString(string(iban)) {
		return fmt.Errorf("%w: %q", ErrInvalidIBAN, string(iban))
	}
	return nil
}

// TxType tags a statement transaction with its direction.
type TxType string

const (
	TxNone     TxType = "none"
	TxIncoming TxType = "incoming"
	TxOutgoing TxType = "outgoing"
)

// BankAccount is the bank-reported state of one IBAN.
type BankAccount struct {
	IBAN        IBAN
	Balance     Amount
	LastUpdated time.Time
}

// Transaction is a single statement line. It is transient: built per statement and applied once.
type Transaction struct {
	IBAN      IBAN
	Name      string
	Currency  string
	Amount    Amount
	Reference string
	Type      TxType
}

// Statement groups an account with the transactions reported for it.
type Statement struct {
	Account      BankAccount
	Transactions []Transaction
}
