package model

// AccountID identifies a ledger account.
type AccountID string

// Origin is the caller of a host operation.
type Origin struct {
	Account AccountID
	Root    bool
}

// Signed returns an origin for a regular signed caller.
func Signed(account AccountID) Origin {
	return Origin{Account: account}
}

// RootOrigin returns the administrative origin.
func RootOrigin() Origin {
	return Origin{Root: true}
}

// DestinationKind selects where a transfer goes.
type DestinationKind string

const (
	DestIBAN     DestinationKind = "iban"
	DestAccount  DestinationKind = "account"
	DestWithdraw DestinationKind = "withdraw"
)

// Destination is the target of a transfer operation.
type Destination struct {
	Kind    DestinationKind
	IBAN    IBAN
	Account AccountID
}
