// Package statement turns raw bank statement JSON into validated domain records.
package statement

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

var (
	ErrMalformedDocument    = errors.New("malformed statement document")
	ErrMalformedStatement   = errors.New("malformed statement")
	ErrMalformedTransaction = errors.New("malformed transaction")
	ErrFieldTooLong         = errors.New("field exceeds bound")
	ErrTooManyStatements    = errors.New("too many statements")
	ErrTooManyTransactions  = errors.New("too many transactions in statement")
)

// Limits bounds what a single fetched document may contain.
type Limits struct {
	MaxIBANLength   int
	MaxStringLength int
	MaxStatements   int
	MaxTransactions int
	// Strict aborts the whole document on the first malformed item instead of dropping it.
	Strict bool
}

// DefaultLimits returns the bounds used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{
		MaxIBANLength:   34,
		MaxStringLength: 256,
		MaxStatements:   64,
		MaxTransactions: 128,
	}
}

// Parser is a pure transform from bank JSON to statements.
type Parser struct {
	limits Limits
	logger *zap.Logger
	now    func() time.Time
}

// NewParser returns a Parser enforcing limits.
func NewParser(limits Limits, logger *zap.Logger) *Parser {
	return &Parser{limits: limits, logger: logger.Named("statement"), now: time.Now}
}

type statementDoc struct {
	IBAN     *string           `json:"iban"`
	Balance  *json.Number      `json:"balanceCL"`
	Incoming []json.RawMessage `json:"incomingTransactions"`
	Outgoing []json.RawMessage `json:"outgoingTransactions"`
}

type transactionDoc struct {
	IBAN      *string      `json:"iban"`
	Name      string       `json:"name"`
	Currency  string       `json:"currency"`
	Amount    *json.Number `json:"amount"`
	Reference string       `json:"reference"`
}

// Parse decodes data, an array of statement objects. Null items are skipped.
func (p *Parser) Parse(data []byte) ([]model.Statement, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	stamp := p.now().UTC()
	out := make([]model.Statement, 0, len(items))
	for i, raw := range items {
		if isNull(raw) {
			continue
		}
		if p.limits.MaxStatements > 0 && len(out) >= p.limits.MaxStatements {
			return nil, fmt.Errorf("%w: more than %d", ErrTooManyStatements, p.limits.MaxStatements)
		}

		st, err := p.parseStatement(raw, stamp)
		if err != nil {
			if p.limits.Strict || isBatchFatal(err) {
				return nil, fmt.Errorf("statement %d: %w", i, err)
			}
			p.logger.Warn("dropping malformed statement", zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, st)
	}
	return out, nil
}

func (p *Parser) parseStatement(raw json.RawMessage, stamp time.Time) (model.Statement, error) {
	var doc statementDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Statement{}, fmt.Errorf("%w: %v", ErrMalformedStatement, err)
	}
	if doc.IBAN == nil || *doc.IBAN == "" {
		return model.Statement{}, fmt.Errorf("%w: missing iban", ErrMalformedStatement)
	}
	if err := p.checkLen("iban", *doc.IBAN, p.limits.MaxIBANLength); err != nil {
		return model.Statement{}, fmt.Errorf("%w: %w", ErrMalformedStatement, err)
	}
	if doc.Balance == nil {
		return model.Statement{}, fmt.Errorf("%w: missing balanceCL", ErrMalformedStatement)
	}
	balance, err := model.ParseAmount(doc.Balance.String())
	if err != nil {
		return model.Statement{}, fmt.Errorf("%w: balanceCL: %v", ErrMalformedStatement, err)
	}

	st := model.Statement{
		Account: model.BankAccount{
			IBAN:        model.IBAN(*doc.IBAN),
			Balance:     balance,
			LastUpdated: stamp,
		},
	}

	total := countPresent(doc.Incoming) + countPresent(doc.Outgoing)
	if p.limits.MaxTransactions > 0 && total > p.limits.MaxTransactions {
		return model.Statement{}, fmt.Errorf("%w: %d exceeds %d", ErrTooManyTransactions, total, p.limits.MaxTransactions)
	}

	dropped := 0
	for _, group := range []struct {
		items  []json.RawMessage
		txType model.TxType
	}{
		{items: doc.Incoming, txType: model.TxIncoming},
		{items: doc.Outgoing, txType: model.TxOutgoing},
	} {
		for j, rawTx := range group.items {
			if isNull(rawTx) {
				continue
			}
			tx, err := p.parseTransaction(rawTx, group.txType)
			if err != nil {
				if p.limits.Strict {
					return model.Statement{}, fmt.Errorf("%s transaction %d: %w", group.txType, j, err)
				}
				dropped++
				p.logger.Warn("dropping malformed transaction",
					zap.String("iban", *doc.IBAN),
					zap.String("type", string(group.txType)),
					zap.Int("index", j),
					zap.Error(err),
				)
				continue
			}
			st.Transactions = append(st.Transactions, tx)
		}
	}
	if dropped > 0 && len(st.Transactions) == 0 {
		p.logger.Warn("statement kept without transactions after drops",
			zap.String("iban", *doc.IBAN), zap.Int("dropped", dropped))
	}
	return st, nil
}

func (p *Parser) parseTransaction(raw json.RawMessage, txType model.TxType) (model.Transaction, error) {
	var doc transactionDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Transaction{}, fmt.Errorf("%w: %v", ErrMalformedTransaction, err)
	}
	if doc.IBAN == nil || *doc.IBAN == "" {
		return model.Transaction{}, fmt.Errorf("%w: missing iban", ErrMalformedTransaction)
	}
	if doc.Amount == nil {
		return model.Transaction{}, fmt.Errorf("%w: missing amount", ErrMalformedTransaction)
	}
	for _, f := range []struct {
		name  string
		value string
		limit int
	}{
		{"iban", *doc.IBAN, p.limits.MaxIBANLength},
		{"name", doc.Name, p.limits.MaxStringLength},
		{"currency", doc.Currency, p.limits.MaxStringLength},
		{"reference", doc.Reference, p.limits.MaxStringLength},
	} {
		if err := p.checkLen(f.name, f.value, f.limit); err != nil {
			return model.Transaction{}, fmt.Errorf("%w: %w", ErrMalformedTransaction, err)
		}
	}
	amount, err := model.ParseAmount(doc.Amount.String())
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: amount: %v", ErrMalformedTransaction, err)
	}

	return model.Transaction{
		IBAN:      model.IBAN(*doc.IBAN),
		Name:      doc.Name,
		Currency:  doc.Currency,
		Amount:    amount,
		Reference: doc.Reference,
		Type:      txType,
	}, nil
}

func (p *Parser) checkLen(field, value string, limit int) error {
	if limit > 0 && len(value) > limit {
		return fmt.Errorf("%w: %s has %d bytes, limit %d", ErrFieldTooLong, field, len(value), limit)
	}
	return nil
}

func isBatchFatal(err error) bool {
	return errors.Is(err, ErrTooManyTransactions)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func countPresent(items []json.RawMessage) int {
	n := 0
	for _, raw := range items {
		if !isNull(raw) {
			n++
		}
	}
	return n
}
