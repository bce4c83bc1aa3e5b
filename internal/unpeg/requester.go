// Package unpeg dispatches pending burn requests to the bank as payment instructions.
package unpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/ratelimit"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/bank"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/reconcile"
)

// PaymentDefaults are the fixed fields of every payment instruction.
type PaymentDefaults struct {
	ClearingSystemMemberID string
	Currency               string
	NationalPayment        bool
	RecipientBankName      string
	RecipientName          string
	RecipientStreet        string
	RecipientStreetNr      string
	RecipientZip           string
	RecipientCity          string
	RecipientCountry       string
}

// DefaultPaymentDefaults returns the values the bank sandbox expects.
func DefaultPaymentDefaults() PaymentDefaults {
	return PaymentDefaults{
		ClearingSystemMemberID: "HYPLCH22",
		Currency:               "EUR",
		NationalPayment:        true,
		RecipientBankName:      "Hyp",
		RecipientName:          "e",
		RecipientStreet:        "e",
		RecipientStreetNr:      "25",
		RecipientZip:           "6340",
		RecipientCity:          "e",
		RecipientCountry:       "CH",
	}
}

// Summary counts the outcome of one dispatch pass.
type Summary struct {
	Sent   int
	Failed int
}

// Requester posts every dispatchable burn request once per pass.
type Requester struct {
	ledger   BurnLedger
	bank     Bank
	defaults PaymentDefaults
	limiter  ratelimit.Limiter
	logger   *zap.Logger
}

// NewRequester builds a Requester. rps <= 0 disables pacing.
func NewRequester(ledger BurnLedger, bank Bank, defaults PaymentDefaults, rps int, logger *zap.Logger) *Requester {
	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Requester{
		ledger:   ledger,
		bank:     bank,
		defaults: defaults,
		limiter:  limiter,
		logger:   logger.Named("unpeg"),
	}
}

// ProcessBurnRequests posts an instruction for every pending or failed request in id order.
// HTTP 200 marks the request sent; any other outcome marks it failed. Failed requests are
// picked up again on the next pass, never within this one.
func (r *Requester) ProcessBurnRequests(ctx context.Context) (Summary, error) {
	var summary Summary

	requests, err := r.ledger.Pending(ctx)
	if err != nil {
		return summary, fmt.Errorf("list pending burn requests: %w", err)
	}
	if len(requests) == 0 {
		r.logger.Debug("no burn requests to dispatch")
		return summary, nil
	}

	var errs []error
	for _, req := range requests {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !req.Dispatchable() {
			continue
		}

		r.limiter.Take()
		logger := r.logger.With(zap.Uint64("request_id", req.ID), zap.String("dest_iban", string(req.DestIBAN)))

		postErr := r.bank.Unpeg(ctx, r.Instruction(req))
		if postErr == nil {
			summary.Sent++
			if _, err := r.ledger.MarkSent(ctx, req.ID); err != nil {
				logger.Error("bank accepted unpeg but request could not be marked sent", zap.Error(err))
				errs = append(errs, fmt.Errorf("mark %d sent: %w", req.ID, err))
			}
			continue
		}

		summary.Failed++
		logger.Warn("unpeg request rejected", zap.Error(postErr))
		if _, err := r.ledger.MarkFailed(ctx, req.ID); err != nil {
			logger.Error("mark burn request failed", zap.Error(err))
			errs = append(errs, fmt.Errorf("mark %d failed: %w", req.ID, err))
		}
	}

	r.logger.Info("burn requests dispatched",
		zap.Int("sent", summary.Sent),
		zap.Int("failed", summary.Failed))

	return summary, errors.Join(errs...)
}

// Instruction renders the payment instruction for a burn request.
func (r *Requester) Instruction(req model.BurnRequest) bank.UnpegInstruction {
	d := r.defaults
	return bank.UnpegInstruction{
		Amount:                 json.Number(req.Amount.Decimal().String()),
		ClearingSystemMemberID: d.ClearingSystemMemberID,
		Currency:               d.Currency,
		NationalPayment:        d.NationalPayment,
		OurReference:           strconv.FormatUint(req.ID, 10),
		Purpose:                reconcile.EncodePurpose(req.Burner, req.ID),
		RecipientBankName:      d.RecipientBankName,
		RecipientCity:          d.RecipientCity,
		RecipientCountry:       d.RecipientCountry,
		RecipientName:          d.RecipientName,
		RecipientIBAN:          string(req.DestIBAN),
		RecipientStreet:        d.RecipientStreet,
		RecipientStreetNr:      d.RecipientStreetNr,
		RecipientZip:           d.RecipientZip,
	}
}
