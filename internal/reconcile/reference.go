package reconcile

import (
	"errors"
	"strconv"
	"strings"

	"github.com/goodnatureofminers/fiatramps-backend/internal/identity"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
)

const (
	purposePrefix   = "Purp:"
	ourRefPrefix    = "ourRef:"
	referenceFields = 2
)

// ErrMalformedReference is returned for references without the purpose and ourRef segments.
var ErrMalformedReference = errors.New("reference has fewer than two segments")

// Reference is what a bank reference may carry: the ledger identity of the
// counterparty and the id of the burn request it settles.
type Reference struct {
	Identity    *model.AccountID
	Correlation *uint64
}

// DecodeReference reads "Purp:<identity>; ourRef:<request id>". Either part may
// be free text, in which case it is left nil.
func DecodeReference(reference string) (Reference, error) {
	segments := strings.Split(reference, ";")
	if len(segments) < referenceFields {
		return Reference{}, ErrMalformedReference
	}

	var ref Reference
	if purpose, ok := strings.CutPrefix(strings.TrimSpace(segments[0]), purposePrefix); ok {
		if id, err := identity.Decode(strings.TrimSpace(purpose)); err == nil {
			ref.Identity = &id
		}
	}
	if token, ok := strings.CutPrefix(strings.TrimSpace(segments[1]), ourRefPrefix); ok {
		if id, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64); err == nil {
			ref.Correlation = &id
		}
	}
	return ref, nil
}

// EncodePurpose renders the purpose line of an unpeg instruction.
func EncodePurpose(account model.AccountID, requestID uint64) string {
	return purposePrefix + string(account) + "; " + ourRefPrefix + strconv.FormatUint(requestID, 10)
}
