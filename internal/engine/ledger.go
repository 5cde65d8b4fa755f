package engine

import (
	"time"

	"github.com/google/uuid"
)

// ConfirmSettlement turns a suggestion the user confirmed into an immutable
// SettlementPayment ledger entry. The caller is responsible for persisting
// the entry; once folded into ComputeBalances it cancels the underlying
// debt, so the confirmed payment is never suggested again.
func ConfirmSettlement(s Suggestion, groupID string) SettlementPayment {
	return SettlementPayment{
		ID:      uuid.NewString(),
		GroupID: groupID,
		PayerID: s.PayerID,
		PayeeID: s.PayeeID,
		Amount:  Round2(s.Amount),
		Date:    time.Now().UTC(),
	}
}
