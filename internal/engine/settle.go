package engine

import (
	"math"
	"sort"
	"strings"
)

// partyBalance is a debtor or creditor still carrying a significant balance
// during settlement matching.
type partyBalance struct {
	memberID string
	amount   float64
}

// SuggestSettlements turns a balance set into an ordered list of payments
// that would, if all executed, bring every balance to zero. Matching is
// greedy largest-first: the biggest debtor pays the biggest creditor the
// smaller of the two outstanding amounts. Greedy is not a global minimum on
// transaction count, but it is adequate and deterministic.
//
// An empty result means the group is fully settled. A residual warning is
// returned when unresolvable sub-cent dust forces early termination; the
// caller may re-run after manual reconciliation.
func SuggestSettlements(balances []Balance) ([]Suggestion, []Warning) {
	var debtors, creditors []partyBalance
	for _, b := range balances {
		switch {
		case b.Amount <= -Epsilon:
			debtors = append(debtors, partyBalance{b.MemberID, b.Amount})
		case b.Amount >= Epsilon:
			creditors = append(creditors, partyBalance{b.MemberID, b.Amount})
		}
	}
	sortDebtors(debtors)
	sortCreditors(creditors)

	var suggestions []Suggestion
	for len(debtors) > 0 && len(creditors) > 0 {
		d, c := &debtors[0], &creditors[0]

		transfer := Round2(math.Min(-d.amount, c.amount))
		if transfer < Epsilon {
			// Unresolvable near-zero residual; stop rather than loop on dust.
			break
		}

		suggestions = append(suggestions, Suggestion{
			PayerID: d.memberID,
			PayeeID: c.memberID,
			Amount:  transfer,
		})

		d.amount = Round2(d.amount + transfer)
		c.amount = Round2(c.amount - transfer)

		if d.amount > -Epsilon {
			debtors = debtors[1:]
		} else {
			sortDebtors(debtors)
		}
		if c.amount < Epsilon {
			creditors = creditors[1:]
		} else {
			sortCreditors(creditors)
		}
	}

	var warnings []Warning
	for _, p := range append(debtors, creditors...) {
		warnings = append(warnings, Warning{
			Kind:     WarnResidualSettlement,
			MemberID: p.memberID,
			Message:  "balance left unresolved after settlement matching",
		})
	}
	return suggestions, warnings
}

// sortDebtors orders most negative first; ties break on member id so the
// output is deterministic for equal balances.
func sortDebtors(debtors []partyBalance) {
	sort.Slice(debtors, func(i, j int) bool {
		if debtors[i].amount != debtors[j].amount {
			return debtors[i].amount < debtors[j].amount
		}
		return strings.Compare(debtors[i].memberID, debtors[j].memberID) < 0
	})
}

// sortCreditors orders largest first, with the same member-id tie-break.
func sortCreditors(creditors []partyBalance) {
	sort.Slice(creditors, func(i, j int) bool {
		if creditors[i].amount != creditors[j].amount {
			return creditors[i].amount > creditors[j].amount
		}
		return strings.Compare(creditors[i].memberID, creditors[j].memberID) < 0
	})
}
