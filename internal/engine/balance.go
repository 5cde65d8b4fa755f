package engine

// ComputeBalances folds a group's expense ledger and settlement-payment
// ledger into one net balance per current member. The result is ordered by
// the member roster; a member not involved in any expense has balance 0.
//
// Expenses are zero-sum transfers, so the balances sum to zero within
// Epsilon after folding, and settlement payments preserve that property by
// construction. Payments referencing a removed member are skipped.
func ComputeBalances(members []Member, expenses []Expense, payments []SettlementPayment) ([]Balance, []Warning) {
	totals := make(map[string]float64, len(members))
	currentIDs := make([]string, 0, len(members))
	for _, m := range members {
		totals[m.ID] = 0
		currentIDs = append(currentIDs, m.ID)
	}

	var warnings []Warning
	for _, exp := range expenses {
		if _, current := totals[exp.PayerID]; current && exp.Amount > 0 {
			totals[exp.PayerID] += exp.Amount
		}

		shares, ws := ComputeShares(exp, currentIDs)
		warnings = append(warnings, ws...)
		for participant, share := range shares {
			totals[participant] -= share
		}
	}

	for _, p := range payments {
		_, payerCurrent := totals[p.PayerID]
		_, payeeCurrent := totals[p.PayeeID]
		if !payerCurrent || !payeeCurrent {
			continue
		}
		// The payer has discharged debt; the payee has been paid, reducing
		// what they are still owed.
		totals[p.PayerID] += p.Amount
		totals[p.PayeeID] -= p.Amount
	}

	balances := make([]Balance, 0, len(members))
	for _, m := range members {
		balances = append(balances, Balance{MemberID: m.ID, Amount: Round2(totals[m.ID])})
	}
	return balances, warnings
}
