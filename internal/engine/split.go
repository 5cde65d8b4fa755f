package engine

// ComputeShares calculates each participant's owed amount for one expense,
// restricted to the participants that are still current group members. A
// participant removed from the group is silently excluded, so the expense
// only debits the remaining members going forward.
//
// For EQUAL, PERCENTAGE and SHARES the rounding remainder is assigned to the
// first included participant in the expense's original ordering, so the
// shares always sum to the expense amount exactly to the cent. FIXED_AMOUNT
// uses the stored amounts as-is: once an expense is accepted its split
// amounts are authoritative, even if they no longer sum to the total.
//
// Degenerate inputs (missing raw inputs, non-positive share total) degrade
// to an equal split and are reported as warnings rather than errors;
// expenses reaching this point are assumed already validated.
func ComputeShares(exp Expense, currentMemberIDs []string) (Shares, []Warning) {
	included := includedParticipants(exp.Participants, currentMemberIDs)
	if len(included) == 0 {
		return Shares{}, nil
	}

	switch exp.Strategy {
	case SplitFixedAmount:
		return fixedAmountShares(exp, included)
	case SplitPercentage:
		return percentageShares(exp, included)
	case SplitShares:
		return weightedShares(exp, included)
	default:
		return equalShares(exp.Amount, included), nil
	}
}

// includedParticipants filters participants to current members, preserving
// the expense's original selection order.
func includedParticipants(participants, currentMemberIDs []string) []string {
	current := make(map[string]bool, len(currentMemberIDs))
	for _, id := range currentMemberIDs {
		current[id] = true
	}
	included := make([]string, 0, len(participants))
	for _, id := range participants {
		if current[id] {
			included = append(included, id)
		}
	}
	return included
}

// equalShares divides amount evenly, assigning the rounding remainder to the
// first participant so the shares sum to amount exactly.
func equalShares(amount float64, included []string) Shares {
	per := Round2(amount / float64(len(included)))
	shares := make(Shares, len(included))
	for _, id := range included {
		shares[id] = per
	}
	reconcile(shares, amount, included)
	return shares
}

func fixedAmountShares(exp Expense, included []string) (Shares, []Warning) {
	if exp.RawInputs == nil {
		return equalShares(exp.Amount, included), []Warning{{
			Kind:      WarnMissingSplitInputs,
			ExpenseID: exp.ID,
			Message:   "fixed-amount expense has no split amounts, falling back to equal split",
		}}
	}

	shares := make(Shares, len(included))
	sum := 0.0
	for _, id := range included {
		shares[id] = Round2(exp.RawInputs[id])
		sum += shares[id]
	}

	// No reconciliation: the stored amounts are authoritative. A mismatch is
	// only surfaced for visibility.
	var warnings []Warning
	if !nearZero(Round2(sum) - Round2(exp.Amount)) {
		warnings = append(warnings, Warning{
			Kind:      WarnSplitSumMismatch,
			ExpenseID: exp.ID,
			Message:   "stored split amounts do not sum to the expense total",
		})
	}
	return shares, warnings
}

func percentageShares(exp Expense, included []string) (Shares, []Warning) {
	if exp.RawInputs == nil {
		return equalShares(exp.Amount, included), []Warning{{
			Kind:      WarnMissingSplitInputs,
			ExpenseID: exp.ID,
			Message:   "percentage expense has no split percentages, falling back to equal split",
		}}
	}

	shares := make(Shares, len(included))
	for _, id := range included {
		shares[id] = Round2(exp.Amount * exp.RawInputs[id] / 100)
	}
	reconcile(shares, exp.Amount, included)
	return shares, nil
}

func weightedShares(exp Expense, included []string) (Shares, []Warning) {
	if exp.RawInputs == nil {
		return equalShares(exp.Amount, included), []Warning{{
			Kind:      WarnMissingSplitInputs,
			ExpenseID: exp.ID,
			Message:   "shares expense has no split weights, falling back to equal split",
		}}
	}

	total := 0.0
	for _, id := range included {
		total += exp.RawInputs[id]
	}
	if total <= 0 {
		return equalShares(exp.Amount, included), []Warning{{
			Kind:      WarnNonPositiveShareTotal,
			ExpenseID: exp.ID,
			Message:   "share weights sum to zero or less, falling back to equal split",
		}}
	}

	shares := make(Shares, len(included))
	for _, id := range included {
		shares[id] = Round2(exp.Amount * exp.RawInputs[id] / total)
	}
	reconcile(shares, exp.Amount, included)
	return shares, nil
}

// reconcile assigns the rounding remainder (amount minus the sum of the
// already-rounded shares) to the first included participant. Summing
// independently-rounded fractions can miss the target by a cent or two;
// this correction is what keeps the split-sum invariant exact.
func reconcile(shares Shares, amount float64, included []string) {
	sum := 0.0
	for _, id := range included {
		sum += shares[id]
	}
	remainder := Round2(Round2(amount) - Round2(sum))
	if remainder != 0 {
		first := included[0]
		shares[first] = Round2(shares[first] + remainder)
	}
}
