package core

import "math"

// ShareInput is a requested percentage allocation for one household member.
type ShareInput struct {
	MemberID     string
	SharePercent float64
}

// ShareAllocation is the computed owed amount for one member.
type ShareAllocation struct {
	MemberID     string
	SharePercent float64
	Amount       float64
}

// ComputeShares allocates a tab's amount across members by percentage using
// largest-remainder apportionment in cents: each share is floored to whole
// cents and the leftover cents go to the shares with the largest fractional
// remainders (earlier input order breaks ties). The allocations always sum to
// round(total × Σpercent / 100, 2), so a 3-way 33.33% split of 100.00 yields
// 33.33 / 33.33 / 33.33 against a 99.99 target with no drift.
func ComputeShares(total float64, shares []ShareInput) []ShareAllocation {
	if len(shares) == 0 {
		return nil
	}

	var sumPct float64
	for _, s := range shares {
		sumPct += s.SharePercent
	}
	targetCents := toCents(total * sumPct / 100)

	out := make([]ShareAllocation, len(shares))
	remainders := make([]float64, len(shares))
	var allocated int64
	for i, s := range shares {
		exactCents := total * s.SharePercent // (total * pct / 100) * 100
		floor := math.Floor(exactCents)
		out[i] = ShareAllocation{
			MemberID:     s.MemberID,
			SharePercent: s.SharePercent,
			Amount:       fromCents(int64(floor)),
		}
		remainders[i] = exactCents - floor
		allocated += int64(floor)
	}

	// Distribute leftover cents by largest remainder.
	for allocated < targetCents {
		best := -1
		for i, r := range remainders {
			if best == -1 || r > remainders[best] {
				best = i
			}
		}
		if best == -1 {
			break
		}
		out[best].Amount = fromCents(toCents(out[best].Amount) + 1)
		remainders[best] = -1
		allocated++
	}
	return out
}

// InferShareStatus applies the automatic paid inference: a share flips to
// paid once the paid amount covers a positive share amount. An explicit
// status always wins, and paid → pending is a legal reversal.
func InferShareStatus(shareAmount, paidAmount float64, explicit *ShareStatus) ShareStatus {
	if explicit != nil {
		return *explicit
	}
	if shareAmount > 0 && paidAmount >= shareAmount {
		return SharePaid
	}
	return SharePending
}
