package debt

import (
	"strings"
	"time"

	"lunch-ledger-go/internal/domain/entries"
	"lunch-ledger-go/internal/domain/payments"
)

// Policy decides when a lunch entry counts as paid. Exactly one policy is
// active per process and every paid-status consumer (weekly debt, single-entry
// check, member report, export) goes through it.
type Policy string

const (
	// PolicyMilestone treats each member's payments as a monotonic "paid
	// through" watermark: an entry is paid iff its date is on or before the
	// member's latest payment end date. Payment start dates are informational.
	PolicyMilestone Policy = "milestone"

	// PolicyOverlap treats each payment as covering only its own interval: an
	// entry is paid iff some payment's [start, end] contains the entry date.
	// Gaps between non-contiguous payments stay unpaid.
	PolicyOverlap Policy = "overlap"
)

func ParsePolicy(value string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(value))) {
	case PolicyMilestone, "":
		return PolicyMilestone, nil
	case PolicyOverlap:
		return PolicyOverlap, nil
	default:
		return "", ErrUnknownPolicy
	}
}

// entryPaid reports whether an entry dated date for memberID is covered by
// memberPayments under the policy. Under the milestone policy "date ≤ max end"
// is equivalent to "some payment ends on or after date", so both policies
// reduce to a single scan.
func entryPaid(policy Policy, date time.Time, memberPayments []payments.Payment) bool {
	for _, p := range memberPayments {
		switch policy {
		case PolicyOverlap:
			if !p.StartDate.After(date) && !p.EndDate.Before(date) {
				return true
			}
		default:
			if !p.EndDate.Before(date) {
				return true
			}
		}
	}
	return false
}

// paidEntryIDs folds entries and payments into the set of paid entry IDs.
// Pure: no shared state, deterministic for fixed inputs.
func paidEntryIDs(policy Policy, items []entries.EntryWithMember, allPayments []payments.Payment) map[string]struct{} {
	byMember := make(map[string][]payments.Payment)
	for _, p := range allPayments {
		byMember[p.MemberID] = append(byMember[p.MemberID], p)
	}

	paid := make(map[string]struct{})
	for _, item := range items {
		if entryPaid(policy, item.Date, byMember[item.MemberID]) {
			paid[item.ID] = struct{}{}
		}
	}
	return paid
}

// effectivePrice resolves an entry's stored nullable price against the
// request's default. Resolution happens at query time only; the stored value
// stays nullable so a later default change never rewrites history.
func effectivePrice(entry entries.Entry, defaultPrice int) int {
	if entry.Price != nil {
		return *entry.Price
	}
	return defaultPrice
}
