// Package matching implements the donor-eligibility rule and the
// request-to-donor matching algorithm. Both are pure: they read ledger and
// donor state handed to them and never mutate anything.
package matching

import "time"

// MinDonationInterval is the minimum gap between two donations. It is a
// policy parameter, not a medical constant baked into call sites: construct a
// Rule with a different interval to tune it.
const MinDonationInterval = 56 * 24 * time.Hour

// Rule decides whether a donor may currently donate based on the time since
// their last donation. The zero value uses MinDonationInterval.
type Rule struct {
	// MinInterval overrides the default inter-donation gap when positive.
	MinInterval time.Duration
}

// interval returns the effective inter-donation gap.
func (r Rule) interval() time.Duration {
	if r.MinInterval > 0 {
		return r.MinInterval
	}
	return MinDonationInterval
}

// IsEligible reports whether a donor with the given last-donation date may
// donate at instant now. A donor who has never donated (nil lastDonation) is
// always eligible.
func (r Rule) IsEligible(lastDonation *time.Time, now time.Time) bool {
	if lastDonation == nil {
		return true
	}
	return now.Sub(*lastDonation) >= r.interval()
}

// EligibleSince returns the instant from which the donor is (or becomes)
// eligible. For donors who never donated it is the provided fallback
// (typically their registration date), so long-standing registered donors
// sort ahead of fresh registrants.
func (r Rule) EligibleSince(lastDonation *time.Time, fallback time.Time) time.Time {
	if lastDonation == nil {
		return fallback
	}
	return lastDonation.Add(r.interval())
}
