// Package offers decides whether a discount offer is currently eligible for display.
//
// Evaluation is a pure function of the offer, the current time and the caller's
// context. Nothing is cached: callers re-evaluate on every request because the date
// and an agent's booking count move between calls.
package offers

import (
	"slices"
	"time"

	"github.com/voyagedesk/travel-api/internal/domain"
)

// Minimum and maximum accepted minNights; offers outside this range are not shown
const (
	MinNightsLowerBound = 1
	MinNightsUpperBound = 10
)

// TransportationMinStayDays is the stay threshold a transportation offer must declare
const TransportationMinStayDays = 5

// Context carries everything about the caller that the rules depend on
type Context struct {
	// AgentID identifies the logged-in agent; empty for anonymous callers
	AgentID string
	// BookingCount is the agent's number of bookings
	BookingCount int
	// SelectedHotelID is the hotel the caller is currently looking at, if any
	SelectedHotelID string
	// Candidates is the full offer list being displayed. Fallback (libert) offers
	// are only eligible when no other candidate is.
	Candidates []domain.Discount
}

// Reason explains the outcome of an evaluation
type Reason string

const (
	ReasonEligible             Reason = "eligible"
	ReasonInactive             Reason = "inactive"
	ReasonNotYetValid          Reason = "not_yet_valid"
	ReasonExpired              Reason = "expired"
	ReasonOutsideBookingWindow Reason = "outside_booking_window"
	ReasonOutsideStayPeriod    Reason = "outside_stay_period"
	ReasonMinNightsOutOfRange  Reason = "min_nights_out_of_range"
	ReasonOutOfSeason          Reason = "out_of_season"
	ReasonAgentNotEligible     Reason = "agent_not_eligible"
	ReasonAgentAlreadyUsed     Reason = "agent_already_used"
	ReasonHotelNotApplicable   Reason = "hotel_not_applicable"
	ReasonNotEnoughBookings    Reason = "not_enough_bookings"
	ReasonStayTooShort         Reason = "min_stay_days_too_short"
	ReasonNotDefault           Reason = "not_default"
	ReasonOtherOfferEligible   Reason = "other_offer_eligible"
	ReasonUnknownType          Reason = "unknown_type"
)

// Evaluate reports whether offer should be shown at time now
func Evaluate(offer *domain.Discount, now time.Time, c Context) bool {
	return Explain(offer, now, c) == ReasonEligible
}

// Filter returns the eligible offers of candidates, in input order.
// c.Candidates is replaced by candidates for the fallback rule.
func Filter(candidates []domain.Discount, now time.Time, c Context) []domain.Discount {
	c.Candidates = candidates
	eligible := make([]domain.Discount, 0, len(candidates))
	for i := range candidates {
		if Evaluate(&candidates[i], now, c) {
			eligible = append(eligible, candidates[i])
		}
	}
	return eligible
}

// Explain runs the checks in order and returns the first failing one,
// or ReasonEligible when every check passes.
func Explain(offer *domain.Discount, now time.Time, c Context) Reason {
	if reason := checkCommon(offer, now); reason != ReasonEligible {
		return reason
	}

	cond := offer.Conditions.Data()

	switch offer.DiscountType {
	case domain.DiscountTypePercentage:
		return ReasonEligible

	case domain.DiscountTypeSeasonal:
		if slices.Contains(cond.SeasonalMonths, int(now.UTC().Month())) {
			return ReasonEligible
		}
		return ReasonOutOfSeason

	case domain.DiscountTypeExclusive:
		return checkExclusive(offer, cond, c)

	case domain.DiscountTypeTransportation:
		// Compares the offer's own threshold, not a booking's stay length
		if cond.MinStayDays != nil && *cond.MinStayDays >= TransportationMinStayDays {
			return ReasonEligible
		}
		return ReasonStayTooShort

	case domain.DiscountTypeLibert:
		if !cond.IsDefault {
			return ReasonNotDefault
		}
		if anyOtherEligible(now, c) {
			return ReasonOtherOfferEligible
		}
		return ReasonEligible

	default:
		return ReasonUnknownType
	}
}

// checkCommon applies the gates shared by every offer type
func checkCommon(offer *domain.Discount, now time.Time) Reason {
	if !offer.Active {
		return ReasonInactive
	}

	today := dateOf(now)
	if offer.ValidFrom != nil && today.Before(dateOf(*offer.ValidFrom)) {
		return ReasonNotYetValid
	}
	if offer.ValidTo != nil && today.After(dateOf(*offer.ValidTo)) {
		return ReasonExpired
	}

	cond := offer.Conditions.Data()
	if cond.BookingWindow.IsSet() && !within(today, cond.BookingWindow) {
		return ReasonOutsideBookingWindow
	}
	if cond.StayPeriod.IsSet() && !within(today, cond.StayPeriod) {
		return ReasonOutsideStayPeriod
	}
	if cond.MinNights != nil && (*cond.MinNights < MinNightsLowerBound || *cond.MinNights > MinNightsUpperBound) {
		return ReasonMinNightsOutOfRange
	}
	return ReasonEligible
}

func checkExclusive(offer *domain.Discount, cond domain.DiscountConditions, c Context) Reason {
	if c.AgentID == "" || !slices.Contains(offer.EligibleAgents, c.AgentID) {
		return ReasonAgentNotEligible
	}
	if slices.Contains(offer.UsedAgents, c.AgentID) {
		return ReasonAgentAlreadyUsed
	}
	if len(offer.ApplicableHotels) > 0 && !slices.Contains(offer.ApplicableHotels, c.SelectedHotelID) {
		return ReasonHotelNotApplicable
	}
	if cond.MinBookings != nil && c.BookingCount < *cond.MinBookings {
		return ReasonNotEnoughBookings
	}
	return ReasonEligible
}

// anyOtherEligible evaluates every non-libert candidate under the same rules.
// Libert offers are skipped so the recursion is one level deep.
func anyOtherEligible(now time.Time, c Context) bool {
	for i := range c.Candidates {
		other := &c.Candidates[i]
		if other.DiscountType == domain.DiscountTypeLibert {
			continue
		}
		if Evaluate(other, now, c) {
			return true
		}
	}
	return false
}

// dateOf truncates t to its UTC calendar date
func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func within(day time.Time, r *domain.DateRange) bool {
	return !day.Before(dateOf(*r.Start)) && !day.After(dateOf(*r.End))
}
