package models

import "time"

// renewalDateLayout is the calendar-date format clients submit.
const renewalDateLayout = "2006-01-02"

// Subscription is one recurring subscription owned by a single user. The
// owning collection is stored whole under "subscriptions:<email>" in
// insertion order.
type Subscription struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Cost        float64    `json:"cost"` // monthly, in Currency units
	Currency    string     `json:"currency"`
	RenewalDate string     `json:"renewalDate"` // calendar date, YYYY-MM-DD
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// RenewalTime parses the stored renewal date. It accepts the calendar-date
// layout and falls back to RFC 3339 for records written by older clients.
func (s Subscription) RenewalTime() (time.Time, bool) {
	if t, err := time.Parse(renewalDateLayout, s.RenewalDate); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, s.RenewalDate); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// SubscriptionDraft carries the client-supplied fields of a new
// subscription. The id and timestamps are assigned server-side.
type SubscriptionDraft struct {
	Name        string  `json:"name"`
	Cost        float64 `json:"cost"`
	Currency    string  `json:"currency"`
	RenewalDate string  `json:"renewalDate"`
	Category    string  `json:"category"`
}

// SubscriptionPatch is a partial update. Only the listed fields may change;
// nil pointers leave the stored value untouched. Requests carrying fields
// outside this set are rejected at decode time.
type SubscriptionPatch struct {
	Name        *string  `json:"name"`
	Cost        *float64 `json:"cost"`
	Currency    *string  `json:"currency"`
	RenewalDate *string  `json:"renewalDate"`
	Category    *string  `json:"category"`
}

// ApplyTo merges the patch onto an existing subscription.
func (p SubscriptionPatch) ApplyTo(s *Subscription) {
	if p.Name != nil {
		s.Name = *p.Name
	}
	if p.Cost != nil {
		s.Cost = *p.Cost
	}
	if p.Currency != nil {
		s.Currency = *p.Currency
	}
	if p.RenewalDate != nil {
		s.RenewalDate = *p.RenewalDate
	}
	if p.Category != nil {
		s.Category = *p.Category
	}
}
