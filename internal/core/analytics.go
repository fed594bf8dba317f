package core

import (
	"hash/fnv"
	"math"
	"time"

	"github.com/panwartanish/SubSentry/internal/models"
)

// Pure derived-data computations over a subscription sequence and the fixed
// currency table. Nothing here touches storage.

// Convert converts an amount between currency codes, always routed through
// the USD base unit (amount / rate[from] * rate[to]), never a direct
// cross-rate. Unknown codes fall back to the base rate.
func Convert(amount float64, fromCode, toCode string) float64 {
	usd := amount / models.CurrencyRate(fromCode)
	return usd * models.CurrencyRate(toCode)
}

// TotalMonthlyCost sums all subscription costs converted into the target
// currency.
func TotalMonthlyCost(subs []models.Subscription, targetCurrency string) float64 {
	var total float64
	for _, sub := range subs {
		total += Convert(sub.Cost, sub.Currency, targetCurrency)
	}
	return total
}

// CategoryTotal is one converted per-category sum, with its display color.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Color    string  `json:"color"`
}

// CategoryBreakdown sums converted costs per category, in category enum
// order, keeping only categories with a positive sum. Subscriptions with an
// unknown or empty category count toward "Other".
func CategoryBreakdown(subs []models.Subscription, targetCurrency string) []CategoryTotal {
	totals := make(map[string]float64)
	for _, sub := range subs {
		name := sub.Category
		if !models.IsKnownCategory(name) {
			name = models.DefaultCategory
		}
		totals[name] += Convert(sub.Cost, sub.Currency, targetCurrency)
	}

	breakdown := make([]CategoryTotal, 0, len(models.Categories))
	for _, cat := range models.Categories {
		if totals[cat.Name] > 0 {
			breakdown = append(breakdown, CategoryTotal{Category: cat.Name, Total: totals[cat.Name], Color: cat.Color})
		}
	}
	return breakdown
}

// CurrencyBreakdown sums raw (unconverted) costs per currency code.
func CurrencyBreakdown(subs []models.Subscription) map[string]float64 {
	totals := make(map[string]float64)
	for _, sub := range subs {
		code := sub.Currency
		if code == "" {
			code = models.DefaultPreferredCurrency
		}
		totals[code] += sub.Cost
	}
	return totals
}

// DaysUntilRenewal returns ceil((renewalDate - asOf) in days). The second
// return is false when the renewal date does not parse.
func DaysUntilRenewal(renewalDate string, asOf time.Time) (int, bool) {
	s := models.Subscription{RenewalDate: renewalDate}
	renew, ok := s.RenewalTime()
	if !ok {
		return 0, false
	}
	return int(math.Ceil(renew.Sub(asOf).Hours() / 24)), true
}

// UpcomingRenewals returns the subsequence renewing within the 0-7 day
// window from asOf, both bounds inclusive. Past renewals are excluded.
func UpcomingRenewals(subs []models.Subscription, asOf time.Time) []models.Subscription {
	upcoming := []models.Subscription{}
	for _, sub := range subs {
		days, ok := DaysUntilRenewal(sub.RenewalDate, asOf)
		if ok && days >= 0 && days <= 7 {
			upcoming = append(upcoming, sub)
		}
	}
	return upcoming
}

// Urgency classifies how soon a renewal is due. Display-only, never
// persisted.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyCritical Urgency = "critical"
	UrgencyWarning  Urgency = "warning"
	UrgencyInfo     Urgency = "info"
	UrgencySafe     Urgency = "safe"
)

// UrgencyLevel maps days-until-renewal onto an urgency step.
func UrgencyLevel(daysUntilRenewal int) Urgency {
	switch {
	case daysUntilRenewal < 0:
		return UrgencyOverdue
	case daysUntilRenewal <= 3:
		return UrgencyCritical
	case daysUntilRenewal <= 7:
		return UrgencyWarning
	case daysUntilRenewal <= 14:
		return UrgencyInfo
	default:
		return UrgencySafe
	}
}

// TrendPoint is one month of the spending trend series.
type TrendPoint struct {
	Month string  `json:"month"`
	Cost  float64 `json:"cost"`
}

// MonthlyTrend produces a six-month spending series ending at asOf. No
// historical snapshots are stored, so past months are illustrative figures:
// the current total scaled by a variation in [0.85, 1.15) derived from a
// hash of the owner and month, which keeps the series stable across
// requests.
func MonthlyTrend(owner string, totalMonthly float64, asOf time.Time) []TrendPoint {
	points := make([]TrendPoint, 0, 6)
	for i := 5; i >= 0; i-- {
		month := asOf.AddDate(0, -i, 0)
		variation := 1.0
		if i > 0 {
			variation = 0.85 + 0.3*hashFraction(owner+month.Format("2006-01"))
		}
		points = append(points, TrendPoint{
			Month: month.Format("Jan"),
			Cost:  math.Round(totalMonthly*variation*100) / 100,
		})
	}
	return points
}

// YearCost is one year of the year-over-year comparison.
type YearCost struct {
	Year string  `json:"year"`
	Cost float64 `json:"cost"`
}

// YearOverYear compares the current total against an illustrative
// previous-year figure, fixed at 75% of the current total.
func YearOverYear(totalMonthly float64, asOf time.Time) []YearCost {
	year := asOf.Year()
	return []YearCost{
		{Year: formatYear(year - 1), Cost: math.Round(totalMonthly*0.75*100) / 100},
		{Year: formatYear(year), Cost: math.Round(totalMonthly*100) / 100},
	}
}

func formatYear(y int) string {
	return time.Date(y, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

// hashFraction maps a string onto [0, 1).
func hashFraction(s string) float64 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return float64(h.Sum32()%1000) / 1000
}
