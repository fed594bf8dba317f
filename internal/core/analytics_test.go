package core

import (
	"math"
	"testing"
	"time"

	"github.com/panwartanish/SubSentry/internal/models"
)

func TestConvertIdentity(t *testing.T) {
	for _, c := range models.Currencies {
		got := Convert(42.5, c.Code, c.Code)
		if math.Abs(got-42.5) > 1e-9 {
			t.Errorf("Convert(42.5, %s, %s) = %v, want 42.5", c.Code, c.Code, got)
		}
	}
}

func TestConvertRoundTrip(t *testing.T) {
	for _, from := range models.Currencies {
		for _, to := range models.Currencies {
			got := Convert(Convert(99.99, from.Code, to.Code), to.Code, from.Code)
			if math.Abs(got-99.99) > 1e-9 {
				t.Errorf("round trip %s->%s->%s = %v, want 99.99", from.Code, to.Code, from.Code, got)
			}
		}
	}
}

func TestConvertRoutedThroughBase(t *testing.T) {
	// EUR -> GBP must be amount / 0.92 * 0.79, never a direct cross-rate.
	got := Convert(92, "EUR", "GBP")
	want := 92.0 / 0.92 * 0.79
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Convert(92, EUR, GBP) = %v, want %v", got, want)
	}
}

func TestConvertUnknownCodeFallsBackToBase(t *testing.T) {
	if got := Convert(10, "XXX", "USD"); math.Abs(got-10) > 1e-9 {
		t.Errorf("Convert(10, XXX, USD) = %v, want 10", got)
	}
}

func TestTotalMonthlyCostOrderInvariant(t *testing.T) {
	subs := []models.Subscription{
		{Name: "a", Cost: 10, Currency: "USD"},
		{Name: "b", Cost: 20, Currency: "EUR"},
		{Name: "c", Cost: 1500, Currency: "JPY"},
	}
	reversed := []models.Subscription{subs[2], subs[1], subs[0]}

	a := TotalMonthlyCost(subs, "USD")
	b := TotalMonthlyCost(reversed, "USD")
	if math.Abs(a-b) > 1e-9 {
		t.Errorf("total changed under reordering: %v vs %v", a, b)
	}
}

func TestCategoryBreakdown(t *testing.T) {
	subs := []models.Subscription{
		{Name: "gym", Cost: 30, Currency: "USD", Category: "Health"},
		{Name: "netflix", Cost: 15, Currency: "USD", Category: "Entertainment"},
		{Name: "hbo", Cost: 10, Currency: "USD", Category: "Entertainment"},
		{Name: "mystery", Cost: 5, Currency: "USD", Category: "NotARealCategory"},
	}

	breakdown := CategoryBreakdown(subs, "USD")

	want := []struct {
		category string
		total    float64
	}{
		{"Entertainment", 25},
		{"Health", 30},
		{"Other", 5}, // unknown categories fold into Other
	}
	if len(breakdown) != len(want) {
		t.Fatalf("got %d categories, want %d: %+v", len(breakdown), len(want), breakdown)
	}
	for i, w := range want {
		if breakdown[i].Category != w.category {
			t.Errorf("breakdown[%d].Category = %s, want %s (enum order)", i, breakdown[i].Category, w.category)
		}
		if math.Abs(breakdown[i].Total-w.total) > 1e-9 {
			t.Errorf("breakdown[%d].Total = %v, want %v", i, breakdown[i].Total, w.total)
		}
		if breakdown[i].Color == "" {
			t.Errorf("breakdown[%d] missing display color", i)
		}
	}
}

func TestUpcomingRenewalsBoundary(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name        string
		renewalDate string
		want        bool
	}{
		{"today", "2026-03-10", true},
		{"in three days", "2026-03-13", true},
		{"exactly seven days", "2026-03-17", true},
		{"exactly eight days", "2026-03-18", false},
		{"yesterday", "2026-03-09", false},
		{"unparseable date", "not-a-date", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subs := []models.Subscription{{ID: "s1", Name: "x", RenewalDate: tt.renewalDate}}
			got := UpcomingRenewals(subs, asOf)
			if included := len(got) == 1; included != tt.want {
				t.Errorf("renewalDate %s: included = %v, want %v", tt.renewalDate, included, tt.want)
			}
		})
	}
}

func TestUrgencyLevel(t *testing.T) {
	tests := []struct {
		days int
		want Urgency
	}{
		{-5, UrgencyOverdue},
		{-1, UrgencyOverdue},
		{0, UrgencyCritical},
		{3, UrgencyCritical},
		{4, UrgencyWarning},
		{7, UrgencyWarning},
		{8, UrgencyInfo},
		{14, UrgencyInfo},
		{15, UrgencySafe},
		{90, UrgencySafe},
	}
	for _, tt := range tests {
		if got := UrgencyLevel(tt.days); got != tt.want {
			t.Errorf("UrgencyLevel(%d) = %s, want %s", tt.days, got, tt.want)
		}
	}
}

func TestNetflixScenario(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	sub := models.Subscription{
		ID:          "netflix",
		Name:        "Netflix",
		Cost:        15.49,
		Currency:    "USD",
		Category:    "Entertainment",
		RenewalDate: "2026-03-13", // three days out
	}

	days, ok := DaysUntilRenewal(sub.RenewalDate, asOf)
	if !ok {
		t.Fatal("renewal date failed to parse")
	}
	if got := UrgencyLevel(days); got != UrgencyCritical {
		t.Errorf("UrgencyLevel = %s, want critical", got)
	}
	if total := TotalMonthlyCost([]models.Subscription{sub}, "USD"); math.Abs(total-15.49) > 1e-9 {
		t.Errorf("TotalMonthlyCost = %v, want 15.49", total)
	}
}

func TestMonthlyTrendIsDeterministic(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	a := MonthlyTrend("a@example.com", 100, asOf)
	b := MonthlyTrend("a@example.com", 100, asOf)
	if len(a) != 6 || len(b) != 6 {
		t.Fatalf("expected 6 trend points, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("trend point %d differs across calls: %+v vs %+v", i, a[i], b[i])
		}
	}

	// Current month carries the real total; earlier months are scaled.
	last := a[5]
	if last.Month != "Mar" || math.Abs(last.Cost-100) > 1e-9 {
		t.Errorf("current month point = %+v, want Mar / 100", last)
	}
	for _, p := range a[:5] {
		if p.Cost < 85 || p.Cost >= 115 {
			t.Errorf("illustrative point %+v outside [85, 115)", p)
		}
	}
}

func TestYearOverYear(t *testing.T) {
	asOf := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	got := YearOverYear(100, asOf)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Year != "2025" || math.Abs(got[0].Cost-75) > 1e-9 {
		t.Errorf("previous year = %+v, want 2025 / 75", got[0])
	}
	if got[1].Year != "2026" || math.Abs(got[1].Cost-100) > 1e-9 {
		t.Errorf("current year = %+v, want 2026 / 100", got[1])
	}
}
