package core

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/panwartanish/SubSentry/internal/db"
	"github.com/panwartanish/SubSentry/internal/models"
	"github.com/panwartanish/SubSentry/pkg/cache"
)

const analyticsCacheTTL = 5 * time.Minute

func analyticsCacheKey(email string) string { return "analytics:" + email }

// AnalyticsSummary is the full derived-data payload for one user. All
// converted figures are in the viewer's preferred currency; raw costs are
// never summed across mixed currencies.
type AnalyticsSummary struct {
	TotalSubscriptions int                   `json:"totalSubscriptions"`
	Currency           string                `json:"currency"`
	TotalMonthlyCost   float64               `json:"totalMonthlyCost"`
	TotalAnnualCost    float64               `json:"totalAnnualCost"`
	CategoryBreakdown  []CategoryTotal       `json:"categoryBreakdown"`
	CurrencyBreakdown  map[string]float64    `json:"currencyBreakdown"`
	UpcomingRenewals   []models.Subscription `json:"upcomingRenewals"`
	// MonthlyTrend and YearOverYear are illustrative series, not history:
	// see MonthlyTrend / YearOverYear in this package.
	MonthlyTrend []TrendPoint `json:"monthlyTrend"`
	YearOverYear []YearCost   `json:"yearOverYear"`
}

// analyticsService implements AnalyticsService over the record store, with
// an optional read-through cache invalidated by subscription mutations.
type analyticsService struct {
	subs   db.SubscriptionRepository
	users  db.UserRepository
	cache  cache.Cache // optional
	now    func() time.Time
	logger *zap.Logger
}

// NewAnalyticsService creates a new AnalyticsService instance. c may be nil.
func NewAnalyticsService(subs db.SubscriptionRepository, users db.UserRepository, c cache.Cache, logger *zap.Logger) AnalyticsService {
	return &analyticsService{subs: subs, users: users, cache: c, now: time.Now, logger: logger}
}

func (s *analyticsService) Summary(ctx context.Context, email string) (*AnalyticsSummary, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, analyticsCacheKey(email)); err == nil && cached != "" {
			var summary AnalyticsSummary
			if err := json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	// The viewer's preferred currency drives every converted figure. Users
	// without a mirrored profile get the USD default.
	target := models.DefaultPreferredCurrency
	user, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		target = user.PreferredCurrency
	} else if !errors.Is(err, db.ErrKeyNotFound) {
		return nil, err
	}

	subs, err := s.subs.List(ctx, email)
	if err != nil {
		return nil, err
	}

	asOf := s.now().UTC()
	totalMonthly := TotalMonthlyCost(subs, target)
	summary := &AnalyticsSummary{
		TotalSubscriptions: len(subs),
		Currency:           target,
		TotalMonthlyCost:   totalMonthly,
		TotalAnnualCost:    totalMonthly * 12,
		CategoryBreakdown:  CategoryBreakdown(subs, target),
		CurrencyBreakdown:  CurrencyBreakdown(subs),
		UpcomingRenewals:   UpcomingRenewals(subs, asOf),
		MonthlyTrend:       MonthlyTrend(email, totalMonthly, asOf),
		YearOverYear:       YearOverYear(totalMonthly, asOf),
	}

	if s.cache != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, analyticsCacheKey(email), string(encoded), analyticsCacheTTL); err != nil {
				s.logger.Warn("failed to cache analytics summary", zap.String("email", email), zap.Error(err))
			}
		}
	}
	return summary, nil
}
