package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"storefront-admin/pkg/cache"
)

const (
	metricsCacheKey = "dashboard:metrics"
	metricsCacheTTL = 5 * time.Minute
	recentLimit     = 5
)

// Service aggregates the dashboard metrics.
type Service interface {
	Metrics(ctx context.Context) (*Metrics, error)
}

type service struct {
	repo  Repository
	cache cache.Cache
	now   func() time.Time
}

func NewService(repo Repository, c cache.Cache) Service {
	return &service{repo: repo, cache: c, now: time.Now}
}

// Metrics fans out the independent reads concurrently and joins them once
// all complete. Any single failure fails the whole aggregate; there is no
// partial dashboard.
func (s *service) Metrics(ctx context.Context) (*Metrics, error) {
	var cached Metrics
	if found, err := s.cache.Get(ctx, metricsCacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	prevMonthStart := monthStart.AddDate(0, -1, 0)

	var (
		orders      int
		customers   int
		revenue     decimal.Decimal
		prevRevenue decimal.Decimal
		recent      []RecentOrder
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.repo.CountOrdersSince(gctx, monthStart)
		return
	})
	g.Go(func() (err error) {
		customers, err = s.repo.CountCustomers(gctx)
		return
	})
	g.Go(func() (err error) {
		revenue, err = s.repo.RevenueBetween(gctx, monthStart, now.AddDate(0, 0, 1))
		return
	})
	g.Go(func() (err error) {
		prevRevenue, err = s.repo.RevenueBetween(gctx, prevMonthStart, monthStart)
		return
	})
	g.Go(func() (err error) {
		recent, err = s.repo.RecentOrders(gctx, recentLimit)
		return
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	metrics := &Metrics{
		TotalOrders:    orders,
		TotalCustomers: customers,
		Revenue:        revenue,
		GrowthPercent:  growthPercent(prevRevenue, revenue),
		RecentOrders:   recent,
	}

	if err := s.cache.Set(ctx, metricsCacheKey, metrics, metricsCacheTTL); err != nil {
		log.Warn().Err(err).Msg("failed to cache dashboard metrics")
	}
	return metrics, nil
}

// growthPercent compares this month's revenue with the previous month's.
// With no previous revenue, any current revenue counts as 100% growth.
func growthPercent(previous, current decimal.Decimal) string {
	if previous.IsZero() {
		if current.IsPositive() {
			return "100.0"
		}
		return "0.0"
	}
	growth, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
	return fmt.Sprintf("%.1f", growth)
}
