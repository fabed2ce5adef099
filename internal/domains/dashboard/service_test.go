package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	orders      int
	customers   int
	revenue     map[string]decimal.Decimal // keyed by from-date
	recent      []RecentOrder
	revenueErr  error
	customerErr error
}

func (r *fakeRepo) CountOrdersSince(context.Context, time.Time) (int, error) {
	return r.orders, nil
}

func (r *fakeRepo) CountCustomers(context.Context) (int, error) {
	return r.customers, r.customerErr
}

func (r *fakeRepo) RevenueBetween(_ context.Context, from, _ time.Time) (decimal.Decimal, error) {
	if r.revenueErr != nil {
		return decimal.Zero, r.revenueErr
	}
	return r.revenue[from.Format("2006-01")], nil
}

func (r *fakeRepo) RecentOrders(context.Context, int) ([]RecentOrder, error) {
	return r.recent, nil
}

type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopCache) Delete(context.Context, ...string) error     { return nil }
func (noopCache) DeletePattern(context.Context, string) error { return nil }
func (noopCache) Ping(context.Context) error                  { return nil }

func fixedNow() time.Time {
	return time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo *fakeRepo) *service {
	return &service{repo: repo, cache: noopCache{}, now: fixedNow}
}

func TestMetrics(t *testing.T) {
	t.Run("aggregates all reads", func(t *testing.T) {
		repo := &fakeRepo{
			orders:    12,
			customers: 40,
			revenue: map[string]decimal.Decimal{
				"2025-03": decimal.RequireFromString("1500"),
				"2025-02": decimal.RequireFromString("1000"),
			},
			recent: []RecentOrder{{OrderNumber: "PED-001"}},
		}

		metrics, err := newTestService(repo).Metrics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 12, metrics.TotalOrders)
		assert.Equal(t, 40, metrics.TotalCustomers)
		assert.Equal(t, "50.0", metrics.GrowthPercent)
		require.Len(t, metrics.RecentOrders, 1)
	})

	t.Run("one failing read fails the aggregate", func(t *testing.T) {
		repo := &fakeRepo{customerErr: errors.New("profiles unavailable")}
		_, err := newTestService(repo).Metrics(context.Background())
		assert.Error(t, err)
	})

	t.Run("growth with no previous revenue", func(t *testing.T) {
		repo := &fakeRepo{
			revenue: map[string]decimal.Decimal{"2025-03": decimal.RequireFromString("10")},
		}
		metrics, err := newTestService(repo).Metrics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "100.0", metrics.GrowthPercent)
	})

	t.Run("growth with no revenue at all", func(t *testing.T) {
		metrics, err := newTestService(&fakeRepo{}).Metrics(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "0.0", metrics.GrowthPercent)
	})
}
