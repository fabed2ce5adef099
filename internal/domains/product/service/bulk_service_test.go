package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domains/product/model"
)

func bulkRequest(action string, n int) model.BulkActionRequest {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = uuid.NewString()
	}
	return model.BulkActionRequest{Action: action, IDs: ids}
}

func TestBulkApply(t *testing.T) {
	t.Run("activate reports affected count", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewBulkService(repo, noopCache{}, nil)

		result, err := svc.Apply(context.Background(), bulkRequest(model.BulkActionActivate, 3))
		require.NoError(t, err)
		assert.Equal(t, model.BulkActionActivate, result.Action)
		assert.Equal(t, 3, result.Count)
	})

	t.Run("delete rejects the whole batch on order references", func(t *testing.T) {
		repo := newFakeRepo()
		repo.orderRefs = 2
		svc := NewBulkService(repo, noopCache{}, nil)

		_, err := svc.Apply(context.Background(), bulkRequest(model.BulkActionDelete, 4))
		assert.ErrorIs(t, err, model.ErrProductsInOrders)
		assert.Zero(t, repo.deleted, "a guarded batch must delete nothing")
	})

	t.Run("delete rejects the whole batch on cart references", func(t *testing.T) {
		repo := newFakeRepo()
		repo.cartRefs = 1
		svc := NewBulkService(repo, noopCache{}, nil)

		_, err := svc.Apply(context.Background(), bulkRequest(model.BulkActionDelete, 2))
		assert.ErrorIs(t, err, model.ErrProductsInCarts)
		assert.Zero(t, repo.deleted)
	})
}

func TestBulkRequestValidation(t *testing.T) {
	assert.Error(t, model.BulkActionRequest{Action: "purge", IDs: []string{uuid.NewString()}}.Validate())
	assert.Error(t, model.BulkActionRequest{Action: model.BulkActionDelete}.Validate())
	assert.Error(t, model.BulkActionRequest{Action: model.BulkActionDelete, IDs: []string{"not-a-uuid"}}.Validate())
	assert.NoError(t, bulkRequest(model.BulkActionDeactivate, 2).Validate())
}
