package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"storefront-admin/internal/domains/product/model"
	"storefront-admin/internal/domains/product/repository"
	"storefront-admin/internal/infrastructure/storage"
	"storefront-admin/pkg/cache"
)

type bulkService struct {
	repo  repository.Repository
	cache cache.Cache
	media *storage.MediaStorage
}

func NewBulkService(repo repository.Repository, c cache.Cache, media *storage.MediaStorage) BulkService {
	return &bulkService{repo: repo, cache: c, media: media}
}

// Apply runs one bulk action over the whole ID set. Activation and
// deactivation are single batched updates. Deletion is guarded: if any
// product in the batch is referenced by an order or a cart, the entire
// batch is rejected and nothing is deleted.
func (s *bulkService) Apply(ctx context.Context, req model.BulkActionRequest) (*model.BulkActionResult, error) {
	ids := req.UUIDs()

	var affected int
	var err error
	switch req.Action {
	case model.BulkActionActivate:
		affected, err = s.repo.SetActiveByIDs(ctx, ids, true)
	case model.BulkActionDeactivate:
		affected, err = s.repo.SetActiveByIDs(ctx, ids, false)
	case model.BulkActionDelete:
		affected, err = s.delete(ctx, ids)
	}
	if err != nil {
		return nil, err
	}

	if cerr := s.cache.DeletePattern(ctx, model.ListCachePattern()); cerr != nil {
		log.Warn().Err(cerr).Msg("failed to invalidate product list cache")
	}

	log.Info().Str("action", req.Action).Int("affected", affected).Msg("bulk action applied")
	return &model.BulkActionResult{Action: req.Action, Count: affected}, nil
}

func (s *bulkService) delete(ctx context.Context, ids []uuid.UUID) (int, error) {
	if refs, err := s.repo.CountOrderItemRefs(ctx, ids); err != nil {
		return 0, err
	} else if refs > 0 {
		return 0, model.ErrProductsInOrders
	}
	if refs, err := s.repo.CountCartItemRefs(ctx, ids); err != nil {
		return 0, err
	} else if refs > 0 {
		return 0, model.ErrProductsInCarts
	}

	// Media cleanup is best effort; a failed removal never blocks the
	// delete itself.
	for _, id := range ids {
		if err := s.media.RemoveFolder(ctx, "products/"+id.String()); err != nil {
			log.Warn().Err(err).Str("id", id.String()).Msg("failed to remove product media")
		}
	}

	return s.repo.DeleteByIDs(ctx, ids)
}
