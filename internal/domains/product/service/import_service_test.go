package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-admin/internal/domains/product/model"
)

// fakeRepo is an in-memory Repository covering what the import and bulk
// pipelines touch.
type fakeRepo struct {
	products map[string]*model.Product // keyed by SKU

	orderRefs int
	cartRefs  int

	// SKUs present in the store but hidden from ListSKUs, to simulate a
	// concurrent insert between validation and reconciliation.
	hiddenSKUs map[string]bool

	createErr  error
	updateErr  error
	panicOnSKU string

	created []string
	updated []string
	deleted int
}

func newFakeRepo(skus ...string) *fakeRepo {
	r := &fakeRepo{products: map[string]*model.Product{}}
	for _, sku := range skus {
		r.products[sku] = &model.Product{ID: uuid.New(), SKU: sku}
	}
	return r
}

func (r *fakeRepo) GetBySKU(_ context.Context, sku string) (*model.Product, error) {
	if sku == r.panicOnSKU {
		panic("storage exploded")
	}
	if p, ok := r.products[sku]; ok {
		return p, nil
	}
	return nil, model.ErrProductNotFound
}

func (r *fakeRepo) ListSKUs(context.Context) (map[string]bool, error) {
	skus := make(map[string]bool, len(r.products))
	for sku := range r.products {
		if !r.hiddenSKUs[sku] {
			skus[sku] = true
		}
	}
	return skus, nil
}

func (r *fakeRepo) Create(_ context.Context, p *model.Product) error {
	if r.createErr != nil {
		return r.createErr
	}
	p.ID = uuid.New()
	r.products[p.SKU] = p
	r.created = append(r.created, p.SKU)
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id uuid.UUID, patch map[string]interface{}) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	for _, p := range r.products {
		if p.ID == id {
			r.updated = append(r.updated, p.SKU)
			return nil
		}
	}
	return model.ErrProductNotFound
}

func (r *fakeRepo) SetActiveByIDs(_ context.Context, ids []uuid.UUID, active bool) (int, error) {
	return len(ids), nil
}

func (r *fakeRepo) DeleteByIDs(_ context.Context, ids []uuid.UUID) (int, error) {
	r.deleted += len(ids)
	return len(ids), nil
}

func (r *fakeRepo) CountOrderItemRefs(context.Context, []uuid.UUID) (int, error) {
	return r.orderRefs, nil
}

func (r *fakeRepo) CountCartItemRefs(context.Context, []uuid.UUID) (int, error) {
	return r.cartRefs, nil
}

// Unused by these tests.
func (r *fakeRepo) List(context.Context, model.ListProductsRequest) ([]model.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeRepo) GetByID(context.Context, uuid.UUID) (*model.Product, error) {
	return nil, model.ErrProductNotFound
}
func (r *fakeRepo) ExistsBySlug(context.Context, string) (bool, error) { return false, nil }
func (r *fakeRepo) ExistsByName(context.Context, string) (bool, error) { return false, nil }
func (r *fakeRepo) Delete(context.Context, uuid.UUID) error            { return nil }
func (r *fakeRepo) AppendImages(context.Context, uuid.UUID, []string) error {
	return nil
}
func (r *fakeRepo) ListForExport(context.Context, model.ExportRequest) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}
func (r *fakeRepo) PriceHistory(context.Context, uuid.UUID, int) ([]model.PriceHistoryEntry, error) {
	return nil, nil
}
func (r *fakeRepo) ListVariants(context.Context, uuid.UUID) ([]model.Variant, error) {
	return nil, nil
}
func (r *fakeRepo) CreateVariant(context.Context, *model.Variant) error { return nil }
func (r *fakeRepo) UpdateVariant(context.Context, uuid.UUID, map[string]interface{}) error {
	return nil
}
func (r *fakeRepo) DeleteVariant(context.Context, uuid.UUID) error { return nil }
func (r *fakeRepo) ListRelated(context.Context, uuid.UUID) ([]model.RelatedProduct, error) {
	return nil, nil
}
func (r *fakeRepo) CreateRelation(context.Context, *model.RelatedProduct) error { return nil }
func (r *fakeRepo) DeleteRelation(context.Context, uuid.UUID, uuid.UUID) error  { return nil }

// noopCache satisfies the cache contract without storing anything.
type noopCache struct{}

func (noopCache) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (noopCache) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}
func (noopCache) Delete(context.Context, ...string) error     { return nil }
func (noopCache) DeletePattern(context.Context, string) error { return nil }
func (noopCache) Ping(context.Context) error                  { return nil }

const csvHeader = "SKU,Nome,Slug,Preço,ID Categoria\n"

func TestImportValidate(t *testing.T) {
	repo := newFakeRepo("EXISTING")
	svc := NewImportService(repo, noopCache{})

	t.Run("clean file returns preview", func(t *testing.T) {
		preview, errs, err := svc.Validate(context.Background(), model.ImportRequest{
			CSVData: csvHeader + "NEW-1,Produto Um,produto-um,10.50,1\nNEW-2,Produto Dois,produto-dois,20,2\n",
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		require.NotNil(t, preview)
		assert.Equal(t, 2, preview.Count)
		assert.Equal(t, "NEW-1", preview.Products[0].SKU)
	})

	t.Run("existing sku rejected without overwrite", func(t *testing.T) {
		preview, errs, err := svc.Validate(context.Background(), model.ImportRequest{
			CSVData: csvHeader + "EXISTING,Produto,produto,10,1\n",
		})
		require.NoError(t, err)
		assert.Nil(t, preview)
		require.Len(t, errs, 1)
		assert.Equal(t, "SKU já existe", errs[0].Message)
	})

	t.Run("existing sku accepted with overwrite", func(t *testing.T) {
		preview, errs, err := svc.Validate(context.Background(), model.ImportRequest{
			CSVData:   csvHeader + "EXISTING,Produto,produto,10,1\n",
			Overwrite: true,
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, 1, preview.Count)
	})

	t.Run("empty file", func(t *testing.T) {
		_, _, err := svc.Validate(context.Background(), model.ImportRequest{CSVData: csvHeader})
		assert.ErrorIs(t, err, model.ErrEmptyCSV)
	})
}

func TestImportExecute(t *testing.T) {
	t.Run("creates missing and updates existing under overwrite", func(t *testing.T) {
		repo := newFakeRepo("EXISTING")
		svc := NewImportService(repo, noopCache{})

		result, errs, err := svc.Execute(context.Background(), model.ImportRequest{
			CSVData:   csvHeader + "EXISTING,Atualizado,atualizado,15,1\nNEW-1,Novo,novo,9.90,2\n",
			Overwrite: true,
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, 1, result.Created)
		assert.Equal(t, 1, result.Updated)
		assert.Empty(t, result.Errors)
		assert.Equal(t, []string{"NEW-1"}, repo.created)
		assert.Equal(t, []string{"EXISTING"}, repo.updated)
	})

	t.Run("partial failure keeps processing the batch", func(t *testing.T) {
		repo := newFakeRepo()
		repo.createErr = errors.New("insert rejected")
		svc := NewImportService(repo, noopCache{})

		result, errs, err := svc.Execute(context.Background(), model.ImportRequest{
			CSVData: csvHeader + "A,Um,um,1,1\nB,Dois,dois,2,1\nC,Três,tres,3,1\n",
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, 0, result.Created)
		require.Len(t, result.Errors, 3)
		assert.Equal(t, "A", result.Errors[0].SKU)
		assert.Equal(t, "insert rejected", result.Errors[0].Error)
	})

	t.Run("panic in one row becomes a row error", func(t *testing.T) {
		repo := newFakeRepo()
		repo.panicOnSKU = "BOOM"
		svc := NewImportService(repo, noopCache{})

		result, errs, err := svc.Execute(context.Background(), model.ImportRequest{
			CSVData: csvHeader + "OK-1,Um,um,1,1\nBOOM,Dois,dois,2,1\nOK-2,Três,tres,3,1\n",
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		assert.Equal(t, 2, result.Created)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "BOOM", result.Errors[0].SKU)
		assert.Contains(t, result.Errors[0].Error, "storage exploded")
	})

	t.Run("validation failure blocks every mutation", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewImportService(repo, noopCache{})

		result, errs, err := svc.Execute(context.Background(), model.ImportRequest{
			CSVData: csvHeader + "OK-1,Um,um,1,1\n,SemSKU,sem-sku,1,1\n",
		})
		require.NoError(t, err)
		assert.Nil(t, result)
		require.NotEmpty(t, errs)
		assert.Empty(t, repo.created, "no row may be written when validation fails")
	})

	t.Run("existing sku without overwrite is a row error", func(t *testing.T) {
		repo := newFakeRepo()
		svc := NewImportService(repo, noopCache{})

		// The SKU appears between validation and reconciliation.
		repo.products["RACE"] = &model.Product{ID: uuid.New(), SKU: "RACE"}
		repo.hiddenSKUs = map[string]bool{"RACE": true}

		result, errs, err := svc.Execute(context.Background(), model.ImportRequest{
			CSVData: csvHeader + "RACE,Um,um,1,1\n",
		})
		require.NoError(t, err)
		assert.Empty(t, errs)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "SKU já existe", result.Errors[0].Error)
		assert.Empty(t, repo.updated)
	})
}
