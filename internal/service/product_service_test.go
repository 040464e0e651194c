package service

import (
	"testing"

	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"
	"microsite-shop/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCarriesCategoryCount(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewProductService(repository.NewProductRepo(db), repository.NewCategoryRepo(db), nil)
	cat := seedCategory(t, db, "Home Decor", "home-decor")

	var created *model.Product
	for _, name := range []string{"Vase", "Lamp"} {
		p, err := svc.CreateProduct(&ProductRequest{Name: name, Price: decimal.NewFromInt(50000), CategoryID: &cat.ID, Stock: 3})
		require.NoError(t, err)
		created = p
	}

	got, err := svc.GetProductByID(created.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Category)
	assert.Equal(t, "home-decor", got.Category.Slug)
	assert.EqualValues(t, 2, got.Category.ProductCount)

	list, err := svc.GetAllProducts(repository.ProductFilter{CategorySlug: "home-decor"})
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, p := range list {
		require.NotNil(t, p.Category)
		assert.EqualValues(t, 2, p.Category.ProductCount)
	}
}
