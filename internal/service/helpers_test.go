package service

import (
	"sync"
	"testing"

	"microsite-shop/internal/model"
	"microsite-shop/internal/ws"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []ws.Event
}

func (p *recordingPublisher) Publish(evt ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func seedCategory(t *testing.T, db *gorm.DB, name, slug string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name, Slug: slug}
	require.NoError(t, db.Create(c).Error)
	return c
}

func seedProduct(t *testing.T, db *gorm.DB, name string, typ model.ProductType, stock int, price int64) *model.Product {
	t.Helper()
	p := &model.Product{
		Name:   name,
		Price:  decimal.NewFromInt(price),
		Stock:  stock,
		Weight: 1000,
		Type:   typ,
	}
	require.NoError(t, db.Omit("Category").Create(p).Error)
	return p
}

func stockOf(t *testing.T, db *gorm.DB, id uint) int {
	t.Helper()
	var p model.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Stock
}

func countRows(t *testing.T, db *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(m).Count(&n).Error)
	return n
}
