package service

import (
	"time"

	"microsite-shop/internal/apperr"
	"microsite-shop/internal/model"
	"microsite-shop/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	recentOrdersLimit = 5
	revenueChartDays  = 7
)

type DashboardService interface {
	GetRevenueChart(days int) ([]RevenuePoint, error)
	GetDashboardStats() (*DashboardStats, error)
}

type RevenuePoint struct {
	Date    string          `json:"date"` // YYYY-MM-DD, UTC
	Revenue decimal.Decimal `json:"revenue"`
}

type RecentOrder struct {
	ID        uint              `json:"id"`
	FirstName string            `json:"firstName"`
	LastName  string            `json:"lastName"`
	Email     string            `json:"email"`
	Total     decimal.Decimal   `json:"total"`
	Status    model.OrderStatus `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
}

type DashboardStats struct {
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalOrders   int64           `json:"totalOrders"`
	LowStockCount int64           `json:"lowStockCount"`
	RecentOrders  []RecentOrder   `json:"recentOrders"`
	RevenueChart  []RevenuePoint  `json:"revenueChart"`
}

type dashboardService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	now         func() time.Time
}

func NewDashboardService(oRepo repository.OrderRepository, pRepo repository.ProductRepository) DashboardService {
	return &dashboardService{orderRepo: oRepo, productRepo: pRepo, now: time.Now}
}

// GetRevenueChart sums order totals per UTC day for the last days days,
// oldest first, with empty days reported as zero.
func (s *dashboardService) GetRevenueChart(days int) ([]RevenuePoint, error) {
	if days <= 0 {
		days = revenueChartDays
	}
	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -(days - 1))

	orders, err := s.orderRepo.FindCreatedSince(start)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats", err)
	}

	byDay := make(map[string]decimal.Decimal, days)
	for _, o := range orders {
		key := o.CreatedAt.UTC().Format("2006-01-02")
		byDay[key] = byDay[key].Add(o.Total)
	}

	chart := make([]RevenuePoint, 0, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		chart = append(chart, RevenuePoint{Date: key, Revenue: byDay[key]})
	}
	return chart, nil
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	revenue, err := s.orderRepo.TotalRevenue()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats", err)
	}
	count, err := s.orderRepo.Count()
	if err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats", err)
	}
	lowStock, err := s.productRepo.CountLowStock(model.LowStockThreshold)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats", err)
	}
	recent, err := s.orderRepo.FindRecent(recentOrdersLimit)
	if err != nil {
		return nil, apperr.Internal("Failed to fetch dashboard stats", err)
	}
	chart, err := s.GetRevenueChart(revenueChartDays)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		TotalRevenue:  revenue,
		TotalOrders:   count,
		LowStockCount: lowStock,
		RecentOrders:  make([]RecentOrder, 0, len(recent)),
		RevenueChart:  chart,
	}
	for _, o := range recent {
		stats.RecentOrders = append(stats.RecentOrders, RecentOrder{
			ID:        o.ID,
			FirstName: o.FirstName,
			LastName:  o.LastName,
			Email:     o.Email,
			Total:     o.Total,
			Status:    o.Status,
			CreatedAt: o.CreatedAt,
		})
	}
	return stats, nil
}
