package store

import (
	"context"
	"time"

	"github.com/example/mataam/internal/models"
)

// DashboardStats aggregates figures for the admin dashboard. Revenue is in
// minor units and excludes cancelled orders.
type DashboardStats struct {
	TotalOrders         int64            `json:"total_orders"`
	OrdersByStatus      map[string]int64 `json:"orders_by_status"`
	TotalRevenue        int64            `json:"total_revenue"`
	TodayRevenue        int64            `json:"today_revenue"`
	TotalReservations   int64            `json:"total_reservations"`
	PendingReservations int64            `json:"pending_reservations"`
	MenuItems           int64            `json:"menu_items"`
}

// Dashboard computes DashboardStats. now decides what "today" means.
func (s *Store) Dashboard(ctx context.Context, now time.Time) (*DashboardStats, error) {
	stats := &DashboardStats{OrdersByStatus: map[string]int64{}}

	db, ok := s.reader(ctx, "dashboard")
	if !ok {
		return stats, nil
	}

	if err := db.Model(&models.Order{}).Count(&stats.TotalOrders).Error; err != nil {
		return nil, err
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	if err := db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}
	for _, c := range counts {
		stats.OrdersByStatus[c.Status] = c.Count
	}

	if err := db.Model(&models.Order{}).
		Where("status <> ?", models.OrderCancelled).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TotalRevenue).Error; err != nil {
		return nil, err
	}

	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if err := db.Model(&models.Order{}).
		Where("status <> ? AND created_at >= ?", models.OrderCancelled, dayStart).
		Select("COALESCE(SUM(total), 0)").
		Scan(&stats.TodayRevenue).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.TableReservation{}).Count(&stats.TotalReservations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.TableReservation{}).
		Where("status = ?", models.ReservationPending).
		Count(&stats.PendingReservations).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.MenuItem{}).Count(&stats.MenuItems).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
