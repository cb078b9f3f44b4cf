package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/example/mataam/internal/events"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.Event) error {
	return m.Called(ctx, event).Error(0)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyNewOrder(order OrderNotification) error {
	return m.Called(order).Error(0)
}

func (m *mockNotifier) NotifyNewReservation(reservation ReservationNotification) error {
	return m.Called(reservation).Error(0)
}

func runNow(f func()) { f() }
