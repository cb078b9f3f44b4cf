package services

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/mataam/internal/events"
	"github.com/example/mataam/internal/logging"
	"github.com/example/mataam/internal/models"
	"github.com/example/mataam/internal/store"
)

var ErrReservationNotFound = errors.New("reservation not found")

// ReservationInput is a customer's table booking request.
type ReservationInput struct {
	CustomerName    string    `json:"customer_name" validate:"required"`
	CustomerEmail   string    `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone   string    `json:"customer_phone" validate:"required"`
	NumberOfGuests  int       `json:"number_of_guests" validate:"min=1"`
	ReservationDate time.Time `json:"reservation_date" validate:"required"`
	Notes           string    `json:"notes"`
}

// ReservationUpdate carries the admin-editable fields of a reservation.
type ReservationUpdate struct {
	Status *string
	Notes  *string
}

// ReservationService books tables and announces new bookings.
type ReservationService struct {
	store     *store.Store
	publisher events.Publisher
	notifier  Notifier
	goAsync   func(func())
	log       *logrus.Entry
}

func NewReservationService(st *store.Store, publisher events.Publisher, notifier Notifier) *ReservationService {
	return &ReservationService{
		store:     st,
		publisher: publisher,
		notifier:  notifier,
		goAsync:   func(f func()) { go f() },
		log:       logging.For("reservations"),
	}
}

func (s *ReservationService) Create(ctx context.Context, in ReservationInput) (*models.TableReservation, error) {
	reservation := &models.TableReservation{
		CustomerName:    in.CustomerName,
		CustomerEmail:   in.CustomerEmail,
		CustomerPhone:   in.CustomerPhone,
		NumberOfGuests:  in.NumberOfGuests,
		ReservationDate: in.ReservationDate,
		Notes:           in.Notes,
		Status:          models.ReservationPending,
	}
	if err := s.store.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	key := strconv.FormatUint(uint64(reservation.ID), 10)
	if err := s.publisher.Publish(ctx, events.New(events.TypeReservationCreated, key, reservation)); err != nil {
		s.log.WithError(err).Warn("publish reservation event failed")
	}

	n := ReservationNotification{
		CustomerName:   reservation.CustomerName,
		CustomerPhone:  reservation.CustomerPhone,
		NumberOfGuests: reservation.NumberOfGuests,
		Date:           reservation.ReservationDate,
		Notes:          reservation.Notes,
	}
	s.goAsync(func() {
		if err := s.notifier.NotifyNewReservation(n); err != nil {
			s.log.WithError(err).Warn("reservation notification failed")
		}
	})

	return reservation, nil
}

func (s *ReservationService) Update(ctx context.Context, id uint, update ReservationUpdate) (*models.TableReservation, error) {
	current, err := s.store.GetReservation(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		if !s.store.Available() {
			return nil, store.ErrUnavailable
		}
		return nil, ErrReservationNotFound
	}

	patch := store.Patch{}
	store.Set(patch, "status", update.Status)
	store.Set(patch, "notes", update.Notes)
	if err := s.store.UpdateReservation(ctx, id, patch); err != nil {
		return nil, err
	}

	if update.Status != nil && *update.Status != current.Status {
		key := strconv.FormatUint(uint64(id), 10)
		err := s.publisher.Publish(ctx, events.New(events.TypeReservationStatusChanged, key, map[string]string{
			"from": current.Status,
			"to":   *update.Status,
		}))
		if err != nil {
			s.log.WithError(err).Warn("publish reservation event failed")
		}
	}

	return s.store.GetReservation(ctx, id)
}
