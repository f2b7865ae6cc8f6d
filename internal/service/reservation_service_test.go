package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"hospedaria/internal/db"
	"hospedaria/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      map[string]*db.Booking
	markPaidCalls int
}

func newFakeBookingRepo(bookings ...*db.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[string]*db.Booking)}
	for _, b := range bookings {
		cp := *b
		repo.bookings[b.ID] = &cp
	}
	return repo
}

func (f *fakeBookingRepo) GetBookingByID(id string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBookingRepo) MarkBookingPaid(id, txid string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.markPaidCalls++
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = db.StatusConfirmed
	b.PixTxID.String = txid
	b.PixTxID.Valid = true
	return nil
}

func (f *fakeBookingRepo) UpdateBookingStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

func (f *fakeBookingRepo) DeleteBookingByID(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.bookings, id)
	return nil
}

func (f *fakeBookingRepo) ListBookings(date, city, status string, limit, offset int) ([]entities.ReservationResponse, error) {
	return nil, nil
}

func (f *fakeBookingRepo) CountBookings(date, city, status string) (int64, error) {
	return 0, nil
}

type fakeNotifier struct {
	mu         sync.Mutex
	emailCalls int
	smsCalls   int
	lastStatus string
}

func (f *fakeNotifier) SendReservationEmail(reservation entities.ReservationResponse, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.emailCalls++
	f.lastStatus = status
}

func (f *fakeNotifier) SendReservationSMS(reservation entities.ReservationResponse, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.smsCalls++
}

func pendingBooking(id string) *db.Booking {
	return &db.Booking{
		ID:            id,
		PropertyID:    "prop-1",
		PropertyTitle: "Chalé na serra",
		CheckInDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Nights:        2,
		PricePerNight: 389,
		TotalPrice:    778,
		GuestName:     "Ana Souza",
		GuestEmail:    "ana@example.com",
		GuestPhone:    "+5511999990000",
		GuestCPF:      "12345678900",
		Status:        db.StatusPending,
	}
}

func TestConfirmBookingPaid(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking("b-1"))
	notifier := &fakeNotifier{}
	svc := NewReservationService(repo, notifier)

	err := svc.ConfirmBookingPaid("b-1", "tx-9")

	require.NoError(t, err)
	booking, _ := repo.GetBookingByID("b-1")
	assert.Equal(t, db.StatusConfirmed, booking.Status)
	assert.Equal(t, "tx-9", booking.PixTxID.String)
	assert.Equal(t, 1, notifier.emailCalls)
	assert.Equal(t, 1, notifier.smsCalls)
	assert.Equal(t, "confirmada", notifier.lastStatus)
}

func TestConfirmBookingPaidReplayedWebhook(t *testing.T) {
	repo := newFakeBookingRepo(pendingBooking("b-1"))
	notifier := &fakeNotifier{}
	svc := NewReservationService(repo, notifier)

	require.NoError(t, svc.ConfirmBookingPaid("b-1", "tx-9"))

	// O gateway reenvia eventos: confirmar de novo não pode falhar nem
	// disparar outro aviso ao hóspede.
	err := svc.ConfirmBookingPaid("b-1", "tx-9")

	require.NoError(t, err)
	assert.Equal(t, 1, repo.markPaidCalls)
	assert.Equal(t, 1, notifier.emailCalls)
	assert.Equal(t, 1, notifier.smsCalls)
}

func TestConfirmBookingPaidFromTerminalStatus(t *testing.T) {
	expired := pendingBooking("b-2")
	expired.Status = db.StatusExpired
	repo := newFakeBookingRepo(expired)
	notifier := &fakeNotifier{}
	svc := NewReservationService(repo, notifier)

	err := svc.ConfirmBookingPaid("b-2", "tx-9")

	require.Error(t, err)
	assert.Equal(t, 0, repo.markPaidCalls)
	assert.Equal(t, 0, notifier.emailCalls)
	booking, _ := repo.GetBookingByID("b-2")
	assert.Equal(t, db.StatusExpired, booking.Status)
}

func TestConfirmBookingPaidFromAwaitingPayment(t *testing.T) {
	awaiting := pendingBooking("b-3")
	awaiting.Status = db.StatusAwaitingPayment
	repo := newFakeBookingRepo(awaiting)
	notifier := &fakeNotifier{}
	svc := NewReservationService(repo, notifier)

	err := svc.ConfirmBookingPaid("b-3", "tx-9")

	require.NoError(t, err)
	booking, _ := repo.GetBookingByID("b-3")
	assert.Equal(t, db.StatusConfirmed, booking.Status)
}
