package service

import (
	"fmt"
	"log"

	"hospedaria/internal/db"
	"hospedaria/internal/entities"
)

// ReservationRepo é o recorte do repositório que o ciclo de vida da reserva
// usa depois do checkout.
type ReservationRepo interface {
	GetBookingByID(id string) (*db.Booking, error)
	MarkBookingPaid(id, txid string) error
	UpdateBookingStatus(id, status string) error
	DeleteBookingByID(id string) error
	ListBookings(date, city, status string, limit, offset int) ([]entities.ReservationResponse, error)
	CountBookings(date, city, status string) (int64, error)
}

// ReservationNotifier avisa o hóspede quando a reserva muda de estado.
type ReservationNotifier interface {
	SendReservationEmail(reservation entities.ReservationResponse, status string)
	SendReservationSMS(reservation entities.ReservationResponse, status string)
}

// ReservationService cobre o que acontece com a reserva depois do checkout:
// consulta, confirmação via webhook e as operações administrativas.
type ReservationService struct {
	Repo   ReservationRepo
	sender ReservationNotifier
}

func NewReservationService(repo ReservationRepo, sender ReservationNotifier) *ReservationService {
	return &ReservationService{Repo: repo, sender: sender}
}

func (s *ReservationService) GetReservationByID(id string) (*entities.ReservationResponse, error) {
	booking, err := s.Repo.GetBookingByID(id)
	if err != nil {
		return nil, err
	}
	return toReservationResponse(booking), nil
}

// ConfirmBookingPaid é o caminho do webhook: marca a reserva como
// confirmada, guarda o txid e avisa o hóspede por e-mail e SMS.
func (s *ReservationService) ConfirmBookingPaid(bookingID, txid string) error {
	booking, err := s.Repo.GetBookingByID(bookingID)
	if err != nil {
		return err
	}
	if booking.Status == db.StatusConfirmed {
		// Webhooks chegam repetidos; confirmar duas vezes não pode falhar
		// nem disparar outro aviso.
		log.Printf("Reserva %s já estava confirmada, webhook ignorado", bookingID)
		return nil
	}
	if booking.Status != db.StatusPending && booking.Status != db.StatusAwaitingPayment {
		return fmt.Errorf("reserva %s está %s e não pode ser confirmada", bookingID, booking.Status)
	}

	if err := s.Repo.MarkBookingPaid(bookingID, txid); err != nil {
		return err
	}

	resp := toReservationResponse(booking)
	resp.Status = db.StatusConfirmed
	s.sender.SendReservationEmail(*resp, "confirmada")
	s.sender.SendReservationSMS(*resp, "confirmada")
	return nil
}

func (s *ReservationService) ListReservations(date, city, status string, limit, offset int) (*entities.ReservationsList, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	reservations, err := s.Repo.ListBookings(date, city, status, limit, offset)
	if err != nil {
		return nil, err
	}
	total, err := s.Repo.CountBookings(date, city, status)
	if err != nil {
		return nil, err
	}
	return &entities.ReservationsList{
		Total:        total,
		Limit:        limit,
		Offset:       offset,
		Reservations: reservations,
	}, nil
}

func (s *ReservationService) UpdateReservationStatus(id, status string) error {
	switch status {
	case db.StatusPending, db.StatusAwaitingPayment, db.StatusConfirmed, db.StatusCompleted, db.StatusExpired:
	default:
		return fmt.Errorf("status '%s' inválido", status)
	}
	return s.Repo.UpdateBookingStatus(id, status)
}

func (s *ReservationService) DeleteReservationByID(id string) error {
	return s.Repo.DeleteBookingByID(id)
}

func toReservationResponse(b *db.Booking) *entities.ReservationResponse {
	return &entities.ReservationResponse{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		PropertyTitle: b.PropertyTitle,
		CheckInDate:   b.CheckInDate,
		Nights:        b.Nights,
		PricePerNight: b.PricePerNight,
		TotalPrice:    b.TotalPrice,
		GuestName:     b.GuestName,
		GuestEmail:    b.GuestEmail,
		GuestPhone:    b.GuestPhone,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}
