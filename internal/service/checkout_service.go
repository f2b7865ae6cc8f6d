package service

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"hospedaria/internal/db"
	"hospedaria/internal/entities"
	"hospedaria/internal/utils"
)

// ReservationStore é o armazenamento durável das reservas, endereçado pelo
// id gerado no cliente. Um Create com id repetido é erro duro: o checkout
// nunca reaproveita o mesmo id depois de uma falha.
type ReservationStore interface {
	CreateBooking(b *db.Booking) error
	GetBookingByID(id string) (*db.Booking, error)
	UpdateBookingStatus(id, status string) error
}

// PaymentIntentService cria a cobrança PIX no gateway e devolve o QR e o
// código copia-e-cola prontos para exibição.
type PaymentIntentService interface {
	CreateIntent(req entities.PaymentIntentRequest) (*entities.PaymentIntent, error)
}

// ErrSubmissionInFlight é devolvido quando já existe um envio em andamento
// para a mesma reserva (duplo clique no botão de confirmar).
var ErrSubmissionInFlight = errors.New("já existe um checkout em andamento para esta reserva")

// ValidationError indica entrada corrigível pelo usuário; nenhum efeito
// colateral foi executado.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

const genericPaymentFailure = "A reserva foi criada, mas não conseguimos gerar o PIX agora. Tente novamente."

// CheckoutService orquestra o fluxo de duas etapas: gravar a reserva como
// pendente e, só então, pedir a cobrança PIX. As etapas falham de forma
// independente e o chamador recebe o estado real de cada uma.
type CheckoutService struct {
	store    ReservationStore
	payments PaymentIntentService
	policy   *PricingPolicy
	ids      *IdentifierGenerator

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func NewCheckoutService(store ReservationStore, payments PaymentIntentService, policy *PricingPolicy, ids *IdentifierGenerator) *CheckoutService {
	return &CheckoutService{
		store:    store,
		payments: payments,
		policy:   policy,
		ids:      ids,
		inFlight: make(map[string]struct{}),
	}
}

// Submit valida a entrada, grava a reserva como pendente e pede a cobrança
// PIX. Ordem estrita: nenhuma chamada de pagamento sem gravação prévia bem
// sucedida, e falha de pagamento nunca desfaz a gravação.
func (s *CheckoutService) Submit(req entities.CheckoutRequest) (*entities.CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return nil, err
	}

	cpfDigits := utils.NormalizeCPF(req.Guest.CPF)
	key := fmt.Sprintf("%s|%s|%s", cpfDigits, req.PropertyID, req.CheckInDate.Format("2006-01-02"))
	if !s.begin(key) {
		return nil, ErrSubmissionInFlight
	}
	defer s.end(key)

	// Reaplica o teto imediatamente antes de calcular o total: o preço ou o
	// limite podem ter mudado entre a escolha das diárias e o envio.
	effectiveNights := s.policy.ClampNights(req.Nights, s.policy.MaxNights(req.PricePerNight))
	if effectiveNights != req.Nights {
		log.Printf("Checkout: diárias ajustadas de %d para %d (teto PIX)", req.Nights, effectiveNights)
	}
	totalPrice := req.PricePerNight * float64(effectiveNights)

	bookingID, strategy := s.ids.Generate()
	if strategy != IDStrategyUUID {
		log.Printf("Checkout: id %s gerado com fonte degradada (%s)", bookingID, strategy)
	}

	now := time.Now().UTC()
	booking := &db.Booking{
		ID:            bookingID,
		UserID:        nullString(req.UserID),
		PropertyID:    req.PropertyID,
		CheckInDate:   req.CheckInDate,
		Nights:        effectiveNights,
		PricePerNight: req.PricePerNight,
		TotalPrice:    totalPrice,
		GuestName:     strings.TrimSpace(req.Guest.Name),
		GuestEmail:    strings.TrimSpace(req.Guest.Email),
		GuestPhone:    strings.TrimSpace(req.Guest.Phone),
		GuestCPF:      cpfDigits,
		Status:        db.StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Etapa 1: gravação da reserva. Sem registro não há a que anexar um
	// pagamento, então a falha encerra o fluxo aqui.
	if err := s.store.CreateBooking(booking); err != nil {
		log.Printf("Erro ao criar reserva %s: %v", bookingID, err)
		return &entities.CheckoutResult{
			Kind:    entities.CheckoutBookingFailed,
			Message: bookingFailureMessage(err),
		}, nil
	}

	// Etapa 2: cobrança PIX.
	result := s.requestPayment(booking, req.PropertyTitle)
	result.Nights = effectiveNights
	result.TotalPrice = totalPrice
	return result, nil
}

// RetryPayment refaz apenas a etapa de pagamento de uma reserva pendente já
// gravada. A reserva em si nunca é recriada.
func (s *CheckoutService) RetryPayment(bookingID string) (*entities.CheckoutResult, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, &ValidationError{Message: "Informe o identificador da reserva."}
	}
	if !s.begin(bookingID) {
		return nil, ErrSubmissionInFlight
	}
	defer s.end(bookingID)

	booking, err := s.store.GetBookingByID(bookingID)
	if err != nil {
		return nil, fmt.Errorf("reserva %s não encontrada: %w", bookingID, err)
	}
	if booking.Status != db.StatusPending {
		return nil, &ValidationError{Message: fmt.Sprintf("A reserva está %s; não é possível gerar um novo PIX.", booking.Status)}
	}

	title := booking.PropertyTitle
	if title == "" {
		title = "Reserva " + booking.PropertyID
	}
	result := s.requestPayment(booking, title)
	result.Nights = booking.Nights
	result.TotalPrice = booking.TotalPrice
	return result, nil
}

// requestPayment executa a etapa 2. Em caso de falha a reserva pendente é
// mantida intacta; quem chamou precisa saber que ela existe e que só o
// pagamento deve ser repetido.
func (s *CheckoutService) requestPayment(booking *db.Booking, propertyTitle string) *entities.CheckoutResult {
	amountCents := CentsFromTotal(booking.TotalPrice)

	intentReq := entities.PaymentIntentRequest{
		BookingID:   booking.ID,
		AmountCents: amountCents,
		Guest: entities.Guest{
			Name:  booking.GuestName,
			Email: booking.GuestEmail,
			Phone: booking.GuestPhone,
			CPF:   booking.GuestCPF,
		},
		Items: []entities.PaymentLineItem{
			{
				Title:     fmt.Sprintf("%s (%d noite(s))", propertyTitle, booking.Nights),
				Quantity:  1,
				UnitPrice: amountCents,
			},
		},
		Metadata: map[string]string{
			"booking_id":  booking.ID,
			"property_id": booking.PropertyID,
		},
	}

	intent, err := s.payments.CreateIntent(intentReq)
	if err != nil {
		log.Printf("Erro ao criar cobrança PIX para reserva %s: %v", booking.ID, err)
		return &entities.CheckoutResult{
			Kind:        entities.CheckoutPaymentFailed,
			BookingID:   booking.ID,
			Message:     paymentFailureMessage(err),
			AmountCents: amountCents,
		}
	}

	// A transição para awaiting_payment é melhor esforço: se falhar, o
	// registro continua pendente e o PIX já gerado segue válido.
	if err := s.store.UpdateBookingStatus(booking.ID, db.StatusAwaitingPayment); err != nil {
		log.Printf("Erro ao marcar reserva %s como awaiting_payment: %v", booking.ID, err)
	}

	return &entities.CheckoutResult{
		Kind:        entities.CheckoutOK,
		BookingID:   booking.ID,
		QRCode:      intent.QRCode,
		CopyPaste:   intent.CopyPaste,
		AmountCents: amountCents,
	}
}

func (s *CheckoutService) begin(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[key]; busy {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *CheckoutService) end(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}

func validateCheckout(req entities.CheckoutRequest) error {
	if req.PropertyID == "" {
		return &ValidationError{Message: "Propriedade não informada."}
	}
	if req.CheckInDate.IsZero() {
		return &ValidationError{Message: "Escolha a data de check-in."}
	}
	if strings.TrimSpace(req.Guest.Name) == "" || strings.TrimSpace(req.Guest.Email) == "" || strings.TrimSpace(req.Guest.Phone) == "" {
		return &ValidationError{Message: "Nome, e-mail e telefone são obrigatórios para gerar o PIX."}
	}
	if !utils.IsValidCPFShape(req.Guest.CPF) {
		return &ValidationError{Message: "CPF deve ter 11 dígitos."}
	}
	return nil
}

func bookingFailureMessage(err error) string {
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return "Não foi possível criar a reserva. Tente novamente."
}

func paymentFailureMessage(err error) string {
	var payErr *PaymentError
	if errors.As(err, &payErr) && payErr.UserMessage != "" {
		return payErr.UserMessage
	}
	return genericPaymentFailure
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
