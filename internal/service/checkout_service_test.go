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

type fakeStore struct {
	mu          sync.Mutex
	bookings    map[string]*db.Booking
	createErr   error
	createCalls int
	blockCreate chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{bookings: make(map[string]*db.Booking)}
}

func (f *fakeStore) CreateBooking(b *db.Booking) error {
	f.mu.Lock()
	f.createCalls++
	block := f.blockCreate
	f.mu.Unlock()

	if block != nil {
		<-block
	}
	if f.createErr != nil {
		return f.createErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.bookings[b.ID]; exists {
		return errors.New("duplicate booking id")
	}
	cp := *b
	f.bookings[b.ID] = &cp
	return nil
}

func (f *fakeStore) GetBookingByID(id string) (*db.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return nil, errors.New("booking not found")
	}
	cp := *b
	return &cp, nil
}

func (f *fakeStore) UpdateBookingStatus(id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.bookings[id]
	if !ok {
		return errors.New("booking not found")
	}
	b.Status = status
	return nil
}

type fakePayments struct {
	mu      sync.Mutex
	calls   int
	err     error
	lastReq entities.PaymentIntentRequest
}

func (f *fakePayments) CreateIntent(req entities.PaymentIntentRequest) (*entities.PaymentIntent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &entities.PaymentIntent{QRCode: "qr-payload", CopyPaste: "copia-e-cola"}, nil
}

func (f *fakePayments) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newCheckout(store ReservationStore, payments PaymentIntentService) *CheckoutService {
	return NewCheckoutService(store, payments, NewPricingPolicy(1000), NewIdentifierGenerator())
}

func validCheckoutRequest() entities.CheckoutRequest {
	return entities.CheckoutRequest{
		PropertyID:    "prop-1",
		PropertyTitle: "Chalé na serra",
		CheckInDate:   time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Nights:        1,
		PricePerNight: 620,
		Guest: entities.Guest{
			Name:  "Ana Souza",
			Email: "ana@example.com",
			Phone: "+5511999990000",
			CPF:   "123.456.789-00",
		},
	}
}

func TestSubmitValidationHasNoSideEffects(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	cases := []struct {
		name   string
		mutate func(*entities.CheckoutRequest)
	}{
		{"sem check-in", func(r *entities.CheckoutRequest) { r.CheckInDate = time.Time{} }},
		{"nome vazio", func(r *entities.CheckoutRequest) { r.Guest.Name = "   " }},
		{"email vazio", func(r *entities.CheckoutRequest) { r.Guest.Email = "" }},
		{"telefone vazio", func(r *entities.CheckoutRequest) { r.Guest.Phone = "\t" }},
		{"cpf curto", func(r *entities.CheckoutRequest) { r.Guest.CPF = "123.456" }},
		{"cpf longo", func(r *entities.CheckoutRequest) { r.Guest.CPF = "123456789001234" }},
		{"sem propriedade", func(r *entities.CheckoutRequest) { r.PropertyID = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCheckoutRequest()
			tc.mutate(&req)

			result, err := svc.Submit(req)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Nil(t, result)
		})
	}
	assert.Equal(t, 0, store.createCalls)
	assert.Equal(t, 0, payments.callCount())
}

func TestSubmitBookingFailureSkipsPayment(t *testing.T) {
	store := newFakeStore()
	store.createErr = errors.New("insert falhou: conexão recusada")
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	result, err := svc.Submit(validCheckoutRequest())

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutBookingFailed, result.Kind)
	assert.Equal(t, "insert falhou: conexão recusada", result.Message)
	assert.Empty(t, result.BookingID)
	assert.Equal(t, 0, payments.callCount(), "pagamento não pode ser chamado sem reserva gravada")
}

func TestSubmitPaymentFailureKeepsPendingBooking(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{err: &PaymentError{StatusCode: 200, UserMessage: "Emissor indisponível no momento."}}
	svc := newCheckout(store, payments)

	result, err := svc.Submit(validCheckoutRequest())

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutPaymentFailed, result.Kind)
	assert.Equal(t, "Emissor indisponível no momento.", result.Message)
	require.NotEmpty(t, result.BookingID)

	// A reserva da etapa 1 fica intacta e pendente; só o pagamento será refeito.
	booking, getErr := store.GetBookingByID(result.BookingID)
	require.NoError(t, getErr)
	assert.Equal(t, db.StatusPending, booking.Status)
}

func TestSubmitPaymentFailureWithoutUserMessage(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{err: errors.New("timeout")}
	svc := newCheckout(store, payments)

	result, err := svc.Submit(validCheckoutRequest())

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutPaymentFailed, result.Kind)
	assert.Equal(t, genericPaymentFailure, result.Message)
}

func TestSubmitSuccess(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	req := validCheckoutRequest()
	req.Nights = 3
	req.PricePerNight = 620
	// preço 620 com teto 1000 limita a 1 diária
	result, err := svc.Submit(req)

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutOK, result.Kind)
	assert.Equal(t, "qr-payload", result.QRCode)
	assert.Equal(t, "copia-e-cola", result.CopyPaste)
	assert.Equal(t, 1, result.Nights)
	assert.Equal(t, int64(62000), result.AmountCents)

	booking, getErr := store.GetBookingByID(result.BookingID)
	require.NoError(t, getErr)
	assert.Equal(t, db.StatusAwaitingPayment, booking.Status)
	assert.Equal(t, "12345678900", booking.GuestCPF)
}

func TestSubmitAmountInCents(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{}
	policy := NewPricingPolicy(2000) // teto alto o bastante para 3 diárias de 620
	svc := NewCheckoutService(store, payments, policy, NewIdentifierGenerator())

	req := validCheckoutRequest()
	req.Nights = 3

	result, err := svc.Submit(req)

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutOK, result.Kind)
	assert.Equal(t, 3, result.Nights)
	assert.Equal(t, int64(186000), result.AmountCents)
	assert.Equal(t, int64(186000), payments.lastReq.AmountCents)
	require.Len(t, payments.lastReq.Items, 1)
	assert.Equal(t, "Chalé na serra (3 noite(s))", payments.lastReq.Items[0].Title)
	assert.Equal(t, int64(186000), payments.lastReq.Items[0].UnitPrice)
}

func TestSubmitClampsNightsTransparently(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	req := validCheckoutRequest()
	req.PricePerNight = 389
	req.Nights = 5 // acima do teto: floor(1000/389) = 2

	result, err := svc.Submit(req)

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutOK, result.Kind)
	assert.Equal(t, 2, result.Nights)
	assert.InDelta(t, 778.0, result.TotalPrice, 0.001)

	booking, getErr := store.GetBookingByID(result.BookingID)
	require.NoError(t, getErr)
	assert.Equal(t, 2, booking.Nights)
}

func TestSubmitRejectsDuplicateWhileInFlight(t *testing.T) {
	store := newFakeStore()
	store.blockCreate = make(chan struct{})
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	first := make(chan *entities.CheckoutResult, 1)
	go func() {
		result, _ := svc.Submit(validCheckoutRequest())
		first <- result
	}()

	// Espera o primeiro envio chegar na gravação da reserva.
	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return store.createCalls == 1
	}, time.Second, 5*time.Millisecond)

	_, err := svc.Submit(validCheckoutRequest())
	assert.ErrorIs(t, err, ErrSubmissionInFlight)

	close(store.blockCreate)
	result := <-first
	require.NotNil(t, result)
	assert.Equal(t, entities.CheckoutOK, result.Kind)

	assert.Equal(t, 1, store.createCalls, "duplo clique deve gerar uma única gravação")
	assert.Equal(t, 1, payments.callCount(), "duplo clique deve gerar uma única cobrança")
}

func TestRetryPaymentReusesPendingBooking(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{err: &PaymentError{UserMessage: "Tente mais tarde."}}
	svc := newCheckout(store, payments)

	submitResult, err := svc.Submit(validCheckoutRequest())
	require.NoError(t, err)
	require.Equal(t, entities.CheckoutPaymentFailed, submitResult.Kind)

	payments.mu.Lock()
	payments.err = nil
	payments.mu.Unlock()

	retryResult, err := svc.RetryPayment(submitResult.BookingID)

	require.NoError(t, err)
	assert.Equal(t, entities.CheckoutOK, retryResult.Kind)
	assert.Equal(t, submitResult.BookingID, retryResult.BookingID)
	assert.Equal(t, 1, store.createCalls, "a reserva nunca é recriada no retry")
	assert.Equal(t, 2, payments.callCount())

	booking, getErr := store.GetBookingByID(submitResult.BookingID)
	require.NoError(t, getErr)
	assert.Equal(t, db.StatusAwaitingPayment, booking.Status)
}

func TestRetryPaymentRejectsNonPendingBooking(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	result, err := svc.Submit(validCheckoutRequest())
	require.NoError(t, err)
	require.Equal(t, entities.CheckoutOK, result.Kind)

	// Já está awaiting_payment: um novo PIX não deve ser gerado.
	_, err = svc.RetryPayment(result.BookingID)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 1, payments.callCount())
}

func TestRetryPaymentUnknownBooking(t *testing.T) {
	store := newFakeStore()
	payments := &fakePayments{}
	svc := newCheckout(store, payments)

	_, err := svc.RetryPayment("nao-existe")
	assert.Error(t, err)
	assert.Equal(t, 0, payments.callCount())
}
