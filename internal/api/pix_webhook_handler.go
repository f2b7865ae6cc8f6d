package api

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"hospedaria/internal/service"
)

const (
	eventChargePaid = "charge.paid"
)

// PixWebhookHandler recebe as notificações do gateway. A assinatura
// HMAC-SHA256 do corpo vem no header X-Hura-Signature.
type PixWebhookHandler struct {
	WebhookSecret      string
	reservationService *service.ReservationService
}

func NewPixWebhookHandler(webhookSecret string, reservationService *service.ReservationService) *PixWebhookHandler {
	return &PixWebhookHandler{
		WebhookSecret:      webhookSecret,
		reservationService: reservationService,
	}
}

func (h *PixWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	const maxBodyBytes = int64(65536)
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		log.Printf("Error reading body: %v", err)
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	sigHeader := r.Header.Get("X-Hura-Signature")
	if !verifySignature(payload, sigHeader, h.WebhookSecret) {
		log.Printf("Webhook signature verification failed")
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var event PixWebhookPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Printf("Error parsing webhook payload: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	switch event.Event {
	case eventChargePaid:
		if event.BookingID == "" {
			log.Printf("No bookingId in charge.paid event")
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if err := h.reservationService.ConfirmBookingPaid(event.BookingID, event.TxID); err != nil {
			log.Printf("Erro ao confirmar reserva %s: %v", event.BookingID, err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	default:
		log.Printf("Unhandled event type: %s", event.Event)
	}

	w.WriteHeader(http.StatusOK)
}

func verifySignature(payload []byte, sigHeader, secret string) bool {
	if sigHeader == "" || secret == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(sigHeader))
}
