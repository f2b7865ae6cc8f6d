package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"hospedaria/internal/entities"
)

// PaymentError carrega a mensagem que o gateway considera segura de exibir
// ao usuário final.
type PaymentError struct {
	StatusCode  int
	UserMessage string
	Detail      string
}

func (e *PaymentError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("gateway PIX respondeu %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("gateway PIX respondeu %d", e.StatusCode)
}

// PixService fala com o gateway HuraPay por JSON/HTTP. O gateway aplica seu
// próprio timeout; aqui só garantimos que uma resposta que não chega conte
// como falha explícita.
type PixService struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewPixService() *PixService {
	return &PixService{
		BaseURL: os.Getenv("HURAPAY_BASE_URL"),
		APIKey:  os.Getenv("HURAPAY_API_KEY"),
		Client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type pixChargeResponse struct {
	OK  bool `json:"ok"`
	Pix struct {
		QRCode    string `json:"qrCode"`
		CopyPaste string `json:"copyPaste"`
	} `json:"pix"`
	UserMessage string `json:"userMessage"`
	ErrorDetail string `json:"error"`
}

// CreateIntent cria a cobrança PIX. O bookingId vai também como chave de
// idempotência, já que ele foi gerado no cliente antes de qualquer rede.
func (s *PixService) CreateIntent(req entities.PaymentIntentRequest) (*entities.PaymentIntent, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição PIX: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.BaseURL+"/v1/pix/charges", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("erro ao montar requisição PIX: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.APIKey)
	httpReq.Header.Set("Idempotency-Key", req.BookingID)

	resp, err := s.Client.Do(httpReq)
	if err != nil {
		return nil, &PaymentError{UserMessage: "", Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return nil, &PaymentError{StatusCode: resp.StatusCode, Detail: err.Error()}
	}

	var parsed pixChargeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, &PaymentError{StatusCode: resp.StatusCode, Detail: "resposta inválida do gateway"}
	}

	// Status 2xx com ok=false também é falha: o payload manda.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !parsed.OK {
		return nil, &PaymentError{
			StatusCode:  resp.StatusCode,
			UserMessage: parsed.UserMessage,
			Detail:      parsed.ErrorDetail,
		}
	}

	if parsed.Pix.QRCode == "" && parsed.Pix.CopyPaste == "" {
		return nil, &PaymentError{StatusCode: resp.StatusCode, Detail: "gateway não devolveu QR nem copia-e-cola"}
	}

	return &entities.PaymentIntent{
		QRCode:    parsed.Pix.QRCode,
		CopyPaste: parsed.Pix.CopyPaste,
	}, nil
}
