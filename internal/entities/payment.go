package entities

// PaymentLineItem segue o formato do gateway: valores sempre em centavos.
type PaymentLineItem struct {
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
}

type PaymentIntentRequest struct {
	BookingID   string            `json:"bookingId"`
	AmountCents int64             `json:"amountCents"`
	Guest       Guest             `json:"guest"`
	Items       []PaymentLineItem `json:"items"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// PaymentIntent é exibido como veio do gateway; o QR e o copia-e-cola
// nunca são interpretados ou alterados aqui.
type PaymentIntent struct {
	QRCode    string `json:"qrCode"`
	CopyPaste string `json:"copyPaste"`
}
