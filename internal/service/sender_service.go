package service

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"time"

	"hospedaria/internal/entities"
	"hospedaria/internal/templates"
	"hospedaria/internal/utils"
)

type SenderService struct {
}

func NewSenderService() *SenderService {
	return &SenderService{}
}

func (s *SenderService) SendReservationEmail(reservation entities.ReservationResponse, status string) {
	brLoc, errLoc := time.LoadLocation("America/Sao_Paulo")
	if errLoc != nil {
		brLoc = time.FixedZone("BRT", -3*60*60) // fallback BRT
	}

	emailData := entities.ReservationEmailData{
		GuestName:      reservation.GuestName,
		BookingID:      reservation.ID,
		PropertyTitle:  reservation.PropertyTitle,
		CheckInDate:    reservation.CheckInDate.In(brLoc).Format("02/01/2006"),
		Nights:         reservation.Nights,
		TotalFormatted: utils.FormatBRL(reservation.TotalPrice),
		CurrentYear:    time.Now().In(brLoc).Year(),
		Status:         status,
	}

	emailSubject := fmt.Sprintf("Sua reserva na Hospedaria está %s - Código: %s", status, emailData.BookingID)
	plainTextBody := fmt.Sprintf(
		"Olá %s,\n\nSua reserva na Hospedaria está %s.\n\n"+
			"Detalhes da reserva:\n"+
			"Código: %s\n"+
			"Acomodação: %s\n"+
			"Check-in: %s\n"+
			"Diárias: %d\n"+
			"Total: %s\n\n"+
			"Obrigado por escolher a Hospedaria.\n\n"+
			"Hospedaria. Todos os direitos reservados.",
		emailData.GuestName, status, emailData.BookingID, emailData.PropertyTitle,
		emailData.CheckInDate, emailData.Nights, emailData.TotalFormatted,
	)

	htmlBody, err := renderReservationEmail(emailData)
	if err != nil {
		log.Printf("ALERTA: Erro ao renderizar o template de e-mail para reserva %s: %v", emailData.BookingID, err)
	}

	go func(toEmail, guestName, subject, plainBody, htmlBodyContent string) {
		errEmail := SendEmailWithSendGrid(toEmail, guestName, subject, plainBody, htmlBodyContent)
		if errEmail != nil {
			log.Printf("ALERTA (assíncrono): Falhou o envio de e-mail da reserva %s: %v", emailData.BookingID, errEmail)
		}
	}(reservation.GuestEmail, emailData.GuestName, emailSubject, plainTextBody, htmlBody)
}

// renderReservationEmail monta o corpo HTML a partir do template embutido.
// O e-mail sai mesmo se a renderização falhar: o corpo em texto puro basta.
func renderReservationEmail(data entities.ReservationEmailData) (string, error) {
	tmpl, err := template.ParseFS(templates.FS, "reservation_email.html")
	if err != nil {
		return "", fmt.Errorf("erro ao carregar o template de e-mail: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("erro ao renderizar o template de e-mail: %w", err)
	}
	return buf.String(), nil
}

func (s *SenderService) SendReservationSMS(reservation entities.ReservationResponse, status string) {
	brLoc, errLoc := time.LoadLocation("America/Sao_Paulo")
	if errLoc != nil {
		brLoc = time.FixedZone("BRT", -3*60*60)
	}

	smsMessage := fmt.Sprintf("Hospedaria: sua reserva %s está %s!\nCheck-in: %s.\nMais detalhes no seu e-mail.",
		reservation.ID, status,
		reservation.CheckInDate.In(brLoc).Format("02/01/2006"),
	)

	errSMS := SendSMS(reservation.GuestPhone, smsMessage)
	if errSMS != nil {
		log.Printf("ALERTA: A reserva %s foi confirmada, mas falhou o envio do SMS para %s: %v", reservation.ID, reservation.GuestPhone, errSMS)
	}
}
