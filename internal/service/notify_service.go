package service

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
)

func SendEmailWithSendGrid(toEmailAddress, toName, subject, plainTextContent, htmlContent string) error {
	sendgridAPIKey := os.Getenv("SENDGRID_API_KEY")
	if sendgridAPIKey == "" {
		log.Println("AVISO: SENDGRID_API_KEY não está configurada. O e-mail não será enviado.")
		return fmt.Errorf("SENDGRID_API_KEY não está configurada")
	}

	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if fromEmail == "" {
		log.Println("AVISO: SENDGRID_FROM_EMAIL não está configurada. O e-mail não será enviado.")
		return fmt.Errorf("SENDGRID_FROM_EMAIL não está configurada")
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Hospedaria"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toName, toEmailAddress)

	message := mail.NewSingleEmail(from, subject, to, plainTextContent, htmlContent)

	client := sendgrid.NewSendClient(sendgridAPIKey)
	response, err := client.Send(message)

	if err != nil {
		log.Printf("Erro ao enviar e-mail via SendGrid para %s: %v", toEmailAddress, err)
		return fmt.Errorf("falha no envio do e-mail através do SendGrid: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		log.Printf("E-mail enviado com sucesso para %s (Assunto: %s). Status: %d", toEmailAddress, subject, response.StatusCode)
		return nil
	}

	log.Printf("Erro ao enviar e-mail para %s via SendGrid. Status: %d, Corpo: %s",
		toEmailAddress, response.StatusCode, response.Body)
	return fmt.Errorf("SendGrid devolveu status não esperado %d: %s", response.StatusCode, response.Body)
}

func SendSMS(toNumber string, messageBody string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")

	if accountSid == "" || authToken == "" || fromNumber == "" {
		log.Println("AVISO: Credenciais da Twilio (SID, Token ou From Number) não estão configuradas. O SMS não será enviado.")
		return fmt.Errorf("credenciais da Twilio não configuradas completamente")
	}

	if !strings.HasPrefix(toNumber, "+") {
		log.Printf("AVISO: O número de destino '%s' não está em formato E.164 (deve começar com '+'). O SMS pode falhar.", toNumber)
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username:   accountSid,
		Password:   authToken,
		AccountSid: accountSid,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(messageBody)

	resp, err := client.Api.CreateMessage(params)
	if err != nil {
		log.Printf("Erro ao enviar SMS para %s via Twilio: %v", toNumber, err)
		return fmt.Errorf("falha no envio do SMS: %w", err)
	}

	if resp != nil && resp.Sid != nil {
		log.Printf("SMS enviado com sucesso para %s. SID da mensagem: %s", toNumber, *resp.Sid)
	}

	return nil
}
