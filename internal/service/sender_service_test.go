package service

import (
	"testing"

	"hospedaria/internal/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderReservationEmail(t *testing.T) {
	data := entities.ReservationEmailData{
		GuestName:      "Ana Souza",
		BookingID:      "b-1",
		PropertyTitle:  "Chalé na serra",
		CheckInDate:    "10/09/2026",
		Nights:         2,
		TotalFormatted: "R$ 778,00",
		CurrentYear:    2026,
		Status:         "confirmada",
	}

	// O template é embutido no binário: renderizar não pode depender do
	// diretório de trabalho do processo.
	html, err := renderReservationEmail(data)

	require.NoError(t, err)
	assert.Contains(t, html, "Olá, Ana Souza!")
	assert.Contains(t, html, "<strong>confirmada</strong>")
	assert.Contains(t, html, "b-1")
	assert.Contains(t, html, "Chalé na serra")
	assert.Contains(t, html, "10/09/2026")
	assert.Contains(t, html, "R$ 778,00")
}

func TestRenderReservationEmailEscapesInput(t *testing.T) {
	data := entities.ReservationEmailData{
		GuestName: "<script>alert(1)</script>",
	}

	html, err := renderReservationEmail(data)

	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
