package utils

import (
	"fmt"
	"strings"
)

// NormalizeCPF strips formatting characters ("123.456.789-00" -> "12345678900").
func NormalizeCPF(cpf string) string {
	var b strings.Builder
	for _, r := range cpf {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidCPFShape reports whether the document reduces to exactly 11 digits.
// A validação dos dígitos verificadores fica a cargo do gateway.
func IsValidCPFShape(cpf string) bool {
	return len(NormalizeCPF(cpf)) == 11
}

// FormatBRL renders an amount like "R$ 1860.00" for e-mails and SMS.
func FormatBRL(amount float64) string {
	return fmt.Sprintf("R$ %.2f", amount)
}
