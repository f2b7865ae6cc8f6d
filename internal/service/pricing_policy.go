package service

import "math"

const (
	// Limite máximo por transação imposto pelo adquirente para PIX.
	defaultPixCeiling = 1000.0

	// Teto absoluto de diárias por reserva, independente do preço.
	maxNightsHardLimit = 30
)

// PricingPolicy deriva, do preço da diária e do teto do adquirente, quantas
// noites uma única reserva pode cobrir, e converte totais para centavos.
type PricingPolicy struct {
	PixCeiling float64
}

func NewPricingPolicy(ceiling float64) *PricingPolicy {
	if ceiling <= 0 {
		ceiling = defaultPixCeiling
	}
	return &PricingPolicy{PixCeiling: ceiling}
}

// MaxNights returns the largest number of nights whose total stays within
// the provider ceiling, clamped to [1, 30]. While the price is unknown or
// zero the most restrictive bound applies.
func (p *PricingPolicy) MaxNights(pricePerNight float64) int {
	if pricePerNight <= 0 || math.IsNaN(pricePerNight) || math.IsInf(pricePerNight, 0) {
		return 1
	}
	computed := int(math.Floor(p.PixCeiling / pricePerNight))
	if computed < 1 {
		return 1
	}
	if computed > maxNightsHardLimit {
		return maxNightsHardLimit
	}
	return computed
}

// ClampNights never returns more than max nor less than 1.
func (p *PricingPolicy) ClampNights(requested, max int) int {
	if requested > max {
		requested = max
	}
	if requested < 1 {
		return 1
	}
	return requested
}

// CentsFromTotal converts a price to minor units, rounding to the nearest
// centavo. O gateway rejeita valor zero, então o piso é 1.
func CentsFromTotal(total float64) int64 {
	cents := int64(math.Round(total * 100))
	if cents < 1 {
		cents = 1
	}
	return cents
}
