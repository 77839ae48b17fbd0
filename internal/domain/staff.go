package domain

import (
	"math"
	"regexp"
	"strings"
)

// Status del staff en el panel de asistencia.
type Status string

const (
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusOff    Status = "off"
)

func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusPaused, StatusOff:
		return true
	}
	return false
}

// nombres autogenerados tipo "staff", "staff3" — reemplazables
var rePlaceholder = regexp.MustCompile(`(?i)^staff\d*$`)

// IsPlaceholderName dice si un display_name todavía es el autogenerado.
// Un placeholder nunca debe pisar un nombre real, pero sí al revés.
func IsPlaceholderName(name string) bool {
	name = strings.TrimSpace(name)
	return name == "" || rePlaceholder.MatchString(name)
}

// Points recalcula el puntaje desde los contadores: 100 msgs = 1 pt,
// 30 min en stage = 1 pt. Redondeado a 4 decimales.
func Points(messages, minutes int) float64 {
	total := float64(messages)/100.0 + float64(minutes)/30.0
	return math.Round(total*10000) / 10000
}
