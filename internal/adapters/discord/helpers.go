package discord

import (
	"regexp"
	"strings"
)

var reMention = regexp.MustCompile(`<[@#]&?!?(\d+)>`)

// parseIDs acepta menciones (<#id>, <@id>) o ids crudos separados por
// espacios.
func parseIDs(raw string) []string {
	ids := []string{}
	for _, tok := range strings.Fields(raw) {
		if m := reMention.FindStringSubmatch(tok); len(m) == 2 {
			ids = append(ids, m[1])
			continue
		}
		allDigits := true
		for _, r := range tok {
			if r < '0' || r > '9' {
				allDigits = false
				break
			}
		}
		if allDigits && tok != "" {
			ids = append(ids, tok)
		}
	}
	return ids
}

// progressBar: barra de 'length' celdas para la parte fraccionaria de
// los puntos.
func progressBar(fraction float64, length int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(length) + 0.5)
	return strings.Repeat("▰", filled) + strings.Repeat("▱", length-filled)
}
