package utils

import (
	"fmt"
	"math/rand"
	"time"
)

const folioChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerarFolio builds a report folio: SIRSE-<timestamp>-<4 random chars>.
// Uniqueness is ultimately enforced by the unique index on reportes.folio;
// a same-second collision of the random suffix would surface as an insert error.
func GenerarFolio() string {
	timestamp := time.Now().Format("20060102150405")
	suffix := make([]byte, 4)
	for i := range suffix {
		suffix[i] = folioChars[rand.Intn(len(folioChars))]
	}
	return fmt.Sprintf("SIRSE-%s-%s", timestamp, suffix)
}
