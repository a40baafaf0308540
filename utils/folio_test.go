package utils

import (
	"regexp"
	"strings"
	"testing"
)

var folioPattern = regexp.MustCompile(`^SIRSE-\d{14}-[A-Z0-9]{4}$`)

func TestGenerarFolio_Formato(t *testing.T) {
	for i := 0; i < 50; i++ {
		folio := GenerarFolio()
		if !folioPattern.MatchString(folio) {
			t.Fatalf("folio %q no cumple el formato SIRSE-<14 dígitos>-<4 alfanuméricos>", folio)
		}
		if !strings.HasPrefix(folio, "SIRSE-") {
			t.Fatalf("folio %q no lleva el prefijo SIRSE-", folio)
		}
	}
}
