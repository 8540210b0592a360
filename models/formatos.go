package models

import (
	"regexp"
	"strings"
)

// Field formats enforced on client data, matching the shop's paper forms:
// identity number 13 digits, RTN 14 digits, phone 8 digits. Hyphens are
// optional on input; Formatear* canonicalizes to the hyphenated form.
var (
	reTelefono  = regexp.MustCompile(`^[2-9]\d{3}-?\d{4}$`)
	reRTN       = regexp.MustCompile(`^\d{4}-?\d{4}-?\d{6}$`)
	reIdentidad = regexp.MustCompile(`^\d{4}-?\d{4}-?\d{5}$`)
)

// TelefonoValido reports whether v is a valid 8-digit phone (xxxx-xxxx).
func TelefonoValido(v string) bool { return reTelefono.MatchString(strings.TrimSpace(v)) }

// RTNValido reports whether v is a valid 14-digit RTN (xxxx-xxxx-xxxxxx).
func RTNValido(v string) bool { return reRTN.MatchString(strings.TrimSpace(v)) }

// IdentidadValida reports whether v is a valid 13-digit identity number
// (xxxx-xxxx-xxxxx).
func IdentidadValida(v string) bool { return reIdentidad.MatchString(strings.TrimSpace(v)) }

func soloDigitos(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatearTelefono canonicalizes a phone number to xxxx-xxxx.
func FormatearTelefono(v string) string {
	d := soloDigitos(v)
	if len(d) <= 4 {
		return d
	}
	if len(d) > 8 {
		d = d[:8]
	}
	return d[:4] + "-" + d[4:]
}

// FormatearRTN canonicalizes an RTN to xxxx-xxxx-xxxxxx.
func FormatearRTN(v string) string {
	d := soloDigitos(v)
	switch {
	case len(d) <= 4:
		return d
	case len(d) <= 8:
		return d[:4] + "-" + d[4:]
	default:
		if len(d) > 14 {
			d = d[:14]
		}
		return d[:4] + "-" + d[4:8] + "-" + d[8:]
	}
}

// FormatearIdentidad canonicalizes an identity number to xxxx-xxxx-xxxxx.
func FormatearIdentidad(v string) string {
	d := soloDigitos(v)
	switch {
	case len(d) <= 4:
		return d
	case len(d) <= 8:
		return d[:4] + "-" + d[4:]
	default:
		if len(d) > 13 {
			d = d[:13]
		}
		return d[:4] + "-" + d[4:8] + "-" + d[8:]
	}
}
