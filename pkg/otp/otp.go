// Package otp genera y compara códigos numéricos de un solo uso.
package otp

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
)

// Length longitud de los códigos de verificación de email.
const Length = 6

// Generator genera códigos numéricos de longitud fija.
type Generator struct {
	length int
}

// NewGenerator crea un generador; longitudes fuera de [4,10] se ajustan al rango.
func NewGenerator(length int) *Generator {
	if length < 4 {
		length = 4
	}
	if length > 10 {
		length = 10
	}
	return &Generator{length: length}
}

// Generate devuelve un código uniforme en [0, 10^length) con ceros a la izquierda.
func (g *Generator) Generate() (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(g.length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("otp: generar número aleatorio: %w", err)
	}
	return fmt.Sprintf("%0*d", g.length, n), nil
}

// Validate comprueba longitud y que todos los caracteres sean dígitos.
func (g *Generator) Validate(code string) bool {
	if len(code) != g.length {
		return false
	}
	for _, c := range code {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// Equal compara en tiempo constante.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// NormalizeCode elimina espacios y guiones que el usuario pueda haber tecleado.
func NormalizeCode(code string) string {
	code = strings.TrimSpace(code)
	code = strings.ReplaceAll(code, " ", "")
	return strings.ReplaceAll(code, "-", "")
}
