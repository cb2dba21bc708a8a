// Package license: generación y validación de claves de licencia por puesto.
// Formato: <PREFIX>-XXXXX-XXXXX-XXXXX-XXXX sobre el alfabeto [A-Z0-9].
package license

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"regexp"
	"strings"
)

// FallbackPrefix prefijo para productos sin prefijo propio.
const FallbackPrefix = "SYMNT"

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// segmentLengths longitudes de los segmentos aleatorios que siguen al prefijo.
var segmentLengths = []int{5, 5, 5, 4}

var keyPattern = regexp.MustCompile(`^[A-Z0-9]+-[A-Z0-9]{5}-[A-Z0-9]{5}-[A-Z0-9]{5}-[A-Z0-9]{4}$`)

// DefaultPrefixes prefijo por producto del catálogo.
var DefaultPrefixes = map[string]string{
	"endpoint-protection": "SEPEP",
	"endpoint-complete":   "SESCO",
}

// Generator genera claves con un prefijo por producto.
type Generator struct {
	prefixes map[string]string
	products map[string]string // prefijo -> producto
	rand     io.Reader
}

// NewGenerator construye el generador; prefixes nil usa DefaultPrefixes.
func NewGenerator(prefixes map[string]string) *Generator {
	if prefixes == nil {
		prefixes = DefaultPrefixes
	}
	g := &Generator{
		prefixes: make(map[string]string, len(prefixes)),
		products: make(map[string]string, len(prefixes)),
		rand:     rand.Reader,
	}
	for product, prefix := range prefixes {
		g.prefixes[product] = prefix
		g.products[prefix] = product
	}
	return g
}

// Prefix devuelve el prefijo del producto o FallbackPrefix.
func (g *Generator) Prefix(productID string) string {
	if p, ok := g.prefixes[productID]; ok {
		return p
	}
	return FallbackPrefix
}

// Generate devuelve n claves nuevas para el producto.
func (g *Generator) Generate(productID string, n int) ([]string, error) {
	if n < 0 {
		return nil, fmt.Errorf("license: cantidad negativa %d", n)
	}
	prefix := g.Prefix(productID)
	keys := make([]string, 0, n)
	for i := 0; i < n; i++ {
		k, err := g.one(prefix)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

func (g *Generator) one(prefix string) (string, error) {
	var b strings.Builder
	b.WriteString(prefix)
	max := big.NewInt(int64(len(alphabet)))
	for _, size := range segmentLengths {
		b.WriteByte('-')
		for i := 0; i < size; i++ {
			n, err := rand.Int(g.rand, max)
			if err != nil {
				return "", fmt.Errorf("license: generar aleatorio: %w", err)
			}
			b.WriteByte(alphabet[n.Int64()])
		}
	}
	return b.String(), nil
}

// IsValidFormat verifica la forma de la clave (no su existencia).
func IsValidFormat(key string) bool {
	return keyPattern.MatchString(key)
}

// ProductFromKey devuelve el producto asociado al prefijo, o "" si la clave
// no tiene formato válido o el prefijo no es conocido.
func (g *Generator) ProductFromKey(key string) string {
	if !IsValidFormat(key) {
		return ""
	}
	prefix, _, _ := strings.Cut(key, "-")
	return g.products[prefix]
}
