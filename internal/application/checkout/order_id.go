package checkout

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewOrderID "<prefix>-<unix ms>-<6 caracteres base36 en mayúsculas>".
func NewOrderID(prefix string, now time.Time) (string, error) {
	suffix, err := randomBase36(6)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%d-%s", prefix, now.UnixMilli(), suffix), nil
}

func randomBase36(n int) (string, error) {
	max := big.NewInt(int64(len(base36)))
	b := make([]byte, n)
	for i := range b {
		v, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("order id: %w", err)
		}
		b[i] = base36[v.Int64()]
	}
	return string(b), nil
}
