package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Propósitos de token: cada uno se valida por separado para que un token de
// verificación de email no sirva como token de administración y viceversa.
const (
	PurposeAdmin        = "admin"
	PurposeVerification = "email_verification"
)

// ErrWrongPurpose el token es válido pero fue emitido para otro uso.
var ErrWrongPurpose = errors.New("jwt: propósito de token inválido")

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
type Claims struct {
	jwt.RegisteredClaims
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
	Purpose string `json:"purpose"`
}

// Signer firma y valida tokens HS256 con un secreto compartido.
type Signer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewSigner construye el firmador. Falla si el secreto está vacío.
func NewSigner(secret, issuer string) (*Signer, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	return &Signer{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// GenerateAdmin emite un token de operador con el rol indicado.
func (s *Signer) GenerateAdmin(subject, role string, ttl time.Duration) (string, error) {
	return s.sign(Claims{Role: role, Purpose: PurposeAdmin}, subject, ttl)
}

// GenerateVerification emite la prueba de que el email superó el OTP.
func (s *Signer) GenerateVerification(email string, ttl time.Duration) (string, error) {
	return s.sign(Claims{Email: email, Purpose: PurposeVerification}, email, ttl)
}

func (s *Signer) sign(claims Claims, subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    s.issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse valida firma, expiración y propósito, y devuelve los claims.
func (s *Signer) Parse(tokenString, purpose string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
