package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
)

var _ ports.PaymentGateway = (*BPointGateway)(nil)

// DefaultBPointURL endpoint de producción de la API v3.
const DefaultBPointURL = "https://www.bpoint.com.au/webapi/v3"

const bpointSuccess = "SUCCESS"

// BPointGateway adaptador REST de BPOINT. Los datos de tarjeta solo viajan en
// el cuerpo de la petición; nunca se registran.
type BPointGateway struct {
	apiURL     string
	merchantID string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewBPointGateway construye el adaptador. apiURL vacío usa DefaultBPointURL.
func NewBPointGateway(apiURL, merchantID, apiKey string, timeout time.Duration, log zerolog.Logger) *BPointGateway {
	if apiURL == "" {
		apiURL = DefaultBPointURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &BPointGateway{
		apiURL:     strings.TrimRight(apiURL, "/"),
		merchantID: merchantID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// ── Protocolo BPOINT ─────────────────────────────────────────────────────────

type bpointPayment struct {
	Amount    int64          `json:"amount"`
	Currency  string         `json:"currency"`
	Reference string         `json:"reference"`
	Customer  bpointCustomer `json:"customer"`
	Card      bpointCard     `json:"card"`
	Type      string         `json:"type"`
}

type bpointCustomer struct {
	ContactDetails struct {
		EmailAddress string `json:"emailAddress"`
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
	} `json:"contactDetails"`
	Address struct {
		AddressLine1 string `json:"addressLine1"`
		City         string `json:"city"`
		State        string `json:"state"`
		PostCode     string `json:"postCode"`
		CountryCode  string `json:"countryCode"`
	} `json:"address"`
}

type bpointCard struct {
	CardNumber      string `json:"cardNumber"`
	ExpiryDateMonth string `json:"expiryDateMonth"`
	ExpiryDateYear  string `json:"expiryDateYear"`
	CVN             string `json:"cvn"`
	CardHolderName  string `json:"cardHolderName"`
}

type bpointRefund struct {
	OriginalTxnNumber string `json:"originalTxnNumber"`
	Amount            int64  `json:"amount"`
	Type              string `json:"type"`
	MerchantReference string `json:"merchantReference,omitempty"`
}

type bpointResponse struct {
	ResponseCode      string `json:"responseCode"`
	ResponseText      string `json:"responseText"`
	TransactionNumber string `json:"transactionNumber"`
	MerchantReference string `json:"merchantReference"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// Process cobra la orden. Rechazos y fallos de red se devuelven como Success=false.
func (g *BPointGateway) Process(ctx context.Context, req ports.PaymentRequest) (*ports.PaymentResult, error) {
	month, year := splitExpiry(req.Card.Expiry)
	payload := bpointPayment{
		Amount:    ToCents(req.Amount),
		Currency:  req.Currency,
		Reference: req.OrderID,
		Card: bpointCard{
			CardNumber:      CleanCardNumber(req.Card.Number),
			ExpiryDateMonth: month,
			ExpiryDateYear:  year,
			CVN:             req.Card.CVV,
			CardHolderName:  req.Card.HolderName,
		},
		Type: "payment",
	}
	payload.Customer.ContactDetails.EmailAddress = req.Email
	payload.Customer.ContactDetails.FirstName = req.Billing.FirstName
	payload.Customer.ContactDetails.LastName = req.Billing.LastName
	payload.Customer.Address.AddressLine1 = req.Billing.Street
	payload.Customer.Address.City = req.Billing.City
	payload.Customer.Address.State = req.Billing.State
	payload.Customer.Address.PostCode = req.Billing.Postcode
	payload.Customer.Address.CountryCode = "AU"

	res, err := g.post(ctx, payload)
	if err != nil {
		g.log.Error().Err(err).Str("order_id", req.OrderID).Msg("bpoint: pago")
		return &ports.PaymentResult{Success: false, Error: MsgServiceUnavailable}, nil
	}
	if res.ResponseCode != bpointSuccess {
		msg := res.ResponseText
		if msg == "" {
			msg = MsgProcessingFailed
		}
		return &ports.PaymentResult{Success: false, Error: msg}, nil
	}
	return &ports.PaymentResult{Success: true, TransactionID: res.TransactionNumber, Reference: res.MerchantReference}, nil
}

// Refund devuelve el importe de una transacción previa.
func (g *BPointGateway) Refund(ctx context.Context, req ports.RefundRequest) (*ports.PaymentResult, error) {
	res, err := g.post(ctx, bpointRefund{
		OriginalTxnNumber: req.TransactionID,
		Amount:            ToCents(req.Amount),
		Type:              "refund",
		MerchantReference: req.Reason,
	})
	if err != nil {
		g.log.Error().Err(err).Str("order_id", req.OrderID).Msg("bpoint: devolución")
		return &ports.PaymentResult{Success: false, Error: MsgRefundUnavailable}, nil
	}
	if res.ResponseCode != bpointSuccess {
		msg := res.ResponseText
		if msg == "" {
			msg = MsgRefundFailed
		}
		return &ports.PaymentResult{Success: false, Error: msg}, nil
	}
	return &ports.PaymentResult{Success: true, TransactionID: res.TransactionNumber, Reference: res.MerchantReference}, nil
}

// post envía el payload a /transactions. Un status no-2xx con cuerpo JSON válido
// se devuelve como respuesta (rechazo); sin cuerpo legible es error.
func (g *BPointGateway) post(ctx context.Context, payload any) (*bpointResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("bpoint: serializar request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.apiURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bpoint: crear HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.merchantID, g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("bpoint: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("bpoint: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("bpoint: leer respuesta: %w", err)
	}
	var out bpointResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("bpoint: HTTP %d: deserializar respuesta: %w", resp.StatusCode, err)
	}
	if resp.StatusCode >= 300 && out.ResponseCode == bpointSuccess {
		out.ResponseCode = ""
	}
	return &out, nil
}

// ToCents importe en centavos redondeado.
func ToCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// splitExpiry "MM/YY" -> ("MM", "20YY").
func splitExpiry(expiry string) (string, string) {
	month, year, _ := strings.Cut(strings.TrimSpace(expiry), "/")
	month = strings.TrimSpace(month)
	year = strings.TrimSpace(year)
	if len(year) == 2 {
		year = "20" + year
	}
	return month, year
}
