package email

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type captureSender struct {
	sent []*Message
	err  error
}

func (c *captureSender) Send(_ context.Context, msg *Message) error {
	if c.err != nil {
		return c.err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureSender) Name() string { return "capture" }

type emailMetrics struct {
	ports.NopMetrics
	results []string
}

func (m *emailMetrics) ObserveEmail(kind, result string) { m.results = append(m.results, kind+":"+result) }

type fakeSES struct{ input *ses.SendRawEmailInput }

func (f *fakeSES) SendRawEmail(_ context.Context, in *ses.SendRawEmailInput, _ ...func(*ses.Options)) (*ses.SendRawEmailOutput, error) {
	f.input = in
	return &ses.SendRawEmailOutput{}, nil
}

func testStore() StoreInfo {
	return StoreInfo{
		Name:         "NK2IT",
		AddressLines: []string{"222, 20B Lexington Drive", "Norwest Business Park"},
		SupportEmail: "support@nk2it.com.au",
	}
}

func newTestNotifier(t *testing.T, sender Sender) (*Notifier, *emailMetrics) {
	t.Helper()
	m := &emailMetrics{}
	n, err := NewNotifier(sender, testStore(), "AUD", m, zerolog.Nop())
	require.NoError(t, err)
	return n, m
}

// ──────────────────────────────────────────────────────────────────────────────
// Notifier
// ──────────────────────────────────────────────────────────────────────────────

func TestSendVerificationCode(t *testing.T) {
	s := &captureSender{}
	n, m := newTestNotifier(t, s)

	err := n.SendVerificationCode(context.Background(), ports.VerificationMessage{
		To: "buyer@example.com", Code: "012345", Expires: 10 * time.Minute,
	})
	require.NoError(t, err)
	require.Len(t, s.sent, 1)
	assert.Equal(t, "NK2IT - Email Verification Code", s.sent[0].Subject)
	assert.Contains(t, s.sent[0].HTML, "012345")
	assert.Contains(t, s.sent[0].HTML, "expire in 10 minutes")
	assert.Contains(t, s.sent[0].HTML, "222, 20B Lexington Drive, Norwest Business Park")
	assert.Equal(t, []string{"verification:success"}, m.results)
}

func TestSendLicenseKeys(t *testing.T) {
	s := &captureSender{}
	n, _ := newTestNotifier(t, s)

	err := n.SendLicenseKeys(context.Background(), ports.LicenseKeysMessage{
		To: "buyer@example.com", CustomerName: "Ada <Lovelace>", OrderID: "NK2IT-1",
		Total: decimal.RequireFromString("98.99"),
		Groups: []ports.LicenseKeyGroup{
			{ProductName: "Symantec Endpoint Protection Enterprise", Keys: []string{"SEPEP-AAAAA-BBBBB-CCCCC-DDDD"}},
		},
	})
	require.NoError(t, err)
	msg := s.sent[0]
	assert.Equal(t, "NK2IT - Your Symantec License Keys (Order #NK2IT-1)", msg.Subject)
	assert.Contains(t, msg.HTML, "SEPEP-AAAAA-BBBBB-CCCCC-DDDD")
	assert.Contains(t, msg.HTML, "$98.99 AUD")
	assert.Contains(t, msg.HTML, "Ada &lt;Lovelace&gt;", "html/template escapa el nombre")
	assert.Empty(t, msg.Attachments)
}

func TestSendInvoice_AdjuntaPDF(t *testing.T) {
	s := &captureSender{}
	n, _ := newTestNotifier(t, s)

	err := n.SendInvoice(context.Background(), ports.InvoiceMessage{
		To: "buyer@example.com", OrderID: "NK2IT-1", Total: decimal.RequireFromString("98.99"),
		Filename: "NK2IT-Invoice-NK2IT-1.pdf", PDF: []byte("%PDF-1.3"),
	})
	require.NoError(t, err)
	msg := s.sent[0]
	assert.Equal(t, "NK2IT - Invoice for Order #NK2IT-1", msg.Subject)
	require.Len(t, msg.Attachments, 1)
	assert.Equal(t, "NK2IT-Invoice-NK2IT-1.pdf", msg.Attachments[0].Filename)
	assert.Equal(t, "application/pdf", msg.Attachments[0].ContentType)
}

func TestNotifier_FalloDeTransporte(t *testing.T) {
	n, m := newTestNotifier(t, &captureSender{err: errors.New("connection refused")})

	err := n.SendVerificationCode(context.Background(), ports.VerificationMessage{To: "a@b.com", Code: "123456"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotificationFailed)
	assert.Equal(t, []string{"verification:failed"}, m.results)
}

// ──────────────────────────────────────────────────────────────────────────────
// Transportes
// ──────────────────────────────────────────────────────────────────────────────

func TestSESSender_MensajeMIME(t *testing.T) {
	client := &fakeSES{}
	s := &SESSender{client: client, from: Address{Email: "noreply@nk2it.com.au", Name: "NK2IT"}}

	pdf := bytes.Repeat([]byte("%PDF-1.3 data "), 20)
	err := s.Send(context.Background(), &Message{
		To: "buyer@example.com", Subject: "NK2IT - Invoice for Order #1", HTML: "<p>hola</p>",
		Attachments: []Attachment{{Filename: "inv.pdf", ContentType: "application/pdf", Content: pdf}},
	})
	require.NoError(t, err)
	require.NotNil(t, client.input)
	assert.Equal(t, []string{"buyer@example.com"}, client.input.Destinations)

	parsed, err := mail.ReadMessage(bytes.NewReader(client.input.RawMessage.Data))
	require.NoError(t, err)
	assert.Equal(t, "NK2IT - Invoice for Order #1", parsed.Header.Get("Subject"))
	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/mixed", mediaType)

	mr := multipart.NewReader(parsed.Body, params["boundary"])
	htmlPart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Contains(t, htmlPart.Header.Get("Content-Type"), "text/html")

	attPart, err := mr.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "inv.pdf", attPart.FileName())
	raw, err := io.ReadAll(attPart)
	require.NoError(t, err)
	decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(string(raw), "\r\n", ""))
	require.NoError(t, err)
	assert.Equal(t, pdf, decoded)
}

func TestSESSender_RemitenteConAcentos(t *testing.T) {
	client := &fakeSES{}
	s := &SESSender{client: client, from: Address{Email: "ventas@tienda.com", Name: "Tienda Mañana"}}

	require.NoError(t, s.Send(context.Background(), &Message{To: "buyer@example.com", Subject: "Código", HTML: "<p>x</p>"}))

	parsed, err := mail.ReadMessage(bytes.NewReader(client.input.RawMessage.Data))
	require.NoError(t, err)
	from, err := parsed.Header.AddressList("From")
	require.NoError(t, err)
	require.Len(t, from, 1)
	assert.Equal(t, "Tienda Mañana", from[0].Name)
	assert.Equal(t, "ventas@tienda.com", from[0].Address)

	subject, err := new(mime.WordDecoder).DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Código", subject)

	source, err := mail.ParseAddress(*client.input.Source)
	require.NoError(t, err)
	assert.Equal(t, "Tienda Mañana", source.Name)
}

func TestSendGridSender_AdjuntoEnBase64(t *testing.T) {
	s := NewSendGridSender("SG.test", Address{Email: "noreply@nk2it.com.au", Name: "NK2IT"})
	m := s.build(&Message{
		To: "buyer@example.com", Subject: "s", HTML: "<p>x</p>",
		Attachments: []Attachment{{Filename: "inv.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}},
	})
	require.Len(t, m.Attachments, 1)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF")), m.Attachments[0].Content)
	assert.Equal(t, "NK2IT", m.From.Name)
}

func TestSMTPSender_Construye(t *testing.T) {
	s := NewSMTPSender("localhost", 1025, "", "", Address{Email: "noreply@nk2it.com.au", Name: "NK2IT"})
	m := s.build(&Message{
		To: "buyer@example.com", Subject: "Hola", HTML: "<p>x</p>",
		Attachments: []Attachment{{Filename: "inv.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}},
	})
	var buf bytes.Buffer
	_, err := m.WriteTo(&buf)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Subject: Hola")
	assert.Contains(t, out, `filename="inv.pdf"`)
	assert.Contains(t, out, base64.StdEncoding.EncodeToString([]byte("%PDF")))
}

func TestNewSender(t *testing.T) {
	s, err := NewSender(context.Background(), Options{Transport: TransportLog}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, TransportLog, s.Name())

	_, err = NewSender(context.Background(), Options{Transport: TransportSMTP}, zerolog.Nop())
	assert.Error(t, err)

	_, err = NewSender(context.Background(), Options{Transport: "pigeon"}, zerolog.Nop())
	assert.Error(t, err)

	require.NoError(t, NewLogSender(zerolog.Nop()).Send(context.Background(), &Message{To: "a@b.com"}))
}
