// Package pdf genera la factura de la orden con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  INVOICE + datos de la tienda │  N° factura + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  BILL TO: nombre, empresa, email, dirección                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: No | Qty | Product | Unit price | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  AMOUNT / GST (10%) / TOTAL                                  │
//	│  CLAVES DE LICENCIA por producto                             │
//	│  TERMS & CONDITIONS                                          │
//	│  Pie: agradecimiento + contacto                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/licenseshop-api/internal/application/ports"
	"github.com/jhoicas/licenseshop-api/internal/domain/entity"
	"github.com/jhoicas/licenseshop-api/pkg/money"
)

var _ ports.InvoiceRenderer = (*InvoiceRenderer)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorAccent = &props.Color{Red: 255, Green: 122, Blue: 0}
	colorFooter = &props.Color{Red: 0, Green: 166, Blue: 90}
	colorGray   = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorBlack  = &props.Color{Red: 0, Green: 0, Blue: 0}
)

// termsAndConditions texto fijo de la factura. Las líneas vacías separan párrafos.
var termsAndConditions = []string{
	"Payment Terms: Once the payment is processed, a license key will be sent to the registered email address.",
	"",
	"Refund Policy: All sales are final. No refunds will be issued after the software has been purchased or delivered. " +
		"If the software is defective or an incorrect product is delivered, please contact customer support within 7 days.",
	"",
	"License Terms: The purchase provides a non-transferable license to use the Symantec Endpoint Agent software. " +
		"Ownership remains with Symantec and is subject to the terms of the EULA (End-User License Agreement).",
	"",
	"Support: Basic customer support is available through %s. If you require extended support, " +
		"you must coordinate with respective vendors.",
	"",
	"Limitation of Liability: Our liability is limited to the purchase price of the software. We are not responsible " +
		"for any consequential, incidental, or indirect damages arising from the use or inability to use the software.",
}

// StoreInfo datos del emisor impresos en la factura.
type StoreInfo struct {
	Name         string
	LegalName    string
	AddressLines []string
	SupportEmail string
	Phone        string
	Website      string
}

// ── Renderer ──────────────────────────────────────────────────────────────────

// InvoiceRenderer implementa ports.InvoiceRenderer usando Maroto v2.
type InvoiceRenderer struct {
	store StoreInfo
}

// NewInvoiceRenderer construye el renderer.
func NewInvoiceRenderer(store StoreInfo) *InvoiceRenderer {
	return &InvoiceRenderer{store: store}
}

// RenderInvoice genera el PDF y devuelve sus bytes. Maroto pagina automáticamente.
func (g *InvoiceRenderer) RenderInvoice(_ context.Context, doc ports.InvoiceDocument) ([]byte, error) {
	if doc.Order == nil {
		return nil, fmt.Errorf("pdf: orden requerida")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Invoice "+doc.Order.ID, true).
		WithAuthor(nonEmpty(g.store.LegalName, g.store.Name), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc))
	m.AddRows(line.NewRow(2, props.Line{Color: colorAccent, Thickness: 0.5}))
	m.AddRows(billToRows(doc)...)
	m.AddRows(line.NewRow(4))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorBlack, Thickness: 0.3}))
	m.AddRows(tableItemRows(doc.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(totalsRow(doc.Order))

	if len(doc.LicenseKeys) > 0 {
		m.AddRows(line.NewRow(4))
		m.AddRows(licenseKeyRows(doc.LicenseKeys)...)
	}

	m.AddRows(line.NewRow(4))
	m.AddRows(g.termsRows()...)
	m.AddRows(line.NewRow(6))
	m.AddRows(g.footerRows()...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título y tienda (izq), número y fecha (der).
func (g *InvoiceRenderer) headerRow(doc ports.InvoiceDocument) core.Row {
	left := []core.Component{
		text.New("INVOICE", props.Text{Style: fontstyle.Bold, Size: 22, Color: colorAccent}),
		text.New(nonEmpty(g.store.LegalName, g.store.Name), props.Text{Style: fontstyle.Bold, Size: 11, Top: 12}),
	}
	for i, l := range g.store.AddressLines {
		left = append(left, text.New(l, props.Text{Size: 9, Top: float64(18 + 4*i), Color: colorGray}))
	}
	return row.New(32).Add(
		col.New(7).Add(left...),
		col.New(5).Add(
			text.New("INVOICE NUMBER: "+doc.Order.ID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 12,
			}),
			text.New("Date: "+doc.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 9, Align: align.Right, Top: 18, Color: colorGray,
			}),
		),
	)
}

// billToRows: comprador y dirección de facturación capturada en la orden.
func billToRows(doc ports.InvoiceDocument) []core.Row {
	b := doc.Order.BillingAddress
	name := b.FullName()
	if doc.Customer != nil && doc.Customer.FullName() != "" {
		name = doc.Customer.FullName()
	}
	lines := []string{name}
	if b.Company != "" {
		lines = append(lines, b.Company)
	}
	lines = append(lines, "Email: "+doc.Order.Email)
	lines = append(lines, b.Lines()...)

	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("BILL TO", props.Text{Style: fontstyle.Bold, Size: 11}))),
	}
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(col.New(12).Add(text.New(l, props.Text{Size: 9}))))
	}
	return rows
}

// tableHeaderRow: cabecera de la tabla de productos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a, Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(7).Add(
		h("NO", 1, align.Left),
		h("QTY", 1, align.Center),
		h("PRODUCT DESCRIPTION", 6, align.Left),
		h("UNIT PRICE", 2, align.Right),
		h("TOTAL PRICE", 2, align.Right),
	)
}

// tableItemRows: una fila por línea de la orden.
func tableItemRows(items []*entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for i, it := range items {
		cell := func(s string, a align.Type) core.Component {
			return text.New(s, props.Text{Size: 9, Align: a, Top: 1, Left: 1, Right: 1})
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(cell(strconv.Itoa(i+1), align.Left)),
			col.New(1).Add(cell(strconv.Itoa(it.Quantity), align.Center)),
			col.New(6).Add(cell(it.ProductName, align.Left)),
			col.New(2).Add(cell(money.Format(it.Price), align.Right)),
			col.New(2).Add(cell(money.Format(it.Total), align.Right)),
		))
	}
	return result
}

// totalsRow: AMOUNT / GST / TOTAL alineados a la derecha.
func totalsRow(order *entity.Order) core.Row {
	label := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 2, Top: top}
		if bold {
			p.Style = fontstyle.Bold
		}
		return text.New(s, p)
	}
	value := func(s string, top float64, bold bool) core.Component {
		p := props.Text{Size: 9, Align: align.Right, Right: 1, Top: top}
		if bold {
			p.Style = fontstyle.Bold
		}
		return text.New(s, p)
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("AMOUNT:", 2, false),
			label("GST (10%):", 8, false),
			label("TOTAL:", 14, true),
		),
		col.New(3).Add(
			value(money.Format(order.Subtotal), 2, false),
			value(money.Format(order.Tax), 8, false),
			value(money.Format(order.Total), 14, true),
		),
	)
}

// licenseKeyRows: claves agrupadas por producto.
func licenseKeyRows(groups []ports.LicenseKeyGroup) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("LICENSE KEYS", props.Text{Style: fontstyle.Bold, Size: 11}))),
	}
	for _, grp := range groups {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(grp.ProductName, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
		)))
		for _, k := range grp.Keys {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New(k, props.Text{Family: "courier", Size: 9, Left: 4}),
			)))
		}
	}
	return rows
}

// termsRows: términos y condiciones fijos.
func (g *InvoiceRenderer) termsRows() []core.Row {
	rows := []core.Row{
		row.New(8).Add(col.New(12).Add(text.New("TERMS & CONDITIONS:", props.Text{Style: fontstyle.Bold, Size: 11}))),
	}
	support := nonEmpty(g.store.SupportEmail, "our support team")
	for _, t := range termsAndConditions {
		if t == "" {
			rows = append(rows, row.New(2))
			continue
		}
		if strings.Contains(t, "%s") {
			t = fmt.Sprintf(t, support)
		}
		rows = append(rows, row.New().Add(col.New(12).Add(text.New(t, props.Text{Size: 8}))))
	}
	return rows
}

// footerRows: agradecimiento y línea de contacto.
func (g *InvoiceRenderer) footerRows() []core.Row {
	var contact []string
	if g.store.SupportEmail != "" {
		contact = append(contact, "Email: "+g.store.SupportEmail)
	}
	if g.store.Phone != "" {
		contact = append(contact, "Phone: "+g.store.Phone)
	}
	if g.store.Website != "" {
		contact = append(contact, "Website: "+g.store.Website)
	}
	return []core.Row{
		row.New(8).Add(col.New(12).Add(text.New(
			"Thank you for your purchase! Powered by "+nonEmpty(g.store.Name, g.store.LegalName),
			props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Color: colorFooter},
		))),
		row.New(6).Add(col.New(12).Add(text.New(
			strings.Join(contact, " | "),
			props.Text{Size: 8, Align: align.Center, Top: 1},
		))),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
