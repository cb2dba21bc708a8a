package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

// Nombres de plantilla (archivo sin extensión).
const (
	tplVerification = "verification"
	tplLicenseKeys  = "license_keys"
	tplInvoice      = "invoice"
)

// StoreInfo datos de la tienda comunes a todos los correos.
type StoreInfo struct {
	Name         string
	AddressLines []string
	SupportEmail string
	Phone        string
}

// Address dirección en una línea.
func (s StoreInfo) Address() string {
	return strings.Join(s.AddressLines, ", ")
}

type templateData struct {
	Subject string
	Store   StoreInfo

	// Verificación
	Code          string
	ExpiryMinutes int

	// Claves y factura
	CustomerName string
	OrderID      string
	Total        string
	Groups       any
}

// renderer plantillas base + contenido, parseadas una vez.
type renderer struct {
	templates map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	base, err := templateFS.ReadFile("templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("email: leer plantilla base: %w", err)
	}
	r := &renderer{templates: make(map[string]*template.Template)}
	for _, name := range []string{tplVerification, tplLicenseKeys, tplInvoice} {
		content, err := templateFS.ReadFile("templates/" + name + ".html")
		if err != nil {
			return nil, fmt.Errorf("email: leer plantilla %s: %w", name, err)
		}
		tmpl, err := template.New("email").Parse(string(base))
		if err != nil {
			return nil, fmt.Errorf("email: parsear base para %s: %w", name, err)
		}
		if _, err := tmpl.Parse(string(content)); err != nil {
			return nil, fmt.Errorf("email: parsear plantilla %s: %w", name, err)
		}
		r.templates[name] = tmpl
	}
	return r, nil
}

func (r *renderer) render(name string, data templateData) (string, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("email: plantilla %s no existe", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: renderizar %s: %w", name, err)
	}
	return buf.String(), nil
}
