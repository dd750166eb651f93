// Package pdf renders order invoices.
package pdf

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
)

var invoiceTmpl = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"money": func(v float64) string { return fmt.Sprintf("₹%.2f", v) },
	"date":  func(t time.Time) string { return t.Format("January 2, 2006") },
}).Parse(invoiceTemplate))

// Service handles PDF generation
type Service struct {
	company CompanyInfo
	now     func() time.Time
}

// NewService creates a new PDF service
func NewService(cfg config.InvoiceConfig) *Service {
	return &Service{
		company: CompanyInfo{
			Name:    cfg.CompanyName,
			Address: cfg.CompanyAddress,
			Email:   cfg.CompanyEmail,
			GSTIN:   cfg.CompanyGSTIN,
		},
		now: time.Now,
	}
}

// InvoiceData represents the data passed to the invoice template
type InvoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	Order         *order.Order
	Lines         []InvoiceLine
	Subtotal      float64
	Adjustment    float64 // Delivery fee minus discount, as charged
	Company       CompanyInfo
}

// InvoiceLine is one printed order line
type InvoiceLine struct {
	Name     string
	Quantity int
	Price    float64
	Total    float64
}

// CompanyInfo is the seller block of the invoice
type CompanyInfo struct {
	Name    string
	Address string
	Email   string
	GSTIN   string
}

// InvoiceNumber derives the printed invoice number from an order id
func InvoiceNumber(orderID string) string {
	id := strings.ToUpper(orderID)
	if len(id) > 8 {
		id = id[len(id)-8:]
	}
	return "INV-" + id
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	htmlContent, err := s.InvoiceHTML(o)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)

	page := wkhtmltopdf.NewPageReader(strings.NewReader(htmlContent))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// InvoiceHTML renders the invoice markup for an order
func (s *Service) InvoiceHTML(o *order.Order) (string, error) {
	data := InvoiceData{
		InvoiceNumber: InvoiceNumber(o.ID),
		InvoiceDate:   s.now().Format("January 2, 2006"),
		Order:         o,
		Company:       s.company,
	}
	for _, it := range o.Items {
		data.Lines = append(data.Lines, InvoiceLine{
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
			Total:    it.LineTotal(),
		})
		data.Subtotal += it.LineTotal()
	}
	data.Adjustment = o.TotalAmount - data.Subtotal

	var buf bytes.Buffer
	if err := invoiceTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 20px; color: #333; }
        .header { display: flex; justify-content: space-between; border-bottom: 2px solid #eee; padding-bottom: 20px; margin-bottom: 30px; }
        .invoice-title { font-size: 28px; font-weight: bold; color: #2563eb; }
        .section-title { font-size: 16px; font-weight: bold; color: #374151; margin-bottom: 10px; }
        .items { width: 100%; border-collapse: collapse; margin: 30px 0; }
        .items th, .items td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        .items th { background-color: #f8f9fa; }
        .num { text-align: right !important; width: 90px; }
        .totals { float: right; width: 300px; }
        .totals td { padding: 8px; border-bottom: 1px solid #eee; text-align: right; }
        .grand { font-size: 18px; font-weight: bold; border-top: 2px solid #333; }
        .footer { clear: both; margin-top: 60px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.Company.Name}}</h1>
            <p>{{.Company.Address}}</p>
            <p>Email: {{.Company.Email}}</p>
            {{if .Company.GSTIN}}<p>GSTIN: {{.Company.GSTIN}}</p>{{end}}
        </div>
        <div style="text-align: right;">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order ID:</strong> {{.Order.ID}}</p>
            <p><strong>Order Date:</strong> {{date .Order.CreatedAt}}</p>
        </div>
    </div>

    <div>
        <div class="section-title">Ship To:</div>
        <p><strong>{{.Order.ShippingAddress.FullName}}</strong></p>
        <p>{{.Order.ShippingAddress.AddressLine1}}</p>
        {{if .Order.ShippingAddress.AddressLine2}}<p>{{.Order.ShippingAddress.AddressLine2}}</p>{{end}}
        <p>{{.Order.ShippingAddress.City}}, {{.Order.ShippingAddress.State}} {{.Order.ShippingAddress.Pincode}}</p>
        <p>Phone: {{.Order.ShippingAddress.Phone}}</p>
        <p>Payment: {{.Order.PaymentMethod}} ({{.Order.PaymentStatus}}) &middot; Status: {{.Order.OrderStatus}}</p>
    </div>

    <table class="items">
        <thead>
            <tr><th>Item</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Total</th></tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr><td>{{.Name}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .Price}}</td><td class="num">{{money .Total}}</td></tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td>Subtotal:</td><td>{{money .Subtotal}}</td></tr>
            {{if .Adjustment}}<tr><td>Delivery &amp; discounts:</td><td>{{money .Adjustment}}</td></tr>{{end}}
            <tr class="grand"><td>Total:</td><td>{{money .Order.TotalAmount}}</td></tr>
        </table>
    </div>

    <div class="footer">
        <p>Thank you for shopping with {{.Company.Name}}.</p>
        <p>This is a computer generated invoice.</p>
    </div>
</body>
</html>`
