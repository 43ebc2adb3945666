package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.InvoiceNumber}}</title>
  <style>
    :root { --primary: {{css .ThemeColor}}; }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: {{if .DarkMode}}#e5e7eb{{else}}#1a1f36{{end}};
      background: {{if .DarkMode}}#111827{{else}}#ffffff{{end}};
    }
    #invoice { max-width: 760px; margin: 0 auto; }
    .header { display: flex; justify-content: space-between; border-bottom: 4px solid var(--primary); padding-bottom: 16px; margin-bottom: 24px; }
    .header h1 { margin: 0; color: var(--primary); font-size: 28px; }
    .logo { max-height: 64px; }
    .parties { display: flex; gap: 32px; margin-bottom: 24px; }
    .party { flex: 1; font-size: 14px; line-height: 1.5; }
    .label { font-size: 11px; text-transform: uppercase; color: #8792a2; font-weight: 600; }
    table { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
    th { text-align: left; font-size: 11px; text-transform: uppercase; color: #ffffff; background: var(--primary); padding: 8px; }
    td { padding: 8px; border-bottom: 1px solid #e3e8ee; font-size: 14px; }
    .num { text-align: right; }
    .totals { margin-left: auto; width: 280px; }
    .row { display: flex; justify-content: space-between; padding: 4px 0; font-size: 14px; }
    .total { border-top: 2px solid var(--primary); font-weight: 700; font-size: 16px; padding-top: 8px; }
    .negative { color: #dc2626; }
    .status { display: inline-block; padding: 2px 8px; border-radius: 4px; font-size: 12px; font-weight: 600; }
    .status-paid { background: #dcfce7; color: #166534; }
    .status-unpaid { background: #fee2e2; color: #991b1b; }
    .footer { display: flex; justify-content: space-between; margin-top: 32px; font-size: 13px; }
  </style>
</head>
<body>
  <div id="invoice">
    <div class="header">
      <div>
        <h1>Invoice</h1>
        <div>{{.InvoiceNumber}}</div>
        <span class="status status-{{.Status}}">{{.Status}}</span>
      </div>
      <div>
        {{with logoURL .Logo}}<img class="logo" src="{{.}}" alt="logo">{{end}}
        <div class="label">Issued</div><div>{{.IssueDate}}</div>
        <div class="label">Due</div><div>{{.DueDate}}</div>
      </div>
    </div>

    <div class="parties">
      <div class="party">
        <div class="label">Bill from</div>
        <strong>{{.BillFrom.Name}}</strong><br>{{.BillFrom.Email}}<br>{{.BillFrom.Address}}
      </div>
      <div class="party">
        <div class="label">Bill to</div>
        <strong>{{.BillTo.Name}}</strong><br>{{.BillTo.Email}}<br>{{.BillTo.Address}}
      </div>
    </div>

    <table>
      <thead>
        <tr><th>Description</th><th class="num">Qty</th><th class="num">Unit price</th><th class="num">Amount</th></tr>
      </thead>
      <tbody>
        {{range .Rows}}
        <tr><td>{{.Description}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Amount}}</td></tr>
        {{end}}
      </tbody>
    </table>

    <div class="totals">
      <div class="row"><span>Subtotal</span><span>{{.Subtotal}}</span></div>
      <div class="row"><span>{{.TaxLabel}}</span><span>{{.TaxAmount}}</span></div>
      <div class="row"><span>Discount</span><span>-{{.Discount}}</span></div>
      <div class="row total{{if .NegativeTotal}} negative{{end}}"><span>Amount due ({{.Currency.Code}})</span><span>{{.Total}}</span></div>
    </div>

    <div class="footer">
      <div>{{if .Notes}}<div class="label">Notes</div>{{.Notes}}{{end}}</div>
      {{with .QR}}<div><img src="{{.URL}}" alt="Payment QR code" width="150" height="150"></div>{{end}}
    </div>
  </div>
</body>
</html>
`

var invoiceTemplate = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"css":     func(s string) template.CSS { return template.CSS(SanitizeColor(s)) },
	"logoURL": logoURL,
}).Parse(invoiceHTMLTemplate))

// HTML renders the view as a standalone document. The invoice lives in the
// element with id "invoice".
func (v *View) HTML() (string, error) {
	var buf bytes.Buffer
	if err := invoiceTemplate.Execute(&buf, v); err != nil {
		return "", fmt.Errorf("render invoice html: %w", err)
	}
	return buf.String(), nil
}

// logoURL trusts only image data URIs; anything else is dropped.
func logoURL(logo string) template.URL {
	if strings.HasPrefix(logo, "data:image/") {
		return template.URL(logo)
	}
	return ""
}
