package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/mmynk/invoicer/internal/render"
)

// MarotoRenderer lays the invoice out natively in Go. It needs no browser and
// draws the payment QR code itself, but it only produces PDFs.
type MarotoRenderer struct{}

var _ Renderer = MarotoRenderer{}

// Available accepts PDF only.
func (MarotoRenderer) Available(_ context.Context, f Format) error {
	if f != FormatPDF {
		return fmt.Errorf("%w: %s export needs the chrome renderer", ErrRendererUnavailable, f.Label())
	}
	return nil
}

// Render builds the PDF. Settings are ignored; output is vector.
func (MarotoRenderer) Render(_ context.Context, f Format, view *render.View, _ Settings) ([]byte, error) {
	if f != FormatPDF {
		return nil, fmt.Errorf("%w: %s", ErrRendererUnavailable, f)
	}

	cfg := config.NewBuilder().
		WithCompression(true).
		Build()
	m := maroto.New(cfg)

	primary := hexToColor(view.ThemeColor)
	label := props.Text{Size: 8, Style: fontstyle.Bold, Color: &props.Color{Red: 135, Green: 146, Blue: 162}}
	small := props.Text{Size: 9}
	right := props.Text{Size: 9, Align: align.Right}

	header := []core.Col{
		col.New(8).Add(
			text.New("INVOICE", props.Text{Size: 20, Style: fontstyle.Bold, Color: primary}),
			text.New(view.InvoiceNumber, props.Text{Top: 10, Size: 10}),
			text.New(strings.ToUpper(string(view.Status)), props.Text{Top: 16, Size: 8, Style: fontstyle.Bold}),
		),
	}
	if logo, ext, ok := decodeLogo(view.Logo); ok {
		header = append(header, image.NewFromBytesCol(4, logo, ext, props.Rect{Center: true, Percent: 80}))
	} else {
		header = append(header, col.New(4))
	}
	m.AddRow(28, header...)

	m.AddRow(12,
		col.New(6).Add(
			text.New("ISSUED", label),
			text.New(view.IssueDate, props.Text{Top: 4, Size: 9}),
		),
		col.New(6).Add(
			text.New("DUE", label),
			text.New(view.DueDate, props.Text{Top: 4, Size: 9}),
		),
	)

	m.AddRow(30,
		partyCol("BILL FROM", view.BillFrom.Name, view.BillFrom.Email, view.BillFrom.Address, label),
		partyCol("BILL TO", view.BillTo.Name, view.BillTo.Email, view.BillTo.Address, label),
	)

	headStyle := props.Text{Size: 9, Style: fontstyle.Bold, Color: primary}
	m.AddRow(8,
		text.NewCol(6, "Description", headStyle),
		text.NewCol(2, "Qty", props.Text{Size: 9, Style: fontstyle.Bold, Color: primary, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Size: 9, Style: fontstyle.Bold, Color: primary, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Size: 9, Style: fontstyle.Bold, Color: primary, Align: align.Right}),
	)
	for _, row := range view.Rows {
		m.AddRow(8,
			text.NewCol(6, row.Description, small),
			text.NewCol(2, row.Quantity, right),
			text.NewCol(2, row.UnitPrice, right),
			text.NewCol(2, row.Amount, right),
		)
	}

	totalRow := func(name, value string, style props.Text) {
		m.AddRow(7,
			col.New(7),
			text.NewCol(3, name, props.Text{Size: style.Size, Style: style.Style}),
			text.NewCol(2, value, style),
		)
	}
	totalRow("Subtotal", view.Subtotal, right)
	totalRow(view.TaxLabel, view.TaxAmount, right)
	totalRow("Discount", "-"+view.Discount, right)

	totalStyle := props.Text{Size: 11, Style: fontstyle.Bold, Align: align.Right}
	if view.NegativeTotal {
		totalStyle.Color = &props.Color{Red: 220, Green: 38, Blue: 38}
	}
	totalRow("Amount due ("+view.Currency.Code+")", view.Total, totalStyle)

	footer := []core.Col{
		col.New(8).Add(
			text.New("NOTES", label),
			text.New(view.Notes, props.Text{Top: 5, Size: 9}),
		),
	}
	if view.QR != nil {
		footer = append(footer, code.NewQrCol(4, view.QR.Payload, props.Rect{Center: true, Percent: 90}))
	} else {
		footer = append(footer, col.New(4))
	}
	m.AddRow(40, footer...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("maroto: %w", err)
	}
	return doc.GetBytes(), nil
}

func partyCol(title, name, email, address string, label props.Text) core.Col {
	return col.New(6).Add(
		text.New(title, label),
		text.New(name, props.Text{Top: 5, Size: 10, Style: fontstyle.Bold}),
		text.New(email, props.Text{Top: 11, Size: 9}),
		text.New(address, props.Text{Top: 16, Size: 9}),
	)
}

// decodeLogo extracts the image bytes of a base64 PNG or JPEG data URI.
func decodeLogo(logo string) ([]byte, extension.Type, bool) {
	meta, data, found := strings.Cut(logo, ",")
	if !found || !strings.HasSuffix(meta, ";base64") {
		return nil, "", false
	}

	var ext extension.Type
	switch strings.TrimSuffix(strings.TrimPrefix(meta, "data:"), ";base64") {
	case "image/png":
		ext = extension.Png
	case "image/jpeg", "image/jpg":
		ext = extension.Jpg
	default:
		return nil, "", false
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil || len(raw) == 0 {
		return nil, "", false
	}
	return raw, ext, true
}

// hexToColor parses "#rgb" or "#rrggbb". Anything else yields nil, which
// maroto draws black.
func hexToColor(hex string) *props.Color {
	h := strings.TrimPrefix(hex, "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return nil
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil
	}
	return &props.Color{Red: int(v >> 16 & 0xff), Green: int(v >> 8 & 0xff), Blue: int(v & 0xff)}
}
