package export

import (
	"bytes"
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"sync"

	"github.com/jung-kurt/gofpdf"

	"paystub/internal/domain/paystub"
	"paystub/internal/domain/statement"
)

const (
	author  = "ProPayStub Generator"
	creator = "ProPayStub App"

	margin    = 15.0
	rowHeight = 4.5
	fontSize  = 8.0
	colGap    = 10.0
)

type Document struct {
	Filename string
	Pages    int
	Bytes    []byte
}

// Exporter renders statements as a multi-page A4 PDF. It is safe for
// concurrent use.
type Exporter struct {
	mu       sync.Mutex
	rng      *rand.Rand
	compress bool
}

type Option func(*Exporter)

// WithRand sets the source of batch numbers.
func WithRand(src rand.Source) Option {
	return func(e *Exporter) { e.rng = rand.New(src) }
}

// WithCompression toggles page stream compression. Uncompressed output is
// only useful for inspecting the document.
func WithCompression(on bool) Option {
	return func(e *Exporter) { e.compress = on }
}

func NewExporter(opts ...Option) *Exporter {
	e := &Exporter{
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		compress: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BatchNumber draws "S00" followed by six digits.
func (e *Exporter) BatchNumber() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return "S00" + strconv.Itoa(100000+e.rng.IntN(900000))
}

// Render lays out count statements, page i holding the statement for
// periodsBack = i.
func (e *Exporter) Render(ctx context.Context, cfg paystub.PayConfiguration, count int) (Document, error) {
	stubs, err := ComputeBatch(ctx, cfg, count)
	if err != nil {
		return Document{}, err
	}
	cfg = paystub.Normalize(cfg)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(e.compress)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, 0)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	first := statement.FormatDate(stubs[0].CheckDate)
	pdf.SetTitle(tr("Paystub - "+cfg.EmployeeName), false)
	pdf.SetSubject(tr(fmt.Sprintf("Employee: %s | Employer: %s | Date: %s", cfg.EmployeeName, cfg.CompanyName, first)), false)
	pdf.SetAuthor(author, false)
	pdf.SetCreator(creator, false)

	for _, stub := range stubs {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		p := page{pdf: pdf, tr: tr}
		p.render(statement.Build(cfg, stub), e.BatchNumber())
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Document{}, fmt.Errorf("render pdf: %w", err)
	}
	return Document{
		Filename: Filename(cfg.EmployeeName),
		Pages:    pdf.PageNo(),
		Bytes:    buf.Bytes(),
	}, nil
}

// WriteFile renders and writes the document to path.
func (e *Exporter) WriteFile(ctx context.Context, path string, cfg paystub.PayConfiguration, count int) (Document, error) {
	doc, err := e.Render(ctx, cfg, count)
	if err != nil {
		return Document{}, err
	}
	if err := os.WriteFile(path, doc.Bytes, 0o644); err != nil {
		return Document{}, err
	}
	return doc, nil
}

type page struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (p page) text(x, y float64, s string) {
	p.pdf.Text(x, y, p.tr(s))
}

func (p page) textRight(x, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(s), y, s)
}

func (p page) textCenter(x, y float64, s string) {
	s = p.tr(s)
	p.pdf.Text(x-p.pdf.GetStringWidth(s)/2, y, s)
}

func (p page) render(v statement.View, batch string) {
	pdf := p.pdf
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	right := pageW - margin

	// watermark
	pdf.TransformBegin()
	pdf.TransformRotate(45, pageW/2, pageH/2)
	pdf.SetFont("Helvetica", "B", 60)
	pdf.SetTextColor(245, 245, 245)
	p.textCenter(pageW/2, pageH/2, statement.Watermark)
	pdf.TransformEnd()
	pdf.SetTextColor(0, 0, 0)

	p.codes()

	pdf.SetFont("Times", "B", 9)
	labels := []string{"Check Number", "Batch Number", "Pay Period", "Check Date"}
	values := []string{v.CheckNumber, batch, v.PayPeriod, v.CheckDate}
	y := margin + 2
	for i, label := range labels {
		p.text(right-40, y, label)
		p.textRight(right, y, values[i])
		y += 4
	}

	titleY := margin + 25
	pdf.SetFont("Times", "", 20)
	p.text(margin, titleY, statement.Title)
	pdf.SetLineWidth(0.5)
	pdf.Line(margin, titleY+2, right, titleY+2)

	empY := titleY + 12
	pdf.SetFont("Times", "B", 9)
	p.text(margin, empY, "Employee Id: "+v.EmployeeID)
	p.table(margin, empY+3, 100, false, [3]string{"Marital Status/Exemptions", "", "Amounts"}, rowsOf(v.MaritalStatus))

	addrX := pageW/2 + 10
	pdf.SetFont("Times", "B", 10)
	p.text(addrX, empY, v.EmployeeName)
	pdf.SetFont("Times", "", 10)
	p.text(addrX, empY+5, v.Address)
	p.text(addrX, empY+10, v.CityStateZip)

	totalsY := p.summary(v, empY+40, pageW)
	p.totalsBar(v, totalsY, pageW)

	detailsY := totalsY + 15
	colW := (pageW - 2*margin - colGap) / 2
	leftY := p.table(margin, detailsY, colW, true, [3]string{"Payments", "Amount", "Hours"}, rowsOf(v.Payments))
	leftY = p.table(margin, leftY+5, colW, true, [3]string{"Employer Paid Benefits (Info Only)", "Current", "YTD"}, rowsOf(v.EmployerBenefits))
	rightY := p.deductions(v.Deductions, margin+colW+colGap, detailsY, colW)

	disclaimerY := pageH - 12
	dottedY := pageH - 18
	footerY := dottedY - 2

	contentEnd := max(leftY, rightY) + 5
	if (dottedY-20)-contentEnd > 20 {
		p.table(margin, contentEnd, pageW-2*margin, true, [3]string{"Time Off", "Used YTD", "Balance"}, rowsOf(v.TimeOff))
	}

	pdf.SetFont("Times", "BI", 9)
	p.text(margin, footerY-4, v.CompanyName)
	pdf.SetFont("Times", "I", 8)
	p.text(margin, footerY, v.CompanyAddress)
	p.legend(footerY, right)

	pdf.SetLineWidth(0.5)
	pdf.SetDashPattern([]float64{1, 1}, 0)
	pdf.Line(margin, dottedY, right, dottedY)
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(150, 150, 150)
	p.textCenter(pageW/2, disclaimerY, statement.Disclaimer)
	pdf.SetTextColor(0, 0, 0)
}

// codes prints the payroll reference codes in the top left corner.
func (p page) codes() {
	pdf := p.pdf
	y := margin + 4
	for _, c := range []struct {
		x           float64
		value, name string
	}{
		{2, "00457", "CO."},
		{20, "529659", "FILE"},
		{35, "035300", "DEPT."},
		{50, "", "CLOCK"},
		{65, "000030112", "VCHR. NO."},
	} {
		pdf.SetFont("Courier", "", 8)
		p.text(margin+c.x, y, c.value)
		pdf.SetFont("Courier", "", 6)
		p.text(margin+c.x, y+3, c.name)
	}
}

// summary draws the "This Period" and "Tax Information" block and returns
// the y of the totals bar below it.
func (p page) summary(v statement.View, y, pageW float64) float64 {
	pdf := p.pdf
	right := pageW - margin
	amountX := pageW/2 - 10

	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(margin, y, pageW-2*margin, 8, "F")
	pdf.SetFont("Times", "B", 9)
	p.text(margin+2, y+5, "This Period")
	if v.RegRate != "" {
		pdf.SetFont("Times", "", 9)
		p.text(pageW/2-40, y+5, "Reg. Rate "+v.RegRate)
	}
	pdf.SetFont("Times", "B", 9)
	p.text(pageW/2+10, y+5, "Tax Information")
	p.textRight(right-30, y+5, "Taxable")
	p.textRight(right-2, y+5, "Y-T-D")

	rowY := y + 12
	for i, row := range v.Summary {
		switch {
		case i == 0:
		case i == 1 && row.Label == "Holiday":
			rowY += 4
		default:
			rowY += 6
		}
		style := ""
		if row.Bold {
			style = "B"
		}
		pdf.SetFont("Times", style, 9)
		p.text(margin+2, rowY, row.Label)
		p.textRight(amountX, rowY, row.First)
	}

	taxY := y + 12
	pdf.SetFont("Times", "", 9)
	for _, row := range v.TaxInfo {
		p.text(pageW/2+10, taxY, row.Label)
		p.textRight(right-30, taxY, row.First)
		p.textRight(right-2, taxY, row.Second)
		taxY += 4
	}
	return max(rowY, taxY) + 5
}

func (p page) totalsBar(v statement.View, y, pageW float64) {
	pdf := p.pdf
	right := pageW - margin
	pdf.SetFillColor(230, 230, 230)
	pdf.Rect(margin, y, pageW-2*margin, 10, "F")
	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(pageW/2, y, pageW/2, y+10)
	pdf.SetDrawColor(0, 0, 0)

	mid := y + 7
	pdf.SetFont("Times", "B", 9)
	p.text(margin+2, mid, "CURRENT TOTAL WAGES / TAXES")
	p.textRight(pageW/2-35, mid, v.Totals.CurrentWages)
	p.textRight(pageW/2-5, mid, v.Totals.CurrentTaxes)
	p.text(pageW/2+5, mid, "NET PAY THIS PERIOD / Y-T-D")
	p.textRight(right-30, mid, v.Totals.NetCurrent)
	p.textRight(right-2, mid, v.Totals.NetYTD)
}

type tableRow struct {
	cells [3]string
	// heading rows span all columns
	heading bool
}

func rowsOf(rows []statement.Row) []tableRow {
	out := make([]tableRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, tableRow{cells: [3]string{r.Label, r.First, r.Second}})
	}
	return out
}

// table draws a three column table with a label column and two right
// aligned figures. It returns the y below the last row.
func (p page) table(x, y, w float64, shaded bool, head [3]string, rows []tableRow) float64 {
	pdf := p.pdf
	widths := [3]float64{w * 0.5, w * 0.25, w * 0.25}
	aligns := [3]string{"L", "R", "R"}
	if !shaded {
		aligns = [3]string{"L", "L", "C"}
	}

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Times", "B", fontSize)
	pdf.SetXY(x, y)
	for i, h := range head {
		align := aligns[i]
		if !shaded {
			align = "L"
		}
		pdf.CellFormat(widths[i], rowHeight, p.tr(h), "", 0, align, shaded, 0, "")
	}
	y += rowHeight

	for _, row := range rows {
		pdf.SetXY(x, y)
		if row.heading {
			pdf.SetFont("Times", "B", fontSize)
			pdf.SetTextColor(100, 100, 100)
			pdf.CellFormat(w, rowHeight, p.tr(row.cells[0]), "", 0, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		} else {
			pdf.SetFont("Times", "", fontSize)
			for i, c := range row.cells {
				pdf.CellFormat(widths[i], rowHeight, p.tr(c), "", 0, aligns[i], false, 0, "")
			}
		}
		y += rowHeight
	}
	return y
}

// deductions draws the grouped deductions table. Empty pre-tax and
// post-tax groups are left out of the printed document.
func (p page) deductions(groups []statement.Group, x, y, w float64) float64 {
	var rows []tableRow
	for _, g := range groups {
		if g.Placeholder {
			continue
		}
		rows = append(rows, tableRow{cells: [3]string{g.Title}, heading: true})
		rows = append(rows, rowsOf(g.Rows)...)
	}
	return p.table(x, y, w, true, [3]string{"Deductions / Benefits", "Amount", "YTD"}, rows)
}

func (p page) legend(footerY, right float64) {
	pdf := p.pdf
	const itemW = 32.0
	startX := right - 4*itemW

	pdf.SetFont("Times", "I", 7)
	p.text(startX, footerY-7, "Codes Legend")

	pdf.SetFont("Times", "", 7)
	for i, item := range statement.CodesLegend {
		ly := footerY - 3.5
		if i >= 4 {
			ly = footerY
		}
		p.text(startX+float64(i%4)*itemW, ly, item)
	}
}
