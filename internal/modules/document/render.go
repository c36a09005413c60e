package document

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"

	"github.com/BUNNY1710/glassshop-backend/internal/gst"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/invoice"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/quotation"
	"github.com/BUNNY1710/glassshop-backend/internal/modules/shop"
)

const (
	fontFamily = "Helvetica"
	lineHeight = 6.0
	pageWidth  = 190.0 // A4 minus 10mm margins
)

type column struct {
	title string
	width float64
	align string
}

// page wraps an fpdf document with the shop letterhead and a UTF-8 to
// cp1252 translator for the core fonts.
type page struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func newPage(title string, compress bool) *page {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(title, true)
	pdf.SetCreator("glassshop", true)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont(fontFamily, "I", 8)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	return &page{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

func (p *page) letterhead(sh *shop.Shop, title string) {
	p.pdf.SetFont(fontFamily, "B", 16)
	p.pdf.CellFormat(0, 8, p.tr(sh.Name), "", 1, "C", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 9)
	for _, line := range []string{sh.Address, sh.Phone, sh.Email} {
		if line != "" {
			p.pdf.CellFormat(0, 4.5, p.tr(line), "", 1, "C", false, 0, "")
		}
	}
	if sh.GSTIN != "" {
		p.pdf.CellFormat(0, 4.5, "GSTIN: "+sh.GSTIN, "", 1, "C", false, 0, "")
	}
	p.pdf.Ln(2)
	p.pdf.SetFont(fontFamily, "B", 13)
	p.pdf.CellFormat(0, 8, title, "TB", 1, "C", false, 0, "")
	p.pdf.Ln(2)
}

// pair prints label/value rows in two columns, left and right.
func (p *page) pair(left, right [][2]string) {
	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		p.field(left, i, 95)
		p.field(right, i, 95)
		p.pdf.Ln(lineHeight)
	}
	p.pdf.Ln(2)
}

func (p *page) field(rows [][2]string, i int, width float64) {
	if i >= len(rows) {
		p.pdf.CellFormat(width, lineHeight, "", "", 0, "L", false, 0, "")
		return
	}
	p.pdf.SetFont(fontFamily, "B", 10)
	p.pdf.CellFormat(30, lineHeight, rows[i][0], "", 0, "L", false, 0, "")
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.CellFormat(width-30, lineHeight, p.tr(rows[i][1]), "", 0, "L", false, 0, "")
}

func (p *page) table(cols []column, rows [][]string) {
	p.pdf.SetFont(fontFamily, "B", 9)
	p.pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		p.pdf.CellFormat(c.width, 7, c.title, "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)
	p.pdf.SetFont(fontFamily, "", 9)
	for _, row := range rows {
		for i, c := range cols {
			p.pdf.CellFormat(c.width, lineHeight, p.tr(row[i]), "1", 0, c.align, false, 0, "")
		}
		p.pdf.Ln(-1)
	}
	p.pdf.Ln(2)
}

// totals prints right-aligned label/amount rows. The last row is bold.
func (p *page) totals(rows [][2]string) {
	for i, r := range rows {
		style := ""
		if i == len(rows)-1 {
			style = "B"
		}
		p.pdf.SetFont(fontFamily, style, 10)
		p.pdf.CellFormat(pageWidth-45, lineHeight, r[0], "", 0, "R", false, 0, "")
		p.pdf.CellFormat(45, lineHeight, r[1], "", 1, "R", false, 0, "")
	}
}

func (p *page) note(text string) {
	p.pdf.Ln(3)
	p.pdf.SetFont(fontFamily, "", 9)
	p.pdf.MultiCell(0, 5, p.tr(text), "", "L", false)
}

func (p *page) signatures(left, right string) {
	p.pdf.Ln(18)
	p.pdf.SetFont(fontFamily, "", 10)
	p.pdf.CellFormat(95, lineHeight, p.tr(left), "T", 0, "L", false, 0, "")
	p.pdf.CellFormat(95, lineHeight, p.tr(right), "T", 1, "R", false, 0, "")
}

func (p *page) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

var pricedColumns = []column{
	{"#", 8, "C"},
	{"Glass", 50, "L"},
	{"Size", 42, "L"},
	{"Qty", 14, "R"},
	{"Area (sqft)", 24, "R"},
	{"Rate", 24, "R"},
	{"Amount", 28, "R"},
}

// line is the printable subset shared by quotation and invoice items.
type line struct {
	glassType, thickness, design string
	height, width                decimal.Decimal
	heightUnit, widthUnit        gst.Unit
	quantity                     int
	area, rate, subtotal         decimal.Decimal
}

func quotationLines(items []*quotation.Item) []line {
	out := make([]line, 0, len(items))
	for _, it := range items {
		out = append(out, line{it.GlassType, it.Thickness, it.Design, it.Height, it.Width, it.HeightUnit,
			it.WidthUnit, it.Quantity, it.Area, it.RatePerSqft, it.Subtotal})
	}
	return out
}

func invoiceLines(items []*invoice.Item) []line {
	out := make([]line, 0, len(items))
	for _, it := range items {
		out = append(out, line{it.GlassType, it.Thickness, it.Design, it.Height, it.Width, it.HeightUnit,
			it.WidthUnit, it.Quantity, it.Area, it.RatePerSqft, it.Subtotal})
	}
	return out
}

func pricedRows(lines []line) [][]string {
	rows := make([][]string, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			glassLabel(l.glassType, l.thickness),
			size(l.height, l.width, l.heightUnit, l.widthUnit),
			strconv.Itoa(l.quantity),
			l.area.StringFixed(3),
			money(l.rate),
			money(l.subtotal),
		})
	}
	return rows
}

// amounts is the money block shared by quotations and invoices.
type amounts struct {
	billing                                     gst.BillingType
	subtotal, installation, transport, discount decimal.Decimal
	percentage, cgst, sgst, igst                *decimal.Decimal
	gstAmount, grandTotal                       decimal.Decimal
}

func (a amounts) rows(withTax bool) [][2]string {
	rows := [][2]string{{"Subtotal", money(a.subtotal)}}
	if a.installation.IsPositive() {
		rows = append(rows, [2]string{"Installation", money(a.installation)})
	}
	if a.transport.IsPositive() {
		rows = append(rows, [2]string{"Transportation", money(a.transport)})
	}
	if a.discount.IsPositive() {
		rows = append(rows, [2]string{"Discount", "- " + money(a.discount)})
	}
	if withTax && a.billing == gst.BillingGST && a.percentage != nil {
		half := percent(a.percentage.Div(two))
		if a.igst != nil && a.igst.IsPositive() {
			rows = append(rows, [2]string{"IGST @ " + percent(*a.percentage), moneyPtr(a.igst)})
		} else {
			rows = append(rows,
				[2]string{"CGST @ " + half, moneyPtr(a.cgst)},
				[2]string{"SGST @ " + half, moneyPtr(a.sgst)})
		}
		rows = append(rows, [2]string{"Total GST", money(a.gstAmount)})
	}
	return append(rows, [2]string{"Grand Total", money(a.grandTotal)})
}

func renderQuotation(sh *shop.Shop, q *quotation.Quotation, compress bool) ([]byte, error) {
	p := newPage("Quotation "+q.QuotationNumber, compress)
	p.letterhead(sh, "QUOTATION")

	right := [][2]string{{"Date:", date(q.QuotationDate)}, {"Billing:", string(q.BillingType)}}
	if q.ValidUntil != nil {
		right = append(right, [2]string{"Valid until:", date(*q.ValidUntil)})
	}
	p.pair(append([][2]string{{"Quotation No:", q.QuotationNumber}}, party(q.CustomerName, q.CustomerMobile,
		q.CustomerAddress, q.CustomerGSTIN)...), right)

	p.table(pricedColumns, pricedRows(quotationLines(q.Items)))
	p.totals(amounts{
		billing: q.BillingType, subtotal: q.Subtotal, installation: q.InstallationCharge,
		transport: q.TransportationCharge, discount: q.Discount, percentage: q.GSTPercentage,
		cgst: q.CGST, sgst: q.SGST, igst: q.IGST, gstAmount: q.GSTAmount, grandTotal: q.GrandTotal,
	}.rows(true))
	if q.Polish != "" {
		p.note("Polish: " + q.Polish)
	}
	if q.TransportationRequired {
		p.note("Transportation to site is included.")
	}
	p.signatures("Customer Signature", "For "+sh.Name)
	return p.bytes()
}

// InvoiceTitle is "TAX INVOICE" for GST billing and "BILL / CASH MEMO" otherwise.
func InvoiceTitle(b gst.BillingType) string {
	if b == gst.BillingGST {
		return "TAX INVOICE"
	}
	return "BILL / CASH MEMO"
}

func renderInvoice(sh *shop.Shop, inv *invoice.Invoice, basic, compress bool) ([]byte, error) {
	title := InvoiceTitle(inv.BillingType)
	p := newPage(title+" "+inv.InvoiceNumber, compress)
	p.letterhead(sh, title)

	p.pair(
		append([][2]string{{"Invoice No:", inv.InvoiceNumber}}, party(inv.CustomerName, inv.CustomerMobile,
			inv.CustomerAddress, inv.CustomerGSTIN)...),
		[][2]string{{"Date:", date(inv.InvoiceDate)}, {"Type:", string(inv.InvoiceType)}})

	p.table(pricedColumns, pricedRows(invoiceLines(inv.Items)))
	rows := amounts{
		billing: inv.BillingType, subtotal: inv.Subtotal, installation: inv.InstallationCharge,
		transport: inv.TransportationCharge, discount: inv.Discount, percentage: inv.GSTPercentage,
		cgst: inv.CGST, sgst: inv.SGST, igst: inv.IGST, gstAmount: inv.GSTAmount, grandTotal: inv.GrandTotal,
	}.rows(!basic)
	rows = append(rows,
		[2]string{"Paid", money(inv.PaidAmount)},
		[2]string{"Balance Due", money(inv.DueAmount)})
	p.totals(rows)
	p.signatures("Customer Signature", "For "+sh.Name)
	return p.bytes()
}

var challanColumns = []column{
	{"#", 10, "C"},
	{"Glass", 70, "L"},
	{"Size", 60, "L"},
	{"Design", 30, "L"},
	{"Qty", 20, "R"},
}

// renderChallan lists what leaves the shop for an invoice. No prices are printed.
func renderChallan(sh *shop.Shop, inv *invoice.Invoice, compress bool) ([]byte, error) {
	p := newPage("Delivery Challan "+inv.InvoiceNumber, compress)
	p.letterhead(sh, "DELIVERY CHALLAN")
	p.pair(
		append([][2]string{{"Challan No:", inv.InvoiceNumber}}, party(inv.CustomerName, inv.CustomerMobile,
			inv.CustomerAddress, "")...),
		[][2]string{{"Date:", date(inv.InvoiceDate)}})

	rows := make([][]string, 0, len(inv.Items))
	total := 0
	for i, it := range inv.Items {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			glassLabel(it.GlassType, it.Thickness),
			size(it.Height, it.Width, it.HeightUnit, it.WidthUnit),
			it.Design,
			strconv.Itoa(it.Quantity),
		})
		total += it.Quantity
	}
	p.table(challanColumns, rows)
	p.totals([][2]string{{"Total Pieces", strconv.Itoa(total)}})
	p.signatures("Receiver's Signature", "For "+sh.Name)
	return p.bytes()
}

var cuttingColumns = []column{
	{"#", 10, "C"},
	{"Glass", 50, "L"},
	{"Height", 28, "R"},
	{"Width", 28, "R"},
	{"Unit", 24, "C"},
	{"Qty", 16, "R"},
	{"Design", 34, "L"},
}

// renderCuttingPad prints the dimensions of every quotation item for the cutting floor.
func renderCuttingPad(sh *shop.Shop, q *quotation.Quotation, compress bool) ([]byte, error) {
	p := newPage("Cutting Pad "+q.QuotationNumber, compress)
	p.letterhead(sh, "CUTTING PAD")
	p.pair([][2]string{{"Quotation No:", q.QuotationNumber}, {"Customer:", q.CustomerName}},
		[][2]string{{"Date:", date(q.QuotationDate)}})

	rows := make([][]string, 0, len(q.Items))
	for i, it := range q.Items {
		unit := string(it.HeightUnit)
		if it.WidthUnit != it.HeightUnit {
			unit = string(it.HeightUnit) + "/" + string(it.WidthUnit)
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			glassLabel(it.GlassType, it.Thickness),
			it.Height.String(),
			it.Width.String(),
			unit,
			strconv.Itoa(it.Quantity),
			it.Design,
		})
	}
	p.table(cuttingColumns, rows)
	if q.Polish != "" {
		p.note("Polish: " + q.Polish)
	}
	return p.bytes()
}

func party(name, mobile, address, gstin string) [][2]string {
	rows := [][2]string{{"Customer:", name}}
	if mobile != "" {
		rows = append(rows, [2]string{"Mobile:", mobile})
	}
	if address != "" {
		rows = append(rows, [2]string{"Address:", address})
	}
	if gstin != "" {
		rows = append(rows, [2]string{"GSTIN:", gstin})
	}
	return rows
}
