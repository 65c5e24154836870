// Package invoice renders persisted orders into downloadable PDF invoices.
package invoice

import (
	"io"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-pdf/fpdf"

	"github.com/blissbakes/bakehouse/internal/catalog"
	"github.com/blissbakes/bakehouse/internal/order"
)

// StoreInfo is the letterhead printed on every invoice.
type StoreInfo struct {
	Name    string
	Slogan  string
	Address string
	City    string
	Phone   string
}

// Renderer produces A4 invoices for orders.
//
// Line items are printed with their English names: the core PDF fonts cannot
// shape Bengali script, and order records carry both locales regardless.
type Renderer struct {
	store StoreInfo
}

// NewRenderer creates a Renderer with the given letterhead.
func NewRenderer(store StoreInfo) *Renderer {
	return &Renderer{store: store}
}

const (
	pageMargin = 15.0
	usableW    = 180.0 // A4 width 210mm minus margins

	colDesc  = 0.40 * usableW
	colQty   = 0.20 * usableW
	colPrice = 0.20 * usableW
	colTotal = 0.20 * usableW
)

// Render writes the PDF invoice for o to w.
func (r *Renderer) Render(w io.Writer, o *order.Order) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetTitle("Invoice "+o.TicketID, true)
	pdf.AddPage()

	r.header(pdf, o)
	r.billedTo(pdf, o)
	r.itemsTable(pdf, o)
	r.summary(pdf, o)
	r.footer(pdf)

	if err := pdf.Output(w); err != nil {
		return errors.Wrap(err, "render invoice pdf")
	}
	return nil
}

func (r *Renderer) header(pdf *fpdf.Fpdf, o *order.Order) {
	top := pdf.GetY()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(234, 88, 12)
	pdf.CellFormat(110, 9, r.store.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(110, 4.5, r.store.Slogan, "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 4.5, r.store.Address+", "+r.store.City, "", 1, "L", false, 0, "")
	pdf.CellFormat(110, 4.5, "Phone: "+r.store.Phone, "", 1, "L", false, 0, "")

	pdf.SetY(top)
	pdf.SetX(pageMargin + 110)
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(70, 8, "INVOICE", "", 2, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(70, 4.5, "#"+o.TicketID, "", 2, "R", false, 0, "")
	pdf.CellFormat(70, 4.5, "Date: "+o.CreatedAt.Format("2 January 2006"), "", 2, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(194, 65, 12)
	pdf.CellFormat(70, 5, string(o.Status), "", 2, "R", false, 0, "")

	pdf.SetY(top + 30)
	pdf.SetDrawColor(235, 235, 235)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+usableW, pdf.GetY())
	pdf.Ln(8)
}

func (r *Renderer) billedTo(pdf *fpdf.Fpdf, o *order.Order) {
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(156, 163, 175)
	pdf.CellFormat(usableW, 4, "BILLED TO", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(usableW, 6, o.CustomerName, "", 1, "L", false, 0, "")

	address := o.DeliveryAddress
	if address == "" {
		address = "Pickup"
	}
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(usableW, 4.5, address, "", 1, "L", false, 0, "")
	pdf.CellFormat(usableW, 4.5, "Phone: "+o.CustomerPhone, "", 1, "L", false, 0, "")
	pdf.Ln(10)
}

func (r *Renderer) itemsTable(pdf *fpdf.Fpdf, o *order.Order) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(75, 85, 99)
	pdf.CellFormat(colDesc, 6, "ITEM DESCRIPTION", "B", 0, "L", false, 0, "")
	pdf.CellFormat(colQty, 6, "QTY", "B", 0, "C", false, 0, "")
	pdf.CellFormat(colPrice, 6, "PRICE", "B", 0, "R", false, 0, "")
	pdf.CellFormat(colTotal, 6, "TOTAL", "B", 1, "R", false, 0, "")

	pdf.SetTextColor(31, 41, 55)
	for _, item := range o.Items {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(colDesc, 8, item.Name.In(catalog.LocaleEN), "B", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, 8, strconv.Itoa(item.Quantity), "B", 0, "C", false, 0, "")
		pdf.CellFormat(colPrice, 8, "Rs. "+item.UnitPrice.StringFixed(2), "B", 0, "R", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(colTotal, 8, "Rs. "+item.Subtotal().StringFixed(2), "B", 1, "R", false, 0, "")
	}
	pdf.Ln(8)
}

func (r *Renderer) summary(pdf *fpdf.Fpdf, o *order.Order) {
	half := usableW / 2

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(75, 85, 99)
	pdf.SetX(pageMargin + half)
	pdf.CellFormat(half/2, 6, "Subtotal", "B", 0, "L", false, 0, "")
	pdf.CellFormat(half/2, 6, "Rs. "+o.Total.StringFixed(2), "B", 1, "R", false, 0, "")

	pdf.SetX(pageMargin + half)
	pdf.CellFormat(half/2, 6, "Tax", "B", 0, "L", false, 0, "")
	pdf.CellFormat(half/2, 6, "Rs. 0.00", "B", 1, "R", false, 0, "")

	pdf.Ln(2)
	pdf.SetX(pageMargin + half)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(31, 41, 55)
	pdf.CellFormat(half/2, 10, "Grand Total", "", 0, "L", false, 0, "")
	pdf.SetTextColor(234, 88, 12)
	pdf.CellFormat(half/2, 10, "Rs. "+o.Total.StringFixed(2), "", 1, "R", false, 0, "")
}

func (r *Renderer) footer(pdf *fpdf.Fpdf) {
	pdf.SetY(-35)
	pdf.SetDrawColor(229, 231, 235)
	pdf.Line(pageMargin, pdf.GetY(), pageMargin+usableW, pdf.GetY())
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(usableW, 5, "Thank you for your business. Let's bliss together!", "", 1, "C", false, 0, "")
}

