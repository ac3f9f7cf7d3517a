// Package reports renders printable documents.
package reports

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf/v2"

	"property-backend/internal/alerts"
	"property-backend/internal/models"
	"property-backend/internal/timeutil"
)

// RentalStatement renders a one-page PDF with the rental terms, its payments and the balance.
func RentalStatement(rental *models.Rental, payments []*models.RentalPayment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, "Rental Statement", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Rental", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Property: %s", rental.PropertyName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Tenant: %s", rental.TenantName), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Check-in: %s", formatDate(rental.CheckIn)), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Check-out: %s", formatDate(rental.CheckOut)), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Type: %s", rental.RentalType), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Status: %s", rental.Status), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Payments", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Method", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Voucher", "1", 0, "C", true, 0, "")
	pdf.CellFormat(50, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(payments) == 0 {
		pdf.CellFormat(190, 6, "No payments recorded", "1", 1, "C", false, 0, "")
	}
	for _, p := range payments {
		pdf.CellFormat(40, 6, p.PaymentDate.Format(timeutil.DateLayout), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, p.PaymentMethodName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, p.VoucherRef, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, alerts.FormatMoney(p.Amount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Total: %s", alerts.FormatMoney(rental.Amount)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Paid: %s", alerts.FormatMoney(rental.TotalPaid)), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Balance: %s", alerts.FormatMoney(rental.Balance())), "1", 1, "C", false, 0, "")

	balance := rental.Balance()
	if balance.IsPositive() {
		pdf.SetFillColor(255, 200, 200)
	} else {
		pdf.SetFillColor(200, 255, 200)
	}
	pdf.SetFont("Arial", "B", 14)
	text := "PAID IN FULL"
	if balance.IsPositive() {
		text = fmt.Sprintf("OUTSTANDING: %s", alerts.FormatMoney(balance))
	}
	pdf.CellFormat(190, 10, text, "1", 1, "C", true, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render statement: %w", err)
	}
	return buf.Bytes(), nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(timeutil.DateLayout)
}
