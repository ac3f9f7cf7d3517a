package alerts

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	signature     = "Best regards,\nHR Properties"
	displayLayout = "02/01/2006"
)

func ObligationMessage(o DueObligation, daysLeft int) (string, string) {
	subject := fmt.Sprintf("Obligation approaching due date: %s", o.EntityName)

	var b strings.Builder
	b.WriteString("Dear owner,\n\n")
	b.WriteString("Please be informed that the following obligation is approaching its due date:\n\n")
	b.WriteString("Obligation details:\n")
	fmt.Fprintf(&b, "- Type: %s\n", o.Temporality)
	fmt.Fprintf(&b, "- Entity: %s\n", o.EntityName)
	fmt.Fprintf(&b, "- Property: %s\n", o.PropertyName)
	fmt.Fprintf(&b, "- Total amount: $%s\n", FormatMoney(o.Amount))
	fmt.Fprintf(&b, "- Amount paid: $%s\n", FormatMoney(o.Paid))
	fmt.Fprintf(&b, "- Amount remaining: $%s\n", FormatMoney(o.Remaining()))
	fmt.Fprintf(&b, "- Due date: %s\n", o.DueDate.Format(displayLayout))
	fmt.Fprintf(&b, "- Days left: %d day(s)\n\n", daysLeft)
	b.WriteString("Please make sure to complete the payment before the due date.\n\n")
	b.WriteString(signature)
	return subject, b.String()
}

func RentalEndingMessage(r EndingRental, daysLeft int) (string, string) {
	subject := fmt.Sprintf("Your rental in %s is about to end", r.PropertyName)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", tenantName(r))
	b.WriteString("Please be informed that your rental contract is approaching its end date:\n\n")
	b.WriteString("Rental details:\n")
	fmt.Fprintf(&b, "- Property: %s\n", r.PropertyName)
	fmt.Fprintf(&b, "- Rental type: %s\n", r.RentalType)
	fmt.Fprintf(&b, "- Check-in date: %s\n", r.CheckIn.Format(displayLayout))
	fmt.Fprintf(&b, "- Check-out date: %s\n", r.CheckOut.Format(displayLayout))
	fmt.Fprintf(&b, "- Days left: %d day(s)\n", daysLeft)
	fmt.Fprintf(&b, "- Amount: $%s\n\n", FormatMoney(r.Amount))
	b.WriteString("If you wish to renew the contract, please contact us as soon as possible.\n\n")
	b.WriteString(signature)
	return subject, b.String()
}

func PaymentReminderMessage(r EndingRental, daysLeft int) (string, string) {
	subject := fmt.Sprintf("Payment reminder for %s", r.PropertyName)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", tenantName(r))
	b.WriteString("Please be informed that you have a pending payment in your rental:\n\n")
	b.WriteString("Payment details:\n")
	fmt.Fprintf(&b, "- Property: %s\n", r.PropertyName)
	fmt.Fprintf(&b, "- Total rental amount: $%s\n", FormatMoney(r.Amount))
	fmt.Fprintf(&b, "- Amount paid: $%s\n", FormatMoney(r.Paid))
	fmt.Fprintf(&b, "- Amount remaining: $%s\n", FormatMoney(r.Remaining()))
	fmt.Fprintf(&b, "- Check-out date: %s\n", r.CheckOut.Format(displayLayout))
	fmt.Fprintf(&b, "- Days left: %d day(s)\n\n", daysLeft)
	b.WriteString("Please make the pending payment as soon as possible.\n\n")
	b.WriteString(signature)
	return subject, b.String()
}

func tenantName(r EndingRental) string {
	if r.TenantName == "" {
		return "Tenant"
	}
	return r.TenantName
}

// FormatMoney renders an amount with two decimals and comma thousand separators.
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	var b strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + b.String() + frac
}
