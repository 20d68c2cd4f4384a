package mailer

import "text/template"

// Типы уведомлений, отправляемых клиентам
const (
	KindBookingReceived    = "booking_received"
	KindBookingApproved    = "booking_approved"
	KindPaymentReceived    = "payment_received"
	KindBookingRescheduled = "booking_rescheduled"
	KindBookingClosed      = "booking_closed"
)

type messageTemplate struct {
	subject string
	body    *template.Template
}

// templates шаблоны писем по типу уведомления.
// Данные: RentalID, FirstName, StartDate, EndDate плюс
// специфичные для типа поля (PaymentLink, Outcome).
var templates = map[string]messageTemplate{
	KindBookingReceived: {
		subject: "We received your booking request",
		body: template.Must(template.New(KindBookingReceived).Parse(
			"Hi {{.FirstName}},\r\n\r\n" +
				"Thanks for your booking request for {{.StartDate}} to {{.EndDate}}.\r\n" +
				"Your rental ID is {{.RentalID}}. Keep it together with your access key —\r\n" +
				"you will need both to look up your booking.\r\n\r\n" +
				"We will review the request and get back to you shortly.\r\n\r\n" +
				"JLA Trailer Rentals",
		)),
	},
	KindBookingApproved: {
		subject: "Your booking is approved — payment link inside",
		body: template.Must(template.New(KindBookingApproved).Parse(
			"Hi {{.FirstName}},\r\n\r\n" +
				"Your booking {{.RentalID}} ({{.StartDate}} to {{.EndDate}}) is approved.\r\n" +
				"Please complete the payment here: {{.PaymentLink}}\r\n\r\n" +
				"JLA Trailer Rentals",
		)),
	},
	KindPaymentReceived: {
		subject: "Payment received",
		body: template.Must(template.New(KindPaymentReceived).Parse(
			"Hi {{.FirstName}},\r\n\r\n" +
				"We received your payment for booking {{.RentalID}}.\r\n" +
				"See you on {{.StartDate}}!\r\n\r\n" +
				"JLA Trailer Rentals",
		)),
	},
	KindBookingRescheduled: {
		subject: "Your booking was rescheduled",
		body: template.Must(template.New(KindBookingRescheduled).Parse(
			"Hi {{.FirstName}},\r\n\r\n" +
				"Your booking {{.RentalID}} was moved to {{.StartDate}} to {{.EndDate}}.\r\n" +
				"If this does not look right, just reply to this email.\r\n\r\n" +
				"JLA Trailer Rentals",
		)),
	},
	KindBookingClosed: {
		subject: "Your booking is closed",
		body: template.Must(template.New(KindBookingClosed).Parse(
			"Hi {{.FirstName}},\r\n\r\n" +
				"Your booking {{.RentalID}} is now closed ({{.Outcome}}).\r\n" +
				"{{if eq .Outcome \"completed\"}}We hope everything went well — we would love to hear your feedback.\r\n{{end}}\r\n" +
				"JLA Trailer Rentals",
		)),
	},
}
