package services

import (
	"fmt"
	"net/smtp"

	"uninest/config"
	"uninest/models"
)

func smtpAuthAndAddr() (smtp.Auth, string, string) {
	from := config.GetEnv("SMTP_FROM")
	password := config.GetEnv("SMTP_PASSWORD")
	host := config.GetEnv("SMTP_HOST")
	port := config.GetEnv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)
	return auth, host + ":" + port, from
}

func sendMail(to, subject, body string) error {
	auth, addr, from := smtpAuthAndAddr()
	msg := []byte("MIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n" +
		"Subject: " + subject + "\r\n\r\n" + body)
	return smtp.SendMail(addr, auth, from, []string{to}, msg)
}

// SendWelcomeEmail greets a freshly registered account.
func SendWelcomeEmail(email, firstName string) error {
	body := fmt.Sprintf(`
		<p>Hello %s,</p>
		<p>Your UniNest account has been created. You can now search hostels
		near your university and send booking requests.</p>
		<p>The UniNest team</p>
	`, firstName)
	return sendMail(email, "Welcome to UniNest", body)
}

// SendBookingStatusEmail tells the student about a booking transition.
func SendBookingStatusEmail(email string, booking *models.Booking) error {
	hostelName := ""
	if booking.Hostel != nil {
		hostelName = booking.Hostel.Name
	}
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>Your booking #%d at %s is now <strong>%s</strong>.</p>
		<p>Stay: %s to %s. Total price: %.0f.</p>
		<p>The UniNest team</p>
	`, booking.ID, hostelName, models.BookingStatusLabel(booking.Status),
		booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02"),
		booking.TotalPrice)
	return sendMail(email, fmt.Sprintf("Booking #%d %s", booking.ID, models.BookingStatusLabel(booking.Status)), body)
}
