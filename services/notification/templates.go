package notification

import (
	"bytes"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"ingcap/models"
	"ingcap/utils"
)

// emailData is the view model shared by every booking email template.
type emailData struct {
	Name          string
	Email         string
	Phone         string
	Company       string
	DisplayDate   string
	Time          string
	BusinessEmail string
}

func newEmailData(b models.Booking, businessEmail string) emailData {
	return emailData{
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		Company:       b.Company,
		DisplayDate:   utils.FormatAppointmentDate(b.Date),
		Time:          b.Time,
		BusinessEmail: businessEmail,
	}
}

var (
	businessHTML = htmltemplate.Must(htmltemplate.New("business").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #2d5a5a; border-bottom: 2px solid #f97316; padding-bottom: 10px;">New Consultation Booking Request</h2>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #2d5a5a; margin-top: 0;">Client Details:</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Name:</td><td style="padding: 8px 0;">{{.Name}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Email:</td><td style="padding: 8px 0;"><a href="mailto:{{.Email}}" style="color: #0066cc;">{{.Email}}</a></td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Phone:</td><td style="padding: 8px 0;"><a href="tel:{{.Phone}}" style="color: #0066cc;">{{.Phone}}</a></td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Company:</td><td style="padding: 8px 0;">{{if .Company}}{{.Company}}{{else}}Not specified{{end}}</td></tr>
      </table>
    </div>
    <div style="background-color: #e6f3f3; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #2d5a5a; margin-top: 0;">Requested Appointment:</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Date:</td><td style="padding: 8px 0; font-size: 16px; color: #2d5a5a;"><strong>{{.DisplayDate}}</strong></td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Time:</td><td style="padding: 8px 0; font-size: 16px; color: #2d5a5a;"><strong>{{.Time}}</strong></td></tr>
      </table>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
      <p style="margin: 0; color: #666; font-size: 14px;"><strong>Next Steps:</strong> Please confirm this appointment or suggest an alternative time by replying to this email or calling the client directly.</p>
    </div>
  </div>
</body>
</html>`))

	businessText = texttemplate.Must(texttemplate.New("business").Parse(`New Consultation Booking Request

Client Details
  Name:    {{.Name}}
  Email:   {{.Email}}
  Phone:   {{.Phone}}
  Company: {{if .Company}}{{.Company}}{{else}}Not specified{{end}}

Requested Appointment
  Date: {{.DisplayDate}}
  Time: {{.Time}}

Next Steps: Please confirm this appointment or suggest an alternative time by replying to this email or calling the client directly.
`))

	clientHTML = htmltemplate.Must(htmltemplate.New("client").Parse(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <div style="text-align: center; margin-bottom: 30px;">
      <h1 style="color: #2d5a5a; margin-bottom: 10px;">Ingenious Capital</h1>
      <p style="color: #f97316; font-size: 18px; margin: 0;">Investment Consultation Booking</p>
    </div>
    <div style="background-color: #e6f3f3; padding: 20px; border-radius: 8px; margin: 20px 0; border-left: 4px solid #2d5a5a;">
      <h2 style="color: #2d5a5a; margin-top: 0;">Thank you for your booking request!</h2>
      <p style="margin: 0; font-size: 16px;">Dear {{.Name}}, we have received your consultation booking request and will contact you shortly to confirm your appointment.</p>
    </div>
    <div style="background-color: #f8f9fa; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #2d5a5a; margin-top: 0;">Your Booking Details:</h3>
      <table style="width: 100%; border-collapse: collapse;">
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Requested Date:</td><td style="padding: 8px 0; font-size: 16px; color: #2d5a5a;"><strong>{{.DisplayDate}}</strong></td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Requested Time:</td><td style="padding: 8px 0; font-size: 16px; color: #2d5a5a;"><strong>{{.Time}}</strong></td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Contact Email:</td><td style="padding: 8px 0;">{{.Email}}</td></tr>
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Contact Phone:</td><td style="padding: 8px 0;">{{.Phone}}</td></tr>
        {{- if .Company}}
        <tr><td style="padding: 8px 0; font-weight: bold; color: #666;">Company:</td><td style="padding: 8px 0;">{{.Company}}</td></tr>
        {{- end}}
      </table>
    </div>
    <div style="background-color: #fff3cd; padding: 20px; border-radius: 8px; margin: 20px 0; border: 1px solid #ffeaa7;">
      <h3 style="color: #856404; margin-top: 0;">What happens next?</h3>
      <ul style="color: #856404; margin: 0; padding-left: 20px;">
        <li style="margin-bottom: 8px;">Our team will review your booking request</li>
        <li style="margin-bottom: 8px;">We will contact you within 24 hours to confirm your appointment</li>
        <li style="margin-bottom: 8px;">If your requested time is unavailable, we will suggest alternative times</li>
        <li>You will receive a calendar invitation once confirmed</li>
      </ul>
    </div>
    <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #ddd;">
      <h3 style="color: #2d5a5a;">Contact Information:</h3>
      <p style="margin: 5px 0;"><strong>Email:</strong> <a href="mailto:{{.BusinessEmail}}" style="color: #0066cc;">{{.BusinessEmail}}</a></p>
      <p style="margin: 5px 0;"><strong>Phone:</strong> <a href="tel:02039165288" style="color: #0066cc;">020 3916 5288</a></p>
      <p style="margin: 5px 0;"><strong>Address:</strong> 1 Canada Square, Canary Wharf, London E14 5AA</p>
    </div>
    <div style="margin-top: 30px; text-align: center; color: #999; font-size: 12px;">
      <p>Thank you for choosing Ingenious Capital for your investment consultation needs.</p>
    </div>
  </div>
</body>
</html>`))

	clientText = texttemplate.Must(texttemplate.New("client").Parse(`Dear {{.Name}},

Thank you for your booking request! We have received your consultation booking request and will contact you shortly to confirm your appointment.

Your Booking Details
  Requested Date: {{.DisplayDate}}
  Requested Time: {{.Time}}
  Contact Email:  {{.Email}}
  Contact Phone:  {{.Phone}}
{{- if .Company}}
  Company:        {{.Company}}
{{- end}}

What happens next?
  - Our team will review your booking request
  - We will contact you within 24 hours to confirm your appointment
  - If your requested time is unavailable, we will suggest alternative times
  - You will receive a calendar invitation once confirmed

Ingenious Capital
Email: {{.BusinessEmail}}
Phone: 020 3916 5288
Address: 1 Canada Square, Canary Wharf, London E14 5AA
`))
)

// BusinessNotification renders the email telling the business about a new booking.
// Replies go straight to the client.
func BusinessNotification(b models.Booking, businessEmail string) (models.EmailMessage, error) {
	data := newEmailData(b, businessEmail)
	html, text, err := render(businessHTML, businessText, data)
	if err != nil {
		return models.EmailMessage{}, fmt.Errorf("render business notification: %w", err)
	}
	return models.EmailMessage{
		To:       businessEmail,
		ReplyTo:  b.Email,
		Subject:  "New Consultation Booking Request - " + b.Name,
		HTMLBody: html,
		TextBody: text,
	}, nil
}

// ClientConfirmation renders the receipt sent to the client.
func ClientConfirmation(b models.Booking, businessEmail string) (models.EmailMessage, error) {
	data := newEmailData(b, businessEmail)
	html, text, err := render(clientHTML, clientText, data)
	if err != nil {
		return models.EmailMessage{}, fmt.Errorf("render client confirmation: %w", err)
	}
	return models.EmailMessage{
		To:       b.Email,
		ReplyTo:  businessEmail,
		Subject:  "Booking Confirmation - Ingenious Capital Consultation",
		HTMLBody: html,
		TextBody: text,
	}, nil
}

func render(h *htmltemplate.Template, t *texttemplate.Template, data emailData) (string, string, error) {
	var hb, tb bytes.Buffer
	if err := h.Execute(&hb, data); err != nil {
		return "", "", err
	}
	if err := t.Execute(&tb, data); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}
