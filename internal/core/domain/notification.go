package domain

const TemplateBookingConfirmation = "booking_confirmation"

// NotificationJob is one queued email. The dispatcher consumes it
// asynchronously; nothing acknowledges delivery back to the producer.
type NotificationJob struct {
	To       string            `json:"to"`
	Subject  string            `json:"subject"`
	Template string            `json:"template"`
	Data     map[string]string `json:"data"`
}

// BookingConfirmationData is the template payload for booking_confirmation.
type BookingConfirmationData struct {
	UserName    string
	EventTitle  string
	Date        string
	Time        string
	MeetingLink string
}

func (d BookingConfirmationData) Map() map[string]string {
	return map[string]string{
		"userName":    d.UserName,
		"eventTitle":  d.EventTitle,
		"date":        d.Date,
		"time":        d.Time,
		"meetingLink": d.MeetingLink,
	}
}
