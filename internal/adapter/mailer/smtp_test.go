package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/srgjo27/healthbook/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

func confirmationJob(link string) domain.NotificationJob {
	return domain.NotificationJob{
		To:       "tobi@example.com",
		Subject:  "Booking confirmed: Consultation with Dr. Ada",
		Template: domain.TemplateBookingConfirmation,
		Data: domain.BookingConfirmationData{
			UserName:    "Tobi",
			EventTitle:  "Consultation with Dr. Ada",
			Date:        "Monday, March 2, 2026",
			Time:        "10:00 - 11:00 UTC",
			MeetingLink: link,
		}.Map(),
	}
}

func newTestMailer(t *testing.T, sender gomail.SendFunc) *SMTPMailer {
	m, err := NewSMTPMailer(Config{Host: "localhost", Port: 25, From: "no-reply@healthbook.test"}, zap.NewNop())
	require.NoError(t, err)
	m.send = func(msg *gomail.Message) error { return gomail.Send(sender, msg) }
	return m
}

func TestNewSMTPMailer(t *testing.T) {
	m, err := NewSMTPMailer(Config{Host: "smtp.healthbook.test", Port: 587, From: "no-reply@healthbook.test"}, zap.NewNop())

	require.NoError(t, err)
	require.NotNil(t, m.send)
	assert.Equal(t, "no-reply@healthbook.test", m.from)
	assert.NotNil(t, m.templates.Lookup(domain.TemplateBookingConfirmation+".html"))
}

func TestRender(t *testing.T) {
	m := newTestMailer(t, nil)

	withLink, err := m.Render(confirmationJob("https://hb.daily.co/booking-1"))
	require.NoError(t, err)
	assert.Contains(t, withLink, "Hi Tobi,")
	assert.Contains(t, withLink, "Monday, March 2, 2026")
	assert.Contains(t, withLink, `href="https://hb.daily.co/booking-1"`)

	withoutLink, err := m.Render(confirmationJob(""))
	require.NoError(t, err)
	assert.Contains(t, withoutLink, "will be shared with you")
	assert.NotContains(t, withoutLink, "Join the session")
}

func TestRender_EscapesData(t *testing.T) {
	m := newTestMailer(t, nil)
	job := confirmationJob("")
	job.Data["userName"] = "<script>x</script>"

	out, err := m.Render(job)
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
}

func TestRender_UnknownTemplate(t *testing.T) {
	m := newTestMailer(t, nil)
	_, err := m.Render(domain.NotificationJob{Template: "password_reset"})
	assert.Error(t, err)
}

func TestSend(t *testing.T) {
	var gotTo []string
	var raw bytes.Buffer

	m := newTestMailer(t, func(from string, to []string, msg io.WriterTo) error {
		assert.Equal(t, "no-reply@healthbook.test", from)
		gotTo = to
		_, err := msg.WriteTo(&raw)
		return err
	})

	require.NoError(t, m.Send(context.Background(), confirmationJob("https://hb.daily.co/booking-1")))
	assert.Equal(t, []string{"tobi@example.com"}, gotTo)
	assert.Contains(t, raw.String(), "Subject: Booking confirmed: Consultation with Dr. Ada")
}

func TestSend_TransportError(t *testing.T) {
	m := newTestMailer(t, func(string, []string, io.WriterTo) error {
		return errors.New("connection refused")
	})

	err := m.Send(context.Background(), confirmationJob(""))
	assert.ErrorContains(t, err, "connection refused")
}
