package email

import (
	"errors"
	"io"
	"testing"

	"github.com/Dan9191/matrix-service/internal/config"
	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/Dan9191/matrix-service/internal/service"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItem() service.DigestItem {
	f := numerology.NewYearForecast(15, 5, 2025)
	seg := f.Segments[9]
	r := seg.Range()
	return service.DigestItem{
		Email:    "anna@example.com",
		Username: "anna",
		Label:    "me",
		Period: service.CurrentPeriod{
			Date:    numerology.CalendarDate{Day: 15, Month: 5, Year: 1990},
			Age:     34,
			Year:    f,
			Segment: seg,
			Month:   numerology.NewMonthForecast(numerology.MonthRequest{BirthDay: 15, EventMonth: 2, Energy: 34, Range: &r}),
		},
	}
}

func newTestSender() *Sender {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewSender(&config.Config{SenderEmail: "matrix@example.com"}, log)
}

func TestBuildDigest(t *testing.T) {
	e := newTestSender().BuildDigest(testItem())

	assert.Equal(t, "matrix@example.com", e.From)
	assert.Equal(t, []string{"anna@example.com"}, e.To)
	assert.Equal(t, "Your personal month: 15.02.2025 – 14.03.2025", e.Subject)
	body := string(e.Text)
	assert.Contains(t, body, "Dear anna")
	assert.Contains(t, body, `"me" (1990-05-15)`)
	assert.Contains(t, body, "segment 10 of 12")
	assert.Contains(t, body, "age 34")
}

func TestSendDigest(t *testing.T) {
	s := newTestSender()
	var sent []*email.Email
	s.send = func(e *email.Email) error {
		sent = append(sent, e)
		return nil
	}
	require.NoError(t, s.SendDigest(testItem()))
	assert.Len(t, sent, 1)

	s.send = func(*email.Email) error { return errors.New("smtp down") }
	assert.Error(t, s.SendDigest(testItem()))
}
