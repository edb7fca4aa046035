package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/discount-catalog/config"
	"github.com/oksasatya/discount-catalog/pkg/mailer"
	mailtpl "github.com/oksasatya/discount-catalog/pkg/mailer/templates"
)

func TestBuildMessageRendersTemplate(t *testing.T) {
	cfg := &config.Config{PublicURL: "https://coupons.example.com"}
	job := mailer.EmailJob{
		To:       "friend@example.com",
		Template: mailtpl.DiscountShare,
		Data: mailtpl.NewDiscountShareData(cfg, "friend@example.com",
			mailtpl.SharedDiscount{ID: "d1", Title: "Shoes", Code: "SHOE20", PercentOff: 20},
			mailtpl.WithSender("Olena", "olena@example.com")),
	}
	body, err := json.Marshal(job)
	require.NoError(t, err)

	msg, err := buildMessage(body)
	require.NoError(t, err)
	assert.Equal(t, "friend@example.com", msg.To)
	assert.Equal(t, "20% off Shoes from Olena", msg.Subject)
	assert.Equal(t, "olena@example.com", msg.ReplyTo)
	assert.Contains(t, msg.HTML, "SHOE20")
}

func TestBuildMessageRejectsBadJobs(t *testing.T) {
	_, err := buildMessage([]byte("{"))
	assert.Error(t, err)

	_, err = buildMessage([]byte(`{"to":"a@example.com"}`))
	assert.ErrorIs(t, err, errBadJob)

	msg, err := buildMessage([]byte(`{"to":"a@example.com","subject":"hi","text":"plain"}`))
	require.NoError(t, err)
	assert.Equal(t, "plain", msg.Text)
	assert.Empty(t, msg.ReplyTo)
}
