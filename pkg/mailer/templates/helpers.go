package templates

import (
	"time"

	"github.com/oksasatya/discount-catalog/config"
)

// Option pattern
type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithSender(name, email string) Option {
	return func(d *EmailData) {
		d.SenderName = name
		d.SenderEmail = email
	}
}

func WithImage(url string) Option { return func(d *EmailData) { d.ImageURL = url } }

func WithDescription(desc string) Option { return func(d *EmailData) { d.Description = desc } }

// SharedDiscount is the part of a discount that goes into a share email.
type SharedDiscount struct {
	ID         string
	Title      string
	Code       string
	PercentOff int
	Category   string
	ValidUntil string
}

// NewDiscountShareData fills the common fields from config and applies opts.
func NewDiscountShareData(cfg *config.Config, recipient string, d SharedDiscount, opts ...Option) map[string]any {
	data := EmailData{
		Type:           DiscountShare,
		RecipientEmail: recipient,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		Title:          d.Title,
		Code:           d.Code,
		PercentOff:     d.PercentOff,
		Category:       d.Category,
		ValidUntil:     d.ValidUntil,
		DiscountURL:    cfg.DiscountURL(d.ID),
	}
	for _, opt := range opts {
		opt(&data)
	}
	return ToMap(data)
}
