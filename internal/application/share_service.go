package application

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/discount-catalog/config"
	"github.com/oksasatya/discount-catalog/internal/domain/entity"
	"github.com/oksasatya/discount-catalog/pkg/helpers"
	"github.com/oksasatya/discount-catalog/pkg/mailer"
	tpl "github.com/oksasatya/discount-catalog/pkg/mailer/templates"
)

// Publisher puts a JSON message on the email queue.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// ShareService enqueues "share this discount" emails for the email worker.
type ShareService struct {
	Pub    Publisher
	Cfg    *config.Config
	Logger logrus.FieldLogger
}

func NewShareService(pub Publisher, cfg *config.Config, logger logrus.FieldLogger) *ShareService {
	return &ShareService{Pub: pub, Cfg: cfg, Logger: logger}
}

// Enabled reports whether share emails can be sent.
func (s *ShareService) Enabled() bool {
	return s != nil && s.Pub != nil && s.Cfg != nil && s.Cfg.MailSendEnabled
}

// Share sends d to recipient on behalf of sender.
func (s *ShareService) Share(ctx context.Context, sender entity.UserInfo, recipient string, d entity.Discount) error {
	if !s.Enabled() {
		return ErrShareDisabled
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(recipient))
	if err != nil {
		return err
	}
	data := tpl.NewDiscountShareData(s.Cfg, addr.Address, tpl.SharedDiscount{
		ID:         d.ID,
		Title:      d.Title,
		Code:       d.Code,
		PercentOff: d.PercentOff,
		Category:   d.Category,
		ValidUntil: d.ValidUntil,
	},
		tpl.WithSender(sender.Name, sender.Email),
		tpl.WithTime(time.Now()),
		tpl.WithImage(d.ImageURL),
		tpl.WithDescription(d.Description),
	)
	job := mailer.EmailJob{To: addr.Address, Template: tpl.DiscountShare, Data: data}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		helpers.LogError(s.Logger, "enqueue share email failed", err, logrus.Fields{"discount_id": d.ID})
		return err
	}
	helpers.LogInfo(s.Logger, "share email enqueued", logrus.Fields{"discount_id": d.ID, "sender_id": sender.ID})
	return nil
}
