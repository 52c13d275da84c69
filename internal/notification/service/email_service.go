package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/vominhduc11/NexHub-sub001/config"
	"github.com/vominhduc11/NexHub-sub001/internal/event"
	"github.com/vominhduc11/NexHub-sub001/pkg/errs"
	"github.com/vominhduc11/NexHub-sub001/pkg/utils"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	ProcessEmailNotification(ctx context.Context, evt event.EmailNotificationEvent) (err error)
}

type EmailServiceImpl struct {
	config *config.Config
}

func CreateEmailService(config *config.Config) EmailService {
	return &EmailServiceImpl{config: config}
}

func (s *EmailServiceImpl) ProcessEmailNotification(ctx context.Context, evt event.EmailNotificationEvent) (err error) {
	if evt.Type != event.NotificationTypeEmail || evt.Email == "" {
		return errs.ErrInvalidEvent
	}

	message := gomail.NewMessage()
	message.SetHeader("From", s.config.SMTPConfig.Sender)
	message.SetHeader("To", evt.Email)
	message.SetHeader("Subject", evt.Subject)
	message.SetBody("text/plain", evt.Message)

	err = utils.SendEmail(message, s.config.SMTPConfig.Sender, s.config.SMTPConfig.Password, s.config.SMTPConfig.Server, s.config.SMTPConfig.Port)
	if err != nil {
		log.Error().Err(err).Str("component", "ProcessEmailNotification").Str("email", evt.Email).Msg("")
		return err
	}

	log.Info().Int64("account_id", evt.AccountID).Str("email", evt.Email).Str("subject", evt.Subject).Msg("notification email sent")

	return nil
}
