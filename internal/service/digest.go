package service

import (
	"context"

	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/Dan9191/matrix-service/internal/utils"
)

// DigestItem is one monthly digest to mail
type DigestItem struct {
	Email    string
	Username string
	Label    string
	Period   CurrentPeriod
}

// Digest builds the current-period forecast for every subscribed date.
// Entries that cannot be decrypted or parsed are logged and skipped.
func (s *Service) Digest(ctx context.Context) ([]DigestItem, error) {
	subs, err := s.repo.ListSubscriptions(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]DigestItem, 0, len(subs))
	for _, sub := range subs {
		log := s.log.WithField("record_id", sub.RecordID)

		plain, err := utils.Decrypt(sub.BirthDateEnc, s.config.EncryptionKey)
		if err != nil {
			log.WithError(err).Error("Skipping undecryptable subscription")
			continue
		}
		birth, err := numerology.ParseDate(plain)
		if err != nil {
			log.WithError(err).Error("Skipping subscription with bad date")
			continue
		}
		period, err := s.CurrentPeriod(ctx, birth)
		if err != nil {
			log.WithError(err).Error("Skipping subscription")
			continue
		}
		items = append(items, DigestItem{
			Email:    sub.Email,
			Username: sub.Username,
			Label:    sub.Label,
			Period:   period,
		})
	}
	return items, nil
}
