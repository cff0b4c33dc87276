package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/matrix-service/internal/models"
	"github.com/Dan9191/matrix-service/internal/numerology"
	"github.com/Dan9191/matrix-service/internal/repository"
	"github.com/Dan9191/matrix-service/internal/utils"
)

// SaveDate validates and stores a birth date in the user's history. The date is
// encrypted before it reaches the database.
func (s *Service) SaveDate(ctx context.Context, userID int64, req models.SaveDateRequest) (*models.DateRecord, error) {
	d, err := numerology.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	enc, err := utils.Encrypt(d.String(), s.config.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt birth date: %w", err)
	}

	rec := &models.DateRecord{
		UserID:       userID,
		Label:        req.Label,
		BirthDateEnc: enc,
		Subscribed:   req.Subscribe,
	}
	if err := s.repo.SaveDate(ctx, rec); err != nil {
		return nil, err
	}

	rec.BirthDate = d.String()
	s.log.Infof("Date saved for user %d", userID)
	return rec, nil
}

// ListDates returns the user's history with decrypted dates
func (s *Service) ListDates(ctx context.Context, userID int64) ([]models.DateRecord, error) {
	records, err := s.repo.ListDates(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range records {
		plain, err := utils.Decrypt(records[i].BirthDateEnc, s.config.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt date %d: %w", records[i].ID, err)
		}
		records[i].BirthDate = plain
	}
	return records, nil
}

// DeleteDate removes a history entry owned by the user
func (s *Service) DeleteDate(ctx context.Context, userID, id int64) error {
	if err := s.repo.DeleteDate(ctx, userID, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: date %d", ErrNotFound, id)
		}
		return err
	}
	s.log.Infof("Date %d deleted for user %d", id, userID)
	return nil
}
