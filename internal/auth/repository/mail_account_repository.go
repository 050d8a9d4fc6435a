package repository

import (
	"errors"
	"time"

	authdomain "jobtrail-backend/internal/auth/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// mailAccountRepository implements MailAccountRepository interface
type mailAccountRepository struct {
	db *gorm.DB
}

// NewMailAccountRepository creates a new instance of mailAccountRepository
func NewMailAccountRepository(db *gorm.DB) MailAccountRepository {
	return &mailAccountRepository{
		db: db,
	}
}

// SaveGmailToken stores or replaces the user's Gmail OAuth credentials
// (atomic upsert on user_id).
func (r *mailAccountRepository) SaveGmailToken(token *authdomain.GmailToken) error {
	token.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"access_token", "refresh_token", "expiry", "updated_at"}),
	}).Create(token).Error
}

func (r *mailAccountRepository) GetGmailToken(userID string) (*authdomain.GmailToken, error) {
	var token authdomain.GmailToken
	err := r.db.Where("user_id = ?", userID).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &token, nil
}

func (r *mailAccountRepository) DeleteGmailToken(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.GmailToken{}).Error
}

// SaveImapAccount stores or replaces the user's IMAP account (atomic
// upsert on user_id).
func (r *mailAccountRepository) SaveImapAccount(account *authdomain.ImapAccount) error {
	account.UpdatedAt = time.Now()
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"host", "port", "username", "password_enc", "updated_at"}),
	}).Create(account).Error
}

func (r *mailAccountRepository) GetImapAccount(userID string) (*authdomain.ImapAccount, error) {
	var account authdomain.ImapAccount
	err := r.db.Where("user_id = ?", userID).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *mailAccountRepository) DeleteImapAccount(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&authdomain.ImapAccount{}).Error
}
