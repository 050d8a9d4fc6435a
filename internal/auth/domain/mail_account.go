package domain

import "time"

// GmailToken holds one user's Gmail OAuth credentials. One row per
// user; the refresh token is kept so expired access tokens can be
// rotated without re-linking.
type GmailToken struct {
	UserID       string    `json:"user_id" gorm:"primaryKey"`
	AccessToken  string    `json:"-" gorm:"not null"`
	RefreshToken string    `json:"-"`
	Expiry       time.Time `json:"expiry"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ImapAccount holds one user's linked IMAP mailbox. The password is
// stored AES-GCM encrypted.
type ImapAccount struct {
	UserID      string    `json:"user_id" gorm:"primaryKey"`
	Host        string    `json:"host" gorm:"not null"`
	Port        int       `json:"port" gorm:"not null"`
	Username    string    `json:"username" gorm:"not null"`
	PasswordEnc string    `json:"-" gorm:"not null"`
	UpdatedAt   time.Time `json:"updated_at"`
}
