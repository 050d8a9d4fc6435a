package repository

import authdomain "jobtrail-backend/internal/auth/domain"

// UserRepository persists users and their refresh tokens.
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByEmail(email string) (*authdomain.User, error)
	FindByID(id string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}

// MailAccountRepository persists linked mailbox credentials, Gmail
// OAuth tokens and IMAP accounts alike.
type MailAccountRepository interface {
	SaveGmailToken(token *authdomain.GmailToken) error
	GetGmailToken(userID string) (*authdomain.GmailToken, error)
	DeleteGmailToken(userID string) error
	SaveImapAccount(account *authdomain.ImapAccount) error
	GetImapAccount(userID string) (*authdomain.ImapAccount, error)
	DeleteImapAccount(userID string) error
}
