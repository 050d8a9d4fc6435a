package repository

import (
	"time"

	trackerdomain "jobtrail-backend/internal/tracker/domain"
)

// ApplicationRepository persists reconciled applications and their
// audit trail.
type ApplicationRepository interface {
	Create(app *trackerdomain.Application) error
	Update(app *trackerdomain.Application) error
	FindByThread(userID, threadID string) (*trackerdomain.Application, error)
	FindByCompanySince(userID, company string, since time.Time, limit int) ([]trackerdomain.Application, error)
	FindByRoleSince(userID, role string, since time.Time, limit int) ([]trackerdomain.Application, error)
	ListByUser(userID string) ([]trackerdomain.Application, error)
	GetByID(userID, id string) (*trackerdomain.Application, error)
	Delete(userID, id string) error
	CreateEmail(email *trackerdomain.ApplicationEmail) error
	ListEmailsByApplication(userID, applicationID string) ([]trackerdomain.ApplicationEmail, error)
}
