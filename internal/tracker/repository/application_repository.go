package repository

import (
	"errors"
	"time"

	trackerdomain "jobtrail-backend/internal/tracker/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// applicationRepository implements ApplicationRepository interface
type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new instance of applicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{
		db: db,
	}
}

func (r *applicationRepository) Create(app *trackerdomain.Application) error {
	app.ID = uuid.New().String()
	app.CreatedAt = time.Now()
	app.UpdatedAt = time.Now()
	return r.db.Create(app).Error
}

func (r *applicationRepository) Update(app *trackerdomain.Application) error {
	app.UpdatedAt = time.Now()
	return r.db.Save(app).Error
}

func (r *applicationRepository) FindByThread(userID, threadID string) (*trackerdomain.Application, error) {
	var app trackerdomain.Application
	err := r.db.Where("user_id = ? AND thread_id = ?", userID, threadID).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

// FindByCompanySince returns recent applications whose company contains
// the given fragment, newest first. The fragment is passed as a bind
// parameter inside ILIKE, never interpolated.
func (r *applicationRepository) FindByCompanySince(userID, company string, since time.Time, limit int) ([]trackerdomain.Application, error) {
	var apps []trackerdomain.Application
	err := r.db.
		Where("user_id = ? AND created_at >= ? AND company ILIKE ?", userID, since, "%"+company+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// FindByRoleSince is the role-side counterpart of FindByCompanySince.
func (r *applicationRepository) FindByRoleSince(userID, role string, since time.Time, limit int) ([]trackerdomain.Application, error) {
	var apps []trackerdomain.Application
	err := r.db.
		Where("user_id = ? AND created_at >= ? AND role ILIKE ?", userID, since, "%"+role+"%").
		Order("created_at DESC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) ListByUser(userID string) ([]trackerdomain.Application, error) {
	var apps []trackerdomain.Application
	err := r.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *applicationRepository) GetByID(userID, id string) (*trackerdomain.Application, error) {
	var app trackerdomain.Application
	err := r.db.Where("user_id = ? AND id = ?", userID, id).First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) Delete(userID, id string) error {
	return r.db.Where("user_id = ? AND id = ?", userID, id).Delete(&trackerdomain.Application{}).Error
}

func (r *applicationRepository) CreateEmail(email *trackerdomain.ApplicationEmail) error {
	email.ID = uuid.New().String()
	email.CreatedAt = time.Now()
	return r.db.Create(email).Error
}

// ListEmailsByApplication returns the audit trail of one application in
// chronological order.
func (r *applicationRepository) ListEmailsByApplication(userID, applicationID string) ([]trackerdomain.ApplicationEmail, error) {
	var emails []trackerdomain.ApplicationEmail
	err := r.db.
		Where("user_id = ? AND application_id = ?", userID, applicationID).
		Order("created_at ASC").
		Find(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

// PgErrorCode returns the SQLSTATE code when err wraps a Postgres
// error, "" otherwise. The ingest pipeline uses it to tag per-message
// skip reasons without aborting the batch.
func PgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
