package usecase

import (
	"errors"
	"sort"
	"time"

	trackerdomain "jobtrail-backend/internal/tracker/domain"
	trackerdto "jobtrail-backend/internal/tracker/dto"
	"jobtrail-backend/internal/tracker/repository"
	"jobtrail-backend/pkg/fuzzy"
)

// trackerUsecase implements TrackerUsecase interface
type trackerUsecase struct {
	appRepo repository.ApplicationRepository
}

// NewTrackerUsecase creates a new instance of trackerUsecase
func NewTrackerUsecase(appRepo repository.ApplicationRepository) TrackerUsecase {
	return &trackerUsecase{
		appRepo: appRepo,
	}
}

// List returns the user's applications, newest activity first. A
// non-empty query narrows the list with typo-tolerant matching on
// company, role and notes, best matches first.
func (u *trackerUsecase) List(userID, query string) ([]trackerdomain.Application, error) {
	apps, err := u.appRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if query == "" {
		return apps, nil
	}

	var matched []trackerdomain.Application
	for _, app := range apps {
		if fuzzy.MatchApplication(query, app.Company, app.Role, app.Notes) {
			matched = append(matched, app)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		si := fuzzy.ScoreApplication(query, matched[i].Company, matched[i].Role, matched[i].Notes)
		sj := fuzzy.ScoreApplication(query, matched[j].Company, matched[j].Role, matched[j].Notes)
		return si > sj
	})
	return matched, nil
}

func (u *trackerUsecase) Get(userID, id string) (*trackerdomain.Application, error) {
	return u.appRepo.GetByID(userID, id)
}

func (u *trackerUsecase) Create(userID string, req *trackerdto.CreateApplicationRequest) (*trackerdomain.Application, error) {
	status := trackerdomain.StatusApplied
	if req.Status != "" {
		status = trackerdomain.Status(req.Status)
		if !status.Valid() {
			return nil, errors.New("unknown status: " + req.Status)
		}
	}

	app := &trackerdomain.Application{
		UserID:  userID,
		Company: req.Company,
		Role:    req.Role,
		Source:  req.Source,
		Status:  status,
		JobURL:  req.JobURL,
		Notes:   req.Notes,
	}
	if req.ApplyDate != "" {
		t, err := time.Parse(time.RFC3339, req.ApplyDate)
		if err != nil {
			return nil, errors.New("apply_date must be RFC 3339")
		}
		app.ApplyDate = &t
	}

	if err := u.appRepo.Create(app); err != nil {
		return nil, err
	}
	return app, nil
}

// Update applies a partial edit. Manual edits are authoritative: the
// status is set as given, not promoted through the lattice.
func (u *trackerUsecase) Update(userID, id string, req *trackerdto.UpdateApplicationRequest) (*trackerdomain.Application, error) {
	app, err := u.appRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, nil
	}

	if req.Company != nil {
		app.Company = *req.Company
	}
	if req.Role != nil {
		app.Role = *req.Role
	}
	if req.Source != nil {
		app.Source = *req.Source
	}
	if req.Status != nil {
		status := trackerdomain.Status(*req.Status)
		if !status.Valid() {
			return nil, errors.New("unknown status: " + *req.Status)
		}
		app.Status = status
	}
	if req.ApplyDate != nil {
		if *req.ApplyDate == "" {
			app.ApplyDate = nil
		} else {
			t, err := time.Parse(time.RFC3339, *req.ApplyDate)
			if err != nil {
				return nil, errors.New("apply_date must be RFC 3339")
			}
			app.ApplyDate = &t
		}
	}
	if req.JobURL != nil {
		app.JobURL = *req.JobURL
	}
	if req.Notes != nil {
		app.Notes = *req.Notes
	}

	if err := u.appRepo.Update(app); err != nil {
		return nil, err
	}
	return app, nil
}

func (u *trackerUsecase) Delete(userID, id string) error {
	return u.appRepo.Delete(userID, id)
}

// ListEmails returns the ingested-email audit trail of one application.
// A nil slice with no error means the application does not exist.
func (u *trackerUsecase) ListEmails(userID, id string) ([]trackerdomain.ApplicationEmail, error) {
	app, err := u.appRepo.GetByID(userID, id)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, nil
	}
	emails, err := u.appRepo.ListEmailsByApplication(userID, id)
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []trackerdomain.ApplicationEmail{}
	}
	return emails, nil
}
