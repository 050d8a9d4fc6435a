package usecase

import (
	trackerdomain "jobtrail-backend/internal/tracker/domain"
	trackerdto "jobtrail-backend/internal/tracker/dto"
)

// TrackerUsecase is the dashboard surface over tracked applications.
type TrackerUsecase interface {
	List(userID, query string) ([]trackerdomain.Application, error)
	Get(userID, id string) (*trackerdomain.Application, error)
	Create(userID string, req *trackerdto.CreateApplicationRequest) (*trackerdomain.Application, error)
	Update(userID, id string, req *trackerdto.UpdateApplicationRequest) (*trackerdomain.Application, error)
	Delete(userID, id string) error
	ListEmails(userID, id string) ([]trackerdomain.ApplicationEmail, error)
}
