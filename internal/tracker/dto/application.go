package dto

import trackerdomain "jobtrail-backend/internal/tracker/domain"

type CreateApplicationRequest struct {
	Company   string `json:"company" binding:"required"`
	Role      string `json:"role" binding:"required"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	ApplyDate string `json:"apply_date"` // RFC 3339, optional
	JobURL    string `json:"job_url"`
	Notes     string `json:"notes"`
}

type UpdateApplicationRequest struct {
	Company   *string `json:"company"`
	Role      *string `json:"role"`
	Source    *string `json:"source"`
	Status    *string `json:"status"`
	ApplyDate *string `json:"apply_date"`
	JobURL    *string `json:"job_url"`
	Notes     *string `json:"notes"`
}

type ApplicationsResponse struct {
	Applications []trackerdomain.Application `json:"applications"`
	Total        int                         `json:"total"`
}
