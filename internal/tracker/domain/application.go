package domain

import "time"

// UnknownValue marks a field whose extraction was attempted and found
// nothing. It is stored literally instead of an empty string so that
// "never extracted" and "extracted nothing" stay distinguishable.
const UnknownValue = "(Unknown)"

// Status is the lifecycle state of a tracked application.
type Status string

const (
	StatusApplied     Status = "Applied"
	StatusPhoneScreen Status = "Phone Screen"
	StatusInterview   Status = "Interview"
	StatusOffer       Status = "Offer"
	StatusRejected    Status = "Rejected"
	StatusWithdrawn   Status = "Withdrawn"
)

// statusWeight orders the promotion lattice. Rejected and Withdrawn
// outrank Offer: a terminal outcome must not be overwritten by a stale
// positive signal arriving out of order.
var statusWeight = map[Status]int{
	StatusApplied:     1,
	StatusPhoneScreen: 2,
	StatusInterview:   3,
	StatusOffer:       4,
	StatusRejected:    5,
	StatusWithdrawn:   6,
}

// Weight returns the promotion weight of the status, 0 for unknown values.
func (s Status) Weight() int {
	return statusWeight[s]
}

// Valid reports whether s is one of the known lifecycle states.
func (s Status) Valid() bool {
	_, ok := statusWeight[s]
	return ok
}

// Promote resolves the status an application should carry after a new
// signal arrives. The result's weight never decreases: an empty prev
// takes the incoming status (default Applied), an empty incoming keeps
// prev, otherwise the heavier of the two wins.
func Promote(prev, incoming Status) Status {
	if prev == "" {
		if incoming == "" {
			return StatusApplied
		}
		return incoming
	}
	if incoming == "" {
		return prev
	}
	if incoming.Weight() >= prev.Weight() {
		return incoming
	}
	return prev
}

// Application represents one logical job application, reconciled across
// all emails that refer to the same employer/role context.
type Application struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"index;not null"`
	ThreadID  string     `json:"thread_id" gorm:"index"`
	GmailID   string     `json:"gmail_id,omitempty"`
	Company   string     `json:"company" gorm:"not null"`
	Role      string     `json:"role" gorm:"not null"`
	Source    string     `json:"source"`
	Status    Status     `json:"status" gorm:"not null"`
	ApplyDate *time.Time `json:"apply_date,omitempty"`
	JobURL    string     `json:"job_url,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ApplicationEmail is an append-only audit row, one per ingested
// message that reconciled to an application. Rows are never updated.
type ApplicationEmail struct {
	ID            string     `json:"id" gorm:"primaryKey"`
	UserID        string     `json:"user_id" gorm:"index;not null"`
	ApplicationID string     `json:"application_id" gorm:"index;not null"`
	GmailID       string     `json:"gmail_id,omitempty"`
	Subject       string     `json:"subject"`
	SentAt        *time.Time `json:"sent_at,omitempty"`
	GmailLink     string     `json:"gmail_link,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
