package usecase

import (
	"log"
	"strings"
	"time"

	"jobtrail-backend/internal/ingest/extract"
	trackerdomain "jobtrail-backend/internal/tracker/domain"
)

const (
	reconcileWindowDays = 60
	reconcileCandidates = 10
)

// findExisting resolves which tracked application a message belongs
// to, in decreasing order of confidence: exact thread id, then a fuzzy
// company match inside the recency window, then the subject root
// against stored roles when no company was extracted at all. Lookup
// failures degrade to "no match" so a transient DB error inserts a
// duplicate instead of dropping the message.
func (u *ingestUsecase) findExisting(userID, threadID, nCompany, nRole, subject string) *trackerdomain.Application {
	if threadID != "" {
		app, err := u.appRepo.FindByThread(userID, threadID)
		if err != nil {
			log.Printf("[INGEST] Thread lookup failed: %v", err)
		} else if app != nil {
			return app
		}
	}

	since := time.Now().AddDate(0, 0, -reconcileWindowDays)

	company := nCompany
	if company == trackerdomain.UnknownValue {
		company = ""
	}
	role := nRole
	if role == trackerdomain.UnknownValue {
		role = ""
	}

	if company != "" {
		rows, err := u.appRepo.FindByCompanySince(userID, company, since, reconcileCandidates)
		if err != nil {
			log.Printf("[INGEST] Company lookup failed: %v", err)
		}
		for i := range rows {
			if matchesCandidate(&rows[i], company, role) {
				return &rows[i]
			}
		}
		return nil
	}

	// No company signal at all: match the subject root against roles.
	if root := extract.SubjectRoot(subject); root != "" {
		rows, err := u.appRepo.FindByRoleSince(userID, root, since, 1)
		if err != nil {
			log.Printf("[INGEST] Role lookup failed: %v", err)
		}
		if len(rows) > 0 {
			return &rows[0]
		}
	}

	return nil
}

// matchesCandidate checks a prefiltered row in Go: companies must
// contain each other in either direction, and roles only block the
// match when both sides are known and unrelated.
func matchesCandidate(row *trackerdomain.Application, company, role string) bool {
	c := strings.ToLower(row.Company)
	rc := strings.ToLower(company)
	companyClose := strings.Contains(c, rc) || strings.Contains(rc, c)

	roleDB := strings.ToLower(row.Role)
	nr := strings.ToLower(role)
	roleClose := nr == "" || roleDB == "" || strings.Contains(roleDB, nr) || strings.Contains(nr, roleDB)

	return companyClose && roleClose
}
