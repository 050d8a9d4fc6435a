package classify

import (
	"strings"

	trackerdomain "jobtrail-backend/internal/tracker/domain"
)

// Skip reasons recorded when a message is dropped before reconciliation.
const (
	ReasonNonApplicationDomain = "non_application_domain"
	ReasonHealthNotice         = "health_or_therapy_notice"
	ReasonNewsletter           = "newsletter"
	ReasonServiceNotice        = "service_notice"
	ReasonJobAdvertOrAlert     = "job_advert_or_alert"
	ReasonNoPositiveSignal     = "no_positive_signal"
)

// Classifier scores a message haystack against the configured keyword
// tables. It is stateless and safe for concurrent use.
type Classifier struct {
	rules Rules
}

// NewClassifier creates a classifier bound to an immutable rule set.
func NewClassifier(rules Rules) *Classifier {
	return &Classifier{rules: rules}
}

// Haystack builds the lowercased blob the keyword checks run against.
func Haystack(parts ...string) string {
	var nonEmpty []string
	for _, p := range parts {
		if p != "" {
			nonEmpty = append(nonEmpty, p)
		}
	}
	return strings.ToLower(strings.Join(nonEmpty, "\n"))
}

func hasAny(haystack string, keys []string) bool {
	for _, k := range keys {
		if k != "" && strings.Contains(haystack, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// Exclude checks the hard exclusion filters in fixed order and returns
// the skip reason of the first one that fires. Exclusion runs before
// lifecycle classification and short-circuits it.
func (c *Classifier) Exclude(haystack, fromDomain string) (string, bool) {
	if fromDomain != "" {
		for _, d := range c.rules.ExcludedSenderDomains {
			if strings.HasSuffix(fromDomain, d) {
				return ReasonNonApplicationDomain, true
			}
		}
	}
	if hasAny(haystack, c.rules.HealthKeywords) {
		return ReasonHealthNotice, true
	}
	if hasAny(haystack, c.rules.NewsletterKeywords) {
		return ReasonNewsletter, true
	}
	if hasAny(haystack, c.rules.ServiceKeywords) {
		return ReasonServiceNotice, true
	}
	if hasAny(haystack, c.rules.JobAlertKeywords) || hasAny(haystack, c.rules.JobAdvertKeywords) {
		return ReasonJobAdvertOrAlert, true
	}
	return "", false
}

// Lifecycle classifies a surviving haystack in strict priority order:
// rejection and interview signals are rarer and higher-value, so they
// win over the generic application boilerplate that templated footers
// often carry. A known ATS sender counts as an Applied signal even
// without any keyword hit.
func (c *Classifier) Lifecycle(haystack string, isATS bool) (trackerdomain.Status, bool) {
	switch {
	case hasAny(haystack, c.rules.RejectionKeywords):
		return trackerdomain.StatusRejected, true
	case hasAny(haystack, c.rules.InterviewKeywords):
		return trackerdomain.StatusInterview, true
	case hasAny(haystack, c.rules.StrongAppliedPhrases) || hasAny(haystack, c.rules.MediumAppliedWords):
		return trackerdomain.StatusApplied, true
	case isATS:
		return trackerdomain.StatusApplied, true
	}
	return "", false
}

// Source resolves the recruiting platform behind a sender. The display
// name comes from the domain map; isATS is true when either the From
// domain or the wider sender blob matches a known platform.
func (c *Classifier) Source(fromDomain, senderBlob string) (string, bool) {
	source := "Other"
	isATS := false
	blob := strings.ToLower(senderBlob)
	for dom, name := range c.rules.SourceByDomain {
		if fromDomain != "" && strings.HasSuffix(fromDomain, dom) {
			source = name
			isATS = true
		} else if blob != "" && strings.Contains(blob, dom) {
			isATS = true
		}
	}
	return source, isATS
}

// Flags is the per-message diagnostic breakdown of every classifier
// check, surfaced by the diagnose endpoint.
type Flags struct {
	IsATS              bool `json:"isATS"`
	HasNewsletterKeys  bool `json:"hasNewsletterKeys"`
	HasServiceKeys     bool `json:"hasServiceKeys"`
	HasJobAdvertKeys   bool `json:"hasJobAdvertKeys"`
	HasListUnsubscribe bool `json:"hasListUnsubscribe"`
	IsRejected         bool `json:"isRejected"`
	IsInterview        bool `json:"isInterview"`
	StrongPositive     bool `json:"strongPositive"`
	MediumPositive     bool `json:"mediumPositive"`
}

// Inspect evaluates every keyword table independently without
// short-circuiting, for diagnostics.
func (c *Classifier) Inspect(haystack, fromDomain, senderBlob string, hasListUnsubscribe bool) Flags {
	_, isATS := c.Source(fromDomain, senderBlob)
	return Flags{
		IsATS:              isATS,
		HasNewsletterKeys:  hasAny(haystack, c.rules.NewsletterKeywords),
		HasServiceKeys:     hasAny(haystack, c.rules.ServiceKeywords),
		HasJobAdvertKeys:   hasAny(haystack, c.rules.JobAdvertKeywords) || hasAny(haystack, c.rules.JobAlertKeywords),
		HasListUnsubscribe: hasListUnsubscribe,
		IsRejected:         hasAny(haystack, c.rules.RejectionKeywords),
		IsInterview:        hasAny(haystack, c.rules.InterviewKeywords),
		StrongPositive:     hasAny(haystack, c.rules.StrongAppliedPhrases),
		MediumPositive:     hasAny(haystack, c.rules.MediumAppliedWords),
	}
}
