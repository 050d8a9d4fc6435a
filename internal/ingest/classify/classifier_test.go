package classify

import (
	"testing"

	trackerdomain "jobtrail-backend/internal/tracker/domain"
)

func TestExclude(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name       string
		haystack   string
		fromDomain string
		wantReason string
		wantSkip   bool
	}{
		{
			name:       "hard-excluded sender domain",
			haystack:   Haystack("Your week in review", "nothing relevant"),
			fromDomain: "mail.hiwellapp.com",
			wantReason: ReasonNonApplicationDomain,
			wantSkip:   true,
		},
		{
			name:       "therapy notice",
			haystack:   Haystack("Reminder", "your video session starts soon"),
			wantReason: ReasonHealthNotice,
			wantSkip:   true,
		},
		{
			name:       "newsletter beats interview keyword",
			haystack:   Haystack("Weekly digest", "top interview tips this week"),
			wantReason: ReasonNewsletter,
			wantSkip:   true,
		},
		{
			name:       "service notice",
			haystack:   Haystack("Your password reset code", ""),
			wantReason: ReasonServiceNotice,
			wantSkip:   true,
		},
		{
			name:       "job alert",
			haystack:   Haystack("Job Alert", "new jobs for you"),
			wantReason: ReasonJobAdvertOrAlert,
			wantSkip:   true,
		},
		{
			name:     "application confirmation passes through",
			haystack: Haystack("Your application to Globex", "thank you for applying"),
			wantSkip: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reason, skip := c.Exclude(tt.haystack, tt.fromDomain)
			if skip != tt.wantSkip {
				t.Fatalf("Exclude() skip = %v, want %v (reason %q)", skip, tt.wantSkip, reason)
			}
			if skip && reason != tt.wantReason {
				t.Errorf("Exclude() reason = %q, want %q", reason, tt.wantReason)
			}
		})
	}
}

func TestLifecycle(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name       string
		haystack   string
		isATS      bool
		wantStatus trackerdomain.Status
		wantOK     bool
	}{
		{
			name:       "rejection wins over application boilerplate",
			haystack:   Haystack("Update on your application", "unfortunately we will not move forward with your application"),
			wantStatus: trackerdomain.StatusRejected,
			wantOK:     true,
		},
		{
			name:       "interview wins over applied wording",
			haystack:   Haystack("Next steps", "we would like to schedule a call about your application"),
			wantStatus: trackerdomain.StatusInterview,
			wantOK:     true,
		},
		{
			name:       "german rejection",
			haystack:   Haystack("Ihre Bewerbung", "leider können wir ihnen keine zusage machen"),
			wantStatus: trackerdomain.StatusRejected,
			wantOK:     true,
		},
		{
			name:       "strong applied confirmation",
			haystack:   Haystack("", "we received your application and will be in touch"),
			wantStatus: trackerdomain.StatusApplied,
			wantOK:     true,
		},
		{
			name:       "ats sender alone counts as applied",
			haystack:   Haystack("Welcome", "we are glad you are here"),
			isATS:      true,
			wantStatus: trackerdomain.StatusApplied,
			wantOK:     true,
		},
		{
			name:     "no signal at all",
			haystack: Haystack("Lunch on friday?", "see you at noon"),
			wantOK:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, ok := c.Lifecycle(tt.haystack, tt.isATS)
			if ok != tt.wantOK {
				t.Fatalf("Lifecycle() ok = %v, want %v (status %q)", ok, tt.wantOK, status)
			}
			if ok && status != tt.wantStatus {
				t.Errorf("Lifecycle() = %q, want %q", status, tt.wantStatus)
			}
		})
	}
}

func TestSource(t *testing.T) {
	c := NewClassifier(DefaultRules())

	tests := []struct {
		name       string
		fromDomain string
		senderBlob string
		wantSource string
		wantATS    bool
	}{
		{name: "greenhouse mailer", fromDomain: "mail.greenhouse.io", wantSource: "Greenhouse", wantATS: true},
		{name: "linkedin", fromDomain: "linkedin.com", wantSource: "LinkedIn", wantATS: true},
		{name: "ats only in reply-to blob", fromDomain: "acme.com", senderBlob: "reply-to: jobs@mg.lever.co", wantSource: "Other", wantATS: true},
		{name: "unknown sender", fromDomain: "example.org", wantSource: "Other", wantATS: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source, isATS := c.Source(tt.fromDomain, tt.senderBlob)
			if source != tt.wantSource || isATS != tt.wantATS {
				t.Errorf("Source() = (%q, %v), want (%q, %v)", source, isATS, tt.wantSource, tt.wantATS)
			}
		})
	}
}
