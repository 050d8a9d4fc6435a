package extract

import "testing"

func TestHeuristicExtractorCardLayout(t *testing.T) {
	e := NewHeuristicExtractor()

	body := "Senior Backend Engineer\nAcme Corp · Berlin, Germany\nApplied on Jan 5, 2024\nView job"
	got := e.Extract(Input{Subject: "Your application was sent", Body: body, From: "jobs-noreply@linkedin.com", Source: "LinkedIn"})

	if got.Role != "Senior Backend Engineer" {
		t.Errorf("Role = %q, want %q", got.Role, "Senior Backend Engineer")
	}
	if got.Company != "Acme Corp" {
		t.Errorf("Company = %q, want %q", got.Company, "Acme Corp")
	}
}

func TestHeuristicExtractorCardLocationLine(t *testing.T) {
	e := NewHeuristicExtractor()

	body := "Staff Engineer\nApplied on Feb 2, 2024\nInitrode Berlin, Germany\nView job"
	got := e.Extract(Input{Body: body, From: "noreply@linkedin.com", Source: "LinkedIn"})

	if got.Role != "Staff Engineer" {
		t.Errorf("Role = %q, want %q", got.Role, "Staff Engineer")
	}
	if got.Company != "Initrode" {
		t.Errorf("Company = %q, want %q", got.Company, "Initrode")
	}
}

func TestHeuristicExtractorLabeledFields(t *testing.T) {
	e := NewHeuristicExtractor()

	body := "Job Title: Data Scientist (m/w/d)\nCompany: Hooli GmbH\nThanks for your application."
	got := e.Extract(Input{Subject: "Application update", Body: body, From: "careers@hooli.de"})

	if got.Role != "Data Scientist" {
		t.Errorf("Role = %q, want %q", got.Role, "Data Scientist")
	}
	if got.Company != "Hooli GmbH" {
		t.Errorf("Company = %q, want %q", got.Company, "Hooli GmbH")
	}
}

func TestHeuristicExtractorSentencePattern(t *testing.T) {
	e := NewHeuristicExtractor()

	body := "We received your application for the position of Platform Engineer at Initech Systems. Our team will review it."
	got := e.Extract(Input{Subject: "Application received", Body: body, From: "no-reply@mail.greenhouse.io"})

	if got.Role != "Platform Engineer" {
		t.Errorf("Role = %q, want %q", got.Role, "Platform Engineer")
	}
	if got.Company == "" {
		t.Error("Company should be derived from the sentence pattern")
	}
}

func TestHeuristicExtractorThanksPattern(t *testing.T) {
	e := NewHeuristicExtractor()

	body := "Thank you for your application to Globex Inc. We will be in touch shortly."
	got := e.Extract(Input{Subject: "Your application to Globex", Body: body, From: "noreply@mail.greenhouse.io"})

	if got.Company != "Globex Inc" {
		t.Errorf("Company = %q, want %q", got.Company, "Globex Inc")
	}
}

func TestHeuristicExtractorSubjectFallback(t *testing.T) {
	e := NewHeuristicExtractor()

	got := e.Extract(Input{Subject: "Product Manager – Initech", Body: "We have your documents on file.", From: "talent@initech-hr.io"})

	if got.Role != "Product Manager" {
		t.Errorf("Role = %q, want %q", got.Role, "Product Manager")
	}
	if got.Company != "Initech" {
		t.Errorf("Company = %q, want %q", got.Company, "Initech")
	}
}

func TestHeuristicExtractorSenderDomainFallback(t *testing.T) {
	e := NewHeuristicExtractor()

	got := e.Extract(Input{Subject: "Wir haben deine Bewerbung erhalten", Body: "Hallo, danke!", From: "HR Team <jobs@motork.io>"})

	if got.Company != "Motork" {
		t.Errorf("Company = %q, want %q", got.Company, "Motork")
	}
}

func TestHeuristicExtractorATSSenderYieldsNoCompany(t *testing.T) {
	e := NewHeuristicExtractor()

	got := e.Extract(Input{Subject: "Interview availability", Body: "Please share your availability.", From: "no-reply@us.greenhouse.io"})

	if got.Company != "" {
		t.Errorf("Company = %q, want empty (ATS platform domain must not become the employer)", got.Company)
	}
}

func TestHeuristicExtractorLinkedInJobURL(t *testing.T) {
	e := NewHeuristicExtractor()

	body := "Applied on Jan 3\nSee https://www.linkedin.com/jobs/view/3791234567/ for details"
	got := e.Extract(Input{Subject: "Backend Engineer at Acme", Body: body, From: "jobs-noreply@linkedin.com", Source: "LinkedIn"})

	if got.JobURL != "https://www.linkedin.com/jobs/view/3791234567/" {
		t.Errorf("JobURL = %q", got.JobURL)
	}

	// not a LinkedIn-source message: URL extraction is skipped
	got = e.Extract(Input{Subject: "Backend Engineer at Acme", Body: body, From: "jobs@acme.com", Source: "Other"})
	if got.JobURL != "" {
		t.Errorf("JobURL = %q, want empty for non-LinkedIn source", got.JobURL)
	}
}

func TestHeuristicExtractorDropsLinkedInAsCompany(t *testing.T) {
	e := NewHeuristicExtractor()

	got := e.Extract(Input{Subject: "Software Engineer at LinkedIn", Body: "Applied via job board", From: "jobs-noreply@linkedin.com", Source: "LinkedIn"})

	if got.Company != "" {
		t.Errorf("Company = %q, platform name must not survive as employer", got.Company)
	}
}

func TestCompositeExtractor(t *testing.T) {
	e := NewCompositeExtractor()

	tests := []struct {
		name        string
		in          Input
		wantRole    string
		wantCompany string
	}{
		{
			name:        "subject root plus display name",
			in:          Input{Subject: "Backend Engineer (m/w/d) - Ref 42", From: "Acme Recruiting <jobs@acme.com>"},
			wantRole:    "Backend Engineer",
			wantCompany: "Acme Recruiting",
		},
		{
			name:        "bare address falls back to domain",
			in:          Input{Subject: "Your application", From: "noreply@initech.com"},
			wantRole:    "Your application",
			wantCompany: "Initech",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.in)
			if got.Role != tt.wantRole {
				t.Errorf("Role = %q, want %q", got.Role, tt.wantRole)
			}
			if got.Company != tt.wantCompany {
				t.Errorf("Company = %q, want %q", got.Company, tt.wantCompany)
			}
		})
	}
}

func TestEmailDomain(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{input: "Acme HR <jobs@Acme.COM>", want: "acme.com"},
		{input: "noreply@mail.greenhouse.io", want: "mail.greenhouse.io"},
		{input: "no address here", want: ""},
	}
	for _, tt := range tests {
		if got := EmailDomain(tt.input); got != tt.want {
			t.Errorf("EmailDomain(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
