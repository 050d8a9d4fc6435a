package classify

// Rules is the immutable keyword/domain configuration the classifier is
// built with. Keyword matching is case-insensitive substring containment,
// not word-boundary matching: deliberately permissive, tuned against
// recruiting-platform templates in English, German and Turkish.
type Rules struct {
	// Senders that never carry application signals, matched by domain suffix.
	ExcludedSenderDomains []string

	HealthKeywords     []string
	NewsletterKeywords []string
	ServiceKeywords    []string
	JobAdvertKeywords  []string
	JobAlertKeywords   []string

	RejectionKeywords    []string
	InterviewKeywords    []string
	StrongAppliedPhrases []string
	MediumAppliedWords   []string

	// SourceByDomain maps known recruiting-platform domains to a display
	// name. Presence on this list doubles as the ATS fallback signal.
	SourceByDomain map[string]string
}

// DefaultRules returns the curated production rule set.
func DefaultRules() Rules {
	return Rules{
		ExcludedSenderDomains: []string{
			"hiwellapp.com", "x.com", "jobleads.com",
		},
		HealthKeywords: []string{
			"hiwellapp", "therapy", "therapist", "psychologist", "psychologie", "psikolog", "psikoloji",
			"terapi", "seans", "session started", "video session", "consultation", "danışmanlık",
		},
		NewsletterKeywords: []string{
			"newsletter", "daily digest", "weekly digest", "digest",
			"insights", "this week", "für diese woche", "mitarbeiterbewertungen",
			"community", "product hunt", "the frontier",
			"medium daily", "mark manson", "substack", "german career insights", "freunde der zeit",
		},
		ServiceKeywords: []string{
			"auth", "authentication", "login code", "magic link", "verify your email",
			"security alert", "password reset", "device sign-in",
			"kundenbetreuung", "rechnung", "fatura", "payment", "billing", "contract",
			"supabase auth",
		},
		JobAdvertKeywords: []string{
			"job advert", "job advertisement", "stellenanzeige", "recommended jobs", "jobs you might like",
			"top jobs", "monetization jobs", "new openings", "career opportunities",
			"job suggestions", "we found new jobs for you", "vacancies", "open positions", "neue stellen",
		},
		JobAlertKeywords: []string{
			"job alert", "stellenangebot", "neue jobs", "new jobs for you", "job digest",
			"angebote der woche", "gerade hereingekommen",
		},
		RejectionKeywords: []string{
			"we will not move forward", "not moving forward", "unfortunately we will not", "no longer under consideration",
			"regret to inform you", "decided not to move forward", "will not proceed", "leider", "absage", "nicht weiter",
			"olumsuz değerlendirildi", "üzgünüz",
		},
		InterviewKeywords: []string{
			"interview", "phone screen", "technical interview", "onsite", "gespräch", "vorstellungsgespräch", "telefoninterview",
			"mülakat", "görüşme", "schedule a call", "book a call", "calendly",
		},
		StrongAppliedPhrases: []string{
			"application received", "we received your application", "thank you for applying", "your application to",
			"ihre bewerbung", "bewerbung eingegangen", "wir haben deine bewerbung erhalten", "bestätigung ihrer bewerbung",
		},
		MediumAppliedWords: []string{
			"application", "applied", "bewerbung", "postulation", "candidature", "confirm your email", "confirm your mail",
		},
		SourceByDomain: map[string]string{
			"linkedin.com":        "LinkedIn",
			"stepstone.de":        "StepStone",
			"stepstone.com":       "StepStone",
			"indeed.com":          "Indeed",
			"indeedemail.com":     "Indeed",
			"greenhouse.io":       "Greenhouse",
			"mail.greenhouse.io":  "Greenhouse",
			"lever.co":            "Lever",
			"hire.lever.co":       "Lever",
			"mg.lever.co":         "Lever",
			"personio.de":         "Personio",
			"personio.com":        "Personio",
			"smartrecruiters.com": "SmartRecruiters",
			"teamtailor.com":      "Teamtailor",
			"recruitee.com":       "Recruitee",
			"workday.com":         "Workday",
			"myworkday.com":       "Workday",
			"bamboohr.com":        "BambooHR",
			"oraclecloud.com":     "Oracle Cloud",
			"join.com":            "Join",
			"jobvite.com":         "Jobvite",
			"icims.com":           "iCIMS",
			"successfactors.com":  "SuccessFactors",
			"eightfold.ai":        "Eightfold",
		},
	}
}
