package extract

// CompositeExtractor is the deterministic alternative strategy: instead
// of mining the body for an employer name it composes the fields from
// the subject root and the sender's display name. Less informative than
// the heuristic extractor but fully predictable, which makes imports
// reproducible across runs.
type CompositeExtractor struct{}

// NewCompositeExtractor creates the deterministic strategy.
func NewCompositeExtractor() *CompositeExtractor {
	return &CompositeExtractor{}
}

func (e *CompositeExtractor) Extract(in Input) Fields {
	role := CleanRole(SubjectRoot(in.Subject))

	company := SenderName(in.From)
	if company == "" || EmailDomain(company) != "" {
		// display name missing or just the raw address
		company = CompanyFromSender(in.From)
	}

	var jobURL string
	if in.Source == "LinkedIn" {
		jobURL = linkedinJobURLRe.FindString(in.Body)
	}

	if len(company) > maxCompanyLen {
		company = ""
	}
	if len(role) > maxRoleLen {
		role = ""
	}

	return Fields{Role: role, Company: company, JobURL: jobURL}
}
