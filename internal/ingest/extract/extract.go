package extract

import (
	"regexp"
	"strings"

	"jobtrail-backend/pkg/textutil"
)

// Input is everything the field extraction strategies may consult.
type Input struct {
	Subject string
	Body    string
	From    string
	Source  string
}

// Fields is the extraction result before normalization and the
// "(Unknown)" sentinel are applied by the pipeline.
type Fields struct {
	Role    string
	Company string
	JobURL  string
}

// Extractor derives role/company/jobUrl from a message. Two strategies
// exist: the heuristic multi-source extractor (default) and the
// deterministic subject-at-sender composite.
type Extractor interface {
	Extract(in Input) Fields
}

const (
	maxCompanyLen = 120
	maxRoleLen    = 140
)

var (
	roleLabels    = []string{`job\s*title`, `job\s*role`, `position`, `role`, `title`, `stelle`, `stellenbezeichnung`, `positionstitel`}
	companyLabels = []string{`company`, `unternehmen`, `firma`, `employer`}

	roleLabelRe    = buildLabelRe(roleLabels)
	companyLabelRe = buildLabelRe(companyLabels)

	updateFromRe = regexp.MustCompile(`(?i)\byour update from\s+([A-Z][A-Za-z0-9&().' -]{2,})\b`)
	sentToRe     = regexp.MustCompile(`(?i)\byour application was sent to\s+([A-Z][A-Za-z0-9&().' -]{2,})\b`)

	sentenceRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bfor the (?:position|role) of\s+([A-Za-z0-9().,'&\-/ ]{2,})\s+at\s+([A-Za-z0-9().,'&\-/ ]{2,})`),
		regexp.MustCompile(`(?i)\bfor\s+([A-Za-z0-9().,'&\-/ ]{2,})\s+at\s+([A-Za-z0-9().,'&\-/ ]{2,})`),
		regexp.MustCompile(`(?i)\bfür die position\s+([A-Za-z0-9().,'&\-/ ]{2,})\s+bei\s+([A-Za-z0-9().,'&\-/ ]{2,})`),
		regexp.MustCompile(`(?i)\bfür\s+([A-Za-z0-9().,'&\-/ ]{2,})\s+bei\s+([A-Za-z0-9().,'&\-/ ]{2,})\b`),
	}

	atCompanyRe  = regexp.MustCompile(`(?i)\bat\s+([A-Z][A-Za-z0-9&\-()'.\s]{2,})\s*(?:[.,]|$)`)
	beiCompanyRe = regexp.MustCompile(`(?i)\bbei\s+([A-Z][A-Za-z0-9&\-()'.\s]{2,})\s*(?:[.,]|$)`)

	subjectAtRe   = regexp.MustCompile(`(?i)(.+?)\s+at\s+(.+)$`)
	subjectBeiRe  = regexp.MustCompile(`(?i)(.+?)\s+bei\s+(.+)$`)
	subjectDashRe = regexp.MustCompile(`(.+?)\s+[–—-]\s+(.+)$`)

	thanksEnRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bthank you for your interest in joining\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bthank you for your interest in\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bthanks for your interest in\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bwe appreciate your interest in\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bthank you for your application to\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bthanks for applying to\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bthank you for applying to\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bthank you for your interest at\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
	}
	thanksDeRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\bvielen dank (?:für|fuer) (?:ihr|dein)e?n?\s+interesse an\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bvielen dank (?:für|fuer) (?:ihr|dein)e?n?\s+bewerbung bei\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bwir danken (?:ihnen|dir) (?:für|fuer) (?:ihr|dein)e?n?\s+interesse an\s+([A-Z][A-Za-z0-9&()'\- ]{2,})\b`),
	}
	thanksTrRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:firmamıza|şirketimize|ekibimize)?\s*ilginiz için teşekkür(?:ler| ederiz)\s*,?\s*([A-ZÇĞİÖŞÜ][A-Za-zÇĞİÖŞÜ0-9&()'\- ]{2,})\b`),
		regexp.MustCompile(`(?i)\bbaşvurunuz için teşekkür(?:ler| ederiz)\s*,?\s*([A-ZÇĞİÖŞÜ][A-Za-zÇĞİÖŞÜ0-9&()'\- ]{2,})\b`),
	}

	linkedinJobURLRe = regexp.MustCompile(`(?i)https?://[^\s"']*linkedin\.com/jobs/view/[^\s"')]+`)

	angledAddrRe = regexp.MustCompile(`<[^@<>]+@([^>\s]+)>`)
	bareAddrRe   = regexp.MustCompile(`[^@<\s]+@([^\s>]+)`)

	appliedOnRe     = regexp.MustCompile(`(?i)^applied(?: on)?\b`)
	separatorLineRe = regexp.MustCompile(`^[-–—_]{5,}$`)
	boilerplateRe   = regexp.MustCompile(`(?i)^(your|now,|view similar|top jobs|regards|dear|hi|hello|your application|your update)`)
	viewJobRe       = regexp.MustCompile(`(?i)view job`)
	hasLetterRe     = regexp.MustCompile(`[A-Za-z]`)
	companyLikeRe   = regexp.MustCompile(`^(?:[A-Z][\w&'().-]+(?:\s+[A-Z][\w&'().-]+){0,6})$`)
	atBeiLineRe     = regexp.MustCompile(`(?i)^(?:at|bei)\s+([A-Z][\w&\-'(). ]{2,})`)
	middotTailRe    = regexp.MustCompile(`\s*·\s*.*$`)

	cardLocRe = buildCardLocRe()
)

func buildLabelRe(labels []string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + strings.Join(labels, "|") + `)\s*[:\-]\s*([^\n]+)`)
}

func buildCardLocRe() *regexp.Regexp {
	locWords := []string{
		"remote", "europe", "european union", "germany", "deutschland", "türkiye", "turkey",
		"france", "italy", "spain", "netherlands", "poland", "austria", "switzerland",
		"united kingdom", "uk", "berlin", "munich", "hamburg", "düsseldorf", "köln", "essen", "neuss", "cologne",
	}
	quoted := make([]string, len(locWords))
	for i, w := range locWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// EmailDomain pulls the lowercased domain out of a From-like header.
func EmailDomain(fromLike string) string {
	if m := angledAddrRe.FindStringSubmatch(fromLike); m != nil {
		return strings.ToLower(m[1])
	}
	if m := bareAddrRe.FindStringSubmatch(fromLike); m != nil {
		return strings.ToLower(m[1])
	}
	return ""
}

// SenderName returns the display-name portion of a From header, or the
// bare address when no display name is present.
func SenderName(from string) string {
	if idx := strings.Index(from, "<"); idx > 0 {
		return strings.Trim(strings.TrimSpace(from[:idx]), `"`)
	}
	return strings.TrimSpace(from)
}

// atsSenderDomains are platforms whose domain must not be mistaken for
// the employer when deriving a company from the sender address.
var atsSenderDomains = []string{
	"linkedin.com", "workablemail.com", "workable.com", "greenhouse.io", "mail.greenhouse.io", "lever.co",
	"personio.de", "personio.com", "smartrecruiters.com", "recruitee.com", "teamtailor.com",
	"icims.com", "oraclecloud.com", "myworkday.com", "workday.com", "bamboohr.com",
}

// CompanyFromSender derives a company name from the second-level domain
// of the From address, title-cased. Known ATS platform domains yield
// nothing so "Greenhouse" never becomes the employer of every
// Greenhouse-hosted email.
func CompanyFromSender(from string) string {
	host := EmailDomain(from)
	if host == "" {
		return ""
	}
	for _, d := range atsSenderDomains {
		if strings.HasSuffix(host, d) {
			return ""
		}
	}
	parts := strings.Split(host, ".")
	sld := parts[0]
	if len(parts) >= 2 {
		sld = parts[len(parts)-2]
	}
	if sld == "" {
		return ""
	}
	return strings.ToUpper(sld[:1]) + sld[1:]
}

// HeuristicExtractor layers increasingly weak evidence sources and
// keeps the first non-empty result per field: labeled fields, the
// card-style notification layout, sentence patterns, thank-you
// phrasing, subject splitting, sender-domain derivation.
type HeuristicExtractor struct{}

// NewHeuristicExtractor creates the default field extraction strategy.
func NewHeuristicExtractor() *HeuristicExtractor {
	return &HeuristicExtractor{}
}

func (e *HeuristicExtractor) Extract(in Input) Fields {
	bodyText := textutil.CleanLine(in.Body)
	lines := textutil.SplitLines(in.Body)
	labelHaystack := in.Body + "\n" + in.Subject

	roleLabel := matchFirstGroup(roleLabelRe, labelHaystack)
	companyLabel := matchFirstGroup(companyLabelRe, labelHaystack)

	cardRole, cardCompany := roleCompanyFromCard(lines)

	var roleFromSent, companyFromSent string
	for _, re := range sentenceRes {
		if m := re.FindStringSubmatch(bodyText); m != nil {
			roleFromSent = textutil.CleanLine(m[1])
			companyFromSent = textutil.CleanLine(m[2])
			break
		}
	}

	companyFromHeader := matchFirstGroup(updateFromRe, bodyText)
	if companyFromHeader == "" {
		companyFromHeader = matchFirstGroup(sentToRe, bodyText)
	}

	companyFromAt := matchFirstGroup(atCompanyRe, bodyText)
	if v := matchFirstGroup(beiCompanyRe, bodyText); v != "" {
		companyFromAt = v
	}

	companyFromThanks := thanksCompany(bodyText)

	roleFromSubj, companyFromSubj := SplitSubject(in.Subject)

	var jobURL string
	if in.Source == "LinkedIn" {
		jobURL = linkedinJobURLRe.FindString(in.Body)
	}

	company := firstNonEmpty(companyLabel, cardCompany, companyFromSent, companyFromHeader, companyFromAt, companyFromThanks, companyFromSubj)
	role := firstNonEmpty(CleanRole(roleLabel), CleanRole(cardRole), CleanRole(roleFromSent), CleanRole(roleFromSubj))

	if company != "" {
		company = middotTailRe.ReplaceAllString(company, "")
		company = viewJobTailRe.ReplaceAllString(company, "")
		company = textutil.CleanLine(company)
		if strings.EqualFold(company, "linkedin") {
			company = ""
		}
	}
	if company == "" {
		company = CompanyFromSender(in.From)
	}
	role = textutil.CleanLine(role)

	if len(company) > maxCompanyLen {
		company = ""
	}
	if len(role) > maxRoleLen {
		role = ""
	}

	return Fields{Role: role, Company: company, JobURL: jobURL}
}

// SplitSubject splits a subject on " at ", " bei " or a spaced dash,
// treating the left side as role and the right side as company.
func SplitSubject(subject string) (role, company string) {
	subj := textutil.CleanLine(subject)
	for _, re := range []*regexp.Regexp{subjectAtRe, subjectBeiRe, subjectDashRe} {
		if m := re.FindStringSubmatch(subj); m != nil {
			return CleanRole(textutil.CleanLine(m[1])), textutil.CleanLine(m[2])
		}
	}
	return "", ""
}

// roleCompanyFromCard handles LinkedIn-style "Applied on <date>" cards:
// the role is a short line shortly above the marker, the company sits a
// few lines below, most reliably before a '·' separator.
func roleCompanyFromCard(lines []string) (role, company string) {
	idxApplied := -1
	for i, l := range lines {
		if appliedOnRe.MatchString(l) {
			idxApplied = i
			break
		}
	}
	if idxApplied == -1 {
		return "", ""
	}

	roleIdx := -1
	start := idxApplied - 5
	if start < 0 {
		start = 0
	}
	for i := start; i < idxApplied; i++ {
		a := lines[i]
		if a == "" || separatorLineRe.MatchString(a) || boilerplateRe.MatchString(a) {
			continue
		}
		if strings.HasSuffix(a, ":") || viewJobRe.MatchString(a) {
			continue
		}
		// company·location lines are never the role
		if strings.Contains(a, "·") {
			continue
		}
		if len(strings.Fields(a)) <= 8 && hasLetterRe.MatchString(a) {
			roleIdx = i
		}
	}
	if roleIdx == -1 {
		return "", ""
	}
	role = CleanRole(lines[roleIdx])

	end := roleIdx + 4
	if end > len(lines)-1 {
		end = len(lines) - 1
	}
	for j := roleIdx + 1; j <= end; j++ {
		b := lines[j]
		if b == "" || viewJobRe.MatchString(b) {
			continue
		}
		if idx := strings.Index(b, "·"); idx >= 0 {
			return role, strings.TrimSpace(b[:idx])
		}
		if loc := cardLocRe.FindStringIndex(b); loc != nil {
			name := strings.TrimRight(strings.TrimSpace(b[:loc[0]]), " ,-–—")
			if name != "" {
				return role, name
			}
		}
		if m := atBeiLineRe.FindStringSubmatch(b); m != nil {
			return role, textutil.CleanLine(m[1])
		}
		if companyLikeRe.MatchString(b) {
			return role, b
		}
	}
	return role, ""
}

// thanksCompany matches multilingual "thank you for your interest in /
// application to X" phrasing, tried across English, German and Turkish
// pattern lists in that order.
func thanksCompany(text string) string {
	t := textutil.CleanLine(text)
	for _, group := range [][]*regexp.Regexp{thanksEnRes, thanksDeRes, thanksTrRes} {
		for _, re := range group {
			if m := re.FindStringSubmatch(t); m != nil {
				return textutil.CleanLine(m[1])
			}
		}
	}
	return ""
}

func matchFirstGroup(re *regexp.Regexp, s string) string {
	if m := re.FindStringSubmatch(s); m != nil {
		return textutil.CleanLine(m[1])
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
