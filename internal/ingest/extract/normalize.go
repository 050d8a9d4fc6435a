package extract

import (
	"regexp"
	"strings"

	"jobtrail-backend/pkg/textutil"
)

// cityWords are trailing location/remote tokens trimmed off extracted
// company strings, together with everything after them.
var cityWords = []string{
	"remote", "berlin", "munich", "münchen", "hamburg", "köln", "cologne", "düsseldorf", "essen", "neuss",
	"germany", "deutschland", "europe", "european union", "eu", "emea", "france", "italy", "spain", "poland",
	"switzerland", "austria", "netherlands", "uk", "united kingdom", "turkey", "türkiye", "hybrid",
}

var (
	roleQualifierRe   = regexp.MustCompile(`\s*\((?:[A-Z]{2,8}|[A-Za-z/\-]{2,12})\)\s*$`)
	genderQualifierRe = regexp.MustCompile(`(?i)\s*\((?:m/w/d|f/m/x)\)\s*$`)
	viewJobTailRe     = regexp.MustCompile(`(?i)\s*view job.*$`)
	sepViewJobTailRe  = regexp.MustCompile(`(?i)\s*[,·|]\s*view job.*$`)
	trailingParenRe   = regexp.MustCompile(`\s+\(.+?\)\s*$`)

	cityTailRe = buildCityTailRe()
)

func buildCityTailRe() *regexp.Regexp {
	quoted := make([]string, len(cityWords))
	for i, w := range cityWords {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.MustCompile(`(?i)(?:[,\s\-–—]+(?:` + strings.Join(quoted, "|") + `))(?:[\s\w()./,-]*)$`)
}

// CleanRole trims trailing parenthetical qualifiers such as "(IMAC)",
// "(m/w/d)" or "(f/m/x)" from a role string.
func CleanRole(role string) string {
	if role == "" {
		return ""
	}
	r := roleQualifierRe.ReplaceAllString(role, "")
	r = genderQualifierRe.ReplaceAllString(r, "")
	return strings.TrimSpace(r)
}

// NormalizeRole cleans a role string; an empty result stays empty.
func NormalizeRole(role string) string {
	return CleanRole(textutil.CleanLine(role))
}

// NormalizeCompany cleans an extracted company string: words shared
// with the role are dropped (avoids "Backend Engineer Engineer Corp"
// artifacts), "view job" tails and trailing location tokens are cut,
// immediately repeated words are deduplicated and the result is capped
// at 120 characters.
func NormalizeCompany(company, role string) string {
	if company == "" {
		return ""
	}
	s := " " + company + " "

	if role != "" {
		tokens := strings.Fields(role)
		if len(tokens) > 0 {
			quoted := make([]string, len(tokens))
			for i, t := range tokens {
				quoted[i] = regexp.QuoteMeta(t)
			}
			roleWordRe, err := regexp.Compile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
			if err == nil {
				s = roleWordRe.ReplaceAllString(s, " ")
			}
		}
	}

	s = sepViewJobTailRe.ReplaceAllString(s, " ")
	s = viewJobTailRe.ReplaceAllString(s, " ")
	s = cityTailRe.ReplaceAllString(s, " ")

	words := strings.Fields(s)
	var dedup []string
	for _, w := range words {
		if len(dedup) == 0 || !strings.EqualFold(dedup[len(dedup)-1], w) {
			dedup = append(dedup, w)
		}
	}
	s = strings.Join(dedup, " ")

	if len(s) > 120 {
		s = strings.TrimSpace(s[:120])
	}
	return s
}

// SubjectRoot strips a trailing parenthetical and cuts the subject at
// the first dash-like separator, yielding the part that usually names
// the role.
func SubjectRoot(subject string) string {
	x := trailingParenRe.ReplaceAllString(subject, "")
	for _, sep := range []string{" - ", " — ", " – "} {
		if idx := strings.Index(x, sep); idx >= 0 {
			x = x[:idx]
		}
	}
	return strings.TrimSpace(x)
}
