package fuzzy

import (
	"strings"
)

// LevenshteinDistance calculates the edit distance between two strings,
// the number of single-character insertions, deletions or substitutions
// needed to turn one into the other. Inputs are normalized first.
func LevenshteinDistance(s1, s2 string) int {
	s1 = normalize(s1)
	s2 = normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,
				d[i][j-1]+1,
				d[i-1][j-1]+cost,
			)
		}
	}

	return d[m][n]
}

// Match reports whether query fuzzy-matches text within the given edit
// distance threshold. Containment and word prefixes count as matches.
func Match(query, text string, threshold int) bool {
	query = normalize(query)
	text = normalize(text)

	if query == "" {
		return false
	}
	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if LevenshteinDistance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// MatchApplication reports whether a tracked application matches the
// query on company, role or notes. Typo tolerance scales with query
// length.
func MatchApplication(query, company, role, notes string) bool {
	threshold := 2
	if len(query) <= 3 {
		threshold = 1
	} else if len(query) >= 8 {
		threshold = 3
	}

	if Match(query, company, threshold) {
		return true
	}
	if Match(query, role, threshold) {
		return true
	}
	if notes != "" {
		snippet := notes
		if len(snippet) > 500 {
			snippet = snippet[:500]
		}
		if Match(query, snippet, threshold) {
			return true
		}
	}
	return false
}

// ScoreApplication scores how relevant an application is to a query.
// Company matches weigh more than role matches, notes least.
func ScoreApplication(query, company, role, notes string) float64 {
	query = normalize(query)
	score := 0.0

	companyNorm := normalize(company)
	if strings.Contains(companyNorm, query) {
		score += 100.0
		if containsWord(companyNorm, query) {
			score += 50.0
		}
	} else {
		for _, word := range strings.Fields(companyNorm) {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	roleNorm := normalize(role)
	if strings.Contains(roleNorm, query) {
		score += 80.0
		if containsWord(roleNorm, query) {
			score += 30.0
		}
	} else {
		for _, word := range strings.Fields(roleNorm) {
			dist := LevenshteinDistance(query, word)
			if dist <= 2 {
				score += 40.0 - float64(dist)*12
			}
			if strings.HasPrefix(word, query) {
				score += 35.0
			}
		}
	}

	notesNorm := normalize(notes)
	if strings.Contains(notesNorm, query) {
		score += 30.0
	}

	return score
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalize lowercases and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
