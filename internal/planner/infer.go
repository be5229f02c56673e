package planner

import "strings"

// industryKeywords maps goal vocabulary to a coaching domain used to bias
// generation. First match wins, checked in declaration order.
var industryKeywords = []struct {
	industry string
	words    []string
}{
	{"music", []string{"guitar", "piano", "violin", "drums", "sing", "singing", "music", "instrument", "band"}},
	{"fitness", []string{"marathon", "run", "running", "gym", "weight", "muscle", "fitness", "yoga", "swim", "cycling", "5k", "10k"}},
	{"software", []string{"code", "coding", "programming", "app", "website", "software", "python", "javascript", "developer"}},
	{"language", []string{"spanish", "french", "german", "japanese", "mandarin", "language", "fluent", "vocabulary"}},
	{"business", []string{"business", "startup", "freelance", "market", "sales", "revenue", "customers", "brand"}},
	{"writing", []string{"write", "writing", "novel", "book", "blog", "essay", "screenplay", "poetry"}},
	{"art", []string{"draw", "drawing", "paint", "painting", "sketch", "illustration", "design", "photography"}},
	{"cooking", []string{"cook", "cooking", "bake", "baking", "recipe", "cuisine", "chef"}},
	{"finance", []string{"save", "saving", "invest", "investing", "budget", "debt", "retirement"}},
}

// inferIndustry guesses the coaching domain from the goal and answers.
// Returns "general" when nothing matches.
func inferIndustry(goal string, answers []string) string {
	text := strings.ToLower(goal)
	for _, a := range answers {
		text += " " + strings.ToLower(a)
	}
	for _, entry := range industryKeywords {
		for _, w := range entry.words {
			if strings.Contains(text, w) {
				return entry.industry
			}
		}
	}
	return "general"
}
