package explain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

func buildUserMessage(req Request) string {
	return fmt.Sprintf(`I'm studying for a Danish citizenship test and I got this question wrong:

Question: %s
Correct answer: %s

Please explain this topic in simple terms. Focus on the historical, cultural, or political context that makes this answer correct. Keep your explanation under 200 words and make it easy to understand.

Respond in %s language.`, req.Question, req.CorrectAnswer, languageName(req.Language))
}

// languageName returns the English name of a language code, e.g. "Vietnamese"
// for "vi". Unparseable codes fall back to English.
func languageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return "English"
	}
	if name := display.English.Languages().Name(tag); name != "" {
		return name
	}
	return "English"
}
