package utils

import (
	"strings"

	"golang.org/x/text/language"
)

// DetermineLocale picks the response locale: an explicit query value wins,
// then the Accept-Language header by q-value, then def. supported holds base
// tags such as "en" and "zh"; the result is always one of them.
func DetermineLocale(queryLang, acceptLang string, supported []string, def string) string {
	tags := make([]language.Tag, 0, len(supported))
	names := make([]string, 0, len(supported))
	for _, s := range supported {
		tag, err := language.Parse(s)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		names = append(names, strings.ToLower(s))
	}
	if len(tags) == 0 {
		return "en"
	}
	matcher := language.NewMatcher(tags)

	if q := strings.TrimSpace(queryLang); q != "" {
		if tag, err := language.Parse(q); err == nil {
			if _, idx, conf := matcher.Match(tag); conf != language.No {
				return names[idx]
			}
		}
	}
	if accepted, _, err := language.ParseAcceptLanguage(acceptLang); err == nil && len(accepted) > 0 {
		if _, idx, conf := matcher.Match(accepted...); conf != language.No {
			return names[idx]
		}
	}
	d := strings.ToLower(def)
	for _, n := range names {
		if n == d {
			return n
		}
	}
	return names[0]
}
