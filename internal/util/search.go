package util

import (
	"regexp"
	"strings"
)

// SearchQuery represents the parsed components of a row filter string such
// as "level:warning is:error battery".
type SearchQuery struct {
	Levels []string
	Icons  []string
	Status []string
	Text   []string
}

var (
	levelRegex  = regexp.MustCompile(`level:(\w+)`)
	iconRegex   = regexp.MustCompile(`icon:([\w.-]+)`)
	statusRegex = regexp.MustCompile(`is:(\w+)`)
)

// ParseSearchQuery breaks down a raw query string into its structured components.
func ParseSearchQuery(query string) SearchQuery {
	sq := SearchQuery{}

	extract := func(re *regexp.Regexp) []string {
		matches := re.FindAllStringSubmatch(query, -1)
		if matches == nil {
			return nil
		}
		var values []string
		for _, match := range matches {
			if len(match) > 1 {
				values = append(values, strings.ToLower(match[1]))
			}
		}
		query = re.ReplaceAllString(query, "")
		return values
	}

	sq.Levels = extract(levelRegex)
	sq.Icons = extract(iconRegex)
	sq.Status = extract(statusRegex)
	sq.Text = strings.Fields(strings.ToLower(query))

	return sq
}

// Empty reports whether the query filters nothing.
func (q SearchQuery) Empty() bool {
	return len(q.Levels) == 0 && len(q.Icons) == 0 && len(q.Status) == 0 && len(q.Text) == 0
}

// SearchTarget is the searchable view of one row.
type SearchTarget struct {
	Level    string
	Icon     string
	HasError bool
	Text     string
}

// Match applies every clause: any listed level, any listed icon prefix,
// every status and every text word must hold.
func (q SearchQuery) Match(t SearchTarget) bool {
	if len(q.Levels) > 0 && !anyMatch(q.Levels, func(v string) bool {
		return strings.HasPrefix(t.Level, v)
	}) {
		return false
	}
	if len(q.Icons) > 0 && !anyMatch(q.Icons, func(v string) bool {
		return strings.HasPrefix(strings.ToLower(t.Icon), v)
	}) {
		return false
	}
	for _, s := range q.Status {
		switch s {
		case "error", "err", "invalid":
			if !t.HasError {
				return false
			}
		case "ok", "valid":
			if t.HasError {
				return false
			}
		}
	}
	text := strings.ToLower(t.Text)
	for _, w := range q.Text {
		if !strings.Contains(text, w) {
			return false
		}
	}
	return true
}

func anyMatch(values []string, fn func(string) bool) bool {
	for _, v := range values {
		if fn(v) {
			return true
		}
	}
	return false
}
