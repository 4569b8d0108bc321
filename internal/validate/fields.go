// Package validate combines the field-presence rules and the line-overflow
// measurement into the single error flag shown for each notification.
package validate

import (
	"strings"

	"github.com/akyairhashvil/notifit/internal/models"
	"github.com/akyairhashvil/notifit/internal/policy"
)

// Field names a text field of a notification.
type Field string

const (
	FieldTitle       Field = "Title"
	FieldDescription Field = "Description"
)

// Violation is one fired field rule.
type Violation struct {
	Field Field
	Rule  models.FieldRule
}

// Reason is the human-readable explanation of v.
func (v Violation) Reason() string {
	switch v.Rule {
	case models.RuleRequired:
		return string(v.Field) + " is required"
	case models.RuleDisabled:
		return string(v.Field) + " must be empty"
	}
	return ""
}

// FieldViolations evaluates the level's field rules, title first.
func FieldViolations(n models.Notification) []Violation {
	rules := policy.RulesFor(n.Level)
	var out []Violation
	if v, ok := checkField(FieldTitle, rules.Title, n.Title); ok {
		out = append(out, v)
	}
	if v, ok := checkField(FieldDescription, rules.Description, n.Description); ok {
		out = append(out, v)
	}
	return out
}

func checkField(f Field, rule models.FieldRule, value string) (Violation, bool) {
	filled := strings.TrimSpace(value) != ""
	switch rule {
	case models.RuleRequired:
		if !filled {
			return Violation{Field: f, Rule: rule}, true
		}
	case models.RuleDisabled:
		if filled {
			return Violation{Field: f, Rule: rule}, true
		}
	}
	return Violation{}, false
}

// CheckRequiredFields reports whether any field rule is violated.
func CheckRequiredFields(n models.Notification) bool {
	return len(FieldViolations(n)) > 0
}

// ExplainRequiredFieldViolations lists the reasons behind CheckRequiredFields.
func ExplainRequiredFieldViolations(n models.Notification) []string {
	vs := FieldViolations(n)
	reasons := make([]string, 0, len(vs))
	for _, v := range vs {
		reasons = append(reasons, v.Reason())
	}
	return reasons
}
