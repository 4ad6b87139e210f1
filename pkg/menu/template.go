package menu

import (
	"regexp"
	"strings"
)

// placeholder matches {key} and {key|lower}.
var placeholder = regexp.MustCompile(`\{([A-Za-z0-9_]+)(\|lower)?\}`)

// missingValue is substituted for placeholders with no bound value.
const missingValue = "N/A"

// Render substitutes placeholders in a template with the given values.
// Casing is a template-authoring concern: {feeling} inserts the value
// verbatim, {feeling|lower} lower-cases it. Unbound keys render as "N/A".
func Render(tpl string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(tpl, func(match string) string {
		groups := placeholder.FindStringSubmatch(match)
		val, ok := vars[groups[1]]
		if !ok {
			val = missingValue
		}
		if groups[2] != "" {
			val = strings.ToLower(val)
		}
		return val
	})
}
