// Package render substitutes {{token}} placeholders in document templates.
package render

import "strings"

// Result holds a rendered body plus the tokens that were known but resolved
// to an empty value, in first-seen order.
type Result struct {
	Body        string
	EmptyFields []string
}

// Render replaces every {{token}} occurrence in body with fields[token] in a
// single left-to-right scan. Unknown tokens are kept verbatim rather than
// failing, so template typos surface in the output instead of blocking the
// operator. Token names are trimmed of surrounding whitespace, so
// {{ firstName }} and {{firstName}} resolve identically.
func Render(body string, fields map[string]string) Result {
	var b strings.Builder
	b.Grow(len(body))

	var empty []string
	seenEmpty := make(map[string]bool)

	i := 0
	for i < len(body) {
		open := strings.Index(body[i:], "{{")
		if open < 0 {
			b.WriteString(body[i:])
			break
		}
		open += i
		b.WriteString(body[i:open])

		end := strings.Index(body[open+2:], "}}")
		if end < 0 {
			// Unterminated token; emit the rest as-is.
			b.WriteString(body[open:])
			break
		}
		end += open + 2

		key := strings.TrimSpace(body[open+2 : end])
		if val, ok := fields[key]; ok {
			if val == "" && !seenEmpty[key] {
				seenEmpty[key] = true
				empty = append(empty, key)
			}
			b.WriteString(val)
		} else {
			b.WriteString(body[open : end+2])
		}
		i = end + 2
	}

	return Result{Body: b.String(), EmptyFields: empty}
}

// Tokens returns the distinct token names in body, in first-seen order.
// Used to sanity-check templates on save.
func Tokens(body string) []string {
	var tokens []string
	seen := make(map[string]bool)
	i := 0
	for i < len(body) {
		open := strings.Index(body[i:], "{{")
		if open < 0 {
			break
		}
		open += i
		end := strings.Index(body[open+2:], "}}")
		if end < 0 {
			break
		}
		end += open + 2
		key := strings.TrimSpace(body[open+2 : end])
		if key != "" && !seen[key] {
			seen[key] = true
			tokens = append(tokens, key)
		}
		i = end + 2
	}
	return tokens
}
