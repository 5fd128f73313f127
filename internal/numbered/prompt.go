// Package numbered implements the plain-text protocol spoken with the remote
// generator: a prompt listing source sentences as "N. text", and the
// reconciliation of the numbered reply back onto the original positions.
//
// Ordinals are 1-based and count only the non-blank texts sent in the
// request, never the blank positions that were filtered out.
package numbered

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultTemplate is the instruction sent with every batch. Placeholders:
// {{count}} number of sentences, {{dialect}} target dialect, {{texts}} the
// numbered list.
const DefaultTemplate = `다음 {{count}}개 문장을 {{dialect}} 방언으로 번역해 주세요.
문장마다 한 줄씩 출력하고, 앞에 붙은 번호는 그대로 유지해 주세요.
설명이나 다른 말은 덧붙이지 말고 번역 결과만 출력해 주세요.

{{texts}}`

// Prompt is one request to the remote generator.
type Prompt struct {
	// Dialect is the target dialect label, e.g. "Jeju".
	Dialect string
	// Texts are the non-blank source texts; Texts[i] carries ordinal i+1.
	Texts []string
	// Template overrides DefaultTemplate when non-empty.
	Template string
}

// IsBlank reports whether s carries no text worth translating.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NonBlank returns the texts that are not blank, in their original order.
func NonBlank(texts []string) []string {
	valid := make([]string, 0, len(texts))
	for _, t := range texts {
		if !IsBlank(t) {
			valid = append(valid, t)
		}
	}
	return valid
}

// Build filters out blank entries and prepares the prompt for the rest.
// It returns false when every entry is blank; the caller must then skip the
// remote call entirely.
func Build(texts []string, dialect, template string) (Prompt, bool) {
	valid := NonBlank(texts)
	if len(valid) == 0 {
		return Prompt{}, false
	}
	return Prompt{Dialect: dialect, Texts: valid, Template: template}, true
}

// Numbered renders the texts as "1. first\n2. second...".
func (p Prompt) Numbered() string {
	return Number(p.Texts)
}

// Number renders texts as a numbered list, one entry per line.
func Number(texts []string) string {
	var sb strings.Builder
	for i, t := range texts {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteString(". ")
		sb.WriteString(flattenLine(t))
	}
	return sb.String()
}

// String renders the full instruction plus the numbered list.
func (p Prompt) String() string {
	tmpl := p.Template
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	r := strings.NewReplacer(
		"{{count}}", strconv.Itoa(len(p.Texts)),
		"{{dialect}}", p.Dialect,
		"{{texts}}", p.Numbered(),
	)
	out := r.Replace(tmpl)
	if !strings.Contains(tmpl, "{{texts}}") {
		out = fmt.Sprintf("%s\n\n%s", strings.TrimRight(out, "\n"), p.Numbered())
	}
	return out
}

// Len is the number of ordinals in the request.
func (p Prompt) Len() int {
	return len(p.Texts)
}

// flattenLine keeps a multi-line source text on its own numbered line so the
// reply can be parsed line by line.
func flattenLine(s string) string {
	if !strings.ContainsAny(s, "\r\n") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}
