package converter

import (
	"strings"
	"unicode"
)

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	"~", `\~`,
	"\n", " ",
)

func escapeText(text string) string {
	return textEscaper.Replace(text)
}

// escapeBlockStart escapes a leading character that would otherwise open a
// heading, quote, list or rule.
func escapeBlockStart(block string) string {
	if block == "" {
		return block
	}

	switch block[0] {
	case '#', '>', '-', '+', '=', '|':
		return `\` + block
	}

	digits := strings.IndexFunc(block, func(r rune) bool { return !unicode.IsDigit(r) })
	if digits > 0 && (block[digits] == '.' || block[digits] == ')') {
		return block[:digits] + `\` + block[digits:]
	}
	return block
}

func escapeLinkText(text string) string {
	return strings.NewReplacer(`\`, `\\`, "[", `\[`, "]", `\]`).Replace(text)
}

func escapeTitle(title string) string {
	title = strings.ReplaceAll(title, `\`, `\\`)
	return strings.ReplaceAll(title, `"`, `\"`)
}

// escapeDestination wraps destinations containing spaces or parentheses in
// angle brackets.
func escapeDestination(dest string) string {
	if strings.ContainsAny(dest, " ()<>") {
		return "<" + strings.NewReplacer("<", `\<`, ">", `\>`).Replace(dest) + ">"
	}
	return dest
}

// codeSpan fences text with one more backtick than its longest backtick run.
func codeSpan(text string) string {
	longest, current := 0, 0
	for _, r := range text {
		if r == '`' {
			current++
			if current > longest {
				longest = current
			}
			continue
		}
		current = 0
	}

	fence := strings.Repeat("`", longest+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		return fence + " " + text + " " + fence
	}
	return fence + text + fence
}
