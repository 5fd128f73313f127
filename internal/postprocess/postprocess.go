// Package postprocess strips model artifacts from a raw generator reply
// before it is parsed as a numbered list.
//
// Reasoning models sometimes emit their chain of thought, which may itself
// contain "1. ..." lines, and chat models like to fence their answer in a
// markdown code block. Both would confuse the line parser.
package postprocess

import (
	"regexp"
	"strings"
)

// Clean removes reasoning blocks, unwraps a single code fence and drops
// outer quotes, returning the trimmed reply.
func Clean(text string) string {
	text = removeThinkingBlocks(text)
	text = unwrapCodeFence(text)
	text = removeQuoteWrapping(text)
	return strings.TrimSpace(text)
}

// RE2 has no backreferences, so each tag pair is listed.
var thinkingBlockRe = regexp.MustCompile(
	`(?is)<thinking>.*?</thinking>|<think>.*?</think>|<reasoning>.*?</reasoning>|<reflection>.*?</reflection>`,
)

// An opening tag whose closing tag never arrived (reply cut off).
var truncatedThinkingRe = regexp.MustCompile(
	`(?is)(?:<thinking>|<think>|<reasoning>|<reflection>).*$`,
)

func removeThinkingBlocks(text string) string {
	text = thinkingBlockRe.ReplaceAllString(text, "")
	text = truncatedThinkingRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

var codeFenceRe = regexp.MustCompile("(?s)^```[a-zA-Z0-9_-]*[ \t]*\r?\n(.*?)\r?\n?```$")

// unwrapCodeFence returns the body of a reply that is entirely one fenced
// block. Anything else is returned unchanged.
func unwrapCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if m := codeFenceRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return text
}

// removeQuoteWrapping strips one matching pair of outer quotes.
// Supported pairs: "…"  '…'  «…»  “…”  ‘…’
func removeQuoteWrapping(text string) string {
	text = strings.TrimSpace(text)
	runes := []rune(text)
	n := len(runes)
	if n < 2 {
		return text
	}
	first, last := runes[0], runes[n-1]
	if (first == '"' && last == '"') ||
		(first == '\'' && last == '\'') ||
		(first == '«' && last == '»') ||
		(first == '“' && last == '”') ||
		(first == '‘' && last == '’') {
		return strings.TrimSpace(string(runes[1 : n-1]))
	}
	return text
}
