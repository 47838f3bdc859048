// Package parser recovers structured content from LLM responses. Models
// wrap JSON in markdown fences, prepend prose, or truncate output, so every
// consumer goes through these helpers instead of calling json.Unmarshal on
// the raw response.
package parser

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var fenceOpenRegex = regexp.MustCompile("(?m)^\\s*```(\\S*)\\s*$")

// StripCodeFences removes a wrapping markdown code fence from content,
// returning the inner text. Content without a fence is returned trimmed.
func StripCodeFences(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	lines := strings.Split(trimmed, "\n")
	if len(lines) < 2 {
		return trimmed
	}
	// Drop the opening fence line and a trailing fence if present.
	lines = lines[1:]
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) > 0 && strings.HasPrefix(strings.TrimSpace(lines[len(lines)-1]), "```") {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// FirstFencedBlock returns the content of the first fenced code block in the
// response, along with its language tag. ok is false when no complete block
// exists.
func FirstFencedBlock(response string) (content, lang string, ok bool) {
	loc := fenceOpenRegex.FindStringSubmatchIndex(response)
	if loc == nil {
		return "", "", false
	}
	lang = response[loc[2]:loc[3]]
	rest := response[loc[1]:]
	end := strings.Index(rest, "```")
	if end == -1 {
		return "", "", false
	}
	return strings.Trim(rest[:end], "\n"), strings.ToLower(lang), true
}

// ExtractJSON extracts a JSON object or array from an LLM response that may
// contain markdown formatting or surrounding prose. It prefers a ```json
// fenced block, then falls back to the largest bracket-matched substring.
func ExtractJSON(response string) (string, error) {
	if strings.Contains(response, "```json") {
		parts := strings.SplitN(response, "```json", 2)
		jsonPart := parts[1]
		if end := strings.Index(jsonPart, "```"); end > 0 {
			if candidate := strings.TrimSpace(jsonPart[:end]); candidate != "" && json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
	}

	candidate := largestBalancedSpan(response)
	if candidate == "" {
		return "", fmt.Errorf("no JSON object or array found in response")
	}
	return candidate, nil
}

// ExtractJSONInto extracts JSON from the response and unmarshals it into v.
func ExtractJSONInto(response string, v any) error {
	jsonStr, err := ExtractJSON(response)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("unmarshal extracted JSON: %w", err)
	}
	return nil
}

// largestBalancedSpan scans for the largest substring that is a balanced,
// valid JSON object or array. String literals and escapes are honored so
// braces inside values do not break the depth count.
func largestBalancedSpan(s string) string {
	best := ""
	for i := 0; i < len(s); i++ {
		open := s[i]
		if open != '{' && open != '[' {
			continue
		}
		var close byte = '}'
		if open == '[' {
			close = ']'
		}
		depth := 0
		inString := false
		escaped := false
		for j := i; j < len(s); j++ {
			c := s[j]
			if escaped {
				escaped = false
				continue
			}
			switch {
			case c == '\\' && inString:
				escaped = true
			case c == '"':
				inString = !inString
			case inString:
			case c == open:
				depth++
			case c == close:
				depth--
				if depth == 0 {
					candidate := s[i : j+1]
					if len(candidate) > len(best) && json.Valid([]byte(candidate)) {
						best = candidate
					}
					j = len(s) // done with this start position
				}
			}
		}
	}
	return best
}
