// Package extract recovers structured data from free-form model output.
//
// Every function here is total: malformed input degrades to a fallback
// instead of an error, except Scenes, which callers use when they need the
// scene objects themselves.
package extract

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Scene is one segment of a generated video script.
type Scene struct {
	ID            int    `json:"id"`
	Duration      int    `json:"duration"`
	VisualPrompt  string `json:"visual_prompt"`
	NarrationText string `json:"narration_text"`
}

// bulletChars are stripped from the left of lines in the list fallback.
const bulletChars = "-*#• "

var fencePattern = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*\\n?(.*?)\\n?```\\s*$")

// Narration pulls the voiceover text out of a generated script.
//
// A JSON array of scene objects wins; otherwise the section under a
// "final script" markdown heading is used; otherwise the trimmed input.
func Narration(raw string) string {
	if raw == "" {
		return ""
	}

	s := strings.TrimSpace(raw)
	if text, ok := narrationFromScenes(s); ok {
		return text
	}
	if text := narrationFromMarkdown(s); text != "" {
		return text
	}
	return s
}

// narrationFromScenes joins non-empty narration_text values of a JSON scene array.
func narrationFromScenes(s string) (string, bool) {
	if !strings.HasPrefix(s, "[") {
		return "", false
	}

	var items []any
	if err := json.Unmarshal([]byte(s), &items); err != nil {
		return "", false
	}

	var lines []string
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return "", false
		}
		text, ok := obj["narration_text"].(string)
		if !ok {
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			lines = append(lines, text)
		}
	}

	if len(lines) == 0 {
		return "", false
	}
	return strings.Join(lines, "\n"), true
}

// narrationFromMarkdown returns the body of the "final script" section.
func narrationFromMarkdown(s string) string {
	var buf []string
	collecting := false

	for _, line := range strings.Split(s, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "##") && strings.Contains(strings.ToLower(trimmed), "final script") {
			collecting = true
			continue
		}
		if collecting && strings.HasPrefix(trimmed, "## ") {
			break
		}
		if collecting {
			buf = append(buf, strings.TrimRight(line, "\r"))
		}
	}

	return strings.TrimSpace(strings.Join(buf, "\n"))
}

// List recovers a list of strings from model output.
//
// The span from the first '[' to the last ']' is tried as a JSON array and,
// when it parses, is returned even if empty. Otherwise each non-empty line is
// returned with leading bullet characters removed.
func List(raw string) []string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return []string{}
	}

	if items, ok := listFromJSON(s); ok {
		return items
	}
	return listFromLines(s)
}

func listFromJSON(s string) ([]string, bool) {
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}

	var items []any
	if err := json.Unmarshal([]byte(s[start:end+1]), &items); err != nil {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if text := strings.TrimSpace(stringify(item)); text != "" {
			out = append(out, text)
		}
	}
	return out, true
}

func listFromLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimLeft(strings.TrimSpace(line), bulletChars)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// stringify renders a decoded JSON value as display text. null becomes empty.
func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}

// Scenes parses a scene array out of model output, tolerating code fences
// and prose around the array.
func Scenes(raw string) ([]Scene, error) {
	s := strings.TrimSpace(raw)
	if m := fencePattern.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}

	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON array found in script")
	}

	var scenes []Scene
	if err := json.Unmarshal([]byte(s[start:end+1]), &scenes); err != nil {
		return nil, fmt.Errorf("parse scenes: %w", err)
	}
	if len(scenes) == 0 {
		return nil, fmt.Errorf("script contains no scenes")
	}

	return scenes, nil
}
