// Package phrase parses the single free-text utterance format used by
// the conversational tools: "<name>.<text> #tag#tag".
//
// Example: "Рецепты. Описание приготовления блюд. #Еда" parses to
// name "Рецепты", text "Описание приготовления блюд.", tags ["Еда"].
package phrase

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxNameLength is the maximum note/archive name length in code points.
const MaxNameLength = 100

var (
	// ErrEmptyPhrase rejects empty or whitespace-only input.
	ErrEmptyPhrase = errors.New("phrase cannot be empty")
	// ErrEmptyName rejects phrases whose name part trims to nothing.
	ErrEmptyName = errors.New("name cannot be empty")
	// ErrNameTooLong rejects names longer than MaxNameLength code points.
	ErrNameTooLong = errors.New("name cannot be longer than 100 characters")
)

// tagPattern matches one tag token: '#' followed by a maximal run of
// non-'#', non-whitespace characters. Tags may appear anywhere in the
// phrase, including mid-sentence.
var tagPattern = regexp.MustCompile(`#[^#\s]+`)

// Parsed is the structured form of one utterance. Text distinguishes
// "no dot in the phrase" (nil) from "dot with nothing after it"
// (pointer to empty string); callers rely on that difference.
type Parsed struct {
	Name string
	Text *string
	Tags []string
}

// Parse splits a phrase into name, optional text and tags.
//
// Tags are extracted first (in encounter order, duplicates kept), then
// removed from the phrase. The remainder is split at the first literal
// '.': everything before is the name, everything after is the text.
// Only the first dot delimits — later dots stay in the text verbatim.
func Parse(phrase string) (Parsed, error) {
	trimmed := strings.TrimSpace(phrase)
	if trimmed == "" {
		return Parsed{}, ErrEmptyPhrase
	}

	tags := []string{}
	for _, match := range tagPattern.FindAllString(trimmed, -1) {
		tags = append(tags, match[1:])
	}
	withoutTags := strings.TrimSpace(tagPattern.ReplaceAllString(trimmed, ""))

	name, text, hasDot := strings.Cut(withoutTags, ".")
	name = strings.TrimSpace(name)
	if name == "" {
		return Parsed{}, ErrEmptyName
	}
	if !hasDot {
		return Parsed{Name: name, Tags: tags}, nil
	}
	text = strings.TrimSpace(text)
	return Parsed{Name: name, Text: &text, Tags: tags}, nil
}

// ValidateName checks a name against the store's naming rules: not
// blank, and at most MaxNameLength code points (not bytes).
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return ErrNameTooLong
	}
	return nil
}
