package qavalidator

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// maxHintLen is the maximum length of a finding hint in runes.
const maxHintLen = 60

// Errors returned by EnsureNoProse.
var (
	// ErrHintTooLong indicates a hint longer than 60 characters.
	ErrHintTooLong = errors.New("hint exceeds 60 characters")
	// ErrProseHint indicates a hint containing sentence punctuation.
	ErrProseHint = errors.New("hint contains sentence punctuation")
)

// EnsureNoProse rejects hints that look like natural-language sentences.
//
// The producer of a finding owns codes and facts, never wording; if free
// text leaked through here, every downstream rendering guarantee would be
// void. A hint must be at most 60 characters and must not contain '.',
// '!', or '?'. A trailing truncation ellipsis ("…" or "...") is allowed.
func EnsureNoProse(hint string) error {
	if hint == "" {
		return nil
	}
	if utf8.RuneCountInString(hint) > maxHintLen {
		return ErrHintTooLong
	}
	body := strings.TrimSuffix(hint, "…")
	if body == hint {
		body = strings.TrimSuffix(hint, "...")
	}
	if strings.ContainsAny(body, ".!?") {
		return ErrProseHint
	}
	return nil
}
