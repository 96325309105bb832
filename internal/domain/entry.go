package domain

import (
	"fmt"
	"strings"
)

// PlaceholderPartOfSpeech is written when no part of speech is given
const PlaceholderPartOfSpeech = "---"

// Entry represents a single glossary submission
type Entry struct {
	Word         string
	PartOfSpeech string
	Definition   string
}

// NewEntry trims all fields and substitutes the placeholder for an empty part of speech
func NewEntry(word, partOfSpeech, definition string) (*Entry, error) {
	e := &Entry{
		Word:         strings.TrimSpace(word),
		PartOfSpeech: strings.TrimSpace(partOfSpeech),
		Definition:   strings.TrimSpace(definition),
	}

	if e.Word == "" || e.Definition == "" {
		return nil, ErrValidation
	}
	if e.PartOfSpeech == "" {
		e.PartOfSpeech = PlaceholderPartOfSpeech
	}

	return e, nil
}

// Render returns the description-list block for the entry.
// The output is the unit of both append and undo, so it must stay byte-stable.
func (e Entry) Render() string {
	return fmt.Sprintf("\\item[%s]\n    %s\\\\\n    %s\n", e.Word, e.PartOfSpeech, e.Definition)
}
