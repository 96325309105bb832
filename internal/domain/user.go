package domain

import "time"

// User represents a chat user of the bot front-end
type User struct {
	UserID       int64
	Authorized   bool
	CreatedAt    time.Time
	AuthorizedAt *time.Time
}

// UserState represents the step of the entry conversation a chat user is in
type UserState string

const (
	StateIdle                UserState = "idle"
	StateWaitingWord         UserState = "waiting_word"
	StateWaitingPartOfSpeech UserState = "waiting_part_of_speech"
	StateWaitingDefinition   UserState = "waiting_definition"
)

// StateData holds the partially filled entry for a chat user
type StateData struct {
	State        UserState
	Word         string
	PartOfSpeech string
}
