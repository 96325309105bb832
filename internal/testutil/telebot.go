package testutil

import (
	"fmt"

	tele "gopkg.in/telebot.v3"
)

// FakeContext is a tele.Context that records replies.
// Only the methods used by handlers and middleware are implemented.
type FakeContext struct {
	tele.Context

	User          *tele.User
	Body          string
	CallbackQuery *tele.Callback

	Sent      []string
	Edited    []string
	Markups   []*tele.ReplyMarkup
	Responses []*tele.CallbackResponse
}

// NewTextContext creates a context for a plain text message
func NewTextContext(userID int64, text string) *FakeContext {
	return &FakeContext{User: &tele.User{ID: userID}, Body: text}
}

// NewCallbackContext creates a context for an inline button press
func NewCallbackContext(userID int64, unique string) *FakeContext {
	return &FakeContext{
		User:          &tele.User{ID: userID},
		CallbackQuery: &tele.Callback{ID: "cb-" + unique, Unique: unique},
	}
}

func (c *FakeContext) Sender() *tele.User {
	return c.User
}

func (c *FakeContext) Text() string {
	return c.Body
}

func (c *FakeContext) Callback() *tele.Callback {
	return c.CallbackQuery
}

func (c *FakeContext) Send(what interface{}, opts ...interface{}) error {
	c.Sent = append(c.Sent, fmt.Sprint(what))
	c.Markups = append(c.Markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Edit(what interface{}, opts ...interface{}) error {
	c.Edited = append(c.Edited, fmt.Sprint(what))
	c.Markups = append(c.Markups, markupOf(opts))
	return nil
}

func (c *FakeContext) Respond(resp ...*tele.CallbackResponse) error {
	c.Responses = append(c.Responses, resp...)
	return nil
}

// LastSent returns the most recent sent text or ""
func (c *FakeContext) LastSent() string {
	if len(c.Sent) == 0 {
		return ""
	}
	return c.Sent[len(c.Sent)-1]
}

// LastMarkupHas reports whether the latest reply carries an inline button with unique
func (c *FakeContext) LastMarkupHas(unique string) bool {
	if len(c.Markups) == 0 || c.Markups[len(c.Markups)-1] == nil {
		return false
	}
	for _, row := range c.Markups[len(c.Markups)-1].InlineKeyboard {
		for _, btn := range row {
			if btn.Unique == unique {
				return true
			}
		}
	}
	return false
}

func markupOf(opts []interface{}) *tele.ReplyMarkup {
	for _, opt := range opts {
		if m, ok := opt.(*tele.ReplyMarkup); ok {
			return m
		}
	}
	return nil
}
