// Package flow holds the per-channel conversation state machines.
//
// Each machine maps (current state, inbound event) to (next state, result).
// Results describe outbound effects; the handler package turns them into
// bot API calls, so machines can be tested without a transport.
package flow

import (
	"sync"

	"orderhub/internal/channel"
	"orderhub/internal/domain"
)

// EventKind classifies inbound updates
type EventKind int

const (
	// EventStart is the /start command, optionally with a deep-link payload
	EventStart EventKind = iota
	// EventText is a plain text message or a command with arguments
	EventText
	// EventButton is an inline button press
	EventButton
)

// Event is an inbound update already stripped of transport details
type Event struct {
	Kind    EventKind
	From    domain.Contact
	Text    string
	Payload string
	Data    string
}

// Reply is one outbound message to the user who produced the event
type Reply struct {
	Text     string
	Keyboard channel.Keyboard
	// Edit replaces the message whose button was pressed instead of sending
	// a new one. An empty Text with Edit set only swaps the keyboard.
	Edit bool
}

// Result is everything a machine wants done in response to one event
type Result struct {
	Replies []Reply
	// Notice is the short acknowledgement shown for a button press
	Notice string
	// Alert shows Notice as a modal dialog
	Alert bool
	// DropControls removes the buttons from the pressed message
	DropControls bool
	// Dispatch is an order to hand to the matching engine once replies are out
	Dispatch int64
}

func say(text string, kb channel.Keyboard) Result {
	return Result{Replies: []Reply{{Text: text, Keyboard: kb}}}
}

func edit(text string, kb channel.Keyboard) Result {
	return Result{Replies: []Reply{{Text: text, Keyboard: kb, Edit: true}}}
}

func notice(text string, alert bool) Result {
	return Result{Notice: text, Alert: alert}
}

// Sessions keeps one conversation state per user for a single channel
type Sessions[S any] struct {
	mu     sync.Mutex
	states map[int64]S
	locks  map[int64]*sync.Mutex
}

// NewSessions creates an empty session store
func NewSessions[S any]() *Sessions[S] {
	return &Sessions[S]{
		states: make(map[int64]S),
		locks:  make(map[int64]*sync.Mutex),
	}
}

// Get returns user's current state, the zero value when none is stored
func (s *Sessions[S]) Get(userID int64) S {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[userID]
}

// Set stores user's state
func (s *Sessions[S]) Set(userID int64, state S) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = state
}

// Reset forgets user's state
func (s *Sessions[S]) Reset(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}

// Lock serializes updates of one user; call the returned func to release
func (s *Sessions[S]) Lock(userID int64) func() {
	s.mu.Lock()
	lock, ok := s.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[userID] = lock
	}
	s.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
