package testutil

import (
	"fmt"
	"sync"

	"orderhub/internal/channel"

	"github.com/stretchr/testify/mock"
)

// MockSender is a mock for channel.Sender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(to int64, text string, kb channel.Keyboard) (channel.MessageRef, error) {
	args := m.Called(to, text, kb)
	return args.Get(0).(channel.MessageRef), args.Error(1)
}

func (m *MockSender) DisableControls(ref channel.MessageRef) error {
	args := m.Called(ref)
	return args.Error(0)
}

// SentMessage is one message captured by FakeSender
type SentMessage struct {
	To       int64
	Text     string
	Keyboard channel.Keyboard
}

// FakeSender records outbound messages and fails for selected recipients
type FakeSender struct {
	mu       sync.Mutex
	sent     []SentMessage
	disabled []channel.MessageRef
	failFor  map[int64]bool
	nextID   int
}

// NewFakeSender creates a sender that fails for the given recipients
func NewFakeSender(failFor ...int64) *FakeSender {
	f := &FakeSender{failFor: make(map[int64]bool)}
	for _, id := range failFor {
		f.failFor[id] = true
	}
	return f
}

func (f *FakeSender) Send(to int64, text string, kb channel.Keyboard) (channel.MessageRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failFor[to] {
		return channel.MessageRef{}, fmt.Errorf("chat %d not found", to)
	}
	f.nextID++
	f.sent = append(f.sent, SentMessage{To: to, Text: text, Keyboard: kb})
	return channel.MessageRef{ChatID: to, MessageID: f.nextID}, nil
}

func (f *FakeSender) DisableControls(ref channel.MessageRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.disabled = append(f.disabled, ref)
	return nil
}

// Sent returns a copy of every captured message
func (f *FakeSender) Sent() []SentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]SentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}

// SentTo returns the messages captured for one recipient
func (f *FakeSender) SentTo(to int64) []SentMessage {
	var out []SentMessage
	for _, m := range f.Sent() {
		if m.To == to {
			out = append(out, m)
		}
	}
	return out
}

// Disabled returns the message refs whose controls were removed
func (f *FakeSender) Disabled() []channel.MessageRef {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]channel.MessageRef, len(f.disabled))
	copy(out, f.disabled)
	return out
}
