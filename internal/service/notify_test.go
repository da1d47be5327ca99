package service

import (
	"fmt"
	"testing"

	"orderhub/internal/channel"
	"orderhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotifier_NotifyAdmins(t *testing.T) {
	tests := []struct {
		name              string
		admins            []int64
		failing           []int64
		expectedDelivered int
		expectedFailed    []int64
	}{
		{
			name:              "all delivered",
			admins:            []int64{1, 2},
			expectedDelivered: 2,
		},
		{
			name:              "one admin unreachable",
			admins:            []int64{1, 2, 3},
			failing:           []int64{2},
			expectedDelivered: 2,
			expectedFailed:    []int64{2},
		},
		{
			name:              "no admins configured",
			admins:            nil,
			expectedDelivered: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := testutil.NewFakeSender(tt.failing...)
			notifier := NewNotifier(sender, NewAuthService(tt.admins), testutil.NewTestLogger())

			report := notifier.NotifyAdmins("hello")

			assert.Equal(t, tt.expectedDelivered, report.Delivered())
			assert.Equal(t, tt.expectedFailed, report.Failed())
			assert.Len(t, sender.Sent(), tt.expectedDelivered)
		})
	}
}

func TestNotifier_UsesSenderPerAdmin(t *testing.T) {
	sender := new(testutil.MockSender)
	sender.On("Send", int64(1), "text", channel.Keyboard(nil)).Return(channel.MessageRef{ChatID: 1, MessageID: 5}, nil)
	sender.On("Send", int64(2), "text", channel.Keyboard(nil)).Return(channel.MessageRef{}, fmt.Errorf("bot was blocked by the user"))

	notifier := NewNotifier(sender, NewAuthService([]int64{2, 1}), testutil.NewTestLogger())

	report := notifier.NotifyAdmins("text")

	assert.Equal(t, 1, report.Delivered())
	assert.Equal(t, []int64{2}, report.Failed())
	assert.Equal(t, int64(1), report.Deliveries[0].Recipient)
	assert.Equal(t, 5, report.Deliveries[0].Ref.MessageID)
	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "Send", 2)
	sender.AssertNotCalled(t, "DisableControls", mock.Anything)
}
