package service

import (
	"fmt"
	"strings"
	"testing"

	"orderhub/internal/domain"
	"orderhub/internal/repository/memory"
	"orderhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchingFixture struct {
	executors *memory.ExecutorRepo
	orders    *memory.OrderRepo
	pro       *testutil.FakeSender
	admin     *testutil.FakeSender
	service   *MatchingService
}

func newMatchingFixture(t *testing.T, unreachable ...int64) *matchingFixture {
	t.Helper()

	f := &matchingFixture{
		executors: memory.NewExecutorRepo(),
		orders:    memory.NewOrderRepo(),
		pro:       testutil.NewFakeSender(unreachable...),
		admin:     testutil.NewFakeSender(),
	}
	logger := testutil.NewTestLogger()
	notifier := NewNotifier(f.admin, NewAuthService([]int64{testutil.AdminID}), logger)
	f.service = NewMatchingService(f.executors, f.orders, f.pro, notifier, logger)
	return f
}

func (f *matchingFixture) addExecutor(t *testing.T, ex *domain.Executor) {
	t.Helper()
	require.NoError(t, f.executors.UpsertExecutor(ex))
}

func (f *matchingFixture) createOrder(t *testing.T, category string) *domain.Order {
	t.Helper()
	o, err := f.orders.CreateOrder(testutil.NewTestDraft(category))
	require.NoError(t, err)
	return o
}

func TestMatchingService_EligibleExecutors(t *testing.T) {
	f := newMatchingFixture(t)
	f.addExecutor(t, testutil.NewTestExecutor(1, domain.StatusApproved, "Кран", "Кровля"))
	f.addExecutor(t, testutil.NewTestExecutor(2, domain.StatusPending, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(3, domain.StatusBlocked, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(4, domain.StatusApproved, "Самосвал"))
	f.addExecutor(t, testutil.NewTestExecutor(5, domain.StatusApproved, "Кран"))

	eligible, err := f.service.EligibleExecutors("Кран")

	require.NoError(t, err)
	var ids []int64
	for _, ex := range eligible {
		ids = append(ids, ex.UserID)
	}
	assert.ElementsMatch(t, []int64{1, 5}, ids)
}

func TestMatchingService_DispatchOrder_NoEligible(t *testing.T) {
	f := newMatchingFixture(t)
	f.addExecutor(t, testutil.NewTestExecutor(1, domain.StatusPending, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(2, domain.StatusApproved, "Самосвал"))
	o := f.createOrder(t, "Кран")

	report := f.service.DispatchOrder(o.ID)

	assert.True(t, report.Found)
	assert.Equal(t, 0, report.Eligible)
	assert.Equal(t, AlertNoEligible, report.Alert)
	assert.Empty(t, f.pro.Sent())

	alerts := f.admin.SentTo(testutil.AdminID)
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Text, "Кран")
	assert.Contains(t, alerts[0].Text, "+375291234567")
}

func TestMatchingService_DispatchOrder_DeliversCards(t *testing.T) {
	f := newMatchingFixture(t)
	f.addExecutor(t, testutil.NewTestExecutor(1, domain.StatusApproved, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(2, domain.StatusApproved, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(3, domain.StatusApproved, "Кровля"))
	o := f.createOrder(t, "Кран")

	report := f.service.DispatchOrder(o.ID)

	assert.Equal(t, 2, report.Eligible)
	assert.Equal(t, 2, report.Fanout.Delivered())
	assert.Equal(t, AlertNone, report.Alert)
	assert.Empty(t, f.admin.Sent())

	for _, id := range []int64{1, 2} {
		cards := f.pro.SentTo(id)
		require.Len(t, cards, 1)
		assert.Contains(t, cards[0].Text, fmt.Sprintf("#%d", o.ID))
		require.Len(t, cards[0].Keyboard, 1)
		assert.Equal(t, fmt.Sprintf("take:%d", o.ID), cards[0].Keyboard[0][0].Data)
		assert.Equal(t, fmt.Sprintf("skip:%d", o.ID), cards[0].Keyboard[0][1].Data)
	}
	assert.Empty(t, f.pro.SentTo(3))
}

func TestMatchingService_DispatchOrder_PartialFailure(t *testing.T) {
	f := newMatchingFixture(t, 1)
	f.addExecutor(t, testutil.NewTestExecutor(1, domain.StatusApproved, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(2, domain.StatusApproved, "Кран"))
	o := f.createOrder(t, "Кран")

	report := f.service.DispatchOrder(o.ID)

	assert.Equal(t, 1, report.Fanout.Delivered())
	assert.Equal(t, []int64{1}, report.Fanout.Failed())
	assert.Equal(t, AlertNone, report.Alert)
	assert.Len(t, f.pro.SentTo(2), 1)
	assert.Empty(t, f.admin.Sent())
}

func TestMatchingService_DispatchOrder_NobodyReached(t *testing.T) {
	f := newMatchingFixture(t, 1, 2)
	f.addExecutor(t, testutil.NewTestExecutor(1, domain.StatusApproved, "Кран"))
	f.addExecutor(t, testutil.NewTestExecutor(2, domain.StatusApproved, "Кран"))
	o := f.createOrder(t, "Кран")

	report := f.service.DispatchOrder(o.ID)

	assert.Equal(t, 2, report.Eligible)
	assert.Equal(t, 0, report.Fanout.Delivered())
	assert.Equal(t, AlertUnreachable, report.Alert)

	alerts := f.admin.Sent()
	require.Len(t, alerts, 1)
	assert.Contains(t, alerts[0].Text, "Ни одному исполнителю не доставлено")
}

func TestMatchingService_DispatchOrder_UnknownOrder(t *testing.T) {
	f := newMatchingFixture(t)
	f.addExecutor(t, testutil.NewTestExecutor(1, domain.StatusApproved, "Кран"))

	report := f.service.DispatchOrder(42)

	assert.False(t, report.Found)
	assert.Empty(t, f.pro.Sent())
	assert.Empty(t, f.admin.Sent())
}

func TestMatchingService_AcceptOrder(t *testing.T) {
	tests := []struct {
		name          string
		executor      *domain.Executor
		orderExists   bool
		expectedError error
	}{
		{
			name:        "approved executor",
			executor:    testutil.NewTestExecutor(7, domain.StatusApproved, "Кран"),
			orderExists: true,
		},
		{
			name:          "pending executor",
			executor:      testutil.NewTestExecutor(7, domain.StatusPending, "Кран"),
			orderExists:   true,
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:          "blocked executor",
			executor:      testutil.NewTestExecutor(7, domain.StatusBlocked, "Кран"),
			orderExists:   true,
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:          "unknown executor",
			executor:      nil,
			orderExists:   true,
			expectedError: domain.ErrUnauthorized,
		},
		{
			name:          "unknown order",
			executor:      testutil.NewTestExecutor(7, domain.StatusApproved, "Кран"),
			orderExists:   false,
			expectedError: domain.ErrOrderNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newMatchingFixture(t)
			if tt.executor != nil {
				f.addExecutor(t, tt.executor)
			}
			orderID := int64(100)
			if tt.orderExists {
				orderID = f.createOrder(t, "Кран").ID
			}

			_, err := f.service.AcceptOrder(orderID, testutil.NewTestContact(7))

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, f.admin.Sent())
				if tt.orderExists {
					o, _ := f.orders.GetOrder(orderID)
					assert.Empty(t, o.AcceptedBy)
				}
				return
			}

			require.NoError(t, err)
			o, _ := f.orders.GetOrder(orderID)
			assert.True(t, o.Accepted(7))

			alerts := f.admin.Sent()
			require.Len(t, alerts, 1)
			assert.Contains(t, alerts[0].Text, "+375291112233")
			assert.Contains(t, alerts[0].Text, "+375291234567")
			assert.Contains(t, alerts[0].Text, "@user")
		})
	}
}

func TestMatchingService_AcceptOrderTwice(t *testing.T) {
	f := newMatchingFixture(t)
	f.addExecutor(t, testutil.NewTestExecutor(7, domain.StatusApproved, "Кран"))
	o := f.createOrder(t, "Кран")

	_, err := f.service.AcceptOrder(o.ID, testutil.NewTestContact(7))
	require.NoError(t, err)
	_, err = f.service.AcceptOrder(o.ID, testutil.NewTestContact(7))
	require.NoError(t, err)

	got, _ := f.orders.GetOrder(o.ID)
	assert.Len(t, got.AcceptedBy, 1)
	assert.Len(t, f.admin.Sent(), 1)
}

func TestMatchingService_SkipOrderChangesNothing(t *testing.T) {
	f := newMatchingFixture(t)
	f.addExecutor(t, testutil.NewTestExecutor(7, domain.StatusApproved, "Кран"))
	o := f.createOrder(t, "Кран")

	f.service.SkipOrder(o.ID, testutil.NewTestContact(7))

	got, _ := f.orders.GetOrder(o.ID)
	assert.Empty(t, got.AcceptedBy)
	assert.Empty(t, f.admin.Sent())
}

func TestOrderCardText_EscapesUserInput(t *testing.T) {
	o := &domain.Order{ID: 3, Category: "Кран", Date: "15.10.2026", Address: "<b>", Description: "a & b"}

	text := OrderCardText(o)

	assert.True(t, strings.Contains(text, "&lt;b&gt;"))
	assert.True(t, strings.Contains(text, "a &amp; b"))
}
