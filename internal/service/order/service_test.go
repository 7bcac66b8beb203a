package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "cafe-preorder-bot/internal/common/errors"
	"cafe-preorder-bot/internal/domain/menu"
	domain "cafe-preorder-bot/internal/domain/order"
	"cafe-preorder-bot/internal/domain/user"
	"cafe-preorder-bot/internal/mocks"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *mocks.MockOrderRepository, *mocks.MockMenuRepository, *mocks.MockNotifier) {
	orders := new(mocks.MockOrderRepository)
	menuRepo := new(mocks.MockMenuRepository)
	notifier := new(mocks.MockNotifier)
	svc := NewService(orders, menuRepo, notifier)
	svc.now = func() time.Time { return fixedNow }
	return svc, orders, menuRepo, notifier
}

func TestService_Place(t *testing.T) {
	ctx := context.Background()
	pickup := fixedNow.Add(90 * time.Minute)

	t.Run("empty cart never creates an order", func(t *testing.T) {
		svc, orders, _, notifier := newTestService()

		_, err := svc.Place(ctx, 1, map[int64]int{}, pickup)
		assert.True(t, apperrors.IsValidation(err))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "NotifyNewOrder", mock.Anything, mock.Anything)
	})

	t.Run("pickup in the past", func(t *testing.T) {
		svc, orders, _, _ := newTestService()

		_, err := svc.Place(ctx, 1, map[int64]int{1: 1}, fixedNow)
		assert.True(t, apperrors.IsValidation(err))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("one line per cart entry", func(t *testing.T) {
		svc, orders, menuRepo, notifier := newTestService()
		items := map[int64]*menu.Item{
			3: {ID: 3, Name: "Латте", Price: 1000},
			8: {ID: 8, Name: "Чизкейк", Price: 1500},
		}
		menuRepo.On("GetByIDs", mock.Anything, []int64{3, 8}).Return(items, nil)

		var created *domain.Order
		orders.On("Create", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Run(func(args mock.Arguments) {
			created = args.Get(1).(*domain.Order)
			created.ID = 42
		})
		reloaded := &domain.Order{ID: 42, User: &user.User{TelegramID: 9}, Status: domain.StatusPending}
		orders.On("GetByID", mock.Anything, int64(42)).Return(reloaded, nil)
		notifier.On("NotifyNewOrder", mock.Anything, reloaded).Return()

		placed, err := svc.Place(ctx, 7, map[int64]int{8: 1, 3: 2}, pickup)
		require.NoError(t, err)
		assert.Same(t, reloaded, placed)

		require.NotNil(t, created)
		assert.Equal(t, int64(7), created.UserID)
		assert.Equal(t, domain.StatusPending, created.Status)
		assert.True(t, created.PickupTime.Equal(pickup))
		assert.Equal(t, []domain.Item{{MenuItemID: 3, Quantity: 2}, {MenuItemID: 8, Quantity: 1}}, created.Items)
		orders.AssertNumberOfCalls(t, "Create", 1)
		notifier.AssertExpectations(t)
	})

	t.Run("deleted menu item", func(t *testing.T) {
		svc, orders, menuRepo, _ := newTestService()
		menuRepo.On("GetByIDs", mock.Anything, []int64{5}).Return(map[int64]*menu.Item{}, nil)

		_, err := svc.Place(ctx, 7, map[int64]int{5: 1}, pickup)
		assert.True(t, apperrors.IsNotFound(err))
		orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_MarkReady(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to ready notifies once", func(t *testing.T) {
		svc, orders, _, notifier := newTestService()
		o := &domain.Order{ID: 1, Status: domain.StatusPending}
		orders.On("GetByID", mock.Anything, int64(1)).Return(o, nil)
		orders.On("UpdateStatusIf", mock.Anything, int64(1), domain.StatusPending, domain.StatusReady).Return(true, nil)
		notifier.On("NotifyOrderReady", mock.Anything, o).Return().Once()

		got, changed, err := svc.MarkReady(ctx, 1)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, domain.StatusReady, got.Status)
		notifier.AssertExpectations(t)
	})

	t.Run("already ready is idempotent", func(t *testing.T) {
		svc, orders, _, notifier := newTestService()
		orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, Status: domain.StatusReady}, nil)

		got, changed, err := svc.MarkReady(ctx, 1)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, domain.StatusReady, got.Status)
		orders.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		notifier.AssertNotCalled(t, "NotifyOrderReady", mock.Anything, mock.Anything)
	})

	t.Run("cancelled order conflicts", func(t *testing.T) {
		svc, orders, _, _ := newTestService()
		orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, Status: domain.StatusCancelled}, nil)

		_, changed, err := svc.MarkReady(ctx, 1)
		assert.False(t, changed)
		assert.True(t, apperrors.IsConflict(err))
		orders.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown id writes nothing", func(t *testing.T) {
		svc, orders, _, _ := newTestService()
		orders.On("GetByID", mock.Anything, int64(99)).Return(nil, nil)

		_, _, err := svc.MarkReady(ctx, 99)
		assert.True(t, apperrors.IsNotFound(err))
		orders.AssertNotCalled(t, "UpdateStatusIf", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lost race to another admin", func(t *testing.T) {
		svc, orders, _, notifier := newTestService()
		orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, Status: domain.StatusPending}, nil).Once()
		orders.On("UpdateStatusIf", mock.Anything, int64(1), domain.StatusPending, domain.StatusReady).Return(false, nil)
		orders.On("GetByID", mock.Anything, int64(1)).Return(&domain.Order{ID: 1, Status: domain.StatusReady}, nil).Once()

		_, changed, err := svc.MarkReady(ctx, 1)
		require.NoError(t, err)
		assert.False(t, changed)
		notifier.AssertNotCalled(t, "NotifyOrderReady", mock.Anything, mock.Anything)
	})
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	svc, orders, _, notifier := newTestService()
	o := &domain.Order{ID: 2, Status: domain.StatusPending}
	orders.On("GetByID", mock.Anything, int64(2)).Return(o, nil)
	orders.On("UpdateStatusIf", mock.Anything, int64(2), domain.StatusPending, domain.StatusCancelled).Return(true, nil)
	notifier.On("NotifyOrderCancelled", mock.Anything, o).Return()

	_, changed, err := svc.Cancel(ctx, 2)
	require.NoError(t, err)
	assert.True(t, changed)
	notifier.AssertExpectations(t)

	failing, failingOrders, _, _ := newTestService()
	failingOrders.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("timeout"))
	_, _, err = failing.Cancel(ctx, 3)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeDatabase, appErr.Code)
}

func TestService_Lists(t *testing.T) {
	ctx := context.Background()
	svc, orders, _, _ := newTestService()
	orders.On("ListByStatus", mock.Anything, domain.StatusPending).Return([]domain.Order{{ID: 1}}, nil)
	orders.On("ListRecent", mock.Anything, RecentOrdersLimit).Return([]domain.Order{{ID: 1}, {ID: 2}}, nil)
	orders.On("ListByUser", mock.Anything, int64(4), CustomerHistoryLimit).Return([]domain.Order{}, nil)
	orders.On("Stats", mock.Anything).Return(domain.Stats{Total: 2}, nil)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	recent, err := svc.Recent(ctx)
	require.NoError(t, err)
	assert.Len(t, recent, 2)

	mine, err := svc.ForUser(ctx, 4)
	require.NoError(t, err)
	assert.Empty(t, mine)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.Total)
}
