package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmOrderCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		id := kernel.NewUUID()

		cmd, err := commands.NewConfirmOrderCommand(id, "operator-7")

		require.NoError(t, err)
		assert.Equal(t, id, cmd.OrderID())
		assert.Equal(t, "operator-7", cmd.ConfirmedBy())
	})

	t.Run("blank actor", func(t *testing.T) {
		_, err := commands.NewConfirmOrderCommand(kernel.NewUUID(), "  ")

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Contains(t, err.Error(), "confirmedBy")
	})

	t.Run("zero order id", func(t *testing.T) {
		_, err := commands.NewConfirmOrderCommand(kernel.UUID{}, "operator")

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("not constructed", func(t *testing.T) {
		require.ErrorIs(t, commands.ConfirmOrderCommand{}.Validate(), commands.ErrConfirmOrderCommandIsNotConstructed)
	})
}

func TestConfirmOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	pending := newPendingOrder(t)
	cmd, err := commands.NewConfirmOrderCommand(pending.ID(), "operator-7")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		repo.On("Update", ctx, pending).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, fixedClock)
	confirmed, err := h.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Confirmed, confirmed.Status())
	require.NotNil(t, confirmed.Confirmation())
	assert.Equal(t, "operator-7", confirmed.Confirmation().By)
	assert.Equal(t, fixedNow, confirmed.Confirmation().At)
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewConfirmOrderCommand(id, "operator")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, fixedClock)
	confirmed, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Nil(t, confirmed)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestConfirmOrderCommandHandler_Handle_InvalidTransition(t *testing.T) {
	ctx := t.Context()
	shipped := restoreOrder(t, order.Shipped)
	cmd, err := commands.NewConfirmOrderCommand(shipped.ID(), "operator")
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, shipped.ID()).Return(shipped, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, fixedClock)
	confirmed, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, "Cannot confirm order with status Shipped", err.Error())
	assert.Nil(t, confirmed)
	assert.Equal(t, order.Shipped, shipped.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestConfirmOrderCommandHandler_Handle_UpdateError(t *testing.T) {
	ctx := t.Context()
	pending := newPendingOrder(t)
	cmd, err := commands.NewConfirmOrderCommand(pending.ID(), "operator")
	require.NoError(t, err)
	storageErr := errors.New("connection reset")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", ctx, pending.ID()).Return(pending, nil).Once(),
		repo.On("Update", ctx, pending).Return(storageErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewConfirmOrderCommandHandler(factory, fixedClock)
	_, err = h.Handle(ctx, cmd)

	require.ErrorIs(t, err, storageErr)
	uow.AssertNotCalled(t, "Commit", ctx)
}
