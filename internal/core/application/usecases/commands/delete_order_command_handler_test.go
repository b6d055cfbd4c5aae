package commands_test

import (
	"errors"
	"testing"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewDeleteOrderCommand(t *testing.T) {
	_, err := commands.NewDeleteOrderCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	require.ErrorIs(t, commands.DeleteOrderCommand{}.Validate(), commands.ErrDeleteOrderCommandIsNotConstructed)
}

func TestDeleteOrderCommandHandler_Handle(t *testing.T) {
	testCases := []struct {
		name    string
		deleted bool
	}{
		{name: "existing order", deleted: true},
		{name: "missing order", deleted: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			id := kernel.NewUUID()
			cmd, err := commands.NewDeleteOrderCommand(id)
			require.NoError(t, err)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("Delete", ctx, id).Return(tc.deleted, nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)
			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewDeleteOrderCommandHandler(factory)
			deleted, err := h.Handle(ctx, cmd)

			require.NoError(t, err)
			assert.Equal(t, tc.deleted, deleted)
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
		})
	}
}

func TestDeleteOrderCommandHandler_Handle_StorageError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, err := commands.NewDeleteOrderCommand(id)
	require.NoError(t, err)
	storageErr := errors.New("disk full")

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Delete", ctx, id).Return(false, storageErr).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewDeleteOrderCommandHandler(factory)
	deleted, err := h.Handle(ctx, cmd)

	require.ErrorIs(t, err, storageErr)
	assert.False(t, deleted)
	uow.AssertNotCalled(t, "Commit", ctx)
}
