package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/pizzeria/app/services"
	"github.com/shashiranjanraj/pizzeria/pkg/payment"
)

func TestCreateRejectsDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.signup(t)

	err := e.users.Create(context.Background(), services.SignupInput{
		FirstName: "Other", LastName: "Ada", Email: "ada@example.com", Address: "x", Password: "p", TOSAgreement: true,
	})
	assert.ErrorIs(t, err, services.ErrConflict)
	assert.Equal(t, 400, services.StatusOf(err))
}

func TestCreateRejectsEmailThatIsNotAKey(t *testing.T) {
	e := newEnv(t)

	err := e.users.Create(context.Background(), services.SignupInput{
		FirstName: "Ada", LastName: "Lovelace", Email: ".hidden@example.com", Address: "x", Password: "p", TOSAgreement: true,
	})
	assert.ErrorIs(t, err, services.ErrValidation)
	assert.Equal(t, 400, services.StatusOf(err))
}

func TestStoredUserHasHashedPassword(t *testing.T) {
	e := newEnv(t)
	e.signup(t)

	user, err := e.users.Get(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "engine", user.HashedPassword)
	assert.Len(t, user.HashedPassword, 64)
	assert.True(t, user.TOSAgreement)
}

func TestUpdate(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.signup(t)

	assert.ErrorIs(t, e.users.Update(ctx, services.UpdateInput{Email: "ada@example.com"}), services.ErrValidation)
	assert.ErrorIs(t, e.users.Update(ctx, services.UpdateInput{Email: "nobody@example.com", FirstName: "X"}), services.ErrValidation)

	require.NoError(t, e.users.Update(ctx, services.UpdateInput{Email: "ada@example.com", Address: "1 New St", Password: "difference"}))

	user, err := e.users.Get(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "1 New St", user.Address)
	assert.Equal(t, "Ada", user.FirstName)

	_, err = e.tokens.Issue(ctx, "ada@example.com", "engine")
	assert.ErrorIs(t, err, services.ErrValidation)
	_, err = e.tokens.Issue(ctx, "ada@example.com", "difference")
	assert.NoError(t, err)
}

func TestDeleteUserWithoutCartRemovesToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	token := e.signup(t)

	require.NoError(t, e.users.Delete(ctx, "ada@example.com", token.ID))

	_, err := e.users.Get(ctx, "ada@example.com")
	assert.ErrorIs(t, err, services.ErrNotFound)
	_, err = e.tokens.Get(ctx, token.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestDeleteUserCascadesCartAndOrders(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	token, cart := fillCart(t, e)

	e.pay.On("Charge", mock.Anything, mock.Anything).Return(payment.Charge{}, payment.ErrGateway)
	_, err := e.checkout.Checkout(ctx, token.ID, services.CheckoutInput{CartID: cart.ID, Token: "tok_visa"})
	require.Error(t, err)

	orders, err := e.orders.IDs(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)

	require.NoError(t, e.users.Delete(ctx, "ada@example.com", token.ID))

	orders, err = e.orders.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
	carts, err := e.cartRepo.IDs(ctx)
	require.NoError(t, err)
	assert.Empty(t, carts)

	assert.ErrorIs(t, e.users.Delete(ctx, "ada@example.com", token.ID), services.ErrNotFound)
}
