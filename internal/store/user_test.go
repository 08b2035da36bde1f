package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"user-crud/internal/model"

	"github.com/stretchr/testify/require"
)

func TestFakeUserStore(t *testing.T) {
	ctx := context.Background()
	f := &FakeUserStore{}
	require.Panics(t, func() { f.ListUsers(ctx) })
	require.Panics(t, func() { f.GetUser(ctx, "1") })
	require.Panics(t, func() { f.CreateUser(ctx, &model.User{}) })
	require.Panics(t, func() { f.UpdateUser(ctx, "1", model.UserPatch{}) })
	require.Panics(t, func() { f.DeleteUser(ctx, "1") })

	u := &model.User{ID: "1", Name: "n"}
	f.ListUsersFn = func(context.Context) ([]model.User, error) { return []model.User{*u}, nil }
	f.GetUserFn = func(context.Context, string) (*model.User, error) { return u, nil }
	f.CreateUserFn = func(context.Context, *model.User) (*model.User, error) { return u, nil }
	f.UpdateUserFn = func(context.Context, string, model.UserPatch) (*model.User, error) { return nil, ErrNotFound }
	f.DeleteUserFn = func(context.Context, string) (*model.User, error) { return nil, errors.New("x") }

	list, err := f.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	got, err := f.GetUser(ctx, "1")
	require.NoError(t, err)
	require.Same(t, u, got)
	got, err = f.CreateUser(ctx, &model.User{})
	require.NoError(t, err)
	require.Same(t, u, got)
	_, err = f.UpdateUser(ctx, "1", model.UserPatch{})
	require.ErrorIs(t, err, ErrNotFound)
	_, err = f.DeleteUser(ctx, "1")
	require.EqualError(t, err, "x")
}

func TestNowIsMillisecondUTC(t *testing.T) {
	ts := now()
	require.Equal(t, time.UTC, ts.Location())
	require.Zero(t, ts.Nanosecond()%int(time.Millisecond))
}
