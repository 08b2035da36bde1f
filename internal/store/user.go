package store

import (
	"context"
	"errors"
	"time"

	"user-crud/internal/model"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserStore 是 handler 使用的儲存介面；每個操作都直接讀寫底層資料庫。
// 任何無法對應到文件的 id（包含格式錯誤）都回傳 ErrNotFound。
type UserStore interface {
	ListUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	CreateUser(ctx context.Context, u *model.User) (*model.User, error)
	UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
}

// now is millisecond precision to match BSON datetimes.
var now = func() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

type FakeUserStore struct {
	ListUsersFn  func(ctx context.Context) ([]model.User, error)
	GetUserFn    func(ctx context.Context, id string) (*model.User, error)
	CreateUserFn func(ctx context.Context, u *model.User) (*model.User, error)
	UpdateUserFn func(ctx context.Context, id string, patch model.UserPatch) (*model.User, error)
	DeleteUserFn func(ctx context.Context, id string) (*model.User, error)
}

func (f *FakeUserStore) ListUsers(ctx context.Context) ([]model.User, error) {
	if f.ListUsersFn != nil {
		return f.ListUsersFn(ctx)
	}
	panic("unexpected ListUsers")
}

func (f *FakeUserStore) GetUser(ctx context.Context, id string) (*model.User, error) {
	if f.GetUserFn != nil {
		return f.GetUserFn(ctx, id)
	}
	panic("unexpected GetUser")
}

func (f *FakeUserStore) CreateUser(ctx context.Context, u *model.User) (*model.User, error) {
	if f.CreateUserFn != nil {
		return f.CreateUserFn(ctx, u)
	}
	panic("unexpected CreateUser")
}

func (f *FakeUserStore) UpdateUser(ctx context.Context, id string, patch model.UserPatch) (*model.User, error) {
	if f.UpdateUserFn != nil {
		return f.UpdateUserFn(ctx, id, patch)
	}
	panic("unexpected UpdateUser")
}

func (f *FakeUserStore) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	if f.DeleteUserFn != nil {
		return f.DeleteUserFn(ctx, id)
	}
	panic("unexpected DeleteUser")
}
