package users

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"user-crud/internal/model"
	"user-crud/internal/store"
	"user-crud/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validation.New()
	return e
}

func newJSONCtx(e *echo.Echo, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	path := "/api/users"
	if id != "" {
		path += "/" + id
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetPath("/api/users/:id")
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func sampleUser() *model.User {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	age := 25
	return &model.User{
		ID:        "65a1b2c3d4e5f60718293a4b",
		Name:      "John Doe",
		Email:     "john@example.com",
		Age:       &age,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
}

func TestListUsersHandler(t *testing.T) {
	e := newEcho()

	t.Run("ok", func(t *testing.T) {
		s := &store.FakeUserStore{ListUsersFn: func(context.Context) ([]model.User, error) {
			return []model.User{*sampleUser()}, nil
		}}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", "")
		require.NoError(t, ListUsersHandler(s)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"success":true,"count":1`)
		require.Contains(t, rec.Body.String(), `"_id":"65a1b2c3d4e5f60718293a4b"`)
	})

	t.Run("empty", func(t *testing.T) {
		s := &store.FakeUserStore{ListUsersFn: func(context.Context) ([]model.User, error) { return nil, nil }}
		ctx, rec := newJSONCtx(e, http.MethodGet, "", "")
		require.NoError(t, ListUsersHandler(s)(ctx))
		require.JSONEq(t, `{"success":true,"count":0,"data":[]}`, rec.Body.String())
	})

	t.Run("store err", func(t *testing.T) {
		s := &store.FakeUserStore{ListUsersFn: func(context.Context) ([]model.User, error) {
			return nil, errors.New("ListUsers: boom")
		}}
		ctx, _ := newJSONCtx(e, http.MethodGet, "", "")
		require.EqualError(t, ListUsersHandler(s)(ctx), "ListUsers: boom")
	})
}

func TestGetUserHandler(t *testing.T) {
	e := newEcho()

	t.Run("ok", func(t *testing.T) {
		var gotID string
		s := &store.FakeUserStore{GetUserFn: func(_ context.Context, id string) (*model.User, error) {
			gotID = id
			return sampleUser(), nil
		}}
		ctx, rec := newJSONCtx(e, http.MethodGet, "65a1b2c3d4e5f60718293a4b", "")
		require.NoError(t, GetUserHandler(s)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "65a1b2c3d4e5f60718293a4b", gotID)
		require.Contains(t, rec.Body.String(), `"name":"John Doe"`)
	})

	t.Run("not found", func(t *testing.T) {
		s := &store.FakeUserStore{GetUserFn: func(context.Context, string) (*model.User, error) {
			return nil, fmt.Errorf("GetUser: %w", store.ErrNotFound)
		}}
		ctx, rec := newJSONCtx(e, http.MethodGet, "bad-id", "")
		require.NoError(t, GetUserHandler(s)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"User not found"}`, rec.Body.String())
	})

	t.Run("store err", func(t *testing.T) {
		s := &store.FakeUserStore{GetUserFn: func(context.Context, string) (*model.User, error) {
			return nil, errors.New("timeout")
		}}
		ctx, _ := newJSONCtx(e, http.MethodGet, "x", "")
		require.EqualError(t, GetUserHandler(s)(ctx), "timeout")
	})
}

func TestCreateUserHandler(t *testing.T) {
	e := newEcho()

	t.Run("ok", func(t *testing.T) {
		var got *model.User
		s := &store.FakeUserStore{CreateUserFn: func(_ context.Context, u *model.User) (*model.User, error) {
			got = u
			out := sampleUser()
			out.Name, out.Email = u.Name, u.Email
			return out, nil
		}}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"name":"  John Doe ","email":"John@Example.COM","age":25}`)
		require.NoError(t, CreateUserHandler(s)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "John Doe", got.Name)
		require.Equal(t, "john@example.com", got.Email)
		require.Equal(t, 25, *got.Age)
		require.Contains(t, rec.Body.String(), `"email":"john@example.com"`)
	})

	t.Run("bind error", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"name":`)
		require.NoError(t, CreateUserHandler(&store.FakeUserStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("validation", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"name":"   ","email":"nope","age":121}`)
		require.NoError(t, CreateUserHandler(&store.FakeUserStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"Validation failed","errors":{
			"name":"Name is required",
			"email":"Please enter a valid email",
			"age":"Age cannot exceed 120"}}`, rec.Body.String())
	})

	t.Run("negative age", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"name":"A","email":"a@b.com","age":-1}`)
		require.NoError(t, CreateUserHandler(&store.FakeUserStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Age cannot be negative")
	})

	t.Run("non-field validator error", func(t *testing.T) {
		e := echo.New()
		e.Validator = &stubValidator{err: errors.New("bad")}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"name":"A","email":"a@b.com"}`)
		require.NoError(t, CreateUserHandler(&store.FakeUserStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"bad"}`, rec.Body.String())
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := &store.FakeUserStore{CreateUserFn: func(context.Context, *model.User) (*model.User, error) {
			return nil, fmt.Errorf("CreateUser: %w", store.ErrDuplicateEmail)
		}}
		ctx, rec := newJSONCtx(e, http.MethodPost, "", `{"name":"A","email":"a@b.com"}`)
		require.NoError(t, CreateUserHandler(s)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Email already exists")
	})

	t.Run("store err", func(t *testing.T) {
		s := &store.FakeUserStore{CreateUserFn: func(context.Context, *model.User) (*model.User, error) {
			return nil, errors.New("write concern")
		}}
		ctx, _ := newJSONCtx(e, http.MethodPost, "", `{"name":"A","email":"a@b.com"}`)
		require.EqualError(t, CreateUserHandler(s)(ctx), "write concern")
	})
}

func TestUpdateUserHandler(t *testing.T) {
	e := newEcho()

	t.Run("partial", func(t *testing.T) {
		var gotID string
		var got model.UserPatch
		s := &store.FakeUserStore{UpdateUserFn: func(_ context.Context, id string, p model.UserPatch) (*model.User, error) {
			gotID, got = id, p
			out := sampleUser()
			out.Age = p.Age
			return out, nil
		}}
		ctx, rec := newJSONCtx(e, http.MethodPut, "65a1b2c3d4e5f60718293a4b", `{"age":26}`)
		require.NoError(t, UpdateUserHandler(s)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "65a1b2c3d4e5f60718293a4b", gotID)
		require.Nil(t, got.Name)
		require.Nil(t, got.Email)
		require.Equal(t, 26, *got.Age)
		require.Contains(t, rec.Body.String(), `"age":26`)
		require.Contains(t, rec.Body.String(), `"name":"John Doe"`)
	})

	t.Run("normalizes", func(t *testing.T) {
		var got model.UserPatch
		s := &store.FakeUserStore{UpdateUserFn: func(_ context.Context, _ string, p model.UserPatch) (*model.User, error) {
			got = p
			return sampleUser(), nil
		}}
		ctx, _ := newJSONCtx(e, http.MethodPut, "id", `{"name":" John Updated ","email":"JOHN@example.com"}`)
		require.NoError(t, UpdateUserHandler(s)(ctx))
		require.Equal(t, "John Updated", *got.Name)
		require.Equal(t, "john@example.com", *got.Email)
	})

	t.Run("validation", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", `{"name":"","age":-5}`)
		require.NoError(t, UpdateUserHandler(&store.FakeUserStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.JSONEq(t, `{"success":false,"message":"Validation failed","errors":{
			"name":"Name is required",
			"age":"Age cannot be negative"}}`, rec.Body.String())
	})

	t.Run("bind error", func(t *testing.T) {
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", `{"age":"old"}`)
		require.NoError(t, UpdateUserHandler(&store.FakeUserStore{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		s := &store.FakeUserStore{UpdateUserFn: func(context.Context, string, model.UserPatch) (*model.User, error) {
			return nil, store.ErrNotFound
		}}
		ctx, rec := newJSONCtx(e, http.MethodPut, "missing", `{"age":30}`)
		require.NoError(t, UpdateUserHandler(s)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		s := &store.FakeUserStore{UpdateUserFn: func(context.Context, string, model.UserPatch) (*model.User, error) {
			return nil, store.ErrDuplicateEmail
		}}
		ctx, rec := newJSONCtx(e, http.MethodPut, "id", `{"email":"jane@example.com"}`)
		require.NoError(t, UpdateUserHandler(s)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), `"email":"Email already exists"`)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	e := newEcho()

	t.Run("ok", func(t *testing.T) {
		s := &store.FakeUserStore{DeleteUserFn: func(context.Context, string) (*model.User, error) {
			return sampleUser(), nil
		}}
		ctx, rec := newJSONCtx(e, http.MethodDelete, "65a1b2c3d4e5f60718293a4b", "")
		require.NoError(t, DeleteUserHandler(s)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `"message":"User deleted successfully"`)
	})

	t.Run("not found", func(t *testing.T) {
		s := &store.FakeUserStore{DeleteUserFn: func(context.Context, string) (*model.User, error) {
			return nil, store.ErrNotFound
		}}
		ctx, rec := newJSONCtx(e, http.MethodDelete, "65a1b2c3d4e5f60718293a4b", "")
		require.NoError(t, DeleteUserHandler(s)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})
}
