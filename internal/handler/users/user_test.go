package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gemini-users/internal/database"
	"gemini-users/internal/model"
	"gemini-users/internal/store"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type stubValidator struct{ err error }

func (s *stubValidator) Validate(i interface{}) error { return s.err }

func newJSONCtx(e *echo.Echo, method, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, "/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func newParamCtx(e *echo.Echo, method, val, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, "/users/"+val, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, "/users/"+val, nil)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/users/:user_id")
	c.SetParamNames("user_id")
	c.SetParamValues(val)
	return c, rec
}

func restore() {
	listUsers = store.ListUsers
	getUserByID = store.GetUserByID
	createUser = store.CreateUser
	updateUser = store.UpdateUser
	deleteUser = store.DeleteUser
}

func TestListUsersHandler(t *testing.T) {
	e := echo.New()

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		listUsers = func(context.Context, database.DB) ([]model.User, error) { return nil, errors.New("l") }
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListUsersHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("empty list", func(t *testing.T) {
		t.Cleanup(restore)
		listUsers = func(context.Context, database.DB) ([]model.User, error) { return []model.User{}, nil }
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListUsersHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		listUsers = func(context.Context, database.DB) ([]model.User, error) {
			return []model.User{{ID: 1, Name: "Alice", Email: "a@x.com", CreatedAt: time.Now()}}, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodGet, "")
		require.NoError(t, ListUsersHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"id\":1")
		require.Contains(t, rec.Body.String(), "a@x.com")
		// 回應僅含投影欄位
		require.NotContains(t, rec.Body.String(), "created_at")
	})
}

func TestGetUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newParamCtx(e, http.MethodGet, "x", "")
		require.NoError(t, GetUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) { return nil, store.ErrUserNotFound }
		ctx, rec := newParamCtx(e, http.MethodGet, "1", "")
		require.NoError(t, GetUserHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Contains(t, rec.Body.String(), "User not found")
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(context.Context, database.DB, int) (*model.User, error) { return nil, errors.New("g") }
		ctx, rec := newParamCtx(e, http.MethodGet, "1", "")
		require.NoError(t, GetUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		getUserByID = func(_ context.Context, _ database.DB, id int) (*model.User, error) {
			require.Equal(t, 1, id)
			return &model.User{ID: 1, Name: "Alice", Email: "a@x.com"}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodGet, "1", "")
		require.NoError(t, GetUserHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "\"id\":1")
	})
}

func TestCreateUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		ctx, rec := newJSONCtx(e, http.MethodPost, "{")
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid request body")
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("name is required")}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"","email":"a@x.com"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Body.String(), "name is required")
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
			return nil, store.ErrEmailTaken
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Alice","email":"a@x.com"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Email already registered")
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		createUser = func(context.Context, database.DB, *model.User) (*model.User, error) {
			return nil, errors.New("c")
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Alice","email":"a@x.com"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success lowercases email", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{}
		var gotEmail string
		createUser = func(_ context.Context, _ database.DB, u *model.User) (*model.User, error) {
			gotEmail = u.Email
			u.ID = 1
			return u, nil
		}
		ctx, rec := newJSONCtx(e, http.MethodPost, `{"name":"Alice","email":"Alice@EXAMPLE.com"}`)
		require.NoError(t, CreateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "alice@example.com", gotEmail)
		require.Contains(t, rec.Body.String(), "\"id\":1")
	})
}

func TestUpdateUserHandler(t *testing.T) {
	e := echo.New()
	e.Validator = &stubValidator{}

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newParamCtx(e, http.MethodPut, "x", `{}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bind error", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newParamCtx(e, http.MethodPut, "1", "{")
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validate error", func(t *testing.T) {
		t.Cleanup(restore)
		e.Validator = &stubValidator{err: errors.New("v")}
		defer func() { e.Validator = &stubValidator{} }()
		ctx, rec := newParamCtx(e, http.MethodPut, "1", `{"name":""}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(context.Context, database.DB, int, *string, *string) (*model.User, error) {
			return nil, store.ErrUserNotFound
		}
		ctx, rec := newParamCtx(e, http.MethodPut, "99", `{"name":"Alicia"}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(context.Context, database.DB, int, *string, *string) (*model.User, error) {
			return nil, store.ErrEmailTaken
		}
		ctx, rec := newParamCtx(e, http.MethodPut, "1", `{"email":"b@x.com"}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "Email already registered")
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(context.Context, database.DB, int, *string, *string) (*model.User, error) {
			return nil, errors.New("u")
		}
		ctx, rec := newParamCtx(e, http.MethodPut, "1", `{"name":"x"}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("partial update keeps omitted fields", func(t *testing.T) {
		t.Cleanup(restore)
		var gotName, gotEmail *string
		updateUser = func(_ context.Context, _ database.DB, id int, name, email *string) (*model.User, error) {
			require.Equal(t, 1, id)
			gotName, gotEmail = name, email
			return &model.User{ID: 1, Name: *name, Email: "a@x.com"}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodPut, "1", `{"name":"Alicia"}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotName)
		require.Equal(t, "Alicia", *gotName)
		require.Nil(t, gotEmail)
		require.Contains(t, rec.Body.String(), "Alicia")
		require.Contains(t, rec.Body.String(), "a@x.com")
	})

	t.Run("email lowercased", func(t *testing.T) {
		t.Cleanup(restore)
		updateUser = func(_ context.Context, _ database.DB, _ int, _ *string, email *string) (*model.User, error) {
			require.NotNil(t, email)
			require.Equal(t, "new@x.com", *email)
			return &model.User{ID: 1, Name: "Alice", Email: *email}, nil
		}
		ctx, rec := newParamCtx(e, http.MethodPut, "1", `{"email":"New@X.com"}`)
		require.NoError(t, UpdateUserHandler(nil)(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDeleteUserHandler(t *testing.T) {
	e := echo.New()

	t.Run("bad id", func(t *testing.T) {
		t.Cleanup(restore)
		ctx, rec := newParamCtx(e, http.MethodDelete, "x", "")
		require.NoError(t, DeleteUserHandler(nil)(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteUser = func(context.Context, database.DB, int) error { return store.ErrUserNotFound }
		ctx, rec := newParamCtx(e, http.MethodDelete, "99", "")
		require.NoError(t, DeleteUserHandler(nil)(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store error", func(t *testing.T) {
		t.Cleanup(restore)
		deleteUser = func(context.Context, database.DB, int) error { return errors.New("d") }
		ctx, rec := newParamCtx(e, http.MethodDelete, "1", "")
		require.NoError(t, DeleteUserHandler(nil)(ctx))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		deleteUser = func(_ context.Context, _ database.DB, id int) error {
			require.Equal(t, 1, id)
			return nil
		}
		ctx, rec := newParamCtx(e, http.MethodDelete, "1", "")
		require.NoError(t, DeleteUserHandler(nil)(ctx))
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Empty(t, rec.Body.String())
	})
}
