package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/user"
	usererrors "go-hrm/internal/user/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(body, &env))
	return env
}

type fakeUserService struct {
	getAllFn          func(ctx context.Context) ([]user.UserResponse, error)
	getByIDFn         func(ctx context.Context, id string) (user.UserResponse, error)
	getMeFn           func(ctx context.Context) (user.UserResponse, error)
	getActiveFn       func(ctx context.Context) ([]user.UserResponse, error)
	getByDepartmentFn func(ctx context.Context, department string) ([]user.UserResponse, error)
	getByRoleFn       func(ctx context.Context, role string) ([]user.UserResponse, error)
	createFn          func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error)
	updateFn          func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error)
	deactivateFn      func(ctx context.Context, id string) error
	activateFn        func(ctx context.Context, id string) error
	changePasswordFn  func(ctx context.Context, userID, currentPassword, newPassword string) error
	resetPasswordFn   func(ctx context.Context, userID, newPassword string) error
	deleteFn          func(ctx context.Context, id string) error
}

func (f *fakeUserService) GetAll(ctx context.Context) ([]user.UserResponse, error) {
	return f.getAllFn(ctx)
}
func (f *fakeUserService) GetByID(ctx context.Context, id string) (user.UserResponse, error) {
	return f.getByIDFn(ctx, id)
}
func (f *fakeUserService) GetMe(ctx context.Context) (user.UserResponse, error) {
	return f.getMeFn(ctx)
}
func (f *fakeUserService) GetActive(ctx context.Context) ([]user.UserResponse, error) {
	return f.getActiveFn(ctx)
}
func (f *fakeUserService) GetByDepartment(ctx context.Context, department string) ([]user.UserResponse, error) {
	return f.getByDepartmentFn(ctx, department)
}
func (f *fakeUserService) GetByRole(ctx context.Context, role string) ([]user.UserResponse, error) {
	return f.getByRoleFn(ctx, role)
}
func (f *fakeUserService) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	return f.createFn(ctx, req)
}
func (f *fakeUserService) Update(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
	return f.updateFn(ctx, id, req)
}
func (f *fakeUserService) Deactivate(ctx context.Context, id string) error {
	return f.deactivateFn(ctx, id)
}
func (f *fakeUserService) Activate(ctx context.Context, id string) error {
	return f.activateFn(ctx, id)
}
func (f *fakeUserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return f.changePasswordFn(ctx, userID, currentPassword, newPassword)
}
func (f *fakeUserService) ResetPassword(ctx context.Context, userID, newPassword string) error {
	return f.resetPasswordFn(ctx, userID, newPassword)
}
func (f *fakeUserService) Delete(ctx context.Context, id string) error {
	return f.deleteFn(ctx, id)
}

func TestUserHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success department filter", func(t *testing.T) {
		svc := &fakeUserService{
			getByDepartmentFn: func(ctx context.Context, department string) ([]user.UserResponse, error) {
				assert.Equal(t, "Engineering", department)
				return []user.UserResponse{{ID: uuid.New().String(), Department: department}}, nil
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users?department=Engineering", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got []user.UserResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Len(t, got, 1)
	})

	t.Run("success pagination slices the result", func(t *testing.T) {
		svc := &fakeUserService{
			getAllFn: func(ctx context.Context) ([]user.UserResponse, error) {
				users := make([]user.UserResponse, 25)
				for i := range users {
					users[i] = user.UserResponse{ID: uuid.New().String()}
				}
				return users, nil
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users?page=3&page_size=10", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusOK, w.Code)
		var full struct {
			Data []user.UserResponse `json:"data"`
			Meta struct {
				Total      int64 `json:"total"`
				TotalPages int   `json:"totalPages"`
				Page       int   `json:"page"`
			} `json:"meta"`
		}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &full))
		assert.Len(t, full.Data, 5)
		assert.Equal(t, int64(25), full.Meta.Total)
		assert.Equal(t, 3, full.Meta.TotalPages)
		assert.Equal(t, 3, full.Meta.Page)
	})

	t.Run("negative invalid role filter", func(t *testing.T) {
		svc := &fakeUserService{
			getByRoleFn: func(ctx context.Context, role string) ([]user.UserResponse, error) {
				return nil, usererrors.ErrInvalidRole
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/users?role=INTERN", nil)

		h.GetAll(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decode(t, w.Body.Bytes())
		assert.False(t, env.Ok)
	})
}

func TestUserHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{
					ID:    uuid.New().String(),
					Email: req.Email,
					Role:  user.RoleEmployee,
				}, nil
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"siti@mail.com","password":"rahasia1","first_name":"Siti","last_name":"Rahma"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("negative duplicate email conflict", func(t *testing.T) {
		svc := &fakeUserService{
			createFn: func(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
				return user.UserResponse{}, usererrors.ErrEmailAlreadyExists
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"siti@mail.com","password":"rahasia1","first_name":"Siti","last_name":"Rahma"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decode(t, w.Body.Bytes())
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("negative short password rejected at binding", func(t *testing.T) {
		h := user.NewHandler(&fakeUserService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"email":"siti@mail.com","password":"abc","first_name":"Siti","last_name":"Rahma"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestUserHandler_UpdateMe(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success strips vacation days", func(t *testing.T) {
		actorID := uuid.New().String()
		svc := &fakeUserService{
			updateFn: func(ctx context.Context, id string, req user.UpdateUserRequest) (user.UserResponse, error) {
				assert.Equal(t, actorID, id)
				assert.Nil(t, req.VacationDays)
				assert.NotNil(t, req.Phone)
				return user.UserResponse{ID: id}, nil
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"phone":"0812000111","vacation_days":99}`
		c.Request = httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", actorID)

		h.UpdateMe(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestUserHandler_ChangePassword(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("negative wrong current password", func(t *testing.T) {
		svc := &fakeUserService{
			changePasswordFn: func(ctx context.Context, userID, currentPassword, newPassword string) error {
				return usererrors.ErrInvalidCurrentPassword
			},
		}
		h := user.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"current_password":"salah","new_password":"baru456"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/users/me/password", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("user_id", uuid.New().String())

		h.ChangePassword(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
