package users

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"gemini-users/internal/api"
	"gemini-users/internal/database"
	"gemini-users/internal/model"
	"gemini-users/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	listUsers   = store.ListUsers
	getUserByID = store.GetUserByID
	createUser  = store.CreateUser
	updateUser  = store.UpdateUser
	deleteUser  = store.DeleteUser
)

func toResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// @Summary     List all users
// @Description 取得所有使用者
// @Tags        users
// @Produce     json
// @Success     200 {array}  api.UserResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		users, err := listUsers(c.Request().Context(), db)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		resp := make([]api.UserResponse, 0, len(users))
		for i := range users {
			resp = append(resp, toResponse(&users[i]))
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者資料
// @Tags        users
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     500 {object} api.ErrorResponse "伺服器錯誤"
// @Router      /users/{user_id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Create a new user
// @Description 建立新使用者 (Email 會自動轉小寫，重複時回 400)
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       body body api.CreateUserRequest true "使用者資料"
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse "Email 已註冊"
// @Failure     422 {object} api.ErrorResponse "驗證失敗"
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}

		req.Email = strings.ToLower(req.Email)

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:  req.Name,
			Email: req.Email,
		})
		if err != nil {
			if errors.Is(err, store.ErrEmailTaken) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Email already registered"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}

		return c.JSON(http.StatusCreated, toResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 部分更新使用者資料，未提供的欄位維持原值
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       user_id path int true "使用者 ID"
// @Param       body body api.UpdateUserRequest true "欲更新的欄位"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse "Email 已註冊"
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     422 {object} api.ErrorResponse "驗證失敗"
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/{user_id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusUnprocessableEntity, api.ErrorResponse{Message: err.Error()})
		}

		if req.Email != nil {
			lower := strings.ToLower(*req.Email)
			req.Email = &lower
		}

		user, err := updateUser(c.Request().Context(), db, id, req.Name, req.Email)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrUserNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found"})
			case errors.Is(err, store.ErrEmailTaken):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "Email already registered"})
			default:
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
			}
		}

		return c.JSON(http.StatusOK, toResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 根據 ID 永久刪除使用者
// @Tags        users
// @Param       user_id path int true "使用者 ID"
// @Success     204 "No Content"
// @Failure     400 {object} api.ErrorResponse "參數錯誤"
// @Failure     404 {object} api.ErrorResponse "使用者不存在"
// @Failure     500 {object} api.ErrorResponse "伺服器錯誤"
// @Router      /users/{user_id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("user_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "User not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: err.Error()})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
