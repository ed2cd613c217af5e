package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"ticketsys/internal/application/user/usecases"
	"ticketsys/internal/interfaces/http/handlers"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
	"ticketsys/internal/shared/utils"
)

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" binding:"omitempty,max=150"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Role     *string `json:"role,omitempty"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

type UserHandler struct {
	listUsersUC  *usecases.ListUsersUseCase
	getUserUC    *usecases.GetUserUseCase
	updateUserUC *usecases.UpdateUserUseCase
	deleteUserUC *usecases.DeleteUserUseCase
	logger       logger.Interface
}

func NewUserHandler(
	listUsersUC *usecases.ListUsersUseCase,
	getUserUC *usecases.GetUserUseCase,
	updateUserUC *usecases.UpdateUserUseCase,
	deleteUserUC *usecases.DeleteUserUseCase,
	logger logger.Interface,
) *UserHandler {
	return &UserHandler{
		listUsersUC:  listUsersUC,
		getUserUC:    getUserUC,
		updateUserUC: updateUserUC,
		deleteUserUC: deleteUserUC,
		logger:       logger,
	}
}

// ListUsers handles GET /admin/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	result, err := h.listUsersUC.Execute(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// GetUser handles GET /admin/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	result, err := h.getUserUC.Execute(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// UpdateUser handles PATCH /admin/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update user", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateUserUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
		Actor:    handlers.ActorMeta(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "User updated successfully", result)
}

// SetRole handles POST /admin/users/:id/role
func (h *UserHandler) SetRole(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for set role", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.updateUserUC.Execute(c.Request.Context(), usecases.UpdateUserCommand{
		UserID: userID,
		Role:   &req.Role,
		Actor:  handlers.ActorMeta(c),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Role updated successfully", result)
}

// DeleteUser handles DELETE /admin/users/:id
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, err := parseUserID(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteUserUC.Execute(c.Request.Context(), usecases.DeleteUserCommand{
		UserID: userID,
		Actor:  handlers.ActorMeta(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func parseUserID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, errors.NewValidationError("Invalid user ID")
	}
	return uint(id), nil
}
