package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/application/user/usecases"
	"ticketsys/internal/shared/constants"
	"ticketsys/internal/shared/logger"
	"ticketsys/internal/shared/utils"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`
	Email    string `json:"email" binding:"omitempty,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AuthHandler struct {
	registerUC *usecases.RegisterUserUseCase
	loginUC    *usecases.LoginUseCase
	logoutUC   *usecases.LogoutUseCase
	getUserUC  *usecases.GetUserUseCase
	logger     logger.Interface
}

func NewAuthHandler(
	registerUC *usecases.RegisterUserUseCase,
	loginUC *usecases.LoginUseCase,
	logoutUC *usecases.LogoutUseCase,
	getUserUC *usecases.GetUserUseCase,
	logger logger.Interface,
) *AuthHandler {
	return &AuthHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		logoutUC:   logoutUC,
		getUserUC:  getUserUC,
		logger:     logger,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), usecases.RegisterUserCommand{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, result, "User registered successfully")
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for login", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), usecases.LoginCommand{
		Username:  req.Username,
		Password:  req.Password,
		IPAddress: c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetCookie("access_token", result.Token, maxAge, "/", "", false, true)

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"token":      result.Token,
		"expires_at": result.ExpiresAt,
		"user":       result.User,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{
		Actor: ActorMeta(c),
	}); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	c.SetCookie("access_token", "", -1, "/", "", false, true)

	utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	result, err := h.getUserUC.Execute(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", result)
}

// ActorMeta builds the audit metadata for the authenticated request.
func ActorMeta(c *gin.Context) appaudit.Meta {
	meta := appaudit.Meta{
		IPAddress: c.GetString(constants.ContextKeyClientIP),
		UserAgent: c.GetString(constants.ContextKeyUserAgent),
	}
	if meta.IPAddress == "" {
		meta.IPAddress = c.ClientIP()
	}
	if meta.UserAgent == "" {
		meta.UserAgent = c.Request.UserAgent()
	}
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			meta.ActorID = &id
		}
	}
	return meta
}

// CurrentUserID returns the authenticated user ID, zero when anonymous.
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(constants.ContextKeyUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
