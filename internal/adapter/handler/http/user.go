package http

import (
	"time"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type registerRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID        uint64    `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Phone:     u.Phone,
		Name:      u.Name,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	req := registerRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Phone:    req.Phone,
		Name:     req.Name,
		Password: hashed,
		Role:     domain.RoleCustomer,
	}

	_, err = uh.service.RegisterUser(ctx, user)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Phone, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccessWithStatus(ctx, loginResponse{Token: token}, 201)
}

type loginResponse struct {
	Token string `json:"token"`
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	req := loginRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Phone, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, loginResponse{Token: token})
}

func (uh *UserHandler) Profile(ctx *gin.Context) {
	user, err := uh.service.GetUser(ctx, getAuthPayload(ctx).UserID)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, newUserResponse(user))
}

type listUsersResponse struct {
	Users []userResponse `json:"users"`
	Total int            `json:"total"`
}

func (uh *UserHandler) ListUsers(ctx *gin.Context) {
	limit, offset := paginationParams(ctx)

	list, total, err := uh.service.ListUsers(ctx, limit, offset)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	result := listUsersResponse{
		Users: make([]userResponse, 0, len(list)),
		Total: total,
	}
	for _, u := range list {
		result.Users = append(result.Users, newUserResponse(u))
	}

	uh.handleSuccess(ctx, result)
}
