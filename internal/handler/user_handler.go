package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/internal/service"
	"github.com/tempoaovivo/account-service/shared/cqrs"
	"github.com/tempoaovivo/account-service/shared/middleware"
	"github.com/tempoaovivo/account-service/shared/models"
)

// UserCommander defines the write-side operations used by UserHandler.
type UserCommander interface {
	Register(context.Context, cqrs.RegisterCommand) (int64, error)
	UpdateProfile(context.Context, cqrs.UpdateProfileCommand) error
}

// UserQuerier defines the read-side operations used by UserHandler.
type UserQuerier interface {
	GetProfile(context.Context, cqrs.GetProfileQuery) (*models.UserView, error)
}

// UserHandler routes requests to the command or query service as appropriate.
type UserHandler struct {
	commands UserCommander
	queries  UserQuerier
	log      logrus.FieldLogger
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	Zip      string `json:"zip"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Zip     string `json:"zip"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func NewUserHandler(commands UserCommander, queries UserQuerier, log logrus.FieldLogger) *UserHandler {
	return &UserHandler{commands: commands, queries: queries, log: log}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	id, err := h.commands.Register(c.Request.Context(), cqrs.RegisterCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
		City:     req.City,
		Zip:      req.Zip,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{Message: "User registered successfully", UserID: id})
}

// GetProfile answers 404 for ids that cannot exist as well as ids that do
// not exist; clients treat both as an expired session.
func (h *UserHandler) GetProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}
	if !h.owns(c, id) {
		respondWithServiceError(c, h.log, service.ErrForbidden)
		return
	}

	view, err := h.queries.GetProfile(c.Request.Context(), cqrs.GetProfileQuery{UserID: id})
	if errors.Is(err, service.ErrNotFound) {
		middleware.RespondWithError(c, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid user id")
		return
	}
	if !h.owns(c, id) {
		respondWithServiceError(c, h.log, service.ErrForbidden)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err = h.commands.UpdateProfile(c.Request.Context(), cqrs.UpdateProfileCommand{
		UserID:  id,
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Zip:     req.Zip,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated successfully"})
}

// owns is true when the route is unauthenticated or the bearer is user id.
func (h *UserHandler) owns(c *gin.Context, id int64) bool {
	if _, set := c.Get("userId"); !set {
		return true
	}
	requester, ok := middleware.GetUserID(c)
	return ok && requester == id
}
