package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tempoaovivo/account-service/internal/query"
	"github.com/tempoaovivo/account-service/shared/cqrs"
	"github.com/tempoaovivo/account-service/shared/middleware"
	"github.com/tempoaovivo/account-service/shared/models"
)

// AuthQuerier defines the read-side operations used by AuthHandler.
type AuthQuerier interface {
	Login(context.Context, cqrs.LoginCommand) (*query.LoginResult, error)
}

// AuthHandler handles login. No command service needed.
type AuthHandler struct {
	queries AuthQuerier
	log     logrus.FieldLogger
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string           `json:"message"`
	Token   string           `json:"token"`
	User    *models.UserView `json:"user"`
}

func NewAuthHandler(queries AuthQuerier, log logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{queries: queries, log: log}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Empty fields go to the lookup like any other value and fail as
	// invalid credentials.
	res, err := h.queries.Login(c.Request.Context(), cqrs.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondWithServiceError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Message: "Login successful",
		Token:   res.Token,
		User:    res.User,
	})
}
