package auth

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/handler"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/model"
	apperrors "github.com/jwalitptl/storefront-api/pkg/errors"
	"github.com/jwalitptl/storefront-api/pkg/httputil"
)

type Service interface {
	Login(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
	ForgotPassword(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
	ResetPasswordPage(ctx context.Context, tr *i18n.Translator) model.FormPage
	ResetPassword(ctx context.Context, tr *i18n.Translator, token model.ResetPasswordToken, values url.Values) (model.FormState, error)
	RegisterPage(ctx context.Context, tr *i18n.Translator) (model.FormPage, error)
	Register(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
}

type Handler struct {
	handler.BaseHandler
	service Service
}

func NewHandler(service Service, catalog *i18n.Catalog) *Handler {
	return &Handler{
		BaseHandler: handler.BaseHandler{Catalog: catalog},
		service:     service,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/login", h.Login)
	r.POST("/login/forgot-password", h.ForgotPassword)
	r.GET("/change-password", h.GetResetPassword)
	r.POST("/change-password", h.ResetPassword)
	r.GET("/register", h.GetRegister)
	r.POST("/register", h.Register)
}

func (h *Handler) Login(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.Login(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}

func (h *Handler) ForgotPassword(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.ForgotPassword(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}

// resetPasswordToken binds the customer id and token of a reset link, which
// come in the c and t query parameters.
func resetPasswordToken(c *gin.Context) (model.ResetPasswordToken, error) {
	var token model.ResetPasswordToken
	if err := c.ShouldBindQuery(&token); err != nil {
		return token, apperrors.NewBadRequest("invalid reset password link", err)
	}
	return token, nil
}

func (h *Handler) GetResetPassword(c *gin.Context) {
	if _, err := resetPasswordToken(c); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, h.service.ResetPasswordPage(c.Request.Context(), h.Translator(c)))
}

// ResetPassword completes a reset link.
func (h *Handler) ResetPassword(c *gin.Context) {
	token, err := resetPasswordToken(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.ResetPassword(c.Request.Context(), h.Translator(c), token, values)
	handler.RespondWithState(c, state, err)
}

func (h *Handler) GetRegister(c *gin.Context) {
	page, err := h.service.RegisterPage(c.Request.Context(), h.Translator(c))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, page)
}

func (h *Handler) Register(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.Register(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}
