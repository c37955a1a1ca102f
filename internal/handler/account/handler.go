package account

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/handler"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/middleware"
	"github.com/jwalitptl/storefront-api/internal/model"
	"github.com/jwalitptl/storefront-api/pkg/httputil"
)

type Service interface {
	ChangePasswordPage(ctx context.Context, tr *i18n.Translator) model.FormPage
	ChangePassword(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
	UpdateAccountPage(tr *i18n.Translator) model.FormPage
	UpdateAccount(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
	AddressPage(tr *i18n.Translator) model.FormPage
	AddAddress(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
	UpdateAddress(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
	DeleteAddress(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
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

// RegisterRoutes mounts the account pages. They act on the signed-in
// customer, so a customer access token is required.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	account := r.Group("/account", middleware.RequireCustomer())
	{
		account.GET("/settings", h.GetSettings)
		account.POST("/settings", h.UpdateAccount)
		account.GET("/change-password", h.GetChangePassword)
		account.POST("/change-password", h.ChangePassword)

		account.GET("/addresses", h.GetAddresses)
		account.POST("/addresses", h.AddAddress)
		account.POST("/addresses/:id", h.UpdateAddress)
		account.POST("/addresses/:id/delete", h.DeleteAddress)
	}
}

func (h *Handler) GetSettings(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.UpdateAccountPage(h.Translator(c)))
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.UpdateAccount(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}

func (h *Handler) GetChangePassword(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.ChangePasswordPage(c.Request.Context(), h.Translator(c)))
}

func (h *Handler) ChangePassword(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.ChangePassword(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}

func (h *Handler) GetAddresses(c *gin.Context) {
	httputil.RespondWithSuccess(c, h.service.AddressPage(h.Translator(c)))
}

func (h *Handler) AddAddress(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	// New addresses have no id yet.
	if values.Get("id") == "" {
		values.Set("id", "new")
	}
	state, err := h.service.AddAddress(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}

func (h *Handler) UpdateAddress(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	values.Set("id", c.Param("id"))
	state, err := h.service.UpdateAddress(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}

func (h *Handler) DeleteAddress(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	values.Set("id", c.Param("id"))
	state, err := h.service.DeleteAddress(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}
