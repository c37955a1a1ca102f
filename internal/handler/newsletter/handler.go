package newsletter

import (
	"context"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/handler"
	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/model"
	"github.com/jwalitptl/storefront-api/pkg/httputil"
)

type Service interface {
	Subscribe(ctx context.Context, tr *i18n.Translator, values url.Values) (model.FormState, error)
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
	r.POST("/newsletter/subscribe", h.Subscribe)
}

func (h *Handler) Subscribe(c *gin.Context) {
	values, err := handler.FormValues(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	state, err := h.service.Subscribe(c.Request.Context(), h.Translator(c), values)
	handler.RespondWithState(c, state, err)
}
