package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/i18n"
	"github.com/jwalitptl/storefront-api/internal/middleware"
	"github.com/jwalitptl/storefront-api/internal/model"
	apperrors "github.com/jwalitptl/storefront-api/pkg/errors"
	"github.com/jwalitptl/storefront-api/pkg/httputil"
)

// maxMultipartMemory is how much of a multipart form is kept in memory.
const maxMultipartMemory = 1 << 20

// BaseHandler holds what every form handler needs.
type BaseHandler struct {
	Catalog *i18n.Catalog
}

// Translator returns the translator for the request locale.
func (h *BaseHandler) Translator(c *gin.Context) *i18n.Translator {
	return middleware.Translator(c, h.Catalog)
}

// FormValues parses a url-encoded or multipart form post.
func FormValues(c *gin.Context) (url.Values, error) {
	var err error
	switch ct := c.ContentType(); ct {
	case "multipart/form-data":
		err = c.Request.ParseMultipartForm(maxMultipartMemory)
	case "application/x-www-form-urlencoded", "":
		err = c.Request.ParseForm()
	default:
		return nil, apperrors.NewBadRequest(fmt.Sprintf("unsupported content type %q", ct), nil)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.NewBadRequest("form body too large", err)
		}
		return nil, apperrors.NewBadRequest("invalid form body", err)
	}
	if c.Request.PostForm == nil {
		return url.Values{}, nil
	}
	return c.Request.PostForm, nil
}

// RespondWithState writes the result of a form submission: 200 when it was
// accepted, 422 when it was not, and the error's status when the
// submission could not be processed.
func RespondWithState(c *gin.Context, state model.FormState, err error) {
	if err != nil {
		if state.LastResult == nil {
			httputil.RespondWithError(c, err)
			return
		}
		status := http.StatusInternalServerError
		if appErr, ok := apperrors.As(err); ok {
			status = appErr.StatusCode()
		}
		_ = c.Error(err)
		c.JSON(status, state)
		return
	}

	if state.Failed() {
		c.JSON(http.StatusUnprocessableEntity, state)
		return
	}
	c.JSON(http.StatusOK, state)
}
