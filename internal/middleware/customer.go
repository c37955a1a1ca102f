package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/storefront-api/internal/commerce"
)

// HeaderCustomerToken carries the customer access token obtained at sign-in.
const HeaderCustomerToken = "X-Customer-Access-Token"

// CustomerToken forwards the caller's customer access token to the backend
// through the request context. A bearer Authorization header is accepted
// too.
func CustomerToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := customerToken(c); token != "" {
			c.Request = c.Request.WithContext(commerce.WithCustomerToken(c.Request.Context(), token))
		}
		c.Next()
	}
}

// RequireCustomer rejects requests without a customer access token. The
// backend still decides whether the token is valid.
func RequireCustomer() gin.HandlerFunc {
	return func(c *gin.Context) {
		if commerce.CustomerToken(c.Request.Context()) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Code:    http.StatusUnauthorized,
				Message: "customer access token required",
				TraceID: c.GetString(ContextRequestID),
			})
			return
		}
		c.Next()
	}
}

func customerToken(c *gin.Context) string {
	if token := strings.TrimSpace(c.GetHeader(HeaderCustomerToken)); token != "" {
		return token
	}
	scheme, token, ok := strings.Cut(c.GetHeader("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}
