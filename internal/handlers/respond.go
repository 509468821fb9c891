// Package handlers exposes the catalog over HTTP with gin.
package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/config"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/logging"
)

// CallerHeader identifies the acting landlord on every catalog request.
const CallerHeader = "X-User-ID"

const callerKey = "callerID"

// RequireCaller rejects requests without a caller id.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(CallerHeader))
		if id == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing " + CallerHeader + " header"})
			return
		}
		c.Set(callerKey, id)
		c.Next()
	}
}

// AdminTokenHeader carries the shared admin token.
const AdminTokenHeader = "X-Admin-Token"

// RequireAdmin admits callers listed in cfg.UserIDs or presenting cfg.Token.
// It must run after RequireCaller.
func RequireAdmin(cfg config.AdminConfig) gin.HandlerFunc {
	allowed := make(map[string]bool, len(cfg.UserIDs))
	for _, id := range cfg.UserIDs {
		if id = strings.TrimSpace(id); id != "" {
			allowed[id] = true
		}
	}
	return func(c *gin.Context) {
		if isAdmin(c, allowed, cfg.Token) {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
	}
}

// RequireSelfOrAdmin admits the caller named by the route parameter param
// and admins.
func RequireSelfOrAdmin(param string, cfg config.AdminConfig) gin.HandlerFunc {
	admin := RequireAdmin(cfg)
	return func(c *gin.Context) {
		if c.Param(param) == callerID(c) {
			c.Next()
			return
		}
		admin(c)
	}
}

func isAdmin(c *gin.Context, allowed map[string]bool, token string) bool {
	if allowed[callerID(c)] {
		return true
	}
	got := c.GetHeader(AdminTokenHeader)
	return token != "" && got != "" && subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

func callerID(c *gin.Context) string {
	return c.GetString(callerKey)
}

// statusFor maps a service error category to an HTTP status.
func statusFor(err error) int {
	switch catalog.Category(err) {
	case catalog.ErrNotFound:
		return http.StatusNotFound
	case catalog.ErrValidation:
		return http.StatusBadRequest
	case catalog.ErrUpload:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as {"error": ...}. Storage and upload failures
// only expose their category; details stay in the log.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	msg := publicMessage(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).Error("Request failed",
			"method", c.Request.Method, "path", c.FullPath(), "status", status, "error", err)
	}
	c.JSON(status, gin.H{"error": msg})
}

// publicMessage is the client-facing text of err.
func publicMessage(err error) string {
	switch cat := catalog.Category(err); cat {
	case nil:
		return "internal error"
	case catalog.ErrStorage, catalog.ErrUpload:
		return cat.Error()
	}
	return err.Error()
}

// badRequest reports a binding failure.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": catalog.ErrValidation.Error() + ": " + err.Error()})
}
