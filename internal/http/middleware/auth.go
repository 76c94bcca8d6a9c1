package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"

	"complaint-service/internal/auth"
	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

const (
	authorizationHeader = "Authorization"
	bearerPrefix        = "Bearer"
	principalContextKey = "principal"
	claimsContextKey    = "authClaims"
)

func Auth(parser *auth.Parser, denylist *auth.Denylist) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(authorizationHeader)
		if raw == "" {
			// Browsers cannot set headers on websocket upgrades; those
			// connections carry the token as a query parameter instead.
			if token := c.Query("token"); token != "" {
				raw = bearerPrefix + " " + token
			}
		}
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access denied. No token provided."})
			return
		}
		parts := strings.SplitN(raw, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}
		claims, err := parser.Parse(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token."})
			return
		}
		revoked, err := denylist.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		if revoked {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token."})
			return
		}

		principal := model.Principal{
			UserID:  claims.UserID,
			Email:   claims.Email,
			Role:    claims.Role,
			TokenID: claims.ID,
		}
		c.Set(principalContextKey, principal)
		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin re-reads the role from the database rather than trusting the
// token, so a demoted admin loses access before their token expires. Lookups
// go through a short-lived cache to keep the per-request cost down.
func RequireAdmin(users *repository.UserRepository, roles *gocache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := MustPrincipal(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "principal missing"})
			return
		}

		key := strconv.FormatInt(principal.UserID, 10)
		var role model.UserRole
		if cached, found := roles.Get(key); found {
			role = cached.(model.UserRole)
		} else {
			fetched, err := users.GetRole(c.Request.Context(), principal.UserID)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
				return
			}
			role = fetched
			roles.Set(key, role, gocache.DefaultExpiration)
		}

		if role != model.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Admin privileges required."})
			return
		}

		// The token role may be stale; the database one wins.
		principal.Role = role
		c.Set(principalContextKey, principal)
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	if !ok {
		return model.Principal{}, false
	}
	return principal, true
}

func MustClaims(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(claimsContextKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil, false
	}
	return claims, true
}
