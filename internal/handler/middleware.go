package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ctxUserID    = "user_id"
	ctxIsAdmin   = "is_admin"
	ctxRequestID = "request_id"

	headerRequestID = "X-Request-ID"
)

// Claims are the token claims issued by the storefront auth endpoints.
type Claims struct {
	UserID    string `json:"id"`
	IsAdmin   bool   `json:"isAdmin,omitempty"`
	IsBlocked bool   `json:"isBlocked,omitempty"`
	jwt.RegisteredClaims
}

// Auth verifies the HS256 bearer token and stores the user id in the gin context.
func Auth(secret []byte) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "No token, authorization denied"})
			return
		}

		var claims Claims
		_, err := parser.ParseWithClaims(tokenString, &claims, func(*jwt.Token) (any, error) {
			return secret, nil
		})
		if err != nil {
			message := "Token is not valid"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: message})
			return
		}

		if claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Token has no user id"})
			return
		}

		if claims.IsBlocked {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Message: "User is blocked"})
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxIsAdmin, claims.IsAdmin)
		c.Next()
	}
}

// Admin lets through requests whose token carries isAdmin. It must run after Auth.
func Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ctxIsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, errorResponse{Message: "Admin access required"})
			return
		}

		c.Next()
	}
}

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}

		c.Set(ctxRequestID, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

func RequestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString(ctxRequestID)),
		}
		if userID := c.GetString(ctxUserID); userID != "" {
			fields = append(fields, zap.String("user_id", userID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		switch status := c.Writer.Status(); {
		case status >= http.StatusInternalServerError:
			log.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			log.Info("request rejected", fields...)
		default:
			log.Debug("request served", fields...)
		}
	}
}
