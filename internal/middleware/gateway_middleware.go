package middleware

import (
	"net/http"
	"slices"

	"leo-chat/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// GatewayTokenHeader carries the token the API gateway signs for every proxied request.
const GatewayTokenHeader = "gatewaytoken"

// GatewayServices are the callers allowed to reach the chat API.
var GatewayServices = []string{"auth", "seller", "gig", "search", "buyer", "message", "notification", "review", "order", "chat"}

type GatewayClaims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// GatewayAuth rejects requests that were not signed by the gateway with secret.
func GatewayAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		token := c.GetHeader(GatewayTokenHeader)
		if token == "" || len(key) == 0 {
			abortUnauthorized(c, "request not coming from api gateway")
			return
		}

		claims := &GatewayClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !parsed.Valid {
			abortUnauthorized(c, "request not coming from api gateway")
			return
		}

		if !slices.Contains(GatewayServices, claims.ID) {
			abortUnauthorized(c, "invalid request")
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, httpdto.NewErrorResponse(msg, "UNAUTHORIZED"))
}
