package middleware

import (
	"encoding/json"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/usecase/auth"
)

// TokenVerifier checks a bearer token and yields the embedded identity.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// JWTAuth guards protected routes. A missing token short-circuits with 401,
// a malformed or expired one with 400, before any domain logic runs. On
// success the claims are forwarded to handlers via request headers.
func JWTAuth(verifier TokenVerifier, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				respondMessage(ctx, fasthttp.StatusUnauthorized, domain.ErrMissingToken.Message)
				return
			}

			claims, err := verifier.VerifyToken(tokenString)
			if err != nil {
				logger.Warn("invalid jwt token", zap.Error(err))
				respondMessage(ctx, fasthttp.StatusBadRequest, domain.ErrInvalidToken.Message)
				return
			}

			ctx.Request.Header.Set("X-User-ID", claims.UserID)
			ctx.Request.Header.Set("X-Username", claims.Username)

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}

func respondMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(transport.ErrorMessage{Message: message})
	ctx.SetBody(body)
}
