package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskhive/backend/api/transport"
	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondMessage(ctx *fasthttp.RequestCtx, status int, message string) {
	h.respondJSON(ctx, status, transport.ErrorMessage{Message: message})
}

// respondError maps domain errors onto the API contract: missing token 401,
// every expected domain failure 400, anything unexpected a generic 500.
func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	var dErr *domain.Error
	if errors.As(err, &dErr) && dErr.Code != domain.ErrCodeInternal {
		status := http.StatusBadRequest
		if dErr.Code == domain.ErrCodeUnauthorized {
			status = http.StatusUnauthorized
		}
		h.respondMessage(ctx, status, dErr.Message)
		return
	}

	h.logger.Error("request failed",
		zap.String("path", string(ctx.Path())),
		zap.Error(err))
	h.respondMessage(ctx, http.StatusInternalServerError, "Server error")
}

// userID returns the authenticated caller id injected by the auth
// middleware, answering 401 itself when it is absent.
func (h baseHandler) userID(ctx *fasthttp.RequestCtx) string {
	userID := string(ctx.Request.Header.Peek("X-User-ID"))
	if userID == "" {
		h.respondMessage(ctx, http.StatusUnauthorized, domain.ErrMissingToken.Message)
	}
	return userID
}
