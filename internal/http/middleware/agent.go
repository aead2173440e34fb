package middleware

import (
	"context"
	"net/http"

	"github.com/voyagedesk/travel-api/internal/auth"
)

type agentHolder struct {
	agent *auth.AgentContext
}

type holderKey struct{}

func withAgentHolder(ctx context.Context, h *agentHolder) context.Context {
	return context.WithValue(ctx, holderKey{}, h)
}

// TrackAgent hands the authenticated agent back to Logging. Mount it after the
// auth middleware of a route group.
func TrackAgent(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, ok := r.Context().Value(holderKey{}).(*agentHolder); ok {
			if agent, ok := auth.FromContext(r.Context()); ok {
				h.agent = agent
			}
		}
		next.ServeHTTP(w, r)
	})
}
