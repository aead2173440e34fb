package auth

import (
	"context"
	"slices"
)

// Role is a coarse permission carried in agent tokens
type Role string

const (
	// RoleAdmin may edit tours, offers, hotels and see every booking
	RoleAdmin Role = "admin"
	// RoleAgent books on behalf of customers and sees offers targeted at them
	RoleAgent Role = "agent"
	// RoleSystem is given to callers using the API key
	RoleSystem Role = "system"
)

// SystemAgentID identifies API key callers in logs and booking rows
const SystemAgentID = "system"

// AgentContext holds the authenticated caller
type AgentContext struct {
	AgentID     string
	DisplayName string
	Roles       []Role
}

type contextKey string

const agentContextKey contextKey = "agentContext"

// WithAgentContext adds the caller to the context
func WithAgentContext(ctx context.Context, agent *AgentContext) context.Context {
	return context.WithValue(ctx, agentContextKey, agent)
}

// FromContext extracts the caller from the context
func FromContext(ctx context.Context) (*AgentContext, bool) {
	agent, ok := ctx.Value(agentContextKey).(*AgentContext)
	return agent, ok && agent != nil
}

// MustFromContext extracts the caller or panics
func MustFromContext(ctx context.Context) *AgentContext {
	agent, ok := FromContext(ctx)
	if !ok {
		panic("agent context not found in context")
	}
	return agent
}

// AgentIDFromContext returns the caller's agent id, or "" for anonymous requests
func AgentIDFromContext(ctx context.Context) string {
	if agent, ok := FromContext(ctx); ok {
		return agent.AgentID
	}
	return ""
}

func (a *AgentContext) HasRole(role Role) bool {
	return slices.Contains(a.Roles, role)
}

func (a *AgentContext) HasAnyRole(roles ...Role) bool {
	for _, role := range roles {
		if a.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin reports whether the caller may use admin endpoints
func (a *AgentContext) IsAdmin() bool {
	return a.HasAnyRole(RoleAdmin, RoleSystem)
}

// RolesAsStrings returns roles as a slice of strings
func (a *AgentContext) RolesAsStrings() []string {
	result := make([]string, len(a.Roles))
	for i, role := range a.Roles {
		result[i] = string(role)
	}
	return result
}
