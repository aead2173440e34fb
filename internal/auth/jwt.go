package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrNoSecret     = errors.New("token secret not configured")
)

// AgentClaims is the payload of an agent bearer token
type AgentClaims struct {
	Name  string   `json:"name,omitempty"`
	Roles []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// TokenValidator validates HS256 agent tokens issued by the agent portal
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a validator; an empty issuer skips the iss check
func NewTokenValidator(secret, issuer string) *TokenValidator {
	return &TokenValidator{secret: []byte(secret), issuer: issuer}
}

// ValidateToken verifies signature, expiry and issuer and returns the caller
func (v *TokenValidator) ValidateToken(tokenString string) (*AgentContext, error) {
	if len(v.secret) == 0 {
		return nil, ErrNoSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	claims := &AgentClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	agent := &AgentContext{
		AgentID:     claims.Subject,
		DisplayName: claims.Name,
		Roles:       parseRoles(claims.Roles),
	}
	if len(agent.Roles) == 0 {
		agent.Roles = []Role{RoleAgent}
	}
	return agent, nil
}

// IssueToken signs a token for agentID valid for ttl
func (v *TokenValidator) IssueToken(agentID, name string, roles []Role, ttl time.Duration) (string, error) {
	if len(v.secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := AgentClaims{
		Name:  name,
		Roles: make([]string, len(roles)),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   agentID,
			Issuer:    v.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	for i, r := range roles {
		claims.Roles[i] = string(r)
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
}

// parseRoles keeps known roles and drops the rest. Tokens cannot claim RoleSystem.
func parseRoles(raw []string) []Role {
	roles := make([]Role, 0, len(raw))
	for _, r := range raw {
		switch Role(r) {
		case RoleAdmin, RoleAgent:
			roles = append(roles, Role(r))
		}
	}
	return roles
}
