package utils

import (
	"context"
	"errors"

	"ev-storefront/internal/shared/contextkeys"
)

// Common context errors
var (
	ErrUserIDNotFound     = errors.New("userID not found in context")
	ErrUserIDNotString    = errors.New("userID in context is not a string")
	ErrUserEmailNotFound  = errors.New("userEmail not found in context")
	ErrUserEmailNotString = errors.New("userEmail in context is not a string")
	ErrUserRoleNotFound   = errors.New("userRole not found in context")
	ErrUserRoleNotString  = errors.New("userRole in context is not a string")
	ErrSessionIDNotFound  = errors.New("sessionID not found in context")
	ErrSessionIDNotString = errors.New("sessionID in context is not a string")
	ErrAuthTokenNotFound  = errors.New("authToken not found in context")
	ErrAuthTokenNotString = errors.New("authToken in context is not a string")
	ErrRequestIDNotFound  = errors.New("requestID not found in context")
	ErrRequestIDNotString = errors.New("requestID in context is not a string")
)

// GetUserIDFromContext retrieves the user ID from the context.
// It returns the user ID and an error if the user ID is not found or is not a string.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserIDKey)
	if val == nil {
		return "", ErrUserIDNotFound
	}
	userID, ok := val.(string)
	if !ok {
		return "", ErrUserIDNotString
	}
	return userID, nil
}

// GetUserEmailFromContext retrieves the user email from the context.
func GetUserEmailFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserEmailKey)
	if val == nil {
		return "", ErrUserEmailNotFound
	}
	userEmail, ok := val.(string)
	if !ok {
		return "", ErrUserEmailNotString
	}
	return userEmail, nil
}

// GetUserRoleFromContext retrieves the user role from the context.
func GetUserRoleFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.UserRoleKey)
	if val == nil {
		return "", ErrUserRoleNotFound
	}
	role, ok := val.(string)
	if !ok {
		return "", ErrUserRoleNotString
	}
	return role, nil
}

// GetSessionIDFromContext retrieves the gateway session ID from the context.
func GetSessionIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.SessionIDKey)
	if val == nil {
		return "", ErrSessionIDNotFound
	}
	sessionID, ok := val.(string)
	if !ok {
		return "", ErrSessionIDNotString
	}
	return sessionID, nil
}

// GetAuthTokenFromContext retrieves the backend bearer token from the context.
func GetAuthTokenFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.AuthTokenKey)
	if val == nil {
		return "", ErrAuthTokenNotFound
	}
	token, ok := val.(string)
	if !ok {
		return "", ErrAuthTokenNotString
	}
	return token, nil
}

// GetRequestIDFromContext retrieves the request ID from the context.
func GetRequestIDFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(contextkeys.RequestIDKey)
	if val == nil {
		return "", ErrRequestIDNotFound
	}
	requestID, ok := val.(string)
	if !ok {
		return "", ErrRequestIDNotString
	}
	return requestID, nil
}

// Context builder functions

// WithUserID adds user ID to context
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextkeys.UserIDKey, userID)
}

// WithUserEmail adds user email to context
func WithUserEmail(ctx context.Context, userEmail string) context.Context {
	return context.WithValue(ctx, contextkeys.UserEmailKey, userEmail)
}

// WithUserRole adds user role to context
func WithUserRole(ctx context.Context, role string) context.Context {
	return context.WithValue(ctx, contextkeys.UserRoleKey, role)
}

// WithSessionID adds the gateway session ID to context
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextkeys.SessionIDKey, sessionID)
}

// WithAuthToken adds the backend bearer token to context
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.AuthTokenKey, token)
}

// WithRequestID adds request ID to context
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextkeys.RequestIDKey, requestID)
}

// WithComponent adds component name to context
func WithComponent(ctx context.Context, component string) context.Context {
	return context.WithValue(ctx, contextkeys.ComponentKey, component)
}

// WithOperation adds operation name to context
func WithOperation(ctx context.Context, operation string) context.Context {
	return context.WithValue(ctx, contextkeys.OperationKey, operation)
}

// Optional getters that return default values instead of errors

// GetUserIDOrDefault retrieves the user ID from context or returns a default value
func GetUserIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserIDFromContext(ctx); err == nil {
		return v
	}
	return def
}

// GetUserRoleOrDefault retrieves the user role from context or returns a default value
func GetUserRoleOrDefault(ctx context.Context, def string) string {
	if v, err := GetUserRoleFromContext(ctx); err == nil {
		return v
	}
	return def
}

// GetAuthTokenOrDefault retrieves the backend token from context or returns a default value
func GetAuthTokenOrDefault(ctx context.Context, def string) string {
	if v, err := GetAuthTokenFromContext(ctx); err == nil {
		return v
	}
	return def
}

// GetSessionIDOrDefault retrieves the session ID from context or returns a default value
func GetSessionIDOrDefault(ctx context.Context, def string) string {
	if v, err := GetSessionIDFromContext(ctx); err == nil {
		return v
	}
	return def
}

// HasX checks
func HasUserID(ctx context.Context) bool {
	_, err := GetUserIDFromContext(ctx)
	return err == nil
}

func HasAuthToken(ctx context.Context) bool {
	_, err := GetAuthTokenFromContext(ctx)
	return err == nil
}

func HasSessionID(ctx context.Context) bool {
	_, err := GetSessionIDFromContext(ctx)
	return err == nil
}
