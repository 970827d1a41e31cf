package backend

import (
	"context"
	"net/http"

	"ev-storefront/internal/session/domain/model"
	"ev-storefront/internal/shared/errors"
)

type credentialsPayload struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authData struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

// Login exchanges credentials for the backend's user record and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	var data authData
	_, err := c.post(ctx, "/login", "", credentialsPayload{Email: email, Password: password}, &data)
	if err != nil {
		return nil, "", translateAuthError(err, "Login failed")
	}
	return &data.User, data.Token, nil
}

// Register creates a backend account and returns the user plus bearer token.
func (c *Client) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	var data authData
	_, err := c.post(ctx, "/register", "", credentialsPayload{Name: name, Email: email, Password: password}, &data)
	if err != nil {
		return nil, "", translateAuthError(err, "Registration failed")
	}
	return &data.User, data.Token, nil
}

// Logout revokes the bearer token on the backend.
func (c *Client) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	_, err := c.post(ctx, "/logout", token, nil, nil)
	return err
}

// translateAuthError maps backend auth failures onto the shared taxonomy so
// handlers can pick the right status code.
func translateAuthError(err error, fallback string) error {
	apiErr, ok := AsAPIError(err)
	if !ok {
		return errors.NewUpstreamError(fallback).WithCause(err)
	}
	switch {
	case apiErr.IsUnauthorized():
		return errors.NewAuthenticationError(apiErr.Message).WithCause(err)
	case apiErr.StatusCode == http.StatusConflict:
		return errors.NewConflictError(apiErr.Message).WithCause(err)
	case apiErr.IsValidation():
		return errors.NewValidationError(apiErr.Message).WithCause(err)
	default:
		return errors.NewUpstreamError(apiErr.Message).WithCause(err)
	}
}
