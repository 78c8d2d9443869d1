package services

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// NewHTTPClient returns the client used for every request to the processing service.
//
// When token is non-empty each request carries it as a bearer token.
func NewHTTPClient(ctx context.Context, token string) *http.Client {
	if token == "" {
		return &http.Client{}
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}
