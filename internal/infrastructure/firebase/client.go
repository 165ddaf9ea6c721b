package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity is the subset of a verified platform identity token the app needs.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// Client verifies Firebase ID tokens minted by the mobile app's sign-in flow.
type Client struct {
	authClient *auth.Client
}

// NewClient initializes a Firebase app from a service-account credentials file
// and returns an ID-token verifier.
func NewClient(ctx context.Context, credentialsFile string) (*Client, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}

	return &Client{authClient: authClient}, nil
}

// VerifyIDToken validates the token's signature and expiry and returns the
// identity it asserts.
func (c *Client) VerifyIDToken(ctx context.Context, idToken string) (*Identity, error) {
	token, err := c.authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("failed to verify id token: %w", err)
	}

	identity := &Identity{UID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		identity.Name = name
	}
	return identity, nil
}
