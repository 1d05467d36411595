package auth

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity is the verified subject of a Google ID token.
type Identity struct {
	GoogleID string
	Email    string
}

// IdentityVerifier checks an ID token issued by the client-side Google
// sign-in flow.
type IdentityVerifier interface {
	Verify(ctx context.Context, idToken string) (*Identity, error)
}

// FirebaseVerifier verifies Firebase ID tokens with the Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

var _ IdentityVerifier = (*FirebaseVerifier)(nil)

// NewFirebaseVerifier initializes the Admin SDK from a service account file.
func NewFirebaseVerifier(ctx context.Context, credentialsPath string) (*FirebaseVerifier, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase auth: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

// Verify validates idToken and extracts the Google account it was minted for.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}

	identity := &Identity{}
	if email, ok := token.Claims["email"].(string); ok {
		identity.Email = email
	}
	if ids, ok := token.Firebase.Identities["google.com"].([]interface{}); ok && len(ids) > 0 {
		if googleID, ok := ids[0].(string); ok {
			identity.GoogleID = googleID
		}
	}
	if identity.GoogleID == "" {
		return nil, errors.New("token is not bound to a google account")
	}
	return identity, nil
}
