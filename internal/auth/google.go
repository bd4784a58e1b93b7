package auth

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is what a verified Google ID token asserts about its holder.
type GoogleIdentity struct {
	Subject string
	Email   string
	Picture string
}

// IDTokenVerifier checks Google ID tokens issued for one OAuth client.
type IDTokenVerifier struct {
	clientID string
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

func NewIDTokenVerifier(clientID string) *IDTokenVerifier {
	return &IDTokenVerifier{clientID: clientID, validate: idtoken.Validate}
}

func (v *IDTokenVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	payload, err := v.validate(ctx, token, v.clientID)
	if err != nil {
		return nil, fmt.Errorf("validating google id token: %w", err)
	}

	id := &GoogleIdentity{Subject: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		id.Email = email
	}
	if picture, ok := payload.Claims["picture"].(string); ok {
		id.Picture = picture
	}
	return id, nil
}
