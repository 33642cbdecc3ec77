package google

import (
	"context"
	"fmt"

	"github.com/classpoll/api/internal/core/ports"
	"google.golang.org/api/idtoken"
)

// Verifier validates Google Identity credentials against the configured
// OAuth client id.
type Verifier struct{}

func NewVerifier() ports.TokenVerifier {
	return &Verifier{}
}

func (v *Verifier) Verify(ctx context.Context, token string, clientID string) (*ports.TokenPayload, error) {
	payload, err := idtoken.Validate(ctx, token, clientID)
	if err != nil {
		return nil, fmt.Errorf("credential rejected: %w", err)
	}

	email, err := stringClaim(payload, "email")
	if err != nil {
		return nil, err
	}
	name, err := stringClaim(payload, "name")
	if err != nil {
		return nil, err
	}

	return &ports.TokenPayload{Email: email, Name: name}, nil
}

func stringClaim(payload *idtoken.Payload, key string) (string, error) {
	value, ok := payload.Claims[key].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("credential is missing the %s claim", key)
	}
	return value, nil
}
