package service

import (
	"strings"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/pkg/errors"
)

var ErrInvalidGoogleToken = errors.New("invalid Google ID token")

type GoogleIdentity struct {
	Sub   string
	Email string
	Name  string
}

// GoogleVerifier turns a Google ID token into the identity it asserts.
type GoogleVerifier interface {
	Verify(idToken string) (GoogleIdentity, error)
}

// IDTokenVerifier checks signature, issuer, audience and expiry against
// Google's published certificates.
type IDTokenVerifier struct {
	ClientID string
}

func (v IDTokenVerifier) Verify(idToken string) (GoogleIdentity, error) {
	idToken = strings.TrimSpace(idToken)
	if idToken == "" || v.ClientID == "" {
		return GoogleIdentity{}, ErrInvalidGoogleToken
	}
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.ClientID}); err != nil {
		return GoogleIdentity{}, errors.Wrap(ErrInvalidGoogleToken, err.Error())
	}
	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleIdentity{}, errors.Wrap(ErrInvalidGoogleToken, err.Error())
	}
	if claimSet.Sub == "" || claimSet.Email == "" {
		return GoogleIdentity{}, ErrInvalidGoogleToken
	}
	return GoogleIdentity{
		Sub:   claimSet.Sub,
		Email: strings.ToLower(strings.TrimSpace(claimSet.Email)),
		Name:  strings.TrimSpace(claimSet.Name),
	}, nil
}
