package ports

import "github.com/clinicore/patients-api/internal/core/domain"

// TokenIssuer signs a compact bearer token embedding the identity.
type TokenIssuer interface {
	Issue(identity domain.Identity) (string, error)
}

// TokenVerifier checks signature and expiry and recovers the identity.
// Failures are one of domain.ErrTokenSignatureInvalid, domain.ErrTokenExpired
// or domain.ErrTokenMalformed.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}
