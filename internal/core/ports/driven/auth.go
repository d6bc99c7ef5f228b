package driven

// TokenVerifier validates bearer tokens presented to the API.
type TokenVerifier interface {
	// VerifyToken checks a bearer token and returns the subject it was
	// issued to. Returns domain.ErrTokenExpired for expired tokens and
	// domain.ErrTokenInvalid for everything else that fails.
	VerifyToken(token string) (string, error)
}
