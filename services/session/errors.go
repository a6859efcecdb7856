package session

import "errors"

// User-facing authentication failures. Messages are what the admin UI shows
// verbatim, so they stay short and carry no implementation detail.
var (
	// ErrInvalidCredentials is returned on a 401 from the login endpoint.
	ErrInvalidCredentials = errors.New("Email ou mot de passe incorrect")

	// ErrBackendUnreachable is returned on a 404, which in practice means the
	// auth backend URL is wrong or the service is not deployed.
	ErrBackendUnreachable = errors.New("Service d'authentification injoignable. Vérifiez la configuration du backend")

	// ErrServerError is returned on a 500 from the auth backend.
	ErrServerError = errors.New("Erreur du serveur d'authentification. Veuillez réessayer plus tard")

	// ErrMalformedResponse is returned when the backend answers with a shape
	// we cannot use (missing tokens, missing expiry). Distinguishable from a
	// network failure.
	ErrMalformedResponse = errors.New("Réponse inattendue du serveur d'authentification")

	// ErrSessionExpired is returned when the stored session is gone or the
	// backend rejected the bearer token. Storage is cleared before it is
	// returned, so the next authentication check fails closed.
	ErrSessionExpired = errors.New("Session expirée. Veuillez vous reconnecter")
)
