package auth

const (
	ContextKeyClaims = "auth_claims"

	jsonKeySuccess = "success"
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	headerAuthorization = "Authorization"
	headerKeyID         = "kid"

	bearerScheme    = "bearer"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization = "an authorization header was expected but is missing"
	msgBearerPrefixRequired = "the authorization header must be prefaced with Bearer"
	msgTokenNotFound        = "the token was not found in the authorization header"
	msgTooManyHeaderParts   = "the authorization header must be the bearer token specifically"
	msgNoKeyID              = "the token header does not contain a key ID"
	msgKeySetFetchFailed    = "the signing key set could not be fetched"
	msgKeyNotFound          = "an appropriate signing key was unable to be found"
	msgTokenExpired         = "the provided token is expired"
	msgInvalidClaims        = "the provided claims were incorrect; verify audience and issuer"
	msgTokenUnparseable     = "the authentication token was unable to be parsed"
	msgNoPermissionsClaim   = "permissions were not found within the token"
	msgPermissionDenied     = "permission was not found"
	msgClaimsNotInContext   = "claims not found in request context"
	msgAuthorizationFailed  = "authorization failed"
)
