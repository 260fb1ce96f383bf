package auth

import (
	"strings"
)

// ExtractBearerToken parses the bearer credential out of an Authorization
// header value. Pure parsing, no side effects.
func ExtractBearerToken(header string) (string, error) {
	if header == "" {
		return "", MissingHeader(msgMissingAuthorization)
	}

	parts := strings.Fields(header)
	if len(parts) == 0 {
		return "", MalformedHeader(msgBearerPrefixRequired)
	}

	if strings.ToLower(parts[0]) != bearerScheme {
		return "", MalformedHeader(msgBearerPrefixRequired)
	}

	if len(parts) == 1 {
		return "", MalformedHeader(msgTokenNotFound)
	}

	if len(parts) > authHeaderParts {
		return "", MalformedHeader(msgTooManyHeaderParts)
	}

	return parts[1], nil
}
