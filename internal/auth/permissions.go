package auth

// CheckPermission confirms the required permission string is present in the
// verified claims. The absence of the permissions claim and the absence of
// the specific permission are distinct failures.
func CheckPermission(required string, claims *Claims) error {
	if claims == nil || !claims.HasPermissionsClaim() {
		return NoPermissionsClaim(msgNoPermissionsClaim)
	}

	if !claims.HasPermission(required) {
		return PermissionDenied(msgPermissionDenied)
	}

	return nil
}
