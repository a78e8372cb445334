package core

// Authorization checks. These run before any mutation and have no side
// effects on failure.

// RequireAdmin fails unless caller is the platform admin.
func RequireAdmin(cfg *PlatformConfig, caller Identity) error {
	if caller != cfg.Admin {
		return ErrUnauthorizedAdmin
	}
	return nil
}

// RequireIdentity fails unless caller matches the expected identity, e.g. the
// owner of an agent or the user behind a stake account.
func RequireIdentity(expected, caller Identity) error {
	if caller != expected {
		return ErrUnauthorizedUser
	}
	return nil
}
