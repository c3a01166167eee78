// Package user implements the user profile wrapper of the services framework.
//
// A Profile wraps one user_profile row. It offers status predicates
// (banned, deleted, locked, valid), comparisons of the account type rank,
// a bulk attribute setter and password helpers. Profiles are never removed,
// deleting an account sets its deleted flag.
//
// The Profiles service loads profiles by id, user name or e-mail address
// and lists the accounts that have not been deleted:
//
//	profiles, err := user.NewProfiles(db, settingsStore)
//	p, err := profiles.LoadUsername(ctx, "admin", true)
//	if p.IsValid() && p.IsTypeOrHigher(user.TypeModerator) {
//	    // ...
//	}
//
//	for p, err := range profiles.LoadList(ctx, user.ListOptions{Limit: 20}) {
//	    // ...
//	}
package user
