package user

import "encoding/json"

// PermissionSet is the parsed permission map of a role. A zero value allows
// everything; see ParsePermissions.
type PermissionSet struct {
	allowAll bool
	perms    map[string]bool
}

// ParsePermissions decodes a role's stored permission JSON. Historical rows
// carry the map double-encoded (a JSON string containing JSON), so a first
// decode that yields a string is decoded once more. A payload that cannot be
// parsed at all fails open: the set allows everything rather than locking an
// operator out of the whole console over one bad row.
func ParsePermissions(raw string) PermissionSet {
	if raw == "" {
		return PermissionSet{allowAll: true}
	}

	data := []byte(raw)

	var inner string
	if err := json.Unmarshal(data, &inner); err == nil {
		data = []byte(inner)
	}

	var perms map[string]bool
	if err := json.Unmarshal(data, &perms); err != nil {
		return PermissionSet{allowAll: true}
	}
	return PermissionSet{perms: perms}
}

// Can reports whether the set grants a permission key.
func (p PermissionSet) Can(key string) bool {
	if p.allowAll {
		return true
	}
	return p.perms[key]
}

// AllowsAll reports whether the set is the fail-open "everything" set.
func (p PermissionSet) AllowsAll() bool {
	return p.allowAll
}
