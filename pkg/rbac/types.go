package rbac

import "strings"

// MaxInheritanceDepth bounds how deep roles may inherit from each other.
const MaxInheritanceDepth = 10

// Wildcard grants every permission, or every action of a resource when used
// as "resource:*".
const Wildcard = "*"

// Role is a set of permissions, plus the roles it inherits from.
type Role struct {
	Permissions []string `yaml:"permissions"`
	Inherits    []string `yaml:"inherits"`
}

// Can reports whether the role grants permission directly. Inherited
// permissions are resolved by the Authorizer.
func (r Role) Can(permission string) bool {
	return grants(r.Permissions, permission)
}

func grants(granted []string, permission string) bool {
	for _, g := range granted {
		if matches(g, permission) {
			return true
		}
	}
	return false
}

// matches compares "resource:action" permissions; "project:*" matches any
// project action.
func matches(granted, permission string) bool {
	if granted == Wildcard || granted == permission {
		return true
	}
	prefix, ok := strings.CutSuffix(granted, ":"+Wildcard)
	return ok && strings.HasPrefix(permission, prefix+":")
}
