package rbac

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Authorizer answers permission checks for a fixed set of roles. Inherited
// permissions are resolved once, so it is safe for concurrent use.
type Authorizer struct {
	permissions map[string][]string
	roles       []string
}

// NewAuthorizer validates the inheritance graph of roles and flattens it.
func NewAuthorizer(roles map[string]Role) (*Authorizer, error) {
	depths := make(map[string]int, len(roles))
	for _, name := range slices.Sorted(maps.Keys(roles)) {
		if _, err := depth(name, roles, depths, nil); err != nil {
			return nil, err
		}
	}

	a := &Authorizer{permissions: make(map[string][]string, len(roles))}
	for name := range roles {
		a.permissions[name] = collect(name, roles, map[string]bool{})
	}
	a.roles = slices.Sorted(maps.Keys(roles))
	slices.SortStableFunc(a.roles, func(x, y string) int { return depths[x] - depths[y] })
	return a, nil
}

// Can returns nil when role holds permission, directly or inherited.
func (a *Authorizer) Can(role, permission string) error {
	granted, ok := a.permissions[role]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRole, role)
	}
	if !grants(granted, permission) {
		return fmt.Errorf("%w: %q lacks %q", ErrInsufficientPermissions, role, permission)
	}
	return nil
}

// CanFromContext checks the role stored in ctx.
func (a *Authorizer) CanFromContext(ctx context.Context, permission string) error {
	role, ok := RoleFromContext(ctx)
	if !ok {
		return errors.Join(ErrRoleNotInContext, ErrInsufficientPermissions)
	}
	return a.Can(role, permission)
}

// Allows is CanFromContext as a capability check.
func (a *Authorizer) Allows(ctx context.Context, permission string) bool {
	return a.CanFromContext(ctx, permission) == nil
}

// Roles lists role names, base roles first.
func (a *Authorizer) Roles() []string {
	return slices.Clone(a.roles)
}

// depth returns how many levels name inherits through, failing on cycles,
// unknown parents and graphs deeper than MaxInheritanceDepth.
func depth(name string, roles map[string]Role, depths map[string]int, path []string) (int, error) {
	if d, ok := depths[name]; ok {
		return d, nil
	}
	if slices.Contains(path, name) {
		return 0, fmt.Errorf("%w: %v -> %s", ErrCircularInheritance, path, name)
	}
	role, ok := roles[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q is inherited but not defined", ErrInvalidRole, name)
	}

	path = append(path, name)
	d := 0
	for _, parent := range role.Inherits {
		pd, err := depth(parent, roles, depths, path)
		if err != nil {
			return 0, err
		}
		d = max(d, pd+1)
	}
	if d > MaxInheritanceDepth {
		return 0, fmt.Errorf("%w: %q inherits through %d levels, max %d", ErrInheritanceTooDeep, name, d, MaxInheritanceDepth)
	}
	depths[name] = d
	return d, nil
}

func collect(name string, roles map[string]Role, seen map[string]bool) []string {
	if seen[name] {
		return nil
	}
	seen[name] = true

	role := roles[name]
	out := slices.Clone(role.Permissions)
	for _, parent := range role.Inherits {
		out = append(out, collect(parent, roles, seen)...)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
