// Package rbac maps roles to "resource:action" permissions such as
// "project:delete". Roles inherit permissions from other roles and may be
// granted wildcards: "*" for everything, "project:*" for every project action.
//
// The caller's role travels in the context:
//
//	auth, err := rbac.LoadYAMLFile("roles.yaml")
//	ctx = rbac.WithRole(ctx, "planner")
//	if auth.Allows(ctx, "project:write") {
//		// ...
//	}
package rbac
