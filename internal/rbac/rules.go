package rbac

import "expert-test/internal/domain"

// Permissions checked at the router boundary.
const (
	PermTestTake       = "test:take"
	PermResultsSubmit  = "results:submit"
	PermResultsViewOwn = "results:view_own"
	PermProfileView    = "profile:view"
	PermUsersList      = "users:list"
	PermAdminAccess    = "admin:access"
)

// RolePermissions is the default policy.
var RolePermissions = map[string][]string{
	domain.RoleUser: {
		PermTestTake,
		PermResultsSubmit,
		PermResultsViewOwn,
		PermProfileView,
	},
	domain.RoleAdmin: {"*"},
}
