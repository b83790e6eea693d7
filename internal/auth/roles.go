package auth

// Role names as stored on the user record. The token's role claim carries one
// of these values; SUPER_ADMIN additionally sets the is_super_admin flag on
// the user itself.
const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleAdmin      = "Admin"
	RoleClient     = "Client"
	RoleDriver     = "Driver"
	RoleAllocator  = "Allocator"
	RoleAccounts   = "Accounts"
)

// RoleTenantAdmin is an organization-scoped role carried on memberships, not
// on users. A user whose active-organization membership holds this role is
// granted the TENANT_ADMIN table entry on top of their base role.
const RoleTenantAdmin = "TENANT_ADMIN"

// Permission keys. Dotted paths, matched by exact string equality; there is
// no prefix or wildcard semantics.
const (
	PermUsersView           = "users.view"
	PermUsersManage         = "users.manage"
	PermOrganizationsManage = "organizations.manage"

	PermDriversView     = "operations.drivers.view"
	PermDriversManage   = "operations.drivers.manage"
	PermAllocatorManage = "operations.allocator.manage"

	PermCustomersView   = "customers.view"
	PermCustomersManage = "customers.manage"

	PermVehiclesView   = "fleet.vehicles.view"
	PermVehiclesManage = "fleet.vehicles.manage"

	PermRateCardsManage  = "billing.ratecards.manage"
	PermInvoicesView     = "billing.invoices.view"
	PermInvoicesGenerate = "billing.invoices.generate"
	PermPayRunsView      = "billing.payruns.view"
	PermPayRunsBuild     = "billing.payruns.build"

	PermBroadcastsSend = "comms.broadcasts.send"
	PermMessagingSend  = "comms.messaging.send"

	PermComplianceAlertsView = "compliance.alerts.view"
	PermReportsExport        = "reports.export"
)

// RoleTable maps a role name to the permission keys it grants. The table is
// a deploy-time constant: built once at startup, injected into the Resolver,
// and never mutated afterwards.
type RoleTable map[string][]string

// DefaultRoleTable returns the built-in role grants. A fresh copy is returned
// on every call so callers cannot alias the shared literal.
func DefaultRoleTable() RoleTable {
	src := RoleTable{
		RoleAdmin: {
			PermUsersView, PermUsersManage, PermOrganizationsManage,
			PermDriversView, PermDriversManage, PermAllocatorManage,
			PermCustomersView, PermCustomersManage,
			PermVehiclesView, PermVehiclesManage,
			PermRateCardsManage, PermInvoicesView, PermInvoicesGenerate,
			PermPayRunsView, PermPayRunsBuild,
			PermBroadcastsSend, PermMessagingSend,
			PermComplianceAlertsView, PermReportsExport,
		},
		RoleClient: {
			PermDriversView, PermCustomersView,
			PermInvoicesView, PermMessagingSend,
		},
		RoleDriver: {
			PermVehiclesView, PermMessagingSend, PermComplianceAlertsView,
		},
		RoleAllocator: {
			PermAllocatorManage, PermDriversView, PermVehiclesView,
			PermCustomersView, PermBroadcastsSend, PermMessagingSend,
		},
		RoleAccounts: {
			PermRateCardsManage, PermInvoicesView, PermInvoicesGenerate,
			PermPayRunsView, PermPayRunsBuild, PermReportsExport,
			PermCustomersView,
		},
		RoleTenantAdmin: {
			PermUsersView, PermUsersManage,
			PermDriversView, PermDriversManage, PermAllocatorManage,
			PermCustomersView, PermCustomersManage,
			PermVehiclesView, PermVehiclesManage,
			PermBroadcastsSend, PermMessagingSend,
			PermComplianceAlertsView,
		},
	}
	table := make(RoleTable, len(src))
	for role, perms := range src {
		table[role] = append([]string(nil), perms...)
	}
	return table
}

// switchableRoles is the closed set of roles a session may re-assert via the
// role-switch endpoint. Deliberately smaller than the full role table: only
// the two front-facing personas are interchangeable.
var switchableRoles = map[string]struct{}{
	RoleAdmin:  {},
	RoleClient: {},
}

// IsSwitchableRole reports whether role may be requested at the role-switch
// endpoint.
func IsSwitchableRole(role string) bool {
	_, ok := switchableRoles[role]
	return ok
}
