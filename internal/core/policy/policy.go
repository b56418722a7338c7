// Package policy declares which roles may perform each guarded operation.
// The table is consulted by the authorization middleware after the caller's
// role and status have been re-resolved from the user directory, so a role
// change or a block takes effect on the very next request regardless of
// what an outstanding token claims.
package policy

import "github.com/SDNATH-Git/blood-donation-serverset/internal/core/domain"

// Operation identifies one guarded action
type Operation string

const (
	// user directory
	OpViewOwnProfile   Operation = "user.view_own"
	OpUpdateOwnProfile Operation = "user.update_own"
	OpListUsers        Operation = "user.list"
	OpSetUserStatus    Operation = "user.set_status"
	OpSetUserRole      Operation = "user.set_role"

	// donation requests
	OpCreateRequest     Operation = "request.create"
	OpViewOwnRequests   Operation = "request.view_own"
	OpModifyRequest     Operation = "request.modify"
	OpAcceptRequest     Operation = "request.accept"
	OpSetRequestStatus  Operation = "request.set_status"
	OpListAllRequests   Operation = "request.list_all"
	OpVolunteerRequests Operation = "request.volunteer_queue"

	// fund ledger
	OpRecordFund Operation = "fund.record"
	OpListFunds  Operation = "fund.list"

	// blogs
	OpCreateBlog    Operation = "blog.create"
	OpListBlogs     Operation = "blog.list"
	OpModifyBlog    Operation = "blog.modify"
	OpPublishBlog   Operation = "blog.publish"
	OpDeleteBlog    Operation = "blog.delete"

	// admin dashboard
	OpViewDashboard Operation = "dashboard.view"
)

// Rule says who may perform an operation. OwnerOverride marks operations
// where the resource owner is allowed through even without a listed role;
// the service layer supplies the ownership check.
type Rule struct {
	Roles         []domain.Role
	OwnerOverride bool
}

var anyRole = []domain.Role{domain.RoleDonor, domain.RoleVolunteer, domain.RoleAdmin}

var table = map[Operation]Rule{
	OpViewOwnProfile:   {Roles: anyRole},
	OpUpdateOwnProfile: {Roles: anyRole},
	OpListUsers:        {Roles: []domain.Role{domain.RoleAdmin}},
	OpSetUserStatus:    {Roles: []domain.Role{domain.RoleAdmin}},
	OpSetUserRole:      {Roles: []domain.Role{domain.RoleAdmin}},

	OpCreateRequest:     {Roles: anyRole},
	OpViewOwnRequests:   {Roles: anyRole},
	OpModifyRequest:     {Roles: []domain.Role{domain.RoleAdmin}, OwnerOverride: true},
	OpAcceptRequest:     {Roles: anyRole},
	OpSetRequestStatus:  {Roles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}},
	OpListAllRequests:   {Roles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}},
	OpVolunteerRequests: {Roles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}},

	OpRecordFund: {Roles: anyRole},
	OpListFunds:  {Roles: anyRole},

	OpCreateBlog:  {Roles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}},
	OpListBlogs:   {Roles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}},
	OpModifyBlog:  {Roles: []domain.Role{domain.RoleVolunteer, domain.RoleAdmin}},
	OpPublishBlog: {Roles: []domain.Role{domain.RoleAdmin}},
	OpDeleteBlog:  {Roles: []domain.Role{domain.RoleAdmin}},

	OpViewDashboard: {Roles: []domain.Role{domain.RoleAdmin}},
}

// Lookup returns the rule for an operation. Unknown operations deny
// everything.
func Lookup(op Operation) Rule {
	return table[op]
}

// Allows reports whether the capability's role passes the rule. Ownership
// overrides are not decided here.
func (r Rule) Allows(cap domain.Capability) bool {
	return cap.HasRole(r.Roles...)
}
