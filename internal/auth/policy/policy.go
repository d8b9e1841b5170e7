// Package policy decides whether an identity may perform a named operation.
// Evaluation is a pure function of the identity and the policy; it performs
// no I/O. Unknown policy names are a configuration error surfaced when routes
// are registered, never a per-request outcome.
package policy

import (
	"fmt"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

// Decision is the outcome of evaluating a policy against an identity.
type Decision int

const (
	// Allow grants the request.
	Allow Decision = iota
	// DenyAnonymous rejects because the request carries no valid identity.
	DenyAnonymous
	// DenyRole rejects because the identity's role is outside the allowed set.
	DenyRole
)

// Policy is a named authorization rule.
type Policy struct {
	name  string
	roles map[domain.Role]struct{} // nil means any authenticated identity
}

// RequireAuthenticated builds a policy that any validated identity passes.
func RequireAuthenticated(name string) Policy {
	return Policy{name: name}
}

// RequireRole builds a policy that passes only identities whose role is in
// the given set.
func RequireRole(name string, roles ...domain.Role) Policy {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return Policy{name: name, roles: allowed}
}

// Name returns the policy's registered name.
func (p Policy) Name() string {
	return p.name
}

// Evaluate decides whether identity (nil for anonymous) passes the policy.
func (p Policy) Evaluate(identity *domain.Identity) Decision {
	if identity == nil {
		return DenyAnonymous
	}
	if p.roles == nil {
		return Allow
	}
	if _, ok := p.roles[identity.Role]; ok {
		return Allow
	}
	return DenyRole
}

// Registry holds the named policies known to the system.
type Registry struct {
	policies map[string]Policy
}

// Fallback is the policy applied to every operation that does not declare an
// explicit one: secure by default, authentication required.
const Fallback = "requireAuthenticated"

// Named policies matching the protected endpoint groups.
const (
	AdminOnly       = "adminOnly"
	DoctorsOnly     = "doctorsOnly"
	NursesOnly      = "nursesOnly"
	ClientsOnly     = "clientsOnly"
	ClientsOrAdmins = "clientsOrAdmins"
)

// NewRegistry seeds the registry with the system's named policies.
func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string]Policy)}
	r.add(RequireAuthenticated(Fallback))
	r.add(RequireRole(AdminOnly, domain.RoleAdmin))
	r.add(RequireRole(DoctorsOnly, domain.RoleDoctor))
	r.add(RequireRole(NursesOnly, domain.RoleNurse))
	r.add(RequireRole(ClientsOnly, domain.RoleClient))
	r.add(RequireRole(ClientsOrAdmins, domain.RoleClient, domain.RoleAdmin))
	return r
}

func (r *Registry) add(p Policy) {
	r.policies[p.name] = p
}

// Get looks up a policy by name. An unknown name is a wiring mistake and the
// caller is expected to fail startup on it.
func (r *Registry) Get(name string) (Policy, error) {
	p, ok := r.policies[name]
	if !ok {
		return Policy{}, fmt.Errorf("policy: unknown policy %q", name)
	}
	return p, nil
}

// MustGet is Get for route registration paths where an unknown policy name
// must abort startup.
func (r *Registry) MustGet(name string) Policy {
	p, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return p
}
