package policy

import (
	"testing"

	"github.com/hospitalhq/records-system/internal/core/domain"
)

func identityWithRole(r domain.Role) *domain.Identity {
	return &domain.Identity{UserID: 1, Name: "u", Role: r}
}

func TestRequireAuthenticated(t *testing.T) {
	p := RequireAuthenticated("any")

	if got := p.Evaluate(nil); got != DenyAnonymous {
		t.Fatalf("anonymous: expected DenyAnonymous, got %v", got)
	}
	for _, r := range []domain.Role{domain.RoleAdmin, domain.RoleDoctor, domain.RoleNurse, domain.RoleClient} {
		if got := p.Evaluate(identityWithRole(r)); got != Allow {
			t.Fatalf("role %s: expected Allow, got %v", r, got)
		}
	}
}

func TestRequireRole(t *testing.T) {
	p := RequireRole("adminOnly", domain.RoleAdmin)

	if got := p.Evaluate(identityWithRole(domain.RoleAdmin)); got != Allow {
		t.Fatalf("admin: expected Allow, got %v", got)
	}
	if got := p.Evaluate(identityWithRole(domain.RoleClient)); got != DenyRole {
		t.Fatalf("client: expected DenyRole, got %v", got)
	}
	if got := p.Evaluate(nil); got != DenyAnonymous {
		t.Fatalf("anonymous: expected DenyAnonymous, got %v", got)
	}
}

func TestRequireRole_Set(t *testing.T) {
	p := RequireRole("clientsOrAdmins", domain.RoleClient, domain.RoleAdmin)

	if got := p.Evaluate(identityWithRole(domain.RoleClient)); got != Allow {
		t.Fatalf("client: expected Allow, got %v", got)
	}
	if got := p.Evaluate(identityWithRole(domain.RoleAdmin)); got != Allow {
		t.Fatalf("admin: expected Allow, got %v", got)
	}
	if got := p.Evaluate(identityWithRole(domain.RoleNurse)); got != DenyRole {
		t.Fatalf("nurse: expected DenyRole, got %v", got)
	}
}

func TestRegistry_NamedPolicies(t *testing.T) {
	r := NewRegistry()

	for _, name := range []string{Fallback, AdminOnly, DoctorsOnly, NursesOnly, ClientsOnly, ClientsOrAdmins} {
		p, err := r.Get(name)
		if err != nil {
			t.Fatalf("Get(%q) returned error: %v", name, err)
		}
		if p.Name() != name {
			t.Fatalf("expected name %q, got %q", name, p.Name())
		}
	}

	if _, err := r.Get("noSuchPolicy"); err == nil {
		t.Fatalf("expected error for unknown policy name")
	}
}

func TestRegistry_MustGetPanicsOnUnknown(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unknown policy name")
		}
	}()
	NewRegistry().MustGet("typoPolicy")
}
