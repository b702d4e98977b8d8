package domain

import (
	"errors"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		raw     string
		want    Role
		wantErr bool
	}{
		{"owner", RoleOwner, false},
		{"admin", RoleAdmin, false},
		{"member", RoleMember, false},
		{" Admin ", RoleAdmin, false},
		{"OWNER", RoleOwner, false},
		{"", "", true},
		{"superadmin", "", true},
	}

	for _, tc := range cases {
		got, err := ParseRole(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidRole) {
				t.Fatalf("ParseRole(%q): expected ErrInvalidRole, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseRole(%q): unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseRole(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestParseType(t *testing.T) {
	cases := []struct {
		raw     string
		want    Type
		wantErr bool
	}{
		{"manager", TypeManager, false},
		{"songwriter", TypeSongwriter, false},
		{" Songwriter ", TypeSongwriter, false},
		{"", "", true},
		{"producer", "", true},
	}

	for _, tc := range cases {
		got, err := ParseType(tc.raw)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidType) {
				t.Fatalf("ParseType(%q): expected ErrInvalidType, got %v", tc.raw, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseType(%q): unexpected error %v", tc.raw, err)
		}
		if got != tc.want {
			t.Fatalf("ParseType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestChangeRoleOwnerImmutable(t *testing.T) {
	m := &Member{Role: RoleOwner, Type: TypeManager}

	if err := m.ChangeRole(RoleAdmin); !errors.Is(err, ErrOwnerRoleImmutable) {
		t.Fatalf("expected ErrOwnerRoleImmutable, got %v", err)
	}
	if m.Role != RoleOwner {
		t.Fatalf("owner role mutated to %q", m.Role)
	}
}

func TestChangeRole(t *testing.T) {
	m := &Member{Role: RoleMember, Type: TypeSongwriter}

	if err := m.ChangeRole(RoleAdmin); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Role != RoleAdmin {
		t.Fatalf("role = %q, want admin", m.Role)
	}

	if err := m.ChangeRole("boss"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestChangeTypeOwnerSelfManaged(t *testing.T) {
	m := &Member{Role: RoleOwner, Type: TypeManager}

	if err := m.ChangeType(TypeSongwriter); !errors.Is(err, ErrOwnerSelfManaged) {
		t.Fatalf("expected ErrOwnerSelfManaged, got %v", err)
	}

	// The owner's own path is allowed to change type.
	if err := m.ChangeOwnType(TypeSongwriter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Type != TypeSongwriter {
		t.Fatalf("type = %q, want songwriter", m.Type)
	}
	if m.Role != RoleOwner {
		t.Fatalf("type change touched role: %q", m.Role)
	}
}

func TestChangeTypeNonOwner(t *testing.T) {
	m := &Member{Role: RoleMember, Type: TypeManager}

	if err := m.ChangeType(TypeSongwriter); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Type != TypeSongwriter {
		t.Fatalf("type = %q, want songwriter", m.Type)
	}
	if m.Role != RoleMember {
		t.Fatalf("type change touched role: %q", m.Role)
	}
}

func TestCanManageMembers(t *testing.T) {
	cases := []struct {
		role Role
		want bool
	}{
		{RoleOwner, true},
		{RoleAdmin, true},
		{RoleMember, false},
	}

	for _, tc := range cases {
		m := &Member{Role: tc.role}
		if got := m.CanManageMembers(); got != tc.want {
			t.Fatalf("CanManageMembers(%q) = %v, want %v", tc.role, got, tc.want)
		}
	}
}
