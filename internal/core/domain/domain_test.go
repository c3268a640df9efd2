package domain

import "testing"

func TestValidRole(t *testing.T) {
	for _, role := range []string{"USER", "MANAGER", "ADMIN"} {
		if !ValidRole(role) {
			t.Fatalf("expected %s to be valid", role)
		}
	}
	for _, role := range []string{"", "user", "SUPERADMIN"} {
		if ValidRole(role) {
			t.Fatalf("expected %q to be invalid", role)
		}
	}
}

func TestValidDealStage(t *testing.T) {
	for _, stage := range DealStages {
		if !ValidDealStage(string(stage)) {
			t.Fatalf("expected %s to be valid", stage)
		}
	}
	if ValidDealStage("SHIPPED") {
		t.Fatal("expected SHIPPED to be invalid")
	}
}

func TestValidActivityType(t *testing.T) {
	for _, typ := range []string{"NOTE", "TASK", "CALL", "MEETING"} {
		if !ValidActivityType(typ) {
			t.Fatalf("expected %s to be valid", typ)
		}
	}
	if ValidActivityType("EMAIL") {
		t.Fatal("expected EMAIL to be invalid")
	}
}

func TestBeforeCreate_AssignsID(t *testing.T) {
	u := &User{Name: "Ann", Email: "ann@x.com"}
	if err := u.BeforeCreate(nil); err != nil {
		t.Fatalf("hook error: %v", err)
	}
	if u.ID == "" {
		t.Fatal("expected id to be assigned")
	}

	a := &Account{ID: "fixed", Name: "Acme"}
	if err := a.BeforeCreate(nil); err != nil {
		t.Fatalf("hook error: %v", err)
	}
	if a.ID != "fixed" {
		t.Fatalf("preset id must be kept, got %s", a.ID)
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (&User{Role: RoleManager}).IsAdmin() {
		t.Fatal("manager is not an admin")
	}
	if !(&User{Role: RoleAdmin}).IsAdmin() {
		t.Fatal("expected admin")
	}
}
