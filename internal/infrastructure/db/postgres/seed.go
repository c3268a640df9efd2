package postgres

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/clearcrm/crm-api/internal/core/domain"
)

// Seed populates the store with a small development dataset: an admin, a
// sales rep, two accounts and their contacts and deals. Reruns are safe; it
// bails out if the admin already exists.
func Seed(ctx context.Context, db *gorm.DB) error {
	users := NewUserRepository(db)

	if _, err := users.FindByEmail(ctx, "admin@example.com"); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcryptSeedCost)
	if err != nil {
		return err
	}

	admin := &domain.User{Name: "Admin User", Email: "admin@example.com", PasswordHash: string(hash), Role: domain.RoleAdmin}
	rep := &domain.User{Name: "Sales Rep", Email: "rep@example.com", PasswordHash: string(hash), Role: domain.RoleUser}
	for _, u := range []*domain.User{admin, rep} {
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	acme := &domain.Account{Name: "Acme Corporation", Website: ptr("https://acme.test"), Industry: ptr("Manufacturing"), OwnerID: &admin.ID}
	globex := &domain.Account{Name: "Globex Industries", Website: ptr("https://globex.test"), Industry: ptr("Software"), OwnerID: &rep.ID}
	accounts := NewAccountRepository(db)
	for _, a := range []*domain.Account{acme, globex} {
		if err := accounts.Create(ctx, a); err != nil {
			return fmt.Errorf("seed account %s: %w", a.Name, err)
		}
	}

	contacts := NewContactRepository(db)
	for _, c := range []*domain.Contact{
		{FirstName: "Alice", LastName: "Smith", Email: ptr("alice@acme.test"), Phone: ptr("555-1234"), AccountID: &acme.ID, OwnerID: &rep.ID},
		{FirstName: "Bob", LastName: "Jones", Email: ptr("bob@globex.test"), AccountID: &globex.ID, OwnerID: &rep.ID},
	} {
		if err := contacts.Create(ctx, c); err != nil {
			return fmt.Errorf("seed contact %s %s: %w", c.FirstName, c.LastName, err)
		}
	}

	deals := NewDealRepository(db)
	for _, d := range []*domain.Deal{
		{Name: "Acme Partnership", Amount: 50000, Stage: domain.StageNew, AccountID: &acme.ID, OwnerID: &rep.ID},
		{Name: "Globex Expansion", Amount: 75000, Stage: domain.StageNew, AccountID: &globex.ID, OwnerID: &admin.ID},
	} {
		if err := deals.Create(ctx, d); err != nil {
			return fmt.Errorf("seed deal %s: %w", d.Name, err)
		}
	}

	return nil
}

const bcryptSeedCost = 10

func ptr(s string) *string {
	return &s
}
