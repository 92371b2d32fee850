package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/multierr"

	"github.com/angelmondragon/foodgram-backend/internal/ingredients"
	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/internal/tags"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	"github.com/angelmondragon/foodgram-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/angelmondragon/foodgram-backend/pkg/security"
)

const generatedPasswordLen = 16

// Fixture is the seed document. Ingredients use the same shape as the
// standalone ingredients file.
type Fixture struct {
	Ingredients []ingredients.ImportItem `json:"ingredients"`
	Tags        []tags.CreateTagInput    `json:"tags"`
	Users       []SeedUser               `json:"users"`
}

type SeedUser struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Password  string `json:"password"`
	IsAdmin   bool   `json:"is_admin"`
}

// SeededUser reports an account that exists after seeding. Password is only
// set when the seed generated it.
type SeededUser struct {
	ID       int64
	Email    string
	IsAdmin  bool
	Password string
	Created  bool
}

type Summary struct {
	IngredientsInserted int64
	TagsCreated         int
	TagsSkipped         int
	Users               []SeededUser
}

type seeder struct {
	ingredients ingredients.Service
	tags        tags.Service
	users       *users.Repository
	password    config.PasswordConfig
}

// loadFixture reads a full fixture, or a bare ingredients array.
func loadFixture(path string) (Fixture, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture %q: %w", path, err)
	}
	var fixture Fixture
	if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &fixture.Ingredients); err != nil {
			return Fixture{}, fmt.Errorf("decode ingredients %q: %w", path, err)
		}
		return fixture, nil
	}
	if err := json.Unmarshal(raw, &fixture); err != nil {
		return Fixture{}, fmt.Errorf("decode fixture %q: %w", path, err)
	}
	return fixture, nil
}

// run applies every section of the fixture. Sections are independent, so a
// failure in one does not stop the others; all errors are returned combined.
func (s *seeder) run(ctx context.Context, fixture Fixture) (Summary, error) {
	var summary Summary
	var errs error

	if len(fixture.Ingredients) > 0 {
		inserted, err := s.ingredients.Import(ctx, fixture.Ingredients)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("ingredients: %w", err))
		}
		summary.IngredientsInserted = inserted
	}

	for _, input := range fixture.Tags {
		_, err := s.tags.Create(ctx, input)
		switch {
		case err == nil:
			summary.TagsCreated++
		case pkgerrors.HasCode(err, pkgerrors.CodeConflict):
			summary.TagsSkipped++
		default:
			errs = multierr.Append(errs, fmt.Errorf("tag %q: %w", input.Slug, err))
		}
	}

	for _, u := range fixture.Users {
		seeded, err := s.ensureUser(ctx, u)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("user %q: %w", u.Email, err))
			continue
		}
		summary.Users = append(summary.Users, seeded)
	}

	return summary, errs
}

func (s *seeder) ensureUser(ctx context.Context, u SeedUser) (SeededUser, error) {
	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" || strings.TrimSpace(u.Username) == "" {
		return SeededUser{}, fmt.Errorf("email and username are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return SeededUser{ID: existing.ID, Email: existing.Email, IsAdmin: existing.IsAdmin}, nil
	}
	if !repo.IsNotFound(err) {
		return SeededUser{}, err
	}

	password := u.Password
	generated := ""
	if password == "" {
		if password, err = security.GeneratePassword(generatedPasswordLen); err != nil {
			return SeededUser{}, err
		}
		generated = password
	}
	hash, err := security.HashPassword(password, s.password)
	if err != nil {
		return SeededUser{}, err
	}

	created, err := s.users.Create(ctx, users.CreateUserDTO{
		Email:        email,
		Username:     strings.TrimSpace(u.Username),
		FirstName:    strings.TrimSpace(u.FirstName),
		LastName:     strings.TrimSpace(u.LastName),
		PasswordHash: hash,
		IsAdmin:      u.IsAdmin,
	})
	if err != nil {
		return SeededUser{}, err
	}
	return SeededUser{
		ID:       created.ID,
		Email:    created.Email,
		IsAdmin:  created.IsAdmin,
		Password: generated,
		Created:  true,
	}, nil
}
