package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/angelmondragon/foodgram-backend/pkg/migrate"
)

func readMigration(t *testing.T, suffix string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", "*_"+suffix+".sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no %s migration file found", suffix)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func assertContains(t *testing.T, content string, checks []string) {
	t.Helper()
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestRecipesMigrationContainsConstraints(t *testing.T) {
	assertContains(t, readMigration(t, "create_recipes"), []string{
		"CREATE TABLE IF NOT EXISTS recipes",
		"FOREIGN KEY (author_id) REFERENCES users(id) ON DELETE CASCADE",
		"CHECK (cooking_time >= 1)",
		"CHECK (amount >= 1)",
		"FOREIGN KEY (ingredient_id) REFERENCES ingredients(id) ON DELETE CASCADE",
		"CREATE UNIQUE INDEX IF NOT EXISTS recipe_ingredients_recipe_ingredient_key ON recipe_ingredients (recipe_id, ingredient_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS recipe_tags_recipe_tag_key ON recipe_tags (recipe_id, tag_id)",
		"DROP TABLE IF EXISTS recipes",
	})
}

func TestUserRelationsMigrationEnforcesPairUniqueness(t *testing.T) {
	assertContains(t, readMigration(t, "create_user_relations"), []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS favorites_user_recipe_key ON favorites (user_id, recipe_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS shopping_cart_items_user_recipe_key ON shopping_cart_items (user_id, recipe_id)",
		"CREATE UNIQUE INDEX IF NOT EXISTS follows_user_author_key ON follows (user_id, author_id)",
		"DROP TABLE IF EXISTS follows",
	})
}

func TestTagsMigrationValidatesColor(t *testing.T) {
	assertContains(t, readMigration(t, "create_ingredients_and_tags"), []string{
		"CREATE UNIQUE INDEX IF NOT EXISTS ingredients_name_unit_key ON ingredients (name, measurement_unit)",
		"CHECK (color ~ '^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$')",
		"CREATE UNIQUE INDEX IF NOT EXISTS tags_slug_key ON tags (slug)",
	})
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("shipped migrations invalid: %v", err)
	}
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "create_things.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected invalid filename to fail validation")
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := migrate.CreateSQLMigration(dir, "Add Recipe Slug!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}
	if !strings.HasSuffix(path, "_add_recipe_slug.sql") {
		t.Fatalf("unexpected filename %s", path)
	}
	if err := migrate.ValidateDir(dir); err != nil {
		t.Fatalf("created migration should validate: %v", err)
	}
}

func TestParseVersion(t *testing.T) {
	if v, err := migrate.ParseVersion("20250301090200"); err != nil || v != 20250301090200 {
		t.Fatalf("unexpected parse result %d, %v", v, err)
	}
	for _, bad := range []string{"", "2025", "2025030109020x"} {
		if _, err := migrate.ParseVersion(bad); err == nil {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}

func TestListVersionsSorted(t *testing.T) {
	versions, err := migrate.ListVersions("migrations")
	if err != nil {
		t.Fatalf("list versions: %v", err)
	}
	if len(versions) != 4 {
		t.Fatalf("expected 4 migrations, got %d", len(versions))
	}
	for i := 1; i < len(versions); i++ {
		if versions[i] <= versions[i-1] {
			t.Fatalf("versions not ascending: %v", versions)
		}
	}
}

func TestValidateDirRejectsDownBeforeUp(t *testing.T) {
	dir := t.TempDir()
	body := "-- +goose Down\nDROP TABLE x;\n-- +goose Up\nCREATE TABLE x ();\n"
	if err := os.WriteFile(filepath.Join(dir, "20250101000000_x.sql"), []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := migrate.ValidateDir(dir); err == nil {
		t.Fatal("expected reversed sections to fail validation")
	}
}
