package migrate

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/config"
	"github.com/stretchr/testify/require"
)

func TestMigrationsDirIsValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestEmbeddedMigrationsMatchDisk(t *testing.T) {
	require.NoError(t, Validate(Embedded()))

	onDisk, err := filepath.Glob(filepath.Join("migrations", "*.sql"))
	require.NoError(t, err)
	embeddedFiles, err := fs.Glob(Embedded().FS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, embeddedFiles, len(onDisk))
}

func TestMigrationsCreateCoreTables(t *testing.T) {
	cases := map[string][]string{
		"*_create_users.sql": {
			"CREATE TABLE IF NOT EXISTS users",
			"uid text PRIMARY KEY",
			"DROP TABLE IF EXISTS users",
		},
		"*_create_locations.sql": {
			"CREATE TABLE IF NOT EXISTS locations",
			"bin_count integer NOT NULL DEFAULT 1",
			"coordinates jsonb",
		},
		"*_create_recycled_electronics.sql": {
			"CREATE TABLE IF NOT EXISTS recycled_electronics",
			"CHECK (quantity > 0)",
			"CHECK (points >= 0)",
			"idx_recycled_electronics_uid",
		},
		"*_create_analytics.sql": {
			"CREATE TABLE IF NOT EXISTS analytics",
			"REFERENCES users(uid) ON DELETE CASCADE",
			"by_category jsonb",
		},
	}

	for pattern, checks := range cases {
		matches, err := filepath.Glob(filepath.Join("migrations", pattern))
		require.NoError(t, err)
		require.Len(t, matches, 1, pattern)

		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		content := string(data)
		for _, sub := range checks {
			if !strings.Contains(content, sub) {
				t.Errorf("%s: missing expected statement %q", pattern, sub)
			}
		}
	}
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.Error(t, ValidateDir(dir), "empty dir")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	require.ErrorContains(t, ValidateDir(dir), "invalid migration filename")

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_no_down.sql"), []byte("-- +goose Up\n"), 0o644))
	require.ErrorContains(t, ValidateDir(dir), "+goose Down")

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_swapped.sql"), []byte("-- +goose Down\n-- +goose Up\n"), 0o644))
	require.ErrorContains(t, ValidateDir(dir), "Down before Up")

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_open.sql"), []byte("-- +goose Up\n-- +goose StatementBegin\n-- +goose Down\n"), 0o644))
	require.ErrorContains(t, ValidateDir(dir), "unbalanced")
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Bin Serial!")
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, "_add_bin_serial.sql"))
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "!!!")
	require.Error(t, err)
}

func TestCreateRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	path, err := createAt(dir, "add index", at)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20250501100000_add_index.sql"), path)

	_, err = createAt(dir, "add index", at)
	require.ErrorContains(t, err, "already exists")
}

func TestMaybeRunDevSkipsOutsideDev(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "prod"}, Features: config.FeatureFlagsConfig{AutoMigrate: true}}
	require.NoError(t, MaybeRunDev(context.Background(), cfg, nil, nil))

	cfg = &config.Config{App: config.AppConfig{Env: "dev"}}
	require.NoError(t, MaybeRunDev(context.Background(), cfg, nil, nil))
}

func TestRunRequiresArguments(t *testing.T) {
	require.Error(t, Run(context.Background(), nil, Embedded(), "up"))
	require.Error(t, MigrateToVersion(context.Background(), nil, Embedded(), ""))
	require.Error(t, MigrateToVersion(context.Background(), nil, Embedded(), "not-a-version"))
	require.Error(t, Validate(Source{}))
}
