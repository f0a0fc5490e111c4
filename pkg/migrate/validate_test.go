package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir(filepath.Join("..", "..", "db", "migrations")))
}

func TestValidateRejectsBadFilename(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "001_bad.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestValidateRejectsMissingDownMarker(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20260115000001_only_up.sql"), []byte("-- +goose Up\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateSQLMigration(dir, "Add Audit Column!")
	require.NoError(t, err)
	assert.Regexp(t, `\d{14}_add_audit_column\.sql$`, path)
	require.NoError(t, ValidateDir(dir))
}

func TestDialectFor(t *testing.T) {
	dialect, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", dialect)

	dialect, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite3", dialect)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}
