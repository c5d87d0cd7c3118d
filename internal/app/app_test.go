package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schemagen/internal/config"
	"schemagen/internal/core/errors"
)

func writeSchema(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunGeneratesArtifact(t *testing.T) {
	schemas := t.TempDir()
	output := filepath.Join(t.TempDir(), "generated")

	writeSchema(t, schemas, "user.ts", `
export class User {
  id: string;
  role: Role;
}
`)
	writeSchema(t, schemas, "role.ts", `
export enum Role {
  ADMIN,
  USER,
}
`)

	a, err := NewApp(config.Default(), schemas, output)
	require.NoError(t, err)
	defer a.Close()

	summary, err := a.Run("test-run")
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Classes)
	assert.Equal(t, 1, summary.Verbatim)
	assert.Equal(t, 1, summary.References)
	assert.Equal(t, 0, summary.ImportLines)

	data, err := os.ReadFile(filepath.Join(output, "generated-types.ts"))
	require.NoError(t, err)
	text := string(data)

	assert.True(t, strings.HasPrefix(text, config.DefaultBanner))
	assert.Contains(t, text, "export type User = {\n  id: string;\n  role: Role;\n};")
	assert.Contains(t, text, "export enum Role {")
	assert.NotContains(t, text, "import type")
}

func TestRunIsIdempotent(t *testing.T) {
	schemas := t.TempDir()
	output := filepath.Join(t.TempDir(), "generated")

	writeSchema(t, schemas, "nested/session.ts", `
export class Session {
  token: string;
}
`)
	writeSchema(t, schemas, "user.ts", `
export class User {
  session: Session;
}
`)

	a, err := NewApp(config.Default(), schemas, output)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Run("")
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(output, "generated-types.ts"))
	require.NoError(t, err)

	_, err = a.Run("")
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(output, "generated-types.ts"))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMissingSchemasPathFailsBeforeAnyOutput(t *testing.T) {
	output := filepath.Join(t.TempDir(), "generated")

	_, err := NewApp(config.Default(), filepath.Join(t.TempDir(), "missing"), output)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUsage))

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr), "output directory must not be created")
}

func TestFileLikeOutputPathIsRejected(t *testing.T) {
	schemas := t.TempDir()

	_, err := NewApp(config.Default(), schemas, filepath.Join(t.TempDir(), "generated.ts"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.CodeUsage))
}

func TestExcludedDirsAreSkipped(t *testing.T) {
	schemas := t.TempDir()
	output := filepath.Join(t.TempDir(), "generated")

	writeSchema(t, schemas, "user.ts", `
export class User {
  id: string;
}
`)
	writeSchema(t, schemas, "node_modules/dep/index.ts", `
export class Dep {
  x: string;
}
`)

	a, err := NewApp(config.Default(), schemas, output)
	require.NoError(t, err)
	defer a.Close()

	summary, err := a.Run("")
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Files)

	data, err := os.ReadFile(filepath.Join(output, "generated-types.ts"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Dep")
}

// An output directory nested inside the schemas root must not feed the
// generated artifact back into the next scan.
func TestNestedOutputDirIsNotScanned(t *testing.T) {
	schemas := t.TempDir()
	output := filepath.Join(schemas, "generated")

	writeSchema(t, schemas, "user.ts", `
export class User {
  id: string;
}
`)

	a, err := NewApp(config.Default(), schemas, output)
	require.NoError(t, err)
	defer a.Close()

	first, err := a.Run("")
	require.NoError(t, err)
	assert.Equal(t, 1, first.Files)

	second, err := a.Run("")
	require.NoError(t, err)
	assert.Equal(t, 1, second.Files, "artifact from the first run must be excluded")
}

func TestHistorySnapshotIsSaved(t *testing.T) {
	schemas := t.TempDir()
	output := filepath.Join(t.TempDir(), "generated")

	writeSchema(t, schemas, "user.ts", `
export class User {
  id: string;
}
`)

	cfg := config.Default()
	cfg.History.Enabled = true
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.History.ProjectKey = "test"

	a, err := NewApp(cfg, schemas, output)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Run("run-a")
	require.NoError(t, err)

	snapshots, err := a.history.LoadSnapshots("test", time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "run-a", snapshots[0].RunID)
	assert.Equal(t, 1, snapshots[0].FileCount)
}
