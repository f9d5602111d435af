package db

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUnmigrated(t *testing.T) (*DB, string) {
	t.Helper()
	fname := filepath.Join(t.TempDir(), "trackrate.db")
	db, err := OpenDB(fname)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, fname
}

func TestMigrateUpDown(t *testing.T) {
	db, _ := openUnmigrated(t)
	migrations, err := MigrationsFS()
	require.NoError(t, err)

	version, dirty, err := db.MigrateVersion(migrations)
	require.NoError(t, err)
	assert.Equal(t, uint(0), version)
	assert.False(t, dirty)

	require.NoError(t, db.MigrateUp(migrations))
	version, _, err = db.MigrateVersion(migrations)
	require.NoError(t, err)
	assert.Equal(t, uint(2), version)

	// Second run is a no-op.
	require.NoError(t, db.MigrateUp(migrations))

	require.NoError(t, db.MigrateDown(migrations))
	version, _, err = db.MigrateVersion(migrations)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.True(t, tableExists(t, db, "tracks"))
	assert.False(t, tableExists(t, db, "track_samples"))
}

func TestMigrateForce(t *testing.T) {
	db, _ := openUnmigrated(t)
	migrations, err := MigrationsFS()
	require.NoError(t, err)

	require.NoError(t, db.MigrateForce(migrations, 1))
	version, dirty, err := db.MigrateVersion(migrations)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)
}

func TestLatestMigrationVersion(t *testing.T) {
	migrations, err := MigrationsFS()
	require.NoError(t, err)

	latest, err := LatestMigrationVersion(migrations)
	require.NoError(t, err)
	assert.Equal(t, uint(2), latest)

	_, err = LatestMigrationVersion(fstest.MapFS{"README": {Data: []byte("x")}})
	assert.Error(t, err)
}

func TestRunMigrateCommand(t *testing.T) {
	_, fname := openUnmigrated(t)

	var out bytes.Buffer
	require.NoError(t, RunMigrateCommand(&out, fname, []string{"version"}))
	assert.Equal(t, "version=0 latest=2 dirty=false\n", out.String())

	out.Reset()
	require.NoError(t, RunMigrateCommand(&out, fname, []string{"up"}))
	assert.Equal(t, "version=2 latest=2 dirty=false\n", out.String())

	out.Reset()
	require.NoError(t, RunMigrateCommand(&out, fname, []string{"down"}))
	assert.Equal(t, "version=1 latest=2 dirty=false\n", out.String())

	out.Reset()
	require.NoError(t, RunMigrateCommand(&out, fname, []string{"force", "2"}))
	assert.Equal(t, "version=2 latest=2 dirty=false\n", out.String())
}

func TestRunMigrateCommand_Errors(t *testing.T) {
	_, fname := openUnmigrated(t)

	for _, tc := range []struct {
		name string
		args []string
		want string
	}{
		{"missing action", nil, "missing action"},
		{"unknown action", []string{"sideways"}, "unknown migrate action"},
		{"force without version", []string{"force"}, "usage"},
		{"force bad version", []string{"force", "two"}, "invalid version"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var out bytes.Buffer
			err := RunMigrateCommand(&out, fname, tc.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestRunMigrateCommand_Help(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RunMigrateCommand(&out, "unused.db", []string{"help"}))
	assert.True(t, strings.HasPrefix(out.String(), "Usage: trackrate migrate"))
}
