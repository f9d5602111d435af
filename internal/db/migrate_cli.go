package db

import (
	"fmt"
	"io"
	"strconv"

	"github.com/banshee-data/trackrate/internal/monitoring"
)

// RunMigrateCommand handles the 'migrate' subcommand dispatching.
func RunMigrateCommand(w io.Writer, dbPath string, args []string) error {
	if len(args) < 1 {
		PrintMigrateHelp(w)
		return fmt.Errorf("migrate: missing action")
	}
	action := args[0]
	if action == "help" {
		PrintMigrateHelp(w)
		return nil
	}

	migrationsFS, err := MigrationsFS()
	if err != nil {
		return fmt.Errorf("failed to get migrations filesystem: %w", err)
	}

	// Open without migrating; the action decides what happens to the schema.
	database, err := OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	switch action {
	case "up":
		monitoring.Logf("Running migrations...")
		if err := database.MigrateUp(migrationsFS); err != nil {
			return err
		}
	case "down":
		monitoring.Logf("Rolling back one migration...")
		if err := database.MigrateDown(migrationsFS); err != nil {
			return err
		}
	case "version", "status":
	case "force":
		if len(args) < 2 {
			return fmt.Errorf("usage: trackrate migrate force <version_number>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid version number: %s", args[1])
		}
		if err := database.MigrateForce(migrationsFS, version); err != nil {
			return err
		}
	default:
		PrintMigrateHelp(w)
		return fmt.Errorf("unknown migrate action: %s", action)
	}

	version, dirty, err := database.MigrateVersion(migrationsFS)
	if err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	latest, err := LatestMigrationVersion(migrationsFS)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "version=%d latest=%d dirty=%v\n", version, latest, dirty)
	return nil
}

// PrintMigrateHelp writes usage for the migrate subcommand.
func PrintMigrateHelp(w io.Writer) {
	fmt.Fprint(w, `Usage: trackrate migrate <action> [-db path]

Actions:
  up             apply all pending migrations
  down           roll back the most recent migration
  version        print the current and latest schema versions
  force <n>      record version n without running migrations
  help           show this message
`)
}
