package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_UpAndDownPairs(t *testing.T) {
	names, err := fs.Glob(MigrationFiles, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, name := range names {
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file %q", name)
		}
	}
	require.Equal(t, ups, downs)
}

func TestMigrationFiles_NotifyTriggerChannel(t *testing.T) {
	body, err := fs.ReadFile(MigrationFiles, "000002_notify_analytics_events.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(body), "pg_notify")
	require.Contains(t, string(body), "'analytics_events'")
	require.Contains(t, string(body), "AFTER INSERT ON analytics_events")
}

func TestPreviousVersion(t *testing.T) {
	require.Equal(t, -1, previousVersion(0))
	require.Equal(t, -1, previousVersion(1))
	require.Equal(t, 1, previousVersion(2))
}

func TestMigrationFiles_UpMigrationsAreRerunnable(t *testing.T) {
	names, err := fs.Glob(MigrationFiles, "*.up.sql")
	require.NoError(t, err)

	for _, name := range names {
		body, err := fs.ReadFile(MigrationFiles, name)
		require.NoError(t, err)
		sql := string(body)

		for _, line := range strings.Split(sql, "\n") {
			line = strings.TrimSpace(line)
			if !strings.HasPrefix(line, "CREATE ") {
				continue
			}
			switch {
			case strings.Contains(line, "IF NOT EXISTS"), strings.HasPrefix(line, "CREATE OR REPLACE "):
			case strings.HasPrefix(line, "CREATE TRIGGER "):
				trigger := strings.Fields(line)[2]
				require.Contains(t, sql, "DROP TRIGGER IF EXISTS "+trigger, "%s: %s", name, line)
			default:
				t.Fatalf("%s: statement cannot be re-applied after a dirty run: %s", name, line)
			}
		}
	}
}
