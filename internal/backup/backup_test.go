package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jonboulle/clockwork"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/internal/storage/sqlite"
)

var start = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func testState(dayCount int) models.State {
	s := models.State{DayCount: dayCount}
	for i := 0; i < dayCount; i++ {
		s.Journey = append(s.Journey, models.Day{
			ID:           i,
			Weather:      models.WeatherLightRain,
			DistanceSlow: 1,
			DistanceFast: 2,
			Direction:    models.DirectionNorthEast,
		})
	}
	return s
}

// setupTestDB creates an initialized store holding a journey of dayCount days
func setupTestDB(t *testing.T, dayCount int) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "travelogue.db")
	saveState(t, dbPath, testState(dayCount))
	return dbPath
}

func saveState(t *testing.T, dbPath string, s models.State) {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	defer store.Close()
	if err := storage.SaveState(store, s); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
}

func loadState(t *testing.T, dbPath string) models.State {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer store.Close()
	s, err := storage.GetState(store)
	if err != nil {
		t.Fatalf("GetState() failed: %v", err)
	}
	return s
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t, 5)
	mgr := NewManager(dbPath).WithClock(clockwork.NewFakeClockAt(start))

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	wantName := constants.BackupFilePrefix + "20240301-0900" + constants.BackupFileSuffix
	if filepath.Base(backupPath) != wantName {
		t.Errorf("backup name = %s, want %s", filepath.Base(backupPath), wantName)
	}
	if filepath.Dir(backupPath) != mgr.GetBackupDir() {
		t.Errorf("backup dir = %s, want %s", filepath.Dir(backupPath), mgr.GetBackupDir())
	}

	got, err := ReadState(backupPath)
	if err != nil {
		t.Fatalf("ReadState failed: %v", err)
	}
	if diff := cmp.Diff(testState(5), got); diff != "" {
		t.Errorf("backup journey mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing database")
	}
}

func TestBackupNamesAreUnique(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath).WithClock(clockwork.NewFakeClockAt(start))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup #%d failed: %v", i, err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Errorf("ListBackups returned %d backups, want 3", len(backups))
	}
}

func TestListBackups(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	clock := clockwork.NewFakeClockAt(start)
	mgr := NewManager(dbPath).WithClock(clock)

	if backups, err := mgr.ListBackups(); err != nil || len(backups) != 0 {
		t.Fatalf("ListBackups before any backup = %v, %v", backups, err)
	}

	for i := 0; i < 3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		clock.Advance(time.Hour)
	}

	// Unrelated files are ignored
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), constants.BackupFilePrefix+"garbage"+constants.BackupFileSuffix), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("ListBackups returned %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if !backups[i-1].Timestamp.After(backups[i].Timestamp) {
			t.Errorf("backups not sorted newest first: %v before %v", backups[i-1].Timestamp, backups[i].Timestamp)
		}
	}
	if want := start.Add(2 * time.Hour); !backups[0].Timestamp.Equal(want) {
		t.Errorf("newest backup timestamp = %v, want %v", backups[0].Timestamp, want)
	}
	if backups[0].Size == 0 {
		t.Error("backup size should be non-zero")
	}
}

func TestRotateBackups(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	clock := clockwork.NewFakeClockAt(start)
	mgr := NewManager(dbPath).WithClock(clock)

	for i := 0; i < constants.MaxBackups+3; i++ {
		if _, err := mgr.CreateBackup(); err != nil {
			t.Fatalf("CreateBackup failed: %v", err)
		}
		clock.Advance(24 * time.Hour)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != constants.MaxBackups {
		t.Fatalf("kept %d backups, want %d", len(backups), constants.MaxBackups)
	}
	oldestKept := start.Add(3 * 24 * time.Hour)
	if !backups[len(backups)-1].Timestamp.Equal(oldestKept) {
		t.Errorf("oldest kept backup = %v, want %v", backups[len(backups)-1].Timestamp, oldestKept)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t, 3)
	clock := clockwork.NewFakeClockAt(start)
	mgr := NewManager(dbPath).WithClock(clock)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	saveState(t, dbPath, testState(7))
	clock.Advance(time.Hour)

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if got := loadState(t, dbPath); got.DayCount != 3 {
		t.Errorf("restored dayCount = %d, want 3", got.DayCount)
	}

	// The journey that was replaced is kept as a backup of its own
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 2 {
		t.Fatalf("ListBackups returned %d backups, want 2", len(backups))
	}
	pre, err := ReadState(backups[0].Path)
	if err != nil {
		t.Fatalf("ReadState failed: %v", err)
	}
	if pre.DayCount != 7 {
		t.Errorf("pre-restore backup dayCount = %d, want 7", pre.DayCount)
	}
	if _, err := os.Stat(dbPath + ".restore.tmp"); !os.IsNotExist(err) {
		t.Error("temporary restore file left behind")
	}
}

func TestRestoreBackupRejectsInvalidFiles(t *testing.T) {
	dbPath := setupTestDB(t, 1)
	mgr := NewManager(dbPath)
	dir := t.TempDir()

	if err := mgr.RestoreBackup(filepath.Join(dir, "missing.db")); err == nil {
		t.Error("expected error for missing backup")
	}

	notDB := filepath.Join(dir, "junk.db")
	if err := os.WriteFile(notDB, []byte(strings.Repeat("not a database ", 100)), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(notDB); err == nil {
		t.Error("expected error for a file that is not a database")
	}

	otherDB := filepath.Join(dir, "other.db")
	db, err := sql.Open("sqlite", otherDB)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("CREATE TABLE tasks (id TEXT PRIMARY KEY)"); err != nil {
		t.Fatal(err)
	}
	db.Close()
	if err := mgr.RestoreBackup(otherDB); err == nil {
		t.Error("expected error for a database without a journey table")
	}

	if got := loadState(t, dbPath); got.DayCount != 1 {
		t.Errorf("dayCount after rejected restores = %d, want 1", got.DayCount)
	}
}
