package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/travelogue/internal/backup"
	"github.com/julianstephens/travelogue/internal/cli"
	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/journey"
)

var errNotSQLite = errors.New("backups are only available for sqlite stores")

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, ok := ctx.Backups()
	if !ok {
		return errNotSQLite
	}
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	fmt.Fprintf(ctx.Stdout(), "✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, ok := ctx.Backups()
	if !ok {
		return errNotSQLite
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	out := ctx.Stdout()
	if len(backups) == 0 {
		fmt.Fprintln(out, "No backups found.")
		fmt.Fprintf(out, "Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	fmt.Fprintf(out, "Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		detail := "unreadable"
		if s, err := backup.ReadState(b.Path); err == nil {
			detail = fmt.Sprintf("%d days, %d passed", s.DayCount, journey.Passed(s))
		}
		fmt.Fprintf(out, "  %s  %s  (%.1f KB, %s)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"), filepath.Base(b.Path), float64(b.Size)/1024.0, detail)
	}
	fmt.Fprintf(out, "\nBackup directory: %s\n", mgr.GetBackupDir())
	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, ok := ctx.Backups()
	if !ok {
		return errNotSQLite
	}

	backupPath, err := c.resolve(mgr)
	if err != nil {
		return err
	}

	out := ctx.Stdout()
	if !c.Yes {
		fmt.Fprintln(out, "⚠️  This will replace your current journey with the backup.")
		fmt.Fprintln(out, "   Close any running travelogue TUI before restoring.")
		fmt.Fprintln(out, "A backup of your current database will be created before restoring.")
		fmt.Fprintf(out, "\nRestore from: %s\n", backupPath)
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	if err := mgr.RestoreBackup(backupPath); err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Journey restored successfully!")
	return nil
}

// resolve accepts an absolute path, a path relative to the working
// directory, or a file name inside the backup directory
func (c *BackupRestoreCmd) resolve(mgr *backup.Manager) (string, error) {
	if filepath.IsAbs(c.BackupFile) {
		if _, err := os.Stat(c.BackupFile); os.IsNotExist(err) {
			return "", fmt.Errorf("backup file not found: %s", c.BackupFile)
		}
		return c.BackupFile, nil
	}
	if _, err := os.Stat(c.BackupFile); err == nil {
		abs, err := filepath.Abs(c.BackupFile)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(mgr.GetBackupDir(), c.BackupFile)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", mgr.GetBackupDir())
}
