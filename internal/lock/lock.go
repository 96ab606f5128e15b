// Package lock keeps a second TUI session from writing the same journey.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/logger"
)

var findProcessFunc = ps.FindProcess

// ErrLocked is returned when another live travelogue process owns the lockfile
var ErrLocked = errors.New("journey is open in another travelogue session")

// Lock is an acquired lockfile. The file holds "PID|token".
type Lock struct {
	path  string
	token string
}

// Acquire creates the lockfile in dir. A lockfile left behind by a process
// that is gone, or that is not travelogue, is replaced.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	l := &Lock{
		path:  filepath.Join(dir, constants.LockfileName),
		token: uuid.NewString(),
	}

	for attempt := 0; attempt < 2; attempt++ {
		err := l.create()
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("failed to create lockfile: %w", err)
		}

		pid, held := owner(l.path)
		if held {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
		}
		logger.Warn("Replacing stale lockfile", "path", l.path, "pid", pid)
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale lockfile: %w", err)
		}
	}
	return nil, fmt.Errorf("%w: lockfile keeps reappearing", ErrLocked)
}

func (l *Lock) create() error {
	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(f, "%d|%s", os.Getpid(), l.token)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(l.path)
	}
	return err
}

// owner reports the PID recorded in the lockfile and whether that process
// is still a running travelogue binary.
func owner(path string) (int, bool) {
	pid, _, err := parse(path)
	if err != nil {
		return 0, false
	}
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return pid, false
	}
	return pid, strings.HasPrefix(process.Executable(), constants.AppName)
}

func parse(path string) (int, string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, "", err
	}
	parts := strings.Split(strings.TrimSpace(string(content)), "|")
	if len(parts) != 2 {
		return 0, "", errors.New("lockfile is malformed")
	}
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, "", errors.New("invalid process ID in lockfile")
	}
	return pid, parts[1], nil
}

// Release removes the lockfile if this Lock still owns it.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	_, token, err := parse(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if token != l.token {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

// Path returns the lockfile location
func (l *Lock) Path() string {
	return l.path
}
