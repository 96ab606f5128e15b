package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/travelogue/internal/constants"
	"github.com/julianstephens/travelogue/internal/generator"
	"github.com/julianstephens/travelogue/internal/journey"
	"github.com/julianstephens/travelogue/internal/models"
	"github.com/julianstephens/travelogue/internal/random"
	"github.com/julianstephens/travelogue/internal/storage"
	"github.com/julianstephens/travelogue/internal/tables"
)

func setupTestModel(t *testing.T, days int) (Model, storage.Provider) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "travelogue.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	gen := generator.New(random.NewSeeded(7), tables.Default())
	s, err := journey.New(gen, days)
	if err != nil {
		t.Fatalf("journey.New() failed: %v", err)
	}
	if err := storage.SaveState(store, s); err != nil {
		t.Fatalf("SaveState() failed: %v", err)
	}
	return NewModel(store, gen, s), store
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm, cmd
}

func stored(t *testing.T, store storage.Provider) models.State {
	t.Helper()
	s, err := storage.GetState(store)
	if err != nil {
		t.Fatalf("GetState() failed: %v", err)
	}
	return s
}

func TestToggleSavesEveryChange(t *testing.T) {
	m, store := setupTestModel(t, 4)

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !stored(t, store).Journey[0].HasPassed {
		t.Fatal("toggling day 1 was not saved")
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, keyRunes("x"))
	s := stored(t, store)
	if !s.Journey[1].HasPassed {
		t.Error("toggling day 2 was not saved")
	}
	if s.Journey[2].HasPassed || s.Journey[3].HasPassed {
		t.Error("toggle changed other days")
	}

	m, _ = send(t, m, keyRunes("x"))
	if stored(t, store).Journey[1].HasPassed {
		t.Error("second toggle did not clear day 2")
	}
	if !strings.Contains(m.View(), "Day 2 not passed") {
		t.Error("status line does not report the toggle")
	}
}

func TestNextMarksFirstUnpassedDay(t *testing.T) {
	m, store := setupTestModel(t, 2)

	m, _ = send(t, m, keyRunes("n"))
	m, _ = send(t, m, keyRunes("n"))
	if got := journey.Passed(stored(t, store)); got != 2 {
		t.Fatalf("passed = %d, want 2", got)
	}

	m, _ = send(t, m, keyRunes("n"))
	if !strings.Contains(m.status, "has passed") {
		t.Errorf("status = %q, want completion message", m.status)
	}
}

func TestRegenerateNeedsConfirmation(t *testing.T) {
	m, store := setupTestModel(t, 5)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	before := stored(t, store)

	backups := 0
	m.beforeRegenerate = func() { backups++ }

	m, cmd := send(t, m, keyRunes("r"))
	if cmd == nil {
		t.Fatal("regenerate key returned no command")
	}
	m, _ = send(t, m, cmd())
	if m.state != constants.StateConfirmRegenerate {
		t.Fatalf("state = %v, want StateConfirmRegenerate", m.state)
	}
	if !strings.Contains(m.View(), "Regenerate all 5 days?") {
		t.Error("confirmation prompt not shown")
	}

	// Declining leaves everything alone
	m, cmd = send(t, m, keyRunes("n"))
	if cmd != nil || m.state != constants.StateJourney {
		t.Fatalf("declining did not return to the journey")
	}
	if backups != 0 || !stored(t, store).Journey[0].HasPassed {
		t.Fatal("declined regeneration changed the journey")
	}

	m, cmd = send(t, m, keyRunes("r"))
	m, _ = send(t, m, cmd())
	m, cmd = send(t, m, keyRunes("y"))
	if cmd == nil {
		t.Fatal("confirming returned no command")
	}
	m, _ = send(t, m, cmd())

	after := stored(t, store)
	if backups != 1 {
		t.Errorf("beforeRegenerate ran %d times, want 1", backups)
	}
	if after.DayCount != 5 || len(after.Journey) != 5 {
		t.Errorf("regenerated %d/%d days, want 5", after.DayCount, len(after.Journey))
	}
	if journey.Passed(after) != 0 {
		t.Error("regeneration kept passed marks")
	}
	if err := journey.Check(after); err != nil {
		t.Errorf("regenerated journey invalid: %v", err)
	}
	if len(after.Journey) == len(before.Journey) && after.Journey[0] == before.Journey[0] && after.Journey[4] == before.Journey[4] {
		t.Error("regeneration did not reroll the days")
	}
}

func TestApplyDayCount(t *testing.T) {
	tests := []struct {
		input   string
		applied bool
		want    int
	}{
		{"12", true, 12},
		{"1", true, 1},
		{"365", true, 365},
		{"0", false, 3},
		{"366", false, 3},
		{"-4", false, 3},
		{"abc", false, 3},
		{"", false, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, store := setupTestModel(t, 3)
			if got := m.applyDayCount(tt.input); got != tt.applied {
				t.Errorf("applyDayCount(%q) = %v, want %v", tt.input, got, tt.applied)
			}
			s := stored(t, store)
			if s.DayCount != tt.want || len(m.Journey().Journey) != tt.want {
				t.Errorf("day count = %d (model %d), want %d", s.DayCount, len(m.Journey().Journey), tt.want)
			}
		})
	}
}

func TestDayCountFormOpensAndCancels(t *testing.T) {
	m, _ := setupTestModel(t, 3)

	m, _ = send(t, m, keyRunes("d"))
	if m.state != constants.StateDayCount || m.form == nil {
		t.Fatalf("state = %v, want StateDayCount with a form", m.state)
	}
	if m.dayCount.Count != "3" {
		t.Errorf("form prefilled with %q, want 3", m.dayCount.Count)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != constants.StateJourney {
		t.Errorf("esc left state %v, want StateJourney", m.state)
	}
}

func TestUndo(t *testing.T) {
	m, store := setupTestModel(t, 3)

	m, _ = send(t, m, keyRunes("u"))
	if m.status != "Nothing to undo" {
		t.Errorf("status = %q, want Nothing to undo", m.status)
	}

	m, _ = send(t, m, keyRunes("x"))
	m, _ = send(t, m, keyRunes("u"))
	if stored(t, store).Journey[0].HasPassed || m.Journey().Journey[0].HasPassed {
		t.Error("undo did not restore the unpassed day")
	}
}

func TestLegendAndHelp(t *testing.T) {
	m, _ := setupTestModel(t, 3)
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if strings.Contains(m.View(), "Weather key") {
		t.Error("legend shown before it was toggled")
	}
	m, _ = send(t, m, keyRunes("w"))
	view := m.View()
	for _, w := range []models.Weather{models.WeatherClear, models.WeatherTropicalStorm} {
		if !strings.Contains(view, string(w)) {
			t.Errorf("legend missing %q", w)
		}
	}

	m, _ = send(t, m, keyRunes("?"))
	if !m.help.ShowAll {
		t.Error("? did not expand help")
	}
}

func TestQuit(t *testing.T) {
	m, _ := setupTestModel(t, 1)
	m, cmd := send(t, m, keyRunes("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command did not produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view not empty after quitting")
	}
}
