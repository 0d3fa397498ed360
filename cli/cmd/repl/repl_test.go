package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ligature/wander"
)

// send types text into m and presses enter.
func send(t *testing.T, m model, text string) model {
	t.Helper()

	m.input.SetValue(text)
	m.input.SetCursor(len(text))

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	return next.(model)
}

func TestModel_BindingsPersistBetweenLines(t *testing.T) {
	m := testModel(t, "")

	m = send(t, m, "let x = 5")
	m = send(t, m, "let f = fn(v) { v }")

	got, err := m.evaluate("f(x)")
	if err != nil {
		t.Fatalf("evaluate error: %v", err)
	}

	if got.String() != "5" {
		t.Errorf("expected 5, got %s", got)
	}

	if want := []string{"let x = 5", "let f = fn(v) { v }"}; strings.Join(m.session, "\n") != strings.Join(want, "\n") {
		t.Errorf("session = %q, want %q", m.session, want)
	}

	if m.history.Len() != 2 {
		t.Errorf("expected 2 history entries, got %d", m.history.Len())
	}
}

func TestModel_FailedLineIsNotInSession(t *testing.T) {
	m := testModel(t, "")

	m = send(t, m, "missing")
	m = send(t, m, "let = 1")

	if len(m.session) != 0 {
		t.Errorf("expected empty session, got %q", m.session)
	}

	if m.history.Len() != 2 {
		t.Errorf("failed lines should still be in history, got %d", m.history.Len())
	}
}

func TestModel_Commands(t *testing.T) {
	m := testModel(t, "")
	m.prelude = nil

	m = send(t, m, "let answer = 42")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)

	if m.mode != modeCtrl {
		t.Fatalf("expected command mode after Esc")
	}

	if list := m.listBindings(); !strings.Contains(list, "answer") || !strings.Contains(list, "42") {
		t.Errorf("list output missing binding: %q", list)
	}

	m = send(t, m, "reset")

	if names := m.env.Names(); len(names) != 0 {
		t.Errorf("expected no bindings after reset, got %v", names)
	}

	if m.session != nil {
		t.Errorf("expected empty session after reset, got %q", m.session)
	}

	m = send(t, m, "quit")
	if !m.quitting {
		t.Errorf("expected quit command to stop the model")
	}
}

func TestModel_ReplaceSession(t *testing.T) {
	m := testModel(t, "")
	m = send(t, m, "let a = 1")

	script := mustParse(t, "let b = 2\nb")

	next, _ := m.Update(editDoneMsg{script: script, source: "let b = 2\nb\n"})
	m = next.(model)

	if _, ok := lookup(m.env, "a"); ok {
		t.Errorf("binding from the replaced session is still visible")
	}

	if _, ok := lookup(m.env, "b"); !ok {
		t.Errorf("binding from the edited source is missing")
	}

	broken := mustParse(t, "missing")

	next, _ = m.Update(editDoneMsg{script: broken, source: "missing"})
	m = next.(model)

	if _, ok := lookup(m.env, "b"); !ok {
		t.Errorf("failed edit replaced the environment")
	}
}

func TestModel_TabCompletion(t *testing.T) {
	m := testModel(t, "let identity = fn(v) { v }")

	m.input.SetValue("iden")
	m.input.SetCursor(4)
	refreshMatches(&m, false)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)

	if got := m.input.Value(); got != "identity" {
		t.Errorf("expected completion to identity, got %q", got)
	}
}

func TestModel_HistoryNavigation(t *testing.T) {
	m := testModel(t, "")

	m = send(t, m, "true")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = send(t, next.(model), "help")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(model)

	if m.input.Value() != "help" || m.mode != modeCtrl {
		t.Fatalf("expected ctrl entry help, got %q in mode %d", m.input.Value(), m.mode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(model)

	if m.input.Value() != "true" || m.mode != modeEval {
		t.Fatalf("expected eval entry true, got %q in mode %d", m.input.Value(), m.mode)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, _ = next.(model).Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)

	if m.input.Value() != "" || m.historyIdx != m.history.Len() {
		t.Errorf("expected cleared input past the newest entry, got %q", m.input.Value())
	}
}

func TestModel_HelpCommand(t *testing.T) {
	m := testModel(t, "")

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)

	m.input.SetValue("help")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected help to print a message")
	}

	if next.(model).mode != modeCtrl {
		t.Errorf("expected to stay in ctrl mode after help")
	}

	if strings.HasSuffix(helpMessage, "\n") {
		t.Errorf("help message must not end with a newline, Println adds one")
	}
}

func mustParse(t *testing.T, source string) *wander.Script {
	t.Helper()

	script, err := wander.Parse(t.Context(), source)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return script
}
