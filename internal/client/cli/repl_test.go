package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records dispatched commands and fakes the login state.
type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }

func (s *stubExec) record(name string) error {
	s.calls = append(s.calls, name)
	return nil
}

func (s *stubExec) Register(context.Context) error { return s.record("register") }
func (s *stubExec) Login(context.Context) error {
	s.loggedIn = true
	return s.record("login")
}
func (s *stubExec) Logout(context.Context) error {
	s.loggedIn = false
	return s.record("logout")
}
func (s *stubExec) List(_ context.Context, status string) error { return s.record("list:" + status) }
func (s *stubExec) Refresh(context.Context) error               { return s.record("refresh") }
func (s *stubExec) Add(context.Context) error                   { return s.record("add") }
func (s *stubExec) Show(_ context.Context, id int64) error      { return s.record("show") }
func (s *stubExec) Edit(_ context.Context, id int64) error      { return s.record("edit") }
func (s *stubExec) Done(_ context.Context, id int64) error      { return s.record("done") }
func (s *stubExec) Remove(_ context.Context, id int64) error    { return s.record("rm") }

func runScript(t *testing.T, stub *stubExec, script string) []string {
	t.Helper()
	var out []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i] = strings.TrimSpace(anyToString(v))
		}
		out = append(out, strings.Join(parts, " "))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "test" }, scanner)
	return out
}

func anyToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func TestREPL_DispatchAndExit(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "login\nlist open\nadd\ndone 3\nrm 4\nlogout\nexit\n")

	assert.Equal(t, []string{"login", "list:open", "add", "done", "rm", "logout"}, stub.calls)
}

func TestREPL_EOFEndsLoop(t *testing.T) {
	stub := &stubExec{}
	runScript(t, stub, "list\n")

	assert.Equal(t, []string{"list:"}, stub.calls)
}

func TestREPL_BadIDRejectedBeforeDispatch(t *testing.T) {
	stub := &stubExec{loggedIn: true}
	out := runScript(t, stub, "show abc\ndone -1\nshow\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(out, "\n"), "Invalid task id")
}

func TestREPL_UnknownCommand(t *testing.T) {
	stub := &stubExec{}
	out := runScript(t, stub, "frobnicate\nexit\n")

	assert.Empty(t, stub.calls)
	assert.Contains(t, strings.Join(out, "\n"), "Unknown command")
}

func TestREPL_HelpFollowsState(t *testing.T) {
	loggedOut := runScript(t, &stubExec{}, "help\nexit\n")
	loggedIn := runScript(t, &stubExec{loggedIn: true}, "help\nexit\n")

	assert.Contains(t, strings.Join(loggedOut, "\n"), "register, login")
	assert.Contains(t, strings.Join(loggedIn, "\n"), "logout")
}

func TestAppStateMachine(t *testing.T) {
	a := NewApp("http://example.com")
	assert.False(t, a.isLoggedIn())
	assert.Equal(t, "logged out", a.status())

	a.setLoggedIn("tok123")
	assert.True(t, a.isLoggedIn())
	assert.Equal(t, "logged in", a.status())
	assert.Equal(t, "tok123", a.token)

	a.setLoggedOut()
	assert.False(t, a.isLoggedIn())
	assert.Empty(t, a.token)
	assert.Nil(t, a.tasks)
}
