// Package cli is the terminal dashboard for KaryaMate. Session state is an
// explicit two-state machine rather than ambient globals: LoggedOut holds
// nothing, LoggedIn holds the bearer token and the last fetched task list.
package cli

import (
	"bufio"
	"os"

	"github.com/erprakash26/karyamate/internal/client/api"
)

type viewState int

const (
	stateLoggedOut viewState = iota
	stateLoggedIn
)

// App drives the REPL. All mutable session state lives here and changes only
// through the command handlers (login, logout, refresh, editors).
type App struct {
	client *api.Client
	reader *bufio.Reader

	state viewState
	token string
	tasks []api.Task // cache of the last list fetch; refreshed on every mutation
}

// NewApp returns an App talking to the API at baseURL, reading commands from stdin.
func NewApp(baseURL string) *App {
	return &App{
		client: api.New(baseURL),
		reader: bufio.NewReader(os.Stdin),
		state:  stateLoggedOut,
	}
}

func (a *App) isLoggedIn() bool {
	return a.state == stateLoggedIn
}

func (a *App) setLoggedIn(token string) {
	a.state = stateLoggedIn
	a.token = token
	a.tasks = nil
	a.client.SetToken(token)
}

func (a *App) setLoggedOut() {
	a.state = stateLoggedOut
	a.token = ""
	a.tasks = nil
	a.client.SetToken("")
}

func (a *App) status() string {
	if a.isLoggedIn() {
		return "logged in"
	}
	return "logged out"
}
