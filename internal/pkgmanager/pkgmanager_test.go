package pkgmanager

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/hatch/internal/logger"
)

type call struct {
	spinner bool
	name    string
	args    []string
}

type fakeRunner struct {
	calls []call
	err   error
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, call{name: name, args: args})
	return f.err
}

func (f *fakeRunner) RunWithSpinner(_ context.Context, _ string, name string, args ...string) error {
	f.calls = append(f.calls, call{spinner: true, name: name, args: args})
	return f.err
}

func newManager(t *testing.T, name, registry string, r *fakeRunner, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithRunner(r), WithLogger(logger.NewSilentLogger())}, opts...)
	m, err := New(name, t.TempDir(), registry, opts...)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	m, err := New("", "/tmp/app", "")
	require.NoError(t, err)
	assert.Equal(t, NPM, m.Name)

	_, err = New("bower", "/tmp/app", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported package manager")
}

func TestInstallArgs(t *testing.T) {
	tests := []struct {
		name     string
		manager  string
		registry string
		want     []string
	}{
		{"npm", NPM, "", []string{"install", "--loglevel", "error"}},
		{"npm with registry", NPM, "https://r.example.com", []string{"install", "--loglevel", "error", "--registry=https://r.example.com"}},
		{"yarn", Yarn, "", []string{"install"}},
		{"pnpm with registry", PNPM, "https://r.example.com", []string{"install", "--registry=https://r.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newManager(t, tt.manager, tt.registry, &fakeRunner{})
			assert.Equal(t, tt.want, m.InstallArgs())
		})
	}
}

func TestInstallTwice(t *testing.T) {
	r := &fakeRunner{}
	m := newManager(t, Yarn, "", r)

	require.NoError(t, m.Install(context.Background()))
	require.NoError(t, m.Install(context.Background()))

	require.Len(t, r.calls, 2)
	assert.Equal(t, r.calls[0], r.calls[1])
	assert.True(t, r.calls[0].spinner)
	assert.Equal(t, "yarn", r.calls[0].name)
}

func TestVerboseStreams(t *testing.T) {
	r := &fakeRunner{}
	m := newManager(t, NPM, "", r, WithVerbose(true))

	require.NoError(t, m.InitGit(context.Background()))
	require.Len(t, r.calls, 1)
	assert.False(t, r.calls[0].spinner)
	assert.Equal(t, call{name: "git", args: []string{"init"}}, r.calls[0])
}

func TestFailureIsTyped(t *testing.T) {
	cause := errors.New("exit status 1")
	m := newManager(t, PNPM, "", &fakeRunner{err: cause})

	err := m.Install(context.Background())
	var pmErr *Error
	require.ErrorAs(t, err, &pmErr)
	assert.Equal(t, "pnpm install", pmErr.Command)
	assert.ErrorIs(t, err, cause)
}

func TestRunScriptCommand(t *testing.T) {
	assert.Equal(t, "npm run serve", newManager(t, NPM, "", &fakeRunner{}).RunScriptCommand("serve"))
	assert.Equal(t, "yarn serve", newManager(t, Yarn, "", &fakeRunner{}).RunScriptCommand("serve"))
}
