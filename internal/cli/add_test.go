package cli

import (
	"errors"
	"testing"

	"github.com/ksyq12/vhostcfg/internal/engine"
	"github.com/ksyq12/vhostcfg/internal/site"
)

func withDeps(t *testing.T, d *Dependencies) {
	t.Helper()
	old := deps
	deps = d
	t.Cleanup(func() { deps = old })
}

func resetAddFlags() {
	siteType = "static"
	sitePort = 0
	siteRoot = ""
	noReload = false
	skipCert = false
	dryRun = false
}

func TestRunAdd(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(*MockEngine)
		args     []string
		flags    func()
		isRoot   bool
		wantErr  bool
		validate func(*testing.T, *MockEngine)
	}{
		{
			name: "add proxy site",
			args: []string{"app.example.com"},
			flags: func() {
				siteType = "proxy"
				sitePort = 3000
			},
			isRoot: true,
			validate: func(t *testing.T, eng *MockEngine) {
				if len(eng.AddCalls) != 1 {
					t.Fatalf("Add called %d times, want 1", len(eng.AddCalls))
				}
				p := eng.AddCalls[0]
				if p.Domain != "app.example.com" || p.Kind != site.KindProxy || p.Port != 3000 {
					t.Errorf("params = %+v", p)
				}
			},
		},
		{
			name: "flags forwarded",
			args: []string{"www.example.com"},
			flags: func() {
				siteType = "static"
				siteRoot = "/var/www/example"
				noReload = true
				skipCert = true
			},
			isRoot: true,
			validate: func(t *testing.T, eng *MockEngine) {
				p := eng.AddCalls[0]
				if !p.SkipReload || !p.SkipCert {
					t.Errorf("skip flags not forwarded: %+v", p)
				}
				if p.Root != "/var/www/example" {
					t.Errorf("root = %q", p.Root)
				}
			},
		},
		{
			name:    "requires root",
			args:    []string{"app.example.com"},
			flags:   func() { siteType = "proxy"; sitePort = 3000 },
			isRoot:  false,
			wantErr: true,
			validate: func(t *testing.T, eng *MockEngine) {
				if len(eng.AddCalls) != 0 {
					t.Errorf("Add called despite missing privileges")
				}
			},
		},
		{
			name: "dry run never touches the engine",
			args: []string{"app.example.com"},
			flags: func() {
				siteType = "proxy"
				sitePort = 3000
				dryRun = true
			},
			isRoot: false, // dry run must not require root either
			validate: func(t *testing.T, eng *MockEngine) {
				if len(eng.AddCalls) != 0 {
					t.Errorf("Add called in dry-run mode")
				}
			},
		},
		{
			name:    "engine error propagates",
			args:    []string{"app.example.com"},
			flags:   func() { siteType = "proxy"; sitePort = 3000 },
			isRoot:  true,
			wantErr: true,
			setup: func(eng *MockEngine) {
				eng.AddFunc = func(p engine.AddParams) (*engine.AddResult, error) {
					return nil, errors.New("domain already exists")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetAddFlags()
			tt.flags()

			eng := &MockEngine{}
			if tt.setup != nil {
				tt.setup(eng)
			}
			withDeps(t, NewMockDeps().
				WithEngine(eng).
				WithRootAccess(tt.isRoot).
				Build())

			err := runAdd(addCmd, tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runAdd error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.validate != nil {
				tt.validate(t, eng)
			}
		})
	}
}
