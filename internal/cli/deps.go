package cli

import (
	"bufio"
	"os"

	"github.com/ksyq12/vhostcfg/internal/config"
	"github.com/ksyq12/vhostcfg/internal/engine"
	"github.com/ksyq12/vhostcfg/internal/site"
)

// Dependencies aggregates all CLI external dependencies for testability
type Dependencies struct {
	ConfigLoader  ConfigLoader
	EngineFactory EngineFactory
	RootChecker   RootChecker
	StdinReader   StdinReader
}

// ConfigLoader handles configuration loading and saving
type ConfigLoader interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
}

// Engine is the surface of the mutation engine the commands use
type Engine interface {
	List() ([]*site.Record, error)
	Get(domain string) (*site.Record, error)
	Add(p engine.AddParams) (*engine.AddResult, error)
	UpdatePort(domain string, port int) (*engine.UpdateResult, error)
	UpdateRoot(domain, root string) (*engine.UpdateResult, error)
	Remove(domain string, reload bool) (*engine.RemoveResult, error)
	Upload(target, content string, reload bool) (*engine.UploadResult, error)
}

// EngineFactory creates engine instances from loaded configuration
type EngineFactory interface {
	Create(cfg *config.Config) Engine
}

// RootChecker checks root privileges
type RootChecker interface {
	RequireRoot() error
}

// StdinReader reads from stdin
type StdinReader interface {
	ReadString(delim byte) (string, error)
}

// Package-level dependencies (can be overridden for testing)
var deps = &Dependencies{
	ConfigLoader:  &realConfigLoader{},
	EngineFactory: &realEngineFactory{},
	RootChecker:   &realRootChecker{},
	StdinReader:   &realStdinReader{},
}

// SetDeps replaces the package dependencies (for testing)
func SetDeps(d *Dependencies) {
	deps = d
}

// GetDeps returns the current dependencies (for testing)
func GetDeps() *Dependencies {
	return deps
}

// Real implementations that delegate to existing functions

type realConfigLoader struct{}

func (r *realConfigLoader) Load() (*config.Config, error) {
	return config.Load()
}

func (r *realConfigLoader) Save(cfg *config.Config) error {
	return cfg.Save()
}

type realEngineFactory struct{}

func (r *realEngineFactory) Create(cfg *config.Config) Engine {
	return engine.NewFromConfig(cfg)
}

type realRootChecker struct{}

func (r *realRootChecker) RequireRoot() error {
	if os.Geteuid() != 0 {
		return errRootRequired
	}
	return nil
}

type realStdinReader struct {
	reader *bufio.Reader
}

func (r *realStdinReader) ReadString(delim byte) (string, error) {
	if r.reader == nil {
		r.reader = bufio.NewReader(os.Stdin)
	}
	return r.reader.ReadString(delim)
}
