package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ksyq12/vhostcfg/internal/config"
	"github.com/ksyq12/vhostcfg/internal/engine"
	"github.com/ksyq12/vhostcfg/internal/site"
)

// MockConfigLoader is a test double for ConfigLoader
type MockConfigLoader struct {
	Cfg       *config.Config
	LoadErr   error
	SaveErr   error
	SaveCalls int
}

func (m *MockConfigLoader) Load() (*config.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	if m.Cfg == nil {
		m.Cfg = config.New()
	}
	return m.Cfg, nil
}

func (m *MockConfigLoader) Save(cfg *config.Config) error {
	m.SaveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Cfg = cfg
	return nil
}

// MockEngine is a test double for Engine
type MockEngine struct {
	ListFunc       func() ([]*site.Record, error)
	GetFunc        func(domain string) (*site.Record, error)
	AddFunc        func(p engine.AddParams) (*engine.AddResult, error)
	UpdatePortFunc func(domain string, port int) (*engine.UpdateResult, error)
	UpdateRootFunc func(domain, root string) (*engine.UpdateResult, error)
	RemoveFunc     func(domain string, reload bool) (*engine.RemoveResult, error)
	UploadFunc     func(target, content string, reload bool) (*engine.UploadResult, error)

	ListCalls   int
	AddCalls    []engine.AddParams
	RemoveCalls []string
	UploadCalls []string
}

func (m *MockEngine) List() ([]*site.Record, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc()
	}
	return nil, nil
}

func (m *MockEngine) Get(domain string) (*site.Record, error) {
	if m.GetFunc != nil {
		return m.GetFunc(domain)
	}
	return nil, fmt.Errorf("no GetFunc configured")
}

func (m *MockEngine) Add(p engine.AddParams) (*engine.AddResult, error) {
	m.AddCalls = append(m.AddCalls, p)
	if m.AddFunc != nil {
		return m.AddFunc(p)
	}
	return &engine.AddResult{Domain: p.Domain}, nil
}

func (m *MockEngine) UpdatePort(domain string, port int) (*engine.UpdateResult, error) {
	if m.UpdatePortFunc != nil {
		return m.UpdatePortFunc(domain, port)
	}
	return &engine.UpdateResult{Domain: domain}, nil
}

func (m *MockEngine) UpdateRoot(domain, root string) (*engine.UpdateResult, error) {
	if m.UpdateRootFunc != nil {
		return m.UpdateRootFunc(domain, root)
	}
	return &engine.UpdateResult{Domain: domain}, nil
}

func (m *MockEngine) Remove(domain string, reload bool) (*engine.RemoveResult, error) {
	m.RemoveCalls = append(m.RemoveCalls, domain)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(domain, reload)
	}
	return &engine.RemoveResult{Domain: domain}, nil
}

func (m *MockEngine) Upload(target, content string, reload bool) (*engine.UploadResult, error) {
	m.UploadCalls = append(m.UploadCalls, target)
	if m.UploadFunc != nil {
		return m.UploadFunc(target, content, reload)
	}
	return &engine.UploadResult{Target: target}, nil
}

// MockEngineFactory is a test double for EngineFactory
type MockEngineFactory struct {
	Engine Engine
}

func (m *MockEngineFactory) Create(cfg *config.Config) Engine {
	if m.Engine != nil {
		return m.Engine
	}
	return &MockEngine{}
}

// MockRootChecker is a test double for RootChecker
type MockRootChecker struct {
	IsRoot bool
	Calls  int
}

func (m *MockRootChecker) RequireRoot() error {
	m.Calls++
	if !m.IsRoot {
		return errors.New("this operation requires root privileges. Please run with sudo")
	}
	return nil
}

// MockStdinReader is a test double for StdinReader
type MockStdinReader struct {
	Input string
	pos   int
}

func (m *MockStdinReader) ReadString(delim byte) (string, error) {
	if m.pos >= len(m.Input) {
		return "", errors.New("EOF")
	}
	idx := strings.IndexByte(m.Input[m.pos:], delim)
	if idx == -1 {
		result := m.Input[m.pos:]
		m.pos = len(m.Input)
		return result, nil
	}
	result := m.Input[m.pos : m.pos+idx+1]
	m.pos += idx + 1
	return result, nil
}

// MockDependenciesBuilder helps create mock dependencies for tests
type MockDependenciesBuilder struct {
	deps *Dependencies
}

// NewMockDeps creates a new MockDependenciesBuilder with sensible defaults
func NewMockDeps() *MockDependenciesBuilder {
	return &MockDependenciesBuilder{
		deps: &Dependencies{
			ConfigLoader:  &MockConfigLoader{Cfg: config.New()},
			EngineFactory: &MockEngineFactory{},
			RootChecker:   &MockRootChecker{IsRoot: true},
			StdinReader:   &MockStdinReader{Input: "y\n"},
		},
	}
}

// WithConfig sets the config for the mock
func (b *MockDependenciesBuilder) WithConfig(cfg *config.Config) *MockDependenciesBuilder {
	b.deps.ConfigLoader = &MockConfigLoader{Cfg: cfg}
	return b
}

// WithEngine sets the engine for the mock
func (b *MockDependenciesBuilder) WithEngine(eng Engine) *MockDependenciesBuilder {
	b.deps.EngineFactory = &MockEngineFactory{Engine: eng}
	return b
}

// WithRootAccess sets whether root access is available
func (b *MockDependenciesBuilder) WithRootAccess(isRoot bool) *MockDependenciesBuilder {
	b.deps.RootChecker = &MockRootChecker{IsRoot: isRoot}
	return b
}

// WithStdinInput sets the stdin input for the mock
func (b *MockDependenciesBuilder) WithStdinInput(input string) *MockDependenciesBuilder {
	b.deps.StdinReader = &MockStdinReader{Input: input}
	return b
}

// Build returns the configured Dependencies
func (b *MockDependenciesBuilder) Build() *Dependencies {
	return b.deps
}

// errRootRequired is the sentinel error for root privilege check
var errRootRequired = fmt.Errorf("this operation requires root privileges. Please run with sudo")
