package linter

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// ===== Errors =====

// errEngineNotFound is returned when no engine is registered under a name.
type errEngineNotFound struct {
	Name string
}

func (e *errEngineNotFound) Error() string {
	return fmt.Sprintf("engine not found: %s", e.Name)
}

// errProviderNotFound is returned when no provider serves a language category.
type errProviderNotFound struct {
	Language string
	Name     string
}

func (e *errProviderNotFound) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("no diagnostics provider for %s", e.Language)
	}
	return fmt.Sprintf("diagnostics provider %q not registered for %s", e.Name, e.Language)
}

var (
	errNilFactory = fmt.Errorf("cannot register nil engine factory")
	errNilScan    = fmt.Errorf("cannot register provider without scan function")
)

// ===== Registry =====

// EngineRegistration contains all metadata for an engine.
type EngineRegistration struct {
	Name       string
	Factory    EngineFactory
	Languages  []string
	ConfigFile string // Project config filename (e.g., ".jshintrc"); empty if none
}

// ProviderRegistration is a named diagnostics provider for a language category.
type ProviderRegistration struct {
	Provider schema.Provider
	Scan     ScanFunc
}

// Registry manages engine and provider registrations.
type Registry struct {
	mu        sync.RWMutex
	engines   map[string]*EngineRegistration
	providers map[string][]*ProviderRegistration // language -> providers in registration order
}

var (
	globalRegistry *Registry
	once           sync.Once
)

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		engines:   make(map[string]*EngineRegistration),
		providers: make(map[string][]*ProviderRegistration),
	}
}

// Global returns the singleton registry instance.
func Global() *Registry {
	once.Do(func() {
		globalRegistry = NewRegistry()
	})
	return globalRegistry
}

// RegisterEngine registers an engine factory under a name.
func (r *Registry) RegisterEngine(name string, factory EngineFactory, languages []string, configFile string) error {
	if factory == nil {
		return errNilFactory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Warn on duplicate registration (init order issues)
	if _, exists := r.engines[name]; exists {
		slog.Warn("engine already registered, ignoring duplicate", "engine", name)
		return nil
	}

	r.engines[name] = &EngineRegistration{
		Name:       name,
		Factory:    factory,
		Languages:  append([]string(nil), languages...),
		ConfigFile: configFile,
	}
	return nil
}

// NewEngine builds the engine registered under name.
func (r *Registry) NewEngine(name string, opts EngineOptions) (Engine, error) {
	r.mu.RLock()
	reg, ok := r.engines[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &errEngineNotFound{Name: name}
	}
	return reg.Factory(opts), nil
}

// GetConfigFile returns the project config filename for an engine.
func (r *Registry) GetConfigFile(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if reg, ok := r.engines[name]; ok {
		return reg.ConfigFile
	}
	return ""
}

// EngineNames returns all registered engine names, sorted.
func (r *Registry) EngineNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildLanguageMapping builds language->engines mapping from registrations.
func (r *Registry) BuildLanguageMapping() map[string][]string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mapping := make(map[string][]string)
	for name, reg := range r.engines {
		for _, lang := range reg.Languages {
			mapping[lang] = append(mapping[lang], name)
		}
	}
	for lang := range mapping {
		sort.Strings(mapping[lang])
	}
	return mapping
}

// RegisterProvider registers a named diagnostics provider for a language
// category. Registering the same name twice for a language replaces the
// previous scan function.
func (r *Registry) RegisterProvider(language, name string, scan ScanFunc) error {
	if scan == nil {
		return errNilScan
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	reg := &ProviderRegistration{
		Provider: schema.Provider{Name: name, Language: language},
		Scan:     scan,
	}

	existing := r.providers[language]
	for i, p := range existing {
		if p.Provider.Name == name {
			existing[i] = reg
			return nil
		}
	}
	r.providers[language] = append(existing, reg)
	return nil
}

// Provider returns a provider for a language. An empty name selects the
// first provider registered for the language.
func (r *Registry) Provider(language, name string) (*ProviderRegistration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.providers[language] {
		if name == "" || p.Provider.Name == name {
			return p, nil
		}
	}
	return nil, &errProviderNotFound{Language: language, Name: name}
}

// Providers lists providers registered for a language.
func (r *Registry) Providers(language string) []schema.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schema.Provider, 0, len(r.providers[language]))
	for _, p := range r.providers[language] {
		out = append(out, p.Provider)
	}
	return out
}

// Languages returns the language categories that have providers, sorted.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	langs := make([]string, 0, len(r.providers))
	for lang := range r.providers {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}
