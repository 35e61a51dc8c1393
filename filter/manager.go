package filter

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Presets holds named filters loaded from configuration
type Presets struct {
	compiler *Compiler
	filters  map[string]*Filter
	mu       sync.RWMutex
}

// NewPresets creates an empty preset registry backed by compiler.
// A nil compiler selects NewCompiler().
func NewPresets(compiler *Compiler) *Presets {
	if compiler == nil {
		compiler = NewCompiler()
	}
	return &Presets{
		compiler: compiler,
		filters:  make(map[string]*Filter),
	}
}

// Register compiles and stores a preset, replacing any previous one
func (p *Presets) Register(name, expression string) error {
	f, err := p.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile preset '%s': %w", name, err)
	}

	p.mu.Lock()
	p.filters[name] = f
	p.mu.Unlock()

	return nil
}

// RegisterAll compiles every preset first and stores them only if all compile
func (p *Presets) RegisterAll(presets map[string]string) error {
	compiled := make(map[string]*Filter, len(presets))

	for name, expression := range presets {
		f, err := p.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile preset '%s': %w", name, err)
		}
		compiled[name] = f
	}

	p.mu.Lock()
	maps.Copy(p.filters, compiled)
	p.mu.Unlock()

	return nil
}

// Get returns a preset by name
func (p *Presets) Get(name string) (*Filter, error) {
	p.mu.RLock()
	f, ok := p.filters[name]
	p.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return f, nil
}

// Names returns the registered preset names, sorted
func (p *Presets) Names() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return slices.Sorted(maps.Keys(p.filters))
}

// Resolve picks the filter for a command invocation: an explicit expression
// wins over a preset name. Both empty yields a nil filter, which matches all.
func (p *Presets) Resolve(expression, preset string) (*Filter, error) {
	switch {
	case expression != "":
		return p.compiler.Compile(expression)
	case preset != "":
		return p.Get(preset)
	default:
		return nil, nil
	}
}
