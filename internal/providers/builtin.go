package providers

import "sync"

// Builtin returns a registry with every bundled provider registered.
func Builtin(opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, p := range []Provider{
		NewVSCode(),
		NewZed(),
		NewHelix(),
		NewAlacritty(),
		NewKitty(),
		NewWarp(),
		NewWindowsTerminal(),
		NewSlack(),
		NewGimp(),
		NewGlamour(),
		NewChroma(),
		NewShadcn(),
	} {
		r.MustRegister(p)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry of bundled providers.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = Builtin()
	})
	return defaultRegistry
}

// Get retrieves a provider from the default registry by id.
func Get(id string) (Provider, bool) {
	return Default().Get(id)
}

// List returns all providers of the default registry.
func List() []Provider {
	return Default().List()
}

// IDs returns the ids of all providers in the default registry.
func IDs() []string {
	return Default().IDs()
}
