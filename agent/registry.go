// This file defines the capability registry: the ordered, read-only-after-
// startup collection of capabilities offered to the language model.
package agent

import (
	"fmt"
	"strings"
)

// Registry maps capability names to their descriptors and implementations.
// It is built once at startup, read-only thereafter, and passed by reference
// into the session loop — there is no hidden global catalog.
type Registry struct {
	capabilities map[string]Capability
	order        []string
}

// NewRegistry creates an empty registry and registers the provided
// capabilities in order. Registration errors abort construction.
func NewRegistry(capabilities ...Capability) (*Registry, error) {
	registry := &Registry{
		capabilities: make(map[string]Capability, len(capabilities)),
	}
	for _, capability := range capabilities {
		if err := registry.Register(capability); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// Register adds a capability to the registry. It fails with a
// duplicate_capability error if a capability with the same name is already
// registered, and never overwrites.
func (r *Registry) Register(capability Capability) error {
	if capability == nil {
		return NewError(CodeInvalidArguments, "capability is nil")
	}
	name := strings.TrimSpace(capability.GetName())
	if name == "" {
		return NewError(CodeInvalidArguments, "capability name is empty")
	}
	if _, exists := r.capabilities[name]; exists {
		return NewError(CodeDuplicateCapability, fmt.Sprintf("capability '%s' already registered", name))
	}
	r.capabilities[name] = capability
	r.order = append(r.order, name)
	return nil
}

// Catalog returns the registered capabilities in registration order. The
// sequence is used verbatim to build the capability-offer payload sent to
// the model.
func (r *Registry) Catalog() []Capability {
	catalog := make([]Capability, 0, len(r.order))
	for _, name := range r.order {
		catalog = append(catalog, r.capabilities[name])
	}
	return catalog
}

// Resolve returns the capability registered under name, or an
// unknown_capability error if absent. Since the model is only ever offered
// names present in the registry, a failed resolve indicates a protocol
// violation and is treated as fatal to the current turn, not retried.
func (r *Registry) Resolve(name string) (Capability, error) {
	capability, ok := r.capabilities[name]
	if !ok {
		return nil, NewError(CodeUnknownCapability, fmt.Sprintf("capability '%s' is not registered", name))
	}
	return capability, nil
}

// Size returns the number of registered capabilities.
func (r *Registry) Size() int {
	return len(r.order)
}
