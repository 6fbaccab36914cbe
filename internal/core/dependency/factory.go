package dependency

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Capability identifies an abstract collaborator a handler can ask for.
type Capability string

const (
	// ClientRepository resolves to a repository.ClientRepository.
	ClientRepository Capability = "client-repository"
	// UserFacade resolves to a facade.UserFacade.
	UserFacade Capability = "user-facade"
)

func (c Capability) String() string {
	return string(c)
}

var (
	ErrUnresolvableCapability = errors.New("unresolvable capability")
	ErrCapabilityAlreadyBound = errors.New("capability already bound")
	ErrNilProvider            = errors.New("nil provider")
)

// ResolutionError reports a capability that could not be turned into a collaborator.
type ResolutionError struct {
	Capability Capability
	Reason     string
	Err        error
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("cannot resolve %q: %s", e.Capability, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

func (e *ResolutionError) Is(target error) bool {
	return target == ErrUnresolvableCapability
}

// Provider builds a collaborator for one capability.
// It may return a new instance on every call.
type Provider func(ctx context.Context) (any, error)

// Resolver is the seam handlers use to obtain their collaborators.
type Resolver interface {
	CreateObject(ctx context.Context, capability Capability) (any, error)
}

// Factory binds capabilities to providers.
type Factory struct {
	mu        sync.RWMutex
	providers map[Capability]Provider
}

// NewFactory creates an empty factory.
func NewFactory() *Factory {
	return &Factory{providers: make(map[Capability]Provider)}
}

// Bind associates capability with provider. A capability can be bound once.
func (f *Factory) Bind(capability Capability, provider Provider) error {
	if provider == nil {
		return fmt.Errorf("%w for %q", ErrNilProvider, capability)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.providers[capability]; exists {
		return fmt.Errorf("%w: %q", ErrCapabilityAlreadyBound, capability)
	}
	f.providers[capability] = provider
	return nil
}

// BindInstance binds capability to a single shared instance.
func (f *Factory) BindInstance(capability Capability, instance any) error {
	if instance == nil {
		return fmt.Errorf("%w for %q", ErrNilProvider, capability)
	}
	return f.Bind(capability, func(context.Context) (any, error) {
		return instance, nil
	})
}

// CreateObject returns a collaborator for capability.
func (f *Factory) CreateObject(ctx context.Context, capability Capability) (any, error) {
	f.mu.RLock()
	provider, ok := f.providers[capability]
	f.mu.RUnlock()
	if !ok {
		return nil, &ResolutionError{Capability: capability, Reason: "no binding"}
	}

	instance, err := provider(ctx)
	if err != nil {
		return nil, &ResolutionError{Capability: capability, Reason: "provider failed", Err: err}
	}
	if instance == nil {
		return nil, &ResolutionError{Capability: capability, Reason: "provider returned nil"}
	}
	return instance, nil
}

// Capabilities lists the bound capabilities in a stable order.
func (f *Factory) Capabilities() []Capability {
	f.mu.RLock()
	defer f.mu.RUnlock()
	caps := make([]Capability, 0, len(f.providers))
	for c := range f.providers {
		caps = append(caps, c)
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}

// Resolve creates the collaborator for capability and asserts it implements T.
func Resolve[T any](ctx context.Context, resolver Resolver, capability Capability) (T, error) {
	var zero T
	if resolver == nil {
		return zero, &ResolutionError{Capability: capability, Reason: "no resolver"}
	}

	instance, err := resolver.CreateObject(ctx, capability)
	if err != nil {
		return zero, err
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, &ResolutionError{
			Capability: capability,
			Reason:     fmt.Sprintf("bound to %T, want %T", instance, (*T)(nil)),
		}
	}
	return typed, nil
}
