package ussdflow

import (
	"log/slog"
	"net/http"

	httpadapter "github.com/yawmintah/ussdflow/pkg/adapters/http"
	"github.com/yawmintah/ussdflow/pkg/adapters/memory"
	"github.com/yawmintah/ussdflow/pkg/dialstring"
	"github.com/yawmintah/ussdflow/pkg/domain"
	"github.com/yawmintah/ussdflow/pkg/engine"
	"github.com/yawmintah/ussdflow/pkg/menu"
	"github.com/yawmintah/ussdflow/pkg/ports"
	"github.com/yawmintah/ussdflow/pkg/session"
)

// Version is the release version of the module.
const Version = "0.2.0"

// Service is the high-level entry point: a wired menu, session manager
// and dialog engine ready to face a gateway.
type Service struct {
	Menu     *menu.Menu
	Sessions *session.Manager
	Engine   *engine.Engine

	store     ports.SessionStore
	locker    ports.DistributedLocker
	shortCode string
	extension string
	hooks     domain.LifecycleHooks
	logger    *slog.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service)

// WithMenu sets the menu. Defaults to the built-in reference menu.
func WithMenu(m *menu.Menu) Option {
	return func(s *Service) {
		s.Menu = m
	}
}

// WithStore injects a session store. Defaults to in-process memory.
func WithStore(store ports.SessionStore) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLocker enables distributed session locking across replicas.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(s *Service) {
		s.locker = locker
	}
}

// WithServiceAddress sets the dialed short code and extension.
// Defaults to "920" / "1802".
func WithServiceAddress(shortCode, extension string) Option {
	return func(s *Service) {
		s.shortCode = shortCode
		s.extension = extension
	}
}

// WithHooks registers observability callbacks on the engine.
func WithHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Service) {
		s.hooks = hooks
	}
}

// WithLogger sets a structured logger for all components.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New wires a Service.
func New(opts ...Option) *Service {
	s := &Service{
		shortCode: "920",
		extension: "1802",
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.Menu == nil {
		s.Menu = menu.Feelings()
	}
	if s.store == nil {
		s.store = memory.NewStore()
	}

	var mgrOpts []session.Option
	if s.locker != nil {
		mgrOpts = append(mgrOpts, session.WithLocker(s.locker))
	}
	if s.logger != nil {
		mgrOpts = append(mgrOpts, session.WithLogger(s.logger))
	}
	s.Sessions = session.NewManager(s.store, mgrOpts...)

	engOpts := []engine.Option{engine.WithHooks(s.hooks)}
	if s.logger != nil {
		engOpts = append(engOpts, engine.WithLogger(s.logger))
	}
	s.Engine = engine.New(s.Menu, s.Sessions, dialstring.NewParser(s.shortCode, s.extension), engOpts...)

	return s
}

// Handler returns the gateway-facing HTTP handler.
func (s *Service) Handler() http.Handler {
	var opts []httpadapter.Option
	if s.logger != nil {
		opts = append(opts, httpadapter.WithLogger(s.logger))
	}
	return httpadapter.NewHandler(s.Engine, opts...)
}
