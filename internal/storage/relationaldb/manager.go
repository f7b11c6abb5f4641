package relationaldb

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Factory creates an unopened Database for config.
type Factory func(config *Config) (Database, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Factory)
)

// Register makes a backend available to NewManager under driver. Backend
// packages call it from init.
func Register(driver string, f Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	backends[driver] = f
}

// Drivers returns the registered driver names.
func Drivers() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	out := make([]string, 0, len(backends))
	for d := range backends {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}

// Manager provides lifecycle management for the history database
type Manager struct {
	db     Database
	config *Config
	logger *zap.Logger

	// Health checking
	healthCheckInterval time.Duration
	healthCancel        context.CancelFunc
	healthWg            sync.WaitGroup

	// Connection state
	mu        sync.RWMutex
	connected bool
	lastError error
}

// ManagerOption defines functional options for Manager
type ManagerOption func(*Manager)

// WithLogger sets the logger for the manager
func WithLogger(logger *zap.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHealthCheckInterval sets the health check interval. Zero disables
// background checks.
func WithHealthCheckInterval(interval time.Duration) ManagerOption {
	return func(m *Manager) {
		m.healthCheckInterval = interval
	}
}

// NewManager creates a manager for the backend registered under
// config.Driver.
func NewManager(config *Config, options ...ManagerOption) (*Manager, error) {
	if err := config.Validate(); err != nil {
		return nil, NewConfigurationError("new_manager", "invalid configuration", err)
	}
	backendsMu.RLock()
	factory, ok := backends[config.Driver]
	backendsMu.RUnlock()
	if !ok {
		return nil, NewConfigurationError("new_manager",
			fmt.Sprintf("driver %q not linked in", config.Driver), ErrInvalidDriver)
	}
	db, err := factory(config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:                  db,
		config:              config,
		logger:              zap.NewNop(),
		healthCheckInterval: time.Minute,
	}
	for _, option := range options {
		option(manager)
	}
	manager.logger = manager.logger.Named("history")
	return manager, nil
}

// Database returns the managed database.
func (m *Manager) Database() Database {
	return m.db
}

// Open opens the database connection and starts background services
func (m *Manager) Open(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return nil
	}
	if err := m.db.Open(ctx); err != nil {
		m.lastError = err
		m.logger.Error("failed to open history database", zap.String("driver", m.config.Driver), zap.Error(err))
		return err
	}

	m.connected = true
	m.lastError = nil
	m.startHealthChecker()

	m.logger.Info("history database opened",
		zap.String("driver", m.config.Driver),
		zap.String("database", m.config.Database))
	return nil
}

// Close stops background services and closes the database
func (m *Manager) Close(ctx context.Context) error {
	m.mu.Lock()
	if !m.connected {
		m.mu.Unlock()
		return nil
	}
	m.connected = false
	cancel := m.healthCancel
	m.healthCancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.healthWg.Wait()

	if err := m.db.Close(ctx); err != nil {
		m.logger.Error("failed to close history database", zap.Error(err))
		return err
	}
	m.logger.Info("history database closed")
	return nil
}

// IsConnected returns whether the database is connected
func (m *Manager) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// LastError returns the last error encountered
func (m *Manager) LastError() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastError
}

// HealthCheck performs a manual health check
func (m *Manager) HealthCheck(ctx context.Context) error {
	if !m.IsConnected() {
		return ErrDatabaseClosed
	}
	err := m.db.Ping(ctx)

	m.mu.Lock()
	m.lastError = err
	m.mu.Unlock()

	if err != nil {
		m.logger.Warn("history health check failed", zap.Error(err), zap.Bool("retryable", IsRetryable(err)))
	}
	return err
}

// startHealthChecker must be called with m.mu held.
func (m *Manager) startHealthChecker() {
	if m.healthCheckInterval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.healthCancel = cancel

	m.healthWg.Add(1)
	go func() {
		defer m.healthWg.Done()
		ticker := time.NewTicker(m.healthCheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				_ = m.HealthCheck(ctx)
			}
		}
	}()
}
