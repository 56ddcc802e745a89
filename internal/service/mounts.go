package service

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vilaca/issue-dashboard/internal/state"
)

// Mount is one open dashboard view: its own controller, credential and lifecycle.
type Mount struct {
	ID         string
	Controller *state.Controller
	Credential string
	CreatedAt  time.Time

	mu         sync.Mutex
	lastSeen   time.Time
	navigateTo string
}

// Navigate records a pending navigation; the next request for the mount follows it.
func (m *Mount) Navigate(route string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.navigateTo = route
}

// PendingNavigation returns the route to navigate to, if the navigation timer has fired.
func (m *Mount) PendingNavigation() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.navigateTo, m.navigateTo != ""
}

func (m *Mount) touch(now time.Time) {
	m.mu.Lock()
	m.lastSeen = now
	m.mu.Unlock()
}

func (m *Mount) idleSince() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastSeen
}

// MountStore keeps the open mounts and tears down idle ones in the background.
type MountStore struct {
	ttl           time.Duration
	sweepInterval time.Duration
	logger        *zap.Logger
	now           func() time.Time

	mu     sync.RWMutex
	mounts map[string]*Mount

	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

// NewMountStore creates a store whose mounts expire after ttl without requests.
func NewMountStore(ttl time.Duration, logger *zap.Logger) *MountStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	sweep := ttl / 2
	if sweep < time.Second {
		sweep = time.Second
	}
	return &MountStore{
		ttl:           ttl,
		sweepInterval: sweep,
		logger:        logger,
		now:           time.Now,
		mounts:        make(map[string]*Mount),
		stopChan:      make(chan struct{}),
	}
}

// Create opens a new mount for credential.
func (s *MountStore) Create(credential string) *Mount {
	now := s.now()
	m := &Mount{
		ID:         uuid.NewString(),
		Controller: state.New(),
		Credential: credential,
		CreatedAt:  now,
		lastSeen:   now,
	}

	s.mu.Lock()
	s.mounts[m.ID] = m
	s.mu.Unlock()

	s.logger.Debug("mount created", zap.String("mount", m.ID))
	return m
}

// Get returns the mount with id and marks it as recently used.
func (s *MountStore) Get(id string) (*Mount, bool) {
	s.mu.RLock()
	m, ok := s.mounts[id]
	s.mu.RUnlock()

	if !ok {
		return nil, false
	}
	m.touch(s.now())
	return m, true
}

// Remove tears down the mount with id. Unknown ids are ignored.
func (s *MountStore) Remove(id string) {
	s.mu.Lock()
	m, ok := s.mounts[id]
	delete(s.mounts, id)
	s.mu.Unlock()

	if ok {
		m.Controller.Close()
		s.logger.Debug("mount removed", zap.String("mount", id))
	}
}

// Len returns the number of open mounts.
func (s *MountStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mounts)
}

// Sweep tears down every mount idle for longer than the TTL and returns how many were removed.
func (s *MountStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	var expired []*Mount
	s.mu.Lock()
	for id, m := range s.mounts {
		if m.idleSince().Before(cutoff) {
			expired = append(expired, m)
			delete(s.mounts, id)
		}
	}
	s.mu.Unlock()

	for _, m := range expired {
		m.Controller.Close()
	}
	return len(expired)
}

// Start begins periodic sweeping. Non-blocking.
func (s *MountStore) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	s.logger.Info("mount sweeper starting", zap.Duration("ttl", s.ttl), zap.Duration("interval", s.sweepInterval))

	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop stops sweeping and tears down every remaining mount.
func (s *MountStore) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	close(s.stopChan)
	s.wg.Wait()

	s.mu.Lock()
	remaining := s.mounts
	s.mounts = make(map[string]*Mount)
	s.mu.Unlock()

	for _, m := range remaining {
		m.Controller.Close()
	}
	s.logger.Info("mount sweeper stopped", zap.Int("closed", len(remaining)))
}

func (s *MountStore) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Info("expired idle mounts", zap.Int("removed", removed))
			}
		case <-s.stopChan:
			return
		}
	}
}
