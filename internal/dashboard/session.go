package dashboard

import (
	"crypto/sha256"
	"errors"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// SessionName is the cookie holding the dashboard session.
const SessionName = "issue-dashboard-session"

const (
	credentialKey = "credential"
	mountIDKey    = "mount_id"
)

// SessionManager stores the admin credential and current mount id in a signed, encrypted cookie.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a cookie session store. An empty key gets a random
// per-process key, so sessions do not survive a restart.
func NewSessionManager(key string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var hashKey, blockKey []byte
	if key == "" {
		hashKey = securecookie.GenerateRandomKey(64)
		blockKey = securecookie.GenerateRandomKey(32)
		if hashKey == nil || blockKey == nil {
			return nil, errors.New("failed to generate session keys")
		}
		logger.Warn("SESSION_KEY not set; using a random key, sessions end on restart")
	} else {
		if len(key) < 32 {
			logger.Warn("session key is short; 32+ chars recommended", zap.Int("length", len(key)))
		}
		hashKey = []byte(key)
		blockKey = deriveBlockKey(key)
	}

	store := sessions.NewCookieStore(hashKey, blockKey)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session store initialized", zap.Bool("secure", secure))
	return &SessionManager{store: store}, nil
}

// deriveBlockKey returns a 32 byte AES key from key.
func deriveBlockKey(key string) []byte {
	sum := sha256.Sum256([]byte("block:" + key))
	return sum[:]
}

// Session is one request's view of the cookie session.
type Session struct {
	raw *sessions.Session
}

// Get loads the session for r. A cookie that fails to decode yields a fresh session.
func (m *SessionManager) Get(r *http.Request) *Session {
	sess, _ := m.store.Get(r, SessionName)
	return &Session{raw: sess}
}

// Credential returns the stored bearer credential, or "".
func (s *Session) Credential() string {
	return getString(s.raw, credentialKey)
}

// SetCredential stores the bearer credential.
func (s *Session) SetCredential(credential string) {
	s.raw.Values[credentialKey] = credential
}

// SignedIn reports whether a credential is stored.
func (s *Session) SignedIn() bool {
	return s.Credential() != ""
}

// MountID returns the id of the browser's current dashboard mount, or "".
func (s *Session) MountID() string {
	return getString(s.raw, mountIDKey)
}

// SetMountID records the current mount. An empty id clears it.
func (s *Session) SetMountID(id string) {
	if id == "" {
		delete(s.raw.Values, mountIDKey)
		return
	}
	s.raw.Values[mountIDKey] = id
}

// AddFlash queues a one-time message for the next page.
func (s *Session) AddFlash(msg string) {
	s.raw.AddFlash(msg)
}

// Flashes pops queued messages. The session must be saved afterwards.
func (s *Session) Flashes() []string {
	var out []string
	for _, f := range s.raw.Flashes() {
		if msg, ok := f.(string); ok {
			out = append(out, msg)
		}
	}
	return out
}

// Clear drops every value and expires the cookie on save.
func (s *Session) Clear() {
	s.raw.Values = make(map[interface{}]interface{})
	s.raw.Options.MaxAge = -1
}

// Save writes the session cookie. Call before writing the response body.
func (s *Session) Save(w http.ResponseWriter, r *http.Request) error {
	return s.raw.Save(r, w)
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}
