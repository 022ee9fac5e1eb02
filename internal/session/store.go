package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const CookieName = "storefront_session"

type contextKey struct{}

type entry struct {
	session  *Session
	lastSeen time.Time
}

// Store keeps sessions in memory, keyed by an opaque UUID carried in a
// cookie. Entries idle past the TTL are dropped by a background sweep.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
	}
}

// StartSweeper evicts expired sessions every interval until ctx is done.
func (st *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				st.sweep(time.Now())
			}
		}
	}()
}

func (st *Store) sweep(now time.Time) {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, e := range st.sessions {
		if now.Sub(e.lastSeen) > st.ttl {
			delete(st.sessions, id)
		}
	}
}

func (st *Store) lookup(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.sessions[id]
	if !ok {
		return nil
	}
	e.lastSeen = time.Now()
	return e.session
}

func (st *Store) create() *Session {
	sess := newSession(uuid.NewString())
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[sess.ID()] = &entry{session: sess, lastSeen: time.Now()}
	return sess
}

// Middleware attaches the visitor's session to the request context, creating
// one (and setting the cookie) on first contact.
func (st *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sess *Session
		if c, err := r.Cookie(CookieName); err == nil {
			sess = st.lookup(c.Value)
		}
		if sess == nil {
			sess = st.create()
			http.SetCookie(w, &http.Cookie{
				Name:     CookieName,
				Value:    sess.ID(),
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), contextKey{}, sess)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the session attached by Middleware, or nil outside of
// it.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(contextKey{}).(*Session)
	return sess
}
