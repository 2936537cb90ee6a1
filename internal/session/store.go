package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"aavkar_pos/internal/config"
	"aavkar_pos/internal/pos"
)

const (
	CookieName = "pos_terminal"
	terminalID = "terminal_id"
)

type entry struct {
	cart     *pos.Cart
	lastSeen time.Time
}

// Store keeps one cart per POS terminal. The terminal is recognised by a
// signed cookie holding its id; carts live in memory only and are dropped
// after sitting idle.
type Store struct {
	mu      sync.Mutex
	carts   map[string]*entry
	cookies *sessions.CookieStore
	idle    time.Duration
	now     func() time.Time
	log     *zap.Logger
}

func NewStore(cfg config.SessionConfig, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	cookies := sessions.NewCookieStore([]byte(cfg.Secret))
	cookies.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.Idle / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Store{
		carts:   make(map[string]*entry),
		cookies: cookies,
		idle:    cfg.Idle,
		now:     time.Now,
		log:     log.Named("session"),
	}
}

// Cart returns the terminal id and cart of the request, starting a new
// terminal session when there is none. The cookie is written on every call
// so its expiry follows the last activity, like the idle sweep does. A
// cookie from before a restart gets a fresh empty cart under the same id.
func (s *Store) Cart(w http.ResponseWriter, r *http.Request) (string, *pos.Cart, error) {
	// A cookie that fails verification still yields a usable new session.
	sess, _ := s.cookies.Get(r, CookieName)

	id, _ := sess.Values[terminalID].(string)
	started := id == ""
	if started {
		id = uuid.NewString()
		sess.Values[terminalID] = id
	}
	if err := sess.Save(r, w); err != nil {
		return "", nil, err
	}
	if started {
		s.log.Info("terminal session started", zap.String("terminal_id", id))
	}
	return id, s.touch(id), nil
}

func (s *Store) touch(id string) *pos.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		e = &entry{cart: pos.NewCart()}
		s.carts[id] = e
	}
	e.lastSeen = s.now()
	return e.cart
}

// Get looks a terminal's cart up without creating it.
func (s *Store) Get(id string) (*pos.Cart, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		return nil, false
	}
	return e.cart, true
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}

// Sweep drops carts idle for longer than the configured period and returns
// how many it dropped. A cart with a checkout in flight is kept.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-s.idle)
	n := 0
	for id, e := range s.carts {
		if e.lastSeen.Before(cutoff) && !e.cart.CheckoutPending() {
			delete(s.carts, id)
			n++
		}
	}
	return n
}

// Run sweeps periodically until ctx is done.
func (s *Store) Run(ctx context.Context) {
	every := s.idle / 4
	if every < time.Minute {
		every = time.Minute
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.Sweep(); n > 0 {
				s.log.Info("idle carts evicted", zap.Int("count", n), zap.Int("remaining", s.Len()))
			}
		}
	}
}
