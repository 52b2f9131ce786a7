package service

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"brewhouse/api"
	"brewhouse/common"
	"brewhouse/state"
)

type session struct {
	once  sync.Once
	store *state.BeverageStore
}

// sessionRegistry keeps one beverage store per signed-in user.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[int]*session
	newStore func() *state.BeverageStore
}

func newSessionRegistry(newStore func() *state.BeverageStore) *sessionRegistry {
	return &sessionRegistry{
		sessions: map[int]*session{},
		newStore: newStore,
	}
}

// acquire returns the user's beverage store, loading the catalog and binding the user on first use.
func (r *sessionRegistry) acquire(user *api.User) *state.BeverageStore {
	r.mu.Lock()
	sess, ok := r.sessions[user.ID]
	if !ok {
		sess = &session{store: r.newStore()}
		r.sessions[user.ID] = sess
	}
	r.mu.Unlock()

	sess.once.Do(func() {
		// Request contexts end with the request; the session outlives it.
		sess.store.Init(context.Background())
		sess.store.SetUser(context.Background(), user)
	})

	// A release may have dropped the session while it was binding.
	r.mu.Lock()
	registered := r.sessions[user.ID] == sess
	r.mu.Unlock()
	if !registered {
		sess.store.Close()
	}
	return sess.store
}

// release unbinds and forgets the user's beverage store.
func (r *sessionRegistry) release(userID int) {
	r.mu.Lock()
	sess, ok := r.sessions[userID]
	delete(r.sessions, userID)
	r.mu.Unlock()

	if ok {
		sess.store.Close()
	}
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = map[int]*session{}
	r.mu.Unlock()

	for _, sess := range sessions {
		sess.store.Close()
	}
}

func (r *sessionRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

// currentUser loads the user the JWT middleware put in the request context.
func (s *Service) currentUser(ctx *gin.Context) (*api.User, bool) {
	_userID, ok := ctx.Get(getUserIDContextKey())
	userID, _ok := _userID.(int)
	if !ok || !_ok {
		ctx.String(http.StatusUnauthorized, "Missing user in session")
		return nil, false
	}

	user, err := s.Store.FindUser(ctx, &api.UserFind{
		ID: &userID,
	})
	if err != nil {
		if common.ErrorCode(err) == common.NotFound {
			ctx.String(http.StatusUnauthorized, "Unknown user in session")
			return nil, false
		}
		ctx.String(http.StatusInternalServerError, "Failed to find user")
		return nil, false
	}
	return user, true
}

// currentBeverageStore returns the beverage store of the signed-in user.
func (s *Service) currentBeverageStore(ctx *gin.Context) (*state.BeverageStore, bool) {
	user, ok := s.currentUser(ctx)
	if !ok {
		return nil, false
	}
	return s.sessions.acquire(user), true
}
