package joins

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"datajoin/core/binder"
	"datajoin/core/join"
	"datajoin/core/source"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service errors surfaced to the handler for status mapping.
var (
	// ErrSessionNotFound means the session ID is unknown or was deleted.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionLimit means the server holds its maximum number of sessions.
	ErrSessionLimit = errors.New("session limit reached")

	// ErrPushSession means sync was requested on a session that expects
	// pushed snapshots.
	ErrPushSession = errors.New("session is push-mode; post passes instead")
)

// defaultKeyField is used when a request leaves the key field empty.
const defaultKeyField = "id"

// session is one server-held binder plus its settings. Passes on a
// single session are serialized by mu; the binder itself does not lock.
type session struct {
	mu       sync.Mutex
	id       string
	keyField string
	pull     bool
	binder   *binder.Binder[string, source.Record, string]
	created  time.Time
}

// Service implements stateless joins and server-held join sessions.
type Service struct {
	logger *zap.Logger
	cache  *source.Cache
	srcCfg source.Config
	deps   source.Deps
	limit  int

	mu       sync.RWMutex
	sessions map[string]*session
}

// NewService creates the joins service. srcCfg and deps configure the
// source that pull-mode sessions sync from; limit caps held sessions.
func NewService(logger *zap.Logger, srcCfg source.Config, deps source.Deps, limit int) *Service {
	return &Service{
		logger:   logger,
		cache:    source.NewCache(),
		srcCfg:   srcCfg,
		deps:     deps,
		limit:    limit,
		sessions: make(map[string]*session),
	}
}

// Join computes a stateless keyed join between the request's old and
// new collections. The old records themselves act as the bound
// elements; callers that track richer handles use sessions instead.
func (s *Service) Join(req JoinRequest) (*JoinResponse, error) {
	keyOf := source.KeyField(keyFieldOrDefault(req.KeyField))

	old := make([]join.Binding[string, source.Record, source.Record], 0, len(req.Old))
	for _, r := range req.Old {
		old = append(old, join.Binding[string, source.Record, source.Record]{
			Key:   keyOf(r),
			Elem:  r,
			Datum: r,
		})
	}

	res, err := join.Keyed(old, req.New, keyOf)
	if err != nil {
		return nil, err
	}

	resp := &JoinResponse{
		Entering: make([]source.Record, 0, len(res.Entering)),
		Updating: make([]UpdatePair, 0, len(res.Updating)),
		Exiting:  make([]source.Record, 0, len(res.Exiting)),
		Summary:  join.PlanOf(res).Summary,
	}
	for _, e := range res.Entering {
		resp.Entering = append(resp.Entering, e.Datum)
	}
	for _, u := range res.Updating {
		resp.Updating = append(resp.Updating, UpdatePair{Old: u.Binding.Elem, New: u.Datum})
	}
	for _, b := range res.Exiting {
		resp.Exiting = append(resp.Exiting, b.Elem)
	}

	return resp, nil
}

// CreateSession registers a new join session and returns its info.
func (s *Service) CreateSession(req CreateSessionRequest) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.limit > 0 && len(s.sessions) >= s.limit {
		return nil, ErrSessionLimit
	}

	keyField := keyFieldOrDefault(req.KeyField)
	sess := &session{
		id:       uuid.NewString(),
		keyField: keyField,
		pull:     req.Pull,
		created:  time.Now(),
	}

	// Elements held by a session are opaque server-side handles; a
	// fresh UUID per entering key demonstrates the no-resurrection
	// lifecycle to API consumers.
	sess.binder = binder.New(source.KeyField(keyField), binder.Hooks[string, source.Record, string]{
		Create: func(key string, _ source.Record) (string, error) {
			return uuid.NewString(), nil
		},
	})

	s.sessions[sess.id] = sess
	s.logger.Info("Session created",
		zap.String("session_id", sess.id),
		zap.String("key_field", keyField),
		zap.Bool("pull", sess.pull),
	)

	return snapshotInfo(sess), nil
}

// GetSession returns the session's info including its bound set.
func (s *Service) GetSession(id string) (*SessionInfo, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return snapshotInfo(sess), nil
}

// DeleteSession disposes a session and its bound elements.
func (s *Service) DeleteSession(id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if err := sess.binder.Reset(); err != nil {
		return fmt.Errorf("failed to release session %s: %w", id, err)
	}

	s.logger.Info("Session deleted", zap.String("session_id", id))
	return nil
}

// ApplyPass joins a pushed snapshot against the session's bound set.
func (s *Service) ApplyPass(id string, data []source.Record) (*PassResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.applyLocked(sess, data)
}

// SyncSession loads a snapshot from the configured source (through the
// snapshot cache) and joins it against the session's bound set.
func (s *Service) SyncSession(ctx context.Context, id string) (*PassResponse, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	if !sess.pull {
		return nil, ErrPushSession
	}

	src, err := source.New(s.srcCfg, s.deps)
	if err != nil {
		return nil, fmt.Errorf("failed to build source: %w", err)
	}

	ttl := time.Duration(s.srcCfg.CacheTTLSeconds) * time.Second
	records, err := s.cache.Load(ctx, src, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return s.applyLocked(sess, records)
}

// applyLocked runs one pass; callers hold sess.mu.
func (s *Service) applyLocked(sess *session, data []source.Record) (*PassResponse, error) {
	res, err := sess.binder.Apply(data)
	if err != nil {
		return nil, err
	}

	plan := join.PlanOf(res)
	s.logger.Info("Pass applied",
		zap.String("session_id", sess.id),
		zap.Int("pass", sess.binder.Passes()),
		zap.Int("entering", plan.Summary.Entering),
		zap.Int("updating", plan.Summary.Updating),
		zap.Int("exiting", plan.Summary.Exiting),
	)

	return &PassResponse{
		Pass:  sess.binder.Passes(),
		Bound: sess.binder.Len(),
		Plan:  plan,
	}, nil
}

func (s *Service) lookup(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func snapshotInfo(sess *session) *SessionInfo {
	bound := sess.binder.Bound()
	entries := make([]BoundEntry, 0, len(bound))
	for _, b := range bound {
		entries = append(entries, BoundEntry{Key: b.Key, Elem: b.Elem})
	}

	return &SessionInfo{
		ID:       sess.id,
		KeyField: sess.keyField,
		Pull:     sess.pull,
		Passes:   sess.binder.Passes(),
		Bound:    entries,
		Created:  sess.created,
	}
}

func keyFieldOrDefault(f string) string {
	if f == "" {
		return defaultKeyField
	}
	return f
}
