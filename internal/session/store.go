// Package session keeps the in-memory state of returns being edited.
//
// Each session holds one immutable Snapshot: the raw situation plus the
// return derived from it. Mutations for a session are serialized by a
// per-session mutex; readers load the current snapshot without locking and
// always see a situation and return computed together.
package session

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"tax-engine/internal/engine"
	"tax-engine/internal/jsonpatch"
	"tax-engine/internal/model"
)

var ErrNotFound = errors.New("session not found")

// Snapshot is one consistent state of a session. It is never modified after
// it has been published.
type Snapshot struct {
	Version   int                        `json:"version"`
	Situation model.Situation            `json:"situation"`
	Return    *model.TaxReturn           `json:"return"`
	Messages  []model.CalculationMessage `json:"messages"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

// Result describes one Apply call. On failure Snapshot is the unchanged
// current state and Patch is empty.
type Result struct {
	SessionID string                     `json:"session_id"`
	Outcome   string                     `json:"outcome"`
	Messages  []model.CalculationMessage `json:"messages"`
	Mutations []model.ProcessedMutation  `json:"mutations"`
	Patch     []jsonpatch.Op             `json:"patch"`
	Snapshot  *Snapshot                  `json:"snapshot"`
}

type session struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

func newSession() *session {
	s := &session{}
	s.current.Store(&Snapshot{UpdatedAt: time.Now().UTC()})
	return s
}

// Store is safe for concurrent use. Sessions never contend with each other.
type Store struct {
	engine   *engine.Engine
	sessions sync.Map
	log      *zap.Logger
}

func NewStore(e *engine.Engine, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{engine: e, log: log}
}

// lock returns the session registered under id, creating it if needed, with
// its mutex held. A session dropped while we waited for its lock is not
// returned.
func (s *Store) lock(id string) *session {
	for {
		v, _ := s.sessions.LoadOrStore(id, newSession())
		sess := v.(*session)
		sess.mu.Lock()
		if cur, ok := s.sessions.Load(id); ok && cur == sess {
			return sess
		}
		sess.mu.Unlock()
	}
}

// Get returns the current snapshot of a session.
func (s *Store) Get(id string) (*Snapshot, error) {
	v, ok := s.sessions.Load(id)
	if !ok {
		return nil, ErrNotFound
	}
	return v.(*session).current.Load(), nil
}

// Delete drops a session. It reports whether the session existed.
func (s *Store) Delete(id string) bool {
	_, ok := s.sessions.LoadAndDelete(id)
	if ok {
		s.log.Info("session deleted", zap.String("session_id", id))
	}
	return ok
}

// Apply runs muts against the session's situation, creating the session if
// needed, and recomputes the return. The new snapshot is published only when
// every mutation and the computation succeed; otherwise the session keeps its
// previous state. A session whose first batch fails is not kept.
func (s *Store) Apply(id string, muts []model.Mutation) (*Result, error) {
	sess := s.lock(id)
	defer sess.mu.Unlock()

	prev := sess.current.Load()
	sit := prev.Situation.Clone()

	log := &engine.MessageLog{}
	processed := engine.ApplyMutations(&sit, muts, log)

	var ret *model.TaxReturn
	if !log.Critical() {
		ret = s.engine.ComputeLogged(&sit, log)
	}

	res := &Result{
		SessionID: id,
		Messages:  log.Messages,
		Mutations: processed,
		Patch:     []jsonpatch.Op{},
	}
	if res.Messages == nil {
		res.Messages = []model.CalculationMessage{}
	}

	if log.Critical() {
		res.Outcome = model.OutcomeFailure
		res.Snapshot = prev
		if prev.Version == 0 {
			s.sessions.CompareAndDelete(id, sess)
		}
		s.log.Info("session mutations rejected",
			zap.String("session_id", id),
			zap.Int("version", prev.Version),
			zap.Int("messages", len(res.Messages)),
		)
		return res, nil
	}

	patch, err := jsonpatch.Between(prev.Return, ret)
	if err != nil {
		return nil, err
	}

	next := &Snapshot{
		Version:   prev.Version + 1,
		Situation: sit,
		Return:    ret,
		Messages:  res.Messages,
		UpdatedAt: time.Now().UTC(),
	}
	sess.current.Store(next)

	res.Outcome = model.OutcomeSuccess
	res.Patch = patch
	res.Snapshot = next

	s.log.Info("session recomputed",
		zap.String("session_id", id),
		zap.Int("version", next.Version),
		zap.Int("mutations", len(muts)),
		zap.Int("patch_ops", len(patch)),
	)
	return res, nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	n := 0
	s.sessions.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
