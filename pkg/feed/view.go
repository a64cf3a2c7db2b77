package feed

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type State string

const (
	// StateIdle: user-scoped view with nobody signed in.
	StateIdle    State = "idle"
	StateLoading State = "loading"
	StateReady   State = "ready"
	// StateError: the first load failed, so there is nothing to show.
	StateError State = "error"
)

type Snapshot[T any] struct {
	State State     `json:"state"`
	Items []T       `json:"items"`
	Error string    `json:"error,omitempty"`
	At    time.Time `json:"at"`
}

func (s Snapshot[T]) Loading() bool { return s.State == StateLoading }

// Loader runs the view's query for one user. Global views get "".
type Loader[T any] func(ctx context.Context, userID string) ([]T, error)

// View mirrors one query into a Snapshot and refreshes it whenever its
// topic is published.
type View[T any] struct {
	hub        *Hub
	collection string
	scoped     bool
	load       Loader[T]
	log        *zap.Logger

	bindMu sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool

	mu  sync.Mutex
	cur Snapshot[T]
	out chan Snapshot[T]
}

// NewView creates an unbound view. scoped views filter by user and stay idle
// until bound to a non-empty user id.
func NewView[T any](hub *Hub, collection string, scoped bool, load Loader[T], log *zap.Logger) *View[T] {
	return &View[T]{
		hub:        hub,
		collection: collection,
		scoped:     scoped,
		load:       load,
		log:        log.With(zap.String("collection", collection)),
		cur:        Snapshot[T]{State: StateIdle, Items: []T{}},
		out:        make(chan Snapshot[T], 1),
	}
}

// Bind replaces any current subscription with one for userID. It returns
// once the old subscription has fully stopped.
func (v *View[T]) Bind(userID string) {
	v.bindMu.Lock()
	defer v.bindMu.Unlock()
	if v.closed {
		return
	}
	v.stop()

	if v.scoped && userID == "" {
		v.emit(Snapshot[T]{State: StateIdle, Items: []T{}, At: time.Now()})
		return
	}
	if !v.scoped {
		userID = ""
	}

	// subscribe before the first load so no write between the two is missed
	notify, unsubscribe := v.hub.Subscribe(Topic{Collection: v.collection, UserID: userID})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	v.cancel, v.done = cancel, done

	v.emit(Snapshot[T]{State: StateLoading, Items: []T{}, At: time.Now()})

	go func() {
		defer close(done)
		defer unsubscribe()
		v.refresh(ctx, userID)
		for {
			select {
			case <-ctx.Done():
				return
			case <-notify:
				v.refresh(ctx, userID)
			}
		}
	}()
}

func (v *View[T]) refresh(ctx context.Context, userID string) {
	items, err := v.load(ctx, userID)
	if ctx.Err() != nil {
		return
	}
	if err != nil {
		v.log.Warn("snapshot query failed", zap.String("uid", userID), zap.Error(err))
		prev := v.Current()
		next := Snapshot[T]{State: prev.State, Items: prev.Items, Error: err.Error(), At: time.Now()}
		if prev.State != StateReady {
			next.State = StateError
		}
		v.emit(next)
		return
	}
	if items == nil {
		items = []T{}
	}
	v.emit(Snapshot[T]{State: StateReady, Items: items, At: time.Now()})
}

// emit stores s and offers it to the reader, dropping an unread older one.
func (v *View[T]) emit(s Snapshot[T]) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.cur = s
	select {
	case <-v.out:
	default:
	}
	v.out <- s
}

func (v *View[T]) stop() {
	if v.cancel == nil {
		return
	}
	v.cancel()
	<-v.done
	v.cancel, v.done = nil, nil
}

func (v *View[T]) Current() Snapshot[T] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cur
}

// Updates delivers the latest snapshot after every change. It is closed by
// Close.
func (v *View[T]) Updates() <-chan Snapshot[T] { return v.out }

func (v *View[T]) Close() {
	v.bindMu.Lock()
	defer v.bindMu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	v.stop()

	v.mu.Lock()
	close(v.out)
	v.mu.Unlock()
}
