package feed

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/sujalbistaa/socialapp/internal/log"
	"github.com/sujalbistaa/socialapp/internal/models"
	"github.com/sujalbistaa/socialapp/internal/store"
)

// Event types sent to the Publisher.
const (
	EventView        = "view"
	EventNotice      = "notice"
	EventBudget      = "budget"
	EventLike        = "like"
	EventPostCreated = "post_created"
	EventPulse       = "pulse"
	EventFocus       = "focus"
)

// Event tells the surface what changed without a full re-render.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

type Publisher interface {
	Publish(Event)
}

// Recorder counts what the controller does.
type Recorder interface {
	Intent(name string)
	PostCreated()
}

// PostActions is the capability set every rendered post exposes.
type PostActions interface {
	OnLike(ctx context.Context, id int64) error
	OnComment(ctx context.Context, id int64) error
	OnShare(ctx context.Context, id int64) error
}

// PulseEvent switches a transient highlight on or off.
type PulseEvent struct {
	Key string `json:"key"`
	On  bool   `json:"on"`
}

type Options struct {
	Operator    string
	SubmitDelay time.Duration
	PulseFor    time.Duration
	Clock       Clock
	Now         func() time.Time
	Rand        *rand.Rand
	Publisher   Publisher
	Recorder    Recorder
}

func (o *Options) defaults() {
	if o.Operator == "" {
		o.Operator = "You"
	}
	if o.Clock == nil {
		o.Clock = RealClock
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Publisher == nil {
		o.Publisher = nopPublisher{}
	}
	if o.Recorder == nil {
		o.Recorder = nopRecorder{}
	}
}

// Snapshot is the input of a render.
type Snapshot struct {
	State State         `json:"state"`
	Posts []models.Post `json:"posts"`
}

// Controller owns the feed state and applies operator intents one at a time.
type Controller struct {
	mu      sync.Mutex
	repo    store.Repository
	opts    Options
	state   State
	lastID  int64
	pending *Task[models.Post]
}

var _ PostActions = (*Controller)(nil)

func New(ctx context.Context, repo store.Repository, opts Options) (*Controller, error) {
	opts.defaults()

	posts, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	c := &Controller{repo: repo, opts: opts, state: Initial()}
	for _, p := range posts {
		c.lastID = max(c.lastID, p.ID)
	}
	return c, nil
}

// Dispatch reduces intent against the current state and runs the resulting effects.
func (c *Controller) Dispatch(ctx context.Context, intent Intent) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dispatchLocked(ctx, intent)
}

func (c *Controller) dispatchLocked(ctx context.Context, intent Intent) error {
	c.opts.Recorder.Intent(intent.Name())

	prev := c.state
	next, effects := Reduce(c.state, intent)
	c.state = next

	if prev.View != next.View {
		c.opts.Publisher.Publish(Event{Type: EventView, Data: next.View})
	}
	if prev.Draft != next.Draft || prev.Submitting != next.Submitting {
		c.opts.Publisher.Publish(Event{Type: EventBudget, Data: c.composerStatus()})
	}

	var errs []error
	for _, eff := range effects {
		if err := c.apply(ctx, eff); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Controller) apply(ctx context.Context, eff Effect) error {
	switch e := eff.(type) {
	case Notify:
		c.opts.Publisher.Publish(Event{Type: EventNotice, Data: e.Message})
	case FocusComposer:
		c.opts.Publisher.Publish(Event{Type: EventFocus})
	case StartSubmit:
		c.startSubmit(e.Body)
	case ToggleLike:
		return c.toggleLike(ctx, e.ID)
	case Pulse:
		c.pulse(e.Key)
	}
	return nil
}

func (c *Controller) startSubmit(body string) {
	c.pending = StartTask(c.opts.Clock, c.opts.SubmitDelay, func(ctx context.Context) (models.Post, error) {
		return c.completeSubmit(ctx, body)
	})
}

func (c *Controller) completeSubmit(ctx context.Context, body string) (models.Post, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	post, err := c.insertFresh(ctx, body)
	if err != nil {
		log.Error.Printf("Error creating post: %v", err)
		_ = c.dispatchLocked(ctx, SubmitFailed{Err: err})
		return models.Post{}, err
	}

	c.opts.Recorder.PostCreated()
	c.opts.Publisher.Publish(Event{Type: EventPostCreated, Data: post})
	return post, c.dispatchLocked(ctx, SubmitDone{Post: post})
}

// insertFresh stores a new post, stepping past ids already taken.
func (c *Controller) insertFresh(ctx context.Context, body string) (models.Post, error) {
	const attempts = 5
	color := models.RandomColor(c.opts.Rand)
	for i := 0; i < attempts; i++ {
		post := models.NewPost(c.nextID(), c.opts.Operator, body, color)
		err := c.repo.Insert(ctx, post)
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, store.ErrDuplicateID) {
			return models.Post{}, err
		}
	}
	return models.Post{}, fmt.Errorf("no free post id after %d attempts: %w", attempts, store.ErrDuplicateID)
}

// nextID is the creation time in milliseconds, bumped to stay strictly increasing.
func (c *Controller) nextID() int64 {
	id := c.opts.Now().UnixMilli()
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Controller) toggleLike(ctx context.Context, id int64) error {
	post, err := c.repo.FindByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		// Stale id from an earlier render.
		return nil
	}
	if err != nil {
		return fmt.Errorf("find post %d: %w", id, err)
	}

	post = models.ToggleLike(post)
	if err := c.repo.Update(ctx, post); err != nil {
		return fmt.Errorf("update post %d: %w", id, err)
	}
	c.opts.Publisher.Publish(Event{Type: EventLike, Data: post})
	c.pulse(LikePulse(id))
	return nil
}

func (c *Controller) pulse(key string) {
	c.state = c.state.withPulse(key)
	c.opts.Publisher.Publish(Event{Type: EventPulse, Data: PulseEvent{Key: key, On: true}})

	after := c.opts.Clock.After(c.opts.PulseFor)
	go func() {
		<-after
		c.mu.Lock()
		defer c.mu.Unlock()
		_ = c.dispatchLocked(context.Background(), PulseDone{Key: key})
		c.opts.Publisher.Publish(Event{Type: EventPulse, Data: PulseEvent{Key: key, On: false}})
	}()
}

// ComposerStatus is the live composer feedback sent on every draft change.
type ComposerStatus struct {
	Budget     Budget `json:"budget"`
	CanSubmit  bool   `json:"canSubmit"`
	Submitting bool   `json:"submitting"`
	Label      string `json:"label"`
}

func (c *Controller) composerStatus() ComposerStatus {
	return ComposerStatus{
		Budget:     c.state.Budget(),
		CanSubmit:  c.state.CanSubmit(),
		Submitting: c.state.Submitting,
		Label:      c.state.SubmitLabel(),
	}
}

// Composer returns the current composer feedback.
func (c *Controller) Composer() ComposerStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.composerStatus()
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Snapshot returns the state together with the posts in feed order.
func (c *Controller) Snapshot(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	posts, err := c.repo.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list posts: %w", err)
	}
	return Snapshot{State: c.state, Posts: posts}, nil
}

// PendingSubmit returns the last scheduled submit, or nil if none was started.
func (c *Controller) PendingSubmit() *Task[models.Post] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

func (c *Controller) OnLike(ctx context.Context, id int64) error {
	return c.Dispatch(ctx, Like{ID: id})
}

func (c *Controller) OnComment(ctx context.Context, id int64) error {
	return c.Dispatch(ctx, Comment{ID: id})
}

func (c *Controller) OnShare(ctx context.Context, id int64) error {
	return c.Dispatch(ctx, Share{ID: id})
}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

type nopRecorder struct{}

func (nopRecorder) Intent(string) {}
func (nopRecorder) PostCreated()  {}
