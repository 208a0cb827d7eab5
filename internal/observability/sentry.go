package observability

import (
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	lru "github.com/hashicorp/golang-lru"
)

const (
	recentEventDuration = 5 * time.Minute
	defaultRecentSize   = 100
)

type SentryParams struct {
	// DSN is the Sentry project to report to. Empty disables reporting.
	DSN string

	Release     string
	Environment string

	// RecentSize bounds the number of distinct events remembered to skip
	// repeats.
	RecentSize int
}

// NewSentryHub returns a hub that reports to Sentry, or nil if reporting
// is disabled.
//
// The same event is reported at most once every five minutes.
func NewSentryHub(params SentryParams) (*sentry.Hub, error) {
	if params.DSN == "" {
		return nil, nil
	}

	recent, err := newRecentEvents(params.RecentSize, time.Now)
	if err != nil {
		return nil, err
	}

	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:              params.DSN,
		AttachStacktrace: true,
		Release:          params.Release,
		Environment:      params.Environment,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			if !recent.shouldCapture(eventKey(event)) {
				return nil
			}
			return event
		},
	})
	if err != nil {
		return nil, err
	}
	return sentry.NewHub(client, sentry.NewScope()), nil
}

// eventKey identifies repeats of an event.
func eventKey(event *sentry.Event) string {
	if len(event.Exception) > 0 {
		ex := event.Exception[len(event.Exception)-1]
		return ex.Type + ": " + ex.Value
	}
	return event.Message
}

// recentEvents remembers when events were last reported.
type recentEvents struct {
	mu    sync.Mutex
	cache *lru.Cache
	now   func() time.Time
}

func newRecentEvents(size int, now func() time.Time) (*recentEvents, error) {
	if size <= 0 {
		size = defaultRecentSize
	}
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &recentEvents{cache: cache, now: now}, nil
}

// shouldCapture reports whether an event was not reported recently, and
// records it as reported if so.
func (r *recentEvents) shouldCapture(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if last, ok := r.cache.Get(key); ok {
		if now.Sub(last.(time.Time)) < recentEventDuration {
			return false
		}
	}
	r.cache.Add(key, now)
	return true
}
