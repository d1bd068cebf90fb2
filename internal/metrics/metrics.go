package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Feed counts operator intents and created posts.
type Feed struct {
	intents *prometheus.CounterVec
	posts   prometheus.Counter
}

// NewFeed creates the collectors and registers them with reg.
func NewFeed(reg prometheus.Registerer) *Feed {
	f := &Feed{
		intents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "socialapp",
			Name:      "intents_total",
			Help:      "Intents dispatched to the feed controller, by name.",
		}, []string{"intent"}),
		posts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "socialapp",
			Name:      "posts_created_total",
			Help:      "Posts created through the composer.",
		}),
	}
	reg.MustRegister(f.intents, f.posts)
	return f
}

func (f *Feed) Intent(name string) { f.intents.WithLabelValues(name).Inc() }

func (f *Feed) PostCreated() { f.posts.Inc() }
