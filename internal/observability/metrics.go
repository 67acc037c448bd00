package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled requests by route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoes_http_requests_total",
		Help: "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})

	// HTTPLatency records request latency by route.
	HTTPLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "echoes_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// PostsCreated counts new posts by kind; reposts are labelled "repost".
	PostsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoes_posts_created_total",
		Help: "Total number of posts created",
	}, []string{"kind"})

	CommentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echoes_comments_created_total",
		Help: "Total number of comments created",
	})

	// LikeToggles counts like toggles by resulting action (like/unlike).
	LikeToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoes_like_toggles_total",
		Help: "Total number of like toggles by action",
	}, []string{"action"})

	// FollowToggles counts follow toggles by resulting action (follow/unfollow).
	FollowToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "echoes_follow_toggles_total",
		Help: "Total number of follow toggles by action",
	}, []string{"action"})

	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "echoes_registrations_total",
		Help: "Total number of successful registrations",
	})
)
