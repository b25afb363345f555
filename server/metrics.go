package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var chatRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "acadassist",
	Name:      "chat_requests_total",
	Help:      "Chat requests by routed intent and outcome.",
}, []string{"intent", "outcome"})

var spamPredictions = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "acadassist",
	Name:      "spam_predictions_total",
	Help:      "Spam predictions by label.",
}, []string{"label"})

func metricsHandler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
