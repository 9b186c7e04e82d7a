package middlewares

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "milletmart_http_requests_total",
	Help: "Total HTTP requests processed, by method, route and status.",
}, []string{"method", "route", "status"})

func RequestMetrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Next()

		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(
			ctx.Request.Method,
			route,
			strconv.Itoa(ctx.Writer.Status()),
		).Inc()
	}
}
