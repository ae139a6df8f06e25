package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimit limits requests per client IP. The format is ulule's, e.g.
// "100-M" for a hundred requests a minute. An unparseable format disables
// limiting rather than refusing to start.
func RateLimit(format string, logger *slog.Logger) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(format)
	if err != nil {
		logger.Warn("invalid rate limit format, limiting disabled", slog.String("format", format))
		return func(c *gin.Context) { c.Next() }
	}
	store := memory.NewStore()
	return mgin.NewMiddleware(limiter.New(store, rate))
}
