package web

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"carbook/internal/metrics"
	"carbook/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// sessionMiddleware resolves the session cookie against the repository and
// stashes the session in the request context. A missing or expired session
// just leaves the visitor anonymous.
func (s *Server) sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(s.cfg.Session.CookieName)
		if err == nil && id != "" {
			sess, err := s.sessions.GetSession(c.Request.Context(), id)
			if err != nil {
				s.logger.Error().Err(err).Msg("load session error")
			} else if sess != nil {
				c.Set(contextSessionKey, sess)
			}
		}
		c.Next()
	}
}

// requireUser redirects anonymous visitors to the login page.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.currentSession(c).Authenticated() {
			s.addFlash(c, models.FlashWarning, "Please log in to continue.")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin returns 403 for authenticated non-admins.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := s.currentSession(c)
		if sess == nil || sess.Role != models.RoleAdmin {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		metrics.IncHTTP(route, strconv.Itoa(status))

		s.logger.Info().
			Str("method", c.Request.Method).
			Str("route", route).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("http request")
	}
}

// loginRateLimiter throttles login attempts per client IP, and additionally
// per email through the session repository (shared across instances when
// Redis backs it).
func (s *Server) loginRateLimiter() gin.HandlerFunc {
	var limiters sync.Map

	limiterFor := func(ip string) *rate.Limiter {
		if val, ok := limiters.Load(ip); ok {
			return val.(*rate.Limiter)
		}
		limiter := rate.NewLimiter(rate.Limit(s.cfg.Auth.LoginRateLimit.RPS), s.cfg.Auth.LoginRateLimit.Burst)
		actual, _ := limiters.LoadOrStore(ip, limiter)
		return actual.(*rate.Limiter)
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			s.tooManyAttempts(c)
			return
		}

		if email := c.PostForm("email"); email != "" {
			ok, err := s.sessions.CheckRateLimit(c.Request.Context(),
				"login:"+email, models.LoginRateLimit, models.LoginRateWindow*time.Second)
			if err != nil {
				s.logger.Error().Err(err).Msg("login rate limit check error")
			} else if !ok {
				s.tooManyAttempts(c)
				return
			}
		}

		c.Next()
	}
}

func (s *Server) tooManyAttempts(c *gin.Context) {
	s.addFlash(c, models.FlashDanger, "Too many login attempts, try again later.")
	c.Redirect(http.StatusSeeOther, "/login")
	c.Abort()
}
