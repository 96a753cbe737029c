package server

import (
	"net/http"
	"time"

	"github.com/apper-canvas/taskflow/internal/logger"
	"github.com/apper-canvas/taskflow/internal/recordapi"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// requestLogger writes one entry per request to the global logger
func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		req := c.Request()

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		res := c.Response()
		fields := []logger.Field{
			logger.F("method", req.Method),
			logger.F("uri", req.RequestURI),
			logger.F("status", res.Status),
			logger.F("size", res.Size),
			logger.F("duration", time.Since(start).String()),
			logger.F("request_id", res.Header().Get(echo.HeaderXRequestID)),
		}
		if res.Status >= http.StatusInternalServerError {
			logger.Error("HTTP request", fields...)
		} else {
			logger.Info("HTTP request", fields...)
		}
		return nil
	}
}

// authMiddleware checks the project id and public key headers
func (s *Server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if s.opts.APIKeyHash == "" {
			return next(c)
		}

		req := c.Request()
		if s.opts.ProjectID != "" && req.Header.Get(recordapi.HeaderProjectID) != s.opts.ProjectID {
			return c.JSON(http.StatusUnauthorized, recordapi.Fail("unknown project"))
		}

		key := req.Header.Get(recordapi.HeaderAPIKey)
		if key == "" {
			return c.JSON(http.StatusUnauthorized, recordapi.Fail("api key required"))
		}
		if err := bcrypt.CompareHashAndPassword([]byte(s.opts.APIKeyHash), []byte(key)); err != nil {
			logger.Warn("Rejected API key", logger.F("remote", req.RemoteAddr))
			return c.JSON(http.StatusUnauthorized, recordapi.Fail("invalid api key"))
		}
		return next(c)
	}
}

// HashAPIKey returns the bcrypt hash to configure as API_KEY_HASH
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
