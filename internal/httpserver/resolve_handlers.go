package httpserver

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"go-image-cache/internal/apperrors"
)

// handleResolve handles image resolve requests
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := s.parseRequest(w, r, &req); err != nil {
		s.writeErrorResponse(w, &ResolveResponse{Error: "Invalid request"}, http.StatusBadRequest)
		return
	}

	clientID := clientIP(r)
	result, err := s.resolver.Resolve(r.Context(), clientID, req.toModel())
	if err != nil {
		var (
			validationErr *apperrors.ValidationError
			throttledErr  *apperrors.ThrottledError
		)
		switch {
		case errors.As(err, &validationErr):
			s.writeErrorResponse(w, &ResolveResponse{
				Error: validationErr.Error(),
				Field: validationErr.Field,
			}, http.StatusBadRequest)
		case errors.As(err, &throttledErr):
			w.Header().Set("Retry-After", strconv.Itoa(throttledErr.RetryAfterSeconds))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(s.limiter.Limit()))
			w.Header().Set("X-RateLimit-Remaining", "0")
			s.writeErrorResponse(w, &ResolveResponse{
				Error:      throttledErr.Error(),
				RetryAfter: throttledErr.RetryAfterSeconds,
			}, http.StatusTooManyRequests)
		default:
			s.logger.Error("Unexpected resolve error",
				zap.String("request_id", requestID(r.Context())),
				zap.Error(err))
			s.writeErrorResponse(w, &ResolveResponse{Error: "internal error"}, http.StatusInternalServerError)
		}
		return
	}

	s.logger.Debug("Resolved image",
		zap.String("request_id", requestID(r.Context())),
		zap.String("client", clientID),
		zap.String("key", result.CacheKey),
		zap.String("status", string(result.Status)))

	s.writeResponse(w, &ResolveResponse{
		Success:       true,
		PrimaryURL:    result.PrimaryURL,
		AlternateURLs: result.AlternateURLs,
		Provider:      result.Provider,
		CacheKey:      result.CacheKey,
		CacheStatus:   result.Status,
		CacheLevel:    result.Level,
		Placeholder:   result.Placeholder,
	})
}

// clientIP identifies the caller for rate limiting: the first
// X-Forwarded-For hop when present, the peer address otherwise.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(r.Header.Get("X-Real-IP")); ip != "" {
		return ip
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
