package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/auth"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/metrics"
	"jobboard/internal/observability"
)

type fakeAuthenticator struct {
	tokens map[string]auth.Principal
}

func (f fakeAuthenticator) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	principal, ok := f.tokens[token]
	if !ok {
		return nil, common.NewError(common.CodeUnauthorized, "Invalid token.", nil)
	}
	return &principal, nil
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateAcceptsBearerAndTokenSchemes(t *testing.T) {
	principal := auth.Principal{UserID: common.NewUUID(), UserType: user.RoleStudent, SessionID: common.NewUUID()}
	mw := NewAuthMiddleware(fakeAuthenticator{tokens: map[string]auth.Principal{"good": principal}})

	var seen auth.Principal
	handler := mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	for _, header := range []string{"Bearer good", "Token good", "bearer good"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		req.Header.Set("Authorization", header)
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%q: expected 200, got %d", header, rec.Code)
		}
		if seen.UserID != principal.UserID {
			t.Fatalf("%q: principal not stored in context", header)
		}
	}
}

func TestAuthenticateRejectsMissingOrBadTokens(t *testing.T) {
	mw := NewAuthMiddleware(fakeAuthenticator{tokens: map[string]auth.Principal{}})
	handler := mw.Authenticate(okHandler())

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer unknown"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(user.RoleCompany)(okHandler())

	ctx := context.WithValue(context.Background(), ContextPrincipalKey, auth.Principal{UserType: user.RoleStudent})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	var body struct {
		Errors map[string]string `json:"errors"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Errors["user_type"] != "User type is invalid." {
		t.Fatalf("unexpected errors %+v", body.Errors)
	}

	ctx = context.WithValue(context.Background(), ContextPrincipalKey, auth.Principal{UserType: user.RoleCompany})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRateLimiterWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter()
	limiter.now = func() time.Time { return now }

	for i := 0; i < 2; i++ {
		if !limiter.Allow("login:1.2.3.4", 2, time.Minute) {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if limiter.Allow("login:1.2.3.4", 2, time.Minute) {
		t.Fatal("third attempt should be limited")
	}
	if !limiter.Allow("login:5.6.7.8", 2, time.Minute) {
		t.Fatal("other keys should not be limited")
	}
	now = now.Add(time.Minute + time.Second)
	if !limiter.Allow("login:1.2.3.4", 2, time.Minute) {
		t.Fatal("new window should be allowed")
	}
}

func TestRateLimitMiddlewareReturns429(t *testing.T) {
	handler := RateLimit(NewRateLimiter(), ClientIP, 1, time.Minute)(okHandler())

	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/api/users/login", nil))
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/api/users/login", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 200 then 429, got %d then %d", first.Code, second.Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.1:5555"
	if got := ClientIP(req); got != "10.0.0.1" {
		t.Fatalf("expected socket address, got %q", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := ClientIP(req); got != "203.0.113.7" {
		t.Fatalf("expected first forwarded hop, got %q", got)
	}
}

func TestNilRedisLimiterAllows(t *testing.T) {
	var limiter *RedisLimiter
	if !limiter.Allow("k", 1, time.Minute) {
		t.Fatal("nil redis limiter should fail open")
	}
	if NewRedisLimiter(nil, "") != nil {
		t.Fatal("expected nil limiter without client")
	}
}

func TestChainOrderAndRequestID(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	var requestID string
	base := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = observability.RequestIDFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	Chain(base, RequestID, mark("a"), mark("b")).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("unexpected order %v", order)
	}
	if requestID == "" || rec.Header().Get(RequestIDHeader) != requestID {
		t.Fatalf("expected request id %q echoed, got %q", requestID, rec.Header().Get(RequestIDHeader))
	}
}

func TestRecoverTurnsPanicInto500(t *testing.T) {
	collector := metrics.NewCollector()
	handler := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}), Recover, Metrics(collector))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if s := collector.Snapshot(); s.Requests != 1 || s.InFlight != 0 {
		t.Fatalf("unexpected metrics %+v", s)
	}
}

func TestTimeoutSetsDeadline(t *testing.T) {
	var hasDeadline bool
	handler := Timeout(time.Second)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline = r.Context().Deadline()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if !hasDeadline {
		t.Fatal("expected request context deadline")
	}
}
