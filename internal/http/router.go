package http

import (
	"net/http"
	"strings"
	"time"

	"jobboard/internal/common"
	"jobboard/internal/domain/user"
	"jobboard/internal/http/handlers"
	"jobboard/internal/http/metrics"
	httpmw "jobboard/internal/http/middleware"
	"jobboard/internal/http/response"
)

type RouterDependencies struct {
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	ProfileHandler     *handlers.ProfileHandler
	JobOfferHandler    *handlers.JobOfferHandler
	PostulationHandler *handlers.PostulationHandler
	MetricsHandler     *handlers.MetricsHandler
	AuthMiddleware     *httpmw.AuthMiddleware
	Metrics            *metrics.Collector
	RequestTimeout     time.Duration
	Limiter            httpmw.Limiter
	RateLimits         RateLimits
}

// RateLimits caps requests per client IP per minute. Zero disables a limit.
type RateLimits struct {
	LoginPerMinute    int
	RegisterPerMinute int
}

type Router struct {
	deps     RouterDependencies
	handler  http.Handler
	upload   http.Handler
	register http.Handler
	login    http.Handler
}

const (
	maxBodyBytes = 1 << 20
	cvUploadPath = "/api/users/student/cv"
)

func NewRouter(deps RouterDependencies) http.Handler {
	r := &Router{deps: deps}
	r.handler = r.chain(maxBodyBytes)
	r.upload = r.chain(handlers.MaxUploadBytes + 1<<20)
	r.register = httpmw.RateLimit(deps.Limiter, clientKey("register"), deps.RateLimits.RegisterPerMinute, time.Minute)(http.HandlerFunc(deps.AuthHandler.Register))
	r.login = httpmw.RateLimit(deps.Limiter, clientKey("login"), deps.RateLimits.LoginPerMinute, time.Minute)(http.HandlerFunc(deps.AuthHandler.Login))
	return r
}

func clientKey(scope string) func(*http.Request) string {
	return func(req *http.Request) string {
		return scope + ":ip:" + httpmw.ClientIP(req)
	}
}

func (r *Router) chain(bodyLimit int64) http.Handler {
	return httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging, httpmw.Metrics(r.deps.Metrics), httpmw.BodyLimit(bodyLimit), httpmw.Recover, httpmw.Timeout(r.deps.RequestTimeout))
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if req.URL.Path == cvUploadPath {
		r.upload.ServeHTTP(w, req)
		return
	}
	r.handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodGet && path == "/metrics":
			r.deps.MetricsHandler.Get(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/users/register":
			r.register.ServeHTTP(w, req)
			return
		case req.Method == http.MethodPost && path == "/api/users/login":
			r.login.ServeHTTP(w, req)
			return
		}

		if strings.HasPrefix(path, "/api/") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		notFound(w)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path
	student := httpmw.RequireRole(user.RoleStudent)
	company := httpmw.RequireRole(user.RoleCompany)

	switch {
	case req.Method == http.MethodPost && path == "/api/users/logout":
		r.deps.AuthHandler.Logout(w, req)
	case req.Method == http.MethodGet && path == "/api/users/me":
		r.deps.UserHandler.Me(w, req)
	case req.Method == http.MethodPut && path == "/api/users/update":
		r.deps.UserHandler.Update(w, req)
	case req.Method == http.MethodDelete && path == "/api/users/delete":
		r.deps.UserHandler.Delete(w, req)

	case req.Method == http.MethodPost && path == "/api/users/student/add":
		student(http.HandlerFunc(r.deps.ProfileHandler.AddStudent)).ServeHTTP(w, req)
	case req.Method == http.MethodGet && path == "/api/users/student/get":
		student(http.HandlerFunc(r.deps.ProfileHandler.GetStudent)).ServeHTTP(w, req)
	case req.Method == http.MethodPut && path == "/api/users/student/update":
		student(http.HandlerFunc(r.deps.ProfileHandler.UpdateStudent)).ServeHTTP(w, req)
	case req.Method == http.MethodPost && path == cvUploadPath:
		student(http.HandlerFunc(r.deps.ProfileHandler.UploadCV)).ServeHTTP(w, req)
	case req.Method == http.MethodPost && path == "/api/users/company/add":
		company(http.HandlerFunc(r.deps.ProfileHandler.AddCompany)).ServeHTTP(w, req)
	case req.Method == http.MethodGet && path == "/api/users/company/get":
		company(http.HandlerFunc(r.deps.ProfileHandler.GetCompany)).ServeHTTP(w, req)
	case req.Method == http.MethodPut && path == "/api/users/company/update":
		company(http.HandlerFunc(r.deps.ProfileHandler.UpdateCompany)).ServeHTTP(w, req)

	case req.Method == http.MethodPost && path == "/api/job-offer/create":
		company(http.HandlerFunc(r.deps.JobOfferHandler.Create)).ServeHTTP(w, req)
	case req.Method == http.MethodGet && path == "/api/job-offer/get-all":
		r.deps.JobOfferHandler.GetAll(w, req)
	case req.Method == http.MethodGet && path == "/api/job-offer/filter":
		r.deps.JobOfferHandler.Filter(w, req)
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/job-offer/get/"):
		r.deps.JobOfferHandler.Get(w, req)
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/job-offer/update/"):
		company(http.HandlerFunc(r.deps.JobOfferHandler.Update)).ServeHTTP(w, req)
	case req.Method == http.MethodPut && strings.HasPrefix(path, "/api/job-offer/close/"):
		company(http.HandlerFunc(r.deps.JobOfferHandler.Close)).ServeHTTP(w, req)

	case req.Method == http.MethodGet && path == "/api/postulations/mine":
		student(http.HandlerFunc(r.deps.PostulationHandler.ListMine)).ServeHTTP(w, req)
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/postulations/postulate/"):
		student(http.HandlerFunc(r.deps.PostulationHandler.Postulate)).ServeHTTP(w, req)
	case req.Method == http.MethodDelete && strings.HasPrefix(path, "/api/postulations/withdraw/"):
		student(http.HandlerFunc(r.deps.PostulationHandler.Withdraw)).ServeHTTP(w, req)
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/api/postulations/get/"):
		company(http.HandlerFunc(r.deps.PostulationHandler.ListForJobOffer)).ServeHTTP(w, req)
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/api/postulations/accept_reject/"):
		company(http.HandlerFunc(r.deps.PostulationHandler.AcceptReject)).ServeHTTP(w, req)

	default:
		notFound(w)
	}
}

func notFound(w http.ResponseWriter) {
	response.Error(w, common.NewError(common.CodeNotFound, "Not found.", nil))
}
