package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/eliteconnect/userservice/internal/users/service"
	"github.com/eliteconnect/userservice/internal/users/store"
	"github.com/eliteconnect/userservice/pkg/httpx"
	"github.com/eliteconnect/userservice/pkg/jwtx"
	"github.com/eliteconnect/userservice/pkg/slogx"

	_ "github.com/eliteconnect/userservice/api/docs" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	keys         *jwtx.KeySet
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store        store.Store
	UserService  *service.UserService
	TokenService *service.TokenService
}

func NewRouter(
	keys *jwtx.KeySet,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		keys:         keys,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerAuth()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
//
//	@title			EliteConnect User Service API
//	@version		0.1.0
//	@description	User account management: registration, lookup, update, deletion and password-based login issuing JWT bearer tokens.
//	@description
//	@description	Tokens are signed with EdDSA (Ed25519) and can be verified using the JWKS endpoint.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	registerHandler := &RegisterHandler{UserService: r.UserService}
	usersHandler := &UsersHandler{UserService: r.UserService}

	r.Mux.Handle("POST /api/users/register", registerHandler)
	r.Mux.HandleFunc("GET /api/users", usersHandler.HandleList)
	r.Mux.HandleFunc("GET /api/users/{id}", usersHandler.HandleGet)
	r.Mux.HandleFunc("PUT /api/users/{id}", usersHandler.HandleUpdate)
	r.Mux.HandleFunc("DELETE /api/users/{id}", usersHandler.HandleDelete)
}

func (r *Router) registerAuth() {
	loginHandler := &LoginHandler{
		UserService:  r.UserService,
		TokenService: r.TokenService,
	}

	r.Mux.Handle("POST /api/users/login", loginHandler)
	r.Mux.Handle("GET /.well-known/jwks.json", JWKSHandler(r.keys))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.keys))
}
