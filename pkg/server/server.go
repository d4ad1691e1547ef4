package server

import (
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/trustseal/trustseal-go/pkg/config"
	"github.com/trustseal/trustseal-go/pkg/credential"
	"github.com/trustseal/trustseal-go/pkg/registry"
	"github.com/trustseal/trustseal-go/pkg/server/middleware"
	"github.com/trustseal/trustseal-go/pkg/server/store"
	storegorm "github.com/trustseal/trustseal-go/pkg/server/store/gorm"
	"github.com/trustseal/trustseal-go/pkg/worker"
)

// Server holds the wired application: stores, the proof worker client, the
// orchestration services, and the HTTP router.
type Server struct {
	Router *mux.Router
	DB     *gorm.DB
	Config *config.TrustSealConfig

	UsersStore       store.UsersStore
	CredentialsStore store.CredentialsStore
	HealthStore      store.HealthStore

	Registry     *registry.Registry
	Issuance     *credential.Service
	Verifier     *credential.Verifier
	WorkerClient worker.Client

	JWTMiddleware *middleware.JWTAuthenticator

	srv *http.Server
}

// NewServer wires stores and services onto a database connection and a proof
// worker client.
func NewServer(
	db *gorm.DB,
	cfg *config.TrustSealConfig,
	workerClient worker.Client,
	jwtSecret []byte,
	host string,
	port string,
) *Server {
	router := mux.NewRouter().UseEncodedPath()
	srv := &http.Server{
		Handler: handlers.LoggingHandler(os.Stdout, router),
		Addr:    host + ":" + port,
		// Good practice: enforce timeouts for servers you create!
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	usersStore := storegorm.NewUsersStore(db)
	credentialsStore := storegorm.NewCredentialsStore(db)
	healthStore := storegorm.NewHealthStore(db)

	reg := registry.New(usersStore)

	return &Server{
		Router:           router,
		DB:               db,
		Config:           cfg,
		UsersStore:       usersStore,
		CredentialsStore: credentialsStore,
		HealthStore:      healthStore,
		Registry:         reg,
		Issuance:         credential.NewService(reg, credentialsStore, workerClient),
		Verifier:         credential.NewVerifier(workerClient),
		WorkerClient:     workerClient,
		JWTMiddleware:    middleware.NewJWTAuthenticator(jwtSecret),
		srv:              srv,
	}
}

// Start begins serving HTTP requests
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}
