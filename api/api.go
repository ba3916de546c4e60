package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/enclavegrants/grantledger/ledger"
	"github.com/enclavegrants/grantledger/log"
)

// APIConfig type represents the configuration for the API HTTP server.
type APIConfig struct {
	Host   string
	Port   int
	Ledger *ledger.Ledger
}

// API type represents the HTTP surface over the ledger: signed submission
// and admin operations, the decryption request/callback pair, and the read
// accessors.
type API struct {
	router *chi.Mux
	ledger *ledger.Ledger
	server *http.Server
	addr   net.Addr
}

// New creates a new API instance with the given configuration and starts
// the HTTP server.
func New(conf *APIConfig) (*API, error) {
	if conf == nil {
		return nil, fmt.Errorf("missing API configuration")
	}
	if conf.Ledger == nil {
		return nil, fmt.Errorf("missing ledger instance")
	}
	a := &API{
		ledger: conf.Ledger,
	}
	a.initRouter()

	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", conf.Host, conf.Port))
	if err != nil {
		return nil, fmt.Errorf("cannot listen on %s:%d: %w", conf.Host, conf.Port, err)
	}
	a.addr = ln.Addr()
	a.server = &http.Server{Handler: a.router}
	go func() {
		log.Infow("starting API server", "addr", a.addr.String())
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to serve API: %v", err)
		}
	}()
	return a, nil
}

// Router returns the chi router for testing purposes.
func (a *API) Router() *chi.Mux {
	return a.router
}

// Addr returns the address the server is listening on.
func (a *API) Addr() net.Addr {
	return a.addr
}

// Shutdown stops the HTTP server gracefully.
func (a *API) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}

// initRouter creates the router with all the routes and middleware.
func (a *API) initRouter() {
	a.router = chi.NewRouter()
	a.router.Use(cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}).Handler)
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Throttle(100))
	a.router.Use(middleware.ThrottleBacklog(5000, 40000, 60*time.Second))
	a.router.Use(middleware.Timeout(45 * time.Second))

	a.registerHandlers()
}

// registerHandlers registers all the API handlers.
func (a *API) registerHandlers() {
	log.Infow("register handler", "endpoint", PingEndpoint, "method", "GET")
	a.router.Get(PingEndpoint, func(w http.ResponseWriter, r *http.Request) {
		httpWriteOK(w)
	})

	log.Infow("register handler", "endpoint", ProvidersEndpoint, "method", "POST")
	a.router.Post(ProvidersEndpoint, a.addProvider)
	log.Infow("register handler", "endpoint", ProvidersEndpoint, "method", "DELETE")
	a.router.Delete(ProvidersEndpoint, a.removeProvider)
	log.Infow("register handler", "endpoint", OwnershipEndpoint, "method", "POST")
	a.router.Post(OwnershipEndpoint, a.transferOwnership)
	log.Infow("register handler", "endpoint", PauseEndpoint, "method", "POST")
	a.router.Post(PauseEndpoint, a.pause)
	log.Infow("register handler", "endpoint", UnpauseEndpoint, "method", "POST")
	a.router.Post(UnpauseEndpoint, a.unpause)
	log.Infow("register handler", "endpoint", CooldownEndpoint, "method", "POST")
	a.router.Post(CooldownEndpoint, a.setCooldowns)

	log.Infow("register handler", "endpoint", BatchOpenEndpoint, "method", "POST")
	a.router.Post(BatchOpenEndpoint, a.openBatch)
	log.Infow("register handler", "endpoint", BatchCloseEndpoint, "method", "POST")
	a.router.Post(BatchCloseEndpoint, a.closeBatch)
	log.Infow("register handler", "endpoint", BatchCurrentEndpoint, "method", "GET")
	a.router.Get(BatchCurrentEndpoint, a.currentBatch)

	log.Infow("register handler", "endpoint", ProposalsEndpoint, "method", "POST")
	a.router.Post(ProposalsEndpoint, a.submitProposal)
	log.Infow("register handler", "endpoint", ProposalEndpoint, "method", "GET")
	a.router.Get(ProposalEndpoint, a.proposal)

	log.Infow("register handler", "endpoint", VotesEndpoint, "method", "POST")
	a.router.Post(VotesEndpoint, a.submitVote)
	log.Infow("register handler", "endpoint", VoteEndpoint, "method", "GET")
	a.router.Get(VoteEndpoint, a.vote)

	log.Infow("register handler", "endpoint", DecryptionRequestsEndpoint, "method", "POST")
	a.router.Post(DecryptionRequestsEndpoint, a.requestDecryption)
	log.Infow("register handler", "endpoint", DecryptionCallbackEndpoint, "method", "POST")
	a.router.Post(DecryptionCallbackEndpoint, a.decryptionCallback)
	log.Infow("register handler", "endpoint", DecryptionRequestEndpoint, "method", "GET")
	a.router.Get(DecryptionRequestEndpoint, a.decryptionRequest)

	log.Infow("register handler", "endpoint", AuditEndpoint, "method", "GET")
	a.router.Get(AuditEndpoint, a.auditRecords)
}
