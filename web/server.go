package web

import (
	"time"

	"unisearch/config"
	"unisearch/models"

	"github.com/rohanthewiz/logger"
	"github.com/rohanthewiz/rweb"
)

// sessionTokenTTL is how long a browser keeps its session id. Idle sessions
// are dropped from the store much earlier, per sessions.ttl.
const sessionTokenTTL = 7 * 24 * time.Hour

// App holds the long-lived collaborators shared by all requests.
type App struct {
	Config   config.Config
	Store    *models.SessionStore
	Exporter *models.CardExporter
	Tokens   *models.SessionTokens
}

// NewApp wires the session store, exporter and session tokens for cfg.
// dir is the upstream lookup every session searches against.
func NewApp(cfg config.Config, dir models.Directory) (*App, error) {
	tokens, err := models.NewSessionTokens(cfg.Sessions.Secret, sessionTokenTTL)
	if err != nil {
		return nil, err
	}

	opts := models.ControllerOptions{AutoSearch: cfg.Search.AutoSearch}
	store := models.NewSessionStore(cfg.Sessions.Max, cfg.Sessions.TTL, func() *models.SearchController {
		return models.NewSearchController(dir, opts)
	})

	return &App{
		Config: cfg,
		Store:  store,
		Exporter: models.NewCardExporter(models.JPEGRasterizer{
			Quality: cfg.Export.Quality,
			Scale:   cfg.Export.Scale,
		}),
		Tokens: tokens,
	}, nil
}

// NewServer creates and configures the RWeb server
func NewServer(app *App) *rweb.Server {
	return NewTestServer(app, rweb.ServerOptions{
		Address: app.Config.Server.Address,
		Verbose: app.Config.Server.Verbose,
	})
}

// NewTestServer creates a server with custom options (dynamic port, ready channel)
func NewTestServer(app *App, opts rweb.ServerOptions) *rweb.Server {
	s := rweb.NewServer(opts)

	// Apply middleware
	s.Use(rweb.RequestInfo) // Logs request info
	s.Use(CorsMiddleware)
	s.Use(SecurityHeadersMiddleware)
	s.Use(RateLimitMiddleware(app.Config.Server.RequestsPerMinute, app.Tokens))
	s.Use(SessionMiddleware(app.Tokens))
	s.Use(LoggingMiddleware)

	setupRoutes(s, app)

	// Serve static files using embedded FS
	SetupStaticFiles(s)

	return s
}

// Run starts the server
func Run(s *rweb.Server, address string) error {
	logger.Info("UniSearch web server starting", "address", address)
	return s.Run()
}
