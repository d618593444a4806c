// Package gin serves the generation pipeline over HTTP using gin.
package gin

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/fwojciec/postcraft"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout is the time given for outstanding requests to finish
// before the server is forcibly stopped.
const ShutdownTimeout = 5 * time.Second

// DefaultAllowedOrigins are always accepted by CORS.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

// Server is the HTTP API.
type Server struct {
	once   sync.Once
	engine *gin.Engine
	server *http.Server
	ln     net.Listener

	// Addr is the bind address, e.g. ":8080".
	Addr string

	// AllowedOrigins are added to DefaultAllowedOrigins for CORS.
	AllowedOrigins []string

	Resolver  postcraft.Resolver
	Generator postcraft.Generator
	Platforms []postcraft.Platform
	Logger    *slog.Logger
}

// NewServer returns a new Server. Services must be set before Open or
// Handler is called.
func NewServer() *Server {
	return &Server{Platforms: postcraft.DefaultPlatforms()}
}

// Handler returns the router, building it on first use.
func (s *Server) Handler() http.Handler {
	s.once.Do(s.build)
	return s.engine
}

func (s *Server) build() {
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}

	e := gin.New()
	e.Use(gin.Recovery(), requestID(), accessLog(s.Logger))
	e.Use(cors.New(cors.Config{
		AllowOrigins:  s.origins(),
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "If-None-Match", RequestIDHeader},
		ExposeHeaders: []string{"ETag", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	e.GET("/health", s.handleHealth)
	api := e.Group("/api")
	api.GET("/options", s.handleOptions)
	api.POST("/generate", s.handleGenerate)

	s.engine = e
}

func (s *Server) origins() []string {
	origins := append([]string{}, DefaultAllowedOrigins...)
	for _, o := range s.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// Open starts listening on Addr and serves in the background.
func (s *Server) Open() (err error) {
	if s.Resolver == nil || s.Generator == nil {
		return errors.New("resolver and generator required")
	}
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	host, port, _ := net.SplitHostPort(s.ln.Addr().String())
	if host == "::" || host == "0.0.0.0" || host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}
