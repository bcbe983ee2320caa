// Package logserver implements the HTTP status reporter for the
// participation client. The report is plain text for operators, not an API.
package logserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/trellisnet/nodectl/internal/log"
	"github.com/trellisnet/nodectl/internal/systemd"
)

// VersionSource reports the participation client version.
type VersionSource interface {
	Version(ctx context.Context) (string, error)
}

// Server serves the status report over HTTP. Each request is handled on its
// own connection by net/http; there is no single-connection bottleneck.
type Server struct {
	port     int
	unitName string
	logLines int

	client  VersionSource
	manager systemd.UnitManager
	journal systemd.JournalReader
	logger  log.Logger

	shutdownTimeout time.Duration
}

// New creates a logserver bound to port, reporting on unitName.
func New(port int, unitName string, logLines int, client VersionSource, manager systemd.UnitManager, journal systemd.JournalReader, logger log.Logger) *Server {
	return &Server{
		port:            port,
		unitName:        unitName,
		logLines:        logLines,
		client:          client,
		manager:         manager,
		journal:         journal,
		logger:          logger,
		shutdownTimeout: 5 * time.Second,
	}
}

// Router builds the gin engine with the status routes.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/", s.handleStatus)
	router.GET("/healthz", s.handleHealthz)

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Logserver listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("logserver failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("Logserver shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("logserver shutdown failed: %w", err)
		}
		return nil
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.String(http.StatusOK, "online")
}

// handleStatus renders the plain-text status report. Individual source
// failures degrade to an inline note so the report always renders.
func (s *Server) handleStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var b strings.Builder
	fmt.Fprintf(&b, "participation client status report\n")
	fmt.Fprintf(&b, "generated: %s\n\n", time.Now().UTC().Format(time.RFC3339))

	version, err := s.client.Version(ctx)
	if err != nil {
		s.logger.Warn("Could not query client version", "error", err)
		version = fmt.Sprintf("unavailable (%v)", err)
	}
	fmt.Fprintf(&b, "client version: %s\n", version)

	status, err := s.manager.Status(ctx, s.unitName)
	if err != nil {
		s.logger.Warn("Could not query unit status", "unit", s.unitName, "error", err)
		fmt.Fprintf(&b, "service %s: unavailable (%v)\n", s.unitName, err)
	} else {
		fmt.Fprintf(&b, "service %s: %s (%s)\n", s.unitName, status.State, status.SubState)
		if status.Error != "" {
			fmt.Fprintf(&b, "service error: %s\n", status.Error)
		}
	}

	fmt.Fprintf(&b, "\nlast %d log lines:\n", s.logLines)
	lines, err := s.journal.Tail(ctx, s.unitName, s.logLines)
	if err != nil {
		s.logger.Warn("Could not read journal", "unit", s.unitName, "error", err)
		fmt.Fprintf(&b, "unavailable (%v)\n", err)
	} else {
		fmt.Fprintf(&b, "%s\n", lines)
	}

	c.Header("Connection", "close")
	c.String(http.StatusOK, b.String())
}
