// Package httpapi serves the command router over HTTP with gin.
//
//	GET  /healthz           liveness
//	GET  /api/tools         every command with its argument schema
//	GET  /api/tools/:name   one command
//	POST /api/tools/:name   run a command; the body is its JSON arguments
//
// Domain outcomes, including refusals, are 200 with {"text": ...}. Only an
// unknown command (404) and a body that is not JSON (400) are HTTP errors.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"

	"netacho/internal/commands"
	"netacho/internal/logging"
)

// Server is the HTTP front end.
type Server struct {
	router *commands.Router
	log    *slog.Logger
}

// New returns a server over router.
func New(router *commands.Router) *Server {
	return &Server{router: router, log: logging.New("httpapi")}
}

// APIError is the body of a non-200 response.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps APIError.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ToolInfo describes one command.
type ToolInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	InputSchema *jsonschema.Schema `json:"inputSchema"`
}

func respondError(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// Routes builds the gin engine. gin's own logger writes to stdout, which
// the stdio tool transport owns, so requests are logged through slog.
func (s *Server) Routes() http.Handler {
	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	engine.GET("/healthz", s.handleHealthz)
	engine.GET("/api/tools", s.handleListTools)
	engine.GET("/api/tools/:name", s.handleGetTool)
	engine.POST("/api/tools/:name", s.handleCallTool)
	return engine
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func toolInfo(cmd commands.Command) ToolInfo {
	return ToolInfo{Name: cmd.Name, Description: cmd.Description, InputSchema: cmd.Schema()}
}

func (s *Server) handleListTools(c *gin.Context) {
	cmds := s.router.Commands()
	out := make([]ToolInfo, 0, len(cmds))
	for _, cmd := range cmds {
		out = append(out, toolInfo(cmd))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetTool(c *gin.Context) {
	cmd, ok := s.router.Lookup(c.Param("name"))
	if !ok {
		respondError(c, http.StatusNotFound, "unknown_tool", "unknown tool: "+c.Param("name"))
		return
	}
	c.JSON(http.StatusOK, toolInfo(cmd))
}

func (s *Server) handleCallTool(c *gin.Context) {
	name := c.Param("name")
	body, err := c.GetRawData()
	if err != nil {
		respondError(c, http.StatusBadRequest, "unreadable_body", err.Error())
		return
	}
	if len(body) > 0 && !json.Valid(body) {
		respondError(c, http.StatusBadRequest, "invalid_json", "request body is not valid JSON")
		return
	}
	res, err := s.router.Call(c.Request.Context(), name, body)
	if errors.Is(err, commands.ErrUnknownCommand) {
		respondError(c, http.StatusNotFound, "unknown_tool", "unknown tool: "+name)
		return
	}
	if err != nil {
		respondError(c, http.StatusInternalServerError, "internal", err.Error())
		return
	}
	c.JSON(http.StatusOK, res)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Routes(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}
	errc := make(chan error, 1)
	go func() {
		s.log.Info("http listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}
