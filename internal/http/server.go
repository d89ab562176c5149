// Package http provides the HTTP API for clusterpilot.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clusterpilot/internal/diagnosis"
	"github.com/fyrsmithlabs/clusterpilot/internal/llm"
	"github.com/fyrsmithlabs/clusterpilot/internal/planner"
	"github.com/fyrsmithlabs/clusterpilot/internal/schema"
	"github.com/fyrsmithlabs/clusterpilot/internal/tools"
)

// Server provides HTTP endpoints for clusterpilot.
type Server struct {
	echo      *echo.Echo
	planner   planner.Service
	diagnosis diagnosis.Service
	logger    *zap.Logger
	config    *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
func NewServer(plannerSvc planner.Service, diagnosisSvc diagnosis.Service, logger *zap.Logger, cfg *Config) (*Server, error) {
	if plannerSvc == nil {
		return nil, fmt.Errorf("planner service cannot be nil")
	}
	if diagnosisSvc == nil {
		return nil, fmt.Errorf("diagnosis service cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 8384,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(NewHTTPMetrics(logger).MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:      e,
		planner:   plannerSvc,
		diagnosis: diagnosisSvc,
		logger:    logger,
		config:    cfg,
	}

	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/command", s.handleCommand)
	v1.POST("/diagnose", s.handleDiagnose)
	v1.GET("/tools", s.handleTools)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleCommand plans one tool invocation from free text. Each planner
// failure mode gets its own user-facing message; a failed plan never
// reaches an executor.
func (s *Server) handleCommand(c echo.Context) error {
	var req CommandRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid command request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, CommandResponse{
			Error: "invalid request body",
		})
	}

	decision, err := s.planner.Plan(c.Request().Context(), req.Input)
	if err != nil {
		status, msg := commandError(err)
		return c.JSON(status, CommandResponse{Error: msg})
	}

	ApplyNamespace(s.planner.Registry(), decision, req.Namespace)

	return c.JSON(http.StatusOK, CommandResponse{
		Success:     true,
		Data:        decision,
		Explanation: explain(decision),
	})
}

// ApplyNamespace overrides the decision's namespace argument with the
// request-level one, but only when the tool accepts a namespace and the
// model left it at the declared default.
func ApplyNamespace(registry *tools.Registry, decision *planner.Decision, namespace string) {
	if namespace == "" {
		return
	}
	descriptor, err := registry.Lookup(decision.Tool)
	if err != nil {
		return
	}
	for _, f := range descriptor.Arguments.Fields {
		if f.Name != "namespace" {
			continue
		}
		if current, ok := decision.Arguments["namespace"]; !ok || current == f.Default {
			decision.Arguments["namespace"] = namespace
		}
		return
	}
}

// commandError maps the planner failure taxonomy to status and message.
func commandError(err error) (int, string) {
	var verr *schema.ValidationError
	var merr *planner.MalformedResponseError
	var uerr *tools.UnknownToolError

	switch {
	case errors.Is(err, planner.ErrEmptyInput):
		return http.StatusBadRequest, "input is required"
	case errors.As(err, &uerr):
		return http.StatusUnprocessableEntity,
			fmt.Sprintf("the request mapped to an unsupported operation (%s); try rephrasing", uerr.Name)
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity,
			fmt.Sprintf("the request could not be understood (%s); try rephrasing", verr.Error())
	case errors.As(err, &merr):
		return http.StatusUnprocessableEntity,
			"the request could not be understood; try rephrasing"
	case errors.Is(err, llm.ErrUnavailable):
		return http.StatusBadGateway,
			"the planning model is unavailable; check the generation endpoint configuration"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// explain renders a one-line human description of the planned operation.
func explain(d *planner.Decision) string {
	if ns, ok := d.Arguments["namespace"].(string); ok && ns != "" {
		return fmt.Sprintf("Planned %s in namespace %s (confidence: %s)", d.Tool, ns, d.Confidence)
	}
	return fmt.Sprintf("Planned %s (confidence: %s)", d.Tool, d.Confidence)
}

// handleDiagnose diagnoses log text. The engine cannot fail, so the only
// error path is a bad request body.
func (s *Server) handleDiagnose(c echo.Context) error {
	var req DiagnoseRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid diagnose request", zap.Error(err))
		return c.JSON(http.StatusBadRequest, DiagnoseResponse{
			Error: "invalid request body",
		})
	}
	if req.Logs == "" && len(req.Lines) == 0 {
		return c.JSON(http.StatusBadRequest, DiagnoseResponse{
			Error: "logs or lines field is required",
		})
	}

	var result *diagnosis.Result
	if len(req.Lines) > 0 {
		result = s.diagnosis.DiagnoseLines(c.Request().Context(), req.Lines, req.Resource)
	} else {
		result = s.diagnosis.Diagnose(c.Request().Context(), req.Logs, req.Resource)
	}

	return c.JSON(http.StatusOK, DiagnoseResponse{
		Success: true,
		Data:    result,
	})
}

// handleTools exposes the catalog as a read-only help surface.
func (s *Server) handleTools(c echo.Context) error {
	registry := s.planner.Registry()

	out := ToolsResponse{Tools: make([]ToolInfo, 0, registry.Len())}
	for _, d := range registry.List() {
		args, err := registry.DescribeArguments(d.Name)
		if err != nil {
			args = ""
		}
		out.Tools = append(out.Tools, ToolInfo{
			Name:             d.Name,
			Description:      d.Description,
			Result:           string(d.Result),
			PresentationHint: d.PresentationHint,
			Arguments:        args,
			Examples:         d.Examples,
		})
	}

	return c.JSON(http.StatusOK, out)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
