package v1

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/hrygo/reportsmith/ai/metrics"
	"github.com/hrygo/reportsmith/ai/research"
	"github.com/hrygo/reportsmith/internal/profile"
	"github.com/hrygo/reportsmith/report"
)

// APIV1Service holds the report generation and export endpoints.
type APIV1Service struct {
	Profile   *profile.Profile
	Generator *research.Generator
	Exporter  *metrics.PrometheusExporter
}

// NewAPIV1Service creates the API service with injected collaborators.
func NewAPIV1Service(instanceProfile *profile.Profile, generator *research.Generator, exporter *metrics.PrometheusExporter) *APIV1Service {
	return &APIV1Service{
		Profile:   instanceProfile,
		Generator: generator,
		Exporter:  exporter,
	}
}

// RegisterRoutes attaches the API routes to the echo instance.
func (s *APIV1Service) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.POST("/report", s.GenerateReport)
	g.POST("/report/pdf", s.ExportReportPDF)
	g.GET("/levels", s.ListLevels)
}

type generateReportRequest struct {
	Topic string `json:"topic"`
	Level string `json:"level"`
}

type generateReportResponse struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Level       string `json:"level"`
	Report      string `json:"report"`
	HTML        string `json:"html"`
	GeneratedAt string `json:"generatedAt"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// GenerateReport runs the research agent for a topic and depth level and
// returns the raw report text plus an HTML rendering for the page.
func (s *APIV1Service) GenerateReport(c echo.Context) error {
	var req generateReportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request body"})
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "please enter a topic first"})
	}

	level, err := research.ParseLevel(req.Level)
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	reportText, err := s.Generator.Generate(c.Request().Context(), topic, level)
	if err != nil {
		if errors.Is(err, research.ErrGenerationFailed) {
			return c.JSON(http.StatusBadGateway, errorResponse{Message: "something went wrong while generating the report, please try again"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "internal error"})
	}

	// An empty report is a legitimate empty result; the page shows it as such.
	htmlBody, err := report.RenderHTML(reportText)
	if err != nil {
		slog.Error("failed to render report HTML", "error", err)
		htmlBody = ""
	}

	return c.JSON(http.StatusOK, generateReportResponse{
		ID:          shortuuid.New(),
		Topic:       topic,
		Level:       string(level),
		Report:      reportText,
		HTML:        htmlBody,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

type exportPDFRequest struct {
	Topic  string `json:"topic"`
	Report string `json:"report"`
}

// ExportReportPDF renders a previously generated report as a PDF attachment.
func (s *APIV1Service) ExportReportPDF(c echo.Context) error {
	var req exportPDFRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Message: "invalid request body"})
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		topic = "AI_Report"
	}

	data, err := report.GeneratePDF("Report - "+topic, req.Report)
	if err != nil {
		slog.Error("failed to render PDF", "topic", topic, "error", err)
		return c.JSON(http.StatusInternalServerError, errorResponse{Message: "failed to render PDF"})
	}

	if s.Exporter != nil {
		s.Exporter.RecordPDFExport()
	}

	filename := "report_" + strings.ReplaceAll(topic, " ", "_") + ".pdf"
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "application/pdf", data)
}

type levelInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListLevels returns the supported depth levels for the UI.
func (s *APIV1Service) ListLevels(c echo.Context) error {
	levels := make([]levelInfo, 0, 3)
	for _, level := range research.Levels() {
		levels = append(levels, levelInfo{
			Name:        string(level),
			Description: level.Description(),
		})
	}
	return c.JSON(http.StatusOK, levels)
}
