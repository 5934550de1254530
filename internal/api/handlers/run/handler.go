package run

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/api/respond"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/channel"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
	"github.com/adr1ang1lbert/birth-vaccine-system/internal/service/reminder"
)

// reminderService defines the interface that the Handler depends on.
type reminderService interface {
	Run(ctx context.Context, today time.Time) (model.RunSummary, error)
}

// Handler exposes the on-demand reminder run trigger and the channel
// configuration status endpoint.
type Handler struct {
	service  reminderService
	location *time.Location
	adapters []channel.Adapter
}

// NewHandler creates a new Handler instance.
//
// Parameters:
//   - s: the reminder run orchestrator
//   - loc: the deployment time zone used to resolve "today"
//   - adapters: the configured channel adapters, reported by Channels
func NewHandler(s reminderService, loc *time.Location, adapters []channel.Adapter) *Handler {
	return &Handler{service: s, location: loc, adapters: adapters}
}

// Run handles HTTP POST requests that trigger one full reminder run.
//
// The run is identical to the scheduled daily one. An optional "date"
// query parameter (YYYY-MM-DD) lets an operator execute the run for a
// specific calendar date; it defaults to today in the configured zone.
func (h *Handler) Run(c *ginext.Context) {
	today := time.Now().In(h.location)

	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.ParseInLocation("2006-01-02", dateStr, h.location)
		if err != nil {
			zlog.Logger.Warn().Err(err).Str("date", dateStr).Msg("invalid date parameter")
			respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid date, expected YYYY-MM-DD"))
			return
		}
		today = parsed
	}

	summary, err := h.service.Run(c.Request.Context(), today)
	if err != nil {
		if errors.Is(err, reminder.ErrRunAborted) {
			zlog.Logger.Error().Err(err).Msg("reminder run aborted")
			respond.Fail(c.Writer, http.StatusBadGateway, fmt.Errorf("reminder run aborted: child store unavailable"))
			return
		}

		zlog.Logger.Error().Err(err).Msg("reminder run failed")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	// Partial failure is still success at the run level; the summary
	// carries the per-item counts.
	respond.OK(c.Writer, summary)
}

// Channels handles HTTP GET requests for the channel configuration status.
func (h *Handler) Channels(c *ginext.Context) {
	status := make(map[string]bool, len(h.adapters))
	for _, a := range h.adapters {
		status[string(a.Name())+"_configured"] = a.Configured()
	}

	respond.OK(c.Writer, status)
}
