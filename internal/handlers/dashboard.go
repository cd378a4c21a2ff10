package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/healthlens/healthlens/internal/downsampling"
	"github.com/healthlens/healthlens/internal/services"
)

// Data handles raw record requests
// GET /api/data/:type?downsample=none|auto|lttb|minmax|m4&points=
func (h *Handler) Data(c *fiber.Ctx) error {
	opts, err := parseDataOptions(c)
	if err != nil {
		return badRequest(c, services.CodeInvalidParameter, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	data, err := h.dashboardService.Data(ctx, c.Params("type"), opts)
	if err != nil {
		return h.handleServiceError(c, err, "DATA_FAILED")
	}
	return c.JSON(data)
}

// Analytics handles requests for all four summaries
// GET /api/analytics?step_goal=&recommended_hours=
func (h *Handler) Analytics(c *fiber.Ctx) error {
	params, err := parseAnalyticsParams(c)
	if err != nil {
		return badRequest(c, services.CodeInvalidParameter, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	report, err := h.dashboardService.Analytics(ctx, params)
	if err != nil {
		return h.handleServiceError(c, err, "ANALYTICS_FAILED")
	}
	return c.JSON(report)
}

// AnalyticsType handles requests for a single summary
// GET /api/analytics/:type
func (h *Handler) AnalyticsType(c *fiber.Ctx) error {
	params, err := parseAnalyticsParams(c)
	if err != nil {
		return badRequest(c, services.CodeInvalidParameter, err.Error())
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := h.dashboardService.AnalyticsFor(ctx, c.Params("type"), params)
	if err != nil {
		return h.handleServiceError(c, err, "ANALYTICS_FAILED")
	}
	return c.JSON(result)
}

// Trends handles long-term view requests
// GET /api/trends?interval=3m|6m|1y|all
func (h *Handler) Trends(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	view, err := h.dashboardService.Trends(ctx, c.Query("interval"))
	if err != nil {
		return h.handleServiceError(c, err, "TRENDS_FAILED")
	}
	return c.JSON(view)
}

// Overview handles dashboard header requests
// GET /api/overview
func (h *Handler) Overview(c *fiber.Ctx) error {
	ctx, cancel := requestContext(c)
	defer cancel()

	overview, err := h.dashboardService.Overview(ctx)
	if err != nil {
		return h.handleServiceError(c, err, "OVERVIEW_FAILED")
	}
	return c.JSON(overview)
}

// parseDataOptions reads the optional downsample and points parameters
func parseDataOptions(c *fiber.Ctx) (services.DataOptions, error) {
	mode, err := downsampling.ParseMode(c.Query("downsample"))
	if err != nil {
		return services.DataOptions{}, err
	}
	opts := services.DataOptions{Downsample: mode}

	if v := c.Query("points"); v != "" {
		points, err := strconv.Atoi(v)
		if err != nil || points <= 0 {
			return opts, fiber.NewError(fiber.StatusBadRequest, "points must be a positive integer")
		}
		opts.Points = points
	}
	return opts, nil
}

// parseAnalyticsParams reads the optional step_goal and recommended_hours overrides
func parseAnalyticsParams(c *fiber.Ctx) (services.AnalyticsParams, error) {
	var params services.AnalyticsParams

	if v := c.Query("step_goal"); v != "" {
		goal, err := strconv.Atoi(v)
		if err != nil || goal <= 0 {
			return params, fiber.NewError(fiber.StatusBadRequest, "step_goal must be a positive integer")
		}
		params.StepGoal = goal
	}

	if v := c.Query("recommended_hours"); v != "" {
		hours, err := strconv.ParseFloat(v, 64)
		if err != nil || hours <= 0 || hours > 24 {
			return params, fiber.NewError(fiber.StatusBadRequest, "recommended_hours must be between 0 and 24")
		}
		params.RecommendedHours = hours
	}

	return params, nil
}
