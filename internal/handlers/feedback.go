package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"pulsecheck-backend/internal/common"
	"pulsecheck-backend/internal/store"
)

type FeedbackHandler struct {
	common.ServerState
}

type AnalyzeFeedbackRequest struct {
	Feedback     []string `json:"feedback"`
	FeedbackType string   `json:"feedback_type"`
	Branch       string   `json:"branch"`
}

type HistoryItem struct {
	Text      string    `json:"text"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

func NewFeedbackHandler(state common.ServerState) *FeedbackHandler {
	return &FeedbackHandler{ServerState: state}
}

// AnalyzeFeedback classifies a batch of feedback texts and stores each one
// attributed to the authenticated user.
func (h *FeedbackHandler) AnalyzeFeedback(c echo.Context) error {
	req := new(AnalyzeFeedbackRequest)
	if err := c.Bind(req); err != nil || len(req.Feedback) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid input. Expected an array of feedback strings.")
	}

	var userID *uint
	if claims, err := h.JwtIssuer.Claims(c); err == nil {
		userID = &claims.ID
	}

	results, err := h.Pipeline.Submit(c.Request().Context(), req.Feedback, req.FeedbackType, req.Branch, userID)
	if err != nil {
		c.Logger().Errorf("Failed to analyze feedback: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to analyze feedback")
	}

	message := "Feedback analyzed and saved"
	if !h.Classifier.ModelBacked() {
		message = "Feedback categorized randomly (no API key configured) and saved"
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": message,
		"results": results,
	})
}

// GetAnalytics returns the aggregate dashboard payload, optionally filtered
// by branch and feedback type query parameters.
func (h *FeedbackHandler) GetAnalytics(c echo.Context) error {
	filter := store.Filter{
		Branch:       c.QueryParam("branch"),
		FeedbackType: c.QueryParam("type"),
	}

	snapshot, err := h.ServerState.Analytics.Summarize(filter)
	if err != nil {
		c.Logger().Errorf("Failed to fetch analytics: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch analytics")
	}

	return c.JSON(http.StatusOK, snapshot)
}

// History returns the most recent feedback entries, newest first.
func (h *FeedbackHandler) History(c echo.Context) error {
	filter := store.Filter{
		Branch:       c.QueryParam("branch"),
		FeedbackType: c.QueryParam("type"),
	}

	items, err := h.Store.List(filter, store.MaxHistoryItems)
	if err != nil {
		c.Logger().Errorf("Failed to fetch feedback: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch feedback")
	}

	results := make([]HistoryItem, 0, len(items))
	for _, item := range items {
		results = append(results, HistoryItem{
			Text:      item.Content,
			Category:  string(item.Category),
			CreatedAt: item.CreatedAt,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"results": results})
}
