package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// GetMarket serves the latest persisted market document.
func (h *Handler) GetMarket(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-market")
	defer span.End()

	doc, err := h.store.ReadMarket()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no market snapshot available yet"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// GetNews serves the latest persisted news document.
func (h *Handler) GetNews(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-news")
	defer span.End()

	doc, err := h.store.ReadNews()
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no news snapshot available yet"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

// TriggerRun executes one scoring cycle synchronously.
func (h *Handler) TriggerRun(c *gin.Context) {
	if h.runner == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run trigger unavailable"})
		return
	}

	ctx, span := h.tracer.Start(c.Request.Context(), "handler.trigger-run")
	defer span.End()

	result, err := h.runner.RunCycle(ctx, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"label":           result.Label,
		"net_score":       result.NetScore,
		"indicators_ok":   result.IndicatorsOK,
		"indicators_fail": result.IndicatorsFail,
		"story_from_llm":  result.StoryFromLLM,
		"errors":          result.Errors,
	})
}
