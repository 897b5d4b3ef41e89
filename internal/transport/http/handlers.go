package signalhttp

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ai-trader/internal/fusion"
	"ai-trader/internal/interfaces"
	"ai-trader/internal/logger"
	"ai-trader/internal/ta"
	"ai-trader/internal/types"
)

type analyzeRequest struct {
	Symbol   string          `json:"symbol" validate:"required"`
	Candles  []types.Candle  `json:"candles"`
	Articles []types.Article `json:"articles" validate:"dive"`
}

type generateRequest struct {
	Symbols []string `json:"symbols"`
}

type sentimentRequest struct {
	Articles []types.Article `json:"articles" validate:"dive"`
}

type healthResponse struct {
	Status  string  `json:"status"`
	Version string  `json:"version"`
	Uptime  float64 `json:"uptime"`
}

type handlers struct {
	service  interfaces.SignalService
	validate *validator.Validate
	started  time.Time
}

func (h *handlers) register(r *gin.Engine) {
	r.GET("/", h.root)
	r.GET("/health", h.health)
	r.POST("/analyze", h.analyze)
	r.GET("/signals/generate", h.generateQuery)
	r.POST("/signals/generate", h.generateBody)
	r.POST("/sentiment/analyze", h.classifySentiment)
	r.POST("/sentiment/aggregate", h.aggregateSentiment)
}

func (h *handlers) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the AI Trader Service",
		"docs":    "/docs",
		"version": Version,
	})
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Version: Version,
		Uptime:  ta.Round(time.Since(h.started).Seconds(), 2),
	})
}

func (h *handlers) analyze(c *gin.Context) {
	var req analyzeRequest
	if !h.bind(c, &req) {
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	sig, err := h.service.Analyze(c.Request.Context(), symbol, req.Candles, req.Articles...)
	if err != nil {
		h.fail(c, err, "Failed to analyse %s: %v", req.Symbol, err)
		return
	}
	c.JSON(http.StatusOK, sig)
}

// generateQuery accepts ?symbols=A,B,C.
func (h *handlers) generateQuery(c *gin.Context) {
	raw, ok := c.GetQuery("symbols")
	if !ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "Query parameter 'symbols' is required."})
		return
	}
	h.generate(c, strings.Split(raw, ","))
}

func (h *handlers) generateBody(c *gin.Context) {
	var req generateRequest
	if !h.bind(c, &req) {
		return
	}
	h.generate(c, req.Symbols)
}

func (h *handlers) generate(c *gin.Context, symbols []string) {
	signals, err := h.service.Generate(c.Request.Context(), symbols)
	if err != nil {
		h.fail(c, err, "Signal generation failed: %v", err)
		return
	}
	c.JSON(http.StatusOK, signals)
}

func (h *handlers) classifySentiment(c *gin.Context) {
	var req sentimentRequest
	if !h.bind(c, &req) {
		return
	}
	results, err := h.service.ClassifySentiment(c.Request.Context(), req.Articles)
	if err != nil {
		h.fail(c, err, "Sentiment analysis failed: %v", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

func (h *handlers) aggregateSentiment(c *gin.Context) {
	var req sentimentRequest
	if !h.bind(c, &req) {
		return
	}
	agg, err := h.service.AggregateSentiment(c.Request.Context(), req.Articles)
	if err != nil {
		h.fail(c, err, "Sentiment analysis failed: %v", err)
		return
	}
	c.JSON(http.StatusOK, agg)
}

// bind decodes and validates the JSON body, answering 422 on failure.
func (h *handlers) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return false
	}
	if err := h.validate.Struct(req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return false
	}
	return true
}

// fail maps validation errors to 400 and everything else to 500.
func (h *handlers) fail(c *gin.Context, err error, format string, args ...any) {
	var ve *fusion.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": ve.Msg})
		return
	}
	logger.ErrorWithErr(c.Request.Context(), "Request failed", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"detail": fmt.Sprintf(format, args...)})
}
