// Package transport serves the ramps command surface over HTTP.
package transport

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goodnatureofminers/fiatramps-backend/internal/burn"
	"github.com/goodnatureofminers/fiatramps-backend/internal/directory"
	"github.com/goodnatureofminers/fiatramps-backend/internal/model"
	"github.com/goodnatureofminers/fiatramps-backend/internal/ramps"
	"github.com/goodnatureofminers/fiatramps-backend/internal/statement"
)

const maxStatementBody = 4 << 20

type accountRequest struct {
	IBAN string `json:"iban" binding:"required"`
}

type destinationRequest struct {
	Kind    string `json:"kind" binding:"required"`
	IBAN    string `json:"iban,omitempty"`
	Account string `json:"account,omitempty"`
}

type transferRequest struct {
	Amount      string             `json:"amount" binding:"required"`
	Destination destinationRequest `json:"destination" binding:"required"`
}

type apiURLRequest struct {
	URL string `json:"url" binding:"required"`
}

type statementResult struct {
	IBAN      model.IBAN `json:"iban"`
	Processed int        `json:"processed"`
	Failed    []int      `json:"failed"`
	Error     string     `json:"error,omitempty"`
}

// Handler binds the host operations to HTTP routes.
type Handler struct {
	service Service
	parser  Parser
	metrics Metrics
	logger  *zap.Logger
}

func NewHandler(service Service, parser Parser, metrics Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		parser:  parser,
		metrics: metrics,
		logger:  logger.Named("http"),
	}
}

// Router builds the gin engine. Every /v1 route requires a bearer token.
func (h *Handler) Router(auth gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), h.observe)

	r.GET("/health", h.health)

	v1 := r.Group("/v1", auth)
	v1.POST("/accounts", h.createAccount)
	v1.GET("/accounts/:iban", h.lookupAccount)
	v1.DELETE("/accounts/:iban", h.unmapAccount)
	v1.POST("/transfers", h.transfer)
	v1.POST("/statements", h.processStatements)
	v1.GET("/settings/api-url", h.getAPIURL)
	v1.PUT("/settings/api-url", h.setAPIURL)
	v1.GET("/burn-requests/:id", h.burnRequest)
	return r
}

func (h *Handler) observe(c *gin.Context) {
	started := time.Now()
	c.Next()
	if h.metrics != nil {
		h.metrics.ObserveRequest(c.FullPath(), c.Writer.Status(), started)
	}
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createAccount(c *gin.Context) {
	var req accountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.service.CreateAccount(c.Request.Context(), originFrom(c), model.IBAN(req.IBAN)); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"iban": req.IBAN})
}

func (h *Handler) lookupAccount(c *gin.Context) {
	iban := model.IBAN(c.Param("iban"))
	account, found, err := h.service.LookupAccount(c.Request.Context(), iban)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "iban not mapped"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"iban": iban, "account": account})
}

func (h *Handler) unmapAccount(c *gin.Context) {
	if err := h.service.UnmapAccount(c.Request.Context(), originFrom(c), model.IBAN(c.Param("iban"))); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	amount, err := model.ParseAmount(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dest := model.Destination{
		Kind:    model.DestinationKind(req.Destination.Kind),
		IBAN:    model.IBAN(req.Destination.IBAN),
		Account: model.AccountID(req.Destination.Account),
	}

	burnReq, err := h.service.Transfer(c.Request.Context(), originFrom(c), amount, dest)
	if err != nil {
		h.fail(c, err)
		return
	}
	if burnReq == nil {
		c.JSON(http.StatusOK, gin.H{"status": "transferred"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "burn_requested", "burn_request": burnReq})
}

func (h *Handler) processStatements(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxStatementBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}
	statements, err := h.parser.Parse(body)
	if err != nil {
		h.fail(c, err)
		return
	}

	results, err := h.service.ProcessStatements(c.Request.Context(), originFrom(c), statements)
	if err != nil {
		h.fail(c, err)
		return
	}

	out := make([]statementResult, 0, len(results))
	for _, r := range results {
		res := statementResult{IBAN: r.IBAN, Processed: r.Processed, Failed: r.Failed}
		if res.Failed == nil {
			res.Failed = []int{}
		}
		if r.Err != nil {
			res.Error = r.Err.Error()
		}
		out = append(out, res)
	}
	c.JSON(http.StatusOK, gin.H{"results": out})
}

func (h *Handler) getAPIURL(c *gin.Context) {
	url, err := h.service.APIURL(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) setAPIURL(c *gin.Context) {
	var req apiURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.service.SetAPIURL(c.Request.Context(), originFrom(c), req.URL); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": req.URL})
}

func (h *Handler) burnRequest(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	req, err := h.service.BurnRequest(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *Handler) fail(c *gin.Context, err error) {
	code := statusOf(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("route", c.FullPath()), zap.Error(err))
		c.JSON(code, gin.H{"error": "internal error"})
		return
	}
	c.JSON(code, gin.H{"error": err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, ramps.ErrBadOrigin):
		return http.StatusForbidden
	case errors.Is(err, ramps.ErrAccountNotMapped),
		errors.Is(err, burn.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, directory.ErrAlreadyMapped):
		return http.StatusConflict
	case errors.Is(err, ramps.ErrInsufficientBalance):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ramps.ErrZeroAmount),
		errors.Is(err, ramps.ErrInvalidURL),
		errors.Is(err, ramps.ErrBatchTooLarge),
		errors.Is(err, ramps.ErrUnknownDestination),
		errors.Is(err, model.ErrInvalidIBAN),
		errors.Is(err, statement.ErrMalformedDocument),
		errors.Is(err, statement.ErrMalformedStatement),
		errors.Is(err, statement.ErrMalformedTransaction),
		errors.Is(err, statement.ErrFieldTooLong),
		errors.Is(err, statement.ErrTooManyStatements),
		errors.Is(err, statement.ErrTooManyTransactions):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
