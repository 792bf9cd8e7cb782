package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
)

type evaluationHandler struct {
	reader *indexersvc.Reader
	hub    *EventHub
}

func newEvaluationHandler(reader *indexersvc.Reader, hub *EventHub) *evaluationHandler {
	return &evaluationHandler{reader: reader, hub: hub}
}

// ListEvaluations godoc
// @Summary List evaluated transactions
// @Tags Evaluations
// @Produce json
// @Param action query string false "Action type" Enums(trade,arbitrage,liquidation)
// @Param protocol query string false "Protocol tag"
// @Param status query string false "Status" Enums(success,reverted,checked)
// @Param sender query string false "Sender address"
// @Param from_block query uint64 false "First block"
// @Param to_block query uint64 false "Last block"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-200)"
// @Param sort query string false "asc or desc by block"
// @Success 200 {object} indexersvc.ListEvaluationsResult
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/evaluations [get]
func (h *evaluationHandler) ListEvaluations(c *gin.Context) {
	fromBlock, ok := uint64Query(c, "from_block")
	if !ok {
		return
	}
	toBlock, ok := uint64Query(c, "to_block")
	if !ok {
		return
	}
	if fromBlock != nil && toBlock != nil && *fromBlock > *toBlock {
		writeAPIError(c, http.StatusBadRequest, "from_block is after to_block")
		return
	}
	page, ok := intQuery(c, "page")
	if !ok {
		return
	}
	limit, ok := intQuery(c, "limit")
	if !ok {
		return
	}
	sort := strings.ToLower(strings.TrimSpace(c.Query("sort")))
	if sort != "" && sort != "asc" && sort != "desc" {
		writeAPIError(c, http.StatusBadRequest, "invalid sort")
		return
	}
	result, err := h.reader.ListEvaluations(c.Request.Context(), indexersvc.ListEvaluationsParams{
		Action:    strings.TrimSpace(c.Query("action")),
		Protocol:  strings.TrimSpace(c.Query("protocol")),
		Status:    strings.TrimSpace(c.Query("status")),
		Sender:    strings.TrimSpace(c.Query("sender")),
		FromBlock: fromBlock,
		ToBlock:   toBlock,
		Page:      page,
		Limit:     limit,
		SortDesc:  sort == "desc",
	})
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}

// EvaluationDetail godoc
// @Summary Get one evaluated transaction with its classified actions
// @Tags Evaluations
// @Produce json
// @Param txHash path string true "Transaction hash"
// @Success 200 {object} indexersvc.EvaluationDetail
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/evaluations/{txHash} [get]
func (h *evaluationHandler) EvaluationDetail(c *gin.Context) {
	hash := strings.ToLower(strings.TrimSpace(c.Param("txHash")))
	if hash == "" {
		writeAPIError(c, http.StatusBadRequest, "txHash is required")
		return
	}
	detail, err := h.reader.GetEvaluation(c.Request.Context(), hash)
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if detail == nil {
		writeAPIError(c, http.StatusNotFound, "evaluation not found")
		return
	}
	c.JSON(http.StatusOK, detail)
}

// StatsOverview godoc
// @Summary Evaluation counts and total profit
// @Tags Stats
// @Produce json
// @Param from_block query uint64 false "First block of the profit window"
// @Param to_block query uint64 false "Last block of the profit window"
// @Success 200 {object} indexersvc.OverviewStats
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/stats/overview [get]
func (h *evaluationHandler) StatsOverview(c *gin.Context) {
	fromBlock, ok := uint64Query(c, "from_block")
	if !ok {
		return
	}
	toBlock, ok := uint64Query(c, "to_block")
	if !ok {
		return
	}
	var params indexersvc.OverviewStatsParams
	if fromBlock != nil {
		params.FromBlock = *fromBlock
	}
	if toBlock != nil {
		params.ToBlock = *toBlock
	}
	stats, err := h.reader.OverviewStats(c.Request.Context(), params)
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// StreamEvents godoc
// @Summary Stream newly stored evaluations over a websocket
// @Tags Events
// @Produce json
// @Router /api/v1/events [get]
func (h *evaluationHandler) StreamEvents(c *gin.Context) {
	h.hub.ServeWS(c)
}
