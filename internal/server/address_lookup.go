package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
)

type addressHandler struct {
	reader *indexersvc.Reader
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func newAddressHandler(reader *indexersvc.Reader) *addressHandler {
	return &addressHandler{reader: reader}
}

// LookupAddress godoc
// @Summary Describe an address
// @Description Returns the registry entry of an address (label, protocol, role, deny flag) and the evaluations it sent, newest first.
// @Tags Addresses
// @Produce json
// @Param address path string true "Hex address"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (1-200)"
// @Success 200 {object} indexersvc.AddressReport
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/addresses/{address} [get]
func (h *addressHandler) LookupAddress(c *gin.Context) {
	address := strings.TrimSpace(c.Param("address"))
	if !common.IsHexAddress(address) {
		writeAPIError(c, http.StatusBadRequest, "invalid address")
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
	report, err := h.reader.AddressReport(c.Request.Context(), address, page, limit)
	if err != nil {
		writeAPIError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, report)
}

// intQuery reads an optional non-negative integer, writing a 400 when it is malformed.
func intQuery(c *gin.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, true
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val < 0 {
		writeAPIError(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return val, true
}

func uint64Query(c *gin.Context, name string) (*uint64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	val, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		writeAPIError(c, http.StatusBadRequest, "invalid "+name)
		return nil, false
	}
	return &val, true
}

func writeAPIError(c *gin.Context, status int, msg string) {
	c.JSON(status, ErrorResponse{Error: msg})
}
