package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	indexersvc "github.com/0xPexy/sentra-inspect/internal/indexer/service"
	"github.com/0xPexy/sentra-inspect/internal/registry"
	"github.com/0xPexy/sentra-inspect/internal/store"
)

var liquidator = common.HexToAddress("0x00000000000000000000000000000000000b0701")

func newTestServer(t *testing.T) (*gin.Engine, *store.Repository, *EventHub) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := store.OpenSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, store.AutoMigrate(db))
	repo := store.NewRepository(db)

	reg := registry.New(registry.MainnetWETH, registry.Entry{Address: liquidator, Label: "liquidator", Role: registry.RoleBot})
	reader := indexersvc.NewReader(repo, reg)
	hub := NewEventHub(reader, nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)
	return NewRouter(reader, hub), repo, hub
}

func seed(t *testing.T, repo *store.Repository) {
	t.Helper()
	rows := []store.Evaluation{
		{TxHash: "0x01", BlockNumber: 11473329, Sender: store.NormalizeAddress(liquidator.Hex()), Status: "success",
			Protocols: "aave,sushiswap,uniswap_v2", ActionTypes: "liquidation,trade", Actions: `[{"state":"known","type":"profitable_liquidation"}]`,
			Profit: "11050220339336811520"},
		{TxHash: "0x02", BlockNumber: 11473330, Sender: "0x00000000000000000000000000000000000e0a01", Status: "checked",
			Protocols: "compound", Actions: "[]"},
	}
	for i := range rows {
		require.NoError(t, repo.InsertEvaluation(context.Background(), &rows[i]))
	}
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestEvaluationRoutes(t *testing.T) {
	r, repo, _ := newTestServer(t)
	seed(t, repo)

	w := get(t, r, "/api/v1/evaluations?action=liquidation")
	require.Equal(t, http.StatusOK, w.Code)
	var list indexersvc.ListEvaluationsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "0x01", list.Items[0].TxHash)
	assert.Equal(t, "liquidator", list.Items[0].SenderLabel)
	assert.Equal(t, "11.05022033933681152", list.Items[0].ProfitEth)

	w = get(t, r, "/api/v1/evaluations?from_block=9&to_block=1")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = get(t, r, "/api/v1/evaluations?limit=abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = get(t, r, "/api/v1/evaluations/0x01")
	require.Equal(t, http.StatusOK, w.Code)
	var detail struct {
		TxHash  string            `json:"txHash"`
		Actions []json.RawMessage `json:"actions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, "0x01", detail.TxHash)
	assert.Len(t, detail.Actions, 1)

	w = get(t, r, "/api/v1/evaluations/0xffff")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = get(t, r, "/api/v1/stats/overview")
	require.Equal(t, http.StatusOK, w.Code)
	var stats indexersvc.OverviewStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, int64(2), stats.Total)
	assert.Equal(t, int64(1), stats.Checked)
	assert.Equal(t, "11050220339336811520", stats.TotalProfit)
}

func TestAddressRoute(t *testing.T) {
	r, repo, _ := newTestServer(t)
	seed(t, repo)

	w := get(t, r, "/api/v1/addresses/"+liquidator.Hex())
	require.Equal(t, http.StatusOK, w.Code)
	var report indexersvc.AddressReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "liquidator", report.Label)
	assert.Equal(t, "bot", report.Role)
	assert.Equal(t, int64(1), report.Total)

	w = get(t, r, "/api/v1/addresses/not-an-address")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHubPushesEvaluations(t *testing.T) {
	r, _, hub := newTestServer(t)
	srv := httptest.NewServer(r)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/events"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.PublishEvaluation(&store.Evaluation{
		TxHash:      "0xabc",
		BlockNumber: 42,
		Sender:      store.NormalizeAddress(liquidator.Hex()),
		Status:      "success",
		ActionTypes: "arbitrage,trade",
		Profit:      "1000000000000000000",
	})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, payload, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type string                    `json:"type"`
		Data indexersvc.EvaluationItem `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payload, &msg))
	assert.Equal(t, "evaluation", msg.Type)
	assert.Equal(t, "0xabc", msg.Data.TxHash)
	assert.Equal(t, "liquidator", msg.Data.SenderLabel)
	assert.Equal(t, []string{"arbitrage", "trade"}, msg.Data.ActionTypes)
	assert.Equal(t, "1", msg.Data.ProfitEth)
}

func TestEventClientFilter(t *testing.T) {
	c := &eventClient{}
	assert.True(t, c.wants([]string{"trade"}), "no filter passes everything")

	c.filter.Store(map[string]struct{}{"liquidation": {}})
	assert.False(t, c.wants([]string{"arbitrage", "trade"}))
	assert.True(t, c.wants([]string{"liquidation", "trade"}))

	c.filter.Store(map[string]struct{}{})
	assert.True(t, c.wants(nil))
}
