package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/dalemusser/stratametrics/internal/app/system/apiclient"
	"go.uber.org/zap"
)

// Canned dashboard payloads served by NewBackend, keyed by endpoint path.
var Fixtures = map[string]string{
	"/dashboard/summary": `{"data":{"totalProtocols":42,"totalContracts":1250,"totalUsers":15300,
		"totalTransactions":2450000,"totalVolume":18750000.5,"uniqueBlockchains":6}}`,
	"/dashboard/protocol-distribution": `{"data":[{"name":"DEX","value":12},{"name":"Lending","value":8},
		{"name":"Bridge","value":5},{"name":"Yield","value":5}]}`,
	"/dashboard/contracts-by-blockchain": `{"data":[{"blockchain":"Ethereum","contracts":620},
		{"blockchain":"Arbitrum","contracts":240},{"blockchain":"Polygon","contracts":180}]}`,
	"/dashboard/transaction-volume": `{"data":[{"date":"2024-05-01","volume":125000.5,"transactions":820},
		{"date":"2024-05-02","volume":98000,"transactions":640}]}`,
	"/dashboard/top-protocols": `{"data":[{"name":"Uniswap","symbol":"UNI","type":"DEX","volume":5400000,"transactions":120000},
		{"name":"Aave","symbol":"AAVE","type":"Lending","volume":3100000,"transactions":45000}]}`,
	"/dashboard/user-activity": `{"data":[{"date":"2024-05-01","activeUsers":1200,"newUsers":85},
		{"date":"2024-05-02","activeUsers":1340,"newUsers":92}]}`,
	"/dashboard/market-performance": `{"data":[{"date":"2024-05-01","UNI":5.2,"AAVE":88.1},
		{"date":"2024-05-02","UNI":5.4}],"protocols":["UNI","AAVE"]}`,
	"/dashboard/gas-analysis": `{"data":[{"date":"2024-05-01","avgGasPrice":23.5,"avgFee":1.8,"totalFees":4200}]}`,
	"/dashboard/market-share": `{"data":[{"name":"Uniswap","type":"DEX","value":5400000,"percentage":63.5},
		{"name":"Aave","type":"Lending","value":3100000,"percentage":36.5}]}`,
}

type cannedResponse struct {
	status int
	body   string
	hang   bool
}

// Backend is a fake analytics REST backend. By default it answers every
// dashboard endpoint with its Fixtures entry; individual endpoints can be
// switched to fail or hang.
type Backend struct {
	Server *httptest.Server

	mu        sync.Mutex
	responses map[string]cannedResponse
	hits      map[string]int
	queries   map[string]url.Values
	release   chan struct{}
}

// NewBackend starts a fake backend that is shut down when the test ends.
// Hanging requests are released first so shutdown never blocks.
func NewBackend(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{
		responses: make(map[string]cannedResponse, len(Fixtures)),
		hits:      make(map[string]int),
		queries:   make(map[string]url.Values),
		release:   make(chan struct{}),
	}
	for path, body := range Fixtures {
		b.responses[path] = cannedResponse{status: http.StatusOK, body: body}
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(func() {
		close(b.release)
		b.Server.Close()
	})
	return b
}

// URL returns the API base URL (server URL plus "/api").
func (b *Backend) URL() string {
	return b.Server.URL + "/api"
}

// Client returns an apiclient.Client pointed at the backend.
func (b *Backend) Client(t testing.TB) *apiclient.Client {
	t.Helper()
	c, err := apiclient.New(apiclient.Config{BaseURL: b.URL()}, zap.NewNop())
	if err != nil {
		t.Fatalf("apiclient.New: %v", err)
	}
	return c
}

// Respond sets the status and body returned for path.
func (b *Backend) Respond(path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[path] = cannedResponse{status: status, body: body}
}

// Fail makes path answer with status and a short error body.
func (b *Backend) Fail(path string, status int) {
	b.Respond(path, status, `{"error":"`+http.StatusText(status)+`"}`)
}

// Hang makes requests to path block until the caller gives up or the test
// ends.
func (b *Backend) Hang(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.responses[path] = cannedResponse{hang: true}
}

// Hits returns how many requests reached path.
func (b *Backend) Hits(path string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[path]
}

// LastQuery returns the query string of the latest request to path.
func (b *Backend) LastQuery(path string) url.Values {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.queries[path]
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api")

	b.mu.Lock()
	b.hits[path]++
	b.queries[path] = r.URL.Query()
	resp, ok := b.responses[path]
	b.mu.Unlock()

	if !ok {
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
		return
	}
	if resp.hang {
		select {
		case <-r.Context().Done():
		case <-b.release:
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write([]byte(resp.body))
}
