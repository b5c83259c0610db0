package apiclient

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/dalemusser/stratametrics/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProtocols_List(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"protocols":[{"protocol_id":1,"protocol_name":"Uniswap","protocol_symbol":"UNI","type":"DEX"}],
			"total":1,"pages":1,"current_page":2}`))
	})

	page, err := c.Protocols().List(context.Background(), 2, 0)
	require.NoError(t, err)

	assert.Equal(t, "page=2&per_page=20", gotQuery)
	require.Len(t, page.Protocols, 1)
	assert.Equal(t, "Uniswap", page.Protocols[0].ProtocolName)
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 2, page.CurrentPage)
}

func TestProtocols_CreateSendsBodyAndDecodesEntity(t *testing.T) {
	var gotMethod, gotBody string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"Protocol created","protocol":{"protocol_id":7,"protocol_name":"Aave","protocol_symbol":"AAVE","type":"Lending"}}`))
	})

	p, err := c.Protocols().Create(context.Background(), models.Protocol{
		ProtocolName: "Aave", ProtocolSymbol: "AAVE", Type: "Lending",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Contains(t, gotBody, `"protocol_name":"Aave"`)
	assert.Equal(t, int64(7), p.ProtocolID)
}

func TestProtocols_DeleteNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/protocols/9", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	err := c.Protocols().Delete(context.Background(), 9)
	assert.Equal(t, KindStatus, KindOf(err))
}

func TestUsers_TopByVolume(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=5", r.URL.RawQuery)
		_, _ = w.Write([]byte(`{"top_users":[{"user_id":1,"user_address":"0xabc","total_transactions":4,"total_volume":"12.5"}]}`))
	})

	users, err := c.Users().TopByVolume(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "0xabc", users[0].UserAddress)
	assert.Equal(t, "12.5", users[0].TotalVolume)
}

func TestTransactions_GetByHash(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions/hash/0xdeadbeef", r.URL.Path)
		_, _ = w.Write([]byte(`{"transaction_id":3,"transaction_hash":"0xdeadbeef","status":"success"}`))
	})

	tx, err := c.Transactions().GetByHash(context.Background(), "0xdeadbeef")
	require.NoError(t, err)
	assert.Equal(t, int64(3), tx.TransactionID)
	assert.Equal(t, "success", tx.Status)
}

func TestContracts_Get(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/contracts/4", r.URL.Path)
		_, _ = w.Write([]byte(`{"contract_id":4,"contract_address":"0x1","blockchain":"Ethereum","protocol_id":1}`))
	})

	k, err := c.Contracts().Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Ethereum", k.Blockchain)
}
