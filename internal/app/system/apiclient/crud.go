// internal/app/system/apiclient/crud.go
package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dalemusser/stratametrics/internal/domain/models"
)

// DefaultPerPage is the page size used when List is called with perPage <= 0.
const DefaultPerPage = 20

// ProtocolsAPI groups the /protocols endpoints.
type ProtocolsAPI struct {
	c *Client
}

// List fetches one page of protocols (1-based page).
func (p *ProtocolsAPI) List(ctx context.Context, page, perPage int) (models.ProtocolPage, error) {
	var out models.ProtocolPage
	err := p.c.send(ctx, http.MethodGet, "/protocols", "/protocols", pageQuery(page, perPage), nil, &out)
	return out, err
}

// Get fetches a protocol by ID.
func (p *ProtocolsAPI) Get(ctx context.Context, id int64) (models.Protocol, error) {
	var out models.Protocol
	err := p.c.send(ctx, http.MethodGet, idPath("/protocols", id), "/protocols/{id}", nil, nil, &out)
	return out, err
}

// Create adds a protocol and returns the stored record.
func (p *ProtocolsAPI) Create(ctx context.Context, in models.Protocol) (models.Protocol, error) {
	var out models.Protocol
	err := p.c.mutate(ctx, http.MethodPost, "/protocols", "/protocols", in, "protocol", &out)
	return out, err
}

// Update replaces the mutable fields of a protocol.
func (p *ProtocolsAPI) Update(ctx context.Context, id int64, in models.Protocol) (models.Protocol, error) {
	var out models.Protocol
	err := p.c.mutate(ctx, http.MethodPut, idPath("/protocols", id), "/protocols/{id}", in, "protocol", &out)
	return out, err
}

// Delete removes a protocol.
func (p *ProtocolsAPI) Delete(ctx context.Context, id int64) error {
	return p.c.send(ctx, http.MethodDelete, idPath("/protocols", id), "/protocols/{id}", nil, nil, nil)
}

// ContractsAPI groups the /contracts endpoints.
type ContractsAPI struct {
	c *Client
}

// List fetches one page of contracts.
func (k *ContractsAPI) List(ctx context.Context, page, perPage int) (models.ContractPage, error) {
	var out models.ContractPage
	err := k.c.send(ctx, http.MethodGet, "/contracts", "/contracts", pageQuery(page, perPage), nil, &out)
	return out, err
}

// Get fetches a contract by ID.
func (k *ContractsAPI) Get(ctx context.Context, id int64) (models.Contract, error) {
	var out models.Contract
	err := k.c.send(ctx, http.MethodGet, idPath("/contracts", id), "/contracts/{id}", nil, nil, &out)
	return out, err
}

// Create adds a contract.
func (k *ContractsAPI) Create(ctx context.Context, in models.Contract) (models.Contract, error) {
	var out models.Contract
	err := k.c.mutate(ctx, http.MethodPost, "/contracts", "/contracts", in, "contract", &out)
	return out, err
}

// Update changes a contract.
func (k *ContractsAPI) Update(ctx context.Context, id int64, in models.Contract) (models.Contract, error) {
	var out models.Contract
	err := k.c.mutate(ctx, http.MethodPut, idPath("/contracts", id), "/contracts/{id}", in, "contract", &out)
	return out, err
}

// Delete removes a contract.
func (k *ContractsAPI) Delete(ctx context.Context, id int64) error {
	return k.c.send(ctx, http.MethodDelete, idPath("/contracts", id), "/contracts/{id}", nil, nil, nil)
}

// UsersAPI groups the read-side /users endpoints.
type UsersAPI struct {
	c *Client
}

// List fetches one page of users.
func (u *UsersAPI) List(ctx context.Context, page, perPage int) (models.UserPage, error) {
	var out models.UserPage
	err := u.c.send(ctx, http.MethodGet, "/users", "/users", pageQuery(page, perPage), nil, &out)
	return out, err
}

// Get fetches a user by ID.
func (u *UsersAPI) Get(ctx context.Context, id int64) (models.User, error) {
	var out models.User
	err := u.c.send(ctx, http.MethodGet, idPath("/users", id), "/users/{id}", nil, nil, &out)
	return out, err
}

// TopByVolume fetches the highest-volume users, server-ranked.
func (u *UsersAPI) TopByVolume(ctx context.Context, limit int) ([]models.User, error) {
	if limit <= 0 {
		limit = DefaultTopLimit
	}
	var out models.TopUsers
	q := url.Values{"limit": {strconv.Itoa(limit)}}
	err := u.c.send(ctx, http.MethodGet, "/users/top-by-volume", "/users/top-by-volume", q, nil, &out)
	return out.TopUsers, err
}

// TransactionsAPI groups the read-side /transactions endpoints.
type TransactionsAPI struct {
	c *Client
}

// List fetches one page of transactions.
func (t *TransactionsAPI) List(ctx context.Context, page, perPage int) (models.TransactionPage, error) {
	var out models.TransactionPage
	err := t.c.send(ctx, http.MethodGet, "/transactions", "/transactions", pageQuery(page, perPage), nil, &out)
	return out, err
}

// Get fetches a transaction by ID.
func (t *TransactionsAPI) Get(ctx context.Context, id int64) (models.Transaction, error) {
	var out models.Transaction
	err := t.c.send(ctx, http.MethodGet, idPath("/transactions", id), "/transactions/{id}", nil, nil, &out)
	return out, err
}

// GetByHash fetches a transaction by its on-chain hash.
func (t *TransactionsAPI) GetByHash(ctx context.Context, hash string) (models.Transaction, error) {
	var out models.Transaction
	path := "/transactions/hash/" + url.PathEscape(hash)
	err := t.c.send(ctx, http.MethodGet, path, "/transactions/hash/{hash}", nil, nil, &out)
	return out, err
}

// mutate sends a create/update body and decodes the named entity member of
// the {"message": ..., "<entity>": {...}} reply.
func (c *Client) mutate(ctx context.Context, method, path, route string, in any, entity string, out any) error {
	body, err := c.do(ctx, method, path, route, nil, in)
	if err != nil {
		return err
	}
	return decodeMember(route, body, entity, out)
}

func pageQuery(page, perPage int) url.Values {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return url.Values{
		"page":     {strconv.Itoa(page)},
		"per_page": {strconv.Itoa(perPage)},
	}
}

func idPath(collection string, id int64) string {
	return collection + "/" + strconv.FormatInt(id, 10)
}
