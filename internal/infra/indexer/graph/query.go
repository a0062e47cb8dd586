package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gabapcia/txprogress/internal/pkg/logger"
	httptransport "github.com/gabapcia/txprogress/internal/pkg/transport/http"

	"github.com/hashicorp/go-retryablehttp"
)

const (
	// entityByURIQuery looks an entity up by the content id of its off-chain data.
	entityByURIQuery = `query($uri: String!) { %s(where: {cid: $uri}, first: 1) { id } }`

	// userByAddressQuery looks a user up by its lowercased address.
	userByAddressQuery = `query($address: String!) { users(where: {address: $address}, first: 1) { id } }`
)

type (
	// entity is the only field read from a subgraph row.
	entity struct {
		ID string `json:"id"`
	}

	queryRequest struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}

	queryError struct {
		Message string `json:"message"`
	}

	queryResponse struct {
		Data   map[string][]entity `json:"data"`
		Errors []queryError        `json:"errors"`
	}
)

// query runs a GraphQL query against the subgraph of chainID and returns the
// rows of field.
func (c *client) query(ctx context.Context, chainID int64, field, query string, variables map[string]any) ([]entity, error) {
	endpoint, ok := c.endpoints[chainID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownChain, chainID)
	}

	body, err := json.Marshal(queryRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if err := httptransport.CheckResponse(res); err != nil {
		return nil, err
	}

	var data queryResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return nil, err
	}

	if len(data.Errors) > 0 {
		messages := make([]string, len(data.Errors))
		for i, e := range data.Errors {
			messages[i] = e.Message
		}
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, strings.Join(messages, "; "))
	}

	return data.Data[field], nil
}

// lookup returns the id of the first row of field, or ErrNotSynced when
// there is none.
func (c *client) lookup(ctx context.Context, chainID int64, field, query string, variables map[string]any) (string, error) {
	rows, err := c.query(ctx, chainID, field, query, variables)
	if err != nil {
		return "", err
	}

	if len(rows) == 0 {
		return "", ErrNotSynced
	}

	return rows[0].ID, nil
}

// waitFor repeats lookup until it finds a row, fails with anything other
// than ErrNotSynced or ctx is done.
func (c *client) waitFor(ctx context.Context, chainID int64, field, query string, variables map[string]any) (string, error) {
	var id string
	err := c.poller.Execute(ctx, func() error {
		found, err := c.lookup(ctx, chainID, field, query, variables)
		if err != nil {
			logger.Debug(ctx, "subgraph lookup",
				"chain.id", chainID,
				"subgraph.field", field,
				"error", err,
			)
			return err
		}

		id = found
		return nil
	})
	if err != nil {
		return "", err
	}

	return id, nil
}

// CheckSynced implements the txprogress.SyncChecker interface. It waits until
// resource holds an entity whose content id is uri.
func (c *client) CheckSynced(ctx context.Context, chainID int64, resource, uri string) (string, error) {
	return c.waitFor(ctx, chainID, resource, fmt.Sprintf(entityByURIQuery, resource), map[string]any{
		"uri": uri,
	})
}

// CheckUserSynced implements the txprogress.SyncChecker interface. It waits
// until the user owning address is indexed.
func (c *client) CheckUserSynced(ctx context.Context, chainID int64, address string) (string, error) {
	return c.waitFor(ctx, chainID, "users", userByAddressQuery, map[string]any{
		"address": strings.ToLower(address),
	})
}
