// Copyright (c) 2026 Veloura. All rights reserved.
// Author: engineering@veloura.shop

package product

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/veloura/veloura/pkg/pagination"
)

// # Elasticsearch Index

// ElasticIndex implements [SearchIndex] on top of an Elasticsearch cluster.
// Documents are keyed by the product's numeric ID rendered as a string.
type ElasticIndex struct {
	client *elasticsearch.Client
	index  string
}

// NewElasticIndex wraps an Elasticsearch client for the given index name.
func NewElasticIndex(client *elasticsearch.Client, index string) *ElasticIndex {
	return &ElasticIndex{client: client, index: index}
}

/*
NewSearchClient connects to Elasticsearch and verifies the cluster responds.

Parameters:
  - addresses: []string (Cluster node URLs)
  - username: string
  - password: string

Returns:
  - *elasticsearch.Client: Connected client
  - error: Connection or cluster-info failures
*/
func NewSearchClient(addresses []string, username, password string) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: addresses,
		Username:  username,
		Password:  password,
	})
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to create client: %w", err)
	}

	// Verify the cluster is actually reachable before handing the client out.
	response, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: failed to reach cluster: %w", err)
	}
	defer response.Body.Close()

	if response.IsError() {
		body, _ := io.ReadAll(response.Body)
		return nil, fmt.Errorf("elasticsearch: cluster error: %s: %s", response.Status(), body)
	}

	return client, nil
}

// Ping checks cluster reachability, used by the readiness probe.
func (es *ElasticIndex) Ping(ctx context.Context) error {
	response, err := es.client.Ping(es.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch: ping failed: %w", err)
	}
	defer response.Body.Close()

	if response.IsError() {
		return fmt.Errorf("elasticsearch: ping returned %s", response.Status())
	}

	return nil
}

/*
Index upserts a product document.

Parameters:
  - ctx: context.Context
  - doc: SearchDocument

Returns:
  - error: Serialization or indexing failures
*/
func (es *ElasticIndex) Index(ctx context.Context, doc SearchDocument) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(doc); err != nil {
		return fmt.Errorf("elasticsearch: failed to encode document: %w", err)
	}

	response, err := es.client.Index(
		es.index,
		&buf,
		es.client.Index.WithDocumentID(strconv.FormatInt(doc.ID, 10)),
		es.client.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: failed to index product %d: %w", doc.ID, err)
	}
	defer response.Body.Close()

	if response.IsError() {
		return fmt.Errorf("elasticsearch: index returned %s for product %d", response.Status(), doc.ID)
	}

	return nil
}

/*
Remove deletes a product document. A missing document is not an error, so
unpublish operations stay idempotent.

Parameters:
  - ctx: context.Context
  - id: int64

Returns:
  - error: Deletion failures
*/
func (es *ElasticIndex) Remove(ctx context.Context, id int64) error {
	response, err := es.client.Delete(
		es.index,
		strconv.FormatInt(id, 10),
		es.client.Delete.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("elasticsearch: failed to delete product %d: %w", id, err)
	}
	defer response.Body.Close()

	if response.IsError() && response.StatusCode != 404 {
		return fmt.Errorf("elasticsearch: delete returned %s for product %d", response.Status(), id)
	}

	return nil
}

/*
Search runs a fuzzy multi-field query over the index.

Description: Uses a multi_match query boosting the name field over the
description, with AUTO fuzziness so minor typos still match.

Parameters:
  - ctx: context.Context
  - query: string
  - page: pagination.Params

Returns:
  - []SearchDocument: Matching documents, best first
  - int: Total match count
  - error: Query or decoding failures
*/
func (es *ElasticIndex) Search(ctx context.Context, query string, page pagination.Params) ([]SearchDocument, int, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": page.Offset(),
		"size": page.Limit,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, 0, fmt.Errorf("elasticsearch: failed to encode query: %w", err)
	}

	response, err := es.client.Search(
		es.client.Search.WithContext(ctx),
		es.client.Search.WithIndex(es.index),
		es.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("elasticsearch: search failed: %w", err)
	}
	defer response.Body.Close()

	if response.IsError() {
		return nil, 0, fmt.Errorf("elasticsearch: search returned %s", response.Status())
	}

	var result struct {
		Hits struct {
			Total struct {
				Value int `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source SearchDocument `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(response.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("elasticsearch: failed to decode search response: %w", err)
	}

	documents := make([]SearchDocument, len(result.Hits.Hits))
	for i, hit := range result.Hits.Hits {
		documents[i] = hit.Source
	}

	return documents, result.Hits.Total.Value, nil
}
