package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/elastic/go-elasticsearch/v9"

	"courtflow/internal/model"
)

// NewClient connects to Elasticsearch and pings it once.
func NewClient(addr, username, password string) (*elasticsearch.Client, error) {
	cfg := elasticsearch.Config{
		Addresses: []string{addr},
		Username:  username,
		Password:  password,
	}
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch client: %w", err)
	}

	res, err := client.Info()
	if err != nil {
		return nil, fmt.Errorf("elasticsearch info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("elasticsearch error: %s: %s", res.Status(), body)
	}
	return client, nil
}

// caseDoc is the indexed projection of a case. Sensitive cases are never
// indexed, so search results leak nothing the list endpoint would not show.
type caseDoc struct {
	ID          uint   `json:"id"`
	CaseNumber  string `json:"case_number"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CourtID     uint   `json:"court_id"`
	Public      bool   `json:"public"`
}

// IndexCase upserts a case document into the index.
func IndexCase(ctx context.Context, es *elasticsearch.Client, index string, c *model.Case) error {
	doc := caseDoc{
		ID:          c.ID,
		CaseNumber:  c.CaseNumber,
		Title:       c.Title,
		Description: c.Description,
		Status:      string(c.Status),
		CourtID:     c.CourtID,
		Public:      c.Public,
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	res, err := es.Index(
		index,
		bytes.NewReader(payload),
		es.Index.WithContext(ctx),
		es.Index.WithDocumentID(strconv.FormatUint(uint64(c.ID), 10)),
	)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index case %d: %s", c.ID, res.Status())
	}
	return nil
}

// CaseHit is one search result.
type CaseHit struct {
	ID         uint   `json:"id"`
	CaseNumber string `json:"case_number"`
	Title      string `json:"title"`
	Status     string `json:"status"`
}

// SearchCases runs a fuzzy multi-field query over public case documents.
func SearchCases(ctx context.Context, es *elasticsearch.Client, index, query string, from, size int) (int64, []CaseHit, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"must": map[string]interface{}{
					"multi_match": map[string]interface{}{
						"query":     query,
						"fields":    []string{"case_number^3", "title^2", "description"},
						"fuzziness": "AUTO",
					},
				},
				"filter": map[string]interface{}{
					"term": map[string]interface{}{"public": true},
				},
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, err
	}

	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(index),
		es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search cases: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source CaseHit `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	hits := make([]CaseHit, len(r.Hits.Hits))
	for i, h := range r.Hits.Hits {
		hits[i] = h.Source
	}
	return r.Hits.Total.Value, hits, nil
}
