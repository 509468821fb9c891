package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/meilisearch/meilisearch-go"

	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/catalog"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/filter"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/models"
	"github.com/Knighty7-ciper/Landlord-Management-System--LMS/internal/pagination"
)

// DefaultIndex is the index uid used when none is configured.
const DefaultIndex = "properties"

// SearchClient keeps property documents in a Meilisearch index.
type SearchClient struct {
	client *meilisearch.Client
	index  string
}

var _ catalog.SearchIndex = (*SearchClient)(nil)

func NewSearchClient(host, apiKey, index string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})
	if index == "" {
		index = DefaultIndex
	}
	return &SearchClient{
		client: client,
		index:  index,
	}
}

// InitIndex initializes the Meilisearch index
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: "id",
	})
	if err != nil && !isIndexExists(err) {
		return err
	}

	// Configure searchable attributes
	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"name",
		"description",
		"city",
		"street_address",
		"neighborhood",
		"tags",
	})
	if err != nil {
		return err
	}

	// Configure filterable attributes
	filterable := filterableAttributes()
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&filterable)
	if err != nil {
		return err
	}

	// Configure sortable attributes
	sortable := sortableAttributes()
	_, err = s.client.Index(s.index).UpdateSortableAttributes(&sortable)
	return err
}

func isIndexExists(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "index_already_exists") || strings.Contains(msg, "already exists")
}

// Healthy reports whether the server answers its health endpoint.
func (s *SearchClient) Healthy() bool {
	return s.client.IsHealthy()
}

// IndexProperty indexes a single property
func (s *SearchClient) IndexProperty(_ context.Context, p *models.Property, tags []string, images []models.PropertyImage) error {
	_, err := s.client.Index(s.index).AddDocuments([]PropertyDocument{NewDocument(p, tags, images)}, "id")
	return err
}

// IndexDocuments indexes multiple prepared documents
func (s *SearchClient) IndexDocuments(docs []PropertyDocument) error {
	if len(docs) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(docs, "id")
	return err
}

func (s *SearchClient) RemoveProperty(_ context.Context, id string) error {
	_, err := s.client.Index(s.index).DeleteDocument(id)
	return err
}

// SearchIDs answers a predicate with ordered property ids and the estimated total.
func (s *SearchClient) SearchIDs(_ context.Context, pred filter.Predicate, q pagination.Query) ([]string, int64, error) {
	req, query, err := buildRequest(pred, q)
	if err != nil {
		return nil, 0, err
	}
	res, err := s.client.Index(s.index).Search(query, req)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		m, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		if id, ok := m["id"].(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, res.EstimatedTotalHits, nil
}

func buildRequest(pred filter.Predicate, q pagination.Query) (*meilisearch.SearchRequest, string, error) {
	expr, query, err := renderFilter(pred)
	if err != nil {
		return nil, "", fmt.Errorf("render search filter: %w", err)
	}
	req := &meilisearch.SearchRequest{
		Offset:               int64(q.Offset),
		Limit:                int64(q.Limit),
		AttributesToRetrieve: []string{"id"},
		Sort:                 []string{sortRule(q.SortField, q.Ascending)},
	}
	if expr != "" {
		req.Filter = expr
	}
	return req, query, nil
}
