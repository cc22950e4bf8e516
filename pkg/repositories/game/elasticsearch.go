package game

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/fadedpez/blackjack/pkg/entities"
)

// ElasticsearchConfig holds configuration options for the Elasticsearch repository
type ElasticsearchConfig struct {
	URL      string
	Username string
	Password string
	Index    string
}

// DefaultElasticsearchConfig returns a default configuration for Elasticsearch
func DefaultElasticsearchConfig() *ElasticsearchConfig {
	return &ElasticsearchConfig{
		URL:   "http://localhost:9200",
		Index: "blackjack_rounds",
	}
}

// ElasticsearchRepository archives rounds to Elasticsearch on top of a base
// repository. Reads go to the base repository.
type ElasticsearchRepository struct {
	baseRepo Repository
	client   *elasticsearch.Client
	index    string
}

// NewElasticsearchRepository creates a new Elasticsearch repository
func NewElasticsearchRepository(ctx context.Context, baseRepo Repository, config *ElasticsearchConfig) (*ElasticsearchRepository, error) {
	// Configure the Elasticsearch client
	cfg := elasticsearch.Config{
		Addresses: []string{config.URL},
	}

	// Add authentication if provided
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	// Create the client
	client, err := elasticsearch.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("error creating Elasticsearch client: %w", err)
	}

	index := config.Index
	if index == "" {
		index = DefaultElasticsearchConfig().Index
	}

	repo := &ElasticsearchRepository{
		baseRepo: baseRepo,
		client:   client,
		index:    index,
	}

	if err := repo.initIndex(ctx); err != nil {
		return nil, fmt.Errorf("error initializing index: %w", err)
	}

	return repo, nil
}

// initIndex creates the round index if it doesn't exist
func (r *ElasticsearchRepository) initIndex(ctx context.Context) error {
	res, err := r.client.Indices.Exists([]string{r.index}, r.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("error checking if round index exists: %w", err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusNotFound {
		return nil
	}

	req := esapi.IndicesCreateRequest{
		Index: r.index,
		Body:  bytes.NewReader([]byte(roundIndexMapping)),
	}

	res, err = req.Do(ctx, r.client)
	if err != nil {
		return fmt.Errorf("error creating round index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error creating round index: %s", res.String())
	}
	return nil
}

// SaveRound saves to the base repository, then indexes the round
func (r *ElasticsearchRepository) SaveRound(ctx context.Context, round *entities.RoundRecord) error {
	// First save to the base repository
	if err := r.baseRepo.SaveRound(ctx, round); err != nil {
		return fmt.Errorf("error saving round to base repository: %w", err)
	}

	// Then index in Elasticsearch
	return r.IndexRound(ctx, round)
}

// IndexRound writes a round document keyed by the round ID
func (r *ElasticsearchRepository) IndexRound(ctx context.Context, round *entities.RoundRecord) error {
	jsonData, err := json.Marshal(newRoundDocument(round))
	if err != nil {
		return fmt.Errorf("error marshaling round: %w", err)
	}

	res, err := r.client.Index(
		r.index,
		bytes.NewReader(jsonData),
		r.client.Index.WithContext(ctx),
		r.client.Index.WithDocumentID(round.ID),
		r.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("error indexing round: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("error indexing round: %s", res.String())
	}

	return nil
}

// GetRound retrieves a round from the base repository
func (r *ElasticsearchRepository) GetRound(ctx context.Context, roundID string) (*entities.RoundRecord, error) {
	return r.baseRepo.GetRound(ctx, roundID)
}

// GetSessionRounds retrieves a session's rounds from the base repository
func (r *ElasticsearchRepository) GetSessionRounds(ctx context.Context, sessionID string, limit int) ([]*entities.RoundRecord, error) {
	return r.baseRepo.GetSessionRounds(ctx, sessionID, limit)
}

// Close closes the base repository
func (r *ElasticsearchRepository) Close() error {
	return r.baseRepo.Close()
}
