package subgraphs

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/machinebox/graphql"
	"github.com/sirupsen/logrus"

	"github.com/vashchenko/go_pair_tags/common/external/subgraphs/subgrapherrors"
)

//go:embed subgraphassets/subgraphurls.json
var subgraphURLsMapString string

const apiKeyPlaceholder = "{api-key}"

type subgraphURLsMap map[string]string

type SubgraphClient interface {
	ResolveURL(networkID string) (string, error)
	GetV2Pairs(ctx context.Context, networkID string) ([]PairResponse, error)
	GetSubgraphMeta(ctx context.Context, networkID string) (*SubgraphMeta, error)
}

type SubgraphClientConfig struct {
	APIKey string
}

type subgraphClient struct {
	subgraphURLs subgraphURLsMap
	apiKey       string
	httpClient   *http.Client
}

func NewSubgraphClient(config SubgraphClientConfig) (SubgraphClient, error) {
	subgraphURLs := subgraphURLsMap{}

	err := json.Unmarshal([]byte(subgraphURLsMapString), &subgraphURLs)
	if err != nil {
		return nil, errors.New("unable to parse subgraph urls map")
	}

	return &subgraphClient{
		subgraphURLs: subgraphURLs,
		apiKey:       config.APIKey,
		httpClient:   http.DefaultClient,
	}, nil
}

func (s *subgraphClient) ResolveURL(networkID string) (string, error) {
	if _, err := strconv.Atoi(networkID); err != nil {
		return "", s.unsupportedNetworkError(networkID)
	}

	template, ok := s.subgraphURLs[networkID]
	if !ok {
		return "", s.unsupportedNetworkError(networkID)
	}

	return strings.ReplaceAll(template, apiKeyPlaceholder, url.PathEscape(s.apiKey)), nil
}

func (s *subgraphClient) unsupportedNetworkError(networkID string) error {
	supported := make([]string, 0, len(s.subgraphURLs))
	for id := range s.subgraphURLs {
		supported = append(supported, id)
	}
	sort.Strings(supported)

	return fmt.Errorf("%w: %q, supported network ids: %s",
		subgrapherrors.ErrUnsupportedNetwork, networkID, strings.Join(supported, ", "))
}

const pairsPageSize = 1000

//go:embed subgraphassets/v2pairsquery.graphql
var v2PairsQuery string

// GetV2Pairs walks the pair list in createdAtTimestamp order, one page per
// request, until a short page marks the end. Any page failure aborts the
// whole walk with no partial result.
func (s *subgraphClient) GetV2Pairs(ctx context.Context, networkID string) ([]PairResponse, error) {
	graphURL, err := s.ResolveURL(networkID)
	if err != nil {
		return nil, err
	}

	pairs := []PairResponse{}
	var lastTimestamp int64

	for {
		page, err := s.queryV2Pairs(ctx, graphURL, lastTimestamp)
		if err != nil {
			return nil, err
		}

		pairs = append(pairs, page...)

		logrus.WithFields(logrus.Fields{
			"network": networkID,
			"page":    len(page),
			"total":   len(pairs),
			"cursor":  lastTimestamp,
		}).Info("fetched pairs page")

		if len(page) < pairsPageSize {
			return pairs, nil
		}

		lastTimestamp, err = strconv.ParseInt(page[len(page)-1].CreatedAtTimestamp, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad createdAtTimestamp %q",
				subgrapherrors.ErrMalformedResponse, page[len(page)-1].CreatedAtTimestamp)
		}
	}
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type pairsResponseData struct {
	// Pointer so an absent pairs field is distinguishable from an empty page.
	Pairs *[]PairResponse `json:"pairs"`
}

type pairsResponseBody struct {
	Data   *pairsResponseData `json:"data"`
	Errors []graphQLError     `json:"errors"`
}

func (s *subgraphClient) queryV2Pairs(ctx context.Context, graphURL string, lastTimestamp int64) ([]PairResponse, error) {
	reqBody := graphQLRequest{
		Query: v2PairsQuery,
		Variables: map[string]any{
			"lastTimestamp": lastTimestamp,
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal pairs query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, graphURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create pairs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pairs request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read pairs response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s",
			subgrapherrors.ErrTransport, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	var parsed pairsResponseBody
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s", subgrapherrors.ErrMalformedResponse, err)
	}

	if len(parsed.Errors) > 0 {
		for _, graphErr := range parsed.Errors {
			logrus.WithField("url", graphURL).Error(graphErr.Message)
		}
		return nil, fmt.Errorf("%w: %s", subgrapherrors.ErrUpstream, parsed.Errors[0].Message)
	}

	if parsed.Data == nil || parsed.Data.Pairs == nil {
		return nil, fmt.Errorf("%w: missing data.pairs", subgrapherrors.ErrMalformedResponse)
	}

	return *parsed.Data.Pairs, nil
}

//go:embed subgraphassets/metaquery.graphql
var metaQuery string

// GetSubgraphMeta reads the indexing status block of the subgraph. Used as a
// preflight check only, never as part of the pair walk.
func (s *subgraphClient) GetSubgraphMeta(ctx context.Context, networkID string) (*SubgraphMeta, error) {
	graphURL, err := s.ResolveURL(networkID)
	if err != nil {
		return nil, err
	}

	client := graphql.NewClient(graphURL, graphql.WithHTTPClient(s.httpClient))
	if client == nil {
		return nil, errors.New("unable to create graphql client")
	}
	req := graphql.NewRequest(metaQuery)
	req.Header.Set("Accept", "application/json")

	respData := struct {
		Meta SubgraphMeta `json:"_meta"`
	}{}

	if err := client.Run(ctx, req, &respData); err != nil {
		return nil, fmt.Errorf("%w: %s", subgrapherrors.ErrUpstream, err)
	}

	return &respData.Meta, nil
}
