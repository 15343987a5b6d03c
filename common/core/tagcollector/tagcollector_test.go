package tagcollector

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vashchenko/go_pair_tags/common/external/subgraphs"
	"github.com/vashchenko/go_pair_tags/common/external/subgraphs/subgrapherrors"
)

type stubSubgraphClient struct {
	pairs []subgraphs.PairResponse
	err   error
}

func (s *stubSubgraphClient) ResolveURL(networkID string) (string, error) {
	return "http://stub", nil
}

func (s *stubSubgraphClient) GetV2Pairs(ctx context.Context, networkID string) ([]subgraphs.PairResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pairs, nil
}

func (s *stubSubgraphClient) GetSubgraphMeta(ctx context.Context, networkID string) (*subgraphs.SubgraphMeta, error) {
	return &subgraphs.SubgraphMeta{}, nil
}

func pair(id, name0, sym0, name1, sym1 string) subgraphs.PairResponse {
	return subgraphs.PairResponse{
		ID:                 id,
		CreatedAtTimestamp: "1620250931",
		Token0:             subgraphs.TokenResponse{ID: id + "-t0", Name: name0, Symbol: sym0},
		Token1:             subgraphs.TokenResponse{ID: id + "-t1", Name: name1, Symbol: sym1},
	}
}

func TestCollectTags(t *testing.T) {
	client := &stubSubgraphClient{pairs: []subgraphs.PairResponse{
		pair("0xaaa", "USD//C", "USDC", "Wrapped Ether", "WETH"),
		pair("0xbbb", "Dai Stablecoin", "DAI", "Wrapped Ether", "WETH"),
	}}

	tags, err := CollectTags(context.Background(), client, "1")
	require.NoError(t, err)

	require.Len(t, tags, 2)
	assert.Equal(t, "eip155:1:0xaaa", tags[0].ContractAddress)
	assert.Equal(t, "eip155:1:0xbbb", tags[1].ContractAddress)
	assert.Equal(t, "DAI/WETH Pair", tags[1].PublicNameTag)
}

func TestCollectTags_SkipsMarkupPairs(t *testing.T) {
	client := &stubSubgraphClient{pairs: []subgraphs.PairResponse{
		pair("0xaaa", "<script>", "EVIL", "Wrapped Ether", "WETH"),
		pair("0xbbb", "Dai Stablecoin", "DAI", "Wrapped Ether", "WETH"),
	}}

	tags, err := CollectTags(context.Background(), client, "1")
	require.NoError(t, err)

	require.Len(t, tags, 1)
	assert.Equal(t, "eip155:1:0xbbb", tags[0].ContractAddress)
}

func TestCollectTags_PropagatesFetchFailure(t *testing.T) {
	client := &stubSubgraphClient{
		err: fmt.Errorf("%w: status 500: oops", subgrapherrors.ErrTransport),
	}

	tags, err := CollectTags(context.Background(), client, "1")
	require.Error(t, err)
	assert.Nil(t, tags)
	assert.ErrorIs(t, err, subgrapherrors.ErrTransport)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "network 1")
}

func TestCollectTags_WrapsUnrecognizedErrors(t *testing.T) {
	client := &stubSubgraphClient{err: errors.New("connection reset by peer")}

	_, err := CollectTags(context.Background(), client, "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, subgrapherrors.ErrUnknown)
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestReturnTags_UnsupportedNetwork(t *testing.T) {
	_, err := ReturnTags(context.Background(), "not-a-network", "key")
	require.Error(t, err)
	assert.ErrorIs(t, err, subgrapherrors.ErrUnsupportedNetwork)
}
