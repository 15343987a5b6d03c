package tagcollector

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/vashchenko/go_pair_tags/common/core/tagging"
	"github.com/vashchenko/go_pair_tags/common/external/subgraphs"
	"github.com/vashchenko/go_pair_tags/common/external/subgraphs/subgrapherrors"
	"github.com/vashchenko/go_pair_tags/common/models"
)

// ReturnTags collects registry tags for every Uniswap v2 pair on the given
// network. Stateless: each call builds its own subgraph client from the
// credential and walks the full pair list.
func ReturnTags(ctx context.Context, networkID string, apiKey string) ([]models.ContractTag, error) {
	client, err := subgraphs.NewSubgraphClient(subgraphs.SubgraphClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating subgraph client: %w", err)
	}

	return CollectTags(ctx, client, networkID)
}

// CollectTags runs the fetch/validate/transform pipeline against an already
// built client. A fetch failure aborts the whole run; markup rejections are
// logged and skipped.
func CollectTags(ctx context.Context, client subgraphs.SubgraphClient, networkID string) ([]models.ContractTag, error) {
	pairs, err := client.GetV2Pairs(ctx, networkID)
	if err != nil {
		wrapped := fmt.Errorf("fetching v2 pairs for network %s: %w", networkID, classify(err))
		logrus.WithField("network", networkID).Error(wrapped)
		return nil, wrapped
	}

	tags := make([]models.ContractTag, 0, len(pairs))
	for _, pair := range pairs {
		if tagging.PairHasMarkup(pair) {
			logrus.WithFields(logrus.Fields{
				"pair":          pair.ID,
				"token0_name":   pair.Token0.Name,
				"token0_symbol": pair.Token0.Symbol,
				"token1_name":   pair.Token1.Name,
				"token1_symbol": pair.Token1.Symbol,
			}).Warn("rejecting pair with markup in token fields")
			continue
		}

		tags = append(tags, tagging.BuildTag(networkID, pair))
	}

	logrus.WithFields(logrus.Fields{
		"network":  networkID,
		"pairs":    len(pairs),
		"tags":     len(tags),
		"rejected": len(pairs) - len(tags),
	}).Info("collected pair tags")

	return tags, nil
}

var knownErrors = []error{
	subgrapherrors.ErrUnsupportedNetwork,
	subgrapherrors.ErrTransport,
	subgrapherrors.ErrUpstream,
	subgrapherrors.ErrMalformedResponse,
}

// classify folds errors that carry no recognized kind into ErrUnknown so
// callers can always match on a sentinel.
func classify(err error) error {
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return err
		}
	}
	return fmt.Errorf("%w: %s", subgrapherrors.ErrUnknown, err)
}
