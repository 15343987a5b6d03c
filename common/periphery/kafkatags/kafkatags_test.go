package kafkatags

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vashchenko/go_pair_tags/common/models"
)

func TestNewPairTagsPublisher_RequiresServerAndTopic(t *testing.T) {
	_, err := NewPairTagsPublisher(PairTagsPublisherConfig{KafkaServer: "localhost:9092"})
	assert.Error(t, err)

	_, err = NewPairTagsPublisher(PairTagsPublisherConfig{KafkaTopic: "pair-tags"})
	assert.Error(t, err)
}

func TestBuildTagMessages(t *testing.T) {
	tags := []models.ContractTag{
		{
			ContractAddress: "eip155:1:0xaaa",
			PublicNameTag:   "USDC/WETH Pair",
			ProjectName:     "Uniswap v2",
			UIWebsiteLink:   "https://uniswap.org",
			PublicNote:      "note",
		},
		{
			ContractAddress: "eip155:1:0xbbb",
			PublicNameTag:   "DAI/WETH Pair",
		},
	}

	messages, err := buildTagMessages("1", tags)
	require.NoError(t, err)
	require.Len(t, messages, 2)

	assert.Equal(t, []byte("eip155:1:0xaaa"), messages[0].Key)

	var event tagEvent
	require.NoError(t, json.Unmarshal(messages[0].Value, &event))
	assert.Equal(t, "1", event.ChainID)
	assert.Equal(t, tags[0], event.Tag)

	// Registry field names survive the round trip.
	assert.Contains(t, string(messages[0].Value), `"Contract Address"`)
	assert.Contains(t, string(messages[0].Value), `"UI/Website Link"`)
}
