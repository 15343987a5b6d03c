package subgraphs

type TokenResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type PairResponse struct {
	ID                 string        `json:"id"`
	CreatedAtTimestamp string        `json:"createdAtTimestamp"`
	Token0             TokenResponse `json:"token0"`
	Token1             TokenResponse `json:"token1"`
}

type SubgraphMeta struct {
	Block struct {
		Number int64 `json:"number"`
	} `json:"block"`
	HasIndexingErrors bool `json:"hasIndexingErrors"`
}
