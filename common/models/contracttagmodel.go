package models

const PAIR_TAGS_TABLE = "pair_tags"

const PAIR_TAG_CONTRACT_ADDRESS = "contract_address"
const PAIR_TAG_PUBLIC_NAME_TAG = "public_name_tag"
const PAIR_TAG_PROJECT_NAME = "project_name"
const PAIR_TAG_UI_WEBSITE_LINK = "ui_website_link"
const PAIR_TAG_PUBLIC_NOTE = "public_note"
const PAIR_TAG_CHAINID = "chain_id"

// ContractTag is one registry row describing a pair contract.
// JSON field names match the registry import format exactly.
type ContractTag struct {
	ContractAddress string `json:"Contract Address"`
	PublicNameTag   string `json:"Public Name Tag"`
	ProjectName     string `json:"Project Name"`
	UIWebsiteLink   string `json:"UI/Website Link"`
	PublicNote      string `json:"Public Note"`
}
