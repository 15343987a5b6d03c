package tagging

import (
	"encoding/csv"
	"fmt"
	"regexp"
	"strings"

	"github.com/vashchenko/go_pair_tags/common/external/subgraphs"
	"github.com/vashchenko/go_pair_tags/common/models"
)

const projectName = "Uniswap v2"
const projectWebsite = "https://uniswap.org"

const symbolsTextLimit = 45

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// PairHasMarkup reports whether any token name or symbol of the pair
// contains an HTML-tag-like substring. Such pairs are skipped, not errors.
func PairHasMarkup(pair subgraphs.PairResponse) bool {
	return markupPattern.MatchString(pair.Token0.Name) ||
		markupPattern.MatchString(pair.Token0.Symbol) ||
		markupPattern.MatchString(pair.Token1.Name) ||
		markupPattern.MatchString(pair.Token1.Symbol)
}

// BuildTag maps one validated pair into a registry tag.
func BuildTag(networkID string, pair subgraphs.PairResponse) models.ContractTag {
	symbol0 := strings.TrimSpace(pair.Token0.Symbol)
	symbol1 := strings.TrimSpace(pair.Token1.Symbol)
	symbolsText := truncate(symbol0+"/"+symbol1, symbolsTextLimit)

	return models.ContractTag{
		ContractAddress: fmt.Sprintf("eip155:%s:%s", networkID, pair.ID),
		PublicNameTag:   symbolsText + " Pair",
		ProjectName:     projectName,
		UIWebsiteLink:   projectWebsite,
		PublicNote: fmt.Sprintf("This is the %s %s (%s) / %s (%s) liquidity pool contract.",
			projectName,
			displayName(pair.Token0.Name), symbol0,
			displayName(pair.Token1.Name), symbol1),
	}
}

// truncate caps s at limit characters, the trailing ellipsis included.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

func displayName(name string) string {
	// Circle's token is registered as "USD//C", which reads badly in a note.
	return strings.ReplaceAll(strings.TrimSpace(name), "USD//C", "USDC")
}

// RenderCSV renders tags in the registry import format, header included.
func RenderCSV(tags []models.ContractTag) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	w.Write([]string{
		"Contract Address",
		"Public Name Tag",
		"Project Name",
		"UI/Website Link",
		"Public Note",
	})
	for _, tag := range tags {
		w.Write([]string{
			tag.ContractAddress,
			tag.PublicNameTag,
			tag.ProjectName,
			tag.UIWebsiteLink,
			tag.PublicNote,
		})
	}
	w.Flush()

	return sb.String()
}
