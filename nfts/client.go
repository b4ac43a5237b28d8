package nfts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultBaseURL is the Alchemy NFT API root; {network} is substituted
	DefaultBaseURL = "https://{network}.g.alchemy.com/nft/v3"

	defaultContractTimeout = 8 * time.Second
	defaultTokenURITimeout = 5 * time.Second
	defaultWorkers         = 8

	maxPagesPerContract = 2
	// MaxItems caps the merged feed
	MaxItems = 96

	maxErrorBody = 4 << 10
)

// DefaultNetworks are queried for every contract, in this order
var DefaultNetworks = []string{"eth-mainnet", "base-mainnet"}

// excludedTokens never appear in the feed
var excludedTokens = map[string]bool{
	"0x1d0a7c9db496ae18fc36f57b6be976de0a2230f6:1": true,
}

// Client reads NFTs per contract from the Alchemy REST API
type Client struct {
	BaseURL  string
	APIKey   string
	Networks []string

	// ContractTimeout bounds the paged fetch of one contract on one network
	ContractTimeout time.Duration
	// TokenURITimeout bounds one token metadata fetch
	TokenURITimeout time.Duration

	// Workers bounds concurrent token metadata fetches
	Workers int

	HTTPClient *http.Client
	Log        *zap.Logger
}

// UpstreamError is a non-2xx answer from the NFT API
type UpstreamError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("nft api returned %d: %s", e.StatusCode, e.Body)
}

func (c *Client) logger() *zap.Logger {
	if c.Log == nil {
		return zap.NewNop()
	}
	return c.Log
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

func orDefault(d, fallback time.Duration) time.Duration {
	if d <= 0 {
		return fallback
	}
	return d
}

// Fetch returns the merged feed for the given contracts. A contract that
// errors or runs past ContractTimeout contributes nothing. Tokens without an
// image are dropped, duplicates keep the later entry in the earlier position,
// and the feed stops at MaxItems. Without an API key the feed is empty.
func (c *Client) Fetch(ctx context.Context, contracts []string) []Item {
	key := CleanAPIKey(c.APIKey)
	if key == "" {
		c.logger().Warn("ALCHEMY_API_KEY is missing, the NFT feed will be empty")
		return []Item{}
	}

	networks := c.Networks
	if len(networks) == 0 {
		networks = DefaultNetworks
	}

	// one slot per network and contract keeps the merge order stable
	results := make([][]alchemyNFT, len(networks)*len(contracts))
	var g errgroup.Group
	for i, network := range networks {
		for j, contract := range contracts {
			slot := i*len(contracts) + j
			g.Go(func() error {
				results[slot] = c.contractNFTs(ctx, key, network, contract)
				return nil
			})
		}
	}
	_ = g.Wait()

	var all []alchemyNFT
	for _, r := range results {
		all = append(all, r...)
	}

	return merge(c.normalizeAll(ctx, all))
}

// contractNFTs pages through one contract, returning nothing on error or timeout
func (c *Client) contractNFTs(ctx context.Context, key, network, contract string) []alchemyNFT {
	ctx, cancel := context.WithTimeout(ctx, orDefault(c.ContractTimeout, defaultContractTimeout))
	defer cancel()

	var all []alchemyNFT
	pageKey := ""
	for pages := 0; pages < maxPagesPerContract; pages++ {
		page, err := c.fetchPage(ctx, key, network, contract, pageKey)
		if err != nil {
			c.logger().Warn("fetch nfts for contract",
				zap.String("network", network),
				zap.String("contract", contract),
				zap.Error(err))
			return nil
		}
		all = append(all, page.NFTs...)
		if page.PageKey == "" {
			break
		}
		pageKey = page.PageKey
	}
	return all
}

func (c *Client) endpoint(key, network, contract, pageKey string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	base = strings.ReplaceAll(base, "{network}", network)

	q := url.Values{}
	q.Set("contractAddress", contract)
	q.Set("withMetadata", "true")
	if pageKey != "" {
		q.Set("pageKey", pageKey)
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(key) + "/getNFTsForContract?" + q.Encode()
}

func (c *Client) fetchPage(ctx context.Context, key, network, contract, pageKey string) (*alchemyPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(key, network, contract, pageKey), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("request nfts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		details, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(details)}
	}

	var page alchemyPage
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(&page); err != nil {
		return nil, fmt.Errorf("decode nfts: %w", err)
	}
	return &page, nil
}

// normalizeAll normalizes every token concurrently, keeping input order
func (c *Client) normalizeAll(ctx context.Context, all []alchemyNFT) []Item {
	workers := c.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	items := make([]*Item, len(all))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, nft := range all {
		g.Go(func() error {
			items[i] = c.normalize(ctx, nft)
			return nil
		})
	}
	_ = g.Wait()

	out := make([]Item, 0, len(items))
	for _, item := range items {
		if item != nil {
			out = append(out, *item)
		}
	}
	return out
}

// normalize maps one API token to an Item, or nil when it has no contract,
// token id or image
func (c *Client) normalize(ctx context.Context, nft alchemyNFT) *Item {
	contract, contractName := nft.contract()
	rawID := text(nft.TokenID)
	if contract == "" || rawID == "" {
		return nil
	}
	tokenID := normalizeTokenID(rawID)

	image := imageURL(nft.imageCandidate())
	if image == "" {
		image = c.imageFromTokenURI(ctx, nft.tokenURI())
	}
	if image == "" {
		return nil
	}

	return &Item{
		Contract: contract,
		TokenID:  tokenID,
		Name:     displayName(nft.Name, contractName, tokenID),
		Image:    image,
	}
}

// imageFromTokenURI reads the image field of the token metadata document
func (c *Client) imageFromTokenURI(ctx context.Context, tokenURI string) string {
	target := imageURL(tokenURI)
	if target == "" {
		return ""
	}

	ctx, cancel := context.WithTimeout(ctx, orDefault(c.TokenURITimeout, defaultTokenURITimeout))
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return ""
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return ""
	}

	var metadata struct {
		Image any `json:"image"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&metadata); err != nil {
		return ""
	}
	s, _ := metadata.Image.(string)
	return imageURL(s)
}

// merge drops excluded tokens, dedupes by contract and token id and caps
// the feed at MaxItems
func merge(items []Item) []Item {
	out := make([]Item, 0, min(len(items), MaxItems))
	index := make(map[string]int, len(items))
	for _, item := range items {
		key := item.Key()
		if excludedTokens[key] {
			continue
		}
		if i, ok := index[key]; ok {
			out[i] = item
		} else {
			index[key] = len(out)
			out = append(out, item)
		}
		if len(out) >= MaxItems {
			break
		}
	}
	return out
}
