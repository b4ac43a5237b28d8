package nfts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killianmoore/web/common"
	"go.uber.org/zap"
)

const defaultFeedTimeout = 9 * time.Second

// Fetcher returns the live feed for a set of contracts
type Fetcher interface {
	Fetch(ctx context.Context, contracts []string) []Item
}

// Handler serves the NFT feed
type Handler struct {
	Fetcher   Fetcher
	Contracts []string

	// CollectionsPath is the static collections file used when the live
	// feed is empty
	CollectionsPath string

	// Timeout bounds the whole live fetch
	Timeout time.Duration

	Log *zap.Logger
}

// FeedResponse is the body of GET /api/nfts
type FeedResponse struct {
	Items  []Item `json:"items"`
	Total  int    `json:"total"`
	Source string `json:"source"`
}

const (
	SourceLive        = "live"
	SourceCollections = "collections"
)

func (h *Handler) logger() *zap.Logger {
	if h.Log == nil {
		return zap.NewNop()
	}
	return h.Log
}

// Feed returns the live feed, falling back to the static collections when it
// is empty
func (h *Handler) Feed(ctx context.Context) FeedResponse {
	if h.Fetcher != nil && len(h.Contracts) > 0 {
		ctx, cancel := context.WithTimeout(ctx, orDefault(h.Timeout, defaultFeedTimeout))
		defer cancel()

		done := make(chan []Item, 1)
		go func() { done <- h.Fetcher.Fetch(ctx, h.Contracts) }()

		var live []Item
		select {
		case live = <-done:
		case <-ctx.Done():
			h.logger().Warn("nft feed timed out", zap.Error(ctx.Err()))
		}
		if len(live) > 0 {
			return FeedResponse{Items: live, Total: len(live), Source: SourceLive}
		}
	}

	items, err := LoadCollectionItems(h.CollectionsPath)
	if err != nil {
		h.logger().Warn("load nft collections", zap.String("path", h.CollectionsPath), zap.Error(err))
		items = []Item{}
	}
	return FeedResponse{Items: items, Total: len(items), Source: SourceCollections}
}

// LoadCollectionItems flattens the static collections file into feed items.
// An empty path yields no items.
func LoadCollectionItems(path string) ([]Item, error) {
	items := []Item{}
	if path == "" {
		return items, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return items, fmt.Errorf("read collections: %w", err)
	}
	var collections []Collection
	if err := json.Unmarshal(data, &collections); err != nil {
		return items, fmt.Errorf("parse collections: %w", err)
	}

	for _, collection := range collections {
		for _, item := range collection.Items {
			items = append(items, Item{
				Contract: collection.ContractAddress,
				TokenID:  item.TokenID,
				Name:     item.Name,
				Image:    item.Image,
			})
		}
	}
	return items, nil
}

// ListNFTs godoc
// @Summary NFT feed
// @Description Live tokens for the configured contracts, or the static collections when none load
// @Tags nfts
// @Produce json
// @Success 200 {object} FeedResponse
// @Router /api/nfts [get]
func (h *Handler) ListNFTs(c *gin.Context) {
	feed := h.Feed(c.Request.Context())

	c.Set(common.RowsProcessedKey, feed.Total)
	c.PureJSON(http.StatusOK, feed)
}
