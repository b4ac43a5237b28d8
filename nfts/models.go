package nfts

// Item is one token shown in the NFT feed
type Item struct {
	Contract string `json:"contract"`
	TokenID  string `json:"tokenId"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

// Key identifies a token across networks
func (i Item) Key() string {
	return i.Contract + ":" + i.TokenID
}

// MarketplaceLink points at a listing
type MarketplaceLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CollectionItem is a token listed in the static collections file
type CollectionItem struct {
	Name         string            `json:"name"`
	TokenID      string            `json:"tokenId"`
	Image        string            `json:"image"`
	Marketplaces []MarketplaceLink `json:"marketplaces"`
}

// Collection is one entry of the static collections file, served when the
// live feed comes back empty
type Collection struct {
	Slug            string            `json:"slug"`
	Title           string            `json:"title"`
	Chain           string            `json:"chain"`
	ContractAddress string            `json:"contractAddress"`
	Description     string            `json:"description"`
	Cover           string            `json:"cover"`
	Marketplaces    []MarketplaceLink `json:"marketplaces"`
	Items           []CollectionItem  `json:"items"`
}

// alchemyPage is one getNFTsForContract response
type alchemyPage struct {
	NFTs    []alchemyNFT `json:"nfts"`
	PageKey string       `json:"pageKey"`
}

// alchemyNFT covers both the v3 shape and the older media/rawMetadata shape
type alchemyNFT struct {
	Contract *struct {
		Address string `json:"address"`
		Name    string `json:"name"`
	} `json:"contract"`
	ContractAddress string `json:"contractAddress"`
	TokenID         any    `json:"tokenId"`
	Name            any    `json:"name"`
	TokenURI        any    `json:"tokenUri"`
	Image           *struct {
		OriginalURL any `json:"originalUrl"`
		CachedURL   any `json:"cachedUrl"`
	} `json:"image"`
	Raw *struct {
		TokenURI any `json:"tokenUri"`
		Metadata *struct {
			Image any `json:"image"`
		} `json:"metadata"`
	} `json:"raw"`
	Media []struct {
		Gateway any `json:"gateway"`
	} `json:"media"`
	RawMetadata *struct {
		Image any `json:"image"`
	} `json:"rawMetadata"`
}
