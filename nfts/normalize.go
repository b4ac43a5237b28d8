package nfts

import (
	"encoding/json"
	"math/big"
	"strings"
)

const ipfsGateway = "https://ipfs.io/ipfs/"

// CleanAPIKey trims the key and strips one pair of matching surrounding quotes
func CleanAPIKey(raw string) string {
	key := strings.TrimSpace(raw)
	if len(key) >= 2 {
		first, last := key[0], key[len(key)-1]
		if (first == '"' || first == '\'') && first == last {
			return strings.TrimSpace(key[1 : len(key)-1])
		}
	}
	return key
}

// normalizeTokenID turns 0x-prefixed hex ids into decimal
func normalizeTokenID(id string) string {
	if !strings.HasPrefix(id, "0x") {
		return id
	}
	n, ok := new(big.Int).SetString(id[2:], 16)
	if !ok {
		return id
	}
	return n.String()
}

// gatewayURL rewrites ipfs:// URLs to the public gateway
func gatewayURL(value string) string {
	rest, ok := strings.CutPrefix(value, "ipfs://")
	if !ok {
		return value
	}
	rest = strings.TrimPrefix(rest, "ipfs/")
	return ipfsGateway + rest
}

// imageURL trims value and rewrites ipfs URLs. Blank values yield "".
func imageURL(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	return gatewayURL(trimmed)
}

// text returns a JSON string value, or the literal of a JSON number
func text(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	}
	return ""
}

// firstString returns the first non-blank string, trimmed
func firstString(values ...any) string {
	for _, v := range values {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}

func (n alchemyNFT) contract() (address, name string) {
	var nested any
	if n.Contract != nil {
		nested = n.Contract.Address
		name = n.Contract.Name
	}
	return strings.ToLower(firstString(nested, n.ContractAddress)), name
}

func (n alchemyNFT) tokenURI() string {
	var fromObject, fromRaw any
	if m, ok := n.TokenURI.(map[string]any); ok {
		fromObject = m["raw"]
	}
	if n.Raw != nil {
		fromRaw = n.Raw.TokenURI
	}
	return firstString(fromObject, n.TokenURI, fromRaw)
}

func (n alchemyNFT) imageCandidate() string {
	var original, cached, metadata, gateway, legacy any
	if n.Image != nil {
		original, cached = n.Image.OriginalURL, n.Image.CachedURL
	}
	if n.Raw != nil && n.Raw.Metadata != nil {
		metadata = n.Raw.Metadata.Image
	}
	if len(n.Media) > 0 {
		gateway = n.Media[0].Gateway
	}
	if n.RawMetadata != nil {
		legacy = n.RawMetadata.Image
	}
	return firstString(original, cached, metadata, gateway, legacy)
}

// displayName is the trimmed token name or "<contract name> #<id>"
func displayName(name any, contractName, tokenID string) string {
	if s, ok := name.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	if contractName == "" {
		contractName = "Token"
	}
	return contractName + " #" + tokenID
}
