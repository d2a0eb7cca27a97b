package chain

import (
	"encoding/json"
	"log"

	"github.com/aptlinks/backend/internal/types"
)

// On-chain wire shapes. The bio resource is a Move enum surfaced by the
// fullnode as a record with a "__variant__" discriminator, wrapped in an
// 0x1::option::Option (a zero-or-one element "vec").

const (
	variantImage = "Image"
	variantNFT   = "NFT"
	variantMap   = "SM"
)

type rawBioOption struct {
	Vec []rawBio `json:"vec"`
}

type rawBio struct {
	Variant   string `json:"__variant__"`
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	NFTURL    struct {
		Inner string `json:"inner"`
	} `json:"nft_url"`
}

type rawLinkTree struct {
	Variant string `json:"__variant__"`
	Links   struct {
		Data []rawLinkEntry `json:"data"`
	} `json:"links"`
}

type rawLinkEntry struct {
	Key   string `json:"key"`
	Value struct {
		Variant string `json:"__variant__"`
		URL     string `json:"url"`
	} `json:"value"`
}

// DecodeBio normalizes the tagged bio union into a CombinedBio.
//
// The Image variant carries a direct avatar URL which is taken verbatim; the
// NFT variant carries an object pointer which is left unresolved for the
// avatar resolver. An absent option or an unrecognized variant decodes to
// ErrNoBio rather than propagating a decode failure.
func DecodeBio(raw json.RawMessage) (*types.CombinedBio, error) {
	var opt rawBioOption
	if err := json.Unmarshal(raw, &opt); err != nil {
		log.Printf("bio decode: malformed payload: %v", err)
		return nil, ErrNoBio
	}
	if len(opt.Vec) == 0 {
		return nil, ErrNoBio
	}

	bio := opt.Vec[0]
	switch bio.Variant {
	case variantImage:
		return &types.CombinedBio{
			Name:      bio.Name,
			Bio:       bio.Bio,
			AvatarURL: bio.AvatarURL,
		}, nil
	case variantNFT:
		return &types.CombinedBio{
			Name:      bio.Name,
			Bio:       bio.Bio,
			AvatarURL: bio.NFTURL.Inner,
		}, nil
	default:
		log.Printf("bio decode: unrecognized variant %q", bio.Variant)
		return nil, ErrNoBio
	}
}

// DecodeLinks normalizes the on-chain link map into an ordered list of
// display links. On-chain ordering is preserved exactly; it is the order
// links appear on the public page. A link with an empty title falls back to
// its URL as the title. Malformed input decodes to an empty list.
func DecodeLinks(raw json.RawMessage) []types.ProfileLink {
	var tree rawLinkTree
	if err := json.Unmarshal(raw, &tree); err != nil {
		log.Printf("links decode: malformed payload: %v", err)
		return []types.ProfileLink{}
	}
	if tree.Variant != "" && tree.Variant != variantMap {
		log.Printf("links decode: unrecognized variant %q", tree.Variant)
		return []types.ProfileLink{}
	}

	links := make([]types.ProfileLink, 0, len(tree.Links.Data))
	for _, entry := range tree.Links.Data {
		title := entry.Key
		if title == "" {
			title = entry.Value.URL
		}
		links = append(links, types.NewProfileLink(title, entry.Value.URL))
	}
	return links
}
