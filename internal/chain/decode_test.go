package chain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeBioImageVariant(t *testing.T) {
	raw := json.RawMessage(`{"vec":[{"__variant__":"Image","avatar_url":"https://example.com/me.png","bio":"Founding Engineer","name":"Greg"}]}`)

	bio, err := DecodeBio(raw)
	require.NoError(t, err)
	assert.Equal(t, "Greg", bio.Name)
	assert.Equal(t, "Founding Engineer", bio.Bio)
	// Image avatars pass through verbatim, no resolution at decode time.
	assert.Equal(t, "https://example.com/me.png", bio.AvatarURL)
}

func TestDecodeBioImageVariantEmptyAvatar(t *testing.T) {
	raw := json.RawMessage(`{"vec":[{"__variant__":"Image","avatar_url":"","bio":"b","name":"n"}]}`)

	bio, err := DecodeBio(raw)
	require.NoError(t, err)
	assert.Equal(t, "", bio.AvatarURL)
}

func TestDecodeBioNFTVariant(t *testing.T) {
	raw := json.RawMessage(`{"vec":[{"__variant__":"NFT","nft_url":{"inner":"0xabc123"},"bio":"b","name":"n"}]}`)

	bio, err := DecodeBio(raw)
	require.NoError(t, err)
	// NFT avatars stay an unresolved pointer at decode time.
	assert.Equal(t, "0xabc123", bio.AvatarURL)
}

func TestDecodeBioAbsent(t *testing.T) {
	bio, err := DecodeBio(json.RawMessage(`{"vec":[]}`))
	assert.ErrorIs(t, err, ErrNoBio)
	assert.Nil(t, bio)
}

func TestDecodeBioUnrecognizedVariant(t *testing.T) {
	raw := json.RawMessage(`{"vec":[{"__variant__":"Hologram","bio":"b","name":"n"}]}`)

	bio, err := DecodeBio(raw)
	assert.ErrorIs(t, err, ErrNoBio)
	assert.Nil(t, bio)
}

func TestDecodeBioMalformed(t *testing.T) {
	bio, err := DecodeBio(json.RawMessage(`"not an object"`))
	assert.ErrorIs(t, err, ErrNoBio)
	assert.Nil(t, bio)
}

func TestDecodeLinksPreservesOrder(t *testing.T) {
	raw := json.RawMessage(`{"__variant__":"SM","links":{"data":[
		{"key":"B","value":{"__variant__":"UnorderedLink","url":"https://b.com"}},
		{"key":"A","value":{"__variant__":"UnorderedLink","url":"https://a.com"}}
	]}}`)

	links := DecodeLinks(raw)
	require.Len(t, links, 2)
	// On-chain order, not alphabetical.
	assert.Equal(t, "B", links[0].Title)
	assert.Equal(t, "https://b.com", links[0].URL)
	assert.Equal(t, "A", links[1].Title)
	assert.Equal(t, "https://a.com", links[1].URL)
}

func TestDecodeLinksEmptyKeyFallsBackToURL(t *testing.T) {
	raw := json.RawMessage(`{"__variant__":"SM","links":{"data":[
		{"key":"","value":{"__variant__":"UnorderedLink","url":"https://x.com"}}
	]}}`)

	links := DecodeLinks(raw)
	require.Len(t, links, 1)
	assert.Equal(t, "https://x.com", links[0].Title)
}

func TestDecodeLinksIDsAreUniquePerEntry(t *testing.T) {
	raw := json.RawMessage(`{"__variant__":"SM","links":{"data":[
		{"key":"Same","value":{"__variant__":"UnorderedLink","url":"https://one.com"}},
		{"key":"Same","value":{"__variant__":"UnorderedLink","url":"https://two.com"}}
	]}}`)

	links := DecodeLinks(raw)
	require.Len(t, links, 2)
	assert.NotEqual(t, links[0].ID, links[1].ID)
}

func TestDecodeLinksMalformed(t *testing.T) {
	assert.Empty(t, DecodeLinks(json.RawMessage(`42`)))
	assert.Empty(t, DecodeLinks(json.RawMessage(`{"__variant__":"XX"}`)))
	assert.Empty(t, DecodeLinks(json.RawMessage(`{}`)))
}
