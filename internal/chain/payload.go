package chain

import "github.com/aptlinks/backend/internal/types"

// MoveOption is the JSON encoding of 0x1::option::Option: a vector holding
// zero or one element.
type MoveOption struct {
	Vec []string `json:"vec"`
}

// SomeString wraps a non-empty string in an option; an empty string encodes
// as none.
func SomeString(s string) MoveOption {
	if s == "" {
		return MoveOption{Vec: []string{}}
	}
	return MoveOption{Vec: []string{s}}
}

// None is the empty option.
func None() MoveOption {
	return MoveOption{Vec: []string{}}
}

// TransactionPayload is an entry-function payload in the fullnode JSON
// encoding, ready to be signed by a wallet or a local account.
type TransactionPayload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

func (c *Client) entryFunction(name string, args ...any) TransactionPayload {
	if args == nil {
		args = []any{}
	}
	return TransactionPayload{
		Type:          "entry_function_payload",
		Function:      c.contract + "::profile::" + name,
		TypeArguments: []string{},
		Arguments:     args,
	}
}

// CreatePayload builds the profile::create transaction carrying the full
// initial profile: name, bio, optional avatar, and the complete link arrays.
func (c *Client) CreatePayload(name, bio, avatarURL string, links []types.ProfileLink) TransactionPayload {
	titles, urls := linkArrays(links)
	return c.entryFunction("create",
		name,
		bio,
		SomeString(avatarURL),
		None(), // avatar_nft: Option<Object<Token>>, unset through this path
		titles,
		urls,
	)
}

// SetBioPayload builds the profile::set_bio transaction (name, bio and avatar
// only; links travel separately).
func (c *Client) SetBioPayload(name, bio, avatarURL string) TransactionPayload {
	return c.entryFunction("set_bio",
		name,
		bio,
		SomeString(avatarURL),
		None(),
	)
}

// AddLinksPayload builds the profile::add_links transaction carrying the full
// current title and URL arrays.
func (c *Client) AddLinksPayload(links []types.ProfileLink) TransactionPayload {
	titles, urls := linkArrays(links)
	return c.entryFunction("add_links", titles, urls)
}

func linkArrays(links []types.ProfileLink) ([]string, []string) {
	titles := make([]string, 0, len(links))
	urls := make([]string, 0, len(links))
	for _, link := range links {
		titles = append(titles, link.Title)
		urls = append(urls, link.URL)
	}
	return titles, urls
}
