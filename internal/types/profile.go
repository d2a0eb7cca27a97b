package types

import "github.com/google/uuid"

// ProfileLink is one entry on a public profile page. ID is a client-side
// identifier generated when the link is decoded or created; it is never
// persisted on-chain. On-chain identity of a link is its title.
type ProfileLink struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// NewProfileLink creates a link with a fresh stable ID. The ID is independent
// of the editable title so that two links sharing a title do not collide.
func NewProfileLink(title, url string) ProfileLink {
	return ProfileLink{
		ID:    uuid.NewString(),
		Title: title,
		URL:   url,
	}
}

// CombinedBio is the normalized form of the two on-chain bio encodings.
// AvatarURL is either a direct image URL (Image variant) or an unresolved
// object pointer (NFT variant); resolution happens at render time.
type CombinedBio struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
}

// Profile is the canonical display model assembled from the ledger.
// An empty Owner means the profile was not found; such a value must never be
// rendered as a valid profile.
type Profile struct {
	Owner          string        `json:"owner"`
	ANSName        string        `json:"ans_name"`
	Name           string        `json:"name"`
	ProfilePicture string        `json:"profile_picture"`
	Description    string        `json:"description"`
	Title          string        `json:"title"`
	Links          []ProfileLink `json:"links"`
}

// Found reports whether the profile resolved to an on-chain owner.
func (p *Profile) Found() bool {
	return p != nil && p.Owner != ""
}

// ProfileDraft carries the editable fields of the write path.
type ProfileDraft struct {
	Name   string        `json:"name"`
	Bio    string        `json:"bio"`
	Avatar string        `json:"avatar"`
	Links  []ProfileLink `json:"links"`
}
