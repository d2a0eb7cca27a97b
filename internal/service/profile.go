package service

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/aptlinks/backend/internal/ans"
	"github.com/aptlinks/backend/internal/types"
)

// ErrProfileNotFound is returned when a name does not resolve or the resolved
// account has no profile content.
var ErrProfileNotFound = errors.New("profile not found")

// NameResolver resolves a human-readable name to a long-form address.
type NameResolver interface {
	ResolveAddress(ctx context.Context, name string) (string, error)
}

// LedgerReader reads profile resources from the ledger.
type LedgerReader interface {
	ViewBio(ctx context.Context, address string) (*types.CombinedBio, error)
	ViewLinks(ctx context.Context, address string) ([]types.ProfileLink, error)
}

// AvatarResolver turns an avatar reference into a displayable URL.
type AvatarResolver interface {
	Resolve(ctx context.Context, ref string) string
}

// ProfileService assembles canonical profiles from the name service and the
// ledger. It holds no state; every fetch re-derives the profile.
type ProfileService struct {
	names  NameResolver
	ledger LedgerReader
	avatar AvatarResolver
}

// NewProfileService wires the assembler's dependencies.
func NewProfileService(names NameResolver, ledger LedgerReader, avatar AvatarResolver) *ProfileService {
	return &ProfileService{names: names, ledger: ledger, avatar: avatar}
}

// Fetch resolves rawName to an assembled Profile.
//
// The name is normalized to its canonical suffixed form, resolved to an
// address, then bio and links are fetched concurrently; either fetch may fail
// without affecting the other, degrading to missing content. A name that does
// not resolve, or resolves to an account whose bio carries no name, returns
// ErrProfileNotFound — a registered name with no bio content is deliberately
// indistinguishable from an unregistered one.
func (s *ProfileService) Fetch(ctx context.Context, rawName string) (*types.Profile, error) {
	lookupName := ans.NormalizeName(rawName)

	address, err := s.names.ResolveAddress(ctx, lookupName)
	if err != nil {
		if !errors.Is(err, ans.ErrNameNotFound) {
			log.Printf("profile fetch %s: name resolution: %v", lookupName, err)
		}
		return nil, ErrProfileNotFound
	}

	var (
		wg    sync.WaitGroup
		bio   *types.CombinedBio
		links []types.ProfileLink
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		b, err := s.ledger.ViewBio(ctx, address)
		if err != nil {
			log.Printf("profile fetch %s: bio: %v", lookupName, err)
			return
		}
		bio = b
	}()
	go func() {
		defer wg.Done()
		l, err := s.ledger.ViewLinks(ctx, address)
		if err != nil {
			log.Printf("profile fetch %s: links: %v", lookupName, err)
			return
		}
		links = l
	}()
	wg.Wait()

	if bio == nil || bio.Name == "" {
		return nil, ErrProfileNotFound
	}
	if links == nil {
		links = []types.ProfileLink{}
	}

	return &types.Profile{
		Owner:          address,
		ANSName:        lookupName,
		Name:           bio.Name,
		ProfilePicture: s.avatar.Resolve(ctx, bio.AvatarURL),
		Description:    bio.Bio,
		Title:          bio.Name,
		Links:          links,
	}, nil
}
