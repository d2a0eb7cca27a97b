package service

import (
	"context"
	"fmt"
	"log"

	"github.com/aptlinks/backend/internal/chain"
	"github.com/aptlinks/backend/internal/types"
)

// ExistenceChecker reports whether an address already holds a profile.
type ExistenceChecker interface {
	ProfileExists(ctx context.Context, address string) (bool, error)
}

// PayloadBuilder builds the three profile entry-function payloads.
type PayloadBuilder interface {
	CreatePayload(name, bio, avatarURL string, links []types.ProfileLink) chain.TransactionPayload
	SetBioPayload(name, bio, avatarURL string) chain.TransactionPayload
	AddLinksPayload(links []types.ProfileLink) chain.TransactionPayload
}

// EditorService plans and executes the write path. Creating versus updating
// is decided by an existence check against the ledger; the plan is an ordered
// list of payloads for the caller's wallet (or a local key) to sign.
type EditorService struct {
	ledger   ExistenceChecker
	payloads PayloadBuilder
}

// NewEditorService wires the editor's dependencies. Both interfaces are
// normally the same chain client.
func NewEditorService(ledger ExistenceChecker, payloads PayloadBuilder) *EditorService {
	return &EditorService{ledger: ledger, payloads: payloads}
}

// PlanSave decides the transactions needed to persist draft for owner.
//
// No existing profile yields a single create transaction carrying the full
// initial state. An existing profile yields set_bio followed by add_links,
// the latter only when the draft has links. The existence check is
// best-effort: a not-found from the ledger means "does not exist".
func (s *EditorService) PlanSave(ctx context.Context, owner string, draft types.ProfileDraft) ([]chain.TransactionPayload, error) {
	exists, err := s.ledger.ProfileExists(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to check profile existence: %w", err)
	}

	if !exists {
		return []chain.TransactionPayload{
			s.payloads.CreatePayload(draft.Name, draft.Bio, draft.Avatar, draft.Links),
		}, nil
	}

	plan := []chain.TransactionPayload{
		s.payloads.SetBioPayload(draft.Name, draft.Bio, draft.Avatar),
	}
	if len(draft.Links) > 0 {
		plan = append(plan, s.payloads.AddLinksPayload(draft.Links))
	}
	return plan, nil
}

// Save plans and submits the transactions sequentially through submitter,
// waiting for each to commit before sending the next. Failure of any step
// aborts the save; no partial-state reconciliation is attempted, a fresh read
// observes whatever committed.
func (s *EditorService) Save(ctx context.Context, submitter chain.Submitter, owner string, draft types.ProfileDraft) error {
	plan, err := s.PlanSave(ctx, owner, draft)
	if err != nil {
		return err
	}

	for _, payload := range plan {
		hash, err := submitter.SignAndSubmit(ctx, payload)
		if err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		if err := submitter.WaitForTransaction(ctx, hash); err != nil {
			return fmt.Errorf("failed to save profile: %w", err)
		}
		log.Printf("committed %s (%s)", payload.Function, hash)
	}
	return nil
}
