// Package mocks provides testify mocks for the service dependencies.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/aptlinks/backend/internal/chain"
	"github.com/aptlinks/backend/internal/types"
)

// MockNameResolver is a mock implementation of service.NameResolver.
type MockNameResolver struct {
	mock.Mock
}

func (m *MockNameResolver) ResolveAddress(ctx context.Context, name string) (string, error) {
	args := m.Called(ctx, name)
	return args.String(0), args.Error(1)
}

// MockLedgerReader is a mock implementation of service.LedgerReader.
type MockLedgerReader struct {
	mock.Mock
}

func (m *MockLedgerReader) ViewBio(ctx context.Context, address string) (*types.CombinedBio, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.CombinedBio), args.Error(1)
}

func (m *MockLedgerReader) ViewLinks(ctx context.Context, address string) ([]types.ProfileLink, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.ProfileLink), args.Error(1)
}

func (m *MockLedgerReader) ProfileExists(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

// MockAvatarResolver is a mock implementation of service.AvatarResolver.
type MockAvatarResolver struct {
	mock.Mock
}

func (m *MockAvatarResolver) Resolve(ctx context.Context, ref string) string {
	args := m.Called(ctx, ref)
	return args.String(0)
}

// MockExistenceChecker is a mock implementation of service.ExistenceChecker.
type MockExistenceChecker struct {
	mock.Mock
}

func (m *MockExistenceChecker) ProfileExists(ctx context.Context, address string) (bool, error) {
	args := m.Called(ctx, address)
	return args.Bool(0), args.Error(1)
}

// MockSubmitter is a mock implementation of chain.Submitter.
type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) SignAndSubmit(ctx context.Context, payload chain.TransactionPayload) (string, error) {
	args := m.Called(ctx, payload)
	return args.String(0), args.Error(1)
}

func (m *MockSubmitter) WaitForTransaction(ctx context.Context, hash string) error {
	args := m.Called(ctx, hash)
	return args.Error(0)
}

// MockProfileFetcher is a mock implementation of api.ProfileFetcher.
type MockProfileFetcher struct {
	mock.Mock
}

func (m *MockProfileFetcher) Fetch(ctx context.Context, name string) (*types.Profile, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Profile), args.Error(1)
}

// MockSavePlanner is a mock implementation of api.SavePlanner.
type MockSavePlanner struct {
	mock.Mock
}

func (m *MockSavePlanner) PlanSave(ctx context.Context, owner string, draft types.ProfileDraft) ([]chain.TransactionPayload, error) {
	args := m.Called(ctx, owner, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]chain.TransactionPayload), args.Error(1)
}
