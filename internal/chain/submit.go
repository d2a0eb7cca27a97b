package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	defaultMaxGas       = "20000"
	defaultGasUnitPrice = "100"
	txnExpiration       = 2 * time.Minute

	confirmPollInterval = 500 * time.Millisecond
)

// ErrTransactionFailed is returned when a committed transaction aborted
// on-chain.
var ErrTransactionFailed = errors.New("transaction failed on-chain")

type accountInfo struct {
	SequenceNumber string `json:"sequence_number"`
}

type rawTransaction struct {
	Sender                  string             `json:"sender"`
	SequenceNumber          string             `json:"sequence_number"`
	MaxGasAmount            string             `json:"max_gas_amount"`
	GasUnitPrice            string             `json:"gas_unit_price"`
	ExpirationTimestampSecs string             `json:"expiration_timestamp_secs"`
	Payload                 TransactionPayload `json:"payload"`
}

type signedTransaction struct {
	rawTransaction
	Signature transactionSignature `json:"signature"`
}

type transactionSignature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

type pendingTransaction struct {
	Hash string `json:"hash"`
}

type committedTransaction struct {
	Type     string `json:"type"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}

// Submitter signs and submits entry-function payloads. The HTTP API never
// uses it (wallets sign client-side); it backs the operator CLI.
type Submitter interface {
	SignAndSubmit(ctx context.Context, payload TransactionPayload) (string, error)
	WaitForTransaction(ctx context.Context, hash string) error
}

// LocalSubmitter submits transactions signed with a local account through the
// fullnode's encode-submission flow.
type LocalSubmitter struct {
	client  *Client
	account *Account
}

// NewLocalSubmitter pairs a fullnode client with a local signing account.
func NewLocalSubmitter(client *Client, account *Account) *LocalSubmitter {
	return &LocalSubmitter{client: client, account: account}
}

// Address returns the submitter's account address.
func (s *LocalSubmitter) Address() string {
	return s.account.Address()
}

// SignAndSubmit builds a transaction around the payload, has the fullnode
// encode the signing message, signs it locally, and submits. Returns the
// transaction hash.
func (s *LocalSubmitter) SignAndSubmit(ctx context.Context, payload TransactionPayload) (string, error) {
	var info accountInfo
	if err := s.client.get(ctx, "/v1/accounts/"+s.account.Address(), &info); err != nil {
		return "", fmt.Errorf("failed to fetch account sequence number: %w", err)
	}

	raw := rawTransaction{
		Sender:                  s.account.Address(),
		SequenceNumber:          info.SequenceNumber,
		MaxGasAmount:            defaultMaxGas,
		GasUnitPrice:            defaultGasUnitPrice,
		ExpirationTimestampSecs: nowPlus(txnExpiration),
		Payload:                 payload,
	}

	var encoded string
	if err := s.client.post(ctx, "/v1/transactions/encode_submission", raw, &encoded); err != nil {
		return "", fmt.Errorf("failed to encode submission: %w", err)
	}
	message, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return "", fmt.Errorf("malformed signing message: %w", err)
	}

	signed := signedTransaction{
		rawTransaction: raw,
		Signature: transactionSignature{
			Type:      "ed25519_signature",
			PublicKey: s.account.PublicKeyHex(),
			Signature: s.account.Sign(message),
		},
	}

	var pending pendingTransaction
	if err := s.client.post(ctx, "/v1/transactions", signed, &pending); err != nil {
		return "", fmt.Errorf("failed to submit transaction: %w", err)
	}
	return pending.Hash, nil
}

// WaitForTransaction polls until the transaction commits, then reports its
// on-chain outcome. The caller bounds the wait through ctx.
func (s *LocalSubmitter) WaitForTransaction(ctx context.Context, hash string) error {
	ticker := time.NewTicker(confirmPollInterval)
	defer ticker.Stop()

	for {
		var txn committedTransaction
		err := s.client.get(ctx, "/v1/transactions/by_hash/"+hash, &txn)
		if err == nil && txn.Type != "pending_transaction" {
			if !txn.Success {
				return fmt.Errorf("%w: %s", ErrTransactionFailed, txn.VMStatus)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
