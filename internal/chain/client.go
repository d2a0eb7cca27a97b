package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/aptlinks/backend/config"
	"github.com/aptlinks/backend/internal/types"
)

// ErrNoBio is returned when an account has no bio resource set.
var ErrNoBio = errors.New("no bio set for account")

// Client is a read/write client for the Aptos fullnode REST API, scoped to a
// single profile contract. It holds no mutable state and is safe for
// concurrent use.
type Client struct {
	nodeURL  string
	apiKey   string
	contract string
	http     *http.Client
}

// NewClient creates a fullnode client from the application configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		nodeURL:  strings.TrimRight(cfg.NodeURL, "/"),
		apiKey:   cfg.APIKey,
		contract: cfg.ContractAddress,
		http:     &http.Client{Timeout: cfg.HTTPTimeout},
	}
}

// Contract returns the profile contract address this client is scoped to.
func (c *Client) Contract() string {
	return c.contract
}

type viewRequest struct {
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []any    `json:"arguments"`
}

type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

// view executes a read-only view function call and returns the raw return
// values for the caller to decode.
func (c *Client) view(ctx context.Context, function string, args ...any) ([]json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	body, err := json.Marshal(viewRequest{
		Function:      function,
		TypeArguments: []string{},
		Arguments:     args,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL+"/v1/view", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("view call %s failed: %w", function, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("view call %s: %s (%s)", function, apiErr.Message, apiErr.ErrorCode)
		}
		return nil, fmt.Errorf("view call %s: unexpected status %d", function, resp.StatusCode)
	}

	var results []json.RawMessage
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("view call %s: malformed response: %w", function, err)
	}
	return results, nil
}

// ViewBio fetches and decodes the bio resource for an address. Returns
// ErrNoBio when the account has no bio or the on-chain encoding is not one of
// the known variants.
func (c *Client) ViewBio(ctx context.Context, address string) (*types.CombinedBio, error) {
	results, err := c.view(ctx, c.contract+"::profile::view_bio", address)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, ErrNoBio
	}
	return DecodeBio(results[0])
}

// ViewLinks fetches and decodes the link tree for an address, preserving
// on-chain ordering. A missing or malformed link tree decodes to an empty
// list, never an error.
func (c *Client) ViewLinks(ctx context.Context, address string) ([]types.ProfileLink, error) {
	results, err := c.view(ctx, c.contract+"::profile::view_links", address)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []types.ProfileLink{}, nil
	}
	return DecodeLinks(results[0]), nil
}

// ProfileExists checks whether the address holds a bio resource. A 404 from
// the fullnode means "does not exist", not an error.
func (c *Client) ProfileExists(ctx context.Context, address string) (bool, error) {
	resource := fmt.Sprintf("%s::profile::Bio", c.contract)
	url := fmt.Sprintf("%s/v1/accounts/%s/resource/%s", c.nodeURL, address, resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("existence check failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("existence check: unexpected status %d", resp.StatusCode)
	}
}

func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// get performs an authorized GET against the fullnode and decodes the JSON
// response into out.
func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.nodeURL+path, nil)
	if err != nil {
		return err
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("GET %s: %s", path, apiErr.Message)
		}
		return fmt.Errorf("GET %s: unexpected status %d", path, resp.StatusCode)
	}
	return json.Unmarshal(data, out)
}

// post performs an authorized JSON POST against the fullnode and decodes the
// response into out when out is non-nil.
func (c *Client) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.nodeURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("POST %s: %s", path, apiErr.Message)
		}
		return fmt.Errorf("POST %s: unexpected status %d", path, resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(data, out)
	}
	return nil
}

// NormalizeAddress converts any valid address form into the canonical
// long form: 0x followed by 64 lowercase hex characters.
func NormalizeAddress(address string) string {
	hex := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(address)), "0x")
	if len(hex) > 64 {
		return "0x" + hex[len(hex)-64:]
	}
	return "0x" + strings.Repeat("0", 64-len(hex)) + hex
}

// nowPlus returns a unix timestamp string n from now, used for transaction
// expiration.
func nowPlus(d time.Duration) string {
	return fmt.Sprintf("%d", time.Now().Add(d).Unix())
}
