package chain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aptlinks/backend/config"
)

const testContract = "0x631f344549b798ad70cb5ab1842565b082fdfe488b7c6d56a257220222f6a191"

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(&config.Config{
		NodeURL:         srv.URL,
		ContractAddress: testContract,
		HTTPTimeout:     5 * time.Second,
	})
}

func TestViewBio(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/view", r.URL.Path)
		var req viewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, testContract+"::profile::view_bio", req.Function)
		require.Len(t, req.Arguments, 1)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"vec":[{"__variant__":"Image","avatar_url":"https://a.png","bio":"hi","name":"Greg"}]}]`))
	}))

	bio, err := client.ViewBio(context.Background(), "0x1")
	require.NoError(t, err)
	assert.Equal(t, "Greg", bio.Name)
	assert.Equal(t, "https://a.png", bio.AvatarURL)
}

func TestViewBioUpstreamError(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"invalid argument","error_code":"invalid_input"}`))
	}))

	_, err := client.ViewBio(context.Background(), "0x1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument")
}

func TestViewLinks(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"__variant__":"SM","links":{"data":[
			{"key":"Telegram","value":{"__variant__":"UnorderedLink","url":"https://t.me/g"}},
			{"key":"Discord","value":{"__variant__":"UnorderedLink","url":"https://discord.com/users/g"}}
		]}}]`))
	}))

	links, err := client.ViewLinks(context.Background(), "0x1")
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Telegram", links[0].Title)
	assert.Equal(t, "Discord", links[1].Title)
}

func TestProfileExists(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/accounts/0xaa/") {
			w.Write([]byte(`{"type":"` + testContract + `::profile::Bio","data":{}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Resource not found","error_code":"resource_not_found"}`))
	}))

	exists, err := client.ProfileExists(context.Background(), "0xaa")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = client.ProfileExists(context.Background(), "0xbb")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestViewHonorsContext(t *testing.T) {
	client := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.ViewBio(ctx, "0x1")
	assert.Error(t, err)
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0x0000000000000000000000000000000000000000000000000000000000000001",
		NormalizeAddress("0x1"))
	assert.Equal(t,
		"0x0000000000000000000000000000000000000000000000000000000000000abc",
		NormalizeAddress("0xABC"))

	long := NormalizeAddress(testContract)
	assert.Equal(t, testContract, long)
	// Idempotent.
	assert.Equal(t, long, NormalizeAddress(long))
}
