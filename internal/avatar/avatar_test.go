package avatar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aptlinks/backend/config"
)

func testResolver(t *testing.T, handler http.Handler) (*Resolver, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		IPFSGateway:    srv.URL + "/ipfs",
		AvatarFallback: "/default-avatar.png",
		AvatarMaxDepth: 3,
		HTTPTimeout:    5 * time.Second,
	}
	return NewResolver(cfg, nil), srv.URL
}

func TestResolveEmptyReturnsFallback(t *testing.T) {
	resolver, _ := testResolver(t, http.NotFoundHandler())
	assert.Equal(t, "/default-avatar.png", resolver.Resolve(context.Background(), ""))
	assert.Equal(t, "/default-avatar.png", resolver.Resolve(context.Background(), "   "))
}

func TestResolveDirectImageURL(t *testing.T) {
	resolver, srvURL := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("not json"))
	}))

	url := srvURL + "/me.png"
	assert.Equal(t, url, resolver.Resolve(context.Background(), url))
}

func TestResolveIPFSPointerRewritesToGateway(t *testing.T) {
	resolver, srvURL := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte{0x89, 0x50})
	}))

	got := resolver.Resolve(context.Background(), "ipfs://QmCID/avatar.png")
	assert.Equal(t, srvURL+"/ipfs/QmCID/avatar.png", got)
}

func TestResolveMetadataIndirection(t *testing.T) {
	resolver, srvURL := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ipfs/QmMeta":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"image":"ipfs://QmImage"}`))
		case "/ipfs/QmImage":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 0x50})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	got := resolver.Resolve(context.Background(), "ipfs://QmMeta")
	assert.Equal(t, srvURL+"/ipfs/QmImage", got)
}

func TestResolveSelfReferentialMetadataTerminates(t *testing.T) {
	// A's metadata points back at A; resolution must stop at the depth
	// bound and still produce a usable URL.
	resolver, srvURL := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"image":"ipfs://QmSelf"}`))
	}))

	done := make(chan string, 1)
	go func() {
		done <- resolver.Resolve(context.Background(), "ipfs://QmSelf")
	}()

	select {
	case got := <-done:
		assert.Equal(t, srvURL+"/ipfs/QmSelf", got)
	case <-time.After(5 * time.Second):
		t.Fatal("resolution did not terminate")
	}
}

func TestResolveCyclicMetadataTerminates(t *testing.T) {
	// Two metadata documents pointing at each other.
	resolver, srvURL := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/ipfs/QmA":
			w.Write([]byte(`{"image":"ipfs://QmB"}`))
		default:
			w.Write([]byte(`{"image":"ipfs://QmA"}`))
		}
	}))

	got := resolver.Resolve(context.Background(), "ipfs://QmA")
	// Depth 3: A -> B -> A -> B, bound exhausted at B.
	assert.Equal(t, srvURL+"/ipfs/QmB", got)
}

func TestResolveFetchFailureReturnsGatewayURL(t *testing.T) {
	resolver, srvURL := testResolver(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	got := resolver.Resolve(context.Background(), "ipfs://QmUnreachable")
	assert.Equal(t, srvURL+"/ipfs/QmUnreachable", got)
}
