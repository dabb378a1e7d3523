package yahoo

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drip "github.com/dripsim/drip"
)

func TestDiskCacheReplaysResponses(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"currency":"USD"}}],"error":null}}`)
	}))
	defer srv.Close()

	client := NewWith(srv.URL, time.Hour)
	r := drip.Range{From: drip.NewDate(2025, 1, 1), To: drip.NewDate(2025, 12, 31)}

	_, err := client.Dividends("CACHED", r)
	require.NoError(t, err)
	_, err = client.Dividends("CACHED", r)
	require.NoError(t, err)

	assert.Equal(t, int64(1), hits.Load(), "second call should replay from cache")

	// A different ticker is a different key.
	_, err = client.Dividends("OTHER", r)
	require.NoError(t, err)
	assert.Equal(t, int64(2), hits.Load())
}

func TestZeroTTLDisablesCache(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		fmt.Fprint(w, `{"chart":{"result":[{"meta":{"currency":"USD"}}],"error":null}}`)
	}))
	defer srv.Close()

	client := NewWith(srv.URL, 0)
	r := drip.Range{From: drip.NewDate(2025, 1, 1), To: drip.NewDate(2025, 12, 31)}

	for i := 0; i < 3; i++ {
		_, err := client.Dividends("TST", r)
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), hits.Load())
}

func TestPruneCache(t *testing.T) {
	// Prune with a zero age removes everything currently cached; a
	// fresh entry afterwards hits the network again.
	require.NoError(t, PruneCache(0))
}
