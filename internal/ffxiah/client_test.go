package ffxiah

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mogtools/ahsync/internal/domain"
)

func TestClientItemPage(t *testing.T) {
	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte("<html>page body</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nil)
	body, err := c.ItemPage(context.Background(), 4096, "Fire Crystal", "Asura")
	require.NoError(t, err)

	assert.Equal(t, "<html>page body</html>", body)
	assert.Equal(t, "/item/4096/fire-crystal", gotPath)
	assert.Equal(t, "sid=28", gotQuery)
}

func TestClientItemPageBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := c.ItemPage(context.Background(), 4096, "Fire Crystal", "Asura")
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestClientItemPageCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.URL, 5*time.Second, nil)
	_, err := c.ItemPage(ctx, 4096, "Fire Crystal", "Asura")
	assert.Error(t, err)
}
