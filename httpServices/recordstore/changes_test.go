package recordstore

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscribeChangesEmitsEventsAndAdvancesCursor(t *testing.T) {
	var polls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realtime/v1/changes", r.URL.Path)
		assert.Equal(t, "enquiries", r.URL.Query().Get("table"))

		switch atomic.AddInt64(&polls, 1) {
		case 1:
			assert.Empty(t, r.URL.Query().Get("since"))
			fmt.Fprint(w, `{"events":[{"kind":"INSERT","cursor":"c1"},{"kind":"UPDATE","cursor":"c2"}],"cursor":"c2"}`)
		case 2:
			assert.Equal(t, "c2", r.URL.Query().Get("since"))
			fmt.Fprint(w, `{"events":[{"kind":"DELETE","cursor":"c3"}],"cursor":"c3"}`)
		default:
			// Hold the poll open until the client gives up.
			<-r.Context().Done()
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := anonClient(t, server.URL).SubscribeChanges(ctx, "enquiries")

	kinds := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		select {
		case ev := <-events:
			kinds = append(kinds, ev.Kind)
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for change event")
		}
	}
	assert.Equal(t, []string{"INSERT", "UPDATE", "DELETE"}, kinds)

	cancel()
	select {
	case _, open := <-events:
		assert.False(t, open, "channel must close after cancel")
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close after cancel")
	}
}

func TestSubscribeChangesClosesOnImmediateCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"events":[],"cursor":""}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	events := anonClient(t, server.URL).SubscribeChanges(ctx, "enquiries")
	select {
	case _, open := <-events:
		require.False(t, open)
	case <-time.After(5 * time.Second):
		t.Fatal("channel did not close")
	}
}
