package recordstore

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"somadhan-booking/logger"
)

// SubscribeChanges long-polls the store's change feed for a collection and
// emits one event per observed insert, update or delete. The channel closes
// when ctx is cancelled. Feed errors are logged and followed by a flat
// reconnect delay; events carry no row payload because consumers refetch
// the whole collection anyway.
func (c *Client) SubscribeChanges(ctx context.Context, collection string) <-chan ChangeEvent {
	events := make(chan ChangeEvent)

	go func() {
		defer close(events)
		cursor := ""

		for {
			batch, next, err := c.pollChanges(ctx, collection, cursor)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warning("Change feed poll failed: " + err.Error())
				select {
				case <-time.After(5 * time.Second):
					continue
				case <-ctx.Done():
					return
				}
			}
			cursor = next

			for _, ev := range batch {
				select {
				case events <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return events
}

type changesResponse struct {
	Events []ChangeEvent `json:"events"`
	Cursor string        `json:"cursor"`
}

func (c *Client) pollChanges(ctx context.Context, collection, cursor string) ([]ChangeEvent, string, error) {
	query := url.Values{}
	query.Set("table", collection)
	if cursor != "" {
		query.Set("since", cursor)
	}

	var resp changesResponse
	if err := c.do(ctx, http.MethodGet, "/realtime/v1/changes", query, nil, &resp); err != nil {
		return nil, cursor, err
	}
	if resp.Cursor == "" {
		resp.Cursor = cursor
	}
	return resp.Events, resp.Cursor, nil
}
