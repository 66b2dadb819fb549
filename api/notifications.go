package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// ListNotificationsParams paginates the operator's notification feed.
type ListNotificationsParams struct {
	Page       int
	Limit      int
	UnreadOnly bool
}

func (p ListNotificationsParams) query() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.UnreadOnly {
		values.Set("unread", "true")
	}
	return values
}

// ListNotifications returns a page of the current operator's notifications.
func (c *Client) ListNotifications(ctx context.Context, params ListNotificationsParams) (Page[Notification], error) {
	return runListQuery(ctx, c, "ListNotifications", client.Get("/notifications", params.query()),
		querycache.EntityNotification, func(n Notification) string { return n.ID }, params)
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) (Notification, error) {
	return runMutation[Notification](ctx, c, "MarkNotificationRead",
		client.Patch("/notifications/"+id+"/read", nil),
		querycache.MutationTags(querycache.EntityNotification, id))
}

// MarkAllNotificationsRead marks the whole feed as read. Only the list tag
// is invalidated: every cached feed page carries it.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	_, err := runMutation[struct{}](ctx, c, "MarkAllNotificationsRead",
		client.Post("/notifications/read-all", nil),
		[]querycache.Tag{querycache.ListTag(querycache.EntityNotification)})
	return err
}
