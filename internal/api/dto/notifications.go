package dto

import "github.com/hugh/planit/internal/notify"

type NotificationsResponse struct {
	Response
	*notify.Inbox
}

type MarkAllReadResponse struct {
	Response
	Updated int64 `json:"updated"`
}
