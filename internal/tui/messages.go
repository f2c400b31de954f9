package tui

import (
	"github.com/adroitalarm/shopdesk/internal/listing"
	"github.com/adroitalarm/shopdesk/internal/model"
	"github.com/adroitalarm/shopdesk/internal/refresh"
)

// Messages delivered from the refresh goroutines.
type recordsLoadedMsg struct {
	records    []listing.Record
	pagination model.Pagination
	tab        int
}

type refreshStateMsg struct {
	state refresh.State
	tab   int
}

type unreadCountMsg struct {
	count int
}

type newNotificationsMsg struct {
	prev int
	cur  int
}

// Result of a confirmed row action.
type actionDoneMsg struct {
	err    error
	action Action
	id     string
	tab    int
}

type flashExpiredMsg struct {
	seq int
}
