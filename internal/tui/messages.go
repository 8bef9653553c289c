package tui

import (
	"github.com/familylists/familylists-go/models"
)

type listsLoadedMsg struct {
	lists []models.List
	err   error
}

type detailLoadedMsg struct {
	detail models.ListDetail
	err    error
}

type mutationDoneMsg struct {
	err error
}

type cacheInvalidatedMsg struct {
	key string
}

type statusTickMsg struct{}

type copiedMsg struct{}

type clearNoticeMsg struct{}
