// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"fmt"
	"strings"

	"github.com/familylists/familylists-go/models"
)

func listIcon(listType string) string {
	switch listType {
	case models.ListTypeGrocery:
		return "[G]"
	case models.ListTypePacking:
		return "[P]"
	case models.ListTypeTasks:
		return "[T]"
	default:
		return "[?]"
	}
}

func (m appModel) View() string {
	var body string
	switch m.screen {
	case screenLists:
		body = m.viewLists()
	case screenDetail:
		body = m.viewDetail()
	case screenInput:
		body = m.viewInput()
	}

	out := body + "\n" + m.viewStatusBar()
	if m.lastErr != nil {
		out += "\n" + errorStyle.Render("error: "+m.lastErr.Error())
	}
	if m.notice != "" {
		out += "\n" + helpStyle.Render(m.notice)
	}
	return appStyle.Render(out)
}

func (m appModel) viewLists() string {
	out := titleStyle.Render("familylists") + "\n\n"

	if m.loading {
		out += m.spinner.View() + " loading...\n"
	} else if len(m.lists) == 0 {
		out += "no lists yet\n"
	} else {
		for i, l := range m.lists {
			cursor := "  "
			if i == m.listIdx {
				cursor = "> "
			}
			out += fmt.Sprintf("%s%s %s\n", cursor, listIcon(l.Type), l.Name)
		}
	}

	out += "\n" + helpStyle.Render("n new  d delete  enter open  r resume  q quit")
	return out
}

func (m appModel) viewDetail() string {
	out := titleStyle.Render(m.detail.Name) + "\n\n"

	if m.loading {
		out += m.spinner.View() + " loading...\n"
	} else if len(m.detail.Items) == 0 {
		out += "empty list\n"
	} else {
		for i, it := range m.detail.Items {
			cursor := "  "
			if i == m.detailIdx {
				cursor = "> "
			}
			out += cursor + m.renderItem(it) + "\n"
		}
	}

	out += "\n" + helpStyle.Render("space check  n add  d delete  x clear done  u undo clear  c copy  esc back")
	return out
}

func (m appModel) renderItem(it models.Item) string {
	box := "[ ]"
	if it.IsChecked {
		box = "[x]"
	}
	name := it.Name
	if it.Quantity > 1 {
		name = fmt.Sprintf("%s ×%v", name, it.Quantity)
	}
	if it.IsChecked {
		name = checkedStyle.Render(name)
	}
	// Items with queued offline mutations get a marker so the user can tell
	// local state from acknowledged state.
	if len(m.services.Lists.PendingForItem(it.ID)) > 0 {
		name += " " + pendingStyle.Render("(pending)")
	}
	return box + " " + name
}

func (m appModel) viewInput() string {
	out := titleStyle.Render(m.input.Placeholder) + "\n\n"
	out += m.input.View() + "\n\n"
	out += helpStyle.Render("enter save  esc cancel")
	return out
}

// viewStatusBar rolls the sync-layer state into one line. Failures are never
// reported per mutation, only aggregated here.
func (m appModel) viewStatusBar() string {
	parts := make([]string, 0, 4)

	if !m.status.Online {
		parts = append(parts, "offline")
	}
	if m.status.Paused {
		parts = append(parts, pausedStyle.Render("sync paused, press r to sign in again"))
	} else if m.status.Syncing {
		parts = append(parts, m.spinner.View()+" syncing")
	}
	if m.status.PendingCount > 0 {
		parts = append(parts, fmt.Sprintf("%d pending", m.status.PendingCount))
	}
	if m.status.StreamState == models.StreamFailed {
		parts = append(parts, pausedStyle.Render("live updates down, press r to retry"))
	}

	if len(parts) == 0 {
		parts = append(parts, "up to date")
	}
	return statusStyle.Render(strings.Join(parts, "  ·  "))
}
