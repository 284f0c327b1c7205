package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/rshade/wattsonctl/internal/billing"
	"github.com/rshade/wattsonctl/internal/view"
)

// Route is a console path: "/" (menu), "/<collection>" (list) or
// "/<collection>/<id>" (detail).
type Route struct {
	Collection billing.Collection
	ID         uuid.UUID
}

// Home is the menu route.
func Home() Route {
	return Route{}
}

// ListRoute returns the list route of coll.
func ListRoute(coll billing.Collection) Route {
	return Route{Collection: coll}
}

// DetailRoute returns the detail route of one entity.
func DetailRoute(coll billing.Collection, id uuid.UUID) Route {
	return Route{Collection: coll, ID: id}
}

// IsHome reports whether r is the menu.
func (r Route) IsHome() bool {
	return r.Collection == ""
}

// IsDetail reports whether r addresses a single entity.
func (r Route) IsDetail() bool {
	return !r.IsHome() && r.ID != uuid.Nil
}

// List returns the list route r belongs to.
func (r Route) List() Route {
	return Route{Collection: r.Collection}
}

// String returns the path.
func (r Route) String() string {
	switch {
	case r.IsHome():
		return "/"
	case r.IsDetail():
		return "/" + string(r.Collection) + "/" + r.ID.String()
	default:
		return "/" + string(r.Collection)
	}
}

// ParseRoute parses a path. Collection aliases are accepted.
func ParseRoute(path string) (Route, error) {
	trimmed := strings.Trim(strings.TrimSpace(path), "/")
	if trimmed == "" {
		return Home(), nil
	}
	parts := strings.Split(trimmed, "/")
	if len(parts) > 2 { //nolint:mnd // collection and id
		return Route{}, fmt.Errorf("invalid path %q", path)
	}
	coll, err := billing.ParseCollection(parts[0])
	if err != nil {
		return Route{}, err
	}
	if len(parts) == 1 {
		return ListRoute(coll), nil
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return Route{}, fmt.Errorf("invalid id in path %q: %w", path, err)
	}
	return DetailRoute(coll, id), nil
}

// NavigateMsg asks the app to switch screens. Fields carries the detail
// view of the selected entity when To is a detail route.
type NavigateMsg struct {
	To     Route
	Fields []view.Field
}

// Navigate returns a command emitting NavigateMsg.
func Navigate(to Route, fields []view.Field) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{To: to, Fields: fields}
	}
}
