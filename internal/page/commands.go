package page

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
)

// Command is one user interaction. A command mutates the controller state
// and nothing else; the caller re-derives the view afterwards.
type Command interface {
	Apply(c *Controller)
}

// ToggleFilter selects or deselects one value of a filter group
type ToggleFilter struct {
	Key   string
	Value string
}

// Apply implements Command
func (cmd ToggleFilter) Apply(c *Controller) {
	group, ok := catalog.FindGroup(c.groups, cmd.Key)
	if !ok || cmd.Value == "" || !contains(group.Values, cmd.Value) {
		return
	}
	c.state.Filters.Toggle(cmd.Key, cmd.Value)
	c.afterFilterChange(cmd.Key)
}

// RemoveFilter deselects one value, as done by an active-filter pill
type RemoveFilter struct {
	Key   string
	Value string
}

// Apply implements Command
func (cmd RemoveFilter) Apply(c *Controller) {
	if !c.state.Filters.IsSelected(cmd.Key, cmd.Value) {
		return
	}
	c.state.Filters.Remove(cmd.Key, cmd.Value)
	c.afterFilterChange(cmd.Key)
}

// ClearGroup drops every selection in one group
type ClearGroup struct {
	Key string
}

// Apply implements Command
func (cmd ClearGroup) Apply(c *Controller) {
	if len(c.state.Filters.Selected(cmd.Key)) == 0 {
		return
	}
	delete(c.state.Filters, cmd.Key)
	c.afterFilterChange(cmd.Key)
}

// ClearAll resets filters, collection and pagination. Sort is kept.
type ClearAll struct{}

// Apply implements Command
func (ClearAll) Apply(c *Controller) {
	c.state.Filters = models.ActiveFilters{}
	c.state.Collection = ""
	c.state.Page = 1
}

// SetSort changes the grid order
type SetSort struct {
	Sort models.SortKey
}

// Apply implements Command
func (cmd SetSort) Apply(c *Controller) {
	c.state.Sort = cmd.Sort
	c.state.Page = 1
}

// LoadMore reveals the next page of results
type LoadMore struct{}

// Apply implements Command
func (LoadMore) Apply(c *Controller) {
	c.state.Page++
}

// GoToPage reveals results up to an explicit page
type GoToPage struct {
	Page int
}

// Apply implements Command
func (cmd GoToPage) Apply(c *Controller) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	c.state.Page = cmd.Page
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

// Action names accepted by the registry
const (
	ActionToggle     = "toggle"
	ActionRemove     = "remove"
	ActionClearGroup = "clear-group"
	ActionClearAll   = "clear-all"
	ActionSort       = "sort"
	ActionMore       = "more"
	ActionPage       = "page"
)

// Args carries the parameters of an interaction event
type Args map[string]string

// Get returns the trimmed argument value
func (a Args) Get(name string) string {
	return strings.TrimSpace(a[name])
}

// Builder turns event arguments into a command
type Builder func(args Args) (Command, bool)

// Registry maps action names to command builders
type Registry struct {
	builders map[string]Builder
	log      *zap.Logger
}

// NewRegistry creates a registry with the storefront actions registered
func NewRegistry(log *zap.Logger) *Registry {
	r := &Registry{
		builders: make(map[string]Builder),
		log:      log.Named("page-commands"),
	}

	r.Register(ActionToggle, func(a Args) (Command, bool) {
		return ToggleFilter{Key: a.Get("key"), Value: a.Get("value")}, a.Get("key") != ""
	})
	r.Register(ActionRemove, func(a Args) (Command, bool) {
		return RemoveFilter{Key: a.Get("key"), Value: a.Get("value")}, a.Get("key") != ""
	})
	r.Register(ActionClearGroup, func(a Args) (Command, bool) {
		return ClearGroup{Key: a.Get("key")}, a.Get("key") != ""
	})
	r.Register(ActionClearAll, func(Args) (Command, bool) {
		return ClearAll{}, true
	})
	r.Register(ActionSort, func(a Args) (Command, bool) {
		return SetSort{Sort: models.ParseSortKey(a.Get("sort"))}, true
	})
	r.Register(ActionMore, func(Args) (Command, bool) {
		return LoadMore{}, true
	})
	r.Register(ActionPage, func(a Args) (Command, bool) {
		n, err := strconv.Atoi(a.Get("target"))
		if err != nil {
			return nil, false
		}
		return GoToPage{Page: n}, true
	})

	return r
}

// Register registers a command builder under name
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
	r.log.Debug("Registered page command", zap.String("action", name))
}

// Build resolves an action. Unknown actions and bad arguments report false.
func (r *Registry) Build(action string, args Args) (Command, bool) {
	b, ok := r.builders[action]
	if !ok {
		r.log.Debug("Ignoring unknown page action", zap.String("action", action))
		return nil, false
	}
	return b(args)
}
