package tui

import (
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// KeyHandler reacts to one key in the table view. Returning false lets a
// lower-priority binding for the same key try.
type KeyHandler func(m SheetModel, key string) (SheetModel, tea.Cmd, bool)

// Help groups, in the order the help modal lists them.
const (
	GroupMove  = "Move"
	GroupEdit  = "Edit"
	GroupSheet = "Sheet"
	GroupApp   = "App"
)

var groupOrder = []string{GroupMove, GroupEdit, GroupSheet, GroupApp}

type KeyBinding struct {
	Keys        []string
	Handler     KeyHandler
	Description string
	Group       string
	Footer      bool // listed in the one-line footer help
	ViewModes   []int
	Priority    int
}

func (b KeyBinding) AppliesToView(mode int) bool {
	if len(b.ViewModes) == 0 {
		return true
	}
	for _, v := range b.ViewModes {
		if v == mode {
			return true
		}
	}
	return false
}

func (b KeyBinding) matches(key string) bool {
	for _, k := range b.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// KeyLabel joins the keys for display.
func (b KeyBinding) KeyLabel() string {
	keys := make([]string, 0, len(b.Keys))
	for _, k := range b.Keys {
		keys = append(keys, displayKey(k))
	}
	return strings.Join(keys, ", ")
}

type HandlerRegistry struct {
	bindings []KeyBinding
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{}
}

func (r *HandlerRegistry) Register(b KeyBinding) {
	r.bindings = append(r.bindings, b)
	sort.SliceStable(r.bindings, func(i, j int) bool {
		return r.bindings[i].Priority > r.bindings[j].Priority
	})
}

func (r *HandlerRegistry) Handle(m SheetModel, key string) (SheetModel, tea.Cmd, bool) {
	for _, b := range r.bindings {
		if b.matches(key) && b.AppliesToView(m.viewMode) {
			next, cmd, handled := b.Handler(m, key)
			if handled {
				return next, cmd, true
			}
		}
	}
	return m, nil, false
}

func (r *HandlerRegistry) GetBindingsForView(mode int) []KeyBinding {
	var out []KeyBinding
	for _, b := range r.bindings {
		if b.AppliesToView(mode) {
			out = append(out, b)
		}
	}
	return out
}

// Grouped returns the described bindings of a view keyed by help group.
// Priority then registration order is kept inside each group.
func (r *HandlerRegistry) Grouped(mode int) map[string][]KeyBinding {
	out := make(map[string][]KeyBinding)
	for _, b := range r.GetBindingsForView(mode) {
		if b.Description == "" {
			continue
		}
		g := b.Group
		if g == "" {
			g = GroupApp
		}
		out[g] = append(out[g], b)
	}
	return out
}

// HelpForView renders the footer bindings, dropping entries that would run
// past width. Zero width means unlimited.
func (r *HandlerRegistry) HelpForView(mode, width int) string {
	seen := make(map[string]bool)
	var b strings.Builder
	for _, kb := range r.GetBindingsForView(mode) {
		if !kb.Footer || kb.Description == "" || len(kb.Keys) == 0 {
			continue
		}
		key := kb.Keys[0]
		if seen[key] {
			continue
		}
		seen[key] = true
		part := "[" + displayKey(key) + "]" + kb.Description
		if b.Len() > 0 {
			part = "|" + part
		}
		if width > 0 && ansi.StringWidth(b.String())+ansi.StringWidth(part) > width {
			break
		}
		b.WriteString(part)
	}
	return b.String()
}

func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}
