package newsroom

import (
	"sort"
	"time"

	"github.com/epalma/noticiero/internal/db"
)

// StatusGroup is one dashboard tab: a labeled slice of articles. Grouping is
// purely derived from the live result set; it holds no state of its own.
type StatusGroup struct {
	Key   string
	Label string
	Items []News
}

// reporterTabs splits Editing into fresh drafts and returned articles; the
// stored status stays Edición in both, only the flag differs.
var reporterTabs = []struct {
	key   string
	label string
}{
	{string(db.StatusEditing), "En edición"},
	{"Devuelto", "Devueltas"},
	{string(db.StatusFinished), "Pendientes de aprobación"},
	{string(db.StatusPublished), "Publicadas"},
	{string(db.StatusDeactivated), "Desactivadas"},
}

// ReporterGroups projects the reporter dashboard: articles sorted by last
// touch, grouped by observable sub-state.
func ReporterGroups(items []News) []StatusGroup {
	sorted := make([]News, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lastTouch(sorted[i]).After(lastTouch(sorted[j]))
	})

	groups := make([]StatusGroup, len(reporterTabs))
	for i, tab := range reporterTabs {
		group := StatusGroup{Key: tab.key, Label: tab.label, Items: []News{}}
		for _, item := range sorted {
			switch tab.key {
			case "Devuelto":
				if item.Status == db.StatusEditing && item.Returned {
					group.Items = append(group.Items, item)
				}
			case string(db.StatusEditing):
				if item.Status == db.StatusEditing && !item.Returned {
					group.Items = append(group.Items, item)
				}
			default:
				if string(item.Status) == tab.key {
					group.Items = append(group.Items, item)
				}
			}
		}
		groups[i] = group
	}

	return groups
}

var editorTabs = []struct {
	key      string
	label    string
	includes []db.Status
}{
	{"PENDING", "Pendientes", []db.Status{db.StatusEditing, db.StatusFinished}},
	{"PUBLISHED", "Publicadas", []db.Status{db.StatusPublished}},
	{"DISABLED", "Desactivadas", []db.Status{db.StatusDeactivated}},
}

// EditorGroups projects the editor dashboard tabs.
func EditorGroups(items []News) []StatusGroup {
	groups := make([]StatusGroup, len(editorTabs))
	for i, tab := range editorTabs {
		group := StatusGroup{Key: tab.key, Label: tab.label, Items: []News{}}
		for _, item := range items {
			for _, status := range tab.includes {
				if item.Status == status {
					group.Items = append(group.Items, item)
					break
				}
			}
		}
		groups[i] = group
	}

	return groups
}

type Section struct {
	Name  string
	Items []News
}

type HomePage struct {
	Featured []News
	Sections []Section
}

// BuildHomePage projects the public feed: a featured head slice plus the
// remaining grouping by category name, sections sorted alphabetically.
func BuildHomePage(items []News, featured int) HomePage {
	page := HomePage{}

	if featured > len(items) {
		featured = len(items)
	}
	page.Featured = items[:featured]

	byName := make(map[string][]News)
	for _, item := range items {
		name := item.CategoryName
		if name == "" {
			name = "General"
		}
		byName[name] = append(byName[name], item)
	}

	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		page.Sections = append(page.Sections, Section{Name: name, Items: byName[name]})
	}

	return page
}

func lastTouch(n News) time.Time {
	if !n.UpdatedAt.IsZero() {
		return n.UpdatedAt
	}
	return n.CreatedAt
}
