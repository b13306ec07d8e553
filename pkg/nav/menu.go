package nav

import (
	"strings"

	"github.com/goliatone/go-medsite/pkg/i18n"
)

// Item is a menu entry. Key is the catalog key of its label; Label is the
// fallback copy.
type Item struct {
	ID       string
	Key      string
	Label    string
	Href     string
	External bool
	Children []Item
}

// Section is a titled group of footer links.
type Section struct {
	Key   string
	Title string
	Items []Item
}

// Primary returns the header menu. services become the children of the
// Services dropdown, after a link to the services overview.
func Primary(services ...Item) []Item {
	children := append([]Item{{Key: "nav.all_services", Label: "All services", Href: "/services"}}, services...)
	return []Item{
		{Key: "nav.home", Label: "Home", Href: "/"},
		{Key: "nav.about", Label: "About", Href: "/about"},
		{ID: "services", Key: "nav.services", Label: "Services", Href: "/services", Children: children},
		{Key: "nav.telehealth", Label: "Telehealth", Href: "/telehealth"},
		{Key: "nav.insurance", Label: "Insurance", Href: "/insurance"},
		{Key: "nav.blog", Label: "Blog", Href: "/blog"},
		{Key: "nav.contact", Label: "Contact", Href: "/contact"},
	}
}

// Actions are the header call-to-action links.
func Actions() []Item {
	return []Item{
		{Key: "nav.patient_portal", Label: "Patient portal", Href: "/patient-portal"},
		{Key: "nav.appointment", Label: "Book appointment", Href: "/appointment"},
	}
}

// Footer returns the footer link sections.
func Footer() []Section {
	return []Section{
		{
			Key:   "footer.navigation",
			Title: "Footer",
			Items: []Item{
				{Key: "nav.about", Label: "About", Href: "/about"},
				{Key: "nav.services", Label: "Services", Href: "/services"},
				{Key: "nav.blog", Label: "Blog", Href: "/blog"},
				{Key: "nav.insurance", Label: "Insurance", Href: "/insurance"},
				{Key: "nav.telehealth", Label: "Telehealth", Href: "/telehealth"},
			},
		},
		{
			Key:   "nav.contact",
			Title: "Contact",
			Items: []Item{
				{Key: "nav.contact", Label: "Contact", Href: "/contact"},
				{Key: "nav.appointment", Label: "Book appointment", Href: "/appointment"},
				{Key: "nav.patient_portal", Label: "Patient portal", Href: "/patient-portal"},
				{Key: "footer.components", Label: "Component library", Href: "/components"},
			},
		},
	}
}

// ItemView is a menu entry ready for a template.
type ItemView struct {
	ID       string     `json:"id,omitempty"`
	Label    string     `json:"label"`
	Href     string     `json:"href"`
	External bool       `json:"external"`
	Current  bool       `json:"current"`
	Active   bool       `json:"active"`
	Expanded bool       `json:"expanded"`
	Children []ItemView `json:"children,omitempty"`
}

// SectionView is a footer section ready for a template.
type SectionView struct {
	Title string     `json:"title"`
	Items []ItemView `json:"items"`
}

// Build localises items and marks the entry for currentPath. Current is set on
// the exact match (aria-current="page"); Active also covers ancestors of the
// current page. Dropdowns are expanded according to state.
func Build(items []Item, currentPath string, state State, loc i18n.Localizer) []ItemView {
	currentPath = cleanPath(currentPath)
	out := make([]ItemView, 0, len(items))
	for _, item := range items {
		view := ItemView{
			ID:       item.ID,
			Label:    loc.Text(item.Key, item.Label),
			Href:     item.Href,
			External: item.External,
			Current:  !item.External && cleanPath(item.Href) == currentPath,
			Active:   !item.External && contains(item.Href, currentPath),
		}
		if len(item.Children) > 0 {
			view.Children = Build(item.Children, currentPath, state, loc)
			view.Expanded = state.DropdownOpen
			for _, child := range view.Children {
				if child.Active {
					view.Active = true
				}
			}
		}
		out = append(out, view)
	}
	return out
}

// BuildFooter localises the footer sections.
func BuildFooter(sections []Section, currentPath string, loc i18n.Localizer) []SectionView {
	out := make([]SectionView, 0, len(sections))
	for _, section := range sections {
		out = append(out, SectionView{
			Title: loc.Text(section.Key, section.Title),
			Items: Build(section.Items, currentPath, State{}, loc),
		})
	}
	return out
}

// contains reports whether href is path or one of its ancestors. The home
// page only contains itself.
func contains(href, path string) bool {
	href = cleanPath(href)
	if href == "/" {
		return path == "/"
	}
	return path == href || strings.HasPrefix(path, href+"/")
}

func cleanPath(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || p == "/" {
		return "/"
	}
	return "/" + strings.Trim(p, "/")
}
