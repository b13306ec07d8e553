package site

import (
	"html"
	"strings"

	"github.com/goliatone/go-medsite/pkg/content"
	"github.com/goliatone/go-medsite/pkg/i18n"
	"github.com/goliatone/go-medsite/pkg/seo"
	"github.com/goliatone/go-medsite/pkg/ui"
)

const heroImage = "/assets/images/hero-clinic.svg"

type linkView struct {
	Label   string `json:"label"`
	Href    string `json:"href"`
	Current bool   `json:"current"`
}

func (s *Site) homePage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	practice := s.content.Practice()

	intro := c.Flex(ui.FlexProps{
		Direction: ui.At(ui.DirectionColumn),
		Gap:       ui.At(ui.GapLG),
		Children: join(
			c.Text(ui.TextProps{Text: loc.Text("pages.home.eyebrow", "Brickell, Miami"), Size: "sm", Weight: "semibold", Tone: "primary"}),
			c.Heading(ui.HeadingProps{Level: 1, Text: loc.Text("pages.home.title", "Family medicine for every generation")}),
			c.Text(ui.TextProps{Text: loc.Text("pages.home.lead", practice.Tagline), Size: "lg", Tone: "muted"}),
			c.Flex(ui.FlexProps{
				Direction: ui.Responsive[ui.Direction]{Base: ui.DirectionColumn, SM: ui.DirectionRow},
				Gap:       ui.At(ui.GapMD),
				Children: join(
					c.Button(ui.ButtonProps{Label: loc.Text("nav.appointment", "Book appointment"), Href: "/appointment", Size: ui.SizeLarge}),
					c.Button(ui.ButtonProps{
						Label:     loc.Format("pages.home.call", "Call %s", practice.Phone),
						Href:      telHref(practice.Phone),
						Variant:   ui.ButtonOutline,
						Size:      ui.SizeLarge,
						AriaLabel: loc.Format("pages.home.call", "Call %s", practice.Phone),
					}),
				),
			}),
		),
	})
	hero := c.Section(ui.SectionProps{
		ID:         "hero",
		Background: ui.BackgroundSurface,
		Padding:    ui.PaddingLG,
		Contained:  true,
		Children: c.Grid(ui.GridProps{
			Columns: ui.Responsive[int]{Base: 1, LG: 2},
			Gap:     ui.At(ui.GapXL),
			Class:   "items-center",
			Children: join(intro, c.Image(ui.ImageProps{
				Src:      heroImage,
				Alt:      loc.Text("pages.home.hero_alt", "The bright waiting room of our Brickell clinic"),
				Aspect:   ui.AspectVideo,
				Position: ui.PositionHero,
				Width:    1280,
				Height:   720,
				Rounded:  true,
			})),
		}),
	})

	services := s.content.Services()
	if len(services) > 3 {
		services = services[:3]
	}
	servicesSection := titledSection(c, "home-services", ui.BackgroundDefault,
		loc.Text("pages.home.services_title", "How we can help"),
		loc.Text("pages.home.services_lead", "Unhurried visits, same-day sick appointments and care in English or Spanish."),
		serviceGrid(c, loc, services, ui.PositionBelowFold),
		c.Button(ui.ButtonProps{Label: loc.Text("nav.all_services", "All services"), Href: "/services", Variant: ui.ButtonLink, Class: "mt-8"}),
	)

	reasons := []struct{ key, title, text string }{
		{"bilingual", "Bilingual clinicians", "Every visit is available in English or Spanish."},
		{"same_day", "Same-day visits", "Sick today? Call before noon for an appointment today."},
		{"telehealth", "Telehealth", "See your own clinician by video for follow-ups and medication reviews."},
	}
	var reasonCards []string
	for _, reason := range reasons {
		reasonCards = append(reasonCards, c.Card(ui.CardProps{
			Title:   loc.Text("pages.home.reasons."+reason.key+".title", reason.title),
			Text:    loc.Text("pages.home.reasons."+reason.key+".text", reason.text),
			Variant: ui.CardFlat,
		}))
	}
	reasonsSection := titledSection(c, "home-reasons", ui.BackgroundMuted,
		loc.Text("pages.home.reasons_title", "Why families choose us"), "",
		c.Grid(ui.GridProps{Columns: ui.Responsive[int]{Base: 1, MD: 3}, Gap: ui.At(ui.GapLG), Children: join(reasonCards...)}),
	)

	postsSection := titledSection(c, "home-posts", ui.BackgroundDefault,
		loc.Text("pages.home.posts_title", "From the health blog"), "",
		s.postGrid(c, loc, s.content.Recent(3)),
	)

	return pageResult{
		template: "templates/pages/home.tmpl",
		data: map[string]any{
			"sections": []string{hero, servicesSection, reasonsSection, postsSection, callToAction(c, loc)},
		},
		meta: staticMeta("/"),
	}, nil
}

func (s *Site) aboutPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc

	var team []string
	for _, member := range s.content.Team() {
		card := ui.CardProps{
			Title:        member.Name,
			Eyebrow:      member.Role,
			Text:         member.Bio,
			HeadingLevel: 3,
			Variant:      ui.CardOutlined,
		}
		if len(member.Languages) > 0 {
			card.Footer = c.Text(ui.TextProps{
				Text: loc.Format("pages.about.languages", "Speaks %s", strings.Join(member.Languages, ", ")),
				Size: "sm",
				Tone: "muted",
			})
		}
		if member.Image != "" {
			card.Image = &ui.ImageProps{Src: member.Image, Alt: member.ImageAlt, Aspect: ui.AspectPortrait, Position: ui.PositionBelowFold, Width: 480, Height: 640}
		}
		team = append(team, c.Card(card))
	}

	story := c.Container(ui.ContainerProps{Width: ui.WidthProse, Children: join(
		c.Text(ui.TextProps{Text: loc.Text("pages.about.story_1", "Dr. Elena Rivera opened the clinic in 2009 with a simple idea: primary care should feel personal. Visits are scheduled for thirty minutes so there is time to listen.")}),
		c.Text(ui.TextProps{Text: loc.Text("pages.about.story_2", "Today our team of physicians and nurse practitioners cares for more than four thousand Miami families, from newborns to grandparents, in English, Spanish and Portuguese."), Class: "mt-4"}),
	)})

	return pageResult{
		template: "templates/pages/sections.tmpl",
		data: map[string]any{
			"sections": []string{
				pageIntro(c, loc.Text("pages.about.title", "About our practice"), loc.Text("pages.about.lead", "Neighbourhood family medicine in Brickell since 2009.")),
				titledSection(c, "about-story", ui.BackgroundDefault, loc.Text("pages.about.story_title", "Our story"), "", story),
				titledSection(c, "about-team", ui.BackgroundMuted, loc.Text("pages.about.team_title", "Meet the team"), "",
					c.Grid(ui.GridProps{Columns: ui.Responsive[int]{Base: 1, SM: 2, LG: 3}, Gap: ui.At(ui.GapLG), Children: join(team...)})),
				callToAction(c, loc),
			},
		},
		meta: staticMeta("/about"),
	}, nil
}

func (s *Site) servicesPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	return pageResult{
		template: "templates/pages/sections.tmpl",
		data: map[string]any{
			"sections": []string{
				pageIntro(c, loc.Text("pages.services.title", "Medical services"), loc.Text("pages.services.lead", "Comprehensive primary care for adults and children under one roof.")),
				c.Section(ui.SectionProps{ID: "services-list", Contained: true, Children: serviceGrid(c, loc, s.content.Services(), ui.PositionAboveFold)}),
				callToAction(c, loc),
			},
		},
		meta: staticMeta("/services"),
	}, nil
}

func (s *Site) servicePage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	service, ok := s.content.Service(pr.req.PathValue("slug"))
	if !ok {
		return pageResult{}, errNotFound
	}

	var related []linkView
	for _, other := range s.content.Services() {
		if other.Slug != service.Slug {
			related = append(related, linkView{Label: other.Name, Href: "/services/" + other.Slug})
		}
	}

	data := map[string]any{
		"breadcrumb":       linkView{Label: loc.Text("nav.services", "Services"), Href: "/services"},
		"heading":          c.Heading(ui.HeadingProps{Level: 1, Text: service.Name}),
		"summary":          c.Text(ui.TextProps{Text: service.Summary, Size: "lg", Tone: "muted"}),
		"body":             service.HTML,
		"icon":             service.Icon,
		"highlights":       service.Highlights,
		"highlights_title": loc.Text("pages.service.highlights", "At a glance"),
		"related_title":    loc.Text("pages.service.related", "Other services"),
		"related":          related,
		"cta": c.Button(ui.ButtonProps{
			Label:     loc.Text("nav.appointment", "Book appointment"),
			Href:      "/appointment",
			FullWidth: true,
		}),
	}
	if service.Image != "" {
		data["image"] = c.Image(ui.ImageProps{Src: service.Image, Alt: service.ImageAlt, Aspect: ui.AspectVideo, Position: ui.PositionAboveFold, Width: 960, Height: 540, Rounded: true})
	}
	return pageResult{
		template: "templates/pages/service.tmpl",
		data:     data,
		meta:     seo.ForService(service),
	}, nil
}

func (s *Site) blogPage(pr *pageRequest) (pageResult, error) {
	loc := pr.loc
	return s.listing(pr,
		loc.Text("pages.blog.title", "Health blog"),
		loc.Text("pages.blog.lead", "Practical advice for Miami families from our clinicians."),
		"", s.content.Posts(), staticMeta("/blog"))
}

func (s *Site) categoryPage(pr *pageRequest) (pageResult, error) {
	category, ok := s.content.Category(pr.req.PathValue("category"))
	if !ok {
		return pageResult{}, errNotFound
	}
	return s.listing(pr, category.Name, category.Description, category.Slug,
		s.content.PostsInCategory(category.Slug), seo.ForCategory(category))
}

func (s *Site) listing(pr *pageRequest, title, lead, current string, posts []content.Post, meta seo.Meta) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	filters := []linkView{{Label: loc.Text("pages.blog.all", "All articles"), Href: "/blog", Current: current == ""}}
	for _, category := range s.content.Categories() {
		filters = append(filters, linkView{
			Label:   category.Name,
			Href:    "/blog/category/" + category.Slug,
			Current: category.Slug == current,
		})
	}

	grid := s.postGrid(c, loc, posts)
	if len(posts) == 0 {
		grid = c.Text(ui.TextProps{Text: loc.Text("pages.blog.empty", "No articles yet. Check back soon."), Tone: "muted"})
	}
	return pageResult{
		template: "templates/pages/blog.tmpl",
		data: map[string]any{
			"intro":         pageIntro(c, title, lead),
			"filters_label": loc.Text("pages.blog.filters", "Categories"),
			"filters":       filters,
			"posts":         grid,
		},
		meta: meta,
	}, nil
}

func (s *Site) postPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	post, ok := s.content.Post(pr.req.PathValue("slug"))
	if !ok {
		return pageResult{}, errNotFound
	}
	category, _ := s.content.Category(post.Category)

	var related []content.Post
	for _, other := range s.content.PostsInCategory(post.Category) {
		if other.Slug != post.Slug && len(related) < 2 {
			related = append(related, other)
		}
	}

	data := map[string]any{
		"category":      linkView{Label: category.Name, Href: "/blog/category/" + category.Slug},
		"heading":       c.Heading(ui.HeadingProps{Level: 1, Text: post.Title}),
		"summary":       c.Text(ui.TextProps{Text: post.Summary, Size: "lg", Tone: "muted"}),
		"author":        post.Author,
		"published":     post.Published.Format(content.DateLayout),
		"published_on":  post.Published.Format("January 2, 2006"),
		"reading":       loc.Format("pages.blog.reading_time", "%d min read", post.ReadingMinutes),
		"body":          post.HTML,
		"tags":          post.Tags,
		"back":          linkView{Label: loc.Text("pages.post.back", "Back to the blog"), Href: "/blog"},
		"related_title": loc.Text("pages.post.related", "Related articles"),
	}
	if len(related) > 0 {
		data["related"] = s.postGrid(c, loc, related)
	}
	if post.Image != "" {
		data["image"] = c.Image(ui.ImageProps{Src: post.Image, Alt: post.ImageAlt, Aspect: ui.AspectVideo, Position: ui.PositionAboveFold, Width: 960, Height: 540, Rounded: true})
	}
	return pageResult{
		template: "templates/pages/post.tmpl",
		data:     data,
		meta:     seo.ForPost(post),
	}, nil
}

func (s *Site) insurancePage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	type planRow struct {
		Name     string `json:"name"`
		Kind     string `json:"kind"`
		Accepted string `json:"accepted"`
		Notes    string `json:"notes"`
	}
	var plans []planRow
	for _, plan := range s.content.Insurance() {
		accepted := loc.Text("pages.insurance.not_accepted", "Not accepted")
		if plan.Accepted {
			accepted = loc.Text("pages.insurance.accepted", "Accepted")
		}
		plans = append(plans, planRow{Name: plan.Name, Kind: plan.Kind, Accepted: accepted, Notes: plan.Notes})
	}

	return pageResult{
		template: "templates/pages/insurance.tmpl",
		data: map[string]any{
			"intro":         pageIntro(c, loc.Text("pages.insurance.title", "Insurance and pricing"), loc.Text("pages.insurance.lead", "We accept most major plans and publish our self-pay prices.")),
			"plans_title":   loc.Text("pages.insurance.plans_title", "Insurance plans"),
			"plans":         plans,
			"pricing_title": loc.Text("pages.insurance.pricing_title", "Self-pay prices"),
			"pricing":       s.content.Pricing(),
			"columns": map[string]string{
				"plan":     loc.Text("pages.insurance.plan", "Plan"),
				"kind":     loc.Text("pages.insurance.kind", "Type"),
				"status":   loc.Text("pages.insurance.status", "Status"),
				"notes":    loc.Text("pages.insurance.notes", "Notes"),
				"service":  loc.Text("pages.insurance.service", "Service"),
				"self_pay": loc.Text("pages.insurance.self_pay", "Self-pay price"),
			},
			"note": c.Text(ui.TextProps{
				Text: loc.Text("pages.insurance.note", "Coverage varies by plan. Call us before your visit and we will check your benefits."),
				Tone: "muted",
				Size: "sm",
			}),
			"cta": callToAction(c, loc),
		},
		meta: staticMeta("/insurance"),
	}, nil
}

func (s *Site) telehealthPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc

	var features []string
	for _, feature := range s.content.Telehealth() {
		body := c.Text(ui.TextProps{Text: feature.Description, Tone: "muted"})
		if feature.Icon != "" {
			body = `<div class="service-icon" aria-hidden="true">` + feature.Icon + "</div>\n" + body
		}
		features = append(features, c.Card(ui.CardProps{Title: feature.Title, Body: body, HeadingLevel: 3, Variant: ui.CardOutlined}))
	}

	steps := []struct{ key, text string }{
		{"book", "Book a video visit online or by phone."},
		{"link", "We text you a secure link a few minutes before your visit."},
		{"visit", "Join from your phone or computer. No app required."},
	}
	var items []string
	for _, step := range steps {
		items = append(items, "<li>"+html.EscapeString(loc.Text("pages.telehealth.steps."+step.key, step.text))+"</li>")
	}
	stepsList := `<ol class="list-decimal space-y-2 pl-5">` + join(items...) + "</ol>"

	return pageResult{
		template: "templates/pages/sections.tmpl",
		data: map[string]any{
			"sections": []string{
				pageIntro(c, loc.Text("pages.telehealth.title", "Telehealth visits"), loc.Text("pages.telehealth.lead", "See your own clinician from home, in English or Spanish.")),
				c.Section(ui.SectionProps{ID: "telehealth-features", Contained: true, Children: c.Grid(ui.GridProps{
					Columns:  ui.Responsive[int]{Base: 1, MD: 2, LG: 3},
					Gap:      ui.At(ui.GapLG),
					Children: join(features...),
				})}),
				titledSection(c, "telehealth-steps", ui.BackgroundMuted, loc.Text("pages.telehealth.steps_title", "How it works"), "", stepsList),
				callToAction(c, loc),
			},
		},
		meta: staticMeta("/telehealth"),
	}, nil
}

func (s *Site) portalPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	practice := s.content.Practice()
	body := c.Card(ui.CardProps{
		Eyebrow: loc.Text("portal.coming_soon", "Coming soon"),
		Title:   loc.Text("pages.portal.card_title", "Online access to your records"),
		Text:    loc.Text("pages.portal.card_text", "Soon you will be able to view lab results, request refills and message your care team online. Until then, please call the office."),
		Footer: c.Flex(ui.FlexProps{
			Direction: ui.Responsive[ui.Direction]{Base: ui.DirectionColumn, SM: ui.DirectionRow},
			Gap:       ui.At(ui.GapSM),
			Children: join(
				c.Button(ui.ButtonProps{Label: loc.Text("pages.portal.open", "Open patient portal"), Href: practice.PortalURL, Disabled: true}),
				c.Button(ui.ButtonProps{Label: loc.Format("pages.home.call", "Call %s", practice.Phone), Href: telHref(practice.Phone), Variant: ui.ButtonOutline}),
			),
		}),
		Variant: ui.CardOutlined,
	})
	return pageResult{
		template: "templates/pages/sections.tmpl",
		data: map[string]any{
			"sections": []string{
				pageIntro(c, loc.Text("pages.portal.title", "Patient portal"), loc.Text("pages.portal.lead", "Our online patient portal is on its way.")),
				c.Section(ui.SectionProps{ID: "portal", Contained: true, ContainerWidth: ui.WidthMD, Children: body}),
			},
		},
		meta: staticMeta("/patient-portal"),
	}, nil
}

func (s *Site) errorPage(pr *pageRequest, status int) pageResult {
	c, loc := pr.ui, pr.loc
	meta := seo.NotFound()
	title := loc.Text("errors.not_found", "Page not found")
	lead := loc.Text("errors.not_found_text", "The page you are looking for has moved or never existed.")
	if status != 404 {
		meta = seo.Meta{Title: loc.Text("errors.server", "Something went wrong"), NoIndex: true}
		title = meta.Title
		lead = loc.Text("errors.server_text", "Please try again in a moment or call the office.")
	}
	return pageResult{
		template: "templates/pages/error.tmpl",
		data: map[string]any{
			"status":  status,
			"heading": c.Heading(ui.HeadingProps{Level: 1, Text: title}),
			"lead":    c.Text(ui.TextProps{Text: lead, Tone: "muted"}),
			"home":    c.Button(ui.ButtonProps{Label: loc.Text("errors.home", "Go to the home page"), Href: "/"}),
		},
		meta: meta,
	}
}

func pageIntro(c *composer, title, lead string) string {
	children := []string{c.Heading(ui.HeadingProps{Level: 1, Text: title})}
	if lead != "" {
		children = append(children, c.Text(ui.TextProps{Text: lead, Size: "lg", Tone: "muted", Class: "mt-4 max-w-2xl"}))
	}
	return c.Section(ui.SectionProps{Background: ui.BackgroundSurface, Padding: ui.PaddingMD, Contained: true, Children: join(children...)})
}

func titledSection(c *composer, id string, background ui.SectionBackground, title, lead string, body ...string) string {
	headingID := id + "-title"
	children := []string{c.Heading(ui.HeadingProps{Level: 2, Text: title, ID: headingID, Class: "mb-4"})}
	if lead != "" {
		children = append(children, c.Text(ui.TextProps{Text: lead, Tone: "muted", Class: "mb-8 max-w-2xl"}))
	}
	children = append(children, body...)
	return c.Section(ui.SectionProps{
		ID:         id,
		Background: background,
		Contained:  true,
		LabelledBy: headingID,
		Children:   join(children...),
	})
}

func callToAction(c *composer, loc i18n.Localizer) string {
	return c.Section(ui.SectionProps{
		ID:         "cta",
		Background: ui.BackgroundPrimary,
		Padding:    ui.PaddingMD,
		Contained:  true,
		LabelledBy: "cta-title",
		Children: c.Flex(ui.FlexProps{
			Direction: ui.Responsive[ui.Direction]{Base: ui.DirectionColumn, MD: ui.DirectionRow},
			Justify:   ui.At(ui.JustifyBetween),
			Align:     ui.Responsive[ui.Align]{MD: ui.AlignCenter},
			Gap:       ui.At(ui.GapLG),
			Children: join(
				c.Heading(ui.HeadingProps{Level: 2, Text: loc.Text("pages.cta.title", "Ready to meet your new doctor?"), ID: "cta-title", Size: "2xl"}),
				c.Button(ui.ButtonProps{Label: loc.Text("nav.appointment", "Book appointment"), Href: "/appointment", Variant: ui.ButtonSecondary, Size: ui.SizeLarge}),
			),
		}),
	})
}

func serviceGrid(c *composer, loc i18n.Localizer, services []content.Service, position ui.Position) string {
	cards := make([]string, 0, len(services))
	for _, service := range services {
		card := ui.CardProps{
			Title:        service.Name,
			Text:         service.Summary,
			Href:         "/services/" + service.Slug,
			HeadingLevel: 3,
			Footer:       c.Text(ui.TextProps{Text: loc.Text("pages.services.learn_more", "Learn more"), Size: "sm", Tone: "primary", Weight: "semibold", As: "span"}),
		}
		if service.Image != "" {
			card.Image = &ui.ImageProps{Src: service.Image, Alt: service.ImageAlt, Aspect: ui.AspectVideo, Position: position, Width: 640, Height: 360}
		}
		cards = append(cards, c.Card(card))
	}
	return c.Grid(ui.GridProps{
		Columns:  ui.Responsive[int]{Base: 1, MD: 2, LG: 3},
		Gap:      ui.At(ui.GapLG),
		Children: join(cards...),
	})
}

func (s *Site) postGrid(c *composer, loc i18n.Localizer, posts []content.Post) string {
	cards := make([]string, 0, len(posts))
	for _, post := range posts {
		card := ui.CardProps{
			Title:        post.Title,
			Text:         post.Summary,
			Href:         "/blog/" + post.Slug,
			HeadingLevel: 3,
			Variant:      ui.CardOutlined,
			Footer: c.Text(ui.TextProps{
				Text: post.Published.Format("Jan 2, 2006") + " · " + loc.Format("pages.blog.reading_time", "%d min read", post.ReadingMinutes),
				Size: "sm",
				Tone: "muted",
				As:   "span",
			}),
		}
		if category, ok := s.content.Category(post.Category); ok {
			card.Eyebrow = category.Name
		}
		if post.Image != "" {
			card.Image = &ui.ImageProps{Src: post.Image, Alt: post.ImageAlt, Aspect: ui.AspectVideo, Position: ui.PositionBelowFold, Width: 640, Height: 360}
		}
		cards = append(cards, c.Card(card))
	}
	return c.Grid(ui.GridProps{
		Columns:  ui.Responsive[int]{Base: 1, MD: 2, LG: 3},
		Gap:      ui.At(ui.GapLG),
		Children: join(cards...),
	})
}
