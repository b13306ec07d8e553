package site

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-medsite/pkg/ui"
)

// missingDemoImage does not exist, so the components page always shows the
// image error state.
const missingDemoImage = "/assets/images/missing-demo.jpg"

func demoBox(label string) string {
	return `<div class="rounded-[var(--radius-md)] border border-dashed border-[var(--color-border)] bg-[var(--color-surface)] p-4 text-center text-sm">` + label + `</div>`
}

func (s *Site) demoNav(pr *pageRequest) []linkView {
	loc := pr.loc
	links := []linkView{
		{Label: loc.Text("pages.components.nav.overview", "Overview"), Href: "/components"},
		{Label: loc.Text("pages.components.nav.forms", "Forms"), Href: "/components/forms"},
		{Label: loc.Text("pages.components.nav.layout", "Layout"), Href: "/components/layout"},
		{Label: loc.Text("pages.components.nav.example", "Form example"), Href: "/form-example"},
	}
	for i := range links {
		links[i].Current = links[i].Href == pr.path
	}
	return links
}

func (s *Site) demoPage(pr *pageRequest, path, title, lead string, sections ...string) pageResult {
	return pageResult{
		template: "templates/pages/components.tmpl",
		data: map[string]any{
			"intro":     pageIntro(pr.ui, title, lead),
			"nav_label": pr.loc.Text("pages.components.nav.label", "Component pages"),
			"nav":       s.demoNav(pr),
			"sections":  sections,
		},
		meta: staticMeta(path),
	}
}

func (s *Site) componentsPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc

	variants := []ui.ButtonVariant{ui.ButtonPrimary, ui.ButtonSecondary, ui.ButtonOutline, ui.ButtonGhost, ui.ButtonDanger, ui.ButtonLink}
	var buttons []string
	for _, variant := range variants {
		buttons = append(buttons, c.Button(ui.ButtonProps{Label: string(variant), Variant: variant}))
	}
	var sizes []string
	for _, size := range []ui.Size{ui.SizeSmall, ui.SizeMedium, ui.SizeLarge} {
		sizes = append(sizes, c.Button(ui.ButtonProps{Label: string(size), Size: size}))
	}
	states := join(
		c.Button(ui.ButtonProps{Label: loc.Text("pages.components.disabled", "Disabled"), Disabled: true}),
		c.Button(ui.ButtonProps{Label: loc.Text("pages.components.loading", "Loading"), Loading: true, LoadingLabel: loc.Text("forms.submitting", "Sending...")}),
		c.Button(ui.ButtonProps{Label: loc.Text("pages.components.link", "Link button"), Href: "/contact", Variant: ui.ButtonOutline}),
		c.Button(ui.ButtonProps{Label: loc.Text("pages.components.disabled_link", "Disabled link"), Href: "/contact", Disabled: true, Variant: ui.ButtonOutline}),
	)
	row := func(children ...string) string {
		return c.Flex(ui.FlexProps{Wrap: ui.At(ui.WrapOn), Gap: ui.At(ui.GapMD), Align: ui.At(ui.AlignCenter), Class: "mb-6", Children: join(children...)})
	}
	buttonSection := titledSection(c, "demo-buttons", ui.BackgroundDefault, loc.Text("pages.components.buttons", "Buttons"), "",
		row(buttons...), row(sizes...), row(states))

	var cards []string
	for _, variant := range []ui.CardVariant{ui.CardElevated, ui.CardOutlined, ui.CardFlat} {
		cards = append(cards, c.Card(ui.CardProps{
			Eyebrow: string(variant),
			Title:   loc.Text("pages.components.card_title", "Card title"),
			Text:    loc.Text("pages.components.card_text", "Cards group related content and can link to a detail page."),
			Variant: variant,
		}))
	}
	cards = append(cards, c.Card(ui.CardProps{
		Title: loc.Text("pages.components.card_linked", "Linked card with image"),
		Text:  loc.Text("pages.components.card_text", "Cards group related content and can link to a detail page."),
		Href:  "/services",
		Image: &ui.ImageProps{Src: heroImage, Alt: loc.Text("pages.home.hero_alt", "The bright waiting room of our Brickell clinic"), Aspect: ui.AspectVideo, Position: ui.PositionBelowFold},
	}))
	cardSection := titledSection(c, "demo-cards", ui.BackgroundMuted, loc.Text("pages.components.cards", "Cards"), "",
		c.Grid(ui.GridProps{Columns: ui.Responsive[int]{Base: 1, MD: 2, XL: 4}, Gap: ui.At(ui.GapLG), Children: join(cards...)}))

	images := c.Grid(ui.GridProps{
		Columns: ui.Responsive[int]{Base: 1, MD: 2},
		Gap:     ui.At(ui.GapLG),
		Children: join(
			c.Image(ui.ImageProps{
				Src:      heroImage,
				Alt:      loc.Text("pages.home.hero_alt", "The bright waiting room of our Brickell clinic"),
				Aspect:   ui.AspectVideo,
				Position: ui.PositionContent,
				Caption:  loc.Text("pages.components.image_loaded", "A reachable image loads lazily below the fold."),
				Rounded:  true,
			}),
			c.Image(ui.ImageProps{
				Src:      missingDemoImage,
				Alt:      loc.Text("pages.components.image_missing_alt", "Exam room photo that failed to load"),
				Aspect:   ui.AspectVideo,
				Position: ui.PositionContent,
				Caption:  loc.Text("pages.components.image_error", "An unreachable image shows a placeholder with its alt text."),
				Rounded:  true,
			}),
		),
	})
	imageSection := titledSection(c, "demo-images", ui.BackgroundDefault, loc.Text("pages.components.images", "Images"), "", images)

	var headings []string
	for level := 1; level <= 6; level++ {
		headings = append(headings, c.Heading(ui.HeadingProps{Level: level, Text: fmt.Sprintf("Heading %d", level), ID: "demo-heading-" + strconv.Itoa(level)}))
	}
	var tones []string
	for _, tone := range []string{"default", "muted", "primary", "success", "danger"} {
		tones = append(tones, c.Text(ui.TextProps{Text: loc.Format("pages.components.tone", "Body text in the %s tone.", tone), Tone: tone}))
	}
	typeSection := titledSection(c, "demo-typography", ui.BackgroundMuted, loc.Text("pages.components.typography", "Typography"), "",
		c.Flex(ui.FlexProps{Direction: ui.At(ui.DirectionColumn), Gap: ui.At(ui.GapSM), Children: join(append(headings, tones...)...)}))

	return s.demoPage(pr, "/components",
		loc.Text("pages.components.title", "Component library"),
		loc.Text("pages.components.lead", "The building blocks used across the site."),
		buttonSection, cardSection, imageSection, typeSection,
	), nil
}

func (s *Site) componentFormsPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc
	options := []ui.SelectOption{
		{Value: "primary-care", Label: "Primary care"},
		{Value: "pediatrics", Label: "Pediatrics"},
		{Value: "telehealth", Label: "Telehealth visit"},
	}

	fields := join(
		c.TextField(ui.TextFieldProps{FieldProps: ui.FieldProps{Name: "demo_name", Label: loc.Text("pages.components.fields.name", "Full name"), Required: true}, Autocomplete: "name"}),
		c.TextField(ui.TextFieldProps{
			FieldProps: ui.FieldProps{
				Name:  "demo_email",
				Label: loc.Text("pages.components.fields.email", "Email"),
				Value: "foo@",
				Error: loc.Text("forms.email", "Enter a valid email address"),
			},
			Type: "email",
		}),
		c.TextField(ui.TextFieldProps{
			FieldProps: ui.FieldProps{
				Name:  "demo_phone",
				Label: loc.Text("pages.components.fields.phone", "Phone"),
				Hint:  loc.Text("pages.components.fields.phone_hint", "10 digits, for example (305) 555-1234."),
			},
			Type: "tel",
		}),
		c.Select(ui.SelectProps{
			FieldProps:  ui.FieldProps{Name: "demo_service", Label: loc.Text("pages.components.fields.service", "Service")},
			Placeholder: loc.Text("pages.components.fields.choose", "Choose one"),
			Options:     options,
		}),
		c.TextArea(ui.TextAreaProps{FieldProps: ui.FieldProps{Name: "demo_message", Label: loc.Text("pages.components.fields.message", "Message"), Hint: loc.Text("pages.components.fields.message_hint", "Please do not include medical details.")}}),
		c.Radio(ui.RadioGroupProps{
			FieldProps: ui.FieldProps{Name: "demo_patient", Label: loc.Text("pages.components.fields.patient", "Patient type"), Value: "new"},
			Options: []ui.SelectOption{
				{Value: "new", Label: loc.Text("pages.components.fields.new", "New patient")},
				{Value: "returning", Label: loc.Text("pages.components.fields.returning", "Returning patient")},
			},
			Inline: true,
		}),
		c.Checkbox(ui.CheckboxProps{FieldProps: ui.FieldProps{Name: "demo_consent", Label: loc.Text("pages.components.fields.consent", "I agree to be contacted"), Error: loc.Format("forms.required", "%s is required", loc.Text("pages.components.fields.consent", "I agree to be contacted"))}}),
	)
	form := `<form class="space-y-6" action="/form-example" method="get" novalidate>` + c.Grid(ui.GridProps{
		Columns:  ui.Responsive[int]{Base: 1, MD: 2},
		Gap:      ui.At(ui.GapLG),
		Children: fields,
	}) + "</form>"

	return s.demoPage(pr, "/components/forms",
		loc.Text("pages.components.forms_title", "Form components"),
		loc.Text("pages.components.forms_lead", "Every control has a visible label, error and hint text wired with aria attributes, and a 44px touch target."),
		titledSection(c, "demo-fields", ui.BackgroundDefault, loc.Text("pages.components.fields_title", "Fields"), "", form),
	), nil
}

func (s *Site) componentLayoutPage(pr *pageRequest) (pageResult, error) {
	c, loc := pr.ui, pr.loc

	var containers []string
	for _, width := range []ui.ContainerWidth{ui.WidthSM, ui.WidthMD, ui.WidthLG, ui.WidthProse} {
		containers = append(containers, c.Container(ui.ContainerProps{Width: width, Class: "mb-4", Children: demoBox("container " + string(width))}))
	}

	var boxes []string
	for i := 1; i <= 6; i++ {
		boxes = append(boxes, demoBox(strconv.Itoa(i)))
	}
	grid := c.Grid(ui.GridProps{
		Columns:  ui.Responsive[int]{Base: 1, SM: 2, LG: 3},
		Gap:      ui.Responsive[ui.Gap]{Base: ui.GapSM, LG: ui.GapLG},
		Children: join(boxes...),
	})

	var flexes []string
	for _, justify := range []ui.Justify{ui.JustifyStart, ui.JustifyCenter, ui.JustifyBetween, ui.JustifyEvenly} {
		flexes = append(flexes, c.Flex(ui.FlexProps{
			Direction: ui.Responsive[ui.Direction]{Base: ui.DirectionColumn, MD: ui.DirectionRow},
			Justify:   ui.At(justify),
			Gap:       ui.At(ui.GapSM),
			Class:     "mb-4",
			Children:  join(demoBox(string(justify)), demoBox("b"), demoBox("c")),
		}))
	}

	var sections []string
	for _, background := range []ui.SectionBackground{ui.BackgroundDefault, ui.BackgroundSurface, ui.BackgroundMuted, ui.BackgroundPrimary, ui.BackgroundDark} {
		sections = append(sections, c.Section(ui.SectionProps{
			Background: background,
			Padding:    ui.PaddingSM,
			Contained:  true,
			Children:   c.Text(ui.TextProps{Text: "background: " + string(background)}),
		}))
	}

	return s.demoPage(pr, "/components/layout",
		loc.Text("pages.components.layout_title", "Layout components"),
		loc.Text("pages.components.layout_lead", "Responsive containers, grids, flex rows and page sections."),
		titledSection(c, "demo-container", ui.BackgroundDefault, loc.Text("pages.components.container", "Container"), "", join(containers...)),
		titledSection(c, "demo-grid", ui.BackgroundMuted, loc.Text("pages.components.grid", "Grid"), loc.Text("pages.components.grid_lead", "One column on phones, two from sm, three from lg."), grid),
		titledSection(c, "demo-flex", ui.BackgroundDefault, loc.Text("pages.components.flex", "Flex"), "", join(flexes...)),
		join(sections...),
	), nil
}
