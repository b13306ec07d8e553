package ui

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/goliatone/go-medsite/pkg/tokens"
)

// Responsive holds a value per breakpoint. Zero values mean "no override" at
// that breakpoint.
type Responsive[T comparable] struct {
	Base T
	SM   T
	MD   T
	LG   T
	XL   T
}

// At returns a Responsive with only the base value set.
func At[T comparable](base T) Responsive[T] {
	return Responsive[T]{Base: base}
}

// steps returns (prefix, value) pairs in base, sm, md, lg, xl order.
func (r Responsive[T]) steps() []responsiveStep[T] {
	names := tokens.BreakpointNames()
	values := []T{r.SM, r.MD, r.LG, r.XL}
	out := make([]responsiveStep[T], 0, len(values)+1)
	out = append(out, responsiveStep[T]{value: r.Base})
	for idx, value := range values {
		out = append(out, responsiveStep[T]{prefix: names[idx] + ":", value: value})
	}
	return out
}

type responsiveStep[T comparable] struct {
	prefix string
	value  T
}

// Gap is the spacing between grid or flex children.
type Gap string

const (
	GapNone Gap = "none"
	GapXS   Gap = "xs"
	GapSM   Gap = "sm"
	GapMD   Gap = "md"
	GapLG   Gap = "lg"
	GapXL   Gap = "xl"
)

var gapClasses = map[Gap]string{
	GapNone: "gap-0",
	GapXS:   "gap-1",
	GapSM:   "gap-2",
	GapMD:   "gap-4",
	GapLG:   "gap-6",
	GapXL:   "gap-8",
}

// ContainerWidth caps the content width of a Container.
type ContainerWidth string

const (
	WidthSM    ContainerWidth = "sm"
	WidthMD    ContainerWidth = "md"
	WidthLG    ContainerWidth = "lg"
	WidthXL    ContainerWidth = "xl"
	WidthProse ContainerWidth = "prose"
	WidthFull  ContainerWidth = "full"
)

var containerWidthClasses = map[ContainerWidth]string{
	WidthSM:    "max-w-2xl",
	WidthMD:    "max-w-4xl",
	WidthLG:    "max-w-6xl",
	WidthXL:    "max-w-7xl",
	WidthProse: "max-w-prose",
	WidthFull:  "max-w-none",
}

// ContainerClasses centres content with responsive horizontal padding. Unknown
// widths fall back to xl.
func ContainerClasses(width ContainerWidth) string {
	widthClass, ok := containerWidthClasses[width]
	if !ok {
		widthClass = containerWidthClasses[WidthXL]
	}
	return "mx-auto w-full px-4 sm:px-6 lg:px-8 " + widthClass
}

// GridProps configures a CSS grid. Columns outside 1..12 are ignored.
type GridProps struct {
	Columns  Responsive[int]
	Gap      Responsive[Gap]
	Class    string
	Children string
}

// GridClasses maps column counts and gaps onto classes, base first and then
// each breakpoint in ascending order.
func GridClasses(columns Responsive[int], gap Responsive[Gap]) string {
	parts := []string{"grid"}
	colSteps := columns.steps()
	gapSteps := gap.steps()
	for idx := range colSteps {
		if cols := colSteps[idx].value; cols >= 1 && cols <= 12 {
			parts = append(parts, colSteps[idx].prefix+"grid-cols-"+strconv.Itoa(cols))
		}
		if class, ok := gapClasses[gapSteps[idx].value]; ok {
			parts = append(parts, gapSteps[idx].prefix+class)
		}
	}
	return strings.Join(parts, " ")
}

// Direction is the flex main axis.
type Direction string

const (
	DirectionRow        Direction = "row"
	DirectionColumn     Direction = "col"
	DirectionRowReverse Direction = "row-reverse"
	DirectionColReverse Direction = "col-reverse"
)

// Justify aligns flex children along the main axis.
type Justify string

const (
	JustifyStart   Justify = "start"
	JustifyCenter  Justify = "center"
	JustifyEnd     Justify = "end"
	JustifyBetween Justify = "between"
	JustifyAround  Justify = "around"
	JustifyEvenly  Justify = "evenly"
)

// Align aligns flex children along the cross axis.
type Align string

const (
	AlignStart    Align = "start"
	AlignCenter   Align = "center"
	AlignEnd      Align = "end"
	AlignStretch  Align = "stretch"
	AlignBaseline Align = "baseline"
)

// Wrap controls flex wrapping.
type Wrap string

const (
	WrapOn      Wrap = "wrap"
	WrapOff     Wrap = "nowrap"
	WrapReverse Wrap = "wrap-reverse"
)

var (
	directionClasses = map[Direction]string{
		DirectionRow:        "flex-row",
		DirectionColumn:     "flex-col",
		DirectionRowReverse: "flex-row-reverse",
		DirectionColReverse: "flex-col-reverse",
	}
	justifyClasses = map[Justify]string{
		JustifyStart:   "justify-start",
		JustifyCenter:  "justify-center",
		JustifyEnd:     "justify-end",
		JustifyBetween: "justify-between",
		JustifyAround:  "justify-around",
		JustifyEvenly:  "justify-evenly",
	}
	alignClasses = map[Align]string{
		AlignStart:    "items-start",
		AlignCenter:   "items-center",
		AlignEnd:      "items-end",
		AlignStretch:  "items-stretch",
		AlignBaseline: "items-baseline",
	}
	wrapClasses = map[Wrap]string{
		WrapOn:      "flex-wrap",
		WrapOff:     "flex-nowrap",
		WrapReverse: "flex-wrap-reverse",
	}
)

// FlexProps configures a flexbox container.
type FlexProps struct {
	Direction Responsive[Direction]
	Justify   Responsive[Justify]
	Align     Responsive[Align]
	Wrap      Responsive[Wrap]
	Gap       Responsive[Gap]
	Class     string
	Children  string
}

// FlexClasses maps direction, justify, align, wrap and gap onto classes, base
// first and then each breakpoint in ascending order. Within a breakpoint the
// order is direction, justify, align, wrap, gap.
func FlexClasses(props FlexProps) string {
	parts := []string{"flex"}
	dir := props.Direction.steps()
	justify := props.Justify.steps()
	align := props.Align.steps()
	wrap := props.Wrap.steps()
	gap := props.Gap.steps()
	for idx := range dir {
		if class, ok := directionClasses[dir[idx].value]; ok {
			parts = append(parts, dir[idx].prefix+class)
		}
		if class, ok := justifyClasses[justify[idx].value]; ok {
			parts = append(parts, justify[idx].prefix+class)
		}
		if class, ok := alignClasses[align[idx].value]; ok {
			parts = append(parts, align[idx].prefix+class)
		}
		if class, ok := wrapClasses[wrap[idx].value]; ok {
			parts = append(parts, wrap[idx].prefix+class)
		}
		if class, ok := gapClasses[gap[idx].value]; ok {
			parts = append(parts, gap[idx].prefix+class)
		}
	}
	return strings.Join(parts, " ")
}

// SectionBackground selects a section's surface.
type SectionBackground string

const (
	BackgroundDefault SectionBackground = "default"
	BackgroundSurface SectionBackground = "surface"
	BackgroundMuted   SectionBackground = "muted"
	BackgroundPrimary SectionBackground = "primary"
	BackgroundDark    SectionBackground = "dark"
)

// SectionPadding selects a section's vertical rhythm.
type SectionPadding string

const (
	PaddingNone SectionPadding = "none"
	PaddingSM   SectionPadding = "sm"
	PaddingMD   SectionPadding = "md"
	PaddingLG   SectionPadding = "lg"
	PaddingXL   SectionPadding = "xl"
)

var (
	backgroundClasses = map[SectionBackground]string{
		BackgroundDefault: "bg-[var(--color-background)] text-[var(--color-foreground)]",
		BackgroundSurface: "bg-[var(--color-surface)] text-[var(--color-foreground)]",
		BackgroundMuted:   "bg-[var(--color-surface-muted)] text-[var(--color-foreground)]",
		BackgroundPrimary: "bg-[var(--color-primary)] text-[var(--color-primary-contrast)]",
		BackgroundDark:    "bg-[var(--color-foreground)] text-white",
	}
	paddingClasses = map[SectionPadding]string{
		PaddingNone: "py-0",
		PaddingSM:   "py-8",
		PaddingMD:   "py-12 md:py-16",
		PaddingLG:   "py-16 md:py-24",
		PaddingXL:   "py-20 md:py-32",
	}
)

// SectionClasses maps background and padding onto classes. Unknown values fall
// back to the default background and md padding.
func SectionClasses(background SectionBackground, padding SectionPadding) string {
	bg, ok := backgroundClasses[background]
	if !ok {
		bg = backgroundClasses[BackgroundDefault]
	}
	pad, ok := paddingClasses[padding]
	if !ok {
		pad = paddingClasses[PaddingMD]
	}
	return bg + " " + pad
}

// ContainerProps configures a Container. Children is trusted, pre-rendered
// markup.
type ContainerProps struct {
	Width    ContainerWidth
	As       string
	ID       string
	Class    string
	Children string
}

// SectionProps configures a Section. When Contained is set the children are
// wrapped in a Container of ContainerWidth.
type SectionProps struct {
	ID             string
	Background     SectionBackground
	Padding        SectionPadding
	Contained      bool
	ContainerWidth ContainerWidth
	LabelledBy     string
	Class          string
	Children       string
}

var containerTags = map[string]struct{}{"div": {}, "main": {}, "article": {}, "header": {}, "footer": {}, "nav": {}}

func writeOpenTag(buf *bytes.Buffer, tag, id, class string, attrs ...string) {
	buf.WriteByte('<')
	buf.WriteString(tag)
	if id != "" {
		buf.WriteString(` id="`)
		buf.WriteString(html.EscapeString(id))
		buf.WriteByte('"')
	}
	if class != "" {
		buf.WriteString(` class="`)
		buf.WriteString(html.EscapeString(class))
		buf.WriteByte('"')
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		if attrs[i+1] == "" {
			continue
		}
		buf.WriteByte(' ')
		buf.WriteString(attrs[i])
		buf.WriteString(`="`)
		buf.WriteString(html.EscapeString(attrs[i+1]))
		buf.WriteByte('"')
	}
	buf.WriteByte('>')
}

func writeCloseTag(buf *bytes.Buffer, tag string) {
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func containerRenderer(_ context.Context, buf *bytes.Buffer, props any, _ ComponentData) error {
	p, ok := props.(ContainerProps)
	if !ok {
		return fmt.Errorf("ui: container expects ContainerProps, got %T", props)
	}
	tag := strings.ToLower(strings.TrimSpace(p.As))
	if _, ok := containerTags[tag]; !ok {
		tag = "div"
	}
	writeOpenTag(buf, tag, slug(p.ID), classList(ContainerClasses(p.Width), p.Class))
	buf.WriteString(p.Children)
	writeCloseTag(buf, tag)
	return nil
}

func gridRenderer(_ context.Context, buf *bytes.Buffer, props any, _ ComponentData) error {
	p, ok := props.(GridProps)
	if !ok {
		return fmt.Errorf("ui: grid expects GridProps, got %T", props)
	}
	writeOpenTag(buf, "div", "", classList(GridClasses(p.Columns, p.Gap), p.Class))
	buf.WriteString(p.Children)
	writeCloseTag(buf, "div")
	return nil
}

func flexRenderer(_ context.Context, buf *bytes.Buffer, props any, _ ComponentData) error {
	p, ok := props.(FlexProps)
	if !ok {
		return fmt.Errorf("ui: flex expects FlexProps, got %T", props)
	}
	writeOpenTag(buf, "div", "", classList(FlexClasses(p), p.Class))
	buf.WriteString(p.Children)
	writeCloseTag(buf, "div")
	return nil
}

func sectionRenderer(_ context.Context, buf *bytes.Buffer, props any, _ ComponentData) error {
	p, ok := props.(SectionProps)
	if !ok {
		return fmt.Errorf("ui: section expects SectionProps, got %T", props)
	}
	writeOpenTag(buf, "section", slug(p.ID), classList(SectionClasses(p.Background, p.Padding), p.Class),
		"aria-labelledby", slug(p.LabelledBy))
	if p.Contained {
		writeOpenTag(buf, "div", "", ContainerClasses(p.ContainerWidth))
		buf.WriteString(p.Children)
		writeCloseTag(buf, "div")
	} else {
		buf.WriteString(p.Children)
	}
	writeCloseTag(buf, "section")
	return nil
}
