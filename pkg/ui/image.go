package ui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
)

// Aspect is the declared aspect ratio of an image. It sizes both the image and
// its placeholder.
type Aspect string

const (
	AspectSquare   Aspect = "square"
	AspectVideo    Aspect = "video"
	AspectPortrait Aspect = "portrait"
	AspectWide     Aspect = "wide"
)

// Position is where an image sits on the page; it decides the loading strategy.
type Position string

const (
	PositionHero      Position = "hero"
	PositionAboveFold Position = "above-fold"
	PositionContent   Position = "content"
	PositionBelowFold Position = "below-fold"
)

// ImageState is the server-side verdict on an image source.
type ImageState string

const (
	// ImageLoading means the source could not be judged; the browser loads it
	// and the runtime swaps in the placeholder on error.
	ImageLoading ImageState = "loading"
	ImageLoaded  ImageState = "loaded"
	ImageError   ImageState = "error"
)

// ImageProps configures an Image.
type ImageProps struct {
	Src      string
	Alt      string
	Aspect   Aspect
	Position Position
	Width    int
	Height   int
	Caption  string
	Sizes    string
	Rounded  bool
	Class    string
}

var aspectClasses = map[Aspect]string{
	AspectSquare:   "aspect-square",
	AspectVideo:    "aspect-video",
	AspectPortrait: "aspect-[3/4]",
	AspectWide:     "aspect-[21/9]",
}

// AspectClass returns the aspect-ratio class for a, or "" for natural sizing.
func AspectClass(a Aspect) string {
	return aspectClasses[a]
}

// Eager reports whether an image at position p should load eagerly.
func Eager(p Position) bool {
	return p == PositionHero || p == PositionAboveFold
}

// ResolveImageState asks resolver about src. A nil resolver or an
// ErrUnknownSource verdict leaves the image loading; an empty or unreachable
// source is an error.
func ResolveImageState(ctx context.Context, resolver ImageResolver, src string) ImageState {
	if strings.TrimSpace(src) == "" {
		return ImageError
	}
	if resolver == nil {
		return ImageLoading
	}
	ok, err := resolver.Reachable(ctx, src)
	switch {
	case errors.Is(err, ErrUnknownSource):
		return ImageLoading
	case err != nil:
		return ImageLoading
	case ok:
		return ImageLoaded
	default:
		return ImageError
	}
}

type imageView struct {
	State            string `json:"state"`
	Src              string `json:"src,omitempty"`
	Alt              string `json:"alt"`
	Width            int    `json:"width,omitempty"`
	Height           int    `json:"height,omitempty"`
	Sizes            string `json:"sizes,omitempty"`
	Loading          string `json:"loading"`
	FetchPriority    string `json:"fetchpriority,omitempty"`
	Decoding         string `json:"decoding,omitempty"`
	FigureClass      string `json:"figure_class"`
	ImageClass       string `json:"image_class"`
	PlaceholderClass string `json:"placeholder_class"`
	Caption          string `json:"caption,omitempty"`
}

func newImageView(props ImageProps, state ImageState) imageView {
	aspect := AspectClass(props.Aspect)
	placeholderAspect := aspect
	if placeholderAspect == "" {
		placeholderAspect = aspectClasses[AspectVideo]
	}
	rounded := ""
	if props.Rounded {
		rounded = "rounded-[var(--radius-lg)] overflow-hidden"
	}
	view := imageView{
		State:            string(state),
		Src:              strings.TrimSpace(props.Src),
		Alt:              strings.TrimSpace(props.Alt),
		Width:            props.Width,
		Height:           props.Height,
		Sizes:            props.Sizes,
		FigureClass:      classList("relative", rounded, props.Class),
		ImageClass:       classList("block h-auto w-full object-cover", aspect),
		PlaceholderClass: classList("flex w-full flex-col items-center justify-center gap-2 bg-[var(--color-surface-muted)] p-4 text-center text-sm text-[var(--color-muted)]", placeholderAspect),
		Caption:          strings.TrimSpace(props.Caption),
	}
	if Eager(props.Position) {
		view.Loading = "eager"
		view.FetchPriority = "high"
	} else {
		view.Loading = "lazy"
		view.Decoding = "async"
	}
	return view
}

func imageRenderer(ctx context.Context, buf *bytes.Buffer, props any, data ComponentData) error {
	p, ok := props.(ImageProps)
	if !ok {
		return fmt.Errorf("ui: image expects ImageProps, got %T", props)
	}
	if strings.TrimSpace(p.Alt) == "" {
		return fmt.Errorf("ui: image %q requires alt text", p.Src)
	}
	state := ResolveImageState(ctx, data.Images, p.Src)
	return renderPartial(buf, data, "ui.image", map[string]any{"image": newImageView(p, state)})
}
