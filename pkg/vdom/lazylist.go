package vdom

import "strconv"

// LazyListOptions configures LazyList. Zero values select the defaults.
type LazyListOptions struct {
	ItemHeight      int // row height in px (default 50)
	ContainerHeight int // viewport height in px (default 400)
	Buffer          int // extra rows on each side (default 5, negative for none)
	ScrollTop       int // current scroll offset in px
}

func (o LazyListOptions) withDefaults() LazyListOptions {
	if o.ItemHeight <= 0 {
		o.ItemHeight = 50
	}
	if o.ContainerHeight <= 0 {
		o.ContainerHeight = 400
	}
	if o.Buffer < 0 {
		o.Buffer = 0
	} else if o.Buffer == 0 {
		o.Buffer = 5
	}
	if o.ScrollTop < 0 {
		o.ScrollTop = 0
	}
	return o
}

// VisibleRange returns the half-open index range [start, end) of rows that
// LazyList renders for count items.
func VisibleRange(count int, opts LazyListOptions) (start, end int) {
	return visibleRange(count, opts.withDefaults())
}

func visibleRange(count int, opts LazyListOptions) (start, end int) {
	visible := (opts.ContainerHeight + opts.ItemHeight - 1) / opts.ItemHeight

	start = opts.ScrollTop/opts.ItemHeight - opts.Buffer
	if start < 0 {
		start = 0
	}
	end = start + visible + opts.Buffer*2
	if end > count {
		end = count
	}
	if start > end {
		start = end
	}
	return start, end
}

// LazyList renders only the rows of a long list that fall inside the
// viewport, plus a buffer on each side. The outer element scrolls; an inner
// spacer carries the full height so the scrollbar stays proportional.
//
// Rendering is best-effort: the window is computed from opts.ScrollTop at
// build time, so callers re-render on scroll to move it.
func LazyList(count int, opts LazyListOptions, render func(index int) Node) *Element {
	opts = opts.withDefaults()
	start, end := visibleRange(count, opts)

	rows := make([]Node, 0, end-start)
	for i := start; i < end; i++ {
		if n := render(i); !isNil(n) {
			rows = append(rows, n)
		}
	}

	return Div(Attrs{
		AttrClass: "dot-lazy-list",
		AttrStyle: Style{
			"height":   px(opts.ContainerHeight),
			"overflow": "auto",
			"position": "relative",
		},
	},
		Div(Attrs{AttrStyle: Style{
			"height":   px(count * opts.ItemHeight),
			"position": "relative",
		}},
			Div(Attrs{AttrStyle: Style{
				"position": "absolute",
				"top":      px(start * opts.ItemHeight),
				"left":     "0",
				"right":    "0",
			}}, rows),
		),
	)
}

func px(n int) string { return strconv.Itoa(n) + "px" }
