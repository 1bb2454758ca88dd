package skel

// Option configures the foreground and background values used by the
// skeletonization passes and the binarizers.
//
// Example:
//
//	// Default: foreground 255, background 0
//	skel.Thin(p)
//
//	// Dark strokes on a light page
//	skel.Thin(p, skel.WithForeground(0))
type Option func(*options)

// options holds the resolved pixel values for one call.
type options struct {
	foreground    uint8
	background    uint8
	hasBackground bool
}

// defaultOptions returns foreground 255 with a derived background.
func defaultOptions() options {
	return options{foreground: 255}
}

// resolveOptions applies opts over the defaults. Unless WithBackground was
// given, the background is the complement of the foreground.
func resolveOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.hasBackground {
		o.background = 255 - o.foreground
	}
	return o
}

// WithForeground sets the value that marks a foreground pixel.
// The default is 255.
func WithForeground(v uint8) Option {
	return func(o *options) {
		o.foreground = v
	}
}

// WithBackground sets the value written to pixels removed from the
// foreground. Without it, 255 minus the foreground value is used.
func WithBackground(v uint8) Option {
	return func(o *options) {
		o.background = v
		o.hasBackground = true
	}
}
