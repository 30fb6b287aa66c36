package mdview

// RenderOptions holds options for markdown rendering.
type RenderOptions struct {
	Config      *RenderConfig
	Highlighter Highlighter
	Sanitize    bool
}

// Option is a function that configures RenderOptions.
type Option func(*RenderOptions)

// WithConfig sets a custom RenderConfig.
func WithConfig(config *RenderConfig) Option {
	return func(opts *RenderOptions) {
		opts.Config = config
	}
}

// WithHighlighter replaces the code block highlighter.
func WithHighlighter(h Highlighter) Option {
	return func(opts *RenderOptions) {
		opts.Highlighter = h
	}
}

// WithSanitize sets whether the output goes through the HTML sanitizer.
func WithSanitize(enable bool) Option {
	return func(opts *RenderOptions) {
		opts.Sanitize = enable
	}
}

// defaultRenderOptions returns the default rendering options.
func defaultRenderOptions() *RenderOptions {
	return &RenderOptions{
		Config:      DefaultConfig(),
		Highlighter: DefaultHighlighter(),
		Sanitize:    true,
	}
}

// applyOptions applies the given options to the default options.
func applyOptions(opts ...Option) *RenderOptions {
	options := defaultRenderOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Config == nil {
		options.Config = DefaultConfig()
	}
	if options.Highlighter == nil {
		options.Highlighter = DefaultHighlighter()
	}
	return options
}
