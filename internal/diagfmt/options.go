package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	ShowPreview bool // строка исходника с ^ под позицией
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	Max              int  // обрезка вывода, не списка; 0: без ограничения
}
