// Package docfix repairs Word documents (DOCX) for rendering in constrained
// web-based viewers such as Word Online and Microsoft Teams. It rewrites a
// fixed set of structural and styling constructs inside the OOXML package:
// excessive paragraph spacing, runaway indentation, fonts that are missing
// online, floating images, borderless table cells, and legacy compatibility
// flags. Every other part of the package passes through byte-identical.
//
// Basic Usage:
//
//	input, err := os.ReadFile("report.docx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	output, err := docfix.ProcessDocument(input, docfix.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := os.WriteFile("report_teams.docx", output, 0o644); err != nil {
//	    log.Fatal(err)
//	}
//
// All fixes are idempotent: running the engine on its own output changes
// nothing. Elements a fixer cannot safely edit are skipped individually and
// reported on the Result; only a container that cannot be opened, or a
// targeted part whose XML cannot be parsed at all, fails the invocation.
package docfix

// Engine applies the document fixes. An Engine holds no per-document state
// and is safe for concurrent use across independent documents.
type Engine struct {
	config *Config
	logger *Logger
}

// New creates an engine with the global configuration.
func New() *Engine {
	return &Engine{
		config: GetGlobalConfig(),
		logger: GetLogger(),
	}
}

// NewWithConfig creates an engine with a custom configuration.
func NewWithConfig(config *Config) *Engine {
	return &Engine{
		config: config,
		logger: GetLogger(),
	}
}

// Result is the outcome of one successful invocation.
type Result struct {
	// Output is the rewritten package.
	Output []byte
	// Skipped lists elements the fixers left untouched, with reasons.
	Skipped []SkippedElement
}

// Process rewrites the document held in input according to opts. The input
// is never modified. On failure no output is produced; a partially patched
// package is never returned.
func (e *Engine) Process(input []byte, opts Options) (*Result, error) {
	pr, err := NewPackageReaderBytes(input)
	if err != nil {
		return nil, err
	}

	log := &patchLog{}
	output, err := rewriteArchive(pr, opts, log)
	if err != nil {
		return nil, err
	}

	for _, s := range log.skipped {
		e.logger.WithFields(Fields{"part": s.Part, "element": s.Element}).Warn("skipped element: %s", s.Reason)
	}

	return &Result{
		Output:  output,
		Skipped: log.skipped,
	}, nil
}

// ProcessDocument rewrites a document with the default engine.
func ProcessDocument(input []byte, opts Options) ([]byte, error) {
	result, err := New().Process(input, opts)
	if err != nil {
		return nil, err
	}
	return result.Output, nil
}
