package processor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/codewise/internal/batch"
	"codeberg.org/snonux/codewise/internal/classify"
	"codeberg.org/snonux/codewise/internal/content"
	"codeberg.org/snonux/codewise/internal/dataset"
	"codeberg.org/snonux/codewise/internal/logging"
	"codeberg.org/snonux/codewise/internal/search"
	"codeberg.org/snonux/codewise/internal/translation"
)

// DefaultRoot is the tree walked when no root is given.
const DefaultRoot = "LeetCode"

// LinkResolver looks up the canonical link of a problem key.
type LinkResolver interface {
	Resolve(ctx context.Context, key string) (string, bool)
}

// Options controls a traversal.
type Options struct {
	Root           string
	SourceLanguage string
	TargetLanguage string
	// Selection restricts processing to selected problems; nil means all.
	Selection *batch.Selection
	// FailFast stops the walk at the first failing directory. Records
	// collected so far are still returned.
	FailFast bool
}

// Components are the collaborators used by the processor. Nil members are
// replaced by inert defaults.
type Components struct {
	Classifier *classify.Classifier
	Reader     *content.Reader
	Translator translation.Translator
	Resolver   LinkResolver
	Logger     logging.Logger
	// Progress receives human readable progress lines.
	Progress io.Writer
}

// Stats summarizes a traversal.
type Stats struct {
	Categories  int
	Directories int
	Records     int
	Skipped     int
	Filtered    int
	Failed      int
}

// Processor handles the directory walk and record extraction
type Processor struct {
	opts       Options
	classifier *classify.Classifier
	reader     *content.Reader
	translator translation.Translator
	resolver   LinkResolver
	logger     logging.Logger
	out        io.Writer
}

var errRecovered = errors.New("recovered panic")

// NewProcessor creates a new processor
func NewProcessor(opts Options, c Components) *Processor {
	if opts.Root == "" {
		opts.Root = DefaultRoot
	}
	if opts.SourceLanguage == "" {
		opts.SourceLanguage = translation.DefaultSourceLanguage
	}
	if opts.TargetLanguage == "" {
		opts.TargetLanguage = translation.DefaultTargetLanguage
	}
	if c.Logger == nil {
		c.Logger = logging.Nop{}
	}
	if c.Classifier == nil {
		c.Classifier = classify.New(nil, classify.PolicyAll, c.Logger)
	}
	if c.Reader == nil {
		c.Reader = content.NewReader(nil, c.Logger)
	}
	if c.Translator == nil {
		c.Translator = translation.Passthrough{}
	}
	if c.Resolver == nil {
		c.Resolver = search.Disabled{}
	}
	if c.Progress == nil {
		c.Progress = io.Discard
	}

	return &Processor{
		opts:       opts,
		classifier: c.Classifier,
		reader:     c.Reader,
		translator: c.Translator,
		resolver:   c.Resolver,
		logger:     c.Logger,
		out:        c.Progress,
	}
}

// Extract walks root/<category>/<problem> and returns the collected dataset.
// It fails only when the root cannot be listed, when ctx is cancelled, or
// in fail-fast mode; in the latter two cases the partial dataset is
// returned alongside the error.
func (p *Processor) Extract(ctx context.Context) (*dataset.Dataset, Stats, error) {
	var stats Stats
	ds := dataset.New()

	categories, err := listDirs(p.opts.Root)
	if err != nil {
		p.logger.ErrorTrace("Error reading root directory", err, "root", p.opts.Root)
		return nil, stats, fmt.Errorf("failed to read root directory: %w", err)
	}
	p.logger.Info("Starting extraction", "root", p.opts.Root, "categories", len(categories))

	for _, category := range categories {
		stats.Categories++
		categoryDir := filepath.Join(p.opts.Root, category)

		problems, err := listDirs(categoryDir)
		if err != nil {
			p.logger.ErrorTrace("Error listing category directory", err, "dir", categoryDir)
			stats.Failed++
			if p.opts.FailFast {
				return ds, stats, fmt.Errorf("category %s: %w", category, err)
			}
			continue
		}

		for _, problem := range problems {
			if err := ctx.Err(); err != nil {
				p.logger.Warn("Extraction cancelled", "records", ds.Len())
				return ds, stats, err
			}

			if !p.opts.Selection.Includes(category, problem) {
				stats.Filtered++
				continue
			}
			stats.Directories++

			dir := filepath.Join(categoryDir, problem)
			fmt.Fprintf(p.out, "Processing %s/%s\n", category, problem)

			rec, ok, err := p.processDirectory(ctx, category, problem, dir)
			if err == nil && ok {
				err = ds.Append(rec)
			}
			if err != nil {
				if !errors.Is(err, errRecovered) {
					p.logger.ErrorTrace("Error processing directory", err, "dir", dir)
				}
				fmt.Fprintf(p.out, "  Error: %v\n", err)
				stats.Failed++
				if p.opts.FailFast {
					return ds, stats, fmt.Errorf("directory %s: %w", dir, err)
				}
				continue
			}
			if !ok {
				fmt.Fprintf(p.out, "  Skipping: no code or README found\n")
				stats.Skipped++
				continue
			}
			stats.Records++
		}
	}

	p.logger.Info("Extraction finished", "records", stats.Records, "failed", stats.Failed)
	return ds, stats, nil
}

// processDirectory builds the record of one problem directory. ok is false
// when the directory holds neither a code file nor a README.
func (p *Processor) processDirectory(ctx context.Context, tag, key, dir string) (rec dataset.ProblemRecord, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", errRecovered, r)
			p.logger.ErrorTrace("Panic while processing directory", err, "dir", dir)
			ok = false
		}
	}()

	names, err := listFiles(dir)
	if err != nil {
		return rec, false, err
	}

	res := p.classifier.Classify(dir, names)
	if res.Empty() {
		return rec, false, nil
	}

	rec = dataset.ProblemRecord{
		Tag:       tag,
		Key:       key,
		CodeFiles: make([]dataset.CodeFile, 0, len(res.CodeFiles)),
	}

	for _, path := range res.CodeFiles {
		rec.CodeFiles = append(rec.CodeFiles, p.reader.ReadCode(path))
	}

	if res.Readme != "" {
		rec.Readme = p.translateReadme(ctx, res.Readme)
	}

	if link, found := p.resolver.Resolve(ctx, key); found {
		rec.Link = &link
	}

	return rec, true, nil
}

func (p *Processor) translateReadme(ctx context.Context, path string) *string {
	text, ok := p.reader.ReadText(path)
	if !ok {
		return nil
	}

	translated, err := p.translator.Translate(ctx, text, p.opts.SourceLanguage, p.opts.TargetLanguage)
	if err != nil {
		p.logger.Error("Error translating README file", err, "path", path)
		return nil
	}
	return &translated
}

// PrintSummary writes the traversal statistics.
func PrintSummary(w io.Writer, stats Stats) {
	fmt.Fprintf(w, "\n=== Extraction Summary ===\n")
	fmt.Fprintf(w, "Categories: %d\n", stats.Categories)
	fmt.Fprintf(w, "Problem directories: %d\n", stats.Directories)
	fmt.Fprintf(w, "Records: %d\n", stats.Records)
	fmt.Fprintf(w, "Skipped (no files): %d\n", stats.Skipped)
	if stats.Filtered > 0 {
		fmt.Fprintf(w, "Filtered out: %d\n", stats.Filtered)
	}
	if stats.Failed > 0 {
		fmt.Fprintf(w, "Errors: %d\n", stats.Failed)
	}
	fmt.Fprintf(w, "==========================\n")
}

// Helper functions

// listDirs returns the visible subdirectories of dir in lexicographic order.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if isHidden(entry.Name()) {
			continue
		}
		if isDir(dir, entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

// listFiles returns the non-directory entries of dir in lexicographic order.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if !isDir(dir, entry) {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// isDir follows symlinks so linked problem directories are walked too.
func isDir(parent string, entry os.DirEntry) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(parent, entry.Name()))
	return err == nil && info.IsDir()
}
