// Package filter wires the detection engine to the filesystem: spam phrases,
// regex patterns and classifier training samples live in plain text files and
// are reloaded on change.
package filter

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-multierror"

	"github.com/guardbot/tg-guard/lib/moderation"
)

//go:generate moq --out mocks/phrase_loader.go --pkg mocks --skip-ensure --with-resets . PhraseLoader
//go:generate moq --out mocks/sample_loader.go --pkg mocks --skip-ensure --with-resets . SampleLoader

// Files is a filter with the set of watched source files. Mandatory spam and
// ham samples feed the bayes classifier, optional phrase and pattern files
// feed the heuristic scorer.
type Files struct {
	params FilesConfig
	engine PhraseLoader
	bayes  SampleLoader
}

// FilesConfig is a full set of parameters for the file-backed filter
type FilesConfig struct {
	SpamSamplesFile    string
	HamSamplesFile     string
	ExcludedTokensFile string
	PhrasesFile        string
	PatternsFile       string

	WatchDelay time.Duration
}

// PhraseLoader updates the heuristic phrase and pattern lists
type PhraseLoader interface {
	LoadPhrases(readers ...io.Reader) (int, error)
	LoadPatterns(readers ...io.Reader) (int, error)
}

// SampleLoader retrains the classifier from samples
type SampleLoader interface {
	LoadSamples(exclReader io.Reader, spamReaders, hamReaders []io.Reader) (moderation.BayesLoadResult, error)
}

// NewFiles creates a file-backed filter, loads everything once and starts the
// change watcher in the background
func NewFiles(ctx context.Context, eng PhraseLoader, bayes SampleLoader, params FilesConfig) (*Files, error) {
	if params.WatchDelay == 0 {
		params.WatchDelay = 5 * time.Second
	}
	res := &Files{params: params, engine: eng, bayes: bayes}
	if err := res.ReloadAll(); err != nil {
		return nil, fmt.Errorf("initial load failed: %w", err)
	}
	go func() {
		if err := res.watch(ctx, params.WatchDelay); err != nil {
			log.Printf("[WARN] filter file watcher failed: %v", err)
		}
	}()
	return res, nil
}

// ReloadAll reloads samples, phrases and patterns from the files
func (f *Files) ReloadAll() (err error) {
	log.Printf("[DEBUG] reloading filter files")

	var exclReader, spamReader, hamReader, phrasesReader, patternsReader io.ReadCloser

	// spam and ham samples files are mandatory
	if spamReader, err = os.Open(f.params.SpamSamplesFile); err != nil {
		return fmt.Errorf("failed to open spam samples file %q: %w", f.params.SpamSamplesFile, err)
	}
	defer spamReader.Close()

	if hamReader, err = os.Open(f.params.HamSamplesFile); err != nil {
		return fmt.Errorf("failed to open ham samples file %q: %w", f.params.HamSamplesFile, err)
	}
	defer hamReader.Close()

	// excluded tokens are optional
	if exclReader, err = os.Open(f.params.ExcludedTokensFile); err != nil {
		exclReader = io.NopCloser(bytes.NewReader([]byte("")))
	}
	defer exclReader.Close()

	lr, err := f.bayes.LoadSamples(exclReader, []io.Reader{spamReader}, []io.Reader{hamReader})
	if err != nil {
		return fmt.Errorf("failed to reload samples: %w", err)
	}

	// phrase and pattern files are optional, missing files keep the defaults
	errs := new(multierror.Error)
	phrasesCount, patternsCount := -1, -1
	if phrasesReader, err = os.Open(f.params.PhrasesFile); err == nil {
		defer phrasesReader.Close()
		if phrasesCount, err = f.engine.LoadPhrases(phrasesReader); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to reload phrases: %w", err))
		}
	}
	if patternsReader, err = os.Open(f.params.PatternsFile); err == nil {
		defer patternsReader.Close()
		if patternsCount, err = f.engine.LoadPatterns(patternsReader); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("failed to reload patterns: %w", err))
		}
	}
	if err := errs.ErrorOrNil(); err != nil {
		return err
	}

	log.Printf("[INFO] loaded filter files - spam: %d, ham: %d, excluded tokens: %d, phrases: %d, patterns: %d",
		lr.SpamSamples, lr.HamSamples, lr.ExcludedTokens, phrasesCount, patternsCount)
	return nil
}

// watch watches for changes in filter files and reloads them.
// delay is a time to wait after the last change before reloading to avoid multiple reloads
func (f *Files) watch(ctx context.Context, delay time.Duration) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	done := make(chan bool)
	reloadTimer := time.NewTimer(delay)
	reloadPending := false

	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				log.Printf("[INFO] stopping watcher for filter files: %v", ctx.Err())
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				log.Printf("[DEBUG] file %q updated, op: %v", event.Name, event.Op)
				if !reloadPending {
					reloadPending = true
					reloadTimer.Reset(delay)
				}
			case <-reloadTimer.C:
				if reloadPending {
					reloadPending = false
					if err := f.ReloadAll(); err != nil {
						log.Printf("[WARN] %v", err)
					}
				}
			case e, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Printf("[WARN] watcher error: %v", e)
			}
		}
	}()

	errs := new(multierror.Error)
	addToWatcher := func(file string) error {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("failed to stat file %q: %w", file, err)
		}
		log.Printf("[DEBUG] add file %q to watcher", file)
		return watcher.Add(file)
	}
	errs = multierror.Append(errs, addToWatcher(f.params.SpamSamplesFile))
	errs = multierror.Append(errs, addToWatcher(f.params.HamSamplesFile))
	if err := errs.ErrorOrNil(); err != nil {
		return fmt.Errorf("failed to add some files to watcher: %w", err)
	}
	// optional files are watched best-effort
	for _, file := range []string{f.params.ExcludedTokensFile, f.params.PhrasesFile, f.params.PatternsFile} {
		if file == "" {
			continue
		}
		if err := addToWatcher(file); err != nil {
			log.Printf("[DEBUG] %v", err)
		}
	}
	<-done
	return nil
}
