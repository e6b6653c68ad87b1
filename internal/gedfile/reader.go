package gedfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gedcompare/internal/gedcom"
	"gedcompare/internal/logging"
)

// ErrNoIndividuals reports a file that parsed without any individual records.
var ErrNoIndividuals = errors.New("no individuals found")

// Options controls Read.
type Options struct {
	// Encoding forces a character set. Empty or "auto" detects it.
	Encoding string
	Logger   *slog.Logger
}

// Read loads path and parses it into a RecordSet labelled with the base
// filename.
func Read(path string, opts Options) (gedcom.RecordSet, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return gedcom.RecordSet{}, fmt.Errorf("read %s: %w", name, err)
	}
	return Load(name, data, opts)
}

// Load parses data that was already read, labelling it with name.
func Load(name string, data []byte, opts Options) (gedcom.RecordSet, error) {
	logger := logging.NewComponentLogger(opts.Logger, "gedfile").With(logging.String(logging.FieldSource, name))

	text, enc, err := decode(data, opts.Encoding)
	if err != nil {
		return gedcom.RecordSet{}, fmt.Errorf("%s: %w", name, err)
	}

	set := gedcom.Parse(text, name)
	if set.Len() == 0 {
		return gedcom.RecordSet{}, fmt.Errorf("%w in %s", ErrNoIndividuals, name)
	}

	logger.Debug("gedcom file parsed",
		logging.String("encoding", enc),
		logging.Int("individuals", set.Len()),
		logging.Int("malformed_lines", set.Stats.MalformedLines),
		logging.Int("duplicate_ids", set.Stats.DuplicateIDs),
	)
	if set.Stats.DuplicateIDs > 0 {
		logging.WarnWithContext(logger, "duplicate individual ids ignored", "gedcom_duplicate_ids",
			logging.Int("duplicate_ids", set.Stats.DuplicateIDs),
			logging.String(logging.FieldErrorHint, "only the first record for each id is compared"),
		)
	}
	return set, nil
}
