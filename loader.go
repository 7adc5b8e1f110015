package kassabok

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ConfigFile is the directory-wide configuration file holding account
// declarations and CSV heading mappings.
const ConfigFile = "main.ledger"

// LoadDirectory parses <path>/main.ledger into the account directory.
func LoadDirectory(path string) (*Directory, error) {
	f, err := os.Open(filepath.Join(path, ConfigFile))
	if err != nil {
		return nil, fmt.Errorf("could not open configuration %q: %w", ConfigFile, err)
	}
	defer f.Close()

	dir, err := DecodeDirectory(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode configuration %q: %w", ConfigFile, err)
	}
	return dir, nil
}

// ReadTransactions parses every monthly ledger file under path (every
// *.ledger except main.ledger) and returns the merged list in chronological
// order. The files are the source of truth: each call re-reads them in full.
func ReadTransactions(path string) ([]Transaction, error) {
	paths, err := findFiles(path, ".ledger")
	if err != nil {
		return nil, err
	}

	var txs []Transaction
	for _, p := range paths {
		if filepath.Base(p) == ConfigFile {
			continue
		}
		f, err := os.Open(p)
		if err != nil {
			return nil, fmt.Errorf("could not open ledger file %q: %w", p, err)
		}
		fileTxs, err := DecodeJournal(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("could not decode ledger file %q: %w", p, err)
		}
		txs = append(txs, fileTxs...)
	}
	SortByDate(txs)
	return txs, nil
}

// IngestRows reads every CSV export under path. Untagged lines are first
// assigned identities from a sequence seeded with the highest tag across the
// whole file set, and each changed file is rewritten in place before parsing:
// identity assignment happens exactly once per physical row for all time.
// Tagging is a per-file read-modify-write and runs serialized.
func IngestRows(path string, dir *Directory) ([]Row, error) {
	paths, err := findFiles(path, ".csv")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	headings := dir.CsvHeadings()
	if headings == nil {
		return nil, &ConfigError{Reason: "no csv heading mappings configured in " + ConfigFile}
	}

	texts := make(map[string]string, len(paths))
	max := 1
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("could not read csv file %q: %w", p, err)
		}
		texts[p] = string(content)
		if m := SeedMax(texts[p]); m > max {
			max = m
		}
	}

	seq := NewSequence(max)
	var rows []Row
	for _, p := range paths {
		tagged, changed := TagLines(texts[p], seq)
		if changed {
			if err := os.WriteFile(p, []byte(tagged), 0644); err != nil {
				return nil, fmt.Errorf("could not write identity tags to %q: %w", p, err)
			}
		}
		fileRows, err := ParseRows(tagged, headings)
		if err != nil {
			return nil, fmt.Errorf("csv file %q: %w", p, err)
		}
		rows = append(rows, fileRows...)
	}
	return rows, nil
}

// MonthlyFile returns the ledger file owning transactions of the given date,
// <path>/<year>/<MM>.ledger.
func MonthlyFile(path string, d Date) string {
	return filepath.Join(path, fmt.Sprintf("%04d", d.Year()), fmt.Sprintf("%02d.ledger", int(d.Month())))
}

// SaveTransaction writes a transaction into its owning monthly file: the
// whole file is re-read, the entry at the transaction's Index replaced (or
// the transaction appended when it has none), the set re-sorted by object
// account then date, and the file rewritten whole. Concurrent writers to the
// same file race; a single interactive editor is assumed.
func SaveTransaction(path string, t Transaction) error {
	file := MonthlyFile(path, t.Date)

	var txs []Transaction
	if content, err := os.ReadFile(file); err == nil {
		txs, err = DecodeJournal(strings.NewReader(string(content)))
		if err != nil {
			return fmt.Errorf("could not decode ledger file %q: %w", file, err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("could not read ledger file %q: %w", file, err)
	}

	if t.Index != nil && *t.Index < len(txs) {
		txs[*t.Index] = t
	} else {
		txs = append(txs, t)
	}

	SortByObjectAccount(txs)
	SortByDate(txs)

	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", file, err)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("could not open ledger file %q for writing: %w", file, err)
	}
	defer f.Close()

	return EncodeJournal(f, txs)
}

// FormatLedgers rewrites every monthly file under path in canonical form and
// returns the files touched. Formatting is idempotent: a second run rewrites
// the same bytes.
func FormatLedgers(path string) ([]string, error) {
	paths, err := findFiles(path, ".ledger")
	if err != nil {
		return nil, err
	}

	var formatted []string
	for _, p := range paths {
		if filepath.Base(p) == ConfigFile {
			continue
		}
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("could not read ledger file %q: %w", p, err)
		}
		txs, err := DecodeJournal(strings.NewReader(string(content)))
		if err != nil {
			return nil, fmt.Errorf("could not decode ledger file %q: %w", p, err)
		}
		SortByObjectAccount(txs)
		SortByDate(txs)

		f, err := os.Create(p)
		if err != nil {
			return nil, fmt.Errorf("could not open ledger file %q for writing: %w", p, err)
		}
		if err := EncodeJournal(f, txs); err != nil {
			f.Close()
			return nil, fmt.Errorf("could not encode ledger file %q: %w", p, err)
		}
		if err := f.Close(); err != nil {
			return nil, err
		}
		formatted = append(formatted, p)
	}
	return formatted, nil
}

// ReadAggregations runs the whole pipeline for a data directory: declared
// transactions from the ledger files, inferred ones from the CSV exports,
// reconciled into one classified list. Everything is recomputed from scratch
// on every call, so the operation is idempotent and safe to re-run.
func ReadAggregations(path string) ([]Aggregation, error) {
	dir, err := LoadDirectory(path)
	if err != nil {
		return nil, err
	}
	declared, err := ReadTransactions(path)
	if err != nil {
		return nil, err
	}
	rows, err := IngestRows(path, dir)
	if err != nil {
		return nil, err
	}
	inferred, err := InferTransactions(rows, dir)
	if err != nil {
		return nil, err
	}
	return Reconcile(declared, inferred), nil
}

// ReadPayees lists every payee appearing in the declared transactions, in
// first-seen order.
func ReadPayees(path string) ([]string, error) {
	txs, err := ReadTransactions(path)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var payees []string
	for _, t := range txs {
		if _, ok := seen[t.Payee]; ok {
			continue
		}
		seen[t.Payee] = struct{}{}
		payees = append(payees, t.Payee)
	}
	return payees, nil
}

// findFiles collects files with the given extension under path, in lexical
// walk order for determinism.
func findFiles(path, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(p, ext) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
