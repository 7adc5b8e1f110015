package kassabok

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Row is one bank-statement line from a CSV export.
type Row struct {
	ID        int // stable identity, persisted as a trailing ";#<id>" tag on the source line
	Date      Date
	Amount    decimal.Decimal
	Total     decimal.Decimal
	Desc      string
	AccountNo string // the external bank account the row belongs to
	Currency  string
}

var (
	entryIDRE = regexp.MustCompile(`;#(\d+)$`)
	cardBuyRE = regexp.MustCompile(`Kortköp [0-9]{6} `)
)

// EntryID extracts the identity tag from a CSV source line.
func EntryID(line string) (int, bool) {
	m := entryIDRE.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	id, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return id, true
}

// Sequence hands out CSV row identities. It is seeded with the highest tag
// already present across all known files, so every identity is assigned
// exactly once for all time.
type Sequence struct {
	last int
}

// NewSequence creates a sequence that will hand out ids above max.
func NewSequence(max int) *Sequence {
	if max < 1 {
		max = 1
	}
	return &Sequence{last: max}
}

// Next returns the next unused identity.
func (s *Sequence) Next() int {
	s.last++
	return s.last
}

// SeedMax scans a file's text for identity tags and returns the highest one
// found, at least 1.
func SeedMax(text string) int {
	max := 1
	for _, line := range strings.Split(text, "\n") {
		if id, ok := EntryID(line); ok && id > max {
			max = id
		}
	}
	return max
}

// TagLines appends an identity tag to every untagged data line of a CSV file
// and reports whether anything changed. The header line and blank lines are
// left alone. Tag assignment is a read-modify-write of the source file and
// must be serialized per file by the caller.
func TagLines(text string, seq *Sequence) (tagged string, changed bool) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i == 0 || strings.TrimSpace(line) == "" {
			continue
		}
		if _, ok := EntryID(line); !ok {
			lines[i] = line + ";#" + strconv.Itoa(seq.Next())
			changed = true
		}
	}
	return strings.Join(lines, "\n"), changed
}

// ParseRows parses a bank CSV export. The first line is a header naming the
// columns; headings maps the logical fields (date, amount, total, desc, name,
// from, to, currency) to the bank's literal header strings. A logical field
// with no mapping, or a mapping absent from the header, is a configuration
// error.
func ParseRows(text string, headings map[string]string) ([]Row, error) {
	lines := strings.Split(text, "\n")
	header := strings.Split(lines[0], ";")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	column := func(key string) (int, error) {
		mapped, ok := headings[key]
		if !ok || mapped == "" {
			return -1, &ConfigError{Reason: fmt.Sprintf("no csv heading mapping for %q", key)}
		}
		for i, h := range header {
			if h == mapped {
				return i, nil
			}
		}
		return -1, &ConfigError{Reason: fmt.Sprintf("mapping %q for %q not found in csv header %q", mapped, key, lines[0])}
	}

	data := lines[1:]
	sort.Strings(data)

	var rows []Row
	for index, line := range data {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := parseRow(line, column)
		if err != nil {
			if _, ok := err.(*ConfigError); ok {
				return nil, err
			}
			return nil, fmt.Errorf("failed to parse csv line %d %q: %w", index+1, line, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseRow(line string, column func(string) (int, error)) (Row, error) {
	columns := strings.Split(line, ";")
	get := func(key string) (string, error) {
		i, err := column(key)
		if err != nil {
			return "", err
		}
		if i >= len(columns) {
			return "", nil
		}
		return columns[i], nil
	}

	var row Row

	rawDate, err := get("date")
	if err != nil {
		return row, err
	}
	row.Date, err = ParseDate(strings.ReplaceAll(rawDate, "/", "-"))
	if err != nil {
		return row, err
	}

	rawAmount, err := get("amount")
	if err != nil {
		return row, err
	}
	row.Amount, err = decimal.NewFromString(normalizeDecimal(rawAmount))
	if err != nil {
		return row, err
	}

	rawTotal, err := get("total")
	if err != nil {
		return row, err
	}
	row.Total, err = decimal.NewFromString(normalizeDecimal(rawTotal))
	if err != nil {
		return row, err
	}

	desc, err := get("desc")
	if err != nil {
		return row, err
	}
	name, err := get("name")
	if err != nil {
		return row, err
	}
	row.Desc = cardBuyRE.ReplaceAllString(desc, "")
	if name != "" {
		row.Desc = name + " - " + row.Desc
	}

	from, err := get("from")
	if err != nil {
		return row, err
	}
	to, err := get("to")
	if err != nil {
		return row, err
	}
	row.AccountNo = from
	if row.AccountNo == "" {
		row.AccountNo = to
	}

	row.Currency, err = get("currency")
	if err != nil {
		return row, err
	}

	if id, ok := EntryID(line); ok {
		row.ID = id
	}
	return row, nil
}

// normalizeDecimal accepts the decimal comma used in bank exports.
func normalizeDecimal(s string) string {
	return strings.Replace(strings.TrimSpace(s), ",", ".", 1)
}
