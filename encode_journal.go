package kassabok

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// GrammarError reports a malformed transaction in a ledger file, carrying the
// raw text of the offending block.
type GrammarError struct {
	Line   int    // line number of the block's header in the input
	Block  string // raw source text of the block
	Reason string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("line %d: %s\nSee:\n%s", e.Line, e.Reason, e.Block)
}

var (
	headerRE   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\S) (.*?)(?: ;(?: (.*))?)?$`)
	postingRE  = regexp.MustCompile(`^[ \t]+(.*?)(?:[ \t]{2,}(\S+) (\S+))?[ \t]*$`)
	idTagRE    = regexp.MustCompile(`#(\d+)`)
	dateLineRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)
)

// block is a header line and its following lines, before interpretation.
type block struct {
	line  int
	lines []string
}

func (b block) raw() string { return strings.Join(b.lines, "\n") }

func (b block) fail(reason string) *GrammarError {
	return &GrammarError{Line: b.line, Block: b.raw(), Reason: reason}
}

// DecodeJournal parses a plaintext monthly ledger file into its transactions.
//
// A transaction starts on a line beginning with a YYYY-MM-DD date; every
// following non-blank, non-comment line up to the next date line is a posting
// of that transaction. Raw postings are classified and canonically ordered by
// Standardize before being accepted. The Index of each returned transaction is
// its position in the file.
func DecodeJournal(r io.Reader) ([]Transaction, error) {
	var blocks []block
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t")
		if dateLineRE.MatchString(line) {
			blocks = append(blocks, block{line: lineNo, lines: []string{line}})
			continue
		}
		if len(blocks) == 0 {
			return nil, &GrammarError{Line: lineNo, Block: line, Reason: "ledger files cannot start with anything but a dated transaction header"}
		}
		last := &blocks[len(blocks)-1]
		last.lines = append(last.lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading journal: %w", err)
	}

	txs := make([]Transaction, 0, len(blocks))
	for i, b := range blocks {
		tx, err := decodeBlock(b)
		if err != nil {
			return nil, err
		}
		tx.Index = intp(i)
		txs = append(txs, tx)
	}
	return txs, nil
}

func decodeBlock(b block) (Transaction, error) {
	var tx Transaction

	m := headerRE.FindStringSubmatch(b.lines[0])
	if m == nil {
		return tx, b.fail("transaction header does not match the grammar")
	}
	date, err := ParseDate(m[1])
	if err != nil {
		return tx, b.fail(err.Error())
	}
	prefix, ok := ParsePrefix(m[2])
	if !ok {
		return tx, b.fail(fmt.Sprintf("unknown transaction marker %q, want *, ! or @", m[2]))
	}

	rawComment := m[4]
	var id *int
	if tag := idTagRE.FindStringSubmatch(rawComment); tag != nil {
		n, _ := strconv.Atoi(tag[1])
		id = &n
		rawComment = idTagRE.ReplaceAllString(rawComment, "")
	}
	comment := strings.TrimSpace(rawComment)

	var raw []Posting
	for _, line := range b.lines[1:] {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, ";") {
			continue
		}
		pm := postingRE.FindStringSubmatch(line)
		if pm == nil || pm[1] == "" {
			return tx, b.fail(fmt.Sprintf("posting line %q does not match the grammar", line))
		}
		p := Posting{Account: pm[1], Currency: pm[3]}
		if pm[2] != "" {
			value, err := decimal.NewFromString(pm[2])
			if err != nil {
				return tx, b.fail(fmt.Sprintf("invalid amount %q: %v", pm[2], err))
			}
			p.Amount = AmountOf(value)
		}
		raw = append(raw, p)
	}

	undefined := 0
	for _, p := range raw {
		if !p.Amount.Defined() {
			undefined++
		}
	}
	if undefined > 1 {
		return tx, b.fail("there can only be one posting without an amount per transaction")
	}

	currency := ""
	for _, p := range raw {
		if p.Currency == "" {
			continue
		}
		if currency == "" {
			currency = p.Currency
		} else if currency != p.Currency {
			return tx, b.fail("there can only be one currency per transaction")
		}
	}
	for i := range raw {
		raw[i].Currency = currency
	}

	postings, amount := Standardize(raw)

	return Transaction{
		Date:     date,
		Prefix:   prefix,
		Payee:    m[3],
		Comment:  comment,
		ID:       id,
		Postings: postings,
		Amount:   M(amount, currency),
	}, nil
}

// amountColumn is the column postings amounts are padded to.
const amountColumn = 50

// EncodeTransaction writes a transaction in its canonical plaintext form:
// header line, then one indented posting line per leg, objects before
// subjects, ties broken by ascending amount. The balancing leg's amount is
// omitted entirely.
func EncodeTransaction(w io.Writer, t Transaction) error {
	var sb strings.Builder

	sb.WriteString(t.Date.String())
	sb.WriteByte(' ')
	sb.WriteString(string(t.Prefix))
	sb.WriteByte(' ')
	sb.WriteString(t.Payee)
	if t.Comment != "" || t.ID != nil {
		sb.WriteString(" ;")
		if t.Comment != "" {
			sb.WriteByte(' ')
			sb.WriteString(t.Comment)
		}
		if t.ID != nil {
			sb.WriteString(" #")
			sb.WriteString(strconv.Itoa(*t.ID))
		}
	}
	sb.WriteByte('\n')

	for _, p := range serializationOrder(t.Postings) {
		sb.WriteString("    ")
		sb.WriteString(p.Account)
		if p.Amount.Defined() {
			pad := amountColumn - len(p.Account)
			if pad < 1 {
				pad = 1
			}
			sb.WriteString(strings.Repeat(" ", pad))
			sb.WriteString(signedFixed(p.Amount.Decimal()))
			sb.WriteByte(' ')
			sb.WriteString(p.Currency)
		}
		sb.WriteByte('\n')
	}

	_, err := io.WriteString(w, sb.String())
	return err
}

// EncodeJournal writes transactions separated by a blank line. The caller is
// responsible for ordering; SaveTransaction sorts by object account then date
// before rewriting a monthly file.
func EncodeJournal(w io.Writer, txs []Transaction) error {
	for i, t := range txs {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := EncodeTransaction(w, t); err != nil {
			return err
		}
	}
	return nil
}

// serializationOrder sorts by ascending amount then partitions objects first.
func serializationOrder(postings []Posting) []Posting {
	ordered := make([]Posting, len(postings))
	copy(ordered, postings)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Amount.Or(decimal.Zero).LessThan(ordered[j].Amount.Or(decimal.Zero))
	})
	result := make([]Posting, 0, len(ordered))
	for _, p := range ordered {
		if p.Role == Object {
			result = append(result, p)
		}
	}
	for _, p := range ordered {
		if p.Role == Subject {
			result = append(result, p)
		}
	}
	return result
}

// signedFixed renders a fixed two-decimal amount; positive values get a
// leading space so that digits line up with negative ones.
func signedFixed(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(2)
	}
	return " " + d.StringFixed(2)
}
