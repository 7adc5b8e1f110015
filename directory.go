package kassabok

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// UnknownAccount is the designated fallback object account used when no match
// rule fires for an imported row's description.
const UnknownAccount = "Expenses:Unknown"

// ConfigError reports a configuration problem that makes inference impossible:
// a missing CSV heading mapping, an unmapped header, or an unconfigured bank
// account number. Fatal at load time.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string { return "config: " + e.Reason }

// MatchRule matches an imported row's description against one configured
// payee. The pattern is resolved once at configuration-load time, from the
// explicit /pattern/ when given, otherwise from the literal payee name.
type MatchRule struct {
	Name string // the payee name reported when the rule fires
	re   *regexp.Regexp
}

// Match reports whether the description satisfies the rule, ignoring case.
func (r MatchRule) Match(desc string) bool { return r.re.MatchString(desc) }

var matchParamRE = regexp.MustCompile(`^([^/\-!@]+)(?:/([^/]+)/)?\s*$`)

// parseMatchRule parses the parameters of a "match" declaration, of the form
// "<payee-name>[/<regex>/]".
func parseMatchRule(params string) (MatchRule, error) {
	m := matchParamRE.FindStringSubmatch(params)
	if m == nil || strings.TrimSpace(m[1]) == "" {
		return MatchRule{}, fmt.Errorf("no valid payee in match params %q", params)
	}
	name := strings.TrimSpace(m[1])
	pattern := m[2]
	if pattern == "" {
		pattern = regexp.QuoteMeta(strings.ToLower(name))
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return MatchRule{}, fmt.Errorf("invalid match pattern %q: %w", pattern, err)
	}
	return MatchRule{Name: name, re: re}, nil
}

// AccountData is the configuration attached to one account in main.ledger.
type AccountData struct {
	Name      string
	Icon      string // display glyph, not used by the core logic
	AccountNo string // external bank account number binding CSV rows to this account
	Rules     []MatchRule
}

// Directory is the configured set of accounts, in declaration order, plus the
// CSV heading mappings. It is loaded from the directory-wide main.ledger file.
type Directory struct {
	accounts []AccountData
	headings map[string]string
}

// Accounts returns the configured accounts in declaration order.
func (d *Directory) Accounts() []AccountData { return d.accounts }

// CsvHeadings returns the logical-field to csv-header mappings, or nil when
// no "; csv" line is configured.
func (d *Directory) CsvHeadings() map[string]string { return d.headings }

// Account looks a configured account up by name.
func (d *Directory) Account(name string) (AccountData, bool) {
	for _, a := range d.accounts {
		if a.Name == name {
			return a, true
		}
	}
	return AccountData{}, false
}

// ResolveDescription evaluates every account's match rules in declaration
// order and returns the first account whose rule fires, together with the
// firing rule's payee name. ok is false when nothing matches; the caller
// falls back to UnknownAccount.
func (d *Directory) ResolveDescription(desc string) (account, payee string, ok bool) {
	for _, a := range d.accounts {
		for _, rule := range a.Rules {
			if rule.Match(desc) {
				return a.Name, rule.Name, true
			}
		}
	}
	return "", "", false
}

// ResolveAccountNo returns the configured account bound to an external bank
// account number. Every bank account feeding CSV exports must be configured,
// so absence is a hard error.
func (d *Directory) ResolveAccountNo(no string) (string, error) {
	for _, a := range d.accounts {
		if a.AccountNo != "" && a.AccountNo == no {
			return a.Name, nil
		}
	}
	return "", &ConfigError{Reason: fmt.Sprintf("no account configured for account number %q", no)}
}

// DecodeDirectory parses the main.ledger configuration file. It recognizes
// per-account declaration blocks:
//
//	account Asset:Bank:Checking
//	; icon 🏦
//	; accountNo 1234-5678
//	; match ICA
//	; match Willys/willys|hemkop/
//
// and the global "; csv <field>:<header> ..." line mapping CSV columns. Only
// the comment lines immediately following an account line belong to it.
func DecodeDirectory(r io.Reader) (*Directory, error) {
	d := &Directory{}
	var current *AccountData

	flush := func() {
		if current != nil {
			d.accounts = append(d.accounts, *current)
			current = nil
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t")
		switch {
		case strings.HasPrefix(line, "account "):
			flush()
			current = &AccountData{Name: strings.TrimSpace(strings.TrimPrefix(line, "account "))}
		case strings.HasPrefix(line, "; "):
			key, params, _ := strings.Cut(strings.TrimPrefix(line, "; "), " ")
			if key == "csv" {
				headings, err := parseCsvHeadings(params)
				if err != nil {
					return nil, err
				}
				d.headings = headings
				continue
			}
			if current == nil {
				continue
			}
			switch key {
			case "icon":
				current.Icon = params
			case "accountNo":
				current.AccountNo = params
			case "match":
				rule, err := parseMatchRule(params)
				if err != nil {
					return nil, &ConfigError{Reason: fmt.Sprintf("account %s: %v", current.Name, err)}
				}
				current.Rules = append(current.Rules, rule)
			}
		default:
			// Anything else ends the current block: only params immediately
			// after an account line attach to it.
			flush()
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading configuration: %w", err)
	}
	flush()
	return d, nil
}

func parseCsvHeadings(params string) (map[string]string, error) {
	headings := make(map[string]string)
	for _, field := range strings.Fields(params) {
		key, header, found := strings.Cut(field, ":")
		if !found {
			return nil, &ConfigError{Reason: fmt.Sprintf("malformed csv mapping %q, want field:header", field)}
		}
		headings[key] = header
	}
	return headings, nil
}
