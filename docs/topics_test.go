package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/olindh/kassabok"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestTopics(t *testing.T) {
	// This test ensures that the documentation is in sync with the code.
	// It checks two things:
	// 1. Every topic listed in readme.md can be successfully loaded by the kbk topic <topic_name> command.
	// 2. Every .md file in the docs directory (excluding readme.md itself) is present in the list of topics extracted from readme.md.

	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)

	for scanner.Scan() {
		line := scanner.Text()
		matches := topicRegex.FindStringSubmatch(line)
		if len(matches) > 1 {
			topic := strings.TrimSpace(matches[1])
			topicsInReadme = append(topicsInReadme, topic)
		}
	}

	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			_, err := GetTopic(topic)
			if err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatalf("failed to glob *.md: %v", err)
	}

	var mdFiles []string
	for _, file := range files {
		base := filepath.Base(file)
		if base != "readme.md" {
			mdFiles = append(mdFiles, strings.TrimSuffix(base, ".md"))
		}
	}

	for _, mdFile := range mdFiles {
		found := false
		for _, topic := range topicsInReadme {
			if topic == mdFile {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("topic %q is not listed in readme.md", mdFile)
		}
	}
}

// TestLedgerBlocks verifies that every ```ledger fenced block in the
// documentation parses as a valid journal.
func TestLedgerBlocks(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			for _, block := range ledgerBlocks(t, file) {
				txs, err := kassabok.DecodeJournal(strings.NewReader(block.Content))
				if err != nil {
					t.Errorf("%s:%d: block does not parse: %v", block.File, block.Line, err)
					continue
				}
				if len(txs) == 0 {
					t.Errorf("%s:%d: block parses to no transactions", block.File, block.Line)
				}
			}
		})
	}
}

// Block represents a fenced code block in the markdown file.
type Block struct {
	Content string
	File    string
	Line    int
}

// ledgerBlocks parses a markdown file and returns its ledger blocks.
func ledgerBlocks(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}

	mdParser := goldmark.DefaultParser()
	root := mdParser.Parse(text.NewReader(content))

	var blocks []*Block

	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		if fcb, ok := n.(*ast.FencedCodeBlock); ok {
			if fcb.Info == nil {
				return ast.WalkContinue, nil
			}
			lang := string(fcb.Info.Segment.Value(content))
			if lang != "ledger" {
				return ast.WalkContinue, nil
			}

			var blockContent strings.Builder
			for i := 0; i < fcb.Lines().Len(); i++ {
				line := fcb.Lines().At(i)
				blockContent.WriteString(string(line.Value(content)))
			}

			blocks = append(blocks, &Block{
				Content: blockContent.String(),
				File:    file,
				Line:    lineNumber(content, fcb.Info.Segment.Start),
			})
		}
		return ast.WalkContinue, nil
	})

	return blocks
}

// lineNumber computes the line number for a given AST offset.
// the markdown parser we use does not support that feature so we
// have to implement it.
func lineNumber(source []byte, offset int) (lineNumber int) {
	newline := []byte{'\n'}
	sourceToNode := source[:offset]
	lineCount := bytes.Count(sourceToNode, newline)
	return lineCount + 1
}
