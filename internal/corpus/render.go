package corpus

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"formguard/internal/models"
)

// RawDocument is one policy text file read back for indexing.
type RawDocument struct {
	FileName string
	FormType string
	Content  string
}

// Render produces the deterministic text form of a policy document: a header
// block, a REQUIREMENTS section and an ELIGIBILITY CRITERIA section, with
// list values as indented bullets.
func Render(p models.PolicyDocument) string {
	var b strings.Builder

	b.WriteString("BANK FORM POLICY DOCUMENT\n\n")
	fmt.Fprintf(&b, "Form Type: %s\n", p.FormType)
	fmt.Fprintf(&b, "Category: %s\n", p.Category)

	b.WriteString("\nREQUIREMENTS:\n")
	renderSection(&b, p.Requirements)

	b.WriteString("\nELIGIBILITY CRITERIA:\n")
	renderSection(&b, p.Eligibility)

	return b.String()
}

func renderSection(b *strings.Builder, entries []models.Requirement) {
	for _, e := range entries {
		title := titleCase(e.Name)
		switch {
		case e.Value.Items != nil:
			fmt.Fprintf(b, "\n%s:\n", title)
			for _, item := range e.Value.Items {
				fmt.Fprintf(b, "  - %s\n", item)
			}
		case e.Value.Number != nil:
			fmt.Fprintf(b, "\n%s: %s\n", title, strconv.FormatFloat(*e.Value.Number, 'f', -1, 64))
		default:
			fmt.Fprintf(b, "\n%s: %s\n", title, e.Value.Text)
		}
	}
}

func titleCase(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// FileName returns the on-disk name for the n-th policy document.
func FileName(n int, p models.PolicyDocument) string {
	safe := strings.NewReplacer(" ", "_", "/", "_").Replace(p.FormType)
	return fmt.Sprintf("policy_%d_%s.txt", n, safe)
}

// WriteDir renders every policy into its own text file under dir.
func WriteDir(dir string, policies []models.PolicyDocument) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create corpus dir: %w", err)
	}
	for i, p := range policies {
		path := filepath.Join(dir, FileName(i+1, p))
		if err := os.WriteFile(path, []byte(Render(p)), 0o644); err != nil {
			return fmt.Errorf("failed to write policy document %s: %w", path, err)
		}
	}
	return nil
}

// LoadDir reads back every policy text file under dir in name order.
func LoadDir(dir string) ([]RawDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	docs := make([]RawDocument, 0, len(names))
	for _, name := range names {
		content, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read policy document %s: %w", name, err)
		}
		docs = append(docs, RawDocument{
			FileName: name,
			FormType: formTypeFromFileName(name),
			Content:  string(content),
		})
	}
	return docs, nil
}

// formTypeFromFileName recovers "Home Loan Application" from
// "policy_12_Home_Loan_Application.txt".
func formTypeFromFileName(name string) string {
	base := strings.TrimSuffix(name, ".txt")
	base = strings.TrimPrefix(base, "policy_")
	if i := strings.Index(base, "_"); i >= 0 {
		if _, err := strconv.Atoi(base[:i]); err == nil {
			base = base[i+1:]
		}
	}
	return strings.ReplaceAll(base, "_", " ")
}
