package renderer

import (
	"embed"
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"text/template"
	"time"

	"github.com/etnz/statement"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed testdata/*.json
var testcasesFS embed.FS

//go:embed testdata/*.md
var testcasesGoldenFS embed.FS

var fixPartials = flag.Bool("fix-partials", false, "if true, update failing partial test case .md files with the received output")

func TestFixPartialsIsOff(t *testing.T) {
	if *fixPartials {
		t.Fatal("-fix-partials is enabled. This flag should only be used for updating test fixtures and must be disabled for regular tests.")
	}
}

// loadReport reads the report fixture.
func loadReport(t *testing.T) *Report {
	t.Helper()
	data, err := testcasesFS.ReadFile("testdata/report.json")
	if err != nil {
		t.Fatalf("failed to read report fixture: %v", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		t.Fatalf("failed to unmarshal report fixture: %v", err)
	}
	return &r
}

// parsePartials parses every template, each under its file name without extension.
func parsePartials(t *testing.T) *template.Template {
	t.Helper()
	files, err := fs.Glob(templates, "*.md")
	if err != nil {
		t.Fatalf("failed to list templates: %v", err)
	}
	root := template.New("").Funcs(funcs)
	for _, file := range files {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			t.Fatalf("failed to read template %q: %v", file, err)
		}
		if _, err := root.New(strings.TrimSuffix(file, ".md")).Parse(string(content)); err != nil {
			t.Fatalf("failed to parse template %q: %v", file, err)
		}
	}
	return root
}

// checkGolden compares got with a golden file, or rewrites it under -fix-partials.
func checkGolden(t *testing.T, goldenFile, got string) {
	t.Helper()
	want, err := testcasesGoldenFS.ReadFile(goldenFile)
	if err != nil {
		t.Fatalf("failed to read golden file %q: %v", goldenFile, err)
	}
	if got == string(want) {
		return
	}
	if *fixPartials {
		if err := os.WriteFile(filepath.FromSlash(goldenFile), []byte(got), 0644); err != nil {
			t.Fatalf("failed to update golden file %q: %v", goldenFile, err)
		}
		t.Logf("updated golden file %q", goldenFile)
		return
	}
	t.Errorf("output mismatch for %q:\n%s", goldenFile, createDiff(string(want), got))
}

func TestTemplatePartials(t *testing.T) {
	r := loadReport(t)
	testCases := []struct {
		name       string
		goldenFile string
		data       any
	}{
		{name: "report_title", goldenFile: "testdata/report_title.md", data: r},
		{name: "report_bank", goldenFile: "testdata/report_bank.md", data: r.Bank},
		{name: "report_investment", goldenFile: "testdata/report_investment.md", data: r.Investments[0]},
		{name: "report_activity", goldenFile: "testdata/report_activity.md", data: r.Bank.Transactions},
		{name: "report_securities", goldenFile: "testdata/report_securities.md", data: r.Securities},
	}

	// Every partial must be tested.
	tested := make(map[string]bool)
	for _, tc := range testCases {
		tested[tc.name+".md"] = true
	}
	files, _ := fs.Glob(templates, "report_*.md")
	for _, file := range files {
		if !tested[file] {
			t.Errorf("untested template partial found: %s. Please add a test case to TestTemplatePartials.", file)
		}
	}

	tmpl := parsePartials(t)
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var b strings.Builder
			if err := tmpl.ExecuteTemplate(&b, tc.name, tc.data); err != nil {
				t.Fatalf("failed to execute %q: %v", tc.name, err)
			}
			checkGolden(t, tc.goldenFile, b.String())
		})
	}
}

func TestRenderReport(t *testing.T) {
	r := loadReport(t)
	checkGolden(t, "testdata/report_assembly.md", RenderReport(r, RenderOptions{}))
}

func TestRenderReportSkipTransactions(t *testing.T) {
	got := RenderReport(loadReport(t), RenderOptions{SkipTransactions: true})
	if strings.Contains(got, "### Activity") {
		t.Errorf("RenderReport() with SkipTransactions contains an activity table:\n%s", got)
	}
	if !strings.Contains(got, "### Positions") {
		t.Errorf("RenderReport() with SkipTransactions lost the positions:\n%s", got)
	}
}

func TestRenderEmptyReport(t *testing.T) {
	got := RenderReport(&Report{}, RenderOptions{})
	if want := "# Statement\n"; got != want {
		t.Errorf("RenderReport(empty) = %q, want %q", got, want)
	}
}

// headings returns the text of the headings of a markdown document.
func headings(t *testing.T, md string) []string {
	t.Helper()
	source := []byte(md)
	root := goldmark.DefaultParser().Parse(text.NewReader(source))
	var titles []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var b strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				b.Write(line.Value(source))
			}
			titles = append(titles, fmt.Sprintf("%d %s", h.Level, b.String()))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return titles
}

func TestRenderStatement(t *testing.T) {
	data, err := os.ReadFile(filepath.Join("..", "testdata", "q1-2023.txt"))
	if err != nil {
		t.Fatalf("cannot read fixture: %v", err)
	}
	cfg := statement.DefaultConfig()
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	st, err := statement.Parse(lines, cfg)
	if err != nil {
		t.Fatalf("Parse() unexpected error: %v", err)
	}

	r := NewReport(st, cfg.Zone)
	if r.AsOf != "2023-03-31" || r.Layout != "2020" {
		t.Errorf("AsOf, Layout = %q, %q, want 2023-03-31, 2020", r.AsOf, r.Layout)
	}
	if r.Bank == nil {
		t.Fatal("NewReport() has no bank")
	}
	if r.Bank.Closing != "$150.00" || r.Bank.Deposits != "$45.00" || r.Bank.InterestPaid != "$5.00" {
		t.Errorf("Closing, Deposits, InterestPaid = %q, %q, %q, want $150.00, $45.00, $5.00", r.Bank.Closing, r.Bank.Deposits, r.Bank.InterestPaid)
	}
	wantBanks := []ProgramBank{
		{Bank: "Wells Fargo Bank", Balance: "$100.00", Percent: "66.67%"},
		{Bank: "Citibank", Balance: "$50.00", Percent: "33.33%"},
	}
	if !reflect.DeepEqual(r.Bank.ProgramBanks, wantBanks) {
		t.Errorf("ProgramBanks = %v, want %v", r.Bank.ProgramBanks, wantBanks)
	}
	wantBankTx := []Transaction{
		{Date: "2023-01-15", Type: "INT", Description: "Interest Payment", Amount: "$5.00"},
		{Date: "2023-02-01", Type: "CREDIT", Description: "Deposit from Checking", Amount: "$50.00"},
		{Date: "2023-03-03", Type: "DEBIT", Description: "Withdrawal to Checking", Amount: "-$5.00"},
	}
	if !reflect.DeepEqual(r.Bank.Transactions, wantBankTx) {
		t.Errorf("Bank.Transactions =\n%v\nwant\n%v", r.Bank.Transactions, wantBankTx)
	}

	if len(r.Investments) != 2 {
		t.Fatalf("Investments = %v, want 2", r.Investments)
	}
	gi := r.Investments[0]
	if gi.AvailableCash != "$1,050.00" {
		t.Errorf("AvailableCash = %q, want $1,050.00", gi.AvailableCash)
	}
	if got := gi.Transactions[2]; got.Type != "BUY" || got.Amount != "-$100.00" {
		t.Errorf("Transactions[2] = %v, want a BUY of -$100.00", got)
	}

	want := []string{
		"1 Statement as of 2023-03-31",
		"2 Cash Reserve (111-3480d9)",
		"3 Program Banks",
		"3 Activity",
		"2 General Investing (222-f84a65)",
		"3 Positions",
		"3 Activity",
		"2 Roth IRA (" + st.Investments[1].ID + ")",
		"3 Positions",
		"3 Activity",
		"2 Securities",
	}
	if got := headings(t, RenderReport(r, RenderOptions{})); !reflect.DeepEqual(got, want) {
		t.Errorf("headings =\n%v\nwant\n%v", got, want)
	}
}

func TestDescribe(t *testing.T) {
	var zero time.Time
	usd := func(v float64) statement.Money { return statement.M(v, "USD") }
	tests := []struct {
		tx   statement.Transaction
		want string
		flow string
	}{
		{statement.NewBuy("1", zero, "", "VTI", statement.Q(0.5), usd(200), usd(100)), "Bought 0.5 VTI at $200.00", "-$100.00"},
		{statement.NewSell("2", zero, "", "VEA", statement.Q(-2), usd(45), usd(-90)), "Sold 2 VEA at $45.00", "$90.00"},
		{statement.NewIncome("3", zero, "", "VTI", usd(1.5)), "Dividend from VTI", "$1.50"},
		{statement.NewCash(statement.TxFee, "4", zero, "Betterment", "Advisory Fee", usd(-0.25), statement.SubAccountCash), "Betterment", "-$0.25"},
		{statement.NewCash(statement.TxXfer, "5", zero, "", "Transfer", usd(-3), statement.SubAccountCash), "Transfer", "-$3.00"},
	}
	for _, test := range tests {
		t.Run(test.tx.ID(), func(t *testing.T) {
			if got := Describe(test.tx); got != test.want {
				t.Errorf("Describe() = %q, want %q", got, test.want)
			}
			if got := Flow(test.tx).String(); got != test.flow {
				t.Errorf("Flow() = %q, want %q", got, test.flow)
			}
		})
	}
}

func createDiff(want, got string) string {
	// A simple diff-like representation for clearer test failures.
	return fmt.Sprintf("-%s\n+%s", strings.ReplaceAll(want, "\n", "\n-"), strings.ReplaceAll(got, "\n", "\n+"))
}
