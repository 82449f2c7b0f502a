package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/date"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// document is a parsed markdown output: its headings and the cells of its
// tables, header rows included.
type document struct {
	headings []string
	tables   [][][]string
}

func parse(t *testing.T, md string) document {
	t.Helper()
	source := []byte(md)
	root := goldmark.New(goldmark.WithExtensions(extension.Table)).Parser().Parse(text.NewReader(source))

	var doc document
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, plain(n, source))
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			var rows [][]string
			for row := n.FirstChild(); row != nil; row = row.NextSibling() {
				var cells []string
				for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
					cells = append(cells, plain(cell, source))
				}
				rows = append(rows, cells)
			}
			doc.tables = append(doc.tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return doc
}

// plain concatenates the text segments below n.
func plain(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			b.Write(t.Segment.Value(source))
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func TestRenderReport(t *testing.T) {
	r := &Report{
		Title:          "Elm",
		TotalUnits:     12,
		Occupied:       9,
		OpenComplaints: 2,
		RentableArea:   12500,
		Months: []Month{
			{Name: "2024-05", RentPerArea: 1.5, Vacancy: 0.25, Revenue: 14235.5},
			{Name: "2024-06", RentPerArea: 1.62, Vacancy: 0, Revenue: 0},
		},
	}
	doc := parse(t, RenderReport(r))

	if want := []string{"Elm", "Monthly Trend"}; strings.Join(doc.headings, "|") != strings.Join(want, "|") {
		t.Errorf("headings = %q, want %q", doc.headings, want)
	}
	if len(doc.tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(doc.tables))
	}
	if got, want := doc.tables[0][1], []string{"12", "9", "12,500 sqft", "2"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("summary row = %q, want %q", got, want)
	}
	trend := doc.tables[1]
	if len(trend) != 3 {
		t.Fatalf("trend has %d rows, want 3", len(trend))
	}
	if got, want := trend[1], []string{"2024-05", "1.50", "25.0%", "14,235.50"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("trend row = %q, want %q", got, want)
	}
}

func TestRenderReport_FromDomain(t *testing.T) {
	b := rentroll.NewBuilding("Elm")
	u, err := b.AddUnit(1, "101", 50)
	if err != nil {
		t.Fatal(err)
	}
	l, err := rentroll.NewLease(u, date.New(2024, time.January, 1), date.New(2024, time.December, 31), 1000)
	if err != nil {
		t.Fatal(err)
	}
	u.AddLease(l)

	r := NewReport(rentroll.NewBuildingReport(b, date.New(2024, time.June, 15), 3))
	doc := parse(t, RenderReport(r))
	trend := doc.tables[1]
	if len(trend) != 4 {
		t.Fatalf("trend has %d rows, want 4", len(trend))
	}
	if got, want := trend[3], []string{"2024-06", "20.00", "0.0%", "0.00"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("trend row = %q, want %q", got, want)
	}
}

func newResident(t *testing.T) (*rentroll.Resident, *rentroll.Lease) {
	t.Helper()
	reg := rentroll.NewRegistry("USD", rentroll.DefaultTerms, nil)
	b, _ := reg.AddBuilding("Elm")
	u, err := b.AddUnit(1, "101", 50)
	if err != nil {
		t.Fatal(err)
	}
	res := rentroll.NewResident("jdoe", "Jane Doe", "USD")
	l, err := reg.SignLease(u, res, date.New(2024, time.January, 15), date.New(2024, time.March, 14), 1500)
	if err != nil {
		t.Fatal(err)
	}
	c := res.Charges()[0]
	if _, err := reg.Pay(c, c.Balance(), "4111111111111111", date.New(2024, time.January, 20), ""); err != nil {
		t.Fatal(err)
	}
	return res, l
}

func TestRenderStatement(t *testing.T) {
	res, _ := newResident(t)
	md := RenderStatement(NewStatement(res, date.New(2024, time.February, 10)))
	doc := parse(t, md)

	if want := "Statement for Jane Doe (jdoe)"; doc.headings[0] != want {
		t.Errorf("title = %q, want %q", doc.headings[0], want)
	}
	if !strings.Contains(md, "**$1,503.99** (late)") {
		t.Errorf("statement does not show the late balance:\n%s", md)
	}
	if len(doc.tables) != 2 {
		t.Fatalf("got %d tables, want 2", len(doc.tables))
	}
	charges := doc.tables[0]
	if len(charges) != 3 {
		t.Fatalf("charges table has %d rows, want 3 (March is not posted)", len(charges))
	}
	if got, want := charges[1], []string{"2024-01-15", "2024-01-22", "January Charge", "$826.57", "$0.00", "paid"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("charge row = %q, want %q", got, want)
	}
	if got := charges[2][5]; got != "overdue" {
		t.Errorf("February status = %q, want overdue", got)
	}
	if got, want := doc.tables[1][1], []string{"2024-01-20", "100101", "January Charge", "$826.57", "************1111"}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("payment row = %q, want %q", got, want)
	}
}

func TestRenderStatement_Empty(t *testing.T) {
	res := rentroll.NewResident("bob", "Bob", "USD")
	md := RenderStatement(NewStatement(res, date.New(2024, time.February, 10)))
	doc := parse(t, md)
	if len(doc.tables) != 0 {
		t.Errorf("got %d tables, want none", len(doc.tables))
	}
	if !strings.Contains(md, "No charges posted.") {
		t.Errorf("statement does not say no charges:\n%s", md)
	}
	for _, h := range doc.headings {
		if h == "Payments" {
			t.Errorf("statement has a payments section without payments")
		}
	}
}

func TestRenderLease(t *testing.T) {
	_, l := newResident(t)
	doc := parse(t, RenderLease(NewLease(l)))

	if want := "Lease Elm/101"; doc.headings[0] != want {
		t.Errorf("title = %q, want %q", doc.headings[0], want)
	}
	rows := doc.tables[0]
	// header + 3 monthly charges with 2 items each
	if len(rows) != 10 {
		t.Fatalf("schedule has %d rows, want 10", len(rows))
	}
	if got, want := rows[2], []string{"", "", "", "Rent (17/31 days)", "$822.58", ""}; strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("item row = %q, want %q", got, want)
	}
	if got := rows[7][0]; got != "March Charge" {
		t.Errorf("third charge = %q, want March Charge", got)
	}
}
