package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarmatov/shopadmin/internal/repo"
)

func TestLineTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  repo.ReportRow
		want string
	}{
		{name: "simple", row: repo.ReportRow{UnitPrice: 10, Quantity: 2}, want: "20.00"},
		{name: "cents", row: repo.ReportRow{UnitPrice: 19.99, Quantity: 3}, want: "59.97"},
		{name: "single", row: repo.ReportRow{UnitPrice: 0.1, Quantity: 3}, want: "0.30"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LineTotal(tt.row).StringFixed(2))
		})
	}
}

func TestGrandTotal_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0.00", GrandTotal(nil).StringFixed(2))
}

func TestGrandTotal_SumsLineTotalsToTheCent(t *testing.T) {
	t.Parallel()

	rows := []repo.ReportRow{
		{UnitPrice: 19.99, Quantity: 3},
		{UnitPrice: 0.1, Quantity: 7},
		{UnitPrice: 999.99, Quantity: 1},
	}

	// 59.97 + 0.70 + 999.99
	assert.Equal(t, "1060.66", GrandTotal(rows).StringFixed(2))
}

func TestBuild_EmptyOrderSet(t *testing.T) {
	t.Parallel()

	g := &Generator{}
	doc, err := g.Build(nil, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF-", string(doc[:5]))
}

func TestBuild_ManyRowsPaginates(t *testing.T) {
	t.Parallel()

	rows := make([]repo.ReportRow, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, repo.ReportRow{
			OrderID:     uint(i + 1),
			UserName:    "Alice",
			ProductName: "Laptop",
			UnitPrice:   999.99,
			Quantity:    2,
		})
	}

	g := &Generator{}
	doc, err := g.Build(rows, time.Now())
	require.NoError(t, err)
	require.NotEmpty(t, doc)
	assert.Equal(t, "%PDF-", string(doc[:5]))
}

func TestBuild_MissingFontFails(t *testing.T) {
	t.Parallel()

	g := &Generator{FontPath: "/nonexistent/font.ttf"}
	doc, err := g.Build(nil, time.Now())
	require.Error(t, err)
	assert.Nil(t, doc)
}
