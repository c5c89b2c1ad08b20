package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/sandevgo/finbot/internal/core"
	"github.com/sandevgo/finbot/internal/service/nlu"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "financials.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMultiCompany(t *testing.T) {
	path := writeCSV(t, `Year,Company,Total Revenue,Net Income
2020,Apple,274515,57411
2021,Apple,365817,94680
2021,Tesla,53823,5519
`)

	ds, err := Load(context.Background(), path, nlu.DefaultDictionary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !ds.MultiCompany() {
		t.Error("expected multi-company dataset")
	}
	if got := ds.Companies(); !reflect.DeepEqual(got, []string{"Apple", "Tesla"}) {
		t.Errorf("Companies() = %v", got)
	}
	if got := ds.Metrics(); !reflect.DeepEqual(got, []string{"profit", "revenue"}) {
		t.Errorf("Metrics() = %v", got)
	}

	v, ok := ds.Value("Apple", "revenue", 2020)
	if !ok || v != 274515 {
		t.Errorf("Value(Apple, revenue, 2020) = (%v, %v)", v, ok)
	}
	if _, ok := ds.Value("Tesla", "revenue", 2020); ok {
		t.Error("Tesla has no 2020 row, lookup should miss")
	}
}

func TestLoadSingleEntity(t *testing.T) {
	path := writeCSV(t, `year,revenue,profit
2020,100,20
2021,120,25
`)

	ds, err := Load(context.Background(), path, nlu.DefaultDictionary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ds.MultiCompany() {
		t.Error("expected single-entity dataset")
	}
	if len(ds.Companies()) != 0 {
		t.Errorf("Companies() = %v, want empty", ds.Companies())
	}
	// company argument is ignored in single-entity mode
	if v, ok := ds.Value("whatever", "profit", 2021); !ok || v != 25 {
		t.Errorf("Value(profit, 2021) = (%v, %v)", v, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "no year column",
			content: "Company,Total Revenue\nApple,274515\n",
		},
		{
			name:    "no recognized metric columns",
			content: "Year,Widgets\n2020,5\n",
		},
		{
			name:    "no data rows",
			content: "Year,Total Revenue\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			_, err := Load(context.Background(), path, nlu.DefaultDictionary())
			if !errors.Is(err, core.ErrDataLoad) {
				t.Errorf("expected ErrDataLoad, got %v", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), nlu.DefaultDictionary())
		if !errors.Is(err, core.ErrDataLoad) {
			t.Errorf("expected ErrDataLoad, got %v", err)
		}
	})
}

func TestLoadDegradesBadCells(t *testing.T) {
	path := writeCSV(t, `Year,Total Revenue,Net Income
2020,100,n/a
2021,120,25
`)

	ds, err := Load(context.Background(), path, nlu.DefaultDictionary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, ok := ds.Value("", "profit", 2020); ok {
		t.Error("unparsable cell should be unavailable, not zero")
	}
	if v, ok := ds.Value("", "revenue", 2020); !ok || v != 100 {
		t.Errorf("sibling cell in the same row must survive, got (%v, %v)", v, ok)
	}
}

func TestLoadIgnoresUnknownColumnsAndDuplicates(t *testing.T) {
	path := writeCSV(t, `Year,Total Revenue,Headcount
2020,100,12
2020,999,13
2021,120,14
`)

	ds, err := Load(context.Background(), path, nlu.DefaultDictionary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := ds.Metrics(); !reflect.DeepEqual(got, []string{"revenue"}) {
		t.Errorf("Metrics() = %v, want unknown column skipped", got)
	}
	if v, _ := ds.Value("", "revenue", 2020); v != 100 {
		t.Errorf("duplicate year row should keep the first value, got %v", v)
	}
}

func TestSeriesSortedAscending(t *testing.T) {
	path := writeCSV(t, `Year,Total Revenue
2022,120
2019,80
2021,
2020,100
`)

	ds, err := Load(context.Background(), path, nlu.DefaultDictionary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := ds.Series("", "revenue")
	expected := []core.Point{{Year: 2019, Value: 80}, {Year: 2020, Value: 100}, {Year: 2022, Value: 120}}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("Series() = %v, want %v (ascending, gap omitted)", got, expected)
	}
}

func TestYearRange(t *testing.T) {
	path := writeCSV(t, `Year,Total Revenue
2019,80
2022,120
`)

	ds, err := Load(context.Background(), path, nlu.DefaultDictionary())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	min, max, ok := ds.YearRange("")
	if !ok || min != 2019 || max != 2022 {
		t.Errorf("YearRange() = (%d, %d, %v)", min, max, ok)
	}
}
