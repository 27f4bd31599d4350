package insee

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
)

func TestParseSeries(t *testing.T) {
	csvData := `"Libellé";"Indice des prix des logements anciens - Province : agglomérations de moins de 10 000 habitants et zones rurales - Appartements - Base 100 en moyenne annuelle 2015 - Série CVS";"Codes"
"idBank";"010567069";""
"Dernière mise à jour";"28/08/2025 08:45";""
"Période";"";""
"2025-T4";"";""
"2025-T3";"";""
"2025-T2";"135.2";"P"
"2025-T1";"135.6";"A"
"2024-T4";"133.4";"A"
`

	reader := strings.NewReader(csvData)
	series, err := parseSeries(reader)
	if err != nil {
		t.Fatalf("parseSeries() failed: %v", err)
	}

	expectedLibelle := "Indice des prix des logements anciens - Province : agglomérations de moins de 10 000 habitants et zones rurales - Appartements - Base 100 en moyenne annuelle 2015 - Série CVS"
	if series.Libelle != expectedLibelle {
		t.Errorf("got Libelle %q, want %q", series.Libelle, expectedLibelle)
	}

	expectedIDBank := "010567069"
	if series.IDBank != expectedIDBank {
		t.Errorf("got IDBank %q, want %q", series.IDBank, expectedIDBank)
	}

	expectedLastUpdate := time.Date(2025, 8, 28, 8, 45, 0, 0, time.UTC)
	if !series.LastUpdate.Equal(expectedLastUpdate) {
		t.Errorf("got LastUpdate %v, want %v", series.LastUpdate, expectedLastUpdate)
	}

	if len(series.Values) != 3 {
		t.Errorf("got %d values, want 3", len(series.Values))
	}

	dateT2_2025 := date.New(2025, 6, 30)
	if val, ok := series.Values[dateT2_2025]; !ok || val != 135.2 {
		t.Errorf("for date %v, got %f, want 135.2", dateT2_2025, val)
	}

	dateT4_2024 := date.New(2024, 12, 31)
	if val, ok := series.Values[dateT4_2024]; !ok || val != 133.4 {
		t.Errorf("for date %v, got %f, want 133.4", dateT4_2024, val)
	}
}

func TestParseSeries_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		csvData string
		wantErr string
	}{
		{
			name: "bad last update date",
			csvData: `"Libellé";"..."
"idBank";"..."
"Dernière mise à jour";"not-a-date"
"Période";""
`,
			wantErr: "failed to parse last update date",
		},
		{
			name: "bad quarterly date",
			csvData: `"Libellé";"..."
"idBank";"..."
"Dernière mise à jour";"28/08/2025 08:45"
"Période";""
"2025-T5";"135.2"`,
			wantErr: "invalid quarter in quarterly date",
		},
		{
			name: "bad value",
			csvData: `"Libellé";"..."
"idBank";"..."
"Dernière mise à jour";"28/08/2025 08:45"
"Période";""
"2025-T2";"not-a-float"`,
			wantErr: "failed to parse value",
		},
		{
			name: "not enough records",
			csvData: `"Libellé";"..."
"idBank";"..."`,
			wantErr: "not enough records in csv",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			reader := strings.NewReader(tc.csvData)
			_, err := parseSeries(reader)
			if err == nil {
				t.Fatalf("parseSeries() expected an error, but got none")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("parseSeries() error = %q, want to contain %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseInseeDate(t *testing.T) {
	testCases := []struct {
		in   string
		want date.Date
	}{
		{"2025-T1", date.New(2025, 3, 31)},
		{"2024-T4", date.New(2024, 12, 31)},
		{"2024-02", date.New(2024, 2, 29)},
		{"2025-12", date.New(2025, 12, 31)},
	}
	for _, tc := range testCases {
		got, err := parseInseeDate(tc.in)
		if err != nil {
			t.Fatalf("parseInseeDate(%q) failed: %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("parseInseeDate(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{"2025", "2025-13", "2025-T0", "abcd-01"} {
		if _, err := parseInseeDate(in); err == nil {
			t.Errorf("parseInseeDate(%q) should fail", in)
		}
	}
}

func TestFetch(t *testing.T) {
	csvData := `"Libellé";"Indice des prix des logements anciens - France métropolitaine - Ensemble - Base 100 en moyenne annuelle 2015 - Série CVS"
"idBank";"010567059"
"Dernière mise à jour";"28/08/2025 08:45"
"Période";""
"2025-T2";"127.1"
"2025-T1";"126.3"
"2024-T4";"126.9"
`
	var archive bytes.Buffer
	zw := zip.NewWriter(&archive)
	w, err := zw.Create("valeurs_trimestrielles.csv")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte(csvData))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	var gotPath, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath, gotQuery = r.URL.Path, r.URL.RawQuery
		w.Write(archive.Bytes())
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL, HTTP: srv.Client()}
	s, err := c.Fetch(context.Background(), capgrowth.Nominal, "010567059", date.Range{From: date.New(2024, 10, 1), To: date.New(2025, 6, 30)})
	if err != nil {
		t.Fatalf("Fetch() failed: %v", err)
	}
	if gotPath != "/010567059/csv" {
		t.Errorf("got path %q", gotPath)
	}
	for _, want := range []string{"periodeDebut=4", "anneeDebut=2024", "periodeFin=2", "anneeFin=2025"} {
		if !strings.Contains(gotQuery, want) {
			t.Errorf("query %q does not contain %q", gotQuery, want)
		}
	}
	want := []capgrowth.Record{
		{Date: date.New(2024, 12, 31), Value: 126.9},
		{Date: date.New(2025, 3, 31), Value: 126.3},
		{Date: date.New(2025, 6, 30), Value: 127.1},
	}
	got := s.Records()
	if len(got) != len(want) {
		t.Fatalf("Fetch() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record %d = %v, want %v", i, got[i], want[i])
		}
	}
}
