package agent

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/etnz/capgrowth"
	"github.com/etnz/capgrowth/date"
	"google.golang.org/genai"
)

func workbench(t *testing.T) *Workbench {
	t.Helper()
	var records []capgrowth.Record
	v := 100.0
	for y := 2000; y <= 2010; y++ {
		records = append(records, capgrowth.Record{Date: date.New(y, 1, 1), Value: v})
		v *= 1.03
	}
	index, err := capgrowth.NewIndexSeries(capgrowth.Nominal, records)
	if err != nil {
		t.Fatal(err)
	}
	return &Workbench{
		Indexes:  map[capgrowth.IndexType]capgrowth.IndexSeries{capgrowth.Nominal: index},
		Currency: "MYR",
	}
}

func TestLibrary_Reconstruct(t *testing.T) {
	lib := NewLibrary([]Function{Reconstruct(workbench(t))})

	resp := lib(context.Background(), &genai.FunctionCall{
		ID:   "1",
		Name: "reconstruct",
		Args: map[string]any{"index": "nominal", "price": 300000.0, "purchased": "2004-05-01", "raw": true},
	})
	if resp.ID != "1" || resp.Name != "reconstruct" {
		t.Errorf("got response %q %q, want 1 reconstruct", resp.ID, resp.Name)
	}
	out, ok := resp.Response["output"].(string)
	if !ok {
		t.Fatalf("no output in %v", resp.Response)
	}
	for _, want := range []string{"**3.00%**", "RM300,000.00", "## Raw Data"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestLibrary_Errors(t *testing.T) {
	lib := NewLibrary([]Function{Reconstruct(workbench(t))})
	tests := []struct {
		name string
		call *genai.FunctionCall
		want string
	}{
		{"unknown function", &genai.FunctionCall{Name: "forecast"}, "unknown function forecast"},
		{"missing index", &genai.FunctionCall{Name: "reconstruct", Args: map[string]any{"price": 10.0, "purchased": "2004-01-01"}}, "real index is not loaded"},
		{"bad price", &genai.FunctionCall{Name: "reconstruct", Args: map[string]any{"index": "nominal", "price": "ten", "purchased": "2004-01-01"}}, "argument 'price'"},
		{"bad date", &genai.FunctionCall{Name: "reconstruct", Args: map[string]any{"index": "nominal", "price": 10.0, "purchased": "May 2004"}}, "argument 'purchased'"},
		{"out of range", &genai.FunctionCall{Name: "reconstruct", Args: map[string]any{"index": "nominal", "price": 10.0, "purchased": "1999-01-01"}}, "no nominal index record"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib(context.Background(), tc.call)
			got, _ := resp.Response["error"].(string)
			if !strings.Contains(got, tc.want) {
				t.Errorf("got error %q, want it to contain %q", got, tc.want)
			}
		})
	}
}

func TestExpert_Declaration(t *testing.T) {
	e := NewAnalyst(workbench(t))
	d := e.Declaration()
	if d.Name != "Analyst" || len(d.Parameters.Required) != 1 || d.Parameters.Required[0] != "question" {
		t.Errorf("unexpected declaration %+v", d)
	}
	resp := e.Call(context.Background(), "2", map[string]any{"question": 42})
	if _, ok := resp.Response["error"]; !ok {
		t.Errorf("Call() with an invalid question = %v, want an error", resp.Response)
	}
}

func TestAgent_Next(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader("how much?\nbye"))
	prompts := []string{"  hello  "}

	for _, want := range []string{"hello", "how much?", "bye"} {
		got, err := a.next(&prompts)
		if err != nil {
			t.Fatalf("next() failed: %v", err)
		}
		if got != want {
			t.Errorf("next() = %q, want %q", got, want)
		}
	}
	if _, err := a.next(&prompts); err != io.EOF {
		t.Errorf("next() at the end = %v, want io.EOF", err)
	}
	if !strings.Contains(out.String(), "hello") {
		t.Errorf("prompt was not echoed: %q", out.String())
	}
}
