package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/parzival/lr"
)

func TestTablesAsText(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "parzival.lr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("G") // S → a | b
	b.LHS("S").T("a").End()
	b.LHS("S").T("b").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatalf("grammar building failed: %v", err)
	}
	gen := lr.NewTableGenerator(g)
	if err := gen.CreateTables(); err != nil {
		t.Fatalf("table generation failed: %v", err)
	}
	var buf bytes.Buffer
	TablesAsText(gen, &buf)
	out := buf.String()
	for _, want := range []string{"ACTION table", "GOTO table", "$end", "$start", "<accept>"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected rendered tables to contain %q", want)
		}
	}
}
