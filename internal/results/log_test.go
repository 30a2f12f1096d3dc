package results

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
)

func TestTraceWriterRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl.zst")
	w, err := NewTraceWriter(path)
	if err != nil {
		t.Fatal(err)
	}

	want := []TrialTrace{
		{Worker: 1, Trial: 0, Seed: 2, Steps: 1, Vegetation: 0, Outcome: "died"},
		{Worker: 1, Trial: 1, Seed: 1, Steps: 57, Vegetation: 310, Outcome: "stabilized"},
		{Worker: 2, Trial: 0, Seed: 4, Steps: 200, Vegetation: 88, Outcome: "unsettled"},
	}
	for _, tr := range want {
		if err := w.Write(tr); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	dec, err := zstd.NewReader(f)
	if err != nil {
		t.Fatal(err)
	}
	defer dec.Close()

	var got []TrialTrace
	scanner := bufio.NewScanner(dec)
	for scanner.Scan() {
		var tr TrialTrace
		if err := json.Unmarshal(scanner.Bytes(), &tr); err != nil {
			t.Fatalf("bad trace line %q: %v", scanner.Text(), err)
		}
		got = append(got, tr)
	}
	if err := scanner.Err(); err != nil {
		t.Fatal(err)
	}

	if len(got) != len(want) {
		t.Fatalf("read %d traces, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("trace %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
