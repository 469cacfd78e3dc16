package metabin

import (
	"bufio"
	"bytes"
	"path"
	"reflect"
	"strings"
	"testing"
)

func Test_exchange_roundTrip(t *testing.T) {
	b := newTestBin("contig1", 4200, []float64{5.5, 0, 12.25}, []float64{3, 1, 0, 4})
	b.AddRef("83333.1", "198214.1")
	b.IncrementMarker("PheS", 1)
	b.IncrementMarker("RpoB", 2)

	var buf bytes.Buffer
	if err := WriteExchange(&buf, b); err != nil {
		t.Fatalf("WriteExchange() error = %v", err)
	}

	got, err := ReadExchange(bufio.NewScanner(&buf))
	if err != nil {
		t.Fatalf("ReadExchange() error = %v", err)
	}

	if !reflect.DeepEqual(got, b) {
		t.Errorf("round trip = %+v, want %+v", got, b)
	}
}

func Test_exchange_emptyLines(t *testing.T) {
	// a bin with no refs and no markers writes empty fourth and fifth lines
	b := newTestBin("contig1", 100, []float64{1}, []float64{1})

	var buf bytes.Buffer
	if err := WriteExchange(&buf, b); err != nil {
		t.Fatalf("WriteExchange() error = %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 5 {
		t.Fatalf("WriteExchange() wrote %d lines, want 5", n)
	}

	got, err := ReadExchange(bufio.NewScanner(&buf))
	if err != nil {
		t.Fatalf("ReadExchange() error = %v", err)
	}
	if len(got.RefGenomes) != 0 || len(got.MarkerGenes) != 0 {
		t.Errorf("round trip added refs %v or markers %v", got.RefGenomes, got.MarkerGenes)
	}
}

func Test_ReadExchange_malformed(t *testing.T) {
	type args struct {
		record string
	}
	tests := []struct {
		name string
		args args
	}{
		{
			"truncated record",
			args{"contig1\t100\n1\t2\n"},
		},
		{
			"missing length",
			args{"contig1\n1\n1\n\n\n"},
		},
		{
			"bad coverage float",
			args{"contig1\t100\nnot-a-float\n1\n\n\n"},
		},
		{
			"bad marker field",
			args{"contig1\t100\n1\n1\n\nPheS\n"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := bufio.NewScanner(strings.NewReader(tt.args.record))
			if _, err := ReadExchange(sc); err == nil {
				t.Error("ReadExchange() of a malformed record should error")
			}
		})
	}
}

func Test_exchangeFile_multiRecord(t *testing.T) {
	dir := t.TempDir()
	out := path.Join(dir, "bins.tsv")

	b1 := newTestBin("contig1", 100, []float64{1, 2}, []float64{1, 0})
	b2 := newTestBin("contig2", 200, []float64{3, 4}, []float64{0, 1})
	b2.AddRef("83333.1")

	if err := WriteExchangeFile(out, []*Bin{b1, b2}); err != nil {
		t.Fatalf("WriteExchangeFile() error = %v", err)
	}

	got, err := ReadExchangeFile(out)
	if err != nil {
		t.Fatalf("ReadExchangeFile() error = %v", err)
	}
	if len(got) != 2 || got[0].ID() != "contig1" || got[1].ID() != "contig2" {
		t.Errorf("ReadExchangeFile() = %d bins %v", len(got), got)
	}
	if !reflect.DeepEqual(got[1].RefGenomes, []string{"83333.1"}) {
		t.Errorf("refs = %v, want [83333.1]", got[1].RefGenomes)
	}
}

func Test_binsJSON_roundTrip(t *testing.T) {
	dir := t.TempDir()
	out := path.Join(dir, "bins.json")

	b1 := newTestBin("contig1", 1000, []float64{5, 5}, []float64{1, 1, 1, 1})
	b1.AddRef("83333.1")
	b1.IncrementMarker("PheS", 1)
	b2 := newTestBin("contig2", 2000, []float64{7, 7}, []float64{2, 0, 0, 2})
	if err := b1.Merge(b2); err != nil {
		t.Fatal(err)
	}

	if _, err := WriteBinsJSON(out, []*Bin{b1}); err != nil {
		t.Fatalf("WriteBinsJSON() error = %v", err)
	}

	got, err := ReadBinsJSON(out)
	if err != nil {
		t.Fatalf("ReadBinsJSON() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReadBinsJSON() = %d bins, want 1", len(got))
	}
	if !reflect.DeepEqual(got[0], b1) {
		t.Errorf("round trip = %+v, want %+v", got[0], b1)
	}
}
