package metabin

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = log.New(os.Stderr, "", 0)

// The exchange record is the compact tab-delimited form a single-contig bin
// travels in between the engine and the external aligner driver. Five lines
// per bin:
//
//	contig id <TAB> length
//	coverage coordinates
//	tetra coordinates
//	reference genome ids (line may be empty)
//	marker ids as id=count (line may be empty)

// WriteExchange writes one bin as a five-line exchange record.
func WriteExchange(w io.Writer, b *Bin) error {
	lines := []string{
		fmt.Sprintf("%s\t%d", b.ID(), b.Length),
		joinFloats(b.Coverage),
		joinFloats(b.Tetra),
		strings.Join(b.RefGenomes, "\t"),
		joinMarkers(b.MarkerGenes),
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// ReadExchange parses the next five-line exchange record from the scanner.
// Returns io.EOF when the input is exhausted before a record starts; a record
// cut off partway through is malformed.
func ReadExchange(sc *bufio.Scanner) (*Bin, error) {
	lines := make([]string, 0, 5)
	for len(lines) < 5 && sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, io.EOF
	}
	if len(lines) < 5 {
		return nil, errors.Errorf("truncated exchange record: got %d of 5 lines", len(lines))
	}

	idLength := strings.Split(lines[0], "\t")
	if len(idLength) != 2 || strings.TrimSpace(idLength[0]) == "" {
		return nil, errors.Errorf("malformed exchange id line %q", lines[0])
	}
	length, err := strconv.Atoi(idLength[1])
	if err != nil {
		return nil, errors.Wrapf(err, "malformed exchange length in %q", lines[0])
	}

	b := NewBin(idLength[0])
	b.Length = length

	if b.Coverage, err = splitFloats(lines[1]); err != nil {
		return nil, errors.Wrap(err, "malformed exchange coverage line")
	}
	if b.Tetra, err = splitFloats(lines[2]); err != nil {
		return nil, errors.Wrap(err, "malformed exchange tetra line")
	}
	b.TetraMagnitude = magnitude(b.Tetra)

	if lines[3] != "" {
		if err = b.AddRef(strings.Split(lines[3], "\t")...); err != nil {
			return nil, errors.Wrap(err, "malformed exchange ref genome line")
		}
	}

	if lines[4] != "" {
		for _, field := range strings.Split(lines[4], "\t") {
			idCount := strings.SplitN(field, "=", 2)
			if len(idCount) != 2 {
				return nil, errors.Errorf("malformed exchange marker field %q", field)
			}
			count, err := strconv.Atoi(idCount[1])
			if err != nil {
				return nil, errors.Wrapf(err, "malformed exchange marker count in %q", field)
			}
			b.IncrementMarker(idCount[0], count)
		}
	}

	return b, nil
}

// ReadExchangeFile reads every exchange record in a file.
func ReadExchangeFile(path string) ([]*Bin, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open exchange file %s", path)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024) // tetra lines are long

	var bins []*Bin
	for {
		b, err := ReadExchange(sc)
		if err == io.EOF {
			return bins, nil
		}
		if err != nil {
			return nil, errors.Wrapf(err, "corrupt exchange file %s", path)
		}
		bins = append(bins, b)
	}
}

// WriteExchangeFile writes bins to a file as consecutive exchange records.
func WriteExchangeFile(path string, bins []*Bin) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create exchange file %s", path)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, b := range bins {
		if err := WriteExchange(w, b); err != nil {
			return errors.Wrapf(err, "failed writing exchange record %s", b.ID())
		}
	}
	return w.Flush()
}

// BinsFile is the richer structured form for multi-contig bins.
type BinsFile struct {
	// Time the file was written, ex: "2018-01-01 20:41:00"
	Time string `json:"time"`

	// Bins in the collection
	Bins []*Bin `json:"bins"`
}

// WriteBinsJSON writes bins to filename as JSON.
func WriteBinsJSON(filename string, bins []*Bin) ([]byte, error) {
	t := time.Now()
	stamp := fmt.Sprintf(
		"%d/%02d/%02d %02d:%02d:%02d",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(),
	)

	output, err := json.MarshalIndent(BinsFile{Time: stamp, Bins: bins}, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize bins")
	}

	if err = ioutil.WriteFile(filename, output, 0666); err != nil {
		return nil, errors.Wrapf(err, "failed to write bins to %s", filename)
	}
	return output, nil
}

// ReadBinsJSON reads a bins JSON file back into Bin objects.
func ReadBinsJSON(filename string) ([]*Bin, error) {
	contents, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read bins file %s", filename)
	}

	var bf BinsFile
	if err = json.Unmarshal(contents, &bf); err != nil {
		return nil, errors.Wrapf(err, "corrupt bins file %s", filename)
	}

	for _, b := range bf.Bins {
		if b.MarkerGenes == nil {
			b.MarkerGenes = make(map[string]int)
		}
		if b.RefGenomes == nil {
			b.RefGenomes = []string{}
		}
	}
	return bf.Bins, nil
}

// SortBins orders bins by id for deterministic output.
func SortBins(bins []*Bin) {
	sort.Slice(bins, func(i, j int) bool {
		return bins[i].ID() < bins[j].ID()
	})
}

func joinFloats(v []float64) string {
	fields := make([]string, len(v))
	for i, x := range v {
		fields[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}
	return strings.Join(fields, "\t")
}

func splitFloats(line string) ([]float64, error) {
	if line == "" {
		return []float64{}, nil
	}

	fields := strings.Split(line, "\t")
	v := make([]float64, len(fields))
	for i, field := range fields {
		x, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "bad float %q", field)
		}
		v[i] = x
	}
	return v, nil
}

func joinMarkers(markers map[string]int) string {
	ids := make([]string, 0, len(markers))
	for id := range markers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fields := make([]string, len(ids))
	for i, id := range ids {
		fields[i] = fmt.Sprintf("%s=%d", id, markers[id])
	}
	return strings.Join(fields, "\t")
}
