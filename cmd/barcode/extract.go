package main

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/zhouyiqi91/barcode"
	"golang.org/x/sync/errgroup"
)

const logEvery = 1000000

// Stats counts what happened to the read pairs of one run.
type Stats struct {
	Total     int `json:"total"`
	Corrected int `json:"corrected"`
	Rejected  int `json:"rejected"`
	Malformed int `json:"malformed"`
	Ambiguous int `json:"ambiguous"` // variants dropped from the indices
}

func (s *Stats) add(o Stats) {
	s.Total += o.Total
	s.Corrected += o.Corrected
	s.Rejected += o.Rejected
	s.Malformed += o.Malformed
}

func (s *Stats) write(filename string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filename, append(data, '\n'), 0644)
}

// readName is the identifier a corrected read is written out with.
func readName(res barcode.Result) string {
	return res.Barcode + "_" + res.UMI
}

// tagChunk corrects the barcode reads in r1 and renames their mates in r2.
// Only mates of corrected reads are returned.
func tagChunk(corrector *barcode.Corrector, r1, r2 []*fastx.Record) ([]*fastx.Record, Stats, error) {
	var stats Stats
	kept := make([]*fastx.Record, 0, len(r2))
	for i, record := range r1 {
		stats.Total++
		res, err := corrector.Correct(string(record.Seq.Seq))
		switch {
		case errors.Is(err, barcode.ErrOutOfBounds):
			stats.Malformed++
			continue
		case err != nil:
			return nil, stats, err
		case res.Rejected:
			stats.Rejected++
			continue
		}
		stats.Corrected++

		mate := r2[i]
		name := []byte(readName(res))
		mate.ID = name
		mate.Name = name
		kept = append(kept, mate)
	}
	return kept, stats, nil
}

func extract(config *Config, corrector *barcode.Corrector) (*Stats, error) {
	if err := os.MkdirAll(config.Outdir, 0755); err != nil {
		return nil, err
	}

	out, err := NewRecordWriter(config.outputName(), 128)
	if err != nil {
		return nil, err
	}

	reader, err := NewPairReader(config.Fq1, config.Fq2, chunkSize)
	if err != nil {
		out.Close()
		return nil, err
	}
	defer reader.Close()

	stats := &Stats{Ambiguous: countAmbiguous(corrector)}
	threads := max(config.Threads, 1)

	// Up to Threads chunks are corrected at once, then written in input order.
	eof := false
	for !eof {
		var batch [][2][]*fastx.Record
		for len(batch) < threads {
			r1, r2, err := reader.Next()
			if err == io.EOF {
				eof = true
				break
			}
			if err != nil {
				out.Close()
				return nil, err
			}
			batch = append(batch, [2][]*fastx.Record{r1, r2})
		}

		kept := make([][]*fastx.Record, len(batch))
		counts := make([]Stats, len(batch))
		var g errgroup.Group
		g.SetLimit(threads)
		for i, pair := range batch {
			i := i
			pair := pair
			g.Go(func() error {
				var e error
				kept[i], counts[i], e = tagChunk(corrector, pair[0], pair[1])
				return e
			})
		}
		if err := g.Wait(); err != nil {
			out.Close()
			return nil, err
		}

		before := stats.Total
		for i := range batch {
			for _, record := range kept[i] {
				out.Write(record)
			}
			stats.add(counts[i])
		}
		if stats.Total/logEvery != before/logEvery {
			log.Printf("processed %d read pairs", stats.Total)
		}
	}

	if err := out.Close(); err != nil {
		return nil, err
	}
	if err := stats.write(filepath.Join(config.Outdir, "stat.json")); err != nil {
		return nil, err
	}
	return stats, nil
}

func countAmbiguous(corrector *barcode.Corrector) int {
	n := 0
	seen := make(map[*barcode.Index]bool)
	for _, idx := range corrector.Indices() {
		if seen[idx] {
			continue
		}
		seen[idx] = true
		n += len(idx.Ambiguous())
	}
	return n
}
