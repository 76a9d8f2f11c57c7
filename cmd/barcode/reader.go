package main

import (
	"fmt"
	"io"

	"github.com/shenwei356/bio/seqio/fastx"
)

const bufSize = 10

var chunkSize = 1000

// PairReader reads two FASTQ files in lockstep. Both files are chunked with
// the same size, so the n-th chunks hold the same read pairs.
type PairReader struct {
	fq1, fq2 *fastx.Reader
	ch1, ch2 chan fastx.RecordChunk
	chunk    uint64
}

// NewPairReader opens both files, plain or gzipped.
func NewPairReader(file1, file2 string, size int) (*PairReader, error) {
	fq1, err := fastx.NewDefaultReader(file1)
	if err != nil {
		return nil, err
	}
	fq2, err := fastx.NewDefaultReader(file2)
	if err != nil {
		fq1.Close()
		return nil, err
	}

	return &PairReader{
		fq1: fq1,
		fq2: fq2,
		ch1: fq1.ChunkChan(bufSize, size),
		ch2: fq2.ChunkChan(bufSize, size),
	}, nil
}

// Next returns the next chunk of pairs, or io.EOF once both files are done.
func (r *PairReader) Next() (r1, r2 []*fastx.Record, err error) {
	c1, ok1 := <-r.ch1
	c2, ok2 := <-r.ch2
	if !ok1 && !ok2 {
		return nil, nil, io.EOF
	}
	if ok1 && c1.Err != nil && c1.Err != io.EOF {
		return nil, nil, fmt.Errorf("fq1: %v", c1.Err)
	}
	if ok2 && c2.Err != nil && c2.Err != io.EOF {
		return nil, nil, fmt.Errorf("fq2: %v", c2.Err)
	}
	if len(c1.Data) != len(c2.Data) {
		return nil, nil, fmt.Errorf("fq1 and fq2 differ in read count after chunk %d (%d vs %d reads)",
			r.chunk, len(c1.Data), len(c2.Data))
	}
	r.chunk++
	return c1.Data, c2.Data, nil
}

// Close releases both files. Chunks not yet read are drained first so the
// producer goroutines started by ChunkChan can finish.
func (r *PairReader) Close() {
	go drain(r.ch1, r.fq1)
	go drain(r.ch2, r.fq2)
}

func drain(ch chan fastx.RecordChunk, fq *fastx.Reader) {
	for range ch {
	}
	fq.Close()
}
