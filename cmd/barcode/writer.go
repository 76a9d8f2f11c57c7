package main

import (
	"github.com/shenwei356/bio/seqio/fastx"
	"github.com/shenwei356/xopen"
)

const lineWidth = 100000

// RecordWriter writes records in an async fashion
// Call Close() when you're done!
type RecordWriter struct {
	writer  *xopen.Writer
	cache   []*fastx.Record
	records chan []*fastx.Record
	errors  chan error
	count   int
}

func (w *RecordWriter) Write(record *fastx.Record) {
	w.cache = append(w.cache, record)
	w.count++
	if cap(w.cache) == len(w.cache) {
		w.Flush()
	}
}

// Close flushes what is left and reports the error from closing the file.
func (w *RecordWriter) Close() error {
	w.Flush()

	close(w.records)
	return <-w.errors
}

func (w *RecordWriter) Flush() {
	if len(w.cache) == 0 {
		return
	}
	w.records <- w.cache
	// The writer goroutine still owns the old slice.
	w.cache = make([]*fastx.Record, 0, cap(w.cache))
}

// Count returns the number of records passed to Write.
func (w *RecordWriter) Count() int { return w.count }

// NewRecordWriter creates a nice new writer
// cachesize: How many records to buffer at a time
func NewRecordWriter(filename string, cachesize int) (*RecordWriter, error) {

	writer, err := xopen.Wopen(filename)
	if err != nil {
		return nil, err
	}

	w := RecordWriter{
		cache:   make([]*fastx.Record, 0, cachesize),
		records: make(chan []*fastx.Record), // unbuffered
		errors:  make(chan error, 1),
		writer:  writer,
	}

	go func(w *RecordWriter) {
		writer := w.writer
		for records := range w.records {
			for _, record := range records {
				record.FormatToWriter(writer, lineWidth)
			}
		}
		w.errors <- writer.Close()
		close(w.errors)
	}(&w)
	return &w, nil
}
