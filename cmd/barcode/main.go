package main

import (
	"flag"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"

	"github.com/zhouyiqi91/barcode"
)

func main() {

	var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	var memprofile = flag.String("memprofile", "", "write memory profile to `file`")
	var configFile = flag.String("configfile", "", "read configuration from `file`")

	var flags Config
	flag.StringVar(&flags.Fq1, "fq1", "", "barcode read `file`, may be gzipped")
	flag.StringVar(&flags.Fq2, "fq2", "", "cDNA read `file`, may be gzipped")
	flag.StringVar(&flags.Pattern, "pattern", "", "layout of fq1, e.g. C8L16C8L16C8L1U12T18")
	flag.StringVar(&flags.Whitelist, "whitelist", "", "barcode whitelist `file`, one per line")
	flag.IntVar(&flags.Mismatch, "mismatch", 1, "allow this many mismatches per barcode segment")
	flag.IntVar(&flags.Threads, "threads", 1, "correct this many chunks at once")
	flag.StringVar(&flags.Outdir, "outdir", ".", "write output to `dir`")
	flag.BoolVar(&flags.Gzip, "gzip", false, "gzip the output fastq")

	flag.Parse()
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	config := defaultConfig()
	if *configFile != "" {
		var err error
		config, err = readConfigFile(*configFile)
		if err != nil {
			log.Fatal("Could not read config file: ", err)
		}
	}
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	config.merge(&flags, set)
	if err := config.validate(); err != nil {
		log.Fatal(err)
	}

	if err := os.MkdirAll(config.Outdir, 0755); err != nil {
		log.Fatal(err)
	}
	logFile, err := os.Create(filepath.Join(config.Outdir, "barcode.log"))
	if err != nil {
		log.Fatal("could not create log file: ", err)
	}
	defer logFile.Close()
	log.SetOutput(io.MultiWriter(os.Stderr, logFile))

	pattern, err := barcode.Compile(config.Pattern)
	if err != nil {
		log.Fatal(err)
	}

	log.Println("Reading whitelist")
	whitelist, err := barcode.ReadWhitelist(config.Whitelist)
	if err != nil {
		log.Fatal("Could not read whitelist: ", err)
	}

	log.Printf("Building %d-mismatch index for %d barcodes", config.Mismatch, len(whitelist))
	corrector, err := barcode.NewCorrector(pattern, whitelist, config.Mismatch)
	if err != nil {
		log.Fatal(err)
	}
	if n := countAmbiguous(corrector); n > 0 {
		log.Printf("%d sequences are equally close to several barcodes and will be rejected", n)
	}

	log.Println("Starting extraction")
	stats, err := extract(config, corrector)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("done: %d read pairs, %d corrected, %d rejected, %d malformed",
		stats.Total, stats.Corrected, stats.Rejected, stats.Malformed)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			log.Fatal("could not create memory profile: ", err)
		}
		defer f.Close() // error handling omitted for example
		runtime.GC()    // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}

}
