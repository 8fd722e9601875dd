package main

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	rowcheck "github.com/rowcheck/rowcheck"
	"github.com/rowcheck/rowcheck/csvio"
	"github.com/rowcheck/rowcheck/metrics"
)

// Exit statuses are distinct so pipelines can branch on the outcome.
const (
	exitSuccess     = 0
	exitInvalidData = 1
	exitNoData      = 61
	exitIOError     = 74
	exitBadConfig   = 78
)

var flags struct {
	schemaPath  string
	delimiter   string
	hasHeader   bool
	fieldCount  int
	outGood     string
	outErr      string
	errMsg      bool
	logLevel    string
	metricsAddr string
}

var exitCode = exitSuccess

var rootCmd = &cobra.Command{
	Use:   "rowcheck [file]",
	Short: "Validate delimited records against a per-column schema",
	Long: `Rowcheck reads a delimited file (or stdin when the argument is "-" or
omitted), checks every record against a field-count contract and an optional
schema, and splits valid and invalid records onto separate outputs.

The schema document (YAML or JSON) holds a single "items" sequence with one
rule per column. Rules combine generic structural constraints (type,
minLength, maxLength, pattern, enum, required, blank) with the numeric
extension (numericKind, numericMinimum, numericMaximum) that the generic
engine cannot evaluate on text input.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	RunE:          runValidate,
}

// Execute runs the root command and returns the process exit status.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if exitCode == exitSuccess {
			exitCode = exitBadConfig
		}
	}
	return exitCode
}

func init() {
	rootCmd.Flags().StringVarP(&flags.schemaPath, "schema", "f", "", "schema file (YAML or JSON)")
	rootCmd.Flags().StringVarP(&flags.delimiter, "delimiter", "d", "", "field delimiter (sniffed from the input when omitted)")
	rootCmd.Flags().BoolVar(&flags.hasHeader, "has-header", false, "treat the first record as a header row")
	rootCmd.Flags().IntVar(&flags.fieldCount, "field-count", 0, "expected field count (adopted from the first record when omitted)")
	rootCmd.Flags().StringVarP(&flags.outGood, "outgood", "o", "-", "output for valid records ('-' = stdout)")
	rootCmd.Flags().StringVarP(&flags.outErr, "outerr", "e", "-", "output for invalid records ('-' = stderr)")
	rootCmd.Flags().BoolVar(&flags.errMsg, "err-msg", false, "append the diagnostic as a trailing column on invalid records")
	rootCmd.Flags().StringVar(&flags.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&flags.metricsAddr, "metrics-listen", "", "serve Prometheus metrics on this address while running")
}

func runValidate(cmd *cobra.Command, args []string) error {
	log := newLogger(flags.logLevel)

	var opts []rowcheck.RecordOption
	if flags.schemaPath != "" {
		schema, err := rowcheck.LoadSchema(flags.schemaPath)
		if err != nil {
			exitCode = exitBadConfig
			return err
		}
		opts = append(opts, rowcheck.WithSchema(schema))
	}
	if flags.fieldCount > 0 {
		opts = append(opts, rowcheck.WithFieldCount(flags.fieldCount))
	}

	in, closeIn, err := openInput(args)
	if err != nil {
		exitCode = exitIOError
		return err
	}
	defer closeIn()

	buf := bufio.NewReaderSize(in, 64*1024)
	dialect, err := resolveDialect(buf)
	if err != nil {
		exitCode = exitBadConfig
		return err
	}
	dialect.HasHeader = flags.hasHeader

	good, closeGood, err := openOutput(flags.outGood, os.Stdout)
	if err != nil {
		exitCode = exitIOError
		return err
	}
	defer closeGood()
	bad, closeBad, err := openOutput(flags.outErr, os.Stderr)
	if err != nil {
		exitCode = exitIOError
		return err
	}
	defer closeBad()

	var splitOpts []csvio.SplitterOption
	if flags.errMsg {
		splitOpts = append(splitOpts, csvio.WithDiagnosticColumn())
	}
	sink := csvio.NewSplitter(good, bad, dialect, splitOpts...)

	recorder := metrics.NewRecorder()
	if flags.metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", recorder.Handler())
		srv := &http.Server{Addr: flags.metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error().Err(err).Msg("metrics listener failed")
			}
		}()
		defer srv.Close()
	}

	runner := rowcheck.NewRunner(
		rowcheck.NewRecordValidator(opts...),
		sink,
		rowcheck.WithLogger(log),
		rowcheck.WithMetrics(recorder),
	)
	stats, err := runner.Run(cmd.Context(), csvio.NewReader(buf, dialect))
	if flushErr := sink.Flush(); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		exitCode = exitIOError
		return err
	}

	switch {
	case stats.Total == 0:
		exitCode = exitNoData
		log.Warn().Msg("no data: input held no records")
	case stats.Invalid > 0:
		exitCode = exitInvalidData
	default:
		exitCode = exitSuccess
	}
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().Timestamp().Logger()
}

func openInput(args []string) (io.Reader, func(), error) {
	if len(args) == 0 || args[0] == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, nil, fmt.Errorf("opening input: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string, def *os.File) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return def, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening output: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// resolveDialect uses the explicit delimiter flag when given, otherwise
// sniffs a sample from the buffered input without consuming it.
func resolveDialect(buf *bufio.Reader) (csvio.Dialect, error) {
	if flags.delimiter != "" {
		if flags.delimiter == `\t` {
			flags.delimiter = "\t"
		}
		r, size := utf8.DecodeRuneInString(flags.delimiter)
		if r == utf8.RuneError || size != len(flags.delimiter) {
			return csvio.Dialect{}, fmt.Errorf("delimiter must be a single character, got %q", flags.delimiter)
		}
		d := csvio.DefaultDialect()
		d.Delimiter = r
		return d, nil
	}
	sample, err := buf.Peek(64 * 1024)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return csvio.Dialect{}, fmt.Errorf("sampling input: %w", err)
	}
	return csvio.SniffDialect(sample), nil
}
