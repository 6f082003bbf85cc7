// Command quizctl plays, audits, imports and exports quiz question sets.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/alash-quiz/backend/internal/audit"
	"github.com/alash-quiz/backend/internal/domain/quizsession"
	"github.com/alash-quiz/backend/internal/domain/selection"
	"github.com/alash-quiz/backend/internal/player"
	"github.com/alash-quiz/backend/internal/source"
	"github.com/alash-quiz/backend/internal/store"
)

const usage = `Usage: quizctl <command> [flags]

Commands:
  play    answer a quiz in the terminal
  audit   report malformed questions and answers that match no option
  import  copy question sets into a database
  export  write question sets out as JSON files

Run "quizctl <command> -h" for the flags of a command.
`

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var err error
	switch os.Args[1] {
	case "play":
		err = runPlay(ctx, os.Args[2:], logger)
	case "audit":
		err = runAudit(ctx, os.Args[2:])
	case "import":
		err = runImport(ctx, os.Args[2:])
	case "export":
		err = runExport(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// sourceFlags selects where questions come from.
type sourceFlags struct {
	dir    string
	url    string
	driver string
	dsn    string
}

func (f *sourceFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.dir, "dir", envOr("QUESTIONS_DIR", "./data"), "Directory holding questions.json and topics.json")
	fs.StringVar(&f.url, "url", os.Getenv("QUESTIONS_URL"), "Base URL to fetch question files from (overrides -dir)")
	fs.StringVar(&f.driver, "driver", "", "Read from a database instead: sqlite or postgres")
	fs.StringVar(&f.dsn, "dsn", os.Getenv("DB_DSN"), "Database DSN (used with -driver)")
}

func (f *sourceFlags) open(ctx context.Context) (source.Source, func(), error) {
	switch {
	case f.driver != "":
		db, err := store.Open(ctx, store.Driver(f.driver), f.dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("open database: %w", err)
		}
		return db, func() { db.Close() }, nil
	case f.url != "":
		src, err := source.NewHTTPSource(f.url)
		if err != nil {
			return nil, nil, err
		}
		return src, func() {}, nil
	default:
		return source.NewFileSource(f.dir), func() {}, nil
	}
}

func runPlay(ctx context.Context, args []string, logger *slog.Logger) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	var src sourceFlags
	src.register(fs)
	mode := fs.String("mode", "flat", "Question selection: flat, topics or test")
	topics := fs.String("topics", "", "Comma-separated topics (with -mode topics)")
	testID := fs.String("test", "", "Test ID (with -mode test)")
	locale := fs.String("locale", envOr("LOCALE", "en"), "Interface language: en or mn")
	requireAnswer := fs.Bool("require-answer", false, "Refuse to move on until the question is answered")
	retries := fs.Int("retries", 3, "How many times to offer a retry when loading fails")
	fs.Parse(args)

	sel, err := strategy(*mode, *topics, *testID)
	if err != nil {
		return err
	}

	questions, closeSrc, err := src.open(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	p := player.New(os.Stdin, os.Stdout, player.Options{
		Locale:  *locale,
		Config:  quizsession.Config{RequireAnswer: *requireAnswer},
		Retries: *retries,
	}, logger)

	_, err = p.Play(ctx, questions, sel)
	if errors.Is(err, selection.ErrEmptyFilterResult) {
		return nil
	}
	return err
}

func strategy(mode, topics, testID string) (selection.Strategy, error) {
	kind, err := selection.ParseKind(mode)
	if err != nil {
		return selection.Strategy{}, err
	}

	var sel selection.Strategy
	switch kind {
	case selection.KindTopicFiltered:
		var names []string
		for _, t := range strings.Split(topics, ",") {
			if t = strings.TrimSpace(t); t != "" {
				names = append(names, t)
			}
		}
		sel = selection.ByTopics(names...)
	case selection.KindTopicTestNested:
		sel = selection.ByTest(testID)
	default:
		sel = selection.Flat()
	}
	return sel, sel.Validate()
}

func runAudit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("audit", flag.ExitOnError)
	var src sourceFlags
	src.register(fs)
	workers := fs.Int("workers", 4, "Number of question sets loaded in parallel")
	fs.Parse(args)

	questions, closeSrc, err := src.open(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	report, err := audit.Run(ctx, questions, *workers)
	if err != nil {
		return err
	}

	printReport(os.Stdout, report)

	if !report.Clean() {
		return fmt.Errorf("%d mismatched questions, %d malformed questions, %d sets failed to load",
			report.Mismatches(), report.InvalidQuestions(), report.Failures())
	}
	return nil
}

func printReport(w io.Writer, report audit.Report) {
	for _, set := range report.Sets {
		switch {
		case set.Err != nil:
			fmt.Fprintf(w, "%-20s FAILED  %v\n", set.Set, set.Err)
		case len(set.Mismatches) == 0 && len(set.Invalid) == 0:
			fmt.Fprintf(w, "%-20s ok      %d questions\n", set.Set, set.Questions)
		default:
			fmt.Fprintf(w, "%-20s %d of %d questions need attention\n",
				set.Set, len(set.Mismatches)+len(set.Invalid), set.Questions)
			for _, q := range set.Invalid {
				fmt.Fprintf(w, "    #%d %q: %v\n", q.Index+1, q.Text, q.Err)
			}
			for _, m := range set.Mismatches {
				fmt.Fprintf(w, "    #%d %q: correct answer %q is not an option\n", m.Index+1, m.Text, m.CorrectAnswer)
			}
		}
	}
}

func runImport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	dir := fs.String("dir", envOr("QUESTIONS_DIR", "./data"), "Directory holding questions.json and topics.json")
	url := fs.String("url", "", "Base URL to fetch question files from (overrides -dir)")
	driver := fs.String("driver", envOr("DB_DRIVER", "sqlite"), "Target database: sqlite or postgres")
	dsn := fs.String("dsn", os.Getenv("DB_DSN"), "Target database DSN")
	questionsFile := fs.String("questions", "", "Import a single question set file instead of a whole source")
	setID := fs.String("set", store.FlatSet, "Set the -questions file replaces: the flat set or a test ID")
	catalogFile := fs.String("catalog", "", "Import a topics file, replacing the catalog")
	fs.Parse(args)

	if *questionsFile != "" || *catalogFile != "" {
		db, err := store.Open(ctx, store.Driver(*driver), *dsn)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		summary, err := importFiles(ctx, db, *questionsFile, *setID, *catalogFile)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Println(summary)
		return nil
	}

	from := sourceFlags{dir: *dir, url: *url}
	src, closeSrc, err := from.open(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	db, err := store.Open(ctx, store.Driver(*driver), *dsn)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	result, err := db.Seed(ctx, src)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	fmt.Printf("Imported %d questions, %d topics, %d tests\n",
		result.QuestionsCreated, result.TopicsCreated, result.TestsCreated)
	return nil
}

// importFiles loads individual question and topic files into db. The
// catalog goes first so a test set imported alongside it has its entry.
func importFiles(ctx context.Context, db *store.Store, questionsFile, setID, catalogFile string) (string, error) {
	var parts []string

	if catalogFile != "" {
		f, err := os.Open(catalogFile)
		if err != nil {
			return "", err
		}
		defer f.Close()

		topics, err := source.DecodeTopics(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", catalogFile, err)
		}
		if err := db.ImportCatalog(ctx, topics); err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%d topics", len(topics)))
	}

	if questionsFile != "" {
		f, err := os.Open(questionsFile)
		if err != nil {
			return "", err
		}
		defer f.Close()

		qs, err := source.DecodeQuestions(f)
		if err != nil {
			return "", fmt.Errorf("%s: %w", questionsFile, err)
		}
		if err := db.ImportQuestions(ctx, setID, qs); err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("%d questions into set %q", len(qs), setID))
	}

	return "Imported " + strings.Join(parts, ", "), nil
}

func runExport(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var src sourceFlags
	src.register(fs)
	out := fs.String("out", "./export", "Directory to write the question files to")
	fs.Parse(args)

	questions, closeSrc, err := src.open(ctx)
	if err != nil {
		return err
	}
	defer closeSrc()

	result, err := source.Export(ctx, questions, *out)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Exported %d questions, %d topics, %d tests to %s\n",
		result.Questions, result.Topics, result.Tests, *out)
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
