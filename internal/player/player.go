// Package player runs a quiz session on a text terminal.
package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"golang.org/x/text/message"

	"github.com/alash-quiz/backend/internal/domain/question"
	"github.com/alash-quiz/backend/internal/domain/quizsession"
	"github.com/alash-quiz/backend/internal/domain/selection"
	"github.com/alash-quiz/backend/internal/presenter"
	"github.com/alash-quiz/backend/internal/source"
)

// Player reads answers from in and renders the quiz to out.
type Player struct {
	in      *bufio.Scanner
	out     io.Writer
	p       *message.Printer
	config  quizsession.Config
	retries int
	logger  *slog.Logger
}

// Options configures a Player.
type Options struct {
	Locale  string
	Config  quizsession.Config
	Retries int // extra load attempts offered after a failure
}

func New(in io.Reader, out io.Writer, opts Options, logger *slog.Logger) *Player {
	return &Player{
		in:      bufio.NewScanner(in),
		out:     out,
		p:       presenter.Printer(opts.Locale),
		config:  opts.Config,
		retries: opts.Retries,
		logger:  logger,
	}
}

// Play loads the selection and runs it until the user stops restarting.
// It returns the score of the last completed run.
func (pl *Player) Play(ctx context.Context, src selection.Fetcher, sel selection.Strategy) (quizsession.Score, error) {
	questions, err := pl.load(ctx, src, sel)
	if errors.Is(err, selection.ErrEmptyFilterResult) || (err == nil && len(questions) == 0) {
		pl.println(pl.p.Sprintf(presenter.MsgNoQuestions))
		return quizsession.Score{}, err
	}
	if err != nil {
		return quizsession.Score{}, err
	}

	sess := quizsession.New(questions, pl.config)
	for {
		if err := pl.run(ctx, sess); err != nil {
			return sess.Score(), err
		}

		score := sess.Score()
		pl.println("")
		pl.println(pl.p.Sprintf(presenter.MsgResults))
		pl.println(pl.p.Sprintf(presenter.MsgCongrats))
		pl.println(presenter.Summary(pl.p, score))
		pl.printf("%d%%\n", presenter.Percentage(score))

		if !pl.confirm(pl.p.Sprintf(presenter.MsgRestart)) {
			return score, nil
		}
		sess.Reset()
	}
}

// load fetches the questions, offering a retry after each load failure.
func (pl *Player) load(ctx context.Context, src selection.Fetcher, sel selection.Strategy) ([]question.Question, error) {
	for attempt := 0; ; attempt++ {
		pl.println(pl.p.Sprintf(presenter.MsgLoading))

		questions, err := sel.Resolve(ctx, src)
		if err == nil || !errors.Is(err, source.ErrLoad) {
			return questions, err
		}

		pl.logger.Error("failed to load questions", "attempt", attempt+1, "error", err)
		pl.println(pl.p.Sprintf(presenter.MsgLoadFailed))
		if attempt >= pl.retries || !pl.confirm(pl.p.Sprintf(presenter.MsgRetry)) {
			return nil, err
		}
	}
}

func (pl *Player) run(ctx context.Context, sess *quizsession.Session) error {
	for !sess.Completed() {
		if err := ctx.Err(); err != nil {
			return err
		}

		q, _ := sess.Current()
		pl.render(sess, q)

		line, ok := pl.readLine()
		if !ok {
			return io.ErrUnexpectedEOF
		}

		switch {
		case line == "p":
			sess.Retreat()
			continue
		case line == "":
			// keep the earlier answer, or skip if answers are optional
		default:
			n, err := strconv.Atoi(line)
			if err != nil || n < 1 || n > len(q.Options) {
				pl.println(pl.p.Sprintf(presenter.MsgInvalidInput, len(q.Options)))
				continue
			}
			sess.RecordAnswer(q.Options[n-1])
		}

		if _, err := sess.Advance(); errors.Is(err, quizsession.ErrUnanswered) {
			pl.println(pl.p.Sprintf(presenter.MsgAnswerFirst))
		}
	}
	return nil
}

func (pl *Player) render(sess *quizsession.Session, q question.Question) {
	pl.println("")
	pl.printf("%s  [%d%%]\n",
		pl.p.Sprintf(presenter.MsgQuestion, sess.Index()+1, sess.Total()),
		presenter.ProgressPercentage(sess.Index(), sess.Total()),
	)
	pl.println(q.Text)
	if q.HasImage() {
		pl.printf("(%s)\n", q.ImageRef)
	}

	selected := sess.CurrentAnswer()
	for i, opt := range q.Options {
		marker := " "
		if opt == selected {
			marker = "*"
		}
		pl.printf(" %s %d) %s\n", marker, i+1, opt)
	}
	pl.printf("[%s / %s] ", pl.p.Sprintf(presenter.MsgPrevious), presenter.NextLabel(pl.p, sess.IsLast()))
	fmt.Fprint(pl.out, pl.p.Sprintf(presenter.MsgChooseOption, len(q.Options)))
}

func (pl *Player) confirm(prompt string) bool {
	pl.printf("%s? (y/N): ", prompt)
	line, ok := pl.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes", "т", "тийм":
		return true
	default:
		return false
	}
}

func (pl *Player) readLine() (string, bool) {
	if !pl.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(pl.in.Text()), true
}

func (pl *Player) println(s string) {
	fmt.Fprintln(pl.out, s)
}

func (pl *Player) printf(format string, args ...any) {
	fmt.Fprintf(pl.out, format, args...)
}
