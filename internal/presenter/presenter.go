// Package presenter turns session state into user-facing text.
package presenter

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/alash-quiz/backend/internal/domain/quizsession"
)

// Message keys. The English text doubles as the key.
const (
	MsgLoading      = "Loading questions..."
	MsgLoadFailed   = "Could not load questions."
	MsgRetry        = "Retry"
	MsgNoQuestions  = "No questions found."
	MsgQuestion     = "Question %d/%d"
	MsgPrevious     = "Previous"
	MsgNext         = "Next"
	MsgFinish       = "Finish"
	MsgResults      = "Test results"
	MsgCongrats     = "Congratulations!"
	MsgSummary      = "You answered %d of %d questions correctly."
	MsgRestart      = "Start again"
	MsgChooseOption = "Choose an option (1-%d), p for previous: "
	MsgInvalidInput = "Please enter a number between 1 and %d."
	MsgAnswerFirst  = "Select an answer before continuing."
)

var mongolian = map[string]string{
	MsgLoading:      "Асуултуудыг уншиж байна...",
	MsgLoadFailed:   "Асуултуудыг уншиж чадсангүй.",
	MsgRetry:        "Дахин оролдох",
	MsgNoQuestions:  "Асуулт олдсонгүй.",
	MsgQuestion:     "Асуулт %d/%d",
	MsgPrevious:     "Өмнөх",
	MsgNext:         "Дараах",
	MsgFinish:       "Дуусгах",
	MsgResults:      "Тестийн Үр Дүн",
	MsgCongrats:     "Баяр хүргэе!",
	MsgSummary:      "Та %[2]d асуултаас %[1]d зөв хариулсан байна.",
	MsgRestart:      "Дахин Эхлэх",
	MsgChooseOption: "Хариултаа сонгоно уу (1-%d), өмнөх рүү буцах бол p: ",
	MsgInvalidInput: "1-ээс %d хүртэлх тоо оруулна уу.",
	MsgAnswerFirst:  "Үргэлжлүүлэхийн өмнө хариултаа сонгоно уу.",
}

func init() {
	for _, key := range []string{
		MsgLoading, MsgLoadFailed, MsgRetry, MsgNoQuestions, MsgQuestion,
		MsgPrevious, MsgNext, MsgFinish, MsgResults, MsgCongrats, MsgSummary,
		MsgRestart, MsgChooseOption, MsgInvalidInput, MsgAnswerFirst,
	} {
		message.SetString(language.English, key, key)
	}
	for key, msg := range mongolian {
		message.SetString(language.Mongolian, key, msg)
	}
}

// Printer renders catalog messages for a locale such as "en" or "mn".
// Unknown locales fall back to English.
func Printer(locale string) *message.Printer {
	return message.NewPrinter(message.MatchLanguage(locale, "en"))
}

// Progress formats the position as "(index+1)/total".
func Progress(index, total int) string {
	return fmt.Sprintf("%d/%d", index+1, total)
}

// Percentage is round(100 * correct / total); 0 for an empty quiz.
func Percentage(score quizsession.Score) int {
	if score.Total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(score.Correct) / float64(score.Total)))
}

// ProgressPercentage is the share of the quiz reached at index.
func ProgressPercentage(index, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(index+1) / float64(total)))
}

// Summary is the "correct out of total" result line.
func Summary(p *message.Printer, score quizsession.Score) string {
	return p.Sprintf(MsgSummary, score.Correct, score.Total)
}

// NextLabel names the forward button: Finish on the last question.
func NextLabel(p *message.Printer, last bool) string {
	if last {
		return p.Sprintf(MsgFinish)
	}
	return p.Sprintf(MsgNext)
}
