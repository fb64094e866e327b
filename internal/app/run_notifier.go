package app

import (
	"fmt"
	"strings"

	"course_activity_report/internal/domain/run"

	"gopkg.in/telebot.v3"
)

// MessageSender is implemented by infra/telegram.TelebotAdapter.
type MessageSender interface {
	SendMessage(chatID int64, text string, options *telebot.SendOptions) error
}

// RunNotifier posts a short summary of each finished run to one chat.
type RunNotifier struct {
	sender MessageSender
	chatID int64
}

func NewRunNotifier(sender MessageSender, chatID int64) *RunNotifier {
	return &RunNotifier{sender: sender, chatID: chatID}
}

func (n *RunNotifier) Notify(r *run.Run) error {
	return n.sender.SendMessage(n.chatID, FormatRunSummary(r), &telebot.SendOptions{DisableWebPagePreview: true})
}

// FormatRunSummary renders a run as plain text.
func FormatRunSummary(r *run.Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Course activity report: %s\n", r.State)
	fmt.Fprintf(&b, "Run: %s\n", r.ID)
	fmt.Fprintf(&b, "Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Records: %d", r.RecordCount)
	if r.OutputFile.Valid {
		fmt.Fprintf(&b, "\nFile: %s", r.OutputFile.String)
	}
	if r.RemotePath.Valid {
		fmt.Fprintf(&b, "\nUploaded to: %s", r.RemotePath.String)
	}
	if r.Error.Valid {
		fmt.Fprintf(&b, "\nError: %s", r.Error.String)
	}
	return b.String()
}
