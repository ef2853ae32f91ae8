package tickets

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

// transcriptPageSize is the Discord history page limit.
const transcriptPageSize = 100

// truncationMarker ends a transcript whose history retrieval failed partway.
const truncationMarker = "--- transcript incomplete: message history could not be fully retrieved ---"

// Transcript is a flattened chronological rendering of a ticket channel's
// message history.
type Transcript struct {
	ChannelID string
	Number    string
	Lines     []string
	Truncated bool
}

// Collect reads the channel's full history, page by page, and renders it in
// chronological order. A failed page read stops collection and marks the
// transcript truncated instead of returning an error; closing a ticket must
// never be blocked by transcript problems.
func (e *Engine) Collect(channelID string) *Transcript {
	transcript := &Transcript{ChannelID: channelID}

	// Discord returns history newest-first; collect the pages and walk them
	// backwards afterwards so order is chronological across page boundaries.
	var (
		pages    [][]*discordgo.Message
		beforeID string
	)

	for {
		msgs, err := e.s.ChannelMessages(channelID, transcriptPageSize, beforeID, "", "")

		if err != nil {
			e.logger.Error("Error fetching channel history", zap.Error(err), zap.String("channelId", channelID), zap.String("beforeId", beforeID))
			transcript.Truncated = true
			break
		}

		if len(msgs) == 0 {
			break
		}

		pages = append(pages, msgs)

		if len(msgs) < transcriptPageSize {
			break
		}

		beforeID = msgs[len(msgs)-1].ID
	}

	for i := len(pages) - 1; i >= 0; i-- {
		page := pages[i]

		for j := len(page) - 1; j >= 0; j-- {
			transcript.Lines = append(transcript.Lines, renderMessage(page[j])...)
		}
	}

	return transcript
}

// renderMessage flattens one message into transcript lines. Attachments and
// embeds become placeholder references, they are not re-uploaded.
func renderMessage(msg *discordgo.Message) []string {
	author := "unknown"

	if msg.Author != nil {
		author = msg.Author.Username

		if msg.Author.GlobalName != "" {
			author = msg.Author.GlobalName
		}
	}

	stamp := msg.Timestamp.UTC().Format("2006-01-02 15:04:05")

	lines := []string{fmt.Sprintf("[%s] %s: %s", stamp, author, msg.Content)}

	for _, attachment := range msg.Attachments {
		lines = append(lines, fmt.Sprintf("[%s] %s: [attachment: %s %s]", stamp, author, attachment.Filename, attachment.URL))
	}

	for _, embed := range msg.Embeds {
		lines = append(lines, fmt.Sprintf("[%s] %s: [embed: %s]", stamp, author, embed.Title))
	}

	return lines
}

// Render produces the final text artifact.
func (t *Transcript) Render() []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, "Transcript del ticket #%s (canal %s)\n\n", t.Number, t.ChannelID)
	b.WriteString(strings.Join(t.Lines, "\n"))

	if len(t.Lines) > 0 {
		b.WriteString("\n")
	}

	if t.Truncated {
		b.WriteString(truncationMarker + "\n")
	}

	return b.Bytes()
}

// File wraps the rendered transcript as a Discord attachment.
func (t *Transcript) File() *discordgo.File {
	return &discordgo.File{
		Name:        "ticket-" + t.Number + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Reader:      bytes.NewReader(t.Render()),
	}
}
