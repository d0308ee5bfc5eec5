package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"context"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/config"
	"github.com/spec-kit/ticket-bot/internal/discord"
)

const (
	transcriptFetchLimit  = 100
	emptyTranscriptLine   = "No messages in transcript."
	transcriptTimeLayout  = "1/2/2006, 3:04:05 PM"
	transcriptContentType = "text/plain"
)

// TranscriptService serializes a channel's recent history into a flat text
// log at close time.
type TranscriptService struct {
	gateway discord.Gateway
	cfg     config.TranscriptConfig
	logger  *zap.Logger
}

// NewTranscriptService constructs the service.
func NewTranscriptService(gateway discord.Gateway, cfg config.TranscriptConfig, logger *zap.Logger) *TranscriptService {
	return &TranscriptService{gateway: gateway, cfg: cfg, logger: logger}
}

// RenderTranscript renders messages ascending by creation time, one line
// per message. An empty history renders the literal placeholder line.
func RenderTranscript(messages []*discordgo.Message) string {
	sorted := make([]*discordgo.Message, len(messages))
	copy(sorted, messages)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	lines := make([]string, 0, len(sorted))
	for _, message := range sorted {
		line := fmt.Sprintf("[%s] %s: %s",
			message.Timestamp.Local().Format(transcriptTimeLayout),
			authorTag(message),
			message.Content)
		if len(message.Attachments) > 0 {
			urls := make([]string, 0, len(message.Attachments))
			for _, attachment := range message.Attachments {
				urls = append(urls, attachment.URL)
			}
			line += " [" + strings.Join(urls, ", ") + "]"
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return emptyTranscriptLine
	}
	return strings.Join(lines, "\n")
}

// FileName returns the deterministic transcript file name for a channel.
func FileName(channelID string) string {
	return "transcript-" + channelID + ".txt"
}

// BuildAndDeliver fetches the most recent history, writes the transcript
// file, and posts it to the archive channel (or into the ticket channel when
// no archive is configured). Not idempotent: a second call overwrites the
// file with a possibly different message window, so close calls it once.
func (s *TranscriptService) BuildAndDeliver(ctx context.Context, channel *discordgo.Channel) (string, error) {
	messages, err := s.gateway.RecentMessages(ctx, channel.ID, transcriptFetchLimit)
	if err != nil {
		s.logger.Warn("failed to fetch messages for transcript", zap.String("channel_id", channel.ID), zap.Error(err))
		messages = nil
	}
	text := RenderTranscript(messages)

	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return "", err
	}
	name := FileName(channel.ID)
	path := filepath.Join(s.cfg.Dir, name)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", err
	}

	targetID := s.cfg.LogChannelID
	content := "Transcript for " + channel.Name
	if targetID == "" {
		targetID = channel.ID
		content = "Transcript generated and attached:"
	}
	_, err = s.gateway.SendMessage(ctx, targetID, &discordgo.MessageSend{
		Content: content,
		Files: []*discordgo.File{{
			Name:        name,
			ContentType: transcriptContentType,
			Reader:      strings.NewReader(text),
		}},
	})
	if err != nil {
		s.logger.Warn("failed to deliver transcript", zap.String("channel_id", channel.ID), zap.Error(err))
	}
	return path, nil
}

func authorTag(message *discordgo.Message) string {
	if message.Author == nil {
		return "unknown"
	}
	return message.Author.String()
}
