package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/config"
)

func TestRenderTranscriptOrdersByTimestamp(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	messages := []*discordgo.Message{
		{
			Author:    &discordgo.User{Username: "bob"},
			Content:   "second",
			Timestamp: base.Add(time.Minute),
		},
		{
			Author:    &discordgo.User{Username: "alice"},
			Content:   "first",
			Timestamp: base,
			Attachments: []*discordgo.MessageAttachment{
				{URL: "https://cdn.example/a.png"},
			},
		},
	}

	text := RenderTranscript(messages)
	lines := strings.Split(text, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "first") || !strings.Contains(lines[1], "second") {
		t.Fatalf("expected ascending order, got:\n%s", text)
	}
	if !strings.Contains(lines[0], "[https://cdn.example/a.png]") {
		t.Fatalf("expected attachment url on first line, got %q", lines[0])
	}
}

func TestRenderTranscriptEmptyHistory(t *testing.T) {
	if got := RenderTranscript(nil); got != emptyTranscriptLine {
		t.Fatalf("expected placeholder line, got %q", got)
	}
}

func TestBuildAndDeliverWritesFileAndPostsToArchive(t *testing.T) {
	gw := newFakeGateway()
	channel := &discordgo.Channel{ID: "chan-1", Name: "ticket-general-001"}
	gw.addChannel(channel)
	gw.messages["chan-1"] = []*discordgo.Message{
		{Author: &discordgo.User{Username: "alice"}, Content: "hello", Timestamp: time.Now()},
	}

	dir := t.TempDir()
	svc := NewTranscriptService(gw, config.TranscriptConfig{Dir: dir, LogChannelID: "archive-1"}, zap.NewNop())

	path, err := svc.BuildAndDeliver(context.Background(), channel)
	if err != nil {
		t.Fatalf("build and deliver: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Fatalf("expected message content in transcript, got %q", data)
	}

	if len(gw.sent) != 1 {
		t.Fatalf("expected one delivery, got %d", len(gw.sent))
	}
	delivery := gw.sent[0]
	if delivery.ChannelID != "archive-1" {
		t.Fatalf("expected delivery to archive channel, got %q", delivery.ChannelID)
	}
	if delivery.Data.Content != "Transcript for ticket-general-001" {
		t.Fatalf("unexpected delivery content: %q", delivery.Data.Content)
	}
	if len(delivery.Data.Files) != 1 || delivery.Data.Files[0].Name != FileName("chan-1") {
		t.Fatalf("expected transcript attachment, got %+v", delivery.Data.Files)
	}
}

func TestBuildAndDeliverFallsBackToTicketChannel(t *testing.T) {
	gw := newFakeGateway()
	channel := &discordgo.Channel{ID: "chan-1", Name: "ticket-general-001"}
	gw.addChannel(channel)

	svc := NewTranscriptService(gw, config.TranscriptConfig{Dir: t.TempDir()}, zap.NewNop())
	if _, err := svc.BuildAndDeliver(context.Background(), channel); err != nil {
		t.Fatalf("build and deliver: %v", err)
	}

	if len(gw.sent) != 1 || gw.sent[0].ChannelID != "chan-1" {
		t.Fatalf("expected delivery into the ticket channel, got %+v", gw.sent)
	}
	if gw.sent[0].Data.Content != "Transcript generated and attached:" {
		t.Fatalf("unexpected content: %q", gw.sent[0].Data.Content)
	}
}

func TestBuildAndDeliverFetchFailureWritesPlaceholder(t *testing.T) {
	gw := newFakeGateway()
	gw.fetchErr = errors.New("missing read history permission")
	channel := &discordgo.Channel{ID: "chan-1", Name: "ticket-general-001"}
	gw.addChannel(channel)

	svc := NewTranscriptService(gw, config.TranscriptConfig{Dir: t.TempDir()}, zap.NewNop())
	path, err := svc.BuildAndDeliver(context.Background(), channel)
	if err != nil {
		t.Fatalf("build and deliver: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read transcript: %v", err)
	}
	if string(data) != emptyTranscriptLine {
		t.Fatalf("expected placeholder transcript, got %q", data)
	}
}
