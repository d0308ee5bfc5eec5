package config

import (
	"testing"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

func TestLoadRequiresToken(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing DISCORD_TOKEN")
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("COUNTER_BACKEND", "")
	t.Setenv("COUNTER_FILE", "")
	t.Setenv("ENTRY_COMMAND", "")
	t.Setenv("CLOSE_REVOKE_CLAIMER_SEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Counter.Backend != CounterBackendFile {
		t.Fatalf("expected file counter backend, got %s", cfg.Counter.Backend)
	}
	if cfg.Counter.File != "tickets.json" {
		t.Fatalf("expected default counter file, got %q", cfg.Counter.File)
	}
	if cfg.Discord.EntryCommand != "post-support" {
		t.Fatalf("expected default entry command, got %q", cfg.Discord.EntryCommand)
	}
	if cfg.Tickets.RevokeClaimerSendOnClose {
		t.Fatal("expected claimer send revocation to default off")
	}
	if cfg.Transcript.Dir != "transcripts" {
		t.Fatalf("expected default transcripts dir, got %q", cfg.Transcript.Dir)
	}
}

func TestLoadParsesCategoriesAndPings(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("TICKET_CATEGORY_GENERAL", "111")
	t.Setenv("TICKET_CATEGORY_DEPUTY", "222")
	t.Setenv("TICKET_PINGS_DEPUTY", "900, 901,,902")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Tickets.Categories[domain.TicketTypeGeneral] != "111" {
		t.Fatalf("unexpected general category: %q", cfg.Tickets.Categories[domain.TicketTypeGeneral])
	}
	if cfg.Tickets.Categories[domain.TicketTypeDeputy] != "222" {
		t.Fatalf("unexpected deputy category: %q", cfg.Tickets.Categories[domain.TicketTypeDeputy])
	}
	pings := cfg.Tickets.Pings[domain.TicketTypeDeputy]
	if len(pings) != 3 || pings[0] != "900" || pings[1] != "901" || pings[2] != "902" {
		t.Fatalf("unexpected deputy pings: %v", pings)
	}
}

func TestLoadRejectsInvalidCounterBackend(t *testing.T) {
	t.Setenv("DISCORD_TOKEN", "test-token")
	t.Setenv("COUNTER_BACKEND", "postgres")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid counter backend")
	}
}
