package interaction

import (
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

func TestParseComponentIDOpenButtons(t *testing.T) {
	action, ok := ParseComponentID("ticket_general")
	if !ok {
		t.Fatal("expected ticket_general to parse")
	}
	open, ok := action.(OpenTicketRequest)
	if !ok {
		t.Fatalf("expected OpenTicketRequest, got %T", action)
	}
	if open.Type != domain.TicketTypeGeneral {
		t.Fatalf("expected general, got %s", open.Type)
	}
}

func TestParseComponentIDClaimAndClose(t *testing.T) {
	action, ok := ParseComponentID("claim_general_7")
	if !ok {
		t.Fatal("expected claim_general_7 to parse")
	}
	claim, ok := action.(ClaimTicket)
	if !ok {
		t.Fatalf("expected ClaimTicket, got %T", action)
	}
	if claim.Type != domain.TicketTypeGeneral || claim.Number != 7 {
		t.Fatalf("unexpected claim action: %+v", claim)
	}

	action, ok = ParseComponentID("close_deputy_1500")
	if !ok {
		t.Fatal("expected close_deputy_1500 to parse")
	}
	closeAction, ok := action.(CloseTicket)
	if !ok {
		t.Fatalf("expected CloseTicket, got %T", action)
	}
	if closeAction.Type != domain.TicketTypeDeputy || closeAction.Number != 1500 {
		t.Fatalf("unexpected close action: %+v", closeAction)
	}
}

func TestParseComponentIDRejectsUnknown(t *testing.T) {
	for _, id := range []string{
		"",
		"something_else",
		"ticket_unknown",
		"claim_bogus_1",
		"claim_general_",
		"claim_general_x",
		"close_general_-1",
		"ticket_modal|general",
	} {
		if _, ok := ParseComponentID(id); ok {
			t.Fatalf("expected %q to be rejected", id)
		}
	}
}

func TestButtonIDsRoundTrip(t *testing.T) {
	action, ok := ParseComponentID(ClaimButtonID(domain.TicketTypeCommand, 12))
	if !ok {
		t.Fatal("expected claim button id to parse")
	}
	claim := action.(ClaimTicket)
	if claim.Type != domain.TicketTypeCommand || claim.Number != 12 {
		t.Fatalf("unexpected round trip: %+v", claim)
	}
}

func TestParseModalSubmit(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: ModalID(domain.TicketTypeDeputy),
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: issueInputID, Value: "my appeal"},
				},
			},
		},
	}

	form, ok := ParseModalSubmit(data)
	if !ok {
		t.Fatal("expected modal submit to parse")
	}
	if form.Type != domain.TicketTypeDeputy {
		t.Fatalf("expected deputy, got %s", form.Type)
	}
	if form.Description != "my appeal" {
		t.Fatalf("expected description to carry over, got %q", form.Description)
	}
}

func TestParseModalSubmitTruncatesDescription(t *testing.T) {
	data := discordgo.ModalSubmitInteractionData{
		CustomID: ModalID(domain.TicketTypeGeneral),
		Components: []discordgo.MessageComponent{
			&discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					&discordgo.TextInput{CustomID: issueInputID, Value: strings.Repeat("a", 2500)},
				},
			},
		},
	}

	form, ok := ParseModalSubmit(data)
	if !ok {
		t.Fatal("expected modal submit to parse")
	}
	if len(form.Description) != 2000 {
		t.Fatalf("expected truncation to 2000, got %d", len(form.Description))
	}
}

func TestParseModalSubmitRejectsUnknownID(t *testing.T) {
	if _, ok := ParseModalSubmit(discordgo.ModalSubmitInteractionData{CustomID: "other_modal|general"}); ok {
		t.Fatal("expected unknown modal id to be rejected")
	}
}
