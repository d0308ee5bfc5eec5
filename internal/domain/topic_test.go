package domain

import "testing"

func TestChannelNameZeroPadding(t *testing.T) {
	if got := ChannelName(TicketTypeGeneral, 7); got != "ticket-general-007" {
		t.Fatalf("expected ticket-general-007, got %q", got)
	}
	if got := ChannelName(TicketTypeGeneral, 42); got != "ticket-general-042" {
		t.Fatalf("expected ticket-general-042, got %q", got)
	}
}

func TestChannelNameWidensPast999(t *testing.T) {
	if got := ChannelName(TicketTypeDeputy, 1500); got != "ticket-deputy-1500" {
		t.Fatalf("expected ticket-deputy-1500, got %q", got)
	}
}

func TestClosedChannelNameNeverDoublePrefixes(t *testing.T) {
	name := ClosedChannelName("ticket-general-001")
	if name != "closed-ticket-general-001" {
		t.Fatalf("expected closed- prefix, got %q", name)
	}
	if again := ClosedChannelName(name); again != name {
		t.Fatalf("expected idempotent rename, got %q", again)
	}
}

func TestTopicCreatorRoundTrip(t *testing.T) {
	topic := EncodeTopic(TicketTypeGeneral, 3, "alice#0", "42")

	id, ok := DecodeCreatorID(topic)
	if !ok {
		t.Fatal("expected creator id to decode")
	}
	if id != "42" {
		t.Fatalf("expected creator id 42, got %q", id)
	}
}

func TestDecodeCreatorUnaffectedByClaimerMarker(t *testing.T) {
	topic := EncodeTopic(TicketTypeDeputy, 9, "alice#0", "42")
	topic = AppendClaimer(topic, "staff#0", "7")

	tag, id, ok := DecodeCreator(topic)
	if !ok {
		t.Fatal("expected creator to decode")
	}
	if tag != "alice#0" || id != "42" {
		t.Fatalf("expected alice#0/42, got %q/%q", tag, id)
	}
}

func TestDecodeClaimer(t *testing.T) {
	topic := EncodeTopic(TicketTypeGeneral, 1, "alice#0", "42")

	if _, _, ok := DecodeClaimer(topic); ok {
		t.Fatal("expected no claimer on a fresh topic")
	}

	topic = AppendClaimer(topic, "staff#0", "7")
	tag, id, ok := DecodeClaimer(topic)
	if !ok {
		t.Fatal("expected claimer to decode")
	}
	if tag != "staff#0" || id != "7" {
		t.Fatalf("expected staff#0/7, got %q/%q", tag, id)
	}
}

func TestParseTicketType(t *testing.T) {
	if _, ok := ParseTicketType("deputy"); !ok {
		t.Fatal("expected deputy to parse")
	}
	if _, ok := ParseTicketType("unknown"); ok {
		t.Fatal("expected unknown type to be rejected")
	}
}

func TestRecordFromTopicOpenTicket(t *testing.T) {
	topic := EncodeTopic(TicketTypeGeneral, 12, "alice#0", "42")

	record, ok := RecordFromTopic("chan-1", "ticket-general-012", topic)
	if !ok {
		t.Fatal("expected record to rebuild")
	}
	if record.Type != TicketTypeGeneral || record.Number != 12 {
		t.Fatalf("unexpected identity: %s/%d", record.Type, record.Number)
	}
	if record.CreatorID != "42" || record.CreatorTag != "alice#0" {
		t.Fatalf("unexpected creator: %s/%s", record.CreatorTag, record.CreatorID)
	}
	if record.Status != TicketStatusOpen {
		t.Fatalf("expected open status, got %s", record.Status)
	}
}

func TestRecordFromTopicClaimedTicket(t *testing.T) {
	topic := AppendClaimer(EncodeTopic(TicketTypeCommand, 3, "alice#0", "42"), "staff#0", "7")

	record, ok := RecordFromTopic("chan-1", "ticket-command-003", topic)
	if !ok {
		t.Fatal("expected record to rebuild")
	}
	if record.Status != TicketStatusClaimed {
		t.Fatalf("expected claimed status, got %s", record.Status)
	}
	if record.ClaimerID != "7" {
		t.Fatalf("expected claimer id 7, got %q", record.ClaimerID)
	}
}

func TestRecordFromTopicClosedChannelName(t *testing.T) {
	topic := EncodeTopic(TicketTypeGeneral, 5, "alice#0", "42")

	record, ok := RecordFromTopic("chan-1", "closed-ticket-general-005", topic)
	if !ok {
		t.Fatal("expected record to rebuild")
	}
	if record.Status != TicketStatusClosed {
		t.Fatalf("expected closed status, got %s", record.Status)
	}
}

func TestRecordFromTopicFallsBackToChannelName(t *testing.T) {
	record, ok := RecordFromTopic("chan-1", "ticket-deputy-008", "some unrelated topic")
	if !ok {
		t.Fatal("expected channel name fallback to succeed")
	}
	if record.Type != TicketTypeDeputy || record.Number != 8 {
		t.Fatalf("unexpected identity: %s/%d", record.Type, record.Number)
	}
}

func TestRecordFromTopicRejectsNonTicketChannel(t *testing.T) {
	if _, ok := RecordFromTopic("chan-1", "general-chat", "welcome"); ok {
		t.Fatal("expected non-ticket channel to be rejected")
	}
}
