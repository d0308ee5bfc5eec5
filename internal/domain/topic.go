package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const closedPrefix = "closed-"

// ChannelName returns the canonical channel slug for a ticket. Numbers are
// zero-padded to three digits and simply widen past 999.
func ChannelName(t TicketType, number int) string {
	return fmt.Sprintf("ticket-%s-%03d", t, number)
}

// ClosedChannelName prefixes a channel name for closing. Names that already
// carry the prefix are returned unchanged so re-closing never double-prefixes.
func ClosedChannelName(name string) string {
	if IsClosedChannelName(name) {
		return name
	}
	return closedPrefix + name
}

// IsClosedChannelName reports whether a channel has been renamed on close.
func IsClosedChannelName(name string) bool {
	return strings.HasPrefix(name, closedPrefix)
}

// EncodeTopic renders ticket metadata into the human-readable topic string.
// The field order is fixed; the decode functions below parse it back.
func EncodeTopic(t TicketType, number int, creatorTag, creatorID string) string {
	return fmt.Sprintf("Ticket Type: %s | Number: %d | Created by: %s (%s)", t, number, creatorTag, creatorID)
}

// AppendClaimer adds the claimer marker to an existing topic.
func AppendClaimer(topic, claimerTag, claimerID string) string {
	return fmt.Sprintf("%s | Claimer: %s (%s)", topic, claimerTag, claimerID)
}

var (
	topicTypePattern    = regexp.MustCompile(`Ticket Type: (\w+)`)
	topicNumberPattern  = regexp.MustCompile(`Number: (\d+)`)
	topicCreatorPattern = regexp.MustCompile(`Created by: (.+?) \((\d+)\)`)
	topicClaimerPattern = regexp.MustCompile(`Claimer: (.+?) \((\d+)\)`)
	channelNamePattern  = regexp.MustCompile(`^(?:closed-)?ticket-(\w+)-(\d+)$`)
)

// DecodeCreator extracts the creator tag and ID from a topic.
func DecodeCreator(topic string) (tag, id string, ok bool) {
	m := topicCreatorPattern.FindStringSubmatch(topic)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// DecodeCreatorID extracts just the creator's numeric identifier.
func DecodeCreatorID(topic string) (string, bool) {
	_, id, ok := DecodeCreator(topic)
	return id, ok
}

// DecodeClaimer extracts the claimer tag and ID from a topic, if present.
func DecodeClaimer(topic string) (tag, id string, ok bool) {
	m := topicClaimerPattern.FindStringSubmatch(topic)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// RecordFromTopic rebuilds a TicketRecord from a live channel's name and
// topic. This is the restart-recovery path: in-memory records are lost on
// process restart, and the topic is the only surviving copy of the state.
func RecordFromTopic(channelID, channelName, topic string) (TicketRecord, bool) {
	record := TicketRecord{ChannelID: channelID, Status: TicketStatusOpen}

	if m := topicTypePattern.FindStringSubmatch(topic); m != nil {
		if t, ok := ParseTicketType(m[1]); ok {
			record.Type = t
		}
	}
	if m := topicNumberPattern.FindStringSubmatch(topic); m != nil {
		record.Number, _ = strconv.Atoi(m[1])
	}
	if record.Type == "" || record.Number == 0 {
		// fall back to the channel name, which survives topic edits
		m := channelNamePattern.FindStringSubmatch(channelName)
		if m == nil {
			return TicketRecord{}, false
		}
		t, ok := ParseTicketType(m[1])
		if !ok {
			return TicketRecord{}, false
		}
		record.Type = t
		record.Number, _ = strconv.Atoi(m[2])
	}

	if tag, id, ok := DecodeCreator(topic); ok {
		record.CreatorTag = tag
		record.CreatorID = id
	}
	if tag, id, ok := DecodeClaimer(topic); ok {
		record.ClaimerTag = tag
		record.ClaimerID = id
		record.Status = TicketStatusClaimed
	}
	if IsClosedChannelName(channelName) {
		record.Status = TicketStatusClosed
	}
	return record, true
}
