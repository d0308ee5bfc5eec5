package interaction

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

// Action is the closed set of inbound UI actions. Opaque custom IDs are
// parsed into this union exactly once, at the dispatch boundary.
type Action interface {
	isAction()
}

// OpenTicketRequest is a press of one of the entry-point buttons.
type OpenTicketRequest struct {
	Type domain.TicketType
}

// SubmitTicketForm is a submitted creation modal.
type SubmitTicketForm struct {
	Type        domain.TicketType
	Description string
}

// ClaimTicket is a press of the claim button inside a ticket channel.
type ClaimTicket struct {
	Type   domain.TicketType
	Number int
}

// CloseTicket is a press of the close button inside a ticket channel.
type CloseTicket struct {
	Type   domain.TicketType
	Number int
}

func (OpenTicketRequest) isAction() {}
func (SubmitTicketForm) isAction()  {}
func (ClaimTicket) isAction()       {}
func (CloseTicket) isAction()       {}

const (
	openButtonPrefix  = "ticket_"
	modalIDPrefix     = "ticket_modal|"
	claimButtonPrefix = "claim_"
	closeButtonPrefix = "close_"
	issueInputID      = "issue_desc"
)

// OpenButtonID builds the custom ID for an entry-point button.
func OpenButtonID(t domain.TicketType) string {
	return openButtonPrefix + string(t)
}

// ModalID builds the custom ID for a creation modal.
func ModalID(t domain.TicketType) string {
	return modalIDPrefix + string(t)
}

// ClaimButtonID builds the custom ID for a claim button.
func ClaimButtonID(t domain.TicketType, number int) string {
	return fmt.Sprintf("%s%s_%d", claimButtonPrefix, t, number)
}

// CloseButtonID builds the custom ID for a close button.
func CloseButtonID(t domain.TicketType, number int) string {
	return fmt.Sprintf("%s%s_%d", closeButtonPrefix, t, number)
}

// ParseComponentID maps a component custom ID onto an Action. Unknown IDs
// return false and are ignored by the router.
func ParseComponentID(customID string) (Action, bool) {
	switch {
	case strings.HasPrefix(customID, claimButtonPrefix):
		t, number, ok := parseTypeNumber(strings.TrimPrefix(customID, claimButtonPrefix))
		if !ok {
			return nil, false
		}
		return ClaimTicket{Type: t, Number: number}, true
	case strings.HasPrefix(customID, closeButtonPrefix):
		t, number, ok := parseTypeNumber(strings.TrimPrefix(customID, closeButtonPrefix))
		if !ok {
			return nil, false
		}
		return CloseTicket{Type: t, Number: number}, true
	case strings.HasPrefix(customID, openButtonPrefix):
		t, ok := domain.ParseTicketType(strings.TrimPrefix(customID, openButtonPrefix))
		if !ok {
			return nil, false
		}
		return OpenTicketRequest{Type: t}, true
	}
	return nil, false
}

// ParseModalSubmit maps a submitted modal onto a SubmitTicketForm. The
// description is truncated to the platform message limit.
func ParseModalSubmit(data discordgo.ModalSubmitInteractionData) (SubmitTicketForm, bool) {
	if !strings.HasPrefix(data.CustomID, modalIDPrefix) {
		return SubmitTicketForm{}, false
	}
	t, ok := domain.ParseTicketType(strings.TrimPrefix(data.CustomID, modalIDPrefix))
	if !ok {
		return SubmitTicketForm{}, false
	}

	description := textInputValue(data.Components, issueInputID)
	if len(description) > 2000 {
		description = description[:2000]
	}
	return SubmitTicketForm{Type: t, Description: description}, true
}

func parseTypeNumber(raw string) (domain.TicketType, int, bool) {
	parts := strings.SplitN(raw, "_", 2)
	if len(parts) != 2 {
		return "", 0, false
	}
	t, ok := domain.ParseTicketType(parts[0])
	if !ok {
		return "", 0, false
	}
	number, err := strconv.Atoi(parts[1])
	if err != nil || number <= 0 {
		return "", 0, false
	}
	return t, number, true
}

func textInputValue(components []discordgo.MessageComponent, customID string) string {
	for _, component := range components {
		row, ok := component.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, inner := range row.Components {
			input, ok := inner.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
