package interaction

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/spec-kit/ticket-bot/internal/domain"
)

const embedColor = 0x602a79

// BuildEntryPointMessage renders the static support message with one button
// per ticket type.
func BuildEntryPointMessage() *discordgo.MessageSend {
	embed := &discordgo.MessageEmbed{
		Title: "Los Angeles County Sheriff's Department - Support",
		Description: "If you need any help from the Los Angeles County Sheriff's Department support team, " +
			"please open a ticket using the buttons menu below. All information and types of things we handle " +
			"are listed below, Please read over the options before opening the ticket so you know that the " +
			"correct designated team can help you with any issues.\n\n" +
			"**General Tickets**\n> • Questions\n> • Tech Support\n\n" +
			"**Deputy Report/Punishment Appeal**\n> • SOP Violations\n> • Misconduct\n> • Blacklists\n> • Disciplinary Actions\n\n" +
			"**Command Staff**\n> • Emergency's\n> • Reporting a Captain+\n",
		Color: embedColor,
		Thumbnail: &discordgo.MessageEmbedThumbnail{
			URL: "https://upload.wikimedia.org/wikipedia/commons/thumb/4/45/Badge_of_the_Sheriff_of_Los_Angeles_County.png/250px-Badge_of_the_Sheriff_of_Los_Angeles_County.png",
		},
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: OpenButtonID(domain.TicketTypeGeneral),
				Label:    "General",
				Style:    discordgo.PrimaryButton,
			},
			discordgo.Button{
				CustomID: OpenButtonID(domain.TicketTypeDeputy),
				Label:    "Deputy Report/Punishment Appeal",
				Style:    discordgo.DangerButton,
			},
			discordgo.Button{
				CustomID: OpenButtonID(domain.TicketTypeCommand),
				Label:    "Command",
				Style:    discordgo.SecondaryButton,
			},
		},
	}

	return &discordgo.MessageSend{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}

// BuildTicketModal renders the creation form for a ticket type.
func BuildTicketModal(t domain.TicketType) *discordgo.InteractionResponseData {
	title := "General Support Request"
	switch t {
	case domain.TicketTypeDeputy:
		title = "Deputy Report / Punishment Appeal"
	case domain.TicketTypeCommand:
		title = "Command Staff Request"
	}

	return &discordgo.InteractionResponseData{
		CustomID: ModalID(t),
		Title:    title,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    issueInputID,
						Label:       "Briefly Describe Your Issue",
						Style:       discordgo.TextInputParagraph,
						Required:    true,
						Placeholder: "Describe the issue in as much detail as you can.",
					},
				},
			},
		},
	}
}

// BuildIntroMessage renders the first message in a fresh ticket channel:
// role pings, the ticket summary embed, and the claim/close buttons.
func BuildIntroMessage(record domain.TicketRecord, description string, pingRoleIDs []string) *discordgo.MessageSend {
	content := ""
	for _, roleID := range pingRoleIDs {
		content += fmt.Sprintf("<@&%s> ", roleID)
	}
	content += fmt.Sprintf("<@%s>\n\n**Ticket created. A staff member will be with you shortly.**", record.CreatorID)

	if description == "" {
		description = "No description provided."
	}

	embed := &discordgo.MessageEmbed{
		Title: "Ticket " + domain.ChannelName(record.Type, record.Number),
		Color: embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Type", Value: string(record.Type), Inline: true},
			{Name: "Number", Value: fmt.Sprintf("%d", record.Number), Inline: true},
			{Name: "Opened by", Value: fmt.Sprintf("%s (<@%s>)", record.CreatorTag, record.CreatorID)},
			{Name: "Description", Value: description},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "Use the Claim button to claim this ticket"},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	row := discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				CustomID: ClaimButtonID(record.Type, record.Number),
				Label:    "Claim Ticket",
				Style:    discordgo.SuccessButton,
			},
			discordgo.Button{
				CustomID: CloseButtonID(record.Type, record.Number),
				Label:    "Close Ticket",
				Style:    discordgo.DangerButton,
			},
		},
	}

	return &discordgo.MessageSend{
		Content:    content,
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: []discordgo.MessageComponent{row},
	}
}
