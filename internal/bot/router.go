package bot

import (
	"context"
	"runtime/debug"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/config"
	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/interaction"
	"github.com/spec-kit/ticket-bot/internal/observability"
	"github.com/spec-kit/ticket-bot/internal/service"
	"github.com/spec-kit/ticket-bot/pkg/util"
)

const genericFailureMessage = "An error occurred."

// Router dispatches inbound interactions to the ticket service. Every
// handler acknowledges promptly (the platform enforces a response window)
// and delivers the final result as a follow-up edit.
type Router struct {
	tickets *service.TicketService
	cfg     config.DiscordConfig
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewRouter constructs the router.
func NewRouter(tickets *service.TicketService, cfg config.DiscordConfig, logger *zap.Logger, metrics *observability.Metrics) *Router {
	return &Router{tickets: tickets, cfg: cfg, logger: logger, metrics: metrics}
}

// Register attaches the router's handlers to a session.
func (r *Router) Register(session *discordgo.Session) {
	session.AddHandler(r.handleReady)
	session.AddHandler(r.handleInteraction)
}

// handleReady registers the entry-point slash command in the first
// available guild.
func (r *Router) handleReady(s *discordgo.Session, e *discordgo.Ready) {
	r.logger.Info("logged in", zap.String("user", s.State.User.String()))
	if len(e.Guilds) == 0 {
		return
	}
	guildID := e.Guilds[0].ID
	_, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, &discordgo.ApplicationCommand{
		Name:        r.cfg.EntryCommand,
		Description: "Post the support embed with ticket buttons",
	})
	if err != nil {
		r.logger.Warn("failed to register command", zap.String("guild_id", guildID), zap.Error(err))
		return
	}
	r.logger.Info("registered entry command", zap.String("command", r.cfg.EntryCommand), zap.String("guild_id", guildID))
}

// handleInteraction is the single dispatch boundary. Panics are recovered
// here: logged with full detail, surfaced to the user only as a generic
// failure, never fatal to the process.
func (r *Router) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	acked := false

	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("interaction handler panicked",
				zap.Any("panic", rec),
				zap.ByteString("stack", debug.Stack()))
			if r.metrics != nil {
				r.metrics.InteractionErrors.Inc()
			}
			if acked {
				r.editReply(s, i, genericFailureMessage)
			}
		}
	}()

	switch i.Type {
	case discordgo.InteractionMessageComponent:
		action, ok := interaction.ParseComponentID(i.MessageComponentData().CustomID)
		if !ok {
			return
		}
		switch a := action.(type) {
		case interaction.OpenTicketRequest:
			r.showModal(s, i, a.Type)
		case interaction.ClaimTicket:
			if !r.deferEphemeral(s, i) {
				return
			}
			acked = true
			r.runClaim(ctx, s, i)
		case interaction.CloseTicket:
			if !r.deferEphemeral(s, i) {
				return
			}
			acked = true
			r.runClose(ctx, s, i)
		}

	case discordgo.InteractionModalSubmit:
		form, ok := interaction.ParseModalSubmit(i.ModalSubmitData())
		if !ok {
			return
		}
		if !r.deferEphemeral(s, i) {
			return
		}
		acked = true
		r.runOpen(ctx, s, i, form)

	case discordgo.InteractionApplicationCommand:
		if i.ApplicationCommandData().Name != r.cfg.EntryCommand {
			return
		}
		r.runEntryPoint(s, i)
	}
}

func (r *Router) runOpen(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, form interaction.SubmitTicketForm) {
	if i.GuildID == "" || i.Member == nil || i.Member.User == nil {
		r.editReply(s, i, "Guild not found.")
		return
	}
	user := i.Member.User

	channel, err := r.tickets.OpenTicket(ctx, service.OpenTicketInput{
		GuildID:     i.GuildID,
		Type:        form.Type,
		Description: form.Description,
		CreatorID:   user.ID,
		CreatorTag:  user.String(),
	})
	if err != nil {
		r.replyError(s, i, err)
		return
	}
	r.editReply(s, i, "Your ticket has been created: "+channel.Mention())
}

func (r *Router) runClaim(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ChannelID == "" || i.Member == nil || i.Member.User == nil {
		r.editReply(s, i, "Claim must be used inside a ticket channel.")
		return
	}
	user := i.Member.User

	if _, err := r.tickets.ClaimTicket(ctx, service.ClaimInput{
		ChannelID:  i.ChannelID,
		ClaimerID:  user.ID,
		ClaimerTag: user.String(),
	}); err != nil {
		r.replyError(s, i, err)
		return
	}
	r.editReply(s, i, "You have claimed this ticket. Only you and the ticket opener can send messages.")
}

func (r *Router) runClose(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.ChannelID == "" || i.Member == nil || i.Member.User == nil {
		r.editReply(s, i, "Close must be used inside a ticket channel.")
		return
	}
	user := i.Member.User

	if _, err := r.tickets.CloseTicket(ctx, service.CloseInput{
		ChannelID: i.ChannelID,
		CloserID:  user.ID,
		CloserTag: user.String(),
	}); err != nil {
		r.replyError(s, i, err)
		return
	}
	r.editReply(s, i, "Ticket closed and transcript saved.")
}

func (r *Router) runEntryPoint(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Member == nil || i.Member.Permissions&discordgo.PermissionManageChannels == 0 {
		r.respondEphemeral(s, i, "You need the Manage Channels permission to post the support message.")
		return
	}
	r.respondEphemeral(s, i, "Support message posted.")
	if _, err := s.ChannelMessageSendComplex(i.ChannelID, interaction.BuildEntryPointMessage()); err != nil {
		r.logger.Warn("failed to post entry-point message", zap.String("channel_id", i.ChannelID), zap.Error(err))
	}
}

func (r *Router) showModal(s *discordgo.Session, i *discordgo.InteractionCreate, t domain.TicketType) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: interaction.BuildTicketModal(t),
	})
	if err != nil {
		r.logger.Warn("failed to show modal", zap.Error(err))
	}
}

func (r *Router) deferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) bool {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	})
	if err != nil {
		r.logger.Warn("failed to acknowledge interaction", zap.Error(err))
		return false
	}
	return true
}

func (r *Router) respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		r.logger.Warn("failed to respond to interaction", zap.Error(err))
	}
}

func (r *Router) editReply(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if _, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{Content: &content}); err != nil {
		r.logger.Warn("failed to edit interaction reply", zap.Error(err))
	}
}

// replyError surfaces a domain error's user message; internal errors are
// logged server-side and collapse to the generic failure notice.
func (r *Router) replyError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	domainErr := util.ToDomainError(err)
	if domainErr.Code == "INTERNAL_ERROR" {
		r.logger.Error("interaction failed", zap.Error(domainErr))
		if r.metrics != nil {
			r.metrics.InteractionErrors.Inc()
		}
	}
	r.editReply(s, i, domainErr.UserMessage)
}
