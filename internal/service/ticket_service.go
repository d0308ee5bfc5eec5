package service

import (
	"context"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-bot/internal/config"
	"github.com/spec-kit/ticket-bot/internal/discord"
	"github.com/spec-kit/ticket-bot/internal/domain"
	"github.com/spec-kit/ticket-bot/internal/events"
	"github.com/spec-kit/ticket-bot/internal/interaction"
	"github.com/spec-kit/ticket-bot/internal/observability"
	"github.com/spec-kit/ticket-bot/internal/repository"
	"github.com/spec-kit/ticket-bot/pkg/util"
)

// TicketService coordinates the ticket lifecycle: open, claim, close.
// Actions on the same channel are serialized through a per-channel lock so
// two concurrent claims cannot both pass the guard.
type TicketService struct {
	gateway     discord.Gateway
	counters    repository.CounterRepository
	records     repository.TicketRecordRepository
	transcripts *TranscriptService
	dispatcher  events.Dispatcher
	metrics     *observability.Metrics
	cfg         config.TicketsConfig
	logger      *zap.Logger
	locks       channelLocks
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Gateway     discord.Gateway
	CounterRepo repository.CounterRepository
	RecordRepo  repository.TicketRecordRepository
	Transcripts *TranscriptService
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
}

// NewTicketService constructs the service.
func NewTicketService(cfg config.TicketsConfig, logger *zap.Logger, deps TicketDependencies) *TicketService {
	return &TicketService{
		gateway:     deps.Gateway,
		counters:    deps.CounterRepo,
		records:     deps.RecordRepo,
		transcripts: deps.Transcripts,
		dispatcher:  deps.Dispatcher,
		metrics:     deps.Metrics,
		cfg:         cfg,
		logger:      logger,
	}
}

// OpenTicketInput describes a submitted creation form.
type OpenTicketInput struct {
	GuildID     string
	Type        domain.TicketType
	Description string
	CreatorID   string
	CreatorTag  string
}

// ClaimInput describes a claim button press.
type ClaimInput struct {
	ChannelID  string
	ClaimerID  string
	ClaimerTag string
}

// CloseInput describes a close button press.
type CloseInput struct {
	ChannelID string
	CloserID  string
	CloserTag string
}

// OpenTicket allocates the next ticket number, creates the channel under the
// configured category with its base permission overwrites, replicates the
// category's role overwrites, and posts the intro message.
func (s *TicketService) OpenTicket(ctx context.Context, input OpenTicketInput) (*discordgo.Channel, error) {
	categoryID := s.cfg.Categories[input.Type]
	if categoryID == "" {
		return nil, util.NewConfigError("Ticket category is not configured. Contact an admin.")
	}

	number, err := s.counters.Next(ctx, input.Type)
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	name := domain.ChannelName(input.Type, number)
	topic := domain.EncodeTopic(input.Type, number, input.CreatorTag, input.CreatorID)

	overwrites := []*discordgo.PermissionOverwrite{
		{
			ID:   input.GuildID,
			Type: discordgo.PermissionOverwriteTypeRole,
			Deny: discord.PermView,
		},
		{
			ID:    input.CreatorID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discord.PermView | discord.PermSend | discord.PermHistory,
		},
	}
	if botID := s.gateway.BotUserID(); botID != "" {
		overwrites = append(overwrites, &discordgo.PermissionOverwrite{
			ID:    botID,
			Type:  discordgo.PermissionOverwriteTypeMember,
			Allow: discord.PermView | discord.PermSend | discord.PermHistory | discord.PermManage,
		})
	}

	channel, err := s.gateway.CreateChannel(ctx, input.GuildID, discordgo.GuildChannelCreateData{
		Name:                 name,
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                topic,
		ParentID:             categoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return nil, util.NewInternalError(err)
	}

	s.replicateCategoryRoles(ctx, input.GuildID, categoryID, channel.ID)

	record := domain.TicketRecord{
		ChannelID:  channel.ID,
		Type:       input.Type,
		Number:     number,
		CreatorID:  input.CreatorID,
		CreatorTag: input.CreatorTag,
		Status:     domain.TicketStatusOpen,
		CreatedAt:  time.Now(),
	}
	if err := s.records.Put(ctx, record); err != nil {
		s.logger.Warn("failed to store ticket record", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	intro := interaction.BuildIntroMessage(record, input.Description, s.cfg.Pings[input.Type])
	if _, err := s.gateway.SendMessage(ctx, channel.ID, intro); err != nil {
		s.logger.Warn("failed to send ticket intro message", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	s.publish(ctx, events.EventTicketCreated, record, input.CreatorID, input.CreatorTag)
	return channel, nil
}

// ClaimTicket transitions a ticket from open to claimed. The claim guard
// rejects already-claimed and closed tickets before any permission edit.
func (s *TicketService) ClaimTicket(ctx context.Context, input ClaimInput) (domain.TicketRecord, error) {
	unlock := s.locks.lock(input.ChannelID)
	defer unlock()

	channel, err := s.gateway.Channel(ctx, input.ChannelID)
	if err != nil {
		return domain.TicketRecord{}, util.NewInternalError(err)
	}

	record, err := s.loadRecord(ctx, channel, "Claim")
	if err != nil {
		return domain.TicketRecord{}, err
	}
	switch record.Status {
	case domain.TicketStatusClosed:
		return domain.TicketRecord{}, util.NewTicketClosed()
	case domain.TicketStatusClaimed:
		return domain.TicketRecord{}, util.NewAlreadyClaimed()
	}

	plan := s.claimPlan(ctx, channel, input.ClaimerID, record.CreatorID)
	result := plan.Apply(ctx, s.gateway, channel.ID)
	s.logPlanResult("claim", channel.ID, result)

	newTopic := domain.AppendClaimer(channel.Topic, input.ClaimerTag, input.ClaimerID)
	if err := s.gateway.SetTopic(ctx, channel.ID, newTopic); err != nil {
		s.logger.Warn("failed to update channel topic", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	record.ClaimerID = input.ClaimerID
	record.ClaimerTag = input.ClaimerTag
	record.Status = domain.TicketStatusClaimed
	if err := s.records.Put(ctx, record); err != nil {
		s.logger.Warn("failed to store ticket record", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	s.markIntroClaimed(ctx, channel.ID, input.ClaimerTag)
	s.publish(ctx, events.EventTicketClaimed, record, input.ClaimerID, input.ClaimerTag)
	return record, nil
}

// CloseTicket transitions a ticket to closed: transcript first, then the
// lock-down permission plan, then the closed- rename. Re-closing a closed
// ticket is rejected before any side effect, so the rename never
// double-prefixes and the transcript is written exactly once.
func (s *TicketService) CloseTicket(ctx context.Context, input CloseInput) (domain.TicketRecord, error) {
	unlock := s.locks.lock(input.ChannelID)
	defer unlock()

	channel, err := s.gateway.Channel(ctx, input.ChannelID)
	if err != nil {
		return domain.TicketRecord{}, util.NewInternalError(err)
	}

	record, err := s.loadRecord(ctx, channel, "Close")
	if err != nil {
		return domain.TicketRecord{}, err
	}
	if record.Status == domain.TicketStatusClosed || domain.IsClosedChannelName(channel.Name) {
		return domain.TicketRecord{}, util.NewTicketClosed()
	}

	// transcript fetch failures degrade to a placeholder; they never block closure
	if _, err := s.transcripts.BuildAndDeliver(ctx, channel); err != nil {
		s.logger.Warn("failed to write transcript", zap.String("channel_id", channel.ID), zap.Error(err))
	} else {
		s.publish(ctx, events.EventTranscriptSaved, record, input.CloserID, input.CloserTag)
	}

	plan := s.closePlan(ctx, channel, record)
	result := plan.Apply(ctx, s.gateway, channel.ID)
	s.logPlanResult("close", channel.ID, result)

	if err := s.gateway.Rename(ctx, channel.ID, domain.ClosedChannelName(channel.Name)); err != nil {
		s.logger.Warn("failed to rename closed channel", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	record.Status = domain.TicketStatusClosed
	if err := s.records.Put(ctx, record); err != nil {
		s.logger.Warn("failed to store ticket record", zap.String("channel_id", channel.ID), zap.Error(err))
	}

	s.publish(ctx, events.EventTicketClosed, record, input.CloserID, input.CloserTag)
	return record, nil
}

// loadRecord returns the stored record for a channel, rebuilding it from the
// channel topic when the in-memory store has none (e.g. after a restart).
func (s *TicketService) loadRecord(ctx context.Context, channel *discordgo.Channel, action string) (domain.TicketRecord, error) {
	if record, ok := s.records.Get(ctx, channel.ID); ok {
		return record, nil
	}
	record, ok := domain.RecordFromTopic(channel.ID, channel.Name, channel.Topic)
	if !ok {
		return domain.TicketRecord{}, util.NewNotTicketChannel(action)
	}
	if err := s.records.Put(ctx, record); err != nil {
		s.logger.Warn("failed to store rebuilt ticket record", zap.String("channel_id", channel.ID), zap.Error(err))
	}
	return record, nil
}

// claimPlan demotes every role inherited from the parent category to
// view-only, grants the claimer send access, and re-affirms the creator.
func (s *TicketService) claimPlan(ctx context.Context, channel *discordgo.Channel, claimerID, creatorID string) discord.Plan {
	var plan discord.Plan

	for _, overwrite := range s.parentRoleOverwrites(ctx, channel) {
		if overwrite.Allow&discord.PermView == 0 {
			continue
		}
		plan = append(plan, discord.PermissionOp{
			TargetID:   overwrite.ID,
			TargetType: discordgo.PermissionOverwriteTypeRole,
			Allow:      discord.PermView | discord.PermHistory,
			Deny:       discord.PermSend,
		})
	}

	plan = append(plan, discord.PermissionOp{
		TargetID:   claimerID,
		TargetType: discordgo.PermissionOverwriteTypeMember,
		Allow:      discord.PermView | discord.PermSend | discord.PermHistory,
	})
	if creatorID != "" {
		plan = append(plan, discord.PermissionOp{
			TargetID:   creatorID,
			TargetType: discordgo.PermissionOverwriteTypeMember,
			Allow:      discord.PermView | discord.PermSend | discord.PermHistory,
		})
	}
	return plan
}

// closePlan locks the channel: everyone and inherited roles keep view but
// lose send, the creator keeps view but loses send. The claimer's send
// permission is only revoked when configured.
func (s *TicketService) closePlan(ctx context.Context, channel *discordgo.Channel, record domain.TicketRecord) discord.Plan {
	plan := discord.Plan{{
		TargetID:   channel.GuildID,
		TargetType: discordgo.PermissionOverwriteTypeRole,
		Allow:      discord.PermView,
		Deny:       discord.PermSend,
	}}

	for _, overwrite := range s.parentRoleOverwrites(ctx, channel) {
		plan = append(plan, discord.PermissionOp{
			TargetID:   overwrite.ID,
			TargetType: discordgo.PermissionOverwriteTypeRole,
			Allow:      discord.PermView,
			Deny:       discord.PermSend,
		})
	}

	if record.CreatorID != "" {
		plan = append(plan, discord.PermissionOp{
			TargetID:   record.CreatorID,
			TargetType: discordgo.PermissionOverwriteTypeMember,
			Allow:      discord.PermView,
			Deny:       discord.PermSend,
		})
	}
	if s.cfg.RevokeClaimerSendOnClose && record.ClaimerID != "" {
		plan = append(plan, discord.PermissionOp{
			TargetID:   record.ClaimerID,
			TargetType: discordgo.PermissionOverwriteTypeMember,
			Allow:      discord.PermView | discord.PermHistory,
			Deny:       discord.PermSend,
		})
	}
	return plan
}

// replicateCategoryRoles copies view/send grants from the parent category's
// role overwrites onto a fresh ticket channel. Member and everyone entries
// are skipped; individual edit failures are counted and ignored.
func (s *TicketService) replicateCategoryRoles(ctx context.Context, guildID, categoryID, channelID string) {
	category, err := s.gateway.Channel(ctx, categoryID)
	if err != nil {
		s.logger.Warn("failed to fetch ticket category", zap.String("category_id", categoryID), zap.Error(err))
		return
	}

	var plan discord.Plan
	for _, overwrite := range discord.RoleOverwrites(category, guildID) {
		allow := int64(0)
		if overwrite.Allow&discord.PermView != 0 {
			allow |= discord.PermView | discord.PermHistory
		}
		if overwrite.Allow&discord.PermSend != 0 {
			allow |= discord.PermSend
		}
		if allow == 0 {
			continue
		}
		plan = append(plan, discord.PermissionOp{
			TargetID:   overwrite.ID,
			TargetType: discordgo.PermissionOverwriteTypeRole,
			Allow:      allow,
		})
	}

	result := plan.Apply(ctx, s.gateway, channelID)
	s.logPlanResult("create", channelID, result)
}

func (s *TicketService) parentRoleOverwrites(ctx context.Context, channel *discordgo.Channel) []*discordgo.PermissionOverwrite {
	if channel.ParentID == "" {
		return nil
	}
	parent, err := s.gateway.Channel(ctx, channel.ParentID)
	if err != nil {
		s.logger.Warn("failed to fetch parent category", zap.String("parent_id", channel.ParentID), zap.Error(err))
		return nil
	}
	return discord.RoleOverwrites(parent, channel.GuildID)
}

// markIntroClaimed updates the intro embed footer to show the claimer.
func (s *TicketService) markIntroClaimed(ctx context.Context, channelID, claimerTag string) {
	messages, err := s.gateway.RecentMessages(ctx, channelID, 20)
	if err != nil {
		return
	}
	botID := s.gateway.BotUserID()
	for _, message := range messages {
		if message.Author == nil || message.Author.ID != botID || len(message.Components) == 0 || len(message.Embeds) == 0 {
			continue
		}
		embeds := message.Embeds
		embeds[0].Footer = &discordgo.MessageEmbedFooter{Text: "Claimed by " + claimerTag}
		components := message.Components
		edit := &discordgo.MessageEdit{
			Channel:    channelID,
			ID:         message.ID,
			Embeds:     &embeds,
			Components: &components,
		}
		if err := s.gateway.EditMessage(ctx, edit); err != nil {
			s.logger.Debug("failed to edit intro message", zap.String("channel_id", channelID), zap.Error(err))
		}
		return
	}
}

func (s *TicketService) logPlanResult(transition, channelID string, result discord.PlanResult) {
	if s.metrics != nil && len(result.Failed) > 0 {
		s.metrics.PermissionEditFailures.Add(float64(len(result.Failed)))
	}
	if len(result.Failed) == 0 {
		return
	}
	s.logger.Info("permission plan applied partially",
		zap.String("transition", transition),
		zap.String("channel_id", channelID),
		zap.Int("applied", result.Applied),
		zap.Int("failed", len(result.Failed)))
}

func (s *TicketService) publish(ctx context.Context, eventType events.EventType, record domain.TicketRecord, actorID, actorTag string) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ChannelID: record.ChannelID,
		Ticket:    record.Type,
		Number:    record.Number,
		ActorID:   actorID,
		ActorTag:  actorTag,
		Timestamp: time.Now(),
	})
}

// channelLocks serializes lifecycle actions per channel.
type channelLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (l *channelLocks) lock(channelID string) func() {
	l.mu.Lock()
	if l.locks == nil {
		l.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := l.locks[channelID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[channelID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
