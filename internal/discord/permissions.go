package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Permission bit sets used by the ticket lifecycle.
const (
	PermView    = int64(discordgo.PermissionViewChannel)
	PermSend    = int64(discordgo.PermissionSendMessages)
	PermHistory = int64(discordgo.PermissionReadMessageHistory)
	PermManage  = int64(discordgo.PermissionManageChannels)
)

// PermissionOp is a single overwrite edit against one principal.
type PermissionOp struct {
	TargetID   string
	TargetType discordgo.PermissionOverwriteType
	Allow      int64
	Deny       int64
}

// Plan is an ordered list of permission edits. Each op is applied
// best-effort: a failure is recorded and the rest of the plan continues.
type Plan []PermissionOp

// FailedOp pairs a failed op with its error.
type FailedOp struct {
	Op  PermissionOp
	Err error
}

// PlanResult reports how much of a plan took effect.
type PlanResult struct {
	Applied int
	Failed  []FailedOp
}

// Apply executes every op of the plan against the channel, in order.
// Individual failures never abort the plan; some overwrites legitimately
// target principals the platform rejects.
func (p Plan) Apply(ctx context.Context, gw Gateway, channelID string) PlanResult {
	var result PlanResult
	for _, op := range p {
		if err := gw.SetPermission(ctx, channelID, op.TargetID, op.TargetType, op.Allow, op.Deny); err != nil {
			result.Failed = append(result.Failed, FailedOp{Op: op, Err: err})
			continue
		}
		result.Applied++
	}
	return result
}

// RoleOverwrites filters a channel's overwrite list down to role entries,
// skipping the everyone principal. Member entries are never replicated onto
// ticket channels to avoid over-exposing them.
func RoleOverwrites(channel *discordgo.Channel, guildID string) []*discordgo.PermissionOverwrite {
	if channel == nil {
		return nil
	}
	var roles []*discordgo.PermissionOverwrite
	for _, overwrite := range channel.PermissionOverwrites {
		if overwrite.ID == guildID {
			continue
		}
		if overwrite.Type != discordgo.PermissionOverwriteTypeRole {
			continue
		}
		roles = append(roles, overwrite)
	}
	return roles
}
