package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// Gateway is the narrow slice of the chat platform the services depend on.
// It exists so lifecycle logic can be exercised against a fake in tests.
type Gateway interface {
	Channel(ctx context.Context, channelID string) (*discordgo.Channel, error)
	CreateChannel(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error)
	SetPermission(ctx context.Context, channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error
	SetTopic(ctx context.Context, channelID, topic string) error
	Rename(ctx context.Context, channelID, name string) error
	RecentMessages(ctx context.Context, channelID string, limit int) ([]*discordgo.Message, error)
	SendMessage(ctx context.Context, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error)
	EditMessage(ctx context.Context, edit *discordgo.MessageEdit) error
	BotUserID() string
}

type sessionGateway struct {
	session *discordgo.Session
}

// NewGateway wraps a connected discordgo session.
func NewGateway(session *discordgo.Session) Gateway {
	return &sessionGateway{session: session}
}

func (g *sessionGateway) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	return g.session.Channel(channelID, discordgo.WithContext(ctx))
}

func (g *sessionGateway) CreateChannel(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	return g.session.GuildChannelCreateComplex(guildID, data, discordgo.WithContext(ctx))
}

func (g *sessionGateway) SetPermission(ctx context.Context, channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	return g.session.ChannelPermissionSet(channelID, targetID, targetType, allow, deny, discordgo.WithContext(ctx))
}

func (g *sessionGateway) SetTopic(ctx context.Context, channelID, topic string) error {
	_, err := g.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Topic: topic}, discordgo.WithContext(ctx))
	return err
}

func (g *sessionGateway) Rename(ctx context.Context, channelID, name string) error {
	_, err := g.session.ChannelEdit(channelID, &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	return err
}

func (g *sessionGateway) RecentMessages(ctx context.Context, channelID string, limit int) ([]*discordgo.Message, error) {
	return g.session.ChannelMessages(channelID, limit, "", "", "", discordgo.WithContext(ctx))
}

func (g *sessionGateway) SendMessage(ctx context.Context, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	return g.session.ChannelMessageSendComplex(channelID, data, discordgo.WithContext(ctx))
}

func (g *sessionGateway) EditMessage(ctx context.Context, edit *discordgo.MessageEdit) error {
	_, err := g.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx))
	return err
}

func (g *sessionGateway) BotUserID() string {
	if g.session.State != nil && g.session.State.User != nil {
		return g.session.State.User.ID
	}
	return ""
}
