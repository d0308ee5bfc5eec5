package service

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// permissionCall records one SetPermission invocation.
type permissionCall struct {
	ChannelID  string
	TargetID   string
	TargetType discordgo.PermissionOverwriteType
	Allow      int64
	Deny       int64
}

type sentMessage struct {
	ChannelID string
	Data      *discordgo.MessageSend
}

// fakeGateway is an in-memory stand-in for the platform session.
type fakeGateway struct {
	channels    map[string]*discordgo.Channel
	messages    map[string][]*discordgo.Message
	permissions []permissionCall
	sent        []sentMessage
	edits       []*discordgo.MessageEdit
	botID       string
	nextChannel int
	fetchErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		channels: make(map[string]*discordgo.Channel),
		messages: make(map[string][]*discordgo.Message),
	}
}

func (g *fakeGateway) addChannel(channel *discordgo.Channel) {
	g.channels[channel.ID] = channel
}

func (g *fakeGateway) Channel(ctx context.Context, channelID string) (*discordgo.Channel, error) {
	channel, ok := g.channels[channelID]
	if !ok {
		return nil, fmt.Errorf("unknown channel %q", channelID)
	}
	return channel, nil
}

func (g *fakeGateway) CreateChannel(ctx context.Context, guildID string, data discordgo.GuildChannelCreateData) (*discordgo.Channel, error) {
	g.nextChannel++
	channel := &discordgo.Channel{
		ID:                   fmt.Sprintf("chan-%d", g.nextChannel),
		GuildID:              guildID,
		Name:                 data.Name,
		Topic:                data.Topic,
		ParentID:             data.ParentID,
		Type:                 data.Type,
		PermissionOverwrites: data.PermissionOverwrites,
	}
	g.channels[channel.ID] = channel
	return channel, nil
}

func (g *fakeGateway) SetPermission(ctx context.Context, channelID, targetID string, targetType discordgo.PermissionOverwriteType, allow, deny int64) error {
	g.permissions = append(g.permissions, permissionCall{
		ChannelID:  channelID,
		TargetID:   targetID,
		TargetType: targetType,
		Allow:      allow,
		Deny:       deny,
	})
	return nil
}

func (g *fakeGateway) SetTopic(ctx context.Context, channelID, topic string) error {
	channel, ok := g.channels[channelID]
	if !ok {
		return fmt.Errorf("unknown channel %q", channelID)
	}
	channel.Topic = topic
	return nil
}

func (g *fakeGateway) Rename(ctx context.Context, channelID, name string) error {
	channel, ok := g.channels[channelID]
	if !ok {
		return fmt.Errorf("unknown channel %q", channelID)
	}
	channel.Name = name
	return nil
}

func (g *fakeGateway) RecentMessages(ctx context.Context, channelID string, limit int) ([]*discordgo.Message, error) {
	if g.fetchErr != nil {
		return nil, g.fetchErr
	}
	return g.messages[channelID], nil
}

func (g *fakeGateway) SendMessage(ctx context.Context, channelID string, data *discordgo.MessageSend) (*discordgo.Message, error) {
	g.sent = append(g.sent, sentMessage{ChannelID: channelID, Data: data})
	return &discordgo.Message{ID: fmt.Sprintf("msg-%d", len(g.sent)), ChannelID: channelID}, nil
}

func (g *fakeGateway) EditMessage(ctx context.Context, edit *discordgo.MessageEdit) error {
	g.edits = append(g.edits, edit)
	return nil
}

func (g *fakeGateway) BotUserID() string {
	return g.botID
}

// permissionsFor filters recorded calls by target.
func (g *fakeGateway) permissionsFor(targetID string) []permissionCall {
	var calls []permissionCall
	for _, call := range g.permissions {
		if call.TargetID == targetID {
			calls = append(calls, call)
		}
	}
	return calls
}
