package commands

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"
)

const commandTimeout = 5 * time.Second

// Request is the parsed message a command runs on
type Request struct {
	Args     []string
	Author   string
	Latency  time.Duration
	Received time.Time
}

// Reply is what a command answers with
type Reply struct {
	Content string
	Embed   *discordgo.MessageEmbed
}

// Command represents a bot command
type Command interface {
	Execute(ctx context.Context, req Request) (*Reply, error)
	Help() string
}

// Registry manages all bot commands. Messages are handled one at a time
// per call; each command gets its own state.
type Registry struct {
	prefix   string
	commands map[string]Command
	log      *zap.Logger
}

// NewRegistry creates a new command registry
func NewRegistry(prefix string, log *zap.Logger) *Registry {
	return &Registry{
		prefix:   prefix,
		commands: make(map[string]Command),
		log:      log.Named("commands"),
	}
}

// Register registers a command with the registry
func (r *Registry) Register(name string, cmd Command) {
	r.commands[strings.ToLower(name)] = cmd
	r.log.Info("Registered command", zap.String("command", name))
}

// Resolve finds the command a message invokes
func (r *Registry) Resolve(content string) (Command, string, []string, bool) {
	// Check if the message starts with the command prefix
	if !strings.HasPrefix(content, r.prefix) {
		return nil, "", nil, false
	}

	// Split the message into command and arguments
	parts := strings.Fields(strings.TrimPrefix(content, r.prefix))
	if len(parts) == 0 {
		return nil, "", nil, false
	}

	name := strings.ToLower(parts[0])
	cmd, ok := r.commands[name]
	if !ok {
		return nil, "", nil, false
	}
	return cmd, name, parts[1:], true
}

// Handle processes a message and executes the appropriate command
func (r *Registry) Handle(s *discordgo.Session, m *discordgo.MessageCreate) {
	cmd, name, args, ok := r.Resolve(m.Content)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	r.log.Info("Executing command",
		zap.String("command", name),
		zap.String("channel_id", m.ChannelID))

	reply, err := cmd.Execute(ctx, Request{
		Args:     args,
		Author:   m.Author.Username,
		Latency:  s.HeartbeatLatency(),
		Received: time.Now(),
	})
	if err != nil {
		r.log.Error("Command failed", zap.String("command", name), zap.Error(err))
		_, _ = s.ChannelMessageSend(m.ChannelID, "Something went wrong running that command.")
		return
	}
	if reply == nil {
		return
	}

	if reply.Embed != nil {
		_, err = s.ChannelMessageSendEmbed(m.ChannelID, reply.Embed)
	} else if reply.Content != "" {
		_, err = s.ChannelMessageSend(m.ChannelID, reply.Content)
	}
	if err != nil {
		r.log.Error("Failed to send reply", zap.String("command", name), zap.Error(err))
	}
}

// GetCommands returns all registered commands
func (r *Registry) GetCommands() map[string]Command {
	return r.commands
}
