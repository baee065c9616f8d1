package commands

import (
	"context"
	"time"
)

// PingCommand는 게이트웨이 지연 시간으로 응답하는 간단한 명령어입니다
type PingCommand struct{}

// NewPingCommand는 새로운 ping 명령어를 생성합니다
func NewPingCommand() *PingCommand {
	return &PingCommand{}
}

// Execute는 Command 인터페이스를 구현합니다
func (c *PingCommand) Execute(_ context.Context, req Request) (*Reply, error) {
	return &Reply{
		Content: "Pong! Latency: " + req.Latency.Round(time.Millisecond).String(),
	}, nil
}

// Help는 명령어 사용법을 반환합니다
func (c *PingCommand) Help() string {
	return "ping - check that the bot is alive"
}
