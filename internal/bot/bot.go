package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/bot/commands"
	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/pkg/config"
)

// Bot은 카탈로그 조회에 응답하는 Discord 봇을 나타냅니다
type Bot struct {
	session     *discordgo.Session
	config      *config.Config
	log         *zap.Logger
	commands    *commands.Registry
	store       *catalog.Store
	collections catalog.Collections
}

// New는 카탈로그 스토어를 사용하는 새로운 Bot 인스턴스를 생성합니다
func New(cfg *config.Config, store *catalog.Store, collections catalog.Collections, log *zap.Logger) (*Bot, error) {
	// Discord 세션 생성
	session, err := discordgo.New("Bot " + cfg.DiscordToken)
	if err != nil {
		return nil, fmt.Errorf("Discord 세션 생성 오류: %w", err)
	}

	// 봇 인스턴스 생성
	bot := &Bot{
		session:     session,
		config:      cfg,
		log:         log.Named("bot"),
		commands:    commands.NewRegistry(cfg.CommandPrefix, log),
		store:       store,
		collections: collections,
	}

	// 이벤트 핸들러 설정
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onMessageCreate)

	// Intents 설정
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentsMessageContent

	// 명령어 등록
	bot.registerCommands()

	return bot, nil
}

// Start는 봇을 시작하고 컨텍스트가 취소될 때까지 대기합니다
func (b *Bot) Start(ctx context.Context) error {
	// Discord에 연결
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("Discord 세션 열기 오류: %w", err)
	}

	b.log.Info("봇이 실행 중입니다. 종료하려면 CTRL-C를 누르세요.")

	// 컨텍스트가 취소될 때까지 대기
	<-ctx.Done()

	// 리소스 정리
	return b.Close()
}

// Close는 Discord 연결을 종료합니다
func (b *Bot) Close() error {
	if err := b.session.Close(); err != nil {
		return fmt.Errorf("Discord 세션 닫기 오류: %w", err)
	}
	return nil
}

// onReady는 봇이 준비되었을 때의 이벤트 핸들러입니다
func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.log.Info("봇 로그인 완료", zap.String("username", r.User.Username))

	// 상태 설정
	if err := s.UpdateGameStatus(0, b.config.CommandPrefix+"shop"); err != nil {
		b.log.Error("상태 설정 오류", zap.Error(err))
	}
}

// onMessageCreate는 메시지가 생성되었을 때의 이벤트 핸들러입니다
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	// 봇 자신의 메시지는 무시
	if m.Author == nil || m.Author.ID == s.State.User.ID {
		return
	}

	// 메시지 로깅
	b.log.Debug("메시지 수신됨",
		zap.String("guild_id", m.GuildID),
		zap.String("channel_id", m.ChannelID),
		zap.String("user_id", m.Author.ID))

	// 명령어 처리
	b.commands.Handle(s, m)
}

// registerCommands는 모든 명령어를 등록합니다
func (b *Bot) registerCommands() {
	// Ping 명령어 등록
	b.commands.Register("ping", commands.NewPingCommand())

	// 상품 조회 명령어 등록
	b.commands.Register("shop", commands.NewShopCommand(b.store, b.collections, b.config.StorefrontBaseURL, b.log))
}
