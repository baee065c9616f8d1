package commands

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/bradykim7/shopfront/internal/catalog"
	"github.com/bradykim7/shopfront/internal/models"
	"github.com/bradykim7/shopfront/internal/page"
	"github.com/bradykim7/shopfront/internal/urlstate"
)

// ShopPageSize는 봇 응답 하나에 표시하는 상품 수입니다
const ShopPageSize = 10

const shopEmbedColor = 0x2E7D32

// ShopCommand는 스토어프론트 쿼리에 맞는 카탈로그 상품을 보여줍니다
type ShopCommand struct {
	store       *catalog.Store
	collections catalog.Collections
	baseURL     string
	log         *zap.Logger
}

// NewShopCommand는 새로운 상품 조회 명령어를 생성합니다
func NewShopCommand(store *catalog.Store, collections catalog.Collections, baseURL string, log *zap.Logger) *ShopCommand {
	return &ShopCommand{
		store:       store,
		collections: collections,
		baseURL:     strings.TrimRight(baseURL, "/"),
		log:         log.Named("shop-command"),
	}
}

// Help는 명령어 사용법을 반환합니다
func (c *ShopCommand) Help() string {
	return "shop [Group=Value,Value ...] [sort=price-asc] [collection=slug] [page=N] - browse the catalog"
}

// Execute는 쿼리를 해석해 페이지 컨트롤러로 결과를 만듭니다
func (c *ShopCommand) Execute(_ context.Context, req Request) (*Reply, error) {
	query, pageNum := ParseShopArgs(req.Args)

	snap := c.store.Snapshot()
	state := urlstate.DecodeQuery(query, snap.Groups, c.collections)
	state.HighlightProduct = ""
	state.Page = pageNum

	ctrl := page.New(snap, c.collections, state, ShopPageSize)
	view := ctrl.View()

	c.log.Debug("상품 조회",
		zap.String("query", query),
		zap.Int("page", pageNum),
		zap.Int("results", view.ResultCount))

	return &Reply{Embed: c.buildEmbed(view, ctrl.URL("/"), req.Author)}, nil
}

// ParseShopArgs는 명령어 인자를 쿼리 문자열과 페이지 번호로 변환합니다.
// "&"를 포함하거나 "?"로 시작하는 인자 하나는 쿼리 문자열 그대로 사용하고,
// 그 외에는 인자 하나를 key=value 쌍 하나로 봅니다.
func ParseShopArgs(args []string) (string, int) {
	pageNum := 1
	if len(args) == 1 && (strings.HasPrefix(args[0], "?") || strings.Contains(args[0], "&")) {
		values, _ := url.ParseQuery(strings.TrimPrefix(args[0], "?"))
		if n, err := strconv.Atoi(values.Get("page")); err == nil && n > 0 {
			pageNum = n
		}
		values.Del("page")
		return values.Encode(), pageNum
	}

	var pairs []string
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			continue
		}
		// 그룹 이름의 공백은 밑줄로 입력합니다 (예: Product_Type=Boots)
		key = strings.ReplaceAll(key, "_", " ")
		if strings.EqualFold(key, "page") {
			if n, err := strconv.Atoi(value); err == nil && n > 0 {
				pageNum = n
			}
			continue
		}
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}
	return strings.Join(pairs, "&"), pageNum
}

func (c *ShopCommand) buildEmbed(v page.View, path, author string) *discordgo.MessageEmbed {
	start := (v.Page - 1) * ShopPageSize
	if start > len(v.Products) {
		start = len(v.Products)
	}
	shown := v.Products[start:]

	var b strings.Builder
	fmt.Fprintf(&b, "%d products · %s", v.ResultCount, v.Sort.Label())
	if v.ActiveCount > 0 {
		fmt.Fprintf(&b, " · %d filters", v.ActiveCount)
	}
	b.WriteString("\n\n")

	switch {
	case v.Empty:
		b.WriteString("No products match these filters.")
	case len(shown) == 0:
		fmt.Fprintf(&b, "No more products past page %d.", (len(v.Products)+ShopPageSize-1)/ShopPageSize)
	}
	for i, p := range shown {
		fmt.Fprintf(&b, "%d. **%s** %s", start+i+1, p.Name, p.GetPriceString())
		if p.Badge != models.BadgeNone && p.Badge != "" {
			fmt.Fprintf(&b, " `%s`", p.Badge)
		}
		if !p.Available {
			b.WriteString(" (sold out)")
		}
		b.WriteString("\n")
	}

	embed := &discordgo.MessageEmbed{
		Title:       v.Title,
		URL:         c.baseURL + path,
		Description: b.String(),
		Color:       shopEmbedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("Page %d · Requested by %s", v.Page, author),
		},
	}
	if v.HasMore {
		embed.Footer.Text += fmt.Sprintf(" · more with page=%d", v.Page+1)
	}
	return embed
}
