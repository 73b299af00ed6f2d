// Package bot runs the Telegram interface for remote entry creation. It
// talks to the same service contracts as the HTTP controllers and adds no
// invariants of its own.
package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/hisab-app/hisab-server/common"
	"github.com/hisab-app/hisab-server/lib/service"
	"github.com/ziflex/lecho/v3"
	tele "gopkg.in/telebot.v3"
)

const inlineResultLimit = 5

type TelegramBot struct {
	svc    *service.HisabService
	logger *lecho.Logger
	scorer Scorer
}

func NewTelegramBot(svc *service.HisabService, logger *lecho.Logger) *TelegramBot {
	return &TelegramBot{
		svc:    svc,
		logger: logger,
		scorer: SubsequenceScorer{},
	}
}

// Start runs the bot until ctx is cancelled, reconnecting with exponential
// backoff when the Telegram API is unreachable.
func (b *TelegramBot) Start(ctx context.Context) error {
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	return backoff.Retry(func() error {
		tb, err := tele.NewBot(tele.Settings{
			Token:  b.svc.Config.TelegramBotToken,
			Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		})
		if err != nil {
			b.logger.Errorf("Telegram connect failed: %v", err)
			return err
		}
		b.register(tb)

		go func() {
			<-ctx.Done()
			tb.Stop()
		}()

		b.logger.Infof("Telegram bot @%s started", tb.Me.Username)
		tb.Start()

		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		return errors.New("telegram bot stopped unexpectedly")
	}, policy)
}

func (b *TelegramBot) register(tb *tele.Bot) {
	tb.Handle(tele.OnText, b.handleText)
	tb.Handle(tele.OnQuery, b.handleInlineQuery)
}

func (b *TelegramBot) handleText(c tele.Context) error {
	cmd, err := ParseCommand(c.Text())
	if err != nil {
		return c.Send(usage())
	}

	ctx := context.Background()
	switch cmd.Kind {
	case KindShowAccount:
		return b.showAccount(ctx, c, cmd.AccountID)
	case KindCreateEntry:
		entryType, amount := classifyCommandAmount(cmd.Amount)
		entry, err := b.svc.CreateEntry(ctx, cmd.AccountID, amount, entryType, "")
		if err != nil {
			return c.Send(fmt.Sprintf("Could not create entry: %v", err))
		}
		if err := c.Send(fmt.Sprintf("Recorded %s of %d (entry #%d).", entry.Type, entry.Amount, entry.ID)); err != nil {
			return err
		}
		return b.showAccount(ctx, c, cmd.AccountID)
	case KindCreateEntryWithAccount:
		account, err := b.svc.CreateAccount(ctx, cmd.Name, service.SuggestAccountCode(cmd.Name), "")
		if err != nil {
			return c.Send(fmt.Sprintf("Could not create account %q: %v", cmd.Name, err))
		}
		entryType, amount := classifyCommandAmount(cmd.Amount)
		if _, err := b.svc.CreateEntry(ctx, account.ID, amount, entryType, ""); err != nil {
			return c.Send(fmt.Sprintf("Account %s (%s) created, but the entry failed: %v", account.Name, account.Code, err))
		}
		return b.showAccount(ctx, c, account.ID)
	}
	return c.Send(usage())
}

func (b *TelegramBot) showAccount(ctx context.Context, c tele.Context, accountId int64) error {
	result, err := b.svc.AccountWithEntries(ctx, accountId)
	if err != nil {
		return c.Send(fmt.Sprintf("Could not load account %d: %v", accountId, err))
	}
	return c.Send(formatAccount(result))
}

// handleInlineQuery fuzzy-matches account names and answers with balance
// summaries.
func (b *TelegramBot) handleInlineQuery(c tele.Context) error {
	accounts, err := b.svc.AccountsWithBalance(context.Background(), false)
	if err != nil {
		b.logger.Errorf("inline query failed: %v", err)
		return c.Answer(&tele.QueryResponse{Results: tele.Results{}})
	}

	type scored struct {
		account service.AccountWithBalance
		score   int
	}
	matches := []scored{}
	for _, account := range accounts {
		if s := b.scorer.Score(c.Query().Text, account.Name); s > 0 {
			matches = append(matches, scored{account, s})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > inlineResultLimit {
		matches = matches[:inlineResultLimit]
	}

	results := make(tele.Results, len(matches))
	for i, match := range matches {
		account := match.account
		result := &tele.ArticleResult{
			Title:       fmt.Sprintf("%s (%s)", account.Name, account.Code),
			Description: fmt.Sprintf("%d %s", account.Amount, account.Type),
			Text:        fmt.Sprintf("%s (%s): %d %s", account.Name, account.Code, account.Amount, account.Type),
		}
		result.SetResultID(strconv.FormatInt(account.ID, 10))
		results[i] = result
	}
	return c.Answer(&tele.QueryResponse{Results: results, CacheTime: 1})
}

// classifyCommandAmount maps the signed command amount onto the stored
// (magnitude, type) pair: negative means credit.
func classifyCommandAmount(amount int64) (entryType string, magnitude int64) {
	if amount < 0 {
		return common.EntryTypeCredit, -amount
	}
	return common.EntryTypeDebit, amount
}

func formatAccount(result *service.AccountWithEntries) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (%s)\nBalance: %d %s\n", result.Account.Name, result.Account.Code, result.Amount, result.Type)
	shown := result.Entries
	if len(shown) > 5 {
		shown = shown[:5]
	}
	for _, entry := range shown {
		fmt.Fprintf(&sb, "%s  %d %s", entry.CreatedAt.Format("2006-01-02"), entry.Amount, entry.Type)
		if entry.Description != "" {
			fmt.Fprintf(&sb, "  %s", entry.Description)
		}
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

func usage() string {
	return strings.Join([]string{
		"Commands:",
		"SHOW_ACCOUNT\\n<id>",
		"CREATE_ENTRY\\n<name>,<id>,<amount>",
		"CREATE_ENTRY_WITH_ACCOUNT\\n<name>,<amount>",
		"A negative amount records a credit.",
	}, "\n")
}
