package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/pitchlucy/lucy/internal/domain/board"
	"github.com/pitchlucy/lucy/internal/model"
)

const maxPitchPreview = 80

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderBounty(w io.Writer, bounty string) {
	fmt.Fprintf(w, "Bounty: $%s\n", bounty)
}

func renderLeaderboard(w io.Writer, entries []model.LeaderboardEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No players yet.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tADDRESS\tSCORE")
	for i, entry := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%g\n", i+1, board.ShortAddress(entry.UserAddress, 6, 4), entry.Score)
	}
	tw.Flush()
}

func renderWinners(w io.Writer, winners []model.LeaderboardEntry) {
	if len(winners) == 0 {
		fmt.Fprintln(w, "No winners yet.")
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "#\tADDRESS\tPRIZE")
	for i, entry := range winners {
		fmt.Fprintf(tw, "%d\t%s\t$%.2f\n", i+1, board.ShortAddress(entry.UserAddress, 6, 4), entry.Prize)
	}
	tw.Flush()
}

func renderStats(w io.Writer, stats model.Stats) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Total users\t%d\n", stats.TotalUsers)
	fmt.Fprintf(tw, "Total prompts\t%d\n", stats.TotalPrompts)
	fmt.Fprintf(tw, "Total winners\t%d\n", stats.TotalWinners)
	fmt.Fprintf(tw, "Avg tries per user\t%.2f\n", stats.AvgTriesPerUser)
	tw.Flush()
}

func renderTreasury(w io.Writer, treasury board.Treasury) {
	fmt.Fprintf(w, "Treasury: $%.2f\n", treasury.TotalUSD)
	if len(treasury.Tokens) == 0 {
		return
	}

	tw := newTable(w)
	fmt.Fprintln(tw, "TOKEN\tVALUE\tBALANCE\tSHARE")
	for _, token := range treasury.Tokens {
		fmt.Fprintf(tw, "%s\t$%.2f\t%.4f\t%.0f%%\n", token.Symbol, token.ValueUSD, token.BalanceFormatted, token.Percent)
	}
	tw.Flush()
}

func renderPortfolio(w io.Writer, history board.PortfolioHistory) {
	if len(history.Labels) == 0 {
		fmt.Fprintln(w, "No portfolio history.")
		return
	}

	tw := newTable(w)
	header := []string{"DATE"}
	for _, series := range history.Series {
		header = append(header, series.Symbol)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))

	for i, label := range history.Labels {
		row := []string{label}
		for _, series := range history.Series {
			if v := series.Values[i]; v != nil {
				row = append(row, fmt.Sprintf("$%.2f", *v))
			} else {
				row = append(row, "-")
			}
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func renderChat(w io.Writer, view board.ChatView, page int, feed board.ChatFeedPage, hasNext bool) {
	title := fmt.Sprintf("Pitches (%s), page %d", view, page)
	if feed.TokenName != "" {
		title += " about " + feed.TokenName
	}
	fmt.Fprintln(w, title)

	if len(feed.Messages) == 0 {
		fmt.Fprintln(w, "No pitches.")
		return
	}

	for _, msg := range feed.Messages {
		verdict := "rejected"
		if msg.Success {
			verdict = fmt.Sprintf("won $%.2f", msg.Prize)
		}

		fmt.Fprintf(w, "\n%s %s\n", board.ShortAddress(msg.UserAddress, 6, 4), verdict)
		fmt.Fprintf(w, "  Pitch: %s\n", preview(msg.Pitch))
		fmt.Fprintf(w, "  Lucy:  %s\n", preview(msg.AIResponseText))
	}

	if hasNext {
		fmt.Fprintf(w, "\nMore with --page %d\n", page+1)
	}
}

func renderLastPitches(w io.Writer, pitches []board.LastPitch) {
	if len(pitches) == 0 {
		fmt.Fprintln(w, "No pitches yet.")
		return
	}

	now := time.Now().UTC()
	tw := newTable(w)
	for _, p := range pitches {
		fmt.Fprintf(tw, "%s\tLast %s\n", board.ShortAddress(p.Address, 6, 4), board.RelativeTime(now, p.Timestamp))
	}
	tw.Flush()
}

func renderFAQ(w io.Writer, accordion *board.Accordion) {
	fmt.Fprintf(w, "// %s\n", accordion.Section())
	for i, faq := range board.FAQs(accordion.Section()) {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, faq.Question)
		if accordion.IsOpen(i) {
			fmt.Fprintf(w, "   %s\n", faq.Answer)
		}
	}
}

func preview(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	runes := []rune(text)
	if len(runes) <= maxPitchPreview {
		return text
	}

	return string(runes[:maxPitchPreview-3]) + "..."
}
