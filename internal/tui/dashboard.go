package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

func newInterfaceTable() table.Model {
	columns := []table.Column{
		{Title: "Index", Width: 6},
		{Title: "Name", Width: 15},
		{Title: "State", Width: 6},
		{Title: "MTU", Width: 6},
		{Title: "MAC Address", Width: 17},
		{Title: "Addresses", Width: 34},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorDeep).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(ColorAccent).
		Background(ColorDeep).
		Bold(false)
	t.SetStyles(s)
	return t
}

func interfaceRows(snap *Snapshot) []table.Row {
	rows := make([]table.Row, len(snap.Links))
	for i, l := range snap.Links {
		mac := "-"
		if l.Info.MAC != nil {
			mac = l.Info.MAC.String()
		}
		addrs := make([]string, len(l.Addresses))
		for j, a := range l.Addresses {
			addrs[j] = a.String()
		}
		rows[i] = table.Row{
			strconv.FormatUint(uint64(l.Info.Index), 10),
			l.Info.Name,
			l.Info.State.String(),
			strconv.FormatUint(uint64(l.Info.MTU), 10),
			mac,
			strings.Join(addrs, ", "),
		}
	}
	return rows
}

func (m Model) viewInterfaces() string {
	title := fmt.Sprintf("INTERFACES (%d)", len(m.Snapshot.Links))
	if m.Snapshot.Hostname != "" {
		title += " on " + m.Snapshot.Hostname
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render(title),
		StyleCard.Render(m.Table.View()),
		StyleSubtitle.Render("updated "+m.Snapshot.Taken.Format("15:04:05")),
	)
}

func (m Model) viewStatistics() string {
	total, up := len(m.Snapshot.Links), m.Snapshot.Up()
	var pct float64
	if total > 0 {
		pct = float64(up) / float64(total)
	}

	summary := StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left,
		StyleTitle.Render("Interface Status"),
		fmt.Sprintf("%s %d/%d up", progressBar(pct), up, total),
		StyleLabel.Render("Inactive: ")+StyleLinkDown.Render(strconv.Itoa(total-up)),
	))

	lines := []string{StyleTitle.Render("Traffic")}
	for _, l := range m.Snapshot.Links {
		lines = append(lines, fmt.Sprintf("%-15s %s  rx %s  tx %s",
			l.Info.Name,
			stateStyle(l.Info.IsUp()).Render(fmt.Sprintf("%-4s", l.Info.State)),
			humanize.IBytes(l.Stats.RxBytes),
			humanize.IBytes(l.Stats.TxBytes),
		))
	}
	traffic := StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))

	return lipgloss.JoinVertical(lipgloss.Left, StyleHeader.Render("STATISTICS"), summary, traffic)
}

func (m Model) viewDetails() string {
	l := m.Selected()
	if l == nil {
		return StyleSubtitle.Render("No interface selected")
	}

	field := func(label, value string) string {
		return StyleLabel.Render(fmt.Sprintf("%-12s", label)) + value
	}
	mac := "-"
	if l.Info.MAC != nil {
		mac = l.Info.MAC.String()
	}

	lines := []string{
		StyleTitle.Render(l.Info.Name),
		field("Index", strconv.FormatUint(uint64(l.Info.Index), 10)),
		field("State", stateStyle(l.Info.IsUp()).Render(l.Info.State.String())),
		field("MTU", strconv.FormatUint(uint64(l.Info.MTU), 10)),
		field("MAC", mac),
		"",
		StyleTitle.Render("Addresses"),
	}
	if len(l.Addresses) == 0 {
		lines = append(lines, StyleSubtitle.Render("none"))
	}
	for _, a := range l.Addresses {
		family := "inet"
		if !a.Is4() {
			family = "inet6"
		}
		lines = append(lines, field(family, a.String()))
	}

	s := l.Stats
	lines = append(lines,
		"",
		StyleTitle.Render("Counters"),
		field("RX", fmt.Sprintf("%s  %d packets  %d errors  %d dropped", humanize.IBytes(s.RxBytes), s.RxPackets, s.RxErrors, s.RxDropped)),
		field("TX", fmt.Sprintf("%s  %d packets  %d errors  %d dropped", humanize.IBytes(s.TxBytes), s.TxPackets, s.TxErrors, s.TxDropped)),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		StyleHeader.Render("DETAILS"),
		StyleCard.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
	)
}

func progressBar(percent float64) string {
	w := 20
	filled := int(float64(w) * percent)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
	return fmt.Sprintf("[%s] %.0f%%", bar, percent*100)
}
