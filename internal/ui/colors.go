package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	styles         = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")
	_      Painter = (*Palette)(nil)
)

// interface Painter defines coloring text with [lipgloss] styles
type Painter interface {
	On(string, lipgloss.Color) string // Sets background color
	As(string, lipgloss.Color) string // Sets foreground color
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
	muted lipgloss.Style

	lane        lipgloss.Style
	laneFocused lipgloss.Style
	laneTarget  lipgloss.Style
	laneLocked  lipgloss.Style
	card        lipgloss.Style
	cardActive  lipgloss.Style
	cardGhost   lipgloss.Style
	panel       lipgloss.Style

	accent lipgloss.Color
}

func NewPalette(t, s, e, w, h string) *Palette {
	border := lipgloss.RoundedBorder()
	lane := lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(h))
	card := lipgloss.NewStyle().Border(border).BorderForeground(lipgloss.Color(h)).Padding(0, 1)

	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
		muted: NewStyle(h),

		lane:        lane,
		laneFocused: lane.BorderForeground(lipgloss.Color(t)),
		laneTarget:  lane.BorderForeground(lipgloss.Color(s)).BorderStyle(lipgloss.ThickBorder()),
		laneLocked:  lane.BorderForeground(lipgloss.Color(w)).BorderStyle(lipgloss.NormalBorder()),
		card:        card,
		cardActive:  card.BorderForeground(lipgloss.Color(t)),
		cardGhost:   card.Faint(true),
		panel:       lane.BorderForeground(lipgloss.Color(t)).Padding(0, 1),

		accent: lipgloss.Color(t),
	}
}

func (p *Palette) On(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Background(c).Render(s)
}

func (p *Palette) As(s string, c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render(s)
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
