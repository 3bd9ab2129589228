package tui

import (
	"fmt"
	"strings"

	"gostays/models"

	"github.com/charmbracelet/lipgloss"
)

const sliderWidth = 30

// View renders the model
func (m Model) View() string {
	if m.sess.FiltersOpen() {
		return m.viewOverlay()
	}
	return m.viewResults()
}

func (m Model) viewResults() string {
	var b strings.Builder

	sel := m.sess.Selection()
	b.WriteString(titleStyle.Render("GoStays"))
	b.WriteString(countStyle.Render(fmt.Sprintf(" %d stays", len(m.listings))))
	b.WriteString("\n")
	if summary := selectionSummary(sel); summary != "" {
		b.WriteString(countStyle.Render("  " + summary))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(statusStyle.Render("search failed: " + m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.listings) == 0 && m.err == nil {
		b.WriteString(optionStyle.Render("  No stays match these filters."))
		b.WriteString("\n")
	}
	for _, l := range m.listings {
		out := l.ToOutput()
		b.WriteString(fmt.Sprintf("  %s  %s\n", priceStyle.Render(fmt.Sprintf("Rs. %6d", out.Price)), out.Title))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("f filters · r refresh · q quit"))
	return b.String()
}

func (m Model) viewOverlay() string {
	d, err := m.sess.Draft()
	if err != nil {
		return statusStyle.Render(err.Error())
	}

	sections := make([]string, 0, sectionCount+2)
	sections = append(sections, titleStyle.Render("Filters"))
	for s := section(0); s < sectionCount; s++ {
		sections = append(sections, m.viewSection(s, d))
	}
	if m.status != "" {
		sections = append(sections, statusStyle.Render(m.status))
	}
	sections = append(sections, helpStyle.Render(
		"tab section · ←/→ move · [/] handle · enter toggle · m/M type price · a apply · c clear · esc close"))

	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewSection(s section, d models.FilterDraft) string {
	head := sectionStyle
	if s == m.section {
		head = sectionFocusedStyle
	}

	var lines []string
	lines = append(lines, head.Render(s.title()))

	if s == sectionPrice {
		lines = append(lines, m.viewPrice(d))
		return strings.Join(lines, "\n")
	}

	for i, opt := range s.options() {
		var picked bool
		switch s {
		case sectionProperty:
			picked = d.PropertyType == opt.Value
		case sectionRoom:
			picked = d.RoomType == opt.Value
		case sectionAmenities:
			picked = d.HasAmenity(opt.Value)
		}

		mark := "[ ]"
		if picked {
			mark = "[x]"
		}
		pointer := "  "
		if s == m.section && i == m.cursor[s] {
			pointer = cursorStyle.Render("> ")
		}
		label := optionStyle.Render(opt.Label)
		if picked {
			label = selectedStyle.Render(opt.Label)
		}
		lines = append(lines, pointer+mark+" "+label)
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewPrice(d models.FilterDraft) string {
	lo := boundOr(d.PriceRange.Min, models.PriceFloor)
	hi := boundOr(d.PriceRange.Max, models.PriceCeiling)

	track := []rune(strings.Repeat("─", sliderWidth))
	track[sliderPos(lo)] = '●'
	track[sliderPos(hi)] = '●'

	minText, maxText := priceText(d.PriceRange.Min), priceText(d.PriceRange.Max)
	switch m.editing {
	case handleMin:
		minText = m.input.View()
	case handleMax:
		maxText = m.input.View()
	}

	handle := "min"
	if m.handle == handleMax {
		handle = "max"
	}
	return fmt.Sprintf("  %s\n  %s - %s  (%s handle)", string(track), minText, maxText, handle)
}

// sliderPos maps a price onto the track, clamped to the ends.
func sliderPos(n int) int {
	if n <= models.PriceFloor {
		return 0
	}
	if n >= models.PriceCeiling {
		return sliderWidth - 1
	}
	return (n - models.PriceFloor) * (sliderWidth - 1) / (models.PriceCeiling - models.PriceFloor)
}

func priceText(p models.PriceBound) string {
	if !p.IsValid() {
		return "NaN"
	}
	return p.String()
}

func selectionSummary(sel models.FilterSelection) string {
	var parts []string
	if pr := sel.PriceRange; pr != nil {
		parts = append(parts, fmt.Sprintf("%s-%s", priceText(pr.Min), priceText(pr.Max)))
	}
	if sel.PropertyType != "" {
		parts = append(parts, sel.PropertyType)
	}
	if sel.RoomType != "" {
		parts = append(parts, sel.RoomType)
	}
	parts = append(parts, sel.Amenities...)
	return strings.Join(parts, " · ")
}
