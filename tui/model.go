// Package tui hosts the filter overlay in a terminal.
package tui

import (
	"errors"

	"gostays/models"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// PriceStep is how far one arrow key moves a slider handle.
const PriceStep = 500

type section int

const (
	sectionPrice section = iota
	sectionProperty
	sectionRoom
	sectionAmenities
	sectionCount
)

func (s section) title() string {
	switch s {
	case sectionPrice:
		return "Price range"
	case sectionProperty:
		return "Property Type"
	case sectionRoom:
		return "Room Type"
	default:
		return "Amenities"
	}
}

func (s section) options() []models.FilterOption {
	switch s {
	case sectionProperty:
		return models.PropertyTypeOptions()
	case sectionRoom:
		return models.RoomTypeOptions()
	case sectionAmenities:
		return models.AmenityOptions()
	default:
		return nil
	}
}

const (
	handleMin = iota
	handleMax
)

// SearchFunc runs a listing search for the applied selection.
type SearchFunc func(models.FilterSelection) ([]models.Listing, error)

// listingsMsg carries search results back into the update loop.
type listingsMsg struct {
	listings []models.Listing
	err      error
}

// Model is the Bubble Tea model: a result list with the filter overlay on top.
type Model struct {
	sess   *models.SearchSession
	search SearchFunc

	listings []models.Listing
	err      error
	status   string

	section section
	cursor  [sectionCount]int
	handle  int
	editing int // handleMin/handleMax while a price text input is focused, else -1
	input   textinput.Model

	width, height int
}

// New creates a model over sess; search is run whenever the applied selection changes.
func New(sess *models.SearchSession, search SearchFunc) Model {
	in := textinput.New()
	in.CharLimit = 12
	in.Placeholder = "price"

	return Model{
		sess:    sess,
		search:  search,
		editing: -1,
		input:   in,
	}
}

// Init runs the first search
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

func (m Model) refresh() tea.Cmd {
	sel := m.sess.Selection()
	search := m.search
	return func() tea.Msg {
		ls, err := search(sel)
		return listingsMsg{listings: ls, err: err}
	}
}

// Update handles messages for the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case listingsMsg:
		m.listings, m.err = msg.listings, msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.editing >= 0 {
			return m.updateEditing(msg)
		}
		if m.sess.FiltersOpen() {
			return m.updateOverlay(msg)
		}
		return m.updateResults(msg)
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "f":
		m.sess.OpenFilters()
		m.section, m.cursor, m.handle, m.status = sectionPrice, [sectionCount]int{}, handleMin, ""
	case "r":
		return m, m.refresh()
	}
	return m, nil
}

func (m Model) updateOverlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "tab":
		m.section = (m.section + 1) % sectionCount
	case "shift+tab":
		m.section = (m.section + sectionCount - 1) % sectionCount

	case "up", "k":
		m.moveCursor(-1)
	case "down", "j":
		m.moveCursor(1)

	case "left", "h":
		if m.section == sectionPrice {
			m.slide(-PriceStep)
		} else {
			m.moveCursor(-1)
		}
	case "right", "l":
		if m.section == sectionPrice {
			m.slide(PriceStep)
		} else {
			m.moveCursor(1)
		}
	case "[":
		m.handle = handleMin
	case "]":
		m.handle = handleMax

	case "enter", " ":
		m.toggle()

	case "m":
		return m.startEditing(handleMin)
	case "M":
		return m.startEditing(handleMax)

	case "c":
		m.edit(func(o *models.FilterOverlay) error {
			o.Clear()
			return nil
		})
	case "a":
		if _, err := m.sess.ApplyFilters(); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.refresh()
	case "esc":
		if err := m.sess.CancelFilters(); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

func (m Model) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		raw, which := m.input.Value(), m.editing
		m.edit(func(o *models.FilterOverlay) error {
			if which == handleMin {
				o.SetMinPriceText(raw)
			} else {
				o.SetMaxPriceText(raw)
			}
			return nil
		})
		m.stopEditing()
		return m, nil
	case "esc":
		m.stopEditing()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) startEditing(which int) (tea.Model, tea.Cmd) {
	d, err := m.sess.Draft()
	if err != nil {
		m.status = err.Error()
		return m, nil
	}
	bound := d.PriceRange.Min
	if which == handleMax {
		bound = d.PriceRange.Max
	}

	m.editing = which
	m.section = sectionPrice
	m.input.SetValue(bound.Raw())
	m.input.CursorEnd()
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = -1
	m.input.Blur()
	m.input.Reset()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.section.options())
	if n == 0 {
		return
	}
	m.cursor[m.section] = (m.cursor[m.section] + delta + n) % n
}

// slide moves the focused handle. Handles are clamped to the slider bounds and
// may not pass each other; an invalid bound starts from its end of the slider.
func (m *Model) slide(delta int) {
	d, err := m.sess.Draft()
	if err != nil {
		m.status = err.Error()
		return
	}
	lo := boundOr(d.PriceRange.Min, models.PriceFloor)
	hi := boundOr(d.PriceRange.Max, models.PriceCeiling)
	if m.handle == handleMin {
		lo += delta
	} else {
		hi += delta
	}
	m.edit(func(o *models.FilterOverlay) error {
		return o.SetPriceRange(lo, hi)
	})
}

func (m *Model) toggle() {
	opts := m.section.options()
	if len(opts) == 0 {
		return
	}
	v := opts[m.cursor[m.section]].Value
	s := m.section
	m.edit(func(o *models.FilterOverlay) error {
		switch s {
		case sectionProperty:
			o.TogglePropertyType(v)
		case sectionRoom:
			o.ToggleRoomType(v)
		case sectionAmenities:
			o.ToggleAmenity(v)
		}
		return nil
	})
}

func (m *Model) edit(fn func(o *models.FilterOverlay) error) {
	if _, err := m.sess.Edit(fn); err != nil {
		if errors.Is(err, models.ErrPriceHandlesCrossed) {
			m.status = "price handles cannot cross"
			return
		}
		m.status = err.Error()
	}
}

func boundOr(p models.PriceBound, fallback int) int {
	if n, ok := p.Int(); ok {
		return n
	}
	return fallback
}
