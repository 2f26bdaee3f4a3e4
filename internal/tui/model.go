package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/vocabtui/internal/model"
	"github.com/verte-zerg/vocabtui/internal/pronounce"
	"github.com/verte-zerg/vocabtui/internal/quiz"
	"github.com/verte-zerg/vocabtui/internal/review"
	"github.com/verte-zerg/vocabtui/internal/session"
)

const (
	tabList = iota
	tabCards
	tabQuiz
)

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	wordStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	phoneticStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	revealStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	correctStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D893"))
	wrongStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Italic(true)
)

type pronouncedMsg struct {
	word string
	err  error
}

// Model implements the Bubble Tea study UI: a word list browser, a
// flashcard deck, and a multiple-choice quiz over one session.
type Model struct {
	session *session.Session
	gen     *quiz.Generator
	speaker *pronounce.Speaker
	variant pronounce.Variant

	tabs      []string
	activeTab int

	active []model.EntryWithProgress

	wordTable  table.Model
	search     textinput.Model
	searchMode bool

	cardIndex int
	revealed  bool

	question    *quiz.Question
	quizCorrect bool

	status string

	width  int
	height int
}

// NewModel constructs the study TUI over an existing session.
func NewModel(sess *session.Session, gen *quiz.Generator, speaker *pronounce.Speaker, variant pronounce.Variant) *Model {
	search := textinput.New()
	search.Placeholder = "search word or translation"
	search.CharLimit = 64

	wordTable := table.New(
		table.WithColumns(listColumns(80)),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := &Model{
		session:   sess,
		gen:       gen,
		speaker:   speaker,
		variant:   variant,
		tabs:      []string{"List", "Cards", "Quiz"},
		wordTable: wordTable,
		search:    search,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// refresh recomputes the active set from the session and rebuilds the
// view state that depends on it. A membership size change invalidates
// the flashcard position and the current quiz question, since both
// index into the previous set.
func (m *Model) refresh() {
	prev := len(m.active)
	m.active = m.session.ActiveSet()
	if len(m.active) != prev {
		m.cardIndex = 0
		m.revealed = false
		m.question = nil
	}
	if m.cardIndex >= len(m.active) {
		m.cardIndex = 0
	}
	m.wordTable.SetRows(m.listRows())
	if m.question == nil {
		m.nextQuestion()
	}
}

func (m *Model) nextQuestion() {
	question, ok := m.gen.Generate(m.session.QuizSet())
	if !ok {
		m.question = nil
		return
	}
	m.question = question
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.wordTable.SetColumns(listColumns(m.width))
		if h := m.height - 8; h > 3 {
			m.wordTable.SetHeight(h)
		}
		return m, nil
	case pronouncedMsg:
		if msg.err != nil {
			// Pronunciation failures never interrupt the study flow.
			m.status = fmt.Sprintf("no audio for %q", msg.word)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searchMode {
		return m.handleSearchKey(msg)
	}
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.switchTab((m.activeTab + 1) % len(m.tabs))
		return m, nil
	case "shift+tab":
		m.switchTab((m.activeTab + len(m.tabs) - 1) % len(m.tabs))
		return m, nil
	case "/":
		m.searchMode = true
		m.search.Focus()
		return m, textinput.Blink
	case "s":
		m.cycleSort()
		return m, nil
	case "d":
		m.session.Filters.DueOnly = !m.session.Filters.DueOnly
		m.refresh()
		return m, nil
	case "F":
		m.session.Filters.FavoriteOnly = !m.session.Filters.FavoriteOnly
		m.refresh()
		return m, nil
	}
	switch m.activeTab {
	case tabList:
		return m.handleListKey(msg)
	case tabCards:
		return m.handleCardKey(msg)
	default:
		return m.handleQuizKey(msg)
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	case "enter":
		m.searchMode = false
		m.search.Blur()
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.session.Filters.Query != m.search.Value() {
		m.session.Filters.Query = m.search.Value()
		m.refresh()
	}
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "f":
		if item, ok := m.selectedListItem(); ok {
			m.session.ToggleFavorite(context.Background(), item.Value)
			m.refresh()
		}
		return m, nil
	case "k":
		if item, ok := m.selectedListItem(); ok {
			m.session.ToggleKnown(context.Background(), item.Value)
			m.refresh()
		}
		return m, nil
	case "p":
		if item, ok := m.selectedListItem(); ok {
			return m, m.pronounceCmd(item.Value)
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.wordTable, cmd = m.wordTable.Update(msg)
	return m, cmd
}

func (m *Model) handleCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	item, ok := m.currentCard()
	if !ok {
		return m, nil
	}
	switch msg.String() {
	case " ":
		m.revealed = true
		return m, nil
	case "1", "2", "3":
		if !m.revealed {
			return m, nil
		}
		outcome := review.Again
		switch msg.String() {
		case "2":
			outcome = review.Good
		case "3":
			outcome = review.Easy
		}
		m.session.Grade(context.Background(), item.Value, outcome)
		m.status = fmt.Sprintf("graded %q %s", item.Value, outcome)
		m.advanceCard()
		m.refresh()
		return m, nil
	case "right", "n":
		m.advanceCard()
		return m, nil
	case "left":
		if m.cardIndex > 0 {
			m.cardIndex--
		} else {
			m.cardIndex = len(m.active) - 1
		}
		m.revealed = false
		return m, nil
	case "f":
		m.session.ToggleFavorite(context.Background(), item.Value)
		m.refresh()
		return m, nil
	case "k":
		m.session.ToggleKnown(context.Background(), item.Value)
		m.refresh()
		return m, nil
	case "p":
		return m, m.pronounceCmd(item.Value)
	}
	return m, nil
}

func (m *Model) handleQuizKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.question == nil {
		return m, nil
	}
	key := msg.String()
	switch key {
	case "n":
		m.nextQuestion()
		return m, nil
	case "p":
		if m.question.Answered() {
			return m, m.pronounceCmd(m.question.Options[m.question.Target].Value)
		}
		return m, nil
	}
	if idx := optionIndex(key); idx >= 0 {
		correct, ok := m.question.Answer(idx)
		if !ok {
			return m, nil
		}
		m.quizCorrect = correct
		target := m.question.Options[m.question.Target].Value
		m.session.Grade(context.Background(), target, review.Grade(correct))
		// Keep the answered question on screen for feedback; the list
		// and card views still see the updated progress.
		answered := m.question
		m.refresh()
		m.question = answered
		return m, nil
	}
	return m, nil
}

func optionIndex(key string) int {
	switch key {
	case "1":
		return 0
	case "2":
		return 1
	case "3":
		return 2
	case "4":
		return 3
	default:
		return -1
	}
}

// switchTab changes the study mode. The flashcard position belongs to
// the previous mode's view and resets with it.
func (m *Model) switchTab(tab int) {
	m.activeTab = tab
	m.cardIndex = 0
	m.revealed = false
	m.status = ""
}

func (m *Model) advanceCard() {
	if len(m.active) == 0 {
		return
	}
	m.cardIndex = (m.cardIndex + 1) % len(m.active)
	m.revealed = false
}

func (m *Model) cycleSort() {
	for i, key := range model.SortKeys {
		if key == m.session.Sort {
			m.session.Sort = model.SortKeys[(i+1)%len(model.SortKeys)]
			m.refresh()
			return
		}
	}
	m.session.Sort = model.SortAlpha
	m.refresh()
}

func (m *Model) selectedListItem() (model.EntryWithProgress, bool) {
	idx := m.wordTable.Cursor()
	if idx < 0 || idx >= len(m.active) {
		return model.EntryWithProgress{}, false
	}
	return m.active[idx], true
}

func (m *Model) currentCard() (model.EntryWithProgress, bool) {
	if len(m.active) == 0 {
		return model.EntryWithProgress{}, false
	}
	return m.active[m.cardIndex], true
}

func (m *Model) pronounceCmd(word string) tea.Cmd {
	speaker := m.speaker
	variant := m.variant
	return func() tea.Msg {
		err := speaker.Speak(context.Background(), word, variant)
		return pronouncedMsg{word: word, err: err}
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderNav())
	b.WriteString("\n")
	switch m.activeTab {
	case tabList:
		b.WriteString(m.renderList())
	case tabCards:
		b.WriteString(m.renderCard())
	default:
		b.WriteString(m.renderQuiz())
	}
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderNav() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderList() string {
	var b strings.Builder
	if m.searchMode || m.search.Value() != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	if len(m.active) == 0 {
		b.WriteString(emptyStyle.Render("No words match the current filters."))
		return b.String()
	}
	b.WriteString(m.wordTable.View())
	return b.String()
}

func (m *Model) renderCard() string {
	item, ok := m.currentCard()
	if !ok {
		return emptyStyle.Render("No words match the current filters.")
	}
	width := m.contentWidth()
	var b strings.Builder
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Card %d/%d", m.cardIndex+1, len(m.active))))
	b.WriteString("\n\n")
	b.WriteString(wordStyle.Render(item.Value))
	if phonetic := m.phoneticFor(item.WordRecord); phonetic != "" {
		b.WriteString("  ")
		b.WriteString(phoneticStyle.Render("/" + phonetic + "/"))
	}
	b.WriteString("\n\n")
	if !m.revealed {
		b.WriteString(mutedStyle.Render("space to reveal"))
		return b.String()
	}
	if item.Translation != "" {
		b.WriteString(revealStyle.Render(wrapText(item.Translation, width)))
		b.WriteString("\n")
	}
	if item.Definition != "" {
		b.WriteString(wrapText(item.Definition, width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("1 again · 2 good · 3 easy"))
	return b.String()
}

func (m *Model) renderQuiz() string {
	if m.question == nil {
		return emptyStyle.Render("No words available for a quiz.")
	}
	target := m.question.Options[m.question.Target]
	prompt := target.Translation
	if prompt == "" {
		prompt = target.Definition
	}
	if prompt == "" {
		prompt = "(no translation)"
	}
	var b strings.Builder
	b.WriteString(wrapText(prompt, m.contentWidth()))
	b.WriteString("\n\n")
	for i, opt := range m.question.Options {
		line := fmt.Sprintf("%d. %s", i+1, opt.Value)
		switch {
		case m.question.Answered() && i == m.question.Target:
			line = correctStyle.Render(line)
		case m.question.Answered() && i == m.question.Chosen():
			line = wrongStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.question.Answered() {
		if m.quizCorrect {
			b.WriteString(correctStyle.Render("Correct!"))
		} else {
			b.WriteString(wrongStyle.Render("Incorrect."))
		}
		b.WriteString(mutedStyle.Render("  n next · p pronounce"))
	} else {
		b.WriteString(mutedStyle.Render("pick 1-" + fmt.Sprint(len(m.question.Options))))
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	summary := m.session.Summary()
	segments := []string{
		fmt.Sprintf("%s · %d words", m.session.CatalogName, summary.Total),
		fmt.Sprintf("studied %d%%", summary.PctStudied),
		fmt.Sprintf("known %d%%", summary.PctKnown),
		fmt.Sprintf("due %d", summary.Due),
		fmt.Sprintf("sort %s", m.session.Sort),
	}
	if m.session.Filters.DueOnly {
		segments = append(segments, "due-only")
	}
	if m.session.Filters.FavoriteOnly {
		segments = append(segments, "favorites")
	}
	if m.status != "" {
		segments = append(segments, m.status)
	}
	return mutedStyle.Render(strings.Join(segments, "  "))
}

func (m *Model) phoneticFor(rec model.WordRecord) string {
	if m.variant == pronounce.UK && rec.PhoneticUK != "" {
		return rec.PhoneticUK
	}
	if rec.PhoneticUS != "" {
		return rec.PhoneticUS
	}
	return rec.PhoneticUK
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 60
	}
	width := int(float64(m.width) * 0.70)
	if width < 20 {
		width = 20
	}
	return width
}

func (m *Model) listRows() []table.Row {
	rows := make([]table.Row, 0, len(m.active))
	for _, item := range m.active {
		flags := ""
		if item.Progress.Favorite {
			flags += "★"
		}
		if item.Progress.Known {
			flags += "✓"
		}
		rows = append(rows, table.Row{
			item.Value,
			item.Translation,
			fmt.Sprintf("%d", item.Progress.SeenCount),
			fmt.Sprintf("%d", item.Progress.Streak),
			flags,
		})
	}
	return rows
}

func listColumns(totalWidth int) []table.Column {
	translation := totalWidth - 46
	if translation < 16 {
		translation = 16
	}
	return []table.Column{
		{Title: "Word", Width: 20},
		{Title: "Translation", Width: translation},
		{Title: "Seen", Width: 5},
		{Title: "Streak", Width: 6},
		{Title: "Flags", Width: 5},
	}
}
