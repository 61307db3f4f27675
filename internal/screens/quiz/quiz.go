// Package quiz is the interactive simulation screen: it walks the engine
// through a question set, one answer at a time, and saves the run when the
// last question is answered.
package quiz

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certquiz/internal/files"
	"github.com/abhisek/certquiz/internal/simulation"
	"github.com/abhisek/certquiz/internal/ui/components"
	"github.com/abhisek/certquiz/internal/ui/theme"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseQuitConfirm
	phaseDone
	phaseError
)

type runSavedMsg struct {
	run simulation.Run
	err error
}

// Model is the Bubble Tea model for one simulation session.
type Model struct {
	engine *simulation.Engine
	dir    files.Dir
	input  components.AnswerInput

	phase    phase
	savedRun simulation.Run
	errMsg   string
	width    int
	height   int
}

// New builds the screen around an already-loaded engine.
func New(engine *simulation.Engine, dir files.Dir) Model {
	return Model{
		engine: engine,
		dir:    dir,
		input:  components.NewAnswerInput("Type your answer...", 200),
	}
}

func (m Model) Init() tea.Cmd {
	return m.input.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case runSavedMsg:
		if msg.err != nil {
			m.phase = phaseError
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.phase = phaseDone
		m.savedRun = msg.run
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.phase == phaseAnswering {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.phase {
	case phaseQuitConfirm:
		switch key {
		case "y", "Y":
			return m, tea.Quit
		case "n", "N", "esc":
			m.phase = phaseAnswering
		}
		return m, nil

	case phaseDone, phaseError:
		return m, tea.Quit

	case phaseAnswering:
		switch key {
		case "esc":
			m.phase = phaseQuitConfirm
			return m, nil
		case "ctrl+b":
			if m.engine.GoBack() {
				m.input.Reset()
			}
			return m, nil
		case "enter":
			answer := strings.TrimSpace(m.input.Value())
			if answer == "" {
				return m, nil
			}
			if err := m.engine.SubmitAnswer(answer); err != nil {
				m.phase = phaseError
				m.errMsg = err.Error()
				return m, nil
			}
			m.input.Reset()
			if m.engine.IsComplete() {
				return m, m.saveRun()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) saveRun() tea.Cmd {
	return func() tea.Msg {
		run, err := m.engine.Save(m.dir)
		return runSavedMsg{run: run, err: err}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 {
		return v
	}
	v.SetContent(lipgloss.NewStyle().Padding(1, 2).Width(m.width).Render(m.content()))
	return v
}

func (m Model) content() string {
	switch m.phase {
	case phaseError:
		return theme.ScoreLow.Render("Error: "+m.errMsg) + "\n\n" +
			theme.Hint.Render("Press any key to exit.")
	case phaseQuitConfirm:
		return theme.Body.Render("Abandon this simulation? Answers so far will not be saved.") + "\n\n" +
			theme.Hint.Render("Y to quit · N to keep going")
	case phaseDone:
		return m.summaryView()
	default:
		return m.questionView()
	}
}

func (m Model) questionView() string {
	q, err := m.engine.Current()
	if err != nil {
		return theme.ScoreLow.Render(err.Error())
	}

	progress := components.NewProgressBar(
		fmt.Sprintf("Question %d/%d", m.engine.Index()+1, m.engine.Total()),
		float64(m.engine.Index())/float64(m.engine.Total()),
		false,
		min(m.width-4, 60),
	)

	card := theme.Card.Width(min(m.width-4, 80)).Render(
		theme.Subtitle.Render(q.SkillArea) + "\n\n" + theme.Body.Render(q.Question),
	)

	hint := "Enter submit · Ctrl+B previous · Esc quit"
	if q.Type == "yes_no" {
		hint = "Answer Yes or No · " + hint
	}

	return strings.Join([]string{
		progress.View(),
		"",
		card,
		"",
		m.input.View(),
		"",
		theme.Hint.Render(hint),
	}, "\n")
}

func (m Model) summaryView() string {
	return strings.Join([]string{
		theme.Title.Render("Simulation complete"),
		"",
		theme.Body.Render(fmt.Sprintf("%d answers recorded for %s.",
			len(m.savedRun.QuestionsAttempted), m.savedRun.ExamCode)),
		theme.Subtitle.Render("Run " + m.savedRun.RunID),
		"",
		theme.Body.Render(fmt.Sprintf("Score it with `certquiz feedback --exam %s`.", m.savedRun.ExamCode)),
		"",
		theme.Hint.Render("Press any key to exit."),
	}, "\n")
}

// Run starts the interactive simulation program.
func Run(engine *simulation.Engine, dir files.Dir) error {
	p := tea.NewProgram(New(engine, dir))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running simulation:", err)
		return err
	}
	return nil
}
