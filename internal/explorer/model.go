// Package explorer provides the Bubble Tea interface for browsing form
// factors, observables and sum-rule diagnostics of one decay channel.
package explorer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/verte-zerg/semilep/internal/formfactor"
	"github.com/verte-zerg/semilep/internal/observable"
	"github.com/verte-zerg/semilep/internal/options"
	"github.com/verte-zerg/semilep/internal/params"
	"github.com/verte-zerg/semilep/internal/report"
)

const (
	tabOverview = iota
	tabFormFactors
	tabObservables
	tabCurves
	tabDiagnostics
)

const (
	plotHeight    = 12
	defaultPoints = 40
	defaultCurve  = "dBR/dq2"
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
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cardStyle   = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	cardTitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cardValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
)

// settingKeys are the options editable from the settings form, in order.
var settingKeys = []string{
	options.KeyLepton,
	options.KeyHeavy,
	options.KeySpectator,
	options.KeyIsospin,
	options.KeyModel,
	options.KeyFormFactors,
}

// Config is the starting point of an explorer session.
type Config struct {
	Params  *params.Parameters
	Options options.Options
	Points  int
	Curve   string
	Workers int
	Logger  *zap.Logger
}

// Model implements the Bubble Tea explorer UI.
type Model struct {
	cfg Config

	data    snapshot
	loading bool
	errMsg  string
	gen     int
	cancel  context.CancelFunc

	diagLoading bool

	tabs      []string
	activeTab int
	viewports []viewport.Model
	obsTable  table.Model
	obsLayout tableLayout

	width  int
	height int

	settingsMode   bool
	settingsInputs []textinput.Model
	settingsIndex  int
	settingsError  string

	curveInputMode  bool
	curveInput      textinput.Model
	curveInputError string
}

type tableLayout struct {
	width    int
	height   int
	rowCount int
}

type loadedMsg struct {
	gen  int
	snap snapshot
	err  error
}

type diagnosticsMsg struct {
	gen   int
	diags []formfactor.Diagnostic
	err   error
}

// NewModel constructs an explorer model. Evaluation starts with Init.
func NewModel(cfg Config) *Model {
	if cfg.Params == nil {
		cfg.Params = params.Defaults()
	}
	if cfg.Options == nil {
		cfg.Options = options.Options{}
	}
	if cfg.Points < 2 {
		cfg.Points = defaultPoints
	}
	if cfg.Curve == "" {
		cfg.Curve = defaultCurve
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	m := &Model{
		cfg:  cfg,
		tabs: []string{"Overview", "Form Factors", "Observables", "Curves", "Diagnostics"},
	}
	m.initInputs()
	m.initCurveInput()
	m.obsTable = buildObsTable(nil, 0, 1)
	m.initViewports()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.reload()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.renderTabContents()
		return m, nil
	case loadedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			m.data = snapshot{}
		} else {
			m.errMsg = ""
			m.data = msg.snap
		}
		m.applyObsTable(true)
		m.renderTabContents()
		if m.activeTab == tabDiagnostics {
			return m, m.loadDiagnostics()
		}
		return m, nil
	case diagnosticsMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.diagLoading = false
		m.data.diagnostics = msg.diags
		m.data.diagErr = msg.err
		m.data.diagDone = true
		m.renderTabContents()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.settingsMode {
			return m.updateSettings(msg)
		}
		if m.curveInputMode {
			return m.updateCurveInput(msg)
		}
		if msg.String() == "q" {
			return m, tea.Quit
		}
		if m.activeTab == tabObservables {
			m.obsTable.Focus()
		} else {
			m.obsTable.Blur()
		}
		switch msg.String() {
		case "left", "h":
			return m, tea.Batch(m.moveTab(-1), tea.ClearScreen)
		case "right", "l":
			return m, tea.Batch(m.moveTab(1), tea.ClearScreen)
		case "=":
			m.cfg.Points = nextPoints(m.cfg.Points)
			return m, m.reload()
		case "-":
			m.cfg.Points = prevPoints(m.cfg.Points)
			return m, m.reload()
		case "r":
			return m, m.reload()
		case "/":
			return m.startSettings()
		case "enter":
			if m.activeTab == tabCurves || m.activeTab == tabOverview {
				return m.startCurveInput()
			}
			return m, nil
		case "g", "home":
			if m.activeTab == tabObservables {
				m.obsTable.GotoTop()
			} else {
				m.viewports[m.activeTab].GotoTop()
			}
			return m, nil
		case "G", "end":
			if m.activeTab == tabObservables {
				m.obsTable.GotoBottom()
			} else {
				m.viewports[m.activeTab].GotoBottom()
			}
			return m, nil
		default:
			if m.activeTab == tabObservables {
				var cmd tea.Cmd
				m.obsTable, cmd = m.obsTable.Update(msg)
				return m, cmd
			}
			vp := m.viewports[m.activeTab]
			var cmd tea.Cmd
			vp, cmd = vp.Update(msg)
			m.viewports[m.activeTab] = vp
			return m, cmd
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.curveInputMode {
		return fitLines(m.renderCurveModal(), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderHeader(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

// reload cancels any running evaluation and starts a new one.
func (m *Model) reload() tea.Cmd {
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.gen++
	m.loading = true
	m.diagLoading = false
	m.renderTabContents()

	gen := m.gen
	req := request{
		params:  m.cfg.Params,
		options: m.cfg.Options,
		points:  m.cfg.Points,
		curve:   m.cfg.Curve,
		workers: m.cfg.Workers,
		logger:  m.cfg.Logger,
	}
	return func() tea.Msg {
		snap, err := evaluate(ctx, req)
		return loadedMsg{gen: gen, snap: snap, err: err}
	}
}

func (m *Model) loadDiagnostics() tea.Cmd {
	if m.loading || m.diagLoading || m.data.diagDone || m.errMsg != "" {
		return nil
	}
	m.diagLoading = true
	m.renderTabContents()
	gen := m.gen
	p, o := m.cfg.Params, m.cfg.Options
	return func() tea.Msg {
		diags, err := evaluateDiagnostics(p, o)
		return diagnosticsMsg{gen: gen, diags: diags, err: err}
	}
}

func (m *Model) initViewports() {
	m.viewports = make([]viewport.Model, len(m.tabs))
	for i := range m.viewports {
		m.viewports[i] = viewport.New(0, 0)
	}
}

func (m *Model) initInputs() {
	m.settingsInputs = make([]textinput.Model, 0, len(settingKeys))
	for _, key := range settingKeys {
		m.settingsInputs = append(m.settingsInputs, newInput(key+": "))
	}
	m.setInputsFromConfig()
}

func (m *Model) initCurveInput() {
	m.curveInput = newInput("Observable: ")
	m.curveInput.Placeholder = defaultCurve
}

func newInput(prompt string) textinput.Model {
	input := textinput.New()
	input.Prompt = prompt
	input.CharLimit = 0
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func (m *Model) setInputsFromConfig() {
	for i, key := range settingKeys {
		m.settingsInputs[i].SetValue(m.cfg.Options.Value(key))
	}
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	tabsHeight := lipgloss.Height(activeNavStyle.Render("X"))
	if tabsHeight < 1 {
		tabsHeight = 1
	}
	headerHeight = tabsHeight + 1
	footerHeight = 1
	if !m.settingsMode && m.errMsg != "" {
		footerHeight++
	}
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, vpHeight, _ := m.layoutHeights()
	for i := range m.viewports {
		m.viewports[i].Width = m.width
		m.viewports[i].Height = vpHeight
	}
	m.setObsTableSize(m.width, vpHeight)
	for i := range m.settingsInputs {
		promptWidth := lipgloss.Width(m.settingsInputs[i].Prompt)
		m.settingsInputs[i].Width = maxInt(10, m.width-promptWidth-2)
	}
	promptWidth := lipgloss.Width(m.curveInput.Prompt)
	m.curveInput.Width = maxInt(10, modalInnerWidth(m.width)-promptWidth)
}

func (m *Model) moveTab(delta int) tea.Cmd {
	count := len(m.tabs)
	if count == 0 {
		return nil
	}
	next := m.activeTab + delta
	if next < 0 {
		next = count - 1
	}
	if next >= count {
		next = 0
	}
	m.activeTab = next
	if m.activeTab == tabObservables {
		m.obsTable.Focus()
	} else {
		m.obsTable.Blur()
	}
	if m.activeTab == tabDiagnostics {
		return m.loadDiagnostics()
	}
	return nil
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(m.tabs))
	for i, tab := range m.tabs {
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(tab))
		} else {
			parts = append(parts, inactiveNavStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *Model) renderHeader() string {
	tabs := padLines(m.renderTabs(), m.width)
	settings := padLines(m.renderSettingsSummary(), m.width)
	return tabs + "\n" + settings
}

func (m *Model) renderSettingsSummary() string {
	parts := make([]string, 0, len(settingKeys)+2)
	for _, key := range settingKeys {
		parts = append(parts, key+"="+m.cfg.Options.Value(key))
	}
	parts = append(parts, "points="+strconv.Itoa(m.cfg.Points), "curve="+m.cfg.Curve)
	summary := "Settings: " + strings.Join(parts, "  ")
	if m.loading {
		summary += "  (evaluating...)"
	}
	return headerStyle.Render(truncateLine(summary, m.width))
}

func (m *Model) renderHelp() string {
	help := "Nav: left/right  Scroll: up/down/pgup/pgdn  Points: -/=  Reload: r  Settings: /  Quit: q"
	if m.activeTab == tabCurves || m.activeTab == tabOverview {
		help = "Nav: left/right  Scroll: up/down/pgup/pgdn  Observable: enter  Points: -/=  Settings: /  Quit: q"
	}
	return headerStyle.Render(truncateLine(help, m.width))
}

func (m *Model) renderSettingsHelp() string {
	return headerStyle.Render("tab/shift+tab: next field  enter: apply  esc: cancel  ctrl+c: quit")
}

func (m *Model) renderFooter() string {
	if m.settingsMode {
		return m.renderSettingsHelp()
	}
	if m.errMsg != "" {
		return m.renderHelp() + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return m.renderHelp()
}

func (m *Model) renderSettingsForm() string {
	lines := []string{"Options (enter to apply, esc to cancel)"}
	for _, input := range m.settingsInputs {
		lines = append(lines, input.View())
	}
	if m.settingsError != "" {
		lines = append(lines, errorStyle.Render(m.settingsError))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderBody(height int) string {
	if m.settingsMode {
		return fitLines(m.renderSettingsForm(), m.width, height)
	}
	if m.activeTab == tabObservables {
		switch {
		case m.loading:
			return fitLines("Evaluating...", m.width, height)
		case len(m.data.summary) == 0:
			return fitLines("No observables evaluated.", m.width, height)
		default:
			return fitLines(tableMutedStyle.Render(m.obsTable.View()), m.width, height)
		}
	}
	return fitLines(m.viewports[m.activeTab].View(), m.width, height)
}

func (m *Model) renderTabContents() {
	if len(m.viewports) == 0 {
		return
	}
	if m.loading {
		for i := range m.viewports {
			m.viewports[i].SetContent("Evaluating...")
		}
		return
	}
	if m.errMsg != "" {
		for i := range m.viewports {
			m.viewports[i].SetContent("Evaluation failed.")
		}
		return
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	m.viewports[tabOverview].SetContent(renderOverview(m.data, width))
	m.viewports[tabFormFactors].SetContent(renderFormFactors(m.data, width))
	m.viewports[tabCurves].SetContent(renderCurve(m.data, width))
	m.viewports[tabDiagnostics].SetContent(m.renderDiagnostics())
}

func renderOverview(s snapshot, width int) string {
	cards := []string{
		metricCard("Channel", s.descriptor.Parent+" -> "+s.descriptor.Daughter+" "+s.lepton+" nu"),
		metricCard("Model", s.options.Value(options.KeyModel)),
		metricCard("Form factors", s.options.Value(options.KeyFormFactors)),
	}
	for _, name := range []string{"BR", "A_FB", "F_H", "A_l"} {
		if r, ok := s.result(name); ok {
			cards = append(cards, metricCard(name, report.FormatValue(r.Value)))
		}
	}
	var summary string
	if width < 100 {
		summary = strings.Join(cards, "\n")
	} else {
		row1 := lipgloss.JoinHorizontal(lipgloss.Top, cards[:3]...)
		row2 := lipgloss.JoinHorizontal(lipgloss.Top, cards[3:]...)
		summary = lipgloss.JoinVertical(lipgloss.Left, row1, row2)
	}
	return strings.TrimRight(summary+"\n\n"+renderCurve(s, width), "\n")
}

func metricCard(label, value string) string {
	content := fmt.Sprintf("%s\n%s", cardTitleStyle.Render(label), cardValueStyle.Render(value))
	return cardStyle.Render(content)
}

func renderFormFactors(s snapshot, width int) string {
	if len(s.formFactors) == 0 {
		return "No form factors evaluated."
	}
	xs := make([]float64, len(s.formFactors))
	fp := make([]float64, len(s.formFactors))
	f0 := make([]float64, len(s.formFactors))
	fT := make([]float64, len(s.formFactors))
	var firstErr error
	for i, pt := range s.formFactors {
		xs[i], fp[i], f0[i], fT[i] = pt.Q2, pt.FPlus, pt.FZero, pt.FT
		if firstErr == nil {
			firstErr = pt.Err
		}
	}
	series := []report.Series{{Name: "f_+", Values: fp}, {Name: "f_0", Values: f0}, {Name: "f_T", Values: fT}}
	var buf bytes.Buffer
	opts := report.PlotOptions{Width: report.PlotWidthFor(width), Height: plotHeight, ForceColor: true,
		XMin: xs[0], XMax: xs[len(xs)-1], XLabel: "q2"}
	if err := report.PlotSeries(&buf, s.descriptor.Process+" form factors", series, opts); err != nil {
		return fmt.Sprintf("Failed to render form factors: %v", err)
	}
	if err := report.RenderSamples(&buf, "q2", xs, series); err != nil {
		return fmt.Sprintf("Failed to render form factors: %v", err)
	}
	out := strings.TrimRight(buf.String(), "\n")
	if firstErr != nil {
		out += "\n" + errorStyle.Render(firstErr.Error())
	}
	return out
}

func renderCurve(s snapshot, width int) string {
	if s.curveErr != nil {
		return errorStyle.Render(fmt.Sprintf("%s: %v", s.curveName, s.curveErr))
	}
	if len(s.curve) == 0 {
		return "No curve evaluated."
	}
	values := make([]float64, len(s.curve))
	for i, p := range s.curve {
		values[i] = p.Value
	}
	var buf bytes.Buffer
	opts := report.PlotOptions{Width: report.PlotWidthFor(width), Height: plotHeight, ForceColor: true,
		XMin: s.curve[0].X, XMax: s.curve[len(s.curve)-1].X, XLabel: s.curveVar}
	if err := report.PlotSeries(&buf, s.curveName, []report.Series{{Name: s.curveName, Values: values}}, opts); err != nil {
		return fmt.Sprintf("Failed to render curve: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderDiagnostics() string {
	switch {
	case m.diagLoading:
		return "Evaluating sum-rule diagnostics..."
	case !m.data.diagDone:
		return "Open this tab to evaluate the sum-rule diagnostics."
	case m.data.diagErr != nil:
		return errorStyle.Render(m.data.diagErr.Error())
	}
	var buf bytes.Buffer
	if err := report.RenderDiagnostics(&buf, "Sum-rule intermediates (D->pi, KKMO2009)", m.data.diagnostics); err != nil {
		return fmt.Sprintf("Failed to render diagnostics: %v", err)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func buildObsTable(results []observable.Result, width, height int) table.Model {
	cols, rows := buildObsTableData(results)
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(maxInt(1, height-1)),
	)
	t.SetWidth(width)
	t.SetStyles(obsTableStyles())
	return t
}

func buildObsTableData(results []observable.Result) ([]table.Column, []table.Row) {
	columns := []table.Column{
		{Title: "Observable", Width: 12},
		{Title: "Value", Width: 13},
		{Title: "Range", Width: 18},
		{Title: "Description", Width: 44},
		{Title: "Error", Width: 30},
	}
	rows := make([]table.Row, 0, len(results))
	for _, r := range results {
		msg := ""
		if r.Err != nil {
			msg = r.Err.Error()
		}
		rows = append(rows, table.Row{
			r.Observable.Name,
			report.FormatValue(r.Value),
			fmt.Sprintf("%s in [%.3f, %.3f]", r.Observable.Variable, r.Lo, r.Hi),
			r.Observable.Description,
			msg,
		})
	}
	return columns, rows
}

func (m *Model) applyObsTable(force bool) {
	cols, rows := buildObsTableData(m.data.summary)
	width := m.width
	if width <= 0 {
		width = 80
	}
	_, height, _ := m.layoutHeights()
	if !force && m.obsLayout.rowCount == len(rows) {
		return
	}
	m.obsTable.SetColumns(cols)
	m.obsTable.SetRows(rows)
	m.obsLayout.rowCount = len(rows)
	m.obsLayout.width = 0
	m.setObsTableSize(width, height)
}

func (m *Model) setObsTableSize(width, height int) {
	viewportHeight := maxInt(1, height-1)
	if m.obsLayout.width == width && m.obsLayout.height == viewportHeight {
		return
	}
	m.obsLayout.width = width
	m.obsLayout.height = viewportHeight
	m.obsTable.SetWidth(width)
	m.obsTable.SetHeight(viewportHeight)
}

func obsTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func (m *Model) startSettings() (tea.Model, tea.Cmd) {
	m.settingsMode = true
	m.settingsError = ""
	m.setInputsFromConfig()
	return m, m.setSettingsIndex(0)
}

func (m *Model) startCurveInput() (tea.Model, tea.Cmd) {
	m.curveInputMode = true
	m.curveInputError = ""
	m.curveInput.SetValue(m.cfg.Curve)
	return m, m.curveInput.Focus()
}

func (m *Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.settingsMode = false
		m.settingsError = ""
		return m, nil
	case tea.KeyEnter:
		if err := m.applySettings(); err != nil {
			m.settingsError = err.Error()
			return m, nil
		}
		m.settingsMode = false
		m.settingsError = ""
		m.updateLayout()
		return m, m.reload()
	case tea.KeyTab:
		return m, m.setSettingsIndex(m.settingsIndex + 1)
	case tea.KeyShiftTab:
		return m, m.setSettingsIndex(m.settingsIndex - 1)
	}
	var cmd tea.Cmd
	m.settingsInputs[m.settingsIndex], cmd = m.settingsInputs[m.settingsIndex].Update(msg)
	return m, cmd
}

func (m *Model) updateCurveInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.curveInputMode = false
		m.curveInputError = ""
		return m, nil
	case tea.KeyEnter:
		name := strings.TrimSpace(m.curveInput.Value())
		if name == "" {
			name = defaultCurve
		}
		o, err := observable.Lookup(name)
		if err == nil && o.Kind != observable.Differential {
			err = errors.New(name + " is not a differential observable")
		}
		if err != nil {
			m.curveInputError = err.Error()
			return m, nil
		}
		m.cfg.Curve = name
		m.curveInputMode = false
		m.curveInputError = ""
		return m, m.reload()
	}
	var cmd tea.Cmd
	m.curveInput, cmd = m.curveInput.Update(msg)
	return m, cmd
}

func (m *Model) setSettingsIndex(idx int) tea.Cmd {
	count := len(m.settingsInputs)
	if count == 0 {
		return nil
	}
	if idx < 0 {
		idx = count - 1
	}
	if idx >= count {
		idx = 0
	}
	m.settingsIndex = idx
	var cmd tea.Cmd
	for i := range m.settingsInputs {
		if i == m.settingsIndex {
			cmd = m.settingsInputs[i].Focus()
		} else {
			m.settingsInputs[i].Blur()
		}
	}
	return cmd
}

// applySettings validates the form by resolving the channel before the
// options replace the current ones.
func (m *Model) applySettings() error {
	next := options.Options{}
	for k, v := range m.cfg.Options {
		next[k] = v
	}
	for i, key := range settingKeys {
		v := strings.TrimSpace(m.settingsInputs[i].Value())
		if v == "" {
			delete(next, key)
			continue
		}
		next[key] = v
	}
	if _, err := observable.New(m.cfg.Params, next); err != nil {
		return err
	}
	m.cfg.Options = next
	return nil
}

func (m *Model) renderCurveModal() string {
	names := make([]string, 0)
	for _, o := range observable.All() {
		if o.Kind == observable.Differential {
			names = append(names, o.Name)
		}
	}
	body := []string{
		cardValueStyle.Render("Select Observable"),
		m.curveInput.View(),
		headerStyle.Render(truncateLine("Available: "+strings.Join(names, " "), modalInnerWidth(m.width))),
		headerStyle.Render("Enter to apply / Esc to cancel"),
	}
	if m.curveInputError != "" {
		body = append(body, errorStyle.Render(m.curveInputError))
	}
	box := modalStyle.Width(modalWidth(m.width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func nextPoints(n int) int {
	if n < 10 {
		return 10
	}
	return minInt(((n/10)+1)*10, 400)
}

func prevPoints(n int) int {
	if n <= 10 {
		return 5
	}
	if n%10 == 0 {
		return n - 10
	}
	return (n / 10) * 10
}

func modalWidth(width int) int {
	return maxInt(40, minInt(width-4, 80))
}

func modalInnerWidth(width int) int {
	w := modalWidth(width)
	w -= 6 // 2 border + 4 padding
	if w < 10 {
		return 10
	}
	return w
}

func padLines(s string, width int) string {
	if width <= 0 || s == "" {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	return strings.Join(lines, "\n")
}

func padLine(line string, width int) string {
	lineWidth := lipgloss.Width(line)
	if lineWidth < width {
		return line + strings.Repeat(" ", width-lineWidth)
	}
	return line
}

func fitLines(s string, width, height int) string {
	if width <= 0 || height <= 0 {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = padLine(line, width)
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return strings.Join(lines, "\n")
}

func truncateLine(s string, width int) string {
	if width <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
