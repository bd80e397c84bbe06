package explorer

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/semilep/internal/options"
)

func loadedModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel(Config{Points: 5, Options: options.Options{"l": "e"}, Workers: 2})
	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(loadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 48})
	m.Update(msg)
	return m
}

func TestExplorerLoadsSnapshot(t *testing.T) {
	m := loadedModel(t)
	assert.False(t, m.loading)
	assert.Empty(t, m.errMsg)
	require.Len(t, m.data.formFactors, 5)
	require.Len(t, m.data.curve, 5)
	assert.NotEmpty(t, m.data.summary)

	view := m.View()
	assert.Contains(t, view, "Overview")
	assert.Contains(t, view, "Form factors")
	assert.Contains(t, view, "BSZ2015")
}

func TestExplorerIgnoresStaleResults(t *testing.T) {
	m := loadedModel(t)
	before := m.data
	m.Update(loadedMsg{gen: m.gen - 1, err: assert.AnError})
	assert.Empty(t, m.errMsg)
	assert.Equal(t, len(before.summary), len(m.data.summary))
}

func TestExplorerTabsAndQuit(t *testing.T) {
	m := loadedModel(t)
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tabFormFactors, m.activeTab)
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tabDiagnostics, m.activeTab)
	assert.True(t, m.diagLoading)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestExplorerSettingsRejectInvalidOptions(t *testing.T) {
	m := loadedModel(t)
	m.startSettings()
	require.True(t, m.settingsMode)
	m.settingsInputs[0].SetValue("nu")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.True(t, m.settingsMode)
	assert.NotEmpty(t, m.settingsError)
	assert.Equal(t, "e", m.cfg.Options.Value(options.KeyLepton))

	m.settingsInputs[0].SetValue("mu")
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.settingsMode)
	assert.Equal(t, "mu", m.cfg.Options.Value(options.KeyLepton))
	assert.True(t, m.loading)
}

func TestExplorerCurveSelection(t *testing.T) {
	m := loadedModel(t)
	m.startCurveInput()
	m.curveInput.SetValue("BR")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.curveInputMode)
	assert.Contains(t, m.curveInputError, "differential")

	m.curveInput.SetValue("A_FB(q2)")
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, m.curveInputMode)
	assert.Equal(t, "A_FB(q2)", m.cfg.Curve)
}

func TestPointSteps(t *testing.T) {
	assert.Equal(t, 10, nextPoints(5))
	assert.Equal(t, 50, nextPoints(40))
	assert.Equal(t, 50, nextPoints(43))
	assert.Equal(t, 400, nextPoints(400))
	assert.Equal(t, 30, prevPoints(40))
	assert.Equal(t, 40, prevPoints(43))
	assert.Equal(t, 5, prevPoints(10))
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "abc", truncateLine("abc", 5))
	assert.Equal(t, "ab...", truncateLine("abcdefg", 5))
}
