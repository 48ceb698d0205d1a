package app

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/Gaurav-Gosain/boxdeck/internal/accounts"
	"github.com/Gaurav-Gosain/boxdeck/internal/config"
	"github.com/Gaurav-Gosain/boxdeck/internal/geometry"
	"github.com/Gaurav-Gosain/boxdeck/internal/hotkey"
	"github.com/Gaurav-Gosain/boxdeck/internal/panels"
	"github.com/Gaurav-Gosain/boxdeck/internal/theme"
)

const (
	glyphVSplit = "│"
	glyphHSplit = "─"
	glyphCursor = "›"
	glyphMark   = "●"
)

var panelTitles = map[geometry.Kind]string{
	geometry.KindAccounts:  "Account data",
	geometry.KindGenerator: "Field generator",
	geometry.KindImport:    "Import accounts",
	geometry.KindSettings:  "Generator hotkeys",
}

// fit truncates or pads s to exactly width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "…")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// fitLines pads or cuts lines to exactly height entries.
func fitLines(lines []string, height int) []string {
	if len(lines) > height {
		return lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lines
}

func fg(c color.Color) lipgloss.Style { return lipgloss.NewStyle().Foreground(c) }

// View implements tea.Model.
func (d *Dashboard) View() tea.View {
	var view tea.View

	view.SetContent(lipgloss.Sprint(d.GetCanvas().Render()))

	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	return view
}

// GetCanvas composes the base layout, the open panels and the help overlay.
func (d *Dashboard) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(max(d.Width, 0), max(d.Height, 0))
	if d.Width <= 0 || d.Height <= 0 {
		return canvas
	}

	layers := []*lipgloss.Layer{
		lipgloss.NewLayer(d.renderBase()).X(0).Y(0).Z(config.ZIndexBase).ID("base"),
	}

	for i, k := range geometry.Kinds {
		w := d.Panels.Window(k)
		if !w.IsOpen() || w.Minimized() {
			continue
		}
		r := w.Rect()
		content := d.renderPanel(k, r)
		if content == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(content).
			X(r.X).Y(r.Y).Z(config.ZIndexPanels+i).ID(k.String()))
	}

	if d.showHelp {
		help := lipgloss.Place(d.Width, d.Height, lipgloss.Center, lipgloss.Center, d.renderHelp())
		layers = append(layers, lipgloss.NewLayer(help).X(0).Y(0).Z(config.ZIndexHelp).ID("help"))
	}

	canvas.Compose(lipgloss.NewCompositor(layers...))
	return canvas
}

// renderBase draws the sidebar, both splitter handles, the mail region and
// the dock as full-width lines.
func (d *Dashboard) renderBase() string {
	body := d.bodyHeight()
	sb := d.sidebarRegion()
	mr := d.mailRegion()

	left := d.sidebarLines(sb.Width, body)
	right := d.mailLines(mr.Width, body)

	handle := fg(theme.SplitterIdle())
	if d.Sidebar.Dragging() {
		handle = fg(theme.SplitterActive())
	}
	showHandle := d.sidebarHandleX() < d.Width

	lines := make([]string, 0, d.Height)
	for y := range body {
		var b strings.Builder
		b.WriteString(fit(left[y], sb.Width))
		if showHandle {
			b.WriteString(handle.Render(glyphVSplit))
			b.WriteString(fit(right[y], mr.Width))
		}
		lines = append(lines, fit(b.String(), d.Width))
	}
	lines = append(lines, d.dockLines()...)
	return strings.Join(fitLines(lines, d.Height), "\n")
}

// sidebarLines renders the account list and the optional generator summary.
func (d *Dashboard) sidebarLines(width, height int) []string {
	title := fmt.Sprintf(" Accounts %d", len(d.rows))
	if n := d.Selection.Count(); n > 0 {
		title += fmt.Sprintf(" · %d selected", n)
	}
	lines := []string{fg(theme.PanelTitle()).Bold(true).Render(fit(title, width))}

	listRows := d.sidebarListRows()
	off := d.sidebarOffset()
	anchor, hasAnchor := d.Selection.Anchor()
	for i := off; i < off+listRows; i++ {
		if i >= len(d.rows) {
			lines = append(lines, "")
			continue
		}
		lines = append(lines, d.accountLine(d.rows[i], i, width, hasAnchor && anchor == i, false))
	}
	if len(d.rows) == 0 && listRows > 0 {
		lines[1] = fg(theme.HelpGray()).Render(" No accounts. Press " +
			d.Registry.GetKeysForDisplay("toggle_import") + " to import.")
	}

	if d.Panels.SidebarGeneratorVisible() {
		lines = append(lines, d.generatorSummary(width)...)
	}
	return fitLines(lines, height)
}

// accountLine renders one account row; wide rows carry the id column.
func (d *Dashboard) accountLine(r accounts.Row, index, width int, anchor, withID bool) string {
	cursor := "  "
	if index == d.cursor {
		cursor = glyphCursor + " "
	}
	mark := " "
	if d.Selection.IsSelected(r.ID) {
		mark = glyphMark
	}
	const statusW = 12
	id := ""
	if withID {
		id = fmt.Sprintf("%-5d", r.ID)
	}
	emailW := max(width-ansi.StringWidth(cursor)-2-len(id)-statusW-1, 1)
	text := cursor + mark + " " + id + fit(r.Email, emailW) + " " + fit(r.Status.Short(), statusW)

	if d.Selection.IsSelected(r.ID) {
		return lipgloss.NewStyle().
			Background(theme.RowSelectedBg()).
			Foreground(theme.RowSelectedFg()).
			Render(fit(text, width))
	}
	head := cursor + mark + " " + id + fit(r.Email, emailW) + " "
	if anchor {
		head = fg(theme.RowAnchor()).Render(head)
	}
	return fit(head+fg(theme.StatusColor(r.Status)).Render(fit(r.Status.Short(), statusW)), width)
}

// generatorSummary is the sidebar view of the open generator context, or sk
// when none is open.
func (d *Dashboard) generatorSummary(width int) []string {
	g := d.Panels.Generator()
	if g == panels.GeneratorNone {
		g = panels.GeneratorSK
	}
	values := d.Source.GeneratorFields(g.Context())
	title := fit(" "+glyphHSplit+" Generator "+g.Context()+" "+strings.Repeat(glyphHSplit, width), width)
	lines := []string{fg(theme.PanelBorder()).Render(title)}
	label := fg(theme.FieldLabel())
	value := fg(theme.FieldValue())
	for _, a := range hotkey.CopyActions {
		lines = append(lines, fit(label.Render(fit(" "+a.Label(), 14))+value.Render(values[string(a)]), width))
	}
	return lines
}

// mailLines renders the inbox list, its splitter handle and the viewer.
func (d *Dashboard) mailLines(width, height int) []string {
	msgs := d.messages()
	title := " Inbox"
	if cur, ok := d.Current(); ok {
		title = fmt.Sprintf(" Inbox · %s (%d)", cur.Email, len(msgs))
	}
	lines := []string{fg(theme.PanelTitle()).Bold(true).Render(fit(title, width))}

	off := d.inboxOffset()
	for i := off; i < off+d.inboxListRows(); i++ {
		if i >= len(msgs) {
			lines = append(lines, "")
			continue
		}
		m := msgs[i]
		text := fmt.Sprintf(" %s  %s  %s", m.Date.Format("Jan 02 15:04"), fit(m.From, 18), m.Subject)
		if i == d.inboxCursor {
			text = lipgloss.NewStyle().
				Background(theme.RowSelectedBg()).
				Foreground(theme.RowSelectedFg()).
				Render(fit(text, width))
		}
		lines = append(lines, text)
	}
	if len(msgs) == 0 && d.inboxListRows() > 0 {
		lines[1] = fg(theme.HelpGray()).Render(" No messages")
	}

	handle := fg(theme.SplitterIdle())
	if d.Inbox.Dragging() {
		handle = fg(theme.SplitterActive())
	}
	lines = fitLines(lines, d.inboxHandleY())
	lines = append(lines, handle.Render(strings.Repeat(glyphHSplit, max(width, 0))))

	if d.inboxCursor < len(msgs) {
		m := msgs[d.inboxCursor]
		label := fg(theme.FieldLabel())
		lines = append(lines,
			label.Render(" From:    ")+m.From,
			label.Render(" Subject: ")+m.Subject,
			label.Render(" Date:    ")+m.Date.Format("2006-01-02 15:04"),
			"",
		)
		for l := range strings.SplitSeq(m.Body, "\n") {
			lines = append(lines, " "+l)
		}
	}
	return fitLines(lines, height)
}

// dockLines renders the status line and the panel dock. The dock is always
// the last row.
func (d *Dashboard) dockLines() []string {
	rows := d.Height - d.bodyHeight()
	if rows <= 0 {
		return nil
	}
	base := lipgloss.NewStyle().Background(theme.DockBg()).Foreground(theme.DockFg())

	var status lipgloss.Style
	switch d.statusKind {
	case StatusError:
		status = fg(theme.NotificationError())
	case StatusSuccess:
		status = fg(theme.NotificationSuccess())
	default:
		status = fg(theme.NotificationInfo())
	}

	var dock strings.Builder
	dock.WriteString(" ")
	for _, item := range d.dockItems() {
		w := d.Panels.Window(item.kind)
		focused, ok := d.Focused()
		style := base.Foreground(theme.DockDimmed())
		switch {
		case w.Minimized():
			style = base.Foreground(theme.DockFg()).Italic(true)
		case w.IsOpen() && ok && focused == item.kind:
			style = base.Background(theme.DockHighlight()).Foreground(theme.PanelBg()).Bold(true)
		case w.IsOpen():
			style = base.Foreground(theme.DockHighlight())
		}
		dock.WriteString(style.Render(item.label))
		dock.WriteString(base.Render(" "))
	}

	lines := make([]string, rows)
	for i := range lines {
		lines[i] = base.Render(fit("", d.Width))
	}
	lines[rows-1] = fit(dock.String(), d.Width)
	if rows >= 2 {
		lines[rows-2] = status.Render(fit(" "+d.status, d.Width))
	}
	return lines
}

// renderPanel draws a bordered panel box of exactly r's size with the title
// and window buttons on the top border.
func (d *Dashboard) renderPanel(k geometry.Kind, r geometry.Rect) string {
	if r.Width < 2 || r.Height < 2 {
		return ""
	}
	inner := r.Width - 2
	focused, ok := d.Focused()
	active := ok && focused == k

	border := fg(theme.PanelBorder())
	if active {
		border = fg(theme.PanelBorderActive())
	}

	buttons := ""
	bw := 0
	if !d.Config.Appearance.HideWindowButtons && inner >= buttonsWidth {
		btn := fg(theme.ButtonFg())
		maxGlyph := "[□]"
		if d.Panels.Window(k).Maximized() {
			maxGlyph = "[▣]"
		}
		buttons = btn.Render("[_]") + btn.Render(maxGlyph) + fg(theme.ButtonClose()).Render("[x]")
		bw = buttonsWidth
	}

	title := ansi.Truncate(" "+d.panelTitle(k)+" ", inner-bw, "")
	fill := strings.Repeat(glyphHSplit, max(inner-bw-ansi.StringWidth(title), 0))
	titleStyle := fg(theme.PanelTitle())
	if active {
		titleStyle = titleStyle.Bold(true)
	}

	lines := make([]string, 0, r.Height)
	lines = append(lines, border.Render("╭")+titleStyle.Render(title)+border.Render(fill)+buttons+border.Render("╮"))

	bg := lipgloss.NewStyle().Background(theme.PanelBg())
	for _, l := range fitLines(d.panelBody(k, inner, r.Height-panelChromeRows), r.Height-panelChromeRows) {
		lines = append(lines, border.Render(glyphVSplit)+bg.Render(fit(l, inner))+border.Render(glyphVSplit))
	}
	lines = append(lines, border.Render("╰"+strings.Repeat(glyphHSplit, inner)+"╯"))
	return strings.Join(lines, "\n")
}

func (d *Dashboard) panelTitle(k geometry.Kind) string {
	title := panelTitles[k]
	if k == geometry.KindGenerator {
		if g := d.Panels.Generator(); g != panels.GeneratorNone {
			title += " · " + g.Context()
		}
	}
	return title
}

func (d *Dashboard) panelBody(k geometry.Kind, width, height int) []string {
	switch k {
	case geometry.KindAccounts:
		return d.accountsBody(width)
	case geometry.KindGenerator:
		return d.generatorBody(width)
	case geometry.KindSettings:
		return d.settingsBody(width)
	case geometry.KindImport:
		return d.importBody(width, height)
	}
	return nil
}

func (d *Dashboard) accountsBody(width int) []string {
	header := fg(theme.HelpTableHeader()).Bold(true).Render(fit("     ID   Email", width-13) + fit("Status", 13))
	lines := []string{header}
	off := d.accountsPanelOffset()
	anchor, hasAnchor := d.Selection.Anchor()
	for i := off; i < min(off+d.accountsPanelRows(), len(d.rows)); i++ {
		lines = append(lines, d.accountLine(d.rows[i], i, width, hasAnchor && anchor == i, true))
	}
	return lines
}

func (d *Dashboard) generatorBody(width int) []string {
	g := d.Panels.Generator()
	if g == panels.GeneratorNone {
		return nil
	}
	hk := d.Panels.Hotkeys()
	next := hotkey.CopyActions[d.Panels.CycleIndex(g)%len(hotkey.CopyActions)]
	lines := []string{fg(theme.HelpGray()).Render(fmt.Sprintf(" next %s: %s", orDash(hk[hotkey.ActionCycle]), next.Label()))}

	values := d.Source.GeneratorFields(g.Context())
	copiedBg, copiedFg := theme.FieldCopied()
	label := fg(theme.FieldLabel())
	value := fg(theme.FieldValue())
	for _, a := range hotkey.CopyActions {
		marker := "  "
		if a == next {
			marker = glyphCursor + " "
		}
		token := fit("["+orDash(hk[a])+"]", 10)
		if a == d.Panels.ActiveField(g) {
			lines = append(lines, lipgloss.NewStyle().Background(copiedBg).Foreground(copiedFg).
				Render(fit(marker+token+fit(a.Label(), 13)+values[string(a)], width)))
			continue
		}
		lines = append(lines, marker+token+label.Render(fit(a.Label(), 13))+value.Render(values[string(a)]))
	}

	lines = append(lines, "", fg(theme.HelpGray()).Render(fmt.Sprintf(" %s close · %s regenerate",
		orDash(hk[hotkey.ActionClose]), d.Registry.GetKeysForDisplay("regenerate"))))
	return lines
}

func (d *Dashboard) settingsBody(width int) []string {
	reg := d.Registry
	hint := fmt.Sprintf(" %s record · %s unbind · %s save · %s reset",
		reg.GetKeysForDisplay("settings_arm"), reg.GetKeysForDisplay("settings_clear"),
		reg.GetKeysForDisplay("settings_save"), reg.GetKeysForDisplay("settings_reset"))
	lines := []string{fg(theme.HelpGray()).Render(hint)}

	rec := d.Panels.Recorder()
	draft := rec.Draft()
	committed := d.Panels.Hotkeys()
	recBg, recFg := theme.RecordingSlot()
	for i, a := range hotkey.Actions {
		marker := "  "
		if i == d.settingsCursor {
			marker = glyphCursor + " "
		}
		var slot string
		switch {
		case rec.Armed() == a:
			slot = lipgloss.NewStyle().Background(recBg).Foreground(recFg).Render(" press a key… ")
		case draft[a] == "":
			slot = fg(theme.HelpGray()).Render("(unbound)")
		default:
			slot = fg(theme.HelpKeyBadge()).Render(draft[a])
		}
		if draft[a] != committed[a] {
			slot += fg(theme.NotificationInfo()).Render(" *")
		}
		lines = append(lines, marker+fg(theme.FieldLabel()).Render(fit(a.Label(), 18))+slot)
	}

	state := "off"
	if d.Panels.SidebarGeneratorVisible() {
		state = "on"
	}
	lines = append(lines, "", fit(fmt.Sprintf(" Sidebar generator: %s (%s)", state,
		reg.GetKeysForDisplay("toggle_sidebar_generator")), width))
	return lines
}

func (d *Dashboard) importBody(width, height int) []string {
	lines := []string{fg(theme.HelpGray()).Render(" email / pass1;pass2 / status, one per line")}

	text := string(d.importBuffer)
	buf := strings.Split(text, "\n")
	room := max(height-3, 0)
	if len(buf) > room {
		buf = buf[len(buf)-room:]
	}
	for i, l := range buf {
		if i == len(buf)-1 {
			l += fg(theme.PanelBorderActive()).Render("▏")
		}
		lines = append(lines, " "+l)
	}
	lines = fitLines(lines, max(height-1, 1))

	footer := fmt.Sprintf(" %d valid · %s import · %s close", len(accounts.ParseBlob(text)),
		d.Registry.GetKeysForDisplay("import_commit"), d.Registry.GetKeysForDisplay("cancel"))
	return append(lines, fg(theme.HelpGray()).Render(fit(footer, width)))
}

// renderHelp builds the keybinding overlay box. Sections are split over two
// columns so the box fits short terminals.
func (d *Dashboard) renderHelp() string {
	keyStyle := fg(theme.HelpKeyBadge()).Bold(true)
	headStyle := fg(theme.HelpTableHeader()).Bold(true)

	sections := config.GetKeybindings(d.Registry)
	half := (len(sections) + 1) / 2
	column := func(sections []config.KeybindingSection) string {
		var b strings.Builder
		for i, section := range sections {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(headStyle.Render(section.Title))
			for _, kb := range section.Bindings {
				b.WriteString("\n" + keyStyle.Render(fit(kb.Key, 22)) + " " + kb.Description)
			}
		}
		return b.String()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().PaddingRight(4).Render(column(sections[:half])),
		column(sections[half:]),
	)
	content := lipgloss.JoinVertical(lipgloss.Left,
		headStyle.Render("boxdeck keybindings"),
		"",
		body,
		"",
		fg(theme.HelpGray()).Render("Press "+d.Registry.GetKeysForDisplay("toggle_help")+" or click to close"),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.HelpBorder()).
		Padding(0, 2).
		MaxHeight(max(d.Height, 3)).
		Render(content)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
