package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/tiagokriok/taskboard/internal/application"
	"github.com/tiagokriok/taskboard/internal/domain"
)

type viewMode int

const (
	viewKanban viewMode = iota
	viewList
)

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputEditDescription
	inputTaskForm
	inputConfirmDelete
	inputViewer
)

type taskFormMode int

const (
	taskFormCreate taskFormMode = iota
	taskFormEdit
)

const (
	taskFormStepTitle = iota
	taskFormStepDescription
	taskFormStepPriority
	taskFormStepAssignee
	taskFormStepTags
	taskFormStepDue
	taskFormSteps
)

type taskForm struct {
	mode        taskFormMode
	taskID      string
	columnID    string
	step        int
	title       string
	description string
	priority    string
	assignee    string
	tags        string
	due         string

	// original is the task being edited; its due time survives a date change.
	original *domain.Task
	// shown holds what each step's input displayed when first opened, so an
	// edit only sends the fields the user actually changed.
	shown [taskFormSteps]string
	seen  [taskFormSteps]bool
}

func (f *taskForm) edited(step int, value string) bool {
	return f.seen[step] && f.shown[step] != value
}

func (f *taskForm) previousDue() *time.Time {
	if f.original == nil {
		return nil
	}
	return f.original.DueDate
}

type boardLoadedMsg struct {
	board domain.Board
}

type opResultMsg struct {
	status string
	err    error
}

type Options struct {
	View        string
	ShowDetails bool
	Now         func() time.Time
	Logger      log.FieldLogger
}

type Model struct {
	service *application.TaskService
	logger  log.FieldLogger

	board domain.Board
	view  map[string][]domain.Task

	activeColumn int
	kanbanRow    int
	selected     int

	searchTerm   string
	searchBefore string

	viewMode      viewMode
	showDetails   bool
	inputMode     inputMode
	taskForm      *taskForm
	drag          *dragState
	pendingDelete string
	viewerScroll  int

	textInput textinput.Model
	textArea  textarea.Model

	statusLine string
	err        error

	width  int
	height int

	keys       keyMap
	dateFormat userDateFormat
	now        func() time.Time
}

func NewModel(service *application.TaskService, opts Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Type..."
	ti.CharLimit = 512
	ti.Prompt = "> "

	ta := textarea.New()
	ta.Placeholder = "Markdown..."
	ta.SetHeight(8)
	ta.Prompt = ""

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.StandardLogger()
	}

	mode := viewKanban
	if strings.EqualFold(opts.View, "list") {
		mode = viewList
	}

	m := Model{
		service:     service,
		logger:      logger,
		viewMode:    mode,
		showDetails: opts.ShowDetails,
		textInput:   ti,
		textArea:    ta,
		keys:        newKeyMap(),
		dateFormat:  detectUserDateFormat(),
		now:         now,
	}
	m.refresh()
	return m
}

func (m Model) Init() tea.Cmd {
	return m.loadBoardCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.inputMode != inputNone {
		return m.updateInputMode(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textArea.SetWidth(max(20, msg.Width/2-6))
		return m, nil
	case boardLoadedMsg:
		m.board = msg.board
		m.reproject()
		return m, nil
	case opResultMsg:
		if msg.err != nil {
			m.err = msg.err
			m.statusLine = msg.err.Error()
			m.logger.WithError(msg.err).Warn("board operation failed")
			return m, nil
		}
		m.err = nil
		m.statusLine = msg.status
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.drag != nil {
			return m.updateDrag(msg)
		}
		return m.updateKey(msg)
	}

	return m, nil
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleView):
		if m.viewMode == viewList {
			m.viewMode = viewKanban
		} else {
			m.viewMode = viewList
		}
		m.ensureSelection()
		return m, nil
	case key.Matches(msg, m.keys.ToggleDetails):
		m.showDetails = !m.showDetails
		return m, nil
	case key.Matches(msg, m.keys.Search):
		m.inputMode = inputSearch
		m.searchBefore = m.searchTerm
		m.textInput.SetValue(m.searchTerm)
		m.textInput.Placeholder = "Search tasks by title..."
		m.textInput.Focus()
		m.statusLine = "Search by title (enter keep, esc revert)"
		return m, textinput.Blink
	case key.Matches(msg, m.keys.ClearSearch):
		if m.searchTerm == "" {
			return m, nil
		}
		m.searchTerm = ""
		m.statusLine = ""
		m.reproject()
		return m, nil
	case key.Matches(msg, m.keys.NewTask):
		col, ok := m.activeColumnData()
		if !ok {
			return m, nil
		}
		if col.AtLimit(len(col.TaskIDs)) {
			m.statusLine = fmt.Sprintf("%s is at its WIP limit (%d)", col.Title, *col.MaxTasks)
			return m, nil
		}
		m.startCreateTaskForm(col.ID)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.EditTask):
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		m.startEditTaskForm(task)
		return m, textinput.Blink
	case key.Matches(msg, m.keys.EditDescription):
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		m.inputMode = inputEditDescription
		m.textArea.SetValue(task.Description)
		m.textArea.Focus()
		m.statusLine = "Edit description (Ctrl+S save, Esc cancel)"
		return m, nil
	case key.Matches(msg, m.keys.DeleteTask):
		task, ok := m.currentTask()
		if !ok {
			return m, nil
		}
		m.inputMode = inputConfirmDelete
		m.pendingDelete = task.ID
		m.statusLine = fmt.Sprintf("Delete %q? (y/n)", task.Title)
		return m, nil
	case key.Matches(msg, m.keys.Open):
		if _, ok := m.currentTask(); !ok {
			return m, nil
		}
		m.inputMode = inputViewer
		m.viewerScroll = 0
		return m, nil
	case key.Matches(msg, m.keys.Grab):
		m.startDrag()
		return m, nil
	case key.Matches(msg, m.keys.ShiftLeft):
		cmd := m.shiftTaskCmd(-1)
		return m, cmd
	case key.Matches(msg, m.keys.ShiftRight):
		cmd := m.shiftTaskCmd(1)
		return m, cmd
	case key.Matches(msg, m.keys.Up):
		m.moveUp()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.moveDown()
		return m, nil
	case key.Matches(msg, m.keys.Left):
		if m.viewMode == viewKanban && m.activeColumn > 0 {
			m.activeColumn--
			m.ensureKanbanRow()
		}
		return m, nil
	case key.Matches(msg, m.keys.Right):
		if m.viewMode == viewKanban && m.activeColumn < len(m.board.Columns)-1 {
			m.activeColumn++
			m.ensureKanbanRow()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	if m.inputMode == inputViewer {
		return m.renderTaskViewerPanel()
	}
	if m.viewMode == viewList {
		return m.renderListScreen()
	}

	header := m.renderHeader()
	footer := m.renderFooter()
	bodyHeight := max(5, m.height-lipgloss.Height(header)-lipgloss.Height(footer))

	mainPane := m.renderKanbanView(bodyHeight)

	if m.showDetails {
		detailWidth := max(34, m.width/3)
		mainWidth := m.width - detailWidth - 1
		if mainWidth < 20 {
			mainWidth = m.width
			detailWidth = 0
		}
		mainPane = lipgloss.NewStyle().Width(mainWidth).Render(mainPane)
		if detailWidth > 0 {
			detailPane := m.renderDetailView(detailWidth, bodyHeight)
			mainPane = lipgloss.JoinHorizontal(lipgloss.Top, mainPane, detailPane)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left, header, mainPane, footer)
	return lipgloss.NewStyle().Padding(0, 1).Render(content)
}

func (m Model) updateInputMode(msg tea.Msg) (tea.Model, tea.Cmd) {
	mode := m.inputMode
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		if size, ok := msg.(tea.WindowSizeMsg); ok {
			m.width = size.Width
			m.height = size.Height
			m.textArea.SetWidth(max(20, size.Width/2-6))
			return m, nil
		}
		if result, ok := msg.(opResultMsg); ok {
			m.statusLine = result.status
			if result.err != nil {
				m.statusLine = result.err.Error()
			}
			m.refresh()
			return m, nil
		}
	}

	if isKey {
		switch mode {
		case inputConfirmDelete:
			return m.updateConfirmDelete(keyMsg)
		case inputViewer:
			return m.updateViewer(keyMsg)
		}

		switch {
		case key.Matches(keyMsg, m.keys.Cancel):
			if mode == inputSearch {
				m.searchTerm = m.searchBefore
				m.reproject()
			}
			m.inputMode = inputNone
			m.taskForm = nil
			m.textInput.Blur()
			m.textArea.Blur()
			m.statusLine = ""
			return m, nil
		case keyMsg.String() == "ctrl+s" && mode == inputEditDescription:
			task, ok := m.currentTask()
			m.inputMode = inputNone
			m.textArea.Blur()
			if !ok {
				return m, nil
			}
			description := m.textArea.Value()
			return m, m.updateTaskCmd(task.ID, application.UpdateTaskInput{Description: &description}, "description updated")
		case key.Matches(keyMsg, m.keys.Confirm) && mode == inputTaskForm:
			return m.submitOrAdvanceTaskForm()
		case key.Matches(keyMsg, m.keys.Confirm) && mode == inputSearch:
			m.inputMode = inputNone
			m.textInput.Blur()
			m.statusLine = ""
			return m, nil
		}
	}

	if mode == inputEditDescription {
		var cmd tea.Cmd
		m.textArea, cmd = m.textArea.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if mode == inputSearch {
		// live filter: every keystroke recomputes the projection
		m.searchTerm = m.textInput.Value()
		m.reproject()
	}
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Yes):
		taskID := m.pendingDelete
		m.pendingDelete = ""
		m.inputMode = inputNone
		m.statusLine = ""
		return m, m.deleteTaskCmd(taskID)
	case key.Matches(msg, m.keys.No), key.Matches(msg, m.keys.Cancel):
		m.pendingDelete = ""
		m.inputMode = inputNone
		m.statusLine = "delete cancelled"
	}
	return m, nil
}

func (m Model) updateViewer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.inputMode = inputNone
		m.viewerScroll = 0
	case key.Matches(msg, m.keys.Up):
		if m.viewerScroll > 0 {
			m.viewerScroll--
		}
	case key.Matches(msg, m.keys.Down):
		if m.viewerScroll < m.taskViewerMaxDescScroll() {
			m.viewerScroll++
		}
	}
	return m, nil
}

func (m *Model) startCreateTaskForm(columnID string) {
	m.taskForm = &taskForm{
		mode:     taskFormCreate,
		columnID: columnID,
		step:     taskFormStepTitle,
		priority: string(domain.PriorityMedium),
	}
	m.inputMode = inputTaskForm
	m.loadCurrentTaskFormStep()
	m.textInput.Focus()
}

func (m *Model) startEditTaskForm(task domain.Task) {
	due := ""
	if task.DueDate != nil {
		due = m.formatDueDate(*task.DueDate)
	}
	original := task.Clone()
	m.taskForm = &taskForm{
		mode:        taskFormEdit,
		original:    &original,
		taskID:      task.ID,
		columnID:    task.Status,
		step:        taskFormStepTitle,
		title:       task.Title,
		description: task.Description,
		priority:    string(task.Priority),
		assignee:    task.Assignee,
		tags:        strings.Join(task.Tags, ", "),
		due:         due,
	}
	m.inputMode = inputTaskForm
	m.loadCurrentTaskFormStep()
	m.textInput.Focus()
}

func (m Model) submitOrAdvanceTaskForm() (tea.Model, tea.Cmd) {
	if m.taskForm == nil {
		m.inputMode = inputNone
		return m, nil
	}

	value := strings.TrimSpace(m.textInput.Value())
	switch m.taskForm.step {
	case taskFormStepTitle:
		m.taskForm.title = value
	case taskFormStepDescription:
		m.taskForm.description = value
	case taskFormStepPriority:
		m.taskForm.priority = value
	case taskFormStepAssignee:
		m.taskForm.assignee = value
	case taskFormStepTags:
		m.taskForm.tags = value
	case taskFormStepDue:
		m.taskForm.due = value
	}

	if err := m.checkTaskFormStep(m.taskForm.step); err != nil {
		m.statusLine = err.Error()
		return m, textinput.Blink
	}

	if m.taskForm.step < taskFormSteps-1 {
		m.taskForm.step++
		m.loadCurrentTaskFormStep()
		m.textInput.Focus()
		return m, textinput.Blink
	}

	cmd, err := m.submitTaskFormCmd()
	if err != nil {
		for step := range taskFormSteps {
			if m.checkTaskFormStep(step) != nil {
				m.taskForm.step = step
				break
			}
		}
		m.loadCurrentTaskFormStep()
		m.statusLine = err.Error()
		m.textInput.Focus()
		return m, textinput.Blink
	}

	m.inputMode = inputNone
	m.taskForm = nil
	m.textInput.Blur()
	return m, cmd
}

// checkTaskFormStep validates the value stored for step so the user can fix it
// before moving on.
func (m Model) checkTaskFormStep(step int) error {
	f := m.taskForm
	switch step {
	case taskFormStepTitle:
		if strings.TrimSpace(f.title) == "" {
			return domain.ErrTitleRequired
		}
	case taskFormStepPriority:
		if _, err := domain.ParsePriority(f.priority); err != nil {
			return err
		}
	case taskFormStepDue:
		if _, err := m.parseDueDateInput(f.due, f.previousDue()); err != nil {
			return err
		}
	}
	return nil
}

func (m *Model) loadCurrentTaskFormStep() {
	if m.taskForm == nil {
		return
	}

	modeLabel := "Create"
	if m.taskForm.mode == taskFormEdit {
		modeLabel = "Edit"
	}

	prefix := fmt.Sprintf("%s task (%d/%d) - ", modeLabel, m.taskForm.step+1, taskFormSteps)
	switch m.taskForm.step {
	case taskFormStepTitle:
		m.textInput.Placeholder = "Title (required)"
		m.textInput.SetValue(m.taskForm.title)
		m.statusLine = prefix + "title"
	case taskFormStepDescription:
		m.textInput.Placeholder = "Description (markdown)"
		m.textInput.SetValue(m.taskForm.description)
		m.statusLine = prefix + "description"
	case taskFormStepPriority:
		m.textInput.Placeholder = "Priority (low|medium|high|urgent)"
		m.textInput.SetValue(m.taskForm.priority)
		m.statusLine = prefix + "priority"
	case taskFormStepAssignee:
		m.textInput.Placeholder = "Assignee"
		m.textInput.SetValue(m.taskForm.assignee)
		m.statusLine = prefix + "assignee"
	case taskFormStepTags:
		m.textInput.Placeholder = "Tags (comma separated)"
		m.textInput.SetValue(m.taskForm.tags)
		m.statusLine = prefix + "tags"
	case taskFormStepDue:
		m.textInput.Placeholder = m.dueDatePlaceholder()
		m.textInput.SetValue(m.taskForm.due)
		m.statusLine = prefix + "due date"
	}

	if step := m.taskForm.step; !m.taskForm.seen[step] {
		m.taskForm.shown[step] = strings.TrimSpace(m.textInput.Value())
		m.taskForm.seen[step] = true
	}
}

func (m Model) submitTaskFormCmd() (tea.Cmd, error) {
	if m.taskForm == nil {
		return nil, errors.New("task form is not active")
	}

	title := strings.TrimSpace(m.taskForm.title)
	if title == "" {
		return nil, domain.ErrTitleRequired
	}
	priority, err := domain.ParsePriority(m.taskForm.priority)
	if err != nil {
		return nil, err
	}
	due, err := m.parseDueDateInput(m.taskForm.due, m.taskForm.previousDue())
	if err != nil {
		return nil, err
	}
	description := m.taskForm.description
	assignee := m.taskForm.assignee
	tags := application.SplitTags(m.taskForm.tags)

	if m.taskForm.mode == taskFormCreate {
		return m.createTaskCmd(application.CreateTaskInput{
			ColumnID:    m.taskForm.columnID,
			Title:       title,
			Description: description,
			Priority:    priority,
			Assignee:    assignee,
			Tags:        tags,
			DueDate:     due,
		}), nil
	}

	f := m.taskForm
	var input application.UpdateTaskInput
	if f.edited(taskFormStepTitle, f.title) {
		input.Title = &title
	}
	if f.edited(taskFormStepDescription, f.description) {
		input.Description = &description
	}
	if f.edited(taskFormStepPriority, f.priority) {
		input.Priority = &priority
	}
	if f.edited(taskFormStepAssignee, f.assignee) {
		input.Assignee = &assignee
	}
	if f.edited(taskFormStepTags, f.tags) {
		input.Tags = &tags
	}
	if f.edited(taskFormStepDue, f.due) {
		input.DueDate = due
		input.ClearDue = due == nil
	}
	if input == (application.UpdateTaskInput{}) {
		return func() tea.Msg { return opResultMsg{status: "no changes"} }, nil
	}
	return m.updateTaskCmd(f.taskID, input, "task updated"), nil
}

func (m *Model) startDrag() {
	if m.viewMode != viewKanban {
		m.statusLine = "switch to the kanban view to drag tasks"
		return
	}
	task, ok := m.currentTask()
	if !ok {
		return
	}
	m.drag = &dragState{
		taskID:     task.ID,
		fromColumn: task.Status,
		column:     m.activeColumn,
		slot:       m.kanbanRow,
	}
	m.statusLine = fmt.Sprintf("Dragging %q: h/j/k/l to move, space to drop, esc to cancel", task.Title)
}

func (m Model) updateDrag(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := *m.drag
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.drag = nil
		m.statusLine = "drag cancelled"
		return m, nil
	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Confirm):
		m.drag = nil
		m.statusLine = ""
		target := m.board.Columns[d.column]
		input, ok := planDrop(m.board, m.view, d.taskID, d.fromColumn, target.ID, d.slot)
		m.activeColumn = d.column
		m.kanbanRow = d.slot
		if !ok {
			m.ensureKanbanRow()
			return m, nil
		}
		return m, m.moveTaskCmd(input, fmt.Sprintf("moved to %s", target.Title))
	case key.Matches(msg, m.keys.Left):
		if d.column > 0 {
			d.column--
		}
	case key.Matches(msg, m.keys.Right):
		if d.column < len(m.board.Columns)-1 {
			d.column++
		}
	case key.Matches(msg, m.keys.Up):
		if d.slot > 0 {
			d.slot--
		}
	case key.Matches(msg, m.keys.Down):
		d.slot++
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	colID := m.board.Columns[d.column].ID
	d.slot = min(d.slot, maxSlot(m.view[colID], d.taskID))
	m.drag = &d
	return m, nil
}

// shiftTaskCmd moves the selected task to the top of the neighbouring column.
func (m *Model) shiftTaskCmd(delta int) tea.Cmd {
	task, ok := m.currentTask()
	if !ok {
		return nil
	}
	_, idx, found := m.board.Column(task.Status)
	if !found {
		return nil
	}
	next := idx + delta
	if next < 0 || next >= len(m.board.Columns) {
		return nil
	}
	target := m.board.Columns[next]
	if m.viewMode == viewKanban {
		m.activeColumn = next
		m.kanbanRow = 0
	}
	return m.moveTaskCmd(application.MoveTaskInput{
		TaskID:       task.ID,
		FromColumnID: task.Status,
		ToColumnID:   target.ID,
		Index:        0,
	}, fmt.Sprintf("moved to %s", target.Title))
}

func (m Model) createTaskCmd(input application.CreateTaskInput) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		_, err := service.CreateTask(context.Background(), input)
		if err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{status: "task created"}
	}
}

func (m Model) updateTaskCmd(taskID string, input application.UpdateTaskInput, status string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		if err := service.UpdateTask(context.Background(), taskID, input); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{status: status}
	}
}

func (m Model) deleteTaskCmd(taskID string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		if err := service.DeleteTask(context.Background(), taskID); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{status: "task deleted"}
	}
}

func (m Model) moveTaskCmd(input application.MoveTaskInput, status string) tea.Cmd {
	service := m.service
	return func() tea.Msg {
		if err := service.MoveTask(context.Background(), input); err != nil {
			return opResultMsg{err: err}
		}
		return opResultMsg{status: status}
	}
}

func (m Model) loadBoardCmd() tea.Cmd {
	service := m.service
	return func() tea.Msg {
		return boardLoadedMsg{board: service.Snapshot(context.Background())}
	}
}

func (m Model) renderHeader() string {
	viewLabel := "Kanban"
	if m.viewMode == viewList {
		viewLabel = "List"
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	metaStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("246"))

	left := headerStyle.Render("Task Board")
	right := metaStyle.Render(fmt.Sprintf("view:%s  tasks:%d  search:%q", viewLabel, m.board.TaskCount(), m.searchTerm))
	if m.width > 20 {
		return lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(m.width/2).Render(left),
			lipgloss.NewStyle().Width(max(1, m.width-m.width/2-2)).Align(lipgloss.Right).Render(right),
		)
	}
	return left + " " + right
}

func (m Model) renderFooter() string {
	inputLine := ""
	switch m.inputMode {
	case inputSearch, inputTaskForm:
		inputLine = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Render(m.textInput.View())
	case inputEditDescription:
		inputLine = lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Render(m.textArea.View())
	}

	shortcuts := "n:new e:edit D:delete space:drag H/L:shift /:search tab:view d:details enter:open"
	if m.searchTerm != "" {
		shortcuts += " x:clear-search"
	}
	lines := []string{}

	if strings.TrimSpace(m.statusLine) != "" {
		status := m.statusLine
		if m.inputMode == inputTaskForm {
			status += " | enter:next/save esc:cancel"
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("222")).Render(status))
	}
	lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render(shortcuts))
	if inputLine != "" {
		lines = append(lines, inputLine)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// refresh reloads the board snapshot and recomputes the projection.
func (m *Model) refresh() {
	m.board = m.service.Snapshot(context.Background())
	m.reproject()
}

func (m *Model) reproject() {
	m.view = application.ProjectBoard(m.board, m.searchTerm)
	m.ensureSelection()
}

func (m *Model) ensureSelection() {
	if len(m.board.Columns) == 0 {
		m.activeColumn = 0
		m.kanbanRow = 0
		m.selected = 0
		return
	}
	m.activeColumn = max(0, min(m.activeColumn, len(m.board.Columns)-1))
	m.ensureKanbanRow()

	total := len(m.listTasks())
	if total == 0 {
		m.selected = 0
		return
	}
	m.selected = max(0, min(m.selected, total-1))
}

func (m *Model) ensureKanbanRow() {
	if len(m.board.Columns) == 0 {
		m.kanbanRow = 0
		return
	}
	tasks := m.view[m.board.Columns[m.activeColumn].ID]
	if len(tasks) == 0 {
		m.kanbanRow = 0
		return
	}
	m.kanbanRow = max(0, min(m.kanbanRow, len(tasks)-1))
}

func (m *Model) moveUp() {
	if m.viewMode == viewKanban {
		m.kanbanRow--
		m.ensureKanbanRow()
		return
	}
	m.selected--
	m.ensureSelection()
}

func (m *Model) moveDown() {
	if m.viewMode == viewKanban {
		m.kanbanRow++
		m.ensureKanbanRow()
		return
	}
	m.selected++
	m.ensureSelection()
}

func (m Model) activeColumnData() (domain.Column, bool) {
	if m.activeColumn < 0 || m.activeColumn >= len(m.board.Columns) {
		return domain.Column{}, false
	}
	return m.board.Columns[m.activeColumn], true
}

// listTasks flattens the projection in column order.
func (m Model) listTasks() []domain.Task {
	out := make([]domain.Task, 0, m.board.TaskCount())
	for _, col := range m.board.Columns {
		out = append(out, m.view[col.ID]...)
	}
	return out
}

func (m Model) currentTask() (domain.Task, bool) {
	if m.viewMode == viewKanban {
		col, ok := m.activeColumnData()
		if !ok {
			return domain.Task{}, false
		}
		tasks := m.view[col.ID]
		if m.kanbanRow < 0 || m.kanbanRow >= len(tasks) {
			return domain.Task{}, false
		}
		return tasks[m.kanbanRow], true
	}
	tasks := m.listTasks()
	if m.selected < 0 || m.selected >= len(tasks) {
		return domain.Task{}, false
	}
	return tasks[m.selected], true
}
