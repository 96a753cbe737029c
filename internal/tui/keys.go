package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Tab      key.Binding
	Enter    key.Binding
	Add      key.Binding
	Done     key.Binding
	Edit     key.Binding
	Delete   key.Binding
	Category key.Binding
	Search   key.Binding
	Priority key.Binding
	SetPrio  key.Binding
	Clear    key.Binding
	Help     key.Binding
	Quit     key.Binding
	Refresh  key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "categories")),
	Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "tasks")),
	Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch pane")),
	Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select/toggle")),
	Add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Done:     key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle done")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title")),
	Delete:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "new category")),
	Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Priority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority filter")),
	SetPrio:  key.NewBinding(key.WithKeys("1", "2", "3"), key.WithHelp("1/2/3", "set high/medium/low")),
	Clear:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear filters")),
	Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

// helpBindings are listed on the help screen in this order
var helpBindings = []key.Binding{
	keys.Up, keys.Down, keys.Tab, keys.Enter, keys.Add, keys.Done, keys.Edit,
	keys.Delete, keys.Category, keys.Search, keys.Priority, keys.SetPrio, keys.Clear,
	keys.Refresh, keys.Help, keys.Quit,
}
