package config

// Binding describes one entry of the authoritative keybinding table from
// spec.md §6. Mode is the dispatcher mode the binding fires in; Key is the
// literal byte (as a one-rune string) pressed after the prefix.
type Binding struct {
	Mode        string
	Key         string
	Action      string
	Description string
}

// PrefixBindings is the authoritative table for PREFIX mode: the dispatcher
// consults this after the user presses Ctrl+B once.
var PrefixBindings = []Binding{
	{"PREFIX", "c", "spawn", "Spawn a new window"},
	{"PREFIX", "x", "close", "Close the focused window"},
	{"PREFIX", "j", "focus_next", "Focus next window"},
	{"PREFIX", "k", "focus_prev", "Focus previous window"},
	{"PREFIX", "enter", "swap_master", "Swap focused window with master"},
	{"PREFIX", "h", "master_shrink", "Shrink the master column"},
	{"PREFIX", "l", "master_grow", "Grow the master column"},
	{"PREFIX", "a", "toggle_broadcast", "Toggle broadcast input"},
	{"PREFIX", "q", "quit", "Quit simplex"},
	{"PREFIX", "b", "literal_prefix", "Send a literal Ctrl+B to the focused child"},
	{"PREFIX", "[", "enter_copy", "Enter copy mode"},
	{"PREFIX", "v", "await_view_tag", "View a tag (awaits digit 1-9)"},
	{"PREFIX", "t", "await_set_tag", "Set the focused window's tag (awaits digit 1-9)"},
	{"PREFIX", "T", "await_toggle_tag", "Toggle a tag on the focused window (awaits digit 1-9)"},
}

// CopyModeBindings documents the copy-mode grammar of spec.md §4.8. The
// copymode package implements the actual motions; this table exists so the
// dispatcher's help/describe surface and the key grammar share one source,
// the way config.Keybinding/KeybindingSection do for the teacher's overlays.
var CopyModeBindings = []Binding{
	{"COPY", "h", "left", "Cursor left"},
	{"COPY", "j", "down", "Cursor down"},
	{"COPY", "k", "up", "Cursor up"},
	{"COPY", "l", "right", "Cursor right"},
	{"COPY", "0", "line_start", "Start of line"},
	{"COPY", "$", "line_end", "End of line"},
	{"COPY", "^", "first_nonblank", "First non-blank of line"},
	{"COPY", "g", "buffer_top", "Top of buffer (awaits a second g: gg)"},
	{"COPY", "G", "buffer_bottom", "Bottom of buffer (live tail)"},
	{"COPY", "H", "page_top", "Top of visible page"},
	{"COPY", "M", "page_middle", "Middle of visible page"},
	{"COPY", "L", "page_bottom", "Bottom of visible page"},
	{"COPY", "w", "word_next", "Next word"},
	{"COPY", "b", "word_prev", "Previous word"},
	{"COPY", "e", "word_end", "End of word"},
	{"COPY", "W", "WORD_next", "Next WORD"},
	{"COPY", "B", "WORD_prev", "Previous WORD"},
	{"COPY", "E", "WORD_end", "End of WORD"},
	{"COPY", "f", "find_fwd", "Find char forward (awaits 1 key)"},
	{"COPY", "F", "find_back", "Find char backward (awaits 1 key)"},
	{"COPY", "t", "till_fwd", "Till char forward (awaits 1 key)"},
	{"COPY", "T", "till_back", "Till char backward (awaits 1 key)"},
	{"COPY", ";", "repeat_find", "Repeat last find/till forward"},
	{"COPY", ",", "repeat_find_rev", "Repeat last find/till reverse"},
	{"COPY", "/", "search_fwd", "Search forward (awaits pattern + enter)"},
	{"COPY", "?", "search_back", "Search backward (awaits pattern + enter)"},
	{"COPY", "n", "search_next", "Next search match"},
	{"COPY", "N", "search_prev", "Previous search match"},
	{"COPY", "v", "visual_char", "Toggle character-wise selection"},
	{"COPY", "V", "visual_line", "Toggle line-wise selection"},
	{"COPY", "i", "text_object_inner", "Inner text object (awaits 1 key)"},
	{"COPY", "a", "text_object_around", "Around text object (awaits 1 key)"},
	{"COPY", "y", "yank", "Copy selection and exit copy mode"},
	{"COPY", "q", "exit", "Exit copy mode"},
	{"COPY", "esc", "exit", "Exit copy mode"},
}
