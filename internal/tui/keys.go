package tui

// Key strings as reported by tea.KeyMsg.String().
const (
	keyQuit     = "q"
	keyCtrlC    = "ctrl+c"
	keyEnter    = "enter"
	keyEsc      = "esc"
	keySlash    = "/"
	keyS        = "s"
	keyShiftS   = "S"
	keyF        = "f"
	keyTab      = "tab"
	keyR        = "r"
	keyUp       = "up"
	keyDown     = "down"
	keyK        = "k"
	keyJ        = "j"
	keyHome     = "home"
	keyEnd      = "end"
	keyG        = "g"
	keyShiftG   = "G"
	keyPgUp     = "pgup"
	keyPgDown   = "pgdown"
	keyPrevPage = "["
	keyNextPage = "]"
)

const (
	listHelp   = "[↑↓/jk] Flyt  [Enter] Detaljer  [/] Søg  [f] Filter  [s/S] Sortér  [PgUp/PgDn] Side  [Esc] Menu  [q] Afslut"
	errorHelp  = "[r] Prøv igen  [Esc] Menu  [q] Afslut"
	detailHelp = "[Esc] Tilbage til listen  [q] Afslut"
	menuHelp   = "[↑↓/jk] Flyt  [Enter] Åbn  [1-4] Genvej  [q] Afslut"
)
