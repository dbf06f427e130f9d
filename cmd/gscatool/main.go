// Command gscatool is a read-only terminal inspector for .gsca score
// files: it lists every handle in the store, and dumps the raw command
// stream for the selected one as hex bytes annotated with the recognised
// high-range opcode names. It follows the same tcell event-loop shape as
// the teacher repo's terminal backend (tcell.NewScreen, a PollEvent loop,
// SetContent/Show).
package main

import (
	"fmt"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/dgdev1024/gsca/store"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <score.gsca>\n", os.Args[0])
		os.Exit(1)
	}

	s := store.NewStore(0)
	if err := s.ReadAudioFile(os.Args[1]); err != nil {
		fmt.Fprintf(os.Stderr, "gscatool: loading %q: %v\n", os.Args[1], err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "gscatool: initializing terminal: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "gscatool: initializing terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))

	app := &inspector{screen: screen, store: s}
	app.run()
}

type inspector struct {
	screen   tcell.Screen
	store    *store.Store
	selected int
	running  bool
}

func (a *inspector) run() {
	a.running = true
	a.draw()

	for a.running {
		ev := a.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a.handleKey(ev)
		case *tcell.EventResize:
			a.screen.Sync()
		}
		if a.running {
			a.draw()
		}
	}
}

func (a *inspector) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		a.running = false
	case tcell.KeyUp:
		if a.selected > 0 {
			a.selected--
		}
	case tcell.KeyDown:
		if a.selected < a.store.Count()-1 {
			a.selected++
		}
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			a.running = false
		case 'k':
			if a.selected > 0 {
				a.selected--
			}
		case 'j':
			if a.selected < a.store.Count()-1 {
				a.selected++
			}
		}
	}
}

const (
	listWidth  = 28
	headerRow  = 0
	listTop    = 2
	dividerCol = listWidth
)

func (a *inspector) draw() {
	a.screen.Clear()
	width, height := a.screen.Size()

	a.puts(1, headerRow, fmt.Sprintf("gscatool — %d handle(s)", a.store.Count()), tcell.StyleDefault.Bold(true))

	for i := 0; i < height; i++ {
		a.screen.SetContent(dividerCol, i, '│', nil, tcell.StyleDefault)
	}

	for i := 0; i < a.store.Count() && listTop+i < height; i++ {
		h, _ := a.store.HandleByIndex(i)
		style := tcell.StyleDefault
		if i == a.selected {
			style = style.Reverse(true)
		}
		a.puts(1, listTop+i, fmt.Sprintf("%3d  %s", h.ID, h.Name), style)
	}

	if a.store.Count() > 0 {
		h, _ := a.store.HandleByIndex(a.selected)
		a.drawDump(dividerCol+2, listTop, width, height, h)
	}

	a.puts(1, height-1, "↑/↓ or j/k to select · q/Esc to quit", tcell.StyleDefault.Foreground(tcell.ColorGray))

	a.screen.Show()
}

func (a *inspector) drawDump(x, y, width, height int, h store.Handle) {
	data := a.store.Data(h)
	row := y
	for offset := 0; offset < len(data) && row < height-1; offset += 8 {
		end := offset + 8
		if end > len(data) {
			end = len(data)
		}
		line := fmt.Sprintf("%06X  ", int(h.Offset)+offset)
		for _, b := range data[offset:end] {
			line += fmt.Sprintf("%02X ", b)
		}
		if name, ok := mnemonicFor(data[offset]); ok {
			line += " " + name
		}
		a.puts(x, row, truncate(line, width-x), tcell.StyleDefault)
		row++
	}
}

func truncate(s string, max int) string {
	if max < 0 || len(s) <= max {
		return s
	}
	return s[:max]
}

func (a *inspector) puts(x, y int, s string, style tcell.Style) {
	for i, r := range s {
		a.screen.SetContent(x+i, y, r, nil, style)
	}
}

// mnemonicFor names the command a leading byte encodes, for bytes in the
// 0xD0-0xFF opcode range that always begin a runtime command, plus 0xC7
// (drum_speed). Other bytes below that range are raw packed
// note/channel-header data and are shown as hex only; telling them apart from a command byte requires walking the stream
// structurally, which this diagnostic dump does not attempt.
func mnemonicFor(op byte) (string, bool) {
	names := map[byte]string{
		0xD8: "note_type", 0xD9: "transpose", 0xDA: "tempo", 0xDB: "duty_cycle",
		0xDC: "volume_envelope", 0xDD: "pitch_sweep", 0xDE: "duty_cycle_pattern",
		0xDF: "toggle_sfx", 0xE0: "pitch_slide", 0xE1: "vibrato", 0xE3: "toggle_noise",
		0xE4: "force_stereo_panning", 0xE5: "volume", 0xE6: "pitch_offset",
		0xE9: "tempo_relative", 0xEA: "restart_channel", 0xEB: "new_song",
		0xEC: "sfx_priority_on", 0xED: "sfx_priority_off", 0xEF: "stereo_panning",
		0xF0: "sfx_toggle_noise", 0xFA: "set_condition", 0xFB: "sound_jump_if",
		0xFC: "sound_jump", 0xFD: "sound_loop", 0xFE: "sound_call", 0xFF: "sound_ret",
		0xC7: "drum_speed",
	}
	if op >= 0xD0 && op <= 0xD7 {
		return fmt.Sprintf("octave %d", 8-(int(op)-0xD0)), true
	}
	name, ok := names[op]
	return name, ok
}
