package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	editor "github.com/ionut-t/modaledit/adapter-bubbletea"
	"github.com/ionut-t/modaledit/adapter-bubbletea/highlighter"
	"github.com/ionut-t/modaledit/config"
	"github.com/ionut-t/modaledit/core"
)

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

func main() {
	versionFlag := flag.Bool("version", false, "Print the version of the program")
	configFlag := flag.String("config", "", "Path to a settings file (.toml or .json)")
	logfileFlag := flag.String("logfile", filepath.Join(os.TempDir(), "modaledit.log"), "Path to log file")
	verbosityFlag := flag.Int("v", 1, "Log verbosity")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("modaledit version %s\n", Version)
		return
	}

	// The terminal belongs to the UI, so logs always go to a file.
	commonlog.Configure(*verbosityFlag, logfileFlag)

	settings, err := loadSettings(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load settings: %v", err)
	}

	var buffer core.Buffer
	if path := flag.Arg(0); path != "" {
		buffer, err = core.OpenBuffer(path)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", path, err)
		}
		buffer.SetLanguage(highlighter.Detect(path, []byte(buffer.GetCurrentContent())))
	} else {
		buffer = core.NewBuffer()
	}

	m := editor.New(80, 24, settings.EditorOptions())
	m.HideLineNumbers(!settings.UI.LineNumbers)
	m.ShowRelativeLineNumbers(settings.UI.RelativeNumbers)
	m.ShowTildeIndicator(true)
	m.SetSyntaxTheme(settings.UI.Theme)
	m.SetBuffer(buffer)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}

func loadSettings(path string) (config.Settings, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	settings, _, err := config.LoadSettings()
	return settings, err
}
