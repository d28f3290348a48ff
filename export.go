package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"geartrain/internal/render"
)

// exportVisualTXT writes the grid as it appears on screen, without the cursor, followed
// by the chain report.
func (m *model) exportVisualTXT(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	for _, line := range render.Grid(m.renderView(false)) {
		fmt.Fprintln(file, line)
	}
	fmt.Fprintln(file)
	_, err = fmt.Fprint(file, m.buildReport().Text())
	return err
}

func (m *model) exportPNG(filename string) error {
	return render.SavePNG(filename, m.renderView(false), m.workspace.Options().Geometry)
}

func (m *model) saveSnapshot() {
	filename, err := m.config.GetSavePath(m.exportName("txt"))
	if err == nil {
		err = m.exportVisualTXT(filename)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("Snapshot failed: %v", err)
		m.logger.Error("snapshot failed", zap.String("path", filename), zap.Error(err))
		return
	}
	m.successMessage = "Saved " + filename
	m.logger.Info("snapshot saved", zap.String("path", filename))
}

func (m *model) savePNG() {
	filename, err := m.config.GetSavePath(m.exportName("png"))
	if err == nil {
		err = m.exportPNG(filename)
	}
	if err != nil {
		m.errorMessage = fmt.Sprintf("PNG export failed: %v", err)
		m.logger.Error("png export failed", zap.String("path", filename), zap.Error(err))
		return
	}
	m.successMessage = "Exported " + filename
	m.logger.Info("png exported", zap.String("path", filename))
}

// exportName is "<scenario>-<timestamp>.<ext>", with the scenario name reduced to a
// file-safe slug.
func (m *model) exportName(ext string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case r == ' ' || r == '-' || r == '_':
			return '-'
		}
		return -1
	}, m.name)
	if slug == "" {
		slug = "geartrain"
	}
	return fmt.Sprintf("%s-%s.%s", slug, time.Now().Format("20060102-150405"), ext)
}
