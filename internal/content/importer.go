package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines how a vocabulary file is read. Expected columns:
// word, meaning, pronunciation, example, example (Korean), topic, level.
type ImportConfig struct {
	FilePath   string
	SheetName  string // sheet to read for Excel files
	SkipHeader bool
}

// DefaultImportConfig returns the default import configuration for a file
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:   path,
		SheetName:  "Sheet1",
		SkipHeader: true,
	}
}

// ImportResult holds the outcome of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Errors         []string
}

// ImportWords reads vocabulary entries from an Excel or CSV file. Rows
// missing a word or a meaning are skipped and reported in the result,
// not treated as a failure.
func ImportWords(config ImportConfig) ([]Word, *ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

func importFromExcel(config ImportConfig) ([]Word, *ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	words := make([]Word, 0, len(rows))

	for i, row := range rows {
		if i == 0 && config.SkipHeader {
			continue
		}
		result.TotalProcessed++

		word, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		words = append(words, word)
		result.Imported++
	}
	return words, result, nil
}

func importFromCSV(config ImportConfig) ([]Word, *ImportResult, error) {
	f, err := os.Open(config.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	result := &ImportResult{Errors: make([]string, 0)}
	var words []Word

	line := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read CSV file: %v", err)
		}

		line++
		if line == 1 && config.SkipHeader {
			continue
		}
		result.TotalProcessed++

		word, err := parseRow(row)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", line, err))
			continue
		}
		words = append(words, word)
		result.Imported++
	}
	return words, result, nil
}

func parseRow(row []string) (Word, error) {
	get := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	word := Word{
		Word:          get(0),
		Meaning:       get(1),
		Pronunciation: get(2),
		Example:       get(3),
		ExampleKorean: get(4),
		Topic:         get(5),
		Level:         1,
	}

	if word.Word == "" {
		return Word{}, fmt.Errorf("missing word")
	}
	if word.Meaning == "" {
		return Word{}, fmt.Errorf("missing meaning")
	}
	if word.Topic == "" {
		word.Topic = "general"
	}
	if lvl := get(6); lvl != "" {
		n, err := strconv.Atoi(lvl)
		if err != nil || n < 1 || n > 5 {
			return Word{}, fmt.Errorf("invalid level %q", lvl)
		}
		word.Level = n
	}
	return word, nil
}
