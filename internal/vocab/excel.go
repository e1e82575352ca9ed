package vocab

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Workbook column layout: one sheet per topic, a header row, then
// text | category | meaning. Term ids are the 1-based data row position.
const (
	colText     = 0
	colCategory = 1
	colMeaning  = 2
	headerRows  = 1
)

// LoadExcel imports topics from an .xlsx workbook. Sheet names become topic
// ids and names; blank rows are skipped.
func LoadExcel(path string) ([]Topic, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var topics []Topic
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		topic := Topic{ID: sheet, Name: sheet}
		for i, row := range rows {
			if i < headerRows {
				continue
			}
			text := cell(row, colText)
			meaning := cell(row, colMeaning)
			if text == "" && meaning == "" {
				continue
			}
			topic.Terms = append(topic.Terms, Term{
				ID:       len(topic.Terms) + 1,
				Text:     text,
				Category: cell(row, colCategory),
				Meaning:  meaning,
			})
		}

		if len(topic.Terms) == 0 {
			continue
		}
		topics = append(topics, topic)
	}

	if err := Validate(path, topics); err != nil {
		return nil, err
	}
	return topics, nil
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
