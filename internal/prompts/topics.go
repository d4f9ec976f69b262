// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Bellflight

package prompts

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// TopicRow is one line of the topics table.
type TopicRow struct {
	Topic   string
	Payload string
	Handler string
}

// TopicRows builds sorted rows from a topic to payload class mapping.
func TopicRows(topics map[string]string, handler func(string) string) []TopicRow {
	names := make([]string, 0, len(topics))
	for t := range topics {
		names = append(names, t)
	}
	sort.Strings(names)

	rows := make([]TopicRow, 0, len(names))
	for _, t := range names {
		rows = append(rows, TopicRow{Topic: t, Payload: topics[t], Handler: handler(topics[t])})
	}
	return rows
}

// TopicsTable renders rows as a bordered table.
func TopicsTable(rows []TopicRow) string {
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f9ca24")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))).
		Headers("TOPIC", "PAYLOAD", "HANDLER").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, r := range rows {
		t.Row(r.Topic, r.Payload, r.Handler)
	}
	return t.String()
}
