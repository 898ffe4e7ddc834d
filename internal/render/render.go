// Package render holds the presentational widgets of the terminal UI. All
// functions write formatted text for data a view already fetched; nothing
// here touches the network.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"scholar/apimodels"
)

const maxSourcesShown = 3

// Card prints a titled block of label/value rows, the terminal stand-in for
// a stats card.
func Card(w io.Writer, title string, rows [][2]string) {
	fmt.Fprintf(w, "%s\n", title)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\t%s\n", row[0], row[1])
	}
	tw.Flush()
}

// Interaction prints an answer with its tutor explanation and top sources,
// exactly as received: scores are not re-normalized and source order is the
// backend's relevance order.
func Interaction(w io.Writer, in *apimodels.Interaction) {
	fmt.Fprintf(w, "Answer:\n  %s\n", in.Answer)
	if in.TutorExplanation != "" {
		fmt.Fprintf(w, "\nTutor explanation:\n  %s\n", in.TutorExplanation)
	}
	if len(in.Sources) > 0 {
		fmt.Fprintf(w, "\nSources:\n")
		for i, src := range in.Sources {
			if i == maxSourcesShown {
				break
			}
			fmt.Fprintf(w, "  %d. %s (relevance %.2f)\n", i+1, src.Document, src.RelevanceScore)
			if src.Preview != "" {
				fmt.Fprintf(w, "     %s\n", src.Preview)
			}
		}
	}
	if in.InteractionID != "" {
		fmt.Fprintf(w, "\nInteraction ID: %s\n", in.InteractionID)
	}
}

// Snapshot prints a learning-progress summary, or an explicit empty state
// when the backend had nothing to analyze.
func Snapshot(w io.Writer, s *apimodels.AnalyticsSnapshot) {
	if s.Empty() {
		fmt.Fprintf(w, "No activity recorded yet for this time range.\n")
		return
	}
	Card(w, "Learning progress", [][2]string{
		{"Questions asked", fmt.Sprintf("%d", s.TotalQuestions)},
		{"Documents accessed", fmt.Sprintf("%d", s.UniqueDocuments)},
		{"Questions per day", fmt.Sprintf("%.2f", s.AvgQuestionsPerDay)},
		{"Question complexity", fmt.Sprintf("%.2f", s.AvgQuestionComplexity)},
		{"Comprehension score", fmt.Sprintf("%.2f", s.ComprehensionScore)},
		{"Learning sessions", fmt.Sprintf("%d", s.LearningSessions)},
	})
	if len(s.MainTopics) > 0 {
		fmt.Fprintf(w, "\nMain topics: %s\n", strings.Join(s.MainTopics, ", "))
	}
	switch s.ComplexityTrend {
	case "increasing":
		fmt.Fprintf(w, "Question complexity is increasing.\n")
	case "stable":
		fmt.Fprintf(w, "Question complexity is stable.\n")
	}
}

// Documents prints a library listing in its given order.
func Documents(w io.Writer, docs []apimodels.Document) {
	if len(docs) == 0 {
		fmt.Fprintf(w, "No documents match.\n")
		return
	}
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "FILENAME\tSUBJECT\tUPLOADED\tCOMPLEXITY\tCHUNKS\n")
	for _, d := range docs {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.2f\t%d\n",
			d.Filename, d.Subject, d.UploadDate, d.ComplexityScore, d.ChunkCount)
	}
	tw.Flush()
}

// Patterns prints the cross-user query pattern report.
func Patterns(w io.Writer, p *apimodels.QueryPatterns) {
	if p.Message != "" && len(p.QuestionTypes) == 0 && len(p.PopularTopics) == 0 {
		fmt.Fprintf(w, "No interactions recorded yet.\n")
		return
	}
	if len(p.QuestionTypes) > 0 {
		Card(w, "Question types", countRows(p.QuestionTypes, 0))
	}
	if len(p.PopularTopics) > 0 {
		Card(w, "Popular topics", countRows(p.PopularTopics, 5))
	}
	if len(p.HourlyActivity) > 0 {
		peak, count := peakEntry(p.HourlyActivity)
		fmt.Fprintf(w, "Peak activity hour: %s:00 (%d questions)\n", peak, count)
	}
}

// SummaryStats prints the dashboard's summary_stats section. Values stay in
// their wire form since the section's shape is backend-defined.
func SummaryStats(w io.Writer, stats map[string]json.RawMessage) {
	if len(stats) == 0 {
		fmt.Fprintf(w, "No summary statistics available.\n")
		return
	}
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][2]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, [2]string{titleCase(k), strings.Trim(string(stats[k]), `"`)})
	}
	Card(w, "Summary statistics", rows)
}

func countRows(counts map[string]int, limit int) [][2]string {
	type entry struct {
		key   string
		count int
	}
	entries := make([]entry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].key < entries[j].key
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	rows := make([][2]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, [2]string{e.key, fmt.Sprintf("%d", e.count)})
	}
	return rows
}

func peakEntry(counts map[string]int) (string, int) {
	var peak string
	best := -1
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if counts[k] > best {
			peak, best = k, counts[k]
		}
	}
	return peak, best
}

func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
