package prompts

import (
	"fmt"
	"strings"
)

// BuildCollegeResearchInstruction builds the JSON-mode instruction for
// researching one college. The oracle must return a single JSON object in
// the catalog entry shape, with the essay list exhaustive.
func BuildCollegeResearchInstruction(collegeName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are a college admissions data researcher. Research %q and respond with a single JSON object and nothing else.\n\n", collegeName)
	b.WriteString("The object must have exactly these fields:\n")
	b.WriteString(`{
  "name": "official college name",
  "description": "2-3 sentence overview",
  "location": "City, State",
  "website": "https://...",
  "application_platform": "Common App" | "Coalition App" | "UC App",
  "acceptance_rate": number (percent, e.g. 4.5) or null,
  "median_sat": number or null,
  "median_act": number or null,
  "avg_gpa": number or null,
  "enrollment": number or null,
  "cost_of_attendance": number (annual USD) or null,
  "deadline_date": "YYYY-MM-DD",
  "deadline_type": "RD" | "ED" | "EA",
  "lors_required": number,
  "essays": [{"title": "...", "prompt": "full prompt text", "word_limit": number}]
}`)
	b.WriteString("\n\nThe essays array must be exhaustive: every supplemental essay the college requires this cycle, each with its full prompt and word limit. ")
	b.WriteString("Do not include the Common App personal statement in the essays array. ")
	b.WriteString("If the college requires no supplemental essays, return an empty array.")

	return b.String()
}

// BuildTopicResearchPrompt frames a live research query. The oracle has no
// real browsing; it answers from training data presented as current guidance.
func BuildTopicResearchPrompt(query string) (systemPrompt, userPrompt string) {
	systemPrompt = "You are a college admissions research assistant with access to up-to-date admissions information. " +
		"Answer the student's question concisely with concrete numbers, dates, and requirements where known. " +
		"If something varies by cycle, say so and give the most recent figure you know."
	return systemPrompt, query
}

// BuildBrainstormPrompt frames an essay brainstorming request.
func BuildBrainstormPrompt(topic, essayPrompt string) (systemPrompt, userPrompt string) {
	systemPrompt = "You are an essay coach helping a student brainstorm college essays. " +
		"Offer three to five distinct angles, each with a one-line hook and the personal quality it would showcase. " +
		"Favor specific, small moments over grand statements."

	var b strings.Builder
	fmt.Fprintf(&b, "Topic: %s", topic)
	if essayPrompt != "" {
		fmt.Fprintf(&b, "\nEssay prompt being answered: %s", essayPrompt)
	}
	return systemPrompt, b.String()
}

// BuildEssayReviewPrompt frames an essay review request.
func BuildEssayReviewPrompt(essayText string) (systemPrompt, userPrompt string) {
	systemPrompt = "You are an experienced admissions reader reviewing a draft essay. " +
		"Give feedback in three parts: what works, what weakens it, and the single highest-impact revision. " +
		"Quote specific lines when you critique them."
	return systemPrompt, essayText
}
