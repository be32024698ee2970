package prompts

import (
	"strings"
)

// BuildStrategistSystemPrompt assembles the richer system prompt for the
// strategist oracle. It has no tools; everything it needs goes in here.
func BuildStrategistSystemPrompt(snapshot *StudentSnapshot) string {
	var b strings.Builder

	b.WriteString("You are a senior college admissions strategist. ")
	b.WriteString("You think several application cycles ahead: school list balance, essay themes that reinforce each other, and how the student's profile reads to an admissions committee.\n\n")
	b.WriteString("Ground every recommendation in the student's actual record below. ")
	b.WriteString("Be direct about weaknesses and concrete about what to do next.\n\n")

	b.WriteString("## Student Profile\n")
	writeProfile(&b, snapshot.Profile)

	b.WriteString("\n## College List\n")
	if len(snapshot.Colleges) == 0 {
		b.WriteString("No colleges added yet.\n")
	}
	for _, c := range snapshot.Colleges {
		b.WriteString("- " + c.Name + " (" + string(c.Type) + ")\n")
	}

	if len(snapshot.Essays) > 0 {
		b.WriteString("\n## Essays in progress\n")
		for _, e := range snapshot.Essays {
			b.WriteString("- " + e.Title + "\n")
		}
	}

	return b.String()
}
