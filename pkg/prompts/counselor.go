package prompts

import (
	"fmt"
	"strings"

	"github.com/waypoint-hq/waypoint-engine/pkg/models"
)

// StudentSnapshot carries everything the counselor needs to know about the
// student when a chat turn starts.
type StudentSnapshot struct {
	Profile    *models.Profile
	Colleges   []models.UserCollege
	Tasks      []models.Task
	Essays     []models.Essay
	Activities []models.Activity
	Awards     []models.Award
}

// BuildCounselorSystemPrompt assembles the counselor system prompt from the
// student snapshot and behavioral directives. When voiceMode is set the tone
// directives shift to short spoken-style replies.
func BuildCounselorSystemPrompt(snapshot *StudentSnapshot, voiceMode bool) string {
	var b strings.Builder

	b.WriteString("You are Waypoint, an expert college admissions counselor. ")
	b.WriteString("You help high school students manage their college applications, essays, and deadlines.\n\n")

	b.WriteString("## Student Profile\n")
	writeProfile(&b, snapshot.Profile)

	b.WriteString("\n## College List\n")
	if len(snapshot.Colleges) == 0 {
		b.WriteString("No colleges added yet.\n")
	}
	for _, c := range snapshot.Colleges {
		fmt.Fprintf(&b, "- %s (%s, %s, %s)\n", c.Name, c.Type, c.Status, c.ApplicationPlatform)
	}

	b.WriteString("\n## Tasks\n")
	if len(snapshot.Tasks) == 0 {
		b.WriteString("No tasks yet.\n")
	}
	for _, t := range snapshot.Tasks {
		state := "open"
		if t.Completed {
			state = "done"
		}
		fmt.Fprintf(&b, "- %s [%s, %s]\n", t.Title, t.Priority, state)
	}

	b.WriteString("\n## Essays\n")
	if len(snapshot.Essays) == 0 {
		b.WriteString("No essays yet.\n")
	}
	for _, e := range snapshot.Essays {
		fmt.Fprintf(&b, "- %s (%s, %d/%d words)\n", e.Title, e.EssayType, e.WordCount, e.WordLimit)
	}

	if len(snapshot.Activities) > 0 {
		b.WriteString("\n## Activities\n")
		for _, a := range snapshot.Activities {
			fmt.Fprintf(&b, "- %s, %s (%s)\n", a.Name, a.Role, a.Years)
		}
	}

	if len(snapshot.Awards) > 0 {
		b.WriteString("\n## Awards\n")
		for _, a := range snapshot.Awards {
			fmt.Fprintf(&b, "- %s (%s)\n", a.Title, a.Level)
		}
	}

	b.WriteString("\n## How to behave\n")
	b.WriteString("- Ask one question at a time, never a list of questions.\n")
	b.WriteString("- When the student asks you to do something, use a tool and do it now. Never promise to do it later.\n")
	b.WriteString("- Use the student's actual data above; do not invent colleges, tasks, or essays.\n")
	b.WriteString("- Be encouraging but honest about admission odds.\n")

	if voiceMode {
		b.WriteString("- The student is using voice. Keep replies to two or three short spoken sentences, no markdown, no lists.\n")
	}

	return b.String()
}

func writeProfile(b *strings.Builder, profile *models.Profile) {
	if profile == nil {
		b.WriteString("No profile on record yet.\n")
		return
	}

	if profile.FullName != "" {
		fmt.Fprintf(b, "Name: %s\n", profile.FullName)
	}
	if profile.IntendedMajor != "" {
		fmt.Fprintf(b, "Intended major: %s\n", profile.IntendedMajor)
	}
	if profile.GraduationYear != nil {
		fmt.Fprintf(b, "Graduation year: %d\n", *profile.GraduationYear)
	}
	if profile.UnweightedGPA != nil {
		fmt.Fprintf(b, "Unweighted GPA: %.2f\n", *profile.UnweightedGPA)
	}
	if profile.SATScore != nil {
		fmt.Fprintf(b, "SAT: %d\n", *profile.SATScore)
	}
	if profile.ACTScore != nil {
		fmt.Fprintf(b, "ACT: %d\n", *profile.ACTScore)
	}
}
