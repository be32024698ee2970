package llm

// ToolDefinition defines a tool that can be called by the oracle.
type ToolDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// ParameterProperty defines a parameter property in JSON Schema format.
type ParameterProperty struct {
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Enum        []string `json:"enum,omitempty"`
}

// NewToolDefinition creates a new tool definition with standard JSON Schema parameters.
func NewToolDefinition(name, description string, properties map[string]ParameterProperty, required []string) ToolDefinition {
	props := make(map[string]any)
	for k, v := range properties {
		props[k] = map[string]any{
			"type":        v.Type,
			"description": v.Description,
		}
		if len(v.Enum) > 0 {
			props[k].(map[string]any)["enum"] = v.Enum
		}
	}

	return ToolDefinition{
		Name:        name,
		Description: description,
		Parameters: map[string]any{
			"type":       "object",
			"properties": props,
			"required":   required,
		},
	}
}

// GetCounselorTools returns the tool catalog offered to the counselor oracle.
// Every tool here has a handler in the services tool executor; the dispatch
// table and this catalog must stay in sync.
func GetCounselorTools() []ToolDefinition {
	return []ToolDefinition{
		NewToolDefinition(
			"research_college",
			"Get detailed admissions statistics, deadlines, and essay requirements for a college",
			map[string]ParameterProperty{
				"college_name": {
					Type:        "string",
					Description: "The name of the college to research",
				},
			},
			[]string{"college_name"},
		),
		NewToolDefinition(
			"add_college",
			"Add a college to the student's application list and set up its essays and starter tasks",
			map[string]ParameterProperty{
				"college_name": {
					Type:        "string",
					Description: "The name of the college to add",
				},
				"type": {
					Type:        "string",
					Description: "How the college fits the student's admission odds",
					Enum:        []string{"Reach", "Target", "Safety"},
				},
			},
			[]string{"college_name"},
		),
		NewToolDefinition(
			"update_college_status",
			"Update the application status for a college already on the student's list",
			map[string]ParameterProperty{
				"college_name": {
					Type:        "string",
					Description: "The name of the college to update",
				},
				"status": {
					Type:        "string",
					Description: "The new application status",
					Enum:        []string{"Not Started", "In Progress", "Completed"},
				},
			},
			[]string{"college_name", "status"},
		),
		NewToolDefinition(
			"create_task",
			"Create a to-do task for the student, optionally tied to a college",
			map[string]ParameterProperty{
				"title": {
					Type:        "string",
					Description: "Short task title",
				},
				"description": {
					Type:        "string",
					Description: "Optional longer description",
				},
				"priority": {
					Type:        "string",
					Description: "Task priority",
					Enum:        []string{"High", "Medium", "Low"},
				},
				"category": {
					Type:        "string",
					Description: "Optional category, e.g. 'Essays' or 'Testing'",
				},
				"college_name": {
					Type:        "string",
					Description: "Optional college this task belongs to",
				},
			},
			[]string{"title"},
		),
		NewToolDefinition(
			"update_task",
			"Update an existing task's title, description, or priority",
			map[string]ParameterProperty{
				"task_title": {
					Type:        "string",
					Description: "Current title of the task to update",
				},
				"new_title": {
					Type:        "string",
					Description: "Optional new title",
				},
				"description": {
					Type:        "string",
					Description: "Optional new description",
				},
				"priority": {
					Type:        "string",
					Description: "Optional new priority",
					Enum:        []string{"High", "Medium", "Low"},
				},
			},
			[]string{"task_title"},
		),
		NewToolDefinition(
			"complete_task",
			"Mark a task as completed",
			map[string]ParameterProperty{
				"task_title": {
					Type:        "string",
					Description: "Title of the task to complete",
				},
			},
			[]string{"task_title"},
		),
		NewToolDefinition(
			"delete_task",
			"Delete a task from the student's list",
			map[string]ParameterProperty{
				"task_title": {
					Type:        "string",
					Description: "Title of the task to delete",
				},
			},
			[]string{"task_title"},
		),
		NewToolDefinition(
			"update_profile",
			"Update a field on the student's profile",
			map[string]ParameterProperty{
				"field": {
					Type:        "string",
					Description: "The profile field to update",
					Enum: []string{
						"full_name", "intended_major", "graduation_year",
						"unweighted_gpa", "sat_score", "act_score",
					},
				},
				"value": {
					Type:        "string",
					Description: "The new value for the field",
				},
			},
			[]string{"field", "value"},
		),
		NewToolDefinition(
			"update_essay_content",
			"Save new draft content for one of the student's essays",
			map[string]ParameterProperty{
				"essay_title": {
					Type:        "string",
					Description: "Title of the essay to update",
				},
				"content": {
					Type:        "string",
					Description: "The full essay text to save",
				},
			},
			[]string{"essay_title", "content"},
		),
		NewToolDefinition(
			"get_essay",
			"Fetch one of the student's essays including its current draft content",
			map[string]ParameterProperty{
				"essay_title": {
					Type:        "string",
					Description: "Title of the essay to fetch",
				},
			},
			[]string{"essay_title"},
		),
		NewToolDefinition(
			"get_application_status",
			"Get a full snapshot of the student's colleges, tasks, and essays in one shot",
			map[string]ParameterProperty{},
			[]string{},
		),
		NewToolDefinition(
			"list_documents",
			"List the student's essays and their completion state",
			map[string]ParameterProperty{},
			[]string{},
		),
		NewToolDefinition(
			"brainstorm_essay",
			"Brainstorm essay ideas and angles for a topic or prompt",
			map[string]ParameterProperty{
				"topic": {
					Type:        "string",
					Description: "What the student wants to write about",
				},
				"essay_prompt": {
					Type:        "string",
					Description: "Optional official prompt being answered",
				},
			},
			[]string{"topic"},
		),
		NewToolDefinition(
			"review_essay",
			"Review a draft essay and give specific feedback",
			map[string]ParameterProperty{
				"essay_text": {
					Type:        "string",
					Description: "The draft essay text to review",
				},
			},
			[]string{"essay_text"},
		),
		NewToolDefinition(
			"live_research",
			"Research a college-admissions question with up-to-date information",
			map[string]ParameterProperty{
				"query": {
					Type:        "string",
					Description: "The question to research",
				},
			},
			[]string{"query"},
		),
	}
}
