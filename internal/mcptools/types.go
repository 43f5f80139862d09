package mcptools

// ListTasksInput is the input schema for the list_tasks MCP tool.
type ListTasksInput struct {
	CompletedOnly bool `json:"completed_only,omitempty" jsonschema-description:"Return only completed tasks"`
}

// ListTasksOutput is the output schema for the list_tasks MCP tool.
type ListTasksOutput struct {
	Title     string       `json:"title"`
	Date      string       `json:"date"`
	Tasks     []TaskResult `json:"tasks"`
	Total     int          `json:"total"`
	Completed int          `json:"completed"`
}

// TaskResult is the common output format for task-related MCP tools.
type TaskResult struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// AddTaskInput is the input schema for the add_task MCP tool.
type AddTaskInput struct {
	Text string `json:"text" jsonschema-description:"Task text to add to today's checklist"`
}

// AddTaskOutput is the output schema for the add_task MCP tool.
type AddTaskOutput struct {
	Task TaskResult `json:"task"`
}

// ToggleTaskInput is the input schema for the toggle_task MCP tool.
type ToggleTaskInput struct {
	ID string `json:"id" jsonschema-description:"ID of the task to toggle"`
}

// ToggleTaskOutput is the output schema for the toggle_task MCP tool.
type ToggleTaskOutput struct {
	Task              TaskResult `json:"task"`
	IsFirstCompletion bool       `json:"isFirstCompletion"`
}

// DeleteTaskInput is the input schema for the delete_task MCP tool.
type DeleteTaskInput struct {
	ID string `json:"id" jsonschema-description:"ID of the task to delete"`
}

// DeleteTaskOutput is the output schema for the delete_task MCP tool.
type DeleteTaskOutput struct {
	Deleted string `json:"deleted"`
}

// GetStreakInput is the input schema for the get_streak MCP tool.
type GetStreakInput struct{}

// GetStreakOutput is the output schema for the get_streak MCP tool.
type GetStreakOutput struct {
	Count int `json:"count"`
}

// GenerateAffirmationInput is the input schema for the generate_affirmation MCP tool.
type GenerateAffirmationInput struct{}

// GenerateAffirmationOutput is the output schema for the generate_affirmation MCP tool.
type GenerateAffirmationOutput struct {
	Text            string `json:"text"`
	IsUsingFallback bool   `json:"isUsingFallback"`
	Status          string `json:"status"`
}
