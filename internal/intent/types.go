package intent

// Action is the kind of change an instruction asks for.
type Action string

const (
	ActionCreate   Action = "create"
	ActionModify   Action = "modify"
	ActionDelete   Action = "delete"
	ActionRefactor Action = "refactor"
	ActionUnknown  Action = "unknown"
)

// Intent is the structured, machine-checkable form of an instruction.
type Intent struct {
	Action     Action `json:"action"`
	TargetPath string `json:"targetPath"`
	// Destination is the new path of a rename-style refactor. Empty otherwise.
	Destination string `json:"destination,omitempty"`
	// Content is nil when the instruction carried no literal content.
	Content *string `json:"content,omitempty"`
	// Command is the keyword that selected Action, e.g. "remove" for ActionDelete.
	Command   string `json:"command,omitempty"`
	Reasoning string `json:"reasoning"`
}

// HasContent reports whether literal content was supplied.
func (i Intent) HasContent() bool {
	return i.Content != nil
}

// Paths returns the target followed by the destination, if any.
func (i Intent) Paths() []string {
	if i.TargetPath == "" {
		return nil
	}
	if i.Destination == "" {
		return []string{i.TargetPath}
	}
	return []string{i.TargetPath, i.Destination}
}
