package policy

// Policy bounds which intents may execute. All sets are membership-only.
type Policy struct {
	AllowedFolders     []string `json:"allowedFolders" yaml:"allowedFolders" mapstructure:"allowedFolders"`
	RestrictedFiles    []string `json:"restrictedFiles" yaml:"restrictedFiles" mapstructure:"restrictedFiles"`
	AllowedFileTypes   []string `json:"allowedFileTypes" yaml:"allowedFileTypes" mapstructure:"allowedFileTypes"`
	MaxFileChanges     int      `json:"maxFileChanges" yaml:"maxFileChanges" mapstructure:"maxFileChanges"`
	RestrictedCommands []string `json:"restrictedCommands" yaml:"restrictedCommands" mapstructure:"restrictedCommands"`
}

// Rule identifies which check produced a Decision.
type Rule string

const (
	RuleNone           Rule = "none"
	RuleUnknownIntent  Rule = "unknownIntent"
	RuleCommand        Rule = "command"
	RuleRestrictedFile Rule = "restrictedFile"
	RuleFileType       Rule = "fileType"
	RuleFolder         Rule = "folder"
	RuleMaxChanges     Rule = "maxChanges"
)

// Decision is the engine's verdict on an intent.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
	Rule    Rule   `json:"violatedRule"`
	// Touches is the number of archive entries the intent is expected to touch.
	Touches int `json:"touches"`
	// Trace lists the checks that passed before the verdict, in evaluation order.
	Trace []string `json:"trace,omitempty"`
}
