// Package types holds the domain model shared across the organizer core:
// files, rules, profiles, runs, schedules and settings. Nothing in this
// package touches disk or the database — it is the vocabulary the other
// internal packages speak.
package types

import "time"

// TimestampLayout is the local-clock string form used everywhere a
// timestamp crosses a persistence or template boundary.
const TimestampLayout = "2006-01-02 15:04:05"

// FileRecord describes a single file as seen by the scanner. It is
// immutable within a run: nothing downstream mutates a FileRecord, it only
// reads it to decide what to do with the path it names.
type FileRecord struct {
	Path         string // absolute path
	Name         string // basename, including extension
	Extension    string // lowercase, no leading dot; empty for extensionless files
	SizeBytes    int64
	CreatedAt    string // TimestampLayout, UTC; empty if the platform can't provide it
	ModifiedAt   string // TimestampLayout, UTC
	modifiedTime time.Time
}

// ModifiedTime returns the parsed modification time, used by the action
// resolver's {year}/{month}/{day} template placeholders.
func (f FileRecord) ModifiedTime() time.Time { return f.modifiedTime }

// WithModifiedTime returns a copy of f with its cached modification time
// set. The scanner is the only caller; it exists so FileRecord can carry a
// time.Time without exporting a field that call sites might hand-construct
// inconsistently with ModifiedAt.
func (f FileRecord) WithModifiedTime(t time.Time) FileRecord {
	f.modifiedTime = t
	return f
}

// ConditionField enumerates the metadata fields a condition can test.
type ConditionField string

const (
	FieldExtension    ConditionField = "extension"
	FieldFilename     ConditionField = "filename"
	FieldSize         ConditionField = "size"
	FieldCreatedDate  ConditionField = "created_date"
	FieldModifiedDate ConditionField = "modified_date"
	FieldSourceFolder ConditionField = "source_folder"
	FieldRegex        ConditionField = "regex"
)

// Operator enumerates condition comparison operators.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not_equals"
	OpContains    Operator = "contains"
	OpNotContains Operator = "not_contains"
	OpStartsWith  Operator = "starts_with"
	OpEndsWith    Operator = "ends_with"
	OpGreaterThan Operator = "greater_than"
	OpLessThan    Operator = "less_than"
	OpMatches     Operator = "matches"
)

// LogicGate enumerates how a condition combines with the chain so far.
type LogicGate string

const (
	GateAND LogicGate = "AND"
	GateOR  LogicGate = "OR"
)

// Condition is one predicate in a rule's ordered condition chain.
type Condition struct {
	ID        string
	RuleID    string
	Field     ConditionField
	Operator  Operator
	Value     string
	LogicGate LogicGate // ignored for the first condition in a rule
	SortOrder int
}

// ActionType enumerates what an action does with a matched file.
type ActionType string

const (
	ActionMove            ActionType = "move"
	ActionCopy            ActionType = "copy"
	ActionMoveToFolder    ActionType = "move_to_folder"
	ActionMoveToSubfolder ActionType = "move_to_subfolder"
	ActionRename          ActionType = "rename"
	ActionTag             ActionType = "tag"
	ActionAddTag          ActionType = "add_tag"
	ActionDelete          ActionType = "delete"
)

// Action is one ordered step a matching rule performs.
type Action struct {
	ID             string
	RuleID         string
	ActionType     ActionType
	Destination    string // possibly templated
	RenamePattern  string // possibly templated
	TagName        string
	SortOrder      int
}

// Rule selects files via its Conditions and, on a match, runs its Actions.
type Rule struct {
	ID          string
	Name        string
	Description string
	Enabled     bool
	Priority    int
	SortOrder   int
	CreatedAt   string
	UpdatedAt   string
	Conditions  []Condition
	Actions     []Action
}

// Profile is a named, ordered subset of rules the user can switch between.
type Profile struct {
	ID        string
	Name      string
	Icon      string
	Color     string
	IsActive  bool
	IsDefault bool
	CreatedAt string
	UpdatedAt string
	RuleIDs   []string // ordered
}

// WatchMode enumerates how a watched folder is meant to be triggered.
// The core only persists the value; acting on it (a filesystem watcher or
// the scheduler) is the caller's concern.
type WatchMode string

const (
	WatchModeManual    WatchMode = "manual"
	WatchModeScheduled WatchMode = "scheduled"
)

// WatchedFolder is a persisted folder reference paired with a profile.
type WatchedFolder struct {
	ID        string
	Path      string
	ProfileID string
	Enabled   bool
	WatchMode WatchMode
	CreatedAt string
	UpdatedAt string
}

// Schedule ties a profile + folder to a cron expression.
type Schedule struct {
	ID         string
	ProfileID  string
	FolderID   string
	CronExpr   string
	Enabled    bool
	LastRunAt  string // TimestampLayout, empty if never run
	NextRunAt  string // TimestampLayout, empty if the cron expression doesn't resolve
	CreatedAt  string
	UpdatedAt  string
}

// RunType distinguishes manually-triggered runs from scheduled ones.
type RunType string

const (
	RunTypeManual    RunType = "manual"
	RunTypeScheduled RunType = "scheduled"
)

// RunStatus is the lifecycle state of a run header.
type RunStatus string

const (
	RunStatusRunning            RunStatus = "running"
	RunStatusCompleted          RunStatus = "completed"
	RunStatusCompletedWithError RunStatus = "completed_with_errors"
	RunStatusError              RunStatus = "error"
	RunStatusRolledBack         RunStatus = "rolled_back"
	RunStatusRollbackPartial    RunStatus = "rollback_partial"
)

// Run is a journal header: one invocation of the executor against one
// simulation.
type Run struct {
	ID            string
	ProfileID     string
	RunType       RunType
	Status        RunStatus
	SourceFolder  string
	TotalFiles    int
	MovedFiles    int
	SkippedFiles  int
	ErrorFiles    int
	StartedAt     string
	CompletedAt   string
	RolledBackAt  string
	ErrorMessage  string
}

// RunItemStatus is the outcome of one planned action within a run.
type RunItemStatus string

const (
	RunItemCompleted       RunItemStatus = "completed"
	RunItemSkipped         RunItemStatus = "skipped"
	RunItemError           RunItemStatus = "error"
	RunItemRolledBack      RunItemStatus = "rolled_back"
	RunItemRollbackSkipped RunItemStatus = "rollback_skipped"
)

// RunItem is one journal entry: exactly one is written per planned action
// regardless of outcome.
type RunItem struct {
	ID               string
	RunID            string
	RuleID           string // nullable; empty string means "no rule" (should not occur in practice)
	OriginalPath     string
	DestinationPath  string
	FileSizeBytes    int64
	ActionType       ActionType
	Status           RunItemStatus
	ConflictStrategy ConflictStrategy
	ErrorMessage     string
	ExecutedAt       string
	RolledBackAt     string
}

// ConflictStrategy enumerates how the executor reacts to an existing
// destination.
type ConflictStrategy string

const (
	ConflictSuffix   ConflictStrategy = "suffix"
	ConflictFolder   ConflictStrategy = "conflict_folder"
	ConflictSkip     ConflictStrategy = "skip"
	DefaultConflict  ConflictStrategy = ConflictSuffix
)

// Setting is a single key/value row. The core only reads "conflict_strategy".
type Setting struct {
	Key       string
	Value     string
	UpdatedAt string
}
