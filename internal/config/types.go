package config

import "gopkg.in/yaml.v3"

// Recipe is the full YAML document describing a codemod run: either a
// single template or a sequence of upgrade steps, never both.
type Recipe struct {
	Version     string        `yaml:"version" validate:"required,semver"`
	Name        string        `yaml:"name" validate:"required,min=1,max=100"`
	Description string        `yaml:"description,omitempty"`
	Settings    Settings      `yaml:"settings,omitempty"`
	Template    []Utility     `yaml:"template,omitempty" validate:"omitempty,min=1,dive"`
	UpgradePath []UpgradeStep `yaml:"upgrade_path,omitempty" validate:"omitempty,min=1,dive"`
}

// Settings holds run-wide knobs read by cmd/codemod.
type Settings struct {
	OutputFolder string `yaml:"output_folder,omitempty"`
	DryRun       bool   `yaml:"dry_run,omitempty"`
	Verbose      bool   `yaml:"verbose,omitempty"`
}

// UpgradeStep is one entry of an upgrade_path document: a version pair
// and the template applied while moving between them.
type UpgradeStep struct {
	FromVersion string    `yaml:"from_version" validate:"required"`
	ToVersion   string    `yaml:"to_version" validate:"required"`
	Template    []Utility `yaml:"template" validate:"required,min=1,dive"`
}

// Utility is one recipe entry. Its concrete settings decode into exactly
// one of the typed fields below, selected by Type.
type Utility struct {
	Name           string   `yaml:"name" validate:"required,utility_name"`
	Description    string   `yaml:"description,omitempty"`
	Type           string   `yaml:"type" validate:"required,oneof=replace_text copy_tree run_command git_clean git_commit list_files file_contains scripted_condition for_each_file multiple_conditions filter_files manual_instruction unified_diff"`
	Path           string   `yaml:"path,omitempty"`
	DependsOn      []string `yaml:"depends_on,omitempty"`
	ExecuteIf      string   `yaml:"execute_if,omitempty"`
	AbortOnFailure bool     `yaml:"abort_on_failure,omitempty"`
	AbortMessage   string   `yaml:"abort_message,omitempty"`
	SaveResult     *bool    `yaml:"save_result,omitempty"`
	ContextAttr    string   `yaml:"context_attribute_name,omitempty"`

	ReplaceText        *ReplaceTextSettings        `yaml:",inline,omitempty"`
	CopyTree           *CopyTreeSettings           `yaml:",inline,omitempty"`
	RunCommand         *RunCommandSettings         `yaml:",inline,omitempty"`
	GitCommit          *GitCommitSettings          `yaml:",inline,omitempty"`
	ListFiles          *ListFilesSettings          `yaml:",inline,omitempty"`
	FileContains       *FileContainsSettings       `yaml:",inline,omitempty"`
	ScriptedCondition  *ScriptedConditionSettings  `yaml:",inline,omitempty"`
	ForEachFile        *ForEachFileSettings        `yaml:",inline,omitempty"`
	MultipleConditions *MultipleConditionsSettings `yaml:",inline,omitempty"`
	FilterFiles        *FilterFilesSettings        `yaml:",inline,omitempty"`
	ManualInstruction  *ManualInstructionSettings  `yaml:",inline,omitempty"`
	UnifiedDiff        *UnifiedDiffSettings        `yaml:",inline,omitempty"`
}

// UnmarshalYAML decodes the common fields once, then re-decodes into the
// type-specific settings struct selected by Type — the same
// decode-twice-with-a-discriminator approach as the teacher's Step type.
func (u *Utility) UnmarshalYAML(value *yaml.Node) error {
	type baseUtility struct {
		Name           string   `yaml:"name"`
		Description    string   `yaml:"description"`
		Type           string   `yaml:"type"`
		Path           string   `yaml:"path"`
		DependsOn      []string `yaml:"depends_on"`
		ExecuteIf      string   `yaml:"execute_if"`
		AbortOnFailure bool     `yaml:"abort_on_failure"`
		AbortMessage   string   `yaml:"abort_message"`
		SaveResult     *bool    `yaml:"save_result"`
		ContextAttr    string   `yaml:"context_attribute_name"`
	}

	var base baseUtility
	if err := value.Decode(&base); err != nil {
		return err
	}

	u.Name = base.Name
	u.Description = base.Description
	u.Type = base.Type
	u.Path = base.Path
	u.DependsOn = append([]string(nil), base.DependsOn...)
	u.ExecuteIf = base.ExecuteIf
	u.AbortOnFailure = base.AbortOnFailure
	u.AbortMessage = base.AbortMessage
	u.SaveResult = base.SaveResult
	u.ContextAttr = base.ContextAttr

	u.ReplaceText = nil
	u.CopyTree = nil
	u.RunCommand = nil
	u.GitCommit = nil
	u.ListFiles = nil
	u.FileContains = nil
	u.ScriptedCondition = nil
	u.ForEachFile = nil
	u.MultipleConditions = nil
	u.FilterFiles = nil
	u.ManualInstruction = nil
	u.UnifiedDiff = nil

	switch base.Type {
	case "replace_text":
		var settings ReplaceTextSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.ReplaceText = &settings
	case "copy_tree":
		var settings CopyTreeSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.CopyTree = &settings
	case "run_command":
		var settings RunCommandSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.RunCommand = &settings
	case "git_clean":
		// no extra settings beyond the common fields
	case "git_commit":
		var settings GitCommitSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.GitCommit = &settings
	case "list_files":
		var settings ListFilesSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.ListFiles = &settings
	case "file_contains":
		var settings FileContainsSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.FileContains = &settings
	case "scripted_condition":
		var settings ScriptedConditionSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.ScriptedCondition = &settings
	case "for_each_file":
		var settings ForEachFileSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.ForEachFile = &settings
	case "multiple_conditions":
		var settings MultipleConditionsSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.MultipleConditions = &settings
	case "filter_files":
		var settings FilterFilesSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.FilterFiles = &settings
	case "manual_instruction":
		var settings ManualInstructionSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.ManualInstruction = &settings
	case "unified_diff":
		var settings UnifiedDiffSettings
		if err := value.Decode(&settings); err != nil {
			return err
		}
		u.UnifiedDiff = &settings
	}

	return nil
}

type ReplaceTextSettings struct {
	Pattern     string `yaml:"pattern" validate:"required"`
	Replacement string `yaml:"replacement"`
}

type CopyTreeSettings struct {
	Destination string `yaml:"destination" validate:"required"`
	Overwrite   bool   `yaml:"overwrite,omitempty"`
}

type RunCommandSettings struct {
	Command       []string `yaml:"command" validate:"required,min=1"`
	TimeoutSecond int      `yaml:"timeout_seconds,omitempty" validate:"omitempty,min=1"`
}

type GitCommitSettings struct {
	Message     string `yaml:"message" validate:"required"`
	AuthorName  string `yaml:"author_name,omitempty"`
	AuthorEmail string `yaml:"author_email,omitempty"`
}

type ListFilesSettings struct {
	NamePattern string `yaml:"name_pattern,omitempty"`
}

type FileContainsSettings struct {
	Pattern string `yaml:"pattern" validate:"required"`
}

type ScriptedConditionSettings struct {
	Script string `yaml:"script" validate:"required"`
}

type ForEachFileSettings struct {
	NamePattern string    `yaml:"name_pattern,omitempty"`
	Child       []Utility `yaml:"child" validate:"required,len=1,dive"`
}

type MultipleConditionsSettings struct {
	SubtreePattern string `yaml:"subtree_pattern,omitempty"`
	ContentPattern string `yaml:"content_pattern" validate:"required"`
	Mode           string `yaml:"mode" validate:"required,oneof=ALL ANY"`
}

type FilterFilesSettings struct {
	SubtreePattern string `yaml:"subtree_pattern,omitempty"`
	ContentPattern string `yaml:"content_pattern" validate:"required"`
}

type ManualInstructionSettings struct {
	Text string `yaml:"text" validate:"required"`
}

type UnifiedDiffSettings struct {
	OriginalPath string `yaml:"original_path" validate:"required"`
}
