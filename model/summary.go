package model

type RunSummary struct {
	RunId           string `json:"run_id"`
	Input           string `json:"input"`
	Output          string `json:"output"`
	Strategy        string `json:"strategy"`
	MaxVoices       int    `json:"max_voices"`
	Voices          int    `json:"voices"`
	AutoOptimized   bool   `json:"auto_optimized"`
	NumInputNotes   int    `json:"num_input_notes"`
	NumOutputNotes  int    `json:"num_output_notes"`
	NumMetaEvents   int    `json:"num_meta_events"`
	MaxSimultaneous int    `json:"max_simultaneous"`
	Dropped         int    `json:"dropped"`
	Truncated       int    `json:"truncated"`
	Replaced        int    `json:"replaced"`
}
