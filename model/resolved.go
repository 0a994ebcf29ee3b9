package model

// ResolvedConfig is the output of extraction: a single flat
// configuration object for one target file, with every field-specific
// merge policy already applied.
type ResolvedConfig struct {
	Env           map[string]bool
	Globals       map[string]string
	Parser        *Reference
	ParserOptions map[string]interface{}
	Plugins       map[string]*Reference
	Processor     *ResolvedProcessor
	Rules         map[string]interface{}
	Settings      map[string]interface{}
}

// NewResolvedConfig returns an empty, initialized ResolvedConfig ready for
// the Extractor's reverse walk to populate.
func NewResolvedConfig() *ResolvedConfig {
	return &ResolvedConfig{
		Env:           map[string]bool{},
		Globals:       map[string]string{},
		ParserOptions: map[string]interface{}{},
		Plugins:       map[string]*Reference{},
		Rules:         map[string]interface{}{},
		Settings:      map[string]interface{}{},
	}
}
